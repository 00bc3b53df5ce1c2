package rtree

// chooseSubtree descends from n, choosing the cheapest child at every level,
// until reaching a node at targetHeight (spec.md §4.3). n itself is returned
// unchanged if it is already at targetHeight.
func chooseSubtree[T any](n *node[T], box BoundingBox, targetHeight int) *node[T] {
	for n.height > targetHeight {
		childrenAreLeaves := n.entries[0].child.height == 0
		best := 0
		var bestScore, bestResultArea, bestOrigArea float64
		for i := range n.entries {
			e := &n.entries[i]
			var score float64
			if childrenAreLeaves {
				score = overlapEnlargement(n.entries, i, box)
			} else {
				score = e.mbr.Extend(box).Area() - e.mbr.Area()
			}
			resultArea := e.mbr.Extend(box).Area()
			origArea := e.mbr.Area()
			if i == 0 ||
				score < bestScore ||
				(score == bestScore && resultArea < bestResultArea) ||
				(score == bestScore && resultArea == bestResultArea && origArea < bestOrigArea) {
				best = i
				bestScore = score
				bestResultArea = resultArea
				bestOrigArea = origArea
			}
		}
		n = n.entries[best].child
	}
	return n
}

// overlapEnlargement returns how much inserting box into entries[idx] would
// increase that entry's total pairwise overlap with its siblings
// (spec.md §4.3, rule 1).
func overlapEnlargement[T any](entries []entry[T], idx int, box BoundingBox) float64 {
	c := entries[idx]
	extended := c.mbr.Extend(box)
	total := 0.0
	for j := range entries {
		if j == idx {
			continue
		}
		sibling := entries[j].mbr
		total += extended.Overlap(sibling) - c.mbr.Overlap(sibling)
	}
	return total
}
