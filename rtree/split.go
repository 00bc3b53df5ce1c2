package rtree

import "sort"

// splitNode partitions n's M+1 entries into two groups (spec.md §4.5).
// n is left holding the "left" group; the returned sibling node holds the
// "right" group. Both inherit n's leafLevel and height.
func splitNode[T any](n *node[T], m, dim int) *node[T] {
	sortedByLo, sortedByHi := chooseSplitAxis(n.entries, m, dim)
	left, right := chooseSplitIndex(sortedByLo, sortedByHi, m)

	sibling := newNode[T](n.leafLevel, n.height)
	sibling.parent = n.parent
	sibling.entries = right
	for i := range sibling.entries {
		if c := sibling.entries[i].child; c != nil {
			c.parent = sibling
		}
	}
	n.entries = left
	for i := range n.entries {
		if c := n.entries[i].child; c != nil {
			c.parent = n
		}
	}
	return sibling
}

// chooseSplitAxis selects the axis minimizing the total margin-sum over all
// candidate distributions (spec.md §4.5 Stage A), returning the entries
// sorted by Lo and by Hi along that axis (Stage B works off of these).
func chooseSplitAxis[T any](entries []entry[T], m, dim int) ([]entry[T], []entry[T]) {
	var bestS float64
	var bestLo, bestHi []entry[T]
	for axis := 0; axis < dim; axis++ {
		byLo := sortedCopy(entries, axis, true)
		byHi := sortedCopy(entries, axis, false)
		s := marginSum(byLo, m) + marginSum(byHi, m)
		if axis == 0 || s < bestS {
			bestS = s
			bestLo = byLo
			bestHi = byHi
		}
	}
	return bestLo, bestHi
}

// marginSum sums margin(left)+margin(right) over every valid distribution of
// sorted (M+1 entries) into a left group of size m+k and a right group of
// size (M+1)-(m+k), k = 0..M-2m+1 (both groups must keep at least m entries).
func marginSum[T any](sorted []entry[T], m int) float64 {
	total := len(sorted)
	sum := 0.0
	maxK := total - 2*m
	for k := 0; k <= maxK; k++ {
		leftSize := m + k
		sum += groupMBR(sorted[:leftSize]).Margin() + groupMBR(sorted[leftSize:]).Margin()
	}
	return sum
}

// chooseSplitIndex picks, across both axis sorts, the distribution minimizing
// overlap (ties broken by minimum total area) (spec.md §4.5 Stage B).
func chooseSplitIndex[T any](sortedByLo, sortedByHi []entry[T], m int) ([]entry[T], []entry[T]) {
	total := len(sortedByLo)
	maxK := total - 2*m

	var bestLeft, bestRight []entry[T]
	bestOverlap := 0.0
	bestArea := 0.0
	found := false

	consider := func(sorted []entry[T]) {
		for k := 0; k <= maxK; k++ {
			leftSize := m + k
			left := sorted[:leftSize]
			right := sorted[leftSize:]
			leftMBR := groupMBR(left)
			rightMBR := groupMBR(right)
			overlap := leftMBR.Overlap(rightMBR)
			area := leftMBR.Area() + rightMBR.Area()
			if !found || overlap < bestOverlap || (overlap == bestOverlap && area < bestArea) {
				found = true
				bestOverlap = overlap
				bestArea = area
				bestLeft = append([]entry[T]{}, left...)
				bestRight = append([]entry[T]{}, right...)
			}
		}
	}
	consider(sortedByLo)
	consider(sortedByHi)
	return bestLeft, bestRight
}

func groupMBR[T any](entries []entry[T]) BoundingBox {
	boxes := make([]BoundingBox, len(entries))
	for i, e := range entries {
		boxes[i] = e.mbr
	}
	return mbrOf(boxes)
}

// sortedCopy returns a copy of entries sorted ascending by Lo[axis]
// (byLo=true) or Hi[axis] (byLo=false), ties broken by the other bound.
func sortedCopy[T any](entries []entry[T], axis int, byLo bool) []entry[T] {
	out := make([]entry[T], len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if byLo {
			if out[i].mbr.Lo[axis] != out[j].mbr.Lo[axis] {
				return out[i].mbr.Lo[axis] < out[j].mbr.Lo[axis]
			}
			return out[i].mbr.Hi[axis] < out[j].mbr.Hi[axis]
		}
		if out[i].mbr.Hi[axis] != out[j].mbr.Hi[axis] {
			return out[i].mbr.Hi[axis] < out[j].mbr.Hi[axis]
		}
		return out[i].mbr.Lo[axis] < out[j].mbr.Lo[axis]
	})
	return out
}
