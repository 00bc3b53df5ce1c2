package rtree

import "sort"

// overflowTreatment handles a node n that has just grown to M+1 entries
// (spec.md §4.6). Returns (true, sibling) if n was split, or (false, nil) if
// n was handled by ForcedReinsert instead.
func (t *Tree[T]) overflowTreatment(n *node[T], allowReinsert bool) (bool, *node[T]) {
	notRoot := n.height < t.root.height
	if allowReinsert && notRoot && !t.reinsertedLevels[n.height] {
		t.reinsertedLevels[n.height] = true
		t.forcedReinsert(n)
		return false, nil
	}
	sibling := splitNode(n, t.minEntries, t.dim)
	return true, sibling
}

// forcedReinsert removes the entries of n farthest from n's own center and
// reinserts them from the root, starting with the one closest to the
// center (spec.md §4.6). n keeps the nearest M+1-p entries.
func (t *Tree[T]) forcedReinsert(n *node[T]) {
	center := n.recalculateMBR(t.dim)
	for i := range n.entries {
		n.entries[i].dist = n.entries[i].mbr.CenterDistSq(center)
	}
	sort.SliceStable(n.entries, func(i, j int) bool {
		return n.entries[i].dist > n.entries[j].dist // descending
	})

	p := int(0.30 * float64(t.maxEntries+1))
	removed := make([]entry[T], p)
	copy(removed, n.entries[:p])
	n.entries = n.entries[p:]

	if idx := n.indexInParent(); idx >= 0 {
		n.parent.entries[idx].mbr = n.recalculateMBR(t.dim)
	}
	if t.logger != nil {
		t.logger.Debug("rtree: forced-reinsert at height %d, reinserting %d entries", n.height, p)
	}

	// Reinsert starting with the entry closest to the center (spec.md §4.6
	// step 4); "removed" is sorted descending by distance, so iterate from
	// the end. allowReinsert is false: level n.height is already marked reinserted.
	for k := len(removed) - 1; k >= 0; k-- {
		t.insertEntry(n.height, removed[k], false)
	}
}
