package rtree

// Entry is a tagged variant: either a LeafEntry (child==nil, Value set) or an
// InnerEntry (child!=nil, Value is the type's zero value). A node's entries
// are always homogeneous; Node.leafLevel says which kind they are, so no
// per-entry tag needs to be stored (spec.md §4.2 design note).
type entry[T any] struct {
	mbr   BoundingBox
	child *node[T] // nil for leaf entries
	value T        // only meaningful when child == nil

	// dist is scratch state used by ForcedReinsert to sort entries by
	// distance from the node's center. It is not part of the tree's
	// persistent state and is recomputed every time it's needed.
	dist float64
}

func (e *entry[T]) isLeaf() bool { return e.child == nil }
