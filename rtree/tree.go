// Package rtree implements a dynamic, in-memory R*-tree: a balanced,
// height-adjusting spatial index over axis-aligned bounding boxes in a
// fixed number of dimensions. It supports insertion, range search, and
// range deletion, using the ChooseSubtree/Split/ForcedReinsert algorithms
// of Beckmann, Kriegel, Schneider & Seeger, 1990.
package rtree

import (
	"fmt"

	"github.com/spatialidx/rstartree/rtreelog"
)

// Tree is a dynamic R*-tree over values of type T.
// Not safe for concurrent use: a caller must synchronize access from
// multiple goroutines itself (spec.md §5).
type Tree[T any] struct {
	dim        int
	minEntries int // m
	maxEntries int // M
	root       *node[T]
	size       int

	// reinsertedLevels tracks which node heights have already been
	// force-reinserted during the current top-level Insert call. Cleared
	// at the start of every Insert; must never leak across calls
	// (spec.md §9).
	reinsertedLevels map[int]bool

	logger *rtreelog.Logger
}

// New creates an empty Tree for the given dimension and fan-out bounds.
// Fails if dim < 1, m < 2, or M < 2m-1 (spec.md §6).
func New[T any](dim, m, M int) (*Tree[T], error) {
	if dim < 1 {
		return nil, &InvalidConfigurationError{Detail: fmt.Sprintf("dimension must be >= 1, got %d", dim)}
	}
	if m < 2 {
		return nil, &InvalidConfigurationError{Detail: fmt.Sprintf("m must be >= 2, got %d", m)}
	}
	if M < 2*m-1 {
		return nil, &InvalidConfigurationError{Detail: fmt.Sprintf("M must be >= 2m-1 (m=%d): got M=%d", m, M)}
	}
	return &Tree[T]{
		dim:        dim,
		minEntries: m,
		maxEntries: M,
		root:       newNode[T](true, 0),
	}, nil
}

// SetLogger wires an optional debug-tracing hook; nil (the default)
// disables tracing entirely, keeping the tree's operation fully
// synchronous and side-effect free (spec.md §5).
func (t *Tree[T]) SetLogger(l *rtreelog.Logger) { t.logger = l }

// Len returns the number of stored leaf entries.
func (t *Tree[T]) Len() int { return t.size }

// IsEmpty reports whether the tree holds no entries.
func (t *Tree[T]) IsEmpty() bool { return t.size == 0 }

// Dim returns the tree's configured dimensionality.
func (t *Tree[T]) Dim() int { return t.dim }

// Insert adds value under mbr. mbr must have Dim() == t.Dim() and be
// non-empty (Lo[i] <= Hi[i] for every axis); spec.md §4.4, §7.
func (t *Tree[T]) Insert(value T, mbr BoundingBox) error {
	if err := t.validateBox(mbr); err != nil {
		return err
	}
	t.reinsertedLevels = make(map[int]bool)
	t.size++
	t.insertEntry(0, entry[T]{mbr: mbr.clone(), value: value}, true)
	return nil
}

func (t *Tree[T]) validateBox(b BoundingBox) error {
	if b.Dim() != t.dim {
		return &InvalidGeometryError{Axis: -1, Detail: fmt.Sprintf("box has %d axes, tree has %d", b.Dim(), t.dim)}
	}
	for i := 0; i < t.dim; i++ {
		if b.Lo[i] > b.Hi[i] {
			return &InvalidGeometryError{Axis: i, Detail: fmt.Sprintf("lo[%d]=%v > hi[%d]=%v", i, b.Lo[i], i, b.Hi[i])}
		}
	}
	return nil
}

// insertEntry is the shared insertion path for both fresh leaf entries
// (targetHeight 0) and entries reinserted at their original level by
// ForcedReinsert (spec.md §4.4, §4.7).
func (t *Tree[T]) insertEntry(targetHeight int, e entry[T], allowReinsert bool) {
	n := chooseSubtree(t.root, e.mbr, targetHeight)
	if e.child != nil {
		e.child.parent = n
	}
	n.entries = append(n.entries, e)

	if len(n.entries) > t.maxEntries {
		didSplit, sibling := t.overflowTreatment(n, allowReinsert)
		if didSplit {
			if n.height == t.root.height {
				t.growRoot(n, sibling)
				return // the new root has no parent MBR to adjust
			}
			if t.logger != nil {
				t.logger.Debug("rtree: split at height %d, %d/%d entries", n.height, len(n.entries), len(sibling.entries))
			}
			t.insertEntry(sibling.height+1, entry[T]{mbr: sibling.recalculateMBR(t.dim), child: sibling}, true)
		}
	}

	// Tighten every ancestor's cached MBR on the ascent (spec.md §4.4 step 3).
	for n.height < t.root.height {
		idx := n.indexInParent()
		n.parent.entries[idx].mbr = n.recalculateMBR(t.dim)
		n = n.parent
	}
}

// growRoot replaces the root with a fresh one holding InnerEntries for a
// and b, growing the tree's height by one (spec.md §4.6).
func (t *Tree[T]) growRoot(a, b *node[T]) {
	newRoot := newNode[T](false, a.height+1)
	newRoot.entries = []entry[T]{
		{mbr: a.recalculateMBR(t.dim), child: a},
		{mbr: b.recalculateMBR(t.dim), child: b},
	}
	a.parent = newRoot
	b.parent = newRoot
	t.root = newRoot
	if t.logger != nil {
		t.logger.Debug("rtree: root split, height now %d", newRoot.height)
	}
}

// Match is one (value, box) pair returned by Search.
type Match[T any] struct {
	Value T
	Box   BoundingBox
}

// Search returns every stored entry whose box intersects query
// (spec.md §4.8). Intersection is the open-style test from BoundingBox.Intersects:
// boxes that merely touch are not returned. No ordering is guaranteed.
func (t *Tree[T]) Search(query BoundingBox) []Match[T] {
	var out []Match[T]
	t.search(t.root, query, &out)
	return out
}

func (t *Tree[T]) search(n *node[T], query BoundingBox, out *[]Match[T]) {
	for i := range n.entries {
		e := &n.entries[i]
		if !query.Intersects(e.mbr) {
			continue
		}
		if n.leafLevel {
			*out = append(*out, Match[T]{Value: e.value, Box: e.mbr})
		} else {
			t.search(e.child, query, out)
		}
	}
}

// DeleteInArea removes every leaf entry whose box intersects query and
// returns how many were removed (spec.md §4.9). Ancestor MBRs are
// recomputed exactly (not incrementally shrunk) on the ascent. Nodes are
// allowed to fall below m entries; only empty inner entries are pruned,
// and the root is not collapsed even if it degenerates to a single child
// (spec.md §4.9, §9 — a deliberate, spec-sanctioned omission of CondenseTree).
func (t *Tree[T]) DeleteInArea(query BoundingBox) (int, error) {
	if query.Dim() != t.dim {
		return 0, &InvalidGeometryError{Axis: -1, Detail: fmt.Sprintf("box has %d axes, tree has %d", query.Dim(), t.dim)}
	}
	removed := t.deleteInArea(t.root, query)
	t.size -= removed
	if len(t.root.entries) == 0 {
		// A non-leaf root with zero entries can no longer be descended
		// into (ChooseSubtree/Search assume at least one entry at every
		// non-leaf node); reset to a fresh empty leaf. This is not the
		// single-child root collapse the spec leaves optional — it is
		// the only way an entirely empty tree stays usable.
		t.root = newNode[T](true, 0)
	}
	if t.logger != nil && removed > 0 {
		t.logger.Debug("rtree: deleted %d entries, %d remain", removed, t.size)
	}
	return removed, nil
}

func (t *Tree[T]) deleteInArea(n *node[T], query BoundingBox) int {
	if n.leafLevel {
		removed := 0
		write := 0
		for _, e := range n.entries {
			if query.Intersects(e.mbr) {
				removed++
				continue
			}
			n.entries[write] = e
			write++
		}
		n.entries = n.entries[:write]
		return removed
	}

	removed := 0
	for i := range n.entries {
		if query.Intersects(n.entries[i].mbr) {
			removed += t.deleteInArea(n.entries[i].child, query)
		}
	}

	write := 0
	for i := range n.entries {
		e := n.entries[i]
		if len(e.child.entries) == 0 {
			continue // prune emptied child (spec.md §4.9 step 4)
		}
		e.mbr = e.child.recalculateMBR(t.dim)
		n.entries[write] = e
		write++
	}
	n.entries = n.entries[:write]
	return removed
}

// NodeView is a read-only traversal handle over a Tree's internal nodes,
// exposed for printers/visualizers/persistence (spec.md §6). It is the only
// boundary such external collaborators are meant to use.
type NodeView[T any] struct {
	n   *node[T]
	mbr BoundingBox
}

// RootForInspection returns a read-only view of the tree's root.
func (t *Tree[T]) RootForInspection() NodeView[T] {
	return NodeView[T]{n: t.root, mbr: t.root.recalculateMBR(t.dim)}
}

// MBR returns the node's exact cover of its entries.
func (v NodeView[T]) MBR() BoundingBox { return v.mbr }

// IsLeaf reports whether the node's entries are LeafEntries.
func (v NodeView[T]) IsLeaf() bool { return v.n.leafLevel }

// Len returns the node's entry count.
func (v NodeView[T]) Len() int { return len(v.n.entries) }

// LeafEntry returns the i-th entry's value and box. Only valid if IsLeaf().
func (v NodeView[T]) LeafEntry(i int) (T, BoundingBox) {
	e := v.n.entries[i]
	return e.value, e.mbr
}

// Child returns a view of the i-th entry's child node and its cached MBR.
// Only valid if !IsLeaf().
func (v NodeView[T]) Child(i int) NodeView[T] {
	e := v.n.entries[i]
	return NodeView[T]{n: e.child, mbr: e.mbr}
}
