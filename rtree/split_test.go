package rtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leafEntries(boxes ...BoundingBox) []entry[int] {
	out := make([]entry[int], len(boxes))
	for i, b := range boxes {
		out[i] = entry[int]{mbr: b, value: i}
	}
	return out
}

func TestSplitNodeDividesAllEntries(t *testing.T) {
	n := newNode[int](true, 0)
	n.entries = leafEntries(
		box([]float64{0, 0}, []float64{1, 1}),
		box([]float64{10, 0}, []float64{11, 1}),
		box([]float64{0, 10}, []float64{1, 11}),
		box([]float64{10, 10}, []float64{11, 11}),
		box([]float64{5, 5}, []float64{6, 6}),
	)
	sibling := splitNode(n, 2, 2)
	require.NotNil(t, sibling)
	assert.Equal(t, 5, len(n.entries)+len(sibling.entries))
	assert.GreaterOrEqual(t, len(n.entries), 2)
	assert.GreaterOrEqual(t, len(sibling.entries), 2)
	assert.Equal(t, n.leafLevel, sibling.leafLevel)
	assert.Equal(t, n.height, sibling.height)
}

func TestSplitNodeSeparatesClusters(t *testing.T) {
	// Two tight clusters far apart along X: an axis-aware split should put
	// them in separate groups rather than interleaving them.
	n := newNode[int](true, 0)
	n.entries = leafEntries(
		box([]float64{0, 0}, []float64{1, 1}),
		box([]float64{0, 2}, []float64{1, 3}),
		box([]float64{0, 4}, []float64{1, 5}),
		box([]float64{100, 0}, []float64{101, 1}),
		box([]float64{100, 2}, []float64{101, 3}),
		box([]float64{100, 4}, []float64{101, 5}),
	)
	sibling := splitNode(n, 3, 2)

	leftMaxX := groupMBR(n.entries).Hi[0]
	rightMinX := groupMBR(sibling.entries).Lo[0]
	if leftMaxX > rightMinX {
		leftMaxX, rightMinX = groupMBR(sibling.entries).Hi[0], groupMBR(n.entries).Lo[0]
	}
	assert.Less(t, leftMaxX, rightMinX)
}

func TestSplitNodeReparentsChildren(t *testing.T) {
	parent := newNode[int](false, 1)
	c1 := newNode[int](true, 0)
	c2 := newNode[int](true, 0)
	c3 := newNode[int](true, 0)
	c4 := newNode[int](true, 0)
	c1.entries = leafEntries(box([]float64{0, 0}, []float64{1, 1}))
	c2.entries = leafEntries(box([]float64{10, 0}, []float64{11, 1}))
	c3.entries = leafEntries(box([]float64{0, 10}, []float64{1, 11}))
	c4.entries = leafEntries(box([]float64{10, 10}, []float64{11, 11}))
	parent.entries = []entry[int]{
		{mbr: box([]float64{0, 0}, []float64{1, 1}), child: c1},
		{mbr: box([]float64{10, 0}, []float64{11, 1}), child: c2},
		{mbr: box([]float64{0, 10}, []float64{1, 11}), child: c3},
		{mbr: box([]float64{10, 10}, []float64{11, 11}), child: c4},
	}
	for _, e := range parent.entries {
		e.child.parent = parent
	}

	sibling := splitNode(parent, 2, 2)
	for _, e := range parent.entries {
		assert.Same(t, parent, e.child.parent)
	}
	for _, e := range sibling.entries {
		assert.Same(t, sibling, e.child.parent)
	}
}

func TestMarginSumPrefersAxisWithSeparation(t *testing.T) {
	// Four boxes spread along X, all with the same Y extent, listed out of X
	// order: sorting by Y keeps that interleaved order (all ties, stable
	// sort), so the Y axis has the larger margin sum (808 against 408).
	spreadX := leafEntries(
		box([]float64{300, 0}, []float64{301, 1}),
		box([]float64{0, 0}, []float64{1, 1}),
		box([]float64{200, 0}, []float64{201, 1}),
		box([]float64{100, 0}, []float64{101, 1}),
	)
	xSum := marginSum(sortedCopy(spreadX, 0, true), 2) + marginSum(sortedCopy(spreadX, 0, false), 2)
	ySum := marginSum(sortedCopy(spreadX, 1, true), 2) + marginSum(sortedCopy(spreadX, 1, false), 2)
	assert.Less(t, xSum, ySum)

	byLo, _ := chooseSplitAxis(spreadX, 2, 2)
	// every input entry is in the result, sorted by Lo along X (the chosen axis)
	assert.Equal(t, len(spreadX), len(byLo))
	los := make([]float64, len(byLo))
	for i, e := range byLo {
		los[i] = e.mbr.Lo[0]
	}
	assert.Equal(t, []float64{0, 100, 200, 300}, los)
}
