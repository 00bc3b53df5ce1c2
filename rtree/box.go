package rtree

import (
	"fmt"
	"math"
)

// BoundingBox is an axis-aligned minimum bounding rectangle in D dimensions.
// Lo and Hi must have the same length; Lo[i] <= Hi[i] for a non-empty box.
type BoundingBox struct {
	Lo []float64
	Hi []float64
}

// emptyBox returns the identity box for Extend: Lo[i]=+Inf, Hi[i]=-Inf on every axis.
// Querying Area/Margin/Overlap on an empty box that hasn't since been extended
// is meaningless; callers must not do that (spec.md §4.1).
func emptyBox(dim int) BoundingBox {
	lo := make([]float64, dim)
	hi := make([]float64, dim)
	for i := range lo {
		lo[i] = math.Inf(1)
		hi[i] = math.Inf(-1)
	}
	return BoundingBox{Lo: lo, Hi: hi}
}

// NewBox builds a box from lo/hi coordinate slices, copying them.
// Returns an *InvalidGeometryError naming the first axis where lo[i] > hi[i].
func NewBox(lo, hi []float64) (BoundingBox, error) {
	if len(lo) != len(hi) {
		return BoundingBox{}, &InvalidGeometryError{Axis: -1, Detail: fmt.Sprintf("lo has %d axes, hi has %d", len(lo), len(hi))}
	}
	for i := range lo {
		if lo[i] > hi[i] {
			return BoundingBox{}, &InvalidGeometryError{Axis: i, Detail: fmt.Sprintf("lo[%d]=%v > hi[%d]=%v", i, lo[i], i, hi[i])}
		}
	}
	cLo := make([]float64, len(lo))
	cHi := make([]float64, len(hi))
	copy(cLo, lo)
	copy(cHi, hi)
	return BoundingBox{Lo: cLo, Hi: cHi}, nil
}

// Dim returns the number of axes of the box.
func (b BoundingBox) Dim() int { return len(b.Lo) }

// isEmpty reports whether b is still the Extend-identity (never extended).
func (b BoundingBox) isEmpty() bool {
	for i := range b.Lo {
		if b.Lo[i] <= b.Hi[i] {
			return false
		}
	}
	return true
}

// Area returns the product of side lengths (∏ hi[i]-lo[i]).
func (b BoundingBox) Area() float64 {
	area := 1.0
	for i := range b.Lo {
		area *= b.Hi[i] - b.Lo[i]
	}
	return area
}

// Margin returns the sum of side lengths (Σ hi[i]-lo[i]).
func (b BoundingBox) Margin() float64 {
	margin := 0.0
	for i := range b.Lo {
		margin += b.Hi[i] - b.Lo[i]
	}
	return margin
}

// Overlap returns the area of the intersection of b and o, or 0 if they
// don't intersect (or either is empty).
func (b BoundingBox) Overlap(o BoundingBox) float64 {
	if b.isEmpty() || o.isEmpty() {
		return 0
	}
	overlap := 1.0
	for i := range b.Lo {
		lo := math.Max(b.Lo[i], o.Lo[i])
		hi := math.Min(b.Hi[i], o.Hi[i])
		d := hi - lo
		if d <= 0 {
			return 0
		}
		overlap *= d
	}
	return overlap
}

// Intersects reports whether b and o share positive-area overlap.
// Boxes that merely touch along a face are NOT intersecting (open-style
// semantics, spec.md §4.1); Search and DeleteInArea must both use this.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.Overlap(o) > 0
}

// CenterDistSq returns the squared distance between the centers of b and o,
// computed in float64 throughout (not truncated through int, spec.md §9).
func (b BoundingBox) CenterDistSq(o BoundingBox) float64 {
	sum := 0.0
	for i := range b.Lo {
		d := (b.Hi[i] + b.Lo[i]) - (o.Hi[i] + o.Lo[i])
		sum += (d * d) / 4
	}
	return sum
}

// Extend returns the minimum bounding box covering both b and o.
// Extending with an empty box returns (a copy of) the other operand.
func (b BoundingBox) Extend(o BoundingBox) BoundingBox {
	if b.isEmpty() {
		return o.clone()
	}
	if o.isEmpty() {
		return b.clone()
	}
	lo := make([]float64, len(b.Lo))
	hi := make([]float64, len(b.Hi))
	for i := range b.Lo {
		lo[i] = math.Min(b.Lo[i], o.Lo[i])
		hi[i] = math.Max(b.Hi[i], o.Hi[i])
	}
	return BoundingBox{Lo: lo, Hi: hi}
}

func (b BoundingBox) clone() BoundingBox {
	lo := make([]float64, len(b.Lo))
	hi := make([]float64, len(b.Hi))
	copy(lo, b.Lo)
	copy(hi, b.Hi)
	return BoundingBox{Lo: lo, Hi: hi}
}

// Equal reports element-wise equality of Lo/Hi (spec.md §9: the corrected
// semantics, not the original's operand-with-itself typo).
func (b BoundingBox) Equal(o BoundingBox) bool {
	if len(b.Lo) != len(o.Lo) {
		return false
	}
	for i := range b.Lo {
		if b.Lo[i] != o.Lo[i] || b.Hi[i] != o.Hi[i] {
			return false
		}
	}
	return true
}

// mbrOf returns the Extend-fold of the given boxes. Panics if boxes is empty;
// callers always pass at least one entry's box.
func mbrOf(boxes []BoundingBox) BoundingBox {
	result := emptyBox(boxes[0].Dim())
	for _, b := range boxes {
		result = result.Extend(b)
	}
	return result
}
