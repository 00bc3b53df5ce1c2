package rtree

// InvalidGeometryError is returned when a caller-supplied BoundingBox is
// malformed (spec.md §7, taxonomy item 2): lo[Axis] > hi[Axis].
// Axis is -1 when the mismatch isn't attributable to a single axis (e.g.
// mismatched slice lengths).
type InvalidGeometryError struct {
	Axis   int
	Detail string
}

func (e *InvalidGeometryError) Error() string {
	return "invalid geometry: " + e.Detail
}

// InvalidConfigurationError is returned by New when (D, m, M) don't satisfy
// D >= 1, m >= 2, M >= 2m-1 (spec.md §6, taxonomy item 1).
type InvalidConfigurationError struct {
	Detail string
}

func (e *InvalidConfigurationError) Error() string {
	return "invalid configuration: " + e.Detail
}
