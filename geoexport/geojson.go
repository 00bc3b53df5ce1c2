// Package geoexport renders an rtree.Tree's node boxes as GeoJSON, for
// feeding into an external viewer. It only reads through
// rtree.Tree.RootForInspection and never touches tree internals directly.
package geoexport

import (
	"encoding/json"
	"fmt"

	"github.com/spatialidx/rstartree/rtree"
)

// feature mirrors the GeoJSON Feature object the teacher's code built by
// hand with string concatenation; here it's a real struct marshaled with
// encoding/json, which escapes properties correctly by construction.
type feature struct {
	Type       string                 `json:"type"`
	ID         int                    `json:"id"`
	Geometry   geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// featureCollection is the top-level GeoJSON object.
type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

// polygonRing returns the GeoJSON ring (closed, 5 points) for a 2-D box's
// footprint on axes 0 and 1. Coordinates are emitted [x, y] per the
// GeoJSON convention, same axis order the teacher used for [long, lat].
func polygonRing(b rtree.BoundingBox) [][]float64 {
	lo, hi := b.Lo, b.Hi
	return [][]float64{
		{lo[0], lo[1]},
		{hi[0], lo[1]},
		{hi[0], hi[1]},
		{lo[0], hi[1]},
		{lo[0], lo[1]},
	}
}

// Dump walks the tree's nodes (via RootForInspection) and returns a GeoJSON
// FeatureCollection string: one Polygon feature per non-root node (its MBR
// as cached in the parent), and one Point feature per leaf entry (its box
// center). The root's own MBR is not emitted, so a tree whose root is a leaf
// yields Point features only. Requires a 2-D tree (tree.Dim() == 2); any
// other dimension is rejected with an error, with no projection onto axes.
func Dump[T any](tree *rtree.Tree[T]) (string, error) {
	if tree.Dim() != 2 {
		return "", fmt.Errorf("geoexport: Dump requires a 2-D tree, got dim=%d", tree.Dim())
	}
	var features []feature
	id := 0
	var walk func(v rtree.NodeView[T], depth int)
	walk = func(v rtree.NodeView[T], depth int) {
		if v.IsLeaf() {
			for i := 0; i < v.Len(); i++ {
				_, b := v.LeafEntry(i)
				cx := (b.Lo[0] + b.Hi[0]) / 2
				cy := (b.Lo[1] + b.Hi[1]) / 2
				features = append(features, feature{
					Type: "Feature",
					ID:   id,
					Geometry: geometry{
						Type:        "Point",
						Coordinates: []float64{cx, cy},
					},
					Properties: map[string]interface{}{"depth": depth, "kind": "leaf"},
				})
				id++
			}
			return
		}
		for i := 0; i < v.Len(); i++ {
			child := v.Child(i)
			features = append(features, feature{
				Type: "Feature",
				ID:   id,
				Geometry: geometry{
					Type:        "Polygon",
					Coordinates: [][][]float64{polygonRing(child.MBR())},
				},
				Properties: map[string]interface{}{"depth": depth, "kind": "node"},
			})
			id++
			walk(child, depth+1)
		}
	}
	walk(tree.RootForInspection(), 0)

	out, err := json.Marshal(featureCollection{Type: "FeatureCollection", Features: features})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
