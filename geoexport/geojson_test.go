package geoexport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatialidx/rstartree/rtree"
)

func box(lo, hi []float64) rtree.BoundingBox {
	b, err := rtree.NewBox(lo, hi)
	if err != nil {
		panic(err)
	}
	return b
}

func TestDumpRejectsNon2DTree(t *testing.T) {
	tr, err := rtree.New[int](3, 2, 4)
	require.NoError(t, err)
	_, err = Dump(tr)
	assert.Error(t, err)
}

func TestDumpProducesValidFeatureCollection(t *testing.T) {
	tr, err := rtree.New[string](2, 2, 4)
	require.NoError(t, err)
	require.NoError(t, tr.Insert("a", box([]float64{0, 0}, []float64{1, 1})))
	require.NoError(t, tr.Insert("b", box([]float64{5, 5}, []float64{6, 6})))

	out, err := Dump(tr)
	require.NoError(t, err)

	var parsed featureCollection
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, "FeatureCollection", parsed.Type)
	assert.NotEmpty(t, parsed.Features)

	var points, polys int
	for _, f := range parsed.Features {
		switch f.Geometry.Type {
		case "Point":
			points++
		case "Polygon":
			polys++
		}
	}
	assert.Equal(t, 2, points)
	// two entries fit in a lone leaf root, whose own MBR is not emitted
	assert.Equal(t, 0, polys)
}
