package persist

import (
	"bytes"
	"encoding/binary"
	"io"
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

func marshalInt(w io.Writer, v int) error {
	return binary.Write(w, binary.BigEndian, int64(v))
}

func unmarshalInt(r io.Reader) (int, error) {
	var v int64
	if err := binary.Read(r, binary.BigEndian, &v); err != nil {
		return 0, err
	}
	return int(v), nil
}

func TestDumpLoadRoundTrip(t *testing.T) {
	tr, err := rtree.New[int](2, 2, 4)
	require.NoError(t, err)
	for i := 0; i < 30; i++ {
		cx := float64(i)
		require.NoError(t, tr.Insert(i, box([]float64{cx, 0}, []float64{cx + 1, 1})))
	}

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, tr, marshalInt))

	loaded, err := persistLoad(t, &buf)
	require.NoError(t, err)
	assert.Equal(t, tr.Len(), loaded.Len())

	full := loaded.Search(box([]float64{-1, -1}, []float64{100, 100}))
	assert.Len(t, full, 30)
}

func persistLoad(t *testing.T, r io.Reader) (*rtree.Tree[int], error) {
	t.Helper()
	return Load[int](r, 2, 4, unmarshalInt)
}

func TestDumpEmptyTree(t *testing.T) {
	tr, err := rtree.New[int](2, 2, 4)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, tr, marshalInt))

	loaded, err := Load[int](&buf, 2, 4, unmarshalInt)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
	assert.True(t, loaded.IsEmpty())
}
