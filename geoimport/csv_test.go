package geoimport

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatialidx/rstartree/rtree"
)

func TestLoadParsesRows(t *testing.T) {
	csv := "0,0,1,1,alpha\n2,2,3,3,beta\n"
	recs, err := Load(strings.NewReader(csv), 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "alpha", recs[0].Label)
	assert.Equal(t, []float64{0, 0}, recs[0].Box.Lo)
	assert.Equal(t, []float64{1, 1}, recs[0].Box.Hi)
	assert.Equal(t, "beta", recs[1].Label)
}

func TestLoadRejectsInvertedBox(t *testing.T) {
	csv := "5,5,1,1,bad\n"
	_, err := Load(strings.NewReader(csv), 2)
	require.Error(t, err)
}

func TestLoadRejectsMalformedNumber(t *testing.T) {
	csv := "x,0,1,1,bad\n"
	_, err := Load(strings.NewReader(csv), 2)
	require.Error(t, err)
}

func TestInsertAllFeedsTree(t *testing.T) {
	csv := "0,0,1,1,10\n2,2,3,3,20\n"
	tr, err := rtree.New[int](2, 2, 4)
	require.NoError(t, err)

	n, err := InsertAll(tr, strings.NewReader(csv), 2, func(label string) (int, error) {
		return strconv.Atoi(label)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, tr.Len())
}

func TestInsertAllStopsAtFirstToValueError(t *testing.T) {
	csv := "0,0,1,1,notanumber\n"
	tr, err := rtree.New[int](2, 2, 4)
	require.NoError(t, err)

	_, err = InsertAll(tr, strings.NewReader(csv), 2, func(label string) (int, error) {
		return strconv.Atoi(label)
	})
	assert.Error(t, err)
}
