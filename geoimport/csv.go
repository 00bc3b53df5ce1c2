// Package geoimport loads (value, box) pairs from CSV files, the caller
// side of the boundary rtree.Tree.Insert sits behind. It is a thin
// replacement for the AIS-sentence decoding the teacher used to turn radio
// packets into ship positions: here, the source is a CSV file instead of a
// network feed, but the shape of the job ("produce records, feed the
// tree") is the same.
package geoimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/spatialidx/rstartree/rtree"
)

// Record is one ingested row: a box of the given dimension plus an opaque
// label column carried through as a string. Callers that need a richer
// value type should parse Label themselves, or use InsertAll's toValue.
type Record struct {
	Label string
	Box   rtree.BoundingBox
}

// Load reads rows of "lo_0,...,lo_{dim-1},hi_0,...,hi_{dim-1},label" from r
// and returns one Record per row. A header row is not assumed; callers that
// have one should consume it from r before calling Load.
func Load(r io.Reader, dim int) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2*dim + 1

	var out []Record
	rowNum := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("geoimport: row %d: %w", rowNum, err)
		}
		rec, err := parseRow(row, dim)
		if err != nil {
			return nil, fmt.Errorf("geoimport: row %d: %w", rowNum, err)
		}
		out = append(out, rec)
		rowNum++
	}
	return out, nil
}

func parseRow(row []string, dim int) (Record, error) {
	lo := make([]float64, dim)
	hi := make([]float64, dim)
	for i := 0; i < dim; i++ {
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return Record{}, fmt.Errorf("lo[%d]=%q: %w", i, row[i], err)
		}
		lo[i] = v
	}
	for i := 0; i < dim; i++ {
		v, err := strconv.ParseFloat(row[dim+i], 64)
		if err != nil {
			return Record{}, fmt.Errorf("hi[%d]=%q: %w", i, row[dim+i], err)
		}
		hi[i] = v
	}
	b, err := rtree.NewBox(lo, hi)
	if err != nil {
		return Record{}, err
	}
	return Record{Label: row[2*dim], Box: b}, nil
}

// InsertAll loads dim-dimensional records from r and inserts them all into
// tree, using toValue to turn each record's Label into T. Returns the
// number of successfully inserted records; stops at the first error from
// either parsing or Tree.Insert.
func InsertAll[T any](tree *rtree.Tree[T], r io.Reader, dim int, toValue func(label string) (T, error)) (int, error) {
	records, err := Load(r, dim)
	if err != nil {
		return 0, err
	}
	for i, rec := range records {
		v, err := toValue(rec.Label)
		if err != nil {
			return i, fmt.Errorf("geoimport: record %d: %w", i, err)
		}
		if err := tree.Insert(v, rec.Box); err != nil {
			return i, fmt.Errorf("geoimport: record %d: %w", i, err)
		}
	}
	return len(records), nil
}
