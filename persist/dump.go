// Package persist writes and reads a tree's contents as a simple
// pre-order binary dump (spec.md §6, informative layout). This is a
// debugging aid, not a format contract: endianness and exact byte shapes
// are implementation choices, not guaranteed to remain stable.
package persist

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/spatialidx/rstartree/rtree"
)

const (
	leafFlag  uint8 = 1
	innerFlag uint8 = 0
)

// MarshalValue writes a single value's payload. Called once per leaf entry.
type MarshalValue[T any] func(w io.Writer, v T) error

// UnmarshalValue reads a single value's payload back.
type UnmarshalValue[T any] func(r io.Reader) (T, error)

// Dump writes tree's entire contents to w as a pre-order binary stream:
// the dimension (u32), then for every node, an entry count (u64), a
// leaf-level flag (u8), the node's MBR (2*Dim f64s), then each entry — leaf
// entries as 2*Dim f64s plus the caller's marshaled value, inner entries as
// a recursive subtree.
func Dump[T any](w io.Writer, tree *rtree.Tree[T], marshal MarshalValue[T]) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.BigEndian, uint32(tree.Dim())); err != nil {
		return err
	}
	if err := dumpNode(bw, tree.RootForInspection(), tree.Dim(), marshal); err != nil {
		return err
	}
	return bw.Flush()
}

func dumpNode[T any](w io.Writer, v rtree.NodeView[T], dim int, marshal MarshalValue[T]) error {
	if err := binary.Write(w, binary.BigEndian, uint64(v.Len())); err != nil {
		return err
	}
	flag := innerFlag
	if v.IsLeaf() {
		flag = leafFlag
	}
	if err := binary.Write(w, binary.BigEndian, flag); err != nil {
		return err
	}
	if err := writeBox(w, v.MBR()); err != nil {
		return err
	}

	for i := 0; i < v.Len(); i++ {
		if v.IsLeaf() {
			val, box := v.LeafEntry(i)
			if err := writeBox(w, box); err != nil {
				return err
			}
			if err := marshal(w, val); err != nil {
				return err
			}
		} else {
			if err := dumpNode(w, v.Child(i), dim, marshal); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeBox(w io.Writer, b rtree.BoundingBox) error {
	for _, x := range b.Lo {
		if err := binary.Write(w, binary.BigEndian, x); err != nil {
			return err
		}
	}
	for _, x := range b.Hi {
		if err := binary.Write(w, binary.BigEndian, x); err != nil {
			return err
		}
	}
	return nil
}

func readBox(r io.Reader, dim int) (rtree.BoundingBox, error) {
	lo := make([]float64, dim)
	hi := make([]float64, dim)
	for i := range lo {
		if err := binary.Read(r, binary.BigEndian, &lo[i]); err != nil {
			return rtree.BoundingBox{}, err
		}
	}
	for i := range hi {
		if err := binary.Read(r, binary.BigEndian, &hi[i]); err != nil {
			return rtree.BoundingBox{}, err
		}
	}
	return rtree.NewBox(lo, hi)
}

// Load reads a stream written by Dump and inserts every leaf entry it finds
// into a freshly created Tree with the given fan-out bounds. The dimension
// is read from the stream, not passed by the caller.
func Load[T any](r io.Reader, m, M int, unmarshal UnmarshalValue[T]) (*rtree.Tree[T], error) {
	br := bufio.NewReader(r)
	var dim32 uint32
	if err := binary.Read(br, binary.BigEndian, &dim32); err != nil {
		return nil, err
	}
	dim := int(dim32)

	tree, err := rtree.New[T](dim, m, M)
	if err != nil {
		return nil, err
	}
	if err := loadNode(br, dim, tree, unmarshal); err != nil {
		return nil, fmt.Errorf("persist: %w", err)
	}
	return tree, nil
}

func loadNode[T any](r io.Reader, dim int, tree *rtree.Tree[T], unmarshal UnmarshalValue[T]) error {
	var count uint64
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return err
	}
	var flag uint8
	if err := binary.Read(r, binary.BigEndian, &flag); err != nil {
		return err
	}
	// node MBR is recomputed on Insert, not trusted verbatim; it is skipped
	// unvalidated because an empty root's MBR is the inverted Extend identity.
	nodeMBR := make([]float64, 2*dim)
	if err := binary.Read(r, binary.BigEndian, nodeMBR); err != nil {
		return err
	}

	for i := uint64(0); i < count; i++ {
		if flag == leafFlag {
			box, err := readBox(r, dim)
			if err != nil {
				return err
			}
			val, err := unmarshal(r)
			if err != nil {
				return err
			}
			if err := tree.Insert(val, box); err != nil {
				return err
			}
		} else {
			if err := loadNode(r, dim, tree, unmarshal); err != nil {
				return err
			}
		}
	}
	return nil
}
