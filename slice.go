package cords

import (
	"bytes"

	"github.com/go-textrope/cords/metric"
)

// RopeSlice borrows a Cord's tree plus a byte range [start, end). It is a
// read-only view: it never copies leaf content eagerly, only when
// String/Bytes is called. A RopeSlice remains valid for as long as the
// tree it borrows from is reachable, which — since Cords are
// persistent — is for as long as any Cord value sharing that tree is
// reachable.
type RopeSlice struct {
	root       *node
	start, end uint64
}

// Len returns the slice's length in bytes.
func (s RopeSlice) Len() uint64 {
	return s.end - s.start
}

// IsEmpty reports whether the slice has no bytes.
func (s RopeSlice) IsEmpty() bool {
	return s.end == s.start
}

// String materializes the slice's text.
func (s RopeSlice) String() string {
	if s.IsEmpty() {
		return ""
	}
	var buf bytes.Buffer
	buf.Grow(int(s.Len()))
	writeRange(&buf, s.root, s.start, s.end)
	return buf.String()
}

// Bytes materializes the slice's text as a byte slice.
func (s RopeSlice) Bytes() []byte {
	return []byte(s.String())
}

// Equal reports whether the slice's text equals other.
func (s RopeSlice) Equal(other string) bool {
	return s.String() == other
}

// Cord materializes the slice into a standalone Cord, sharing structure
// with the source tree wherever a subtree lies wholly inside the range.
func (s RopeSlice) Cord() Cord {
	if s.IsEmpty() {
		return Cord{}
	}
	_, mid := splitNode(s.root, metric.Byte, s.start)
	mid2, _ := splitNode(mid, metric.Byte, s.end-s.start)
	return Cord{root: mid2}
}

// writeRange writes n's bytes in [lo, hi) to buf, descending only into
// subtrees that overlap the range so sibling subtrees outside it are
// never visited.
func writeRange(buf *bytes.Buffer, n *node, lo, hi uint64) {
	if n == nil || lo >= hi {
		return
	}
	if n.isLeaf() {
		if lo > uint64(len(n.text)) {
			lo = uint64(len(n.text))
		}
		if hi > uint64(len(n.text)) {
			hi = uint64(len(n.text))
		}
		buf.WriteString(n.text[lo:hi])
		return
	}
	w := n.weight
	if lo < w {
		writeRange(buf, n.left, lo, min64(hi, w))
	}
	if hi > w {
		nl := uint64(0)
		if lo > w {
			nl = lo - w
		}
		writeRange(buf, n.right, nl, hi-w)
	}
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// Bytes returns an iterator over the cord's raw bytes in order.
func (c Cord) Bytes() func(yield func(byte) bool) {
	return func(yield func(byte) bool) {
		forEachLeafCont(c.root, func(text string) bool {
			for i := 0; i < len(text); i++ {
				if !yield(text[i]) {
					return false
				}
			}
			return true
		})
	}
}
