package cords

import (
	"io"
)

// Reader returns an io.Reader over the cord's bytes, grounded on the
// teacher package's Reader (reader.go).
func (c Cord) Reader() io.Reader {
	return &cordReader{cord: c}
}

type cordReader struct {
	cord   Cord
	cursor uint64
}

func (cr *cordReader) Read(p []byte) (n int, err error) {
	total := cr.cord.ByteLen()
	if cr.cursor >= total {
		return 0, io.EOF
	}
	l := uint64(len(p))
	if cr.cursor+l > total {
		l = total - cr.cursor
	}
	// Built directly rather than through Slice: a chunk may end inside a
	// multi-byte code point, which Slice rejects with ErrNotOnBoundary.
	s := RopeSlice{root: cr.cord.root, start: cr.cursor, end: cr.cursor + l}
	n = copy(p, s.Bytes())
	cr.cursor += uint64(n)
	return n, nil
}

// WriteTo writes the cord's bytes to w, implementing io.WriterTo. Unlike
// Reader, this walks leaves directly rather than through an intermediate
// Slice per chunk.
func (c Cord) WriteTo(w io.Writer) (int64, error) {
	var total int64
	var werr error
	forEachLeafCont(c.root, func(text string) bool {
		n, err := io.WriteString(w, text)
		total += int64(n)
		if err != nil {
			werr = err
			return false
		}
		return true
	})
	return total, werr
}
