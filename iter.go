package cords

import (
	"iter"

	"github.com/go-textrope/cords/metric"
)

// Runes returns an iterator over the cord's Unicode scalar values,
// walking the tree in left-to-right leaf order without copying leaf
// content beyond the rune currently being decoded.
func (c Cord) Runes() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		forEachLeafCont(c.root, func(text string) bool {
			for _, r := range text {
				if !yield(r) {
					return false
				}
			}
			return true
		})
	}
}

// Graphemes returns an iterator over the cord's extended grapheme
// clusters, using c's configured segmentation provider (or the package
// default).
func (c Cord) Graphemes() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, g := range c.GraphemeIndices() {
			if !yield(g) {
				return
			}
		}
	}
}

// GraphemeIndices returns an iterator over (byteOffset, cluster) pairs
// for the cord's extended grapheme clusters, matching the "grapheme-
// cluster iterator yielding (byte_offset, cluster) pairs" collaborator
// shape from spec.md §6.
func (c Cord) GraphemeIndices() iter.Seq2[uint64, string] {
	provider := c.config.segmenter()
	return func(yield func(uint64, string) bool) {
		var pos uint64
		forEachLeafCont(c.root, func(text string) bool {
			data := []byte(text)
			bounds := provider.GraphemeBoundaries(data)
			for i, b := range bounds {
				end := len(data)
				if i+1 < len(bounds) {
					end = bounds[i+1]
				}
				if !yield(pos+uint64(b), string(data[b:end])) {
					return false
				}
			}
			pos += uint64(len(data))
			return true
		})
	}
}

// Lines returns an iterator over the cord's lines. Each yielded line
// includes its terminating '\n', if any; the final line is yielded even
// if it has no trailing newline (matching spec.md's resolution of the
// trailing-partial-line open question).
func (c Cord) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		total := nodeLen(c.root)
		if total == 0 {
			return
		}
		var start uint64
		var pos uint64
		forEachLeafCont(c.root, func(text string) bool {
			for i := 0; i < len(text); i++ {
				pos++
				if text[i] == '\n' {
					s, _ := c.Slice(metric.Byte, start, pos)
					if !yield(s.String()) {
						return false
					}
					start = pos
				}
			}
			return true
		})
		if start < total {
			s, _ := c.Slice(metric.Byte, start, total)
			yield(s.String())
		}
	}
}

// Runes returns an iterator over the slice's Unicode scalar values.
func (s RopeSlice) Runes() iter.Seq[rune] {
	return s.Cord().Runes()
}

// Graphemes returns an iterator over the slice's extended grapheme
// clusters.
func (s RopeSlice) Graphemes() iter.Seq[string] {
	return s.Cord().Graphemes()
}
