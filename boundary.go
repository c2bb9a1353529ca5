package cords

import (
	"strings"
	"unicode/utf8"

	"github.com/go-textrope/cords/metric"
)

// checkBoundary reports ErrNotOnBoundary if position k in metric m would
// require cutting a leaf somewhere other than a valid boundary for m:
// mid-code-point for the Byte metric, or mid-grapheme-cluster for the
// Grapheme metric. Char and Line never need this check — their
// ToByteIndex conversions always land on a code-point or line start by
// construction.
//
// Known simplification (see DESIGN.md): grapheme-cluster boundaries are
// computed leaf-locally. A cord built only through FromString, Builder,
// and Grapheme/Char/Line-indexed edits never splits a cluster across a
// leaf boundary, so this check is exact for it. A Byte-indexed edit is
// permitted by Invariant 3 to land inside a grapheme cluster (only
// code-point safety is required of it); if it does, a later Grapheme
// check at that same boundary is evaluated leaf-locally and may not
// detect that the cluster was already split by an earlier Byte edit.
func (c Cord) checkBoundary(m metric.Metric, k uint64) error {
	switch {
	case m.Name() == "byte":
		leaf, off := indexNode(c.root, m, k)
		if off <= 0 || off >= len(leaf.text) {
			return nil
		}
		if utf8.RuneStart(leaf.text[off]) {
			return nil
		}
		return ErrNotOnBoundary
	case strings.HasPrefix(m.Name(), "grapheme:"):
		leaf, off := indexNode(c.root, m, k)
		if off <= 0 || off >= len(leaf.text) {
			return nil
		}
		for _, b := range c.config.segmenter().GraphemeBoundaries([]byte(leaf.text)) {
			if b == off {
				return nil
			}
		}
		return ErrNotOnBoundary
	default:
		return nil
	}
}
