package cords

import (
	"unicode/utf8"

	"github.com/go-textrope/cords/segment"
)

// defaultMaxLeafBytes is the soft maximum leaf size in bytes. Constructors,
// the Builder and Insert cut longer input at grapheme-cluster boundaries
// so no leaf grows past this size (the boundary may push a leaf slightly
// under it), except that a single grapheme cluster longer than the
// maximum is kept whole in one leaf. Rebalancing regroups existing leaves
// and never cuts them. See Config.MaxLeafBytes to override.
const defaultMaxLeafBytes = 1024

// emptyLeaf is the distinguished empty-string leaf; its zero value
// (text == "") already behaves this way, so it exists only for clarity at
// call sites.
var emptyLeaf = &node{text: ""}

// splitToLeaves cuts text into pieces no longer than maxBytes, choosing
// cut points on grapheme-cluster boundaries as reported by provider. This
// is the sole place leaf boundaries are chosen at construction time,
// matching Invariant 3 (leaves fall on code-point boundaries, and on
// grapheme-cluster boundaries when a construction helper picks them).
func splitToLeaves(text string, maxBytes int, provider segment.Provider) ([]string, error) {
	if len(text) == 0 {
		return nil, nil
	}
	if !utf8.ValidString(text) {
		return nil, ErrInvalidUTF8
	}
	if maxBytes <= 0 {
		maxBytes = defaultMaxLeafBytes
	}
	if len(text) <= maxBytes {
		return []string{text}, nil
	}
	data := []byte(text)
	bounds := provider.GraphemeBoundaries(data)
	parts := make([]string, 0, len(text)/maxBytes+1)
	start := 0
	for start < len(data) {
		limit := start + maxBytes
		cut := start
		for _, b := range bounds {
			if b <= start {
				continue
			}
			if b > limit {
				break
			}
			cut = b
		}
		if len(data) <= limit {
			cut = len(data)
		}
		if cut == start {
			// No boundary falls within maxBytes of start: the next
			// cluster itself exceeds maxBytes. Emit it whole rather than
			// tearing it apart.
			next := nextBoundaryAfter(bounds, start)
			if next <= start {
				next = len(data)
			}
			cut = next
		}
		parts = append(parts, string(data[start:cut]))
		start = cut
	}
	return parts, nil
}

func nextBoundaryAfter(bounds []int, start int) int {
	for _, b := range bounds {
		if b > start {
			return b
		}
	}
	return -1
}

// defaultSegmenter returns the package-wide default segmentation
// provider, segment.Default. Cord construction paths do not call it: they
// resolve their provider through Config.segmenter, which falls back to
// the same default.
func defaultSegmenter() segment.Provider {
	return segment.Default
}
