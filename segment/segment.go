// Package segment adapts a Unicode segmentation library to the small
// collaborator interface the cords package needs: a grapheme-cluster
// iterator and a code-point counter. It is the seam the package
// specification calls out as an external collaborator rather than
// something the tree core implements itself (UAX #29 is out of scope for
// the core).
//
// The default Provider wraps github.com/rivo/uniseg.
package segment

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Provider supplies Unicode segmentation to the cords tree core.
//
// Implementations must be pure functions of their input: the tree core may
// call them concurrently from multiple goroutines reading disjoint leaves.
type Provider interface {
	// GraphemeBoundaries returns the byte offsets, in ascending order, at
	// which extended grapheme clusters begin within data. The first
	// returned offset is always 0 (unless data is empty), and len(data)
	// is not included.
	GraphemeBoundaries(data []byte) []int

	// CodePointCount returns the number of Unicode scalar values in data.
	CodePointCount(data []byte) int

	// ID identifies the provider's segmentation behavior, e.g. the
	// library and Unicode version it implements. Two providers that can
	// disagree on a cluster boundary for the same input must return
	// distinct IDs: metric.Grapheme uses it to key its measure-cache
	// entry name, so two differently-behaving providers measuring the
	// same shared subtree must never collide on one cache slot.
	ID() string
}

// Default is the package-level Provider behind metric.Grapheme, and the
// provider a Cord uses for leaf cutting, boundary checks and grapheme
// iteration unless its Config names a different one.
var Default Provider = unisegProvider{}

type unisegProvider struct{}

// GraphemeBoundaries walks data with uniseg's grapheme cluster state
// machine, recording each cluster's starting offset.
func (unisegProvider) GraphemeBoundaries(data []byte) []int {
	if len(data) == 0 {
		return nil
	}
	bounds := make([]int, 0, len(data)/2+1)
	state := -1
	pos := 0
	for len(data) > 0 {
		bounds = append(bounds, pos)
		var cluster []byte
		cluster, data, _, state = uniseg.FirstGraphemeCluster(data, state)
		pos += len(cluster)
	}
	return bounds
}

// CodePointCount counts Unicode scalar values using the standard library
// UTF-8 decoder; uniseg does not offer a faster path for this, so no
// segmentation state machine is needed here.
func (unisegProvider) CodePointCount(data []byte) int {
	return utf8.RuneCount(data)
}

// ID identifies this provider as the package's uniseg-backed default.
func (unisegProvider) ID() string {
	return "uniseg"
}
