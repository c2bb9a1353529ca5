// Package metric defines the measurement capability the cords tree is
// parameterized over: a pluggable way to count and index into text other
// than by raw byte offset.
//
// A Metric is a commutative monoid over non-negative integers (Zero,
// Combine) together with two leaf-local operations, Measure and
// ToByteIndex. Branch nodes of a cord cache Measure sums and combine them
// with Combine when navigating; leaves are measured directly from their
// bytes. This mirrors the "free monoid" framing the cords tree uses for
// its own byte/char/line accounting, generalized to an open set of units.
package metric

import (
	"unicode/utf8"

	"github.com/go-textrope/cords/segment"
)

// Metric measures lengths in some unit over UTF-8 text fragments.
//
// All methods must be pure and safe for concurrent use: the tree core may
// call them from multiple goroutines measuring disjoint leaves.
type Metric interface {
	// Name identifies the metric; cords uses it as a cache key, so two
	// distinct Metric implementations must not share a Name.
	Name() string

	// Zero is the identity element of Combine.
	Zero() uint64

	// Combine is an associative, commutative-in-practice-for-shipped-
	// metrics reduction of two adjacent measures (left subtree, right
	// subtree) into one.
	Combine(left, right uint64) uint64

	// Measure returns the metric length of leaf.
	Measure(leaf []byte) uint64

	// ToByteIndex converts a measure k, 0 <= k <= Measure(leaf), into the
	// byte offset within leaf at which the k-th unit starts. For Byte,
	// Char and Grapheme, ToByteIndex(leaf, Measure(leaf)) equals
	// len(leaf); for Line it is the offset just past the leaf's last
	// newline, which equals len(leaf) only when the leaf ends with '\n'.
	// The result must always fall on a valid boundary for the metric's unit
	// (UTF-8 boundary for Byte/Char, grapheme-cluster boundary for
	// Grapheme, line start for Line).
	ToByteIndex(leaf []byte, k uint64) int
}

// byteMetric counts raw bytes. It is the classical rope weight metric.
type byteMetric struct{}

// Byte is the Metric counting UTF-8 bytes.
var Byte Metric = byteMetric{}

func (byteMetric) Name() string                 { return "byte" }
func (byteMetric) Zero() uint64                  { return 0 }
func (byteMetric) Combine(l, r uint64) uint64    { return l + r }
func (byteMetric) Measure(leaf []byte) uint64    { return uint64(len(leaf)) }
func (byteMetric) ToByteIndex(leaf []byte, k uint64) int {
	if k > uint64(len(leaf)) {
		return len(leaf)
	}
	return int(k)
}

// charMetric counts Unicode scalar values (runes).
type charMetric struct{}

// Char is the Metric counting Unicode scalar values.
var Char Metric = charMetric{}

func (charMetric) Name() string              { return "char" }
func (charMetric) Zero() uint64               { return 0 }
func (charMetric) Combine(l, r uint64) uint64 { return l + r }

func (charMetric) Measure(leaf []byte) uint64 {
	return uint64(utf8.RuneCount(leaf))
}

func (charMetric) ToByteIndex(leaf []byte, k uint64) int {
	i, n := 0, uint64(0)
	for i < len(leaf) {
		if n == k {
			return i
		}
		_, size := utf8.DecodeRune(leaf[i:])
		i += size
		n++
	}
	return len(leaf)
}

// graphemeMetric counts extended grapheme clusters, delegating
// segmentation to a segment.Provider (uniseg by default).
type graphemeMetric struct {
	provider segment.Provider
}

// Grapheme is the Metric counting extended grapheme clusters using the
// package-default segmentation provider.
var Grapheme Metric = graphemeMetric{provider: segment.Default}

// WithProvider returns a Grapheme-like Metric backed by an alternative
// segment.Provider, for tests or hosts that want a different Unicode
// version or a stub segmenter.
func WithProvider(p segment.Provider) Metric {
	return graphemeMetric{provider: p}
}

// Name includes the backing provider's ID so that measuring the same
// shared subtree through two differently-behaving providers (e.g. the
// package default versus a custom WithProvider) never collides on the
// same measure-cache entry: see segment.Provider.ID.
func (g graphemeMetric) Name() string             { return "grapheme:" + g.provider.ID() }
func (graphemeMetric) Zero() uint64               { return 0 }
func (graphemeMetric) Combine(l, r uint64) uint64 { return l + r }

func (g graphemeMetric) Measure(leaf []byte) uint64 {
	return uint64(len(g.provider.GraphemeBoundaries(leaf)))
}

func (g graphemeMetric) ToByteIndex(leaf []byte, k uint64) int {
	bounds := g.provider.GraphemeBoundaries(leaf)
	if k >= uint64(len(bounds)) {
		return len(leaf)
	}
	return bounds[k]
}

// lineMetric counts '\n'-terminated lines: the measure of a leaf is the
// number of newline bytes it contains. Indexing by Line(k) yields the
// byte offset of the start of the (k+1)-th line.
type lineMetric struct{}

// Line is the Metric counting newline-delimited lines.
var Line Metric = lineMetric{}

func (lineMetric) Name() string              { return "line" }
func (lineMetric) Zero() uint64               { return 0 }
func (lineMetric) Combine(l, r uint64) uint64 { return l + r }

func (lineMetric) Measure(leaf []byte) uint64 {
	var n uint64
	for _, b := range leaf {
		if b == '\n' {
			n++
		}
	}
	return n
}

func (lineMetric) ToByteIndex(leaf []byte, k uint64) int {
	if k == 0 {
		return 0
	}
	var n uint64
	for i, b := range leaf {
		if b == '\n' {
			n++
			if n == k {
				return i + 1
			}
		}
	}
	return len(leaf)
}
