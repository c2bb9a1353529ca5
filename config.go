package cords

import "github.com/go-textrope/cords/segment"

// Config configures the behaviour of a Cord beyond its content, grounded
// on the teacher package's btree.Config[S] pattern (btree/config.go):
// policy knobs passed once at construction rather than threaded through
// every call.
type Config struct {
	// AutoRebalance enables automatic rebalancing after edits that push a
	// cord's depth past the balance threshold (the "rebalance" flag in
	// spec.md §6). When false, rebalancing only happens on an explicit
	// Rebalance call.
	AutoRebalance bool

	// BalanceFactor is the slack multiplier k in "depth > k*log2(len)"
	// used to decide when an edit should trigger an automatic rebalance.
	// Zero selects the package default of 1.0 (rebalance as soon as
	// Boehm's criterion is violated).
	BalanceFactor float64

	// MaxLeafBytes is the soft maximum leaf size in bytes. Zero selects
	// the package default (1024).
	MaxLeafBytes int

	// Segmenter supplies grapheme-cluster and code-point segmentation.
	// Nil selects segment.Default (github.com/rivo/uniseg).
	Segmenter segment.Provider

	// Atomic selects the spec's "atomic" sharing policy: ropes built with
	// Atomic set are documented as safe to hand to multiple goroutines,
	// including concurrent Cord.Insert/Split calls on copies sharing
	// subtrees. It has no effect on generated code: node sharing is
	// already garbage-collected rather than refcounted, and the
	// per-metric measure cache already uses lock-free atomics
	// unconditionally (see node.go, measureCache). Atomic exists for API
	// parity with the spec's two-axis configuration model; see
	// DESIGN.md for why the two axes collapsed into one code path.
	Atomic bool
}

func (c Config) maxLeafBytes() int {
	if c.MaxLeafBytes > 0 {
		return c.MaxLeafBytes
	}
	return defaultMaxLeafBytes
}

func (c Config) balanceFactor() float64 {
	if c.BalanceFactor > 0 {
		return c.BalanceFactor
	}
	return 1.0
}

func (c Config) segmenter() segment.Provider {
	if c.Segmenter != nil {
		return c.Segmenter
	}
	return segment.Default
}

// DefaultConfig is the Config used by FromString, New, and NewBuilder: no
// automatic rebalancing, the package-default leaf size, and uniseg-backed
// segmentation.
var DefaultConfig = Config{}
