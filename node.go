package cords

import (
	"sync"
	"sync/atomic"

	"github.com/go-textrope/cords/metric"
	"github.com/go-textrope/cords/segment"
)

// node is either a leaf (text != "" or explicitly the empty leaf, left ==
// right == nil) or a branch (left and right both non-nil). Nodes are
// immutable after construction: every field below except the measure
// cache is written exactly once, by the constructor that created the
// node, and never touched again; the cache only gains entries that are a
// deterministic function of the immutable fields. This is what lets nodes
// be shared freely between cords without locking.
type node struct {
	text string // leaf payload; meaningless on a branch

	left, right *node // nil on a leaf

	weight uint64 // byte length of left subtree; branches only
	length uint64 // byte length of the whole subtree
	depth  int    // 1 + max(child depths); 0 on a leaf

	cache measureCache // lazily populated per-metric measure cache
}

// measureCache memoizes Metric.Measure results for a branch's subtree,
// keyed by metric name. It is populated lazily: a branch that is never
// queried in a given metric never pays for it. Entries are stored with
// atomics rather than a mutex so concurrent readers measuring the same
// node in the same metric never block each other; at worst two
// goroutines compute the same (deterministic) value once each.
type measureCache struct {
	m sync.Map // string -> *atomic.Uint64, sentinel ^uint64(0) means "absent"
}

const cacheAbsent = ^uint64(0)

func (c *measureCache) load(name string) (uint64, bool) {
	v, ok := c.m.Load(name)
	if !ok {
		return 0, false
	}
	slot := v.(*atomic.Uint64)
	val := slot.Load()
	if val == cacheAbsent {
		return 0, false
	}
	return val, true
}

func (c *measureCache) store(name string, value uint64) {
	if value == cacheAbsent {
		// Vanishingly unlikely real measure; skip caching it rather than
		// special-case the sentinel further.
		return
	}
	slot := new(atomic.Uint64)
	slot.Store(value)
	c.m.Store(name, slot)
}

func (n *node) isLeaf() bool {
	return n == nil || (n.left == nil && n.right == nil)
}

func nodeLen(n *node) uint64 {
	if n == nil {
		return 0
	}
	return n.length
}

func nodeDepth(n *node) int {
	if n == nil {
		return 0
	}
	return n.depth
}

// newLeafNode builds a leaf node from a string already known to satisfy
// the leaf invariants (valid UTF-8, at most the configured soft maximum).
func newLeafNode(s string) *node {
	if s == "" {
		return emptyLeaf
	}
	return &node{text: s, length: uint64(len(s))}
}

// newBranch builds a branch over two non-nil, non-empty children. Callers
// needing empty-side handling should use concat instead.
func newBranch(left, right *node) *node {
	return &node{
		left:   left,
		right:  right,
		weight: nodeLen(left),
		length: nodeLen(left) + nodeLen(right),
		depth:  1 + max(nodeDepth(left), nodeDepth(right)),
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// concat joins left and right into a single node in O(1), per Invariant 1
// and 2. If either side is empty, the other is returned unchanged so
// repeated small appends do not grow spurious branches over the empty
// leaf.
func concat(left, right *node) *node {
	tracer().Debugf("concat(len=%d, len=%d)", nodeLen(left), nodeLen(right))
	if left == nil || (left.isLeaf() && left.text == "") {
		return right
	}
	if right == nil || (right.isLeaf() && right.text == "") {
		return left
	}
	return newBranch(left, right)
}

// measure returns the m-length of n, consulting and populating the
// branch's measure cache as needed. Leaves are always measured directly
// from their bytes since they carry no cache (they are small by
// construction, so recomputation is cheap — see Leaf storage design).
func measure(n *node, m metric.Metric) uint64 {
	if n == nil {
		return m.Zero()
	}
	if n.isLeaf() {
		return m.Measure([]byte(n.text))
	}
	if v, ok := n.cache.load(m.Name()); ok {
		tracer().Debugf("measure(%s) cache hit = %d", m.Name(), v)
		return v
	}
	v := m.Combine(measure(n.left, m), measure(n.right, m))
	tracer().Debugf("measure(%s) combined = %d", m.Name(), v)
	n.cache.store(m.Name(), v)
	return v
}

// indexNode descends the tree to find the leaf containing position k in
// metric m, returning that leaf and the byte offset within it. A k past
// the end of the tree clamps to the last leaf's end, per the spec's
// "position past the end rather than undefined behavior" contract; bounds
// checking against the caller's intent is the façade's job.
func indexNode(n *node, m metric.Metric, k uint64) (*node, int) {
	tracer().Debugf("indexNode(%s, %d)", m.Name(), k)
	if n == nil {
		return emptyLeaf, 0
	}
	if n.isLeaf() {
		return n, m.ToByteIndex([]byte(n.text), k)
	}
	lm := measure(n.left, m)
	if k < lm {
		return indexNode(n.left, m, k)
	}
	return indexNode(n.right, m, k-lm)
}

// splitNode splits n at position k in metric m, returning the left and
// right subtrees. Complexity is O(depth): one allocation per branch on
// the spine from the root to the split leaf.
func splitNode(n *node, m metric.Metric, k uint64) (*node, *node) {
	tracer().Debugf("splitNode(%s, %d) on subtree len=%d", m.Name(), k, nodeLen(n))
	if n == nil {
		return emptyLeaf, emptyLeaf
	}
	if n.isLeaf() {
		off := m.ToByteIndex([]byte(n.text), k)
		if off <= 0 {
			return emptyLeaf, n
		}
		if off >= len(n.text) {
			return n, emptyLeaf
		}
		return newLeafNode(n.text[:off]), newLeafNode(n.text[off:])
	}
	lm := measure(n.left, m)
	if k < lm {
		l, r := splitNode(n.left, m, k)
		return l, concat(r, n.right)
	}
	l, r := splitNode(n.right, m, k-lm)
	return concat(n.left, l), r
}

// insertNode splits n at metric-m position k and reassembles with s spliced in
// between, per spec.md's insert-as-split-concat-concat recipe. The new
// fragment is cut using maxLeafBytes/segmenter so an inserted string obeys
// the same Config a caller built n with, rather than the package
// defaults.
func insertNode(n *node, m metric.Metric, k uint64, s string, maxLeafBytes int, segmenter segment.Provider) (*node, error) {
	tracer().Debugf("insertNode(%s, %d, len=%d)", m.Name(), k, len(s))
	parts, err := splitToLeaves(s, maxLeafBytes, segmenter)
	if err != nil {
		return n, err
	}
	var mid *node = emptyLeaf
	for _, p := range parts {
		mid = concat(mid, newLeafNode(p))
	}
	l, r := splitNode(n, m, k)
	return concat(l, concat(mid, r)), nil
}

// deleteNode removes [from, to) in metric m via two splits and discards
// the middle piece.
func deleteNode(n *node, m metric.Metric, from, to uint64) *node {
	tracer().Debugf("deleteNode(%s, %d, %d)", m.Name(), from, to)
	l, rest := splitNode(n, m, from)
	_, r := splitNode(rest, m, to-from)
	return concat(l, r)
}
