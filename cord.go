package cords

import (
	"bytes"
	"unicode/utf8"

	"github.com/go-textrope/cords/metric"
)

// Cord stores immutable UTF-8 text in a persistent, balanced binary tree
// of fragments (see package doc for the rationale).
//
// A Cord created by
//
//	var c cords.Cord
//
// is a valid value and behaves like the empty string. The zero value is
// always safe to use.
//
// Methods are parameterized by a metric.Metric so the same tree can be
// addressed by byte offset, Unicode scalar value, grapheme cluster, or
// line — see package metric.
type Cord struct {
	root   *node
	config Config
}

// New returns an empty Cord using the default configuration.
func New() Cord {
	return Cord{}
}

// NewWithConfig returns an empty Cord using cfg.
func NewWithConfig(cfg Config) Cord {
	return Cord{config: cfg}
}

// FromString creates a Cord from a Go string using the default
// configuration.
//
// The input must be valid UTF-8; invalid input returns ErrInvalidUTF8 via
// the two-value form FromStringChecked, while FromString itself panics,
// matching the teacher package's FromString contract (constructing from
// invalid UTF-8 is a programmer error, not a recoverable one).
func FromString(s string) Cord {
	c, err := FromStringChecked(s)
	assert(err == nil, "FromString requires valid UTF-8 input")
	return c
}

// FromStringChecked creates a Cord from a Go string, returning
// ErrInvalidUTF8 instead of panicking on malformed input.
func FromStringChecked(s string) (Cord, error) {
	return NewWithConfig(DefaultConfig).fromString(s)
}

func (c Cord) fromString(s string) (Cord, error) {
	parts, err := splitToLeaves(s, c.config.maxLeafBytes(), c.config.segmenter())
	if err != nil {
		return Cord{}, err
	}
	var root *node = emptyLeaf
	for _, p := range parts {
		root = concat(root, newLeafNode(p))
	}
	return Cord{root: root, config: c.config}, nil
}

// FromStrings concatenates a sequence of strings into a single Cord,
// grounded on the "from iterator of strings" construction form spec.md
// §6 calls for.
func FromStrings(seq func(yield func(string) bool)) Cord {
	var b Builder
	seq(func(s string) bool {
		assert(b.AppendString(s) == nil, "FromStrings requires valid UTF-8 fragments")
		return true
	})
	return b.Cord()
}

// String returns the cord's full text as a Go string. This allocates a
// buffer sized to the cord's byte length and copies every leaf into it.
func (c Cord) String() string {
	if c.root == nil {
		return ""
	}
	if c.root.isLeaf() {
		return c.root.text
	}
	var buf bytes.Buffer
	buf.Grow(int(nodeLen(c.root)))
	writeNode(&buf, c.root)
	return buf.String()
}

func writeNode(buf *bytes.Buffer, n *node) {
	if n == nil {
		return
	}
	if n.isLeaf() {
		buf.WriteString(n.text)
		return
	}
	writeNode(buf, n.left)
	writeNode(buf, n.right)
}

// IsEmpty reports whether the cord has no bytes.
func (c Cord) IsEmpty() bool {
	return nodeLen(c.root) == 0
}

// Len returns the cord's length in the given metric, e.g. Len(metric.Byte)
// for byte length or Len(metric.Grapheme) for grapheme-cluster count.
func (c Cord) Len(m metric.Metric) uint64 {
	return measure(c.root, m)
}

// ByteLen returns the cord's length in bytes; equivalent to
// Len(metric.Byte) but avoids an interface call at the common call site.
func (c Cord) ByteLen() uint64 {
	return nodeLen(c.root)
}

// depth returns the height of the cord's tree; used by tests asserting
// the balance invariant.
func (c Cord) depth() int {
	return nodeDepth(c.root)
}

// At returns the metric-m unit starting at index i — for metric.Byte this
// is a single byte; for metric.Char a rune; for metric.Grapheme a
// grapheme cluster; for metric.Line the line starting there (including
// its trailing newline, if any, and extending to the next such start or
// the cord's end). ErrIndexOutOfBounds is returned if i is not less than
// c.Len(m).
func (c Cord) At(m metric.Metric, i uint64) (string, error) {
	if i >= measure(c.root, m) {
		return "", ErrIndexOutOfBounds
	}
	lo, hi := c.unitBounds(m, i)
	// Deliberately bypasses checkBoundary: for metric.Byte, At must
	// address any byte index including the middle of a multi-byte code
	// point (a single UTF-8 continuation byte), so it writes the raw byte
	// range directly rather than going through Slice, which enforces
	// boundary safety for operations that create new leaf splits.
	var buf bytes.Buffer
	writeRange(&buf, c.root, lo, hi)
	return buf.String(), nil
}

// unitBounds returns the byte range [lo, hi) of the single metric-m unit
// starting at index i.
func (c Cord) unitBounds(m metric.Metric, i uint64) (uint64, uint64) {
	lo := c.toByteOffset(m, i)
	hi := c.toByteOffset(m, i+1)
	return lo, hi
}

// toByteOffset converts a metric-m position into an absolute byte offset
// from the start of the cord by descending the tree and accumulating
// byte offsets of subtrees skipped on the way, mirroring indexNode's
// descent but returning a global rather than leaf-local offset.
func (c Cord) toByteOffset(m metric.Metric, k uint64) uint64 {
	return toByteOffset(c.root, m, k)
}

func toByteOffset(n *node, m metric.Metric, k uint64) uint64 {
	if n == nil {
		return 0
	}
	if n.isLeaf() {
		off := m.ToByteIndex([]byte(n.text), k)
		if off < 0 {
			off = 0
		}
		return uint64(off)
	}
	lm := measure(n.left, m)
	if k < lm {
		return toByteOffset(n.left, m, k)
	}
	return n.weight + toByteOffset(n.right, m, k-lm)
}

// Slice returns a read-only RopeSlice over the half-open metric-m range
// [lo, hi) of c. ErrIndexOutOfBounds is returned if hi exceeds c.Len(m);
// ErrIllegalArguments if hi < lo.
func (c Cord) Slice(m metric.Metric, lo, hi uint64) (RopeSlice, error) {
	if hi < lo {
		return RopeSlice{}, ErrIllegalArguments
	}
	if hi > measure(c.root, m) {
		return RopeSlice{}, ErrIndexOutOfBounds
	}
	if err := c.checkBoundary(m, lo); err != nil {
		return RopeSlice{}, err
	}
	if err := c.checkBoundary(m, hi); err != nil {
		return RopeSlice{}, err
	}
	byteLo := toByteOffset(c.root, m, lo)
	byteHi := toByteOffset(c.root, m, hi)
	return RopeSlice{root: c.root, start: byteLo, end: byteHi}, nil
}

// Append concatenates other after c and returns a new Cord; c and other
// are left unchanged, consistent with the persistence property.
func (c Cord) Append(other Cord) Cord {
	out := Cord{root: concat(c.root, other.root), config: c.config}
	return out.maybeAutoRebalance()
}

// Split splits c at metric-m position i into two new cords whose
// concatenation's text equals c's. ErrIndexOutOfBounds is returned if i
// exceeds c.Len(m).
func (c Cord) Split(m metric.Metric, i uint64) (Cord, Cord, error) {
	if i > measure(c.root, m) {
		return Cord{}, Cord{}, ErrIndexOutOfBounds
	}
	if err := c.checkBoundary(m, i); err != nil {
		return Cord{}, Cord{}, err
	}
	l, r := splitNode(c.root, m, i)
	return Cord{root: l, config: c.config}, Cord{root: r, config: c.config}, nil
}

// Insert returns a new Cord with text spliced in at metric-m position i.
func (c Cord) Insert(m metric.Metric, i uint64, text string) (Cord, error) {
	if i > measure(c.root, m) {
		return Cord{}, ErrIndexOutOfBounds
	}
	if err := c.checkBoundary(m, i); err != nil {
		return Cord{}, err
	}
	root, err := insertNode(c.root, m, i, text, c.config.maxLeafBytes(), c.config.segmenter())
	if err != nil {
		return Cord{}, err
	}
	out := Cord{root: root, config: c.config}
	return out.maybeAutoRebalance(), nil
}

// InsertRope returns a new Cord with other spliced in at metric-m
// position i.
func (c Cord) InsertRope(m metric.Metric, i uint64, other Cord) (Cord, error) {
	if i > measure(c.root, m) {
		return Cord{}, ErrIndexOutOfBounds
	}
	if err := c.checkBoundary(m, i); err != nil {
		return Cord{}, err
	}
	l, r := splitNode(c.root, m, i)
	out := Cord{root: concat(l, concat(other.root, r)), config: c.config}
	return out.maybeAutoRebalance(), nil
}

// Delete returns a new Cord with the metric-m half-open range [from, to)
// removed.
func (c Cord) Delete(m metric.Metric, from, to uint64) (Cord, error) {
	if to < from {
		return Cord{}, ErrIllegalArguments
	}
	if to > measure(c.root, m) {
		return Cord{}, ErrIndexOutOfBounds
	}
	if err := c.checkBoundary(m, from); err != nil {
		return Cord{}, err
	}
	if err := c.checkBoundary(m, to); err != nil {
		return Cord{}, err
	}
	out := Cord{root: deleteNode(c.root, m, from, to), config: c.config}
	return out.maybeAutoRebalance(), nil
}

// Rebalance returns a new Cord whose tree satisfies Boehm's balance
// criterion (F(depth+2) <= len for every branch), without changing the
// cord's text.
func (c Cord) Rebalance() Cord {
	if isBalanced(c.root) {
		return c
	}
	return Cord{root: rebalance(c.root), config: c.config}
}

func (c Cord) maybeAutoRebalance() Cord {
	if !c.config.AutoRebalance {
		return c
	}
	if !needsRebalance(c.root, c.config.balanceFactor()) {
		return c
	}
	return Cord{root: rebalance(c.root), config: c.config}
}

// Equal reports whether c and other contain exactly the same bytes. Per
// spec.md §4.4, equality never depends on tree shape: it walks both
// cords leaf-by-leaf, so two cords with wildly different trees but equal
// content compare equal.
func (c Cord) Equal(other Cord) bool {
	return equalNodes(c.root, other.root)
}

// EqualString reports whether c's text equals s.
func (c Cord) EqualString(s string) bool {
	if uint64(len(s)) != nodeLen(c.root) {
		return false
	}
	rest := s
	ok := true
	forEachLeaf(c.root, func(text string) bool {
		if len(text) > len(rest) || rest[:len(text)] != text {
			ok = false
			return false
		}
		rest = rest[len(text):]
		return true
	})
	return ok && rest == ""
}

func equalNodes(a, b *node) bool {
	if nodeLen(a) != nodeLen(b) {
		return false
	}
	// Compare via two leaf cursors rather than materializing full
	// strings, so equality stays cheap for large, differently-shaped
	// trees that happen to hold the same bytes.
	ai, bi := newLeafCursor(a), newLeafCursor(b)
	for {
		as, aok := ai.next()
		bs, bok := bi.next()
		if aok != bok {
			return false
		}
		if !aok {
			return true
		}
		for len(as) > 0 && len(bs) > 0 {
			n := len(as)
			if len(bs) < n {
				n = len(bs)
			}
			if as[:n] != bs[:n] {
				return false
			}
			as, bs = as[n:], bs[n:]
			if len(as) == 0 {
				as, aok = ai.next()
				if !aok {
					as = ""
				}
			}
			if len(bs) == 0 {
				bs, bok = bi.next()
				if !bok {
					bs = ""
				}
			}
		}
		if len(as) != 0 || len(bs) != 0 {
			return false
		}
	}
}

// leafCursor walks a node's leaves left-to-right without allocating.
type leafCursor struct {
	stack []*node
}

func newLeafCursor(n *node) *leafCursor {
	lc := &leafCursor{}
	lc.push(n)
	return lc
}

func (lc *leafCursor) push(n *node) {
	for n != nil && !n.isLeaf() {
		lc.stack = append(lc.stack, n.right)
		n = n.left
	}
	if n != nil {
		lc.stack = append(lc.stack, n)
	}
}

func (lc *leafCursor) next() (string, bool) {
	for len(lc.stack) > 0 {
		top := lc.stack[len(lc.stack)-1]
		lc.stack = lc.stack[:len(lc.stack)-1]
		if top.isLeaf() {
			if top.text == "" {
				continue
			}
			return top.text, true
		}
		lc.push(top)
	}
	return "", false
}

func forEachLeaf(n *node, f func(string) bool) {
	if n == nil {
		return
	}
	if n.isLeaf() {
		if n.text != "" {
			f(n.text)
		}
		return
	}
	if !forEachLeafCont(n.left, f) {
		return
	}
	forEachLeafCont(n.right, f)
}

func forEachLeafCont(n *node, f func(string) bool) bool {
	if n == nil {
		return true
	}
	if n.isLeaf() {
		if n.text == "" {
			return true
		}
		return f(n.text)
	}
	if !forEachLeafCont(n.left, f) {
		return false
	}
	return forEachLeafCont(n.right, f)
}

// RuneAt returns the rune at Char-metric index i. It is a convenience
// wrapper over At(metric.Char, i) for callers that want a rune rather
// than a one-rune string.
func (c Cord) RuneAt(i uint64) (rune, error) {
	s, err := c.At(metric.Char, i)
	if err != nil {
		return 0, err
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
