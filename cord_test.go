package cords

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/go-textrope/cords/metric"
)

func setupTest(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	t.Cleanup(teardown)
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
}

// S1 — empty round-trip.
func TestEmptyRoundTrip(t *testing.T) {
	setupTest(t)
	var c Cord
	if c.String() != "" {
		t.Fatalf("expected empty string, got %q", c.String())
	}
	if c.Len(metric.Byte) != 0 {
		t.Fatalf("expected byte length 0, got %d", c.Len(metric.Byte))
	}
	if c.Len(metric.Line) != 0 {
		t.Fatalf("expected line length 0, got %d", c.Len(metric.Line))
	}
	if !c.IsEmpty() {
		t.Fatalf("expected IsEmpty")
	}
}

// Round-trip: FromString(s).String() == s.
func TestRoundTrip(t *testing.T) {
	setupTest(t)
	for _, s := range []string{"", "a", "hello world", strings.Repeat("abcdefgh ", 500)} {
		c := FromString(s)
		if c.String() != s {
			t.Fatalf("round trip failed for len %d", len(s))
		}
	}
}

// S2 — concat.
func TestConcat(t *testing.T) {
	setupTest(t)
	a := FromString("foo")
	b := FromString("bar")
	got := a.Append(b).String()
	if got != "foobar" {
		t.Fatalf("expected foobar, got %q", got)
	}
}

// Concatenation equivalence: (a.append(b)).String() == a.String()+b.String()
func TestConcatEquivalence(t *testing.T) {
	setupTest(t)
	a := FromString("the quick brown fox ")
	b := FromString("jumps over the lazy dog")
	if a.Append(b).String() != a.String()+b.String() {
		t.Fatalf("concat equivalence violated")
	}
}

// S3 — split on boundary.
func TestSplitOnBoundary(t *testing.T) {
	setupTest(t)
	r := FromString("hello world")
	l, right, err := r.Split(metric.Byte, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.String() != "hello" || right.String() != " world" {
		t.Fatalf("got (%q, %q)", l.String(), right.String())
	}
}

// Split inverse: l.append(r).String() == R.String() for all valid i.
func TestSplitInverse(t *testing.T) {
	setupTest(t)
	text := strings.Repeat("0123456789", 200)
	r := FromString(text)
	for _, i := range []uint64{0, 1, 500, 1999, 2000} {
		l, right, err := r.Split(metric.Byte, i)
		if err != nil {
			t.Fatalf("split(%d): %v", i, err)
		}
		if l.Append(right).String() != text {
			t.Fatalf("split inverse violated at %d", i)
		}
	}
}

// Insert/delete cancellation.
func TestInsertDeleteCancellation(t *testing.T) {
	setupTest(t)
	r := FromString("hello world")
	inserted, err := r.Insert(metric.Byte, 5, ", there")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	deleted, err := inserted.Delete(metric.Byte, 5, 5+uint64(len(", there")))
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.String() != r.String() {
		t.Fatalf("expected %q, got %q", r.String(), deleted.String())
	}
}

// S4 — grapheme indexing over a combining sequence.
func TestGraphemeCombiningSequence(t *testing.T) {
	setupTest(t)
	r := FromString("a\u0301b") // 'a' + combining acute accent + 'b'
	if got := r.Len(metric.Grapheme); got != 2 {
		t.Fatalf("expected 2 graphemes, got %d", got)
	}
	s0, err := r.Slice(metric.Grapheme, 0, 1)
	if err != nil {
		t.Fatalf("slice(0,1): %v", err)
	}
	if s0.String() != "a\u0301" {
		t.Fatalf("expected a + combining acute, got %q", s0.String())
	}
	s1, err := r.Slice(metric.Grapheme, 1, 2)
	if err != nil {
		t.Fatalf("slice(1,2): %v", err)
	}
	if s1.String() != "b" {
		t.Fatalf("expected b, got %q", s1.String())
	}
}

// S5 — line iteration includes trailing line.
func TestLinesIncludeTrailing(t *testing.T) {
	setupTest(t)
	r := FromString("ab\ncd")
	var got []string
	for line := range r.Lines() {
		got = append(got, line)
	}
	want := []string{"ab\n", "cd"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if r.Len(metric.Line) != 1 {
		t.Fatalf("expected line count 1, got %d", r.Len(metric.Line))
	}
}

// S6 — persistence.
func TestPersistence(t *testing.T) {
	setupTest(t)
	a := FromString("hi")
	b, err := a.Insert(metric.Byte, 1, "!")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if a.String() != "hi" {
		t.Fatalf("expected a unchanged, got %q", a.String())
	}
	if b.String() != "h!i" {
		t.Fatalf("expected h!i, got %q", b.String())
	}
}

// S7 — rebalance preserves content and satisfies the Fibonacci bound.
func TestRebalancePreservesContent(t *testing.T) {
	setupTest(t)
	var want strings.Builder
	c := Cord{}
	for i := 0; i < 3000; i++ {
		ch := string(rune('a' + i%26))
		want.WriteString(ch)
		c = c.Append(FromString(ch))
	}
	balanced := c.Rebalance()
	if balanced.String() != want.String() {
		t.Fatalf("rebalance changed content")
	}
	if !isBalanced(balanced.root) {
		t.Fatalf("tree not balanced after Rebalance: depth=%d len=%d", balanced.depth(), balanced.ByteLen())
	}
}

// Metric consistency: for every branch, M.measure(B) == M.measure(left) + M.measure(right).
func TestMetricConsistency(t *testing.T) {
	setupTest(t)
	c := FromString(strings.Repeat("hello, world\n", 100))
	var walk func(n *node)
	walk = func(n *node) {
		if n == nil || n.isLeaf() {
			return
		}
		for _, m := range []metric.Metric{metric.Byte, metric.Char, metric.Grapheme, metric.Line} {
			got := measure(n, m)
			want := m.Combine(measure(n.left, m), measure(n.right, m))
			if got != want {
				t.Fatalf("metric %s inconsistent: got %d want %d", m.Name(), got, want)
			}
		}
		walk(n.left)
		walk(n.right)
	}
	walk(c.root)
}

// Iterator agreement: Runes count == Len(Char); analogous for Grapheme and Byte.
func TestIteratorAgreement(t *testing.T) {
	setupTest(t)
	c := FromString("hello\nworld\náb")
	var runeCount uint64
	for range c.Runes() {
		runeCount++
	}
	if runeCount != c.Len(metric.Char) {
		t.Fatalf("rune count %d != Len(Char) %d", runeCount, c.Len(metric.Char))
	}
	var graphemeCount uint64
	for range c.Graphemes() {
		graphemeCount++
	}
	if graphemeCount != c.Len(metric.Grapheme) {
		t.Fatalf("grapheme count %d != Len(Grapheme) %d", graphemeCount, c.Len(metric.Grapheme))
	}
	var byteCount uint64
	for range c.Bytes() {
		byteCount++
	}
	if byteCount != c.Len(metric.Byte) {
		t.Fatalf("byte count %d != Len(Byte) %d", byteCount, c.Len(metric.Byte))
	}
}

func TestEqual(t *testing.T) {
	setupTest(t)
	a := FromString("foo").Append(FromString("bar"))
	b := FromString("foobar")
	if !a.Equal(b) {
		t.Fatalf("expected equal")
	}
	if !a.EqualString("foobar") {
		t.Fatalf("expected EqualString to match")
	}
	c := FromString("foobaz")
	if a.Equal(c) {
		t.Fatalf("expected not equal")
	}
}

func TestOutOfBounds(t *testing.T) {
	setupTest(t)
	r := FromString("abc")
	if _, _, err := r.Split(metric.Byte, 10); err != ErrIndexOutOfBounds {
		t.Fatalf("expected ErrIndexOutOfBounds, got %v", err)
	}
	if _, err := r.Insert(metric.Byte, 10, "x"); err != ErrIndexOutOfBounds {
		t.Fatalf("expected ErrIndexOutOfBounds, got %v", err)
	}
}

func TestNotOnBoundary(t *testing.T) {
	setupTest(t)
	r := FromString("áb") // 4 bytes: 'a', combining acute (2 bytes), 'b'
	if _, _, err := r.Split(metric.Byte, 2); err != ErrNotOnBoundary {
		t.Fatalf("expected ErrNotOnBoundary splitting mid-codepoint, got %v", err)
	}
}

func TestFind(t *testing.T) {
	setupTest(t)
	r := FromString("the quick brown fox")
	if idx := r.Find("brown"); idx != 10 {
		t.Fatalf("expected 10, got %d", idx)
	}
	if idx := r.Find("missing"); idx != -1 {
		t.Fatalf("expected -1, got %d", idx)
	}
}

func TestReaderAndWriteTo(t *testing.T) {
	setupTest(t)
	r := FromString(strings.Repeat("x", 5000))
	buf := make([]byte, 0, 5000)
	tmp := make([]byte, 777)
	rd := r.Reader()
	for {
		n, err := rd.Read(tmp)
		buf = append(buf, tmp[:n]...)
		if err != nil {
			break
		}
	}
	if string(buf) != r.String() {
		t.Fatalf("reader produced mismatched content")
	}

	var sb strings.Builder
	n, err := r.WriteTo(&sb)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if int(n) != len(r.String()) || sb.String() != r.String() {
		t.Fatalf("WriteTo produced mismatched content")
	}
}

func TestDestructiveAPI(t *testing.T) {
	setupTest(t)
	c := FromString("hello")
	if err := c.InsertInPlace(metric.Byte, 5, " world"); err != nil {
		t.Fatalf("insert in place: %v", err)
	}
	if c.String() != "hello world" {
		t.Fatalf("expected 'hello world', got %q", c.String())
	}
	right, err := c.SplitInPlace(metric.Byte, 5)
	if err != nil {
		t.Fatalf("split in place: %v", err)
	}
	if c.String() != "hello" || right.String() != " world" {
		t.Fatalf("got (%q, %q)", c.String(), right.String())
	}
}

func TestCursor(t *testing.T) {
	setupTest(t)
	c := FromString("abc")
	cur := c.NewCursor(metric.Char)
	var got []string
	for {
		u, ok := cur.Next()
		if !ok {
			break
		}
		got = append(got, u)
	}
	if strings.Join(got, "") != "abc" {
		t.Fatalf("expected abc, got %v", got)
	}
}

func TestBuilder(t *testing.T) {
	setupTest(t)
	b := NewBuilder()
	if err := b.AppendString("hello "); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := b.PrependString(">> "); err != nil {
		t.Fatalf("prepend: %v", err)
	}
	if err := b.AppendString("world"); err != nil {
		t.Fatalf("append: %v", err)
	}
	c := b.Cord()
	if c.String() != ">> hello world" {
		t.Fatalf("expected '>> hello world', got %q", c.String())
	}
	if err := b.AppendString("more"); err == nil {
		t.Fatalf("expected error appending after Cord()")
	}
}

func randomASCIIToken(r *rand.Rand) string {
	n := r.Intn(4) + 1
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + r.Intn(26))
	}
	return string(b)
}

// runRandomInsertDeleteSequence drives a random sequence of byte-metric
// Insert/Delete calls against both a Cord and a plain string reference
// model, failing as soon as they disagree. Grounded on the teacher
// package's btree/extension_property_test.go randomized-sequence idiom
// (seeded math/rand, a plain-slice/string model checked after every step)
// applied to this module's own Insert/Delete operations.
func runRandomInsertDeleteSequence(t *testing.T, seed int64, steps int) {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	c := FromString("")
	model := ""

	for i := 0; i < steps; i++ {
		switch r.Intn(2) {
		case 0:
			pos := uint64(0)
			if len(model) > 0 {
				pos = uint64(r.Intn(len(model) + 1))
			}
			token := randomASCIIToken(r)
			next, err := c.Insert(metric.Byte, pos, token)
			if err != nil {
				t.Fatalf("step %d: Insert(%d, %q) failed: %v", i, pos, token, err)
			}
			c = next
			model = model[:pos] + token + model[pos:]
		case 1:
			if len(model) == 0 {
				continue
			}
			from := uint64(r.Intn(len(model)))
			length := r.Intn(len(model)-int(from)) + 1
			to := from + uint64(length)
			next, err := c.Delete(metric.Byte, from, to)
			if err != nil {
				t.Fatalf("step %d: Delete(%d, %d) failed: %v", i, from, to, err)
			}
			c = next
			model = model[:from] + model[to:]
		}
		if c.String() != model {
			t.Fatalf("step %d: cord diverged from model: got %q, want %q", i, c.String(), model)
		}
		if c.ByteLen() != uint64(len(model)) {
			t.Fatalf("step %d: ByteLen %d != model length %d", i, c.ByteLen(), len(model))
		}
	}
}

func TestRandomizedInsertDeleteAgainstModel(t *testing.T) {
	setupTest(t)
	for _, seed := range []int64{1, 2, 3, 42} {
		runRandomInsertDeleteSequence(t, seed, 300)
	}
}

func TestDebugString(t *testing.T) {
	setupTest(t)
	c := FromString("hello").Append(FromString(" world"))
	s := c.DebugString()
	if !strings.Contains(s, "branch") {
		t.Fatalf("expected debug dump to mention a branch, got %q", s)
	}
}
