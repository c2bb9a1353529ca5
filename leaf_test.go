package cords

import (
	"strings"
	"testing"

	"github.com/go-textrope/cords/segment"
)

func TestSplitToLeavesRespectsMax(t *testing.T) {
	text := strings.Repeat("abcdefgh ", 50) // 450 bytes, all ASCII
	parts, err := splitToLeaves(text, 64, segment.Default)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parts) < 2 {
		t.Fatalf("expected multiple leaves, got %d", len(parts))
	}
	var joined strings.Builder
	for _, p := range parts {
		if len(p) > 64 {
			t.Fatalf("leaf exceeds max: %d bytes", len(p))
		}
		joined.WriteString(p)
	}
	if joined.String() != text {
		t.Fatalf("leaves do not reassemble to original text")
	}
}

func TestSplitToLeavesGraphemeSafe(t *testing.T) {
	// A long run of combining sequences, so the only safe cut points are
	// between "á" clusters, never inside one.
	cluster := "á"
	text := strings.Repeat(cluster, 40)
	parts, err := splitToLeaves(text, 16, segment.Default)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range parts {
		if len(p)%len(cluster) != 0 {
			t.Fatalf("leaf %q does not end on a cluster boundary", p)
		}
	}
}

func TestSplitToLeavesOversizedCluster(t *testing.T) {
	// A single grapheme cluster (a base rune followed by many combining
	// marks) longer than maxBytes must still be emitted whole, followed
	// by the remaining text split normally.
	huge := "a" + strings.Repeat("́", 40) // base + 40 combining acutes, one cluster
	text := huge + "bc"
	parts, err := splitToLeaves(text, 16, segment.Default)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parts) < 2 {
		t.Fatalf("expected the oversized cluster and the remainder as separate leaves, got %v", parts)
	}
	if parts[0] != huge {
		t.Fatalf("expected first leaf to be the whole oversized cluster, got %q (%d bytes)", parts[0], len(parts[0]))
	}
	var joined strings.Builder
	for _, p := range parts {
		joined.WriteString(p)
	}
	if joined.String() != text {
		t.Fatalf("leaves do not reassemble to original text")
	}
}

func TestSplitToLeavesRejectsInvalidUTF8(t *testing.T) {
	_, err := splitToLeaves(string([]byte{0xff, 0xfe}), 64, segment.Default)
	if err != ErrInvalidUTF8 {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}
