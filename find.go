package cords

import "strings"

// Find returns the byte offset of the first occurrence of substr in c,
// or -1 if substr is not present. Find materializes the whole cord once
// and searches it with strings.Index, so a needle straddling a leaf
// boundary is found like any other.
//
// This supplements the core spec (not named by it) with the search
// capability an-rope's Rope exposes alongside split/insert/delete.
func (c Cord) Find(substr string) int {
	return c.FindFrom(substr, 0)
}

// FindFrom returns the byte offset of the first occurrence of substr in
// c at or after byte offset start, or -1 if not found.
func (c Cord) FindFrom(substr string, start uint64) int {
	if substr == "" {
		if start > c.ByteLen() {
			return -1
		}
		return int(start)
	}
	if start >= c.ByteLen() {
		return -1
	}
	// A straightforward, always-correct implementation: materialize once
	// and defer to strings.Index. Cords are meant for texts that are
	// edited far more often than they are linearly searched end-to-end;
	// callers with hot substring search paths should search within a
	// RopeSlice sized to their working set instead.
	text := c.String()
	idx := strings.Index(text[start:], substr)
	if idx < 0 {
		return -1
	}
	return int(start) + idx
}
