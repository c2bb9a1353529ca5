package cords

import "github.com/go-textrope/cords/metric"

// Cursor navigates a Cord by positions in a chosen metric, grounded on
// the teacher package's CharCursor (char_cursor.go), generalized from
// hard-coded rune steps to an arbitrary metric.Metric.
//
// A Cursor is bound to one Cord snapshot; since Cords are persistent,
// that snapshot never changes under the cursor even if the original
// variable holding it is later reassigned.
type Cursor struct {
	cord Cord
	m    metric.Metric
	pos  uint64 // position in m's units
}

// NewCursor creates a Cursor over c addressed in metric m, starting at
// position 0.
func (c Cord) NewCursor(m metric.Metric) *Cursor {
	return &Cursor{cord: c, m: m}
}

// Pos returns the cursor's current position in its metric.
func (cur *Cursor) Pos() uint64 {
	if cur == nil {
		return 0
	}
	return cur.pos
}

// Seek moves the cursor to absolute position pos. ErrIndexOutOfBounds is
// returned if pos exceeds the cord's length in the cursor's metric.
func (cur *Cursor) Seek(pos uint64) error {
	if cur == nil {
		return ErrIllegalArguments
	}
	if pos > measure(cur.cord.root, cur.m) {
		return ErrIndexOutOfBounds
	}
	cur.pos = pos
	return nil
}

// Next returns the unit at the cursor's current position and advances
// past it. ok is false at end-of-cord.
func (cur *Cursor) Next() (unit string, ok bool) {
	if cur == nil || cur.pos >= measure(cur.cord.root, cur.m) {
		return "", false
	}
	s, err := cur.cord.At(cur.m, cur.pos)
	if err != nil {
		return "", false
	}
	cur.pos++
	return s, true
}

// Prev moves the cursor back one unit and returns the unit it now sits
// on. ok is false if the cursor was already at the start.
func (cur *Cursor) Prev() (unit string, ok bool) {
	if cur == nil || cur.pos == 0 {
		return "", false
	}
	cur.pos--
	s, err := cur.cord.At(cur.m, cur.pos)
	if err != nil {
		return "", false
	}
	return s, true
}
