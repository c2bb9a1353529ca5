/*
Package cords offers a persistent rope data structure for Unicode text.

Cords (sometimes called ropes) organize fragments of immutable text
internally in a balanced, summarized binary tree. This speeds up frequent
text operations — concatenation, insertion, deletion, splitting — especially
for long texts, compared to plain Go strings or byte slices.

	Operation     |   Cord          |  String
	--------------+-----------------+--------
	Index         |   O(log n)      |   O(1)
	Split         |   O(log n)      |   O(1)
	Iterate       |   O(n)          |   O(n)

	Concatenate   |   O(log n)      |   O(n)
	Insert        |   O(log n)      |   O(n)
	Delete        |   O(log n)      |   O(n)

Cords are persistent: every edit returns a new Cord while leaving the
receiver's tree untouched. Unchanged subtrees are shared between the old
and the new value, so an edit is cheap even on a very large text.

Cords are parameterized over a Metric (see package metric): the same tree
can be indexed by byte offset, Unicode scalar value, extended grapheme
cluster, or line, and new metrics can be added by implementing the small
metric.Metric interface.

_________________________________________________________________________

From a paper by Hans-J. Boehm, Russ Atkinson and Michael Plass, 1995,
"Ropes, an Alternative to Strings" (Xerox PARC): immutable strings should
be well supported, common operations on them should be efficient and
should scale to very long strings, and other representations of
"sequence of character" should be easy to adapt to. Cords follow this
lineage, updated for Go: trees of Go strings, shared by the garbage
collector rather than by manual reference counting.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.
*/
package cords

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T returns the package's global core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// tracer is a short alias for T, used at internal call sites.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// Error is the error type used throughout this package for domain errors:
// out-of-bounds indices, boundary violations, and illegal arguments. These
// are the programmer-error conditions described in the package's error
// handling design; they are returned to the caller rather than panicked,
// except where noted on individual constructors.
type Error string

func (e Error) Error() string { return string(e) }

// ErrIndexOutOfBounds is returned whenever a requested index exceeds a
// cord's length in the metric it was requested in.
const ErrIndexOutOfBounds = Error("cords: index out of bounds")

// ErrNotOnBoundary is returned when a requested index falls inside a
// grapheme cluster (Grapheme metric) or inside a multi-byte code point
// (Byte metric), which would violate the UTF-8/grapheme boundary
// invariant of leaves.
const ErrNotOnBoundary = Error("cords: index does not fall on a metric boundary")

// ErrIllegalArguments is returned for malformed call arguments, such as a
// split range with end before start.
const ErrIllegalArguments = Error("cords: illegal arguments")

// ErrInvalidUTF8 is returned by constructors fed non-UTF-8 byte input.
const ErrInvalidUTF8 = Error("cords: invalid UTF-8")

// ErrBuilderCompleted signals that a Builder has already produced a Cord
// and it is illegal to stage further fragments.
const ErrBuilderCompleted = Error("cords: forbidden to add fragments; builder already completed")

// assert panics with msg if cond is false. Used at invariants that
// indicate a programming error rather than a recoverable domain error,
// matching the teacher package's own assert helper.
func assert(cond bool, msg string) {
	if !cond {
		panic("cords: assertion failed: " + msg)
	}
}
