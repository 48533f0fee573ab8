// Package genomic provides the breakpoint and interval arithmetic shared by
// the assembler and the caller: closed genomic intervals, orientation and
// strand, breakpoints and breakpoint pairs, and the SV type classification
// lattice derived from their geometry.
package genomic

import "fmt"

// Interval is a closed interval [Start, End], 1-based, following the
// convention of the positions the caller reasons about (matching the
// PosRange style of the teacher's fusion package, generalized from a
// read-local coordinate to an arbitrary genomic one).
//
// INVARIANT: Start <= End.
type Interval struct {
	Start, End int
}

// NewInterval builds an Interval, panicking if end < start.
func NewInterval(start, end int) Interval {
	if end < start {
		panic(fmt.Sprintf("genomic: inverted interval [%d,%d]", start, end))
	}
	return Interval{start, end}
}

// Point returns the single-position interval [pos, pos], of Len 1.
func Point(pos int) Interval { return Interval{pos, pos} }

// Len returns the number of positions covered, End-Start+1.
func (iv Interval) Len() int { return iv.End - iv.Start + 1 }

// Overlaps reports whether the two intervals share at least one position.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start <= other.End && other.Start <= iv.End
}

// Union returns the smallest interval covering both iv and other, regardless
// of whether they overlap.
func (iv Interval) Union(other Interval) Interval {
	start := iv.Start
	if other.Start < start {
		start = other.Start
	}
	end := iv.End
	if other.End > end {
		end = other.End
	}
	return Interval{start, end}
}

// UnionLen is len(iv | other): the length of the envelope covering both.
func (iv Interval) UnionLen(other Interval) int { return iv.Union(other).Len() }

// Equal reports exact equality.
func (iv Interval) Equal(other Interval) bool { return iv == other }
