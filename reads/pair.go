package reads

// Pair is a mapped read and its mapped mate, the unit the flanking-pair
// resolver reasons about. Both reads must share a QueryName; First is the
// mate with the smaller alignment start, to give FragmentSize a stable sign.
type Pair struct {
	First, Second Read
}

// NewPair orders a and b by alignment start and returns the Pair.
func NewPair(a, b Read) Pair {
	if a.Pos > b.Pos {
		a, b = b, a
	}
	return Pair{First: a, Second: b}
}

// FragmentSize is the outer span of the pair on the reference: from the
// start of the leftmost read's alignment to the end of the rightmost read's
// alignment.
func (p Pair) FragmentSize() int {
	end := p.First.End()
	if e := p.Second.End(); e > end {
		end = e
	}
	return end - p.First.Pos
}

// SameChromosome reports whether both mates aligned to the same reference.
func (p Pair) SameChromosome() bool {
	return p.First.RefName() != "" && p.First.RefName() == p.Second.RefName()
}
