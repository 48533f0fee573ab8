package assemble

// Stats summarizes one Assemble run, in the shape of the teacher's own
// run-statistics accumulators.
type Stats struct {
	// InputSequences is the number of sequences assembled from.
	InputSequences int
	// Kmers is the total number of (possibly repeated) kmers extracted.
	Kmers int
	// NodesTrimmed is the number of graph nodes removed as low-weight tails.
	NodesTrimmed int
	// Components is the number of weakly-connected components considered for
	// path enumeration.
	Components int
	// ContigsEmitted is the number of contigs returned.
	ContigsEmitted int
	// ReadsRemapped is the number of input sequences that remapped to at
	// least one contig.
	ReadsRemapped int
}

// Merge adds the field values of two Stats and returns the sum.
func (s Stats) Merge(o Stats) Stats {
	s.InputSequences += o.InputSequences
	s.Kmers += o.Kmers
	s.NodesTrimmed += o.NodesTrimmed
	s.Components += o.Components
	s.ContigsEmitted += o.ContigsEmitted
	s.ReadsRemapped += o.ReadsRemapped
	return s
}
