package assemble

// Opts configures one Assemble call. Zero-value fields mean "derive a
// default from the input sequences," mirroring assemble()'s use of None
// sentinels for kmer_size, min_read_mapping_overlap, and min_contig_length.
type Opts struct {
	// KmerSize is the de Bruijn k-mer size. 0 derives it as 75% of the
	// shortest input sequence, floored at min(shortest, 10).
	KmerSize int
	// MinEdgeWeight is the minimum edge frequency kept when trimming tails.
	MinEdgeWeight int
	// MinMatchQuality is the minimum match fraction required to remap a read
	// onto a contig.
	MinMatchQuality float64
	// MinReadMappingOverlap is the minimum aligned overlap, in bases, required
	// to remap a read onto a contig. 0 derives it as KmerSize.
	MinReadMappingOverlap int
	// MinContigLength is the shortest contig length kept in the result. 0
	// derives it as one more than the shortest input sequence, so a contig
	// identical to one of its own inputs is never reported.
	MinContigLength int
}

// DefaultOpts holds the thresholds used when a caller doesn't override them.
var DefaultOpts = Opts{
	MinEdgeWeight:   3,
	MinMatchQuality: 0.95,
}
