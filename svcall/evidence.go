package svcall

import (
	"github.com/grailbio/svcall/genomic"
	"github.com/grailbio/svcall/reads"
)

// TargetedAlignmentTag is the auxiliary tag name a read carries when it was
// realigned specifically to this locus rather than discovered genome-wide;
// such reads are weaker evidence for split-read resolution because they were
// directed to the region instead of landing there independently.
const TargetedAlignmentTag = "ta"

// ReadEvent is a candidate breakpoint pair a single read's own alignment
// implies, e.g. from a CIGAR indel or an internal supplementary split. It is
// the shape `call_read_events`/`call_paired_read_event` hand back in the
// original; this repo treats both functions as Evidence-provided
// collaborators rather than reimplementing CIGAR-to-breakpoint inference,
// per spec.md §1's "pairwise contig-to-reference alignment" being out of
// scope.
type ReadEvent struct {
	Break1          genomic.Breakpoint
	Break2          genomic.Breakpoint
	OpposingStrands bool
	UntemplatedSeq  string
}

// AsPair renders a ReadEvent as the BreakpointPair classify operates on.
func (e ReadEvent) AsPair(stranded bool) genomic.BreakpointPair {
	return genomic.NewBreakpointPair(e.Break1, e.Break2, e.OpposingStrands, stranded, e.UntemplatedSeq)
}

// SplitAlignment is one contig-to-reference placement produced by an
// external aligner: a putative breakpoint pair plus the aligner's metrics for
// it. callByContigs does not filter on QueryConsumption or ScoreValue.
type SplitAlignment struct {
	Break1           genomic.Breakpoint
	Break2           genomic.Breakpoint
	UntemplatedSeq   string
	IsPutativeIndel  bool
	QueryConsumption float64
	ScoreValue       float64
	Read1, Read2     reads.Read
}

// NetSize is the reference-length-minus-query-length delta implied by this
// alignment: positive for a deletion-shaped gap, negative for an
// insertion-shaped one, zero for a balanced rearrangement (inversion,
// translocation) that the contig resolver must not mistake for a no-op
// indel.
func (a SplitAlignment) NetSize(distance genomic.DistanceFunc) genomic.Interval {
	gap := a.Break2.Pos.Start - a.Break1.Pos.End - 1
	if distance != nil {
		tol := distance(a.Break1.Pos.End, a.Break2.Pos.Start)
		return genomic.NewInterval(tol.Start-1-len(a.UntemplatedSeq), tol.End-1-len(a.UntemplatedSeq))
	}
	return genomic.Point(gap - len(a.UntemplatedSeq))
}

// Score is the aligner's confidence score for this placement.
func (a SplitAlignment) Score() float64 { return a.ScoreValue }

// ContigEvidence is an assembled contig together with the split alignments
// an external aligner produced for it, and the input reads it was built or
// remapped from (spec.md §3's Contig, supplemented with the alignment list
// the caller consumes but the assembler itself never produces).
type ContigEvidence struct {
	Seq        string
	Score      int
	Alignments []SplitAlignment
	InputReads []reads.Read
}

// Evidence is the per-locus bundle the caller resolves into EventCalls. It
// is implemented by callers; this package only consumes it. Field and
// method names follow spec.md §6's External Interfaces list.
type Evidence interface {
	Break1() genomic.Breakpoint
	Break2() genomic.Breakpoint
	OpposingStrands() bool
	// Stranded reports whether the evidence's own strand assignment is
	// known. Stranded composes with BamCacheStranded: an EventCall's
	// effective strandedness is Stranded() && BamCacheStranded().
	Stranded() bool
	// BamCacheStranded reports whether the underlying read source
	// (bam_cache in the original) was itself built from a stranded
	// protocol. Kept distinct from Stranded per SPEC_FULL.md, since the
	// original's EventCall constructor checks both independently.
	BamCacheStranded() bool
	Interchromosomal() bool

	OuterWindow1() genomic.Interval
	OuterWindow2() genomic.Interval

	ReadLength() int
	MinSoftclipping() int
	MinExpectedFragmentSize() int
	MaxExpectedFragmentSize() int

	// Distance returns the tolerance interval of genomic distance between
	// two nominal reference positions (e.g. intron-aware transcript
	// distance); a trivial implementation returns Point(b-a).
	Distance(a, b int) genomic.Interval
	// Traverse returns the interval reachable by walking dist bases from
	// pos in the given direction, bounded by whatever coordinate system
	// (genomic or transcript) this evidence uses.
	Traverse(pos, dist int, orient genomic.Orient) genomic.Interval
	// ComputeFragmentSize estimates the outer fragment size interval
	// implied by a read and its mate.
	ComputeFragmentSize(read, mate reads.Read) genomic.Interval
	// DecideSequencedStrand infers the sequenced strand from a pool of
	// reads, or StrandNS if undecidable.
	DecideSequencedStrand(rs []reads.Read) genomic.Strand

	// CallReadEvents returns the candidate breakpoint pairs a single
	// read's own alignment implies (CIGAR indels, internal splits).
	CallReadEvents(read reads.Read) []ReadEvent
	// CallPairedReadEvent attempts to resolve one precise event from two
	// reads that both independently imply compatible breakpoints.
	CallPairedReadEvent(r1, r2 reads.Read) (ReadEvent, bool)
	// BreakpointPos returns the reference position a split read's clip
	// implies for the given breakpoint orientation.
	BreakpointPos(read reads.Read, orient genomic.Orient) int

	Contigs() []ContigEvidence
	SpanningReads() []reads.Read
	// SplitReads returns the side-1 and side-2 split read pools.
	SplitReads() (side1, side2 []reads.Read)
	FlankingPairs() []reads.Pair
	CompatibleFlankingPairs() []reads.Pair

	PutativeEventTypes() genomic.SVTypeSet
}

// BreakpointPairOf renders an Evidence's own nominal breakpoints as the pair
// classify operates on.
func BreakpointPairOf(e Evidence) genomic.BreakpointPair {
	return genomic.NewBreakpointPair(e.Break1(), e.Break2(), e.OpposingStrands(), e.Stranded(), "")
}
