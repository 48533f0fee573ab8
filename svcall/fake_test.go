package svcall

import (
	"github.com/biogo/hts/sam"
	"github.com/grailbio/svcall/genomic"
	"github.com/grailbio/svcall/reads"
)

// fakeEvidence is a minimal, fully-controllable Evidence implementation used
// to exercise the resolvers against the scenarios in spec.md §8 without a
// real aligner or BAM source behind it.
type fakeEvidence struct {
	break1, break2                       genomic.Breakpoint
	opposingStrands, stranded, bamStrand bool
	interchromosomal                     bool
	outerWindow1, outerWindow2           genomic.Interval
	readLength, minSoftclipping          int
	minFrag, maxFrag                     int

	contigs       []ContigEvidence
	spanning      []reads.Read
	split1, split2 []reads.Read
	flanking      []reads.Pair
	compatFlanking []reads.Pair
	putative      genomic.SVTypeSet

	breakpointPos map[reads.Read]int // read -> BreakpointPos result
	readEvents    map[string][]ReadEvent
	pairedEvent   func(r1, r2 reads.Read) (ReadEvent, bool)
}

func (f *fakeEvidence) Break1() genomic.Breakpoint   { return f.break1 }
func (f *fakeEvidence) Break2() genomic.Breakpoint   { return f.break2 }
func (f *fakeEvidence) OpposingStrands() bool        { return f.opposingStrands }
func (f *fakeEvidence) Stranded() bool               { return f.stranded }
func (f *fakeEvidence) BamCacheStranded() bool        { return f.bamStrand }
func (f *fakeEvidence) Interchromosomal() bool        { return f.interchromosomal }
func (f *fakeEvidence) OuterWindow1() genomic.Interval { return f.outerWindow1 }
func (f *fakeEvidence) OuterWindow2() genomic.Interval { return f.outerWindow2 }
func (f *fakeEvidence) ReadLength() int                { return f.readLength }
func (f *fakeEvidence) MinSoftclipping() int           { return f.minSoftclipping }
func (f *fakeEvidence) MinExpectedFragmentSize() int   { return f.minFrag }
func (f *fakeEvidence) MaxExpectedFragmentSize() int   { return f.maxFrag }

func (f *fakeEvidence) Distance(a, b int) genomic.Interval { return genomic.Point(b - a) }

func (f *fakeEvidence) Traverse(pos, dist int, orient genomic.Orient) genomic.Interval {
	if orient == genomic.OrientRight {
		return genomic.Point(pos + dist)
	}
	return genomic.Point(pos - dist)
}

func (f *fakeEvidence) ComputeFragmentSize(read, mate reads.Read) genomic.Interval {
	p := reads.NewPair(read, mate)
	return genomic.Point(p.FragmentSize())
}

func (f *fakeEvidence) DecideSequencedStrand(rs []reads.Read) genomic.Strand {
	return genomic.StrandNS
}

func (f *fakeEvidence) CallReadEvents(read reads.Read) []ReadEvent {
	return f.readEvents[read.QueryName()]
}

func (f *fakeEvidence) CallPairedReadEvent(r1, r2 reads.Read) (ReadEvent, bool) {
	if f.pairedEvent == nil {
		return ReadEvent{}, false
	}
	return f.pairedEvent(r1, r2)
}

func (f *fakeEvidence) BreakpointPos(read reads.Read, orient genomic.Orient) int {
	return f.breakpointPos[read]
}

func (f *fakeEvidence) Contigs() []ContigEvidence              { return f.contigs }
func (f *fakeEvidence) SpanningReads() []reads.Read             { return f.spanning }
func (f *fakeEvidence) SplitReads() ([]reads.Read, []reads.Read) { return f.split1, f.split2 }
func (f *fakeEvidence) FlankingPairs() []reads.Pair              { return f.flanking }
func (f *fakeEvidence) CompatibleFlankingPairs() []reads.Pair    { return f.compatFlanking }
func (f *fakeEvidence) PutativeEventTypes() genomic.SVTypeSet    { return f.putative }

// mkRead builds a primary, mapped read aligned to ref at pos (0-based) with
// a simple full-length match CIGAR, so End() == pos+length.
func mkRead(name string, ref *sam.Reference, pos, length int) reads.Read {
	rec := &sam.Record{
		Name:  name,
		Ref:   ref,
		Pos:   pos,
		Cigar: sam.Cigar{sam.NewCigarOp(sam.CigarMatch, length)},
	}
	return reads.New(rec)
}
