package svcall

import (
	"fmt"
	"math"
	"sort"

	"github.com/grailbio/svcall/genomic"
	"github.com/grailbio/svcall/reads"
)

// CallMethod is the resolver that produced an EventCall, and fixes the
// priority order §4.2 runs them in.
type CallMethod uint8

const (
	CallMethodContig CallMethod = iota
	CallMethodSpan
	CallMethodSplit
	CallMethodFlank
)

func (m CallMethod) String() string {
	switch m {
	case CallMethodContig:
		return "CONTIG"
	case CallMethodSpan:
		return "SPAN"
	case CallMethodSplit:
		return "SPLIT"
	case CallMethodFlank:
		return "FLANK"
	default:
		return "?"
	}
}

// EventCall extends a BreakpointPair with the resolver that produced it, the
// Evidence it was resolved from, and the read support it claims. Per
// spec.md §3, an EventCall is built by exactly one resolver invocation, then
// mutated only by its Add*Support methods during that same invocation, and
// is read-only thereafter. Unlike the original, it carries no identity-based
// equality; callers that need deduplication should key on
// (Break1, Break2, EventType, CallMethod) explicitly.
type EventCall struct {
	genomic.BreakpointPair

	SourceEvidence  Evidence
	EventType       genomic.SVType
	CompatibleType  genomic.SVType
	CallMethod      CallMethod
	Contig          *ContigEvidence
	ContigAlignment *SplitAlignment

	SpanningReads           map[reads.Read]struct{}
	FlankingPairs           map[reads.Pair]struct{}
	CompatibleFlankingPairs map[reads.Pair]struct{}
	Break1SplitReads        map[reads.Read]struct{}
	Break2SplitReads        map[reads.Read]struct{}
}

// NewEventCall builds an EventCall, swapping eventType for its compatible
// type when only the latter is geometrically valid, per spec.md §3's
// DUP<->INS duality. It panics on the two fatal invariants spec.md §7
// assigns to construction: an event_type valid under neither the type
// itself nor its compatible type, and a contig supplied for any call_method
// other than CONTIG. These indicate a resolver bug, not bad input data.
func NewEventCall(b1, b2 genomic.Breakpoint, source Evidence, eventType genomic.SVType, method CallMethod, contig *ContigEvidence, contigAlignment *SplitAlignment, untemplatedSeq string) *EventCall {
	stranded := source.Stranded() && source.BamCacheStranded()
	opposingStrands := false
	if stranded && b1.Strand != genomic.StrandNS && b2.Strand != genomic.StrandNS {
		opposingStrands = b1.Strand != b2.Strand
	}
	pair := genomic.NewBreakpointPair(b1, b2, opposingStrands, stranded, untemplatedSeq)

	compatibleType := genomic.CompatibleType(eventType)
	types := genomic.ClassifyWithTolerance(pair, source.Distance)
	if !types.Contains(eventType) && compatibleType != genomic.SVTypeNone && types.Contains(compatibleType) {
		eventType, compatibleType = compatibleType, eventType
	}
	if !types.Contains(eventType) {
		panic(fmt.Sprintf("svcall: event_type %v not compatible with breakpoint geometry %v (classify=%v)", eventType, pair, types.Sorted()))
	}
	if contig != nil && method != CallMethodContig {
		panic("svcall: contig set without call_method == CONTIG")
	}

	return &EventCall{
		BreakpointPair:          pair,
		SourceEvidence:          source,
		EventType:               eventType,
		CompatibleType:          compatibleType,
		CallMethod:              method,
		Contig:                  contig,
		ContigAlignment:         contigAlignment,
		SpanningReads:           map[reads.Read]struct{}{},
		FlankingPairs:           map[reads.Pair]struct{}{},
		CompatibleFlankingPairs: map[reads.Pair]struct{}{},
		Break1SplitReads:        map[reads.Read]struct{}{},
		Break2SplitReads:        map[reads.Read]struct{}{},
	}
}

// HasCompatible reports whether this call carries a DUP<->INS dual.
func (e *EventCall) HasCompatible() bool { return e.CompatibleType != genomic.SVTypeNone }

// Support returns the union of every read this call claims: both mates of
// every flanking pair (primary and compatible), every spanning read, every
// split read on either side, and the contig's input reads if this is a
// contig call.
func (e *EventCall) Support() map[reads.Read]struct{} {
	out := map[reads.Read]struct{}{}
	for r := range e.SpanningReads {
		out[r] = struct{}{}
	}
	for r := range e.Break1SplitReads {
		out[r] = struct{}{}
	}
	for r := range e.Break2SplitReads {
		out[r] = struct{}{}
	}
	for p := range e.FlankingPairs {
		out[p.First] = struct{}{}
		out[p.Second] = struct{}{}
	}
	for p := range e.CompatibleFlankingPairs {
		out[p.First] = struct{}{}
		out[p.Second] = struct{}{}
	}
	if e.Contig != nil {
		for _, r := range e.Contig.InputReads {
			out[r] = struct{}{}
		}
	}
	return out
}

// IsSupplementary is the supplementary_call predicate from spec.md §6: true
// unless every one of the following holds: {EventType, CompatibleType}
// intersects classify(source evidence), Break1 overlaps the evidence's
// outer_window1, Break2 overlaps outer_window2, both breakpoints sit on the
// evidence's own chromosomes, and OpposingStrands matches the evidence's.
func (e *EventCall) IsSupplementary() bool {
	src := e.SourceEvidence
	evidenceTypes := genomic.ClassifyWithTolerance(BreakpointPairOf(src), src.Distance)
	typesMatch := evidenceTypes.Contains(e.EventType) || (e.HasCompatible() && evidenceTypes.Contains(e.CompatibleType))

	sameChr := e.Break1.Chr == src.Break1().Chr && e.Break2.Chr == src.Break2().Chr
	windowsMatch := e.Break1.Pos.Overlaps(src.OuterWindow1()) && e.Break2.Pos.Overlaps(src.OuterWindow2())
	strandsMatch := e.OpposingStrands == src.OpposingStrands()

	return !(typesMatch && sameChr && windowsMatch && strandsMatch)
}

// AddSpanningRead adds read if one of its own self-contained events
// classifies, under the evidence's distance tolerance, as this call's
// event_type. Per spec.md §9's resolution of the third open question,
// equality between the read's own computed event and this call is judged
// with ClassifyWithTolerance rather than exact breakpoint equality, since
// the two are independently derived and may disagree by a few bases.
func (e *EventCall) AddSpanningRead(read reads.Read) bool {
	stranded := e.SourceEvidence.Stranded() && e.SourceEvidence.BamCacheStranded()
	for _, ev := range e.SourceEvidence.CallReadEvents(read) {
		types := genomic.ClassifyWithTolerance(ev.AsPair(stranded), e.SourceEvidence.Distance)
		if types.Contains(e.EventType) {
			e.SpanningReads[read] = struct{}{}
			return true
		}
	}
	return false
}

// AddBreak1SplitRead adds read to break1's split-read set if its clip
// position overlaps Break1.
func (e *EventCall) AddBreak1SplitRead(read reads.Read) bool {
	pos := e.SourceEvidence.BreakpointPos(read, e.Break1.Orient) + 1
	if genomic.Point(pos).Overlaps(e.Break1.Pos) {
		e.Break1SplitReads[read] = struct{}{}
		return true
	}
	return false
}

// AddBreak2SplitRead adds read to break2's split-read set if its clip
// position overlaps Break2.
func (e *EventCall) AddBreak2SplitRead(read reads.Read) bool {
	pos := e.SourceEvidence.BreakpointPos(read, e.Break2.Orient) + 1
	if genomic.Point(pos).Overlaps(e.Break2.Pos) {
		e.Break2SplitReads[read] = struct{}{}
		return true
	}
	return false
}

// orientationSupportsType reports whether a flanking pair's own strand
// configuration (first-by-position read vs. second) is consistent with
// eventType, mirroring _read.orientation_supports_type in call.py: a normal
// forward/reverse pair supports DEL or INS, a reverse/forward ("outward
// facing") pair supports DUP, a same-strand pair supports INV, and anything
// is permitted for an interchromosomal event, since TRANS/ITRANS carry no
// single FR/RF/FF/RR signature.
func orientationSupportsType(eventType genomic.SVType, firstReversed, secondReversed, interchromosomal bool) bool {
	if interchromosomal {
		return true
	}
	switch eventType {
	case genomic.DEL, genomic.INS:
		return !firstReversed && secondReversed
	case genomic.DUP:
		return firstReversed && !secondReversed
	case genomic.INV:
		return firstReversed == secondReversed
	default:
		return true
	}
}

// AddFlankingSupport runs every (read, mate) pair through the fragment-size,
// chromosome, strand-orientation, and orientation-quadrant predicates of
// spec.md §4.5, adding the ones that pass to FlankingPairs (or
// CompatibleFlankingPairs, when isCompatible is true and L/R are read as
// inverted — compatible support comes from the opposite-configuration
// reads).
func (e *EventCall) AddFlankingSupport(pairs []reads.Pair, isCompatible bool) int {
	src := e.SourceEvidence
	eventType := e.EventType
	if isCompatible {
		eventType = e.CompatibleType
	}

	minFrag := src.MaxExpectedFragmentSize()
	if alt := src.MinExpectedFragmentSize() + e.Break2.Pos.Start - e.Break1.Pos.End + 1; alt > minFrag {
		minFrag = alt
	}
	maxFrag := e.Break1.Pos.Union(e.Break2.Pos).Len() + src.MaxExpectedFragmentSize()

	b1orient, b2orient := e.Break1.Orient, e.Break2.Orient
	if isCompatible {
		b1orient, b2orient = invertOrient(b1orient), invertOrient(b2orient)
	}

	added := 0
	for _, p := range pairs {
		frag := src.ComputeFragmentSize(p.First, p.Second)
		switch eventType {
		case genomic.DEL:
			if frag.End < minFrag || frag.Start > maxFrag {
				continue
			}
		case genomic.INS:
			if frag.Start >= src.MinExpectedFragmentSize() {
				continue
			}
		}

		interchromosomal := p.First.RefName() != p.Second.RefName()
		if interchromosomal != src.Interchromosomal() {
			continue
		}

		if !orientationSupportsType(eventType, p.First.Reversed(), p.Second.Reversed(), interchromosomal) {
			continue
		}

		read, mate := p.First, p.Second
		readStart1, mateStart1 := read.Pos+1, mate.Pos+1
		readEnd, mateEnd := read.End(), mate.End()

		var ok bool
		switch {
		case b1orient == genomic.OrientLeft && b2orient == genomic.OrientLeft:
			ok = readStart1 <= e.Break1.Pos.End && mateStart1 <= e.Break2.Pos.End &&
				(mateEnd > e.Break1.Pos.Start || interchromosomal)
		case b1orient == genomic.OrientLeft && b2orient == genomic.OrientRight:
			ok = readStart1 <= e.Break1.Pos.End && mateEnd >= e.Break2.Pos.Start
		case b1orient == genomic.OrientRight && b2orient == genomic.OrientLeft:
			ok = readEnd >= e.Break1.Pos.Start && mateStart1 <= e.Break2.Pos.End
		case b1orient == genomic.OrientRight && b2orient == genomic.OrientRight:
			ok = readEnd >= e.Break1.Pos.Start && mateEnd >= e.Break2.Pos.Start &&
				(readEnd < e.Break2.Pos.End || interchromosomal)
		}
		if !ok {
			continue
		}

		if isCompatible {
			e.CompatibleFlankingPairs[p] = struct{}{}
		} else {
			e.FlankingPairs[p] = struct{}{}
		}
		added++
	}
	return added
}

func invertOrient(o genomic.Orient) genomic.Orient {
	switch o {
	case genomic.OrientLeft:
		return genomic.OrientRight
	case genomic.OrientRight:
		return genomic.OrientLeft
	default:
		return o
	}
}

// FlankingMetrics returns the median and population standard deviation
// about the median of every accepted flanking pair's fragment-size range
// endpoints, taken verbatim from flanking_metrics in the original (stdev
// about the median, not the mean).
func (e *EventCall) FlankingMetrics() (median, stdev float64) {
	var vals []float64
	for p := range e.FlankingPairs {
		frag := e.SourceEvidence.ComputeFragmentSize(p.First, p.Second)
		vals = append(vals, float64(frag.Start), float64(frag.End))
	}
	if len(vals) == 0 {
		return 0, 0
	}
	sort.Float64s(vals)
	n := len(vals)
	if n%2 == 1 {
		median = vals[n/2]
	} else {
		median = (vals[n/2-1] + vals[n/2]) / 2
	}
	var sumSq float64
	for _, v := range vals {
		d := v - median
		sumSq += d * d
	}
	stdev = math.Sqrt(sumSq / float64(n))
	return median, stdev
}

// Break1SplitReadNames returns the sorted set of query names contributing
// to Break1SplitReads.
func (e *EventCall) Break1SplitReadNames() []string { return readNames(e.Break1SplitReads) }

// Break2SplitReadNames returns the sorted set of query names contributing
// to Break2SplitReads.
func (e *EventCall) Break2SplitReadNames() []string { return readNames(e.Break2SplitReads) }

// LinkingSplitReadNames is the intersection of Break1SplitReadNames and
// Break2SplitReadNames: reads whose split alignment links both sides.
func (e *EventCall) LinkingSplitReadNames() []string {
	set1 := map[string]struct{}{}
	for r := range e.Break1SplitReads {
		set1[r.QueryName()] = struct{}{}
	}
	var out []string
	for r := range e.Break2SplitReads {
		if _, ok := set1[r.QueryName()]; ok {
			out = append(out, r.QueryName())
		}
	}
	sort.Strings(out)
	return out
}

func readNames(rs map[reads.Read]struct{}) []string {
	var out []string
	for r := range rs {
		out = append(out, r.QueryName())
	}
	sort.Strings(out)
	return out
}

// GetBedRepresentation returns the BED rows describing this call: two rows
// (one per breakpoint) for an interchromosomal event, one spanning row
// otherwise, matching get_bed_repesentation in the original.
func (e *EventCall) GetBedRepresentation() [][4]string {
	name := fmt.Sprintf("%s-%s", e.CallMethod, e.EventType)
	if e.Interchromosomal() {
		return [][4]string{
			{e.Break1.Chr, fmt.Sprint(e.Break1.Pos.Start - 1), fmt.Sprint(e.Break1.Pos.End), name},
			{e.Break2.Chr, fmt.Sprint(e.Break2.Pos.Start - 1), fmt.Sprint(e.Break2.Pos.End), name},
		}
	}
	start, end := e.Break1.Pos.Start, e.Break2.Pos.End
	if e.Break2.Pos.End < e.Break1.Pos.End {
		end = e.Break1.Pos.End
	}
	return [][4]string{{e.Break1.Chr, fmt.Sprint(start - 1), fmt.Sprint(end), name}}
}
