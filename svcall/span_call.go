package svcall

import (
	"github.com/grailbio/svcall/genomic"
	"github.com/grailbio/svcall/reads"
)

type spanGroup struct {
	event ReadEvent
	reads []reads.Read
}

// callBySpanningReads is the second-priority resolver (§4.2 step 2): a
// spanning read's own alignment may directly imply a small event. Reads are
// grouped by the event each one calls (ReadEvent is comparable, so it works
// directly as a map key); a group large enough to meet
// MinSpanningReadsResolution, whose OpposingStrands matches the evidence,
// produces one EventCall per SV type common to both the evidence's own
// geometry and the group's. Support and consumption follow the same shape
// as callByContigs, restricted to the reads not already consumed.
func callBySpanningReads(source Evidence, config Config, consumed map[reads.Read]struct{}) []*EventCall {
	available := filterConsumedReads(source.SpanningReads(), consumed)

	index := map[ReadEvent]*spanGroup{}
	var order []*spanGroup
	for _, r := range available {
		for _, ev := range source.CallReadEvents(r) {
			g, ok := index[ev]
			if !ok {
				g = &spanGroup{event: ev}
				index[ev] = g
				order = append(order, g)
			}
			g.reads = append(g.reads, r)
		}
	}

	stranded := source.Stranded() && source.BamCacheStranded()
	evidenceTypes := genomic.ClassifyWithTolerance(BreakpointPairOf(source), source.Distance)

	flanking := filterConsumedPairs(source.FlankingPairs(), consumed)
	compatFlanking := filterConsumedPairs(source.CompatibleFlankingPairs(), consumed)
	side1, side2 := source.SplitReads()
	side1 = filterConsumedReads(side1, consumed)
	side2 = filterConsumedReads(side2, consumed)

	var calls []*EventCall
	for _, g := range order {
		if len(g.reads) < config.MinSpanningReadsResolution {
			continue
		}
		if g.event.OpposingStrands != source.OpposingStrands() {
			continue
		}
		groupTypes := genomic.ClassifyWithTolerance(g.event.AsPair(stranded), source.Distance)
		for _, t := range evidenceTypes.Intersect(groupTypes).Sorted() {
			call := NewEventCall(g.event.Break1, g.event.Break2, source, t, CallMethodSpan, nil, nil, g.event.UntemplatedSeq)
			for _, r := range g.reads {
				call.SpanningReads[r] = struct{}{}
			}
			call.AddFlankingSupport(flanking, false)
			if call.HasCompatible() {
				call.AddFlankingSupport(compatFlanking, true)
			}
			for _, r := range side1 {
				call.AddBreak1SplitRead(r)
			}
			for _, r := range side2 {
				call.AddBreak2SplitRead(r)
			}
			calls = append(calls, call)
		}
	}
	return calls
}
