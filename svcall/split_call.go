package svcall

import (
	"sort"

	"github.com/grailbio/svcall/genomic"
	"github.com/grailbio/svcall/reads"
)

type splitBucket struct {
	pos   int
	reads []reads.Read
}

func bucketSplitReads(candidates []reads.Read, orient genomic.Orient, source Evidence) []splitBucket {
	byPos := map[int][]reads.Read{}
	var order []int
	for _, r := range candidates {
		pos := source.BreakpointPos(r, orient) + 1
		if _, ok := byPos[pos]; !ok {
			order = append(order, pos)
		}
		byPos[pos] = append(byPos[pos], r)
	}
	sort.Ints(order)
	out := make([]splitBucket, 0, len(order))
	for _, pos := range order {
		out = append(out, splitBucket{pos: pos, reads: byPos[pos]})
	}
	return out
}

func nonTargetAlignedCount(rs []reads.Read) int {
	n := 0
	for _, r := range rs {
		if !r.HasTag(TargetedAlignmentTag) {
			n++
		}
	}
	return n
}

func filterSplitBuckets(buckets []splitBucket, config Config) []splitBucket {
	var out []splitBucket
	for _, b := range buckets {
		if len(b.reads) < config.MinSplitsReadsResolution {
			continue
		}
		if nonTargetAlignedCount(b.reads) < config.MinNonTargetAlignedSplitReads {
			continue
		}
		out = append(out, b)
	}
	return out
}

// linkCount is the number of distinct query names present in both buckets.
func linkCount(b1, b2 []reads.Read) int {
	names := map[string]struct{}{}
	for _, r := range b1 {
		names[r.QueryName()] = struct{}{}
	}
	seen := map[string]struct{}{}
	count := 0
	for _, r := range b2 {
		if _, ok := names[r.QueryName()]; !ok {
			continue
		}
		if _, dup := seen[r.QueryName()]; dup {
			continue
		}
		seen[r.QueryName()] = struct{}{}
		count++
	}
	return count
}

// tgtAlignCount counts, once per query_name (spec.md §9's resolution of the
// double-counting open question), reads whose own sequenced bases appear
// identically in both buckets — the same physical read molecule, not just
// its mate, split-aligned to both breakpoints.
func tgtAlignCount(b1, b2 []reads.Read) int {
	seqByName := map[string]string{}
	for _, r := range b1 {
		seqByName[r.QueryName()] = r.QuerySequence()
	}
	seen := map[string]struct{}{}
	count := 0
	for _, r := range b2 {
		if _, dup := seen[r.QueryName()]; dup {
			continue
		}
		if seq, ok := seqByName[r.QueryName()]; ok && seq == r.QuerySequence() {
			seen[r.QueryName()] = struct{}{}
			count++
		}
	}
	return count
}

// resolvePairedReadEvent looks across every (r1, r2) pair drawn one from
// each bucket for reads whose own independently-called event agrees with
// eventType (or its compatible type). If exactly one distinct such event is
// found, its precise breakpoints and untemplated sequence replace the point
// estimate the bucket positions alone would give.
func resolvePairedReadEvent(source Evidence, b1, b2 []reads.Read, eventType genomic.SVType) (ReadEvent, bool) {
	compat := genomic.CompatibleType(eventType)
	seen := map[ReadEvent]struct{}{}
	var resolved []ReadEvent
	for _, r1 := range b1 {
		for _, r2 := range b2 {
			ev, ok := source.CallPairedReadEvent(r1, r2)
			if !ok {
				continue
			}
			if _, dup := seen[ev]; dup {
				continue
			}
			stranded := source.Stranded() && source.BamCacheStranded()
			types := genomic.ClassifyWithTolerance(ev.AsPair(stranded), source.Distance)
			if types.Contains(eventType) || (compat != genomic.SVTypeNone && types.Contains(compat)) {
				seen[ev] = struct{}{}
				resolved = append(resolved, ev)
			}
		}
	}
	if len(resolved) == 1 {
		return resolved[0], true
	}
	return ReadEvent{}, false
}

// callBySupportingReads is the split-read resolver of §4.3: for one
// putative event type, bucket each side's split reads by clip position,
// pair surviving buckets, and emit one EventCall per surviving pairing.
// Returns the calls, the reads they newly consume, and a diagnostic string
// (non-empty only when no call was produced).
func callBySupportingReads(source Evidence, config Config, eventType genomic.SVType, consumed map[reads.Read]struct{}) ([]*EventCall, map[reads.Read]struct{}, string) {
	side1raw, side2raw := source.SplitReads()
	side1 := filterConsumedReads(side1raw, consumed)
	side2 := filterConsumedReads(side2raw, consumed)

	buckets1 := filterSplitBuckets(bucketSplitReads(side1, source.Break1().Orient, source), config)
	buckets2 := filterSplitBuckets(bucketSplitReads(side2, source.Break2().Orient, source), config)

	sameChr := !source.Interchromosomal()
	flanking := filterConsumedPairs(source.FlankingPairs(), consumed)
	compatFlanking := filterConsumedPairs(source.CompatibleFlankingPairs(), consumed)

	var calls []*EventCall
	newlyConsumed := map[reads.Read]struct{}{}

	for _, b1 := range buckets1 {
		for _, b2 := range buckets2 {
			if sameChr && b1.pos >= b2.pos {
				continue
			}
			links := linkCount(b1.reads, b2.reads)
			if links < config.MinLinkingSplitReads {
				continue
			}

			deletionSize := b2.pos - b1.pos - 1
			maxInsert := source.ReadLength() - 2*source.MinSoftclipping()
			tgtAlign := tgtAlignCount(b1.reads, b2.reads)
			if tgtAlign >= config.MinDoubleAlignedToEstimateInsertionSize {
				if eventType == genomic.INS && maxInsert < deletionSize {
					continue
				}
				if eventType == genomic.DEL && deletionSize < maxInsert {
					continue
				}
			} else if links >= config.MinDoubleAlignedToEstimateInsertionSize &&
				eventType == genomic.INS && deletionSize > source.MaxExpectedFragmentSize() {
				continue
			}

			b1break := genomic.NewBreakpointRange(source.Break1().Chr, b1.pos, b1.pos, source.Break1().Orient, genomic.StrandNS)
			b2break := genomic.NewBreakpointRange(source.Break2().Chr, b2.pos, b2.pos, source.Break2().Orient, genomic.StrandNS)
			untemplatedSeq := ""
			if resolved, ok := resolvePairedReadEvent(source, b1.reads, b2.reads, eventType); ok {
				b1break, b2break, untemplatedSeq = resolved.Break1, resolved.Break2, resolved.UntemplatedSeq
			}

			call := NewEventCall(b1break, b2break, source, eventType, CallMethodSplit, nil, nil, untemplatedSeq)
			addReads(call.Break1SplitReads, b1.reads)
			addReads(call.Break2SplitReads, b2.reads)
			call.AddFlankingSupport(flanking, false)
			if call.HasCompatible() {
				call.AddFlankingSupport(compatFlanking, true)
			}
			addReads(newlyConsumed, b1.reads)
			addReads(newlyConsumed, b2.reads)
			calls = append(calls, call)
		}
	}

	if len(calls) == 0 {
		return nil, newlyConsumed, "insufficient split read support"
	}
	return calls, newlyConsumed, ""
}
