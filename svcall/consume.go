package svcall

import "github.com/grailbio/svcall/reads"

// filterConsumedReads returns the reads of rs not present in consumed,
// implementing the "evidence.split_reads[i] − consumed_evidence" style
// filters spec.md's resolvers apply before bucketing.
func filterConsumedReads(rs []reads.Read, consumed map[reads.Read]struct{}) []reads.Read {
	var out []reads.Read
	for _, r := range rs {
		if _, ok := consumed[r]; !ok {
			out = append(out, r)
		}
	}
	return out
}

// filterConsumedPairs returns the pairs of pairs where neither mate is in
// consumed.
func filterConsumedPairs(pairs []reads.Pair, consumed map[reads.Read]struct{}) []reads.Pair {
	var out []reads.Pair
	for _, p := range pairs {
		_, c1 := consumed[p.First]
		_, c2 := consumed[p.Second]
		if !c1 && !c2 {
			out = append(out, p)
		}
	}
	return out
}

func addReads(dst map[reads.Read]struct{}, rs []reads.Read) {
	for _, r := range rs {
		dst[r] = struct{}{}
	}
}

func addSupportTo(dst map[reads.Read]struct{}, call *EventCall) {
	for r := range call.Support() {
		dst[r] = struct{}{}
	}
}
