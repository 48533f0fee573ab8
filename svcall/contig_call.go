package svcall

import "github.com/grailbio/svcall/genomic"

// callByContigs is the highest-priority resolver (§4.2 step 1): every
// alignment of every assembled contig becomes a candidate call directly.
// Contig calls never consume reads from each other — each alignment is an
// independent hypothesis — but their combined support is folded into
// consumed_evidence by the orchestrator once this resolver returns.
func callByContigs(source Evidence) []*EventCall {
	spanning := source.SpanningReads()
	b1split, b2split := source.SplitReads()
	flanking := source.FlankingPairs()
	compatFlanking := source.CompatibleFlankingPairs()

	var calls []*EventCall
	for _, ctg := range source.Contigs() {
		ctg := ctg
		for _, aln := range ctg.Alignments {
			aln := aln
			if aln.IsPutativeIndel {
				net := aln.NetSize(source.Distance)
				if net.Start == 0 && net.End == 0 {
					continue
				}
			}

			stranded := source.Stranded() && source.BamCacheStranded()
			opposingStrands := false
			if stranded && aln.Break1.Strand != genomic.StrandNS && aln.Break2.Strand != genomic.StrandNS {
				opposingStrands = aln.Break1.Strand != aln.Break2.Strand
			}
			pair := genomic.NewBreakpointPair(aln.Break1, aln.Break2, opposingStrands, stranded, aln.UntemplatedSeq)

			for _, t := range genomic.ClassifyWithTolerance(pair, source.Distance).Sorted() {
				call := NewEventCall(aln.Break1, aln.Break2, source, t, CallMethodContig, &ctg, &aln, aln.UntemplatedSeq)
				call.AddFlankingSupport(flanking, false)
				if call.HasCompatible() {
					call.AddFlankingSupport(compatFlanking, true)
				}
				for _, r := range spanning {
					call.AddSpanningRead(r)
				}
				for _, r := range b1split {
					call.AddBreak1SplitRead(r)
				}
				for _, r := range b2split {
					call.AddBreak2SplitRead(r)
				}
				calls = append(calls, call)
			}
		}
	}
	return calls
}
