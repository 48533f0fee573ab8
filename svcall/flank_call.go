package svcall

import (
	"github.com/grailbio/svcall/genomic"
	"github.com/grailbio/svcall/reads"
)

// callIntervalByFlankingCoverage computes the breakpoint window implied by
// one side's observed flanking-pair coverage, per spec.md §4.4. Fails if
// the coverage itself is already wider than the expected fragment size
// allows.
func callIntervalByFlankingCoverage(source Evidence, coverage genomic.Interval, orient genomic.Orient) (genomic.Interval, string) {
	maxLen := source.MaxExpectedFragmentSize() - source.ReadLength()
	d := source.Distance(coverage.Start, coverage.End).Start + 1
	if d > maxLen {
		return genomic.Interval{}, "flanking coverage too wide for expected fragment size"
	}
	length := maxLen - d

	switch orient {
	case genomic.OrientLeft:
		return genomic.NewInterval(coverage.End, source.Traverse(coverage.End, length, genomic.OrientRight).End), ""
	case genomic.OrientRight:
		start := source.Traverse(coverage.Start, length, genomic.OrientLeft).Start
		if start < 1 {
			start = 1
		}
		return genomic.NewInterval(start, coverage.Start), ""
	default:
		return genomic.Interval{}, "breakpoint orientation unknown"
	}
}

func coverageOf(rs []reads.Read) genomic.Interval {
	var cov genomic.Interval
	for i, r := range rs {
		iv := genomic.NewInterval(r.Pos+1, r.End())
		if i == 0 {
			cov = iv
		} else {
			cov = cov.Union(iv)
		}
	}
	return cov
}

// callByFlankingPairs resolves a breakpoint pair purely from flanking-pair
// coverage, per spec.md §4.4. At most one of fixed1/fixed2 may be non-nil,
// fixing that side to a breakpoint already resolved another way (e.g. one
// side of a split-read pairing); supplying both is a fatal invariant, not a
// recoverable failure, per spec.md §7.
func callByFlankingPairs(source Evidence, config Config, eventType genomic.SVType, fixed1, fixed2 *genomic.Breakpoint, consumed map[reads.Read]struct{}) (b1, b2 genomic.Breakpoint, pairs []reads.Pair, ok bool, diagnostic string) {
	if fixed1 != nil && fixed2 != nil {
		panic("svcall: cannot input both breakpoints to the flanking-pair resolver")
	}

	candidates := filterConsumedPairs(source.FlankingPairs(), consumed)
	var accepted []reads.Pair
	for _, p := range candidates {
		frag := source.ComputeFragmentSize(p.First, p.Second)
		switch eventType {
		case genomic.DEL:
			if frag.End <= source.MaxExpectedFragmentSize() {
				continue
			}
		case genomic.INS:
			if frag.Start >= source.MinExpectedFragmentSize() {
				continue
			}
		}
		accepted = append(accepted, p)
	}
	if len(accepted) < config.MinFlankingPairsResolution {
		return genomic.Breakpoint{}, genomic.Breakpoint{}, nil, false, "insufficient flanking pair support"
	}

	var side1Reads, side2Reads []reads.Read
	for _, p := range accepted {
		side1Reads = append(side1Reads, p.First)
		side2Reads = append(side2Reads, p.Second)
	}
	cover1, cover2 := coverageOf(side1Reads), coverageOf(side2Reads)

	if cover1.Overlaps(cover2) {
		if eventType != genomic.DUP {
			return genomic.Breakpoint{}, genomic.Breakpoint{}, nil, false, "coverage overlaps"
		}
		if !(cover1.Start > cover2.Start || cover2.End < cover1.End) {
			return genomic.Breakpoint{}, genomic.Breakpoint{}, nil, false, "coverage overlaps"
		}
	}

	b1orient, b2orient := source.Break1().Orient, source.Break2().Orient

	var window1, window2 genomic.Interval
	var diag string
	switch {
	case fixed1 == nil && fixed2 == nil:
		if window1, diag = callIntervalByFlankingCoverage(source, cover1, b1orient); diag != "" {
			return genomic.Breakpoint{}, genomic.Breakpoint{}, nil, false, diag
		}
		if window2, diag = callIntervalByFlankingCoverage(source, cover2, b2orient); diag != "" {
			return genomic.Breakpoint{}, genomic.Breakpoint{}, nil, false, diag
		}
		clipWindows(&window1, &window2, cover1, cover2, eventType, source.Interchromosomal())
	case fixed1 != nil:
		window1 = fixed1.Pos
		if window2, diag = callIntervalByFlankingCoverage(source, cover2, b2orient); diag != "" {
			return genomic.Breakpoint{}, genomic.Breakpoint{}, nil, false, diag
		}
		clipWindows(&window1, &window2, cover1, cover2, eventType, source.Interchromosomal())
	case fixed2 != nil:
		window2 = fixed2.Pos
		if window1, diag = callIntervalByFlankingCoverage(source, cover1, b1orient); diag != "" {
			return genomic.Breakpoint{}, genomic.Breakpoint{}, nil, false, diag
		}
		clipWindows(&window1, &window2, cover1, cover2, eventType, source.Interchromosomal())
	}

	strand1, strand2 := genomic.StrandNS, genomic.StrandNS
	if source.Stranded() {
		strand1 = source.DecideSequencedStrand(side1Reads)
		strand2 = source.DecideSequencedStrand(side2Reads)
	}

	b1 = genomic.Breakpoint{Chr: source.Break1().Chr, Pos: window1, Orient: b1orient, Strand: strand1}
	b2 = genomic.Breakpoint{Chr: source.Break2().Chr, Pos: window2, Orient: b2orient, Strand: strand2}
	if fixed1 != nil {
		b1 = *fixed1
	}
	if fixed2 != nil {
		b2 = *fixed2
	}
	return b1, b2, accepted, true, ""
}

// clipWindows applies spec.md §4.4's window-refinement rule for
// intra-chromosomal events: window1.end shrinks to the tightest of itself,
// window2.end, and cover2.start adjusted by the DUP-specific off-by-one;
// window2.start is clipped symmetrically.
func clipWindows(window1, window2 *genomic.Interval, cover1, cover2 genomic.Interval, eventType genomic.SVType, interchromosomal bool) {
	if interchromosomal {
		return
	}
	dupAdj := 1
	if eventType == genomic.DUP {
		dupAdj = 0
	}
	if window2.End < window1.End {
		window1.End = window2.End
	}
	if cover2.Start-dupAdj < window1.End {
		window1.End = cover2.Start - dupAdj
	}
	if window1.Start > window2.Start {
		window2.Start = window1.Start
	}
	if cover1.End+dupAdj > window2.Start {
		window2.Start = cover1.End + dupAdj
	}
}
