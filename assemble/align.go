package assemble

// alignment is one ungapped placement of a query against a contig: the
// contig offset the query starts at (which may be negative, or run past the
// contig's end, when the query overhangs), and the match statistics over
// the overlapping region.
type alignment struct {
	offset  int
	matches int
	length  int
}

// matchPercent is the fraction of the overlapping region that matched.
func (a alignment) matchPercent() float64 {
	if a.length == 0 {
		return 0
	}
	return float64(a.matches) / float64(a.length)
}

// alignUngapped finds every offset at which query can be placed against
// contig with at least minOverlap bases of overlap, achieving the best
// match fraction. This is a no-soft-clip-between alignment: the read is
// never broken up to improve its score, only slid to a different start
// position, mirroring the "re-aligned reads" nsb_align performs when
// remapping reads onto an assembled contig.
func alignUngapped(contig, query string, minOverlap int) []alignment {
	var best []alignment
	bestScore := -1.0
	for offset := -len(query) + minOverlap; offset <= len(contig)-minOverlap; offset++ {
		start := offset
		if start < 0 {
			start = 0
		}
		end := offset + len(query)
		if end > len(contig) {
			end = len(contig)
		}
		length := end - start
		if length < minOverlap {
			continue
		}
		matches := 0
		for i := start; i < end; i++ {
			if contig[i] == query[i-offset] {
				matches++
			}
		}
		score := float64(matches) / float64(length)
		switch {
		case score > bestScore:
			bestScore = score
			best = []alignment{{offset: offset, matches: matches, length: length}}
		case score == bestScore:
			best = append(best, alignment{offset: offset, matches: matches, length: length})
		}
	}
	return best
}
