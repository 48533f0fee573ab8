package assemble

// Contig is one putative assembled sequence, scored by the total edge
// frequency along the de Bruijn path it was read off of, plus the set of
// input reads that remap onto it.
type Contig struct {
	Seq   string
	Score int

	// remapped maps a read sequence (canonicalized to whichever of itself or
	// its reverse complement was first seen) to a weight in (0, 1], folded
	// down when the same read multimaps to several contigs.
	remapped map[string]float64
}

func newContig(seq string, score int) *Contig {
	return &Contig{Seq: seq, Score: score, remapped: map[string]float64{}}
}

// AddMappedRead records that read remapped onto this contig, sharing the
// mapping with multimap-1 other contigs. A read and its reverse complement
// are folded into a single entry: whichever form was recorded first is the
// one kept, matching the original assembler's read de-duplication, which
// does not care about the strand a read happened to remap in.
func (c *Contig) AddMappedRead(read string, multimap int) {
	if multimap < 1 {
		multimap = 1
	}
	weight := 1.0 / float64(multimap)
	rc := reverseComplement(read)
	if existing, ok := c.remapped[rc]; ok {
		if weight < existing {
			c.remapped[rc] = weight
		}
		return
	}
	if existing, ok := c.remapped[read]; ok && weight >= existing {
		return
	}
	c.remapped[read] = weight
}

// RemapScore is the sum of per-read weights of every read remapped onto
// this contig.
func (c *Contig) RemapScore() float64 {
	var total float64
	for _, w := range c.remapped {
		total += w
	}
	return total
}

// RemappedReads returns the set of read sequences (in whichever of
// forward/reverse-complement form was recorded) mapped onto this contig.
func (c *Contig) RemappedReads() []string {
	out := make([]string, 0, len(c.remapped))
	for read := range c.remapped {
		out = append(out, read)
	}
	return out
}
