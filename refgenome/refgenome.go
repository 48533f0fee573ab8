// Package refgenome adapts a FASTA-backed reference into the per-chromosome
// sequence lookup the caller and assembler use to fetch flanking and
// breakpoint-adjacent reference sequence.
package refgenome

import (
	"github.com/grailbio/svcall/encoding/fasta"
	"github.com/pkg/errors"
)

// Genome is a reference genome keyed by chromosome name, the
// reference_genome[chr].seq collaborator the caller and assembler consult
// for reference-sequence lookups.
type Genome struct {
	fa fasta.Fasta
}

// New wraps an already-loaded fasta.Fasta as a Genome.
func New(fa fasta.Fasta) *Genome {
	return &Genome{fa: fa}
}

// Seq returns the 1-based, closed-interval substring [start, end] of chr.
// This mirrors the genomic.Interval convention used throughout the caller,
// translating to fasta.Fasta's 0-based half-open convention at the boundary.
func (g *Genome) Seq(chr string, start, end int) (string, error) {
	if start < 1 || end < start {
		return "", errors.Errorf("refgenome: invalid range [%d,%d] for %s", start, end, chr)
	}
	s, err := g.fa.Get(chr, uint64(start-1), uint64(end))
	if err != nil {
		return "", errors.Wrapf(err, "refgenome: %s:%d-%d", chr, start, end)
	}
	return s, nil
}

// Len returns the length of the named chromosome.
func (g *Genome) Len(chr string) (int, error) {
	n, err := g.fa.Len(chr)
	if err != nil {
		return 0, errors.Wrapf(err, "refgenome: %s", chr)
	}
	return int(n), nil
}

// Chromosomes returns the names of every chromosome the genome has sequence
// for, in FASTA file order.
func (g *Genome) Chromosomes() []string {
	return g.fa.SeqNames()
}

// HasChromosome reports whether chr is present in the genome.
func (g *Genome) HasChromosome(chr string) bool {
	for _, name := range g.fa.SeqNames() {
		if name == chr {
			return true
		}
	}
	return false
}
