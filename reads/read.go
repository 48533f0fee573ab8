// Package reads wraps biogo/hts/sam records with the read-level queries the
// caller and assembler need: orientation, clipping, and tag lookup, without
// pulling in BAM file I/O.
package reads

import (
	"github.com/biogo/hts/sam"
)

// Read is a single aligned (or unaligned) sequencing read.
type Read struct {
	*sam.Record
}

// New wraps a sam.Record as a Read.
func New(r *sam.Record) Read { return Read{r} }

// QueryName is the read's name, shared by both mates of a pair.
func (r Read) QueryName() string { return r.Name }

// Mapped reports whether the read has a placement on the reference.
func (r Read) Mapped() bool { return r.Flags&sam.Unmapped == 0 }

// MateMapped reports whether the read's mate has a placement.
func (r Read) MateMapped() bool { return r.Flags&sam.MateUnmapped == 0 }

// Reversed reports whether the read aligns to the reverse strand.
func (r Read) Reversed() bool { return r.Flags&sam.Reverse != 0 }

// MateReversed reports whether the read's mate aligns to the reverse strand.
func (r Read) MateReversed() bool { return r.Flags&sam.MateReverse != 0 }

// Mate reports whether this is the second read in its pair (read2).
func (r Read) Mate() bool { return r.Flags&sam.Read2 != 0 }

// Supplementary reports whether the read is a supplementary (chimeric)
// alignment record, per the SAM spec's 0x800 flag.
func (r Read) Supplementary() bool { return r.Flags&sam.Supplementary != 0 }

// Secondary reports whether the read is a secondary alignment.
func (r Read) Secondary() bool { return r.Flags&sam.Secondary != 0 }

// ProperPair reports whether the aligner flagged the pair as concordant.
func (r Read) ProperPair() bool { return r.Flags&sam.ProperPair != 0 }

// Primary reports whether the read is neither secondary nor supplementary;
// the caller only ever reasons about primary alignments directly, folding
// supplementary records in as split-read evidence instead.
func (r Read) Primary() bool { return !r.Secondary() && !r.Supplementary() }

// RefName returns the reference sequence name the read aligns to, or "" if
// unmapped.
func (r Read) RefName() string {
	if r.Ref == nil {
		return ""
	}
	return r.Ref.Name()
}

// MateRefName returns the reference sequence name of the read's mate, or ""
// if the mate is unmapped or there is no mate.
func (r Read) MateRefName() string {
	if r.Record.MateRef == nil {
		return ""
	}
	return r.Record.MateRef.Name()
}

// ClipLengths returns the number of soft-clipped bases at the start and end
// of the read's alignment, per its CIGAR string. Both are zero for an
// unclipped or unmapped read.
func (r Read) ClipLengths() (leading, trailing int) {
	cigar := r.Cigar
	if len(cigar) == 0 {
		return 0, 0
	}
	if op := cigar[0]; op.Type() == sam.CigarSoftClipped {
		leading = op.Len()
	}
	if op := cigar[len(cigar)-1]; op.Type() == sam.CigarSoftClipped {
		trailing = op.Len()
	}
	return leading, trailing
}

// HasTag reports whether the read carries an auxiliary tag with the given
// two-letter name.
func (r Read) HasTag(name string) bool {
	return r.AuxFields.Get(sam.NewTag(name)) != nil
}

// Tag returns the value of the named auxiliary tag, and whether it was
// present.
func (r Read) Tag(name string) (interface{}, bool) {
	aux := r.AuxFields.Get(sam.NewTag(name))
	if aux == nil {
		return nil, false
	}
	return aux.Value(), true
}

// End returns the 0-based exclusive end of the read's alignment on the
// reference (one past the last covered base), which is also the 1-based
// position of the last covered base.
func (r Read) End() int {
	return r.Record.End()
}

// QuerySequence returns the read's sequenced bases, expanded from the
// record's packed representation.
func (r Read) QuerySequence() string {
	return string(r.Record.Seq.Expand())
}
