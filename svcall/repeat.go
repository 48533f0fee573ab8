package svcall

import (
	"strings"

	"github.com/grailbio/svcall/genomic"
	"github.com/grailbio/svcall/refgenome"
)

// CharacterizeRepeatRegion counts how many copies of the indel unit abut
// call's breakpoint on the reference, per spec.md §4.6. ok is false if
// either breakpoint is imprecise or the event type/sequence combination is
// nonsensical (the original silently yields None in both cases).
func CharacterizeRepeatRegion(call *EventCall, genome *refgenome.Genome) (count int, ok bool) {
	if call.Break1.Len()+call.Break2.Len() > 2 {
		return 0, false
	}

	var unit string
	var rightmost int
	switch call.EventType {
	case genomic.DEL:
		seq, err := genome.Seq(call.Break1.Chr, call.Break1.Pos.Start, call.Break2.Pos.End-1)
		if err != nil {
			return 0, false
		}
		unit = seq
		rightmost = call.Break1.Pos.Start
	case genomic.DUP:
		seq, err := genome.Seq(call.Break1.Chr, call.Break1.Pos.Start-1, call.Break2.Pos.End)
		if err != nil {
			return 0, false
		}
		unit = seq
		rightmost = call.Break1.Pos.Start - 1
	case genomic.INS:
		if call.UntemplatedSeq == "" {
			return 0, false
		}
		unit = call.UntemplatedSeq
		rightmost = call.Break1.Pos.Start
	default:
		return 0, false
	}
	if unit == "" {
		return 0, false
	}

	unit = strings.ToUpper(unit)
	n := len(unit)
	for {
		start := rightmost - n
		if start < 1 {
			break
		}
		seq, err := genome.Seq(call.Break1.Chr, start, rightmost-1)
		if err != nil || strings.ToUpper(seq) != unit {
			break
		}
		count++
		rightmost -= n
	}
	return count, true
}
