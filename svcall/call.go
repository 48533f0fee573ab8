package svcall

import (
	"context"
	"sort"
	"strings"

	"github.com/grailbio/svcall/reads"
	"github.com/pkg/errors"
)

// CallEvents runs the four-method resolution pipeline over one Evidence
// bundle in strict priority order (contig, span, split, flank per event
// type), per spec.md §4.2. ctx is checked for cancellation between method
// boundaries only; the pipeline itself never suspends.
//
// If no method produces a single call, CallEvents fails with one error
// aggregating every diagnostic the resolvers recorded (sorted,
// semicolon-joined, per spec.md §7), or the literal "insufficient evidence
// to call events" if no resolver recorded a diagnostic at all. An Evidence
// bundle with no contigs, spanning, split or flanking reads fails with that
// literal before any resolver runs.
func CallEvents(ctx context.Context, source Evidence, config Config) ([]*EventCall, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	side1, side2 := source.SplitReads()
	if len(source.Contigs())+len(source.SpanningReads())+len(side1)+len(side2)+
		len(source.FlankingPairs())+len(source.CompatibleFlankingPairs()) == 0 {
		return nil, errors.New("insufficient evidence to call events")
	}

	var calls []*EventCall
	consumed := map[reads.Read]struct{}{}
	var diagnostics []string

	contigCalls := callByContigs(source)
	calls = append(calls, contigCalls...)
	for _, c := range contigCalls {
		addSupportTo(consumed, c)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	spanCalls := callBySpanningReads(source, config, consumed)
	calls = append(calls, spanCalls...)
	for _, c := range spanCalls {
		addSupportTo(consumed, c)
	}

	// baseline is fixed once contig and span resolution have run; every event
	// type starts fresh from it so that split/flank resolutions for one
	// putative type compete with each other but never see reads another
	// type's resolver will go on to consume, per spec.md §4.2 step 3.
	baseline := consumed

	for _, eventType := range source.PutativeEventTypes().Sorted() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		local := copyReadSet(baseline)
		splitCalls, newlyConsumed, splitErr := callBySupportingReads(source, config, eventType, local)
		if len(splitCalls) > 0 {
			calls = append(calls, splitCalls...)
			for r := range newlyConsumed {
				local[r] = struct{}{}
			}
		} else if splitErr != "" {
			diagnostics = append(diagnostics, splitErr)
		}

		b1, b2, pairs, ok, flankErr := callByFlankingPairs(source, config, eventType, nil, nil, local)
		if ok {
			call := NewEventCall(b1, b2, source, eventType, CallMethodFlank, nil, nil, "")
			call.AddFlankingSupport(pairs, false)
			calls = append(calls, call)
		} else if flankErr != "" {
			diagnostics = append(diagnostics, flankErr)
		}
	}

	if len(calls) == 0 {
		if len(diagnostics) == 0 {
			return nil, errors.New("insufficient evidence to call events")
		}
		sort.Strings(diagnostics)
		return nil, errors.New(strings.Join(dedupeStrings(diagnostics), ";"))
	}
	return calls, nil
}

func copyReadSet(src map[reads.Read]struct{}) map[reads.Read]struct{} {
	dst := make(map[reads.Read]struct{}, len(src))
	for r := range src {
		dst[r] = struct{}{}
	}
	return dst
}

func dedupeStrings(ss []string) []string {
	var out []string
	for i, s := range ss {
		if i == 0 || s != ss[i-1] {
			out = append(out, s)
		}
	}
	return out
}
