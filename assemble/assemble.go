// Package assemble builds local sequence contigs from a pile of short reads
// by de Bruijn graph assembly: kmerize every input sequence, collapse shared
// (k-1)-mers into graph nodes, trim low-support tails, and enumerate the
// simple paths through what remains as candidate contigs.
package assemble

import (
	"sort"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// Assemble builds contigs from sequences, returning them alongside run
// statistics. An empty input returns (nil, Stats{}, nil).
func Assemble(sequences []string, opts Opts) ([]*Contig, Stats, error) {
	var stats Stats
	if len(sequences) == 0 {
		return nil, stats, nil
	}
	stats.InputSequences = len(sequences)

	minSeq := len(sequences[0])
	for _, s := range sequences {
		if len(s) < minSeq {
			minSeq = len(s)
		}
	}

	kmerSize := opts.KmerSize
	switch {
	case kmerSize == 0:
		kmerSize = int(float64(minSeq) * 0.75)
		if kmerSize < 10 {
			kmerSize = minSeq
			if kmerSize > 10 {
				kmerSize = 10
			}
		}
	case kmerSize > minSeq:
		log.Error.Printf("assemble: kmer size %d larger than shortest input sequence (%d); reset to %d", kmerSize, minSeq, minSeq)
		kmerSize = minSeq
	}
	if kmerSize < 1 {
		return nil, stats, errors.New("assemble: kmer size must be positive")
	}

	minReadMappingOverlap := opts.MinReadMappingOverlap
	if minReadMappingOverlap == 0 {
		minReadMappingOverlap = kmerSize
	}
	minContigLength := opts.MinContigLength
	if minContigLength == 0 {
		minContigLength = minSeq + 1
	}
	minEdgeWeight := opts.MinEdgeWeight
	minMatchQuality := opts.MinMatchQuality

	graph := newDeBruijnGraph()
	for _, s := range sequences {
		ks := kmers(s, kmerSize)
		stats.Kmers += len(ks)
		for _, km := range ks {
			if len(km) < 2 {
				continue
			}
			if err := graph.addEdge(km[:len(km)-1], km[1:]); err != nil {
				return nil, stats, err
			}
		}
	}

	if err := graph.checkAcyclic(); err != nil {
		return nil, stats, err
	}

	stats.NodesTrimmed = graph.trimLowWeightTails(minEdgeWeight)

	pathScores := map[string]int{}
	components := graph.weaklyConnectedComponents()
	for _, component := range components {
		var sources, sinks []string
		for _, n := range component {
			switch {
			case graph.degree(n) == 0:
				// isolated node: not a source, sink, or contributor to any path.
			case graph.inDegree(n) == 0:
				sources = append(sources, n)
			case graph.outDegree(n) == 0:
				sinks = append(sinks, n)
			}
		}
		if len(sources) == 0 || len(sinks) == 0 {
			continue
		}
		stats.Components++
		if len(sources)*len(sinks) > 10 {
			log.Error.Printf("assemble: %d source/sink combinations in one component", len(sources)*len(sinks))
		}
		for _, source := range sources {
			for _, sink := range sinks {
				for _, path := range graph.allSimplePaths(source, sink) {
					seq := path[0]
					score := 0
					for i := 0; i < len(path)-1; i++ {
						seq += path[i+1][len(path[i+1])-1:]
						score += graph.freq[edgeKey{path[i], path[i+1]}]
					}
					if score > pathScores[seq] {
						pathScores[seq] = score
					}
				}
			}
		}
	}

	isInput := make(map[string]bool, len(sequences))
	for _, s := range sequences {
		isInput[s] = true
	}
	var contigs []*Contig
	for seq, score := range pathScores {
		if isInput[seq] || len(seq) < minContigLength {
			continue
		}
		contigs = append(contigs, newContig(seq, score))
	}
	// pathScores is a map, so its iteration order is randomized; sort by
	// sequence so Assemble's output is reproducible across runs.
	sort.Slice(contigs, func(i, j int) bool { return contigs[i].Seq < contigs[j].Seq })
	stats.ContigsEmitted = len(contigs)

	for _, input := range sequences {
		mapsTo := map[*Contig]alignment{}
		for _, contig := range contigs {
			minOverlap := minReadMappingOverlap
			if minOverlap < 1 {
				minOverlap = 1
			}
			candidates := alignUngapped(contig.Seq, input, minOverlap)
			if len(candidates) != 1 {
				continue
			}
			if candidates[0].matchPercent() < minMatchQuality {
				continue
			}
			mapsTo[contig] = candidates[0]
		}
		if len(mapsTo) > 0 {
			stats.ReadsRemapped++
		}
		for contig := range mapsTo {
			contig.AddMappedRead(input, len(mapsTo))
		}
	}

	return contigs, stats, nil
}
