package assemble

import (
	"sort"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"
	"github.com/pkg/errors"
)

// ErrCyclicGraph is returned when the de Bruijn graph built from the input
// sequences contains a cycle. Simple-path enumeration is only defined over a
// DAG; a cyclic graph means the input sequences contain a repeat longer than
// the kmer size, which this assembler does not attempt to resolve.
var ErrCyclicGraph = errors.New("assemble: cyclic de Bruijn graph")

type edgeKey struct{ from, to string }

// deBruijnGraph is a directed multigraph of (k-1)-mer nodes, one edge per
// kmer occurrence, with repeated edges folded into a frequency count. Node
// and edge storage is delegated to a github.com/katalvlaran/lvlath/core.Graph;
// edge frequency is tracked in a side map, mirroring the teacher's own
// edge_freq bookkeeping alongside its graph type.
type deBruijnGraph struct {
	g    *core.Graph
	freq map[edgeKey]int
	eid  map[edgeKey]string
}

func newDeBruijnGraph() *deBruijnGraph {
	return &deBruijnGraph{
		g:    core.NewGraph(core.WithDirected(true), core.WithLoops()),
		freq: map[edgeKey]int{},
		eid:  map[edgeKey]string{},
	}
}

// addEdge records one occurrence of the edge l->r, creating the underlying
// graph edge on first occurrence and incrementing its frequency on every
// occurrence thereafter.
func (dg *deBruijnGraph) addEdge(l, r string) error {
	key := edgeKey{l, r}
	dg.freq[key]++
	if _, ok := dg.eid[key]; ok {
		return nil
	}
	eid, err := dg.g.AddEdge(l, r, 0)
	if err != nil {
		return errors.Wrapf(err, "assemble: add edge %s->%s", l, r)
	}
	dg.eid[key] = eid
	return nil
}

// removeEdge deletes the edge l->r and its frequency entry.
func (dg *deBruijnGraph) removeEdge(l, r string) error {
	key := edgeKey{l, r}
	eid, ok := dg.eid[key]
	if !ok {
		return nil
	}
	if err := dg.g.RemoveEdge(eid); err != nil {
		return errors.Wrapf(err, "assemble: remove edge %s->%s", l, r)
	}
	delete(dg.eid, key)
	delete(dg.freq, key)
	return nil
}

// removeNode deletes a node and every edge incident to it.
func (dg *deBruijnGraph) removeNode(n string) {
	for key := range dg.eid {
		if key.from == n || key.to == n {
			delete(dg.eid, key)
			delete(dg.freq, key)
		}
	}
	// RemoveVertex cascades incident edges in the underlying graph; ignore
	// ErrVertexNotFound for a node already removed via one of its edges.
	_ = dg.g.RemoveVertex(n)
}

func (dg *deBruijnGraph) hasNode(n string) bool { return dg.g.HasVertex(n) }

func (dg *deBruijnGraph) nodes() []string { return dg.g.Vertices() }

// outEdges returns the (from, to) pairs of every edge leaving n.
func (dg *deBruijnGraph) outEdges(n string) []edgeKey {
	var out []edgeKey
	for key := range dg.eid {
		if key.from == n {
			out = append(out, key)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].to < out[j].to })
	return out
}

// inEdges returns the (from, to) pairs of every edge entering n.
func (dg *deBruijnGraph) inEdges(n string) []edgeKey {
	var in []edgeKey
	for key := range dg.eid {
		if key.to == n {
			in = append(in, key)
		}
	}
	sort.Slice(in, func(i, j int) bool { return in[i].from < in[j].from })
	return in
}

func (dg *deBruijnGraph) outDegree(n string) int { return len(dg.outEdges(n)) }
func (dg *deBruijnGraph) inDegree(n string) int  { return len(dg.inEdges(n)) }
func (dg *deBruijnGraph) degree(n string) int    { return dg.inDegree(n) + dg.outDegree(n) }

// checkAcyclic returns ErrCyclicGraph if the graph contains a cycle.
func (dg *deBruijnGraph) checkAcyclic() error {
	cyclic, _, err := dfs.DetectCycles(dg.g)
	if err != nil {
		return errors.Wrap(err, "assemble: cycle detection")
	}
	if cyclic {
		return ErrCyclicGraph
	}
	return nil
}

// trimLowWeightTails removes degree-1 chains of low-frequency edges leading
// into or out of any node, then removes whatever is left isolated. It
// returns the number of nodes removed.
func (dg *deBruijnGraph) trimLowWeightTails(minWeight int) int {
	removed := 0
	for _, n := range dg.nodes() {
		if !dg.hasNode(n) {
			continue
		}
		curr := n
		for dg.hasNode(curr) && dg.degree(curr) == 1 {
			switch {
			case dg.outDegree(curr) == 1:
				key := dg.outEdges(curr)[0]
				if dg.freq[key] < minWeight {
					dg.removeNode(curr)
					removed++
					curr = key.to
				} else {
					curr = ""
				}
			case dg.inDegree(curr) == 1:
				key := dg.inEdges(curr)[0]
				if dg.freq[key] < minWeight {
					dg.removeNode(curr)
					removed++
					curr = key.from
				} else {
					curr = ""
				}
			default:
				curr = ""
			}
			if curr == "" {
				break
			}
		}
	}
	for _, n := range dg.nodes() {
		if dg.hasNode(n) && dg.degree(n) == 0 {
			dg.removeNode(n)
			removed++
		}
	}
	return removed
}

// weaklyConnectedComponents groups nodes reachable from one another while
// ignoring edge direction, the same notion of "component" the original
// assembler derives by rebuilding an undirected graph from the digraph's
// edges (a digraph's weak components are identical to a simple graph's
// connected components built from the same edge set).
func (dg *deBruijnGraph) weaklyConnectedComponents() [][]string {
	parent := map[string]string{}
	var find func(string) string
	find = func(x string) string {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b string) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}
	for _, n := range dg.nodes() {
		parent[n] = n
	}
	for key := range dg.eid {
		union(key.from, key.to)
	}
	groups := map[string][]string{}
	for _, n := range dg.nodes() {
		root := find(n)
		groups[root] = append(groups[root], n)
	}
	var components [][]string
	for _, nodes := range groups {
		sort.Strings(nodes)
		components = append(components, nodes)
	}
	sort.Slice(components, func(i, j int) bool { return components[i][0] < components[j][0] })
	return components
}

// allSimplePaths enumerates every simple path from source to sink. lvlath
// has no built-in all-simple-paths traversal (its dfs package walks a single
// order), so this backtracks over the out-edge adjacency directly; the
// graph is known acyclic by the time this is called, so no visited set
// beyond the current path is needed to guarantee termination.
func (dg *deBruijnGraph) allSimplePaths(source, sink string) [][]string {
	var paths [][]string
	visited := map[string]bool{source: true}
	path := []string{source}
	var walk func(n string)
	walk = func(n string) {
		if n == sink {
			cp := make([]string, len(path))
			copy(cp, path)
			paths = append(paths, cp)
			return
		}
		for _, key := range dg.outEdges(n) {
			if visited[key.to] {
				continue
			}
			visited[key.to] = true
			path = append(path, key.to)
			walk(key.to)
			path = path[:len(path)-1]
			visited[key.to] = false
		}
	}
	walk(source)
	return paths
}
