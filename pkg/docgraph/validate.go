package docgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"github.com/lingtools/docgraph/pkg/logging"
)

// ValidateDominance checks that the dominance/spanning structure of
// the graph is acyclic, the precondition [Graph.Span] relies on.
// Pointing relations and self-loops are ignored, matching what the
// span walk traverses. Returns an error wrapping ErrCyclicDominance
// naming the nodes of a detected cycle, or nil.
func (g *Graph) ValidateDominance() error {
	succ := make(map[string][]string)
	for e := range g.Edges() {
		if e.From == e.To {
			continue
		}
		if t, ok := g.edges[e].attrs.edgeType(); ok && t == PointingRelation {
			continue
		}
		succ[e.From] = append(succ[e.From], e.To)
	}

	t := &tarjanSCC{succ: succ, index: make(map[string]int), lowLink: make(map[string]int)}
	for _, scc := range t.components() {
		if len(scc) > 1 {
			sort.Sort(natural.StringSlice(scc))
			logging.Warn("dominance cycle detected", "graph", g.name, "nodes", len(scc))
			return fmt.Errorf("%w: %s", ErrCyclicDominance, strings.Join(scc, " -> "))
		}
	}
	return nil
}

// tarjanSCC finds strongly connected components over a string-keyed
// successor relation using Tarjan's algorithm.
type tarjanSCC struct {
	succ    map[string][]string
	counter int
	stack   []string
	onStack map[string]bool
	index   map[string]int
	lowLink map[string]int
	sccs    [][]string
}

func (t *tarjanSCC) components() [][]string {
	t.onStack = make(map[string]bool)

	roots := make([]string, 0, len(t.succ))
	for id := range t.succ {
		roots = append(roots, id)
	}
	sort.Sort(natural.StringSlice(roots))

	for _, id := range roots {
		if _, visited := t.index[id]; !visited {
			t.strongConnect(id)
		}
	}
	return t.sccs
}

func (t *tarjanSCC) strongConnect(id string) {
	t.index[id] = t.counter
	t.lowLink[id] = t.counter
	t.counter++

	t.stack = append(t.stack, id)
	t.onStack[id] = true

	for _, next := range t.succ[id] {
		if _, visited := t.index[next]; !visited {
			t.strongConnect(next)
			t.lowLink[id] = min(t.lowLink[id], t.lowLink[next])
		} else if t.onStack[next] {
			t.lowLink[id] = min(t.lowLink[id], t.index[next])
		}
	}

	if t.lowLink[id] == t.index[id] {
		var scc []string
		for {
			w := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
			t.onStack[w] = false
			scc = append(scc, w)
			if w == id {
				break
			}
		}
		t.sccs = append(t.sccs, scc)
	}
}
