package docgraph

import (
	"sort"

	"github.com/maruel/natural"
	"k8s.io/apimachinery/pkg/util/sets"
)

// PointingChains reconstructs the maximal chains of pointing relations
// in the graph, e.g. coreference chains. Every pointing edge
// contributes to a source -> targets relation (a node may point to
// more than one antecedent); each source is expanded into all paths it
// anchors, and chain lists whose starting node already occurs inside
// another start's chains are discarded, so only maximal chains remain
// (never a subsumed partial chain).
//
// Enumeration is deterministic: sources and targets are visited in
// natural order. Cyclic pointing structure is not meaningful input; an
// on-path guard cuts such a walk short at the repeated node instead of
// recursing forever.
func (g *Graph) PointingChains() [][]string {
	rel := make(map[string]sets.Set[string])
	for e := range g.EdgesByType(PointingRelation) {
		if rel[e.From] == nil {
			rel[e.From] = sets.New[string]()
		}
		rel[e.From].Insert(e.To)
	}

	sources := make([]string, 0, len(rel))
	for from := range rel {
		sources = append(sources, from)
	}
	sort.Sort(natural.StringSlice(sources))

	onPath := sets.New[string]()
	var expand func(from string) [][]string
	expand = func(from string) [][]string {
		onPath.Insert(from)
		defer onPath.Delete(from)

		targets := rel[from].UnsortedList()
		sort.Sort(natural.StringSlice(targets))

		var chains [][]string
		for _, to := range targets {
			if _, chained := rel[to]; chained && !onPath.Has(to) {
				for _, tail := range expand(to) {
					chains = append(chains, append([]string{from}, tail...))
				}
				continue
			}
			chains = append(chains, []string{from, to})
		}
		return chains
	}

	bySource := make([][][]string, len(sources))
	members := make([]sets.Set[string], len(sources))
	for i, from := range sources {
		bySource[i] = expand(from)
		members[i] = sets.New[string]()
		for _, chain := range bySource[i] {
			members[i].Insert(chain...)
		}
	}

	// Keep only chains anchored at a node no other chain passes
	// through; everything else is a sub-chain of a longer one.
	var maximal [][]string
	for i, from := range sources {
		subsumed := false
		for j := range sources {
			if j != i && members[j].Has(from) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			maximal = append(maximal, bySource[i]...)
		}
	}
	return maximal
}
