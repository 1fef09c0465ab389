package docgraph

import (
	"github.com/lingtools/docgraph/pkg/logging"
)

// Merge folds the other graph's nodes and edges into g. Both graphs
// must annotate the same token sequence: the same number of tokens
// with identical text at every position, each graph read through its
// own namespace-qualified token attribute. On any misalignment a
// TokenizationMismatchError is returned before g is touched.
//
// The other graph's token node identifiers are remapped onto g's token
// identifiers by position, so tokens are identified rather than
// duplicated; all remaining nodes and edges are then inserted through
// the standard merge-adds, so layer union and attribute overwrite
// semantics apply uniformly. g's root and token order are left intact.
// Edges are folded without their original keys, so parallel edges from
// the other graph stay parallel in g.
func (g *Graph) Merge(other *Graph) error {
	local := materializeTokens(g)
	remote := materializeTokens(other)

	if len(local) != len(remote) {
		return &TokenizationMismatchError{
			SelfName:       g.name,
			SelfNamespace:  g.ns,
			OtherName:      other.name,
			OtherNamespace: other.ns,
			Position:       -1,
			SelfCount:      len(local),
			OtherCount:     len(remote),
		}
	}

	remap := make(map[string]string, len(remote))
	for i := range local {
		if local[i].text != remote[i].text {
			return &TokenizationMismatchError{
				SelfName:       g.name,
				SelfNamespace:  g.ns,
				OtherName:      other.name,
				OtherNamespace: other.ns,
				Position:       i,
				SelfToken:      local[i].text,
				OtherToken:     remote[i].text,
			}
		}
		remap[remote[i].id] = local[i].id
	}

	relabel := func(id string) string {
		if mapped, ok := remap[id]; ok {
			return mapped
		}
		return id
	}

	var nodesAdded int
	for id := range other.Nodes() {
		rec := other.nodes[id]
		mapped := relabel(id)
		if !g.HasNode(mapped) {
			nodesAdded++
		}
		if err := g.AddNode(mapped, rec.layers, rec.attrs); err != nil {
			return err
		}
	}

	var edgesAdded int
	for e := range other.Edges() {
		rec := other.edges[e]
		if _, err := g.AddEdge(relabel(e.From), relabel(e.To), rec.layers, rec.attrs); err != nil {
			return err
		}
		edgesAdded++
	}

	logging.Debug("merged document graph",
		"self", g.name, "other", other.name,
		"tokens", len(local), "nodesAdded", nodesAdded, "edgesAdded", edgesAdded)
	return nil
}

type tokenPair struct {
	id   string
	text string
}

func materializeTokens(g *Graph) []tokenPair {
	pairs := make([]tokenPair, 0, len(g.tokens))
	for id, text := range g.Tokens() {
		pairs = append(pairs, tokenPair{id: id, text: text})
	}
	return pairs
}
