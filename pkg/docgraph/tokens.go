package docgraph

import (
	"iter"
	"slices"

	"k8s.io/apimachinery/pkg/util/sets"
)

// AddToken adds a token node carrying the namespace-qualified token
// text attribute ("<ns>:token") and appends it to the document's token
// order. A nil layers set defaults to {ns, ns:token}. Re-adding a
// known token merges like [Graph.AddNode] without duplicating its
// position in the token order.
func (g *Graph) AddToken(id, text string, layers sets.Set[string], attrs Attrs) error {
	if layers == nil {
		layers = sets.New(g.ns, g.ns+":token")
	}
	merged := attrs.Clone()
	merged[g.ns+":token"] = String(text)
	if err := g.AddNode(id, layers, merged); err != nil {
		return err
	}
	if !slices.Contains(g.tokens, id) {
		g.tokens = append(g.tokens, id)
	}
	return nil
}

// Tokens iterates over the document's tokens in document order,
// yielding each token node identifier with its namespace-qualified
// token text. The sequence is finite and restartable. Tokens whose
// text attribute is missing yield an empty string.
func (g *Graph) Tokens() iter.Seq2[string, string] {
	key := g.ns + ":token"
	return func(yield func(string, string) bool) {
		for _, id := range g.tokens {
			var text string
			if rec, ok := g.nodes[id]; ok {
				if v, ok := rec.attrs[key].(String); ok {
					text = string(v)
				}
			}
			if !yield(id, text) {
				return
			}
		}
	}
}

// TokenCount returns the number of registered tokens.
func (g *Graph) TokenCount() int { return len(g.tokens) }

// IsToken reports whether the node carries the graph's
// namespace-qualified token text attribute.
func (g *Graph) IsToken(id string) bool {
	rec, ok := g.nodes[id]
	if !ok {
		return false
	}
	_, ok = rec.attrs[g.ns+":token"]
	return ok
}
