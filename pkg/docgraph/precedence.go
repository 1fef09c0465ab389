package docgraph

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/lingtools/docgraph/pkg/logging"
)

// AddPrecedenceRelations synthesizes the linear precedes-chain over
// the token sequence: an edge from the root to the first token, then
// one from every token to its successor in document order. All edges
// carry the layers {ns, ns:precedence} and the precedes edge type.
//
// The operation is additive and idempotent: a second run merges into
// the precedence edges created by the first instead of duplicating
// them under fresh keys. It fails with a PreconditionError when the
// graph has fewer than two tokens.
func (g *Graph) AddPrecedenceRelations() error {
	if len(g.tokens) < 2 {
		return &PreconditionError{
			Op:     "add precedence relations",
			Reason: "graph must have at least two tokens",
		}
	}

	layers := sets.New(g.ns, g.ns+":precedence")
	attrs := Attrs{AttrEdgeType: PrecedenceRelation}

	prev := g.root
	for _, tok := range g.tokens {
		if key, ok := g.findEdgeByType(prev, tok, PrecedenceRelation); ok {
			if err := g.AddEdgeWithKey(prev, tok, key, layers, attrs); err != nil {
				return err
			}
		} else if _, err := g.AddEdge(prev, tok, layers, attrs); err != nil {
			return err
		}
		prev = tok
	}

	logging.Debug("added precedence relations", "graph", g.name, "tokens", len(g.tokens))
	return nil
}

// findEdgeByType returns the lowest key of an existing edge from u to
// v tagged with the edge type, if any.
func (g *Graph) findEdgeByType(u, v string, t EdgeType) (int, bool) {
	uid, ok := g.ids[u]
	if !ok {
		return 0, false
	}
	vid, ok := g.ids[v]
	if !ok {
		return 0, false
	}
	key, found := 0, false
	lines := g.dg.Lines(uid, vid)
	for lines.Next() {
		k := int(lines.Line().ID())
		rec := g.edges[Edge{From: u, To: v, Key: k}]
		if et, ok := rec.attrs.edgeType(); ok && et == t {
			if !found || k < key {
				key, found = k, true
			}
		}
	}
	return key, found
}
