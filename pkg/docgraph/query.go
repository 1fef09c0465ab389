package docgraph

import (
	"iter"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Span returns all token node identifiers transitively dominated or
// spanned by the node, sorted in natural order (numeric-aware, so
// "t2" before "t10"). The walk follows outgoing edges, skipping
// self-loops and pointing relations; token targets are collected,
// anything else is descended into.
//
// The dominance/spanning structure is assumed acyclic. A visited set
// bounds the descent, so cyclic input terminates instead of recursing
// forever, but the spans it yields for such input are meaningless; use
// [Graph.ValidateDominance] to detect that case.
func (g *Graph) Span(id string) []string {
	if !g.HasNode(id) {
		return nil
	}
	seen := sets.New(id)
	var span []string

	var walk func(n string)
	walk = func(n string) {
		targets := g.dg.From(g.ids[n])
		for targets.Next() {
			target := g.byID[targets.Node().ID()]
			if target == n {
				continue // self-loop
			}
			if !g.hasNonPointingEdge(n, target) {
				continue
			}
			if seen.Has(target) {
				continue
			}
			seen.Insert(target)
			if g.IsToken(target) {
				span = append(span, target)
				continue
			}
			walk(target)
		}
	}
	walk(id)

	sort.Sort(natural.StringSlice(span))
	return span
}

// Text returns the token text dominated or spanned by the node, in
// span order, joined with single spaces.
func (g *Graph) Text(id string) string {
	key := g.ns + ":token"
	var texts []string
	for _, tok := range g.Span(id) {
		if v, ok := g.nodes[tok].attrs[key].(String); ok {
			texts = append(texts, string(v))
		}
	}
	return strings.Join(texts, " ")
}

// NodesByLayer iterates over the identifiers of all nodes belonging to
// the layer, in natural order.
func (g *Graph) NodesByLayer(layer string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for id := range g.Nodes() {
			if !g.nodes[id].layers.Has(layer) {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

// EdgesByType iterates over all edges tagged with the edge type, in
// the deterministic order of [Graph.Edges].
func (g *Graph) EdgesByType(t EdgeType) iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for e := range g.Edges() {
			et, ok := g.edges[e].attrs.edgeType()
			if !ok || et != t {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// hasNonPointingEdge reports whether at least one of the parallel
// edges from u to v is not a pointing relation. Edges without an
// edge-type tag count as non-pointing.
func (g *Graph) hasNonPointingEdge(u, v string) bool {
	lines := g.dg.Lines(g.ids[u], g.ids[v])
	for lines.Next() {
		e := Edge{From: u, To: v, Key: int(lines.Line().ID())}
		if t, ok := g.edges[e].attrs.edgeType(); !ok || t != PointingRelation {
			return true
		}
	}
	return false
}
