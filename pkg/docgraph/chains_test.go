package docgraph

import (
	"slices"
	"testing"

	"k8s.io/apimachinery/pkg/util/sets"
)

func addPointing(t *testing.T, g *Graph, from, to string) {
	t.Helper()
	for _, id := range []string{from, to} {
		if err := g.AddNode(id, sets.New("coref"), nil); err != nil {
			t.Fatalf("AddNode(%s) error = %v", id, err)
		}
	}
	if err := g.AddEdgeWithKey(from, to, 0, sets.New("coref"), Attrs{AttrEdgeType: PointingRelation}); err != nil {
		t.Fatalf("AddEdgeWithKey(%s, %s) error = %v", from, to, err)
	}
}

func TestPointingChainsMaximality(t *testing.T) {
	g := New("doc")
	addPointing(t, g, "a", "b")
	addPointing(t, g, "b", "c")
	addPointing(t, g, "d", "c")

	chains := g.PointingChains()
	want := [][]string{{"a", "b", "c"}, {"d", "c"}}
	if len(chains) != len(want) {
		t.Fatalf("Expected %d chains, got %d: %v", len(want), len(chains), chains)
	}
	for i := range want {
		if !slices.Equal(chains[i], want[i]) {
			t.Errorf("Expected chain %v, got %v", want[i], chains[i])
		}
	}

	// The partial chain [b, c] is subsumed and must never appear.
	for _, chain := range chains {
		if slices.Equal(chain, []string{"b", "c"}) {
			t.Error("Subsumed partial chain [b c] returned")
		}
	}
}

func TestPointingChainsMultipleAntecedents(t *testing.T) {
	g := New("doc")
	addPointing(t, g, "m3", "m1")
	addPointing(t, g, "m3", "m2")

	chains := g.PointingChains()
	want := [][]string{{"m3", "m1"}, {"m3", "m2"}}
	if len(chains) != 2 {
		t.Fatalf("Expected 2 chains from a two-antecedent markable, got %v", chains)
	}
	for i := range want {
		if !slices.Equal(chains[i], want[i]) {
			t.Errorf("Expected chain %v, got %v", want[i], chains[i])
		}
	}
}

func TestPointingChainsDeterministic(t *testing.T) {
	g := New("doc")
	addPointing(t, g, "m10", "m2")
	addPointing(t, g, "m2", "m1")
	addPointing(t, g, "m9", "m1")

	first := g.PointingChains()
	for range 10 {
		if next := g.PointingChains(); !slices.EqualFunc(first, next, slices.Equal) {
			t.Fatalf("Chain enumeration is not deterministic: %v vs %v", first, next)
		}
	}

	// Natural order of sources: m2 is subsumed by m10's chain, m9 stands alone.
	want := [][]string{{"m9", "m1"}, {"m10", "m2", "m1"}}
	if !slices.EqualFunc(first, want, slices.Equal) {
		t.Errorf("Expected chains %v, got %v", want, first)
	}
}

func TestPointingChainsIgnoresOtherEdgeTypes(t *testing.T) {
	g := New("doc")
	addPointing(t, g, "a", "b")
	if err := g.AddEdgeWithKey("b", "a", 0, sets.New("syntax"), Attrs{AttrEdgeType: DominanceRelation}); err != nil {
		t.Fatalf("AddEdgeWithKey() error = %v", err)
	}

	chains := g.PointingChains()
	if len(chains) != 1 || !slices.Equal(chains[0], []string{"a", "b"}) {
		t.Errorf("Expected single chain [a b], got %v", chains)
	}
}

func TestPointingChainsEmpty(t *testing.T) {
	g := New("doc")
	if chains := g.PointingChains(); len(chains) != 0 {
		t.Errorf("Expected no chains in an empty graph, got %v", chains)
	}
}
