package docgraph

import (
	"fmt"
	"slices"
	"testing"

	"k8s.io/apimachinery/pkg/util/sets"
)

// dominanceFixture builds root -> vp -> {t1, t10, t2} plus a pointing
// edge and a self-loop, with token ids chosen to expose sort order.
func dominanceFixture(t *testing.T) *Graph {
	t.Helper()
	g := New("doc")

	mustAddToken(t, g, "t1", "hello")
	mustAddToken(t, g, "t10", "world")
	mustAddToken(t, g, "t2", "beautiful")

	if err := g.AddNode("vp", sets.New("doc"), Attrs{"label": String("VP")}); err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	dom := Attrs{AttrEdgeType: DominanceRelation}
	if err := g.AddEdgeWithKey(g.Root(), "vp", 0, sets.New("doc"), dom); err != nil {
		t.Fatalf("AddEdgeWithKey() error = %v", err)
	}
	for _, tok := range []string{"t1", "t10", "t2"} {
		if err := g.AddEdgeWithKey("vp", tok, 0, sets.New("doc"), dom); err != nil {
			t.Fatalf("AddEdgeWithKey() error = %v", err)
		}
	}

	// Noise the span walk must ignore: a self-loop and a pointing edge.
	if err := g.AddEdgeWithKey("vp", "vp", 0, sets.New("doc"), dom); err != nil {
		t.Fatalf("AddEdgeWithKey() self-loop error = %v", err)
	}
	if err := g.AddEdgeWithKey("t10", "t1", 0, sets.New("coref"), Attrs{AttrEdgeType: PointingRelation}); err != nil {
		t.Fatalf("AddEdgeWithKey() pointing error = %v", err)
	}
	return g
}

func TestSpanNaturalOrder(t *testing.T) {
	g := dominanceFixture(t)

	span := g.Span("vp")
	want := []string{"t1", "t2", "t10"}
	if !slices.Equal(span, want) {
		t.Errorf("Expected span %v, got %v", want, span)
	}

	// The same span is reachable transitively from the root.
	if rootSpan := g.Span(g.Root()); !slices.Equal(rootSpan, want) {
		t.Errorf("Expected root span %v, got %v", want, rootSpan)
	}
}

func TestSpanSkipsPointingRelations(t *testing.T) {
	g := New("doc")
	mustAddToken(t, g, "t1", "a")
	mustAddToken(t, g, "t2", "b")
	if err := g.AddNode("m", sets.New("coref"), nil); err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	if err := g.AddEdgeWithKey("m", "t1", 0, sets.New("coref"), Attrs{AttrEdgeType: SpanningRelation}); err != nil {
		t.Fatalf("AddEdgeWithKey() error = %v", err)
	}
	if err := g.AddEdgeWithKey("m", "t2", 0, sets.New("coref"), Attrs{AttrEdgeType: PointingRelation}); err != nil {
		t.Fatalf("AddEdgeWithKey() error = %v", err)
	}

	span := g.Span("m")
	if !slices.Equal(span, []string{"t1"}) {
		t.Errorf("Expected span [t1], got %v", span)
	}
}

func TestSpanUnknownNode(t *testing.T) {
	g := New("doc")
	if span := g.Span("nope"); span != nil {
		t.Errorf("Expected nil span for unknown node, got %v", span)
	}
}

func TestText(t *testing.T) {
	g := dominanceFixture(t)

	if text := g.Text("vp"); text != "hello beautiful world" {
		t.Errorf("Expected 'hello beautiful world', got '%s'", text)
	}
	if text := g.Text("t1"); text != "" {
		t.Errorf("Expected empty text for a token leaf, got '%s'", text)
	}
}

func TestNodesByLayer(t *testing.T) {
	g := dominanceFixture(t)

	var tokens []string
	for id := range g.NodesByLayer("doc:token") {
		tokens = append(tokens, id)
	}
	want := []string{"t1", "t2", "t10"}
	if !slices.Equal(tokens, want) {
		t.Errorf("Expected %v in layer doc:token, got %v", want, tokens)
	}

	var none []string
	for id := range g.NodesByLayer("missing") {
		none = append(none, id)
	}
	if len(none) != 0 {
		t.Errorf("Expected no nodes in layer 'missing', got %v", none)
	}
}

func TestEdgesByType(t *testing.T) {
	g := dominanceFixture(t)

	var dominance, pointing int
	for range g.EdgesByType(DominanceRelation) {
		dominance++
	}
	for e := range g.EdgesByType(PointingRelation) {
		pointing++
		if e.From != "t10" || e.To != "t1" {
			t.Errorf("Unexpected pointing edge %v", e)
		}
	}
	if dominance != 5 {
		t.Errorf("Expected 5 dominance edges, got %d", dominance)
	}
	if pointing != 1 {
		t.Errorf("Expected 1 pointing edge, got %d", pointing)
	}
}

func TestSpanTerminatesOnCyclicInput(t *testing.T) {
	g := New("doc")
	for i := range 2 {
		id := fmt.Sprintf("p%d", i)
		if err := g.AddNode(id, sets.New("doc"), nil); err != nil {
			t.Fatalf("AddNode() error = %v", err)
		}
	}
	dom := Attrs{AttrEdgeType: DominanceRelation}
	if err := g.AddEdgeWithKey("p0", "p1", 0, sets.New("doc"), dom); err != nil {
		t.Fatalf("AddEdgeWithKey() error = %v", err)
	}
	if err := g.AddEdgeWithKey("p1", "p0", 0, sets.New("doc"), dom); err != nil {
		t.Fatalf("AddEdgeWithKey() error = %v", err)
	}

	// Cyclic dominance is invalid input; the walk must still return.
	if span := g.Span("p0"); len(span) != 0 {
		t.Errorf("Expected empty span over tokenless cycle, got %v", span)
	}
}
