package docgraph

import (
	"errors"
	"fmt"

	"k8s.io/apimachinery/pkg/util/sets"
)

// ErrCyclicDominance is reported by [Graph.ValidateDominance] when the
// dominance/spanning structure contains a directed cycle. Span assumes
// an acyclic structure; a graph failing this check must be fixed
// upstream before span queries are meaningful.
var ErrCyclicDominance = errors.New("cyclic dominance structure")

// ValidationError reports an invalid layers argument: nil, empty, or
// containing an empty label. Every node and edge must belong to at
// least one named annotation layer, so this is always a caller bug and
// is detected before any mutation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "docgraph: " + e.Reason
}

// MissingNodeError reports an edge insertion referencing a node that is
// not in the graph. Edges may only connect existing nodes; the failed
// call leaves the graph unchanged.
type MissingNodeError struct {
	Node string // the missing endpoint
	From string
	To   string
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("docgraph: edge %s -> %s references unknown node %s",
		e.From, e.To, e.Node)
}

// TokenizationMismatchError reports a failed merge precondition: the
// two graphs do not annotate the same token sequence. Position is -1
// when the token counts differ, otherwise it is the first position at
// which the token text diverges. The merge target is left unmodified.
type TokenizationMismatchError struct {
	SelfName       string
	SelfNamespace  string
	OtherName      string
	OtherNamespace string

	Position   int
	SelfToken  string
	OtherToken string

	SelfCount  int
	OtherCount int
}

func (e *TokenizationMismatchError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf(
			"docgraph: tokenization mismatch: %s (%s) has %d tokens vs. %s (%s) with %d",
			e.SelfName, e.SelfNamespace, e.SelfCount,
			e.OtherName, e.OtherNamespace, e.OtherCount)
	}
	return fmt.Sprintf(
		"docgraph: tokenization mismatch: %s (%s) vs. %s (%s): %q != %q at position %d",
		e.SelfName, e.SelfNamespace, e.OtherName, e.OtherNamespace,
		e.SelfToken, e.OtherToken, e.Position)
}

// PreconditionError reports an operation invoked on a graph that does
// not satisfy its structural precondition, e.g. precedence construction
// on a graph with fewer than two tokens.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("docgraph: %s: %s", e.Op, e.Reason)
}

// validateLayers checks the mandatory layers argument of every node and
// edge insertion.
func validateLayers(layers sets.Set[string]) error {
	if layers.Len() == 0 {
		return &ValidationError{Reason: "layers must be a non-empty set of layer labels"}
	}
	for layer := range layers {
		if layer == "" {
			return &ValidationError{Reason: "layer labels must be non-empty strings"}
		}
	}
	return nil
}
