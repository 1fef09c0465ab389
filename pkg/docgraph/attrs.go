package docgraph

// EdgeType classifies the relation an edge expresses between two
// annotation nodes. It is stored as an ordinary attribute under
// AttrEdgeType, not in a separate relation table.
type EdgeType string

const (
	// PointingRelation expresses "refers to", e.g. anaphor -> antecedent.
	PointingRelation EdgeType = "points_to"
	// DominanceRelation expresses hierarchical containment, e.g. syntax
	// tree edges from a phrase node down to its constituents.
	DominanceRelation EdgeType = "dominates"
	// ReverseDominanceRelation is the inverse of DominanceRelation.
	ReverseDominanceRelation EdgeType = "is_dominated_by"
	// SpanningRelation expresses flat containment of tokens, e.g. a
	// markable covering a stretch of text.
	SpanningRelation EdgeType = "spans"
	// PrecedenceRelation expresses linear textual order between
	// adjacent tokens.
	PrecedenceRelation EdgeType = "precedes"
)

// AttrEdgeType is the attribute key under which an edge's EdgeType is
// stored.
const AttrEdgeType = "edge_type"

// attrLayers is reserved: layer sets are a dedicated field on every
// node and edge record and are merged by union, never overwritten
// through the attribute map.
const attrLayers = "layers"

// Value is an attribute value. The annotation formats this engine
// backs store a small closed set of value shapes: strings (token text,
// POS tags, labels), numbers (weights), coordinate pairs, and the
// edge-type tag.
type Value interface {
	isValue()
}

// String is a string-valued attribute, e.g. token text or a POS tag.
type String string

// Number is a numeric attribute, e.g. an edge weight.
type Number float64

// Coord is a coordinate pair attribute.
type Coord [2]float64

func (String) isValue()   {}
func (Number) isValue()   {}
func (Coord) isValue()    {}
func (EdgeType) isValue() {}

// Attrs maps attribute keys to values. Keys contributed by an
// annotation layer are namespace-qualified, e.g. "tiger:token".
type Attrs map[string]Value

// Clone returns a shallow copy of the attribute map.
// Returns an empty, non-nil map for a nil receiver.
func (a Attrs) Clone() Attrs {
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// edgeType extracts the EdgeType tag from an attribute map.
func (a Attrs) edgeType() (EdgeType, bool) {
	t, ok := a[AttrEdgeType].(EdgeType)
	return t, ok
}
