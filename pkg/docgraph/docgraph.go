package docgraph

import (
	"iter"
	"sort"

	"github.com/google/uuid"
	"github.com/maruel/natural"
	"gonum.org/v1/gonum/graph/multi"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Edge identifies one directed edge. Parallel edges between the same
// ordered node pair are distinguished by Key, a small non-negative
// integer unique per (From, To) pair.
type Edge struct {
	From string
	To   string
	Key  int
}

// NodeEntry is one element of an [Graph.AddNodesFrom] bunch.
type NodeEntry struct {
	ID     string
	Layers sets.Set[string]
	Attrs  Attrs
}

// EdgeEntry is one element of an [Graph.AddEdgesFrom] bunch. When
// HasKey is false a fresh key is allocated, always creating a new
// parallel edge if the pair is already connected.
type EdgeEntry struct {
	From   string
	To     string
	Key    int
	HasKey bool
	Layers sets.Set[string]
	Attrs  Attrs
}

type nodeRecord struct {
	layers sets.Set[string]
	attrs  Attrs
}

type edgeRecord struct {
	layers sets.Set[string]
	attrs  Attrs
}

// Graph is a directed multigraph over one annotated document. Every
// node and edge carries a non-empty set of annotation layer labels
// plus free-form attributes; repeated insertion merges layers by union
// and overwrites other attributes.
//
// Adjacency and parallel-edge keying are held by a wrapped
// gonum multi.DirectedGraph; attribute and layer records are owned
// here, keyed by the caller-visible string identifiers.
//
// A Graph is not safe for concurrent use; callers serialize access.
type Graph struct {
	ns   string
	name string
	root string

	tokens []string

	dg   *multi.DirectedGraph
	ids  map[string]int64
	byID map[int64]string

	nodes map[string]*nodeRecord
	edges map[Edge]*edgeRecord
}

// Option configures a Graph at construction time.
type Option func(*options)

type options struct {
	name string
	root string
}

// WithName sets the graph's identifying name, used in merge
// diagnostics. Defaults to a generated identifier.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithRoot overrides the root node identifier. The default is
// "<namespace>:root_node".
func WithRoot(id string) Option {
	return func(o *options) { o.root = id }
}

// New creates an empty document graph for the given annotation
// namespace. The namespace qualifies the attribute keys the graph's
// annotation layer contributes (e.g. namespace "tiger" stores token
// text under "tiger:token") and is immutable afterwards. The root node
// is created immediately, carrying the namespace as its only layer.
func New(namespace string, opts ...Option) *Graph {
	o := options{
		name: namespace + "-" + uuid.NewString(),
		root: namespace + ":root_node",
	}
	for _, opt := range opts {
		opt(&o)
	}

	g := &Graph{
		ns:    namespace,
		name:  o.name,
		root:  o.root,
		dg:    multi.NewDirectedGraph(),
		ids:   make(map[string]int64),
		byID:  make(map[int64]string),
		nodes: make(map[string]*nodeRecord),
		edges: make(map[Edge]*edgeRecord),
	}
	// The root always exists; validateLayers guarantees this cannot fail.
	_ = g.AddNode(g.root, sets.New(namespace), nil)
	return g
}

// Namespace returns the annotation namespace the graph was created
// with.
func (g *Graph) Namespace() string { return g.ns }

// Name returns the graph's identifying name.
func (g *Graph) Name() string { return g.name }

// Root returns the distinguished root node identifier.
func (g *Graph) Root() string { return g.root }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges, counting parallel edges
// separately.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// HasNode reports whether the node is present in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// AddNode adds the node or merges into an existing one. The layers set
// must be non-empty. On re-insertion the new layers are unioned into
// the existing set (layers only ever grow) while every other attribute
// key overwrites its existing value.
func (g *Graph) AddNode(id string, layers sets.Set[string], attrs Attrs) error {
	if err := validateLayers(layers); err != nil {
		return err
	}

	rec, ok := g.nodes[id]
	if !ok {
		n := g.dg.NewNode()
		g.dg.AddNode(n)
		g.ids[id] = n.ID()
		g.byID[n.ID()] = id
		g.nodes[id] = &nodeRecord{
			layers: layers.Clone(),
			attrs:  stripLayersKey(attrs.Clone()),
		}
		return nil
	}

	rec.layers = rec.layers.Union(layers)
	for k, v := range attrs {
		if k == attrLayers {
			continue
		}
		rec.attrs[k] = v
	}
	return nil
}

// AddNodesFrom adds every entry with [Graph.AddNode] semantics. The
// shared attribute overlay is applied to every node before the entry's
// own attributes, so explicit per-entry attributes win on conflicting
// keys.
func (g *Graph) AddNodesFrom(entries []NodeEntry, shared Attrs) error {
	for _, entry := range entries {
		if err := validateLayers(entry.Layers); err != nil {
			return err
		}
		attrs := shared.Clone()
		for k, v := range entry.Attrs {
			attrs[k] = v
		}
		if err := g.AddNode(entry.ID, entry.Layers, attrs); err != nil {
			return err
		}
	}
	return nil
}

// AddEdge adds a new parallel edge from u to v under the lowest key not
// yet used between the pair, and returns that key. Both endpoints must
// already exist. Self-loops are permitted.
func (g *Graph) AddEdge(u, v string, layers sets.Set[string], attrs Attrs) (int, error) {
	if err := validateLayers(layers); err != nil {
		return 0, err
	}
	uid, vid, err := g.endpoints(u, v)
	if err != nil {
		return 0, err
	}
	key := g.freeKey(uid, vid)
	g.setEdge(uid, vid, Edge{From: u, To: v, Key: key}, layers, attrs)
	return key, nil
}

// AddEdgeWithKey adds the edge (u, v, key), or merges into it if it
// already exists: layers are unioned, other attributes overwritten.
// Both endpoints must already exist.
func (g *Graph) AddEdgeWithKey(u, v string, key int, layers sets.Set[string], attrs Attrs) error {
	if err := validateLayers(layers); err != nil {
		return err
	}
	uid, vid, err := g.endpoints(u, v)
	if err != nil {
		return err
	}
	g.setEdge(uid, vid, Edge{From: u, To: v, Key: key}, layers, attrs)
	return nil
}

// AddEdgesFrom adds every entry with [Graph.AddEdge] /
// [Graph.AddEdgeWithKey] semantics. An edge's resulting layer set is
// the union of the entry's layers, sharedLayers, and (when merging
// into an existing key) the pre-existing layers. Non-layer attribute
// precedence, highest first: entry attrs, shared attrs, pre-existing.
func (g *Graph) AddEdgesFrom(entries []EdgeEntry, sharedLayers sets.Set[string], shared Attrs) error {
	if sharedLayers != nil {
		for layer := range sharedLayers {
			if layer == "" {
				return &ValidationError{Reason: "layer labels must be non-empty strings"}
			}
		}
	}
	for _, entry := range entries {
		if err := validateLayers(entry.Layers); err != nil {
			return err
		}
		layers := entry.Layers.Union(sharedLayers)
		attrs := shared.Clone()
		for k, v := range entry.Attrs {
			attrs[k] = v
		}
		if entry.HasKey {
			if err := g.AddEdgeWithKey(entry.From, entry.To, entry.Key, layers, attrs); err != nil {
				return err
			}
			continue
		}
		if _, err := g.AddEdge(entry.From, entry.To, layers, attrs); err != nil {
			return err
		}
	}
	return nil
}

// NodeLayers returns the layer set of the node. The set is a live view;
// treat it as read-only.
func (g *Graph) NodeLayers(id string) (sets.Set[string], bool) {
	rec, ok := g.nodes[id]
	if !ok {
		return nil, false
	}
	return rec.layers, true
}

// NodeAttrs returns the attribute map of the node. The map is a live
// view; treat it as read-only.
func (g *Graph) NodeAttrs(id string) (Attrs, bool) {
	rec, ok := g.nodes[id]
	if !ok {
		return nil, false
	}
	return rec.attrs, true
}

// NodeAttr returns one attribute value of the node.
func (g *Graph) NodeAttr(id, key string) (Value, bool) {
	rec, ok := g.nodes[id]
	if !ok {
		return nil, false
	}
	v, ok := rec.attrs[key]
	return v, ok
}

// EdgeLayers returns the layer set of the edge. The set is a live view;
// treat it as read-only.
func (g *Graph) EdgeLayers(e Edge) (sets.Set[string], bool) {
	rec, ok := g.edges[e]
	if !ok {
		return nil, false
	}
	return rec.layers, true
}

// EdgeAttrs returns the attribute map of the edge. The map is a live
// view; treat it as read-only.
func (g *Graph) EdgeAttrs(e Edge) (Attrs, bool) {
	rec, ok := g.edges[e]
	if !ok {
		return nil, false
	}
	return rec.attrs, true
}

// Nodes iterates over all node identifiers in natural order
// (numeric-aware, so "t2" sorts before "t10").
func (g *Graph) Nodes() iter.Seq[string] {
	return func(yield func(string) bool) {
		ids := make([]string, 0, len(g.nodes))
		for id := range g.nodes {
			ids = append(ids, id)
		}
		sort.Sort(natural.StringSlice(ids))
		for _, id := range ids {
			if !yield(id) {
				return
			}
		}
	}
}

// Edges iterates over all edges in a deterministic order: natural by
// source, then target, then key.
func (g *Graph) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		edges := make([]Edge, 0, len(g.edges))
		for e := range g.edges {
			edges = append(edges, e)
		}
		sort.Slice(edges, func(i, j int) bool {
			a, b := edges[i], edges[j]
			if a.From != b.From {
				return natural.Less(a.From, b.From)
			}
			if a.To != b.To {
				return natural.Less(a.To, b.To)
			}
			return a.Key < b.Key
		})
		for _, e := range edges {
			if !yield(e) {
				return
			}
		}
	}
}

// Layers returns the set of all annotation layers the graph's nodes
// belong to.
func (g *Graph) Layers() sets.Set[string] {
	all := sets.New[string]()
	for _, rec := range g.nodes {
		all = all.Union(rec.layers)
	}
	return all
}

// endpoints resolves both endpoint identifiers, failing with
// MissingNodeError for the first absent one.
func (g *Graph) endpoints(u, v string) (int64, int64, error) {
	uid, ok := g.ids[u]
	if !ok {
		return 0, 0, &MissingNodeError{Node: u, From: u, To: v}
	}
	vid, ok := g.ids[v]
	if !ok {
		return 0, 0, &MissingNodeError{Node: v, From: u, To: v}
	}
	return uid, vid, nil
}

// freeKey returns the lowest key not in use between the pair.
func (g *Graph) freeKey(uid, vid int64) int {
	used := make(map[int]bool)
	lines := g.dg.Lines(uid, vid)
	for lines.Next() {
		used[int(lines.Line().ID())] = true
	}
	for k := 0; ; k++ {
		if !used[k] {
			return k
		}
	}
}

// setEdge creates or merges the keyed edge. Endpoints are assumed
// present and layers validated.
func (g *Graph) setEdge(uid, vid int64, e Edge, layers sets.Set[string], attrs Attrs) {
	rec, ok := g.edges[e]
	if !ok {
		g.dg.SetLine(multi.Line{F: multi.Node(uid), T: multi.Node(vid), UID: int64(e.Key)})
		g.edges[e] = &edgeRecord{
			layers: layers.Clone(),
			attrs:  stripLayersKey(attrs.Clone()),
		}
		return
	}
	rec.layers = rec.layers.Union(layers)
	for k, v := range attrs {
		if k == attrLayers {
			continue
		}
		rec.attrs[k] = v
	}
}

// stripLayersKey drops the reserved layers key from a freshly cloned
// attribute map.
func stripLayersKey(attrs Attrs) Attrs {
	delete(attrs, attrLayers)
	return attrs
}
