// Package docgraph models a linguistically annotated document as a
// single layered, multi-relational directed graph. Tokens, syntactic
// and semantic markup, and cross-annotation links (coreference,
// dominance, precedence, spans) coexist as nodes and edges, each
// tagged with the set of annotation layers it belongs to.
//
// Every node and edge carries a mandatory non-empty layer set.
// Re-adding an existing node or edge merges layers by union and
// overwrites other attributes, so independent annotation graphs over
// the same token sequence can be folded into one graph with
// [Graph.Merge], which aligns them by tokenization.
//
// A Graph is built through the mutation API ([Graph.AddNode],
// [Graph.AddEdge], [Graph.AddToken], ...) by format readers, and read
// back through span, text, layer and chain queries ([Graph.Span],
// [Graph.Text], [Graph.PointingChains], ...) by exporters. Format
// readers and writers themselves live outside this package.
//
// Graphs are single-writer, in-memory structures; nothing here is safe
// for unsynchronized concurrent use.
package docgraph
