// Package tree implements the expression document: ordered sequences of
// typed nodes, where each node owns zero or more child expressions.
//
// An Expression is one editable "slot" of content (the document root, a
// fraction's numerator, the body of a square root). A Node is a single
// element of a slot, either an atomic symbol or a compound wrapper that
// owns child expressions. The set of node variants is closed: a Kind tag
// selects the variant and fixes the child-expression count.
//
// Nodes carry an immutable unique id assigned at construction. The id is
// used only to correlate rendered markup with on-screen elements; tree
// structure and ordering never depend on it.
//
// Rendering is a pure function of the subtree and the caret location
// supplied through RenderContext. A node never consults global state.
package tree
