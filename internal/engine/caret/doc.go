// Package caret implements the editing cursor: a path-based location in
// the expression tree plus an insertion index into the enclosing
// expression, with the navigation and mutation operations the input layer
// drives.
//
// All legal states satisfy 0 <= position <= len(enclosing expression).
// Movement follows structural rules rather than flat-text ones: moving
// past a node that owns child expressions descends into it, moving past
// the boundary of a slot climbs out of it, and vertical movement switches
// between sibling slots of the same node (numerator to denominator and
// back). Vertical landing is asymmetric by contract: moving down lands at
// the end of the next slot, moving up lands at the start of the previous
// one.
//
// The caret also owns its presentation state (focus and blink phase) and
// notifies subscribers after every state-affecting operation so the host
// can re-render.
package caret
