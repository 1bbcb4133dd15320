// Package menu implements the symbol/element insertion menu: a searchable
// registry of entries, each pairing a display name, a canonical code, and
// optional search aliases with the action that inserts the element at the
// caret.
//
// The menu never touches the tree directly. Selections go through the
// caret's two insertion entry points (insert symbol, insert node), descend
// into freshly inserted compound nodes, and finally ask the host to return
// input focus to the editor.
package menu
