// Package key defines logical key events, decoupled from any particular
// terminal or GUI input source.
package key

import "unicode"

// Key identifies the key pressed.
type Key uint8

const (
	// KeyRune is a printable character key.
	KeyRune Key = iota
	// KeyLeft is the left arrow.
	KeyLeft
	// KeyRight is the right arrow.
	KeyRight
	// KeyUp is the up arrow.
	KeyUp
	// KeyDown is the down arrow.
	KeyDown
	// KeyBackspace deletes backwards.
	KeyBackspace
	// KeyEscape cancels the current interaction.
	KeyEscape
	// KeyEnter confirms the current interaction.
	KeyEnter
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyRune:
		return "Rune"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyBackspace:
		return "BS"
	case KeyEscape:
		return "Esc"
	case KeyEnter:
		return "Enter"
	default:
		return "Unknown"
	}
}

// Modifier is a bit set of modifier keys.
type Modifier uint8

const (
	// ModNone means no modifier is held.
	ModNone Modifier = 0
	// ModCtrl is the control key.
	ModCtrl Modifier = 1 << iota
	// ModAlt is the alt/meta key.
	ModAlt
	// ModShift is the shift key.
	ModShift
)

// HasCtrl reports whether Ctrl is held.
func (m Modifier) HasCtrl() bool { return m&ModCtrl != 0 }

// Event is a single logical key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// NewRuneEvent creates an event for a character key.
func NewRuneEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// NewSpecialEvent creates an event for a non-character key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune reports whether this is a character key event.
func (e Event) IsRune() bool { return e.Key == KeyRune && e.Rune != 0 }

// IsChar reports whether this is a printable character.
func (e Event) IsChar() bool { return e.IsRune() && unicode.IsPrint(e.Rune) }
