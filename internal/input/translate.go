package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/quillmath/quill/internal/input/key"
)

// FromTcell translates a tcell key event into a logical key event.
func FromTcell(ev *tcell.EventKey) key.Event {
	var mods key.Modifier
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	if ev.Modifiers()&tcell.ModShift != 0 {
		mods |= key.ModShift
	}

	switch ev.Key() {
	case tcell.KeyLeft:
		return key.NewSpecialEvent(key.KeyLeft, mods)
	case tcell.KeyRight:
		return key.NewSpecialEvent(key.KeyRight, mods)
	case tcell.KeyUp:
		return key.NewSpecialEvent(key.KeyUp, mods)
	case tcell.KeyDown:
		return key.NewSpecialEvent(key.KeyDown, mods)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace, mods)
	case tcell.KeyEscape:
		return key.NewSpecialEvent(key.KeyEscape, mods)
	case tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, mods)
	case tcell.KeyCtrlQ:
		return key.Event{Key: key.KeyRune, Rune: 'q', Modifiers: mods | key.ModCtrl}
	case tcell.KeyRune:
		return key.Event{Key: key.KeyRune, Rune: ev.Rune(), Modifiers: mods}
	}
	return key.Event{Key: key.KeyRune, Modifiers: mods}
}
