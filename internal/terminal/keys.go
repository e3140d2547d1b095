package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/tedit/internal/editor"
)

// KeyName converts a tcell key event to the names used in keymaps:
// printable characters stand for themselves, special keys are spelled
// out ("enter", "up", "ctrl+s"). Unknown keys yield "".
func KeyName(ev *tcell.EventKey) editor.Key {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r == ' ' {
			return "space"
		}
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			return editor.Key("ctrl+" + string(unicode.ToLower(r)))
		}
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return editor.Key("alt+" + string(r))
		}
		return editor.Key(string(r))
	}
	// Backspace, Tab, Enter and Escape share codes with ctrl+h, ctrl+i,
	// ctrl+m and ctrl+[ and must be matched first.
	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	case tcell.KeyTab:
		return "tab"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyHome:
		return "home"
	case tcell.KeyEnd:
		return "end"
	case tcell.KeyPgUp:
		return "pgup"
	case tcell.KeyPgDn:
		return "pgdn"
	case tcell.KeyDelete:
		return "del"
	}
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		return editor.Key("ctrl+" + string(rune('a'+int(ev.Key()-tcell.KeyCtrlA))))
	}
	return ""
}
