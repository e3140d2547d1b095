package editor

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Op is an operation a key can be bound to.
type Op int

const (
	OpNone Op = iota
	OpBackspace
	OpEnter
	OpUp
	OpDown
	OpLeft
	OpRight
	OpSave
	OpLoad
	OpExit
	OpUndo
	OpRedo
	OpCancel
)

var opNames = [...]string{
	OpNone:      "none",
	OpBackspace: "backspace",
	OpEnter:     "enter",
	OpUp:        "up",
	OpDown:      "down",
	OpLeft:      "left",
	OpRight:     "right",
	OpSave:      "save",
	OpLoad:      "load",
	OpExit:      "exit",
	OpUndo:      "undo",
	OpRedo:      "redo",
	OpCancel:    "cancel",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opNames[o]
}

// ParseOp maps a configured operation name to its Op.
func ParseOp(name string) (Op, error) {
	for i, n := range opNames {
		if n == name && Op(i) != OpNone {
			return Op(i), nil
		}
	}
	return OpNone, fmt.Errorf("unknown operation %q", name)
}

// Key names a key press: a single character ("a", "{"), or a named key
// such as "enter", "space", "up" or "ctrl+s".
type Key string

// KeyResize is delivered by an Input when the display changed size.
const KeyResize Key = "resize"

// Binding ties a key to an operation.
type Binding struct {
	Key Key
	Op  Op
}

// Keymap is the ordered binding table.
type Keymap []Binding

// NewKeymap builds a binding table from key→operation names, ordered by
// key so dispatch order does not depend on map iteration.
func NewKeymap(names map[string]string) (Keymap, error) {
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	km := make(Keymap, 0, len(keys))
	for _, k := range keys {
		op, err := ParseOp(names[k])
		if err != nil {
			return nil, fmt.Errorf("keymap %q: %w", k, err)
		}
		km = append(km, Binding{Key: Key(k), Op: op})
	}
	return km, nil
}

// Lookup returns every operation bound to key, in table order.
func (km Keymap) Lookup(key Key) []Op {
	var ops []Op
	for _, b := range km {
		if b.Key == key {
			ops = append(ops, b.Op)
		}
	}
	return ops
}

// literalRune reports the character an unbound key inserts, if any.
func literalRune(key Key) (rune, bool) {
	switch key {
	case "space":
		return ' ', true
	case "tab":
		return '\t', true
	}
	if utf8.RuneCountInString(string(key)) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(string(key))
	if r == utf8.RuneError || r < ' ' {
		return 0, false
	}
	return r, true
}
