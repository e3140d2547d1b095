package editor

import (
	"errors"
	"fmt"

	"github.com/kobzarvs/tedit/internal/buffer"
)

// ErrStaleAction is returned when a history entry no longer matches the
// document, for example after the line was rewritten outside the history.
// The entry is dropped.
var ErrStaleAction = errors.New("history entry no longer matches document")

// ActionKind says what happened to the character of an UndoAction.
// Replaying an action performs the opposite: an Insert is replayed as a
// delete and a Delete as an insert.
type ActionKind int

const (
	KindInsert ActionKind = iota
	KindDelete
)

func (k ActionKind) String() string {
	if k == KindInsert {
		return "insert"
	}
	return "delete"
}

func (k ActionKind) toggle() ActionKind {
	if k == KindInsert {
		return KindDelete
	}
	return KindInsert
}

// UndoAction is a single character edit.
type UndoAction struct {
	Row  int
	Col  int
	Char rune
	Kind ActionKind
}

// UndoLog keeps single-character history on two stacks. There is no
// grouping: typing a word takes one undo per character.
type UndoLog struct {
	undo []UndoAction
	redo []UndoAction
}

// Record pushes a fresh edit and discards the redo branch.
func (l *UndoLog) Record(act UndoAction) {
	l.undo = append(l.undo, act)
	l.redo = l.redo[:0]
}

// Undo replays the most recent edit in reverse. It reports false when
// there was nothing to undo.
func (l *UndoLog) Undo(doc *buffer.Document, s *EditorState) (bool, error) {
	act, ok := pop(&l.undo)
	if !ok {
		return false, nil
	}
	inv, err := replay(doc, s, act)
	if err != nil {
		return true, err
	}
	l.redo = append(l.redo, inv)
	return true, nil
}

// Redo replays the most recently undone edit. It reports false when there
// was nothing to redo.
func (l *UndoLog) Redo(doc *buffer.Document, s *EditorState) (bool, error) {
	act, ok := pop(&l.redo)
	if !ok {
		return false, nil
	}
	inv, err := replay(doc, s, act)
	if err != nil {
		return true, err
	}
	l.undo = append(l.undo, inv)
	return true, nil
}

// Clear drops both stacks.
func (l *UndoLog) Clear() {
	l.undo = nil
	l.redo = nil
}

// DiscardRedo drops the redo branch. Every edit that is not a replay ends
// it, recorded or not.
func (l *UndoLog) DiscardRedo() {
	if l != nil {
		l.redo = l.redo[:0]
	}
}

func (l *UndoLog) UndoLen() int { return len(l.undo) }
func (l *UndoLog) RedoLen() int { return len(l.redo) }

// Line splits and joins are not recorded, but they move characters that
// recorded entries point at. The methods below keep every entry on both
// stacks addressing the same character after such a change.

// splitAt follows a split of row at col: the text from col onward became
// the start of a new row+1.
func (l *UndoLog) splitAt(row, col int) {
	l.remap(func(a *UndoAction) {
		switch {
		case a.Row > row:
			a.Row++
		case a.Row == row && a.Col >= col:
			a.Row, a.Col = row+1, a.Col-col
		}
	})
}

// joinAt follows row being appended to row-1, which was prevLen long.
func (l *UndoLog) joinAt(row, prevLen int) {
	l.remap(func(a *UndoAction) {
		switch {
		case a.Row > row:
			a.Row--
		case a.Row == row:
			a.Row, a.Col = row-1, a.Col+prevLen
		}
	})
}

// lineInserted follows a new empty line at row.
func (l *UndoLog) lineInserted(row int) {
	l.remap(func(a *UndoAction) {
		if a.Row >= row {
			a.Row++
		}
	})
}

func (l *UndoLog) remap(fn func(*UndoAction)) {
	if l == nil {
		return
	}
	for i := range l.undo {
		fn(&l.undo[i])
	}
	for i := range l.redo {
		fn(&l.redo[i])
	}
}

func pop(stack *[]UndoAction) (UndoAction, bool) {
	n := len(*stack)
	if n == 0 {
		return UndoAction{}, false
	}
	act := (*stack)[n-1]
	*stack = (*stack)[:n-1]
	return act, true
}

// replay applies the inverse of act and returns the toggled action for the
// opposite stack. The cursor follows the edited position.
func replay(doc *buffer.Document, s *EditorState, act UndoAction) (UndoAction, error) {
	switch act.Kind {
	case KindInsert:
		line := doc.Runes(act.Row)
		if act.Col < 0 || act.Col >= len(line) || line[act.Col] != act.Char {
			return UndoAction{}, fmt.Errorf("%s %q at %d:%d: %w", act.Kind, act.Char, act.Row, act.Col, ErrStaleAction)
		}
		if err := doc.DeleteChar(act.Row, act.Col); err != nil {
			return UndoAction{}, fmt.Errorf("%w: %w", ErrStaleAction, err)
		}
		s.ScrollTo(doc, act.Row, act.Col)
	case KindDelete:
		if err := doc.InsertChar(act.Row, act.Col, act.Char); err != nil {
			return UndoAction{}, fmt.Errorf("%w: %w", ErrStaleAction, err)
		}
		s.ScrollTo(doc, act.Row, act.Col+1)
	}
	act.Kind = act.Kind.toggle()
	return act, nil
}
