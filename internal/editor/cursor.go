package editor

import "github.com/kobzarvs/tedit/internal/buffer"

// checkLineBounds clamps the column into the current line. It runs after
// every vertical move because the old column may not exist on the new
// line.
func checkLineBounds(doc *buffer.Document, s *EditorState) {
	n := doc.LineLen(s.Row)
	if n == 0 || s.Col < 0 {
		s.Col = 0
		return
	}
	if s.Col > n {
		s.Col = n
	}
}

// MoveUp moves the cursor one line up. On the first line it resets the
// cursor row and the viewport to the top.
func MoveUp(doc *buffer.Document, s *EditorState) {
	if s.Row == 0 {
		s.Row, s.LocalRow, s.FirstVisibleLine = 0, 0, 0
	} else {
		s.retreatRow()
	}
	checkLineBounds(doc, s)
}

// MoveDown moves the cursor one line down unless it is on the last line.
func MoveDown(doc *buffer.Document, s *EditorState) {
	if s.Row < doc.LineCount()-1 {
		s.advanceRow()
	}
	checkLineBounds(doc, s)
}

// MoveLeft moves one column left. At column 0 it wraps to the last
// character of the previous line when HorizontalWrap is set.
func MoveLeft(doc *buffer.Document, s *EditorState) {
	if s.Col > 0 {
		s.Col--
		return
	}
	if !s.HorizontalWrap || s.Row == 0 {
		return
	}
	MoveUp(doc, s)
	s.Col = doc.LineLen(s.Row) - 1
	checkLineBounds(doc, s)
}

// MoveRight moves one column right. At the end of a line it wraps to the
// start of the next line when HorizontalWrap is set.
func MoveRight(doc *buffer.Document, s *EditorState) {
	if s.Col < doc.LineLen(s.Row) {
		s.Col++
		return
	}
	if !s.HorizontalWrap || s.Row >= doc.LineCount()-1 {
		return
	}
	MoveDown(doc, s)
	s.Col = 0
}

// Enter splits the line at the cursor and moves to the start of the new
// line. The split itself is not recorded; it ends the redo branch.
func Enter(doc *buffer.Document, s *EditorState, history *UndoLog) error {
	checkLineBounds(doc, s)
	if err := doc.SplitLine(s.Row, s.Col); err != nil {
		return err
	}
	history.splitAt(s.Row, s.Col)
	history.DiscardRedo()
	s.advanceRow()
	s.Col = 0
	return nil
}

// InsertRune inserts ch at the cursor, records it in history and advances
// the column.
func InsertRune(doc *buffer.Document, s *EditorState, history *UndoLog, ch rune) error {
	checkLineBounds(doc, s)
	if err := doc.InsertChar(s.Row, s.Col, ch); err != nil {
		return err
	}
	history.Record(UndoAction{Row: s.Row, Col: s.Col, Char: ch, Kind: KindInsert})
	s.Col++
	return nil
}

// Backspace deletes the character before the cursor. At column 0 the
// current line is merged into the previous one (or dropped when empty) and
// the cursor lands where the previous line used to end. At the start of
// the document it does nothing.
func Backspace(doc *buffer.Document, s *EditorState, history *UndoLog) error {
	checkLineBounds(doc, s)
	if s.Col > 0 {
		col := s.Col - 1
		ch := doc.Runes(s.Row)[col]
		if err := doc.DeleteChar(s.Row, col); err != nil {
			return err
		}
		history.Record(UndoAction{Row: s.Row, Col: col, Char: ch, Kind: KindDelete})
		s.Col = col
		return nil
	}
	if s.Row == 0 {
		return nil
	}
	prevLen := doc.LineLen(s.Row - 1)
	var err error
	if doc.LineLen(s.Row) == 0 {
		err = doc.RemoveLine(s.Row)
	} else {
		err = doc.JoinWithPrevious(s.Row)
	}
	if err != nil {
		return err
	}
	history.joinAt(s.Row, prevLen)
	history.DiscardRedo()
	s.retreatRow()
	s.Col = prevLen
	return nil
}
