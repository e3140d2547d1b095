package editor

import "github.com/kobzarvs/tedit/internal/buffer"

// Reflow keeps lines at or below the cursor row narrower than maxWidth by
// pushing the text after the last interior space onto the following line.
// A pushed fragment is prepended to the next line, or replaces it when that
// line is empty, so overflow cascades down the document.
//
// A line without an interior space is left over-width; an empty line is
// ensured after it so typing continues below.
//
// When the cursor line wraps and the cursor was inside the moved text, the
// cursor follows it onto the next line with the same bookkeeping as Enter.
// Entries in history are moved along with their characters; the redo branch
// is kept since reflow also runs after a replay. Reflow reports whether the
// document changed.
func Reflow(doc *buffer.Document, s *EditorState, history *UndoLog, maxWidth int) (bool, error) {
	if maxWidth < 1 {
		return false, nil
	}
	changed := false
	follow := false
	followCol := 0
	for row := s.Row; row < doc.LineCount(); row++ {
		line := doc.Runes(row)
		if len(line) < maxWidth {
			continue
		}
		brk := wrapBreak(line)
		if brk < 0 {
			ensured, err := ensureBlankAfter(doc, row)
			if err != nil {
				return changed, err
			}
			if ensured {
				history.lineInserted(row + 1)
				changed = true
				if row == s.Row && s.Col >= len(line) {
					follow, followCol = true, 0
				}
			}
			continue
		}
		head := append([]rune(nil), line[:brk+1]...)
		fragment := append([]rune(nil), line[brk+1:]...)
		hadNext := row+1 < doc.LineCount()
		if err := doc.SetLine(row, head); err != nil {
			return changed, err
		}
		if err := pushFragment(doc, row+1, fragment); err != nil {
			return changed, err
		}
		// Same as splitting after the break and joining the old next line
		// onto the fragment.
		history.splitAt(row, brk+1)
		if hadNext {
			history.joinAt(row+2, len(fragment))
		}
		changed = true
		if row == s.Row && s.Col > brk {
			follow, followCol = true, s.Col-(brk+1)
		}
	}
	if follow {
		s.advanceRow()
		s.Col = followCol
		checkLineBounds(doc, s)
	}
	return changed, nil
}

// wrapBreak returns the index of the nearest space scanning back from the
// second to last rune, or -1. A trailing space is never a break point.
func wrapBreak(line []rune) int {
	for i := len(line) - 2; i >= 0; i-- {
		if line[i] == ' ' {
			return i
		}
	}
	return -1
}

func pushFragment(doc *buffer.Document, row int, fragment []rune) error {
	if row >= doc.LineCount() {
		return doc.InsertLine(row, fragment)
	}
	next := doc.Runes(row)
	if len(next) == 0 {
		return doc.SetLine(row, fragment)
	}
	merged := make([]rune, 0, len(fragment)+len(next))
	merged = append(merged, fragment...)
	merged = append(merged, next...)
	return doc.SetLine(row, merged)
}

func ensureBlankAfter(doc *buffer.Document, row int) (bool, error) {
	if row+1 < doc.LineCount() && doc.LineLen(row+1) == 0 {
		return false, nil
	}
	if err := doc.InsertLine(row+1, nil); err != nil {
		return false, err
	}
	return true, nil
}
