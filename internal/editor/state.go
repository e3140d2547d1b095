package editor

import "github.com/kobzarvs/tedit/internal/buffer"

// minHeight keeps one text row above the status line.
const minHeight = 2

// EditorState is the cursor and viewport of one editing session. It is
// passed by pointer into every operation and never copied into a second
// source of truth.
//
// Row = FirstVisibleLine + LocalRow holds after every operation, and
// LocalRow stays within [0, Height-2]: the last display row is the status
// line.
type EditorState struct {
	Row int
	Col int

	LocalRow         int
	FirstVisibleLine int
	Height           int

	// HorizontalWrap makes MoveLeft/MoveRight continue onto the adjacent
	// line at a line boundary. When false they stop at the boundary.
	HorizontalWrap bool
}

// NewState returns a state at the top of the document for a display of the
// given height.
func NewState(height int, horizontalWrap bool) EditorState {
	if height < minHeight {
		height = minHeight
	}
	return EditorState{Height: height, HorizontalWrap: horizontalWrap}
}

// bottom is the largest valid LocalRow.
func (s *EditorState) bottom() int {
	return s.Height - 2
}

// advanceRow moves one row down, scrolling when the cursor sits on the
// last text row.
func (s *EditorState) advanceRow() {
	s.Row++
	if s.LocalRow < s.bottom() {
		s.LocalRow++
	} else {
		s.FirstVisibleLine++
	}
}

// retreatRow moves one row up, scrolling when the cursor sits on the first
// text row.
func (s *EditorState) retreatRow() {
	s.Row--
	if s.LocalRow == 0 {
		s.FirstVisibleLine--
	} else {
		s.LocalRow--
	}
}

// Reset puts the cursor and the viewport back at the top.
func (s *EditorState) Reset() {
	s.Row, s.Col = 0, 0
	s.LocalRow, s.FirstVisibleLine = 0, 0
}

// Resize applies a new display height, scrolling so the cursor row stays
// on screen.
func (s *EditorState) Resize(height int) {
	if height < minHeight {
		height = minHeight
	}
	s.Height = height
	if over := s.LocalRow - s.bottom(); over > 0 {
		s.FirstVisibleLine += over
		s.LocalRow = s.bottom()
	}
}

// Place moves the cursor to (row, col) with first as the preferred first
// visible line. Every coordinate is clamped into the document and the
// viewport so the state invariants hold afterwards.
func (s *EditorState) Place(doc *buffer.Document, row, col, first int) {
	last := doc.LineCount() - 1
	row = clampRange(row, 0, last)
	first = clampRange(first, 0, last)
	if row < first {
		first = row
	}
	if row-first > s.bottom() {
		first = row - s.bottom()
	}
	s.Row = row
	s.FirstVisibleLine = first
	s.LocalRow = row - first
	s.Col = col
	checkLineBounds(doc, s)
}

// ScrollTo moves the cursor to (row, col), scrolling only as far as needed
// to bring row on screen.
func (s *EditorState) ScrollTo(doc *buffer.Document, row, col int) {
	s.Place(doc, row, col, s.FirstVisibleLine)
}

func clampRange(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
