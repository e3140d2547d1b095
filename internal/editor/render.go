package editor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

// Redraw repaints the visible slice of the document, the status line and
// the cursor.
func (e *Editor) Redraw() {
	w, h := e.display.Size()
	e.state.Resize(h)
	e.display.Clear()
	if w <= 0 || h <= 0 {
		e.display.Refresh()
		return
	}

	rows := e.state.Height - 1
	for y := 0; y < rows && y < h; y++ {
		idx := e.state.FirstVisibleLine + y
		if idx >= e.doc.LineCount() {
			break
		}
		e.display.MoveCursor(y, 0)
		e.drawLine(e.doc.Runes(idx), w)
	}

	statusY := h - 1
	if h >= minHeight {
		e.drawStatus(w, statusY)
	}

	if e.prompt != nil {
		x := len([]rune(e.prompt.label())) + e.prompt.col
		e.display.MoveCursor(statusY, min(x, w-1))
	} else {
		e.display.MoveCursor(e.state.LocalRow, min(e.state.Col, w-1))
	}
	e.display.Refresh()
}

func (e *Editor) drawLine(line []rune, w int) {
	spans := e.highlighter.Spans(line)
	attr := AttrText
	e.display.SetAttr(attr)
	for x, r := range line {
		if x >= w {
			break
		}
		want := AttrText
		for len(spans) > 0 && spans[0].End <= x {
			spans = spans[1:]
		}
		if len(spans) > 0 && spans[0].Start <= x {
			want = AttrKeyword
		}
		if want != attr {
			attr = want
			e.display.SetAttr(attr)
		}
		e.display.WriteRune(r)
	}
	if attr != AttrText {
		e.display.SetAttr(AttrText)
	}
}

func (e *Editor) drawStatus(w, y int) {
	e.display.MoveCursor(y, 0)
	e.display.SetAttr(AttrStatus)
	e.display.WriteString(e.statusLine(w))
	e.display.SetAttr(AttrText)
}

// statusLine returns exactly w columns: file and message on the left,
// cursor position on the right. A prompt replaces the whole line.
func (e *Editor) statusLine(w int) string {
	if e.prompt != nil {
		return padRight(truncate.String(e.prompt.label()+e.prompt.text(), uint(w)), w)
	}
	name := "[No Name]"
	if e.filename != "" {
		name = filepath.Base(e.filename)
	}
	if e.dirty {
		name += "*"
	}
	left := " " + name
	if e.status != "" {
		left += " | " + e.status
	}
	right := fmt.Sprintf(" Ln %d, Col %d ", e.state.Row+1, e.state.Col+1)
	return composeStatusLine(left, right, w)
}

func composeStatusLine(left, right string, width int) string {
	if width <= 0 {
		return ""
	}
	rightLen := ansi.PrintableRuneWidth(right)
	if rightLen >= width {
		return string([]rune(right)[rightLen-width:])
	}
	left = truncate.StringWithTail(left, uint(width-rightLen), "…")
	return padRight(left, width-rightLen) + right
}

// padRight pads s with spaces to width terminal cells.
func padRight(s string, width int) string {
	n := ansi.PrintableRuneWidth(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
