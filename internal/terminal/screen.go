// Package terminal adapts a tcell screen to the editor's Display and Input.
package terminal

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/tedit/internal/config"
	"github.com/kobzarvs/tedit/internal/editor"
)

// ErrClosed is returned by NextKey once the screen has been finalized.
var ErrClosed = errors.New("terminal closed")

// Screen draws like a character terminal: writes advance a position that
// MoveCursor sets, and the visible cursor follows the last MoveCursor.
type Screen struct {
	s      tcell.Screen
	x, y   int
	style  tcell.Style
	styles map[editor.Attr]tcell.Style
}

// New wraps an initialized tcell screen, styled from theme.
func New(s tcell.Screen, theme config.Theme) *Screen {
	fg := parseColor(theme.Foreground, tcell.ColorWhite)
	bg := parseColor(theme.Background, tcell.ColorBlack)
	statusFg := parseColor(theme.StatuslineForeground, tcell.ColorBlack)
	statusBg := parseColor(theme.StatuslineBackground, tcell.ColorGray)
	keyword := parseColor(theme.SyntaxKeyword, fg)
	text := tcell.StyleDefault.Foreground(fg).Background(bg)
	return &Screen{
		s:     s,
		style: text,
		styles: map[editor.Attr]tcell.Style{
			editor.AttrText:    text,
			editor.AttrKeyword: tcell.StyleDefault.Foreground(keyword).Background(bg).Bold(true),
			editor.AttrStatus:  tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		},
	}
}

func (d *Screen) Clear() {
	d.s.SetStyle(d.styles[editor.AttrText])
	d.s.Clear()
	d.x, d.y = 0, 0
}

// WriteRune draws r at the write position and advances it. Runes past the
// right edge are dropped.
func (d *Screen) WriteRune(r rune) {
	w, h := d.s.Size()
	if r == '\n' {
		d.x, d.y = 0, d.y+1
		return
	}
	if r == '\t' {
		r = ' '
	}
	if d.x >= 0 && d.x < w && d.y >= 0 && d.y < h {
		d.s.SetContent(d.x, d.y, r, nil, d.style)
	}
	d.x++
}

func (d *Screen) WriteString(s string) {
	for _, r := range s {
		d.WriteRune(r)
	}
}

func (d *Screen) MoveCursor(row, col int) {
	d.x, d.y = col, row
	d.s.ShowCursor(col, row)
}

func (d *Screen) Size() (int, int) {
	return d.s.Size()
}

func (d *Screen) SetAttr(a editor.Attr) {
	if st, ok := d.styles[a]; ok {
		d.style = st
	}
}

func (d *Screen) Refresh() {
	d.s.Show()
}

// NextKey blocks until a key press or a resize arrives.
func (d *Screen) NextKey() (editor.Key, error) {
	for {
		ev := d.s.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return "", ErrClosed
		case *tcell.EventResize:
			d.s.Sync()
			return editor.KeyResize, nil
		case *tcell.EventKey:
			if key := KeyName(ev); key != "" {
				return key, nil
			}
		}
	}
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		v, err := strconv.ParseInt(name[1:], 16, 32)
		if err != nil {
			return fallback
		}
		return tcell.NewHexColor(int32(v))
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
