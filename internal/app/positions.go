package app

import (
	"path/filepath"

	"github.com/kobzarvs/tedit/internal/editor"
	"github.com/kobzarvs/tedit/internal/session"
)

// sessionPositions keys remembered positions by absolute path so a file
// opened from another directory finds its entry.
type sessionPositions struct {
	m *session.Manager
}

func (p sessionPositions) Lookup(path string) (editor.Position, bool) {
	st, ok := p.m.FileState(absPath(path))
	if !ok {
		return editor.Position{}, false
	}
	return editor.Position{Row: st.CursorRow, Col: st.CursorCol, FirstVisibleLine: st.FirstVisibleLine}, true
}

func (p sessionPositions) Remember(path string, pos editor.Position) {
	p.m.SetFileState(absPath(path), session.FileState{
		CursorRow:        pos.Row,
		CursorCol:        pos.Col,
		FirstVisibleLine: pos.FirstVisibleLine,
	})
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
