// Package session remembers per-file cursor positions between runs.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"
)

// maxFiles bounds the number of remembered files; the least recently seen
// are dropped first.
const maxFiles = 200

// FileState is the saved cursor and viewport of a single file.
type FileState struct {
	CursorRow        int       `json:"cursor_row"`
	CursorCol        int       `json:"cursor_col"`
	FirstVisibleLine int       `json:"first_visible_line"`
	LastSeen         time.Time `json:"last_seen"`
}

// Session is the persisted document.
type Session struct {
	Files      map[string]FileState `json:"files"`
	ActiveFile string               `json:"active_file,omitempty"`
	LastSaved  time.Time            `json:"last_saved"`
}

// Manager loads and saves the session file. It is used from the editor
// loop only and does no locking.
type Manager struct {
	fs      afero.Fs
	path    string
	session Session
	dirty   bool
	now     func() time.Time
}

// NewManager reads the session at path. A missing or unreadable session
// starts empty.
func NewManager(fsys afero.Fs, path string) *Manager {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	m := &Manager{
		fs:      fsys,
		path:    path,
		session: Session{Files: make(map[string]FileState)},
		now:     time.Now,
	}
	m.load()
	return m
}

// DefaultPath returns $XDG_STATE_HOME/tedit/session.json, falling back to
// ~/.local/state.
func DefaultPath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "tedit", "session.json"), nil
}

func (m *Manager) load() {
	data, err := afero.ReadFile(m.fs, m.path)
	if err != nil {
		return
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return
	}
	if s.Files == nil {
		s.Files = make(map[string]FileState)
	}
	m.session = s
}

// Save writes the session if anything changed since the last save.
func (m *Manager) Save() error {
	if !m.dirty {
		return nil
	}
	m.prune()
	m.session.LastSaved = m.now()
	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		return err
	}
	if err := m.fs.MkdirAll(filepath.Dir(m.path), 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
		return err
	}
	if err := afero.WriteFile(m.fs, m.path, data, 0o644); err != nil {
		return err
	}
	m.dirty = false
	return nil
}

// FileState returns the saved state for absPath.
func (m *Manager) FileState(absPath string) (FileState, bool) {
	state, ok := m.session.Files[absPath]
	return state, ok
}

// SetFileState records the state for absPath and makes it the active file.
func (m *Manager) SetFileState(absPath string, state FileState) {
	state.LastSeen = m.now()
	m.session.Files[absPath] = state
	m.session.ActiveFile = absPath
	m.dirty = true
}

// ActiveFile returns the file that was edited last.
func (m *Manager) ActiveFile() string {
	return m.session.ActiveFile
}

func (m *Manager) prune() {
	if len(m.session.Files) <= maxFiles {
		return
	}
	paths := make([]string, 0, len(m.session.Files))
	for p := range m.session.Files {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool {
		return m.session.Files[paths[i]].LastSeen.After(m.session.Files[paths[j]].LastSeen)
	})
	for _, p := range paths[maxFiles:] {
		delete(m.session.Files, p)
	}
}
