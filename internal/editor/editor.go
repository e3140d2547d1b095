// Package editor implements the editing session: cursor and viewport
// control, word-wrap reflow, single-character undo and the key dispatch
// loop that ties them to a display.
package editor

import (
	"errors"
	"fmt"

	"github.com/kobzarvs/tedit/internal/buffer"
	"github.com/kobzarvs/tedit/internal/logger"
)

// Options configures a new Editor.
type Options struct {
	// MaxWidth is the reflow width. Zero means the display width.
	MaxWidth       int
	HorizontalWrap bool
	Keymap         Keymap
	Keywords       []string
	// Positions may be nil.
	Positions Positions
}

// Editor owns the document, the cursor state and the history of one
// session and processes input one key at a time.
type Editor struct {
	doc         *buffer.Document
	state       EditorState
	history     UndoLog
	keymap      Keymap
	highlighter *Highlighter
	maxWidth    int

	display   Display
	input     Input
	store     Store
	positions Positions

	running  bool
	filename string
	dirty    bool
	status   string
	prompt   *prompt
}

func New(opts Options, display Display, input Input, store Store) *Editor {
	_, h := display.Size()
	return &Editor{
		doc:         buffer.New(),
		state:       NewState(h, opts.HorizontalWrap),
		keymap:      opts.Keymap,
		highlighter: NewHighlighter(opts.Keywords),
		maxWidth:    opts.MaxWidth,
		display:     display,
		input:       input,
		store:       store,
		positions:   opts.Positions,
	}
}

// Open loads path into the editor. A path that does not exist yields an
// empty document; only real I/O failures are returned.
func (e *Editor) Open(path string) error {
	lines, err := e.store.ReadLines(path)
	if err != nil {
		return err
	}
	e.doc.LoadLines(lines)
	e.history.Clear()
	e.state.Reset()
	e.filename = path
	e.dirty = false
	if len(lines) == 0 {
		e.status = "new file"
	} else {
		e.status = fmt.Sprintf("%d lines", len(lines))
	}
	if e.positions != nil {
		if pos, ok := e.positions.Lookup(path); ok {
			e.state.Place(e.doc, pos.Row, pos.Col, pos.FirstVisibleLine)
		}
	}
	logger.Info("opened file", "path", path, "lines", e.doc.LineCount())
	return nil
}

// Save writes the document to path and makes it the active file.
func (e *Editor) Save(path string) error {
	if path == "" {
		if e.filename == "" {
			return errors.New("no file name")
		}
		path = e.filename
	}
	lines := e.doc.Snapshot()
	if err := e.store.WriteLines(path, lines); err != nil {
		return err
	}
	e.filename = path
	e.dirty = false
	e.status = fmt.Sprintf("wrote %d lines", len(lines))
	e.rememberPosition()
	logger.Info("saved file", "path", path, "lines", len(lines))
	return nil
}

// Run redraws and handles keys until an Exit operation stops the session.
// An input failure also ends the loop and is returned. The document is not
// saved on exit.
func (e *Editor) Run() error {
	e.running = true
	e.Redraw()
	for e.running {
		key, err := e.input.NextKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		if err := e.HandleKey(key); err != nil {
			logger.Error("edit failed", "key", key, "error", err)
			return err
		}
		e.Redraw()
	}
	e.rememberPosition()
	return nil
}

// HandleKey runs every operation bound to key, or inserts key literally
// when nothing is bound, and then reflows. A returned error means the
// cursor layer handed the document an invalid coordinate.
func (e *Editor) HandleKey(key Key) error {
	if key == KeyResize {
		_, h := e.display.Size()
		e.state.Resize(h)
		return nil
	}
	if e.prompt != nil {
		e.handlePrompt(key)
		return nil
	}
	e.status = ""
	ops := e.keymap.Lookup(key)
	if len(ops) == 0 {
		r, ok := literalRune(key)
		if !ok {
			logger.Debug("unbound key", "key", key)
			return nil
		}
		if err := InsertRune(e.doc, &e.state, &e.history, r); err != nil {
			return err
		}
		e.dirty = true
	}
	for _, op := range ops {
		logger.Debug("exec", "key", key, "op", op)
		if err := e.exec(op); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	changed, err := Reflow(e.doc, &e.state, &e.history, e.reflowWidth())
	if err != nil {
		return fmt.Errorf("reflow: %w", err)
	}
	if changed {
		e.dirty = true
	}
	return nil
}

func (e *Editor) exec(op Op) error {
	switch op {
	case OpNone, OpCancel:
	case OpBackspace:
		if err := Backspace(e.doc, &e.state, &e.history); err != nil {
			return err
		}
		e.dirty = true
	case OpEnter:
		if err := Enter(e.doc, &e.state, &e.history); err != nil {
			return err
		}
		e.dirty = true
	case OpUp:
		MoveUp(e.doc, &e.state)
	case OpDown:
		MoveDown(e.doc, &e.state)
	case OpLeft:
		MoveLeft(e.doc, &e.state)
	case OpRight:
		MoveRight(e.doc, &e.state)
	case OpSave:
		e.openPrompt(promptSave, e.filename)
	case OpLoad:
		e.openPrompt(promptLoad, "")
	case OpExit:
		e.running = false
	case OpUndo:
		e.replay(e.history.Undo, "undo")
	case OpRedo:
		e.replay(e.history.Redo, "redo")
	default:
		return fmt.Errorf("unhandled operation %d", int(op))
	}
	return nil
}

func (e *Editor) replay(step func(*buffer.Document, *EditorState) (bool, error), name string) {
	ok, err := step(e.doc, &e.state)
	if err != nil {
		logger.Warn(name+" dropped stale entry", "error", err)
		e.status = name + " failed"
		return
	}
	if ok {
		e.dirty = true
	}
}

func (e *Editor) reflowWidth() int {
	if e.maxWidth > 0 {
		return e.maxWidth
	}
	w, _ := e.display.Size()
	return w
}

func (e *Editor) rememberPosition() {
	if e.positions == nil || e.filename == "" {
		return
	}
	e.positions.Remember(e.filename, Position{
		Row:              e.state.Row,
		Col:              e.state.Col,
		FirstVisibleLine: e.state.FirstVisibleLine,
	})
}

// Running reports whether the session loop is still active.
func (e *Editor) Running() bool { return e.running }

// Lines returns a copy of the document.
func (e *Editor) Lines() []string { return e.doc.Snapshot() }

// State returns a copy of the cursor and viewport.
func (e *Editor) State() EditorState { return e.state }

func (e *Editor) Filename() string { return e.filename }

func (e *Editor) Dirty() bool { return e.dirty }

func (e *Editor) StatusMessage() string { return e.status }
