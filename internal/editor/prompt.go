package editor

import (
	"strings"

	"github.com/kobzarvs/tedit/internal/buffer"
	"github.com/kobzarvs/tedit/internal/logger"
)

type promptKind int

const (
	promptSave promptKind = iota
	promptLoad
)

// prompt is a one-line input on the status row. It edits its text with the
// same document primitives and bound operations as the main buffer.
type prompt struct {
	kind promptKind
	line *buffer.Document
	col  int
}

func (p *prompt) label() string {
	if p.kind == promptSave {
		return "Save as: "
	}
	return "Open: "
}

func (p *prompt) text() string {
	s, _ := p.line.Line(0)
	return s
}

func (e *Editor) openPrompt(kind promptKind, initial string) {
	p := &prompt{kind: kind, line: buffer.FromLines([]string{initial})}
	p.col = p.line.LineLen(0)
	e.prompt = p
}

func (e *Editor) handlePrompt(key Key) {
	p := e.prompt
	ops := e.keymap.Lookup(key)
	if len(ops) == 0 {
		if r, ok := literalRune(key); ok {
			if err := p.line.InsertChar(0, p.col, r); err == nil {
				p.col++
			}
		}
		return
	}
	for _, op := range ops {
		switch op {
		case OpEnter:
			e.commitPrompt()
			return
		case OpCancel, OpExit:
			e.prompt = nil
			e.status = "cancelled"
			return
		case OpBackspace:
			if p.col > 0 {
				if err := p.line.DeleteChar(0, p.col-1); err == nil {
					p.col--
				}
			}
		case OpLeft:
			if p.col > 0 {
				p.col--
			}
		case OpRight:
			if p.col < p.line.LineLen(0) {
				p.col++
			}
		}
	}
}

func (e *Editor) commitPrompt() {
	p := e.prompt
	e.prompt = nil
	name := strings.TrimSpace(p.text())
	if name == "" {
		e.status = "no file name"
		return
	}
	var err error
	switch p.kind {
	case promptSave:
		err = e.Save(name)
	case promptLoad:
		err = e.Open(name)
	}
	if err != nil {
		logger.Warn("file operation failed", "path", name, "error", err)
		e.status = err.Error()
	}
}
