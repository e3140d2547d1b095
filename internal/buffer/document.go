// Package buffer holds the document being edited: an ordered list of text
// lines that is never empty.
package buffer

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a caller addresses a row or column outside
// the current shape of the document. Callers are expected to clamp first;
// the document never does.
var ErrOutOfRange = errors.New("position out of range")

// Document is the single source of truth for content. One rune is one
// column.
type Document struct {
	lines [][]rune
}

// New returns a document holding exactly one empty line.
func New() *Document {
	return &Document{lines: [][]rune{{}}}
}

// FromLines returns a document loaded with lines.
func FromLines(lines []string) *Document {
	d := New()
	d.LoadLines(lines)
	return d
}

func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns a copy of the text on row.
func (d *Document) Line(row int) (string, error) {
	if err := d.checkRow(row); err != nil {
		return "", err
	}
	return string(d.lines[row]), nil
}

// Runes returns the runes on row. The slice aliases the document and must
// not be modified.
func (d *Document) Runes(row int) []rune {
	if row < 0 || row >= len(d.lines) {
		return nil
	}
	return d.lines[row]
}

// LineLen returns the length of row in runes, or 0 for a row that does not
// exist.
func (d *Document) LineLen(row int) int {
	if row < 0 || row >= len(d.lines) {
		return 0
	}
	return len(d.lines[row])
}

func (d *Document) InsertChar(row, col int, ch rune) error {
	if err := d.checkInsertPos(row, col); err != nil {
		return err
	}
	line := d.lines[row]
	line = append(line, 0)
	copy(line[col+1:], line[col:])
	line[col] = ch
	d.lines[row] = line
	return nil
}

// DeleteChar removes the rune at col.
func (d *Document) DeleteChar(row, col int) error {
	if err := d.checkRow(row); err != nil {
		return err
	}
	line := d.lines[row]
	if col < 0 || col >= len(line) {
		return fmt.Errorf("delete at %d:%d (line length %d): %w", row, col, len(line), ErrOutOfRange)
	}
	copy(line[col:], line[col+1:])
	d.lines[row] = line[:len(line)-1]
	return nil
}

// SplitLine moves everything from col onward to a new line at row+1.
func (d *Document) SplitLine(row, col int) error {
	if err := d.checkInsertPos(row, col); err != nil {
		return err
	}
	line := d.lines[row]
	left := append([]rune(nil), line[:col]...)
	right := append([]rune(nil), line[col:]...)

	lines := make([][]rune, 0, len(d.lines)+1)
	lines = append(lines, d.lines[:row]...)
	lines = append(lines, left, right)
	lines = append(lines, d.lines[row+1:]...)
	d.lines = lines
	return nil
}

// JoinWithPrevious appends row to row-1 and removes row.
func (d *Document) JoinWithPrevious(row int) error {
	if row < 1 || row >= len(d.lines) {
		return fmt.Errorf("join row %d of %d: %w", row, len(d.lines), ErrOutOfRange)
	}
	merged := append(d.lines[row-1], d.lines[row]...)

	lines := make([][]rune, 0, len(d.lines)-1)
	lines = append(lines, d.lines[:row-1]...)
	lines = append(lines, merged)
	lines = append(lines, d.lines[row+1:]...)
	d.lines = lines
	return nil
}

// RemoveLine deletes row. The last remaining line cannot be removed.
func (d *Document) RemoveLine(row int) error {
	if err := d.checkRow(row); err != nil {
		return err
	}
	if len(d.lines) == 1 {
		return fmt.Errorf("remove only line: %w", ErrOutOfRange)
	}
	d.lines = append(d.lines[:row], d.lines[row+1:]...)
	return nil
}

// InsertLine inserts text as a new line before row. row may equal
// LineCount to append.
func (d *Document) InsertLine(row int, text []rune) error {
	if row < 0 || row > len(d.lines) {
		return fmt.Errorf("insert line %d of %d: %w", row, len(d.lines), ErrOutOfRange)
	}
	d.lines = append(d.lines, nil)
	copy(d.lines[row+1:], d.lines[row:])
	d.lines[row] = append([]rune(nil), text...)
	return nil
}

// SetLine replaces the content of row.
func (d *Document) SetLine(row int, text []rune) error {
	if err := d.checkRow(row); err != nil {
		return err
	}
	d.lines[row] = append([]rune(nil), text...)
	return nil
}

// LoadLines replaces the whole buffer. An empty input leaves one empty line.
func (d *Document) LoadLines(lines []string) {
	if len(lines) == 0 {
		d.lines = [][]rune{{}}
		return
	}
	d.lines = make([][]rune, len(lines))
	for i, line := range lines {
		d.lines[i] = []rune(line)
	}
}

// Snapshot returns the full line sequence for persistence.
func (d *Document) Snapshot() []string {
	out := make([]string, len(d.lines))
	for i, line := range d.lines {
		out[i] = string(line)
	}
	return out
}

func (d *Document) checkRow(row int) error {
	if row < 0 || row >= len(d.lines) {
		return fmt.Errorf("row %d of %d: %w", row, len(d.lines), ErrOutOfRange)
	}
	return nil
}

func (d *Document) checkInsertPos(row, col int) error {
	if err := d.checkRow(row); err != nil {
		return err
	}
	if col < 0 || col > len(d.lines[row]) {
		return fmt.Errorf("column %d:%d (line length %d): %w", row, col, len(d.lines[row]), ErrOutOfRange)
	}
	return nil
}
