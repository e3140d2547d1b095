// Package storage reads and writes documents as newline-delimited text.
package storage

import (
	"bytes"
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
)

// Files stores line lists on a file system.
type Files struct {
	fs afero.Fs
}

// New returns a store over fsys. A nil fsys means the OS file system.
func New(fsys afero.Fs) *Files {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Files{fs: fsys}
}

// ReadLines returns the lines of path without their terminators. A missing
// file yields an empty slice and no error.
func (f *Files) ReadLines(path string) ([]string, error) {
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	return splitLines(data), nil
}

// WriteLines overwrites path with one newline-terminated line per element.
func (f *Files) WriteLines(path string, lines []string) error {
	return afero.WriteFile(f.fs, path, joinLines(lines), 0o644)
}

// splitLines splits on '\n' only, so every other byte of a line (including
// '\r') survives a write/read round trip. A final newline terminates the
// last line rather than starting a new one.
func splitLines(data []byte) []string {
	if len(data) == 0 {
		return []string{}
	}
	text := string(data)
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

func joinLines(lines []string) []byte {
	var b bytes.Buffer
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.Bytes()
}
