package editor

// Attr selects how following writes are drawn.
type Attr int

const (
	AttrText Attr = iota
	AttrKeyword
	AttrStatus
)

// Display is the drawing surface. The editor only writes to it during
// Redraw and never reads cells back.
type Display interface {
	Clear()
	WriteRune(r rune)
	WriteString(s string)
	// MoveCursor sets both the next write position and the visible cursor.
	MoveCursor(row, col int)
	Size() (width, height int)
	SetAttr(a Attr)
	Refresh()
}

// Input delivers key presses, blocking until one is available.
type Input interface {
	NextKey() (Key, error)
}

// Store reads and writes documents as line lists. ReadLines returns an
// empty slice and no error for a path that does not exist.
type Store interface {
	ReadLines(path string) ([]string, error)
	WriteLines(path string, lines []string) error
}

// Position is a remembered cursor and viewport for a file.
type Position struct {
	Row              int
	Col              int
	FirstVisibleLine int
}

// Positions remembers where the cursor was in each file.
type Positions interface {
	Lookup(path string) (Position, bool)
	Remember(path string, pos Position)
}
