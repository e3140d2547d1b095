package editor

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
	"github.com/spf13/afero"

	"github.com/kobzarvs/tedit/internal/storage"
)

type fakeDisplay struct {
	w, h    int
	cells   [][]rune
	attrs   [][]Attr
	x, y    int
	attr    Attr
	curRow  int
	curCol  int
	refresh int
}

func newFakeDisplay(w, h int) *fakeDisplay {
	d := &fakeDisplay{w: w, h: h}
	d.Clear()
	return d
}

func (d *fakeDisplay) Clear() {
	d.cells = make([][]rune, d.h)
	d.attrs = make([][]Attr, d.h)
	for y := range d.cells {
		d.cells[y] = []rune(strings.Repeat(" ", d.w))
		d.attrs[y] = make([]Attr, d.w)
	}
	d.x, d.y = 0, 0
}

func (d *fakeDisplay) WriteRune(r rune) {
	if d.y >= 0 && d.y < d.h && d.x >= 0 && d.x < d.w {
		d.cells[d.y][d.x] = r
		d.attrs[d.y][d.x] = d.attr
	}
	d.x++
}

func (d *fakeDisplay) WriteString(s string) {
	for _, r := range s {
		d.WriteRune(r)
	}
}

func (d *fakeDisplay) MoveCursor(row, col int) {
	d.y, d.x = row, col
	d.curRow, d.curCol = row, col
}

func (d *fakeDisplay) Size() (int, int) { return d.w, d.h }
func (d *fakeDisplay) SetAttr(a Attr)   { d.attr = a }
func (d *fakeDisplay) Refresh()         { d.refresh++ }

func (d *fakeDisplay) row(y int) string {
	return strings.TrimRight(string(d.cells[y]), " ")
}

type scriptInput struct {
	keys []Key
}

func (in *scriptInput) NextKey() (Key, error) {
	if len(in.keys) == 0 {
		return "", io.EOF
	}
	k := in.keys[0]
	in.keys = in.keys[1:]
	return k, nil
}

type memPositions map[string]Position

func (m memPositions) Lookup(path string) (Position, bool) {
	p, ok := m[path]
	return p, ok
}

func (m memPositions) Remember(path string, pos Position) { m[path] = pos }

var testBindings = map[string]string{
	"backspace": "backspace",
	"enter":     "enter",
	"up":        "up",
	"down":      "down",
	"left":      "left",
	"right":     "right",
	"ctrl+s":    "save",
	"ctrl+o":    "load",
	"ctrl+q":    "exit",
	"ctrl+z":    "undo",
	"ctrl+y":    "redo",
	"esc":       "cancel",
}

type testEnv struct {
	ed      *Editor
	display *fakeDisplay
	input   *scriptInput
	store   *storage.Files
}

func newTestEditor(t *testing.T, opts Options, w, h int) *testEnv {
	t.Helper()
	if opts.Keymap == nil {
		km, err := NewKeymap(testBindings)
		if err != nil {
			t.Fatalf("NewKeymap: %v", err)
		}
		opts.Keymap = km
	}
	env := &testEnv{
		display: newFakeDisplay(w, h),
		input:   &scriptInput{},
		store:   storage.New(afero.NewMemMapFs()),
	}
	env.ed = New(opts, env.display, env.input, env.store)
	return env
}

func (env *testEnv) press(t *testing.T, keys ...Key) {
	t.Helper()
	for _, k := range keys {
		if err := env.ed.HandleKey(k); err != nil {
			t.Fatalf("HandleKey(%q): %v", k, err)
		}
	}
}

func (env *testEnv) typeText(t *testing.T, text string) {
	t.Helper()
	for _, r := range text {
		k := Key(string(r))
		if r == ' ' {
			k = "space"
		}
		env.press(t, k)
	}
}

func (env *testEnv) load(t *testing.T, content ...string) {
	t.Helper()
	if err := env.store.WriteLines("doc.txt", content); err != nil {
		t.Fatalf("WriteLines: %v", err)
	}
	if err := env.ed.Open("doc.txt"); err != nil {
		t.Fatalf("Open: %v", err)
	}
}

func TestTypeAndEnter(t *testing.T) {
	env := newTestEditor(t, Options{HorizontalWrap: true}, 80, 24)

	env.typeText(t, "hello")
	env.press(t, "enter")
	env.typeText(t, "world")

	if got := env.ed.Lines(); !reflect.DeepEqual(got, []string{"hello", "world"}) {
		t.Fatalf("lines = %q", got)
	}
	if s := env.ed.State(); s.Row != 1 || s.Col != 5 {
		t.Fatalf("cursor = (%d,%d), want (1,5)", s.Row, s.Col)
	}
	if !env.ed.Dirty() {
		t.Fatalf("editor not dirty after typing")
	}
}

func TestBackspaceKeys(t *testing.T) {
	env := newTestEditor(t, Options{HorizontalWrap: true}, 80, 24)
	env.load(t, "ab")

	env.press(t, "backspace")
	if got := env.ed.Lines(); !reflect.DeepEqual(got, []string{"ab"}) {
		t.Fatalf("lines = %q, want unchanged", got)
	}

	env.load(t, "abc", "def")
	env.press(t, "down", "backspace")
	if got := env.ed.Lines(); !reflect.DeepEqual(got, []string{"abcdef"}) {
		t.Fatalf("lines = %q", got)
	}
	if s := env.ed.State(); s.Row != 0 || s.Col != 3 {
		t.Fatalf("cursor = (%d,%d), want (0,3)", s.Row, s.Col)
	}
}

func TestTypingReflowsAtMaxWidth(t *testing.T) {
	env := newTestEditor(t, Options{MaxWidth: 11, HorizontalWrap: true}, 80, 24)

	env.typeText(t, "hello world")

	if got := env.ed.Lines(); !reflect.DeepEqual(got, []string{"hello ", "world"}) {
		t.Fatalf("lines = %q", got)
	}
	if s := env.ed.State(); s.Row != 1 || s.Col != 5 {
		t.Fatalf("cursor = (%d,%d), want (1,5)", s.Row, s.Col)
	}
}

func TestTypingWrapsOnTenthCharacter(t *testing.T) {
	env := newTestEditor(t, Options{MaxWidth: 10, HorizontalWrap: true}, 80, 24)

	env.typeText(t, "hello wor")
	if got := env.ed.Lines(); !reflect.DeepEqual(got, []string{"hello wor"}) {
		t.Fatalf("after 9 chars = %q", got)
	}

	env.typeText(t, "l")
	if got := env.ed.Lines(); !reflect.DeepEqual(got, []string{"hello ", "worl"}) {
		t.Fatalf("after 10 chars = %q", got)
	}
	if s := env.ed.State(); s.Row != 1 || s.Col != 4 {
		t.Fatalf("cursor = (%d,%d), want (1,4)", s.Row, s.Col)
	}

	env.typeText(t, "d")
	if got := env.ed.Lines(); !reflect.DeepEqual(got, []string{"hello ", "world"}) {
		t.Fatalf("lines = %q", got)
	}
	if s := env.ed.State(); s.Row != 1 || s.Col != 5 {
		t.Fatalf("cursor = (%d,%d), want (1,5)", s.Row, s.Col)
	}
}

func TestReflowDefaultsToDisplayWidth(t *testing.T) {
	env := newTestEditor(t, Options{HorizontalWrap: true}, 8, 5)

	env.typeText(t, "abc defg")

	if got := env.ed.Lines(); !reflect.DeepEqual(got, []string{"abc ", "defg"}) {
		t.Fatalf("lines = %q", got)
	}
}

func TestOpenMissingFile(t *testing.T) {
	env := newTestEditor(t, Options{}, 80, 24)

	if err := env.ed.Open("nope.txt"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	if got := env.ed.Lines(); !reflect.DeepEqual(got, []string{""}) {
		t.Fatalf("lines = %q, want one empty line", got)
	}
	if env.ed.StatusMessage() != "new file" {
		t.Fatalf("status = %q", env.ed.StatusMessage())
	}
	if env.ed.Filename() != "nope.txt" {
		t.Fatalf("filename = %q", env.ed.Filename())
	}
}

func TestOpenClearsHistory(t *testing.T) {
	env := newTestEditor(t, Options{}, 80, 24)
	env.typeText(t, "xy")

	env.load(t, "fresh")
	env.press(t, "ctrl+z")

	if got := env.ed.Lines(); !reflect.DeepEqual(got, []string{"fresh"}) {
		t.Fatalf("lines = %q, undo reached into the previous document", got)
	}
}

func TestSavePrompt(t *testing.T) {
	env := newTestEditor(t, Options{}, 80, 24)
	env.typeText(t, "data")

	env.press(t, "ctrl+s")
	env.typeText(t, "out.txt")
	env.press(t, "enter")

	got, err := env.store.ReadLines("out.txt")
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"data"}) {
		t.Fatalf("saved = %q", got)
	}
	if env.ed.Filename() != "out.txt" || env.ed.Dirty() {
		t.Fatalf("filename %q dirty %v", env.ed.Filename(), env.ed.Dirty())
	}
	if env.ed.StatusMessage() != "wrote 1 lines" {
		t.Fatalf("status = %q", env.ed.StatusMessage())
	}
	// The prompt text is not part of the document.
	if got := env.ed.Lines(); !reflect.DeepEqual(got, []string{"data"}) {
		t.Fatalf("lines = %q", got)
	}
}

func TestSavePromptDefaultsToCurrentFile(t *testing.T) {
	env := newTestEditor(t, Options{}, 80, 24)
	env.load(t, "one")
	env.press(t, "right", "right", "right")
	env.typeText(t, "!")

	env.press(t, "ctrl+s", "enter")

	got, _ := env.store.ReadLines("doc.txt")
	if !reflect.DeepEqual(got, []string{"one!"}) {
		t.Fatalf("saved = %q", got)
	}
}

func TestSavePromptEditing(t *testing.T) {
	env := newTestEditor(t, Options{}, 80, 24)

	env.press(t, "ctrl+s")
	env.typeText(t, "ab")
	env.press(t, "left")
	env.typeText(t, "x")
	env.press(t, "right", "backspace", "enter")

	if env.ed.Filename() != "ax" {
		t.Fatalf("filename = %q, want %q", env.ed.Filename(), "ax")
	}
}

func TestLoadPrompt(t *testing.T) {
	env := newTestEditor(t, Options{}, 80, 24)
	if err := env.store.WriteLines("src.go", []string{"package x", "", "func f() {}"}); err != nil {
		t.Fatalf("WriteLines: %v", err)
	}

	env.press(t, "ctrl+o")
	env.typeText(t, "src.go")
	env.press(t, "enter")

	if got := env.ed.Lines(); len(got) != 3 || got[0] != "package x" {
		t.Fatalf("lines = %q", got)
	}
	if env.ed.StatusMessage() != "3 lines" {
		t.Fatalf("status = %q", env.ed.StatusMessage())
	}
}

func TestPromptCancel(t *testing.T) {
	env := newTestEditor(t, Options{}, 80, 24)
	env.typeText(t, "keep")

	env.press(t, "ctrl+o")
	env.typeText(t, "zzz")
	env.press(t, "esc")

	if env.ed.StatusMessage() != "cancelled" {
		t.Fatalf("status = %q", env.ed.StatusMessage())
	}
	if got := env.ed.Lines(); !reflect.DeepEqual(got, []string{"keep"}) {
		t.Fatalf("lines = %q", got)
	}

	env.press(t, "ctrl+s", "ctrl+q")
	if env.ed.StatusMessage() != "cancelled" {
		t.Fatalf("exit inside prompt did not cancel it: %q", env.ed.StatusMessage())
	}
}

func TestPromptEmptyName(t *testing.T) {
	env := newTestEditor(t, Options{}, 80, 24)

	env.press(t, "ctrl+s", "enter")

	if env.ed.StatusMessage() != "no file name" {
		t.Fatalf("status = %q", env.ed.StatusMessage())
	}
}

func TestUndoRedoKeys(t *testing.T) {
	env := newTestEditor(t, Options{}, 80, 24)
	env.typeText(t, "abc")

	env.press(t, "ctrl+z", "ctrl+z")
	if got := env.ed.Lines(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("after undo = %q", got)
	}
	env.press(t, "ctrl+y")
	if got := env.ed.Lines(); !reflect.DeepEqual(got, []string{"ab"}) {
		t.Fatalf("after redo = %q", got)
	}
	if s := env.ed.State(); s.Col != 2 {
		t.Fatalf("col = %d, want 2", s.Col)
	}
}

func TestUndoStaleEntryReportsFailure(t *testing.T) {
	env := newTestEditor(t, Options{}, 80, 24)
	env.typeText(t, "ab")
	// Rewrite the line without going through the history.
	if err := env.ed.doc.SetLine(0, []rune("zz")); err != nil {
		t.Fatalf("SetLine: %v", err)
	}

	env.press(t, "ctrl+z")

	if env.ed.StatusMessage() != "undo failed" {
		t.Fatalf("status = %q", env.ed.StatusMessage())
	}
	if got := env.ed.Lines(); !reflect.DeepEqual(got, []string{"zz"}) {
		t.Fatalf("lines = %q", got)
	}
	if env.ed.history.UndoLen() != 1 {
		t.Fatalf("undo len = %d, want the stale entry dropped", env.ed.history.UndoLen())
	}
}

func TestUndoAfterEnter(t *testing.T) {
	env := newTestEditor(t, Options{}, 80, 24)
	env.typeText(t, "ab")
	env.press(t, "left", "enter")

	env.press(t, "ctrl+z")

	if env.ed.StatusMessage() != "" {
		t.Fatalf("status = %q", env.ed.StatusMessage())
	}
	if got := env.ed.Lines(); !reflect.DeepEqual(got, []string{"a", ""}) {
		t.Fatalf("lines = %q", got)
	}
	if s := env.ed.State(); s.Row != 1 || s.Col != 0 {
		t.Fatalf("cursor = (%d,%d), want (1,0)", s.Row, s.Col)
	}
}

func TestAllMatchingBindingsFire(t *testing.T) {
	km := Keymap{{"ctrl+d", OpDown}, {"ctrl+d", OpDown}, {"ctrl+q", OpExit}}
	env := newTestEditor(t, Options{Keymap: km}, 80, 24)
	env.load(t, "a", "b", "c", "d")

	env.press(t, "ctrl+d")

	if s := env.ed.State(); s.Row != 2 {
		t.Fatalf("row = %d, want 2", s.Row)
	}
}

func TestUnboundNamedKeyIgnored(t *testing.T) {
	env := newTestEditor(t, Options{}, 80, 24)

	env.press(t, "f5", "ctrl+x")

	if got := env.ed.Lines(); !reflect.DeepEqual(got, []string{""}) {
		t.Fatalf("lines = %q", got)
	}
}

func TestRunUntilExit(t *testing.T) {
	positions := memPositions{}
	env := newTestEditor(t, Options{Positions: positions}, 80, 24)
	env.load(t, "x")
	env.input.keys = []Key{"a", "b", "ctrl+q", "c"}

	if err := env.ed.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if env.ed.Running() {
		t.Fatalf("still running after exit")
	}
	if got := env.ed.Lines(); !reflect.DeepEqual(got, []string{"abx"}) {
		t.Fatalf("lines = %q", got)
	}
	if len(env.input.keys) != 1 {
		t.Fatalf("keys after exit were consumed")
	}
	if pos := positions["doc.txt"]; pos.Col != 2 {
		t.Fatalf("remembered %+v", pos)
	}
	if env.display.refresh < 4 {
		t.Fatalf("refresh count = %d, want a redraw per key", env.display.refresh)
	}
}

func TestRunInputError(t *testing.T) {
	env := newTestEditor(t, Options{}, 80, 24)
	env.input.keys = []Key{"a"}

	err := env.ed.Run()
	if !errors.Is(err, io.EOF) {
		t.Fatalf("Run error = %v, want EOF", err)
	}
}

func TestOpenRestoresPosition(t *testing.T) {
	positions := memPositions{"doc.txt": {Row: 5, Col: 2, FirstVisibleLine: 3}}
	env := newTestEditor(t, Options{Positions: positions}, 80, 5)

	env.load(t, lines(8)...)

	s := env.ed.State()
	if s.Row != 5 || s.Col != 2 || s.FirstVisibleLine != 3 || s.LocalRow != 2 {
		t.Fatalf("state = %+v", s)
	}
}

func TestResizeKey(t *testing.T) {
	env := newTestEditor(t, Options{}, 80, 10)
	env.load(t, lines(20)...)
	for i := 0; i < 8; i++ {
		env.press(t, "down")
	}

	env.display.h = 4
	env.press(t, KeyResize)

	s := env.ed.State()
	if s.Height != 4 || s.LocalRow != 2 || s.FirstVisibleLine != 6 {
		t.Fatalf("state = %+v", s)
	}
}

func TestRedraw(t *testing.T) {
	env := newTestEditor(t, Options{Keywords: []string{"func"}}, 30, 4)
	env.load(t, "func main", "b", "c", "d")
	env.press(t, "down", "down", "down", "right")

	env.ed.Redraw()
	d := env.display

	if d.row(0) != "b" || d.row(1) != "c" || d.row(2) != "d" {
		t.Fatalf("rows = %q %q %q", d.row(0), d.row(1), d.row(2))
	}
	status := string(d.cells[3])
	if !strings.HasPrefix(status, " doc.txt") || !strings.HasSuffix(status, " Ln 4, Col 2 ") {
		t.Fatalf("status = %q", status)
	}
	if d.attrs[3][0] != AttrStatus {
		t.Fatalf("status attr = %v", d.attrs[3][0])
	}
	if d.curRow != 2 || d.curCol != 1 {
		t.Fatalf("cursor at (%d,%d), want (2,1)", d.curRow, d.curCol)
	}

	env.press(t, "up", "up", "up")
	env.ed.Redraw()
	if d.row(0) != "func main" {
		t.Fatalf("row 0 = %q", d.row(0))
	}
	if d.attrs[0][0] != AttrKeyword || d.attrs[0][3] != AttrKeyword || d.attrs[0][5] != AttrText {
		t.Fatalf("keyword attrs = %v", d.attrs[0][:6])
	}
}

func TestRedrawPrompt(t *testing.T) {
	env := newTestEditor(t, Options{}, 30, 4)
	env.press(t, "ctrl+o")
	env.typeText(t, "f")

	env.ed.Redraw()
	d := env.display

	if got := d.row(3); got != "Open: f" {
		t.Fatalf("status = %q", got)
	}
	if d.curRow != 3 || d.curCol != 7 {
		t.Fatalf("cursor at (%d,%d), want (3,7)", d.curRow, d.curCol)
	}
}

func TestComposeStatusLine(t *testing.T) {
	got := composeStatusLine(" file.txt | a long message", " Ln 1, Col 1 ", 20)

	if n := len([]rune(got)); n != 20 {
		t.Fatalf("width = %d, want 20: %q", n, got)
	}
	if !strings.HasSuffix(got, " Ln 1, Col 1 ") {
		t.Fatalf("position dropped: %q", got)
	}
	if !strings.Contains(got, "…") {
		t.Fatalf("left side not truncated: %q", got)
	}

	if got := composeStatusLine("left", "right", 3); got != "ght" {
		t.Fatalf("narrow = %q", got)
	}
}

func TestComposeStatusLineWideRunes(t *testing.T) {
	got := composeStatusLine(" 日本語.txt | message", " Ln 1, Col 1 ", 20)

	if n := ansi.PrintableRuneWidth(got); n != 20 {
		t.Fatalf("display width = %d, want 20: %q", n, got)
	}
	if !strings.HasSuffix(got, " Ln 1, Col 1 ") {
		t.Fatalf("position dropped: %q", got)
	}
	if !strings.HasPrefix(got, " 日本") {
		t.Fatalf("left side = %q", got)
	}
}
