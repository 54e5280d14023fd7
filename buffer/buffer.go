//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
package buffer

import (
	"errors"
	"os"
	"strings"

	"github.com/litetext/lite/types"
)

var errNoPath = errors.New("buffer has no file path")

// A Buffer holds one open document: its lines, cursor, selection
// anchor, file association, and undo history. A buffer never has zero
// lines; an empty document is a single empty line.
//
// Every content-mutating method records an inverse Change and marks
// the buffer edited. Cursor- and selection-only methods record their
// Change but leave the edited flag alone.
type Buffer struct {
	lines     []string
	cursor    types.Point
	anchor    *types.Point // selection anchor; nil when no selection
	filePath  string       // "" when never associated with a path
	edited    bool
	undoStack []*Change
	redoStack []*Change
}

// New returns an empty buffer containing a single empty line.
func New() *Buffer {
	return &Buffer{lines: []string{""}}
}

// Load reads a file into a new buffer. Lines are split on '\n' and a
// trailing '\r' is stripped from each (CRLF input is tolerated). A
// missing or unreadable file yields an empty buffer that keeps the
// path so it can be saved later.
func Load(path string) *Buffer {
	b := New()
	b.filePath = path
	data, err := os.ReadFile(path)
	if err != nil {
		return b
	}
	s := string(data)
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	b.lines = lines
	b.fixCursor()
	return b
}

// Getters

func (b *Buffer) FilePath() (string, bool) {
	return b.filePath, b.filePath != ""
}

func (b *Buffer) SetFilePath(path string) {
	b.filePath = path
}

func (b *Buffer) IsEdited() bool {
	return b.edited
}

func (b *Buffer) CursorPos() types.Point {
	return b.cursor
}

func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of one line, or "" for an out-of-range row.
func (b *Buffer) Line(row int) string {
	if row >= 0 && row < len(b.lines) {
		return b.lines[row]
	}
	return ""
}

// Lines returns a copy of the rows in [startRow, endRow), clamped to
// the buffer.
func (b *Buffer) Lines(startRow, endRow int) []string {
	startRow = max(startRow, 0)
	endRow = min(endRow, len(b.lines))
	if startRow >= endRow {
		return nil
	}
	result := make([]string, endRow-startRow)
	copy(result, b.lines[startRow:endRow])
	return result
}

func (b *Buffer) HasSelection() bool {
	return b.anchor != nil
}

// SelectionRange returns the normalized selection span: the textually
// earlier of anchor and cursor first.
func (b *Buffer) SelectionRange() (start, end types.Point, ok bool) {
	if b.anchor == nil {
		return types.Point{}, types.Point{}, false
	}
	a, c := *b.anchor, b.cursor
	if a.Less(c) {
		return a, c, true
	}
	return c, a, true
}

// SelectedText returns the text within the selection. A selection whose
// ends coincide yields the empty string.
func (b *Buffer) SelectedText() (string, bool) {
	start, end, ok := b.SelectionRange()
	if !ok {
		return "", false
	}
	if start.Row == end.Row {
		line := b.Line(start.Row)
		lo := min(start.Col, len(line))
		hi := min(end.Col, len(line))
		if lo >= hi {
			return "", true
		}
		return line[lo:hi], true
	}
	var sb strings.Builder
	first := b.Line(start.Row)
	sb.WriteString(first[min(start.Col, len(first)):])
	for row := start.Row + 1; row < end.Row; row++ {
		sb.WriteByte('\n')
		sb.WriteString(b.Line(row))
	}
	if end.Col > 0 {
		last := b.Line(end.Row)
		sb.WriteByte('\n')
		sb.WriteString(last[:min(end.Col, len(last))])
	}
	return sb.String(), true
}

// Save writes the buffer to its associated path. It fails if the
// buffer has never been given one.
func (b *Buffer) Save() error {
	if b.filePath == "" {
		return errNoPath
	}
	return b.SaveAs(b.filePath)
}

// SaveAs writes each line followed by a newline, except that no newline
// is written after the last line. On success the path is associated
// and the edited flag cleared; the undo history is kept.
func (b *Buffer) SaveAs(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	for i, line := range b.lines {
		if i > 0 {
			if _, err := f.Write([]byte{'\n'}); err != nil {
				f.Close()
				return err
			}
		}
		if _, err := f.WriteString(line); err != nil {
			f.Close()
			return err
		}
	}
	if err := f.Close(); err != nil {
		return err
	}
	b.filePath = path
	b.edited = false
	return nil
}

// Editing operations

// SetCursorPosition clamps the requested position and records a Move
// entry only if the cursor actually moved.
func (b *Buffer) SetCursorPosition(row, col int) {
	old := b.cursor
	b.setCursorInternal(row, col)
	if b.cursor != old {
		b.pushUndo(&Change{Kind: ChangeMove, From: old, To: b.cursor})
	}
}

// InsertChar inserts one character at the cursor. An active selection
// is deleted first, as its own undo step.
func (b *Buffer) InsertChar(c byte) {
	b.InsertString(string(c))
}

// InsertNewline splits the current line at the cursor.
func (b *Buffer) InsertNewline() {
	b.InsertString("\n")
}

// InsertString inserts text at the cursor, splitting lines on embedded
// newlines and leaving the cursor just after the inserted text. The
// whole call is one undo step.
func (b *Buffer) InsertString(text string) {
	if text == "" {
		return
	}
	if b.HasSelection() {
		b.DeleteSelection()
	}
	at := b.cursor
	b.insertTextInternal(text)
	b.edited = true
	b.pushUndo(&Change{Kind: ChangeInsert, From: at, Text: text})
}

// DeleteCharForward deletes the character under the cursor, joining
// with the next line at end of line. At the very end of the buffer it
// is a no-op. With an active selection it deletes the selection
// instead.
func (b *Buffer) DeleteCharForward() {
	if b.HasSelection() {
		b.DeleteSelection()
		return
	}
	at := b.cursor
	line := b.lines[at.Row]
	var deleted string
	switch {
	case at.Col < len(line):
		deleted = line[at.Col : at.Col+1]
	case at.Row < len(b.lines)-1:
		deleted = "\n"
	default:
		return
	}
	b.deleteTextInternal(at.Row, at.Col, 1)
	b.edited = true
	b.pushUndo(&Change{Kind: ChangeDelete, From: at, Text: deleted})
}

// DeleteCharBackward deletes the character before the cursor, joining
// with the previous line at column 0. At the start of the buffer it is
// a no-op. With an active selection it deletes the selection instead.
func (b *Buffer) DeleteCharBackward() {
	if b.HasSelection() {
		b.DeleteSelection()
		return
	}
	at := b.cursor
	var start types.Point
	var deleted string
	switch {
	case at.Col > 0:
		start = types.Point{Row: at.Row, Col: at.Col - 1}
		deleted = b.lines[at.Row][at.Col-1 : at.Col]
	case at.Row > 0:
		start = types.Point{Row: at.Row - 1, Col: len(b.lines[at.Row-1])}
		deleted = "\n"
	default:
		return
	}
	b.deleteTextInternal(start.Row, start.Col, 1)
	b.edited = true
	b.pushUndo(&Change{Kind: ChangeDelete, From: start, Text: deleted})
}

// DeleteSelection removes the normalized selection span, clears the
// selection, and records one Delete entry holding the exact removed
// text. The clearing of the anchor is its own undo entry beneath the
// delete, so undoing restores the selection too.
func (b *Buffer) DeleteSelection() {
	start, _, ok := b.SelectionRange()
	if !ok {
		return
	}
	text, _ := b.SelectedText()
	if text == "" {
		b.Unselect()
		return
	}
	b.deleteTextInternal(start.Row, start.Col, len(text))
	b.edited = true
	b.Unselect()
	b.pushUndo(&Change{Kind: ChangeDelete, From: start, Text: text})
}

// MoveCursor moves one step in the given direction. Left at column 0
// wraps to the end of the previous line, right at end of line wraps to
// the start of the next. If selecting is true and no selection exists,
// one starts at the pre-move position; moving without selecting clears
// any selection.
func (b *Buffer) MoveCursor(direction int, selecting bool) {
	old := b.cursor
	if selecting && !b.HasSelection() {
		b.SelectStart()
	} else if !selecting && b.HasSelection() {
		b.Unselect()
	}
	switch direction {
	case types.MoveUp:
		if b.cursor.Row > 0 {
			b.cursor.Row--
		}
	case types.MoveDown:
		if b.cursor.Row < len(b.lines)-1 {
			b.cursor.Row++
		}
	case types.MoveLeft:
		if b.cursor.Col > 0 {
			b.cursor.Col--
		} else if b.cursor.Row > 0 {
			b.cursor.Row--
			b.cursor.Col = len(b.lines[b.cursor.Row])
		}
	case types.MoveRight:
		if b.cursor.Col < len(b.lines[b.cursor.Row]) {
			b.cursor.Col++
		} else if b.cursor.Row < len(b.lines)-1 {
			b.cursor.Row++
			b.cursor.Col = 0
		}
	case types.MoveNowhere:
	}
	b.fixCursor()
	if b.cursor != old {
		b.pushUndo(&Change{Kind: ChangeMove, From: old, To: b.cursor})
	}
}

// SelectStart sets the selection anchor at the cursor. It is a no-op,
// with no undo entry, if a selection already exists.
func (b *Buffer) SelectStart() {
	if b.anchor != nil {
		return
	}
	anchor := b.cursor
	b.setSelectionInternal(anchor)
	b.pushUndo(&Change{Kind: ChangeSelectStart, NewAnchor: anchor})
}

// Unselect clears the selection anchor. It is a no-op, with no undo
// entry, if no selection exists.
func (b *Buffer) Unselect() {
	if b.anchor == nil {
		return
	}
	old := *b.anchor
	b.clearSelectionInternal()
	b.pushUndo(&Change{Kind: ChangeUnselect, OldAnchor: &old})
}

// Undo/redo

// Undo reverts the most recent change. An empty stack is a silent
// no-op. The edited flag clears exactly when the undo stack empties.
func (b *Buffer) Undo() {
	n := len(b.undoStack)
	if n == 0 {
		return
	}
	change := b.undoStack[n-1]
	b.undoStack = b.undoStack[:n-1]
	change.undo(b)
	b.redoStack = append(b.redoStack, change)
	b.edited = len(b.undoStack) > 0
	b.fixCursor()
}

// Redo reapplies the most recently undone change. Redoing marks the
// buffer edited even when it returns to saved content; that asymmetry
// is a known simplification.
func (b *Buffer) Redo() {
	n := len(b.redoStack)
	if n == 0 {
		return
	}
	change := b.redoStack[n-1]
	b.redoStack = b.redoStack[:n-1]
	change.apply(b)
	b.undoStack = append(b.undoStack, change)
	b.edited = true
	b.fixCursor()
}

// Internal mutators. Only the public operations above and Change
// apply/undo may call these; none of them touch the undo stacks.

func (b *Buffer) pushUndo(change *Change) {
	b.undoStack = append(b.undoStack, change)
	b.redoStack = nil
}

func (b *Buffer) setCursorInternal(row, col int) {
	b.cursor = types.Point{Row: row, Col: col}
	b.fixCursor()
}

// fixCursor clamps the cursor so 0 <= row < len(lines) and
// 0 <= col <= len(lines[row]). The column may sit one past the last
// character.
func (b *Buffer) fixCursor() {
	b.cursor.Row = max(0, min(b.cursor.Row, len(b.lines)-1))
	b.cursor.Col = max(0, min(b.cursor.Col, len(b.lines[b.cursor.Row])))
}

// insertTextInternal inserts text at the cursor, splitting on embedded
// newlines, and leaves the cursor just past the inserted text.
func (b *Buffer) insertTextInternal(text string) {
	if text == "" {
		return
	}
	b.fixCursor()
	for {
		nl := strings.IndexByte(text, '\n')
		if nl < 0 {
			break
		}
		part := text[:nl]
		line := b.lines[b.cursor.Row]
		col := min(b.cursor.Col, len(line))
		rest := line[col:]
		b.lines[b.cursor.Row] = line[:col] + part
		b.lines = append(b.lines, "")
		copy(b.lines[b.cursor.Row+2:], b.lines[b.cursor.Row+1:])
		b.lines[b.cursor.Row+1] = rest
		b.cursor.Row++
		b.cursor.Col = 0
		text = text[nl+1:]
	}
	if text != "" {
		line := b.lines[b.cursor.Row]
		col := min(b.cursor.Col, len(line))
		b.lines[b.cursor.Row] = line[:col] + text + line[col:]
		b.cursor.Col = col + len(text)
	}
	b.fixCursor()
}

// deleteTextInternal removes length units forward from (row, col),
// joining lines when the deletion crosses a line end, and leaves the
// cursor at the deletion start.
func (b *Buffer) deleteTextInternal(row, col, length int) {
	b.setCursorInternal(row, col)
	for i := 0; i < length; i++ {
		line := b.lines[b.cursor.Row]
		if b.cursor.Col < len(line) {
			b.lines[b.cursor.Row] = line[:b.cursor.Col] + line[b.cursor.Col+1:]
		} else if b.cursor.Row < len(b.lines)-1 {
			b.lines[b.cursor.Row] = line + b.lines[b.cursor.Row+1]
			b.lines = append(b.lines[:b.cursor.Row+1], b.lines[b.cursor.Row+2:]...)
		} else {
			break
		}
	}
	b.setCursorInternal(row, col)
}

func (b *Buffer) setSelectionInternal(anchor types.Point) {
	b.anchor = &anchor
}

func (b *Buffer) clearSelectionInternal() {
	b.anchor = nil
}
