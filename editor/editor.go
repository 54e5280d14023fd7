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

// Package editor ties the buffers, the script runtime, and the
// frontend together. The Editor owns the buffer list and the global
// script environment; the frontend only ever sees it through the
// types.View interface, and scripts only through types.Editor.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/litetext/lite/buffer"
	"github.com/litetext/lite/lang"
	"github.com/litetext/lite/types"
)

type Editor struct {
	buffers []*buffer.Buffer
	current int

	env      *lang.Env
	frontend types.Frontend

	size     types.Size
	offset   types.Size
	message  string
	clipText string

	lastSearch string
	lastEval   string
	shouldExit bool
}

// New returns an editor holding one empty buffer and a fresh global
// environment with the builtins installed.
func New() *Editor {
	e := &Editor{
		buffers: []*buffer.Buffer{buffer.New()},
		env:     lang.NewEnv(nil),
	}
	lang.Register(e.env)
	return e
}

// SetFrontend attaches the terminal frontend used for prompts and
// status output. It may stay nil for script-only use.
func (e *Editor) SetFrontend(f types.Frontend) {
	e.frontend = f
}

func (e *Editor) Buffer() *buffer.Buffer {
	return e.buffers[e.current]
}

func (e *Editor) ShouldExit() bool {
	return e.shouldExit
}

// OpenFile loads a file into the editor. When the only open buffer is
// still pristine it is replaced, so starting the editor with a file
// name does not leave a stray empty buffer behind.
func (e *Editor) OpenFile(path string) {
	b := buffer.Load(path)
	cur := e.Buffer()
	if len(e.buffers) == 1 && !cur.IsEdited() && cur.LineCount() == 1 && cur.Line(0) == "" {
		if _, named := cur.FilePath(); !named {
			e.buffers[e.current] = b
			return
		}
	}
	e.buffers = append(e.buffers, b)
	e.current = len(e.buffers) - 1
	e.offset = types.Size{}
}

// CloseCurrentBuffer closes the current buffer, asking to save unsaved
// changes when a frontend is attached. Closing the last buffer exits
// the editor.
func (e *Editor) CloseCurrentBuffer() {
	b := e.Buffer()
	if b.IsEdited() && e.frontend != nil {
		save, ok := e.frontend.Ask("Save changes before closing? (y/n)")
		if !ok {
			return
		}
		if save && !e.saveWithPrompt(b) {
			return
		}
	}
	if len(e.buffers) == 1 {
		e.shouldExit = true
		return
	}
	e.buffers = append(e.buffers[:e.current], e.buffers[e.current+1:]...)
	if e.current >= len(e.buffers) {
		e.current = len(e.buffers) - 1
	}
	e.offset = types.Size{}
}

func (e *Editor) NextBuffer() {
	e.current = (e.current + 1) % len(e.buffers)
	e.offset = types.Size{}
}

func (e *Editor) PreviousBuffer() {
	e.current = (e.current - 1 + len(e.buffers)) % len(e.buffers)
	e.offset = types.Size{}
}

// Quit exits, asking about each unsaved buffer first.
func (e *Editor) Quit() {
	if e.frontend != nil {
		for i, b := range e.buffers {
			if !b.IsEdited() {
				continue
			}
			name := fmt.Sprintf("buffer %d", i)
			if path, ok := b.FilePath(); ok {
				name = path
			}
			save, ok := e.frontend.Ask("Save " + name + "? (y/n)")
			if !ok {
				return
			}
			if save && !e.saveWithPrompt(b) {
				return
			}
		}
	}
	e.shouldExit = true
}

// Save writes the current buffer, prompting for a path if it has none.
func (e *Editor) Save() {
	e.saveWithPrompt(e.Buffer())
}

// SaveAs prompts for a path and writes the current buffer to it.
func (e *Editor) SaveAs() {
	b := e.Buffer()
	initial, _ := b.FilePath()
	if e.frontend == nil {
		return
	}
	path, ok := e.frontend.Prompt("Save as: ", initial)
	if !ok || path == "" {
		return
	}
	if err := b.SaveAs(path); err != nil {
		e.SetStatus("save failed: " + err.Error())
		return
	}
	e.SetStatus("wrote " + path)
}

func (e *Editor) saveWithPrompt(b *buffer.Buffer) bool {
	path, ok := b.FilePath()
	if !ok {
		if e.frontend == nil {
			return false
		}
		path, ok = e.frontend.Prompt("Save as: ", "")
		if !ok || path == "" {
			return false
		}
	}
	if err := b.SaveAs(path); err != nil {
		e.SetStatus("save failed: " + err.Error())
		return false
	}
	e.SetStatus("wrote " + path)
	return true
}

// Open prompts for a file name and opens it.
func (e *Editor) Open() {
	if e.frontend == nil {
		return
	}
	path, ok := e.frontend.Prompt("Open: ", "")
	if !ok || path == "" {
		return
	}
	e.OpenFile(path)
}

// Clipboard operations. The clipboard is editor-internal; there is no
// system clipboard integration.

func (e *Editor) Copy() {
	if text, ok := e.Buffer().SelectedText(); ok {
		e.clipText = text
	}
}

func (e *Editor) Cut() {
	b := e.Buffer()
	if text, ok := b.SelectedText(); ok {
		e.clipText = text
		b.DeleteSelection()
	}
}

func (e *Editor) Paste() {
	if e.clipText != "" {
		e.Buffer().InsertString(e.clipText)
	}
}

// SelectAll anchors at the start of the buffer and moves the cursor
// past the last character.
func (e *Editor) SelectAll() {
	b := e.Buffer()
	b.Unselect()
	b.SetCursorPosition(0, 0)
	b.SelectStart()
	last := b.LineCount() - 1
	b.SetCursorPosition(last, len(b.Line(last)))
}

// Find prompts for a search string (empty input repeats the previous
// search) and moves the cursor to the next occurrence, wrapping at the
// end of the buffer.
func (e *Editor) Find() {
	if e.frontend == nil {
		return
	}
	query, ok := e.frontend.Prompt("Find: ", e.lastSearch)
	if !ok {
		return
	}
	if query == "" {
		query = e.lastSearch
	}
	if query == "" {
		return
	}
	e.lastSearch = query
	if !e.findNext(query) {
		e.SetStatus("not found: " + query)
	}
}

// FindNext repeats the previous search.
func (e *Editor) FindNext() {
	if e.lastSearch == "" {
		e.Find()
		return
	}
	if !e.findNext(e.lastSearch) {
		e.SetStatus("not found: " + e.lastSearch)
	}
}

func (e *Editor) findNext(query string) bool {
	b := e.Buffer()
	cur := b.CursorPos()
	rows := b.LineCount()
	for i := 0; i <= rows; i++ {
		row := (cur.Row + i) % rows
		line := b.Line(row)
		from := 0
		if i == 0 {
			from = cur.Col + 1
			if from > len(line) {
				continue
			}
		}
		if col := strings.Index(line[from:], query); col >= 0 {
			b.SetCursorPosition(row, from+col)
			return true
		}
	}
	return false
}

// RunShellCommand prompts for a shell command and captures its output
// in a new buffer. With a selection active, the selection is piped to
// the command's standard input.
func (e *Editor) RunShellCommand() {
	if e.frontend == nil {
		return
	}
	command, ok := e.frontend.Prompt("$ ", "")
	if !ok || command == "" {
		return
	}
	cmd := exec.Command("sh", "-c", command)
	if text, selected := e.Buffer().SelectedText(); selected {
		cmd.Stdin = strings.NewReader(text)
	}
	out, err := cmd.CombinedOutput()
	if err != nil && len(out) == 0 {
		e.SetStatus("command failed: " + err.Error())
		return
	}
	e.NewBuffer()
	e.Buffer().InsertString(string(out))
	e.Buffer().SetCursorPosition(0, 0)
}

// Scripting

// EvaluateExpression prompts for script text, evaluates it, and shows
// the result on the status line. Empty input repeats the previous
// expression.
func (e *Editor) EvaluateExpression() {
	if e.frontend == nil {
		return
	}
	source, ok := e.frontend.Prompt("> ", e.lastEval)
	if !ok || source == "" {
		return
	}
	e.lastEval = source
	result, err := e.EvaluateScript(source)
	if err != nil {
		e.SetStatus(err.Error())
		return
	}
	e.SetStatus(result.String())
}

// EvaluateScript parses and evaluates source in the global
// environment.
func (e *Editor) EvaluateScript(source string) (*lang.Expr, error) {
	ast, err := lang.Parse(source)
	if err != nil {
		return nil, err
	}
	return lang.Eval(ast, e, e.env)
}

// LoadConfig evaluates the user's startup script if one exists,
// checking $XDG_CONFIG_HOME/lite/config.lite, ~/.config/lite/config.lite,
// and ~/.literc in that order. The first file found wins.
func (e *Editor) LoadConfig() error {
	var candidates []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, "lite", "config.lite"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".config", "lite", "config.lite"),
			filepath.Join(home, ".literc"))
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if _, err := e.EvaluateScript(string(data)); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	}
	return nil
}

// types.Editor: the surface scripts reach through builtins.

func (e *Editor) InsertString(text string) {
	e.Buffer().InsertString(text)
}

func (e *Editor) DeleteBackward() {
	e.Buffer().DeleteCharBackward()
}

func (e *Editor) DeleteForward() {
	e.Buffer().DeleteCharForward()
}

func (e *Editor) MoveCursor(direction int) {
	e.Buffer().MoveCursor(direction, false)
}

func (e *Editor) GotoPosition(row, col int) {
	e.Buffer().SetCursorPosition(row, col)
}

func (e *Editor) StartSelection() {
	e.Buffer().SelectStart()
}

func (e *Editor) ClearSelection() {
	e.Buffer().Unselect()
}

func (e *Editor) SelectedText() (string, bool) {
	return e.Buffer().SelectedText()
}

// NewBuffer creates an empty buffer, switches to it, and returns its
// index.
func (e *Editor) NewBuffer() int {
	e.buffers = append(e.buffers, buffer.New())
	e.current = len(e.buffers) - 1
	e.offset = types.Size{}
	return e.current
}

// SetBuffer switches to the buffer at index, reporting false when the
// index is out of range.
func (e *Editor) SetBuffer(index int) bool {
	if index < 0 || index >= len(e.buffers) {
		return false
	}
	if index != e.current {
		e.current = index
		e.offset = types.Size{}
	}
	return true
}

func (e *Editor) CurrentBufferIndex() int {
	return e.current
}

func (e *Editor) SetStatus(message string) {
	e.message = message
}

// types.View: the surface the frontend draws from.

func (e *Editor) SetSize(size types.Size) {
	e.size = size
}

// Scroll moves the viewport the minimal amount needed to keep the
// cursor visible.
func (e *Editor) Scroll() {
	cursor := e.Buffer().CursorPos()
	if e.size.Rows > 0 {
		if cursor.Row < e.offset.Rows {
			e.offset.Rows = cursor.Row
		} else if cursor.Row >= e.offset.Rows+e.size.Rows {
			e.offset.Rows = cursor.Row - e.size.Rows + 1
		}
	}
	if e.size.Cols > 0 {
		if cursor.Col < e.offset.Cols {
			e.offset.Cols = cursor.Col
		} else if cursor.Col >= e.offset.Cols+e.size.Cols {
			e.offset.Cols = cursor.Col - e.size.Cols + 1
		}
	}
}

func (e *Editor) Offset() types.Size {
	return e.offset
}

func (e *Editor) CursorPos() types.Point {
	return e.Buffer().CursorPos()
}

func (e *Editor) LineCount() int {
	return e.Buffer().LineCount()
}

func (e *Editor) Line(row int) string {
	return e.Buffer().Line(row)
}

func (e *Editor) SelectionRange() (start, end types.Point, ok bool) {
	return e.Buffer().SelectionRange()
}

func (e *Editor) FileName() string {
	if path, ok := e.Buffer().FilePath(); ok {
		return path
	}
	return "[no file]"
}

func (e *Editor) Edited() bool {
	return e.Buffer().IsEdited()
}

func (e *Editor) BufferIndex() int {
	return e.current
}

func (e *Editor) BufferCount() int {
	return len(e.buffers)
}

func (e *Editor) Message() string {
	return e.message
}
