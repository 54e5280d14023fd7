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
package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/litetext/lite/types"
)

func checkText(t *testing.T, e *Editor, expected ...string) {
	t.Helper()
	if e.LineCount() != len(expected) {
		t.Fatalf("line count is %d, expected %d", e.LineCount(), len(expected))
	}
	for i, line := range expected {
		if e.Line(i) != line {
			t.Errorf("line %d is %q, expected %q", i, e.Line(i), line)
		}
	}
}

func TestScriptEditsCurrentBuffer(t *testing.T) {
	e := New()
	if _, err := e.EvaluateScript(`insert "hello\nworld"`); err != nil {
		t.Fatal(err)
	}
	checkText(t, e, "hello", "world")
}

func TestScriptBufferManagement(t *testing.T) {
	e := New()
	result, err := e.EvaluateScript(`
		insert "first";
		new-buf ();
		insert "second";
		get-cur-buf ()`)
	if err != nil {
		t.Fatal(err)
	}
	if result.Int != 1 {
		t.Errorf("current buffer is %s, expected 1", result)
	}
	checkText(t, e, "second")
	if !e.SetBuffer(0) {
		t.Fatal("switching to buffer 0 failed")
	}
	checkText(t, e, "first")
}

func TestScriptSelectionRoundTrip(t *testing.T) {
	e := New()
	result, err := e.EvaluateScript(`
		insert "abcdef";
		goto 0 1;
		select ();
		goto 0 4;
		get-select ()`)
	if err != nil {
		t.Fatal(err)
	}
	if result.Str != "bcd" {
		t.Errorf("selection is %s", result)
	}
}

func TestScriptMoveAndDelete(t *testing.T) {
	e := New()
	_, err := e.EvaluateScript(`
		insert "abc";
		move left;
		delete ()`)
	if err != nil {
		t.Fatal(err)
	}
	checkText(t, e, "ac")
}

func TestOpenFileReplacesPristineBuffer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("content\n"), 0644); err != nil {
		t.Fatal(err)
	}
	e := New()
	e.OpenFile(path)
	if e.BufferCount() != 1 {
		t.Errorf("buffer count is %d, expected 1", e.BufferCount())
	}
	checkText(t, e, "content")

	e.OpenFile(path)
	if e.BufferCount() != 2 {
		t.Errorf("second open should add a buffer, count is %d", e.BufferCount())
	}
}

func TestNextAndPreviousBufferWrap(t *testing.T) {
	e := New()
	e.NewBuffer()
	e.NewBuffer()
	e.SetBuffer(2)
	e.NextBuffer()
	if e.CurrentBufferIndex() != 0 {
		t.Errorf("next from last should wrap to 0, got %d", e.CurrentBufferIndex())
	}
	e.PreviousBuffer()
	if e.CurrentBufferIndex() != 2 {
		t.Errorf("previous from first should wrap to 2, got %d", e.CurrentBufferIndex())
	}
}

func TestCloseLastBufferExits(t *testing.T) {
	e := New()
	e.CloseCurrentBuffer()
	if !e.ShouldExit() {
		t.Error("closing the only buffer should exit")
	}
}

func TestClipboardCopyCutPaste(t *testing.T) {
	e := New()
	e.InsertString("hello")
	e.GotoPosition(0, 0)
	e.StartSelection()
	e.GotoPosition(0, 5)
	e.Copy()
	e.ClearSelection()
	e.GotoPosition(0, 5)
	e.Paste()
	checkText(t, e, "hellohello")

	e.GotoPosition(0, 0)
	e.StartSelection()
	e.GotoPosition(0, 5)
	e.Cut()
	checkText(t, e, "hello")
}

func TestSelectAll(t *testing.T) {
	e := New()
	e.InsertString("ab\ncd")
	e.SelectAll()
	text, ok := e.SelectedText()
	if !ok || text != "ab\ncd" {
		t.Errorf("selected %q, %v", text, ok)
	}
}

func TestFindWrapsAroundBuffer(t *testing.T) {
	e := New()
	e.InsertString("one two\nthree two\nfour")
	e.GotoPosition(1, 8)
	e.lastSearch = "two"
	e.FindNext()
	if e.CursorPos() != (types.Point{Row: 0, Col: 4}) {
		t.Errorf("cursor is %+v, expected (0, 4)", e.CursorPos())
	}
	e.FindNext()
	if e.CursorPos() != (types.Point{Row: 1, Col: 6}) {
		t.Errorf("cursor is %+v, expected (1, 6)", e.CursorPos())
	}
}

func TestProcessEventInsertsAndDeletes(t *testing.T) {
	e := New()
	e.ProcessEvent(&types.Event{Type: types.EventKey, Ch: 'h'})
	e.ProcessEvent(&types.Event{Type: types.EventKey, Ch: 'i'})
	e.ProcessEvent(&types.Event{Type: types.EventKey, Key: types.KeyEnter})
	e.ProcessEvent(&types.Event{Type: types.EventKey, Ch: 'x'})
	e.ProcessEvent(&types.Event{Type: types.EventKey, Key: types.KeyBackspace})
	checkText(t, e, "hi", "")
}

func TestProcessEventUndoRedo(t *testing.T) {
	e := New()
	e.ProcessEvent(&types.Event{Type: types.EventKey, Ch: 'a'})
	e.ProcessEvent(&types.Event{Type: types.EventKey, Key: types.KeyCtrlZ})
	checkText(t, e, "")
	e.ProcessEvent(&types.Event{Type: types.EventKey, Key: types.KeyCtrlY})
	checkText(t, e, "a")
}

func TestProcessEventShiftArrowSelects(t *testing.T) {
	e := New()
	e.InsertString("abc")
	e.GotoPosition(0, 0)
	e.ProcessEvent(&types.Event{Type: types.EventKey, Key: types.KeyArrowRight, Shift: true})
	e.ProcessEvent(&types.Event{Type: types.EventKey, Key: types.KeyArrowRight, Shift: true})
	text, ok := e.SelectedText()
	if !ok || text != "ab" {
		t.Errorf("selected %q, %v", text, ok)
	}
}

func TestScrollFollowsCursor(t *testing.T) {
	e := New()
	for i := 0; i < 30; i++ {
		e.InsertString("line\n")
	}
	e.SetSize(types.Size{Rows: 10, Cols: 80})
	e.GotoPosition(25, 0)
	e.Scroll()
	if off := e.Offset(); off.Rows != 16 {
		t.Errorf("row offset is %d, expected 16", off.Rows)
	}
	e.GotoPosition(0, 0)
	e.Scroll()
	if off := e.Offset(); off.Rows != 0 {
		t.Errorf("row offset is %d, expected 0", off.Rows)
	}
}

func TestLoadConfigEvaluatesFirstFound(t *testing.T) {
	dir := t.TempDir()
	confDir := filepath.Join(dir, "lite")
	if err := os.MkdirAll(confDir, 0755); err != nil {
		t.Fatal(err)
	}
	script := `insert "from config"`
	if err := os.WriteFile(filepath.Join(confDir, "config.lite"), []byte(script), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CONFIG_HOME", dir)

	e := New()
	if err := e.LoadConfig(); err != nil {
		t.Fatal(err)
	}
	checkText(t, e, "from config")
}

func TestEvaluateScriptReportsParseErrors(t *testing.T) {
	e := New()
	if _, err := e.EvaluateScript("(1 + "); err == nil {
		t.Error("expected a parse error")
	}
}

func TestViewReportsFileNameAndEdited(t *testing.T) {
	e := New()
	if e.FileName() != "[no file]" {
		t.Errorf("file name is %q", e.FileName())
	}
	if e.Edited() {
		t.Error("fresh editor should not be edited")
	}
	e.InsertString("x")
	if !e.Edited() {
		t.Error("editor should be edited after insert")
	}
}
