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
package lang

import (
	"strings"
	"testing"

	"github.com/litetext/lite/types"
)

// fakeEditor records which editor operations a script performed.
type fakeEditor struct {
	inserted  string
	backward  int
	forward   int
	moves     []int
	gotoRow   int
	gotoCol   int
	selecting bool
	selection string
	buffers   int
	current   int
	status    string
}

func (f *fakeEditor) InsertString(text string) { f.inserted += text }
func (f *fakeEditor) DeleteBackward()          { f.backward++ }
func (f *fakeEditor) DeleteForward()           { f.forward++ }
func (f *fakeEditor) MoveCursor(direction int) { f.moves = append(f.moves, direction) }
func (f *fakeEditor) GotoPosition(row, col int) {
	f.gotoRow, f.gotoCol = row, col
}
func (f *fakeEditor) StartSelection() { f.selecting = true }
func (f *fakeEditor) ClearSelection() { f.selecting = false }
func (f *fakeEditor) SelectedText() (string, bool) {
	if !f.selecting {
		return "", false
	}
	return f.selection, true
}
func (f *fakeEditor) NewBuffer() int {
	f.buffers++
	f.current = f.buffers
	return f.current
}
func (f *fakeEditor) SetBuffer(index int) bool {
	if index < 0 || index > f.buffers {
		return false
	}
	f.current = index
	return true
}
func (f *fakeEditor) CurrentBufferIndex() int  { return f.current }
func (f *fakeEditor) SetStatus(message string) { f.status = message }

func runWithEditor(t *testing.T, source string) (*Expr, *fakeEditor) {
	t.Helper()
	ed := &fakeEditor{}
	env := NewEnv(nil)
	Register(env)
	ast, err := Parse(source)
	if err != nil {
		t.Fatalf("parse of %q failed: %v", source, err)
	}
	result, err := Eval(ast, ed, env)
	if err != nil {
		t.Fatalf("eval of %q failed: %v", source, err)
	}
	return result, ed
}

func TestBuiltinAdd(t *testing.T) {
	checkEval(t, "add 1 2", "3")
	checkEval(t, "add 1 2 3 4", "10")
	checkEval(t, `add "a" "b"`, `"ab"`)
	checkEval(t, "add 5", "5")
	checkEval(t, "add 1 (add 2 3)", "6")
}

func TestBuiltinPrintSetsStatus(t *testing.T) {
	_, ed := runWithEditor(t, `print "hello" 42`)
	if ed.status != "hello 42" {
		t.Errorf("status is %q", ed.status)
	}
}

func TestBuiltinInsert(t *testing.T) {
	_, ed := runWithEditor(t, `insert "abc"; insert "\n"`)
	if ed.inserted != "abc\n" {
		t.Errorf("inserted %q", ed.inserted)
	}
	err := runError(t, `insert "x"`)
	if !strings.Contains(err.Error(), "no editor") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestBuiltinInsertRejectsNonString(t *testing.T) {
	ed := &fakeEditor{}
	env := NewEnv(nil)
	Register(env)
	ast, err := Parse("insert 42")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Eval(ast, ed, env); err == nil {
		t.Error("insert of an integer should fail")
	}
}

func TestBuiltinDelete(t *testing.T) {
	_, ed := runWithEditor(t, "delete (); delete 2; delete (-3)")
	if ed.backward != 3 {
		t.Errorf("backward deletes: %d, expected 3", ed.backward)
	}
	if ed.forward != 3 {
		t.Errorf("forward deletes: %d, expected 3", ed.forward)
	}
}

func TestBuiltinMove(t *testing.T) {
	_, ed := runWithEditor(t, `move up; move "down"; move 2; move (-1)`)
	expected := []int{
		types.MoveUp, types.MoveDown,
		types.MoveRight, types.MoveRight, types.MoveLeft,
	}
	if len(ed.moves) != len(expected) {
		t.Fatalf("moves are %v", ed.moves)
	}
	for i, m := range expected {
		if ed.moves[i] != m {
			t.Errorf("move %d is %d, expected %d", i, ed.moves[i], m)
		}
	}
}

func TestBuiltinMoveRejectsUnknownDirection(t *testing.T) {
	ed := &fakeEditor{}
	env := NewEnv(nil)
	Register(env)
	ast, _ := Parse("move sideways")
	if _, err := Eval(ast, ed, env); err == nil {
		t.Error("unknown direction should fail")
	}
}

func TestBuiltinGoto(t *testing.T) {
	_, ed := runWithEditor(t, "goto 3 7")
	if ed.gotoRow != 3 || ed.gotoCol != 7 {
		t.Errorf("goto landed at (%d, %d)", ed.gotoRow, ed.gotoCol)
	}
}

func TestBuiltinSelection(t *testing.T) {
	result, ed := runWithEditor(t, "select (); get-select ()")
	if !ed.selecting {
		t.Error("select should start a selection")
	}
	if result.Kind != KindString {
		t.Errorf("get-select returned %s", result)
	}

	result, _ = runWithEditor(t, "unselect (); get-select ()")
	if result.Kind != KindNil {
		t.Errorf("get-select without a selection returned %s, expected None", result)
	}
}

func TestBuiltinBuffers(t *testing.T) {
	result, ed := runWithEditor(t, "new-buf (); new-buf (); set-buf 0; get-cur-buf ()")
	if ed.buffers != 2 {
		t.Errorf("buffer count is %d", ed.buffers)
	}
	if result.Kind != KindInt || result.Int != 0 {
		t.Errorf("get-cur-buf returned %s", result)
	}
}

func TestBuiltinSetBufOutOfRange(t *testing.T) {
	ed := &fakeEditor{}
	env := NewEnv(nil)
	Register(env)
	ast, _ := Parse("set-buf 9")
	if _, err := Eval(ast, ed, env); err == nil {
		t.Error("set-buf out of range should fail")
	}
}

func TestBuiltinArityErrorsNameTheBuiltin(t *testing.T) {
	ed := &fakeEditor{}
	env := NewEnv(nil)
	Register(env)
	ast, _ := Parse("goto 1")
	_, err := Eval(ast, ed, env)
	if err == nil || !strings.Contains(err.Error(), "goto") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestBuiltinsComposeWithLanguage(t *testing.T) {
	_, ed := runWithEditor(t, `let greet = fn [name] {insert ("hi " + name)}; greet "ana"`)
	if ed.inserted != "hi ana" {
		t.Errorf("inserted %q", ed.inserted)
	}
}
