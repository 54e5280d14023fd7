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
	"fmt"
	"os"
	"strings"

	"github.com/litetext/lite/types"
)

// Register installs the host builtins into env, normally the global
// scope. Editor builtins report an error when evaluated without an
// editor, so pure scripts can still use print and add.
func Register(env *Env) {
	define := func(name string, fn BuiltinFunc, help string) {
		env.Define(name, NewBuiltin(name, fn, help))
	}
	define("print", builtinPrint, "print values on the status line")
	define("add", builtinAdd, "add numbers, strings, or lists")
	define("insert", builtinInsert, "insert text at the cursor")
	define("delete", builtinDelete, "delete characters at the cursor")
	define("move", builtinMove, "move the cursor up, down, left, or right")
	define("goto", builtinGoto, "move the cursor to a row and column")
	define("select", builtinSelect, "start a selection at the cursor")
	define("unselect", builtinUnselect, "clear the selection")
	define("get-select", builtinGetSelect, "return the selected text")
	define("new-buf", builtinNewBuf, "create a buffer and switch to it")
	define("set-buf", builtinSetBuf, "switch to a buffer by index")
	define("get-cur-buf", builtinGetCurBuf, "return the current buffer index")
}

func needEditor(name string, ed types.Editor) error {
	if ed == nil {
		return evalErrorf("%s: no editor attached", name)
	}
	return nil
}

func evalArgs(args []*Expr, ed types.Editor, env *Env) ([]*Expr, error) {
	values := make([]*Expr, len(args))
	for i, arg := range args {
		value, err := EvalArg(arg, ed, env)
		if err != nil {
			return nil, err
		}
		values[i] = value
	}
	return values, nil
}

// builtinPrint joins its arguments with spaces and shows them on the
// status line; bare strings print unquoted. Without an editor the line
// goes to standard output instead.
func builtinPrint(args []*Expr, ed types.Editor, env *Env) (*Expr, error) {
	values, err := evalArgs(args, ed, env)
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(values))
	for i, value := range values {
		if value.Kind == KindString {
			parts[i] = value.Str
		} else {
			parts[i] = value.String()
		}
	}
	line := strings.Join(parts, " ")
	if ed != nil {
		ed.SetStatus(line)
	} else {
		fmt.Fprintln(os.Stdout, line)
	}
	return Nil(), nil
}

// builtinAdd folds '+' over any number of arguments; with none it
// returns 0.
func builtinAdd(args []*Expr, ed types.Editor, env *Env) (*Expr, error) {
	values, err := evalArgs(args, ed, env)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return NewInt(0), nil
	}
	sum := values[0]
	for _, value := range values[1:] {
		sum, err = applyArith(KindAdd, sum, value)
		if err != nil {
			return nil, err
		}
	}
	return sum, nil
}

func builtinInsert(args []*Expr, ed types.Editor, env *Env) (*Expr, error) {
	if err := needEditor("insert", ed); err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, evalErrorf("insert expects 1 argument, got %d", len(args))
	}
	value, err := EvalArg(args[0], ed, env)
	if err != nil {
		return nil, err
	}
	if value.Kind != KindString {
		return nil, evalErrorf("insert expects a string, got %s", value.Kind)
	}
	ed.InsertString(value.Str)
	return Nil(), nil
}

// builtinDelete removes n characters before the cursor; a negative
// count deletes forward. With no argument it deletes one backward.
func builtinDelete(args []*Expr, ed types.Editor, env *Env) (*Expr, error) {
	if err := needEditor("delete", ed); err != nil {
		return nil, err
	}
	count := int64(1)
	if len(args) > 1 {
		return nil, evalErrorf("delete expects at most 1 argument, got %d", len(args))
	}
	if len(args) == 1 {
		value, err := EvalArg(args[0], ed, env)
		if err != nil {
			return nil, err
		}
		if value.Kind != KindInt {
			return nil, evalErrorf("delete expects an integer, got %s", value.Kind)
		}
		count = value.Int
	}
	for ; count > 0; count-- {
		ed.DeleteBackward()
	}
	for ; count < 0; count++ {
		ed.DeleteForward()
	}
	return Nil(), nil
}

var moveDirections = map[string]int{
	"up":    types.MoveUp,
	"down":  types.MoveDown,
	"left":  types.MoveLeft,
	"right": types.MoveRight,
}

// builtinMove accepts a direction name as a symbol or string, or an
// integer column offset, negative for left.
func builtinMove(args []*Expr, ed types.Editor, env *Env) (*Expr, error) {
	if err := needEditor("move", ed); err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, evalErrorf("move expects 1 argument, got %d", len(args))
	}
	arg := args[0]
	if arg.Kind != KindSymbol {
		var err error
		arg, err = EvalArg(arg, ed, env)
		if err != nil {
			return nil, err
		}
	}
	switch arg.Kind {
	case KindSymbol, KindString:
		direction, ok := moveDirections[arg.Str]
		if !ok {
			return nil, evalErrorf("move: unknown direction %q", arg.Str)
		}
		ed.MoveCursor(direction)
	case KindInt:
		n := arg.Int
		for ; n > 0; n-- {
			ed.MoveCursor(types.MoveRight)
		}
		for ; n < 0; n++ {
			ed.MoveCursor(types.MoveLeft)
		}
	default:
		return nil, evalErrorf("move expects a direction or integer, got %s", arg.Kind)
	}
	return Nil(), nil
}

func builtinGoto(args []*Expr, ed types.Editor, env *Env) (*Expr, error) {
	if err := needEditor("goto", ed); err != nil {
		return nil, err
	}
	if len(args) != 2 {
		return nil, evalErrorf("goto expects 2 arguments, got %d", len(args))
	}
	values, err := evalArgs(args, ed, env)
	if err != nil {
		return nil, err
	}
	for _, value := range values {
		if value.Kind != KindInt {
			return nil, evalErrorf("goto expects integers, got %s", value.Kind)
		}
	}
	ed.GotoPosition(int(values[0].Int), int(values[1].Int))
	return Nil(), nil
}

func builtinSelect(args []*Expr, ed types.Editor, env *Env) (*Expr, error) {
	if err := needEditor("select", ed); err != nil {
		return nil, err
	}
	if len(args) != 0 {
		return nil, evalErrorf("select expects no arguments, got %d", len(args))
	}
	ed.StartSelection()
	return Nil(), nil
}

func builtinUnselect(args []*Expr, ed types.Editor, env *Env) (*Expr, error) {
	if err := needEditor("unselect", ed); err != nil {
		return nil, err
	}
	if len(args) != 0 {
		return nil, evalErrorf("unselect expects no arguments, got %d", len(args))
	}
	ed.ClearSelection()
	return Nil(), nil
}

func builtinGetSelect(args []*Expr, ed types.Editor, env *Env) (*Expr, error) {
	if err := needEditor("get-select", ed); err != nil {
		return nil, err
	}
	if len(args) != 0 {
		return nil, evalErrorf("get-select expects no arguments, got %d", len(args))
	}
	text, ok := ed.SelectedText()
	if !ok {
		return Nil(), nil
	}
	return NewString(text), nil
}

func builtinNewBuf(args []*Expr, ed types.Editor, env *Env) (*Expr, error) {
	if err := needEditor("new-buf", ed); err != nil {
		return nil, err
	}
	if len(args) != 0 {
		return nil, evalErrorf("new-buf expects no arguments, got %d", len(args))
	}
	return NewInt(int64(ed.NewBuffer())), nil
}

func builtinSetBuf(args []*Expr, ed types.Editor, env *Env) (*Expr, error) {
	if err := needEditor("set-buf", ed); err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, evalErrorf("set-buf expects 1 argument, got %d", len(args))
	}
	value, err := EvalArg(args[0], ed, env)
	if err != nil {
		return nil, err
	}
	if value.Kind != KindInt {
		return nil, evalErrorf("set-buf expects an integer, got %s", value.Kind)
	}
	if !ed.SetBuffer(int(value.Int)) {
		return nil, evalErrorf("set-buf: no buffer %d", value.Int)
	}
	return Nil(), nil
}

func builtinGetCurBuf(args []*Expr, ed types.Editor, env *Env) (*Expr, error) {
	if err := needEditor("get-cur-buf", ed); err != nil {
		return nil, err
	}
	if len(args) != 0 {
		return nil, evalErrorf("get-cur-buf expects no arguments, got %d", len(args))
	}
	return NewInt(int64(ed.CurrentBufferIndex())), nil
}
