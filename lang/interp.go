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

	"github.com/litetext/lite/types"
)

// An EvalError is a runtime failure in the interpreter itself:
// unbound names, type mismatches, arity violations, division by zero.
// Script-level 'raise' produces a Raised instead.
type EvalError struct {
	Msg string
}

func (e *EvalError) Error() string {
	return e.Msg
}

func evalErrorf(format string, args ...interface{}) error {
	return &EvalError{Msg: fmt.Sprintf(format, args...)}
}

// A Raised carries a script value thrown by 'raise' up through the
// evaluator until a 'try' catches it. An uncaught Raised surfaces to
// the host with the value rendered in the message.
type Raised struct {
	Value *Expr
}

func (r *Raised) Error() string {
	return "uncaught: " + r.Value.String()
}

// Eval evaluates an expression tree in env. The editor handle is
// threaded through to builtins; a nil editor is legal for pure
// scripts, and builtins that need one report an error.
func Eval(e *Expr, ed types.Editor, env *Env) (*Expr, error) {
	switch e.Kind {
	case KindNil, KindInt, KindFloat, KindBool, KindString, KindBuiltin:
		return e, nil

	case KindSymbol:
		value, ok := env.Lookup(e.Str)
		if !ok {
			return nil, evalErrorf("unbound name %q", e.Str)
		}
		return value, nil

	case KindQuote:
		return e.Left, nil

	case KindList:
		items := make([]*Expr, len(e.Items))
		for i, item := range e.Items {
			value, err := Eval(item, ed, env)
			if err != nil {
				return nil, err
			}
			items[i] = value
		}
		return NewList(items), nil

	case KindDict:
		keys := make([]*Expr, len(e.Keys))
		values := make([]*Expr, len(e.Values))
		for i := range e.Keys {
			k, err := Eval(e.Keys[i], ed, env)
			if err != nil {
				return nil, err
			}
			v, err := Eval(e.Values[i], ed, env)
			if err != nil {
				return nil, err
			}
			keys[i], values[i] = k, v
		}
		return &Expr{Kind: KindDict, Keys: keys, Values: values}, nil

	case KindNeg:
		operand, err := Eval(e.Left, ed, env)
		if err != nil {
			return nil, err
		}
		switch operand.Kind {
		case KindInt:
			return NewInt(-operand.Int), nil
		case KindFloat:
			return NewFloat(-operand.Float), nil
		}
		return nil, evalErrorf("cannot negate %s", operand.Kind)

	case KindNot:
		operand, err := Eval(e.Left, ed, env)
		if err != nil {
			return nil, err
		}
		return NewBool(!operand.IsTruthy()), nil

	case KindAdd, KindSub, KindMul, KindDiv, KindRem:
		return evalArith(e, ed, env)

	case KindIf:
		cond, err := Eval(e.Cond, ed, env)
		if err != nil {
			return nil, err
		}
		if cond.IsTruthy() {
			return Eval(e.Then, ed, env)
		}
		if e.Else == nil {
			return Nil(), nil
		}
		return Eval(e.Else, ed, env)

	case KindLet:
		// The value is evaluated in the child scope so a closure bound
		// by the let can refer to itself once the binding lands.
		scope := NewEnv(env)
		value, err := Eval(e.Left, ed, scope)
		if err != nil {
			return nil, err
		}
		scope.Define(e.Str, value)
		if e.Body == nil {
			return value, nil
		}
		return Eval(e.Body, ed, scope)

	case KindAssign:
		value, err := Eval(e.Left, ed, env)
		if err != nil {
			return nil, err
		}
		if !env.Assign(e.Str, value) {
			return nil, evalErrorf("cannot assign to unbound name %q", e.Str)
		}
		return value, nil

	case KindDo:
		result := Nil()
		for _, item := range e.Items {
			var err error
			result, err = Eval(item, ed, env)
			if err != nil {
				return nil, err
			}
		}
		return result, nil

	case KindFn, KindProc, KindMacro:
		// Copy the literal so the captured environment lives on the
		// runtime value, never on the shared syntax node.
		closure := *e
		closure.Env = env
		return &closure, nil

	case KindApply:
		return evalApply(e, ed, env)

	case KindTry:
		result, err := Eval(e.Left, ed, env)
		if err == nil {
			return result, nil
		}
		scope := NewEnv(env)
		if raised, ok := err.(*Raised); ok {
			scope.Define("err", raised.Value)
		} else {
			scope.Define("err", NewString(err.Error()))
		}
		return Eval(e.Right, ed, scope)

	case KindRaise:
		value, err := Eval(e.Left, ed, env)
		if err != nil {
			return nil, err
		}
		return nil, &Raised{Value: value}

	default:
		return nil, evalErrorf("cannot evaluate %s node", e.Kind)
	}
}

func evalArith(e *Expr, ed types.Editor, env *Env) (*Expr, error) {
	left, err := Eval(e.Left, ed, env)
	if err != nil {
		return nil, err
	}
	right, err := Eval(e.Right, ed, env)
	if err != nil {
		return nil, err
	}
	return applyArith(e.Kind, left, right)
}

// applyArith implements the infix operators. Ints promote to floats
// when mixed; '+' additionally concatenates strings and lists.
func applyArith(kind Kind, left, right *Expr) (*Expr, error) {
	if kind == KindAdd {
		if left.Kind == KindString && right.Kind == KindString {
			return NewString(left.Str + right.Str), nil
		}
		if left.Kind == KindList && right.Kind == KindList {
			items := make([]*Expr, 0, len(left.Items)+len(right.Items))
			items = append(items, left.Items...)
			items = append(items, right.Items...)
			return NewList(items), nil
		}
	}

	if left.Kind == KindInt && right.Kind == KindInt {
		switch kind {
		case KindAdd:
			return NewInt(left.Int + right.Int), nil
		case KindSub:
			return NewInt(left.Int - right.Int), nil
		case KindMul:
			return NewInt(left.Int * right.Int), nil
		case KindDiv:
			if right.Int == 0 {
				return nil, evalErrorf("division by zero")
			}
			return NewInt(left.Int / right.Int), nil
		case KindRem:
			if right.Int == 0 {
				return nil, evalErrorf("division by zero")
			}
			return NewInt(left.Int % right.Int), nil
		}
	}

	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if lok && rok {
		switch kind {
		case KindAdd:
			return NewFloat(lf + rf), nil
		case KindSub:
			return NewFloat(lf - rf), nil
		case KindMul:
			return NewFloat(lf * rf), nil
		case KindDiv:
			if rf == 0 {
				return nil, evalErrorf("division by zero")
			}
			return NewFloat(lf / rf), nil
		case KindRem:
			return nil, evalErrorf("'%%' requires integers, got %s and %s", left.Kind, right.Kind)
		}
	}

	return nil, evalErrorf("cannot apply %s to %s and %s", opName(kind), left.Kind, right.Kind)
}

func asFloat(e *Expr) (float64, bool) {
	switch e.Kind {
	case KindInt:
		return float64(e.Int), true
	case KindFloat:
		return e.Float, true
	}
	return 0, false
}

func opName(kind Kind) string {
	switch kind {
	case KindAdd:
		return "'+'"
	case KindSub:
		return "'-'"
	case KindMul:
		return "'*'"
	case KindDiv:
		return "'/'"
	case KindRem:
		return "'%'"
	}
	return "operator"
}

// evalApply dispatches a call. The four callable kinds differ in what
// the arguments are and where the call scope chains:
//
//	fn       args evaluated in the caller's env, scope chained to the
//	         closure's captured env (lexical)
//	proc     args evaluated in the caller's env, scope chained to the
//	         caller's env (dynamic)
//	macro    raw argument nodes bound unevaluated, scope chained to
//	         the caller's env
//	builtin  raw argument nodes handed to the host function
func evalApply(e *Expr, ed types.Editor, env *Env) (*Expr, error) {
	fn, err := Eval(e.Left, ed, env)
	if err != nil {
		return nil, err
	}

	if fn.Kind == KindBuiltin {
		return fn.Builtin.Func(e.Items, ed, env)
	}

	switch fn.Kind {
	case KindFn, KindProc, KindMacro:
	default:
		return nil, evalErrorf("%s is not callable", fn.Kind)
	}
	if len(e.Items) != len(fn.Params) {
		return nil, evalErrorf("%s expects %d arguments, got %d",
			fn.Kind, len(fn.Params), len(e.Items))
	}

	var scope *Env
	switch fn.Kind {
	case KindFn:
		scope = NewEnv(fn.Env)
		for i, param := range fn.Params {
			value, err := Eval(e.Items[i], ed, env)
			if err != nil {
				return nil, err
			}
			scope.Define(param, value)
		}
	case KindProc:
		scope = NewEnv(env)
		for i, param := range fn.Params {
			value, err := Eval(e.Items[i], ed, env)
			if err != nil {
				return nil, err
			}
			scope.Define(param, value)
		}
	case KindMacro:
		scope = NewEnv(env)
		for i, param := range fn.Params {
			scope.Define(param, e.Items[i])
		}
	}
	return Eval(fn.Body, ed, scope)
}

// EvalArg evaluates one builtin argument in a child scope of the
// caller's environment. Builtins use it for each argument they want
// by value rather than as syntax.
func EvalArg(arg *Expr, ed types.Editor, env *Env) (*Expr, error) {
	return Eval(arg, ed, NewEnv(env))
}
