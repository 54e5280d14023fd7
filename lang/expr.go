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
	"strconv"
	"strings"

	"github.com/litetext/lite/types"
)

type Kind int

const (
	KindNil Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindSymbol
	KindBuiltin
	KindList
	KindDict
	KindQuote
	KindNeg
	KindNot
	KindAdd
	KindSub
	KindMul
	KindDiv
	KindRem
	KindIf
	KindLet
	KindAssign
	KindDo
	KindFn
	KindProc
	KindMacro
	KindApply
	KindTry
	KindRaise
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "None"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindBuiltin:
		return "builtin"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	case KindQuote:
		return "quote"
	case KindFn:
		return "fn"
	case KindProc:
		return "proc"
	case KindMacro:
		return "macro"
	default:
		return "expr"
	}
}

// A BuiltinFunc receives its argument nodes unevaluated, the editor
// handle, and the caller's environment. Evaluating arguments is the
// builtin's own responsibility (see EvalArg).
type BuiltinFunc func(args []*Expr, ed types.Editor, env *Env) (*Expr, error)

// BuiltinInfo names a host function exposed to scripts.
type BuiltinInfo struct {
	Name string
	Func BuiltinFunc
	Help string
}

// Expr is both a runtime value and an unevaluated syntax tree node:
// one closed tagged variant whose recursive members are held by
// pointer, so closures and quoted subtrees are shared, never copied.
// Which fields are meaningful depends on Kind:
//
//	Int, Float, Bool, Str   scalar payloads; Str is also the symbol
//	                        name and the let/assign target
//	Builtin                 KindBuiltin
//	Items                   KindList elements, KindDo sequence,
//	                        KindApply arguments
//	Keys, Values            KindDict entries, in insertion order
//	Left, Right             binary operands; Left alone is the unary
//	                        operand, quote target, raise value,
//	                        let/assign value, apply function position,
//	                        try body (Right is the handler)
//	Cond, Then, Else        KindIf
//	Params, Body            callables; Body is also the let body
//	Env                     a closure's captured environment
type Expr struct {
	Kind Kind

	Int     int64
	Float   float64
	Bool    bool
	Str     string
	Builtin *BuiltinInfo

	Items  []*Expr
	Keys   []*Expr
	Values []*Expr

	Left  *Expr
	Right *Expr

	Cond *Expr
	Then *Expr
	Else *Expr

	Params []string
	Body   *Expr
	Env    *Env
}

// Factories. Nil, True, and False are shared singletons; nothing ever
// mutates an Expr after construction.

var exprNil = &Expr{Kind: KindNil}
var exprTrue = &Expr{Kind: KindBool, Bool: true}
var exprFalse = &Expr{Kind: KindBool, Bool: false}

func Nil() *Expr { return exprNil }

func NewBool(b bool) *Expr {
	if b {
		return exprTrue
	}
	return exprFalse
}

func NewInt(i int64) *Expr { return &Expr{Kind: KindInt, Int: i} }

func NewFloat(f float64) *Expr { return &Expr{Kind: KindFloat, Float: f} }

func NewString(s string) *Expr { return &Expr{Kind: KindString, Str: s} }

func NewSymbol(name string) *Expr { return &Expr{Kind: KindSymbol, Str: name} }

func NewList(items []*Expr) *Expr { return &Expr{Kind: KindList, Items: items} }

func NewDo(exprs []*Expr) *Expr { return &Expr{Kind: KindDo, Items: exprs} }

func NewQuote(e *Expr) *Expr { return &Expr{Kind: KindQuote, Left: e} }

func NewApply(fn *Expr, args []*Expr) *Expr {
	return &Expr{Kind: KindApply, Left: fn, Items: args}
}

func NewBuiltin(name string, fn BuiltinFunc, help string) *Expr {
	return &Expr{Kind: KindBuiltin, Builtin: &BuiltinInfo{Name: name, Func: fn, Help: help}}
}

// IsTruthy reports script truthiness: only False and None are falsy.
// Zero, the empty string, and the empty list are all truthy.
func (e *Expr) IsTruthy() bool {
	switch e.Kind {
	case KindNil:
		return false
	case KindBool:
		return e.Bool
	default:
		return true
	}
}

// Equal compares scalars and symbols structurally; compound nodes
// compare by identity.
func (e *Expr) Equal(other *Expr) bool {
	if e == other {
		return true
	}
	if e == nil || other == nil || e.Kind != other.Kind {
		return false
	}
	switch e.Kind {
	case KindNil:
		return true
	case KindInt:
		return e.Int == other.Int
	case KindFloat:
		return e.Float == other.Float
	case KindBool:
		return e.Bool == other.Bool
	case KindString, KindSymbol:
		return e.Str == other.Str
	case KindBuiltin:
		return e.Builtin.Name == other.Builtin.Name
	default:
		return false
	}
}

// String renders an expression for the status line and for print.
func (e *Expr) String() string {
	if e == nil {
		return "None"
	}
	switch e.Kind {
	case KindNil:
		return "None"
	case KindInt:
		return strconv.FormatInt(e.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(e.Float, 'g', -1, 64)
	case KindBool:
		if e.Bool {
			return "True"
		}
		return "False"
	case KindString:
		return quoteString(e.Str)
	case KindSymbol:
		return e.Str
	case KindBuiltin:
		return "<builtin:" + e.Builtin.Name + ">"
	case KindList:
		return "[" + joinExprs(e.Items, ", ") + "]"
	case KindDict:
		var sb strings.Builder
		sb.WriteByte('{')
		for i := range e.Keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(e.Keys[i].String())
			sb.WriteString(": ")
			sb.WriteString(e.Values[i].String())
		}
		sb.WriteByte('}')
		return sb.String()
	case KindQuote:
		return "'" + e.Left.String()
	case KindNeg:
		return "-" + e.Left.String()
	case KindNot:
		return "!" + e.Left.String()
	case KindAdd:
		return "(" + e.Left.String() + " + " + e.Right.String() + ")"
	case KindSub:
		return "(" + e.Left.String() + " - " + e.Right.String() + ")"
	case KindMul:
		return "(" + e.Left.String() + " * " + e.Right.String() + ")"
	case KindDiv:
		return "(" + e.Left.String() + " / " + e.Right.String() + ")"
	case KindRem:
		return "(" + e.Left.String() + " % " + e.Right.String() + ")"
	case KindIf:
		s := "(if " + e.Cond.String() + " then " + e.Then.String()
		if e.Else != nil {
			s += " else " + e.Else.String()
		}
		return s + ")"
	case KindLet:
		s := "(let " + e.Str + " = " + e.Left.String()
		if e.Body != nil {
			s += " in " + e.Body.String()
		}
		return s + ")"
	case KindAssign:
		return "(" + e.Str + " = " + e.Left.String() + ")"
	case KindDo:
		return "{" + joinExprs(e.Items, "; ") + "}"
	case KindFn:
		return "<fn (" + strings.Join(e.Params, ", ") + ")>"
	case KindProc:
		return "<proc (" + strings.Join(e.Params, ", ") + ")>"
	case KindMacro:
		return "<macro (" + strings.Join(e.Params, ", ") + ")>"
	case KindApply:
		s := "(" + e.Left.String()
		for _, arg := range e.Items {
			s += " " + arg.String()
		}
		return s + ")"
	case KindTry:
		return "(try " + e.Left.String() + " catch " + e.Right.String() + ")"
	case KindRaise:
		return "(raise " + e.Left.String() + ")"
	default:
		return fmt.Sprintf("<expr:%d>", e.Kind)
	}
}

func joinExprs(items []*Expr, sep string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}
	return strings.Join(parts, sep)
}

func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
