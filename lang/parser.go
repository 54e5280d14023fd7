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
)

// A ParseError reports the first grammar violation with the byte
// offset at which it was detected. The parser does not recover; the
// first error aborts the parse.
type ParseError struct {
	Msg    string
	Offset int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s (at offset %d)", e.Msg, e.Offset)
}

// Parse converts source text into a single expression tree. The
// top level is a ';'-separated sequence; a single expression is
// returned unwrapped, multiple are wrapped in a Do node. Whitespace
// and '#' line comments are skipped inline; there is no separate
// tokenizer.
//
// Grammar, loosest binding first:
//
//	sequence    := expr (';' expr)* [';']
//	expr        := 'let' symbol '=' expr   (scopes over sequence rest)
//	             | symbol '=' expr
//	             | binary
//	binary      := application (('+'|'-'|'*'|'/'|'%') application)*
//	               with '*' '/' '%' binding tighter, left-associative
//	application := factor '(' ')'          (call with no arguments)
//	             | factor factor*          (greedy juxtaposition)
//	factor      := ('-'|'!') factor | atom
//	atom        := int | float | string | 'True' | 'False' | 'None'
//	             | 'if' factor factor [factor]
//	             | ('fn'|'proc'|'macro') '[' params ']' factor
//	             | 'try' factor factor | 'raise' factor
//	             | symbol | '[' list ']' | '{' sequence '}'
//	             | '(' expr ')' | "'" binary
//
// Application binds tighter than every infix operator.
func Parse(source string) (*Expr, error) {
	p := &parser{src: source}
	exprs, err := p.parseSequence(0)
	if err != nil {
		return nil, err
	}
	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return NewDo(exprs), nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.src)
}

func (p *parser) current() byte {
	if p.atEnd() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peek() byte {
	if p.pos+1 >= len(p.src) {
		return 0
	}
	return p.src[p.pos+1]
}

func (p *parser) advance() {
	p.pos++
}

func (p *parser) fail(format string, args ...interface{}) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Offset: p.pos}
}

// skipSpace skips whitespace and '#' comments, which run to end of
// line.
func (p *parser) skipSpace() {
	for !p.atEnd() {
		c := p.current()
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			p.advance()
		} else if c == '#' {
			for !p.atEnd() && p.current() != '\n' {
				p.advance()
			}
		} else {
			return
		}
	}
}

// parseSequence parses ';'-separated expressions until the terminator
// (0 means end of input). A trailing semicolon or comment-only tail is
// tolerated. A 'let' takes the remainder of the sequence as its body.
func (p *parser) parseSequence(end byte) ([]*Expr, error) {
	var exprs []*Expr
	for {
		p.skipSpace()
		if p.atEnd() || (end != 0 && p.current() == end) {
			return exprs, nil
		}
		e, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if e.Kind == KindLet {
			p.skipSpace()
			if p.current() == ';' {
				p.advance()
			}
			rest, err := p.parseSequence(end)
			if err != nil {
				return nil, err
			}
			switch len(rest) {
			case 0:
			case 1:
				e.Body = rest[0]
			default:
				e.Body = NewDo(rest)
			}
			return append(exprs, e), nil
		}
		exprs = append(exprs, e)
		p.skipSpace()
		if p.atEnd() || (end != 0 && p.current() == end) {
			return exprs, nil
		}
		if p.current() != ';' {
			return nil, p.fail("expected ';' after expression")
		}
		p.advance()
	}
}

// parseStatement recognizes 'let name = expr' and 'name = expr' before
// falling back to an ordinary expression.
func (p *parser) parseStatement() (*Expr, error) {
	p.skipSpace()
	start := p.pos
	if isSymbolStart(p.current()) {
		name, err := p.parseSymbolName()
		if err != nil {
			return nil, err
		}
		if name == "let" {
			return p.parseLet()
		}
		p.skipSpace()
		if p.current() == '=' && p.peek() != '=' {
			p.advance()
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			return &Expr{Kind: KindAssign, Str: name, Left: value}, nil
		}
		p.pos = start
	}
	return p.parseExpression()
}

// parseLet parses the tail of 'let name = value'. The body is filled
// in by parseSequence from the rest of the enclosing sequence.
func (p *parser) parseLet() (*Expr, error) {
	p.skipSpace()
	if !isSymbolStart(p.current()) {
		return nil, p.fail("expected name after 'let'")
	}
	name, err := p.parseSymbolName()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.current() != '=' {
		return nil, p.fail("expected '=' in let binding")
	}
	p.advance()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &Expr{Kind: KindLet, Str: name, Left: value}, nil
}

func (p *parser) parseExpression() (*Expr, error) {
	return p.parseBinary(1)
}

func infixPrecedence(c byte) int {
	switch c {
	case '+', '-':
		return 1
	case '*', '/', '%':
		return 2
	}
	return 0
}

func infixKind(c byte) Kind {
	switch c {
	case '+':
		return KindAdd
	case '-':
		return KindSub
	case '*':
		return KindMul
	case '/':
		return KindDiv
	default:
		return KindRem
	}
}

// parseBinary is a precedence-climbing loop over applications.
func (p *parser) parseBinary(minPrec int) (*Expr, error) {
	lhs, err := p.parseApplication()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		op := p.current()
		prec := infixPrecedence(op)
		if prec == 0 || prec < minPrec {
			return lhs, nil
		}
		p.advance()
		rhs, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		lhs = &Expr{Kind: infixKind(op), Left: lhs, Right: rhs}
	}
}

// isArgStart reports whether a character can begin a juxtaposed
// application argument. A bare infix operator cannot, which is what
// ends the greedy argument loop.
func isArgStart(c byte) bool {
	return isAlnum(c) || c == '_' || c == '(' || c == '[' || c == '{' || c == '\'' || c == '"'
}

// parseApplication parses a factor and then greedily consumes adjacent
// atom-starting tokens as arguments: f a b is f applied to [a, b].
// An empty pair of parentheses right after the factor is a call with
// no arguments, since a bare symbol only names its value.
func (p *parser) parseApplication() (*Expr, error) {
	fn, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.current() == '(' {
		save := p.pos
		p.advance()
		p.skipSpace()
		if p.current() == ')' {
			p.advance()
			return NewApply(fn, nil), nil
		}
		p.pos = save
	}
	var args []*Expr
	for {
		p.skipSpace()
		if p.atEnd() || !isArgStart(p.current()) {
			break
		}
		arg, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if len(args) == 0 {
		return fn, nil
	}
	return NewApply(fn, args), nil
}

func (p *parser) parseFactor() (*Expr, error) {
	p.skipSpace()
	switch {
	case p.current() == '-' && !isDigit(p.peek()):
		p.advance()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: KindNeg, Left: operand}, nil
	case p.current() == '!':
		p.advance()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: KindNot, Left: operand}, nil
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (*Expr, error) {
	p.skipSpace()
	c := p.current()
	switch {
	case p.atEnd():
		return nil, p.fail("unexpected end of input")
	case isDigit(c) || (c == '-' && isDigit(p.peek())):
		return p.parseNumber()
	case c == '"':
		p.advance()
		return p.parseStringLiteral()
	case c == '[':
		return p.parseList()
	case c == '{':
		return p.parseBlock()
	case c == '(':
		return p.parseGroup()
	case c == '\'':
		p.advance()
		quoted, err := p.parseBinary(1)
		if err != nil {
			return nil, err
		}
		return NewQuote(quoted), nil
	case isSymbolStart(c):
		return p.parseSymbolOrKeyword()
	default:
		return nil, p.fail("unexpected character %q", c)
	}
}

func (p *parser) parseNumber() (*Expr, error) {
	start := p.pos
	if p.current() == '-' {
		p.advance()
	}
	for !p.atEnd() && isDigit(p.current()) {
		p.advance()
	}
	if p.current() == '.' && isDigit(p.peek()) {
		p.advance()
		for !p.atEnd() && isDigit(p.current()) {
			p.advance()
		}
		f, err := strconv.ParseFloat(p.src[start:p.pos], 64)
		if err != nil {
			return nil, &ParseError{Msg: "invalid float literal " + p.src[start:p.pos], Offset: start}
		}
		return NewFloat(f), nil
	}
	i, err := strconv.ParseInt(p.src[start:p.pos], 10, 64)
	if err != nil {
		return nil, &ParseError{Msg: "integer literal out of range: " + p.src[start:p.pos], Offset: start}
	}
	return NewInt(i), nil
}

// parseStringLiteral scans a double-quoted string; the opening quote
// has been consumed. Recognized escapes are \" \\ \n \t; anything else
// after a backslash passes through literally.
func (p *parser) parseStringLiteral() (*Expr, error) {
	var sb []byte
	for !p.atEnd() && p.current() != '"' {
		c := p.current()
		if c == '\\' {
			p.advance()
			if p.atEnd() {
				return nil, p.fail("unterminated escape sequence in string")
			}
			switch p.current() {
			case '"':
				sb = append(sb, '"')
			case '\\':
				sb = append(sb, '\\')
			case 'n':
				sb = append(sb, '\n')
			case 't':
				sb = append(sb, '\t')
			default:
				sb = append(sb, '\\', p.current())
			}
		} else {
			sb = append(sb, c)
		}
		p.advance()
	}
	if p.atEnd() {
		return nil, p.fail("unterminated string literal")
	}
	p.advance()
	return NewString(string(sb)), nil
}

// parseList scans a '[' ... ']' comma-separated list; a trailing comma
// is allowed.
func (p *parser) parseList() (*Expr, error) {
	p.advance()
	var items []*Expr
	p.skipSpace()
	if p.current() == ']' {
		p.advance()
		return NewList(items), nil
	}
	for {
		item, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		p.skipSpace()
		switch p.current() {
		case ']':
			p.advance()
			return NewList(items), nil
		case ',':
			p.advance()
			p.skipSpace()
			if p.current() == ']' {
				p.advance()
				return NewList(items), nil
			}
		default:
			return nil, p.fail("expected ',' or ']' in list literal")
		}
	}
}

// parseBlock scans a '{' ... '}' expression sequence; its value is the
// last expression's, None when empty.
func (p *parser) parseBlock() (*Expr, error) {
	p.advance()
	exprs, err := p.parseSequence('}')
	if err != nil {
		return nil, err
	}
	if p.atEnd() {
		return nil, p.fail("unterminated block, missing '}'")
	}
	p.advance()
	return NewDo(exprs), nil
}

// parseGroup scans '(' expr ')'. Groups produce no node of their own;
// they only control precedence.
func (p *parser) parseGroup() (*Expr, error) {
	p.advance()
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.current() != ')' {
		return nil, p.fail("expected ')' to close group")
	}
	p.advance()
	return e, nil
}

func (p *parser) parseSymbolOrKeyword() (*Expr, error) {
	name, err := p.parseSymbolName()
	if err != nil {
		return nil, err
	}
	switch name {
	case "True":
		return NewBool(true), nil
	case "False":
		return NewBool(false), nil
	case "None":
		return Nil(), nil
	case "if":
		return p.parseIf()
	case "fn":
		return p.parseCallable(KindFn)
	case "proc":
		return p.parseCallable(KindProc)
	case "macro":
		return p.parseCallable(KindMacro)
	case "try":
		return p.parseTry()
	case "raise":
		value, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: KindRaise, Left: value}, nil
	case "let":
		return nil, p.fail("'let' is only allowed at statement level")
	}
	return NewSymbol(name), nil
}

// parseIf scans 'if cond then [else]'; the branches are factors, so
// multi-expression branches are written as blocks. The else branch is
// present when another atom follows.
func (p *parser) parseIf() (*Expr, error) {
	cond, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	then, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	node := &Expr{Kind: KindIf, Cond: cond, Then: then}
	p.skipSpace()
	if !p.atEnd() && isArgStart(p.current()) {
		node.Else, err = p.parseFactor()
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

// parseCallable scans the '[params] body' tail shared by fn, proc, and
// macro. A closure's environment is captured later, when the node is
// evaluated.
func (p *parser) parseCallable(kind Kind) (*Expr, error) {
	p.skipSpace()
	if p.current() != '[' {
		return nil, p.fail("expected '[' to open parameter list")
	}
	p.advance()
	var params []string
	p.skipSpace()
	for p.current() != ']' {
		if !isSymbolStart(p.current()) {
			return nil, p.fail("expected parameter name")
		}
		name, err := p.parseSymbolName()
		if err != nil {
			return nil, err
		}
		params = append(params, name)
		p.skipSpace()
		if p.current() == ',' {
			p.advance()
			p.skipSpace()
		}
	}
	p.advance()
	body, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	return &Expr{Kind: kind, Params: params, Body: body}, nil
}

func (p *parser) parseTry() (*Expr, error) {
	body, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	handler, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	return &Expr{Kind: KindTry, Left: body, Right: handler}, nil
}

// parseSymbolName scans a symbol: it starts with a letter or '_' and
// continues with letters, digits, or any of -_?!. The dash is a
// symbol character, so subtraction needs surrounding space.
func (p *parser) parseSymbolName() (string, error) {
	if !isSymbolStart(p.current()) {
		return "", p.fail("invalid character for start of symbol")
	}
	start := p.pos
	for !p.atEnd() && isSymbolChar(p.current()) {
		p.advance()
	}
	return p.src[start:p.pos], nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

func isSymbolStart(c byte) bool {
	return isAlpha(c) || c == '_'
}

func isSymbolChar(c byte) bool {
	return isAlnum(c) || c == '-' || c == '_' || c == '?' || c == '!'
}
