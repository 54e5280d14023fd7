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

import "testing"

func parse(t *testing.T, source string) *Expr {
	t.Helper()
	e, err := Parse(source)
	if err != nil {
		t.Fatalf("parse of %q failed: %v", source, err)
	}
	return e
}

// checkParse compares the parse tree through its rendered form, which
// makes grouping and precedence visible.
func checkParse(t *testing.T, source, rendered string) {
	t.Helper()
	if got := parse(t, source).String(); got != rendered {
		t.Errorf("parse of %q rendered %q, expected %q", source, got, rendered)
	}
}

func TestParseLiterals(t *testing.T) {
	checkParse(t, "42", "42")
	checkParse(t, "-7", "-7")
	checkParse(t, "3.25", "3.25")
	checkParse(t, `"hi\n"`, `"hi\n"`)
	checkParse(t, "True", "True")
	checkParse(t, "False", "False")
	checkParse(t, "None", "None")
	checkParse(t, "foo-bar?", "foo-bar?")
}

func TestParsePrecedence(t *testing.T) {
	checkParse(t, "1 + 2 * 3", "(1 + (2 * 3))")
	checkParse(t, "(1 + 2) * 3", "((1 + 2) * 3)")
	checkParse(t, "10 - 3 - 2", "((10 - 3) - 2)")
	checkParse(t, "10 % 3 + 1", "((10 % 3) + 1)")
}

func TestParseApplicationBindsTighterThanOperators(t *testing.T) {
	checkParse(t, "f 1 + g 2", "((f 1) + (g 2))")
	checkParse(t, "add 1 2", "(add 1 2)")
	checkParse(t, "f ()", "(f)")
	checkParse(t, "f (x)", "(f x)")
}

func TestParseUnary(t *testing.T) {
	checkParse(t, "!True", "!True")
	checkParse(t, "!x", "!x")
	checkParse(t, "-x", "-x")
	checkParse(t, "- 5", "-5")
}

func TestParseSequenceAndBlocks(t *testing.T) {
	checkParse(t, "1; 2; 3", "{1; 2; 3}")
	checkParse(t, "{1; 2}", "{1; 2}")
	checkParse(t, "{}", "{}")
	checkParse(t, "1;", "1")
}

func TestParseComments(t *testing.T) {
	checkParse(t, "1 # the loneliest number\n+ 2", "(1 + 2)")
	checkParse(t, "# only a comment\n5", "5")
}

func TestParseLists(t *testing.T) {
	checkParse(t, "[1, 2, 3]", "[1, 2, 3]")
	checkParse(t, "[1, 2,]", "[1, 2]")
	checkParse(t, "[]", "[]")
	checkParse(t, "[1 + 2, f 3]", "[(1 + 2), (f 3)]")
}

func TestParseQuote(t *testing.T) {
	checkParse(t, "'x", "'x")
	checkParse(t, "'(1 + 2)", "'(1 + 2)")
}

func TestParseIf(t *testing.T) {
	checkParse(t, "if True 1 2", "(if True then 1 else 2)")
	checkParse(t, "if x 1", "(if x then 1)")
	checkParse(t, "if x {1; 2} {3}", "(if x then {1; 2} else {3})")
}

func TestParseLetScopesOverSequenceRest(t *testing.T) {
	checkParse(t, "let x = 5; x + 1", "(let x = 5 in (x + 1))")
	checkParse(t, "let x = 5; let y = 6; x + y",
		"(let x = 5 in (let y = 6 in (x + y)))")
	checkParse(t, "let x = 5", "(let x = 5)")
}

func TestParseAssignment(t *testing.T) {
	checkParse(t, "x = 5", "(x = 5)")
	checkParse(t, "x = y + 1", "(x = (y + 1))")
}

func TestParseCallables(t *testing.T) {
	checkParse(t, "fn [a, b] {a + b}", "<fn (a, b)>")
	checkParse(t, "proc [] 1", "<proc ()>")
	checkParse(t, "macro [e] 'e", "<macro (e)>")
}

func TestParseTryRaise(t *testing.T) {
	checkParse(t, "try {raise 1} {err}", "(try {(raise 1)} catch {err})")
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"(1 + 2",
		"[1, 2",
		`"unterminated`,
		"{1; 2",
		"1 2; &",
		"let = 5",
		"let x 5",
		"fn a {a}",
	}
	for _, source := range bad {
		if _, err := Parse(source); err == nil {
			t.Errorf("parse of %q should fail", source)
		}
	}
}

func TestParseErrorCarriesOffset(t *testing.T) {
	_, err := Parse("1 + ")
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Offset != 4 {
		t.Errorf("offset is %d, expected 4", pe.Offset)
	}
}
