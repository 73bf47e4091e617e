package lang

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()

	prog, err := ParseString(src)
	if err != nil {
		t.Fatalf("ParseString(%q) failed: %v", src, err)
	}

	return prog
}

func TestParsePrecedence(t *testing.T) {
	// "3 + 2 * 5" must parse as 3 + (2 * 5).
	prog := mustParse(t, "3 + 2 * 5")

	add, ok := prog.Statements[0].(BinaryOpNode)
	if !ok || add.Op != KindPlus {
		t.Fatalf("top node: got %#v, want + binary op", prog.Statements[0])
	}

	if n, ok := add.Left.(NumberNode); !ok || n.Value != 3 {
		t.Errorf("left: got %#v, want 3", add.Left)
	}

	mul, ok := add.Right.(BinaryOpNode)
	if !ok || mul.Op != KindStar {
		t.Fatalf("right: got %#v, want * binary op", add.Right)
	}
}

func TestParseParens(t *testing.T) {
	// "(3 + 2) * 5" must parse as (3 + 2) * 5.
	prog := mustParse(t, "(3 + 2) * 5")

	mul, ok := prog.Statements[0].(BinaryOpNode)
	if !ok || mul.Op != KindStar {
		t.Fatalf("top node: got %#v, want * binary op", prog.Statements[0])
	}

	if _, ok := mul.Left.(BinaryOpNode); !ok {
		t.Errorf("left: got %#v, want + binary op", mul.Left)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	// "10 - 4 - 3" must parse as (10 - 4) - 3.
	prog := mustParse(t, "10 - 4 - 3")

	outer, ok := prog.Statements[0].(BinaryOpNode)
	if !ok || outer.Op != KindMinus {
		t.Fatalf("top node: got %#v, want - binary op", prog.Statements[0])
	}

	if n, ok := outer.Right.(NumberNode); !ok || n.Value != 3 {
		t.Errorf("right: got %#v, want 3", outer.Right)
	}

	if _, ok := outer.Left.(BinaryOpNode); !ok {
		t.Errorf("left: got %#v, want - binary op", outer.Left)
	}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind NodeKind
	}{
		{"variable decl", "var x = 1", NodeVariableDecl},
		{"assignment", "x = 1", NodeVariableAssign},
		{"array assignment", "a at 0 = 5", NodeArrayAssignment},
		{"function decl", "fn f(a, b) { return a }", NodeFunctionDecl},
		{"if", "if (x) { 1 }", NodeIf},
		{"if else", "if (x) { 1 } else { 2 }", NodeIf},
		{"while", "while (x) { 1 }", NodeWhile},
		{"return", "return 1", NodeReturn},
		{"call", "f(1, 2)", NodeFunctionCall},
		{"index", "a[0]", NodeArrayAccess},
		{"array literal", "[1, 2, 3]", NodeArray},
		{"bare identifier", "x", NodeIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := mustParse(t, tt.src)

			if len(prog.Statements) != 1 {
				t.Fatalf("got %d statements, want 1", len(prog.Statements))
			}

			if got := prog.Statements[0].Kind(); got != tt.kind {
				t.Errorf("got kind %s, want %s", got, tt.kind)
			}
		})
	}
}

func TestParseFunctionDecl(t *testing.T) {
	prog := mustParse(t, "fn add(a, b) { return a + b }")

	fn, ok := prog.Statements[0].(FunctionDeclNode)
	if !ok {
		t.Fatalf("got %#v, want function decl", prog.Statements[0])
	}

	if fn.Name != "add" {
		t.Errorf("name: got %q, want add", fn.Name)
	}

	if len(fn.Params) != 2 || fn.Params[0] != "a" || fn.Params[1] != "b" {
		t.Errorf("params: got %v, want [a b]", fn.Params)
	}

	if len(fn.Body) != 1 {
		t.Errorf("body: got %d statements, want 1", len(fn.Body))
	}
}

func TestParseSingleStatementBody(t *testing.T) {
	// Branch and loop bodies may omit braces around a single statement.
	prog := mustParse(t, "if (x) return 1")

	cond, ok := prog.Statements[0].(IfNode)
	if !ok {
		t.Fatalf("got %#v, want if", prog.Statements[0])
	}

	if len(cond.Body) != 1 {
		t.Fatalf("body: got %d statements, want 1", len(cond.Body))
	}

	if cond.Body[0].Kind() != NodeReturn {
		t.Errorf("body statement: got %s, want return", cond.Body[0].Kind())
	}
}

func TestParseArrayAssignment(t *testing.T) {
	prog := mustParse(t, "a at i + 1 = 2 * 3")

	stmt, ok := prog.Statements[0].(ArrayAssignmentNode)
	if !ok {
		t.Fatalf("got %#v, want array assignment", prog.Statements[0])
	}

	if _, ok := stmt.Index.(BinaryOpNode); !ok {
		t.Errorf("index: got %#v, want binary op", stmt.Index)
	}

	if _, ok := stmt.Value.(BinaryOpNode); !ok {
		t.Errorf("value: got %#v, want binary op", stmt.Value)
	}
}

func TestParseCharLiteral(t *testing.T) {
	prog := mustParse(t, `var c = '\n'`)

	decl, ok := prog.Statements[0].(VariableDeclNode)
	if !ok {
		t.Fatalf("got %#v, want variable decl", prog.Statements[0])
	}

	ch, ok := decl.Value.(CharNode)
	if !ok {
		t.Fatalf("value: got %#v, want char literal", decl.Value)
	}

	if ch.Code != '\n' {
		t.Errorf("code: got %q, want newline", ch.Code)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src      string
		sentinel error
	}{
		{"var = 1", ErrUnexpectedToken},
		{"var x 1", ErrUnexpectedToken},
		{"fn f( { }", ErrUnexpectedToken},
		{"if (x { 1 }", ErrUnexpectedToken},
		{"if x { 1 }", ErrUnexpectedToken},
		{"(1 + 2", ErrUnexpectedEOF},
		{"return", ErrUnexpectedEOF},
		{"fn f() {", ErrUnexpectedEOF},
		{"var x =", ErrUnexpectedEOF},
		{"1 +", ErrUnexpectedEOF},
		{"a at 0", ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		_, err := ParseString(tt.src)
		if !errors.Is(err, tt.sentinel) {
			t.Errorf("ParseString(%q): got %v, want %v", tt.src, err, tt.sentinel)
		}

		if !errors.Is(err, ErrParse) {
			t.Errorf("ParseString(%q): error does not match ErrParse", tt.src)
		}
	}
}

func TestParseLexErrorPropagates(t *testing.T) {
	_, err := ParseString(`var s = "unterminated`)
	if !errors.Is(err, ErrLex) {
		t.Errorf("got %v, want ErrLex", err)
	}
}

func BenchmarkParse(b *testing.B) {
	src := `
fn fib(n) {
	if (n < 2) { return n }
	return fib(n - 1) + fib(n - 2)
}
var xs = [1, 2 * 3, fib(4)]
xs at 0 = xs[1] + xs[2]
return xs[0]
`

	b.ReportAllocs()

	for range b.N {
		if _, err := ParseString(src); err != nil {
			b.Fatal(err)
		}
	}
}
