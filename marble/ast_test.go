package marble

import "testing"

func TestOperatorPrecedenceRendering(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"a + b * c", "(a + (b * c))"},
		{"-a * b", "((-a) * b)"},
		{"!-a", "(!(-a))"},
		{"a + b + c", "((a + b) + c)"},
		{"a + b - c", "((a + b) - c)"},
		{"a * b * c", "((a * b) * c)"},
		{"a * b / c", "((a * b) / c)"},
		{"a + b / c", "(a + (b / c))"},
		{"a + b * c + d / e - f", "(((a + (b * c)) + (d / e)) - f)"},
		{"5 > 4 == 3 < 4", "((5 > 4) == (3 < 4))"},
		{"5 < 4 != 3 > 4", "((5 < 4) != (3 > 4))"},
		{"3 + 4 * 5 == 3 * 1 + 4 * 5", "((3 + (4 * 5)) == ((3 * 1) + (4 * 5)))"},
		{"true", "true"},
		{"3 > 5 == false", "((3 > 5) == false)"},
		{"1 + (2 + 3) + 4", "((1 + (2 + 3)) + 4)"},
		{"(5 + 5) * 2", "((5 + 5) * 2)"},
		{"2 / (5 + 5)", "(2 / (5 + 5))"},
		{"-(5 + 5)", "(-(5 + 5))"},
		{"!(true == true)", "(!(true == true))"},
		{"((a))", "a"},
		{"a + add(b * c) + d", "((a + add((b * c))) + d)"},
		{"add(a, b, 1, 2 * 3, 4 + 5, add(6, 7 * 8))", "add(a, b, 1, (2 * 3), (4 + 5), add(6, (7 * 8)))"},
		{"add(a + b + c * d / f + g)", "add((((a + b) + ((c * d) / f)) + g))"},
		{"-a(b)", "(-a(b))"},
		{"fn(x) { x }(5)", "fn(x) { x; }(5)"},
		{"if (a > b) { a } else { b }", "if (a > b) { a; } else { b; }"},
		{"if (x) {}", "if (x) { }"},
		{"if (f(x)) { 1 }", "if (f(x)) { 1; }"},
		{"fn() { let a = 1; a }", "fn() { let a = 1; a; }"},
	}

	for _, tc := range cases {
		program := parseSource(t, tc.input)
		got := singleExpression(t, program).String()
		if got != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.input, tc.want, got)
		}
	}
}

func TestStatementRendering(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"let max = if (x > y) { x } else { y };", "let max = if (x > y) { x; } else { y; };"},
		{"let add = fn(x, y) { return x + y; };", "let add = fn(x, y) { return (x + y); };"},
		{"return   1+2", "return (1 + 2);"},
		{"1 + 2; -3 * 4", "(1 + 2); ((-3) * 4);"},
		{"a + b * c", "(a + (b * c));"},
	}
	for _, tc := range cases {
		program := parseSource(t, tc.input)
		if got := program.String(); got != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.input, tc.want, got)
		}
	}
}

func TestTwoStatementsRenderSeparately(t *testing.T) {
	program := parseSource(t, "1 + 2; -3 * 4")
	if len(program.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Statements))
	}
	want := []string{"(1 + 2)", "((-3) * 4)"}
	for i, stmt := range program.Statements {
		if got := stmt.String(); got != want[i] {
			t.Fatalf("statement %d: expected %q, got %q", i, want[i], got)
		}
	}
}

func TestCanonicalRenderingIsFixedPoint(t *testing.T) {
	inputs := []string{
		"a + b * c",
		"1 + 2; -3 * 4",
		"let x = 5; let y = x * (2 + 3)",
		"if (x < y) { x } else { y; }",
		"let add = fn(a, b) { return a + b }; add(1, add(2, 3))",
		"fn(f) { f(1)(2) }(fn(x) { fn(y) { x + y } })",
		"if (x) { if (y) { 1 } else { !true } }",
		"-(-1); !!false",
		"if (open) { let a = 1",
	}
	for _, input := range inputs {
		first := parseSource(t, input).String()
		second := parseSource(t, first).String()
		if first != second {
			t.Fatalf("%q: rendering is not a fixed point:\n first:  %q\n second: %q", input, first, second)
		}
	}
}

func TestRenderingIgnoresWhitespace(t *testing.T) {
	a := parseSource(t, "let  x=fn(a,b){a+b};").String()
	b := parseSource(t, "let x =\n\tfn( a , b )\n{\n  a + b\n}\n;").String()
	if a != b {
		t.Fatalf("expected identical renderings, got %q and %q", a, b)
	}
}

func TestHandBuiltTreeRendering(t *testing.T) {
	program := &Program{
		Statements: []Statement{
			&LetStmt{
				Name:  &Identifier{Name: "x", token: Token{Type: TokenIdent, Literal: "x"}},
				Value: &Identifier{Name: "abc", token: Token{Type: TokenIdent, Literal: "abc"}},
				token: Token{Type: TokenLet, Literal: "let"},
			},
		},
	}
	if got := program.String(); got != "let x = abc;" {
		t.Fatalf("unexpected rendering %q", got)
	}
	if got := program.TokenLiteral(); got != "let" {
		t.Fatalf("unexpected token literal %q", got)
	}
}

func TestMissingChildrenRenderEmpty(t *testing.T) {
	let := &LetStmt{Name: &Identifier{Name: "x"}}
	if got := let.String(); got != "let x = ;" {
		t.Fatalf("unexpected rendering %q", got)
	}
	ret := &ReturnStmt{}
	if got := ret.String(); got != "return;" {
		t.Fatalf("unexpected rendering %q", got)
	}
	infix := &InfixExpr{Operator: "+", Right: &Identifier{Name: "b"}}
	if got := infix.String(); got != "( + b)" {
		t.Fatalf("unexpected rendering %q", got)
	}
}

func TestNodePositions(t *testing.T) {
	program := parseSource(t, "let a = 1;\n  a + 2")
	if got := program.Pos(); got != (Position{Line: 1, Column: 1}) {
		t.Fatalf("unexpected program position %+v", got)
	}
	infix := program.Statements[1].(*ExprStmt).Expr.(*InfixExpr)
	if got := infix.Pos(); got != (Position{Line: 2, Column: 5}) {
		t.Fatalf("unexpected operator position %+v", got)
	}
	if got := infix.Left.Pos(); got != (Position{Line: 2, Column: 3}) {
		t.Fatalf("unexpected operand position %+v", got)
	}
}

func TestInspectVisitsInPreOrder(t *testing.T) {
	program := parseSource(t, "let f = fn(a) { if (a) { a } else { -a } }; f(1)")

	var idents []string
	var kinds []string
	Inspect(program, func(n Node) bool {
		switch v := n.(type) {
		case *Identifier:
			idents = append(idents, v.Name)
		case *IfExpr:
			kinds = append(kinds, "if")
		case *CallExpr:
			kinds = append(kinds, "call")
		case *PrefixExpr:
			kinds = append(kinds, "prefix")
		}
		return true
	})

	wantIdents := []string{"f", "a", "a", "a", "a", "f"}
	if len(idents) != len(wantIdents) {
		t.Fatalf("expected identifiers %v, got %v", wantIdents, idents)
	}
	for i := range wantIdents {
		if idents[i] != wantIdents[i] {
			t.Fatalf("expected identifiers %v, got %v", wantIdents, idents)
		}
	}
	wantKinds := []string{"if", "prefix", "call"}
	if len(kinds) != len(wantKinds) {
		t.Fatalf("expected kinds %v, got %v", wantKinds, kinds)
	}
	for i := range wantKinds {
		if kinds[i] != wantKinds[i] {
			t.Fatalf("expected kinds %v, got %v", wantKinds, kinds)
		}
	}
}

func TestInspectSkipsChildren(t *testing.T) {
	program := parseSource(t, "let f = fn(a) { a }; f(1)")
	var idents []string
	Inspect(program, func(n Node) bool {
		if ident, ok := n.(*Identifier); ok {
			idents = append(idents, ident.Name)
		}
		_, isFn := n.(*FunctionLiteral)
		return !isFn
	})
	if len(idents) != 2 || idents[0] != "f" || idents[1] != "f" {
		t.Fatalf("expected only the two f identifiers, got %v", idents)
	}
}
