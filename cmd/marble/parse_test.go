package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mgomes/marblescript/marble"
	"gopkg.in/yaml.v3"
)

func TestParseCommandJSON(t *testing.T) {
	out, _, err := runApp(t, "let x = -5;", "parse", "--format", "json")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	var tree treeNode
	if err := json.Unmarshal([]byte(out), &tree); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if tree.Kind != "Program" || len(tree.Statements) != 1 {
		t.Fatalf("unexpected root %+v", tree)
	}
	let := tree.Statements[0]
	if let.Kind != "LetStatement" || let.Name != "x" || let.Pos != "1:1" {
		t.Fatalf("unexpected let %+v", let)
	}
	neg := let.Value
	if neg == nil || neg.Kind != "PrefixExpression" || neg.Operator != "-" || neg.Pos != "1:9" {
		t.Fatalf("unexpected value %+v", neg)
	}
	if neg.Right == nil || neg.Right.Int == nil || *neg.Right.Int != 5 {
		t.Fatalf("unexpected operand %+v", neg.Right)
	}
}

func TestParseCommandYAML(t *testing.T) {
	out, _, err := runApp(t, "if (ok) { f(1, true) }", "parse", "-f", "yaml")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	var tree treeNode
	if err := yaml.Unmarshal([]byte(out), &tree); err != nil {
		t.Fatalf("decode yaml: %v\n%s", err, out)
	}
	ifExpr := tree.Statements[0].Value
	if ifExpr.Kind != "IfExpression" || ifExpr.Condition.Name != "ok" || ifExpr.Alternative != nil {
		t.Fatalf("unexpected if %+v", ifExpr)
	}
	call := ifExpr.Consequence.Statements[0].Value
	if call.Kind != "CallExpression" || call.Callee.Name != "f" || len(call.Args) != 2 {
		t.Fatalf("unexpected call %+v", call)
	}
	if call.Args[1].Bool == nil || !*call.Args[1].Bool {
		t.Fatalf("unexpected bool arg %+v", call.Args[1])
	}
	if !strings.HasPrefix(out, "kind: Program\n") {
		t.Fatalf("expected two-space yaml starting with root kind:\n%s", out)
	}
}

func TestParseCommandUnknownFormat(t *testing.T) {
	_, _, err := runApp(t, "x", "parse", "--format", "xml")
	if err == nil || !strings.Contains(err.Error(), "unknown format xml") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}

func TestBuildTreeFunctionLiteral(t *testing.T) {
	program, err := marble.Parse("fn(a, b) { return a; }")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	fn := buildTree(program).Statements[0].Value
	if fn.Kind != "FunctionLiteral" || len(fn.Params) != 2 || fn.Params[1].Name != "b" {
		t.Fatalf("unexpected function %+v", fn)
	}
	ret := fn.Body.Statements[0]
	if ret.Kind != "ReturnStatement" || ret.Value.Name != "a" {
		t.Fatalf("unexpected body %+v", ret)
	}
}

func TestWriteProgramCode(t *testing.T) {
	program, err := marble.Parse("a + b * c")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	var buf bytes.Buffer
	if err := writeProgram(&buf, program, formatCode); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if got := buf.String(); got != "(a + (b * c));\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
