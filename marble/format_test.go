package marble

import (
	"strings"
	"testing"
)

func TestFormatOneStatementPerLine(t *testing.T) {
	got, err := Format("let x=1;if(x){x}\n\n\nx+1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "let x = 1;\nif (x) { x; };\n(x + 1);\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatIsIdempotent(t *testing.T) {
	once, err := Format("let add = fn(a,b){ return a+b }\nadd(1,2*3)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := Format(once)
	if err != nil {
		t.Fatalf("unexpected error on second pass: %v", err)
	}
	if once != twice {
		t.Fatalf("expected idempotent formatting, got %q then %q", once, twice)
	}
}

func TestFormatRejectsSyntaxErrors(t *testing.T) {
	out, err := Format("let = 1")
	if err == nil {
		t.Fatalf("expected syntax error")
	}
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
	if !strings.Contains(err.Error(), "expected next token to be IDENT") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFormatEmptySource(t *testing.T) {
	out, err := Format("  \n\t")
	if err != nil || out != "" {
		t.Fatalf("expected empty output, got %q, %v", out, err)
	}
}
