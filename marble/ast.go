package marble

import (
	"strings"
)

// Node is implemented by every AST node. String regenerates canonical,
// fully parenthesized source for the node.
type Node interface {
	Pos() Position
	TokenLiteral() string
	String() string
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

// Program is the root of a parsed source file.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() Position {
	if len(p.Statements) == 0 {
		return Position{}
	}
	return p.Statements[0].Pos()
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) == 0 {
		return ""
	}
	return p.Statements[0].TokenLiteral()
}

func (p *Program) String() string {
	return joinStatements(p.Statements, " ")
}

type Identifier struct {
	Name  string
	token Token
}

func (e *Identifier) exprNode()            {}
func (e *Identifier) Pos() Position        { return e.token.Pos }
func (e *Identifier) TokenLiteral() string { return e.token.Literal }
func (e *Identifier) String() string       { return e.Name }

type IntegerLiteral struct {
	Value int64
	token Token
}

func (e *IntegerLiteral) exprNode()            {}
func (e *IntegerLiteral) Pos() Position        { return e.token.Pos }
func (e *IntegerLiteral) TokenLiteral() string { return e.token.Literal }
func (e *IntegerLiteral) String() string       { return e.token.Literal }

type BoolLiteral struct {
	Value bool
	token Token
}

func (e *BoolLiteral) exprNode()            {}
func (e *BoolLiteral) Pos() Position        { return e.token.Pos }
func (e *BoolLiteral) TokenLiteral() string { return e.token.Literal }
func (e *BoolLiteral) String() string       { return e.token.Literal }

// PrefixExpr is a unary operator applied to its operand, e.g. -x or !ok.
type PrefixExpr struct {
	Operator string
	Right    Expression
	token    Token
}

func (e *PrefixExpr) exprNode()            {}
func (e *PrefixExpr) Pos() Position        { return e.token.Pos }
func (e *PrefixExpr) TokenLiteral() string { return e.token.Literal }
func (e *PrefixExpr) String() string {
	return "(" + e.Operator + nodeString(e.Right) + ")"
}

// InfixExpr is a binary operator expression. Its token is the operator.
type InfixExpr struct {
	Left     Expression
	Operator string
	Right    Expression
	token    Token
}

func (e *InfixExpr) exprNode()            {}
func (e *InfixExpr) Pos() Position        { return e.token.Pos }
func (e *InfixExpr) TokenLiteral() string { return e.token.Literal }
func (e *InfixExpr) String() string {
	return "(" + nodeString(e.Left) + " " + e.Operator + " " + nodeString(e.Right) + ")"
}

// IfExpr yields the value of whichever block runs. Alternative is nil when
// there is no else clause.
type IfExpr struct {
	Condition   Expression
	Consequence *BlockStmt
	Alternative *BlockStmt
	token       Token
}

func (e *IfExpr) exprNode()            {}
func (e *IfExpr) Pos() Position        { return e.token.Pos }
func (e *IfExpr) TokenLiteral() string { return e.token.Literal }
func (e *IfExpr) String() string {
	var b strings.Builder
	b.WriteString("if ")
	b.WriteString(parenthesized(e.Condition))
	b.WriteString(" ")
	b.WriteString(blockString(e.Consequence))
	if e.Alternative != nil {
		b.WriteString(" else ")
		b.WriteString(blockString(e.Alternative))
	}
	return b.String()
}

type FunctionLiteral struct {
	Params []*Identifier
	Body   *BlockStmt
	token  Token
}

func (e *FunctionLiteral) exprNode()            {}
func (e *FunctionLiteral) Pos() Position        { return e.token.Pos }
func (e *FunctionLiteral) TokenLiteral() string { return e.token.Literal }
func (e *FunctionLiteral) String() string {
	params := make([]string, len(e.Params))
	for i, param := range e.Params {
		params[i] = param.String()
	}
	return "fn(" + strings.Join(params, ", ") + ") " + blockString(e.Body)
}

// CallExpr applies Callee to Args. Its token is the opening parenthesis.
type CallExpr struct {
	Callee Expression
	Args   []Expression
	token  Token
}

func (e *CallExpr) exprNode()            {}
func (e *CallExpr) Pos() Position        { return e.token.Pos }
func (e *CallExpr) TokenLiteral() string { return e.token.Literal }
func (e *CallExpr) String() string {
	args := make([]string, len(e.Args))
	for i, arg := range e.Args {
		args[i] = nodeString(arg)
	}
	return nodeString(e.Callee) + "(" + strings.Join(args, ", ") + ")"
}

func nodeString(n Node) string {
	if n == nil {
		return ""
	}
	return n.String()
}

func blockString(b *BlockStmt) string {
	if b == nil {
		return "{ }"
	}
	return b.String()
}

// parenthesized wraps the rendering of expr in parentheses unless the
// rendering already carries its own.
func parenthesized(expr Expression) string {
	switch expr.(type) {
	case *InfixExpr, *PrefixExpr:
		return expr.String()
	}
	return "(" + nodeString(expr) + ")"
}

// joinStatements renders stmts separated by sep. Expression statements get a
// terminating semicolon so the result lexes back into the same statements.
func joinStatements(stmts []Statement, sep string) string {
	var b strings.Builder
	for i, stmt := range stmts {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(terminated(stmt))
	}
	return b.String()
}

func terminated(stmt Statement) string {
	out := nodeString(stmt)
	if _, ok := stmt.(*ExprStmt); ok && out != "" {
		return out + ";"
	}
	return out
}
