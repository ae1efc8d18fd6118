package marble

// LetStmt binds Value to Name. Value is nil when the right-hand side failed
// to parse.
type LetStmt struct {
	Name  *Identifier
	Value Expression
	token Token
}

func (s *LetStmt) stmtNode()            {}
func (s *LetStmt) Pos() Position        { return s.token.Pos }
func (s *LetStmt) TokenLiteral() string { return s.token.Literal }
func (s *LetStmt) String() string {
	name := ""
	if s.Name != nil {
		name = s.Name.String()
	}
	return "let " + name + " = " + nodeString(s.Value) + ";"
}

type ReturnStmt struct {
	Value Expression
	token Token
}

func (s *ReturnStmt) stmtNode()            {}
func (s *ReturnStmt) Pos() Position        { return s.token.Pos }
func (s *ReturnStmt) TokenLiteral() string { return s.token.Literal }
func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return;"
	}
	return "return " + s.Value.String() + ";"
}

// ExprStmt is a statement consisting of a single expression. Its token is
// the first token of the expression.
type ExprStmt struct {
	Expr  Expression
	token Token
}

func (s *ExprStmt) stmtNode()            {}
func (s *ExprStmt) Pos() Position        { return s.token.Pos }
func (s *ExprStmt) TokenLiteral() string { return s.token.Literal }
func (s *ExprStmt) String() string       { return nodeString(s.Expr) }

// BlockStmt is a brace-delimited statement list. Its token is the opening
// brace.
type BlockStmt struct {
	Statements []Statement
	token      Token
}

func (s *BlockStmt) stmtNode()            {}
func (s *BlockStmt) Pos() Position        { return s.token.Pos }
func (s *BlockStmt) TokenLiteral() string { return s.token.Literal }
func (s *BlockStmt) String() string {
	if len(s.Statements) == 0 {
		return "{ }"
	}
	return "{ " + joinStatements(s.Statements, " ") + " }"
}
