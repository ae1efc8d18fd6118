package marble

import "errors"

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

// Parser builds an AST from the tokens of a Lexer. It keeps a two token
// window (current and peek) and records syntax errors instead of stopping
// at the first one. A Parser is not safe for concurrent use.
type Parser struct {
	l *Lexer

	curToken  Token
	peekToken Token

	errors []error
}

// NewParser wraps l and primes the lookahead window.
func NewParser(l *Lexer) *Parser {
	p := &Parser{l: l}
	p.nextToken()
	p.nextToken()
	return p
}

// Parse lexes and parses input in one step. The returned error joins every
// syntax error; the program is returned either way.
func Parse(input string) (*Program, error) {
	p := NewParser(NewLexer(input))
	program := p.ParseProgram()
	return program, errors.Join(p.errors...)
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// Errors returns the syntax errors recorded so far, in source order.
func (p *Parser) Errors() []error {
	out := make([]error, len(p.errors))
	copy(out, p.errors)
	return out
}

// ParseProgram consumes the remaining tokens and returns the program root.
func (p *Parser) ParseProgram() *Program {
	program := &Program{Statements: []Statement{}}

	for p.curToken.Type != TokenEOF {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program
}

func (p *Parser) parseStatement() Statement {
	switch p.curToken.Type {
	case TokenLet:
		return p.parseLetStatement()
	case TokenReturn:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() Statement {
	tok := p.curToken
	if !p.expectPeek(TokenIdent) {
		return nil
	}
	name := &Identifier{Name: p.curToken.Literal, token: p.curToken}

	if !p.expectPeek(TokenAssign) {
		return nil
	}

	p.nextToken()
	value := p.parseExpression(lowestPrec)
	p.skipSemicolon()

	return &LetStmt{Name: name, Value: value, token: tok}
}

func (p *Parser) parseReturnStatement() Statement {
	tok := p.curToken
	p.nextToken()
	value := p.parseExpression(lowestPrec)
	p.skipSemicolon()

	return &ReturnStmt{Value: value, token: tok}
}

func (p *Parser) parseExpressionStatement() Statement {
	tok := p.curToken
	expr := p.parseExpression(lowestPrec)
	p.skipSemicolon()
	if expr == nil {
		return nil
	}

	return &ExprStmt{Expr: expr, token: tok}
}

// skipSemicolon consumes an optional statement terminator.
func (p *Parser) skipSemicolon() {
	if p.peekToken.Type == TokenSemicolon {
		p.nextToken()
	}
}

func (p *Parser) expectPeek(tt TokenType) bool {
	if p.peekToken.Type == tt {
		p.nextToken()
		return true
	}
	p.errorExpected(p.peekToken, tt)
	return false
}
