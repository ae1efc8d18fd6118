package marble

import (
	"fmt"
	"strings"
)

// ParseError is a recoverable syntax error found while parsing.
type ParseError struct {
	Pos    Position
	Msg    string
	source string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
	if frame := formatCodeFrame(e.source, e.Pos); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

func (p *Parser) errorExpected(got Token, expected TokenType) {
	p.addParseError(got.Pos, fmt.Sprintf("expected next token to be %s, got %s instead", tokenLabel(expected), tokenLabel(got.Type)))
}

func (p *Parser) errorNoPrefix(tok Token) {
	p.addParseError(tok.Pos, fmt.Sprintf("no prefix parse function for %s found", tokenLabel(tok.Type)))
}

func (p *Parser) errorInvalidInteger(tok Token) {
	p.addParseError(tok.Pos, fmt.Sprintf("could not parse %s as integer", tok.Literal))
}

func (p *Parser) addParseError(pos Position, msg string) {
	p.errors = append(p.errors, &ParseError{Pos: pos, Msg: msg, source: p.l.input})
}

func tokenLabel(tt TokenType) string {
	switch tt {
	case TokenIllegal:
		return "ILLEGAL"
	case TokenEOF:
		return "EOF"
	case TokenIdent:
		return "IDENT"
	case TokenInt:
		return "INT"
	default:
		return fmt.Sprintf("%q", string(tt))
	}
}
