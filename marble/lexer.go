package marble

import "unicode/utf8"

// Lexer turns source text into tokens, one NextToken call at a time.
type Lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch rune
}

// NewLexer returns a lexer positioned on the first character of input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readRune()
	return l
}

func (l *Lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w

	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}

	l.ch = r
}

func (l *Lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *Lexer) atEnd() bool {
	return l.ch == 0 && l.width == 0
}

// NextToken scans and returns the next token. Once the input is exhausted
// every call returns an EOF token.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	pos := Position{Line: l.line, Column: l.column}
	if l.atEnd() {
		return Token{Type: TokenEOF, Literal: "", Pos: pos}
	}

	var tok Token
	switch l.ch {
	case '+':
		tok = makeToken(TokenPlus, "+", pos)
	case '-':
		tok = makeToken(TokenMinus, "-", pos)
	case '*':
		tok = makeToken(TokenAsterisk, "*", pos)
	case '/':
		tok = makeToken(TokenSlash, "/", pos)
	case '>':
		tok = makeToken(TokenGT, ">", pos)
	case '<':
		tok = makeToken(TokenLT, "<", pos)
	case '(':
		tok = makeToken(TokenLParen, "(", pos)
	case ')':
		tok = makeToken(TokenRParen, ")", pos)
	case '{':
		tok = makeToken(TokenLBrace, "{", pos)
	case '}':
		tok = makeToken(TokenRBrace, "}", pos)
	case ',':
		tok = makeToken(TokenComma, ",", pos)
	case ';':
		tok = makeToken(TokenSemicolon, ";", pos)
	case '=':
		if l.peekRune() == '=' {
			l.readRune()
			tok = makeToken(TokenEQ, "==", pos)
		} else {
			tok = makeToken(TokenAssign, "=", pos)
		}
	case '!':
		if l.peekRune() == '=' {
			l.readRune()
			tok = makeToken(TokenNotEQ, "!=", pos)
		} else {
			tok = makeToken(TokenBang, "!", pos)
		}
	default:
		switch {
		case isLetter(l.ch):
			literal := l.readWhile(isLetter)
			return makeToken(LookupIdent(literal), literal, pos)
		case isDigit(l.ch):
			literal := l.readWhile(isDigit)
			return makeToken(TokenInt, literal, pos)
		default:
			tok = makeToken(TokenIllegal, l.input[l.offset-l.width:l.offset], pos)
		}
	}

	l.readRune()
	return tok
}

func makeToken(tt TokenType, literal string, pos Position) Token {
	return Token{Type: tt, Literal: literal, Pos: pos}
}

func (l *Lexer) currentOffset() int {
	return l.offset - l.width
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readRune()
	}
}

// readWhile consumes the maximal run of runes accepted by pred, starting at
// the current rune, and leaves the lexer on the first rune after the run.
func (l *Lexer) readWhile(pred func(rune) bool) string {
	start := l.currentOffset()
	for pred(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || r == '_'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// Tokenize lexes input to completion. The returned slice always ends with
// exactly one EOF token.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var out []Token
	for {
		tok := l.NextToken()
		out = append(out, tok)
		if tok.Type == TokenEOF {
			return out
		}
	}
}
