package marble

import "sort"

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	TokenIllegal TokenType = "ILLEGAL"
	TokenEOF     TokenType = "EOF"

	TokenIdent TokenType = "IDENT"
	TokenInt   TokenType = "INT"

	TokenAssign   TokenType = "="
	TokenPlus     TokenType = "+"
	TokenMinus    TokenType = "-"
	TokenAsterisk TokenType = "*"
	TokenSlash    TokenType = "/"
	TokenBang     TokenType = "!"
	TokenGT       TokenType = ">"
	TokenLT       TokenType = "<"
	TokenEQ       TokenType = "=="
	TokenNotEQ    TokenType = "!="

	TokenComma     TokenType = ","
	TokenSemicolon TokenType = ";"
	TokenLParen    TokenType = "("
	TokenRParen    TokenType = ")"
	TokenLBrace    TokenType = "{"
	TokenRBrace    TokenType = "}"

	TokenFunction TokenType = "FUNCTION"
	TokenLet      TokenType = "LET"
	TokenIf       TokenType = "IF"
	TokenElse     TokenType = "ELSE"
	TokenReturn   TokenType = "RETURN"
	TokenTrue     TokenType = "TRUE"
	TokenFalse    TokenType = "FALSE"
)

// Token captures lexical information for the parser.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Position identifies a line and column in the source, both 1-based.
type Position struct {
	Line   int
	Column int
}

var keywords = map[string]TokenType{
	"fn":     TokenFunction,
	"let":    TokenLet,
	"if":     TokenIf,
	"else":   TokenElse,
	"return": TokenReturn,
	"true":   TokenTrue,
	"false":  TokenFalse,
}

// LookupIdent reports the keyword type for ident, or TokenIdent.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return TokenIdent
}

// Keywords returns the reserved words in sorted order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for word := range keywords {
		out = append(out, word)
	}
	sort.Strings(out)
	return out
}
