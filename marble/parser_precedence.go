package marble

const (
	lowestPrec = iota
	precEquality
	precComparison
	precSum
	precProduct
	precPrefix
	precCall
)

// precedenceOf returns the binding power of tt when it continues an
// expression. Tokens that cannot continue one bind at lowestPrec.
func precedenceOf(tt TokenType) int {
	switch tt {
	case TokenEQ, TokenNotEQ:
		return precEquality
	case TokenLT, TokenGT:
		return precComparison
	case TokenPlus, TokenMinus:
		return precSum
	case TokenAsterisk, TokenSlash:
		return precProduct
	case TokenLParen:
		return precCall
	default:
		return lowestPrec
	}
}

func (p *Parser) peekPrecedence() int {
	return precedenceOf(p.peekToken.Type)
}

func (p *Parser) curPrecedence() int {
	return precedenceOf(p.curToken.Type)
}
