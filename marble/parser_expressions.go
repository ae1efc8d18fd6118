package marble

import "strconv"

func (p *Parser) prefixFn(tt TokenType) prefixParseFn {
	switch tt {
	case TokenIdent:
		return p.parseIdentifier
	case TokenInt:
		return p.parseIntegerLiteral
	case TokenTrue, TokenFalse:
		return p.parseBooleanLiteral
	case TokenBang, TokenMinus:
		return p.parsePrefixExpression
	case TokenLParen:
		return p.parseGroupedExpression
	case TokenIf:
		return p.parseIfExpression
	case TokenFunction:
		return p.parseFunctionLiteral
	default:
		return nil
	}
}

func (p *Parser) infixFn(tt TokenType) infixParseFn {
	switch tt {
	case TokenPlus, TokenMinus, TokenSlash, TokenAsterisk,
		TokenEQ, TokenNotEQ, TokenLT, TokenGT:
		return p.parseInfixExpression
	case TokenLParen:
		return p.parseCallExpression
	default:
		return nil
	}
}

func (p *Parser) parseExpression(precedence int) Expression {
	prefix := p.prefixFn(p.curToken.Type)
	if prefix == nil {
		p.errorNoPrefix(p.curToken)
		return nil
	}

	left := prefix()

	for p.peekToken.Type != TokenSemicolon && precedence < p.peekPrecedence() {
		infix := p.infixFn(p.peekToken.Type)
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	return left
}

func (p *Parser) parseIdentifier() Expression {
	return &Identifier{Name: p.curToken.Literal, token: p.curToken}
}

func (p *Parser) parseIntegerLiteral() Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.errorInvalidInteger(p.curToken)
		return nil
	}
	return &IntegerLiteral{Value: value, token: p.curToken}
}

func (p *Parser) parseBooleanLiteral() Expression {
	return &BoolLiteral{Value: p.curToken.Type == TokenTrue, token: p.curToken}
}

func (p *Parser) parsePrefixExpression() Expression {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(precPrefix)
	return &PrefixExpr{Operator: tok.Literal, Right: right, token: tok}
}

func (p *Parser) parseInfixExpression(left Expression) Expression {
	tok := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &InfixExpr{Left: left, Operator: tok.Literal, Right: right, token: tok}
}

func (p *Parser) parseGroupedExpression() Expression {
	p.nextToken()
	expr := p.parseExpression(lowestPrec)
	if !p.expectPeek(TokenRParen) {
		return nil
	}
	return expr
}

func (p *Parser) parseCallExpression(callee Expression) Expression {
	tok := p.curToken
	args, ok := p.parseCallArguments()
	if !ok {
		return nil
	}
	return &CallExpr{Callee: callee, Args: args, token: tok}
}

// parseCallArguments expects the current token to be the opening
// parenthesis and leaves the parser on the closing one.
func (p *Parser) parseCallArguments() ([]Expression, bool) {
	args := []Expression{}

	if p.peekToken.Type == TokenRParen {
		p.nextToken()
		return args, true
	}

	p.nextToken()
	if arg := p.parseExpression(lowestPrec); arg != nil {
		args = append(args, arg)
	}

	for p.peekToken.Type == TokenComma {
		p.nextToken()
		p.nextToken()
		if arg := p.parseExpression(lowestPrec); arg != nil {
			args = append(args, arg)
		}
	}

	if !p.expectPeek(TokenRParen) {
		return nil, false
	}
	return args, true
}
