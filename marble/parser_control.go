package marble

func (p *Parser) parseIfExpression() Expression {
	tok := p.curToken
	if !p.expectPeek(TokenLParen) {
		return nil
	}

	p.nextToken()
	condition := p.parseExpression(lowestPrec)

	if !p.expectPeek(TokenRParen) {
		return nil
	}
	if !p.expectPeek(TokenLBrace) {
		return nil
	}
	consequence := p.parseBlockStatement()

	var alternative *BlockStmt
	if p.peekToken.Type == TokenElse {
		p.nextToken()
		if !p.expectPeek(TokenLBrace) {
			return nil
		}
		alternative = p.parseBlockStatement()
	}

	return &IfExpr{
		Condition:   condition,
		Consequence: consequence,
		Alternative: alternative,
		token:       tok,
	}
}

func (p *Parser) parseFunctionLiteral() Expression {
	tok := p.curToken
	if !p.expectPeek(TokenLParen) {
		return nil
	}

	params, ok := p.parseFunctionParameters()
	if !ok {
		return nil
	}

	if !p.expectPeek(TokenLBrace) {
		return nil
	}
	body := p.parseBlockStatement()

	return &FunctionLiteral{Params: params, Body: body, token: tok}
}

// parseFunctionParameters expects the current token to be the opening
// parenthesis and leaves the parser on the closing one.
func (p *Parser) parseFunctionParameters() ([]*Identifier, bool) {
	params := []*Identifier{}

	if p.peekToken.Type == TokenRParen {
		p.nextToken()
		return params, true
	}

	if !p.expectPeek(TokenIdent) {
		return nil, false
	}
	params = append(params, &Identifier{Name: p.curToken.Literal, token: p.curToken})

	for p.peekToken.Type == TokenComma {
		p.nextToken()
		if !p.expectPeek(TokenIdent) {
			return nil, false
		}
		params = append(params, &Identifier{Name: p.curToken.Literal, token: p.curToken})
	}

	if !p.expectPeek(TokenRParen) {
		return nil, false
	}
	return params, true
}

// parseBlockStatement starts on the opening brace and stops on the closing
// brace or at end of input. A block that reaches end of input is returned
// as is; the missing brace is not reported.
func (p *Parser) parseBlockStatement() *BlockStmt {
	block := &BlockStmt{Statements: []Statement{}, token: p.curToken}
	p.nextToken()

	for p.curToken.Type != TokenRBrace && p.curToken.Type != TokenEOF {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}

	return block
}
