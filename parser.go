package main

// precedence returns the precedence level for a given token type
func precedence(tokenType TokenType) int {
	switch tokenType {
	case ASSIGN:
		return 1 // assignment has very low precedence
	case OR:
		return 2
	case AND:
		return 3
	case EQ, NOT_EQ, LT, GT, LE, GE:
		return 4
	case PLUS, MINUS:
		return 5
	case ASTERISK, SLASH, PERCENT:
		return 6
	default:
		return 0 // not an operator
	}
}

// unaryPrecedence binds prefix operators tighter than any binary operator.
const unaryPrecedence = 7

// isOperator returns true if the token is a binary operator
func isOperator(tokenType TokenType) bool {
	return precedence(tokenType) > 0
}

func isTypeToken(tokenType TokenType) bool {
	return tokenType == INT_TYPE || tokenType == VOID
}

func newNode(l *Lexer, kind NodeKind) *ASTNode {
	return &ASTNode{Kind: kind, Line: l.TokenLine, Column: l.TokenColumn}
}

// ParseProgram parses a whole translation unit: decl+
func ParseProgram(l *Lexer) *ASTNode {
	program := newNode(l, NodeProgram)
	for l.CurrTokenType != EOF {
		before := l.pos
		decl := parseDecl(l)
		if decl != nil {
			program.Children = append(program.Children, decl)
		}
		if l.pos == before && l.CurrTokenType != EOF {
			// No progress; drop the offending token.
			l.NextToken()
		}
	}
	if len(program.Children) == 0 {
		l.Errors.Add(l.TokenLine, l.TokenColumn, "program has no declarations")
	}
	return program
}

// parseDecl parses var_decl | fun_decl.
func parseDecl(l *Lexer) *ASTNode {
	if !isTypeToken(l.CurrTokenType) {
		l.Errors.Add(l.TokenLine, l.TokenColumn, "expected declaration but got %s", l.describeCurrent())
		return nil
	}
	line, col := l.TokenLine, l.TokenColumn
	typeName := l.CurrLiteral
	l.NextToken()

	name := l.CurrLiteral
	if !l.SkipToken(IDENT) {
		return nil
	}

	if l.CurrTokenType == LPAREN {
		return parseFuncRest(l, typeName, name, line, col)
	}
	return parseVarRest(l, typeName, name, line, col)
}

// parseVarRest parses what follows "type IDENT" in a variable declaration:
// ';' | '=' LITERAL ';' | '[' LITERAL ']' ';'
func parseVarRest(l *Lexer, typeName, name string, line, col int) *ASTNode {
	node := &ASTNode{
		Kind:     NodeVar,
		String:   name,
		TypeName: typeName,
		Line:     line,
		Column:   col,
	}
	if typeName == TypeVoid {
		l.Errors.Add(line, col, "variable '%s' declared void", name)
	}

	switch l.CurrTokenType {
	case ASSIGN:
		l.NextToken()
		node.HasInit = true
		node.Integer = l.CurrIntValue
		l.SkipToken(INT)
	case LBRACKET:
		l.NextToken()
		node.IsArray = true
		node.Integer = l.CurrIntValue
		l.SkipToken(INT)
		l.SkipToken(RBRACKET)
	}
	l.SkipToken(SEMICOLON)
	return node
}

// parseFuncRest parses '(' params ')' compound_stmt.
func parseFuncRest(l *Lexer, typeName, name string, line, col int) *ASTNode {
	node := &ASTNode{
		Kind:     NodeFunc,
		String:   name,
		TypeName: typeName,
		Line:     line,
		Column:   col,
	}
	l.SkipToken(LPAREN)
	node.Params = parseParams(l)
	l.SkipToken(RPAREN)

	if l.CurrTokenType != LBRACE {
		l.Errors.Add(l.TokenLine, l.TokenColumn, "expected function body but got %s", l.describeCurrent())
		node.Children = []*ASTNode{{Kind: NodeBlock, Line: l.TokenLine, Column: l.TokenColumn}}
		return node
	}
	node.Children = []*ASTNode{parseCompound(l)}
	return node
}

// parseParams parses param (',' param)* | 'void' | <empty>
func parseParams(l *Lexer) []*ASTNode {
	if l.CurrTokenType == RPAREN {
		return nil
	}
	if l.CurrTokenType == VOID && l.PeekToken() == RPAREN {
		l.NextToken()
		return nil
	}

	var params []*ASTNode
	for {
		if !isTypeToken(l.CurrTokenType) {
			l.Errors.Add(l.TokenLine, l.TokenColumn, "expected parameter type but got %s", l.describeCurrent())
			return params
		}
		param := newNode(l, NodeParam)
		param.TypeName = l.CurrLiteral
		l.NextToken()
		param.String = l.CurrLiteral
		if !l.SkipToken(IDENT) {
			return params
		}
		if l.CurrTokenType == LBRACKET {
			l.NextToken()
			l.SkipToken(RBRACKET)
			param.IsArray = true
		}
		params = append(params, param)

		if l.CurrTokenType != COMMA {
			return params
		}
		l.NextToken()
	}
}

// parseCompound parses '{' local_decl* stmt* '}'
func parseCompound(l *Lexer) *ASTNode {
	block := newNode(l, NodeBlock)
	l.SkipToken(LBRACE)

	for l.CurrTokenType != RBRACE && l.CurrTokenType != EOF {
		before := l.pos
		if isTypeToken(l.CurrTokenType) {
			if len(block.Children) > 0 {
				l.Errors.Add(l.TokenLine, l.TokenColumn, "local declarations must precede statements")
			}
			if local := parseLocalDecl(l); local != nil {
				block.Locals = append(block.Locals, local)
			}
		} else {
			block.Children = append(block.Children, ParseStatement(l))
		}
		if l.pos == before && l.CurrTokenType != RBRACE && l.CurrTokenType != EOF {
			l.NextToken()
		}
	}
	l.SkipToken(RBRACE)
	return block
}

func parseLocalDecl(l *Lexer) *ASTNode {
	line, col := l.TokenLine, l.TokenColumn
	typeName := l.CurrLiteral
	l.NextToken()
	name := l.CurrLiteral
	if !l.SkipToken(IDENT) {
		return nil
	}
	if l.CurrTokenType == LPAREN {
		l.Errors.Add(line, col, "nested function '%s' is not allowed", name)
	}
	return parseVarRest(l, typeName, name, line, col)
}

// ParseStatement parses a statement and returns an AST node
func ParseStatement(l *Lexer) *ASTNode {
	switch l.CurrTokenType {
	case LBRACE:
		return parseCompound(l)

	case IF:
		node := newNode(l, NodeIf)
		l.SkipToken(IF)
		l.SkipToken(LPAREN)
		cond := ParseExpression(l)
		l.SkipToken(RPAREN)
		then := ParseStatement(l)
		node.Children = []*ASTNode{cond, then}
		if l.CurrTokenType == ELSE {
			l.SkipToken(ELSE)
			node.Children = append(node.Children, ParseStatement(l))
		}
		return node

	case WHILE:
		node := newNode(l, NodeWhile)
		l.SkipToken(WHILE)
		l.SkipToken(LPAREN)
		cond := ParseExpression(l)
		l.SkipToken(RPAREN)
		body := ParseStatement(l)
		node.Children = []*ASTNode{cond, body}
		return node

	case RETURN:
		node := newNode(l, NodeReturn)
		l.SkipToken(RETURN)
		if l.CurrTokenType != SEMICOLON {
			node.Children = []*ASTNode{ParseExpression(l)}
		}
		l.SkipToken(SEMICOLON)
		return node

	default:
		// Expression statement
		node := newNode(l, NodeExprStmt)
		node.Children = []*ASTNode{ParseExpression(l)}
		l.SkipToken(SEMICOLON)
		return node
	}
}

// ParseExpression parses an expression and returns an AST node
func ParseExpression(l *Lexer) *ASTNode {
	return parseExpressionWithPrecedence(l, 0)
}

// parseExpressionWithPrecedence implements precedence climbing
func parseExpressionWithPrecedence(l *Lexer, minPrec int) *ASTNode {
	var left *ASTNode

	switch l.CurrTokenType {
	case MINUS, PLUS, BANG, PLUS_PLUS, MINUS_MINUS:
		node := newNode(l, NodeUnary)
		node.Op = l.CurrLiteral
		l.NextToken()
		node.Children = []*ASTNode{parseExpressionWithPrecedence(l, unaryPrecedence)}
		left = node
	default:
		left = parsePrimary(l)
	}

	for {
		if !isOperator(l.CurrTokenType) || precedence(l.CurrTokenType) < minPrec {
			break
		}

		line, col := l.TokenLine, l.TokenColumn
		opType := l.CurrTokenType
		op := l.CurrLiteral
		prec := precedence(opType)
		l.NextToken()

		if opType == ASSIGN {
			// right-associative
			right := parseExpressionWithPrecedence(l, prec)
			left = makeAssignment(l, left, right, line, col)
			continue
		}

		right := parseExpressionWithPrecedence(l, prec+1) // left-associative
		switch opType {
		case AND:
			op = "and"
		case OR:
			op = "or"
		}
		left = &ASTNode{
			Kind:     NodeBinary,
			Op:       op,
			Children: []*ASTNode{left, right},
			Line:     line,
			Column:   col,
		}
	}

	return left
}

// makeAssignment builds IDENT '=' expr or IDENT '[' expr ']' '=' expr.
func makeAssignment(l *Lexer, target, value *ASTNode, line, col int) *ASTNode {
	switch target.Kind {
	case NodeIdent:
		return &ASTNode{
			Kind:     NodeAssign,
			String:   target.String,
			Children: []*ASTNode{value},
			Line:     line,
			Column:   col,
		}
	case NodeIndex:
		return &ASTNode{
			Kind:     NodeIndexAssign,
			String:   target.String,
			Children: []*ASTNode{target.Children[0], value},
			Line:     line,
			Column:   col,
		}
	default:
		l.Errors.Add(line, col, "invalid assignment target")
		return value
	}
}

// parsePrimary handles primary expressions (literals, identifiers, calls,
// subscripts, parentheses)
func parsePrimary(l *Lexer) *ASTNode {
	switch l.CurrTokenType {
	case INT:
		node := newNode(l, NodeInteger)
		node.Integer = l.CurrIntValue
		l.SkipToken(INT)
		return node

	case IDENT:
		node := newNode(l, NodeIdent)
		node.String = l.CurrLiteral
		l.SkipToken(IDENT)

		switch l.CurrTokenType {
		case LPAREN:
			node.Kind = NodeCall
			l.SkipToken(LPAREN)
			node.Children = parseArgs(l)
			l.SkipToken(RPAREN)
		case LBRACKET:
			node.Kind = NodeIndex
			l.SkipToken(LBRACKET)
			node.Children = []*ASTNode{ParseExpression(l)}
			l.SkipToken(RBRACKET)
		}
		return node

	case LPAREN:
		node := newNode(l, NodeParen)
		l.SkipToken(LPAREN)
		node.Children = []*ASTNode{ParseExpression(l)}
		l.SkipToken(RPAREN)
		return node

	default:
		l.Errors.Add(l.TokenLine, l.TokenColumn, "expected expression but got %s", l.describeCurrent())
		return &ASTNode{Kind: NodeInteger, Line: l.TokenLine, Column: l.TokenColumn}
	}
}

// parseArgs parses expr (',' expr)* | <empty>
func parseArgs(l *Lexer) []*ASTNode {
	if l.CurrTokenType == RPAREN {
		return nil
	}
	args := []*ASTNode{ParseExpression(l)}
	for l.CurrTokenType == COMMA {
		l.SkipToken(COMMA)
		args = append(args, ParseExpression(l))
	}
	return args
}
