package parser

import (
	"github.com/ecmabind/varcheck/lang/ast"
	"github.com/ecmabind/varcheck/lang/token"
)

// parseExpr parses a full expression, including top-level commas (a
// SequenceExpr).
func (p *parser) parseExpr() ast.Expr {
	first := p.parseAssignExpr()
	if p.cur.tok != token.COMMA {
		return first
	}
	exprs := []ast.Expr{first}
	for p.cur.tok == token.COMMA {
		p.advance()
		exprs = append(exprs, p.parseAssignExpr())
	}
	return &ast.SequenceExpr{Exprs: exprs}
}

// parseAssignExprNoIn is like parseAssignExpr but stops before a bare "in"
// token, used for the head of a classic "for (init; cond; post)" loop so
// "for (x in y)" is not misparsed as a binary "in" expression.
func (p *parser) parseAssignExprNoIn() ast.Expr {
	return p.parseAssignExprLevel(true)
}

func (p *parser) parseAssignExpr() ast.Expr {
	return p.parseAssignExprLevel(false)
}

func (p *parser) parseAssignExprLevel(noIn bool) ast.Expr {
	if arrow := p.tryParseArrow(); arrow != nil {
		return arrow
	}

	left := p.parseConditionalExpr(noIn)
	if p.cur.tok.IsAssignOp() {
		op := p.cur.tok
		opPos := p.cur.start
		p.advance()
		right := p.parseAssignExprLevel(noIn)
		return &ast.AssignExpr{Left: left, Op: op, OpPos: opPos, Right: right}
	}
	return left
}

// tryParseArrow attempts to parse an arrow function starting at the current
// position ("ident =>" or "(params) =>"), returning nil if the current
// position is not the start of one.
func (p *parser) tryParseArrow() ast.Expr {
	start := p.cur.start
	if p.cur.tok == token.ASYNC {
		// Speculative: "async" may be an identifier or the arrow-function
		// modifier; only commit if what follows is actually an arrow form.
		var fn ast.Expr
		ok := p.tryParse(func() {
			p.advance()
			fn = p.parseArrowAfterAsync(start)
		})
		if ok {
			return fn
		}
		return nil
	}

	if p.cur.tok == token.IDENT {
		var fn ast.Expr
		ok := p.tryParse(func() {
			name := p.cur.lit
			pos := p.cur.start
			p.advance()
			p.expectTok(token.ARROW)
			fn = p.finishArrowBody(start, []*ast.Param{{Target: &ast.Ident{Name: name, NamePos: pos}}})
		})
		if ok {
			return fn
		}
		return nil
	}

	if p.cur.tok == token.LPAREN {
		var fn ast.Expr
		ok := p.tryParse(func() {
			params := p.parseParamList()
			p.expectTok(token.ARROW)
			fn = p.finishArrowBody(start, params)
		})
		if ok {
			return fn
		}
	}
	return nil
}

func (p *parser) parseArrowAfterAsync(start token.Pos) ast.Expr {
	var params []*ast.Param
	if p.cur.tok == token.IDENT {
		name := p.cur.lit
		pos := p.cur.start
		p.advance()
		params = []*ast.Param{{Target: &ast.Ident{Name: name, NamePos: pos}}}
	} else {
		params = p.parseParamList()
	}
	p.expectTok(token.ARROW)
	return p.finishArrowBody(start, params)
}

// expectTok is like expect but for tokens with no useful literal, kept
// separate from p.expect to give arrow-lookahead failures a cheap path back
// through tryParse's recover.
func (p *parser) expectTok(tok token.Token) token.Pos {
	return p.expect(tok)
}

func (p *parser) finishArrowBody(start token.Pos, params []*ast.Param) ast.Expr {
	fn := &ast.ArrowFunctionExpr{StartPos: start, Params: params}
	if p.cur.tok == token.LBRACE {
		fn.Body = p.parseBlock()
	} else {
		fn.ExprBody = p.parseAssignExpr()
	}
	return fn
}

var binaryPrecedence = map[token.Token]int{
	token.OR_OR:      1,
	token.AND_AND:    2,
	token.PIPE:       3,
	token.CARET:      4,
	token.AMP:        5,
	token.EQ:         6,
	token.NEQ:        6,
	token.EQEQEQ:     6,
	token.NEQEQ:      6,
	token.LT:         7,
	token.GT:         7,
	token.LE:         7,
	token.GE:         7,
	token.INSTANCEOF: 7,
	token.IN:         7,
	token.SHL:        8,
	token.SHR:        8,
	token.PLUS:       9,
	token.MINUS:      9,
	token.STAR:       10,
	token.SLASH:      10,
	token.PERCENT:    10,
	token.STARSTAR:   11,
}

func (p *parser) parseConditionalExpr(noIn bool) ast.Expr {
	cond := p.parseBinaryExpr(1, noIn)
	if p.cur.tok != token.QUESTION {
		return cond
	}
	p.advance()
	then := p.parseAssignExpr()
	p.expect(token.COLON)
	els := p.parseAssignExprLevel(noIn)
	return &ast.ConditionalExpr{Cond: cond, Then: then, Else: els}
}

func (p *parser) parseBinaryExpr(minPrec int, noIn bool) ast.Expr {
	left := p.parseUnaryExpr()
	for {
		tok := p.cur.tok
		if noIn && tok == token.IN {
			return left
		}
		prec, ok := binaryPrecedence[tok]
		if !ok || prec < minPrec {
			return left
		}
		opPos := p.cur.start
		p.advance()
		nextMin := prec + 1
		if tok == token.STARSTAR {
			nextMin = prec // right-associative
		}
		right := p.parseBinaryExpr(nextMin, noIn)
		if tok == token.AND_AND || tok == token.OR_OR {
			left = &ast.LogicalExpr{Left: left, Op: tok, OpPos: opPos, Right: right}
		} else {
			left = &ast.BinaryExpr{Left: left, Op: tok, OpPos: opPos, Right: right}
		}
	}
}

func (p *parser) parseUnaryExpr() ast.Expr {
	switch p.cur.tok {
	case token.NOT, token.TILDE, token.PLUS, token.MINUS, token.TYPEOF, token.VOID, token.DELETE, token.AWAIT:
		op := p.cur.tok
		opPos := p.cur.start
		p.advance()
		x := p.parseUnaryExpr()
		return &ast.UnaryExpr{OpPos: opPos, Op: op, X: x}
	case token.INC, token.DEC:
		op := p.cur.tok
		opPos := p.cur.start
		p.advance()
		x := p.parseUnaryExpr()
		return &ast.UpdateExpr{Op: op, OpPos: opPos, X: x, Prefix: true}
	}
	return p.parsePostfixExpr()
}

func (p *parser) parsePostfixExpr() ast.Expr {
	x := p.parseCallExpr()
	if p.cur.tok == token.INC || p.cur.tok == token.DEC {
		op := p.cur.tok
		end := p.cur.end
		p.advance()
		return &ast.UpdateExpr{Op: op, X: x, EndPos: end}
	}
	return x
}

func (p *parser) parseCallExpr() ast.Expr {
	x := p.parseNewExpr()
	for {
		switch p.cur.tok {
		case token.DOT:
			p.advance()
			name := p.cur.lit
			namePos := p.cur.start
			p.expect(token.IDENT)
			prop := &ast.Ident{Name: name, NamePos: namePos}
			x = &ast.MemberExpr{Obj: x, Prop: prop, End: namePos + token.Pos(len(name))}
		case token.LBRACK:
			p.advance()
			prop := p.parseExpr()
			end := p.expect(token.RBRACK)
			x = &ast.MemberExpr{Obj: x, Prop: prop, Computed: true, End: end + 1}
		case token.LPAREN:
			args, rparen := p.parseArgs()
			x = &ast.CallExpr{Callee: x, Args: args, Rparen: rparen}
		case token.TEMPLATE:
			lit := &ast.Literal{Kind: token.TEMPLATE, Value: p.cur.lit, Pos: p.cur.start}
			p.advance()
			x = &ast.TaggedTemplateExpr{Tag: x, Template: lit}
		default:
			return x
		}
	}
}

func (p *parser) parseNewExpr() ast.Expr {
	if p.cur.tok != token.NEW {
		return p.parsePrimaryExpr()
	}
	p.advance()
	callee := p.parseNewExpr()
	// Swallow any member accesses on the callee before the argument list,
	// e.g. "new a.b.C(...)".
	for {
		switch p.cur.tok {
		case token.DOT:
			p.advance()
			name := p.cur.lit
			namePos := p.cur.start
			p.expect(token.IDENT)
			callee = &ast.MemberExpr{Obj: callee, Prop: &ast.Ident{Name: name, NamePos: namePos}, End: namePos + token.Pos(len(name))}
		case token.LBRACK:
			p.advance()
			prop := p.parseExpr()
			end := p.expect(token.RBRACK)
			callee = &ast.MemberExpr{Obj: callee, Prop: prop, Computed: true, End: end + 1}
		default:
			goto doneMembers
		}
	}
doneMembers:
	if p.cur.tok == token.LPAREN {
		args, rparen := p.parseArgs()
		return &ast.CallExpr{Callee: callee, Args: args, Rparen: rparen, New: true}
	}
	return &ast.CallExpr{Callee: callee, New: true}
}

func (p *parser) parseArgs() ([]ast.Expr, token.Pos) {
	p.expect(token.LPAREN)
	var args []ast.Expr
	for p.cur.tok != token.RPAREN {
		if p.cur.tok == token.ELLIPSIS {
			start := p.cur.start
			p.advance()
			args = append(args, &ast.SpreadExpr{Ellipsis: start, X: p.parseAssignExpr()})
		} else {
			args = append(args, p.parseAssignExpr())
		}
		if p.cur.tok != token.COMMA {
			break
		}
		p.advance()
	}
	rparen := p.expect(token.RPAREN)
	return args, rparen
}

func (p *parser) parsePrimaryExpr() ast.Expr {
	switch p.cur.tok {
	case token.IDENT, token.ASYNC, token.OF, token.AS, token.FROM, token.GET, token.SET, token.STATIC, token.YIELD:
		// Contextual keywords are valid identifiers outside their special
		// positions; the caller already special-cased ASYNC for arrows.
		name := p.cur.lit
		if name == "" {
			name = p.cur.tok.String()
		}
		pos := p.cur.start
		p.advance()
		return &ast.Ident{Name: name, NamePos: pos}
	case token.NUMBER:
		lit := &ast.Literal{Kind: token.NUMBER, Value: p.cur.lit, Pos: p.cur.start}
		p.advance()
		return lit
	case token.STRING:
		lit := &ast.Literal{Kind: token.STRING, Value: unquoteSimple(p.cur.lit), Pos: p.cur.start}
		p.advance()
		return lit
	case token.TEMPLATE:
		lit := &ast.Literal{Kind: token.TEMPLATE, Value: p.cur.lit, Pos: p.cur.start}
		p.advance()
		return lit
	case token.TRUE, token.FALSE:
		lit := &ast.Literal{Kind: p.cur.tok, Value: p.cur.tok.String(), Pos: p.cur.start}
		p.advance()
		return lit
	case token.NULL:
		lit := &ast.Literal{Kind: token.NULL, Value: "null", Pos: p.cur.start}
		p.advance()
		return lit
	case token.THIS:
		pos := p.cur.start
		p.advance()
		return &ast.ThisExpr{Pos: pos}
	case token.SUPER:
		pos := p.cur.start
		p.advance()
		return &ast.SuperExpr{Pos: pos}
	case token.FUNCTION:
		return p.parseFunctionExpr()
	case token.LBRACK:
		return p.parseArrayExpr()
	case token.LBRACE:
		return p.parseObjectExpr()
	case token.LPAREN:
		lparen := p.cur.start
		p.advance()
		x := p.parseExpr()
		rparen := p.expect(token.RPAREN)
		return &ast.ParenExpr{Lparen: lparen, X: x, Rparen: rparen}
	}
	p.errorExpected(p.cur.start, "expression")
	panic(errPanicMode)
}

func (p *parser) parseFunctionExpr() *ast.FunctionExpr {
	funcPos := p.expect(token.FUNCTION)
	var name *ast.Ident
	if p.cur.tok == token.IDENT {
		name = &ast.Ident{Name: p.cur.lit, NamePos: p.cur.start}
		p.advance()
	}
	params := p.parseParamList()
	body := p.parseBlock()
	return &ast.FunctionExpr{FuncPos: funcPos, Name: name, Params: params, Body: body}
}

func (p *parser) parseArrayExpr() *ast.ArrayExpr {
	lbrack := p.expect(token.LBRACK)
	arr := &ast.ArrayExpr{Lbrack: lbrack}
	for p.cur.tok != token.RBRACK {
		if p.cur.tok == token.COMMA {
			arr.Elements = append(arr.Elements, nil)
			p.advance()
			continue
		}
		if p.cur.tok == token.ELLIPSIS {
			start := p.cur.start
			p.advance()
			arr.Elements = append(arr.Elements, &ast.SpreadExpr{Ellipsis: start, X: p.parseAssignExpr()})
		} else {
			arr.Elements = append(arr.Elements, p.parseAssignExpr())
		}
		if p.cur.tok == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	arr.Rbrack = p.expect(token.RBRACK)
	return arr
}

func (p *parser) parseObjectExpr() *ast.ObjectExpr {
	lbrace := p.expect(token.LBRACE)
	obj := &ast.ObjectExpr{Lbrace: lbrace}
	for p.cur.tok != token.RBRACE {
		prop := &ast.Property{}
		if p.cur.tok == token.LBRACK {
			p.advance()
			prop.Key = p.parseAssignExpr()
			p.expect(token.RBRACK)
			prop.Computed = true
		} else {
			prop.Key = p.parsePropertyKey()
		}

		switch {
		case p.cur.tok == token.COLON:
			p.advance()
			prop.Value = p.parseAssignExpr()
		case p.cur.tok == token.LPAREN:
			// Shorthand method syntax: "name(...) { ... }".
			params := p.parseParamList()
			body := p.parseBlock()
			if id, ok := prop.Key.(*ast.Ident); ok {
				prop.Value = &ast.FunctionExpr{FuncPos: id.NamePos, Params: params, Body: body}
			} else {
				prop.Value = &ast.FunctionExpr{Params: params, Body: body}
			}
		default:
			prop.Shorthand = true
			prop.Value = prop.Key
		}
		obj.Props = append(obj.Props, prop)

		if p.cur.tok == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	obj.Rbrace = p.expect(token.RBRACE)
	return obj
}

// parsePropertyKey accepts an identifier, string or number as a plain
// (non-computed) object key.
func (p *parser) parsePropertyKey() ast.Expr {
	switch p.cur.tok {
	case token.STRING:
		lit := &ast.Literal{Kind: token.STRING, Value: unquoteSimple(p.cur.lit), Pos: p.cur.start}
		p.advance()
		return lit
	case token.NUMBER:
		lit := &ast.Literal{Kind: token.NUMBER, Value: p.cur.lit, Pos: p.cur.start}
		p.advance()
		return lit
	default:
		name := p.cur.lit
		if name == "" {
			name = p.cur.tok.String()
		}
		pos := p.cur.start
		p.advance()
		return &ast.Ident{Name: name, NamePos: pos}
	}
}
