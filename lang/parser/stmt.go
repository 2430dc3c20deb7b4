package parser

import (
	"github.com/ecmabind/varcheck/lang/ast"
	"github.com/ecmabind/varcheck/lang/token"
)

func (p *parser) parseStmt() ast.Stmt {
	switch p.cur.tok {
	case token.LBRACE:
		return p.parseBlock()
	case token.VAR, token.LET, token.CONST:
		return p.parseVarDecl()
	case token.FUNCTION:
		return p.parseFunctionDecl()
	case token.CLASS:
		return p.parseClassDecl()
	case token.IF:
		return p.parseIfStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.DO:
		return p.parseDoWhileStmt()
	case token.WITH:
		return p.parseWithStmt()
	case token.TRY:
		return p.parseTryStmt()
	case token.SWITCH:
		return p.parseSwitchStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.BREAK:
		return p.parseBreakStmt()
	case token.CONTINUE:
		return p.parseContinueStmt()
	case token.THROW:
		return p.parseThrowStmt()
	case token.IMPORT:
		return p.parseImportDecl()
	case token.EXPORT:
		return p.parseExportDecl()
	case token.SEMI:
		p.advance()
		return nil
	}

	if p.cur.tok == token.IDENT {
		if labeled := p.tryLabeledStmt(); labeled != nil {
			return labeled
		}
	}

	x := p.parseExpr()
	p.consumeSemi()
	return &ast.ExprStmt{X: x}
}

func (p *parser) tryLabeledStmt() ast.Stmt {
	var out ast.Stmt
	ok := p.tryParse(func() {
		name := p.cur.lit
		pos := p.cur.start
		p.advance()
		colon := p.expect(token.COLON)
		body := p.parseStmt()
		out = &ast.LabeledStmt{Label: &ast.Ident{Name: name, NamePos: pos}, Colon: colon, Body: body}
	})
	if ok {
		return out
	}
	return nil
}

func (p *parser) parseBlock() *ast.BlockStmt {
	lbrace := p.expect(token.LBRACE)
	b := &ast.BlockStmt{Lbrace: lbrace}
	for p.cur.tok != token.RBRACE && p.cur.tok != token.EOF {
		s := p.parseStmtSynchronized()
		if s != nil {
			b.Stmts = append(b.Stmts, s)
		}
	}
	b.Rbrace = p.expect(token.RBRACE)
	return b
}

func (p *parser) parseVarDecl() *ast.VarDecl {
	doc := p.takeDoc()
	tokPos := p.cur.start
	tok := p.cur.tok
	p.advance()
	decl := p.finishVarDeclFrom(tok, tokPos, nil)
	decl.Doc = doc
	p.consumeSemi()
	return decl
}

// finishVarDeclFrom builds a VarDecl whose introducing keyword has already
// been consumed. If first is non-nil, it is the already-parsed pattern of
// the first declarator (used by for-loop head parsing, which must inspect
// the first binding target before knowing whether it is a for-in/of head
// or a classic declaration list).
func (p *parser) finishVarDeclFrom(tok token.Token, tokPos token.Pos, first ast.Pattern) *ast.VarDecl {
	d := &ast.VarDecl{Tok: tok, TokPos: tokPos}
	target := first
	if target == nil {
		target = p.parsePattern()
	}
	for {
		var init ast.Expr
		if p.cur.tok == token.ASSIGN {
			p.advance()
			init = p.parseAssignExpr()
		}
		d.Decls = append(d.Decls, &ast.Declarator{Target: target, Init: init})
		if p.cur.tok != token.COMMA {
			break
		}
		p.advance()
		target = p.parsePattern()
	}
	last := d.Decls[len(d.Decls)-1]
	if last.Init != nil {
		_, d.End = last.Init.Span()
	} else {
		_, d.End = last.Target.Span()
	}
	return d
}

func (p *parser) parseFunctionDecl() *ast.FunctionDecl {
	doc := p.takeDoc()
	funcPos := p.expect(token.FUNCTION)
	name := &ast.Ident{Name: p.cur.lit, NamePos: p.cur.start}
	p.expect(token.IDENT)
	params := p.parseParamList()
	body := p.parseBlock()
	return &ast.FunctionDecl{FuncPos: funcPos, Name: name, Params: params, Body: body, Doc: doc}
}

func (p *parser) parseClassDecl() *ast.ClassDecl {
	doc := p.takeDoc()
	classPos := p.expect(token.CLASS)
	name := &ast.Ident{Name: p.cur.lit, NamePos: p.cur.start}
	p.expect(token.IDENT)

	var extends ast.Expr
	if p.cur.tok == token.EXTENDS {
		p.advance()
		extends = p.parseCallExpr()
	}

	p.expect(token.LBRACE)
	decl := &ast.ClassDecl{ClassPos: classPos, Name: name, Extends: extends, Doc: doc}
	for p.cur.tok != token.RBRACE && p.cur.tok != token.EOF {
		if p.cur.tok == token.SEMI {
			p.advance()
			continue
		}
		decl.Members = append(decl.Members, p.parseClassMember())
	}
	decl.End = p.expect(token.RBRACE)
	return decl
}

func (p *parser) parseClassMember() *ast.ClassMember {
	m := &ast.ClassMember{}
	if p.cur.tok == token.STATIC {
		// "static { ... }" static initialization block, or a static
		// member; only the former has a block immediately after "static".
		save := p.mark()
		p.advance()
		switch p.cur.tok {
		case token.LBRACE:
			body := p.parseBlock()
			m.Kind = ast.ClassStaticBlock
			m.Func = &ast.FunctionExpr{FuncPos: body.Lbrace, Body: body}
			return m
		case token.LPAREN:
			// "static" used as a plain method name, not a modifier.
			p.reset(save)
		default:
			m.Static = true
		}
	}

	switch p.cur.tok {
	case token.GET, token.SET:
		kindTok := p.cur.tok
		save := p.mark()
		p.advance()
		if p.cur.tok == token.LPAREN {
			// "get" / "set" used as a plain method name, not an accessor.
			p.reset(save)
		} else {
			if kindTok == token.GET {
				m.Kind = ast.ClassGetter
			} else {
				m.Kind = ast.ClassSetter
			}
			m.Key = p.parseMemberKey(m)
			params := p.parseParamList()
			body := p.parseBlock()
			m.Func = &ast.FunctionExpr{Params: params, Body: body}
			return m
		}
	}

	m.Key = p.parseMemberKey(m)

	if p.cur.tok == token.LPAREN {
		m.Kind = ast.ClassMethod
		params := p.parseParamList()
		body := p.parseBlock()
		m.Func = &ast.FunctionExpr{Params: params, Body: body}
		return m
	}

	m.Kind = ast.ClassField
	if p.cur.tok == token.ASSIGN {
		p.advance()
		m.Value = p.parseAssignExpr()
	}
	p.consumeSemi()
	return m
}

func (p *parser) parseMemberKey(m *ast.ClassMember) ast.Expr {
	if p.cur.tok == token.LBRACK {
		p.advance()
		key := p.parseAssignExpr()
		p.expect(token.RBRACK)
		m.Computed = true
		return key
	}
	return p.parsePropertyKey()
}

func (p *parser) parseIfStmt() *ast.IfStmt {
	ifPos := p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	then := p.parseStmt()
	var els ast.Stmt
	if p.cur.tok == token.ELSE {
		p.advance()
		els = p.parseStmt()
	}
	return &ast.IfStmt{IfPos: ifPos, Cond: cond, Then: then, Else: els}
}

func (p *parser) parseForStmt() ast.Stmt {
	forPos := p.expect(token.FOR)
	p.expect(token.LPAREN)

	if p.cur.tok == token.SEMI {
		p.advance()
		return p.finishClassicFor(forPos, nil)
	}

	if p.at(token.VAR, token.LET, token.CONST) {
		declTok := p.cur.tok
		tokPos := p.cur.start
		p.advance()
		target := p.parsePattern()
		if p.at(token.IN, token.OF) {
			return p.finishForInOf(forPos, declTok, target, nil)
		}
		decl := p.finishVarDeclFrom(declTok, tokPos, target)
		p.expect(token.SEMI)
		return p.finishClassicFor(forPos, decl)
	}

	left := p.parseAssignExprNoIn()
	if p.at(token.IN, token.OF) {
		return p.finishForInOf(forPos, token.ILLEGAL, nil, left)
	}

	init := left
	if p.cur.tok == token.COMMA {
		exprs := []ast.Expr{left}
		for p.cur.tok == token.COMMA {
			p.advance()
			exprs = append(exprs, p.parseAssignExprNoIn())
		}
		init = &ast.SequenceExpr{Exprs: exprs}
	}
	p.expect(token.SEMI)
	return p.finishClassicFor(forPos, &ast.ExprStmt{X: init})
}

func (p *parser) finishForInOf(forPos token.Pos, declTok token.Token, target ast.Pattern, leftX ast.Expr) *ast.ForInOfStmt {
	of := p.cur.tok == token.OF
	p.advance()
	var right ast.Expr
	if of {
		right = p.parseAssignExpr()
	} else {
		right = p.parseExpr()
	}
	p.expect(token.RPAREN)
	body := p.parseStmt()
	return &ast.ForInOfStmt{ForPos: forPos, Of: of, Decl: declTok, Target: target, LeftX: leftX, Right: right, Body: body}
}

func (p *parser) finishClassicFor(forPos token.Pos, init ast.Stmt) *ast.ForStmt {
	var cond ast.Expr
	if p.cur.tok != token.SEMI {
		cond = p.parseExpr()
	}
	p.expect(token.SEMI)
	var post ast.Stmt
	if p.cur.tok != token.RPAREN {
		post = &ast.ExprStmt{X: p.parseExpr()}
	}
	p.expect(token.RPAREN)
	body := p.parseStmt()
	return &ast.ForStmt{ForPos: forPos, Init: init, Cond: cond, Post: post, Body: body}
}

func (p *parser) parseWhileStmt() *ast.WhileStmt {
	whilePos := p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	body := p.parseStmt()
	return &ast.WhileStmt{WhilePos: whilePos, Cond: cond, Body: body}
}

func (p *parser) parseDoWhileStmt() *ast.DoWhileStmt {
	doPos := p.expect(token.DO)
	body := p.parseStmt()
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	p.consumeSemi()
	return &ast.DoWhileStmt{DoPos: doPos, Body: body, Cond: cond}
}

func (p *parser) parseWithStmt() *ast.WithStmt {
	withPos := p.expect(token.WITH)
	p.expect(token.LPAREN)
	obj := p.parseExpr()
	p.expect(token.RPAREN)
	body := p.parseStmt()
	return &ast.WithStmt{WithPos: withPos, Obj: obj, Body: body}
}

func (p *parser) parseTryStmt() *ast.TryStmt {
	tryPos := p.expect(token.TRY)
	block := p.parseBlock()
	t := &ast.TryStmt{TryPos: tryPos, Block: block}
	if p.cur.tok == token.CATCH {
		catchPos := p.cur.start
		p.advance()
		var param ast.Pattern
		if p.cur.tok == token.LPAREN {
			p.advance()
			param = p.parsePattern()
			p.expect(token.RPAREN)
		}
		body := p.parseBlock()
		t.Catch = &ast.CatchClause{CatchPos: catchPos, Param: param, Body: body}
	}
	if p.cur.tok == token.FINALLY {
		p.advance()
		t.Finally = p.parseBlock()
	}
	return t
}

func (p *parser) parseSwitchStmt() *ast.SwitchStmt {
	switchPos := p.expect(token.SWITCH)
	p.expect(token.LPAREN)
	tag := p.parseExpr()
	p.expect(token.RPAREN)
	lbrace := p.expect(token.LBRACE)
	s := &ast.SwitchStmt{SwitchPos: switchPos, Tag: tag, Lbrace: lbrace}
	for p.cur.tok != token.RBRACE && p.cur.tok != token.EOF {
		s.Cases = append(s.Cases, p.parseCaseClause())
	}
	s.Rbrace = p.expect(token.RBRACE)
	return s
}

func (p *parser) parseCaseClause() *ast.CaseClause {
	c := &ast.CaseClause{CasePos: p.cur.start}
	if p.cur.tok == token.CASE {
		p.advance()
		c.Test = p.parseExpr()
	} else {
		p.expect(token.DEFAULT)
	}
	p.expect(token.COLON)
	for !p.at(token.CASE, token.DEFAULT, token.RBRACE, token.EOF) {
		s := p.parseStmtSynchronized()
		if s != nil {
			c.Body = append(c.Body, s)
		}
	}
	return c
}

func (p *parser) parseReturnStmt() *ast.ReturnStmt {
	pos := p.expect(token.RETURN)
	r := &ast.ReturnStmt{ReturnPos: pos}
	if !p.at(token.SEMI, token.RBRACE, token.EOF) {
		r.X = p.parseExpr()
	}
	p.consumeSemi()
	return r
}

func (p *parser) parseThrowStmt() *ast.ThrowStmt {
	pos := p.expect(token.THROW)
	x := p.parseExpr()
	p.consumeSemi()
	return &ast.ThrowStmt{ThrowPos: pos, X: x}
}

func (p *parser) parseBreakStmt() *ast.BreakStmt {
	pos := p.expect(token.BREAK)
	b := &ast.BreakStmt{BreakPos: pos}
	if p.cur.tok == token.IDENT {
		b.Label = &ast.Ident{Name: p.cur.lit, NamePos: p.cur.start}
		p.advance()
	}
	p.consumeSemi()
	return b
}

func (p *parser) parseContinueStmt() *ast.ContinueStmt {
	pos := p.expect(token.CONTINUE)
	c := &ast.ContinueStmt{ContinuePos: pos}
	if p.cur.tok == token.IDENT {
		c.Label = &ast.Ident{Name: p.cur.lit, NamePos: p.cur.start}
		p.advance()
	}
	p.consumeSemi()
	return c
}

func (p *parser) parseImportDecl() *ast.ImportDecl {
	importPos := p.expect(token.IMPORT)
	d := &ast.ImportDecl{ImportPos: importPos}

	if p.cur.tok == token.STRING {
		d.Source = unquoteSimple(p.cur.lit)
		p.advance()
		p.consumeSemi()
		d.End = p.cur.start
		return d
	}

	for {
		switch {
		case p.cur.tok == token.STAR:
			p.advance()
			p.expect(token.AS)
			name := p.cur.lit
			pos := p.cur.start
			p.expect(token.IDENT)
			d.Specs = append(d.Specs, &ast.ImportSpecifier{Namespace: true, Local: &ast.Ident{Name: name, NamePos: pos}})
		case p.cur.tok == token.LBRACE:
			p.advance()
			for p.cur.tok != token.RBRACE {
				imported := &ast.Ident{Name: p.cur.lit, NamePos: p.cur.start}
				p.expect(token.IDENT)
				local := imported
				if p.cur.tok == token.AS {
					p.advance()
					local = &ast.Ident{Name: p.cur.lit, NamePos: p.cur.start}
					p.expect(token.IDENT)
				}
				d.Specs = append(d.Specs, &ast.ImportSpecifier{Imported: imported, Local: local})
				if p.cur.tok == token.COMMA {
					p.advance()
				} else {
					break
				}
			}
			p.expect(token.RBRACE)
		default:
			// Default import binding.
			name := p.cur.lit
			pos := p.cur.start
			p.expect(token.IDENT)
			d.Specs = append(d.Specs, &ast.ImportSpecifier{Default: true, Local: &ast.Ident{Name: name, NamePos: pos}})
		}

		if p.cur.tok == token.COMMA {
			p.advance()
			continue
		}
		break
	}

	p.expect(token.FROM)
	d.Source = unquoteSimple(p.cur.lit)
	p.expect(token.STRING)
	p.consumeSemi()
	d.End = p.cur.start
	return d
}

func (p *parser) parseExportDecl() *ast.ExportDecl {
	exportPos := p.expect(token.EXPORT)
	d := &ast.ExportDecl{ExportPos: exportPos}

	if p.cur.tok == token.DEFAULT {
		p.advance()
		d.Default = true
		d.Decl = p.parseStmt()
		_, d.End = d.Decl.Span()
		return d
	}

	if p.cur.tok == token.LBRACE {
		p.advance()
		for p.cur.tok != token.RBRACE && p.cur.tok != token.EOF {
			p.advance()
		}
		p.expect(token.RBRACE)
		if p.cur.tok == token.FROM {
			p.advance()
			p.expect(token.STRING)
		}
		p.consumeSemi()
		d.End = p.cur.start
		return d
	}

	d.Decl = p.parseStmt()
	_, d.End = d.Decl.Span()
	return d
}
