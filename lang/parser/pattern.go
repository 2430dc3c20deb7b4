package parser

import (
	"github.com/ecmabind/varcheck/lang/ast"
	"github.com/ecmabind/varcheck/lang/token"
)

// parseParamList parses a "(param, param, ...)" list, where each param may
// be a destructuring pattern, carry a default value, or (only as the final
// entry) be a rest parameter.
func (p *parser) parseParamList() []*ast.Param {
	p.expect(token.LPAREN)
	var params []*ast.Param
	for p.cur.tok != token.RPAREN {
		if p.cur.tok == token.ELLIPSIS {
			start := p.cur.start
			p.advance()
			params = append(params, &ast.Param{Target: &ast.RestElement{Ellipsis: start, Arg: p.parsePattern()}})
		} else {
			target := p.parsePattern()
			if p.cur.tok == token.ASSIGN {
				p.advance()
				target = &ast.AssignPattern{Target: target, Default: p.parseAssignExpr()}
			}
			params = append(params, &ast.Param{Target: target})
		}
		if p.cur.tok != token.COMMA {
			break
		}
		p.advance()
	}
	p.expect(token.RPAREN)
	return params
}

// parsePattern parses a single binding target: an identifier, or an
// array/object destructuring pattern. Defaults and rest are handled by the
// caller, since their legality depends on position (declarator vs param vs
// pattern element).
func (p *parser) parsePattern() ast.Pattern {
	switch p.cur.tok {
	case token.LBRACK:
		return p.parseArrayPattern()
	case token.LBRACE:
		return p.parseObjectPattern()
	default:
		name := p.cur.lit
		pos := p.cur.start
		p.expect(token.IDENT)
		return &ast.Ident{Name: name, NamePos: pos}
	}
}

// parsePatternWithDefault parses a pattern optionally followed by "= expr",
// wrapping it in an *ast.AssignPattern when present.
func (p *parser) parsePatternWithDefault() ast.Pattern {
	target := p.parsePattern()
	if p.cur.tok == token.ASSIGN {
		p.advance()
		return &ast.AssignPattern{Target: target, Default: p.parseAssignExpr()}
	}
	return target
}

func (p *parser) parseArrayPattern() *ast.ArrayPattern {
	lbrack := p.expect(token.LBRACK)
	pat := &ast.ArrayPattern{Lbrack: lbrack}
	for p.cur.tok != token.RBRACK {
		if p.cur.tok == token.COMMA {
			pat.Elements = append(pat.Elements, nil)
			p.advance()
			continue
		}
		if p.cur.tok == token.ELLIPSIS {
			start := p.cur.start
			p.advance()
			pat.Elements = append(pat.Elements, &ast.RestElement{Ellipsis: start, Arg: p.parsePattern()})
		} else {
			pat.Elements = append(pat.Elements, p.parsePatternWithDefault())
		}
		if p.cur.tok == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	pat.Rbrack = p.expect(token.RBRACK)
	return pat
}

func (p *parser) parseObjectPattern() *ast.ObjectPattern {
	lbrace := p.expect(token.LBRACE)
	pat := &ast.ObjectPattern{Lbrace: lbrace}
	for p.cur.tok != token.RBRACE {
		if p.cur.tok == token.ELLIPSIS {
			start := p.cur.start
			p.advance()
			pat.Rest = &ast.RestElement{Ellipsis: start, Arg: p.parsePattern()}
			break
		}

		prop := &ast.PatternProp{}
		if p.cur.tok == token.LBRACK {
			p.advance()
			prop.Key = p.parseAssignExpr()
			p.expect(token.RBRACK)
			prop.Computed = true
		} else {
			prop.Key = p.parsePropertyKey()
		}

		if p.cur.tok == token.COLON {
			p.advance()
			prop.Value = p.parsePatternWithDefault()
		} else {
			prop.Shorthand = true
			key, ok := prop.Key.(*ast.Ident)
			if !ok {
				p.error(p.cur.start, "shorthand pattern property requires an identifier key")
				panic(errPanicMode)
			}
			var target ast.Pattern = &ast.Ident{Name: key.Name, NamePos: key.NamePos}
			if p.cur.tok == token.ASSIGN {
				p.advance()
				target = &ast.AssignPattern{Target: target, Default: p.parseAssignExpr()}
			}
			prop.Value = target
		}
		pat.Props = append(pat.Props, prop)

		if p.cur.tok == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	pat.Rbrace = p.expect(token.RBRACE)
	return pat
}
