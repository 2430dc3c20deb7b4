package ast

import "github.com/ecmabind/varcheck/lang/token"

type (
	// ArrayPattern is a destructuring array pattern: "[a, , b]".
	// Elements may contain nil entries for elisions ("[a, , b]").
	ArrayPattern struct {
		Lbrack   token.Pos
		Elements []Pattern
		Rbrack   token.Pos
	}

	// ObjectPattern is a destructuring object pattern: "{a, b: c}".
	ObjectPattern struct {
		Lbrace token.Pos
		Props  []*PatternProp
		Rest   *RestElement // optional trailing "...rest"
		Rbrace token.Pos
	}

	// PatternProp is one "key: value" (or shorthand "key") entry of an
	// ObjectPattern.
	PatternProp struct {
		Key       Expr // *Ident, or computed key expression
		Value     Pattern
		Shorthand bool
		Computed  bool
	}

	// AssignPattern gives a default value to a pattern: "a = 1", used for
	// destructuring defaults and default parameter values. The default
	// expression forms the mini-scope described in spec.md §4.3.
	AssignPattern struct {
		Target  Pattern
		Default Expr
	}

	// RestElement is "...name" in a pattern position.
	RestElement struct {
		Ellipsis token.Pos
		Arg      Pattern
	}
)

func (p *ArrayPattern) Span() (token.Pos, token.Pos) { return p.Lbrack, p.Rbrack + 1 }
func (p *ArrayPattern) Walk(v Visitor) {
	for _, e := range p.Elements {
		if e != nil {
			Walk(v, e)
		}
	}
}
func (*ArrayPattern) patternNode() {}

func (p *ObjectPattern) Span() (token.Pos, token.Pos) { return p.Lbrace, p.Rbrace + 1 }
func (p *ObjectPattern) Walk(v Visitor) {
	for _, pr := range p.Props {
		Walk(v, pr)
	}
	if p.Rest != nil {
		Walk(v, p.Rest)
	}
}
func (*ObjectPattern) patternNode() {}

func (p *PatternProp) Span() (token.Pos, token.Pos) {
	s, _ := p.Key.Span()
	_, e := p.Value.Span()
	return s, e
}
func (p *PatternProp) Walk(v Visitor) {
	if p.Computed {
		Walk(v, p.Key)
	}
	Walk(v, p.Value)
}
func (*PatternProp) patternNode() {}

func (p *AssignPattern) Span() (token.Pos, token.Pos) {
	s, _ := p.Target.Span()
	_, e := p.Default.Span()
	return s, e
}
func (p *AssignPattern) Walk(v Visitor) {
	Walk(v, p.Target)
	Walk(v, p.Default)
}
func (*AssignPattern) patternNode() {}

func (p *RestElement) Span() (token.Pos, token.Pos) {
	_, e := p.Arg.Span()
	return p.Ellipsis, e
}
func (p *RestElement) Walk(v Visitor) { Walk(v, p.Arg) }
func (*RestElement) patternNode()     {}

// BoundNames returns, in source order, the identifiers bound by pat
// (recursing through arrays/objects/defaults/rest). Used by scopebuild to
// enumerate the names a single declarator or parameter introduces.
func BoundNames(pat Pattern) []*Ident {
	var out []*Ident
	var walk func(Pattern)
	walk = func(p Pattern) {
		switch p := p.(type) {
		case nil:
		case *Ident:
			out = append(out, p)
		case *ArrayPattern:
			for _, e := range p.Elements {
				if e != nil {
					walk(e)
				}
			}
		case *ObjectPattern:
			for _, pr := range p.Props {
				walk(pr.Value)
			}
			if p.Rest != nil {
				walk(p.Rest.Arg)
			}
		case *AssignPattern:
			walk(p.Target)
		case *RestElement:
			walk(p.Arg)
		}
	}
	walk(pat)
	return out
}

// IsSimpleIdent reports whether pat is a plain identifier binding with no
// destructuring or default, used by R5 (spec.md §9 open question: "var
// {x} = {}" with x unused is preserved as currently-silent).
func IsSimpleIdent(pat Pattern) bool {
	_, ok := pat.(*Ident)
	return ok
}
