package ast

import "github.com/ecmabind/varcheck/lang/token"

type (
	// Literal is a number, string, boolean, null or template literal.
	Literal struct {
		Kind  token.Token // NUMBER, STRING, TEMPLATE, TRUE, FALSE, NULL
		Value string
		Pos   token.Pos
	}

	// AssignExpr is "Left Op Right", e.g. "x = 1", "x += 1". Left may be an
	// *Ident, *MemberExpr, or a destructuring-shaped *ArrayExpr/*ObjectExpr
	// assigning into pre-existing bindings (see Pattern's doc comment).
	AssignExpr struct {
		Left  Expr
		Op    token.Token
		OpPos token.Pos
		Right Expr
	}

	// UpdateExpr is "++x", "x++", "--x" or "x--".
	UpdateExpr struct {
		Op      token.Token
		OpPos   token.Pos
		X       Expr
		Prefix  bool
		EndPos  token.Pos
	}

	// BinaryExpr is "Left Op Right" for arithmetic/relational/bitwise ops.
	BinaryExpr struct {
		Left  Expr
		Op    token.Token
		OpPos token.Pos
		Right Expr
	}

	// LogicalExpr is "Left && Right" or "Left || Right". The scanner has no
	// "??" operator.
	// Kept distinct from BinaryExpr because short-circuiting matters to
	// nothing in this pass, but the grammar separates them.
	LogicalExpr struct {
		Left  Expr
		Op    token.Token
		OpPos token.Pos
		Right Expr
	}

	// UnaryExpr is "Op X" (e.g. "typeof x", "!x", "-x", "delete x.y").
	UnaryExpr struct {
		OpPos token.Pos
		Op    token.Token
		X     Expr
	}

	// ConditionalExpr is "Cond ? Then : Else".
	ConditionalExpr struct {
		Cond Expr
		Then Expr
		Else Expr
	}

	// CallExpr is "Callee(Args...)"; NewExpr reuses it with New set true for
	// "new Callee(Args...)".
	CallExpr struct {
		Callee Expr
		Lparen token.Pos
		Args   []Expr
		Rparen token.Pos
		New    bool
	}

	// MemberExpr is "Obj.Prop" or "Obj[Prop]" (Computed true for the latter).
	// Optional would mark "Obj?.Prop"; the parser never sets it, since the
	// scanner has no "?." token.
	MemberExpr struct {
		Obj      Expr
		Prop     Expr
		Computed bool
		Optional bool
		End      token.Pos
	}

	// FunctionExpr is a function expression, "function [name](...) {...}".
	FunctionExpr struct {
		FuncPos token.Pos
		Name    *Ident // nil for anonymous
		Params  []*Param
		Body    *BlockStmt
	}

	// ArrowFunctionExpr is "(...) => Body" or "(...) => expr". Body holds a
	// *BlockStmt for a block body; for a concise body Body is nil and
	// ExprBody holds the expression. Arrow functions never introduce their own "this"
	// or "arguments" scope in the runtime sense, but for this pass they are
	// an ordinary function-kind Scope (spec.md glossary, "function scope").
	ArrowFunctionExpr struct {
		StartPos  token.Pos
		Params    []*Param
		Body      *BlockStmt
		ExprBody  Expr // set instead of Body for a concise body
	}

	// ArrayExpr is "[Elements...]"; nil entries are elisions.
	ArrayExpr struct {
		Lbrack   token.Pos
		Elements []Expr
		Rbrack   token.Pos
	}

	// Property is one "key: value" (or shorthand/method) entry of an
	// ObjectExpr.
	Property struct {
		Key       Expr
		Value     Expr
		Shorthand bool
		Computed  bool
	}

	// ObjectExpr is "{Props...}".
	ObjectExpr struct {
		Lbrace token.Pos
		Props  []*Property
		Rbrace token.Pos
	}

	// SpreadExpr is "...X" used in a call/array/object literal position.
	SpreadExpr struct {
		Ellipsis token.Pos
		X        Expr
	}

	// SequenceExpr is "X, Y, Z".
	SequenceExpr struct {
		Exprs []Expr
	}

	// ParenExpr wraps a parenthesized expression purely to preserve its
	// source span; it carries no semantic weight of its own.
	ParenExpr struct {
		Lparen token.Pos
		X      Expr
		Rparen token.Pos
	}

	// TaggedTemplateExpr is "Tag`template`".
	TaggedTemplateExpr struct {
		Tag      Expr
		Template *Literal
	}

	// ThisExpr is the "this" keyword. It is never resolved against a
	// binding: the analyzer's reference model only tracks declared names
	// (spec.md glossary, "Reference"), so this and SuperExpr are kept as
	// their own node kinds rather than Idents that would otherwise read as
	// references to an undeclared "this" variable.
	ThisExpr struct {
		Pos token.Pos
	}

	// SuperExpr is the "super" keyword, used as "super.prop" or "super(...)".
	SuperExpr struct {
		Pos token.Pos
	}
)

func (*Literal) exprNode()            {}
func (*AssignExpr) exprNode()         {}
func (*UpdateExpr) exprNode()         {}
func (*BinaryExpr) exprNode()         {}
func (*LogicalExpr) exprNode()        {}
func (*UnaryExpr) exprNode()          {}
func (*ConditionalExpr) exprNode()    {}
func (*CallExpr) exprNode()           {}
func (*MemberExpr) exprNode()         {}
func (*FunctionExpr) exprNode()       {}
func (*ArrowFunctionExpr) exprNode()  {}
func (*ArrayExpr) exprNode()          {}
func (*ObjectExpr) exprNode()         {}
func (*SpreadExpr) exprNode()         {}
func (*SequenceExpr) exprNode()       {}
func (*ParenExpr) exprNode()          {}
func (*TaggedTemplateExpr) exprNode() {}
func (*ThisExpr) exprNode()           {}
func (*SuperExpr) exprNode()          {}

// ArrayExpr and ObjectExpr double as destructuring-assignment targets (see
// Pattern's doc comment), but they are not Patterns: only declarator/param/
// catch/for-in-of binding positions use the dedicated Pattern grammar.

func (l *Literal) Span() (token.Pos, token.Pos) { return l.Pos, l.Pos + token.Pos(len(l.Value)) }
func (l *Literal) Walk(Visitor)                 {}

func (e *AssignExpr) Span() (token.Pos, token.Pos) {
	s, _ := e.Left.Span()
	_, en := e.Right.Span()
	return s, en
}
func (e *AssignExpr) Walk(v Visitor) {
	Walk(v, e.Left)
	Walk(v, e.Right)
}

func (e *UpdateExpr) Span() (token.Pos, token.Pos) {
	s, en := e.X.Span()
	if e.Prefix {
		return e.OpPos, en
	}
	return s, e.EndPos
}
func (e *UpdateExpr) Walk(v Visitor) { Walk(v, e.X) }

func (e *BinaryExpr) Span() (token.Pos, token.Pos) {
	s, _ := e.Left.Span()
	_, en := e.Right.Span()
	return s, en
}
func (e *BinaryExpr) Walk(v Visitor) {
	Walk(v, e.Left)
	Walk(v, e.Right)
}

func (e *LogicalExpr) Span() (token.Pos, token.Pos) {
	s, _ := e.Left.Span()
	_, en := e.Right.Span()
	return s, en
}
func (e *LogicalExpr) Walk(v Visitor) {
	Walk(v, e.Left)
	Walk(v, e.Right)
}

func (e *UnaryExpr) Span() (token.Pos, token.Pos) {
	_, en := e.X.Span()
	return e.OpPos, en
}
func (e *UnaryExpr) Walk(v Visitor) { Walk(v, e.X) }

func (e *ConditionalExpr) Span() (token.Pos, token.Pos) {
	s, _ := e.Cond.Span()
	_, en := e.Else.Span()
	return s, en
}
func (e *ConditionalExpr) Walk(v Visitor) {
	Walk(v, e.Cond)
	Walk(v, e.Then)
	Walk(v, e.Else)
}

func (e *CallExpr) Span() (token.Pos, token.Pos) {
	s, _ := e.Callee.Span()
	return s, e.Rparen + 1
}
func (e *CallExpr) Walk(v Visitor) {
	Walk(v, e.Callee)
	for _, a := range e.Args {
		Walk(v, a)
	}
}

func (e *MemberExpr) Span() (token.Pos, token.Pos) {
	s, _ := e.Obj.Span()
	return s, e.End
}
func (e *MemberExpr) Walk(v Visitor) {
	Walk(v, e.Obj)
	if e.Computed {
		Walk(v, e.Prop)
	}
}

func (f *FunctionExpr) Span() (token.Pos, token.Pos) {
	_, en := f.Body.Span()
	return f.FuncPos, en
}
func (f *FunctionExpr) Walk(v Visitor) {
	if f.Name != nil {
		Walk(v, f.Name)
	}
	for _, p := range f.Params {
		Walk(v, p.Target)
	}
	Walk(v, f.Body)
}

func (f *ArrowFunctionExpr) Span() (token.Pos, token.Pos) {
	if f.Body != nil {
		_, en := f.Body.Span()
		return f.StartPos, en
	}
	_, en := f.ExprBody.Span()
	return f.StartPos, en
}
func (f *ArrowFunctionExpr) Walk(v Visitor) {
	for _, p := range f.Params {
		Walk(v, p.Target)
	}
	if f.Body != nil {
		Walk(v, f.Body)
	} else {
		Walk(v, f.ExprBody)
	}
}

func (e *ArrayExpr) Span() (token.Pos, token.Pos) { return e.Lbrack, e.Rbrack + 1 }
func (e *ArrayExpr) Walk(v Visitor) {
	for _, el := range e.Elements {
		if el != nil {
			Walk(v, el)
		}
	}
}

func (e *ObjectExpr) Span() (token.Pos, token.Pos) { return e.Lbrace, e.Rbrace + 1 }
func (e *ObjectExpr) Walk(v Visitor) {
	for _, p := range e.Props {
		if p.Computed {
			Walk(v, p.Key)
		}
		Walk(v, p.Value)
	}
}

func (e *SpreadExpr) Span() (token.Pos, token.Pos) {
	_, en := e.X.Span()
	return e.Ellipsis, en
}
func (e *SpreadExpr) Walk(v Visitor) { Walk(v, e.X) }

func (e *SequenceExpr) Span() (token.Pos, token.Pos) {
	s, _ := e.Exprs[0].Span()
	_, en := e.Exprs[len(e.Exprs)-1].Span()
	return s, en
}
func (e *SequenceExpr) Walk(v Visitor) {
	for _, x := range e.Exprs {
		Walk(v, x)
	}
}

func (e *ParenExpr) Span() (token.Pos, token.Pos) { return e.Lparen, e.Rparen + 1 }
func (e *ParenExpr) Walk(v Visitor)               { Walk(v, e.X) }

func (e *TaggedTemplateExpr) Span() (token.Pos, token.Pos) {
	s, _ := e.Tag.Span()
	_, en := e.Template.Span()
	return s, en
}
func (e *TaggedTemplateExpr) Walk(v Visitor) {
	Walk(v, e.Tag)
	Walk(v, e.Template)
}

func (e *ThisExpr) Span() (token.Pos, token.Pos)  { return e.Pos, e.Pos + 4 }
func (e *ThisExpr) Walk(Visitor)                  {}
func (e *SuperExpr) Span() (token.Pos, token.Pos) { return e.Pos, e.Pos + 5 }
func (e *SuperExpr) Walk(Visitor)                 {}
