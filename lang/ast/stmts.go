package ast

import "github.com/ecmabind/varcheck/lang/token"

type (
	// Declarator is one "name = init" (or destructuring) entry of a
	// var/let/const declaration.
	Declarator struct {
		Target Pattern
		Init   Expr // nil if uninitialized
	}

	// VarDecl is a var/let/const declaration statement.
	VarDecl struct {
		Tok     token.Token // VAR, LET or CONST
		TokPos  token.Pos
		Decls   []*Declarator
		End     token.Pos
		Doc     *JSDoc
	}

	// Param is one formal parameter.
	Param struct {
		Target Pattern // may be *AssignPattern (default) or *RestElement
	}

	// FunctionDecl is "function name(...) { ... }". The parser always sets
	// Name; an anonymous "export default function() {}" is a parse error.
	FunctionDecl struct {
		FuncPos token.Pos
		Name    *Ident
		Params  []*Param
		Body    *BlockStmt
		Doc     *JSDoc
	}

	// ClassMember is one method, getter/setter or field of a class body.
	// Method/getter/setter function bodies are real function scopes and are
	// walked like any other FunctionExpr, so var/let/const use inside a
	// method is checked the same as anywhere else.
	ClassMember struct {
		Key      Expr
		Computed bool
		Static   bool
		Kind     ClassMemberKind
		Func     *FunctionExpr // method/getter/setter
		Value    Expr          // field initializer, nil if none
	}

	// ClassDecl is "class Name [extends Super] { ... }".
	ClassDecl struct {
		ClassPos token.Pos
		Name     *Ident
		Extends  Expr
		Members  []*ClassMember
		End      token.Pos
		Doc      *JSDoc
	}
)

// ClassMemberKind distinguishes the shape of a ClassMember.
type ClassMemberKind int

const (
	ClassMethod ClassMemberKind = iota
	ClassGetter
	ClassSetter
	ClassField
	ClassStaticBlock
)

type (

	// BlockStmt is "{ stmts... }".
	BlockStmt struct {
		Lbrace token.Pos
		Stmts  []Stmt
		Rbrace token.Pos
	}

	// ExprStmt wraps an expression used as a statement.
	ExprStmt struct {
		X Expr
	}

	// IfStmt is "if (Cond) Then [else Else]".
	IfStmt struct {
		IfPos token.Pos
		Cond  Expr
		Then  Stmt
		Else  Stmt
	}

	// ForStmt is the classic three-part "for (Init; Cond; Post) Body".
	ForStmt struct {
		ForPos token.Pos
		Init   Stmt // *VarDecl or *ExprStmt or nil
		Cond   Expr
		Post   Stmt
		Body   Stmt
	}

	// ForInOfStmt is "for (Left in|of Right) Body".
	ForInOfStmt struct {
		ForPos token.Pos
		Of     bool
		Decl   token.Token // VAR/LET/CONST, or ILLEGAL if Left is an existing binding
		Target Pattern     // binding target when Decl != ILLEGAL
		LeftX  Expr        // assignment target when Decl == ILLEGAL
		Right  Expr
		Body   Stmt
	}

	// WhileStmt is "while (Cond) Body".
	WhileStmt struct {
		WhilePos token.Pos
		Cond     Expr
		Body     Stmt
	}

	// DoWhileStmt is "do Body while (Cond);".
	DoWhileStmt struct {
		DoPos token.Pos
		Body  Stmt
		Cond  Expr
	}

	// WithStmt is "with (Obj) Body". Modeled only so R1
	// (DECLARATION_NOT_DIRECTLY_IN_BLOCK) can recognize it as a non-block
	// statement parent; its dynamic-scope runtime semantics are a Non-goal.
	WithStmt struct {
		WithPos token.Pos
		Obj     Expr
		Body    Stmt
	}

	// CatchClause is the "catch (Param) Body" part of a TryStmt. Param is
	// nil for an optional-catch-binding ("catch { ... }").
	CatchClause struct {
		CatchPos token.Pos
		Param    Pattern
		Body     *BlockStmt
	}

	// TryStmt is "try Block [catch Catch] [finally Finally]".
	TryStmt struct {
		TryPos  token.Pos
		Block   *BlockStmt
		Catch   *CatchClause
		Finally *BlockStmt
	}

	// LabeledStmt is "label: Body".
	LabeledStmt struct {
		Label *Ident
		Colon token.Pos
		Body  Stmt
	}

	// ReturnStmt is "return [X];".
	ReturnStmt struct {
		ReturnPos token.Pos
		X         Expr
	}

	// ThrowStmt is "throw X;".
	ThrowStmt struct {
		ThrowPos token.Pos
		X        Expr
	}

	// BreakStmt is "break [Label];".
	BreakStmt struct {
		BreakPos token.Pos
		Label    *Ident
	}

	// ContinueStmt is "continue [Label];".
	ContinueStmt struct {
		ContinuePos token.Pos
		Label       *Ident
	}

	// SwitchStmt is "switch (Tag) { Cases... }". The whole case list shares
	// a single lexical block, per ES6 semantics.
	SwitchStmt struct {
		SwitchPos token.Pos
		Tag       Expr
		Lbrace    token.Pos
		Cases     []*CaseClause
		Rbrace    token.Pos
	}

	// CaseClause is "case Test:" or "default:" followed by statements.
	CaseClause struct {
		CasePos token.Pos
		Test    Expr // nil for "default"
		Body    []Stmt
	}

	// ImportSpecifier is one imported binding: "{ Imported as Local }",
	// "Local" (default) or "* as Local" (namespace).
	ImportSpecifier struct {
		Imported  *Ident // nil for default/namespace imports
		Local     *Ident
		Default   bool
		Namespace bool
	}

	// ImportDecl is "import ... from 'source';".
	ImportDecl struct {
		ImportPos token.Pos
		Specs     []*ImportSpecifier
		Source    string
		End       token.Pos
	}

	// ExportDecl is "export [default] Decl;" or "export { ... };". Decl is
	// nil for a bare re-export list.
	ExportDecl struct {
		ExportPos token.Pos
		Default   bool
		Decl      Stmt
		End       token.Pos
	}
)

func (*VarDecl) stmtNode()      {}
func (*FunctionDecl) stmtNode() {}
func (*ClassDecl) stmtNode()    {}
func (*BlockStmt) stmtNode()    {}
func (*ExprStmt) stmtNode()     {}
func (*IfStmt) stmtNode()       {}
func (*ForStmt) stmtNode()      {}
func (*ForInOfStmt) stmtNode()  {}
func (*WhileStmt) stmtNode()    {}
func (*DoWhileStmt) stmtNode()  {}
func (*WithStmt) stmtNode()     {}
func (*TryStmt) stmtNode()      {}
func (*LabeledStmt) stmtNode()  {}
func (*ReturnStmt) stmtNode()   {}
func (*ThrowStmt) stmtNode()    {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*SwitchStmt) stmtNode()   {}
func (*ImportDecl) stmtNode()   {}
func (*ExportDecl) stmtNode()   {}

func (d *VarDecl) Span() (token.Pos, token.Pos) { return d.TokPos, d.End }
func (d *VarDecl) Walk(v Visitor) {
	for _, decl := range d.Decls {
		Walk(v, decl.Target)
		if decl.Init != nil {
			Walk(v, decl.Init)
		}
	}
}

func (f *FunctionDecl) Span() (token.Pos, token.Pos) {
	_, e := f.Body.Span()
	return f.FuncPos, e
}
func (f *FunctionDecl) Walk(v Visitor) {
	if f.Name != nil {
		Walk(v, f.Name)
	}
	for _, p := range f.Params {
		Walk(v, p.Target)
	}
	Walk(v, f.Body)
}

func (c *ClassDecl) Span() (token.Pos, token.Pos) { return c.ClassPos, c.End }
func (c *ClassDecl) Walk(v Visitor) {
	Walk(v, c.Name)
	if c.Extends != nil {
		Walk(v, c.Extends)
	}
	for _, m := range c.Members {
		Walk(v, m)
	}
}

func (m *ClassMember) Span() (token.Pos, token.Pos) {
	if m.Func != nil {
		return m.Func.Span()
	}
	s, _ := m.Key.Span()
	if m.Value != nil {
		_, e := m.Value.Span()
		return s, e
	}
	_, e := m.Key.Span()
	return s, e
}
func (m *ClassMember) Walk(v Visitor) {
	if m.Computed {
		Walk(v, m.Key)
	}
	if m.Func != nil {
		Walk(v, m.Func)
	}
	if m.Value != nil {
		Walk(v, m.Value)
	}
}

func (b *BlockStmt) Span() (token.Pos, token.Pos) { return b.Lbrace, b.Rbrace + 1 }
func (b *BlockStmt) Walk(v Visitor) {
	for _, s := range b.Stmts {
		Walk(v, s)
	}
}

func (s *ExprStmt) Span() (token.Pos, token.Pos) { return s.X.Span() }
func (s *ExprStmt) Walk(v Visitor)               { Walk(v, s.X) }

func (s *IfStmt) Span() (token.Pos, token.Pos) {
	if s.Else != nil {
		_, e := s.Else.Span()
		return s.IfPos, e
	}
	_, e := s.Then.Span()
	return s.IfPos, e
}
func (s *IfStmt) Walk(v Visitor) {
	Walk(v, s.Cond)
	Walk(v, s.Then)
	if s.Else != nil {
		Walk(v, s.Else)
	}
}

func (s *ForStmt) Span() (token.Pos, token.Pos) {
	_, e := s.Body.Span()
	return s.ForPos, e
}
func (s *ForStmt) Walk(v Visitor) {
	if s.Init != nil {
		Walk(v, s.Init)
	}
	if s.Cond != nil {
		Walk(v, s.Cond)
	}
	if s.Post != nil {
		Walk(v, s.Post)
	}
	Walk(v, s.Body)
}

func (s *ForInOfStmt) Span() (token.Pos, token.Pos) {
	_, e := s.Body.Span()
	return s.ForPos, e
}
func (s *ForInOfStmt) Walk(v Visitor) {
	if s.Target != nil {
		Walk(v, s.Target)
	} else {
		Walk(v, s.LeftX)
	}
	Walk(v, s.Right)
	Walk(v, s.Body)
}

func (s *WhileStmt) Span() (token.Pos, token.Pos) {
	_, e := s.Body.Span()
	return s.WhilePos, e
}
func (s *WhileStmt) Walk(v Visitor) {
	Walk(v, s.Cond)
	Walk(v, s.Body)
}

func (s *DoWhileStmt) Span() (token.Pos, token.Pos) {
	_, e := s.Cond.Span()
	return s.DoPos, e
}
func (s *DoWhileStmt) Walk(v Visitor) {
	Walk(v, s.Body)
	Walk(v, s.Cond)
}

func (s *WithStmt) Span() (token.Pos, token.Pos) {
	_, e := s.Body.Span()
	return s.WithPos, e
}
func (s *WithStmt) Walk(v Visitor) {
	Walk(v, s.Obj)
	Walk(v, s.Body)
}

func (c *CatchClause) Span() (token.Pos, token.Pos) {
	_, e := c.Body.Span()
	return c.CatchPos, e
}
func (c *CatchClause) Walk(v Visitor) {
	if c.Param != nil {
		Walk(v, c.Param)
	}
	Walk(v, c.Body)
}

func (s *TryStmt) Span() (token.Pos, token.Pos) {
	end, _ := s.Block.Span()
	switch {
	case s.Finally != nil:
		_, end = s.Finally.Span()
	case s.Catch != nil:
		_, end = s.Catch.Span()
	default:
		_, end = s.Block.Span()
	}
	return s.TryPos, end
}
func (s *TryStmt) Walk(v Visitor) {
	Walk(v, s.Block)
	if s.Catch != nil {
		Walk(v, s.Catch)
	}
	if s.Finally != nil {
		Walk(v, s.Finally)
	}
}

func (s *LabeledStmt) Span() (token.Pos, token.Pos) {
	_, e := s.Body.Span()
	start, _ := s.Label.Span()
	return start, e
}
func (s *LabeledStmt) Walk(v Visitor) {
	Walk(v, s.Label)
	Walk(v, s.Body)
}

func (s *ReturnStmt) Span() (token.Pos, token.Pos) {
	if s.X != nil {
		_, e := s.X.Span()
		return s.ReturnPos, e
	}
	return s.ReturnPos, s.ReturnPos
}
func (s *ReturnStmt) Walk(v Visitor) {
	if s.X != nil {
		Walk(v, s.X)
	}
}

func (s *ThrowStmt) Span() (token.Pos, token.Pos) {
	_, e := s.X.Span()
	return s.ThrowPos, e
}
func (s *ThrowStmt) Walk(v Visitor) { Walk(v, s.X) }

func (s *BreakStmt) Span() (token.Pos, token.Pos) { return s.BreakPos, s.BreakPos }
func (s *BreakStmt) Walk(v Visitor) {
	if s.Label != nil {
		Walk(v, s.Label)
	}
}

func (s *ContinueStmt) Span() (token.Pos, token.Pos) { return s.ContinuePos, s.ContinuePos }
func (s *ContinueStmt) Walk(v Visitor) {
	if s.Label != nil {
		Walk(v, s.Label)
	}
}

func (s *SwitchStmt) Span() (token.Pos, token.Pos) { return s.SwitchPos, s.Rbrace + 1 }
func (s *SwitchStmt) Walk(v Visitor) {
	Walk(v, s.Tag)
	for _, c := range s.Cases {
		Walk(v, c)
	}
}

func (c *CaseClause) Span() (token.Pos, token.Pos) {
	end := c.CasePos
	if len(c.Body) > 0 {
		_, end = c.Body[len(c.Body)-1].Span()
	}
	return c.CasePos, end
}
func (c *CaseClause) Walk(v Visitor) {
	if c.Test != nil {
		Walk(v, c.Test)
	}
	for _, s := range c.Body {
		Walk(v, s)
	}
}

func (d *ImportDecl) Span() (token.Pos, token.Pos) { return d.ImportPos, d.End }
func (d *ImportDecl) Walk(v Visitor) {
	for _, sp := range d.Specs {
		if sp.Local != nil {
			Walk(v, sp.Local)
		}
	}
}

func (d *ExportDecl) Span() (token.Pos, token.Pos) { return d.ExportPos, d.End }
func (d *ExportDecl) Walk(v Visitor) {
	if d.Decl != nil {
		Walk(v, d.Decl)
	}
}
