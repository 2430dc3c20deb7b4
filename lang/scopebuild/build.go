// Package scopebuild builds the scope tree and binding table over a parsed
// Program. This is the mechanical half of spec.md §1's "scope tree and
// symbol table" external collaborator: it knows where each Scope begins and
// ends and which bindings live in it, but (unlike varcheck) it never
// resolves an identifier occurrence to a binding or tracks references — that
// belongs to the analyzer's own reference model (varcheck/traverse.go).
//
// The recursive push/pop walk here is grounded directly on the teacher's
// lang/resolver/resolver.go: a builder holds the current scope the way the
// resolver holds r.env, descends by creating a child and continuing, and
// returns by popping back to the parent.
package scopebuild

import (
	"github.com/ecmabind/varcheck/lang/ast"
	"github.com/ecmabind/varcheck/lang/scope"
	"github.com/ecmabind/varcheck/lang/token"
)

// Result is the output of Build: the root scope of the program, plus a
// lookup from every scope-introducing AST node to the Scope it introduces,
// so a later traversal (varcheck) can re-enter the same scopes without
// rebuilding them.
type Result struct {
	Root       *scope.Scope
	NodeScopes map[ast.Node]*scope.Scope
}

// Build constructs the scope tree for prog. root's Kind is scope.Module if
// prog contains any import/export declaration, scope.Global otherwise; the
// finer-grained goog.module/goog.loadModule/goog.scope classification is
// varcheck's job (spec.md §4.2), since it depends on call-expression shape
// rather than plain AST structure.
func Build(prog *ast.Program) *Result {
	rootKind := scope.Global
	if isESModule(prog) {
		rootKind = scope.Module
	}

	b := &builder{result: &Result{NodeScopes: make(map[ast.Node]*scope.Scope)}}
	b.cur = scope.New(rootKind, prog, nil)
	b.cur.IsModuleLike = rootKind == scope.Module
	b.result.Root = b.cur
	b.result.NodeScopes[prog] = b.cur

	for _, s := range prog.Stmts {
		b.stmt(s)
	}
	return b.result
}

func isESModule(prog *ast.Program) bool {
	for _, s := range prog.Stmts {
		switch s.(type) {
		case *ast.ImportDecl, *ast.ExportDecl:
			return true
		}
	}
	return false
}

type builder struct {
	cur    *scope.Scope
	result *Result
}

func (b *builder) push(kind scope.ScopeKind, node ast.Node) *scope.Scope {
	s := scope.New(kind, node, b.cur)
	b.result.NodeScopes[node] = s
	b.cur = s
	return s
}

func (b *builder) pop() {
	b.cur = b.cur.Parent
}

// declareHoisted and declareLocal record name as a binding in the
// appropriate scope for kind: hoisted kinds (var, function declarations use their own immediate
// scope — see stmt's FunctionDecl case) climb to the nearest
// function-like scope, everything else binds directly in the current
// scope. Both report every declaration found to collide with an earlier one
// via Binding.Collisions (scope.Binding.AddCollision), so varcheck's
// redeclaration rule (R2) can see every participant, not just the winner.
func (b *builder) declareHoisted(name string, kind scope.Kind, decl ast.Node) *scope.Binding {
	target := scope.HoistTarget(b.cur)
	// A var hoisting past an enclosing catch block whose parameter has the
	// same name is always a redeclaration, even though the var's own
	// binding lives in a different (outer) scope than the catch parameter
	// (spec.md §4.4 R2, "Issue 166 family").
	for s := b.cur; s != nil && s != target; s = s.Parent {
		if s.Kind == scope.CatchBlock {
			if catchBind, ok := s.LookupLocal(name); ok {
				catchBind.AddCollision(kind, decl, s)
			}
		}
	}
	bnd, ok := target.Declare(name, kind, decl)
	if ok {
		applyDoc(bnd, decl)
	} else {
		bnd.AddCollision(kind, decl, target)
	}
	return bnd
}

func (b *builder) declareLocal(name string, kind scope.Kind, decl ast.Node) *scope.Binding {
	bnd, ok := b.cur.Declare(name, kind, decl)
	if ok {
		applyDoc(bnd, decl)
	} else {
		bnd.AddCollision(kind, decl, b.cur)
	}
	return bnd
}

// applyDoc copies the JSDoc @suppress{duplicate}/@typedef tags of a
// binding's own declaration onto it (spec.md §6, §9 "JSDoc integration").
func applyDoc(bnd *scope.Binding, decl ast.Node) {
	doc := ast.DocOf(decl)
	if doc == nil {
		return
	}
	bnd.SuppressDuplicate = doc.HasSuppress("duplicate") || doc.HasSuppress("redeclaredVar")
	bnd.Typedef = doc.Typedef
}

func (b *builder) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.VarDecl:
		b.varDecl(s)

	case *ast.FunctionDecl:
		if s.Name != nil {
			b.declareLocal(s.Name.Name, scope.FunctionDecl, s)
		}
		b.function(s, s.Params, s.Body)

	case *ast.ClassDecl:
		if s.Name != nil {
			b.declareLocal(s.Name.Name, scope.ClassBinding, s)
		}
		b.class(s)

	case *ast.BlockStmt:
		b.push(scope.Block, s)
		for _, inner := range s.Stmts {
			b.stmt(inner)
		}
		b.pop()

	case *ast.IfStmt:
		b.exprBindings(s.Cond)
		b.stmt(s.Then)
		if s.Else != nil {
			b.stmt(s.Else)
		}

	case *ast.ForStmt:
		b.push(scope.ForHeader, s)
		if s.Init != nil {
			b.stmt(s.Init)
		}
		if s.Cond != nil {
			b.exprBindings(s.Cond)
		}
		if s.Post != nil {
			b.stmt(s.Post)
		}
		b.stmt(s.Body)
		b.pop()

	case *ast.ForInOfStmt:
		b.exprBindings(s.Right)
		b.push(scope.ForHeader, s)
		if s.Decl != token.ILLEGAL {
			for _, id := range ast.BoundNames(s.Target) {
				b.declareLocal(id.Name, varDeclKind(s.Decl), s)
			}
		} else if s.LeftX != nil {
			b.exprBindings(s.LeftX)
		}
		b.stmt(s.Body)
		b.pop()

	case *ast.WhileStmt:
		b.exprBindings(s.Cond)
		b.stmt(s.Body)
	case *ast.DoWhileStmt:
		b.stmt(s.Body)
		b.exprBindings(s.Cond)
	case *ast.WithStmt:
		b.exprBindings(s.Obj)
		b.stmt(s.Body)
	case *ast.LabeledStmt:
		b.stmt(s.Body)

	case *ast.TryStmt:
		b.stmt(s.Block)
		if s.Catch != nil {
			b.push(scope.CatchBlock, s.Catch)
			if s.Catch.Param != nil {
				for _, id := range ast.BoundNames(s.Catch.Param) {
					b.declareLocal(id.Name, scope.CatchParam, s.Catch)
				}
			}
			for _, inner := range s.Catch.Body.Stmts {
				b.stmt(inner)
			}
			b.pop()
		}
		if s.Finally != nil {
			b.stmt(s.Finally)
		}

	case *ast.SwitchStmt:
		b.exprBindings(s.Tag)
		b.push(scope.Block, s)
		for _, c := range s.Cases {
			if c.Test != nil {
				b.exprBindings(c.Test)
			}
			for _, inner := range c.Body {
				b.stmt(inner)
			}
		}
		b.pop()

	case *ast.ImportDecl:
		for _, spec := range s.Specs {
			if spec.Local != nil {
				b.declareLocal(spec.Local.Name, scope.Import, s)
			}
		}

	case *ast.ExportDecl:
		if s.Decl != nil {
			b.exportStmt(s.Decl)
		}

	case *ast.ExprStmt:
		b.exprBindings(s.X)

	case *ast.ReturnStmt:
		if s.X != nil {
			b.exprBindings(s.X)
		}
	case *ast.ThrowStmt:
		b.exprBindings(s.X)
	}
}


func (b *builder) varDecl(d *ast.VarDecl) {
	kind := varDeclKind(d.Tok)
	for _, decl := range d.Decls {
		simple := ast.IsSimpleIdent(decl.Target)
		for _, id := range ast.BoundNames(decl.Target) {
			var bnd *scope.Binding
			if kind == scope.Var {
				bnd = b.declareHoisted(id.Name, kind, d)
			} else {
				bnd = b.declareLocal(id.Name, kind, d)
			}
			if !simple {
				bnd.SimplePattern = false
			}
		}
		if decl.Init != nil {
			b.exprBindings(decl.Init)
		}
	}
}

// exportStmt processes a declaration wrapped by "export" and marks every
// binding it introduces as exported, so R5 never flags it as unused
// (spec.md §4.4 R5, "not exported").
func (b *builder) exportStmt(s ast.Stmt) {
	switch d := s.(type) {
	case *ast.VarDecl:
		b.varDecl(d)
		for _, decl := range d.Decls {
			for _, id := range ast.BoundNames(decl.Target) {
				if bnd, found := scope.Lookup(b.cur, id.Name); found {
					bnd.Exported = true
				}
			}
		}
	case *ast.FunctionDecl:
		b.stmt(d)
		if d.Name != nil {
			if bnd, ok := b.cur.LookupLocal(d.Name.Name); ok {
				bnd.Exported = true
			}
		}
	case *ast.ClassDecl:
		b.stmt(d)
		if d.Name != nil {
			if bnd, ok := b.cur.LookupLocal(d.Name.Name); ok {
				bnd.Exported = true
			}
		}
	default:
		b.stmt(s)
	}
}

// exprBindings descends into expressions only far enough to find nested
// function/class/arrow expressions and object/array literals, each of which
// may contain its own scopes that must be built even though the expression
// itself declares nothing in the enclosing scope.
func (b *builder) exprBindings(e ast.Expr) {
	switch e := e.(type) {
	case *ast.FunctionExpr:
		b.function(e, e.Params, e.Body)
	case *ast.ArrowFunctionExpr:
		b.arrow(e)
	case *ast.AssignExpr:
		b.exprBindings(e.Left)
		b.exprBindings(e.Right)
	case *ast.BinaryExpr:
		b.exprBindings(e.Left)
		b.exprBindings(e.Right)
	case *ast.LogicalExpr:
		b.exprBindings(e.Left)
		b.exprBindings(e.Right)
	case *ast.ConditionalExpr:
		b.exprBindings(e.Cond)
		b.exprBindings(e.Then)
		b.exprBindings(e.Else)
	case *ast.UnaryExpr:
		b.exprBindings(e.X)
	case *ast.UpdateExpr:
		b.exprBindings(e.X)
	case *ast.CallExpr:
		b.exprBindings(e.Callee)
		for _, a := range e.Args {
			b.exprBindings(a)
		}
	case *ast.MemberExpr:
		b.exprBindings(e.Obj)
		if e.Computed {
			b.exprBindings(e.Prop)
		}
	case *ast.ArrayExpr:
		for _, el := range e.Elements {
			if el != nil {
				b.exprBindings(el)
			}
		}
	case *ast.ObjectExpr:
		for _, p := range e.Props {
			if p.Computed {
				b.exprBindings(p.Key)
			}
			b.exprBindings(p.Value)
		}
	case *ast.SpreadExpr:
		b.exprBindings(e.X)
	case *ast.SequenceExpr:
		for _, x := range e.Exprs {
			b.exprBindings(x)
		}
	case *ast.ParenExpr:
		b.exprBindings(e.X)
	}
}

func varDeclKind(tok token.Token) scope.Kind {
	switch tok {
	case token.VAR:
		return scope.Var
	case token.CONST:
		return scope.Const
	default:
		return scope.Let
	}
}

func (b *builder) function(node ast.Node, params []*ast.Param, body *ast.BlockStmt) {
	b.push(scope.Function, node)
	// A named function expression's name "bleeds" into its own body scope
	// (visible for recursive self-reference, invisible outside). It is
	// declared directly in the node's own scope, not the function's name —
	// that's why varcheck's redeclaration rule special-cases a *ast.
	// FunctionExpr decl site as a non-warning collision participant.
	if fe, ok := node.(*ast.FunctionExpr); ok && fe.Name != nil {
		b.declareLocal(fe.Name.Name, scope.FunctionDecl, fe)
	}
	for i, p := range params {
		for _, id := range ast.BoundNames(p.Target) {
			bnd := b.declareLocal(id.Name, scope.Param, node)
			bnd.ParamIndex = i
		}
		if def, ok := p.Target.(*ast.AssignPattern); ok {
			b.exprBindings(def.Default)
		}
	}
	for _, inner := range body.Stmts {
		b.stmt(inner)
	}
	b.pop()
}

func (b *builder) arrow(fn *ast.ArrowFunctionExpr) {
	b.push(scope.Function, fn)
	for i, p := range fn.Params {
		for _, id := range ast.BoundNames(p.Target) {
			bnd := b.declareLocal(id.Name, scope.Param, fn)
			bnd.ParamIndex = i
		}
		if def, ok := p.Target.(*ast.AssignPattern); ok {
			b.exprBindings(def.Default)
		}
	}
	if fn.Body != nil {
		for _, inner := range fn.Body.Stmts {
			b.stmt(inner)
		}
	} else {
		b.exprBindings(fn.ExprBody)
	}
	b.pop()
}

func (b *builder) class(cl *ast.ClassDecl) {
	if cl.Extends != nil {
		b.exprBindings(cl.Extends)
	}
	b.push(scope.ClassBody, cl)
	for _, m := range cl.Members {
		if m.Computed {
			b.exprBindings(m.Key)
		}
		switch {
		case m.Func != nil:
			b.function(m.Func, m.Func.Params, m.Func.Body)
		case m.Value != nil:
			b.exprBindings(m.Value)
		}
	}
	b.pop()
}
