package varcheck

import (
	"github.com/ecmabind/varcheck/lang/ast"
	"github.com/ecmabind/varcheck/lang/scope"
)

// classifyRoot recognizes the goog.module container at the top of a plain
// script scope (spec.md §4.2: "function-less top scope whose first
// statement is goog.module(<string>)"). ES6 Module classification already
// happened in scopebuild.Build (it is a plain structural check: does the
// program contain import/export), so this only ever upgrades a Global root
// to GoogModule, never the reverse.
func classifyRoot(root *scope.Scope, prog *ast.Program) {
	if root.Kind != scope.Global {
		return
	}
	if len(prog.Stmts) == 0 {
		return
	}
	es, ok := prog.Stmts[0].(*ast.ExprStmt)
	if !ok {
		return
	}
	if !isGoogCall(es.X, "module") {
		return
	}
	root.Kind = scope.GoogModule
	root.IsModuleLike = true
}

// isGoogCall reports whether e is a call "goog.<method>(...)" with exactly
// one argument, the shape the scope classifier recognizes for
// goog.module/goog.loadModule/goog.scope (spec.md §4.2).
func isGoogCall(e ast.Expr, method string) bool {
	call, ok := stripParen(e).(*ast.CallExpr)
	if !ok || len(call.Args) != 1 {
		return false
	}
	member, ok := call.Callee.(*ast.MemberExpr)
	if !ok || member.Computed {
		return false
	}
	obj, ok := member.Obj.(*ast.Ident)
	if !ok || obj.Name != "goog" {
		return false
	}
	prop, ok := member.Prop.(*ast.Ident)
	return ok && prop.Name == method
}

func stripParen(e ast.Expr) ast.Expr {
	for {
		p, ok := e.(*ast.ParenExpr)
		if !ok {
			return e
		}
		e = p.X
	}
}

// googCallFunctionArg returns the sole function-expression argument of a
// recognized "goog.<method>(function(...){...})" call, or nil.
func googCallFunctionArg(e ast.Expr, method string) *ast.FunctionExpr {
	if !isGoogCall(e, method) {
		return nil
	}
	call := stripParen(e).(*ast.CallExpr)
	fn, _ := call.Args[0].(*ast.FunctionExpr)
	return fn
}

// markGoogCallScope inspects a just-encountered call expression for the
// goog.loadModule/goog.scope idioms (spec.md §4.2) and, if it matches,
// tags the scope that scopebuild already built for the inner function
// expression's body before the traversal descends into it. Classification
// must happen on entry, before any rule that branches on it runs (SPEC_FULL
// "Module-mode detection" design note).
func (c *checker) markGoogCallScope(call *ast.CallExpr) {
	if fn := googCallFunctionArg(call, "loadModule"); fn != nil {
		if s, ok := c.res.NodeScopes[fn]; ok {
			s.Kind = scope.GoogModule
			s.IsModuleLike = true
		}
		return
	}
	if fn := googCallFunctionArg(call, "scope"); fn != nil {
		if s, ok := c.res.NodeScopes[fn]; ok {
			s.IsGoogScopeBody = true
		}
	}
}
