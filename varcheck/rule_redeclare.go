package varcheck

import (
	"github.com/ecmabind/varcheck/lang/ast"
	"github.com/ecmabind/varcheck/lang/scope"
	"github.com/ecmabind/varcheck/lang/token"
)

// redeclareVerdict is the outcome of classifying one collision against a
// binding for R2.
type redeclareVerdict uint8

const (
	redeclareNone redeclareVerdict = iota
	redeclareWarning
	redeclareError
	redeclareGlobalDelegate
)

// ruleRedeclare runs R2 over every collision scopebuild recorded against b
// (spec.md §4.4 R2) and reports whether it fired a local diagnostic for at
// least one of them — the global-delegate verdict does not count, since
// nothing is emitted locally for it (spec.md §1, "defers reporting to that
// collaborator").
func (c *checker) ruleRedeclare(b *scope.Binding) bool {
	fired := false
	for _, col := range b.Collisions {
		switch classifyRedeclare(c, b, col) {
		case redeclareError:
			c.emit(RedeclaredVariableError, collisionPos(col), b.Name)
			fired = true
		case redeclareWarning:
			c.emit(RedeclaredVariable, collisionPos(col), b.Name)
			fired = true
		case redeclareGlobalDelegate:
			if c.onGlobalVarConflict != nil {
				c.onGlobalVarConflict(b.Name, declPos(b.Decl), collisionPos(col))
			}
		}
	}
	return fired
}

// classifyRedeclare decides what a collision between b's declaration and
// col means, in the precedence order spec.md §4.4 R2 lays out: the bleeding
// name exception, the always-error special cases, JSDoc suppression, and
// finally the block-scoped-vs-hoisted split.
func classifyRedeclare(c *checker, b *scope.Binding, col scope.Collision) redeclareVerdict {
	if (b.Kind == scope.FunctionDecl && isBleeding(b.Decl)) || (col.Kind == scope.FunctionDecl && isBleeding(col.Decl)) {
		return redeclareNone
	}

	// Two parameters of the same function sharing a name is always an
	// error, generalizing R2's "parameter collides with a declaration in
	// the function body" to "within the parameter list itself"
	// (SPEC_FULL.md supplemented feature).
	if b.Kind == scope.Param && col.Kind == scope.Param {
		return redeclareError
	}

	// A var hoisting past an enclosing catch parameter of the same name is
	// always an error, and suppression never covers it (spec.md §4.4 R2,
	// the Issue 166 family; scenario 6 of spec.md §8).
	if b.Kind == scope.CatchParam && col.Kind == scope.Var {
		return redeclareError
	}

	if c.fileSuppressDup || b.SuppressDuplicate || jsdocSuppressed(col.Decl) {
		return redeclareNone
	}

	if blockish(b.Kind) || blockish(col.Kind) {
		return redeclareError
	}

	// Both participants are hoisted-ish (var/function/param). In a plain
	// Global script scope this is delegated to the VarCheck collaborator
	// instead of being reported directly (spec.md §1, §4.4 R2).
	if b.Scope.Kind == scope.Global && !b.Scope.IsModuleLike {
		return redeclareGlobalDelegate
	}
	return redeclareWarning
}

// isBleeding reports whether decl is a named function expression. A
// FunctionDecl-kind binding with such a Decl is that expression's own
// bleeding name (spec.md §4.4 R2 exception: "the bleeding name of a named
// function expression never collides with anything"); the expression's
// parameters share the same Decl node but have kind Param.
func isBleeding(decl ast.Node) bool {
	fe, ok := decl.(*ast.FunctionExpr)
	return ok && fe.Name != nil
}

// blockish reports whether a binding of this kind makes an unsuppressed
// collision an error (let/const/class/import/catch are never "just a
// warning"). JSDoc suppression is checked before this and still applies.
func blockish(k scope.Kind) bool {
	switch k {
	case scope.Let, scope.Const, scope.ClassBinding, scope.Import, scope.CatchParam:
		return true
	}
	return false
}

// jsdocSuppressed reports whether decl's own JSDoc carries @suppress
// {duplicate|redeclaredVar}.
func jsdocSuppressed(decl ast.Node) bool {
	doc := ast.DocOf(decl)
	return doc.HasSuppress("duplicate") || doc.HasSuppress("redeclaredVar")
}

// collisionPos picks the most precise position available for a collision's
// diagnostic. Declaration statements (VarDecl) only record their own
// keyword position; named declarations report their own identifier.
func collisionPos(col scope.Collision) token.Pos {
	switch d := col.Decl.(type) {
	case *ast.FunctionDecl:
		if d.Name != nil {
			return d.Name.NamePos
		}
	case *ast.ClassDecl:
		if d.Name != nil {
			return d.Name.NamePos
		}
	}
	return declPos(col.Decl)
}
