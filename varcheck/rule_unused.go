package varcheck

import (
	"github.com/ecmabind/varcheck/lang/ast"
	"github.com/ecmabind/varcheck/lang/scope"
)

// ruleUnused runs R5: a binding's assignment (its declaration, or its last
// write) is reported unused if no read of it follows (spec.md §4.4 R5). It
// only runs when the caller opted in via WithUnusedLocalAssignments
// (spec.md §6, "one boolean, unused_local_variable_check_enabled").
func (c *checker) ruleUnused(b *scope.Binding) bool {
	if c.mode&UnusedLocalAssignments == 0 {
		return false
	}
	if !r5Eligible(c, b) {
		return false
	}

	var lastAssign *scope.Reference
	for _, r := range b.Refs {
		if !(r.IsDeclaration || r.IsLValue) {
			continue
		}
		if lastAssign == nil || r.Pos > lastAssign.Pos {
			lastAssign = r
		}
	}
	if lastAssign == nil {
		return false
	}
	for _, r := range b.Refs {
		if r.IsRead && r.Pos > lastAssign.Pos {
			return false
		}
	}

	c.emit(UnusedLocalAssignment, lastAssign.Pos, b.Name)
	return true
}

// r5Eligible reports whether b is the kind of binding R5 ever considers:
// a simple-identifier local var/let/const/class, not exported, not a typedef, not
// named in a @type annotation, and not a for-in/for-of loop variable
// (spec.md §4.4 R5, §9 open questions).
func r5Eligible(c *checker, b *scope.Binding) bool {
	switch b.Kind {
	case scope.Var, scope.Let, scope.Const, scope.ClassBinding:
	default:
		return false
	}
	if b.Scope.Kind == scope.Global {
		return false
	}
	// A goog.scope(function(){...}) body is, for every other rule, an
	// ordinary function scope, but spec.md §8 scenario 9 ("goog.scope(...)
	// with unused enabled; expect no diagnostics") treats its top-level
	// vars like a plain script's: exempt from R5.
	if b.Scope.IsGoogScopeBody {
		return false
	}
	if b.Typedef || b.Exported || !b.SimplePattern {
		return false
	}
	if _, ok := b.Decl.(*ast.ForInOfStmt); ok {
		return false
	}
	if c.typeRefs[b.Name] {
		return false
	}
	return true
}
