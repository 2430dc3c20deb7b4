package varcheck

import "github.com/ecmabind/varcheck/lang/scope"

// r3Applies reports whether kind participates in R3 at all, and if so at
// what severity (spec.md §4.4 R3: var/function are advisory, let/const/
// class/param are TDZ violations and therefore errors).
func r3Applies(kind scope.Kind) (applies bool, sev Kind) {
	switch kind {
	case scope.Var:
		return true, EarlyReference
	case scope.FunctionDecl:
		return true, EarlyReference
	case scope.Let, scope.Const, scope.ClassBinding, scope.Param:
		return true, EarlyReferenceError
	default:
		return false, 0
	}
}

// ruleEarly runs R3 over b's references (spec.md §4.4 R3, §4.3 for the
// boundary computation) and reports whether it fired.
//
// A FunctionDecl binding only participates when its own declaration is
// itself hoisted past the top of its scope (IsHoistedDeclaration), matching
// normal hoisting: a function declared at the top of its scope is never
// "early" to anything.
//
// The lazy-closure exception (spec.md §4.3, "a reference inside a nested
// function body is never early, since the function may run after the
// declaration") is generalized here to any reference whose enclosing
// function differs from the binding's own: this also covers the arrow-
// function-in-default-parameter idiom (spec.md §8 scenario 7) without a
// separate special case, since an arrow function is an ordinary nested
// function scope for this purpose.
func (c *checker) ruleEarly(b *scope.Binding) bool {
	applies, kind := r3Applies(b.Kind)
	if !applies {
		return false
	}

	var declRef *scope.Reference
	for _, r := range b.Refs {
		if r.IsDeclaration {
			declRef = r
			break
		}
	}
	if b.Kind == scope.FunctionDecl && (declRef == nil || !declRef.IsHoistedDeclaration) {
		return false
	}

	boundary, ok := c.earlyBoundary[b]
	if !ok {
		return false
	}

	fired := false
	for _, r := range b.Refs {
		if r.IsDeclaration || r.Pos >= boundary {
			continue
		}
		if scope.EnclosingFunction(r.Scope) != scope.EnclosingFunction(b.Scope) {
			continue
		}
		c.emit(kind, r.Pos, b.Name)
		fired = true
	}
	return fired
}
