package varcheck

import "github.com/ecmabind/varcheck/lang/scope"

// ruleConst runs R4: every lvalue occurrence of an immutable binding
// (const, import) is a REASSIGNED_CONSTANT error (spec.md §4.4 R4).
func (c *checker) ruleConst(b *scope.Binding) bool {
	if !b.Kind.Immutable() {
		return false
	}
	fired := false
	for _, r := range b.Refs {
		if r.IsLValue && !r.IsDeclaration {
			c.emit(ReassignedConstant, r.Pos, b.Name)
			fired = true
		}
	}
	return fired
}
