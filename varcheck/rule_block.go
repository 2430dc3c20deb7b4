package varcheck

import "github.com/ecmabind/varcheck/lang/ast"

// fireR1 reports DECLARATION_NOT_DIRECTLY_IN_BLOCK for each identifier bound
// by a let/const/class/function declaration that sits in the lone
// substatement slot of an if/for/while/with/label instead of directly in a
// block, case, or try/catch/finally body (spec.md §4.4 R1). A binding R1
// fires on is excluded from R2-R5 entirely (spec.md §5 rule precedence),
// which the scope-exit rule loop enforces via r1Fired.
func (c *checker) fireR1(ids ...*ast.Ident) {
	if c.cur.IsExterns {
		return
	}
	for _, id := range ids {
		c.emit(DeclarationNotDirectlyInBlock, id.NamePos, id.Name)
		if bnd, ok := c.cur.LookupLocal(id.Name); ok {
			c.r1Fired[bnd] = true
		}
	}
}
