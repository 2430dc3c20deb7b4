package ast

// VisitDirection indicates whether a call to Visit enters or exits a node.
// Grounded on the teacher's lang/ast/visitor.go. The varcheck traversal
// driver does not use Walk (it has its own recursive walk and runs the
// rules from its own exit step); varcheck uses Walk only to collect JSDoc
// @type words (collectTypeRefs).
type VisitDirection int

const (
	VisitEnter VisitDirection = iota
	VisitExit
)

// Visitor is called for each node participating in a Walk.
type Visitor interface {
	Visit(n Node, dir VisitDirection) (w Visitor)
}

// VisitorFunc adapts a function to the Visitor interface.
type VisitorFunc func(n Node, dir VisitDirection) Visitor

func (f VisitorFunc) Visit(n Node, dir VisitDirection) Visitor { return f(n, dir) }

// Walk visits node and its descendants in source order, calling v.Visit on
// entry and again on exit once all children have been visited.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	if v = v.Visit(node, VisitEnter); v == nil {
		return
	}
	node.Walk(v)
	v.Visit(node, VisitExit)
}
