// Package ast defines the abstract syntax tree produced by the parser for
// the ES5+ES6-module subset this repository analyzes. Building this tree
// (and the scope/symbol table layered over it in lang/scopebuild) is
// conceptually the external collaborator's job per spec.md §1 — the parser
// and scopebuild packages exist so the repository is runnable end-to-end,
// but the varcheck analyzer never imports the parser.
package ast

import "github.com/ecmabind/varcheck/lang/token"

// Node is implemented by every AST node.
type Node interface {
	// Span returns the node's start and end position.
	Span() (start, end token.Pos)
	// Walk visits this node's children; see Visitor.
	Walk(v Visitor)
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Pattern is implemented by binding-target nodes: the left-hand side of a
// var/let/const declarator, a function parameter, a catch parameter, or a
// for-in/for-of loop variable. Destructuring assignment to *already
// declared* names (e.g. "[a, b] = [1, 2]") is not a Pattern; it parses as a
// plain array/object Expr and is recognized structurally by the analyzer,
// the same way scopeguard recognizes multi-target Go assignments.
type Pattern interface {
	Node
	patternNode()
}

// Program is the root node: either an ES5/CommonJS-style script or, when it
// contains import/export declarations, an ES6 module body (see the scope
// classifier, varcheck/classify.go).
type Program struct {
	Stmts []Stmt
	End   token.Pos
}

func (p *Program) Span() (token.Pos, token.Pos) {
	if len(p.Stmts) == 0 {
		return p.End, p.End
	}
	start, _ := p.Stmts[0].Span()
	return start, p.End
}

func (p *Program) Walk(v Visitor) {
	for _, s := range p.Stmts {
		Walk(v, s)
	}
}

// Ident is both an expression (a reference) and a Pattern (a simple binding
// target).
type Ident struct {
	Name    string
	NamePos token.Pos
	Doc     *JSDoc // never set by the parser: JSDoc is attached to the enclosing VarDecl/FunctionDecl/ClassDecl
}

func (id *Ident) Span() (token.Pos, token.Pos) { return id.NamePos, id.NamePos + token.Pos(len(id.Name)) }
func (id *Ident) Walk(Visitor)                 {}
func (*Ident) exprNode()                       {}
func (*Ident) patternNode()                    {}
