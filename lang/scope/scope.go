// Package scope defines the binding/reference/scope model that the
// analyzer's reference model (SPEC_FULL.md §3) is built on. It plays the
// role the teacher's lang/resolver package plays for its Lua-like
// language: a Binding ties together every identifier that denotes the same
// variable, and a Scope is a lexical block with its own table of bindings,
// linked to its parent.
package scope

import (
	"fmt"

	"github.com/dolthub/swiss"

	"github.com/ecmabind/varcheck/lang/ast"
	"github.com/ecmabind/varcheck/lang/token"
)

// Kind distinguishes what introduced a Binding.
type Kind uint8

const (
	Var Kind = iota
	Let
	Const
	ClassBinding
	FunctionDecl
	Param
	CatchParam
	Import
	ImplicitGlobal
)

var kindNames = [...]string{
	Var: "var", Let: "let", Const: "const", ClassBinding: "class",
	FunctionDecl: "function", Param: "param", CatchParam: "catch",
	Import: "import", ImplicitGlobal: "implicit-global",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return fmt.Sprintf("<invalid Kind %d>", k)
	}
	return kindNames[k]
}

// Hoisted reports whether a binding of this kind is subject to var/function
// hoisting (placed at the top of its enclosing function/module/global
// scope) rather than block-scoped TDZ semantics.
func (k Kind) Hoisted() bool {
	return k == Var || k == FunctionDecl
}

// BlockScoped reports whether a binding of this kind lives in the TDZ from
// the start of its block until its declaration executes.
func (k Kind) BlockScoped() bool {
	switch k {
	case Let, Const, ClassBinding:
		return true
	}
	return false
}

// Immutable reports whether reassigning a binding of this kind is a
// REASSIGNED_CONSTANT diagnostic (spec.md §6, R4).
func (k Kind) Immutable() bool {
	return k == Const || k == Import
}

// Binding is created once per declaration and collects every Reference that
// denotes it.
type Binding struct {
	Name  string
	Kind  Kind
	Decl  ast.Node // the declaring node: VarDecl, FunctionDecl, ClassDecl, ImportDecl, CatchClause, ForInOfStmt, the function for a Param, or the FunctionExpr for a bleeding name
	Scope *Scope   // the scope this binding lives in

	// SuppressDuplicate is true when the declaration's JSDoc carries
	// @suppress {duplicate} or {redeclaredVar}, silencing R2 for this
	// binding (spec.md §6 JSDoc interaction table).
	SuppressDuplicate bool
	// Typedef is true when the declaration's JSDoc carries @typedef,
	// silencing R5 for this binding (spec.md §6).
	Typedef bool
	// Exported is true when the declaration is wrapped in an ExportDecl
	// (R5: exported bindings are never "unused").
	Exported bool
	// SimplePattern is false when this binding came from a destructured
	// var/let/const target rather than a plain identifier (spec.md §9 open
	// question: "var {x} = {}" never warns under R5).
	SimplePattern bool
	// ParamIndex is this binding's position in its parameter list, or -1
	// if it is not a Param binding. Recorded by scopebuild; no rule reads
	// it (R3 catches a default referencing a later parameter through that
	// parameter's own declaration position).
	ParamIndex int

	// Collisions records every other declaration of the same name that the
	// scope builder observed colliding with this Binding: either a second
	// declarator in the same scope (scope.Declare's ok==false path), or a
	// var hoisting past an enclosing catch parameter of the same name
	// (spec.md §4.4 R2, the Issue 166 family). varcheck's redeclaration rule
	// is the only reader of this field.
	Collisions []Collision

	Refs []*Reference
}

// Collision is one other declaration of Binding.Name that the builder saw
// colliding with this Binding.
type Collision struct {
	Kind Kind
	Decl ast.Node
	// Scope is the scope the colliding declaration was written in. For an
	// ordinary same-scope redeclaration this equals the Binding's own
	// Scope; for the catch-parameter/var case it is the inner CatchBlock
	// scope the var's declaration textually sits in, even though the var
	// itself is hoisted elsewhere.
	Scope *Scope
}

// AddCollision records another declaration of b's name that collided with
// it during scope building.
func (b *Binding) AddCollision(kind Kind, decl ast.Node, scope *Scope) {
	b.Collisions = append(b.Collisions, Collision{Kind: kind, Decl: decl, Scope: scope})
}

// Reference is one occurrence of an identifier resolved to a Binding.
type Reference struct {
	Binding *Binding
	Node    *ast.Ident
	Scope   *Scope // the scope enclosing this occurrence
	Pos     token.Pos

	IsDeclaration        bool // this occurrence is the declaration site itself
	IsHoistedDeclaration bool // declaration site of a var/function (hoisted placement differs from textual Decl position)
	IsLValue             bool // this occurrence is assigned to
	IsRead               bool // this occurrence's value is read
	IsInitializing       bool // this is the "= init" of the Decl that created Binding

	// InDefaultParamInit names the parameter whose default-value expression
	// this reference appears in, or "" if not applicable. Descriptive only:
	// no rule reads it.
	InDefaultParamInit string
}

// ScopeKind distinguishes the lexical purpose of a Scope.
type ScopeKind uint8

const (
	Global ScopeKind = iota
	Module
	GoogModule
	Function
	Block
	CatchBlock
	ForHeader
	ClassBody
)

var scopeKindNames = [...]string{
	Global: "global", Module: "module", GoogModule: "goog.module",
	Function: "function", Block: "block", CatchBlock: "catch",
	ForHeader: "for-header", ClassBody: "class-body",
}

func (k ScopeKind) String() string {
	if int(k) >= len(scopeKindNames) {
		return fmt.Sprintf("<invalid ScopeKind %d>", k)
	}
	return scopeKindNames[k]
}

// FunctionLike reports whether a var/function-declared binding introduced
// inside this scope kind hoists to this scope (as opposed to passing
// through to an enclosing function/module/global scope).
func (k ScopeKind) FunctionLike() bool {
	switch k {
	case Global, Module, GoogModule, Function:
		return true
	}
	return false
}

// Scope is one lexical block. Bindings is a swiss.Map for the same reason
// the teacher's machine package reaches for it over the builtin map: dense
// open-addressed storage for a table that is built once and probed many
// times during traversal.
type Scope struct {
	Kind     ScopeKind
	Node     ast.Node // the node that introduces this scope (nil for Global)
	Parent   *Scope
	Children []*Scope
	Bindings *swiss.Map[string, *Binding]

	// IsExterns is true for a scope classified as an externs file (spec.md
	// §4.2): declarations there never trigger R1/R2/R3/R4/R5. Neither
	// scopebuild nor varcheck sets it; it is false unless set on a built
	// scope from outside.
	IsExterns bool
	// IsGoogScopeBody is true for the body block of a goog.scope(function(){
	// ... }) call; its var declarations are exempt from R5 the same way a
	// plain script's top-level vars are (spec.md §8 scenario 9).
	IsGoogScopeBody bool
	// IsModuleLike is true for Module, GoogModule, and goog.loadModule
	// bodies: these scopes never leak hoisted var/function bindings past
	// themselves, unlike a plain Global script scope.
	IsModuleLike bool
}

// New creates a scope of the given kind as a child of parent (nil for the
// root Global scope).
func New(kind ScopeKind, node ast.Node, parent *Scope) *Scope {
	s := &Scope{
		Kind:     kind,
		Node:     node,
		Parent:   parent,
		Bindings: swiss.NewMap[string, *Binding](4),
	}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Declare records a new binding for name in s. If name is already declared
// directly in s, the existing binding is returned unchanged and ok is
// false; the caller is responsible for turning that into a
// REDECLARED_VARIABLE diagnostic.
func (s *Scope) Declare(name string, kind Kind, decl ast.Node) (b *Binding, ok bool) {
	if existing, found := s.Bindings.Get(name); found {
		return existing, false
	}
	b = &Binding{Name: name, Kind: kind, Decl: decl, Scope: s, SimplePattern: true, ParamIndex: -1}
	s.Bindings.Put(name, b)
	return b, true
}

// LookupLocal returns the binding declared directly in s, if any.
func (s *Scope) LookupLocal(name string) (*Binding, bool) {
	return s.Bindings.Get(name)
}

// Lookup walks s and its ancestors, returning the nearest binding for name.
func Lookup(s *Scope, name string) (*Binding, *Scope) {
	for cur := s; cur != nil; cur = cur.Parent {
		if b, ok := cur.Bindings.Get(name); ok {
			return b, cur
		}
	}
	return nil, nil
}

// HoistTarget returns the nearest enclosing scope that a var/function
// declaration made inside s would hoist to.
func HoistTarget(s *Scope) *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Kind.FunctionLike() {
			return cur
		}
	}
	return s
}

// EnclosingFunction returns the nearest enclosing Function/Module/Global
// scope, used to decide whether two references cross a function boundary
// (relevant to the arrow-function lazy-capture exception to R3, spec.md
// §4.3).
func EnclosingFunction(s *Scope) *Scope {
	return HoistTarget(s)
}

// AllBindings returns every binding declared directly in s, in an unspecified
// order; callers that need deterministic order should sort the result
// (see varcheck, which sorts by declaration position).
func (s *Scope) AllBindings() []*Binding {
	var out []*Binding
	s.Bindings.Iter(func(_ string, b *Binding) bool {
		out = append(out, b)
		return false
	})
	return out
}
