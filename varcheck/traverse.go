package varcheck

import (
	"regexp"

	"golang.org/x/exp/slices"

	"github.com/ecmabind/varcheck/lang/ast"
	"github.com/ecmabind/varcheck/lang/scope"
	"github.com/ecmabind/varcheck/lang/scopebuild"
	"github.com/ecmabind/varcheck/lang/token"
)

// checker drives the traversal: it re-enters the scope tree scopebuild.Build
// already constructed (rather than building its own), attaches a Reference
// to every identifier occurrence, and fires the rule engine for a scope's
// bindings once that scope closes. The push/pop shape mirrors scopebuild's
// own builder, generalized the way lang/resolver's resolver and the
// teacher's bytecode compiler share one walk over two different jobs.
type checker struct {
	res                 *scopebuild.Result
	mode                Mode
	onGlobalVarConflict GlobalVarConflictFunc

	cur *scope.Scope

	diags []Diagnostic

	// fileSuppressDup is true when the file's leading @fileoverview comment
	// carries @suppress {duplicate|redeclaredVar}, silencing R2 everywhere
	// (spec.md §6 JSDoc interaction table).
	fileSuppressDup bool

	// blockDepth counts nested block-like scopes since the last
	// function-like scope boundary; 0 means "at the top of a function (or
	// the program)". Used to set Reference.IsHoistedDeclaration.
	blockDepth int

	// declaredOnce records, per binding, whether its single IsDeclaration
	// Reference has already been created; a second, third, ... declarator
	// of the same name only gets a plain write (IsLValue) Reference, and
	// only when it has an initializer (spec.md §3 invariant: "a declaration Reference appears exactly once
	// per Binding").
	declaredOnce map[*scope.Binding]bool

	// earlyBoundary is, per binding, the source position before which a
	// reference counts as "early" for R3 (spec.md §4.3).
	earlyBoundary map[*scope.Binding]token.Pos

	// r1Fired marks bindings R1 already reported on, so the scope-exit rule
	// loop skips R2-R5 for them (spec.md §5 rule precedence).
	r1Fired map[*scope.Binding]bool

	// typeRefs is the set of identifier-like words appearing in any @type
	// {...} JSDoc annotation in the file. A binding named in one is never
	// reported unused by R5, since the annotation is itself a use (spec.md
	// §9 design note on JSDoc type references).
	typeRefs map[string]bool

	// defaultParamLabel names the parameter whose default-value expression
	// is currently being walked, or "" outside one (spec.md §4.3 default
	// parameter mini-scope). Purely descriptive: it labels
	// Reference.InDefaultParamInit and is not itself consulted by any rule.
	defaultParamLabel string
}

// run walks prog and returns every diagnostic, sorted by source position.
func (c *checker) run(prog *ast.Program) []Diagnostic {
	c.declaredOnce = make(map[*scope.Binding]bool)

	classifyRoot(c.cur, prog)
	for _, s := range prog.Stmts {
		if doc := ast.DocOf(s); doc != nil && doc.Fileoverview {
			c.fileSuppressDup = doc.HasSuppress("duplicate") || doc.HasSuppress("redeclaredVar")
			break
		}
	}
	c.typeRefs = collectTypeRefs(prog)

	for _, s := range prog.Stmts {
		c.stmt(s, true)
	}
	c.runRules(c.cur)

	slices.SortStableFunc(c.diags, func(a, b Diagnostic) int { return int(a.Pos - b.Pos) })
	return c.diags
}

// enter re-enters the scope scopebuild recorded for node, returning the
// blockDepth to restore on the matching exit.
func (c *checker) enter(node ast.Node) int {
	s, ok := c.res.NodeScopes[node]
	if !ok {
		internalErrorf("no scope recorded for %T", node)
	}
	saved := c.blockDepth
	if s.Kind.FunctionLike() {
		c.blockDepth = 0
	} else {
		c.blockDepth++
	}
	c.cur = s
	return saved
}

// exit runs the rule engine over the scope being left, then pops back to
// its parent and restores blockDepth.
func (c *checker) exit(savedDepth int) {
	c.runRules(c.cur)
	c.cur = c.cur.Parent
	c.blockDepth = savedDepth
}

// emit records a diagnostic.
func (c *checker) emit(kind Kind, pos token.Pos, name string) {
	c.diags = append(c.diags, Diagnostic{Kind: kind, Pos: pos, Name: name})
}

// resolve looks up id against the current scope chain. A nil result is an
// implicit global write/read, which carries no Binding to attach a
// Reference to and is therefore simply not tracked (spec.md §4.1,
// "Reference.binding: the resolved Binding, or None for an implicit
// global").
func (c *checker) resolve(id *ast.Ident) *scope.Binding {
	bnd, _ := scope.Lookup(c.cur, id.Name)
	return bnd
}

func (c *checker) addRef(id *ast.Ident, bnd *scope.Binding, isDecl, isHoistedDecl, isLValue, isRead, isInit bool) {
	if bnd == nil {
		return
	}
	r := &scope.Reference{
		Binding:              bnd,
		Node:                 id,
		Scope:                c.cur,
		Pos:                  id.NamePos,
		IsDeclaration:        isDecl,
		IsHoistedDeclaration: isHoistedDecl,
		IsLValue:             isLValue,
		IsRead:               isRead,
		IsInitializing:       isInit,
		InDefaultParamInit:   c.defaultParamLabel,
	}
	bnd.Refs = append(bnd.Refs, r)
}

// runRules runs the deferred rule engine (spec.md §4.4/§5) over every
// binding declared directly in s, in declaration order, once s's traversal
// has finished. Externs scopes never get diagnostics (spec.md §4.2).
func (c *checker) runRules(s *scope.Scope) {
	if s == nil || s.IsExterns {
		return
	}
	bindings := s.AllBindings()
	slices.SortFunc(bindings, func(a, b *scope.Binding) int {
		pa := declPos(a.Decl)
		pb := declPos(b.Decl)
		if pa != pb {
			return int(pa - pb)
		}
		if a.Name != b.Name {
			if a.Name < b.Name {
				return -1
			}
			return 1
		}
		return 0
	})

	for _, b := range bindings {
		slices.SortStableFunc(b.Refs, func(x, y *scope.Reference) int { return int(x.Pos - y.Pos) })

		if c.r1Fired[b] {
			continue
		}
		if c.ruleRedeclare(b) {
			continue
		}
		if c.ruleEarly(b) {
			continue
		}
		if c.ruleConst(b) {
			continue
		}
		c.ruleUnused(b)
	}
}

func declPos(n ast.Node) token.Pos {
	if n == nil {
		return token.NoPos
	}
	start, _ := n.Span()
	return start
}

// declKind maps a var/let/const token to its Kind.
func declKind(tok token.Token) scope.Kind {
	switch tok {
	case token.VAR:
		return scope.Var
	case token.CONST:
		return scope.Const
	default:
		return scope.Let
	}
}

// boundaryFor computes the R3 early-reference boundary for a binding
// declared by id with the given kind and (possibly nil) initializer/default
// expression (spec.md §4.3). Var/function bindings are early only before
// their own identifier (hoisting places the declaration at the top of the
// function, but the self-init idiom "var x = x || {}" must not warn); every
// other kind is early up through the end of its own init/default, so "let x
// = x" is caught.
func boundaryFor(kind scope.Kind, id *ast.Ident, init ast.Expr) token.Pos {
	switch kind {
	case scope.Var, scope.FunctionDecl:
		return id.NamePos
	default:
		if init != nil {
			_, end := init.Span()
			return end
		}
		_, end := id.Span()
		return end
	}
}

// declareTarget registers the declaration Reference(s) for every name bound
// by pat and records each one's R3 boundary. kind is the binding kind; init
// is the shared initializer/default expression for the whole pattern (nil
// if none).
func (c *checker) declareTarget(pat ast.Pattern, kind scope.Kind, init ast.Expr) {
	for _, id := range ast.BoundNames(pat) {
		bnd := c.lookupDeclared(id.Name, kind)
		if bnd == nil {
			internalErrorf("no binding recorded for declared name %q", id.Name)
		}
		if c.declaredOnce[bnd] {
			if init != nil {
				c.addRef(id, bnd, false, false, true, false, false)
			}
			continue
		}
		c.declaredOnce[bnd] = true
		hoisted := kind.Hoisted() && c.blockDepth > 0
		c.addRef(id, bnd, true, hoisted, false, false, init != nil)
		c.earlyBoundary[bnd] = boundaryFor(kind, id, init)
	}
}

func (c *checker) lookupDeclared(name string, kind scope.Kind) *scope.Binding {
	if kind == scope.Var {
		target := scope.HoistTarget(c.cur)
		bnd, _ := target.LookupLocal(name)
		return bnd
	}
	bnd, _ := c.cur.LookupLocal(name)
	return bnd
}

// declareSimple registers the single-identifier declaration Reference for
// function/class/catch/import/for-in-of bindings, which (unlike
// var/let/const declarators) never share a Declarator/init shape.
func (c *checker) declareSimple(id *ast.Ident, kind scope.Kind, isLValue bool, boundary token.Pos) {
	if id == nil {
		return
	}
	bnd, _ := c.cur.LookupLocal(id.Name)
	if bnd == nil || c.declaredOnce[bnd] {
		return
	}
	c.declaredOnce[bnd] = true
	hoisted := kind.Hoisted() && c.blockDepth > 0
	c.addRef(id, bnd, true, hoisted, isLValue, false, false)
	c.earlyBoundary[bnd] = boundary
}

func (c *checker) varDecl(d *ast.VarDecl) {
	kind := declKind(d.Tok)
	for _, decl := range d.Decls {
		c.declareTarget(decl.Target, kind, decl.Init)
		if decl.Init != nil {
			c.expr(decl.Init)
		}
	}
}

func (c *checker) param(p *ast.Param) {
	target := p.Target
	var def ast.Expr
	if ap, ok := target.(*ast.AssignPattern); ok {
		def = ap.Default
	}
	c.declareTarget(target, scope.Param, def)
	if def != nil {
		names := ast.BoundNames(target)
		label := ""
		if len(names) > 0 {
			label = names[0].Name
		}
		saved := c.defaultParamLabel
		c.defaultParamLabel = label
		c.expr(def)
		c.defaultParamLabel = saved
	}
}

func (c *checker) function(node ast.Node, params []*ast.Param, body *ast.BlockStmt) {
	savedLabel := c.defaultParamLabel
	c.defaultParamLabel = ""
	saved := c.enter(node)

	if fe, ok := node.(*ast.FunctionExpr); ok && fe.Name != nil {
		c.declareSimple(fe.Name, scope.FunctionDecl, false, fe.Name.NamePos)
	}
	for _, p := range params {
		c.param(p)
	}
	for _, s := range body.Stmts {
		c.stmt(s, true)
	}

	c.exit(saved)
	c.defaultParamLabel = savedLabel
}

func (c *checker) arrow(fn *ast.ArrowFunctionExpr) {
	savedLabel := c.defaultParamLabel
	c.defaultParamLabel = ""
	saved := c.enter(fn)

	for _, p := range fn.Params {
		c.param(p)
	}
	if fn.Body != nil {
		for _, s := range fn.Body.Stmts {
			c.stmt(s, true)
		}
	} else {
		c.expr(fn.ExprBody)
	}

	c.exit(saved)
	c.defaultParamLabel = savedLabel
}

func (c *checker) class(cl *ast.ClassDecl) {
	if cl.Extends != nil {
		c.expr(cl.Extends)
	}
	saved := c.enter(cl)
	for _, m := range cl.Members {
		if m.Computed {
			c.expr(m.Key)
		}
		switch {
		case m.Func != nil:
			c.function(m.Func, m.Func.Params, m.Func.Body)
		case m.Value != nil:
			c.expr(m.Value)
		}
	}
	c.exit(saved)
}

// stmt walks a statement. direct reports whether s sits directly in a
// block/program/case/try-catch-finally body, as opposed to the lone
// substatement slot of an if/for/while/with/label (spec.md §4.4 R1).
func (c *checker) stmt(s ast.Stmt, direct bool) {
	switch s := s.(type) {
	case *ast.VarDecl:
		if s.Tok != token.VAR && !direct {
			for _, decl := range s.Decls {
				c.fireR1(ast.BoundNames(decl.Target)...)
			}
		}
		c.varDecl(s)

	case *ast.FunctionDecl:
		if !direct && s.Name != nil {
			c.fireR1(s.Name)
		}
		if s.Name != nil {
			c.declareSimple(s.Name, scope.FunctionDecl, false, s.Name.NamePos)
		}
		c.function(s, s.Params, s.Body)

	case *ast.ClassDecl:
		if !direct && s.Name != nil {
			c.fireR1(s.Name)
		}
		if s.Name != nil {
			_, end := s.Span()
			c.declareSimple(s.Name, scope.ClassBinding, false, end)
		}
		c.class(s)

	case *ast.BlockStmt:
		saved := c.enter(s)
		for _, inner := range s.Stmts {
			c.stmt(inner, true)
		}
		c.exit(saved)

	case *ast.IfStmt:
		c.expr(s.Cond)
		c.stmt(s.Then, false)
		if s.Else != nil {
			c.stmt(s.Else, false)
		}

	case *ast.ForStmt:
		saved := c.enter(s)
		if s.Init != nil {
			c.stmt(s.Init, true)
		}
		if s.Cond != nil {
			c.expr(s.Cond)
		}
		if s.Post != nil {
			c.stmt(s.Post, true)
		}
		c.stmt(s.Body, false)
		c.exit(saved)

	case *ast.ForInOfStmt:
		c.expr(s.Right)
		saved := c.enter(s)
		if s.Decl != token.ILLEGAL {
			for _, id := range ast.BoundNames(s.Target) {
				c.declareSimple(id, declKind(s.Decl), true, token.NoPos)
			}
		} else if s.LeftX != nil {
			c.assignTarget(s.LeftX, false)
		}
		c.stmt(s.Body, false)
		c.exit(saved)

	case *ast.WhileStmt:
		c.expr(s.Cond)
		c.stmt(s.Body, false)

	case *ast.DoWhileStmt:
		c.stmt(s.Body, false)
		c.expr(s.Cond)

	case *ast.WithStmt:
		c.expr(s.Obj)
		c.stmt(s.Body, false)

	case *ast.LabeledStmt:
		c.stmt(s.Body, false)

	case *ast.TryStmt:
		c.stmt(s.Block, true)
		if s.Catch != nil {
			saved := c.enter(s.Catch)
			if s.Catch.Param != nil {
				for _, id := range ast.BoundNames(s.Catch.Param) {
					_, end := id.Span()
					c.declareSimple(id, scope.CatchParam, false, end)
				}
			}
			for _, inner := range s.Catch.Body.Stmts {
				c.stmt(inner, true)
			}
			c.exit(saved)
		}
		if s.Finally != nil {
			c.stmt(s.Finally, true)
		}

	case *ast.SwitchStmt:
		c.expr(s.Tag)
		saved := c.enter(s)
		for _, cl := range s.Cases {
			if cl.Test != nil {
				c.expr(cl.Test)
			}
			for _, inner := range cl.Body {
				c.stmt(inner, true)
			}
		}
		c.exit(saved)

	case *ast.ImportDecl:
		for _, spec := range s.Specs {
			if spec.Local != nil {
				c.declareSimple(spec.Local, scope.Import, false, token.NoPos)
			}
		}

	case *ast.ExportDecl:
		if s.Decl != nil {
			c.stmt(s.Decl, direct)
		}

	case *ast.ExprStmt:
		if u, ok := s.X.(*ast.UpdateExpr); ok {
			c.updateExpr(u, false)
		} else {
			c.expr(s.X)
		}

	case *ast.ReturnStmt:
		if s.X != nil {
			c.expr(s.X)
		}

	case *ast.ThrowStmt:
		c.expr(s.X)

	case *ast.BreakStmt, *ast.ContinueStmt:
		// labels are not bindings.
	}
}

// expr walks an expression in read (value) context.
func (c *checker) expr(e ast.Expr) {
	switch e := e.(type) {
	case nil:
		return
	case *ast.Ident:
		c.addRef(e, c.resolve(e), false, false, false, true, false)

	case *ast.Literal, *ast.ThisExpr, *ast.SuperExpr:
		// no bindings

	case *ast.AssignExpr:
		c.assignTarget(e.Left, e.Op != token.ASSIGN)
		c.expr(e.Right)

	case *ast.UpdateExpr:
		c.updateExpr(e, true)

	case *ast.BinaryExpr:
		c.expr(e.Left)
		c.expr(e.Right)

	case *ast.LogicalExpr:
		c.expr(e.Left)
		c.expr(e.Right)

	case *ast.ConditionalExpr:
		c.expr(e.Cond)
		c.expr(e.Then)
		c.expr(e.Else)

	case *ast.UnaryExpr:
		c.expr(e.X)

	case *ast.CallExpr:
		c.markGoogCallScope(e)
		c.expr(e.Callee)
		for _, a := range e.Args {
			c.expr(a)
		}

	case *ast.MemberExpr:
		c.expr(e.Obj)
		if e.Computed {
			c.expr(e.Prop)
		}

	case *ast.FunctionExpr:
		c.function(e, e.Params, e.Body)

	case *ast.ArrowFunctionExpr:
		c.arrow(e)

	case *ast.ArrayExpr:
		for _, el := range e.Elements {
			if el != nil {
				c.expr(el)
			}
		}

	case *ast.ObjectExpr:
		for _, p := range e.Props {
			if p.Computed {
				c.expr(p.Key)
			}
			c.expr(p.Value)
		}

	case *ast.SpreadExpr:
		c.expr(e.X)

	case *ast.SequenceExpr:
		for _, x := range e.Exprs {
			c.expr(x)
		}

	case *ast.ParenExpr:
		c.expr(e.X)

	case *ast.TaggedTemplateExpr:
		c.expr(e.Tag)
	}
}

func (c *checker) updateExpr(e *ast.UpdateExpr, isRead bool) {
	c.assignTarget(e.X, isRead)
}

// assignTarget processes an assignment/update lvalue position. extraRead
// marks that this same occurrence also reads the prior value (compound
// assignment, "++"/"--").
func (c *checker) assignTarget(e ast.Expr, extraRead bool) {
	switch e := e.(type) {
	case *ast.Ident:
		c.addRef(e, c.resolve(e), false, false, true, extraRead, false)

	case *ast.MemberExpr:
		c.expr(e.Obj)
		if e.Computed {
			c.expr(e.Prop)
		}

	case *ast.ArrayExpr:
		for _, el := range e.Elements {
			if el != nil {
				c.destructureElement(el)
			}
		}

	case *ast.ObjectExpr:
		for _, p := range e.Props {
			if p.Computed {
				c.expr(p.Key)
			}
			c.destructureElement(p.Value)
		}

	case *ast.ParenExpr:
		c.assignTarget(e.X, extraRead)

	default:
		c.expr(e)
	}
}

// destructureElement handles one element of an array/object destructuring
// assignment target (not a declaration: "[a, b] = [1, 2]" against
// already-declared names, spec.md glossary, "Pattern").
func (c *checker) destructureElement(e ast.Expr) {
	switch e := e.(type) {
	case *ast.AssignExpr:
		c.assignTarget(e.Left, false)
		c.expr(e.Right)
	case *ast.SpreadExpr:
		c.assignTarget(e.X, false)
	default:
		c.assignTarget(e, false)
	}
}

var typeWordPattern = regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*`)

// collectTypeRefs scans every JSDoc @type{...} annotation in prog for
// identifier-like words, so R5 can treat a binding named in a type
// annotation as used (spec.md §9).
func collectTypeRefs(prog *ast.Program) map[string]bool {
	refs := make(map[string]bool)
	var visitor ast.VisitorFunc
	visitor = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir != ast.VisitEnter {
			return visitor
		}
		if doc := ast.DocOf(n); doc != nil {
			for _, t := range doc.Types {
				for _, w := range typeWordPattern.FindAllString(t, -1) {
					refs[w] = true
				}
			}
		}
		return visitor
	}
	ast.Walk(visitor, prog)
	return refs
}
