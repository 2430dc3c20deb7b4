// Package varcheck is the variable-reference static-analysis pass itself:
// given a parsed ast.Program and the scope tree scopebuild.Build produced
// for it, it walks the program in source order, attaches every identifier
// occurrence to the binding it resolves to, and — once each scope closes —
// runs the rule engine (spec.md §4.4) over every binding declared in it.
//
// The package never imports lang/parser: it consumes an already-built AST
// and scope tree, exactly as spec.md §1 places "parsing" and "building the
// scope tree and symbol table" out of scope for this pass.
package varcheck

import (
	"fmt"

	"github.com/ecmabind/varcheck/lang/ast"
	"github.com/ecmabind/varcheck/lang/scope"
	"github.com/ecmabind/varcheck/lang/scopebuild"
	"github.com/ecmabind/varcheck/lang/token"
)

// Kind identifies the shape of a Diagnostic. These are the seven stable
// kinds of spec.md §6.
type Kind uint8

const (
	DeclarationNotDirectlyInBlock Kind = iota
	EarlyReference
	EarlyReferenceError
	RedeclaredVariable
	RedeclaredVariableError
	ReassignedConstant
	UnusedLocalAssignment
)

var kindNames = [...]string{
	DeclarationNotDirectlyInBlock: "DECLARATION_NOT_DIRECTLY_IN_BLOCK",
	EarlyReference:                "EARLY_REFERENCE",
	EarlyReferenceError:           "EARLY_REFERENCE_ERROR",
	RedeclaredVariable:            "REDECLARED_VARIABLE",
	RedeclaredVariableError:       "REDECLARED_VARIABLE_ERROR",
	ReassignedConstant:            "REASSIGNED_CONSTANT",
	UnusedLocalAssignment:         "UNUSED_LOCAL_ASSIGNMENT",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return fmt.Sprintf("<invalid Kind %d>", k)
	}
	return kindNames[k]
}

// Severity classifies a Kind as fatal or advisory (spec.md §6 table).
type Severity uint8

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

var kindSeverity = [...]Severity{
	DeclarationNotDirectlyInBlock: Error,
	EarlyReference:                Warning,
	EarlyReferenceError:           Error,
	RedeclaredVariable:            Warning,
	RedeclaredVariableError:       Error,
	ReassignedConstant:            Error,
	UnusedLocalAssignment:         Warning,
}

// Severity reports k's fixed severity (spec.md §6 table).
func (k Kind) Severity() Severity {
	if int(k) >= len(kindSeverity) {
		return Error
	}
	return kindSeverity[k]
}

// Diagnostic is one finding emitted by the pass (spec.md §6 "Output").
type Diagnostic struct {
	Kind Kind
	Pos  token.Pos
	Name string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Name)
}

// Severity reports the fixed severity of the diagnostic's Kind.
func (d Diagnostic) Severity() Severity { return d.Kind.Severity() }

// InternalError reports an invariant violation in the scope tree the pass
// was handed (spec.md §7: "missing scope metadata, unresolved reference
// with no implicit-global fallback ... reported via the compiler's
// assertion channel, not a user diagnostic"). It is always a bug in the
// scope builder, never a diagnosable source error, and is raised via panic
// the same way the teacher's resolver panics on a stmt type its switch
// doesn't expect.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return "varcheck: internal error: " + e.Msg }

func internalErrorf(format string, args ...any) {
	panic(&InternalError{Msg: fmt.Sprintf(format, args...)})
}

// Mode is a bitmask of optional checks, mirroring the teacher's
// resolver.Mode (lang/resolver/resolver.go, "type Mode uint", "NameBlocks
// Mode = 1 << iota"). The zero Mode runs every rule spec.md always applies
// (R1-R4) but leaves the opt-in R5 off.
type Mode uint

const (
	// UnusedLocalAssignments enables R5 (spec.md §6, "one boolean,
	// unused_local_variable_check_enabled").
	UnusedLocalAssignments Mode = 1 << iota
)

// GlobalVarConflictFunc is invoked instead of emitting a diagnostic when
// two hoisted bindings collide in a plain Global (non-module) scope:
// spec.md §4.4 R2 calls this case "VAR_MULTIPLY_DECLARED_ERROR (delegated
// to VarCheck collaborator, not emitted locally)". secondPos is the
// colliding declaration's position; firstPos is the winning binding's.
type GlobalVarConflictFunc func(name string, firstPos, secondPos token.Pos)

// Analyzer runs the pass with a fixed configuration. The zero value is not
// usable directly; build one with New.
type Analyzer struct {
	mode                Mode
	onGlobalVarConflict GlobalVarConflictFunc
}

// Option configures an Analyzer built by New.
type Option func(*Analyzer)

// WithMode sets the full Mode bitmask at once, replacing any flags set by
// earlier options.
func WithMode(m Mode) Option {
	return func(a *Analyzer) { a.mode = m }
}

// WithUnusedLocalAssignments toggles R5 (spec.md §6 configuration surface).
func WithUnusedLocalAssignments(enabled bool) Option {
	return func(a *Analyzer) {
		if enabled {
			a.mode |= UnusedLocalAssignments
		} else {
			a.mode &^= UnusedLocalAssignments
		}
	}
}

// WithGlobalVarConflictFunc installs the VarCheck delegate for global
// multiply-declared variables (spec.md §1, "the analyzer only signals the
// condition and defers reporting to that collaborator in one specific
// case"). If unset, the delegate case is silently dropped, matching a
// caller that has no VarCheck collaborator wired up.
func WithGlobalVarConflictFunc(fn GlobalVarConflictFunc) Option {
	return func(a *Analyzer) { a.onGlobalVarConflict = fn }
}

// New builds an Analyzer. With no options, R5 is disabled and global
// var/var collisions are silently dropped (no VarCheck delegate wired).
func New(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Check runs the pass over prog using the scope tree res (built by
// scopebuild.Build(prog)) and returns every diagnostic in source order.
func (a *Analyzer) Check(prog *ast.Program, res *scopebuild.Result) []Diagnostic {
	if res == nil || res.Root == nil {
		internalErrorf("Check called with a nil scope tree")
	}
	c := &checker{
		res:                 res,
		mode:                a.mode,
		onGlobalVarConflict: a.onGlobalVarConflict,
		cur:                 res.Root,
		earlyBoundary:       make(map[*scope.Binding]token.Pos),
		r1Fired:             make(map[*scope.Binding]bool),
	}
	return c.run(prog)
}
