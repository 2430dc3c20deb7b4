// Package parser turns source text into the lang/ast tree that scopebuild
// and varcheck consume. It is a hand-written recursive-descent parser,
// grounded on the teacher's lang/parser/parser.go driver (init/advance/
// expect/error accumulation) and lang/scanner for tokenization.
package parser

import (
	"errors"
	"strings"

	"github.com/ecmabind/varcheck/lang/ast"
	"github.com/ecmabind/varcheck/lang/scanner"
	"github.com/ecmabind/varcheck/lang/token"
)

// Mode configures parsing. The zero Mode parses fully and reports all
// errors.
type Mode uint

const (
	// Comments causes JSDoc block comments to be attached to the next
	// declaration that follows them (see parser.pendDoc).
	Comments Mode = 1 << iota
)

// ParseProgram parses a single source file and returns its AST. The error,
// if non-nil, is a scanner.ErrorList.
func ParseProgram(fset *token.FileSet, filename string, src []byte, mode Mode) (*ast.Program, error) {
	var p parser
	p.parseComments = mode&Comments != 0
	p.init(fset, filename, src)
	prog := p.parseProgram()
	p.errors.Sort()
	return prog, p.errors.Err()
}

type tokenInfo struct {
	tok        token.Token
	lit        string
	start, end token.Pos
}

type scanState struct {
	cur      tokenInfo
	comments []scanner.Comment
	pendDoc  *ast.JSDoc
	errLen   int
	scanner  scanner.Scanner
}

type parser struct {
	parseComments bool
	scanner       scanner.Scanner
	errors        scanner.ErrorList
	file          *token.File

	cur tokenInfo

	// pendDoc is the most recent un-consumed JSDoc comment, attached to the
	// next declaration site that accepts one.
	pendDoc *ast.JSDoc
}

func (p *parser) init(fset *token.FileSet, filename string, src []byte) {
	p.file = fset.AddFile(filename, len(src))
	p.scanner.Init(p.file, src, p.errors.Add)
	p.advance()
}

// advance consumes the current token and scans the next one, folding any
// comments encountered (and the JSDoc tags of the last one, if any) into
// p.pendDoc.
func (p *parser) advance() {
	tok, lit, start, end := p.scanner.Scan()
	p.cur = tokenInfo{tok, lit, start, end}

	for _, c := range p.scanner.TakeComments() {
		if p.parseComments && c.Block && c.Doc {
			p.pendDoc = ast.ParseJSDoc(c.Text)
		}
	}
}

// takeDoc returns and clears the pending JSDoc, if any.
func (p *parser) takeDoc() *ast.JSDoc {
	d := p.pendDoc
	p.pendDoc = nil
	return d
}

var errPanicMode = errors.New("parser: panic mode")

func (p *parser) error(pos token.Pos, msg string) {
	p.errors.Add(p.file.Position(pos), msg)
}

func (p *parser) errorExpected(pos token.Pos, want string) {
	msg := "expected " + want
	if pos == p.cur.start {
		msg += ", found " + p.cur.tok.String()
	}
	p.error(pos, msg)
}

// expect consumes the current token if it matches tok, else records an
// error and aborts the current statement via panic(errPanicMode).
func (p *parser) expect(tok token.Token) token.Pos {
	pos := p.cur.start
	if p.cur.tok != tok {
		p.errorExpected(pos, tok.String())
		panic(errPanicMode)
	}
	p.advance()
	return pos
}

func (p *parser) at(toks ...token.Token) bool {
	for _, t := range toks {
		if p.cur.tok == t {
			return true
		}
	}
	return false
}

// consumeSemi accepts an explicit ';' or relies on automatic semicolon
// insertion: a '}' , EOF, or simply the absence of a ';' all end a
// statement in this permissive grammar (this pass never rejects a program
// on a missing semicolon, since diagnosing ASI corner cases is outside the
// scope of a reference/declaration checker).
func (p *parser) consumeSemi() {
	if p.cur.tok == token.SEMI {
		p.advance()
	}
}

// mark snapshots parser state so a speculative parse (used to disambiguate
// arrow-function parameter lists from parenthesized expressions) can be
// rolled back.
func (p *parser) mark() scanState {
	return scanState{
		cur:     p.cur,
		errLen:  len(p.errors),
		scanner: p.scanner,
	}
}

func (p *parser) reset(s scanState) {
	p.cur = s.cur
	p.errors = p.errors[:s.errLen]
	p.scanner = s.scanner
}

// tryParse attempts fn speculatively; if fn panics with errPanicMode, the
// parser state is rolled back to the mark taken before the call and ok is
// false. Any other panic propagates.
func (p *parser) tryParse(fn func()) (ok bool) {
	mk := p.mark()
	defer func() {
		if r := recover(); r != nil {
			if r == errPanicMode {
				p.reset(mk)
				ok = false
				return
			}
			panic(r)
		}
	}()
	fn()
	return true
}

func (p *parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.cur.tok != token.EOF {
		stmt := p.parseStmtSynchronized()
		if stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
		}
	}
	prog.End = p.cur.start
	return prog
}

// parseStmtSynchronized parses one top-level or block statement, catching a
// panic from p.expect and skipping tokens up to the next statement boundary
// so a single syntax error does not abort the whole parse.
func (p *parser) parseStmtSynchronized() (s ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanicMode {
				panic(r)
			}
			p.synchronize()
			s = nil
		}
	}()
	return p.parseStmt()
}

func (p *parser) synchronize() {
	for {
		switch p.cur.tok {
		case token.SEMI:
			p.advance()
			return
		case token.EOF, token.RBRACE:
			return
		case token.VAR, token.LET, token.CONST, token.FUNCTION, token.CLASS,
			token.IF, token.FOR, token.WHILE, token.RETURN:
			return
		}
		p.advance()
	}
}

func stripQuotes(lit string) string {
	if len(lit) >= 2 {
		return lit[1 : len(lit)-1]
	}
	return lit
}

func unquoteSimple(lit string) string {
	s := stripQuotes(lit)
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
