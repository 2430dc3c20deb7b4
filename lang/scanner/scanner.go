// Package scanner implements a hand-written lexer for the ES5+ES6 subset
// this repository's parser consumes. It retains comments (including JSDoc
// block comments) instead of discarding them, so the parser can attach
// JSDoc tags to the declaration that follows.
package scanner

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/ecmabind/varcheck/lang/token"
)

// ErrorHandler is called for every lexical error encountered while
// scanning. It never stops scanning.
type ErrorHandler func(pos token.Position, msg string)

// Comment is a single comment retained by the scanner.
type Comment struct {
	Start token.Pos
	End   token.Pos
	Text  string // raw text including delimiters
	Block bool   // true for /* ... */, false for // ...
	Doc   bool   // true if Block && starts with "/**"
}

// Scanner tokenizes a single source file.
type Scanner struct {
	file *token.File
	src  []byte
	err  ErrorHandler

	offset   int
	rdOffset int
	ch       rune

	// Comments lexed since the previous call to TakeComments, in source
	// order.
	pending []Comment
}

// Init prepares s to scan src, which is the content of file.
func (s *Scanner) Init(file *token.File, src []byte, err ErrorHandler) {
	s.file = file
	s.src = src
	s.err = err
	s.offset = 0
	s.rdOffset = 0
	s.pending = nil
	s.next()
}

const eof = -1

func (s *Scanner) next() {
	if s.rdOffset < len(s.src) {
		s.offset = s.rdOffset
		r, w := rune(s.src[s.rdOffset]), 1
		if r >= utf8.RuneSelf {
			r, w = utf8.DecodeRune(s.src[s.rdOffset:])
		}
		s.rdOffset += w
		if r == '\n' {
			s.file.AddLine(s.rdOffset)
		}
		s.ch = r
	} else {
		s.offset = len(s.src)
		s.ch = eof
	}
}

func (s *Scanner) peek() byte {
	if s.rdOffset < len(s.src) {
		return s.src[s.rdOffset]
	}
	return 0
}

func (s *Scanner) pos() token.Pos { return s.file.Base() + token.Pos(s.offset) }

func (s *Scanner) errorf(pos token.Pos, format string, args ...interface{}) {
	if s.err != nil {
		s.err(s.file.Position(pos), fmt.Sprintf(format, args...))
	}
}

// TakeComments returns and clears the comments accumulated since the last
// call to TakeComments (or Init). Scan does not clear them.
func (s *Scanner) TakeComments() []Comment {
	c := s.pending
	s.pending = nil
	return c
}

func isLetter(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch {
		case s.ch == ' ' || s.ch == '\t' || s.ch == '\r' || s.ch == '\n':
			s.next()

		case s.ch == '/' && s.peek() == '/':
			start := s.pos()
			for s.ch != '\n' && s.ch != eof {
				s.next()
			}
			s.pending = append(s.pending, Comment{Start: start, End: s.pos(), Text: string(s.src[start-s.file.Base() : s.pos()-s.file.Base()])})

		case s.ch == '/' && s.peek() == '*':
			start := s.pos()
			s.next()
			s.next()
			doc := s.ch == '*' && s.peek() != '/'
			closed := false
			for s.ch != eof {
				if s.ch == '*' && s.peek() == '/' {
					s.next()
					s.next()
					closed = true
					break
				}
				s.next()
			}
			if !closed {
				s.errorf(start, "unterminated block comment")
			}
			end := s.pos()
			s.pending = append(s.pending, Comment{
				Start: start, End: end,
				Text:  string(s.src[start-s.file.Base() : end-s.file.Base()]),
				Block: true, Doc: doc,
			})

		default:
			return
		}
	}
}

// Scan returns the next token, its literal value (for IDENT, NUMBER,
// STRING, TEMPLATE) and its start/end positions.
func (s *Scanner) Scan() (tok token.Token, lit string, start, end token.Pos) {
	s.skipWhitespaceAndComments()
	start = s.pos()

	switch {
	case s.ch == eof:
		return token.EOF, "", start, start

	case isLetter(s.ch):
		lit = s.scanIdent()
		end = s.pos()
		return token.Lookup(lit), lit, start, end

	case isDigit(s.ch):
		lit = s.scanNumber()
		return token.NUMBER, lit, start, s.pos()

	case s.ch == '"' || s.ch == '\'':
		lit = s.scanString(byte(s.ch))
		return token.STRING, lit, start, s.pos()

	case s.ch == '`':
		lit = s.scanTemplate()
		return token.TEMPLATE, lit, start, s.pos()
	}

	tok = s.scanPunct()
	return tok, "", start, s.pos()
}

func (s *Scanner) scanIdent() string {
	start := s.offset
	for isLetter(s.ch) || isDigit(s.ch) {
		s.next()
	}
	return string(s.src[start:s.offset])
}

func (s *Scanner) scanNumber() string {
	start := s.offset
	if s.ch == '0' && (s.peek() == 'x' || s.peek() == 'X') {
		s.next()
		s.next()
		for isHex(s.ch) {
			s.next()
		}
		return string(s.src[start:s.offset])
	}
	for isDigit(s.ch) {
		s.next()
	}
	if s.ch == '.' && isDigit(rune(s.peek())) {
		s.next()
		for isDigit(s.ch) {
			s.next()
		}
	}
	if s.ch == 'e' || s.ch == 'E' {
		s.next()
		if s.ch == '+' || s.ch == '-' {
			s.next()
		}
		for isDigit(s.ch) {
			s.next()
		}
	}
	return string(s.src[start:s.offset])
}

func isHex(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func (s *Scanner) scanString(quote byte) string {
	start := s.offset
	s.next() // opening quote
	for s.ch != rune(quote) && s.ch != eof {
		if s.ch == '\\' {
			s.next()
		}
		s.next()
	}
	if s.ch == eof {
		s.errorf(s.file.Base()+token.Pos(start), "unterminated string literal")
	} else {
		s.next() // closing quote
	}
	return string(s.src[start:s.offset])
}

// scanTemplate consumes a whole template literal as one opaque token; this
// pass never inspects the interpolated contents (see SPEC_FULL.md).
func (s *Scanner) scanTemplate() string {
	start := s.offset
	s.next() // opening backtick
	depth := 0
	for s.ch != eof {
		switch {
		case s.ch == '\\':
			s.next()
		case s.ch == '`' && depth == 0:
			s.next()
			return string(s.src[start:s.offset])
		case s.ch == '$' && s.peek() == '{':
			depth++
			s.next()
		case s.ch == '}' && depth > 0:
			depth--
		}
		s.next()
	}
	s.errorf(s.file.Base()+token.Pos(start), "unterminated template literal")
	return string(s.src[start:s.offset])
}

func (s *Scanner) scanPunct() token.Token {
	ch := s.ch
	s.next()
	switch ch {
	case '(':
		return token.LPAREN
	case ')':
		return token.RPAREN
	case '{':
		return token.LBRACE
	case '}':
		return token.RBRACE
	case '[':
		return token.LBRACK
	case ']':
		return token.RBRACK
	case ';':
		return token.SEMI
	case ',':
		return token.COMMA
	case ':':
		return token.COLON
	case '?':
		return token.QUESTION
	case '~':
		return token.TILDE
	case '.':
		if s.ch == '.' && s.peek() == '.' {
			s.next()
			s.next()
			return token.ELLIPSIS
		}
		return token.DOT
	case '+':
		if s.ch == '+' {
			s.next()
			return token.INC
		}
		if s.ch == '=' {
			s.next()
			return token.PLUS_EQ
		}
		return token.PLUS
	case '-':
		if s.ch == '-' {
			s.next()
			return token.DEC
		}
		if s.ch == '=' {
			s.next()
			return token.MINUS_EQ
		}
		return token.MINUS
	case '*':
		if s.ch == '*' {
			s.next()
			return token.STARSTAR
		}
		if s.ch == '=' {
			s.next()
			return token.STAR_EQ
		}
		return token.STAR
	case '/':
		if s.ch == '=' {
			s.next()
			return token.SLASH_EQ
		}
		return token.SLASH
	case '%':
		if s.ch == '=' {
			s.next()
			return token.PERCENT_EQ
		}
		return token.PERCENT
	case '=':
		if s.ch == '=' {
			s.next()
			if s.ch == '=' {
				s.next()
				return token.EQEQEQ
			}
			return token.EQ
		}
		if s.ch == '>' {
			s.next()
			return token.ARROW
		}
		return token.ASSIGN
	case '!':
		if s.ch == '=' {
			s.next()
			if s.ch == '=' {
				s.next()
				return token.NEQEQ
			}
			return token.NEQ
		}
		return token.NOT
	case '<':
		if s.ch == '=' {
			s.next()
			return token.LE
		}
		if s.ch == '<' {
			s.next()
			if s.ch == '=' {
				s.next()
				return token.SHL_EQ
			}
			return token.SHL
		}
		return token.LT
	case '>':
		if s.ch == '=' {
			s.next()
			return token.GE
		}
		if s.ch == '>' {
			s.next()
			if s.ch == '=' {
				s.next()
				return token.SHR_EQ
			}
			return token.SHR
		}
		return token.GT
	case '&':
		if s.ch == '&' {
			s.next()
			return token.AND_AND
		}
		if s.ch == '=' {
			s.next()
			return token.AMP_EQ
		}
		return token.AMP
	case '|':
		if s.ch == '|' {
			s.next()
			return token.OR_OR
		}
		if s.ch == '=' {
			s.next()
			return token.PIPE_EQ
		}
		return token.PIPE
	case '^':
		if s.ch == '=' {
			s.next()
			return token.CARET_EQ
		}
		return token.CARET
	}
	s.errorf(s.pos(), "illegal character %q", ch)
	return token.ILLEGAL
}
