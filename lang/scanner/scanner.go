// Some of the scanner package's overall structure is adapted from the Go
// source code: https://cs.opensource.google/go/go/+/refs/tags/go1.22.1:src/go/scanner/scanner.go
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scanner tokenizes koru source files for the parser to consume.
package scanner

import (
	"bytes"
	"fmt"
	"go/scanner"
	"unicode"
	"unicode/utf8"

	"koru/lang/primitive"
	"koru/lang/token"
)

type (
	// Error and ErrorList are reused as-is from the standard library's
	// go/scanner package: they already provide sorted, deduplicated,
	// position-attached error collection, which is exactly what the infallible
	// parsing contract requires.
	Error     = scanner.Error
	ErrorList = scanner.ErrorList
)

// PrintError is a utility function that prints a list of errors to w, one
// error per line, if err is an ErrorList.
var PrintError = scanner.PrintError

// TokenAndValue combines a token type with its value payload.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanAll tokenizes the entire source in one call, returning every token up
// to and including EOF, along with any errors encountered. Scanning never
// stops early: it always reaches EOF, recording illegal constructs as
// errors along the way.
func ScanAll(file *token.File, src []byte) ([]TokenAndValue, error) {
	var (
		s      Scanner
		tokVal token.Value
		el     ErrorList
	)
	s.Init(file, src, el.Add)
	var out []TokenAndValue
	for {
		tok := s.Scan(&tokVal)
		out = append(out, TokenAndValue{Token: tok, Value: tokVal})
		if tok == token.EOF {
			break
		}
	}
	el.Sort()
	return out, el.Err()
}

// Scanner tokenizes a single source file.
type Scanner struct {
	file *token.File
	src  []byte
	err  func(pos token.Position, msg string)

	cur  rune // current character, -1 at EOF
	off  int  // byte offset of cur
	roff int  // byte offset just after cur
}

// leftArrow and negMark are the two non-ASCII characters the surface syntax
// requires bit-exactly: the binding separator and the numeric negative
// sign. Backtick is accepted as an ASCII alias of the negative sign.
const (
	leftArrow = '←'
	negMark   = '¯'
)

// Init prepares s to scan file, whose source is exactly src. errHandler, if
// non-nil, is invoked for every illegal construct encountered; scanning
// continues regardless.
func (s *Scanner) Init(file *token.File, src []byte, errHandler func(token.Position, string)) {
	if file.Size() != len(src) {
		panic(fmt.Sprintf("scanner.Init: file size (%d) does not match src len (%d)", file.Size(), len(src)))
	}
	s.file = file
	s.src = src
	s.err = errHandler
	s.cur = ' '
	s.off = 0
	s.roff = 0
	s.advance()
}

func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

func (s *Scanner) advance() {
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		if s.cur == '\n' {
			s.file.AddLine(s.off)
		}
		s.cur = -1
		return
	}
	s.off = s.roff
	if s.cur == '\n' {
		s.file.AddLine(s.off)
	}
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.off, "illegal UTF-8 encoding")
		}
	}
	s.roff += w
	s.cur = r
}

func (s *Scanner) error(off int, msg string) {
	if s.err != nil {
		s.err(s.file.Position(s.file.Pos(off)), msg)
	}
}

func (s *Scanner) errorf(off int, format string, args ...any) {
	s.error(off, fmt.Sprintf(format, args...))
}

func (s *Scanner) advanceIf(matches ...byte) bool {
	if s.cur >= 0 && s.cur < utf8.RuneSelf && bytes.IndexByte(matches, byte(s.cur)) >= 0 {
		s.advance()
		return true
	}
	return false
}

func (s *Scanner) skipSpaces() {
	for s.cur == ' ' || s.cur == '\t' || s.cur == '\r' {
		s.advance()
	}
}

// Scan returns the next token, filling tokVal with its payload.
func (s *Scanner) Scan(tokVal *token.Value) (tok token.Token) {
	s.skipSpaces()

	pos := s.file.Pos(s.off)
	start := s.off

	switch cur := s.cur; {
	case cur == '\n':
		s.advance()
		tok = token.NEWLINE
		*tokVal = token.Value{Raw: "\n", Pos: pos}

	case isIdentStart(cur):
		lit := s.ident()
		tok = token.IDENT
		if primitive.IsName(lit) {
			tok = token.PRIMITIVE
		}
		*tokVal = token.Value{Raw: lit, Pos: pos}

	case isDigit(cur) || (cur == '.' && isDigit(rune(s.peek()))) || cur == negMark || cur == '`':
		lit, val := s.number()
		tok = token.NUMBER
		*tokVal = token.Value{Raw: lit, Pos: pos, Number: val}

	case cur == '@':
		s.advance()
		lit, r := s.charLiteral()
		tok = token.CHAR
		*tokVal = token.Value{Raw: lit, Pos: pos, Rune: r}

	case cur == '"':
		lit, val := s.stringLiteral()
		tok = token.STRING
		*tokVal = token.Value{Raw: lit, Pos: pos, Str: val}

	case cur == '$':
		s.advance()
		if s.cur == '"' {
			lit, val := s.stringLiteral()
			tok = token.FMTSTRING
			*tokVal = token.Value{Raw: "$" + lit, Pos: pos, Str: val}
		} else {
			s.advanceIf(' ')
			lit := s.restOfLine(start)
			tok = token.MULTILINE
			*tokVal = token.Value{Raw: lit, Pos: pos, Str: lit[min(2, len(lit)):]}
		}

	case cur == '#':
		lit := s.comment()
		tok = token.COMMENT
		*tokVal = token.Value{Raw: lit, Pos: pos, Str: lit[1:]}

	case cur == '-' && s.peek() == '-':
		s.advance()
		s.advance()
		if s.advanceIf('-') {
			tok = token.TRIPLEMIN
			*tokVal = token.Value{Raw: "---", Pos: pos}
			break
		}
		s.errorf(start, "illegal punctuation %q, expected '---'", string(s.src[start:s.off]))
		tok = token.ILLEGAL
		*tokVal = token.Value{Raw: string(s.src[start:s.off]), Pos: pos}

	case cur == '=':
		s.advance()
		tok = token.EQ
		*tokVal = token.Value{Raw: "=", Pos: pos}

	case cur == leftArrow:
		s.advance()
		tok = token.LARROW
		*tokVal = token.Value{Raw: "←", Pos: pos}

	case cur == '_':
		s.advance()
		tok = token.UNDERSCORE
		*tokVal = token.Value{Raw: "_", Pos: pos}

	case cur == '^':
		s.advance()
		tok = token.CARET
		*tokVal = token.Value{Raw: "^", Pos: pos}

	case cur == '|':
		s.advance()
		tok = token.BAR
		*tokVal = token.Value{Raw: "|", Pos: pos}

	case cur == '[':
		s.advance()
		tok = token.LBRACKET
		*tokVal = token.Value{Raw: "[", Pos: pos}

	case cur == ']':
		s.advance()
		tok = token.RBRACKET
		*tokVal = token.Value{Raw: "]", Pos: pos}

	case cur == '{':
		s.advance()
		tok = token.LBRACE
		*tokVal = token.Value{Raw: "{", Pos: pos}

	case cur == '}':
		s.advance()
		tok = token.RBRACE
		*tokVal = token.Value{Raw: "}", Pos: pos}

	case cur == '(':
		s.advance()
		tok = token.LPAREN
		*tokVal = token.Value{Raw: "(", Pos: pos}

	case cur == ')':
		s.advance()
		tok = token.RPAREN
		*tokVal = token.Value{Raw: ")", Pos: pos}

	case cur == -1:
		tok = token.EOF
		*tokVal = token.Value{Raw: "", Pos: pos}

	default:
		if primitive.IsSymbol(cur) {
			s.advance()
			tok = token.PRIMITIVE
			*tokVal = token.Value{Raw: string(cur), Pos: pos}
			break
		}
		s.advance()
		s.errorf(start, "illegal character %#U", cur)
		tok = token.ILLEGAL
		*tokVal = token.Value{Raw: string(cur), Pos: pos}
	}
	return tok
}

func (s *Scanner) ident() string {
	start := s.off
	for isIdentPart(s.cur) {
		s.advance()
	}
	for s.cur == '!' {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func (s *Scanner) restOfLine(start int) string {
	for s.cur != '\n' && s.cur != -1 {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func isIdentStart(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' ||
		r >= utf8.RuneSelf && unicode.IsLetter(r)
}

// isIdentPart accepts '&' so that a name containing it reaches the parser
// as one IDENT, where a binding of that name is reported as an error.
func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r) || r == '&'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
