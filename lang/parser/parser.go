// Package parser implements the two-pass front end that turns koru source
// text into a slice of top-level ast.Item. Parsing never aborts: a
// malformed construct is recorded as a span-annotated scanner.Error and
// parsing resynchronises at the next newline or closing bracket, so a
// caller always gets a best-effort AST alongside any errors.
package parser

import (
	"fmt"

	"koru/lang/ast"
	"koru/lang/scanner"
	"koru/lang/token"
)

// Diagnostic is a style/advice note. Unlike
// errors, diagnostics never affect how a program parses; they only suggest
// a more idiomatic spelling.
type Diagnostic struct {
	Pos     token.Pos
	Message string
}

// Parse tokenizes and parses src, returning the parsed items, a
// scanner.ErrorList of parse errors (nil if there were none) and any style
// diagnostics. path is used only to label positions; it may be empty.
func Parse(src []byte, path string) (items []ast.Item, errs scanner.ErrorList, diags []Diagnostic) {
	items, _, errs, diags = ParseFile(token.NewFileSet(), path, src)
	return items, errs, diags
}

// ParseFile is like Parse but adds the source to an existing FileSet, so
// that positions from multiple parses can be compared and resolved
// together.
func ParseFile(fset *token.FileSet, path string, src []byte) (items []ast.Item, file *token.File, errs scanner.ErrorList, diags []Diagnostic) {
	var p parser
	p.init(fset, path, src)
	items = p.parseItems(token.EOF)
	p.errors.Sort()
	return items, p.file, p.errors, p.diags
}

// errPanicMode is recovered at item granularity to implement error
// recovery: a syntax error inside one item does not prevent the rest of
// the source from being parsed.
type errPanicMode struct{}

// parser holds the mutable state of a single parse.
type parser struct {
	file *token.File
	scan scanner.Scanner

	errors scanner.ErrorList
	diags  []Diagnostic

	tok token.Token
	val token.Value

	// one token of lookahead, needed to tell a binding (IDENT '=' ...) apart
	// from a bare words item starting with an IDENT.
	hasNext bool
	nextTok token.Token
	nextVal token.Value
}

func (p *parser) init(fset *token.FileSet, path string, src []byte) {
	p.file = fset.AddFile(path, len(src))
	p.scan.Init(p.file, src, p.errors.Add)
	p.advance()
}

// advance fetches the next token, skipping nothing (comments are real
// words in this grammar and are returned to the caller like any other
// token).
func (p *parser) advance() {
	if p.hasNext {
		p.tok, p.val = p.nextTok, p.nextVal
		p.hasNext = false
		return
	}
	p.tok = p.scan.Scan(&p.val)
}

// peek returns the token following the current one without consuming it.
func (p *parser) peek() (token.Token, token.Value) {
	if !p.hasNext {
		p.nextTok = p.scan.Scan(&p.nextVal)
		p.hasNext = true
	}
	return p.nextTok, p.nextVal
}

func (p *parser) pos() token.Pos { return p.val.Pos }

func (p *parser) error(pos token.Pos, msg string) {
	p.errors.Add(p.file.Position(pos), msg)
}

func (p *parser) errorf(pos token.Pos, format string, args ...any) {
	p.error(pos, fmt.Sprintf(format, args...))
}

func (p *parser) diagnostic(pos token.Pos, msg string) {
	p.diags = append(p.diags, Diagnostic{Pos: pos, Message: msg})
}

// expect reports an error and unwinds to the nearest recovery point if the
// current token is not tok; otherwise it consumes it and returns its
// position.
func (p *parser) expect(tok token.Token) token.Pos {
	if p.tok != tok {
		p.errorf(p.pos(), "expected %s, found %s", tok.GoString(), describe(p.tok, p.val))
		panic(errPanicMode{})
	}
	pos := p.pos()
	p.advance()
	return pos
}

func describe(tok token.Token, val token.Value) string {
	if tok.IsLiteral() && val.Raw != "" {
		return fmt.Sprintf("%q", val.Raw)
	}
	return tok.GoString()
}

// syncToRecoveryPoint advances past tokens until a newline, EOF, or a
// closing bracket, so that a failed item does not poison everything that
// follows it.
func (p *parser) syncToRecoveryPoint() {
	for {
		switch p.tok {
		case token.NEWLINE, token.EOF, token.RBRACKET, token.RBRACE, token.RPAREN, token.TRIPLEMIN:
			return
		}
		p.advance()
	}
}
