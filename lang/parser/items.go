package parser

import (
	"strconv"
	"strings"
	"unicode"

	"koru/lang/ast"
	"koru/lang/token"
)

// parseItems parses items until stop or EOF is reached. stop is token.EOF
// at the top level, or token.TRIPLEMIN when parsing the body of a nested
// test scope.
func (p *parser) parseItems(stop token.Token) []ast.Item {
	var items []ast.Item
	for p.tok != stop && p.tok != token.EOF {
		if p.tok == token.NEWLINE {
			start := p.pos()
			n := 0
			for p.tok == token.NEWLINE {
				n++
				p.advance()
			}
			if n >= 2 {
				items = append(items, &ast.BlankLines{Pos: start, Count: n})
			}
			continue
		}
		if it := p.parseItemRecovered(); it != nil {
			items = append(items, it)
		}
	}
	return items
}

// parseItemRecovered parses a single item, recovering from a syntax error
// by resynchronising and returning nil instead of propagating the panic.
func (p *parser) parseItemRecovered() (it ast.Item) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(errPanicMode); ok {
				p.syncToRecoveryPoint()
				// No item starts with a closing bracket; step past it so
				// parseItems makes progress.
				switch p.tok {
				case token.RBRACKET, token.RBRACE, token.RPAREN:
					p.advance()
				}
				it = nil
				return
			}
			panic(r)
		}
	}()
	return p.parseItem()
}

func (p *parser) parseItem() ast.Item {
	switch {
	case p.tok == token.TRIPLEMIN:
		return p.parseTestScope()
	case p.tok == token.IDENT && p.bindingFollows():
		return p.parseBinding()
	case p.canStartWord():
		words := p.parseWords(noStop)
		p.validateWords(words, false)
		return &ast.WordsItem{Words: words}
	default:
		p.errorf(p.pos(), "unexpected %s", describe(p.tok, p.val))
		panic(errPanicMode{})
	}
}

// bindingFollows reports whether the current IDENT is followed directly by
// '=' or '←', the two binding separators.
func (p *parser) bindingFollows() bool {
	next, _ := p.peek()
	return next == token.EQ || next == token.LARROW
}

func (p *parser) parseBinding() *ast.Binding {
	name := p.val.Raw
	namePos := p.pos()
	if strings.ContainsRune(name, '&') {
		p.errorf(namePos, "AmpersandBindingName: binding name %q must not contain '&'", name)
	}
	if isStyleCandidate(name) {
		p.diagnostic(namePos, "binding name "+name+" should use TitleCase")
	}
	p.advance() // IDENT

	sep := p.tok // EQ or LARROW, guaranteed by bindingFollows
	sepPos := p.pos()
	p.advance()

	b := &ast.Binding{Name: name, NamePos: namePos, Sep: sep, SepPos: sepPos}
	if p.tok == token.BAR {
		b.Signature = p.parseSignature()
	}
	if p.canStartWord() {
		b.Words = p.parseWords(noStop)
		p.validateWords(b.Words, true)
	}
	return b
}

// isStyleCandidate reports whether name is at least 3 runes long and
// starts with a lowercase letter, the style diagnostic trigger suggesting
// TitleCase instead.
func isStyleCandidate(name string) bool {
	runes := []rune(name)
	if len(runes) < 3 {
		return false
	}
	return unicode.IsLower(runes[0])
}

func (p *parser) parseTestScope() *ast.TestScope {
	open := p.expect(token.TRIPLEMIN)
	items := p.parseItems(token.TRIPLEMIN)
	ts := &ast.TestScope{Open: open, Items: items}
	if p.tok == token.TRIPLEMIN {
		p.advance()
		ts.Close = p.pos()
	} else {
		p.errorf(open, "test scope opened here is never closed with '---'")
		ts.Close = p.pos()
	}
	return ts
}

// parseSignature parses a `|args(.outputs)?` literal. BAR is the current
// token.
func (p *parser) parseSignature() *ast.Signature {
	bar := p.expect(token.BAR)
	sig := &ast.Signature{Bar: bar, Outputs: 1}

	if p.tok != token.NUMBER {
		p.errorf(p.pos(), "InvalidArgCount: expected a number after '|', found %s", describe(p.tok, p.val))
		sig.End = p.pos()
		return sig
	}
	raw := p.val.Raw
	sig.End = p.pos() + token.Pos(len(raw))
	p.advance()

	parts := strings.SplitN(raw, ".", 2)
	args, err := strconv.Atoi(parts[0])
	if err != nil || args < 0 {
		p.errorf(bar, "InvalidArgCount: invalid signature argument count %q", parts[0])
		args = 0
	}
	sig.Args = args
	if len(parts) == 2 {
		outputs, err := strconv.Atoi(parts[1])
		if err != nil || outputs < 0 {
			p.errorf(bar, "InvalidOutCount: invalid signature output count %q", parts[1])
			outputs = 1
		}
		sig.Outputs = outputs
		sig.HasOutputs = true
	}
	return sig
}
