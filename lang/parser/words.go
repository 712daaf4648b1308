package parser

import (
	"koru/lang/ast"
	"koru/lang/primitive"
	"koru/lang/token"
)

// stopSet is a bitset of additional tokens that end a run of words, beyond
// the baseline NEWLINE/EOF/TRIPLEMIN that always stop a words run.
type stopSet uint8

const (
	noStop       stopSet = 0
	stopRBracket stopSet = 1 << iota
	stopRBrace
	stopRParen
	stopBar
)

func (p *parser) tokenStops(stop stopSet) bool {
	switch p.tok {
	case token.NEWLINE, token.EOF, token.TRIPLEMIN:
		return true
	case token.RBRACKET:
		return stop&stopRBracket != 0
	case token.RBRACE:
		return stop&stopRBrace != 0
	case token.RPAREN:
		return stop&stopRParen != 0
	case token.BAR:
		return stop&stopBar != 0
	}
	return false
}

func (p *parser) canStartWord() bool {
	switch p.tok {
	case token.COMMENT, token.CARET, token.UNDERSCORE, token.PRIMITIVE, token.IDENT,
		token.NUMBER, token.CHAR, token.STRING, token.FMTSTRING, token.MULTILINE,
		token.LBRACKET, token.LBRACE, token.LPAREN:
		return true
	}
	return false
}

// parseWords parses a run of words until one of stop's tokens, a newline,
// EOF or a test-scope delimiter is reached.
func (p *parser) parseWords(stop stopSet) []ast.Word {
	var words []ast.Word
	for p.canStartWord() && !p.tokenStops(stop) {
		words = append(words, p.parseWord())
	}
	return words
}

// validateWords enforces rule that a function literal may only
// appear as a modifier operand (handled separately, never reaching this
// slice) or as the sole word of a binding.
func (p *parser) validateWords(words []ast.Word, isBindingBody bool) {
	for _, w := range words {
		switch w.(type) {
		case *ast.Func, *ast.Switch:
			if isBindingBody && len(words) == 1 {
				continue
			}
			pos, _ := w.Span()
			p.errorf(pos, "FunctionNotAllowed: a function literal is only allowed as a "+
				"modifier operand or as the sole word of a binding")
		}
	}
	p.checkStyleSequence(words)
}

// checkStyleSequence scans a sequence of sibling words for idioms that have
// a more direct primitive, then recurses into each word's own nested word
// sequences (func bodies, array rows, strand items, modifier operands).
func (p *parser) checkStyleSequence(words []ast.Word) {
	for i, w := range words {
		if i+1 < len(words) {
			if name, ok := primitiveName(w); ok {
				if next, ok := primitiveName(words[i+1]); ok {
					p.checkAdjacentPrimitives(w, name, next)
				}
			}
		}
		p.checkStyleWord(w)
	}
}

// checkAdjacentPrimitives flags two adjacent bare primitives that spell out
// a combination with a shorter dedicated primitive.
func (p *parser) checkAdjacentPrimitives(w ast.Word, name, next string) {
	pos, _ := w.Span()
	switch {
	case name == "flip" && next == "over":
		p.diagnostic(pos, "flip over should be written dip dup")
	case name == "not" && next == "eq":
		p.diagnostic(pos, "not eq should be written ne")
	case name == "not" && next == "lt":
		p.diagnostic(pos, "not lt should be written ge")
	case name == "not" && next == "gt":
		p.diagnostic(pos, "not gt should be written le")
	}
}

func primitiveName(w ast.Word) (string, bool) {
	if prim, ok := w.(*ast.Primitive); ok {
		return prim.Name, true
	}
	return "", false
}

// checkStyleWord recurses into w's nested word sequences and, for a
// modifier application, checks its operands for discouraged shapes.
func (p *parser) checkStyleWord(w ast.Word) {
	switch n := w.(type) {
	case *ast.Strand:
		p.checkStyleSequence(n.Items)
	case *ast.Func:
		p.checkStyleSequence(n.Body)
	case *ast.Switch:
		for _, branch := range n.Branches {
			p.checkStyleSequence(branch)
		}
	case *ast.Array:
		for _, row := range n.Rows {
			p.checkStyleSequence(row)
		}
	case *ast.Ocean:
		p.checkStyleWord(n.Head)
		p.checkStyleSequence(n.Tail)
	case *ast.Modifier:
		p.checkModifier(n)
	}
}

// checkModifier flags bind applications chained through an operand instead
// of flattened into one higher-arity bind, and oust wrapping dip or gap,
// both of which have a more direct equivalent.
func (p *parser) checkModifier(n *ast.Modifier) {
	switch n.Name {
	case "bind":
		for _, o := range n.Operands {
			if containsModifierNamed(o, "bind") {
				p.diagnostic(n.Pos, "chained bind should be flattened into a single higher-arity bind")
				break
			}
		}
	case "oust":
		for _, o := range n.Operands {
			if inner, ok := innerModifierName(o); ok && (inner == "dip" || inner == "gap") {
				p.diagnostic(n.Pos, "oust "+inner+" has a more direct equivalent")
			}
		}
	}
	for _, o := range n.Operands {
		p.checkStyleWord(o)
	}
}

// unwrapSingleton strips the wrapping a modifier operand's sole word
// acquires from parseModifierOperand (a one-item Strand, or a one-word
// Func), exposing the word actually written.
func unwrapSingleton(w ast.Word) ast.Word {
	switch n := w.(type) {
	case *ast.Strand:
		if len(n.Items) == 1 {
			return unwrapSingleton(n.Items[0])
		}
	case *ast.Func:
		if len(n.Body) == 1 {
			return unwrapSingleton(n.Body[0])
		}
	}
	return w
}

func innerModifierName(w ast.Word) (string, bool) {
	if m, ok := unwrapSingleton(w).(*ast.Modifier); ok {
		return m.Name, true
	}
	return "", false
}

func containsModifierNamed(w ast.Word, name string) bool {
	inner, ok := innerModifierName(w)
	return ok && inner == name
}

// word := comment | strand | placeholder
func (p *parser) parseWord() ast.Word {
	switch p.tok {
	case token.COMMENT:
		return p.parseComment()
	case token.CARET:
		return p.parsePlaceholder()
	default:
		return p.parseStrand()
	}
}

func (p *parser) parseComment() *ast.Comment {
	c := &ast.Comment{Pos: p.pos(), Text: p.val.Str}
	p.advance()
	return c
}

// strand := modified ('_' modified)*
// A lone '_' (adjacent to spaces, i.e. not immediately preceded by a
// modified term) is a singleton strand.
func (p *parser) parseStrand() ast.Word {
	if p.tok == token.UNDERSCORE {
		pos := p.pos()
		p.advance()
		return &ast.Strand{Underscores: []token.Pos{pos}}
	}

	first := p.parseModified()
	if p.tok != token.UNDERSCORE {
		return first
	}

	items := []ast.Word{first}
	var underscores []token.Pos
	for p.tok == token.UNDERSCORE {
		underscores = append(underscores, p.pos())
		p.advance()
		items = append(items, p.parseModified())
	}
	return &ast.Strand{Items: items, Underscores: underscores}
}

// modified := modifier args* | term
func (p *parser) parseModified() ast.Word {
	if name, arity, ok := p.modifierAhead(); ok {
		return p.parseModifier(name, arity)
	}
	return p.parseTerm()
}

// modifierAhead reports whether the current token begins a modifier
// application: either a registered modifier primitive, or a user-defined
// identifier with a trailing-'!' arity suffix.
func (p *parser) modifierAhead() (name string, arity int, ok bool) {
	switch p.tok {
	case token.PRIMITIVE:
		if prim, found := primitive.ByName(p.val.Raw); found && prim.IsModifier {
			return prim.Name, prim.ModifierArgs, true
		}
	case token.IDENT:
		if n := primitive.ModifierArity(p.val.Raw); n > 0 {
			return p.val.Raw, n, true
		}
	}
	return "", 0, false
}

func (p *parser) parseModifier(name string, arity int) *ast.Modifier {
	pos := p.pos()
	p.advance()
	m := &ast.Modifier{Pos: pos, Name: name}
	for i := 0; i < arity; i++ {
		m.Operands = append(m.Operands, p.parseModifierOperand())
	}
	return m
}

// parseModifierOperand consumes exactly one operand term: a function, a
// strand, or a placeholder. An empty `()` operand is replaced with an
// identity primitive.
func (p *parser) parseModifierOperand() ast.Word {
	if p.tok == token.LPAREN {
		if next, _ := p.peek(); next == token.RPAREN {
			open := p.pos()
			p.advance()
			close := p.expect(token.RPAREN)
			return &ast.Func{Open: open, Body: []ast.Word{&ast.Primitive{Pos: open, Name: "identity"}}, Close: close}
		}
	}
	if p.tok == token.CARET {
		return p.parsePlaceholder()
	}
	if !p.canStartWord() {
		p.errorf(p.pos(), "expected a modifier operand, found %s", describe(p.tok, p.val))
		panic(errPanicMode{})
	}
	return p.parseStrand()
}

// term := primitive ocean* | IDENT | NUMBER | CHAR | STRING | FMT_STRING
//       | MULTILINE_STRING+ | '[' lines ']' | '{' lines '}'
//       | '(' func_contents ('|' func_contents)* ')'
func (p *parser) parseTerm() ast.Word {
	switch p.tok {
	case token.PRIMITIVE:
		return p.parsePrimitiveTerm()
	case token.IDENT:
		w := &ast.Ident{Pos: p.pos(), Name: p.val.Raw}
		p.advance()
		return w
	case token.NUMBER:
		w := &ast.Number{Pos: p.pos(), Raw: p.val.Raw, Value: p.val.Number}
		p.advance()
		return w
	case token.CHAR:
		w := &ast.Char{Pos: p.pos(), Raw: p.val.Raw, Value: p.val.Rune}
		p.advance()
		return w
	case token.STRING:
		w := &ast.String{Pos: p.pos(), Raw: p.val.Raw, Value: p.val.Str}
		p.advance()
		return w
	case token.FMTSTRING:
		w := &ast.FormatString{Pos: p.pos(), Raw: p.val.Raw, Value: p.val.Str}
		p.advance()
		return w
	case token.MULTILINE:
		return p.parseMultiline()
	case token.LBRACKET:
		return p.parseArray(false)
	case token.LBRACE:
		return p.parseArray(true)
	case token.LPAREN:
		return p.parseFuncOrSwitch()
	default:
		p.errorf(p.pos(), "unexpected %s", describe(p.tok, p.val))
		panic(errPanicMode{})
	}
}

// canonicalPrimitiveName maps the raw spelling of a PRIMITIVE token (either
// its symbol or its name) back to the primitive registry's canonical name.
func canonicalPrimitiveName(raw string) string {
	if prim, ok := primitive.ByName(raw); ok {
		return prim.Name
	}
	if r := []rune(raw); len(r) == 1 {
		if prim, ok := primitive.BySymbol(r[0]); ok {
			return prim.Name
		}
	}
	return raw
}

// parsePrimitiveTerm parses a primitive, chaining any immediately
// following repeats of "ocean" into an Ocean word: each repetition pops one
// more scalar from the stack to prepend as a new leading row, so the chain
// is written as repeated bare occurrences of the primitive rather than
// with syntactic operands.
func (p *parser) parsePrimitiveTerm() ast.Word {
	pos := p.pos()
	name := canonicalPrimitiveName(p.val.Raw)
	head := &ast.Primitive{Pos: pos, Name: name}
	p.advance()
	if name != "ocean" {
		return head
	}

	var tail []ast.Word
	for p.tok == token.PRIMITIVE && canonicalPrimitiveName(p.val.Raw) == "ocean" {
		tail = append(tail, &ast.Primitive{Pos: p.pos(), Name: "ocean"})
		p.advance()
	}
	if len(tail) == 0 {
		return head
	}
	return &ast.Ocean{Head: head, Tail: tail}
}

// parseMultiline joins a run of MULTILINE lines, separated by single
// newlines, into one MultilineString; a blank line (2+ newlines) ends the
// run, matching "blank line separates groups" rule.
func (p *parser) parseMultiline() ast.Word {
	start := p.pos()
	var lines []string
	lines = append(lines, p.val.Str)
	end := p.pos() + token.Pos(len(p.val.Raw))
	p.advance()

	for p.tok == token.NEWLINE {
		next, _ := p.peek()
		if next != token.MULTILINE {
			break
		}
		p.advance() // shift the buffered MULTILINE into the current token
		lines = append(lines, p.val.Str)
		end = p.pos() + token.Pos(len(p.val.Raw))
		p.advance()
	}
	return &ast.MultilineString{Start: start, Lines: lines, End: end}
}

// parseArray parses a bracketed `[...]` or curly `{...}` array literal.
// Each source line inside the brackets becomes one row.
func (p *parser) parseArray(boxed bool) *ast.Array {
	open := p.pos()
	closeTok, stop := token.RBRACKET, stopRBracket
	if boxed {
		closeTok, stop = token.RBRACE, stopRBrace
	}
	p.advance()

	arr := &ast.Array{Open: open, Boxed: boxed}
	for {
		for p.tok == token.NEWLINE {
			p.advance()
		}
		if p.tok == closeTok || p.tok == token.EOF {
			break
		}
		row := p.parseWords(stop)
		if len(row) > 0 {
			arr.Rows = append(arr.Rows, row)
		} else if p.tok != closeTok && p.tok != token.EOF {
			// avoid looping forever on an unexpected token inside the array
			p.errorf(p.pos(), "unexpected %s inside array literal", describe(p.tok, p.val))
			panic(errPanicMode{})
		}
	}
	arr.Close = p.expect(closeTok)
	return arr
}

// parseFuncOrSwitch parses `(func_contents ('|' func_contents)*)`, folding
// multiple branches into a Switch and a single branch into a Func.
func (p *parser) parseFuncOrSwitch() ast.Word {
	open := p.pos()
	p.advance()

	branches := [][]ast.Word{p.parseFuncBranch()}
	var bars []token.Pos
	for p.tok == token.BAR {
		bars = append(bars, p.pos())
		p.advance()
		branches = append(branches, p.parseFuncBranch())
	}
	close := p.expect(token.RPAREN)

	if len(branches) == 1 {
		return &ast.Func{Open: open, Body: branches[0], Close: close}
	}
	return &ast.Switch{Open: open, Branches: branches, Bars: bars, Close: close}
}

func (p *parser) parseFuncBranch() []ast.Word {
	var words []ast.Word
	for {
		for p.tok == token.NEWLINE {
			p.advance()
		}
		if !p.canStartWord() || p.tokenStops(stopRParen|stopBar) {
			break
		}
		words = append(words, p.parseWord())
	}
	return words
}

// placeholder := '^' signature_inner
func (p *parser) parsePlaceholder() *ast.Placeholder {
	caret := p.expect(token.CARET)
	ph := &ast.Placeholder{Caret: caret}
	if p.tok == token.BAR {
		ph.Signature = p.parseSignature()
	} else {
		p.errorf(caret, "expected a signature after '^'")
	}
	return ph
}
