package ast

import (
	"fmt"
	"strconv"

	"koru/lang/token"
)

// Comment is a `# ...` line comment. It is a Word so it can appear between
// other words without breaking a strand or modifier operand list, matching
// the grammar's `word := comment | strand | placeholder`.
type Comment struct {
	Pos  token.Pos
	Text string // without the leading '#'
}

func (n *Comment) word()                        {}
func (n *Comment) Format(f fmt.State, verb rune) { format(f, verb, n, "#"+n.Text, nil) }
func (n *Comment) Span() (start, end token.Pos)  { return n.Pos, n.Pos + token.Pos(len(n.Text)+1) }
func (n *Comment) Walk(_ Visitor)                {}

// Spaces represents a run of significant whitespace, preserved only where
// the grammar calls it out explicitly (e.g. around a binding's separator).
type Spaces struct {
	Pos   token.Pos
	Count int
}

func (n *Spaces) word()                        {}
func (n *Spaces) Format(f fmt.State, verb rune) { format(f, verb, n, "spaces", nil) }
func (n *Spaces) Span() (start, end token.Pos)  { return n.Pos, n.Pos + token.Pos(n.Count) }
func (n *Spaces) Walk(_ Visitor)                {}

// Primitive is a built-in word: an operator symbol (+, -, ...) or a
// multi-letter name (reduce, each, dup, ...) resolved from the primitive
// registry. Oceans, if any, chain scalars prepended after this term (see
// Ocean).
type Primitive struct {
	Pos  token.Pos
	Name string
}

func (n *Primitive) word()                        {}
func (n *Primitive) Format(f fmt.State, verb rune) { format(f, verb, n, n.Name, nil) }
func (n *Primitive) Span() (start, end token.Pos)  { return n.Pos, n.Pos + token.Pos(len(n.Name)) }
func (n *Primitive) Walk(_ Visitor)                {}

// Ident is a reference to a user binding.
type Ident struct {
	Pos  token.Pos
	Name string
}

func (n *Ident) word()                        {}
func (n *Ident) Format(f fmt.State, verb rune) { format(f, verb, n, n.Name, nil) }
func (n *Ident) Span() (start, end token.Pos)  { return n.Pos, n.Pos + token.Pos(len(n.Name)) }
func (n *Ident) Walk(_ Visitor)                {}

// Number is a NUMBER literal, carrying both its raw source text (so it can
// be round-tripped) and its parsed value.
type Number struct {
	Pos   token.Pos
	Raw   string
	Value float64
}

func (n *Number) word()                        {}
func (n *Number) Format(f fmt.State, verb rune) { format(f, verb, n, n.Raw, nil) }
func (n *Number) Span() (start, end token.Pos)  { return n.Pos, n.Pos + token.Pos(len(n.Raw)) }
func (n *Number) Walk(_ Visitor)                {}

// Char is a CHAR literal, e.g. `@a`.
type Char struct {
	Pos   token.Pos
	Raw   string
	Value rune
}

func (n *Char) word() {}
func (n *Char) Format(f fmt.State, verb rune) {
	format(f, verb, n, "@"+strconv.QuoteRune(n.Value), nil)
}
func (n *Char) Span() (start, end token.Pos) { return n.Pos, n.Pos + token.Pos(len(n.Raw)) }
func (n *Char) Walk(_ Visitor)                {}

// String is a `"..."` STRING literal.
type String struct {
	Pos   token.Pos
	Raw   string
	Value string
}

func (n *String) word()                        {}
func (n *String) Format(f fmt.State, verb rune) { format(f, verb, n, n.Raw, nil) }
func (n *String) Span() (start, end token.Pos)  { return n.Pos, n.Pos + token.Pos(len(n.Raw)) }
func (n *String) Walk(_ Visitor)                {}

// FormatString is a `$"..."` format string, whose `_` placeholders are
// filled by the words preceding it at runtime (interpolation mechanics are
// out of scope here; only the literal is represented).
type FormatString struct {
	Pos   token.Pos
	Raw   string
	Value string
}

func (n *FormatString) word()                        {}
func (n *FormatString) Format(f fmt.State, verb rune) { format(f, verb, n, n.Raw, nil) }
func (n *FormatString) Span() (start, end token.Pos)  { return n.Pos, n.Pos + token.Pos(len(n.Raw)) }
func (n *FormatString) Walk(_ Visitor)                {}

// MultilineString is one or more consecutive `$ ...` MULTILINE lines,
// joined into a single string value separated by '\n'.
type MultilineString struct {
	Start token.Pos
	Lines []string
	End   token.Pos
}

func (n *MultilineString) word() {}
func (n *MultilineString) Format(f fmt.State, verb rune) {
	format(f, verb, n, "multiline string", map[string]int{"lines": len(n.Lines)})
}
func (n *MultilineString) Span() (start, end token.Pos) { return n.Start, n.End }
func (n *MultilineString) Walk(_ Visitor)               {}

// Strand is an underscore-joined sequence of items, e.g. `1_2_3`. A single
// `_` surrounded by spaces parses as a Strand with no Items and one entry
// in Underscores.
type Strand struct {
	Items       []Word
	Underscores []token.Pos // len(Items)-1, or 1 for a lone `_`
}

func (n *Strand) word() {}
func (n *Strand) Format(f fmt.State, verb rune) {
	format(f, verb, n, "strand", map[string]int{"items": len(n.Items)})
}
func (n *Strand) Span() (start, end token.Pos) {
	if len(n.Items) == 0 {
		return token.NoPos, token.NoPos
	}
	start, _ = n.Items[0].Span()
	_, end = n.Items[len(n.Items)-1].Span()
	return start, end
}
func (n *Strand) Walk(v Visitor) {
	for _, it := range n.Items {
		Walk(v, it)
	}
}

// Array is a bracketed `[...]` or curly `{...}` array literal. Boxed
// reports whether it used curly braces (nested/ragged boxed array) rather
// than square brackets (rectangular array). Rows holds one slice of words
// per source line inside the brackets; a single-line array has one row.
type Array struct {
	Open  token.Pos
	Boxed bool
	Rows  [][]Word
	Close token.Pos
}

func (n *Array) word() {}
func (n *Array) Format(f fmt.State, verb rune) {
	label := "array"
	if n.Boxed {
		label = "boxed array"
	}
	format(f, verb, n, label, map[string]int{"rows": len(n.Rows)})
}
func (n *Array) Span() (start, end token.Pos) { return n.Open, n.Close }
func (n *Array) Walk(v Visitor) {
	for _, row := range n.Rows {
		for _, w := range row {
			Walk(v, w)
		}
	}
}

// Func is a `(...)` function literal with a single branch (no `|`
// separators). Multiple pipe-separated branches instead produce a Switch.
type Func struct {
	Open  token.Pos
	Body  []Word
	Close token.Pos
}

func (n *Func) word() {}
func (n *Func) Format(f fmt.State, verb rune) {
	format(f, verb, n, "func", map[string]int{"words": len(n.Body)})
}
func (n *Func) Span() (start, end token.Pos) { return n.Open, n.Close }
func (n *Func) Walk(v Visitor) {
	for _, w := range n.Body {
		Walk(v, w)
	}
}

// Switch is a `(branch|branch|...)` function literal with two or more
// pipe-separated branches.
type Switch struct {
	Open     token.Pos
	Branches [][]Word
	Bars     []token.Pos // len(Branches)-1
	Close    token.Pos
}

func (n *Switch) word() {}
func (n *Switch) Format(f fmt.State, verb rune) {
	format(f, verb, n, "switch", map[string]int{"branches": len(n.Branches)})
}
func (n *Switch) Span() (start, end token.Pos) { return n.Open, n.Close }
func (n *Switch) Walk(v Visitor) {
	for _, branch := range n.Branches {
		for _, w := range branch {
			Walk(v, w)
		}
	}
}

// Modifier is a modifier primitive or user-defined (trailing '!') modifier
// applied to its operand terms. Operands is exactly the modifier's arity
// in length; an omitted `()` operand is filled with an identity Primitive
// by the parser.
type Modifier struct {
	Pos      token.Pos
	Name     string
	Operands []Word
}

func (n *Modifier) word() {}
func (n *Modifier) Format(f fmt.State, verb rune) {
	format(f, verb, n, n.Name, map[string]int{"operands": len(n.Operands)})
}
func (n *Modifier) Span() (start, end token.Pos) {
	end = n.Pos + token.Pos(len(n.Name))
	if len(n.Operands) > 0 {
		_, end = n.Operands[len(n.Operands)-1].Span()
	}
	return n.Pos, end
}
func (n *Modifier) Walk(v Visitor) {
	for _, o := range n.Operands {
		Walk(v, o)
	}
}

// Ocean is a primitive term immediately followed by one or more ocean
// (prepend-scalar) operators, e.g. a chain building up a small literal
// array without bracket syntax.
type Ocean struct {
	Head Word
	Tail []Word
}

func (n *Ocean) word() {}
func (n *Ocean) Format(f fmt.State, verb rune) {
	format(f, verb, n, "ocean chain", map[string]int{"tail": len(n.Tail)})
}
func (n *Ocean) Span() (start, end token.Pos) {
	start, end = n.Head.Span()
	if len(n.Tail) > 0 {
		_, end = n.Tail[len(n.Tail)-1].Span()
	}
	return start, end
}
func (n *Ocean) Walk(v Visitor) {
	Walk(v, n.Head)
	for _, w := range n.Tail {
		Walk(v, w)
	}
}

// Placeholder is a `^sig` typed hole used inside a modifier operand.
type Placeholder struct {
	Caret     token.Pos
	Signature *Signature
}

func (n *Placeholder) word()                        {}
func (n *Placeholder) Format(f fmt.State, verb rune) { format(f, verb, n, "placeholder", nil) }
func (n *Placeholder) Span() (start, end token.Pos) {
	end = n.Caret + 1
	if n.Signature != nil {
		_, end = n.Signature.Span()
	}
	return n.Caret, end
}
func (n *Placeholder) Walk(v Visitor) {
	if n.Signature != nil {
		Walk(v, n.Signature)
	}
}
