package ast

import (
	"fmt"

	"koru/lang/token"
)

// Chunk is the root of a parsed source file: an ordered sequence of
// top-level Items.
type Chunk struct {
	Name  string
	Items []Item
	EOF   token.Pos
}

func (n *Chunk) Format(f fmt.State, verb rune) { format(f, verb, n, "chunk", map[string]int{"items": len(n.Items)}) }
func (n *Chunk) Span() (start, end token.Pos) {
	if len(n.Items) > 0 {
		s, _ := n.Items[0].Span()
		return s, n.EOF
	}
	return n.EOF, n.EOF
}
func (n *Chunk) Walk(v Visitor) {
	for _, it := range n.Items {
		Walk(v, it)
	}
}

// Signature is the optional `|args.outputs` literal prefixing a binding's
// words, or the typed hole inside a Placeholder. Outputs defaults to 1 when
// omitted from the source (HasOutputs is false).
type Signature struct {
	Bar        token.Pos
	Args       int
	HasOutputs bool
	Outputs    int
	End        token.Pos
}

func (n *Signature) Format(f fmt.State, verb rune) { format(f, verb, n, "signature", nil) }
func (n *Signature) Span() (start, end token.Pos)  { return n.Bar, n.End }
func (n *Signature) Walk(_ Visitor)                {}

// Binding represents `name = words` or `name ← words`, with an optional
// signature literal between the separator and the words.
type Binding struct {
	Name      string
	NamePos   token.Pos
	Sep       token.Token // EQ or LARROW
	SepPos    token.Pos
	Signature *Signature // nil if omitted
	Words     []Word     // may be empty (name-only forward declaration)
}

func (n *Binding) item() {}
func (n *Binding) Format(f fmt.State, verb rune) {
	format(f, verb, n, "binding "+n.Name, map[string]int{"words": len(n.Words)})
}
func (n *Binding) Span() (start, end token.Pos) {
	end = n.SepPos + 1
	if n.Signature != nil {
		_, end = n.Signature.Span()
	}
	if len(n.Words) > 0 {
		_, end = n.Words[len(n.Words)-1].Span()
	}
	return n.NamePos, end
}
func (n *Binding) Walk(v Visitor) {
	if n.Signature != nil {
		Walk(v, n.Signature)
	}
	for _, w := range n.Words {
		Walk(v, w)
	}
}

// WordsItem represents a bare, top-level words expression (not bound to a
// name).
type WordsItem struct {
	Words []Word
}

func (n *WordsItem) item() {}
func (n *WordsItem) Format(f fmt.State, verb rune) {
	format(f, verb, n, "words", map[string]int{"words": len(n.Words)})
}
func (n *WordsItem) Span() (start, end token.Pos) {
	if len(n.Words) == 0 {
		return token.NoPos, token.NoPos
	}
	start, _ = n.Words[0].Span()
	_, end = n.Words[len(n.Words)-1].Span()
	return start, end
}
func (n *WordsItem) Walk(v Visitor) {
	for _, w := range n.Words {
		Walk(v, w)
	}
}

// TestScope represents a `--- ... ---` delimited block of nested Items,
// run only under test.
type TestScope struct {
	Open  token.Pos
	Items []Item
	Close token.Pos // position of the token after the closing '---'; the EOF position if unterminated
}

func (n *TestScope) item() {}
func (n *TestScope) Format(f fmt.State, verb rune) {
	format(f, verb, n, "test scope", map[string]int{"items": len(n.Items)})
}
func (n *TestScope) Span() (start, end token.Pos) { return n.Open, n.Close }
func (n *TestScope) Walk(v Visitor) {
	for _, it := range n.Items {
		Walk(v, it)
	}
}

// BlankLines represents two or more consecutive newlines between items,
// preserved so a formatter could reproduce the source's paragraph breaks.
type BlankLines struct {
	Pos   token.Pos
	Count int
}

func (n *BlankLines) item() {}
func (n *BlankLines) Format(f fmt.State, verb rune) { format(f, verb, n, "blank lines", nil) }
func (n *BlankLines) Span() (start, end token.Pos)  { return n.Pos, n.Pos }
func (n *BlankLines) Walk(_ Visitor)                {}
