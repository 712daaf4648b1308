package token

// A Token represents a lexical token of the koru surface syntax.
type Token int8

//nolint:revive
const (
	ILLEGAL Token = iota
	EOF
	NEWLINE

	// Tokens with values
	IDENT     // name, Name, reduce!
	NUMBER    // 1, 1.5, ¯2, 1e10
	CHAR      // @a
	STRING    // "foo"
	FMTSTRING // $"foo _"
	MULTILINE // $ foo (one line of a multiline string)
	PRIMITIVE // +, -, reduce, each, dup, ...
	COMMENT   // # foo

	// Punctuation
	EQ         // =
	LARROW     // ←
	UNDERSCORE // _
	CARET      // ^
	BAR        // |
	TRIPLEMIN  // ---
	LBRACKET   // [
	RBRACKET   // ]
	LBRACE     // {
	RBRACE     // }
	LPAREN     // (
	RPAREN     // )

	maxToken
)

func (tok Token) String() string {
	if tok < 0 || int(tok) >= len(tokenNames) || tokenNames[tok] == "" {
		return "unknown token"
	}
	return tokenNames[tok]
}

// GoString is like String but quotes punctuation tokens, for use with
// fmt.Sprintf("%#v", tok) when constructing error messages.
func (tok Token) GoString() string {
	switch tok {
	case EQ, LARROW, UNDERSCORE, CARET, BAR, TRIPLEMIN, LBRACKET, RBRACKET, LBRACE, RBRACE, LPAREN, RPAREN:
		return "'" + tokenNames[tok] + "'"
	default:
		return tokenNames[tok]
	}
}

// IsLiteral reports whether tok carries a meaningful Value payload.
func (tok Token) IsLiteral() bool {
	switch tok {
	case IDENT, NUMBER, CHAR, STRING, FMTSTRING, MULTILINE, PRIMITIVE, COMMENT:
		return true
	default:
		return false
	}
}

var tokenNames = [...]string{
	ILLEGAL:    "illegal token",
	EOF:        "end of file",
	NEWLINE:    "newline",
	IDENT:      "identifier",
	NUMBER:     "number literal",
	CHAR:       "character literal",
	STRING:     "string literal",
	FMTSTRING:  "format string literal",
	MULTILINE:  "multiline string literal",
	PRIMITIVE:  "primitive",
	COMMENT:    "comment",
	EQ:         "=",
	LARROW:     "←",
	UNDERSCORE: "_",
	CARET:      "^",
	BAR:        "|",
	TRIPLEMIN:  "---",
	LBRACKET:   "[",
	RBRACKET:   "]",
	LBRACE:     "{",
	RBRACE:     "}",
	LPAREN:     "(",
	RPAREN:     ")",
}

// Value carries the payload of a scanned token alongside its Pos: the raw
// source text and, for literals, the parsed representation.
type Value struct {
	Pos    Pos
	Raw    string
	Number float64 // valid when Token == NUMBER
	Rune   rune    // valid when Token == CHAR
	Str    string  // valid when Token == STRING, FMTSTRING or MULTILINE (unescaped)
}
