package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koru/lang/scanner"
	"koru/lang/token"
)

func scanAll(t *testing.T, src string) []scanner.TokenAndValue {
	t.Helper()
	fset := token.NewFileSet()
	f := fset.AddFile("test.koru", len(src))
	toks, err := scanner.ScanAll(f, []byte(src))
	if err != nil {
		t.Logf("scan errors: %v", err)
	}
	return toks
}

func TestScanPunctuation(t *testing.T) {
	toks := scanAll(t, "F ← +1\n")
	require.True(t, len(toks) >= 5)
	assert.Equal(t, token.IDENT, toks[0].Token)
	assert.Equal(t, "F", toks[0].Value.Raw)
	assert.Equal(t, token.LARROW, toks[1].Token)
	assert.Equal(t, token.PRIMITIVE, toks[2].Token)
	assert.Equal(t, "+", toks[2].Value.Raw)
	assert.Equal(t, token.NUMBER, toks[3].Token)
	assert.Equal(t, float64(1), toks[3].Value.Number)
}

func TestScanNegativeNumber(t *testing.T) {
	toks := scanAll(t, "¯2.5")
	require.NotEmpty(t, toks)
	assert.Equal(t, token.NUMBER, toks[0].Token)
	assert.Equal(t, -2.5, toks[0].Value.Number)
}

func TestScanBacktickNegative(t *testing.T) {
	toks := scanAll(t, "`3")
	require.NotEmpty(t, toks)
	assert.Equal(t, token.NUMBER, toks[0].Token)
	assert.Equal(t, float64(-3), toks[0].Value.Number)
}

func TestScanChar(t *testing.T) {
	toks := scanAll(t, "@a @\\n")
	require.True(t, len(toks) >= 2)
	assert.Equal(t, token.CHAR, toks[0].Token)
	assert.Equal(t, 'a', toks[0].Value.Rune)
	assert.Equal(t, token.CHAR, toks[1].Token)
	assert.Equal(t, '\n', toks[1].Value.Rune)
}

func TestScanString(t *testing.T) {
	toks := scanAll(t, `"hello\nworld"`)
	require.NotEmpty(t, toks)
	assert.Equal(t, token.STRING, toks[0].Token)
	assert.Equal(t, "hello\nworld", toks[0].Value.Str)
}

func TestScanFormatString(t *testing.T) {
	toks := scanAll(t, `$"foo _"`)
	require.NotEmpty(t, toks)
	assert.Equal(t, token.FMTSTRING, toks[0].Token)
	assert.Equal(t, "foo _", toks[0].Value.Str)
}

func TestScanMultiline(t *testing.T) {
	toks := scanAll(t, "$ a line\n")
	require.NotEmpty(t, toks)
	assert.Equal(t, token.MULTILINE, toks[0].Token)
	assert.Equal(t, "a line", toks[0].Value.Str)
}

func TestScanComment(t *testing.T) {
	toks := scanAll(t, "# a note\n")
	require.NotEmpty(t, toks)
	assert.Equal(t, token.COMMENT, toks[0].Token)
	assert.Equal(t, " a note", toks[0].Value.Str)
}

func TestScanTestScopeDelimiter(t *testing.T) {
	toks := scanAll(t, "---\n")
	require.NotEmpty(t, toks)
	assert.Equal(t, token.TRIPLEMIN, toks[0].Token)
}

func TestScanIllegalDashes(t *testing.T) {
	toks := scanAll(t, "--\n")
	require.NotEmpty(t, toks)
	assert.Equal(t, token.ILLEGAL, toks[0].Token)
}

func TestScanPrimitiveIdent(t *testing.T) {
	toks := scanAll(t, "reduce each!")
	require.True(t, len(toks) >= 2)
	assert.Equal(t, token.PRIMITIVE, toks[0].Token)
	assert.Equal(t, token.IDENT, toks[1].Token) // '!'-suffixed modifier ident is not a primitive name
	assert.Equal(t, "each!", toks[1].Value.Raw)
}

func TestScanUserIdentVsPrimitive(t *testing.T) {
	toks := scanAll(t, "MyFunc")
	require.NotEmpty(t, toks)
	assert.Equal(t, token.IDENT, toks[0].Token)
}

func TestScanStrandAndPlaceholder(t *testing.T) {
	toks := scanAll(t, "1_2_3 ^|1")
	var kinds []token.Token
	for _, tv := range toks {
		kinds = append(kinds, tv.Token)
	}
	assert.Contains(t, kinds, token.UNDERSCORE)
	assert.Contains(t, kinds, token.CARET)
	assert.Contains(t, kinds, token.BAR)
}

func TestScanIllegalCharacter(t *testing.T) {
	fset := token.NewFileSet()
	src := "\x01"
	f := fset.AddFile("bad.koru", len(src))
	toks, err := scanner.ScanAll(f, []byte(src))
	require.Error(t, err)
	require.NotEmpty(t, toks)
	assert.Equal(t, token.ILLEGAL, toks[0].Token)
}

func TestScanReachesEOF(t *testing.T) {
	toks := scanAll(t, "")
	require.NotEmpty(t, toks)
	assert.Equal(t, token.EOF, toks[len(toks)-1].Token)
}
