package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koru/lang/ast"
	"koru/lang/parser"
	"koru/lang/token"
)

func parse(t *testing.T, src string) ([]ast.Item, []parser.Diagnostic) {
	t.Helper()
	items, errs, diags := parser.Parse([]byte(src), "test.koru")
	require.Empty(t, errs, "unexpected parse errors: %v", errs)
	return items, diags
}

func TestParseSimpleBinding(t *testing.T) {
	items, _ := parse(t, "F = +1\n")
	require.Len(t, items, 1)
	b, ok := items[0].(*ast.Binding)
	require.True(t, ok)
	assert.Equal(t, "F", b.Name)
	assert.Equal(t, token.EQ, b.Sep)
	require.Len(t, b.Words, 2)
	assert.IsType(t, &ast.Primitive{}, b.Words[0])
	assert.IsType(t, &ast.Number{}, b.Words[1])
}

func TestParseBindingWithLeftArrow(t *testing.T) {
	items, _ := parse(t, "Plus ← add\n")
	b := items[0].(*ast.Binding)
	assert.Equal(t, "Plus", b.Name)
	assert.Equal(t, token.LARROW, b.Sep)
}

func TestParseBindingWithSignature(t *testing.T) {
	items, _ := parse(t, "F = |2.1 add\n")
	b := items[0].(*ast.Binding)
	require.NotNil(t, b.Signature)
	assert.Equal(t, 2, b.Signature.Args)
	assert.True(t, b.Signature.HasOutputs)
	assert.Equal(t, 1, b.Signature.Outputs)
}

func TestParseSignatureDefaultsToOneOutput(t *testing.T) {
	items, _ := parse(t, "F = |1 dup\n")
	b := items[0].(*ast.Binding)
	require.NotNil(t, b.Signature)
	assert.Equal(t, 1, b.Signature.Args)
	assert.False(t, b.Signature.HasOutputs)
	assert.Equal(t, 1, b.Signature.Outputs)
}

func TestParseWordsItem(t *testing.T) {
	items, _ := parse(t, "1 2 add\n")
	require.Len(t, items, 1)
	w, ok := items[0].(*ast.WordsItem)
	require.True(t, ok)
	require.Len(t, w.Words, 3)
}

func TestParseStrand(t *testing.T) {
	items, _ := parse(t, "1_2_3\n")
	w := items[0].(*ast.WordsItem)
	require.Len(t, w.Words, 1)
	strand, ok := w.Words[0].(*ast.Strand)
	require.True(t, ok)
	assert.Len(t, strand.Items, 3)
}

func TestParseModifierWithOperand(t *testing.T) {
	items, _ := parse(t, "reduce(add)\n")
	w := items[0].(*ast.WordsItem)
	require.Len(t, w.Words, 1)
	mod, ok := w.Words[0].(*ast.Modifier)
	require.True(t, ok)
	assert.Equal(t, "reduce", mod.Name)
	require.Len(t, mod.Operands, 1)
	fn, ok := mod.Operands[0].(*ast.Func)
	require.True(t, ok)
	require.Len(t, fn.Body, 1)
	assert.IsType(t, &ast.Primitive{}, fn.Body[0])
}

func TestParseModifierEmptyOperandIsIdentity(t *testing.T) {
	items, _ := parse(t, "reduce()\n")
	w := items[0].(*ast.WordsItem)
	mod := w.Words[0].(*ast.Modifier)
	fn := mod.Operands[0].(*ast.Func)
	require.Len(t, fn.Body, 1)
	prim := fn.Body[0].(*ast.Primitive)
	assert.Equal(t, "identity", prim.Name)
}

func TestParseModifierTwoOperands(t *testing.T) {
	items, _ := parse(t, "fork(add)(sub)\n")
	w := items[0].(*ast.WordsItem)
	mod := w.Words[0].(*ast.Modifier)
	assert.Equal(t, "fork", mod.Name)
	require.Len(t, mod.Operands, 2)
}

func TestParseUserModifierBangArity(t *testing.T) {
	items, _ := parse(t, "myMod!(add)\n")
	w := items[0].(*ast.WordsItem)
	mod := w.Words[0].(*ast.Modifier)
	assert.Equal(t, "myMod!", mod.Name)
	require.Len(t, mod.Operands, 1)
}

func TestParseSwitch(t *testing.T) {
	items, _ := parse(t, "reduce(add|sub)\n")
	w := items[0].(*ast.WordsItem)
	mod := w.Words[0].(*ast.Modifier)
	sw, ok := mod.Operands[0].(*ast.Switch)
	require.True(t, ok)
	require.Len(t, sw.Branches, 2)
}

func TestParseArray(t *testing.T) {
	items, _ := parse(t, "[1 2 3]\n")
	w := items[0].(*ast.WordsItem)
	arr, ok := w.Words[0].(*ast.Array)
	require.True(t, ok)
	assert.False(t, arr.Boxed)
	require.Len(t, arr.Rows, 1)
	assert.Len(t, arr.Rows[0], 3)
}

func TestParseBoxedArrayMultiline(t *testing.T) {
	items, _ := parse(t, "{1 2\n3}\n")
	w := items[0].(*ast.WordsItem)
	arr := w.Words[0].(*ast.Array)
	assert.True(t, arr.Boxed)
	require.Len(t, arr.Rows, 2)
}

func TestParseOceanChain(t *testing.T) {
	items, _ := parse(t, "1 2 3 ocean ocean\n")
	w := items[0].(*ast.WordsItem)
	require.Len(t, w.Words, 4)
	oc, ok := w.Words[3].(*ast.Ocean)
	require.True(t, ok)
	assert.Len(t, oc.Tail, 1)
}

func TestParsePlaceholder(t *testing.T) {
	items, _ := parse(t, "dip(^|1)\n")
	w := items[0].(*ast.WordsItem)
	mod := w.Words[0].(*ast.Modifier)
	fn, ok := mod.Operands[0].(*ast.Func)
	require.True(t, ok)
	require.Len(t, fn.Body, 1)
	ph, ok := fn.Body[0].(*ast.Placeholder)
	require.True(t, ok)
	require.NotNil(t, ph.Signature)
	assert.Equal(t, 1, ph.Signature.Args)
}

func TestParseMultilineString(t *testing.T) {
	items, _ := parse(t, "$ line one\n$ line two\n")
	w := items[0].(*ast.WordsItem)
	ms, ok := w.Words[0].(*ast.MultilineString)
	require.True(t, ok)
	assert.Equal(t, []string{"line one", "line two"}, ms.Lines)
}

func TestParseBlankLinesSeparateMultilineGroups(t *testing.T) {
	items, _ := parse(t, "$ line one\n\n$ line two\n")
	require.Len(t, items, 3)
	_, ok := items[0].(*ast.WordsItem)
	require.True(t, ok)
	_, ok = items[1].(*ast.BlankLines)
	require.True(t, ok)
	_, ok = items[2].(*ast.WordsItem)
	require.True(t, ok)
}

func TestParseTestScope(t *testing.T) {
	items, _ := parse(t, "---\n1 2 add\n---\n")
	require.Len(t, items, 1)
	ts, ok := items[0].(*ast.TestScope)
	require.True(t, ok)
	require.Len(t, ts.Items, 1)
}

func TestParseComment(t *testing.T) {
	items, _ := parse(t, "# a note\n")
	w := items[0].(*ast.WordsItem)
	c, ok := w.Words[0].(*ast.Comment)
	require.True(t, ok)
	assert.Equal(t, " a note", c.Text)
}

func TestParseSingletonUnderscoreStrand(t *testing.T) {
	items, _ := parse(t, "_\n")
	w := items[0].(*ast.WordsItem)
	strand, ok := w.Words[0].(*ast.Strand)
	require.True(t, ok)
	assert.Empty(t, strand.Items)
}

func TestParseAmpersandBindingNameIsError(t *testing.T) {
	_, errs, _ := parser.Parse([]byte("F&oo = add\n"), "test.koru")
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "AmpersandBindingName")
}

func TestParseStyleDiagnosticTitleCase(t *testing.T) {
	_, _, diags := parser.Parse([]byte("myFunc = add\n"), "test.koru")
	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "TitleCase")
}

func TestParseStyleDiagnosticFlipOver(t *testing.T) {
	_, _, diags := parser.Parse([]byte("F = flip over\n"), "test.koru")
	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "dip dup")
}

func TestParseStyleDiagnosticNotEqNotLtNotGt(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want string
	}{
		{"F = not eq\n", "ne"},
		{"F = not lt\n", "ge"},
		{"F = not gt\n", "le"},
	} {
		_, _, diags := parser.Parse([]byte(tc.src), "test.koru")
		require.NotEmptyf(t, diags, "src %q", tc.src)
		assert.Containsf(t, diags[0].Message, tc.want, "src %q", tc.src)
	}
}

func TestParseStyleDiagnosticChainedBind(t *testing.T) {
	_, _, diags := parser.Parse([]byte("F = bind (bind add sub) mul\n"), "test.koru")
	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "chained bind")
}

func TestParseStyleDiagnosticOustDipOustGap(t *testing.T) {
	_, _, diags := parser.Parse([]byte("F = oust dip add\n"), "test.koru")
	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "oust dip")

	_, _, diags = parser.Parse([]byte("G = oust gap add\n"), "test.koru")
	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "oust gap")
}

func TestParseFunctionNotAllowedOutsideModifierOrBinding(t *testing.T) {
	_, errs, _ := parser.Parse([]byte("(add) 1 2\n"), "test.koru")
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "FunctionNotAllowed")
}

func TestParseFunctionAsSoleBindingBodyIsAllowed(t *testing.T) {
	_, errs, _ := parser.Parse([]byte("F = (add)\n"), "test.koru")
	assert.Empty(t, errs)
}

func TestParseUnterminatedTestScopeErrors(t *testing.T) {
	_, errs, _ := parser.Parse([]byte("---\n1 2 add\n"), "test.koru")
	require.NotEmpty(t, errs)
}

func TestParseRecoversFromSyntaxError(t *testing.T) {
	items, errs, _ := parser.Parse([]byte(")\n1 2 add\n"), "test.koru")
	require.NotEmpty(t, errs)
	require.Len(t, items, 1)
	w, ok := items[0].(*ast.WordsItem)
	require.True(t, ok)
	require.Len(t, w.Words, 3)
}
