package compiler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koru/lang/ast"
	"koru/lang/checker"
	"koru/lang/compiler"
	"koru/lang/parser"
	"koru/lang/token"
)

func compile(t *testing.T, src string) *compiler.Program {
	t.Helper()
	items, errs, _ := parser.Parse([]byte(src), "test.koru")
	require.Empty(t, errs, "unexpected parse errors: %v", errs)
	chunk := &ast.Chunk{Name: "test", Items: items}
	progs, err := compiler.CompileFiles(context.Background(), token.NewFileSet(), []*ast.Chunk{chunk})
	require.NoError(t, err)
	require.Len(t, progs, 1)
	return progs[0]
}

func TestCompileSimpleBinding(t *testing.T) {
	// Words compile in written order: Primitive(add) first, then Number(1) —
	// add consumes two stack values before the literal is ever pushed.
	prog := compile(t, "F ← +1\n")
	f, ok := prog.Bindings["F"]
	require.True(t, ok)
	assert.Equal(t, checker.Signature{Args: 2, Outputs: 2}, f.Sig)
}

func TestCompileTopLevelWords(t *testing.T) {
	prog := compile(t, "1 2 add\n")
	require.Len(t, prog.TopLevel, 1)
	assert.Equal(t, checker.Signature{Args: 0, Outputs: 1}, prog.TopLevel[0].Sig)
}

func TestCompileDeclaredSignatureMismatchErrors(t *testing.T) {
	items, errs, _ := parser.Parse([]byte("F = |3.1 add\n"), "test.koru")
	require.Empty(t, errs)
	chunk := &ast.Chunk{Name: "test", Items: items}
	_, err := compiler.CompileFiles(context.Background(), token.NewFileSet(), []*ast.Chunk{chunk})
	require.Error(t, err)
}

func TestCompileDeclaredSignatureMatches(t *testing.T) {
	prog := compile(t, "F = |2.1 add\n")
	f := prog.Bindings["F"]
	assert.Equal(t, checker.Signature{Args: 2, Outputs: 1}, f.Sig)
}

func TestCompileModifierWithOperand(t *testing.T) {
	prog := compile(t, "F = reduce(add)\n")
	f := prog.Bindings["F"]
	assert.Equal(t, checker.Signature{Args: 1, Outputs: 1}, f.Sig)
}

func TestCompileSwitchAsModifierOperand(t *testing.T) {
	// each branch of the switch must have a compatible signature for use as
	// dip's inner function.
	prog := compile(t, "F = dip(add|sub)\n")
	f := prog.Bindings["F"]
	assert.Equal(t, checker.Signature{Args: 3, Outputs: 2}, f.Sig)
}

func TestCompileBareSwitchDispatchesEagerly(t *testing.T) {
	prog := compile(t, "F = (add|sub)\n")
	f := prog.Bindings["F"]
	// A bare switch pops its own dispatch index in addition to whatever its
	// chosen branch (add or sub, both (2,1)) consumes.
	assert.Equal(t, checker.Signature{Args: 3, Outputs: 1}, f.Sig)
}

func TestCompileDirectRecursion(t *testing.T) {
	prog := compile(t, "F = dup F\n")
	f, ok := prog.Bindings["F"]
	require.True(t, ok)
	assert.NotNil(t, f.Body)
}

func TestCompileMutualRecursion(t *testing.T) {
	prog := compile(t, "F = G\nG = F\n")
	f, ok := prog.Bindings["F"]
	require.True(t, ok)
	g, ok := prog.Bindings["G"]
	require.True(t, ok)
	assert.NotSame(t, f, g)
}

func TestCompileUserDefinedModifier(t *testing.T) {
	// A user-defined modifier is compiled as a direct call to the named
	// binding's own precomputed signature; the operand is pushed onto the
	// function stack for the binding's body to consume at its own call
	// sites, but doesn't itself alter the outer signature here since myMod's
	// body never pops it.
	prog := compile(t, "myMod = add\nF = myMod!(dup)\n")
	f, ok := prog.Bindings["F"]
	require.True(t, ok)
	assert.Equal(t, checker.Signature{Args: 2, Outputs: 1}, f.Sig)
}

func TestCompileUndefinedIdentErrors(t *testing.T) {
	items, errs, _ := parser.Parse([]byte("F = Nope\n"), "test.koru")
	require.Empty(t, errs)
	chunk := &ast.Chunk{Name: "test", Items: items}
	_, err := compiler.CompileFiles(context.Background(), token.NewFileSet(), []*ast.Chunk{chunk})
	require.Error(t, err)
}

func TestCompileTestScope(t *testing.T) {
	prog := compile(t, "F = add\n---\n1 2 F\n---\n")
	require.Len(t, prog.Tests, 1)
	require.Len(t, prog.Tests[0].TopLevel, 1)
}

func TestCompileInvertOfTranspose(t *testing.T) {
	prog := compile(t, "F = invert(transpose)\n")
	f := prog.Bindings["F"]
	assert.Equal(t, checker.Signature{Args: 1, Outputs: 1}, f.Sig)
}
