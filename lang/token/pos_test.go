package token

import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func TestFileLineCol(t *testing.T) {
	fset := NewFileSet()
	f := fset.AddFile("test.ku", 10)
	// source: "ab\ncde\nfg" (len 9) plus a trailing byte, lines start at 0, 3, 7
	f.AddLine(3)
	f.AddLine(7)

	cases := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{6, 2, 4},
		{7, 3, 1},
		{9, 3, 3},
	}
	for _, c := range cases {
		pos := f.Pos(c.offset)
		p := f.Position(pos)
		assert.Equal(t, c.wantLine, p.Line, "offset %d line", c.offset)
		assert.Equal(t, c.wantCol, p.Column, "offset %d col", c.offset)
		assert.Equal(t, c.offset, f.Offset(pos))
	}
}

func TestFileSetMultipleFiles(t *testing.T) {
	fset := NewFileSet()
	f0 := fset.AddFile("a.ku", 5)
	f1 := fset.AddFile("b.ku", 5)

	require.NotEqual(t, f0.Base(), f1.Base())

	p0 := f0.Pos(2)
	p1 := f1.Pos(2)

	assert.Same(t, f0, fset.File(p0))
	assert.Same(t, f1, fset.File(p1))
	assert.Equal(t, "a.ku", fset.Position(p0).Filename)
	assert.Equal(t, "b.ku", fset.Position(p1).Filename)
}

func TestPosIsValid(t *testing.T) {
	assert.False(t, NoPos.IsValid())
	assert.True(t, Pos(1).IsValid())
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "-", Position{}.String())
	assert.Equal(t, "foo.ku:2:3", Position{Filename: "foo.ku", Line: 2, Column: 3}.String())
}
