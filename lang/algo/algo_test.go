package algo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koru/internal/arrdiff"
	"koru/lang/algo"
	"koru/lang/value"
)

// requireShapeEqual compares two Shapes via arrdiff rather than testify's
// default formatter, which prints the full backing array on a mismatch.
func requireShapeEqual(t *testing.T, want, got value.Shape) {
	t.Helper()
	if d := arrdiff.Values(want, got); d != "" {
		t.Fatalf("shape mismatch:\n%s", d)
	}
}

// requireFloatsEqual compares two float64 slices via arrdiff, whose line
// diff stays readable once a slice grows past a handful of elements.
func requireFloatsEqual(t *testing.T, want, got []float64) {
	t.Helper()
	if d := arrdiff.Values(want, got); d != "" {
		t.Fatalf("float slice mismatch:\n%s", d)
	}
}

func TestRangeVector(t *testing.T) {
	got, err := algo.Range(context.Background(), value.NewFloats(value.Shape{1}, []float64{3}))
	require.Nil(t, err)
	requireShapeEqual(t, value.Shape{3}, got.Shape())
	requireFloatsEqual(t, []float64{0, 1, 2}, got.Floats())
}

func TestRangeMatrix(t *testing.T) {
	got, err := algo.Range(context.Background(), value.NewFloats(value.Shape{2}, []float64{2, 3}))
	require.Nil(t, err)
	requireShapeEqual(t, value.Shape{2, 3, 2}, got.Shape())
	requireFloatsEqual(t, []float64{
		0, 0, 0, 1, 0, 2,
		1, 0, 1, 1, 1, 2,
	}, got.Floats())
}

func TestRangeScalarShapeIsScalarZero(t *testing.T) {
	got, err := algo.Range(context.Background(), value.NewFloats(value.Shape{0}, nil))
	require.Nil(t, err)
	assert.True(t, got.IsScalar())
	assert.Equal(t, float64(0), got.Floats()[0])
}

func TestRangeContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := algo.Range(ctx, value.NewFloats(value.Shape{1}, []float64{10000}))
	require.NotNil(t, err)
}

func TestDeshape(t *testing.T) {
	v := value.NewFloats(value.Shape{2, 2}, []float64{1, 2, 3, 4})
	got := algo.Deshape(v)
	requireShapeEqual(t, value.Shape{4}, got.Shape())
	requireFloatsEqual(t, []float64{1, 2, 3, 4}, got.Floats())
}

func TestFirstLast(t *testing.T) {
	v := value.NewFloats(value.Shape{3, 2}, []float64{1, 2, 3, 4, 5, 6})
	first, err := algo.First(v, value.NullContext{})
	require.Nil(t, err)
	requireFloatsEqual(t, []float64{1, 2}, first.Floats())

	last, err := algo.Last(v, value.NullContext{})
	require.Nil(t, err)
	requireFloatsEqual(t, []float64{5, 6}, last.Floats())
}

func TestFirstEmptyNoFillErrors(t *testing.T) {
	v := value.NewFloats(value.Shape{0, 2}, nil)
	_, err := algo.First(v, value.NullContext{})
	require.NotNil(t, err)
	assert.Equal(t, value.EmptyNoFill, err.Kind)
}

func TestFirstEmptyWithFillBroadcasts(t *testing.T) {
	v := value.NewFloats(value.Shape{0, 2}, nil)
	ctx := value.StaticContext{value.Float: value.Scalar(9)}
	got, err := algo.First(v, ctx)
	require.Nil(t, err)
	requireFloatsEqual(t, []float64{9, 9}, got.Floats())
}

func TestReverse(t *testing.T) {
	v := value.NewFloats(value.Shape{3}, []float64{1, 2, 3})
	got := algo.Reverse(v)
	requireFloatsEqual(t, []float64{3, 2, 1}, got.Floats())
}

func TestTransposeRoundTrip(t *testing.T) {
	v := value.NewFloats(value.Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	transposed := algo.Transpose(v)
	requireShapeEqual(t, value.Shape{3, 2}, transposed.Shape())
	back := algo.InvTranspose(transposed)
	requireShapeEqual(t, v.Shape(), back.Shape())
	requireFloatsEqual(t, v.Floats(), back.Floats())
}

func TestRise(t *testing.T) {
	v := value.NewFloats(value.Shape{4, 1}, []float64{3, 1, 2, 1})
	perm, err := algo.Rise(context.Background(), v)
	require.Nil(t, err)
	// rows 1 and 3 are tied at value 1: stable sort keeps them in original order.
	requireFloatsEqual(t, []float64{1, 3, 2, 0}, perm.Floats())
}

func TestFall(t *testing.T) {
	v := value.NewFloats(value.Shape{3, 1}, []float64{1, 3, 2})
	perm, err := algo.Fall(context.Background(), v)
	require.Nil(t, err)
	requireFloatsEqual(t, []float64{1, 2, 0}, perm.Floats())
}

func TestClassify(t *testing.T) {
	v := value.NewFloats(value.Shape{4, 1}, []float64{5, 7, 5, 9})
	got, err := algo.Classify(v)
	require.Nil(t, err)
	requireFloatsEqual(t, []float64{0, 1, 0, 2}, got.Floats())
}

func TestDeduplicate(t *testing.T) {
	v := value.NewFloats(value.Shape{4, 1}, []float64{5, 7, 5, 9})
	got := algo.Deduplicate(v)
	requireShapeEqual(t, value.Shape{3, 1}, got.Shape())
	requireFloatsEqual(t, []float64{5, 7, 9}, got.Floats())
}

func TestBitsRoundTrip(t *testing.T) {
	v := value.NewFloats(value.Shape{4}, []float64{0, 1, 2, 3})
	bits, err := algo.Bits(v)
	require.Nil(t, err)
	assert.Equal(t, value.Byte, bits.Kind())
	requireShapeEqual(t, value.Shape{4, 2}, bits.Shape())

	back, err := algo.InverseBits(bits)
	require.Nil(t, err)
	requireFloatsEqual(t, v.Floats(), back.Floats())
}

func TestInverseBitsScalar(t *testing.T) {
	bit := value.NewBytes(nil, []byte{1})
	back, err := algo.InverseBits(bit)
	require.Nil(t, err)
	assert.Equal(t, float64(1), back.Floats()[0])
}

func TestWhereInverseWhereRoundTrip(t *testing.T) {
	counts := value.NewFloats(value.Shape{3}, []float64{2, 0, 1})
	expanded, err := algo.Where(counts)
	require.Nil(t, err)
	requireFloatsEqual(t, []float64{0, 0, 2}, expanded.Floats())

	hist, err := algo.InverseWhere(expanded)
	require.Nil(t, err)
	requireFloatsEqual(t, []float64{2, 0, 1}, hist.Floats())
}

func TestInverseWhereUnsorted(t *testing.T) {
	idxs := value.NewFloats(value.Shape{4}, []float64{2, 0, 2, 1})
	hist, err := algo.InverseWhere(idxs)
	require.Nil(t, err)
	requireFloatsEqual(t, []float64{1, 1, 2}, hist.Floats())
}

func TestFirstWhere(t *testing.T) {
	counts := value.NewFloats(value.Shape{3}, []float64{0, 0, 5})
	got, err := algo.FirstWhere(counts, value.NullContext{})
	require.Nil(t, err)
	assert.Equal(t, float64(2), got.Floats()[0])
}

func TestUTF8RoundTrip(t *testing.T) {
	v := value.NewChars(value.Shape{3}, []rune{'k', 'o', 'r'})
	bytes, err := algo.UTF8(v)
	require.Nil(t, err)
	assert.Equal(t, []byte("kor"), bytes.Bytes())

	back, err := algo.InvUTF8(bytes)
	require.Nil(t, err)
	assert.Equal(t, v.Chars(), back.Chars())
}

func TestInvUTF8InvalidSequence(t *testing.T) {
	bad := value.NewBytes(value.Shape{2}, []byte{0xff, 0xfe})
	_, err := algo.InvUTF8(bad)
	require.NotNil(t, err)
	assert.Equal(t, value.ParseFailure, err.Kind)
}

func TestOceanScalarPair(t *testing.T) {
	got, err := algo.Ocean(value.Scalar(2), value.Scalar(1))
	require.Nil(t, err)
	requireFloatsEqual(t, []float64{1, 2}, got.Floats())
}

func TestOceanPrependRow(t *testing.T) {
	self := value.NewFloats(value.Shape{2, 2}, []float64{1, 1, 2, 2})
	got, err := algo.Ocean(self, value.Scalar(9))
	require.Nil(t, err)
	requireShapeEqual(t, value.Shape{3, 2}, got.Shape())
	requireFloatsEqual(t, []float64{9, 9, 1, 1, 2, 2}, got.Floats())
}

func TestOceanWidensByteToFloat(t *testing.T) {
	self := value.NewBytes(value.Shape{2}, []byte{1, 2})
	got, err := algo.Ocean(self, value.Scalar(300))
	require.Nil(t, err)
	assert.Equal(t, value.Float, got.Kind())
}

func TestExtremaTieBreaks(t *testing.T) {
	v := value.NewFloats(value.Shape{4, 1}, []float64{3, 1, 1, 2})

	fMin, err := algo.FirstMinIndex(v)
	require.Nil(t, err)
	assert.Equal(t, float64(1), fMin.Floats()[0])

	lMin, err := algo.LastMinIndex(v)
	require.Nil(t, err)
	assert.Equal(t, float64(2), lMin.Floats()[0])

	vMax := value.NewFloats(value.Shape{4, 1}, []float64{1, 3, 3, 2})
	fMax, err := algo.FirstMaxIndex(vMax)
	require.Nil(t, err)
	assert.Equal(t, float64(1), fMax.Floats()[0])

	lMax, err := algo.LastMaxIndex(vMax)
	require.Nil(t, err)
	assert.Equal(t, float64(2), lMax.Floats()[0])
}
