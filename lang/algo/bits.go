package algo

import (
	"math"

	"koru/lang/value"
)

// Bits expands a natural-valued Float/Byte array into little-endian bits
// along a new trailing dimension. k = ceil(log2(M+1)), 0 when
// M is 0 or the input is empty.
func Bits(v value.Value) (value.Value, *value.Error) {
	if v.Kind() != value.Float && v.Kind() != value.Byte {
		return value.Value{}, value.Errorf(value.TypeMismatch, "bits: expected a numeric array")
	}
	fs := v.AsFloat64s()
	max := 0.0
	for _, f := range fs {
		n, ok := asNatural(f)
		if !ok {
			return value.Value{}, value.Errorf(value.Domain, "bits: expected natural numbers, got %v", f)
		}
		if float64(n) > max {
			max = float64(n)
		}
	}
	k := 0
	if len(fs) > 0 && max > 0 {
		k = int(math.Ceil(math.Log2(max + 1)))
	}
	outShape := v.Shape().WithSuffix(k)
	data := make([]byte, len(fs)*k)
	for i, f := range fs {
		n, _ := asNatural(f)
		for b := 0; b < k; b++ {
			data[i*k+b] = byte((n >> b) & 1)
		}
	}
	return value.NewBytes(outShape, data), nil
}

// InverseBits reverses Bits: a trailing bit-dimension of 0/1 bytes decodes
// to the natural it encodes. A bare scalar single bit decodes to its f64
// value directly (Open Question (b), retained for round-trip
// compatibility with Bits' general handling).
func InverseBits(v value.Value) (value.Value, *value.Error) {
	if v.Kind() != value.Byte {
		return value.Value{}, value.Errorf(value.TypeMismatch, "inverse_bits: expected a byte array")
	}
	data := v.Bytes()
	for _, b := range data {
		if b != 0 && b != 1 {
			return value.Value{}, value.Errorf(value.Domain, "inverse_bits: expected 0/1 bits, got %d", b)
		}
	}
	if v.Rank() == 0 {
		return value.Scalar(float64(data[0])), nil
	}
	shape := v.Shape()
	k := shape[len(shape)-1]
	outShape := shape[:len(shape)-1].Clone()
	n := outShape.Len()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var val int
		for b := 0; b < k; b++ {
			val |= int(data[i*k+b]) << b
		}
		out[i] = float64(val)
	}
	return value.NewFloats(outShape, out), nil
}
