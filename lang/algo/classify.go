package algo

import (
	"github.com/dolthub/swiss"

	"koru/lang/value"
)

// Classify assigns each row an id equal to the number of distinct rows
// seen strictly before it; a row identical to an earlier one reuses that
// row's id. Rank-0 is an error. The distinct-row test is value.RowsEqual,
// tracked here with a swiss.Map keyed by a canonical row encoding (rowKey)
// rather than the row Value itself, since Value embeds slices and so isn't
// a valid Go map key.
func Classify(v value.Value) (value.Value, *value.Error) {
	if v.Rank() == 0 {
		return value.Value{}, value.Errorf(value.ShapeMismatch, "classify: scalar has no rows")
	}
	n := v.RowCount()
	ids := make([]float64, n)
	seen := swiss.NewMap[string, int](uint32(n))
	next := 0
	for i := 0; i < n; i++ {
		k := rowKey(v, i)
		id, ok := seen.Get(k)
		if !ok {
			id = next
			next++
			seen.Put(k, id)
		}
		ids[i] = float64(id)
	}
	return value.NewFloats(value.Shape{n}, ids), nil
}

// Deduplicate retains only the first occurrence of each distinct row,
// updating shape[0] accordingly. Rank-0 is a no-op.
func Deduplicate(v value.Value) value.Value {
	if v.Rank() == 0 {
		return v
	}
	n := v.RowCount()
	rowLen := v.RowLen()
	seen := swiss.NewMap[string, struct{}](uint32(n))
	keep := make([]int, 0, n)
	for i := 0; i < n; i++ {
		k := rowKey(v, i)
		if _, ok := seen.Get(k); ok {
			continue
		}
		seen.Put(k, struct{}{})
		keep = append(keep, i)
	}
	newShape := v.Shape().Clone()
	newShape[0] = len(keep)

	switch v.Kind() {
	case value.Float:
		src := v.Floats()
		dst := make([]float64, 0, len(keep)*rowLen)
		for _, i := range keep {
			dst = append(dst, src[i*rowLen:(i+1)*rowLen]...)
		}
		return value.NewFloats(newShape, dst)
	case value.Byte:
		src := v.Bytes()
		dst := make([]byte, 0, len(keep)*rowLen)
		for _, i := range keep {
			dst = append(dst, src[i*rowLen:(i+1)*rowLen]...)
		}
		return value.NewBytes(newShape, dst)
	case value.Char:
		src := v.Chars()
		dst := make([]rune, 0, len(keep)*rowLen)
		for _, i := range keep {
			dst = append(dst, src[i*rowLen:(i+1)*rowLen]...)
		}
		return value.NewChars(newShape, dst)
	default:
		src := v.Boxes()
		dst := make([]value.Value, 0, len(keep)*rowLen)
		for _, i := range keep {
			dst = append(dst, src[i*rowLen:(i+1)*rowLen]...)
		}
		return value.NewBoxes(newShape, dst)
	}
}
