package algo

import (
	"math"
	"strconv"
	"strings"

	"koru/lang/value"
)

// rowKey builds a canonical string encoding of row i of v, suitable as a
// hash-map key for Classify and Deduplicate.
// Encoding normalizes -0 to 0 and collapses every NaN bit pattern to one
// sentinel so that rowKey(v, i) == rowKey(v, j) exactly when
// value.RowsEqual(v, i, j).
func rowKey(v value.Value, i int) string {
	var b strings.Builder
	b.WriteByte(byte(v.Kind()))
	rowLen := v.RowLen()
	lo := i * rowLen
	switch v.Kind() {
	case value.Float:
		d := v.Floats()[lo : lo+rowLen]
		for _, f := range d {
			b.WriteByte(0)
			writeFloatKey(&b, f)
		}
	case value.Byte:
		d := v.Bytes()[lo : lo+rowLen]
		b.WriteByte(0)
		b.Write(d)
	case value.Char:
		d := v.Chars()[lo : lo+rowLen]
		for _, c := range d {
			b.WriteByte(0)
			b.WriteRune(c)
		}
	default:
		d := v.Boxes()[lo : lo+rowLen]
		for _, box := range d {
			b.WriteByte(0)
			b.WriteString(boxKey(box))
		}
	}
	return b.String()
}

func writeFloatKey(b *strings.Builder, f float64) {
	if math.IsNaN(f) {
		b.WriteString("NaN")
		return
	}
	if f == 0 {
		f = 0 // normalize -0 to 0
	}
	b.WriteString(strconv.FormatFloat(f, 'b', -1, 64))
}

// boxKey recursively encodes an arbitrary (possibly nested) Value for use
// inside a Box row's key.
func boxKey(v value.Value) string {
	var b strings.Builder
	kind := v.Kind()
	var nums []float64
	if kind.IsNumeric() {
		// value.Compare orders Byte and Float values after widening, so
		// both encode as Float.
		kind = value.Float
		nums = v.AsFloat64s()
	}
	b.WriteByte(byte(kind))
	for _, d := range v.Shape() {
		b.WriteByte(0)
		b.WriteString(strconv.Itoa(d))
	}
	n := v.Len()
	for i := 0; i < n; i++ {
		b.WriteByte(0)
		switch kind {
		case value.Float:
			writeFloatKey(&b, nums[i])
		case value.Char:
			b.WriteRune(v.Chars()[i])
		default:
			b.WriteString(boxKey(v.Boxes()[i]))
		}
	}
	return b.String()
}
