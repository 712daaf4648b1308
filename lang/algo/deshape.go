package algo

import "koru/lang/value"

// Deshape collapses v's shape to [element_count]; data order is unchanged.
func Deshape(v value.Value) value.Value {
	n := v.Len()
	switch v.Kind() {
	case value.Float:
		return value.NewFloats(value.Shape{n}, append([]float64(nil), v.Floats()...))
	case value.Byte:
		return value.NewBytes(value.Shape{n}, append([]byte(nil), v.Bytes()...))
	case value.Char:
		return value.NewChars(value.Shape{n}, append([]rune(nil), v.Chars()...))
	default:
		return value.NewBoxes(value.Shape{n}, append([]value.Value(nil), v.Boxes()...))
	}
}
