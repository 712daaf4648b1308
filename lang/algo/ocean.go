package algo

import "koru/lang/value"

// Ocean prepends scalar v onto self as a new leading row ("ocean
// (join)"). If self is rank 0, the result is the two-element array
// [v, self]. Otherwise the new row is row_len copies of v, unless self is
// a Byte array and v isn't representable as a byte (a non-negative integer
// ≤ 255), in which case self widens to Float first.
func Ocean(self, v value.Value) (value.Value, *value.Error) {
	if self.Rank() == 0 {
		return oceanPair(v, self)
	}

	if self.Kind() == value.Byte && v.Kind().IsNumeric() {
		if !byteRepresentable(v) {
			self = widenToFloat(self)
		}
	}

	rowLen := self.RowLen()
	newShape := self.Shape().Clone()
	newShape[0]++

	switch self.Kind() {
	case value.Float:
		if !v.Kind().IsNumeric() {
			return value.Value{}, value.Errorf(value.TypeMismatch, "ocean: cannot prepend %s onto a float array", v.Kind())
		}
		fv := v.AsFloat64s()[0]
		row := repeatFloat(fv, rowLen)
		return value.NewFloats(newShape, append(row, self.Floats()...)), nil
	case value.Byte:
		bv, _ := asNatural(v.AsFloat64s()[0])
		row := repeatByte(byte(bv), rowLen)
		return value.NewBytes(newShape, append(row, self.Bytes()...)), nil
	case value.Char:
		if v.Kind() != value.Char {
			return value.Value{}, value.Errorf(value.TypeMismatch, "ocean: cannot prepend %s onto a char array", v.Kind())
		}
		cv := v.Chars()[0]
		row := repeatChar(cv, rowLen)
		return value.NewChars(newShape, append(row, self.Chars()...)), nil
	default:
		row := make([]value.Value, rowLen)
		for i := range row {
			row[i] = v
		}
		return value.NewBoxes(newShape, append(row, self.Boxes()...)), nil
	}
}

func oceanPair(v, self value.Value) (value.Value, *value.Error) {
	if v.Kind().IsNumeric() && self.Kind().IsNumeric() {
		return value.NewFloats(value.Shape{2}, []float64{v.AsFloat64s()[0], self.AsFloat64s()[0]}), nil
	}
	if v.Kind() == value.Char && self.Kind() == value.Char {
		return value.NewChars(value.Shape{2}, []rune{v.Chars()[0], self.Chars()[0]}), nil
	}
	return value.NewBoxes(value.Shape{2}, []value.Value{v, self}), nil
}

func byteRepresentable(v value.Value) bool {
	f := v.AsFloat64s()[0]
	n, ok := asNatural(f)
	return ok && n <= 255
}

func widenToFloat(v value.Value) value.Value {
	return value.NewFloats(v.Shape(), v.AsFloat64s())
}

func repeatFloat(f float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f
	}
	return out
}

func repeatByte(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

func repeatChar(c rune, n int) []rune {
	out := make([]rune, n)
	for i := range out {
		out[i] = c
	}
	return out
}
