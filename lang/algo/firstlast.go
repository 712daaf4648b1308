package algo

import "koru/lang/value"

// First returns v's first row. v must be non-scalar. On a
// leading-zero shape, a configured fill produces a row of fill values;
// otherwise this is EmptyNoFill.
func First(v value.Value, vc value.Context) (value.Value, *value.Error) {
	return firstLast(v, vc, 0)
}

// Last returns v's last row.
func Last(v value.Value, vc value.Context) (value.Value, *value.Error) {
	if v.Rank() == 0 {
		return value.Value{}, value.Errorf(value.ShapeMismatch, "last: scalar has no rows")
	}
	return firstLast(v, vc, v.RowCount()-1)
}

func firstLast(v value.Value, vc value.Context, row int) (value.Value, *value.Error) {
	if v.Rank() == 0 {
		return value.Value{}, value.Errorf(value.ShapeMismatch, "first/last: scalar has no rows")
	}
	if v.RowCount() == 0 {
		fill, ok := vc.Fill(v.Kind())
		if !ok {
			return value.Value{}, value.Errorf(value.EmptyNoFill, "first/last: empty array, no fill").Fill()
		}
		return broadcastFill(fill, v.Shape().RowShape()), nil
	}
	return v.Row(row), nil
}

// broadcastFill repeats a rank-0 fill scalar to fill a row of the given
// shape.
func broadcastFill(fill value.Value, shape value.Shape) value.Value {
	n := shape.Len()
	switch fill.Kind() {
	case value.Float:
		data := make([]float64, n)
		f := fill.Floats()[0]
		for i := range data {
			data[i] = f
		}
		return value.NewFloats(shape, data)
	case value.Byte:
		data := make([]byte, n)
		b := fill.Bytes()[0]
		for i := range data {
			data[i] = b
		}
		return value.NewBytes(shape, data)
	case value.Char:
		data := make([]rune, n)
		c := fill.Chars()[0]
		for i := range data {
			data[i] = c
		}
		return value.NewChars(shape, data)
	default:
		data := make([]value.Value, n)
		b := fill.Boxes()[0]
		for i := range data {
			data[i] = b
		}
		return value.NewBoxes(shape, data)
	}
}
