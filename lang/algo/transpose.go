package algo

import "koru/lang/value"

// Transpose performs a cyclic-left axis rotation:
// shape [d0, d1, ...] becomes [d1, ..., d0], and element [i0, i1, ..., in-1]
// moves to [i1, ..., in-1, i0]. Rank < 2 is a no-op.
func Transpose(v value.Value) value.Value {
	return rotate(v, true)
}

// InvTranspose is transpose's inverse, a cyclic-right axis rotation.
func InvTranspose(v value.Value) value.Value {
	return rotate(v, false)
}

func rotate(v value.Value, left bool) value.Value {
	shape := v.Shape()
	if shape.Rank() < 2 {
		return v
	}
	n := shape.Rank()
	newShape := make(value.Shape, n)
	if left {
		copy(newShape, shape[1:])
		newShape[n-1] = shape[0]
	} else {
		newShape[0] = shape[n-1]
		copy(newShape[1:], shape[:n-1])
	}
	if shape[0] == 0 {
		// Zero leading dimension: only the shape rotates, no data to move.
		return reshapeEmpty(v, newShape)
	}

	strides := stridesOf(shape)
	newStrides := stridesOf(newShape)
	total := shape.Len()

	perm := func(oldIdx []int) []int {
		ni := make([]int, n)
		if left {
			copy(ni, oldIdx[1:])
			ni[n-1] = oldIdx[0]
		} else {
			ni[0] = oldIdx[n-1]
			copy(ni[1:], oldIdx[:n-1])
		}
		return ni
	}

	idx := make([]int, n)
	mapIndex := func(flat int) int {
		rem := flat
		for k := 0; k < n; k++ {
			idx[k] = rem / strides[k]
			rem %= strides[k]
		}
		ni := perm(idx)
		out := 0
		for k := 0; k < n; k++ {
			out += ni[k] * newStrides[k]
		}
		return out
	}

	switch v.Kind() {
	case value.Float:
		src := v.Floats()
		dst := make([]float64, total)
		for i := 0; i < total; i++ {
			dst[mapIndex(i)] = src[i]
		}
		return value.NewFloats(newShape, dst)
	case value.Byte:
		src := v.Bytes()
		dst := make([]byte, total)
		for i := 0; i < total; i++ {
			dst[mapIndex(i)] = src[i]
		}
		return value.NewBytes(newShape, dst)
	case value.Char:
		src := v.Chars()
		dst := make([]rune, total)
		for i := 0; i < total; i++ {
			dst[mapIndex(i)] = src[i]
		}
		return value.NewChars(newShape, dst)
	default:
		src := v.Boxes()
		dst := make([]value.Value, total)
		for i := 0; i < total; i++ {
			dst[mapIndex(i)] = src[i]
		}
		return value.NewBoxes(newShape, dst)
	}
}

func stridesOf(shape value.Shape) []int {
	n := len(shape)
	strides := make([]int, n)
	acc := 1
	for k := n - 1; k >= 0; k-- {
		strides[k] = acc
		acc *= shape[k]
	}
	return strides
}

func reshapeEmpty(v value.Value, newShape value.Shape) value.Value {
	switch v.Kind() {
	case value.Float:
		return value.NewFloats(newShape, nil)
	case value.Byte:
		return value.NewBytes(newShape, nil)
	case value.Char:
		return value.NewChars(newShape, nil)
	default:
		return value.NewBoxes(newShape, nil)
	}
}
