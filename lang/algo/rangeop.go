package algo

import (
	"context"
	"math"

	"koru/lang/value"
)

// Range enumerates all index tuples of a shape in row-major order. The
// input value holds the shape dimensions as naturals.
func Range(ctx context.Context, v value.Value) (value.Value, *value.Error) {
	dims, err := toNaturals(v)
	if err != nil {
		return value.Value{}, err
	}
	n := len(dims)
	if n == 0 {
		return value.Scalar(0), nil
	}
	total, overflow := checkedProduct(dims)
	if overflow || (n > 1 && total > math.MaxInt/n) {
		return value.Value{}, value.Errorf(value.TooLarge, "range(%v): result too large", dims)
	}

	if n == 1 {
		data := make([]float64, dims[0])
		for i := range data {
			if i%4096 == 0 && ctx.Err() != nil {
				return value.Value{}, value.Errorf(value.Domain, "range: %v", ctx.Err())
			}
			data[i] = float64(i)
		}
		return value.NewFloats(value.Shape{dims[0]}, data), nil
	}

	data := make([]float64, total*n)
	idx := make([]int, n)
	pos := 0
	for row := 0; row < total; row++ {
		if row%4096 == 0 && ctx.Err() != nil {
			return value.Value{}, value.Errorf(value.Domain, "range: %v", ctx.Err())
		}
		for k, x := range idx {
			data[pos+k] = float64(x)
		}
		pos += n
		for k := n - 1; k >= 0; k-- {
			idx[k]++
			if idx[k] < dims[k] {
				break
			}
			idx[k] = 0
		}
	}
	shape := value.Shape(append(append([]int(nil), dims...), n))
	return value.NewFloats(shape, data), nil
}
