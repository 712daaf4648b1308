package algo

import (
	"context"

	"golang.org/x/exp/slices"

	"koru/lang/value"
)

// Rise returns a stable permutation p of 0..row_count such that
// rows[p[0]] ≤ rows[p[1]] ≤ ... under the array comparison order. v must
// have rank ≥ 1.
func Rise(ctx context.Context, v value.Value) (value.Value, *value.Error) {
	return sortPermutation(ctx, v, false)
}

// Fall is Rise with the comparator reversed.
func Fall(ctx context.Context, v value.Value) (value.Value, *value.Error) {
	return sortPermutation(ctx, v, true)
}

func sortPermutation(ctx context.Context, v value.Value, reverse bool) (value.Value, *value.Error) {
	if v.Rank() == 0 {
		return value.Value{}, value.Errorf(value.ShapeMismatch, "rise/fall: scalar has no rows")
	}
	n := v.RowCount()
	perm := make([]float64, n)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
		perm[i] = float64(i)
	}
	if ctx.Err() != nil {
		return value.Value{}, value.Errorf(value.Domain, "rise/fall: %v", ctx.Err())
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		c := value.CompareRows(v, a, b)
		if reverse {
			c = -c
		}
		return c
	})
	for i, x := range idx {
		perm[i] = float64(x)
	}
	return value.NewFloats(value.Shape{n}, perm), nil
}
