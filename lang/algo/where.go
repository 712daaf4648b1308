package algo

import (
	"math"

	"github.com/dolthub/swiss"

	"koru/lang/value"
)

// Where expands a rank ≤ 1 array of naturals c0, c1, ... into a rank-1
// array holding ci copies of i, in order. The length
// estimate saturates rather than overflowing.
func Where(v value.Value) (value.Value, *value.Error) {
	counts, err := toNaturals(v)
	if err != nil {
		return value.Value{}, err
	}
	total := 0
	for _, c := range counts {
		total = saturatingAdd(total, c)
	}
	out := make([]float64, 0, total)
	for i, c := range counts {
		for j := 0; j < c; j++ {
			out = append(out, float64(i))
		}
	}
	return value.NewFloats(value.Shape{len(out)}, out), nil
}

func saturatingAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// FirstWhere returns the smallest index with a non-zero value, as f64.
// Empty input with no fill is an error.
func FirstWhere(v value.Value, vc value.Context) (value.Value, *value.Error) {
	counts, err := toNaturals(v)
	if err != nil {
		return value.Value{}, err
	}
	for i, c := range counts {
		if c != 0 {
			return value.Scalar(float64(i)), nil
		}
	}
	fill, ok := vc.Fill(value.Float)
	if !ok {
		return value.Value{}, value.Errorf(value.EmptyNoFill, "first_where: no non-zero element, no fill").Fill()
	}
	return fill, nil
}

// InverseWhere reverses Where: given a list of naturals, produce a
// rank-1 histogram of length max+1. A sorted input uses a single
// run-length pass; an unsorted one uses a counting map.
func InverseWhere(v value.Value) (value.Value, *value.Error) {
	idxs, err := toNaturals(v)
	if err != nil {
		return value.Value{}, err
	}
	if len(idxs) == 0 {
		return value.NewFloats(value.Shape{0}, nil), nil
	}

	max := idxs[0]
	sorted := true
	for i, x := range idxs {
		if x > max {
			max = x
		}
		if i > 0 && idxs[i-1] > idxs[i] {
			sorted = false
		}
	}
	hist := make([]float64, max+1)

	if sorted {
		i := 0
		for i < len(idxs) {
			j := i
			for j < len(idxs) && idxs[j] == idxs[i] {
				j++
			}
			hist[idxs[i]] = float64(j - i)
			i = j
		}
		return value.NewFloats(value.Shape{max + 1}, hist), nil
	}

	counts := swiss.NewMap[int, int](uint32(len(idxs)))
	for _, x := range idxs {
		c, _ := counts.Get(x)
		counts.Put(x, c+1)
	}
	for x := 0; x <= max; x++ {
		if c, ok := counts.Get(x); ok {
			hist[x] = float64(c)
		}
	}
	return value.NewFloats(value.Shape{max + 1}, hist), nil
}
