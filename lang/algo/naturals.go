package algo

import (
	"math"

	"koru/lang/value"
)

// toNaturals converts a rank ≤ 1 numeric value into a slice of
// non-negative ints, as required by range's shape operand, where's input,
// and several other primitives that operate on "naturals"
func toNaturals(v value.Value) ([]int, *value.Error) {
	if v.Kind() != value.Float && v.Kind() != value.Byte {
		return nil, value.Errorf(value.TypeMismatch, "expected a numeric array of naturals, got %s", v.Kind())
	}
	if v.Rank() > 1 {
		return nil, value.Errorf(value.ShapeMismatch, "expected rank ≤ 1, got rank %d", v.Rank())
	}
	fs := v.AsFloat64s()
	out := make([]int, len(fs))
	for i, f := range fs {
		n, ok := asNatural(f)
		if !ok {
			return nil, value.Errorf(value.Domain, "expected a natural number, got %v", f)
		}
		out[i] = n
	}
	return out, nil
}

func asNatural(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// checkedProduct multiplies dims together, reporting overflow rather than
// wrapping, so range can fail with TooLarge instead of silently wrapping.
func checkedProduct(dims []int) (int, bool) {
	n := 1
	for _, d := range dims {
		if d == 0 {
			return 0, false
		}
		if n > math.MaxInt/d {
			return 0, true
		}
		n *= d
	}
	return n, false
}
