package algo

import "koru/lang/value"

// FirstMinIndex returns the row index of the smallest row under the array
// comparison order, ties broken by first occurrence.
func FirstMinIndex(v value.Value) (value.Value, *value.Error) { return extremum(v, false, false) }

// FirstMaxIndex returns the row index of the largest row, ties broken by
// first occurrence.
func FirstMaxIndex(v value.Value) (value.Value, *value.Error) { return extremum(v, true, false) }

// LastMinIndex returns the row index of the smallest row, ties broken by
// last occurrence.
func LastMinIndex(v value.Value) (value.Value, *value.Error) { return extremum(v, false, true) }

// LastMaxIndex returns the row index of the largest row, ties broken by
// last occurrence.
func LastMaxIndex(v value.Value) (value.Value, *value.Error) { return extremum(v, true, true) }

// extremum implements an intentional tie-break asymmetry (see DESIGN.md):
// first_min/first_max use a strict update so the first of equal elements
// wins; last_min/last_max use a non-strict update so the last one wins.
func extremum(v value.Value, wantMax, lastWins bool) (value.Value, *value.Error) {
	if v.Rank() == 0 {
		return value.Value{}, value.Errorf(value.ShapeMismatch, "extremum: scalar has no rows")
	}
	n := v.RowCount()
	if n == 0 {
		return value.Value{}, value.Errorf(value.EmptyNoFill, "extremum: empty array has no rows")
	}
	best := 0
	for i := 1; i < n; i++ {
		c := value.CompareRows(v, i, best)
		if wantMax {
			c = -c
		}
		// c < 0 means row i is "smaller" (better) than the current best under
		// the effective order.
		if c < 0 || (lastWins && c == 0) {
			best = i
		}
	}
	return value.Scalar(float64(best)), nil
}
