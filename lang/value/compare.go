package value

import "math"

// cmpFloat implements the array comparison order's total order over f64
// scalars: NaN compares greater than +∞ and all NaNs compare equal to each
// other. This is the module's fixed tie-break for NaN.
func cmpFloat(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpByte(a, b byte) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpChar(a, b rune) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareShape(a, b Shape) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Compare is the total order over arbitrary Values used to order Box
// elements structurally. Values of
// different non-numeric kinds order by Kind; numeric kinds (Float, Byte)
// compare after widening, since they are interchangeable. Shape is
// compared before data (rank first, then dimension by dimension) so that
// differently shaped values still have a defined order — a convention this
// module adds, since the array comparison order is otherwise only defined
// for same-shape rows.
func Compare(a, b Value) int {
	if a.kind.IsNumeric() && b.kind.IsNumeric() && a.kind != b.kind {
		return compareNumeric(a, b)
	}
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	if c := compareShape(a.shape, b.shape); c != 0 {
		return c
	}
	n := a.Len()
	switch a.kind {
	case Float:
		for i := 0; i < n; i++ {
			if c := cmpFloat(a.floats.data[i], b.floats.data[i]); c != 0 {
				return c
			}
		}
	case Byte:
		for i := 0; i < n; i++ {
			if c := cmpByte(a.bytes.data[i], b.bytes.data[i]); c != 0 {
				return c
			}
		}
	case Char:
		for i := 0; i < n; i++ {
			if c := cmpChar(a.chars.data[i], b.chars.data[i]); c != 0 {
				return c
			}
		}
	case Box:
		for i := 0; i < n; i++ {
			if c := Compare(a.boxes.data[i], b.boxes.data[i]); c != 0 {
				return c
			}
		}
	}
	return 0
}

func compareNumeric(a, b Value) int {
	if c := compareShape(a.shape, b.shape); c != 0 {
		return c
	}
	af, bf := a.AsFloat64s(), b.AsFloat64s()
	for i := range af {
		if c := cmpFloat(af[i], bf[i]); c != 0 {
			return c
		}
	}
	return 0
}

// CompareRows compares row i and row j of v lexicographically over their
// flat element data ("Rows compared lexicographically element-by-
// element over the flat row data; first inequality wins"). v must have
// rank ≥ 1; i and j must be valid row indices.
func CompareRows(v Value, i, j int) int {
	if i == j {
		return 0
	}
	rowLen := v.RowLen()
	lo, ro := i*rowLen, j*rowLen
	switch v.kind {
	case Float:
		d := v.floats.data
		for k := 0; k < rowLen; k++ {
			if c := cmpFloat(d[lo+k], d[ro+k]); c != 0 {
				return c
			}
		}
	case Byte:
		d := v.bytes.data
		for k := 0; k < rowLen; k++ {
			if c := cmpByte(d[lo+k], d[ro+k]); c != 0 {
				return c
			}
		}
	case Char:
		d := v.chars.data
		for k := 0; k < rowLen; k++ {
			if c := cmpChar(d[lo+k], d[ro+k]); c != 0 {
				return c
			}
		}
	case Box:
		d := v.boxes.data
		for k := 0; k < rowLen; k++ {
			if c := Compare(d[lo+k], d[ro+k]); c != 0 {
				return c
			}
		}
	}
	return 0
}

// RowsEqual reports whether rows i and j of v are identical under
// CompareRows, the notion of "distinct row" used by Classify and
// Deduplicate.
func RowsEqual(v Value, i, j int) bool { return CompareRows(v, i, j) == 0 }
