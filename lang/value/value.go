package value

import "fmt"

// Value is a rectangular array of typed scalars: a Shape plus a flat,
// row-major data buffer of exactly one of four scalar families. Exactly
// one of the typed buffer fields is non-nil, selected by Kind.
type Value struct {
	kind  Kind
	shape Shape

	floats *buffer[float64]
	bytes  *buffer[byte]
	chars  *buffer[rune]
	boxes  *buffer[Value]
}

// NewFloats builds a Float-kind Value. len(data) must equal shape.Len().
func NewFloats(shape Shape, data []float64) Value {
	mustFit(shape, len(data))
	return Value{kind: Float, shape: shape, floats: newBuffer(data)}
}

// NewBytes builds a Byte-kind Value.
func NewBytes(shape Shape, data []byte) Value {
	mustFit(shape, len(data))
	return Value{kind: Byte, shape: shape, bytes: newBuffer(data)}
}

// NewChars builds a Char-kind Value.
func NewChars(shape Shape, data []rune) Value {
	mustFit(shape, len(data))
	return Value{kind: Char, shape: shape, chars: newBuffer(data)}
}

// NewBoxes builds a Box-kind Value.
func NewBoxes(shape Shape, data []Value) Value {
	mustFit(shape, len(data))
	return Value{kind: Box, shape: shape, boxes: newBuffer(data)}
}

// Scalar builds a rank-0 Float Value, the common case for numeric literals.
func Scalar(f float64) Value { return NewFloats(nil, []float64{f}) }

func mustFit(shape Shape, n int) {
	if want := shape.Len(); want != n {
		panic(fmt.Sprintf("value: shape %v wants %d elements, got %d", []int(shape), want, n))
	}
}

// Kind reports which scalar family backs v.
func (v Value) Kind() Kind { return v.kind }

// Shape returns v's shape. Callers must not mutate the returned slice.
func (v Value) Shape() Shape { return v.shape }

// Rank is len(shape).
func (v Value) Rank() int { return v.shape.Rank() }

// RowCount is shape[0], 0 for rank-0.
func (v Value) RowCount() int { return v.shape.RowCount() }

// RowLen is product(shape[1:]).
func (v Value) RowLen() int { return v.shape.RowLen() }

// Len is the total element count, product(shape).
func (v Value) Len() int { return v.shape.Len() }

// IsScalar reports rank 0.
func (v Value) IsScalar() bool { return v.Rank() == 0 }

// IsEmpty reports whether any dimension is 0.
func (v Value) IsEmpty() bool {
	for _, d := range v.shape {
		if d == 0 {
			return true
		}
	}
	return false
}

// Floats returns the backing data for a Float value. Panics on any other
// Kind: a kind-specific accessor rather than a runtime type switch at every
// call site.
func (v Value) Floats() []float64 {
	if v.kind != Float {
		panic("value: Floats on non-Float Value (kind " + v.kind.String() + ")")
	}
	return v.floats.data
}

// Bytes returns the backing data for a Byte value.
func (v Value) Bytes() []byte {
	if v.kind != Byte {
		panic("value: Bytes on non-Byte Value (kind " + v.kind.String() + ")")
	}
	return v.bytes.data
}

// Chars returns the backing data for a Char value.
func (v Value) Chars() []rune {
	if v.kind != Char {
		panic("value: Chars on non-Char Value (kind " + v.kind.String() + ")")
	}
	return v.chars.data
}

// Boxes returns the backing data for a Box value.
func (v Value) Boxes() []Value {
	if v.kind != Box {
		panic("value: Boxes on non-Box Value (kind " + v.kind.String() + ")")
	}
	return v.boxes.data
}

// AsFloat64s returns v's elements widened to float64 regardless of whether
// v is Float or Byte kind (Float/Byte interchangeability). It panics
// for Char or Box, which have no numeric interpretation.
func (v Value) AsFloat64s() []float64 {
	switch v.kind {
	case Float:
		return v.floats.data
	case Byte:
		out := make([]float64, len(v.bytes.data))
		for i, b := range v.bytes.data {
			out[i] = float64(b)
		}
		return out
	default:
		panic("value: AsFloat64s on non-numeric Value (kind " + v.kind.String() + ")")
	}
}

// Clone returns a Value sharing v's buffer, bumping its refcount: cloning
// is cheap, mutation pays the copy cost only when it must.
func (v Value) Clone() Value {
	cp := v
	switch v.kind {
	case Float:
		cp.floats = v.floats.retain()
	case Byte:
		cp.bytes = v.bytes.retain()
	case Char:
		cp.chars = v.chars.retain()
	case Box:
		cp.boxes = v.boxes.retain()
	}
	cp.shape = v.shape.Clone()
	return cp
}

// EnsureUniqueFloats returns a []float64 safe for v to mutate in place,
// cloning the backing buffer first if it is shared. v itself is updated to
// point at the (possibly new) buffer.
func (v *Value) EnsureUniqueFloats() []float64 {
	nb, data := v.floats.uniqueData()
	v.floats = nb
	return data
}

// EnsureUniqueBytes is EnsureUniqueFloats for Byte values.
func (v *Value) EnsureUniqueBytes() []byte {
	nb, data := v.bytes.uniqueData()
	v.bytes = nb
	return data
}

// EnsureUniqueChars is EnsureUniqueFloats for Char values.
func (v *Value) EnsureUniqueChars() []rune {
	nb, data := v.chars.uniqueData()
	v.chars = nb
	return data
}

// EnsureUniqueBoxes is EnsureUniqueFloats for Box values.
func (v *Value) EnsureUniqueBoxes() []Value {
	nb, data := v.boxes.uniqueData()
	v.boxes = nb
	return data
}

// Row returns the i-th row of v as a standalone Value of shape
// shape[1:], sharing no mutable state with v (data is copied, since a row
// is a strict sub-slice and COW aliasing across different shapes would be
// unsound for later in-place mutation of either).
func (v Value) Row(i int) Value {
	rowLen := v.RowLen()
	lo, hi := i*rowLen, (i+1)*rowLen
	rowShape := v.shape.RowShape()
	switch v.kind {
	case Float:
		data := make([]float64, rowLen)
		copy(data, v.floats.data[lo:hi])
		return NewFloats(rowShape, data)
	case Byte:
		data := make([]byte, rowLen)
		copy(data, v.bytes.data[lo:hi])
		return NewBytes(rowShape, data)
	case Char:
		data := make([]rune, rowLen)
		copy(data, v.chars.data[lo:hi])
		return NewChars(rowShape, data)
	default:
		data := make([]Value, rowLen)
		copy(data, v.boxes.data[lo:hi])
		return NewBoxes(rowShape, data)
	}
}

func (v Value) String() string {
	return fmt.Sprintf("%s%v", v.kind, []int(v.shape))
}
