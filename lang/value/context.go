package value

// Context is the ambient capability an invoking host threads through every
// algo call ("Fill as ambient capability" and "ambient fill
// context"). It is the only form of context this package's primitives
// receive; there is no global mutable state.
type Context interface {
	// Fill returns the fill value for k and whether one is configured. A
	// fill value always has rank 0 (it stands in for one missing row's
	// worth of data, broadcast to whatever row shape is required).
	Fill(k Kind) (scalar Value, ok bool)
}

// NullContext is a Context with no fill configured for any kind. Consistent
// with this package's never-panic contract, it simply always reports no
// fill rather than panicking; callers that want stricter fail-fast behavior
// can wrap NullContext and panic on the bool.
type NullContext struct{}

func (NullContext) Fill(Kind) (Value, bool) { return Value{}, false }

// StaticContext is a Context backed by a fixed table of fill values, the
// shape a real interpreter's per-scope fill stack collapses to once
// resolved for a single call.
type StaticContext map[Kind]Value

func (c StaticContext) Fill(k Kind) (Value, bool) {
	v, ok := c[k]
	return v, ok
}
