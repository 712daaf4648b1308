// Package value implements koru's array value model: a rectangular array of
// typed scalars carrying a shape and a flat, row-major data buffer, plus the
// fill/error machinery the rank-polymorphic primitives in package algo are
// built against.
//
// A Value is a tagged union over four scalar families — float64, byte,
// rune (char) and boxed Value — selected by a Kind tag, with every array
// operation generic over the scalar under a small capability set (ordering,
// fill, default).
package value
