// Package algo implements the rank-polymorphic monadic array algorithms:
// deshape, range, first/last, reverse, transpose/inv_transpose, rise/fall,
// classify, deduplicate, bits/inverse_bits, where/first_where/
// inverse_where, utf8/inv_utf8, ocean, and the four extremum-index
// primitives, plus the array comparison order they all share (in package
// value, since rise/fall/classify/dedup/extrema all need it and none of
// them owns it).
//
// Range and the sorts (Rise, Fall) take a context.Context first, for
// cooperative cancellation by a host that wants to abort a runaway program.
// Range checks it every 4096 rows; the sorts check it once, before sorting,
// and not during the sort. Bits takes no context and cannot be cancelled.
package algo
