// Package checker implements the static arity checker of : a pure
// abstract-stack interpreter that computes, for any compiled instruction
// list, how many items it consumes and produces from the implicit data
// stack, without ever executing the instructions for real.
package checker

import "fmt"

// Signature is a function's stack-consumption and stack-production.
type Signature struct {
	Args    int
	Outputs int
}

func (s Signature) String() string { return fmt.Sprintf("|%d.%d", s.Args, s.Outputs) }

// delta is the net effect on stack height: positive means the function
// grows the stack.
func (s Signature) delta() int { return s.Outputs - s.Args }

// CompatibleWith reports whether s and o are compatible: equal net
// stack delta, and the larger of the two argument counts can be reached by
// padding the smaller with extra (unused) arguments while producing the
// same extra outputs — i.e. the same condition holds symmetrically.
func (s Signature) CompatibleWith(o Signature) bool {
	if s.delta() != o.delta() {
		return false
	}
	// Padding s.Args up to max(s.Args, o.Args) must also pad s.Outputs up to
	// the same amount plus the shared delta, and vice versa — which holds
	// automatically once the deltas match, since outputs = args + delta for
	// both. The only remaining requirement is that neither side needs a
	// negative pad, which is always true for non-negative Args/Outputs.
	return true
}

// MaxWith returns the element-wise maximum of s and o's Args, with Outputs
// adjusted to preserve the shared net delta.
func (s Signature) MaxWith(o Signature) Signature {
	args := s.Args
	if o.Args > args {
		args = o.Args
	}
	return Signature{Args: args, Outputs: args + s.delta()}
}

// IsSubsetOf reports whether s needs no more args and produces no more
// outputs than target, while matching its net delta.
func (s Signature) IsSubsetOf(target Signature) bool {
	return s.Args <= target.Args && s.Outputs <= target.Outputs && s.delta() == target.delta()
}
