package checker

// OpCode identifies the kind of one compiled Instruction.
type OpCode uint8

const ( //nolint:revive
	Push OpCode = iota
	BeginArray
	EndArray
	Call
	PushFunc
	PushTemp
	PopTemp
	CopyTemp
	DropTemp
	Switch
	Prim     // primitive invocation (surface-visible, from package primitive)
	ImplPrim // implementation-primitive invocation (internal-only, not surface syntax)
	Dynamic  // dynamic function call with a declared signature but no statically known body
)

func (op OpCode) String() string {
	switch op {
	case Push:
		return "push"
	case BeginArray:
		return "beginarray"
	case EndArray:
		return "endarray"
	case Call:
		return "call"
	case PushFunc:
		return "pushfunc"
	case PushTemp:
		return "pushtemp"
	case PopTemp:
		return "poptemp"
	case CopyTemp:
		return "copytemp"
	case DropTemp:
		return "droptemp"
	case Switch:
		return "switch"
	case Prim:
		return "prim"
	case ImplPrim:
		return "implprim"
	case Dynamic:
		return "dynamic"
	default:
		return "illegal opcode"
	}
}

// Const is the literal payload of a Push instruction, kept abstract enough
// for the checker's symbolic interpreter to extract a Num or a shallow Arr
// from it: constants are extracted from push instructions of rank 0 or 1;
// deeper structures become Other.
type Const struct {
	// Rank is the rank of the pushed literal: 0 for a scalar, 1 for a flat
	// list, 2+ for anything deeper (which the checker treats as Other).
	Rank int
	// Scalar is valid when Rank == 0.
	Scalar float64
	// List is valid when Rank == 1.
	List []float64
}

// Instruction is one compiled unit. Only the fields relevant to the
// instruction's OpCode are meaningful; the rest are zero.
type Instruction struct {
	Op OpCode

	// Push
	Value Const

	// Call / PushFunc / Dynamic: the function being pushed, called, or
	// declared. For Dynamic, only Fn.Signature() is consulted.
	Fn Function

	// PushTemp / PopTemp / CopyTemp / DropTemp / Switch: item/branch count.
	N int

	// Switch: the N branch functions, in order.
	Branches []Function

	// Prim / ImplPrim: the primitive name, looked up in package primitive's
	// registry for its fixed (Args, Outputs) or (IsModifier, ModifierArgs).
	Name string
}
