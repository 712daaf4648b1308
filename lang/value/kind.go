package value

import "fmt"

// Kind identifies which of the four scalar families a Value's data buffer
// holds.
type Kind uint8

const (
	Float Kind = iota // A<f64>
	Byte              // A<u8>, a compact representation interchangeable with Float
	Char              // A<char>, a rune per element
	Box               // A<Box>, nested/ragged Value elements
)

func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case Byte:
		return "byte"
	case Char:
		return "char"
	case Box:
		return "box"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// IsNumeric reports whether k participates in Float/Byte numeric widening:
// byte arrays are a compact representation interchangeable with float
// arrays via widening.
func (k Kind) IsNumeric() bool { return k == Float || k == Byte }
