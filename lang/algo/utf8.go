package algo

import (
	"unicode/utf8"

	"koru/lang/value"
)

// UTF8 encodes a Char string value as its canonical UTF-8 byte sequence
//.
func UTF8(v value.Value) (value.Value, *value.Error) {
	if v.Kind() != value.Char {
		return value.Value{}, value.Errorf(value.TypeMismatch, "utf8: expected a char array")
	}
	chars := v.Chars()
	buf := make([]byte, 0, len(chars))
	for _, c := range chars {
		buf = utf8.AppendRune(buf, c)
	}
	return value.NewBytes(value.Shape{len(buf)}, buf), nil
}

// InvUTF8 decodes a rank-1 byte array as UTF-8 into a Char array. A
// decoding failure surfaces the decoder's reason as a ParseFailure.
func InvUTF8(v value.Value) (value.Value, *value.Error) {
	if v.Kind() != value.Byte {
		return value.Value{}, value.Errorf(value.TypeMismatch, "inv_utf8: expected a byte array")
	}
	b := v.Bytes()
	if !utf8.Valid(b) {
		return value.Value{}, value.Errorf(value.ParseFailure, "inv_utf8: invalid UTF-8 byte sequence")
	}
	chars := make([]rune, 0, utf8.RuneCount(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		chars = append(chars, r)
		b = b[size:]
	}
	return value.NewChars(value.Shape{len(chars)}, chars), nil
}
