package yason

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// MaxNumberBinarySize bounds the opaque encoded payload written after the
// one-byte length prefix of a Number. It is sized generously for any
// decimal a JSON document is likely to carry.
const MaxNumberBinarySize = 40

// Number is the opaque decimal value carried by YASON's Number data type.
//
// The binary format treats number encoding as an external collaborator:
// the format only cares that a Number occupies a length byte followed by
// at most MaxNumberBinarySize opaque bytes it can copy verbatim. There is
// no arbitrary-precision decimal library in this module's dependency
// stack, so Number is implemented directly on math/big (see DESIGN.md for
// why).
type Number struct {
	unscaled *big.Int
	scale    int32 // value == unscaled * 10^-scale
}

// NumberError is returned by Number encoding/decoding and parsing.
type NumberError struct {
	Op  string
	Msg string
}

func (e *NumberError) Error() string { return fmt.Sprintf("number %s: %s", e.Op, e.Msg) }

// NumberFromInt64 builds a Number representing an exact integer.
func NumberFromInt64(v int64) Number {
	return Number{unscaled: big.NewInt(v), scale: 0}
}

// NumberFromInt builds a Number representing an exact integer, convenient
// for counts and indices produced by the path engine's item methods.
func NumberFromInt(v int) Number {
	return NumberFromInt64(int64(v))
}

// ParseNumber parses the decimal textual representation used by JSON
// number literals (optional '-', optional fraction, optional exponent)
// into a Number. A leading '+' is also accepted.
func ParseNumber(s string) (Number, error) {
	if s == "" {
		return Number{}, &NumberError{Op: "parse", Msg: "empty input"}
	}

	mantissa := s
	exp := 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa = s[:i]
		e, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return Number{}, &NumberError{Op: "parse", Msg: "invalid exponent"}
		}
		exp = e
	}

	neg := false
	if strings.HasPrefix(mantissa, "-") {
		neg = true
		mantissa = mantissa[1:]
	} else if strings.HasPrefix(mantissa, "+") {
		mantissa = mantissa[1:]
	}

	intPart := mantissa
	fracPart := ""
	if i := strings.IndexByte(mantissa, '.'); i >= 0 {
		intPart = mantissa[:i]
		fracPart = mantissa[i+1:]
	}
	if intPart == "" && fracPart == "" {
		return Number{}, &NumberError{Op: "parse", Msg: "no digits"}
	}

	digits := intPart + fracPart
	if digits == "" {
		digits = "0"
	}
	unscaled := new(big.Int)
	if _, ok := unscaled.SetString(digits, 10); !ok {
		return Number{}, &NumberError{Op: "parse", Msg: "not a valid decimal"}
	}
	if neg {
		unscaled.Neg(unscaled)
	}

	scale := int32(len(fracPart) - exp)
	return Number{unscaled: unscaled, scale: scale}, nil
}

// String renders the canonical JSON numeric text for the value.
func (n Number) String() string {
	if n.unscaled == nil {
		return "0"
	}
	digits := new(big.Int).Abs(n.unscaled).String()
	neg := n.unscaled.Sign() < 0

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}

	switch {
	case n.scale <= 0:
		sb.WriteString(digits)
		sb.WriteString(strings.Repeat("0", int(-n.scale)))
	case int(n.scale) >= len(digits):
		sb.WriteString("0.")
		sb.WriteString(strings.Repeat("0", int(n.scale)-len(digits)))
		sb.WriteString(digits)
	default:
		split := len(digits) - int(n.scale)
		sb.WriteString(digits[:split])
		sb.WriteByte('.')
		sb.WriteString(digits[split:])
	}
	return sb.String()
}

// FormatToJSON writes the number's JSON text representation.
func (n Number) FormatToJSON(w interface{ WriteString(string) (int, error) }) error {
	_, err := w.WriteString(n.String())
	return err
}

// Compare orders two numbers by value, ignoring scale differences (1 and
// 1.0 compare equal).
func (n Number) Compare(other Number) int {
	toRat := func(x Number) *big.Rat {
		if x.scale < 0 {
			return new(big.Rat).SetInt(new(big.Int).Mul(x.unscaled, pow10(x.scale)))
		}
		return new(big.Rat).SetFrac(x.unscaled, pow10(x.scale))
	}
	return toRat(n).Cmp(toRat(other))
}

func pow10(scale int32) *big.Int {
	if scale < 0 {
		scale = -scale
	}
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale)), nil)
}

// CompactEncode writes the opaque binary form into dst (which must have
// length >= MaxNumberBinarySize) and returns the number of bytes used.
// Exported for the builder package, which is the only other package
// allowed to write the Number payload into a document.
func (n Number) CompactEncode(dst []byte) (int, error) {
	if n.unscaled == nil {
		n.unscaled = big.NewInt(0)
	}
	mag := n.unscaled.Bytes()
	// layout: [sign:1][scale:4 LE signed][len(mag):1][mag...]
	need := 1 + 4 + 1 + len(mag)
	if need > len(dst) {
		return 0, &NumberError{Op: "encode", Msg: "number too large to encode"}
	}
	sign := byte(0)
	if n.unscaled.Sign() < 0 {
		sign = 1
	}
	dst[0] = sign
	putInt32LE(dst[1:5], n.scale)
	dst[5] = byte(len(mag))
	copy(dst[6:], mag)
	return need, nil
}

// decodeNumber decodes the opaque payload written by CompactEncode.
func decodeNumber(src []byte) (Number, error) {
	if len(src) < 6 {
		return Number{}, &NumberError{Op: "decode", Msg: "truncated number payload"}
	}
	sign := src[0]
	scale := int32LE(src[1:5])
	magLen := int(src[5])
	if len(src) < 6+magLen {
		return Number{}, &NumberError{Op: "decode", Msg: "truncated number payload"}
	}
	unscaled := new(big.Int).SetBytes(src[6 : 6+magLen])
	if sign == 1 {
		unscaled.Neg(unscaled)
	}
	return Number{unscaled: unscaled, scale: scale}, nil
}

func putInt32LE(b []byte, v int32) {
	u := uint32(v)
	b[0] = byte(u)
	b[1] = byte(u >> 8)
	b[2] = byte(u >> 16)
	b[3] = byte(u >> 24)
}

func int32LE(b []byte) int32 {
	return int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
}
