package yason

import (
	"github.com/cespare/xxhash/v2"

	"github.com/yashan-technologies/yason-go/internal/yasonbuf"
)

// Yason is a borrowed view over a byte slice that is known (by the
// caller's contract, not runtime validation) to hold a well-formed YASON
// value: a single tag byte followed by that tag's payload. All reads off
// a Yason are zero-copy: strings and sub-documents alias the original
// bytes instead of being materialized into new allocations.
type Yason struct {
	bytes []byte
}

// NewUnchecked wraps bytes as a Yason without validating its contents.
// Callers must guarantee bytes holds a complete, well-formed value.
func NewUnchecked(bytes []byte) *Yason {
	return &Yason{bytes: bytes}
}

// Bytes returns the raw backing bytes of the document.
func (y *Yason) Bytes() []byte { return y.bytes }

// Hash returns a content hash of the document's encoded bytes, used by
// callers (e.g. yasonctl convert) to detect no-op re-encodes and to mint
// ETags without re-parsing the document.
func (y *Yason) Hash() uint64 {
	return xxhash.Sum64(y.bytes)
}

// DataType returns the value's tag.
func (y *Yason) DataType() (DataType, error) {
	return y.readType(0)
}

// YasonBuf is an owned YASON document: the result of a finished builder or
// of parsing external JSON text. It behaves identically to Yason for all
// read operations.
type YasonBuf struct {
	Yason
}

// NewBufUnchecked wraps an owned byte slice as a YasonBuf.
func NewBufUnchecked(bytes []byte) *YasonBuf {
	return &YasonBuf{Yason{bytes: bytes}}
}

// AsYason returns the borrowed view backing this owned document.
func (b *YasonBuf) AsYason() *Yason { return &b.Yason }

func (y *Yason) readU16(pos int) (uint16, error) {
	if pos+2 > len(y.bytes) {
		return 0, IndexOutOfBoundsError{Len: len(y.bytes), Index: pos + 1}
	}
	return yasonbuf.ReadUint16LE(y.bytes, pos), nil
}

func (y *Yason) readU32(pos int) (uint32, error) {
	if pos+4 > len(y.bytes) {
		return 0, IndexOutOfBoundsError{Len: len(y.bytes), Index: pos + 3}
	}
	return yasonbuf.ReadUint32LE(y.bytes, pos), nil
}

func (y *Yason) readI32(pos int) (int32, error) {
	v, err := y.readU32(pos)
	return int32(v), err
}

func (y *Yason) readType(pos int) (DataType, error) {
	if pos >= len(y.bytes) {
		return 0, IndexOutOfBoundsError{Len: len(y.bytes), Index: pos}
	}
	b := y.bytes[pos]
	if !validDataType(b) {
		return 0, InvalidDataTypeError{Byte: b}
	}
	return DataType(b), nil
}

func (y *Yason) isType(pos int, dt DataType) (bool, error) {
	actual, err := y.readType(pos)
	if err != nil {
		return false, err
	}
	return actual == dt, nil
}

func (y *Yason) checkType(pos int, dt DataType) error {
	actual, err := y.readType(pos)
	if err != nil {
		return err
	}
	if actual != dt {
		return UnexpectedTypeError{Expected: dt, Actual: actual}
	}
	return nil
}

func (y *Yason) slice(begin, end int) ([]byte, error) {
	if begin < 0 || end > len(y.bytes) || begin > end {
		return nil, IndexOutOfBoundsError{Len: len(y.bytes), Index: end}
	}
	return y.bytes[begin:end], nil
}

// readString reads a length-prefixed string whose varint length prefix
// begins right after the tag byte at valuePos.
func (y *Yason) readString(valuePos int) (string, error) {
	lengthPos := valuePos + dataTypeSize
	length, size, ok := yasonbuf.DecodeVarint(y.bytes, lengthPos)
	if !ok {
		return "", IndexOutOfBoundsError{Len: len(y.bytes), Index: lengthPos}
	}
	begin := lengthPos + size
	end := begin + int(length)
	b, err := y.slice(begin, end)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// readNumber reads an opaque-encoded decimal whose one-byte length prefix
// begins right after the tag byte at valuePos.
func (y *Yason) readNumber(valuePos int) (Number, error) {
	lengthPos := valuePos + dataTypeSize
	if lengthPos >= len(y.bytes) {
		return Number{}, IndexOutOfBoundsError{Len: len(y.bytes), Index: lengthPos}
	}
	length := int(y.bytes[lengthPos])
	begin := lengthPos + numberLengthSize
	end := begin + length
	b, err := y.slice(begin, end)
	if err != nil {
		return Number{}, err
	}
	n, nerr := decodeNumber(b)
	if nerr != nil {
		return Number{}, nerr
	}
	return n, nil
}

// readBool reads an inlined bool value at its value entry field.
func (y *Yason) readBool(fieldPos int) (bool, error) {
	v, err := y.readU32(fieldPos)
	if err != nil {
		return false, err
	}
	return v == 1, nil
}

// stringUnchecked returns the string payload of a top-level scalar String
// document (tag at offset 0).
func (y *Yason) stringUnchecked() (string, error) {
	return y.readString(0)
}

// numberUnchecked returns the Number payload of a top-level scalar Number
// document (tag at offset 0).
func (y *Yason) numberUnchecked() (Number, error) {
	return y.readNumber(0)
}

// boolUnchecked returns the bool payload of a top-level scalar Bool
// document. Unlike the in-container case, a standalone Bool document does
// not inline its value into a value-entry field: it stores one byte right
// after the tag.
func (y *Yason) boolUnchecked() (bool, error) {
	if len(y.bytes) < dataTypeSize+boolSize {
		return false, IndexOutOfBoundsError{Len: len(y.bytes), Index: dataTypeSize}
	}
	return y.bytes[dataTypeSize] == 1, nil
}
