package builder

import (
	"github.com/yashan-technologies/yason-go/internal/yasonbuf"
	"github.com/yashan-technologies/yason-go/yason"
)

// EncodeString encodes a standalone string document: a String the caller
// can store or transmit on its own, not nested inside a container.
func EncodeString(s string) (*yason.YasonBuf, error) {
	bytes, err := appendString(nil, s)
	if err != nil {
		return nil, err
	}
	return yason.NewBufUnchecked(bytes), nil
}

// EncodeNumber encodes a standalone number document.
func EncodeNumber(n yason.Number) (*yason.YasonBuf, error) {
	bytes, err := appendNumber(nil, n)
	if err != nil {
		return nil, err
	}
	return yason.NewBufUnchecked(bytes), nil
}

// EncodeBool encodes a standalone bool document.
func EncodeBool(v bool) (*yason.YasonBuf, error) {
	bytes := appendBool(nil, v)
	return yason.NewBufUnchecked(bytes), nil
}

// EncodeNull encodes a standalone null document.
func EncodeNull() *yason.YasonBuf {
	bytes := appendTag(nil, yason.TypeNull)
	return yason.NewBufUnchecked(bytes)
}

func appendTag(bytes []byte, dt yason.DataType) []byte {
	return append(bytes, byte(dt))
}

func appendString(bytes []byte, s string) ([]byte, error) {
	if len(s) > yason.MaxStringSize {
		return nil, StringTooLongError{Length: len(s)}
	}
	bytes = appendTag(bytes, yason.TypeString)
	bytes = yasonbuf.EncodeVarint(bytes, uint32(len(s)))
	bytes = append(bytes, s...)
	return bytes, nil
}

func appendNumber(bytes []byte, n yason.Number) ([]byte, error) {
	bytes = appendTag(bytes, yason.TypeNumber)
	var tmp [yason.MaxNumberBinarySize]byte
	size, err := n.CompactEncode(tmp[:])
	if err != nil {
		return nil, NumberErrorWrap{Err: err}
	}
	bytes = append(bytes, byte(size))
	bytes = append(bytes, tmp[:size]...)
	return bytes, nil
}

func appendBool(bytes []byte, v bool) []byte {
	bytes = appendTag(bytes, yason.TypeBool)
	b := byte(0)
	if v {
		b = 1
	}
	return append(bytes, b)
}

func appendKey(bytes []byte, key string) []byte {
	bytes = yasonbuf.PutUint16LE(bytes, uint16(len(key)))
	return append(bytes, key...)
}
