// Package jsonconv bridges JSON text and YASON documents: parsing JSON
// into a freshly built document, and rendering a document back to JSON
// text (delegating to yason/format for the latter).
//
// Grounded on _examples/original_source/src/json.rs (the
// TryFrom<&serde_json::Value> / write_array / write_object /
// number2decimal functions) and the teacher's own jsoniter usage in
// jsonbuilder/builder.go and request-response.go.
package jsonconv

import (
	"encoding/json"

	jsoniter "github.com/json-iterator/go"

	"github.com/yashan-technologies/yason-go/yason"
	"github.com/yashan-technologies/yason-go/yason/builder"
)

// jsonAPI decodes numbers as json.Number instead of float64, preserving
// the original decimal text so large integers and high-precision
// decimals survive the JSON -> YASON -> JSON round trip exactly,
// mirroring number2decimal's format-then-reparse approach in json.rs.
var jsonAPI = jsoniter.Config{UseNumber: true}.Froze()

// Parse converts JSON text into a freshly built YASON document.
func Parse(data []byte) (*yason.YasonBuf, error) {
	var v interface{}
	if err := jsonAPI.Unmarshal(data, &v); err != nil {
		return nil, builder.JSONError{Err: err}
	}
	return fromAny(v)
}

// ParseString is a convenience wrapper around Parse for string input.
func ParseString(s string) (*yason.YasonBuf, error) {
	return Parse([]byte(s))
}

func fromAny(v interface{}) (*yason.YasonBuf, error) {
	switch val := v.(type) {
	case nil:
		return builder.EncodeNull(), nil
	case bool:
		return builder.EncodeBool(val)
	case json.Number:
		n, err := numberFromJSON(val)
		if err != nil {
			return nil, err
		}
		return builder.EncodeNumber(n)
	case string:
		return builder.EncodeString(val)
	case []interface{}:
		ab, err := builder.NewArrayBuilder(uint16(len(val)))
		if err != nil {
			return nil, err
		}
		if err := writeArray(ab, val); err != nil {
			return nil, err
		}
		return ab.Finish()
	case map[string]interface{}:
		ob, err := builder.NewObjectBuilder(uint16(len(val)), false)
		if err != nil {
			return nil, err
		}
		if err := writeObject(ob, val); err != nil {
			return nil, err
		}
		return ob.Finish()
	default:
		return nil, builder.JSONError{Err: &unsupportedValueError{value: v}}
	}
}

// arrBuilder is the subset of ArrayBuilder/ArrayRefBuilder's method set
// needed to stream a JSON array into a document, the Go analogue of the
// Rust ArrBuilder trait.
type arrBuilder interface {
	PushObject(elementCount uint16, keySorted bool) (*builder.ObjectRefBuilder, error)
	PushArray(elementCount uint16) (*builder.ArrayRefBuilder, error)
	PushString(value string) error
	PushNumber(value yason.Number) error
	PushBool(value bool) error
	PushNull() error
}

// objBuilder is the subset of ObjectBuilder/ObjectRefBuilder's method set
// needed to stream a JSON object into a document, the Go analogue of the
// Rust ObjBuilder trait.
type objBuilder interface {
	PushObject(key string, elementCount uint16, keySorted bool) (*builder.ObjectRefBuilder, error)
	PushArray(key string, elementCount uint16) (*builder.ArrayRefBuilder, error)
	PushString(key, value string) error
	PushNumber(key string, value yason.Number) error
	PushBool(key string, value bool) error
	PushNull(key string) error
}

func writeArray(b arrBuilder, values []interface{}) error {
	for _, v := range values {
		if err := pushArrayElement(b, v); err != nil {
			return err
		}
	}
	return nil
}

func pushArrayElement(b arrBuilder, v interface{}) error {
	switch val := v.(type) {
	case nil:
		return b.PushNull()
	case bool:
		return b.PushBool(val)
	case json.Number:
		n, err := numberFromJSON(val)
		if err != nil {
			return err
		}
		return b.PushNumber(n)
	case string:
		return b.PushString(val)
	case []interface{}:
		nested, err := b.PushArray(uint16(len(val)))
		if err != nil {
			return err
		}
		if err := writeArray(nested, val); err != nil {
			return err
		}
		_, err = nested.Finish()
		return err
	case map[string]interface{}:
		nested, err := b.PushObject(uint16(len(val)), false)
		if err != nil {
			return err
		}
		if err := writeObject(nested, val); err != nil {
			return err
		}
		_, err = nested.Finish()
		return err
	default:
		return builder.JSONError{Err: &unsupportedValueError{value: v}}
	}
}

func writeObject(b objBuilder, object map[string]interface{}) error {
	for key, v := range object {
		if err := pushObjectEntry(b, key, v); err != nil {
			return err
		}
	}
	return nil
}

func pushObjectEntry(b objBuilder, key string, v interface{}) error {
	switch val := v.(type) {
	case nil:
		return b.PushNull(key)
	case bool:
		return b.PushBool(key, val)
	case json.Number:
		n, err := numberFromJSON(val)
		if err != nil {
			return err
		}
		return b.PushNumber(key, n)
	case string:
		return b.PushString(key, val)
	case []interface{}:
		nested, err := b.PushArray(key, uint16(len(val)))
		if err != nil {
			return err
		}
		if err := writeArray(nested, val); err != nil {
			return err
		}
		_, err = nested.Finish()
		return err
	case map[string]interface{}:
		nested, err := b.PushObject(key, uint16(len(val)), false)
		if err != nil {
			return err
		}
		if err := writeObject(nested, val); err != nil {
			return err
		}
		_, err = nested.Finish()
		return err
	default:
		return builder.JSONError{Err: &unsupportedValueError{value: v}}
	}
}

func numberFromJSON(n json.Number) (yason.Number, error) {
	v, err := yason.ParseNumber(n.String())
	if err != nil {
		return yason.Number{}, builder.NumberErrorWrap{Err: err}
	}
	return v, nil
}

type unsupportedValueError struct {
	value interface{}
}

func (e *unsupportedValueError) Error() string {
	return "unsupported JSON value of unexpected Go type"
}
