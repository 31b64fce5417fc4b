// Package format implements deterministic JSON text emission over a
// yason.Yason document: a compact form and a two-space-indented pretty
// form, sharing one escape table and traversal.
//
// Grounded on _examples/original_source/src/format/{mod,pretty}.rs.
package format

import (
	"io"

	"github.com/yashan-technologies/yason-go/yason"
)

// Formatter is the extensible visitor over a document's structure. Base
// supplies every method with the compact-JSON default; PrettyFormatter
// overrides the hooks that need indentation. Self-dispatch is done
// through the embedded Self field rather than Go method promotion, since
// promoted methods cannot see overrides made on the outer type.
type Formatter interface {
	Format(y *yason.Yason, w io.Writer) error
	WriteValue(v yason.Value, w io.Writer) error
	WriteNull(w io.Writer) error
	WriteBool(v bool, w io.Writer) error
	WriteNumber(n yason.Number, w io.Writer) error
	WriteString(s string, w io.Writer) error
	WriteObject(o *yason.Object, w io.Writer) error
	WriteObjectValue(key string, v yason.Value, first bool, w io.Writer) error
	WriteArray(a *yason.Array, w io.Writer) error
	WriteArrayValue(v yason.Value, first bool, w io.Writer) error

	BeginString(w io.Writer) error
	EndString(w io.Writer) error
	BeginArray(w io.Writer) error
	EndArray(w io.Writer) error
	BeginArrayValue(first bool, w io.Writer) error
	EndArrayValue(w io.Writer) error
	BeginObject(w io.Writer) error
	EndObject(w io.Writer) error
	BeginObjectKey(first bool, w io.Writer) error
	EndObjectKey(w io.Writer) error
	BeginObjectValue(w io.Writer) error
	EndObjectValue(w io.Writer) error
}

// Base implements every Formatter method with the compact-JSON default.
// Embedders must set Self to themselves immediately after construction.
type Base struct {
	Self Formatter
}

func writeBytes(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return err
}

// Format dispatches on the document's top-level tag.
func (b *Base) Format(y *yason.Yason, w io.Writer) error {
	dt, err := y.DataType()
	if err != nil {
		return err
	}
	switch dt {
	case yason.TypeObject:
		o, err := y.Object()
		if err != nil {
			return err
		}
		return b.Self.WriteObject(&o, w)
	case yason.TypeArray:
		a, err := y.Array()
		if err != nil {
			return err
		}
		return b.Self.WriteArray(&a, w)
	case yason.TypeString:
		s, err := y.String()
		if err != nil {
			return err
		}
		return b.Self.WriteString(s, w)
	case yason.TypeNumber:
		n, err := y.NumberValue()
		if err != nil {
			return err
		}
		return b.Self.WriteNumber(n, w)
	case yason.TypeBool:
		v, err := y.Bool()
		if err != nil {
			return err
		}
		return b.Self.WriteBool(v, w)
	default:
		return b.Self.WriteNull(w)
	}
}

// WriteValue dispatches on an already-materialized Value.
func (b *Base) WriteValue(v yason.Value, w io.Writer) error {
	switch v.Type {
	case yason.TypeObject:
		return b.Self.WriteObject(v.Object, w)
	case yason.TypeArray:
		return b.Self.WriteArray(v.Array, w)
	case yason.TypeString:
		return b.Self.WriteString(v.String, w)
	case yason.TypeNumber:
		return b.Self.WriteNumber(v.Number, w)
	case yason.TypeBool:
		return b.Self.WriteBool(v.Bool, w)
	default:
		return b.Self.WriteNull(w)
	}
}

func (b *Base) WriteNull(w io.Writer) error { return writeBytes(w, []byte("null")) }

func (b *Base) WriteBool(v bool, w io.Writer) error {
	if v {
		return writeBytes(w, []byte("true"))
	}
	return writeBytes(w, []byte("false"))
}

func (b *Base) WriteNumber(n yason.Number, w io.Writer) error {
	return writeBytes(w, []byte(n.String()))
}

func (b *Base) WriteString(s string, w io.Writer) error {
	if err := b.Self.BeginString(w); err != nil {
		return err
	}
	if err := formatEscapedString(s, w); err != nil {
		return err
	}
	return b.Self.EndString(w)
}

func (b *Base) WriteObject(o *yason.Object, w io.Writer) error {
	if err := b.Self.BeginObject(w); err != nil {
		return err
	}

	entries, err := o.Iter()
	if err != nil {
		return err
	}
	for i, e := range entries {
		if err := b.Self.WriteObjectValue(e.Key, e.Value, i == 0, w); err != nil {
			return err
		}
	}

	return b.Self.EndObject(w)
}

func (b *Base) WriteObjectValue(key string, v yason.Value, first bool, w io.Writer) error {
	if err := b.Self.BeginObjectKey(first, w); err != nil {
		return err
	}
	if err := b.Self.WriteString(key, w); err != nil {
		return err
	}
	if err := b.Self.EndObjectKey(w); err != nil {
		return err
	}
	if err := b.Self.BeginObjectValue(w); err != nil {
		return err
	}
	if err := b.Self.WriteValue(v, w); err != nil {
		return err
	}
	return b.Self.EndObjectValue(w)
}

func (b *Base) WriteArray(a *yason.Array, w io.Writer) error {
	if err := b.Self.BeginArray(w); err != nil {
		return err
	}

	values, err := a.Iter()
	if err != nil {
		return err
	}
	for i, v := range values {
		if err := b.Self.WriteArrayValue(v, i == 0, w); err != nil {
			return err
		}
	}

	return b.Self.EndArray(w)
}

func (b *Base) WriteArrayValue(v yason.Value, first bool, w io.Writer) error {
	if err := b.Self.BeginArrayValue(first, w); err != nil {
		return err
	}
	if err := b.Self.WriteValue(v, w); err != nil {
		return err
	}
	return b.Self.EndArrayValue(w)
}

func (b *Base) BeginString(w io.Writer) error { return writeBytes(w, []byte(`"`)) }
func (b *Base) EndString(w io.Writer) error   { return writeBytes(w, []byte(`"`)) }

func (b *Base) BeginArray(w io.Writer) error { return writeBytes(w, []byte("[")) }
func (b *Base) EndArray(w io.Writer) error   { return writeBytes(w, []byte("]")) }

func (b *Base) BeginArrayValue(first bool, w io.Writer) error {
	if !first {
		return writeBytes(w, []byte(","))
	}
	return nil
}
func (b *Base) EndArrayValue(w io.Writer) error { return nil }

func (b *Base) BeginObject(w io.Writer) error { return writeBytes(w, []byte("{")) }
func (b *Base) EndObject(w io.Writer) error   { return writeBytes(w, []byte("}")) }

func (b *Base) BeginObjectKey(first bool, w io.Writer) error {
	if !first {
		return writeBytes(w, []byte(","))
	}
	return nil
}
func (b *Base) EndObjectKey(w io.Writer) error { return nil }

func (b *Base) BeginObjectValue(w io.Writer) error { return writeBytes(w, []byte(":")) }
func (b *Base) EndObjectValue(w io.Writer) error   { return nil }

// CompactFormatter emits canonical, whitespace-free JSON: every Formatter
// method uses Base's default.
type CompactFormatter struct{ Base }

// NewCompactFormatter returns a ready-to-use compact formatter.
func NewCompactFormatter() *CompactFormatter {
	f := &CompactFormatter{}
	f.Self = f
	return f
}

// escape is a 256-entry lookup table: index i holds the replacement
// sequence for byte i, or nil if byte i passes through unescaped.
var escape = buildEscapeTable()

func buildEscapeTable() [256][]byte {
	var t [256][]byte
	const hex = "0123456789abcdef"
	// Every other control byte and 0x7F has no short form: render as
	// \u00XX so the output never contains a raw control character, which
	// encoding/json (and the grammar generally) rejects inside a string.
	for b := 0; b < 0x20; b++ {
		t[b] = []byte{'\\', 'u', '0', '0', hex[b>>4], hex[b&0xf]}
	}
	t[0x7f] = []byte{'\\', 'u', '0', '0', '7', 'f'}
	t['\b'] = []byte(`\b`)
	t['\t'] = []byte(`\t`)
	t['\n'] = []byte(`\n`)
	t['\f'] = []byte(`\f`)
	t['\r'] = []byte(`\r`)
	t['"'] = []byte(`\"`)
	t['\\'] = []byte(`\\`)
	t['/'] = []byte(`\/`)
	return t
}

func formatEscapedString(value string, w io.Writer) error {
	bytes := []byte(value)
	start := 0
	for i, b := range bytes {
		seq := escape[b]
		if seq == nil {
			continue
		}
		if start < i {
			if err := writeBytes(w, bytes[start:i]); err != nil {
				return err
			}
		}
		if err := writeBytes(w, seq); err != nil {
			return err
		}
		start = i + 1
	}
	if start != len(bytes) {
		if err := writeBytes(w, bytes[start:]); err != nil {
			return err
		}
	}
	return nil
}
