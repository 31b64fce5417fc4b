package format

import "io"

// prettyIndentUnit is the per-level indent width, matching the Rust
// default PrettyOptions (2 spaces).
const prettyIndentUnit = 2

var prettySpaces = make([]byte, 200)

func init() {
	for i := range prettySpaces {
		prettySpaces[i] = ' '
	}
}

func writeIndent(w io.Writer, level int) error {
	n := level * prettyIndentUnit
	for n > 0 {
		chunk := n
		if chunk > len(prettySpaces) {
			chunk = len(prettySpaces)
		}
		if err := writeBytes(w, prettySpaces[:chunk]); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// PrettyFormatter emits two-space-indented JSON with a newline before
// every object/array entry, including a newline inside an otherwise-empty
// container (newline_in_empty). Grounded on PrettyFormatter in
// _examples/original_source/src/format/pretty.rs; PrettyOptions' defaults
// (indent=2, newline_in_empty=true, newline_in_nested=true,
// kv_delimiter=" : ") are hard-wired rather than made configurable, since
// no caller in this module needs to vary them.
type PrettyFormatter struct {
	Base
	indentLevel int
}

// NewPrettyFormatter returns a ready-to-use pretty formatter.
func NewPrettyFormatter() *PrettyFormatter {
	f := &PrettyFormatter{}
	f.Self = f
	return f
}

func (f *PrettyFormatter) BeginArray(w io.Writer) error {
	f.indentLevel++
	return writeBytes(w, []byte("["))
}

func (f *PrettyFormatter) EndArray(w io.Writer) error {
	f.indentLevel--
	if err := writeBytes(w, []byte("\n")); err != nil {
		return err
	}
	if err := writeIndent(w, f.indentLevel); err != nil {
		return err
	}
	return writeBytes(w, []byte("]"))
}

func (f *PrettyFormatter) BeginArrayValue(first bool, w io.Writer) error {
	if !first {
		if err := writeBytes(w, []byte(",")); err != nil {
			return err
		}
	}
	if err := writeBytes(w, []byte("\n")); err != nil {
		return err
	}
	return writeIndent(w, f.indentLevel)
}

func (f *PrettyFormatter) EndArrayValue(w io.Writer) error { return nil }

func (f *PrettyFormatter) BeginObject(w io.Writer) error {
	f.indentLevel++
	return writeBytes(w, []byte("{"))
}

func (f *PrettyFormatter) EndObject(w io.Writer) error {
	f.indentLevel--
	if err := writeBytes(w, []byte("\n")); err != nil {
		return err
	}
	if err := writeIndent(w, f.indentLevel); err != nil {
		return err
	}
	return writeBytes(w, []byte("}"))
}

func (f *PrettyFormatter) BeginObjectKey(first bool, w io.Writer) error {
	if !first {
		if err := writeBytes(w, []byte(",")); err != nil {
			return err
		}
	}
	if err := writeBytes(w, []byte("\n")); err != nil {
		return err
	}
	return writeIndent(w, f.indentLevel)
}

func (f *PrettyFormatter) EndObjectKey(w io.Writer) error { return nil }

func (f *PrettyFormatter) BeginObjectValue(w io.Writer) error {
	return writeBytes(w, []byte(" : "))
}

func (f *PrettyFormatter) EndObjectValue(w io.Writer) error { return nil }
