package format

import (
	"github.com/valyala/bytebufferpool"

	"github.com/yashan-technologies/yason-go/yason"
)

// Compact renders a document as single-line JSON text. The render buffer
// is drawn from a shared pool rather than allocated fresh, since callers
// (the CLI and the HTTP query surface) render short-lived text on every
// request.
func Compact(y *yason.Yason) (string, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := NewCompactFormatter().Format(y, buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Pretty renders a document as two-space-indented JSON text.
func Pretty(y *yason.Yason) (string, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := NewPrettyFormatter().Format(y, buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
