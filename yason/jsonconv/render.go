package jsonconv

import (
	"github.com/yashan-technologies/yason-go/yason"
	"github.com/yashan-technologies/yason-go/yason/format"
)

// ToJSON renders a document as single-line JSON text, completing the
// round trip with Parse.
func ToJSON(y *yason.Yason) (string, error) {
	return format.Compact(y)
}

// ToJSONPretty renders a document as two-space-indented JSON text.
func ToJSONPretty(y *yason.Yason) (string, error) {
	return format.Pretty(y)
}
