package primitives

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Unmarshal decodes CBOR-encoded data into v. Decoding does not care
// whether the source used definite- or indefinite-length arrays, so the
// general-purpose fxamacker/cbor decoder is used for every read path in
// this module (address validation, block parsing, incoming signed-tx
// bytes) — only the write path needs the hand-rolled encoder in cbor.go.
func Unmarshal(data []byte, v interface{}) error {
	return cbor.Unmarshal(data, v)
}

// DecodeTag24 unwraps a CBOR tag-24 ("encoded CBOR data item") value and
// decodes its inner byte string into out.
func DecodeTag24(data []byte, out interface{}) error {
	var t cbor.Tag
	if err := cbor.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("primitives: decode tag: %w", err)
	}
	if t.Number != 24 {
		return fmt.Errorf("primitives: expected cbor tag 24, got %d", t.Number)
	}
	inner, ok := t.Content.([]byte)
	if !ok {
		return fmt.Errorf("primitives: tag 24 content is not a byte string")
	}
	return cbor.Unmarshal(inner, out)
}
