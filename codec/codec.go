// Package codec centralizes payload encoding behind a pluggable interface.
//
// The codec boundary is a breaking-change boundary: bytes produced by one
// codec do not decode with another. Wire protocols embedding BOON should
// record the codec name next to their payloads.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
//
// This is for self-describing containers that store the codec name in
// their own header.
func ByName(name string) (Codec, bool) {
	switch name {
	case "boon":
		return Binary{}, true
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// MustMarshal is a helper for internal tests/benchmarks.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
