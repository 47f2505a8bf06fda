package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// It shares the abstract data model with BOON, so it is the natural
// interop/debugging counterpart: anything Binary encodes, JSON can render
// as text and vice versa. Use it where a human-readable payload matters
// more than size.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }
