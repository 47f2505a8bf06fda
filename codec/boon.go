package codec

import (
	"errors"
	"fmt"

	gojson "github.com/goccy/go-json"

	"github.com/amilto-com/boon"
)

// Binary is the BOON wire codec and the package default.
//
// Values already in the abstract model (boon.Value, maps, slices, scalars)
// encode directly. Arbitrary structs are bridged through JSON into the
// model first, so anything json.Marshal accepts round-trips here too,
// subject to the JSON data model (numbers become float64).
type Binary struct{}

// Marshal encodes the value to BOON bytes.
func (Binary) Marshal(v any) ([]byte, error) {
	data, err := boon.Marshal(v)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, boon.ErrUnsupportedType) {
		return nil, err
	}
	bridged, err := bridgeToModel(v)
	if err != nil {
		return nil, err
	}
	return boon.Marshal(bridged)
}

// Unmarshal decodes BOON bytes into v.
func (Binary) Unmarshal(data []byte, v any) error {
	plain, err := boon.Unmarshal(data)
	if err != nil {
		return err
	}
	if dst, ok := v.(*any); ok {
		*dst = plain
		return nil
	}
	// Bridge through JSON to fill typed destinations.
	text, err := gojson.Marshal(plain)
	if err != nil {
		return fmt.Errorf("codec: bridging decoded value: %w", err)
	}
	return gojson.Unmarshal(text, v)
}

// Name returns the unique name of the codec ("boon").
func (Binary) Name() string { return "boon" }

// bridgeToModel converts a Go value outside the abstract model into plain
// maps/slices/scalars via its JSON form.
func bridgeToModel(v any) (any, error) {
	text, err := gojson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: normalizing %T: %w", v, err)
	}
	var plain any
	if err := gojson.Unmarshal(text, &plain); err != nil {
		return nil, fmt.Errorf("codec: normalizing %T: %w", v, err)
	}
	return plain, nil
}

// Default is the default codec used by the library.
var Default Codec = Binary{}
