package boon

import (
	"errors"
	"fmt"

	"github.com/amilto-com/boon/internal/wire"
)

// Decode errors. All are fail-fast: the current call aborts with no partial
// result and no silent coercion. Retrying is a caller concern.
var (
	// ErrInvalidHeader indicates a magic mismatch or malformed header region.
	ErrInvalidHeader = errors.New("boon: invalid header")

	// ErrUnsupportedVersion indicates a version byte above what this
	// decoder implements.
	ErrUnsupportedVersion = errors.New("boon: unsupported format version")

	// ErrUnknownTag indicates a tag byte outside the defined and reserved
	// ranges.
	ErrUnknownTag = errors.New("boon: unknown tag")

	// ErrReservedTag indicates a tag byte reserved for future format
	// versions. Distinct from ErrUnknownTag so callers can treat
	// forward-compatible data differently from corruption.
	ErrReservedTag = errors.New("boon: reserved tag")

	// ErrTruncatedData indicates fewer bytes remain than a field declares.
	ErrTruncatedData = errors.New("boon: truncated data")

	// ErrMalformedVarint indicates a varint that overflows 64 bits.
	ErrMalformedVarint = errors.New("boon: malformed varint")

	// ErrInvalidUTF8 indicates string or key bytes that are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("boon: invalid UTF-8")

	// ErrUnexpectedBreak indicates a break marker outside an open
	// indefinite-length container.
	ErrUnexpectedBreak = errors.New("boon: unexpected break marker")

	// ErrInvalidKeyIndex indicates a key reference out of range for the
	// declared key table or common dictionary.
	ErrInvalidKeyIndex = errors.New("boon: invalid key index")

	// ErrUnsupportedType is returned by encoding when normalization meets
	// a Go type with no representation in the JSON data model.
	ErrUnsupportedType = errors.New("boon: unsupported type")

	// ErrTrailingData indicates bytes left over after the top-level value
	// in strict mode.
	ErrTrailingData = errors.New("boon: trailing data after value")
)

// translateWire maps internal cursor errors onto the public taxonomy,
// keeping the offset of the failed read in the message.
func translateWire(err error, offset int) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, wire.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: at offset %d", ErrTruncatedData, offset)
	}
	if errors.Is(err, wire.ErrVarintOverflow) {
		return fmt.Errorf("%w: at offset %d", ErrMalformedVarint, offset)
	}
	return err
}
