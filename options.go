package boon

import "github.com/amilto-com/boon/internal/wire"

// KeyTableMode controls the per-message key table optimization.
type KeyTableMode uint8

const (
	// KeyTableAuto collects key usage and enables the table only when the
	// cost model projects a net size win. This is the default.
	KeyTableAuto KeyTableMode = iota
	// KeyTableOff never writes a key table.
	KeyTableOff
	// KeyTableOn writes a key table whenever the message contains at
	// least one key outside the common dictionary.
	KeyTableOn
)

// EncodeOptions configures a single encode call.
//
// Options exist to avoid exploding the API surface; the zero configuration
// produced by defaultEncodeOptions is correct for most callers.
type EncodeOptions struct {
	// IncludeHeader controls whether the magic/version header is written.
	// Headerless output is for embedding a value as a sub-fragment inside
	// another protocol; the decoder must then be configured the same way.
	// The key table lives in the header region, so headerless output
	// never carries one.
	IncludeHeader bool

	// InitialBufferSize is the initial capacity of the output buffer.
	InitialBufferSize int

	// KeyTable selects the per-message key table mode.
	KeyTable KeyTableMode

	// Logger, when set, traces key-table decisions at debug level.
	Logger *Logger
}

func defaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		IncludeHeader:     true,
		InitialBufferSize: wire.DefaultBufferSize,
		KeyTable:          KeyTableAuto,
	}
}

// WithoutHeader disables the magic/version header (and with it the key
// table) for sub-fragment embedding.
func WithoutHeader() func(*EncodeOptions) {
	return func(o *EncodeOptions) {
		o.IncludeHeader = false
	}
}

// WithInitialBufferSize sets the initial output buffer capacity.
func WithInitialBufferSize(n int) func(*EncodeOptions) {
	return func(o *EncodeOptions) {
		o.InitialBufferSize = n
	}
}

// WithKeyTable sets the key table mode.
func WithKeyTable(mode KeyTableMode) func(*EncodeOptions) {
	return func(o *EncodeOptions) {
		o.KeyTable = mode
	}
}

// WithLogger attaches a logger for debug-level tracing.
func WithLogger(l *Logger) func(*EncodeOptions) {
	return func(o *EncodeOptions) {
		o.Logger = l
	}
}

// DecodeOptions configures a single decode call.
type DecodeOptions struct {
	// ExpectHeader controls whether the input must start with the
	// magic/version header. Disable it for sub-fragment input.
	ExpectHeader bool

	// Strict rejects reserved tags and trailing bytes. When false,
	// reserved tags are skipped (their declared payload is discarded and
	// null is substituted) and trailing bytes are ignored.
	Strict bool
}

func defaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		ExpectHeader: true,
		Strict:       true,
	}
}

// AsFragment decodes input without a magic/version header.
func AsFragment() func(*DecodeOptions) {
	return func(o *DecodeOptions) {
		o.ExpectHeader = false
	}
}

// Lenient tolerates reserved tags and trailing bytes for
// forward-compatible decoding.
func Lenient() func(*DecodeOptions) {
	return func(o *DecodeOptions) {
		o.Strict = false
	}
}
