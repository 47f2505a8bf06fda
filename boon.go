package boon

// Encode serializes a Value into BOON bytes. The value tree is walked
// exactly once after the optional key-collection pre-pass; the output
// buffer is owned by the call and returned to the caller.
//
// Encoding fails only on invalid UTF-8 and on values of KindInvalid;
// callers must normalize unsupported Go types before constructing Values.
func Encode(v Value, optFns ...func(*EncodeOptions)) ([]byte, error) {
	opts := defaultEncodeOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return encode(v, opts)
}

// Decode materializes the value tree of an encoded message. The input
// slice is borrowed for the duration of the call and never mutated.
func Decode(data []byte, optFns ...func(*DecodeOptions)) (Value, error) {
	opts := defaultDecodeOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return decode(data, opts)
}

// Marshal normalizes a Go value via FromAny and encodes it.
func Marshal(v any, optFns ...func(*EncodeOptions)) ([]byte, error) {
	val, err := FromAny(v)
	if err != nil {
		return nil, err
	}
	return Encode(val, optFns...)
}

// Unmarshal decodes a message into plain Go types (nil, bool, float64,
// string, []any, map[string]any).
func Unmarshal(data []byte, optFns ...func(*DecodeOptions)) (any, error) {
	v, err := Decode(data, optFns...)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}
