package boon

import (
	"fmt"
	"io"
	"iter"
)

// EventKind identifies a structural event of the streaming decoder.
type EventKind uint8

const (
	// EventHeader reports the validated format version.
	EventHeader EventKind = iota + 1
	// EventStartObject opens an object; Len is the member count.
	EventStartObject
	// EventKey carries a resolved object key; it immediately precedes the
	// events of its value.
	EventKey
	// EventStartArray opens an array; Len is the element count.
	EventStartArray
	// EventPrimitive carries a null, bool, number or string value.
	EventPrimitive
	// EventEndObject closes the innermost open object.
	EventEndObject
	// EventEndArray closes the innermost open array.
	EventEndArray
)

// IndefiniteLen is the Len reported by Start events for indefinite-length
// containers, whose member count is unknown until the break marker.
const IndefiniteLen = -1

// Event is one structural step of a message. Only the fields relevant to
// Kind are set.
type Event struct {
	Kind    EventKind
	Version uint8  // EventHeader
	Len     int    // EventStartObject / EventStartArray
	Key     string // EventKey
	Value   Value  // EventPrimitive
}

// Events returns a lazy event sequence over an encoded message. Events for
// a container's children are emitted depth-first between its start and end
// events, in encoded order, and every key event immediately precedes its
// value's events.
//
// The key table, when present, is consumed with the header before the first
// structural event, so consumers never observe an unresolved key index.
// Consuming the sequence to completion visits exactly the tree Decode
// materializes; stopping early is always safe and releases nothing.
//
// On a malformed message the sequence yields one non-nil error and stops.
func Events(data []byte, optFns ...func(*DecodeOptions)) iter.Seq2[Event, error] {
	opts := defaultDecodeOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return func(yield func(Event, error) bool) {
		d := newDecoder(data, opts)
		if opts.ExpectHeader {
			version, err := d.readHeader()
			if err != nil {
				yield(Event{}, translateWire(err, d.r.Offset()))
				return
			}
			if !yield(Event{Kind: EventHeader, Version: version}, nil) {
				return
			}
		}
		if !d.emitValue(yield) {
			return
		}
		if opts.Strict && d.r.Remaining() > 0 {
			yield(Event{}, fmt.Errorf("%w: %d bytes", ErrTrailingData, d.r.Remaining()))
		}
	}
}

// EventsFromReader decodes a message arriving as a stream of chunks.
//
// The entire input is buffered before decoding begins: this wrapper is a
// convenience for chunked transports, not an incremental decoder, and
// offers no backpressure. Callers feeding it untrusted input should bound
// the reader (io.LimitReader) themselves.
func EventsFromReader(r io.Reader, optFns ...func(*DecodeOptions)) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		data, err := io.ReadAll(r)
		if err != nil {
			yield(Event{}, fmt.Errorf("boon: reading input: %w", err))
			return
		}
		for ev, err := range Events(data, optFns...) {
			if !yield(ev, err) {
				return
			}
		}
	}
}

func (d *decoder) fail(yield func(Event, error) bool, err error) bool {
	yield(Event{}, translateWire(err, d.r.Offset()))
	return false
}

// emitValue yields the events of one value. It reports whether the
// consumer wants more.
func (d *decoder) emitValue(yield func(Event, error) bool) bool {
	tag, err := d.r.ReadUint8()
	if err != nil {
		return d.fail(yield, err)
	}
	switch tag {
	case tagArrEmpty, tagArr8, tagArr16, tagArr32:
		n := 0
		if tag != tagArrEmpty {
			c, err := d.r.ReadUintBE(lengthWidth(tag - tagArrEmpty))
			if err != nil {
				return d.fail(yield, err)
			}
			n = int(c)
		}
		if !yield(Event{Kind: EventStartArray, Len: n}, nil) {
			return false
		}
		for range n {
			if !d.emitValue(yield) {
				return false
			}
		}
		return yield(Event{Kind: EventEndArray}, nil)

	case tagArrIndef:
		if !yield(Event{Kind: EventStartArray, Len: IndefiniteLen}, nil) {
			return false
		}
		for {
			b, err := d.r.PeekUint8()
			if err != nil {
				return d.fail(yield, err)
			}
			if b == tagBreak {
				_, _ = d.r.ReadUint8()
				return yield(Event{Kind: EventEndArray}, nil)
			}
			if !d.emitValue(yield) {
				return false
			}
		}

	case tagObjEmpty, tagObj8, tagObj16, tagObj32:
		n := 0
		if tag != tagObjEmpty {
			c, err := d.r.ReadUintBE(lengthWidth(tag - tagObjEmpty))
			if err != nil {
				return d.fail(yield, err)
			}
			n = int(c)
		}
		if !yield(Event{Kind: EventStartObject, Len: n}, nil) {
			return false
		}
		for range n {
			if !d.emitMember(yield) {
				return false
			}
		}
		return yield(Event{Kind: EventEndObject}, nil)

	case tagObjIndef:
		if !yield(Event{Kind: EventStartObject, Len: IndefiniteLen}, nil) {
			return false
		}
		for {
			b, err := d.r.PeekUint8()
			if err != nil {
				return d.fail(yield, err)
			}
			if b == tagBreak {
				_, _ = d.r.ReadUint8()
				return yield(Event{Kind: EventEndObject}, nil)
			}
			if !d.emitMember(yield) {
				return false
			}
		}

	default:
		v, err := d.readScalar(tag)
		if err != nil {
			return d.fail(yield, err)
		}
		return yield(Event{Kind: EventPrimitive, Value: v}, nil)
	}
}

func (d *decoder) emitMember(yield func(Event, error) bool) bool {
	key, err := d.readKey()
	if err != nil {
		return d.fail(yield, err)
	}
	if !yield(Event{Kind: EventKey, Key: key}, nil) {
		return false
	}
	return d.emitValue(yield)
}
