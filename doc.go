// Package boon implements BOON, a compact type-tagged binary encoding of
// the JSON data model.
//
// # Wire format
//
// A message is a header followed by one tagged value:
//
//	[magic "BOON"][version:1]                               plain
//	[magic "BOON"][0xF0][version:1][count]{len,key}*        with key table
//
// Every value starts with a tag byte selecting its kind and, for
// variable-size kinds, the width of its length field. The encoder always
// picks the narrowest exact representation: the smallest integer width
// that holds the value, float32 only when it round-trips the exact float64,
// zero-payload tags for empty strings and containers. Multi-byte scalars
// are big-endian.
//
// Object keys carry no tag; their first byte selects one of three forms:
// a single-byte code into the static 128-entry common-key dictionary, a
// reference into the per-message key table, or a length-prefixed literal.
// The per-message table is built by a pre-encode traversal and written only
// when a deterministic cost model projects a net size win.
//
// # Usage
//
//	data, err := boon.Marshal(map[string]any{"id": 7, "name": "ada"})
//	v, err := boon.Decode(data)
//
// Large messages can be consumed lazily as structural events without
// materializing the tree:
//
//	for ev, err := range boon.Events(data) {
//	    ...
//	}
//
// # Concurrency
//
// The codec is synchronous and allocation-scoped: every call owns its
// buffer, reader and scratch state, so concurrent Encode/Decode calls are
// safe as long as callers do not mutate a shared input slice mid-call.
// Declared lengths in untrusted input are bounded only by the input size;
// cap message sizes at the transport if that matters.
package boon
