// Package wire implements the low-level byte cursors and integer codecs the
// BOON format is built on: an append-only growable write buffer, a
// bounds-checked read cursor over borrowed bytes, and the uvarint/zigzag
// codec.
//
// All multi-byte scalars are big-endian. The package reports short input
// with ErrUnexpectedEOF at the point of the missing read; callers translate
// that into the public error taxonomy.
package wire
