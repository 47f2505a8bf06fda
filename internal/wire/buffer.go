package wire

import (
	"encoding/binary"
	"math"
)

// DefaultBufferSize is the initial capacity of a Buffer when the caller does
// not request one. Sized for typical small service payloads.
const DefaultBufferSize = 256

// Buffer is an append-only write cursor over an owned, geometrically growing
// byte slice. It never truncates: every append either fits or grows the
// backing array first.
//
// The zero value is ready to use.
type Buffer struct {
	buf []byte
}

// NewBuffer returns a Buffer with at least size bytes of initial capacity.
func NewBuffer(size int) *Buffer {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Buffer{buf: make([]byte, 0, size)}
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int { return len(b.buf) }

// Bytes returns the written bytes. The slice aliases the internal storage;
// callers must not append to the Buffer afterwards if they keep the slice.
func (b *Buffer) Bytes() []byte { return b.buf }

// EnsureCapacity grows the backing array so that n more bytes can be
// appended without reallocation. Growth doubles the current capacity until
// it covers len+n, keeping total copying amortized O(1) per byte.
func (b *Buffer) EnsureCapacity(n int) {
	need := len(b.buf) + n
	if need <= cap(b.buf) {
		return
	}
	newCap := cap(b.buf) * 2
	if newCap < DefaultBufferSize {
		newCap = DefaultBufferSize
	}
	for newCap < need {
		newCap *= 2
	}
	grown := make([]byte, len(b.buf), newCap)
	copy(grown, b.buf)
	b.buf = grown
}

// AppendUint8 writes a single byte.
func (b *Buffer) AppendUint8(v uint8) {
	b.EnsureCapacity(1)
	b.buf = append(b.buf, v)
}

// AppendUint16 writes v big-endian.
func (b *Buffer) AppendUint16(v uint16) {
	b.EnsureCapacity(2)
	b.buf = binary.BigEndian.AppendUint16(b.buf, v)
}

// AppendUint32 writes v big-endian.
func (b *Buffer) AppendUint32(v uint32) {
	b.EnsureCapacity(4)
	b.buf = binary.BigEndian.AppendUint32(b.buf, v)
}

// AppendUint64 writes v big-endian.
func (b *Buffer) AppendUint64(v uint64) {
	b.EnsureCapacity(8)
	b.buf = binary.BigEndian.AppendUint64(b.buf, v)
}

// AppendFloat32 writes the IEEE-754 bits of v big-endian.
func (b *Buffer) AppendFloat32(v float32) {
	b.AppendUint32(math.Float32bits(v))
}

// AppendFloat64 writes the IEEE-754 bits of v big-endian.
func (b *Buffer) AppendFloat64(v float64) {
	b.AppendUint64(math.Float64bits(v))
}

// AppendBytes writes p verbatim.
func (b *Buffer) AppendBytes(p []byte) {
	b.EnsureCapacity(len(p))
	b.buf = append(b.buf, p...)
}

// AppendString writes the raw bytes of s.
func (b *Buffer) AppendString(s string) {
	b.EnsureCapacity(len(s))
	b.buf = append(b.buf, s...)
}

// AppendUvarint writes v as an LEB128-style unsigned varint.
func (b *Buffer) AppendUvarint(v uint64) {
	b.EnsureCapacity(MaxUvarintLen)
	b.buf = AppendUvarint(b.buf, v)
}

// AppendZigzag writes v zigzag-mapped as an unsigned varint.
func (b *Buffer) AppendZigzag(v int64) {
	b.AppendUvarint(Zigzag(v))
}
