package wire

import (
	"encoding/binary"
	"errors"
	"math"
)

var (
	// ErrUnexpectedEOF is returned when a read requires more bytes than
	// remain in the input.
	ErrUnexpectedEOF = errors.New("wire: unexpected end of data")

	// ErrVarintOverflow is returned when a varint does not fit in 64 bits
	// or runs past its maximum length.
	ErrVarintOverflow = errors.New("wire: varint overflows 64 bits")
)

// Reader is a bounds-checked read cursor over a borrowed byte slice. It
// never copies payload bytes; ReadBytes returns subslices of the input.
type Reader struct {
	data []byte
	off  int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.off }

// ReadUint8 consumes one byte.
func (r *Reader) ReadUint8() (uint8, error) {
	if r.Remaining() < 1 {
		return 0, ErrUnexpectedEOF
	}
	v := r.data[r.off]
	r.off++
	return v, nil
}

// PeekUint8 returns the next byte without consuming it.
func (r *Reader) PeekUint8() (uint8, error) {
	if r.Remaining() < 1 {
		return 0, ErrUnexpectedEOF
	}
	return r.data[r.off], nil
}

// ReadInt8 consumes one byte as a signed integer.
func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

// ReadUint16 consumes two bytes big-endian.
func (r *Reader) ReadUint16() (uint16, error) {
	if r.Remaining() < 2 {
		return 0, ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v, nil
}

// ReadInt16 consumes two bytes big-endian as a signed integer.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadUint32 consumes four bytes big-endian.
func (r *Reader) ReadUint32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v, nil
}

// ReadInt32 consumes four bytes big-endian as a signed integer.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadUint64 consumes eight bytes big-endian.
func (r *Reader) ReadUint64() (uint64, error) {
	if r.Remaining() < 8 {
		return 0, ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint64(r.data[r.off:])
	r.off += 8
	return v, nil
}

// ReadInt64 consumes eight bytes big-endian as a two's-complement integer.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadFloat32 consumes four bytes big-endian as IEEE-754 bits.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFloat64 consumes eight bytes big-endian as IEEE-754 bits.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadUintBE consumes width bytes (1, 2, 4 or 8) as a big-endian unsigned
// integer. Used for tag-selected length fields.
func (r *Reader) ReadUintBE(width int) (uint64, error) {
	switch width {
	case 1:
		v, err := r.ReadUint8()
		return uint64(v), err
	case 2:
		v, err := r.ReadUint16()
		return uint64(v), err
	case 4:
		v, err := r.ReadUint32()
		return uint64(v), err
	case 8:
		return r.ReadUint64()
	default:
		panic("wire: invalid integer width")
	}
}

// ReadBytes consumes n raw bytes. The returned slice aliases the input.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, ErrUnexpectedEOF
	}
	p := r.data[r.off : r.off+n]
	r.off += n
	return p, nil
}

// Skip consumes and discards n bytes.
func (r *Reader) Skip(n int) error {
	if n < 0 || r.Remaining() < n {
		return ErrUnexpectedEOF
	}
	r.off += n
	return nil
}

// ReadUvarint consumes an unsigned varint. Accumulation is done in uint64
// so magnitudes beyond 32 bits decode without wrapping; inputs longer than
// MaxUvarintLen bytes or with payload in the final byte beyond bit 63 fail
// with ErrVarintOverflow.
func (r *Reader) ReadUvarint() (uint64, error) {
	var v uint64
	var shift uint
	for i := 0; i < MaxUvarintLen; i++ {
		b, err := r.ReadUint8()
		if err != nil {
			return 0, err
		}
		if b < 0x80 {
			if i == MaxUvarintLen-1 && b > 1 {
				return 0, ErrVarintOverflow
			}
			return v | uint64(b)<<shift, nil
		}
		v |= uint64(b&0x7F) << shift
		shift += 7
	}
	return 0, ErrVarintOverflow
}

// ReadZigzag consumes an unsigned varint and unmaps it to a signed integer.
func (r *Reader) ReadZigzag() (int64, error) {
	v, err := r.ReadUvarint()
	return Unzigzag(v), err
}
