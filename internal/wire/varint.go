package wire

import "math/bits"

// MaxUvarintLen is the maximum encoded size of a 64-bit unsigned varint.
const MaxUvarintLen = 10

// AppendUvarint appends v to dst as an LEB128-style varint: 7 data bits per
// byte, high bit set on every byte except the last.
func AppendUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// UvarintLen returns the encoded size of v in bytes.
func UvarintLen(v uint64) int {
	if v == 0 {
		return 1
	}
	return (bits.Len64(v) + 6) / 7
}

// Zigzag maps a signed integer onto an unsigned one so that small
// magnitudes of either sign stay small: 0→0, -1→1, 1→2, -2→3, ...
func Zigzag(n int64) uint64 {
	return uint64(n<<1) ^ uint64(n>>63)
}

// Unzigzag inverts Zigzag.
func Unzigzag(z uint64) int64 {
	return int64(z>>1) ^ -int64(z&1)
}
