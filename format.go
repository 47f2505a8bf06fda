package boon

// Wire format constants. The byte layout is a breaking-change boundary:
// any change to tags, bands or the common-key dictionary requires a new
// format version.

const (
	// Version is the current wire format version.
	Version uint8 = 1

	// magicLen is the size of the leading magic marker.
	magicLen = 4

	// tableTag is the header discriminator selecting the key-table
	// variant: [magic][tableTag][version][keyCount]{len,bytes}*.
	tableTag byte = 0xF0
)

// magic identifies BOON messages ("BOON").
var magic = [magicLen]byte{0x42, 0x4F, 0x4F, 0x4E}

// Value tags. Each tag maps to exactly one decode rule; bytes outside the
// defined and reserved ranges are invalid.
const (
	tagNull  byte = 0x00
	tagFalse byte = 0x01
	tagTrue  byte = 0x02

	tagInt8   byte = 0x10 // 1-byte two's complement
	tagInt16  byte = 0x11 // 2-byte big-endian
	tagInt32  byte = 0x12 // 4-byte big-endian
	tagInt64  byte = 0x13 // 8-byte big-endian
	tagUint8  byte = 0x14
	tagUint16 byte = 0x15
	tagUint32 byte = 0x16

	tagFloat32 byte = 0x18 // IEEE-754 bits, big-endian
	tagFloat64 byte = 0x19

	tagStrEmpty byte = 0x20
	tagStr8     byte = 0x21 // 1-byte length + UTF-8 bytes
	tagStr16    byte = 0x22 // 2-byte length
	tagStr32    byte = 0x23 // 4-byte length

	tagArrEmpty byte = 0x30
	tagArr8     byte = 0x31 // 1-byte count + elements
	tagArr16    byte = 0x32
	tagArr32    byte = 0x33

	tagObjEmpty byte = 0x40
	tagObj8     byte = 0x41 // 1-byte count + key/value pairs
	tagObj16    byte = 0x42
	tagObj32    byte = 0x43

	tagArrIndef byte = 0x50 // elements until break
	tagObjIndef byte = 0x51 // key/value pairs until break
	tagBreak    byte = 0x5F

	// 0x60..0x7F are reserved for future versions. A reserved tag carries
	// a uvarint byte length followed by that many payload bytes, so
	// lenient decoders can skip data they do not understand.
	tagReservedLo byte = 0x60
	tagReservedHi byte = 0x7F
)

// Key bands. Object keys carry no value tag; their first byte selects the
// representation. Common-key codes occupy the high band so they cannot
// collide with literal length prefixes.
const (
	// keyLitMaxDirect is the largest literal key length encoded directly
	// in the first byte.
	keyLitMaxDirect = 0x7C

	keyLen16 byte = 0x7D // 2-byte big-endian length follows
	keyLen32 byte = 0x7E // 4-byte big-endian length follows
	keyRef   byte = 0x7F // uvarint index into the per-message key table

	// keyCommonBase offsets common-dictionary codes: code = base + index.
	keyCommonBase = 0x80
)

func isReservedTag(t byte) bool {
	return t >= tagReservedLo && t <= tagReservedHi
}
