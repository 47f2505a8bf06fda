package boon

import (
	"fmt"
	"unicode/utf8"

	"github.com/amilto-com/boon/internal/wire"
)

// decoder is the shared tag-dispatch state for the eager and streaming
// decode paths. All state is owned by the current call.
type decoder struct {
	r     *wire.Reader
	opts  DecodeOptions
	table []string // per-message key table, nil when absent
}

func newDecoder(data []byte, opts DecodeOptions) *decoder {
	return &decoder{r: wire.NewReader(data), opts: opts}
}

func decode(data []byte, opts DecodeOptions) (Value, error) {
	d := newDecoder(data, opts)
	if opts.ExpectHeader {
		if _, err := d.readHeader(); err != nil {
			return Value{}, translateWire(err, d.r.Offset())
		}
	}
	v, err := d.readValue()
	if err != nil {
		return Value{}, translateWire(err, d.r.Offset())
	}
	if opts.Strict && d.r.Remaining() > 0 {
		return Value{}, fmt.Errorf("%w: %d bytes", ErrTrailingData, d.r.Remaining())
	}
	return v, nil
}

// readHeader validates the magic marker and version and, for the key-table
// variant, consumes the table so later key references resolve immediately.
// It returns the format version.
func (d *decoder) readHeader() (uint8, error) {
	m, err := d.r.ReadBytes(magicLen)
	if err != nil {
		return 0, fmt.Errorf("%w: missing magic", ErrInvalidHeader)
	}
	if [magicLen]byte(m) != magic {
		return 0, fmt.Errorf("%w: bad magic % x", ErrInvalidHeader, m)
	}

	b, err := d.r.ReadUint8()
	if err != nil {
		return 0, fmt.Errorf("%w: missing version", ErrInvalidHeader)
	}

	version := b
	if b == tableTag {
		version, err = d.r.ReadUint8()
		if err != nil {
			return 0, fmt.Errorf("%w: missing version", ErrInvalidHeader)
		}
	}
	if version == 0 || version > Version {
		return 0, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, version)
	}

	if b == tableTag {
		if err := d.readKeyTable(); err != nil {
			return 0, err
		}
	}
	return version, nil
}

func (d *decoder) readKeyTable() error {
	count, err := d.r.ReadUvarint()
	if err != nil {
		return err
	}
	if count > uint64(d.r.Remaining()) {
		// Each entry needs at least one length byte; a larger count can
		// only come from corrupt input, so fail before allocating.
		return fmt.Errorf("%w: key table count %d", ErrTruncatedData, count)
	}
	table := make([]string, 0, count)
	for range count {
		n, err := d.r.ReadUvarint()
		if err != nil {
			return err
		}
		p, err := d.r.ReadBytes(int(n))
		if err != nil {
			return err
		}
		if !utf8.Valid(p) {
			return fmt.Errorf("%w: key table entry %d", ErrInvalidUTF8, len(table))
		}
		table = append(table, string(p))
	}
	d.table = table
	return nil
}

// readValue decodes one tagged value, recursing into containers.
func (d *decoder) readValue() (Value, error) {
	tag, err := d.r.ReadUint8()
	if err != nil {
		return Value{}, err
	}
	switch tag {
	case tagArrEmpty:
		return Value{Kind: KindArray, A: []Value{}}, nil
	case tagArr8, tagArr16, tagArr32:
		n, err := d.r.ReadUintBE(lengthWidth(tag - tagArrEmpty))
		if err != nil {
			return Value{}, err
		}
		return d.readArrayBody(int(n))
	case tagArrIndef:
		return d.readIndefArray()

	case tagObjEmpty:
		return Value{Kind: KindObject, O: []Member{}}, nil
	case tagObj8, tagObj16, tagObj32:
		n, err := d.r.ReadUintBE(lengthWidth(tag - tagObjEmpty))
		if err != nil {
			return Value{}, err
		}
		return d.readObjectBody(int(n))
	case tagObjIndef:
		return d.readIndefObject()

	default:
		return d.readScalar(tag)
	}
}

// readScalar decodes the payload of a non-container tag. Shared by the
// eager and streaming paths; also the single place that rejects break
// markers, reserved tags and unknown tags.
func (d *decoder) readScalar(tag byte) (Value, error) {
	switch tag {
	case tagNull:
		return Null(), nil
	case tagFalse:
		return Bool(false), nil
	case tagTrue:
		return Bool(true), nil

	case tagInt8:
		v, err := d.r.ReadInt8()
		return Int(int64(v)), err
	case tagInt16:
		v, err := d.r.ReadInt16()
		return Int(int64(v)), err
	case tagInt32:
		v, err := d.r.ReadInt32()
		return Int(int64(v)), err
	case tagInt64:
		// Magnitudes beyond 2^53 narrow into float64 and may lose
		// precision; see the Value documentation.
		v, err := d.r.ReadInt64()
		return Number(float64(v)), err
	case tagUint8:
		v, err := d.r.ReadUint8()
		return Int(int64(v)), err
	case tagUint16:
		v, err := d.r.ReadUint16()
		return Int(int64(v)), err
	case tagUint32:
		v, err := d.r.ReadUint32()
		return Int(int64(v)), err

	case tagFloat32:
		v, err := d.r.ReadFloat32()
		return Number(float64(v)), err
	case tagFloat64:
		v, err := d.r.ReadFloat64()
		return Number(v), err

	case tagStrEmpty:
		return String(""), nil
	case tagStr8, tagStr16, tagStr32:
		s, err := d.readStringPayload(lengthWidth(tag - tagStrEmpty))
		return String(s), err

	case tagBreak:
		return Value{}, fmt.Errorf("%w: at offset %d", ErrUnexpectedBreak, d.r.Offset()-1)

	default:
		if isReservedTag(tag) {
			return d.readReserved(tag)
		}
		return Value{}, fmt.Errorf("%w: 0x%02x at offset %d", ErrUnknownTag, tag, d.r.Offset()-1)
	}
}

// lengthWidth maps a tag's variant offset (1..3) to its length field width.
func lengthWidth(variant byte) int {
	switch variant {
	case 1:
		return 1
	case 2:
		return 2
	default:
		return 4
	}
}

func (d *decoder) readStringPayload(width int) (string, error) {
	n, err := d.r.ReadUintBE(width)
	if err != nil {
		return "", err
	}
	p, err := d.r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(p) {
		return "", fmt.Errorf("%w: string at offset %d", ErrInvalidUTF8, d.r.Offset()-len(p))
	}
	return string(p), nil
}

func (d *decoder) readArrayBody(n int) (Value, error) {
	elems := make([]Value, 0, min(n, d.r.Remaining()))
	for range n {
		elem, err := d.readValue()
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, elem)
	}
	return Value{Kind: KindArray, A: elems}, nil
}

func (d *decoder) readObjectBody(n int) (Value, error) {
	obj := Value{Kind: KindObject, O: make([]Member, 0, min(n, d.r.Remaining()))}
	for range n {
		key, err := d.readKey()
		if err != nil {
			return Value{}, err
		}
		val, err := d.readValue()
		if err != nil {
			return Value{}, err
		}
		// Later occurrence of a duplicate key wins.
		obj.Set(key, val)
	}
	return obj, nil
}

func (d *decoder) readIndefArray() (Value, error) {
	arr := Value{Kind: KindArray, A: []Value{}}
	for {
		b, err := d.r.PeekUint8()
		if err != nil {
			return Value{}, err
		}
		if b == tagBreak {
			_, _ = d.r.ReadUint8()
			return arr, nil
		}
		elem, err := d.readValue()
		if err != nil {
			return Value{}, err
		}
		arr.A = append(arr.A, elem)
	}
}

func (d *decoder) readIndefObject() (Value, error) {
	obj := Value{Kind: KindObject, O: []Member{}}
	for {
		b, err := d.r.PeekUint8()
		if err != nil {
			return Value{}, err
		}
		if b == tagBreak {
			_, _ = d.r.ReadUint8()
			return obj, nil
		}
		key, err := d.readKey()
		if err != nil {
			return Value{}, err
		}
		val, err := d.readValue()
		if err != nil {
			return Value{}, err
		}
		obj.Set(key, val)
	}
}

// readReserved handles the 0x60..0x7F band: rejected under strict decoding,
// skipped (uvarint length + payload) with a null substitute otherwise.
func (d *decoder) readReserved(tag byte) (Value, error) {
	if d.opts.Strict {
		return Value{}, fmt.Errorf("%w: 0x%02x at offset %d", ErrReservedTag, tag, d.r.Offset()-1)
	}
	n, err := d.r.ReadUvarint()
	if err != nil {
		return Value{}, err
	}
	if err := d.r.Skip(int(n)); err != nil {
		return Value{}, err
	}
	return Null(), nil
}

// readKey decodes one object key in any of its three forms: common
// dictionary code, key-table reference, or literal.
func (d *decoder) readKey() (string, error) {
	b, err := d.r.ReadUint8()
	if err != nil {
		return "", err
	}
	switch {
	case b >= keyCommonBase:
		idx := int(b) - keyCommonBase
		if idx >= len(commonKeys) {
			return "", fmt.Errorf("%w: common code %d", ErrInvalidKeyIndex, idx)
		}
		return commonKeys[idx], nil
	case b == keyRef:
		idx, err := d.r.ReadUvarint()
		if err != nil {
			return "", err
		}
		if idx >= uint64(len(d.table)) {
			return "", fmt.Errorf("%w: %d of %d", ErrInvalidKeyIndex, idx, len(d.table))
		}
		return d.table[idx], nil
	case b == keyLen16, b == keyLen32:
		width := 2
		if b == keyLen32 {
			width = 4
		}
		n, err := d.r.ReadUintBE(width)
		if err != nil {
			return "", err
		}
		return d.readKeyBytes(int(n))
	default:
		return d.readKeyBytes(int(b))
	}
}

func (d *decoder) readKeyBytes(n int) (string, error) {
	p, err := d.r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(p) {
		return "", fmt.Errorf("%w: object key at offset %d", ErrInvalidUTF8, d.r.Offset()-n)
	}
	return string(p), nil
}
