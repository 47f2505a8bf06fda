package boon

import (
	"fmt"
	"unicode/utf8"

	"github.com/amilto-com/boon/internal/wire"
)

// encoder walks a value tree once, writing tagged bytes. All state is owned
// by the current call; concurrent encodes never share anything.
type encoder struct {
	buf   *wire.Buffer
	table *keyTable
}

func encode(v Value, opts EncodeOptions) ([]byte, error) {
	buf := wire.NewBuffer(opts.InitialBufferSize)

	// The key table is carried in the header region, so headerless
	// fragments always fall back to common-dictionary and literal keys.
	var table *keyTable
	if opts.IncludeHeader {
		table = planKeyTable(v, opts.KeyTable, opts.Logger)
		buf.AppendBytes(magic[:])
		if table != nil {
			buf.AppendUint8(tableTag)
			buf.AppendUint8(Version)
			buf.AppendUvarint(uint64(len(table.keys)))
			for _, k := range table.keys {
				buf.AppendUvarint(uint64(len(k)))
				buf.AppendString(k)
			}
		} else {
			buf.AppendUint8(Version)
		}
	}

	e := &encoder{buf: buf, table: table}
	if err := e.writeValue(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *encoder) writeValue(v Value) error {
	switch v.Kind {
	case KindNull:
		e.buf.AppendUint8(tagNull)
	case KindBool:
		if v.B {
			e.buf.AppendUint8(tagTrue)
		} else {
			e.buf.AppendUint8(tagFalse)
		}
	case KindNumber:
		e.writeNumber(v.F64)
	case KindString:
		return e.writeString(v.S)
	case KindArray:
		e.writeCount(tagArrEmpty, len(v.A))
		for _, elem := range v.A {
			if err := e.writeValue(elem); err != nil {
				return err
			}
		}
	case KindObject:
		e.writeCount(tagObjEmpty, len(v.O))
		for _, m := range v.O {
			if err := e.writeKey(m.Key); err != nil {
				return err
			}
			if err := e.writeValue(m.Value); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: kind %s", ErrUnsupportedType, v.Kind)
	}
	return nil
}

// writeNumber picks the narrowest exact representation: the smallest of the
// signed widths, an unsigned width for non-negative values that overflow
// the signed one, or a float. float32 is used only when it round-trips the
// exact value, which also routes NaN to the 64-bit form.
func (e *encoder) writeNumber(f float64) {
	if isSafeInteger(f) {
		i := int64(f)
		switch {
		case i >= -128 && i <= 127:
			e.buf.AppendUint8(tagInt8)
			e.buf.AppendUint8(uint8(i))
		case i >= 128 && i <= 255:
			e.buf.AppendUint8(tagUint8)
			e.buf.AppendUint8(uint8(i))
		case i >= -32768 && i <= 32767:
			e.buf.AppendUint8(tagInt16)
			e.buf.AppendUint16(uint16(i))
		case i >= 32768 && i <= 65535:
			e.buf.AppendUint8(tagUint16)
			e.buf.AppendUint16(uint16(i))
		case i >= -2147483648 && i <= 2147483647:
			e.buf.AppendUint8(tagInt32)
			e.buf.AppendUint32(uint32(i))
		case i >= 2147483648 && i <= 4294967295:
			e.buf.AppendUint8(tagUint32)
			e.buf.AppendUint32(uint32(i))
		default:
			e.buf.AppendUint8(tagInt64)
			e.buf.AppendUint64(uint64(i))
		}
		return
	}
	if float64(float32(f)) == f {
		e.buf.AppendUint8(tagFloat32)
		e.buf.AppendFloat32(float32(f))
		return
	}
	e.buf.AppendUint8(tagFloat64)
	e.buf.AppendFloat64(f)
}

func (e *encoder) writeString(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: string value", ErrInvalidUTF8)
	}
	n := len(s)
	switch {
	case n == 0:
		e.buf.AppendUint8(tagStrEmpty)
		return nil
	case n <= 0xFF:
		e.buf.AppendUint8(tagStr8)
		e.buf.AppendUint8(uint8(n))
	case n <= 0xFFFF:
		e.buf.AppendUint8(tagStr16)
		e.buf.AppendUint16(uint16(n))
	default:
		e.buf.AppendUint8(tagStr32)
		e.buf.AppendUint32(uint32(n))
	}
	e.buf.AppendString(s)
	return nil
}

// writeCount emits the container tag for n entries: the zero-payload empty
// tag, or the 1/2/4-byte count variant (emptyTag+1..+3).
func (e *encoder) writeCount(emptyTag byte, n int) {
	switch {
	case n == 0:
		e.buf.AppendUint8(emptyTag)
	case n <= 0xFF:
		e.buf.AppendUint8(emptyTag + 1)
		e.buf.AppendUint8(uint8(n))
	case n <= 0xFFFF:
		e.buf.AppendUint8(emptyTag + 2)
		e.buf.AppendUint16(uint16(n))
	default:
		e.buf.AppendUint8(emptyTag + 3)
		e.buf.AppendUint32(uint32(n))
	}
}

// writeKey emits an object key in the cheapest available form: a common
// dictionary code, a key-table reference, or a literal.
func (e *encoder) writeKey(key string) error {
	if !utf8.ValidString(key) {
		return fmt.Errorf("%w: object key", ErrInvalidUTF8)
	}
	if idx, ok := commonKeyIndex[key]; ok {
		e.buf.AppendUint8(uint8(keyCommonBase + idx))
		return nil
	}
	if e.table != nil {
		if idx, ok := e.table.index[key]; ok {
			e.buf.AppendUint8(keyRef)
			e.buf.AppendUvarint(uint64(idx))
			return nil
		}
	}
	n := len(key)
	switch {
	case n <= keyLitMaxDirect:
		e.buf.AppendUint8(uint8(n))
	case n <= 0xFFFF:
		e.buf.AppendUint8(keyLen16)
		e.buf.AppendUint16(uint16(n))
	default:
		e.buf.AppendUint8(keyLen32)
		e.buf.AppendUint32(uint32(n))
	}
	e.buf.AppendString(key)
	return nil
}

// AppendIndefiniteArray appends elems to dst as a headerless
// indefinite-length array fragment: an opening tag, the encoded elements,
// and a break marker. Producers that do not know the element count upfront
// can emit members incrementally between their own calls.
func AppendIndefiniteArray(dst []byte, elems ...Value) ([]byte, error) {
	buf := wire.NewBuffer(len(dst) + 16)
	buf.AppendBytes(dst)
	e := &encoder{buf: buf}
	buf.AppendUint8(tagArrIndef)
	for _, elem := range elems {
		if err := e.writeValue(elem); err != nil {
			return nil, err
		}
	}
	buf.AppendUint8(tagBreak)
	return buf.Bytes(), nil
}

// AppendIndefiniteObject appends members to dst as a headerless
// indefinite-length object fragment terminated by a break marker.
func AppendIndefiniteObject(dst []byte, members ...Member) ([]byte, error) {
	buf := wire.NewBuffer(len(dst) + 16)
	buf.AppendBytes(dst)
	e := &encoder{buf: buf}
	buf.AppendUint8(tagObjIndef)
	for _, m := range members {
		if err := e.writeKey(m.Key); err != nil {
			return nil, err
		}
		if err := e.writeValue(m.Value); err != nil {
			return nil, err
		}
	}
	buf.AppendUint8(tagBreak)
	return buf.Bytes(), nil
}
