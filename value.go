package boon

import (
	"fmt"
	"math"
	"sort"
)

// Kind identifies the concrete JSON type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindNull represents a null value.
	KindNull
	// KindBool represents a boolean value.
	KindBool
	// KindNumber represents a numeric value.
	KindNumber
	// KindString represents a string value.
	KindString
	// KindArray represents an array value.
	KindArray
	// KindObject represents an object value.
	KindObject
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is the abstract JSON data model: null, bool, number, string, array
// or object. Integers and floats share the number slot as float64; the
// encoder picks an integer representation only when the value has no
// fractional part and its magnitude is at most 2^53 (the safe-integer
// bound), so integers beyond that bound round-trip with possible precision
// loss.
//
// Objects are ordered member lists: member order is significant and is
// preserved through encode/decode. Keys are unique by construction via Set;
// a wire payload carrying a duplicate key decodes with the later occurrence
// winning.
type Value struct {
	Kind Kind
	B    bool
	F64  float64
	S    string
	A    []Value
	O    []Member
}

// Member is a single key/value entry of an object.
type Member struct {
	Key   string
	Value Value
}

// M constructs an object member.
func M(key string, value Value) Member {
	return Member{Key: key, Value: value}
}

// Null returns the null value.
func Null() Value { return Value{Kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, B: b} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{Kind: KindNumber, F64: f} }

// Int returns a numeric value from an integer.
func Int(i int64) Value { return Value{Kind: KindNumber, F64: float64(i)} }

// String returns a string value.
func String(s string) Value { return Value{Kind: KindString, S: s} }

// Array returns an array value over the given elements.
func Array(elems ...Value) Value {
	return Value{Kind: KindArray, A: elems}
}

// Object returns an object value over the given members. Member order is
// preserved; duplicate keys keep the last value.
func Object(members ...Member) Value {
	v := Value{Kind: KindObject, O: make([]Member, 0, len(members))}
	for _, m := range members {
		v.Set(m.Key, m.Value)
	}
	return v
}

// Get returns the value for key and whether it is present. Valid only for
// objects.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.O {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Set replaces the value for key if present, otherwise appends a new member.
func (v *Value) Set(key string, val Value) {
	for i := range v.O {
		if v.O[i].Key == key {
			v.O[i].Value = val
			return
		}
	}
	v.O = append(v.O, Member{Key: key, Value: val})
}

// Equal reports deep structural equality. Object member order is
// significant; numbers compare with ==, so NaN is never equal to itself.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNull:
		return true
	case KindBool:
		return a.B == b.B
	case KindNumber:
		return a.F64 == b.F64
	case KindString:
		return a.S == b.S
	case KindArray:
		if len(a.A) != len(b.A) {
			return false
		}
		for i := range a.A {
			if !Equal(a.A[i], b.A[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.O) != len(b.O) {
			return false
		}
		for i := range a.O {
			if a.O[i].Key != b.O[i].Key || !Equal(a.O[i].Value, b.O[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// FromAny normalizes a Go value into the abstract model. Supported inputs:
// nil, bool, all integer and float widths, string, []any, map[string]any,
// []Value, []Member and Value itself. Map keys are sorted so encoding a Go
// map is deterministic; construct Values directly when wire order matters.
//
// Unsupported types fail with ErrUnsupportedType. Callers must normalize
// richer types (time, binary blobs, structs) to strings or model values
// before encoding; nothing is dropped silently.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case float64:
		return Number(x), nil
	case float32:
		return Number(float64(x)), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Number(float64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case []Value:
		return Value{Kind: KindArray, A: x}, nil
	case []Member:
		return Object(x...), nil
	case []any:
		arr := make([]Value, len(x))
		for i, e := range x {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			arr[i] = ev
		}
		return Value{Kind: KindArray, A: arr}, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := Value{Kind: KindObject, O: make([]Member, 0, len(x))}
		for _, k := range keys {
			mv, err := FromAny(x[k])
			if err != nil {
				return Value{}, err
			}
			obj.O = append(obj.O, Member{Key: k, Value: mv})
		}
		return obj, nil
	case map[string]Value:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := Value{Kind: KindObject, O: make([]Member, 0, len(x))}
		for _, k := range keys {
			obj.O = append(obj.O, Member{Key: k, Value: x[k]})
		}
		return obj, nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

// Interface converts a Value back to plain Go types: nil, bool, float64,
// string, []any and map[string]any. Object member order is lost in the map
// representation.
func (v Value) Interface() any {
	switch v.Kind {
	case KindBool:
		return v.B
	case KindNumber:
		return v.F64
	case KindString:
		return v.S
	case KindArray:
		arr := make([]any, len(v.A))
		for i, e := range v.A {
			arr[i] = e.Interface()
		}
		return arr
	case KindObject:
		obj := make(map[string]any, len(v.O))
		for _, m := range v.O {
			obj[m.Key] = m.Value.Interface()
		}
		return obj
	default:
		return nil
	}
}

// isSafeInteger reports whether f is integer-representable: finite, no
// fractional part, |f| within the safe-integer bound.
func isSafeInteger(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	if f != math.Trunc(f) {
		return false
	}
	return math.Abs(f) <= 1<<53
}
