package boon

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAnyScalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"nil", nil, Null()},
		{"bool", true, Bool(true)},
		{"string", "hi", String("hi")},
		{"int", 42, Int(42)},
		{"int64", int64(-7), Int(-7)},
		{"uint8", uint8(200), Int(200)},
		{"uint64", uint64(12), Number(12)},
		{"float32", float32(1.5), Number(1.5)},
		{"float64", 0.25, Number(0.25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromAny(tt.in)
			require.NoError(t, err)
			assert.True(t, Equal(tt.want, got))
		})
	}
}

func TestFromAnyContainers(t *testing.T) {
	got, err := FromAny(map[string]any{
		"b": []any{1, "x", nil},
		"a": map[string]any{"inner": true},
	})
	require.NoError(t, err)

	// Map keys are sorted for deterministic encoding.
	require.Equal(t, KindObject, got.Kind)
	require.Len(t, got.O, 2)
	assert.Equal(t, "a", got.O[0].Key)
	assert.Equal(t, "b", got.O[1].Key)

	want := Object(
		M("a", Object(M("inner", Bool(true)))),
		M("b", Array(Int(1), String("x"), Null())),
	)
	assert.True(t, Equal(want, got))
}

func TestFromAnyUnsupported(t *testing.T) {
	_, err := FromAny(struct{ X int }{1})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = FromAny([]any{make(chan int)})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestInterfaceRoundTrip(t *testing.T) {
	v := Object(
		M("name", String("ada")),
		M("score", Number(4.5)),
		M("tags", Array(String("x"), Bool(false))),
		M("none", Null()),
	)

	plain := v.Interface()
	back, err := FromAny(plain)
	require.NoError(t, err)

	// Member order may change through the map, so compare per key.
	for _, m := range v.O {
		got, ok := back.Get(m.Key)
		require.True(t, ok, "key %q", m.Key)
		assert.True(t, Equal(m.Value, got))
	}
	assert.Len(t, back.O, len(v.O))
}

func TestObjectSetReplaces(t *testing.T) {
	v := Object(M("id", Int(1)))
	v.Set("id", Int(2))
	v.Set("other", Int(3))

	require.Len(t, v.O, 2)
	got, _ := v.Get("id")
	assert.True(t, Equal(Int(2), got))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Array(Int(1)), Array(Int(1))))
	assert.False(t, Equal(Array(Int(1)), Array(Int(2))))
	assert.False(t, Equal(Int(1), String("1")))
	assert.False(t, Equal(
		Object(M("a", Int(1)), M("b", Int(2))),
		Object(M("b", Int(2)), M("a", Int(1))),
	), "member order is significant")
	assert.False(t, Equal(Number(math.NaN()), Number(math.NaN())))
}

func TestIsSafeInteger(t *testing.T) {
	assert.True(t, isSafeInteger(0))
	assert.True(t, isSafeInteger(-3))
	assert.True(t, isSafeInteger(1<<53))
	assert.False(t, isSafeInteger(1<<53+2))
	assert.False(t, isSafeInteger(0.5))
	assert.False(t, isSafeInteger(math.NaN()))
	assert.False(t, isSafeInteger(math.Inf(1)))
}
