package boon

import (
	"bytes"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collapseEvents rebuilds a value tree from a flattened event sequence.
func collapseEvents(t *testing.T, seq iter.Seq2[Event, error]) (Value, bool) {
	t.Helper()

	type frame struct {
		val Value
		key string
		has bool
	}
	var stack []*frame
	var root Value
	sawHeader := false
	done := false

	attach := func(v Value) {
		if len(stack) == 0 {
			root = v
			done = true
			return
		}
		top := stack[len(stack)-1]
		switch top.val.Kind {
		case KindArray:
			top.val.A = append(top.val.A, v)
		case KindObject:
			require.True(t, top.has, "value event without preceding key")
			top.val.Set(top.key, v)
			top.has = false
		}
	}

	for ev, err := range seq {
		require.NoError(t, err)
		switch ev.Kind {
		case EventHeader:
			assert.Equal(t, Version, ev.Version)
			sawHeader = true
		case EventStartArray:
			stack = append(stack, &frame{val: Value{Kind: KindArray, A: []Value{}}})
		case EventStartObject:
			stack = append(stack, &frame{val: Value{Kind: KindObject, O: []Member{}}})
		case EventKey:
			top := stack[len(stack)-1]
			require.Equal(t, KindObject, top.val.Kind)
			require.False(t, top.has)
			top.key, top.has = ev.Key, true
		case EventEndArray, EventEndObject:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			attach(top.val)
		case EventPrimitive:
			attach(ev.Value)
		}
	}
	require.True(t, done, "event stream ended mid-tree")
	require.Empty(t, stack)
	return root, sawHeader
}

func TestStreamingEquivalence(t *testing.T) {
	tests := []struct {
		name string
		val  Value
	}{
		{"primitive", Int(42)},
		{"empty object", Object()},
		{"flat object", Object(M("id", Int(1)), M("name", String("a")))},
		{"nested", Object(
			M("items", Array(Int(1), Int(2), Array(String("deep")))),
			M("meta", Object(M("score", Number(0.5)), M("ok", Bool(true)))),
		)},
		{"batch with key table", batchRecords(50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.val)
			require.NoError(t, err)

			eager, err := Decode(data)
			require.NoError(t, err)

			streamed, sawHeader := collapseEvents(t, Events(data))
			assert.True(t, sawHeader)
			assert.True(t, Equal(eager, streamed),
				"streamed tree must match the eager decoder")
			assert.True(t, Equal(tt.val, streamed))
		})
	}
}

func TestStreamingEventOrder(t *testing.T) {
	v := Object(M("id", Int(7)), M("tags", Array(String("x"))))
	data, err := Encode(v)
	require.NoError(t, err)

	var kinds []EventKind
	var keys []string
	for ev, err := range Events(data) {
		require.NoError(t, err)
		kinds = append(kinds, ev.Kind)
		if ev.Kind == EventKey {
			keys = append(keys, ev.Key)
		}
	}

	want := []EventKind{
		EventHeader,
		EventStartObject,
		EventKey, EventPrimitive,
		EventKey, EventStartArray, EventPrimitive, EventEndArray,
		EventEndObject,
	}
	assert.Equal(t, want, kinds)
	assert.Equal(t, []string{"id", "tags"}, keys)
}

func TestStreamingDeclaredCounts(t *testing.T) {
	data, err := Encode(Object(M("tags", Array(Int(1), Int(2), Int(3)))))
	require.NoError(t, err)

	for ev, err := range Events(data) {
		require.NoError(t, err)
		switch ev.Kind {
		case EventStartObject:
			assert.Equal(t, 1, ev.Len)
		case EventStartArray:
			assert.Equal(t, 3, ev.Len)
		}
	}
}

func TestStreamingIndefiniteContainer(t *testing.T) {
	frag, err := AppendIndefiniteArray(nil, Int(1), Int(2))
	require.NoError(t, err)

	var starts []int
	streamed, _ := collapseEvents(t, func(yield func(Event, error) bool) {
		for ev, err := range Events(frag, AsFragment()) {
			if ev.Kind == EventStartArray {
				starts = append(starts, ev.Len)
			}
			if !yield(ev, err) {
				return
			}
		}
	})
	assert.Equal(t, []int{IndefiniteLen}, starts)
	assert.True(t, Equal(Array(Int(1), Int(2)), streamed))
}

func TestStreamingKeyTableResolvedUpFront(t *testing.T) {
	v := batchRecords(50)
	data, err := Encode(v, WithKeyTable(KeyTableOn))
	require.NoError(t, err)
	require.Equal(t, tableTag, data[4])

	for ev, err := range Events(data) {
		require.NoError(t, err)
		if ev.Kind == EventKey {
			assert.NotEmpty(t, ev.Key, "keys must arrive as resolved names")
		}
	}
}

func TestStreamingEarlyStop(t *testing.T) {
	data, err := Encode(batchRecords(50))
	require.NoError(t, err)

	n := 0
	for _, err := range Events(data) {
		require.NoError(t, err)
		n++
		if n == 5 {
			break
		}
	}
	assert.Equal(t, 5, n)
}

func TestStreamingErrors(t *testing.T) {
	t.Run("truncated value", func(t *testing.T) {
		data := append(validHeader(), tagStr8, 10, 'a')
		var last error
		for _, err := range Events(data) {
			last = err
		}
		assert.ErrorIs(t, last, ErrTruncatedData)
	})

	t.Run("bad magic", func(t *testing.T) {
		var last error
		for _, err := range Events([]byte{'N', 'O', 'O', 'B', Version, tagNull}) {
			last = err
		}
		assert.ErrorIs(t, last, ErrInvalidHeader)
	})

	t.Run("stray break", func(t *testing.T) {
		var last error
		for _, err := range Events([]byte{tagBreak}, AsFragment()) {
			last = err
		}
		assert.ErrorIs(t, last, ErrUnexpectedBreak)
	})
}

func TestEventsFromReader(t *testing.T) {
	v := Object(M("id", Int(1)), M("data", Array(String("chunked"))))
	data, err := Encode(v)
	require.NoError(t, err)

	streamed, sawHeader := collapseEvents(t, EventsFromReader(bytes.NewReader(data)))
	assert.True(t, sawHeader)
	assert.True(t, Equal(v, streamed))
}
