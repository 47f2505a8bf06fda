package boon

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshal(t *testing.T) {
	in := map[string]any{
		"id":     float64(7),
		"name":   "ada",
		"active": true,
		"tags":   []any{"a", "b"},
		"nested": map[string]any{"score": 0.5},
	}

	data, err := Marshal(in)
	require.NoError(t, err)

	out, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestMarshalUnsupportedType(t *testing.T) {
	_, err := Marshal(make(chan int))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestEncodeWithLogger(t *testing.T) {
	// The logger only traces the key-table decision; output must not
	// change.
	v := batchRecords(50)

	plain, err := Encode(v)
	require.NoError(t, err)
	logger := NewLogger(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	logged, err := Encode(v, WithLogger(logger))
	require.NoError(t, err)

	assert.Equal(t, plain, logged)
}

func TestConcurrentCalls(t *testing.T) {
	v := batchRecords(20)
	data, err := Encode(v)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 25 {
				enc, err := Encode(v)
				assert.NoError(t, err)
				assert.Equal(t, data, enc)

				dec, err := Decode(data)
				assert.NoError(t, err)
				assert.True(t, Equal(v, dec))
			}
		}()
	}
	wg.Wait()
}
