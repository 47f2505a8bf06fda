package codec

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MarshalBatch encodes values concurrently with c. Output order matches
// input order; the first error cancels the remaining work and is returned.
//
// Each encode call owns its own buffer, so fan-out is safe for any Codec
// honoring the interface contract.
func MarshalBatch(ctx context.Context, c Codec, values []any) ([][]byte, error) {
	if c == nil {
		c = Default
	}
	out := make([][]byte, len(values))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, v := range values {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := c.Marshal(v)
			if err != nil {
				return err
			}
			out[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// UnmarshalBatch decodes messages concurrently with c into plain Go values.
func UnmarshalBatch(ctx context.Context, c Codec, messages [][]byte) ([]any, error) {
	if c == nil {
		c = Default
	}
	out := make([]any, len(messages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, data := range messages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return c.Unmarshal(data, &out[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
