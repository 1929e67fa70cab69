package profile

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// BuildAll builds a profile per input concurrently, running at most limit
// builds at once. A limit of zero or less means no limit. Results keep the
// order of inputs. The first error cancels the builds not yet started.
func BuildAll(ctx context.Context, inputs []Inputs, limit int) ([]*Profile, error) {
	return buildAll(ctx, inputs, limit, New)
}

// BuildAll is like the package level BuildAll but goes through the cache.
func (c *Cache) BuildAll(ctx context.Context, inputs []Inputs, limit int) ([]*Profile, error) {
	return buildAll(ctx, inputs, limit, c.Get)
}

func buildAll(ctx context.Context, inputs []Inputs, limit int, build func(Inputs) (*Profile, error)) ([]*Profile, error) {
	out := make([]*Profile, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, in := range inputs {
		// Each build gets its own copy of the grid.
		in.Grid = in.Grid.Clone()
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := build(in)
			if err != nil {
				return fmt.Errorf("input %d: %w", i, err)
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
