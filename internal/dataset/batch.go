package dataset

import (
	"context"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// GenerateAll builds the dataset of every catalog entity with at most workers generations in
// flight. Results follow catalog order. done, when set, is called once per finished dataset and
// may be called concurrently.
func (s *Service) GenerateAll(ctx context.Context, seed int64, workers int, done func(Dataset)) ([]Dataset, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	profiles := s.catalog.List()
	out := make([]Dataset, len(profiles))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range profiles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ds, err := s.Dataset(p.ID, seed)
			if err != nil {
				return err
			}
			out[i] = ds
			if done != nil {
				done(ds)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug().Int("entities", len(out)).Int("workers", workers).Msg("Batch generation finished")
	return out, nil
}
