package dataset

import (
	"time"

	"cashflow-mcp/internal/balancesheet"
	"cashflow-mcp/internal/cashflow"
	"cashflow-mcp/internal/catalog"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Service resolves entities from the catalog and serves cached datasets for them.
type Service struct {
	catalog  *catalog.Catalog
	pipeline *Pipeline
	cache    *Cache
	seed     int64
	group    singleflight.Group
}

// NewService wires a catalog and a pipeline. A zero seed picks one session seed from the clock,
// so every caller of the same service observes the same histories.
func NewService(c *catalog.Catalog, p *Pipeline, seed int64) *Service {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Service{
		catalog:  c,
		pipeline: p,
		cache:    NewCache(),
		seed:     seed,
	}
}

func (s *Service) Catalog() *catalog.Catalog { return s.catalog }
func (s *Service) Pipeline() *Pipeline       { return s.pipeline }
func (s *Service) Cache() *Cache             { return s.cache }
func (s *Service) Seed() int64               { return s.seed }

// Dataset returns the dataset of an entity, generating it on first use. A zero seed means the
// session seed. Concurrent misses for the same key generate once.
func (s *Service) Dataset(entityID string, seed int64) (Dataset, error) {
	profile, err := s.catalog.Lookup(entityID)
	if err != nil {
		return Dataset{}, err
	}
	if seed == 0 {
		seed = s.seed
	}
	if ds, ok := s.cache.Get(profile.ID, seed); ok {
		return ds, nil
	}

	v, _, shared := s.group.Do(cacheKey(profile.ID, seed), func() (interface{}, error) {
		if ds, ok := s.cache.Get(profile.ID, seed); ok {
			return ds, nil
		}
		ds := s.pipeline.GenerateFinancialDataset(profile, seed)
		s.cache.Put(ds)
		return ds, nil
	})
	if shared {
		log.Debug().Str("entity", profile.ID).Msg("Joined in-flight generation")
	}
	return v.(Dataset), nil
}

// Series returns the entity's history restricted to a year and quarter (0 means all).
func (s *Service) Series(entityID string, seed int64, year, quarter int) (cashflow.Series, error) {
	ds, err := s.Dataset(entityID, seed)
	if err != nil {
		return nil, err
	}
	return ds.Series.Filter(year, quarter), nil
}

// Statistics describes the entity's history restricted to a year and quarter (0 means all).
func (s *Service) Statistics(entityID string, seed int64, year, quarter int) (Statistics, error) {
	series, err := s.Series(entityID, seed, year, quarter)
	if err != nil {
		return Statistics{}, err
	}
	return ComputeStatistics(series), nil
}

// BalanceSheets derives the yearly balance sheets of an entity.
func (s *Service) BalanceSheets(entityID string) ([]balancesheet.Sheet, error) {
	profile, err := s.catalog.Lookup(entityID)
	if err != nil {
		return nil, err
	}
	return balancesheet.Build(profile, s.pipeline.Scenario()), nil
}

// Variations lists the day-over-day balance changes of a window (0 means all).
func (s *Service) Variations(entityID string, seed int64, year, quarter int) (Variations, error) {
	series, err := s.Series(entityID, seed, year, quarter)
	if err != nil {
		return Variations{}, err
	}
	return ComputeVariations(series), nil
}

// Forget drops every cached dataset of an entity so the next call regenerates it. An empty ID
// clears the whole cache.
func (s *Service) Forget(entityID string) (int, error) {
	id := entityID
	if id != "" {
		profile, err := s.catalog.Lookup(entityID)
		if err != nil {
			return 0, err
		}
		id = profile.ID
	}
	n := s.cache.Invalidate(id)
	log.Info().Str("entity", id).Int("datasets", n).Msg("Dropped cached datasets")
	return n, nil
}
