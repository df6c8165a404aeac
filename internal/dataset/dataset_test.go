package dataset

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"cashflow-mcp/internal/cashflow"
	"cashflow-mcp/internal/catalog"
	"cashflow-mcp/internal/scoring"
	"cashflow-mcp/internal/simulation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var techProfile = cashflow.EntityProfile{
	ID:            "1",
	Name:          "Tech Solutions SA",
	AnnualRevenue: 1_500_000,
	Services:      []string{"Current Account", "Credit Line"},
}

type fixedScorer struct{ set scoring.ScoreSet }

func (f fixedScorer) Score(cashflow.EntityProfile, cashflow.Series) scoring.ScoreSet { return f.set }

type silentAdvisor struct{}

func (silentAdvisor) Alerts(cashflow.EntityProfile, cashflow.Series) []scoring.Alert { return nil }

func TestGenerateFinancialDataset(t *testing.T) {
	p := NewPipeline(simulation.DefaultScenario())
	ds := p.GenerateFinancialDataset(techProfile, 42)

	assert.Equal(t, int64(42), ds.Seed)
	assert.Equal(t, "1", ds.Entity.ID)
	require.Len(t, ds.Series, 365*3)
	require.Len(t, ds.Forecast, 30)
	assert.Equal(t, ds.Series[len(ds.Series)-1].Date.AddDays(1).String(), ds.Forecast[0].Date.String())

	for _, v := range []float64{ds.Scores.Stability, ds.Scores.Overdraft, ds.Scores.CreditLine} {
		assert.GreaterOrEqual(t, v, scoring.MinScore)
		assert.LessOrEqual(t, v, scoring.MaxScore)
	}
	assert.LessOrEqual(t, len(ds.Alerts), 3)
}

func TestGenerateFinancialDataset_Deterministic(t *testing.T) {
	p := NewPipeline(simulation.DefaultScenario())
	a := p.GenerateFinancialDataset(techProfile, 7)
	b := p.GenerateFinancialDataset(techProfile, 7)
	assert.Equal(t, a, b)
}

func TestGenerateFinancialDataset_ZeroSeedIsReported(t *testing.T) {
	ds := NewPipeline(simulation.DefaultScenario()).GenerateFinancialDataset(techProfile, 0)
	assert.NotZero(t, ds.Seed)

	replay := NewPipeline(simulation.DefaultScenario()).GenerateFinancialDataset(techProfile, ds.Seed)
	assert.Equal(t, ds.Series, replay.Series)
}

func TestPipelineOptions(t *testing.T) {
	want := scoring.ScoreSet{Stability: 3, Overdraft: 4, CreditLine: 5}
	p := NewPipeline(simulation.DefaultScenario(),
		WithScorer(fixedScorer{set: want}),
		WithAdvisor(silentAdvisor{}),
		WithHorizon(7),
	)
	ds := p.GenerateFinancialDataset(techProfile, 1)

	assert.Equal(t, want, ds.Scores)
	assert.Empty(t, ds.Alerts)
	assert.Len(t, ds.Forecast, 7)
	assert.Equal(t, 7, p.Horizon())

	p = NewPipeline(simulation.DefaultScenario(), WithHorizon(-1), WithScorer(nil))
	assert.Equal(t, 30, p.Horizon())
	assert.NotNil(t, p.scorer)
}

func TestComputeStatistics(t *testing.T) {
	empty := ComputeStatistics(nil)
	assert.Equal(t, Statistics{}, empty)

	start := cashflow.NewDay(simulation.DefaultScenario().StartDate())
	series := cashflow.Series{
		{Date: start, Balance: 100, Credits: 10, Debits: 5},
		{Date: start.AddDays(1), Balance: -50, Credits: 20, Debits: 15},
		{Date: start.AddDays(2), Balance: 0, Credits: 30, Debits: 25},
	}
	s := ComputeStatistics(series)
	assert.Equal(t, 3, s.Points)
	assert.InDelta(t, 20, s.Credits.Mean, 1e-9)
	assert.InDelta(t, 15, s.Debits.Median, 1e-9)
	assert.Equal(t, 1, s.Balance.DaysPositive)
	assert.Equal(t, 2, s.Balance.DaysNegative)
	assert.Equal(t, -50.0, s.Balance.Min)
}

func TestCache(t *testing.T) {
	c := NewCache()
	_, ok := c.Get("1", 5)
	assert.False(t, ok)

	c.Put(Dataset{Entity: cashflow.EntityProfile{ID: "1"}, Seed: 5})
	c.Put(Dataset{Entity: cashflow.EntityProfile{ID: "1"}, Seed: 6})
	c.Put(Dataset{Entity: cashflow.EntityProfile{ID: "10"}, Seed: 5})
	assert.Equal(t, 3, c.Len())

	ds, ok := c.Get("1", 5)
	require.True(t, ok)
	assert.Equal(t, int64(5), ds.Seed)

	assert.Equal(t, 2, c.Invalidate("1"))
	assert.Equal(t, 1, c.Len())
	_, ok = c.Get("10", 5)
	assert.True(t, ok, "invalidating 1 must not touch 10")

	assert.Equal(t, 1, c.Invalidate(""))
	assert.Zero(t, c.Len())
}

func TestService_DatasetIsCachedAndShared(t *testing.T) {
	svc := NewService(catalog.Default(), NewPipeline(simulation.DefaultScenario()), 99)
	assert.Equal(t, int64(99), svc.Seed())

	var wg sync.WaitGroup
	results := make([]Dataset, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ds, err := svc.Dataset("2", 0)
			assert.NoError(t, err)
			results[i] = ds
		}(i)
	}
	wg.Wait()

	for _, ds := range results[1:] {
		assert.Equal(t, results[0].Series, ds.Series)
	}
	assert.Equal(t, 1, svc.Cache().Len())

	other, err := svc.Dataset("2", 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), other.Seed)
	assert.Equal(t, 2, svc.Cache().Len())
}

func TestService_UnknownEntity(t *testing.T) {
	svc := NewService(catalog.Default(), NewPipeline(simulation.DefaultScenario()), 1)
	_, err := svc.Dataset("nope", 0)
	assert.ErrorIs(t, err, catalog.ErrUnknownEntity)

	_, err = svc.Statistics("nope", 0, 0, 0)
	assert.Error(t, err)
	_, err = svc.BalanceSheets("nope")
	assert.Error(t, err)
}

func TestService_FilteredStatistics(t *testing.T) {
	svc := NewService(catalog.Default(), NewPipeline(simulation.DefaultScenario()), 3)

	all, err := svc.Statistics("1", 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 365*3, all.Points)

	q1, err := svc.Statistics("1", 0, 2023, 1)
	require.NoError(t, err)
	assert.Equal(t, 90, q1.Points)

	none, err := svc.Statistics("1", 0, 1999, 0)
	require.NoError(t, err)
	assert.Equal(t, Statistics{}, none)

	sheets, err := svc.BalanceSheets("1")
	require.NoError(t, err)
	assert.Len(t, sheets, 3)
}

func TestComputeVariations(t *testing.T) {
	series := cashflow.Series{
		{Balance: 100, Credits: 10, Debits: 0},
		{Balance: 160, Credits: 70, Debits: 10},
		{Balance: 90, Credits: 0, Debits: 70},
		{Balance: 95, Credits: 5, Debits: 0},
	}
	v := ComputeVariations(series)

	assert.Equal(t, 4, v.Points)
	require.Len(t, v.Daily, 4)
	assert.Zero(t, v.Daily[0].Variation)
	assert.Equal(t, 60.0, v.LargestGain.Variation)
	assert.Equal(t, 60.0, v.LargestGain.Net)
	assert.Equal(t, -70.0, v.LargestDrop.Variation)

	empty := ComputeVariations(nil)
	assert.Zero(t, empty.Points)
	assert.NotNil(t, empty.Daily)
}

func TestService_Variations(t *testing.T) {
	svc := NewService(catalog.Default(), NewPipeline(simulation.DefaultScenario()), 8)

	v, err := svc.Variations("2", 0, 2024, 0)
	require.NoError(t, err)
	assert.Equal(t, 365, v.Points)
	assert.Equal(t, "2024-01-01", v.Daily[0].Date.String())
	assert.GreaterOrEqual(t, v.LargestGain.Variation, v.LargestDrop.Variation)

	_, err = svc.Variations("nope", 0, 0, 0)
	assert.ErrorIs(t, err, catalog.ErrUnknownEntity)
}

func TestService_Forget(t *testing.T) {
	svc := NewService(catalog.Default(), NewPipeline(simulation.DefaultScenario()), 4)
	_, err := svc.Dataset("1", 0)
	require.NoError(t, err)
	_, err = svc.Dataset("1", 5)
	require.NoError(t, err)
	_, err = svc.Dataset("2", 0)
	require.NoError(t, err)

	n, err := svc.Forget(" 1 ")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, svc.Cache().Len())

	_, err = svc.Forget("nope")
	assert.ErrorIs(t, err, catalog.ErrUnknownEntity)

	n, err = svc.Forget("")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Zero(t, svc.Cache().Len())
}

func TestWriteAndReadFile(t *testing.T) {
	ds := NewPipeline(simulation.DefaultScenario(), WithHorizon(5)).GenerateFinancialDataset(techProfile, 11)
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := WriteFile(dir, ds)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dataset-1.json"), path)

	back, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ds.Seed, back.Seed)
	assert.Equal(t, ds.Scores, back.Scores)
	require.Len(t, back.Series, len(ds.Series))
	assert.Equal(t, ds.Series[0].Date.String(), back.Series[0].Date.String())
	assert.InDelta(t, ds.Series[10].Balance, back.Series[10].Balance, 1e-6)

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestColumn(t *testing.T) {
	series := cashflow.Series{{Balance: -1, Credits: 2, Debits: 3}}

	name, values, err := Column(series, "")
	require.NoError(t, err)
	assert.Equal(t, ColumnBalance, name)
	assert.Equal(t, []float64{-1}, values)

	name, values, err = Column(series, " Debits ")
	require.NoError(t, err)
	assert.Equal(t, ColumnDebits, name)
	assert.Equal(t, []float64{3}, values)

	_, _, err = Column(series, "net")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestGenerateAll(t *testing.T) {
	svc := NewService(catalog.Default(), NewPipeline(simulation.DefaultScenario(), WithHorizon(3)), 8)

	var finished atomic.Int32
	all, err := svc.GenerateAll(context.Background(), 0, 3, func(Dataset) { finished.Add(1) })
	require.NoError(t, err)
	require.Len(t, all, catalog.Default().Len())
	assert.Equal(t, int32(len(all)), finished.Load())

	for i, p := range catalog.Default().List() {
		assert.Equal(t, p.ID, all[i].Entity.ID, "results follow catalog order")
		assert.Equal(t, int64(8), all[i].Seed)
	}
	assert.Equal(t, len(all), svc.Cache().Len())
}

func TestGenerateAll_Cancelled(t *testing.T) {
	svc := NewService(catalog.Default(), NewPipeline(simulation.DefaultScenario()), 8)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GenerateAll(ctx, 0, 2, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
