package dataset

import (
	"time"

	"cashflow-mcp/internal/cashflow"
	"cashflow-mcp/internal/forecast"
	"cashflow-mcp/internal/scoring"
	"cashflow-mcp/internal/simulation"
	"cashflow-mcp/internal/stats"

	"github.com/rs/zerolog/log"
)

// Dataset is the full result of one generation: the history and everything derived from it.
type Dataset struct {
	Entity   cashflow.EntityProfile `json:"entity"`
	Seed     int64                  `json:"seed"`
	Series   cashflow.Series        `json:"series"`
	Scores   scoring.ScoreSet       `json:"scores"`
	Alerts   []scoring.Alert        `json:"alerts"`
	Forecast []forecast.Point       `json:"forecast"`
}

// Statistics summarizes the three columns of a series.
type Statistics struct {
	Points  int                  `json:"points"`
	Credits stats.FlowSummary    `json:"credits"`
	Debits  stats.FlowSummary    `json:"debits"`
	Balance stats.BalanceSummary `json:"balance"`
}

// ComputeStatistics describes any slice of points, including an empty one.
func ComputeStatistics(series cashflow.Series) Statistics {
	return Statistics{
		Points:  len(series),
		Credits: stats.SummarizeFlow(series.Credits()),
		Debits:  stats.SummarizeFlow(series.Debits()),
		Balance: stats.SummarizeBalance(series.Balances()),
	}
}

// Pipeline chains generation, scoring, alerting and forecasting.
type Pipeline struct {
	scenario simulation.Scenario
	scorer   scoring.Scorer
	advisor  scoring.Advisor
	horizon  int
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithScorer replaces the default scorer.
func WithScorer(s scoring.Scorer) Option {
	return func(p *Pipeline) {
		if s != nil {
			p.scorer = s
		}
	}
}

// WithAdvisor replaces the default advisor.
func WithAdvisor(a scoring.Advisor) Option {
	return func(p *Pipeline) {
		if a != nil {
			p.advisor = a
		}
	}
}

// WithHorizon sets the forecast length in days. Non-positive values keep the default.
func WithHorizon(days int) Option {
	return func(p *Pipeline) {
		if days > 0 {
			p.horizon = days
		}
	}
}

// NewPipeline builds a pipeline over a validated scenario.
func NewPipeline(scenario simulation.Scenario, opts ...Option) *Pipeline {
	p := &Pipeline{
		scenario: scenario,
		scorer:   scoring.DefaultScorer{Measure: scoring.MeasureVolatility},
		advisor:  scoring.NewAdvisor(),
		horizon:  forecast.DefaultHorizon,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Scenario returns the scenario the pipeline generates from.
func (p *Pipeline) Scenario() simulation.Scenario {
	return p.scenario
}

// Horizon returns the forecast length in days.
func (p *Pipeline) Horizon() int {
	return p.horizon
}

// GenerateFinancialDataset produces a dataset for the profile. The same non-zero seed always
// yields the same dataset; a zero seed draws one from the clock and reports it in the result.
func (p *Pipeline) GenerateFinancialDataset(profile cashflow.EntityProfile, seed int64) Dataset {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	series := simulation.NewSeededGenerator(p.scenario, seed).Generate(profile)
	ds := Dataset{
		Entity:   profile,
		Seed:     seed,
		Series:   series,
		Scores:   p.scorer.Score(profile, series),
		Alerts:   p.advisor.Alerts(profile, series),
		Forecast: forecast.Project(series, p.horizon).Points,
	}

	log.Debug().
		Str("entity", profile.ID).
		Int64("seed", seed).
		Int("points", len(series)).
		Int("alerts", len(ds.Alerts)).
		Msg("Dataset generated")

	return ds
}
