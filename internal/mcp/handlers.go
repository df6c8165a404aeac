package mcp

import (
	"context"
	"fmt"
	"strings"

	"cashflow-mcp/internal/cashflow"
	"cashflow-mcp/internal/dataset"
	"cashflow-mcp/internal/forecast"
	"cashflow-mcp/internal/scoring"
	"cashflow-mcp/internal/stats"
	"cashflow-mcp/internal/visuals"
)

// EntitySummary is the list_entities row.
type EntitySummary struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Sector        string   `json:"sector"`
	AnnualRevenue float64  `json:"annual_revenue"`
	Services      []string `json:"services"`
}

// DatasetView is a dataset with the daily series made optional.
type DatasetView struct {
	Entity    cashflow.EntityProfile `json:"entity"`
	Seed      int64                  `json:"seed"`
	Points    int                    `json:"points"`
	FirstDate string                 `json:"first_date,omitempty"`
	LastDate  string                 `json:"last_date,omitempty"`
	Scores    scoring.ScoreSet       `json:"scores"`
	Alerts    []scoring.Alert        `json:"alerts"`
	Forecast  []forecast.Point       `json:"forecast"`
	Series    cashflow.Series        `json:"series,omitempty"`
}

// StatisticsView scopes statistics to the requested window.
type StatisticsView struct {
	EntityID string `json:"entity_id"`
	Year     int    `json:"year,omitempty"`
	Quarter  int    `json:"quarter,omitempty"`
	dataset.Statistics
}

// VariationsView scopes daily balance variations to the requested window.
type VariationsView struct {
	EntityID string `json:"entity_id"`
	Year     int    `json:"year,omitempty"`
	Quarter  int    `json:"quarter,omitempty"`
	dataset.Variations
}

// HistogramView is the compute_histogram payload.
type HistogramView struct {
	EntityID string               `json:"entity_id"`
	Column   string               `json:"column"`
	Points   int                  `json:"points"`
	Bins     []stats.HistogramBin `json:"bins"`
}

// CurveView is the gaussian_curve payload.
type CurveView struct {
	EntityID string                `json:"entity_id"`
	Column   string                `json:"column"`
	Mean     float64               `json:"mean"`
	StdDev   float64               `json:"std_dev"`
	Curve    []stats.GaussianPoint `json:"curve"`
}

func (s *Server) handleListEntities(_ context.Context, _ listEntitiesInput) (any, string, error) {
	profiles := s.svc.Catalog().List()
	out := make([]EntitySummary, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, EntitySummary{
			ID:            p.ID,
			Name:          p.Name,
			Sector:        p.Sector,
			AnnualRevenue: p.AnnualRevenue,
			Services:      p.Services,
		})
	}
	return out, "", nil
}

func (s *Server) handleGenerateDataset(_ context.Context, in datasetInput) (any, string, error) {
	ds, err := s.svc.Dataset(in.EntityID, in.Seed)
	if err != nil {
		return nil, "", err
	}

	view := DatasetView{
		Entity:   ds.Entity,
		Seed:     ds.Seed,
		Points:   len(ds.Series),
		Scores:   ds.Scores,
		Alerts:   ds.Alerts,
		Forecast: ds.Forecast,
	}
	if n := len(ds.Series); n > 0 {
		view.FirstDate = ds.Series[0].Date.String()
		view.LastDate = ds.Series[n-1].Date.String()
	}
	if in.IncludeSeries {
		view.Series = ds.Series
	}
	return view, visuals.GenerateForecastChart(ds.Forecast), nil
}

func (s *Server) handleComputeStatistics(_ context.Context, in windowInput) (any, string, error) {
	series, err := s.svc.Series(in.EntityID, in.Seed, in.Year, in.Quarter)
	if err != nil {
		return nil, "", err
	}
	view := StatisticsView{
		EntityID:   in.EntityID,
		Year:       in.Year,
		Quarter:    in.Quarter,
		Statistics: dataset.ComputeStatistics(series),
	}
	return view, visuals.GenerateBalanceTrendChart(series), nil
}

func (s *Server) handleComputeHistogram(_ context.Context, in distributionInput) (any, string, error) {
	column, values, err := s.columnValues(in)
	if err != nil {
		return nil, "", err
	}
	bins := stats.CalculateHistogram(values)
	if bins == nil {
		bins = []stats.HistogramBin{}
	}
	view := HistogramView{
		EntityID: in.EntityID,
		Column:   column,
		Points:   len(values),
		Bins:     bins,
	}
	title := fmt.Sprintf("%s distribution", strings.ToUpper(column[:1])+column[1:])
	return view, visuals.GenerateHistogramChart(title, bins), nil
}

func (s *Server) handleGaussianCurve(_ context.Context, in distributionInput) (any, string, error) {
	column, values, err := s.columnValues(in)
	if err != nil {
		return nil, "", err
	}
	curve := stats.GaussianCurve(values, in.Steps)
	if curve == nil {
		curve = []stats.GaussianPoint{}
	}
	mean := stats.Mean(values)
	return CurveView{
		EntityID: in.EntityID,
		Column:   column,
		Mean:     mean,
		StdDev:   stats.StdDev(values, mean),
		Curve:    curve,
	}, "", nil
}

func (s *Server) handleForecastBalance(_ context.Context, in forecastInput) (any, string, error) {
	ds, err := s.svc.Dataset(in.EntityID, in.Seed)
	if err != nil {
		return nil, "", err
	}
	res := forecast.Project(ds.Series, in.Horizon)
	return res, visuals.GenerateForecastChart(res.Points), nil
}

func (s *Server) handleBalanceSheet(_ context.Context, in entityInput) (any, string, error) {
	sheets, err := s.svc.BalanceSheets(in.EntityID)
	if err != nil {
		return nil, "", err
	}
	return sheets, "", nil
}

func (s *Server) handleBalanceBehavior(_ context.Context, in windowInput) (any, string, error) {
	series, err := s.svc.Series(in.EntityID, in.Seed, in.Year, in.Quarter)
	if err != nil {
		return nil, "", err
	}
	keys := make([]string, len(series))
	for i, p := range series {
		keys[i] = p.Date.String()
	}
	res := stats.AnalyzeBalanceBehavior(series.Balances(), keys)
	return res, visuals.GenerateXmRChart(res), nil
}

func (s *Server) handleBalanceVariations(_ context.Context, in windowInput) (any, string, error) {
	v, err := s.svc.Variations(in.EntityID, in.Seed, in.Year, in.Quarter)
	if err != nil {
		return nil, "", err
	}
	view := VariationsView{
		EntityID:   in.EntityID,
		Year:       in.Year,
		Quarter:    in.Quarter,
		Variations: v,
	}
	return view, visuals.GenerateVariationChart(v.Daily), nil
}

func (s *Server) columnValues(in distributionInput) (string, []float64, error) {
	series, err := s.svc.Series(in.EntityID, in.Seed, in.Year, in.Quarter)
	if err != nil {
		return "", nil, err
	}
	return dataset.Column(series, in.Column)
}
