package mcp

import (
	"encoding/json"
	"errors"
	"strconv"

	"cashflow-mcp/internal/dataset"
	"cashflow-mcp/internal/forecast"
	"cashflow-mcp/internal/stats"

	"github.com/google/jsonschema-go/jsonschema"
)

type listEntitiesInput struct{}

type entityInput struct {
	EntityID string `json:"entity_id" jsonschema:"ID of the entity, as returned by list_entities"`
}

type datasetInput struct {
	EntityID      string `json:"entity_id" jsonschema:"ID of the entity, as returned by list_entities"`
	Seed          int64  `json:"seed,omitempty" jsonschema:"Generator seed; omit to use the session seed"`
	IncludeSeries bool   `json:"include_series,omitempty" jsonschema:"Return every daily point (about 1100 rows)"`
}

type windowInput struct {
	EntityID string `json:"entity_id" jsonschema:"ID of the entity, as returned by list_entities"`
	Seed     int64  `json:"seed,omitempty" jsonschema:"Generator seed; omit to use the session seed"`
	Year     int    `json:"year,omitempty" jsonschema:"Restrict to one calendar year"`
	Quarter  int    `json:"quarter,omitempty" jsonschema:"Restrict to one quarter (1-4)"`
}

type distributionInput struct {
	EntityID string `json:"entity_id" jsonschema:"ID of the entity, as returned by list_entities"`
	Seed     int64  `json:"seed,omitempty" jsonschema:"Generator seed; omit to use the session seed"`
	Column   string `json:"column,omitempty" jsonschema:"Which column to analyze"`
	Year     int    `json:"year,omitempty" jsonschema:"Restrict to one calendar year"`
	Quarter  int    `json:"quarter,omitempty" jsonschema:"Restrict to one quarter (1-4)"`
	Steps    int    `json:"steps,omitempty" jsonschema:"Number of curve steps (gaussian_curve only)"`
}

type forecastInput struct {
	EntityID string `json:"entity_id" jsonschema:"ID of the entity, as returned by list_entities"`
	Seed     int64  `json:"seed,omitempty" jsonschema:"Generator seed; omit to use the session seed"`
	Horizon  int    `json:"horizon,omitempty" jsonschema:"Days to project past the last observation"`
}

func (s *Server) registerTools() error {
	return errors.Join(
		addTool(s, "list_entities",
			"List the business entities a cash-flow history can be generated for (ID, name, sector, annual revenue, subscribed services).",
			nil, s.handleListEntities),
		addTool(s, "generate_financial_dataset",
			"Generate the three-year daily cash-flow history of an entity and derive its quality scores (1-10), advisory alerts and a 30-day balance forecast. "+
				"Results are deterministic for a given seed. The daily series is omitted unless include_series is true.",
			nil, s.handleGenerateDataset),
		addTool(s, "compute_statistics",
			"Descriptive statistics (mean, median, std dev, min, max, quartiles; skewness and kurtosis for flows; volatility and positive/negative day counts for the balance) "+
				"over the entity's history, optionally restricted to a year and quarter.",
			tuneWindow, s.handleComputeStatistics),
		addTool(s, "compute_histogram",
			"Bin a column of the entity's history with Sturges' rule and overlay the expected normal count per bin.",
			tuneDistribution, s.handleComputeHistogram),
		addTool(s, "gaussian_curve",
			"Sample the normal density fitted to a column of the entity's history, from its minimum to its maximum.",
			tuneDistribution, s.handleGaussianCurve),
		addTool(s, "forecast_balance",
			"Fit a least-squares trend to the balance history and project it with a symmetric 95% confidence band.",
			tuneForecast, s.handleForecastBalance),
		addTool(s, "get_balance_sheet",
			"Derive the yearly balance sheet of an entity (assets, liabilities) with autonomy, gearing, liquidity ratios and working-capital requirement.",
			nil, s.handleBalanceSheet),
		addTool(s, "analyze_balance_behavior",
			"Run an XmR process-behavior chart over the daily balance: natural process limits, outliers and 8-day level shifts.",
			tuneWindow, s.handleBalanceBehavior),
		addTool(s, "balance_variations",
			"List the day-over-day balance changes next to each day's net flow, with the largest gain and drop, optionally restricted to a year and quarter.",
			tuneWindow, s.handleBalanceVariations),
	)
}

func tuneWindow(schema *jsonschema.Schema) {
	if q := schema.Properties["quarter"]; q != nil {
		q.Minimum = jsonschema.Ptr(0.0)
		q.Maximum = jsonschema.Ptr(4.0)
	}
	if y := schema.Properties["year"]; y != nil {
		y.Minimum = jsonschema.Ptr(0.0)
	}
}

func tuneDistribution(schema *jsonschema.Schema) {
	tuneWindow(schema)
	if c := schema.Properties["column"]; c != nil {
		for _, name := range dataset.Columns {
			c.Enum = append(c.Enum, name)
		}
		c.Default = json.RawMessage(strconv.Quote(dataset.ColumnBalance))
	}
	if st := schema.Properties["steps"]; st != nil {
		st.Minimum = jsonschema.Ptr(1.0)
		st.Maximum = jsonschema.Ptr(1000.0)
		st.Default = json.RawMessage(strconv.Itoa(stats.DefaultCurveSteps))
	}
}

func tuneForecast(schema *jsonschema.Schema) {
	if h := schema.Properties["horizon"]; h != nil {
		h.Minimum = jsonschema.Ptr(1.0)
		h.Maximum = jsonschema.Ptr(365.0)
		h.Default = json.RawMessage(strconv.Itoa(forecast.DefaultHorizon))
	}
}
