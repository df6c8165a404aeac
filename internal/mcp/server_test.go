package mcp

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"cashflow-mcp/internal/balancesheet"
	"cashflow-mcp/internal/catalog"
	"cashflow-mcp/internal/dataset"
	"cashflow-mcp/internal/forecast"
	"cashflow-mcp/internal/simulation"
	"cashflow-mcp/internal/stats"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeed = 2024

func connect(t *testing.T, charts bool) *sdk.ClientSession {
	t.Helper()
	ctx := context.Background()

	svc := dataset.NewService(catalog.Default(), dataset.NewPipeline(simulation.DefaultScenario()), testSeed)
	srv, err := NewServer(svc, charts, "test")
	require.NoError(t, err)

	serverT, clientT := sdk.NewInMemoryTransports()
	ss, err := srv.Connect(ctx, serverT)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := sdk.NewClient(&sdk.Implementation{Name: "test-client", Version: "v0"}, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func call(t *testing.T, cs *sdk.ClientSession, name string, args map[string]any) *sdk.CallToolResult {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &sdk.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	return res
}

func decode(t *testing.T, res *sdk.CallToolResult, v any) {
	t.Helper()
	require.False(t, res.IsError, "unexpected tool error: %s", texts(res))
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdk.TextContent)
	require.True(t, ok)
	require.NoError(t, json.Unmarshal([]byte(text.Text), v))
}

func texts(res *sdk.CallToolResult) string {
	var parts []string
	for _, c := range res.Content {
		if tc, ok := c.(*sdk.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func TestListTools(t *testing.T) {
	cs := connect(t, false)
	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"list_entities",
		"generate_financial_dataset",
		"compute_statistics",
		"compute_histogram",
		"gaussian_curve",
		"forecast_balance",
		"get_balance_sheet",
		"analyze_balance_behavior",
		"balance_variations",
	}, names)
}

func TestListEntities(t *testing.T) {
	cs := connect(t, false)
	var entities []EntitySummary
	decode(t, call(t, cs, "list_entities", map[string]any{}), &entities)

	require.Len(t, entities, catalog.Default().Len())
	assert.Equal(t, "1", entities[0].ID)
	assert.NotEmpty(t, entities[0].Name)
}

func TestGenerateFinancialDataset(t *testing.T) {
	cs := connect(t, false)

	var view DatasetView
	decode(t, call(t, cs, "generate_financial_dataset", map[string]any{"entity_id": "1"}), &view)
	assert.Equal(t, int64(testSeed), view.Seed)
	assert.Equal(t, 365*3, view.Points)
	assert.Equal(t, "2022-01-01", view.FirstDate)
	assert.Empty(t, view.Series, "series is omitted unless requested")
	assert.Len(t, view.Forecast, forecast.DefaultHorizon)

	var full DatasetView
	decode(t, call(t, cs, "generate_financial_dataset", map[string]any{
		"entity_id":      "1",
		"include_series": true,
	}), &full)
	assert.Len(t, full.Series, 365*3)
	assert.Equal(t, view.Scores, full.Scores)
}

func TestGenerateFinancialDataset_UnknownEntity(t *testing.T) {
	cs := connect(t, false)
	res := call(t, cs, "generate_financial_dataset", map[string]any{"entity_id": "missing"})
	assert.True(t, res.IsError)
	assert.Contains(t, texts(res), "missing")
}

func TestComputeStatistics_Quarter(t *testing.T) {
	cs := connect(t, false)
	var view StatisticsView
	decode(t, call(t, cs, "compute_statistics", map[string]any{
		"entity_id": "3",
		"year":      2023,
		"quarter":   2,
	}), &view)

	assert.Equal(t, 91, view.Points)
	assert.Equal(t, 2023, view.Year)
	assert.GreaterOrEqual(t, view.Balance.Max, view.Balance.Min)
}

func TestComputeStatistics_RejectsBadQuarter(t *testing.T) {
	cs := connect(t, false)
	_, err := cs.CallTool(context.Background(), &sdk.CallToolParams{
		Name:      "compute_statistics",
		Arguments: map[string]any{"entity_id": "3", "quarter": 5},
	})
	assert.Error(t, err)
}

func TestComputeHistogram(t *testing.T) {
	cs := connect(t, true)
	res := call(t, cs, "compute_histogram", map[string]any{"entity_id": "2", "column": "credits"})

	var view HistogramView
	decode(t, res, &view)
	assert.Equal(t, dataset.ColumnCredits, view.Column)
	assert.Len(t, view.Bins, stats.SturgesBins(view.Points))

	total := 0
	for _, b := range view.Bins {
		total += b.Count
	}
	assert.Equal(t, view.Points, total)

	require.Len(t, res.Content, 2, "chart follows the payload when charts are enabled")
	assert.Contains(t, res.Content[1].(*sdk.TextContent).Text, "xychart-beta")
}

func TestComputeHistogram_DefaultsToBalance(t *testing.T) {
	cs := connect(t, false)
	res := call(t, cs, "compute_histogram", map[string]any{"entity_id": "2"})

	var view HistogramView
	decode(t, res, &view)
	assert.Equal(t, dataset.ColumnBalance, view.Column)
	assert.Len(t, res.Content, 1, "no chart when charts are disabled")
}

func TestGaussianCurve(t *testing.T) {
	cs := connect(t, false)
	var view CurveView
	decode(t, call(t, cs, "gaussian_curve", map[string]any{"entity_id": "4", "steps": 10}), &view)

	require.Len(t, view.Curve, 11)
	assert.Greater(t, view.StdDev, 0.0)
	assert.LessOrEqual(t, view.Curve[0].Value, view.Mean)
	assert.GreaterOrEqual(t, view.Curve[len(view.Curve)-1].Value, view.Mean)
}

func TestForecastBalance(t *testing.T) {
	cs := connect(t, false)
	var res forecast.Result
	decode(t, call(t, cs, "forecast_balance", map[string]any{"entity_id": "5", "horizon": 14}), &res)

	require.Len(t, res.Points, 14)
	assert.Equal(t, "2024-12-31", res.Points[0].Date.String())
	for _, p := range res.Points {
		assert.InDelta(t, p.UpperBound-p.PredictedBalance, p.PredictedBalance-p.LowerBound, 1e-6)
	}
}

func TestGetBalanceSheet(t *testing.T) {
	cs := connect(t, false)
	var sheets []balancesheet.Sheet
	decode(t, call(t, cs, "get_balance_sheet", map[string]any{"entity_id": "1"}), &sheets)

	require.Len(t, sheets, 3)
	assert.Equal(t, 2022, sheets[0].Year)
	assert.Equal(t, 2024, sheets[2].Year)
	assert.Greater(t, sheets[2].Assets.Total, sheets[0].Assets.Total)
}

func TestAnalyzeBalanceBehavior(t *testing.T) {
	cs := connect(t, true)
	res := call(t, cs, "analyze_balance_behavior", map[string]any{"entity_id": "6", "year": 2024})

	var behavior stats.BehaviorResult
	decode(t, res, &behavior)
	assert.Len(t, behavior.XmR.Values, 365)
	assert.Contains(t, []string{"stable", "unstable"}, behavior.Status)
	for _, sig := range behavior.XmR.Signals {
		assert.True(t, strings.HasPrefix(sig.Key, "2024-"), "signal keys are dates, got %q", sig.Key)
	}
	require.Len(t, res.Content, 2)
}

func TestBalanceVariations(t *testing.T) {
	cs := connect(t, true)
	res := call(t, cs, "balance_variations", map[string]any{"entity_id": "2", "year": 2022, "quarter": 1})

	var view VariationsView
	decode(t, res, &view)
	assert.Equal(t, 90, view.Points)
	require.Len(t, view.Daily, 90)
	assert.Zero(t, view.Daily[0].Variation)
	assert.InDelta(t, view.Daily[1].Balance-view.Daily[0].Balance, view.Daily[1].Variation, 1e-6)
	assert.GreaterOrEqual(t, view.LargestGain.Variation, view.LargestDrop.Variation)

	require.Len(t, res.Content, 2)
	assert.Contains(t, res.Content[1].(*sdk.TextContent).Text, "Daily Balance Variation")
}

func TestFormatResult_NonFinite(t *testing.T) {
	_, err := formatResult(map[string]float64{"std_dev": math.Inf(1)})
	assert.Error(t, err)

	text, err := formatResult(map[string]float64{"std_dev": 1e200})
	require.NoError(t, err)
	assert.Contains(t, text, "1e+200")
}
