package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cashflow-mcp/internal/balancesheet"
	"cashflow-mcp/internal/cashflow"
	"cashflow-mcp/internal/dataset"
	"cashflow-mcp/internal/stats"
	"cashflow-mcp/internal/visuals"

	"github.com/pkg/errors"
)

// Report is everything rendered for one entity.
type Report struct {
	Dataset     dataset.Dataset
	Statistics  dataset.Statistics
	Sheets      []balancesheet.Sheet
	Behavior    stats.BehaviorResult
	Variations  dataset.Variations
	GeneratedAt time.Time
}

// Build gathers the report inputs from the service.
func Build(svc *dataset.Service, entityID string, seed int64) (Report, error) {
	ds, err := svc.Dataset(entityID, seed)
	if err != nil {
		return Report{}, err
	}
	sheets, err := svc.BalanceSheets(entityID)
	if err != nil {
		return Report{}, err
	}

	keys := make([]string, len(ds.Series))
	for i, p := range ds.Series {
		keys[i] = p.Date.String()
	}
	return Report{
		Dataset:     ds,
		Statistics:  dataset.ComputeStatistics(ds.Series),
		Sheets:      sheets,
		Behavior:    stats.AnalyzeBalanceBehavior(ds.Series.Balances(), keys),
		Variations:  dataset.ComputeVariations(ds.Series),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// Markdown renders the report with Mermaid charts.
func (r Report) Markdown() string {
	ds := r.Dataset
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Cash-flow report: %s\n\n", ds.Entity.Name))
	sb.WriteString(fmt.Sprintf("- Entity ID: `%s`\n", ds.Entity.ID))
	if ds.Entity.Sector != "" {
		sb.WriteString(fmt.Sprintf("- Sector: %s\n", ds.Entity.Sector))
	}
	sb.WriteString(fmt.Sprintf("- Annual revenue: %s\n", money(ds.Entity.AnnualRevenue)))
	if len(ds.Entity.Services) > 0 {
		sb.WriteString(fmt.Sprintf("- Services: %s\n", strings.Join(ds.Entity.Services, ", ")))
	}
	sb.WriteString(fmt.Sprintf("- Seed: `%d`\n", ds.Seed))
	if n := len(ds.Series); n > 0 {
		sb.WriteString(fmt.Sprintf("- Period: %s to %s (%d days)\n", ds.Series[0].Date, ds.Series[n-1].Date, n))
	}
	sb.WriteString(fmt.Sprintf("- Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))

	sb.WriteString("## Scores\n\n")
	sb.WriteString("| Stability | Overdraft | Credit line |\n|---:|---:|---:|\n")
	sb.WriteString(fmt.Sprintf("| %.1f | %.1f | %.1f |\n\n", ds.Scores.Stability, ds.Scores.Overdraft, ds.Scores.CreditLine))

	sb.WriteString("## Alerts\n\n")
	if len(ds.Alerts) == 0 {
		sb.WriteString("No alerts.\n\n")
	}
	for _, a := range ds.Alerts {
		sb.WriteString(fmt.Sprintf("- **%s** %s _(%s ago)_\n", strings.ToUpper(string(a.Severity)), a.Message, a.Age))
	}
	if len(ds.Alerts) > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString("## Statistics\n\n")
	sb.WriteString("| Column | Mean | Median | Std dev | IQR | Min | Max |\n|---|---:|---:|---:|---:|---:|---:|\n")
	writeSummaryRow(&sb, "Balance", r.Statistics.Balance.Summary)
	writeSummaryRow(&sb, "Credits", r.Statistics.Credits.Summary)
	writeSummaryRow(&sb, "Debits", r.Statistics.Debits.Summary)
	sb.WriteString(fmt.Sprintf("\nVolatility %.3f, %d positive days, %d negative days.\n\n",
		r.Statistics.Balance.Volatility, r.Statistics.Balance.DaysPositive, r.Statistics.Balance.DaysNegative))

	if years := ds.Series.Years(); len(years) > 1 {
		sb.WriteString("## Balance by year\n\n")
		sb.WriteString("| Year | Mean | Std dev | Min | Max | Negative days |\n|---|---:|---:|---:|---:|---:|\n")
		for _, y := range years {
			b := stats.SummarizeBalance(ds.Series.FilterYear(y).Balances())
			sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %d |\n",
				y, money(b.Mean), money(b.StdDev), money(b.Min), money(b.Max), b.DaysNegative))
		}
		sb.WriteString("\n")
	}

	if v := r.Variations; v.Points > 1 {
		sb.WriteString(fmt.Sprintf("Largest daily gain %s on %s, largest drop %s on %s.\n\n",
			money(v.LargestGain.Variation), v.LargestGain.Date, money(v.LargestDrop.Variation), v.LargestDrop.Date))
	}

	writeChart(&sb, "Balance trend", visuals.GenerateBalanceTrendChart(ds.Series))
	writeChart(&sb, "Balance distribution",
		visuals.GenerateHistogramChart("Balance distribution", stats.CalculateHistogram(ds.Series.Balances())))
	writeChart(&sb, fmt.Sprintf("Forecast (%d days)", len(ds.Forecast)), visuals.GenerateForecastChart(ds.Forecast))
	writeChart(&sb, fmt.Sprintf("Process behavior (%s)", r.Behavior.Status), visuals.GenerateXmRChart(r.Behavior))
	writeChart(&sb, "Daily variation (last 90 days)", visuals.GenerateVariationChart(lastDays(r.Variations.Daily, 90)))

	if len(r.Sheets) > 0 {
		sb.WriteString("## Balance sheets\n\n")
		sb.WriteString("| Year | Total assets | Equity | Autonomy % | Gearing % | Current liquidity | WCR |\n")
		sb.WriteString("|---|---:|---:|---:|---:|---:|---:|\n")
		for _, s := range r.Sheets {
			sb.WriteString(fmt.Sprintf("| %d | %s | %s | %.1f | %.1f | %.2f | %s |\n",
				s.Year, money(s.Assets.Total), money(s.Liabilities.Equity),
				s.Ratios.FinancialAutonomy, s.Ratios.Gearing, s.Ratios.CurrentLiquidity,
				money(s.Ratios.WorkingCapitalRequirement)))
		}
	}
	return sb.String()
}

// WriteFile writes the Markdown report, creating parent directories.
func (r Report) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create report directory")
	}
	return errors.Wrapf(os.WriteFile(path, []byte(r.Markdown()), 0o644), "write report %s", path)
}

func writeSummaryRow(sb *strings.Builder, name string, s stats.Summary) {
	sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
		name, money(s.Mean), money(s.Median), money(s.StdDev), money(s.IQR()), money(s.Min), money(s.Max)))
}

func lastDays(v []cashflow.Variation, n int) []cashflow.Variation {
	if len(v) <= n {
		return v
	}
	return v[len(v)-n:]
}

func writeChart(sb *strings.Builder, title, chart string) {
	if chart == "" {
		return
	}
	sb.WriteString("## " + title + "\n\n")
	sb.WriteString(chart)
	sb.WriteString("\n\n")
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
