package visuals

import (
	"fmt"
	"math"
	"strings"

	"cashflow-mcp/internal/cashflow"
	"cashflow-mcp/internal/forecast"
	"cashflow-mcp/internal/stats"
)

// maxPoints is where Mermaid's xychart layout starts overlapping labels.
const maxPoints = 60

// GenerateHistogramChart creates a Mermaid xychart-beta with bin counts as bars and the
// theoretical normal counts as a line.
func GenerateHistogramChart(title string, bins []stats.HistogramBin) string {
	if len(bins) == 0 {
		return ""
	}

	var labels, counts, expected []string
	maxVal := 0.0
	for _, b := range bins {
		labels = append(labels, fmt.Sprintf("\"%s\"", compact(b.Center)))
		counts = append(counts, fmt.Sprintf("%d", b.Count))
		expected = append(expected, fmt.Sprintf("%.1f", b.Density))
		maxVal = math.Max(maxVal, math.Max(float64(b.Count), b.Density))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"%s\"\n", title))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Days\" 0 --> %d\n", int(math.Ceil(math.Max(1, maxVal*1.2)))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(counts, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(expected, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateForecastChart plots the predicted balance and its confidence band.
func GenerateForecastChart(points []forecast.Point) string {
	if len(points) == 0 {
		return ""
	}

	rate := subsampleRate(len(points))
	var labels, predicted, upper, lower []string
	var all []float64
	for i, p := range points {
		if i%rate != 0 && i != len(points)-1 {
			continue
		}
		labels = append(labels, fmt.Sprintf("\"%s\"", p.Date.Format("Jan02")))
		predicted = append(predicted, fmt.Sprintf("%.0f", p.PredictedBalance))
		upper = append(upper, fmt.Sprintf("%.0f", p.UpperBound))
		lower = append(lower, fmt.Sprintf("%.0f", p.LowerBound))
		all = append(all, p.UpperBound, p.LowerBound)
	}

	lo, hi := axisRange(all)
	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Balance Forecast (95% band)\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Balance\" %d --> %d\n", lo, hi))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(predicted, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(upper, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(lower, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateBalanceTrendChart plots the monthly average balance of a series.
func GenerateBalanceTrendChart(series cashflow.Series) string {
	months := series.MonthlyAverages()
	if len(months) == 0 {
		return ""
	}

	rate := subsampleRate(len(months))
	var labels, values []string
	var all []float64
	for i, m := range months {
		if i%rate != 0 && i != len(months)-1 {
			continue
		}
		labels = append(labels, fmt.Sprintf("\"%s\"", m.Label))
		values = append(values, fmt.Sprintf("%.0f", m.Balance))
		all = append(all, m.Balance)
	}

	lo, hi := axisRange(all)
	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Average Balance per Month\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Balance\" %d --> %d\n", lo, hi))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateVariationChart shows the day-over-day balance change as bars with the net flow as a line.
func GenerateVariationChart(variations []cashflow.Variation) string {
	if len(variations) == 0 {
		return ""
	}

	rate := subsampleRate(len(variations))
	var labels, deltas, nets []string
	var all []float64
	for i, v := range variations {
		if i%rate != 0 && i != len(variations)-1 {
			continue
		}
		labels = append(labels, fmt.Sprintf("\"%s\"", v.Date.Format("Jan02")))
		deltas = append(deltas, fmt.Sprintf("%.0f", v.Variation))
		nets = append(nets, fmt.Sprintf("%.0f", v.Net))
		all = append(all, v.Variation, v.Net)
	}

	lo, hi := axisRange(all)
	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Daily Balance Variation\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Variation\" %d --> %d\n", lo, hi))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(deltas, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(nets, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateXmRChart creates a Mermaid xychart-beta for balance behavior (individuals with
// natural process limits).
func GenerateXmRChart(result stats.BehaviorResult) string {
	xmr := result.XmR
	if len(xmr.Values) == 0 {
		return ""
	}

	rate := subsampleRate(len(xmr.Values))
	var labels, values, averages, unpls, lnpls []string
	average := fmt.Sprintf("%.0f", xmr.Average)
	unpl := fmt.Sprintf("%.0f", xmr.UNPL)
	lnpl := fmt.Sprintf("%.0f", xmr.LNPL)

	for i, v := range xmr.Values {
		if i%rate != 0 && i != len(xmr.Values)-1 {
			continue
		}
		labels = append(labels, fmt.Sprintf("%d", i+1))
		values = append(values, fmt.Sprintf("%.0f", v))
		averages = append(averages, average)
		unpls = append(unpls, unpl)
		lnpls = append(lnpls, lnpl)
	}

	lo, hi := axisRange(append([]float64{xmr.UNPL, xmr.LNPL}, xmr.Values...))
	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"Balance Behavior (XmR, %s)\"\n", result.Status))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Balance\" %d --> %d\n", lo, hi))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(averages, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(unpls, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(lnpls, ", ")))
	sb.WriteString("```")
	return sb.String()
}

func subsampleRate(n int) int {
	if n <= maxPoints {
		return 1
	}
	return int(math.Ceil(float64(n) / maxPoints))
}

// axisRange pads [min, max] by 10% of the span, keeping 0 in view for all-positive data.
func axisRange(values []float64) (int, int) {
	lo, hi := stats.Min(values), stats.Max(values)
	pad := math.Max(1, (hi-lo)*0.1)
	if lo >= 0 {
		lo = 0
	} else {
		lo -= pad
	}
	return int(math.Floor(lo)), int(math.Ceil(hi + pad))
}

// compact renders large magnitudes with a k/M suffix for axis labels.
func compact(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.0fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
