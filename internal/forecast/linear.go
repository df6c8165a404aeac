package forecast

import (
	"cashflow-mcp/internal/cashflow"
	"cashflow-mcp/internal/stats"
)

const (
	// DefaultHorizon is the number of days projected past the last observation.
	DefaultHorizon = 30
	// ConfidenceZ is the two-sided 95% normal quantile.
	ConfidenceZ = 1.96
)

// Line is an ordinary least-squares fit y = Slope*x + Intercept.
type Line struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// At evaluates the line.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// Point is one projected day.
type Point struct {
	Date             cashflow.Day `json:"date"`
	PredictedBalance float64      `json:"predicted_balance"`
	UpperBound       float64      `json:"upper_bound"`
	LowerBound       float64      `json:"lower_bound"`
}

// Result bundles the fitted trend, its residual dispersion and the projected points.
type Result struct {
	Line           Line    `json:"line"`
	ResidualStdDev float64 `json:"residual_std_dev"`
	HalfWidth      float64 `json:"half_width"`
	Points         []Point `json:"points"`
}

// FitLinear fits a least-squares line through (i, y[i]).
func FitLinear(y []float64) Line {
	n := len(y)
	switch n {
	case 0:
		return Line{}
	case 1:
		return Line{Intercept: y[0]}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	fn := float64(n)
	den := fn*sumXX - sumX*sumX
	if den == 0 {
		return Line{Intercept: sumY / fn}
	}
	slope := (fn*sumXY - sumX*sumY) / den
	return Line{
		Slope:     slope,
		Intercept: (sumY - slope*sumX) / fn,
	}
}

// Residuals returns actual minus fitted values.
func Residuals(y []float64, line Line) []float64 {
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = v - line.At(float64(i))
	}
	return out
}

// Project fits a linear trend to the balance history and extends it horizon days past the last
// observation with a symmetric 95% band. Histories shorter than two points are projected flat
// at the last observed balance with no band.
func Project(series cashflow.Series, horizon int) Result {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	n := len(series)
	if n == 0 {
		return Result{Points: []Point{}}
	}

	balances := series.Balances()
	last := series[n-1].Date

	var res Result
	if n < 2 {
		res.Line = Line{Intercept: balances[n-1]}
	} else {
		res.Line = FitLinear(balances)
		residuals := Residuals(balances, res.Line)
		// Residuals of an OLS fit with intercept average to zero.
		res.ResidualStdDev = stats.StdDev(residuals, 0)
		res.HalfWidth = ConfidenceZ * res.ResidualStdDev
	}

	res.Points = make([]Point, horizon)
	for i := 0; i < horizon; i++ {
		predicted := res.Line.At(float64(n + i))
		res.Points[i] = Point{
			Date:             last.AddDays(i + 1),
			PredictedBalance: predicted,
			UpperBound:       predicted + res.HalfWidth,
			LowerBound:       predicted - res.HalfWidth,
		}
	}
	return res
}
