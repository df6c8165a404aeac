package scoring

import (
	"math"

	"cashflow-mcp/internal/cashflow"
	"cashflow-mcp/internal/stats"
)

const (
	MinScore = 1.0
	MaxScore = 10.0

	// overdraftDaysPerPoint maps a full year of overdraft days to a 10-point penalty.
	overdraftDaysPerPoint = 36.5
)

// ScoreSet holds the derived quality scores, each in [1, 10] with one decimal.
type ScoreSet struct {
	Stability  float64 `json:"stability"`
	Overdraft  float64 `json:"overdraft"`
	CreditLine float64 `json:"credit_line"`
}

// Scorer derives a ScoreSet from a generated series.
type Scorer interface {
	Score(profile cashflow.EntityProfile, series cashflow.Series) ScoreSet
}

// DispersionMeasure selects how balance instability feeds the stability score.
type DispersionMeasure string

const (
	// MeasureVolatility uses the annualized volatility of relative daily changes.
	MeasureVolatility DispersionMeasure = "volatility"
	// MeasureCoefficientOfVariation uses std dev / |mean| of the balances.
	MeasureCoefficientOfVariation DispersionMeasure = "coefficient_of_variation"
)

// DefaultScorer implements the reference heuristics.
type DefaultScorer struct {
	Measure DispersionMeasure
}

// Score computes stability, overdraft and credit-line scores.
func (s DefaultScorer) Score(profile cashflow.EntityProfile, series cashflow.Series) ScoreSet {
	balances := series.Balances()

	dispersion := Dispersion(balances, s.Measure)
	stability := Clamp(10-10*dispersion, MinScore, MaxScore)

	negative := CountNegative(balances)
	overdraft := Clamp(10-float64(negative)/overdraftDaysPerPoint, MinScore, MaxScore)

	utilization := 0.0
	if monthly := profile.MonthlyRevenue(); monthly != 0 {
		utilization = math.Abs(stats.Min(balances)) / monthly
	}
	creditLine := Clamp(5+5*utilization, MinScore, MaxScore)

	return ScoreSet{
		Stability:  RoundTenth(stability),
		Overdraft:  RoundTenth(overdraft),
		CreditLine: RoundTenth(creditLine),
	}
}

// Dispersion evaluates the chosen instability measure over balances.
func Dispersion(balances []float64, measure DispersionMeasure) float64 {
	if measure == MeasureCoefficientOfVariation {
		return CoefficientOfVariation(balances)
	}
	return stats.Volatility(balances)
}

// CoefficientOfVariation is std dev / |mean|, 0 when the mean is 0.
func CoefficientOfVariation(values []float64) float64 {
	mean := stats.Mean(values)
	if mean == 0 {
		return 0
	}
	return stats.StdDev(values, mean) / math.Abs(mean)
}

// CountNegative counts strictly negative balances.
func CountNegative(balances []float64) int {
	n := 0
	for _, b := range balances {
		if b < 0 {
			n++
		}
	}
	return n
}

// Clamp bounds v to [lo, hi]. NaN collapses to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// RoundTenth rounds to one decimal place.
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
