package stats

import (
	"math"
)

// DefaultCurveSteps is the resolution of the Gaussian curve drawn under a balance distribution.
const DefaultCurveSteps = 100

// HistogramBin is one Sturges class with the theoretical normal count at its center.
type HistogramBin struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Center  float64 `json:"center"`
	Count   int     `json:"count"`
	Density float64 `json:"density"` // pdf(center) * n * width, comparable to Count
}

// GaussianPoint is a sample of the fitted normal density.
type GaussianPoint struct {
	Value   float64 `json:"value"`
	Density float64 `json:"density"`
}

// SturgesBins returns ceil(1 + 3.322*log10(n)).
func SturgesBins(n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Ceil(1 + 3.322*math.Log10(float64(n))))
}

// CalculateHistogram bins values with Sturges' rule over [min, max] and overlays the normal
// density fitted with the series' own mean and standard deviation.
func CalculateHistogram(values []float64) []HistogramBin {
	n := len(values)
	if n == 0 {
		return nil
	}

	mean := Mean(values)
	sd := StdDev(values, mean)
	lo, hi := Min(values), Max(values)

	// Constant input: every observation lands in a single zero-width bin.
	if hi == lo {
		return []HistogramBin{{
			Start:   lo,
			End:     hi,
			Center:  lo,
			Count:   n,
			Density: 0,
		}}
	}

	k := SturgesBins(n)
	width := (hi - lo) / float64(k)

	bins := make([]HistogramBin, k)
	for i := range bins {
		start := lo + float64(i)*width
		end := lo + float64(i+1)*width
		center := (start + end) / 2
		bins[i] = HistogramBin{
			Start:   start,
			End:     end,
			Center:  center,
			Density: GaussianDensity(center, mean, sd) * float64(n) * width,
		}
	}

	for _, v := range values {
		idx := int(math.Floor((v - lo) / width))
		if idx >= k {
			idx = k - 1
		}
		if idx < 0 {
			idx = 0
		}
		bins[idx].Count++
	}

	return bins
}

// GaussianCurve samples the fitted normal density from min to max in the given number of steps.
func GaussianCurve(values []float64, steps int) []GaussianPoint {
	if len(values) == 0 {
		return nil
	}
	if steps <= 0 {
		steps = DefaultCurveSteps
	}

	mean := Mean(values)
	sd := StdDev(values, mean)
	lo, hi := Min(values), Max(values)
	if hi == lo {
		return []GaussianPoint{{Value: lo, Density: GaussianDensity(lo, mean, sd)}}
	}

	step := (hi - lo) / float64(steps)
	points := make([]GaussianPoint, 0, steps+1)
	for i := 0; i <= steps; i++ {
		x := lo + float64(i)*step
		points = append(points, GaussianPoint{Value: x, Density: GaussianDensity(x, mean, sd)})
	}
	return points
}
