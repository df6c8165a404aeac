package stats

import (
	"math"
	"slices"
)

// TradingDaysPerYear annualizes daily volatility. Cash accounts move every calendar day.
const TradingDaysPerYear = 365

// Mean returns the arithmetic average, 0 for an empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	if math.IsInf(sum, 0) {
		scale := maxAbs(values)
		sum = 0
		for _, v := range values {
			sum += v / scale
		}
		return sum / float64(len(values)) * scale
	}
	return sum / float64(len(values))
}

// Median returns the middle order statistic (average of the central pair for even n).
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := sortedCopy(values)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// StdDev returns the population standard deviation around the given mean. Deviations whose
// squares overflow are rescaled by the largest one, so finite input gives a finite result.
func StdDev(values []float64, mean float64) float64 {
	if len(values) <= 1 {
		return 0
	}
	sq := 0.0
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	if !math.IsInf(sq, 0) {
		return math.Sqrt(sq / float64(len(values)))
	}

	scale := 0.0
	for _, v := range values {
		scale = math.Max(scale, math.Abs(v-mean))
	}
	sq = 0
	for _, v := range values {
		d := (v - mean) / scale
		sq += d * d
	}
	return math.Sqrt(sq/float64(len(values))) * scale
}

// Quantile interpolates linearly between the order statistics around rank (n-1)*q.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return quantileSorted(sortedCopy(values), q)
}

func quantileSorted(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	q = math.Max(0, math.Min(1, q))
	pos := float64(n-1) * q
	base := int(math.Floor(pos))
	rest := pos - float64(base)
	if base+1 < n {
		return sorted[base] + rest*(sorted[base+1]-sorted[base])
	}
	return sorted[base]
}

// Skewness is the adjusted Fisher-Pearson coefficient.
func Skewness(values []float64, mean, stdDev float64) float64 {
	n := float64(len(values))
	if len(values) <= 2 || stdDev == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		z := (v - mean) / stdDev
		sum += z * z * z
	}
	return n / ((n - 1) * (n - 2)) * sum
}

// Kurtosis is the sample excess kurtosis.
func Kurtosis(values []float64, mean, stdDev float64) float64 {
	n := float64(len(values))
	if len(values) <= 3 || stdDev == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		z := (v - mean) / stdDev
		sum += z * z * z * z
	}
	return (n*(n+1)*sum)/((n-1)*(n-2)*(n-3)) - (3*(n-1)*(n-1))/((n-2)*(n-3))
}

// RelativeChanges returns (x_t - x_{t-1}) / |x_{t-1}|, 0 where the previous value is 0.
func RelativeChanges(values []float64) []float64 {
	if len(values) <= 1 {
		return nil
	}
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev != 0 {
			out[i-1] = (values[i] - prev) / math.Abs(prev)
		}
	}
	return out
}

// Volatility is the annualized standard deviation of day-over-day relative balance changes.
func Volatility(balances []float64) float64 {
	if len(balances) <= 1 {
		return 0
	}
	changes := RelativeChanges(balances)
	return StdDev(changes, Mean(changes)) * math.Sqrt(TradingDaysPerYear)
}

// Min returns the smallest value, 0 for an empty input.
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return slices.Min(values)
}

// Max returns the largest value, 0 for an empty input.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return slices.Max(values)
}

// GaussianDensity evaluates the normal probability density at x.
func GaussianDensity(x, mean, stdDev float64) float64 {
	if stdDev == 0 {
		return 0
	}
	z := (x - mean) / stdDev
	return math.Exp(-z*z/2) / (stdDev * math.Sqrt(2*math.Pi))
}

func maxAbs(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		m = math.Max(m, math.Abs(v))
	}
	return m
}

func sortedCopy(values []float64) []float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return sorted
}
