package stats

// Summary is the location and dispersion record shared by every analyzed column.
type Summary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
}

// IQR is Q3-Q1.
func (s Summary) IQR() float64 {
	return s.Q3 - s.Q1
}

// FlowSummary describes a credits or debits column.
type FlowSummary struct {
	Summary
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
}

// BalanceSummary describes the balance column.
type BalanceSummary struct {
	Summary
	Volatility   float64 `json:"volatility"`
	DaysPositive int     `json:"days_positive"`
	DaysNegative int     `json:"days_negative"`
}

// Describe computes the shared location and dispersion statistics.
func Describe(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	mean := Mean(values)
	sorted := sortedCopy(values)
	return Summary{
		Mean:   mean,
		Median: Median(sorted),
		StdDev: StdDev(values, mean),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     quantileSorted(sorted, 0.25),
		Q3:     quantileSorted(sorted, 0.75),
	}
}

// SummarizeFlow adds the shape statistics to the description of a flow column.
func SummarizeFlow(values []float64) FlowSummary {
	s := Describe(values)
	return FlowSummary{
		Summary:  s,
		Skewness: Skewness(values, s.Mean, s.StdDev),
		Kurtosis: Kurtosis(values, s.Mean, s.StdDev),
	}
}

// SummarizeBalance adds volatility and day counts. A zero balance counts as a negative day.
func SummarizeBalance(values []float64) BalanceSummary {
	res := BalanceSummary{
		Summary:    Describe(values),
		Volatility: Volatility(values),
	}
	for _, v := range values {
		if v > 0 {
			res.DaysPositive++
		} else {
			res.DaysNegative++
		}
	}
	return res
}
