package stats

import (
	"math"
)

// XmRResult represents the output of a Process Behavior Chart over a balance series.
type XmRResult struct {
	Average     float64   `json:"average"`
	AmR         float64   `json:"average_moving_range"`
	UNPL        float64   `json:"upper_natural_process_limit"`
	LNPL        float64   `json:"lower_natural_process_limit"`
	Values      []float64 `json:"values"`
	MovingRange []float64 `json:"moving_ranges"`
	Signals     []Signal  `json:"signals"`
}

// Signal represents a detected special cause variation.
type Signal struct {
	Index       int    `json:"index"`
	Key         string `json:"key,omitempty"`
	Type        string `json:"type"` // "outlier", "shift"
	Description string `json:"description"`
}

// BehaviorResult wraps the chart with a one-word verdict.
type BehaviorResult struct {
	XmR    XmRResult `json:"xmr"`
	Status string    `json:"status"` // "stable", "unstable"
}

// CalculateXmRWithKeys performs the math for an Individuals and Moving Range chart and binds keys
// (usually ISO dates) to the detected signals. Balances may be negative, so the lower limit is not
// floored at zero. Empty input gives empty slices, never nil ones.
func CalculateXmRWithKeys(values []float64, keys []string) XmRResult {
	if len(values) == 0 {
		return XmRResult{
			Values:      []float64{},
			MovingRange: []float64{},
			Signals:     []Signal{},
		}
	}

	result := XmRResult{
		Values:      values,
		Average:     Mean(values),
		MovingRange: []float64{},
	}

	if len(values) > 1 {
		mrSum := 0.0
		result.MovingRange = make([]float64, len(values)-1)
		for i := 0; i < len(values)-1; i++ {
			mr := math.Abs(values[i+1] - values[i])
			result.MovingRange[i] = mr
			mrSum += mr
		}
		result.AmR = mrSum / float64(len(values)-1)
	}

	// Wheeler's scaling constant for Individuals is 2.66
	result.UNPL = result.Average + (2.66 * result.AmR)
	result.LNPL = result.Average - (2.66 * result.AmR)

	result.Signals = detectSignals(values, result.Average, result.UNPL, result.LNPL, keys)

	return result
}

// AnalyzeBalanceBehavior runs the XmR chart and reports "unstable" when any signal fires.
func AnalyzeBalanceBehavior(values []float64, keys []string) BehaviorResult {
	xmr := CalculateXmRWithKeys(values, keys)
	status := "stable"
	if len(xmr.Signals) > 0 {
		status = "unstable"
	}
	return BehaviorResult{XmR: xmr, Status: status}
}

func detectSignals(values []float64, avg, unpl, lnpl float64, keys []string) []Signal {
	signals := []Signal{}

	keyAt := func(i int) string {
		if i < len(keys) {
			return keys[i]
		}
		return ""
	}

	for i, v := range values {
		if v > unpl {
			signals = append(signals, Signal{
				Index:       i,
				Key:         keyAt(i),
				Type:        "outlier",
				Description: "Balance above Upper Natural Process Limit (UNPL)",
			})
		} else if v < lnpl {
			signals = append(signals, Signal{
				Index:       i,
				Key:         keyAt(i),
				Type:        "outlier",
				Description: "Balance below Lower Natural Process Limit (LNPL)",
			})
		}
	}

	if len(values) >= 8 {
		side := 0
		count := 0
		for i, v := range values {
			currentSide := 0
			if v > avg {
				currentSide = 1
			} else if v < avg {
				currentSide = -1
			}

			if currentSide == side && currentSide != 0 {
				count++
			} else {
				side = currentSide
				count = 1
			}

			if count == 8 {
				signals = append(signals, Signal{
					Index:       i,
					Key:         keyAt(i),
					Type:        "shift",
					Description: "8 consecutive days on one side of the average balance (level shift)",
				})
			}
		}
	}

	return signals
}
