package dataset

import "cashflow-mcp/internal/cashflow"

// Variations is the day-over-day balance movement of a window.
type Variations struct {
	Points      int                  `json:"points"`
	LargestGain cashflow.Variation   `json:"largest_gain"`
	LargestDrop cashflow.Variation   `json:"largest_drop"`
	Daily       []cashflow.Variation `json:"daily"`
}

// ComputeVariations lists the daily balance deltas and picks the extreme moves. The first day has
// no predecessor and never counts as a move.
func ComputeVariations(series cashflow.Series) Variations {
	daily := series.Variations()
	res := Variations{Points: len(daily), Daily: daily}
	for i := 1; i < len(daily); i++ {
		v := daily[i]
		if i == 1 || v.Variation > res.LargestGain.Variation {
			res.LargestGain = v
		}
		if i == 1 || v.Variation < res.LargestDrop.Variation {
			res.LargestDrop = v
		}
	}
	return res
}
