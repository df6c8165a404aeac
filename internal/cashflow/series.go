package cashflow

// Series is a chronologically ordered run of daily points. Consumers treat it as read-only.
type Series []Point

// Balances extracts the balance column.
func (s Series) Balances() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Balance
	}
	return out
}

// Credits extracts the credits column.
func (s Series) Credits() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Credits
	}
	return out
}

// Debits extracts the debits column.
func (s Series) Debits() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Debits
	}
	return out
}

// Last returns the trailing n points (the whole series when shorter).
func (s Series) Last(n int) Series {
	if n <= 0 {
		return Series{}
	}
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}

// FilterYear keeps the points that fall in the given calendar year.
func (s Series) FilterYear(year int) Series {
	out := make(Series, 0)
	for _, p := range s {
		if p.Date.Year() == year {
			out = append(out, p)
		}
	}
	return out
}

// FilterQuarter keeps the points of quarter q (1..4). A year of 0 matches every year.
func (s Series) FilterQuarter(year, q int) Series {
	out := make(Series, 0)
	for _, p := range s {
		if year != 0 && p.Date.Year() != year {
			continue
		}
		if p.Date.Quarter() == q {
			out = append(out, p)
		}
	}
	return out
}

// Filter applies the optional year and quarter selectors. Zero means "all".
func (s Series) Filter(year, quarter int) Series {
	switch {
	case quarter != 0:
		return s.FilterQuarter(year, quarter)
	case year != 0:
		return s.FilterYear(year)
	default:
		return s
	}
}

// Years lists the distinct calendar years present, in order.
func (s Series) Years() []int {
	var years []int
	for _, p := range s {
		y := p.Date.Year()
		if len(years) == 0 || years[len(years)-1] != y {
			years = append(years, y)
		}
	}
	return years
}

// Variation is the day-over-day balance change next to the day's net flow.
type Variation struct {
	Date      Day     `json:"date"`
	Balance   float64 `json:"balance"`
	Variation float64 `json:"variation"`
	Net       float64 `json:"net"`
}

// Variations computes balance deltas; the first point has a zero variation.
func (s Series) Variations() []Variation {
	out := make([]Variation, len(s))
	for i, p := range s {
		v := Variation{Date: p.Date, Balance: p.Balance, Net: p.Net()}
		if i > 0 {
			v.Variation = p.Balance - s[i-1].Balance
		}
		out[i] = v
	}
	return out
}

// MonthlyAverage is the mean balance of one calendar month.
type MonthlyAverage struct {
	Label   string  `json:"label"`
	Balance float64 `json:"balance"`
	Days    int     `json:"days"`
}

// MonthlyAverages buckets the series by calendar month.
func (s Series) MonthlyAverages() []MonthlyAverage {
	var out []MonthlyAverage
	var sum float64
	for i, p := range s {
		label := p.Date.Format("2006-01")
		if len(out) == 0 || out[len(out)-1].Label != label {
			out = append(out, MonthlyAverage{Label: label})
			sum = 0
		}
		cur := &out[len(out)-1]
		sum += s[i].Balance
		cur.Days++
		cur.Balance = sum / float64(cur.Days)
	}
	return out
}
