package simulation

import (
	"fmt"
	"time"
)

// Scenario gathers the constants that shape a generated history. Alternative scenarios can
// be loaded from a file without touching the generator.
type Scenario struct {
	Name          string    `json:"name" mapstructure:"name"`
	StartYear     int       `json:"start_year" mapstructure:"start_year"`
	Years         int       `json:"years" mapstructure:"years"`
	DaysPerYear   int       `json:"days_per_year" mapstructure:"days_per_year"`
	GrowthFactors []float64 `json:"growth_factors" mapstructure:"growth_factors"` // earliest period first

	BalanceRatio  float64 `json:"balance_ratio" mapstructure:"balance_ratio"`   // x monthly revenue
	BalanceSpread float64 `json:"balance_spread" mapstructure:"balance_spread"` // std dev as a share of the mean
	CreditRatio   float64 `json:"credit_ratio" mapstructure:"credit_ratio"`     // x monthly revenue, per day
	DebitRatio    float64 `json:"debit_ratio" mapstructure:"debit_ratio"`       // x monthly revenue, per day
	FlowSpread    float64 `json:"flow_spread" mapstructure:"flow_spread"`

	BalanceSheet BalanceSheetRatios `json:"balance_sheet" mapstructure:"balance_sheet"`
}

// BalanceSheetRatios express each derived balance-sheet line as a share of annual revenue.
type BalanceSheetRatios struct {
	FixedAssets      float64 `json:"fixed_assets" mapstructure:"fixed_assets"`
	Inventory        float64 `json:"inventory" mapstructure:"inventory"`
	Receivables      float64 `json:"receivables" mapstructure:"receivables"`
	Equity           float64 `json:"equity" mapstructure:"equity"`
	FinancialDebt    float64 `json:"financial_debt" mapstructure:"financial_debt"`
	SupplierDebt     float64 `json:"supplier_debt" mapstructure:"supplier_debt"`
	OtherLiabilities float64 `json:"other_liabilities" mapstructure:"other_liabilities"`
}

// DefaultScenario covers 2022-2024 with 365 days per period.
func DefaultScenario() Scenario {
	return Scenario{
		Name:          "default",
		StartYear:     2022,
		Years:         3,
		DaysPerYear:   365,
		GrowthFactors: []float64{0.85, 0.92, 1.0},
		BalanceRatio:  0.2,
		BalanceSpread: 0.3,
		CreditRatio:   1.0 / 30,
		DebitRatio:    0.95 / 30,
		FlowSpread:    0.2,
		BalanceSheet: BalanceSheetRatios{
			FixedAssets:      0.4,
			Inventory:        0.15,
			Receivables:      0.25,
			Equity:           0.35,
			FinancialDebt:    0.3,
			SupplierDebt:     0.2,
			OtherLiabilities: 0.15,
		},
	}
}

// Validate rejects scenarios the generator cannot honour.
func (s Scenario) Validate() error {
	if s.Years <= 0 {
		return fmt.Errorf("scenario %q: years must be positive, got %d", s.Name, s.Years)
	}
	if s.DaysPerYear <= 0 {
		return fmt.Errorf("scenario %q: days_per_year must be positive, got %d", s.Name, s.DaysPerYear)
	}
	if len(s.GrowthFactors) != s.Years {
		return fmt.Errorf("scenario %q: %d growth factors for %d years", s.Name, len(s.GrowthFactors), s.Years)
	}
	for i, g := range s.GrowthFactors {
		if g < 0 {
			return fmt.Errorf("scenario %q: growth factor %d is negative", s.Name, i)
		}
	}
	for name, v := range map[string]float64{
		"balance_ratio":  s.BalanceRatio,
		"balance_spread": s.BalanceSpread,
		"credit_ratio":   s.CreditRatio,
		"debit_ratio":    s.DebitRatio,
		"flow_spread":    s.FlowSpread,
	} {
		if v < 0 {
			return fmt.Errorf("scenario %q: %s must not be negative", s.Name, name)
		}
	}
	return nil
}

// StartDate is January 1st of the first period, in UTC.
func (s Scenario) StartDate() time.Time {
	return time.Date(s.StartYear, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// TotalDays is the length of a generated series.
func (s Scenario) TotalDays() int {
	return s.Years * s.DaysPerYear
}

// PeriodYear maps a period index to the calendar year it starts in.
func (s Scenario) PeriodYear(period int) int {
	return s.StartYear + period
}

// GrowthFactor returns the factor of the period, 1 when out of range.
func (s Scenario) GrowthFactor(period int) float64 {
	if period < 0 || period >= len(s.GrowthFactors) {
		return 1
	}
	return s.GrowthFactors[period]
}

// GrowthFactorForYear returns the factor of the period starting in the given calendar year.
func (s Scenario) GrowthFactorForYear(year int) float64 {
	return s.GrowthFactor(year - s.StartYear)
}
