package balancesheet

import (
	"cashflow-mcp/internal/cashflow"
	"cashflow-mcp/internal/simulation"
)

// Assets is the asset side of a yearly sheet.
type Assets struct {
	FixedAssets float64 `json:"fixed_assets"`
	Inventory   float64 `json:"inventory"`
	Receivables float64 `json:"receivables"`
	Treasury    float64 `json:"treasury"`
	Total       float64 `json:"total"`
}

// Liabilities is the liability side of a yearly sheet, equity included.
type Liabilities struct {
	Equity        float64 `json:"equity"`
	FinancialDebt float64 `json:"financial_debt"`
	SupplierDebt  float64 `json:"supplier_debt"`
	OtherDebt     float64 `json:"other_debt"`
	Total         float64 `json:"total"`
}

// ShortTermDebt is supplier plus other debt.
func (l Liabilities) ShortTermDebt() float64 {
	return l.SupplierDebt + l.OtherDebt
}

// Ratios are the analysis figures derived from one sheet. Percentages are expressed 0-100.
type Ratios struct {
	FinancialAutonomy         float64 `json:"financial_autonomy_pct"`
	Gearing                   float64 `json:"gearing_pct"`
	CurrentLiquidity          float64 `json:"current_liquidity"`
	QuickLiquidity            float64 `json:"quick_liquidity"`
	ImmediateLiquidity        float64 `json:"immediate_liquidity"`
	WorkingCapitalRequirement float64 `json:"working_capital_requirement"`
	Treasury                  float64 `json:"treasury"`
}

// Sheet is the derived balance sheet of one calendar year.
type Sheet struct {
	Year         int         `json:"year"`
	GrowthFactor float64     `json:"growth_factor"`
	Assets       Assets      `json:"assets"`
	Liabilities  Liabilities `json:"liabilities"`
	Ratios       Ratios      `json:"ratios"`
}

// ForYear derives the sheet of a single year from the profile and the scenario ratios.
func ForYear(profile cashflow.EntityProfile, scenario simulation.Scenario, year int) Sheet {
	growth := scenario.GrowthFactorForYear(year)
	r := scenario.BalanceSheet
	revenue := profile.AnnualRevenue

	a := Assets{
		FixedAssets: revenue * r.FixedAssets * growth,
		Inventory:   revenue * r.Inventory * growth,
		Receivables: revenue * r.Receivables * growth,
		Treasury:    profile.Metrics.Treasury * growth,
	}
	a.Total = a.FixedAssets + a.Inventory + a.Receivables + a.Treasury

	l := Liabilities{
		Equity:        revenue * r.Equity * growth,
		FinancialDebt: revenue * r.FinancialDebt * growth,
		SupplierDebt:  revenue * r.SupplierDebt * growth,
		OtherDebt:     revenue * r.OtherLiabilities * growth,
	}
	l.Total = l.Equity + l.FinancialDebt + l.SupplierDebt + l.OtherDebt

	return Sheet{
		Year:         year,
		GrowthFactor: growth,
		Assets:       a,
		Liabilities:  l,
		Ratios:       CalculateRatios(a, l),
	}
}

// CalculateRatios computes the liquidity and structure ratios. A zero denominator yields 0.
func CalculateRatios(a Assets, l Liabilities) Ratios {
	shortTerm := l.ShortTermDebt()
	return Ratios{
		FinancialAutonomy:         safeDiv(l.Equity, l.Total) * 100,
		Gearing:                   safeDiv(l.FinancialDebt, l.Equity) * 100,
		CurrentLiquidity:          safeDiv(a.Inventory+a.Receivables+a.Treasury, shortTerm),
		QuickLiquidity:            safeDiv(a.Receivables+a.Treasury, shortTerm),
		ImmediateLiquidity:        safeDiv(a.Treasury, shortTerm),
		WorkingCapitalRequirement: a.Inventory + a.Receivables - shortTerm,
		Treasury:                  a.Treasury,
	}
}

// Build returns one sheet per scenario year, earliest first.
func Build(profile cashflow.EntityProfile, scenario simulation.Scenario) []Sheet {
	sheets := make([]Sheet, 0, scenario.Years)
	for period := 0; period < scenario.Years; period++ {
		sheets = append(sheets, ForYear(profile, scenario, scenario.PeriodYear(period)))
	}
	return sheets
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
