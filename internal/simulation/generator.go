package simulation

import (
	"math"

	"cashflow-mcp/internal/cashflow"

	"github.com/rs/zerolog/log"
)

// Generator produces daily cash-flow histories from a scenario and a normal sampler.
type Generator struct {
	scenario Scenario
	sampler  Sampler
}

// periodParams are the per-period targets derived from the profile and the growth factor.
type periodParams struct {
	meanBalance, sdBalance float64
	meanCredits, sdCredits float64
	meanDebits, sdDebits   float64
}

// NewGenerator creates a generator. The scenario is expected to be valid.
func NewGenerator(scenario Scenario, sampler Sampler) *Generator {
	return &Generator{
		scenario: scenario,
		sampler:  sampler,
	}
}

// NewSeededGenerator is a convenience for a Box-Muller generator with a fixed seed.
func NewSeededGenerator(scenario Scenario, seed int64) *Generator {
	return NewGenerator(scenario, NewSampler(seed))
}

func (g *Generator) params(profile cashflow.EntityProfile, period int) periodParams {
	monthly := math.Max(0, profile.MonthlyRevenue())
	growth := g.scenario.GrowthFactor(period)

	p := periodParams{
		meanBalance: monthly * g.scenario.BalanceRatio * growth,
		meanCredits: monthly * g.scenario.CreditRatio * growth,
		meanDebits:  monthly * g.scenario.DebitRatio * growth,
	}
	p.sdBalance = p.meanBalance * g.scenario.BalanceSpread
	p.sdCredits = p.meanCredits * g.scenario.FlowSpread
	p.sdDebits = p.meanDebits * g.scenario.FlowSpread
	return p
}

// Generate produces one point per calendar day, starting on January 1st of the scenario's
// start year, with no gaps. Each day blends yesterday's balance, today's net flow and a freshly
// sampled target balance, which keeps the trajectory noisy but mean-reverting.
func (g *Generator) Generate(profile cashflow.EntityProfile) cashflow.Series {
	total := g.scenario.TotalDays()
	if total <= 0 {
		return cashflow.Series{}
	}

	start := cashflow.NewDay(g.scenario.StartDate())
	series := make(cashflow.Series, 0, total)

	period := -1
	var p periodParams
	previous := g.params(profile, 0).meanBalance

	for d := 0; d < total; d++ {
		if cur := d / g.scenario.DaysPerYear; cur != period {
			period = cur
			p = g.params(profile, period)
		}

		credits := math.Max(0, g.sampler.Normal(p.meanCredits, p.sdCredits))
		debits := math.Max(0, g.sampler.Normal(p.meanDebits, p.sdDebits))
		target := g.sampler.Normal(p.meanBalance, p.sdBalance)
		balance := (previous + credits - debits + target) / 2

		series = append(series, cashflow.Point{
			Date:    start.AddDays(d),
			Balance: balance,
			Credits: credits,
			Debits:  debits,
		})
		previous = balance
	}

	log.Debug().
		Str("entity", profile.ID).
		Str("scenario", g.scenario.Name).
		Int("points", len(series)).
		Msg("Generated cash-flow series")

	return series
}
