package scoring

import (
	"fmt"

	"cashflow-mcp/internal/cashflow"
)

// Severity of an advisory alert.
type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Stable rule identifiers.
const (
	AlertOverdraftDays    = "overdraft-days"
	AlertHighVolatility   = "high-volatility"
	AlertCreditLineAdvice = "credit-line-advice"
)

// Alert is a threshold-triggered advisory. Age is a static label, not derived from the clock.
type Alert struct {
	ID       string   `json:"id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Age      string   `json:"age"`
}

// Advisor derives alerts from a series.
type Advisor interface {
	Alerts(profile cashflow.EntityProfile, series cashflow.Series) []Alert
}

// AlertPolicy holds the thresholds of the reference rules.
type AlertPolicy struct {
	Window            int               `json:"window" mapstructure:"window"`
	MaxOverdraftDays  int               `json:"max_overdraft_days" mapstructure:"max_overdraft_days"`
	VolatilityWarning float64           `json:"volatility_warning" mapstructure:"volatility_warning"`
	VolatilityAdvice  float64           `json:"volatility_advice" mapstructure:"volatility_advice"`
	RevolvingService  string            `json:"revolving_service" mapstructure:"revolving_service"`
	Measure           DispersionMeasure `json:"measure" mapstructure:"measure"`
}

// DefaultAlertPolicy returns the reference thresholds over a 30-day window.
func DefaultAlertPolicy() AlertPolicy {
	return AlertPolicy{
		Window:            30,
		MaxOverdraftDays:  5,
		VolatilityWarning: 0.2,
		VolatilityAdvice:  0.15,
		RevolvingService:  "Credit Line",
		Measure:           MeasureVolatility,
	}
}

// DefaultAdvisor evaluates the danger, warning and info rules in that order.
type DefaultAdvisor struct {
	Policy AlertPolicy
}

// NewAdvisor creates an advisor with the default policy.
func NewAdvisor() DefaultAdvisor {
	return DefaultAdvisor{Policy: DefaultAlertPolicy()}
}

// Alerts evaluates the trailing window. Each rule fires independently.
func (a DefaultAdvisor) Alerts(profile cashflow.EntityProfile, series cashflow.Series) []Alert {
	policy := a.Policy
	if policy.Window <= 0 {
		policy.Window = DefaultAlertPolicy().Window
	}

	recent := series.Last(policy.Window).Balances()
	alerts := make([]Alert, 0, 3)

	if overdrafts := CountNegative(recent); overdrafts > policy.MaxOverdraftDays {
		alerts = append(alerts, Alert{
			ID:       AlertOverdraftDays,
			Severity: SeverityDanger,
			Message:  fmt.Sprintf("%d overdraft days over the last %d days", overdrafts, policy.Window),
			Age:      "2 hours",
		})
	}

	volatility := Dispersion(recent, policy.Measure)
	if volatility > policy.VolatilityWarning {
		alerts = append(alerts, Alert{
			ID:       AlertHighVolatility,
			Severity: SeverityWarning,
			Message:  "High balance volatility detected - a credit line is recommended",
			Age:      "5 hours",
		})
	}

	if !profile.HasService(policy.RevolvingService) && volatility > policy.VolatilityAdvice {
		alerts = append(alerts, Alert{
			ID:       AlertCreditLineAdvice,
			Severity: SeverityInfo,
			Message:  "A credit line is recommended given the recent cash-flow pattern",
			Age:      "1 day",
		})
	}

	return alerts
}
