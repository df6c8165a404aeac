package cashflow

import (
	"strings"
	"time"
)

// DateLayout is the calendar-day format used on the wire.
const DateLayout = "2006-01-02"

// FinancialMetrics holds the named annual magnitudes of an entity, in currency units.
type FinancialMetrics struct {
	CommercialMargin       float64 `json:"commercial_margin" mapstructure:"commercial_margin"`
	Production             float64 `json:"production" mapstructure:"production"`
	ValueAdded             float64 `json:"value_added" mapstructure:"value_added"`
	EBITDA                 float64 `json:"ebitda" mapstructure:"ebitda"`
	OperatingResult        float64 `json:"operating_result" mapstructure:"operating_result"`
	NetResult              float64 `json:"net_result" mapstructure:"net_result"`
	SelfFinancingCapacity  float64 `json:"self_financing_capacity" mapstructure:"self_financing_capacity"`
	WorkingCapitalRequired float64 `json:"working_capital_required" mapstructure:"working_capital_required"`
	Treasury               float64 `json:"treasury" mapstructure:"treasury"`
}

// EntityProfile describes the business entity a series is generated for.
type EntityProfile struct {
	ID             string           `json:"id" mapstructure:"id"`
	Name           string           `json:"name" mapstructure:"name"`
	RegistrationID string           `json:"registration_id,omitempty" mapstructure:"registration_id"`
	Sector         string           `json:"sector" mapstructure:"sector"`
	AnnualRevenue  float64          `json:"annual_revenue" mapstructure:"annual_revenue"`
	Services       []string         `json:"services" mapstructure:"services"`
	Metrics        FinancialMetrics `json:"metrics" mapstructure:"metrics"`
}

// MonthlyRevenue is the monthly-revenue-equivalent every generator mean is proportional to.
func (p EntityProfile) MonthlyRevenue() float64 {
	return p.AnnualRevenue / 12
}

// HasService reports whether the entity subscribes to the named service (case-insensitive).
func (p EntityProfile) HasService(name string) bool {
	for _, s := range p.Services {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return true
		}
	}
	return false
}

// Day is a calendar day that marshals as ISO-8601 (YYYY-MM-DD).
type Day struct {
	time.Time
}

// NewDay truncates t to its calendar day in UTC.
func NewDay(t time.Time) Day {
	return Day{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Day{}, err
	}
	return Day{t}, nil
}

func (d Day) String() string {
	return d.Format(DateLayout)
}

// AddDays returns the day n calendar days later.
func (d Day) AddDays(n int) Day {
	return Day{d.AddDate(0, 0, n)}
}

// Quarter returns 1..4.
func (d Day) Quarter() int {
	return (int(d.Month())-1)/3 + 1
}

func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Day) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Day{}
		return nil
	}
	// Full RFC 3339 timestamps are truncated to their day.
	if len(s) > len(DateLayout) {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
		*d = NewDay(t)
		return nil
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Point is one daily cash-flow observation.
type Point struct {
	Date    Day     `json:"date"`
	Balance float64 `json:"balance"`
	Credits float64 `json:"credits"`
	Debits  float64 `json:"debits"`
}

// Net is the day's credits minus debits.
func (p Point) Net() float64 {
	return p.Credits - p.Debits
}
