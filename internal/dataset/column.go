package dataset

import (
	"strings"

	"cashflow-mcp/internal/cashflow"

	"github.com/pkg/errors"
)

// Column names accepted by the distribution views.
const (
	ColumnBalance = "balance"
	ColumnCredits = "credits"
	ColumnDebits  = "debits"
)

// Columns lists the accepted column names.
var Columns = []string{ColumnBalance, ColumnCredits, ColumnDebits}

var ErrUnknownColumn = errors.New("unknown column")

// Column extracts one column from a series. Names are case-insensitive and empty means balance.
func Column(series cashflow.Series, name string) (string, []float64, error) {
	column := strings.ToLower(strings.TrimSpace(name))
	switch column {
	case "", ColumnBalance:
		return ColumnBalance, series.Balances(), nil
	case ColumnCredits:
		return column, series.Credits(), nil
	case ColumnDebits:
		return column, series.Debits(), nil
	default:
		return "", nil, errors.Wrapf(ErrUnknownColumn, "%q (use %s)", name, strings.Join(Columns, ", "))
	}
}
