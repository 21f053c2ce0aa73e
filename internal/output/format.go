// Package output renders ranking tables for the console and for
// machine consumption.
package output

import (
	"fmt"

	"github.com/polisim/polisim/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders a ranking table into a textual report.
type Formatter interface {
	Format(table *domain.RankingTable) (string, error)
	Name() string
}

// GetFormatterByName resolves a format flag value to a formatter.
func GetFormatterByName(name string) (Formatter, error) {
	switch name {
	case "table", "console", "":
		return &TableFormatter{}, nil
	case "csv":
		return &CSVFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", name)
	}
}

// FormatCurrency renders a yen amount with thousands separators and no
// fractional digits.
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.StringFixed(0)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return "¥" + s
}

// FormatPercent renders a fractional rate as a percentage with two
// decimals.
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// FormatIRR renders the IRR column, with a dash when the solver found
// no solution.
func FormatIRR(irr decimal.Decimal, valid bool) string {
	if !valid {
		return "-"
	}
	return FormatPercent(irr)
}
