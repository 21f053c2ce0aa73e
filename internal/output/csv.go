package output

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/polisim/polisim/internal/domain"
)

// CSVFormatter renders the ranking as RFC 4180 CSV with a header row.
// Amounts are plain decimal strings so spreadsheets parse them as
// numbers.
type CSVFormatter struct{}

// Name returns the format flag value this formatter answers to.
func (cf *CSVFormatter) Name() string { return "csv" }

// Format renders the table.
func (cf *CSVFormatter) Format(table *domain.RankingTable) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	header := []string{
		"rank", "strategy", "net_benefit", "terminal_balance",
		"reinvested_value", "contributions", "total_fees",
		"tax_savings", "one_time_tax", "effective_annual_return",
		"irr", "irr_valid",
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, e := range table.Entries {
		irr := ""
		if e.IRRValid {
			irr = e.IRR.String()
		}
		row := []string{
			strconv.Itoa(e.Rank),
			e.Label,
			e.NetBenefit.StringFixed(2),
			e.TerminalBalance.StringFixed(2),
			e.ReinvestedValue.StringFixed(2),
			e.Contributions.StringFixed(2),
			e.TotalFees.StringFixed(2),
			e.TaxSavings.StringFixed(2),
			e.OneTimeTax.StringFixed(2),
			e.EffectiveAnnualReturn.String(),
			irr,
			strconv.FormatBool(e.IRRValid),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
