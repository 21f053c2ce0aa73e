package output

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/polisim/polisim/internal/domain"
)

// TableFormatter renders the ranking as an aligned console table with
// the best strategy called out underneath.
type TableFormatter struct{}

// Name returns the format flag value this formatter answers to.
func (tf *TableFormatter) Name() string { return "table" }

// Format renders the table.
func (tf *TableFormatter) Format(table *domain.RankingTable) (string, error) {
	var sb strings.Builder

	sb.WriteString("STRATEGY RANKING\n")
	sb.WriteString(strings.Repeat("=", 100) + "\n")

	w := tabwriter.NewWriter(&sb, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Rank\tStrategy\tNet Benefit\tTax Savings\tFees\tEff. Annual\tIRR")
	for _, e := range table.Entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Rank,
			e.Label,
			FormatCurrency(e.NetBenefit),
			FormatCurrency(e.TaxSavings),
			FormatCurrency(e.TotalFees),
			FormatPercent(e.EffectiveAnnualReturn),
			FormatIRR(e.IRR, e.IRRValid))
	}
	if err := w.Flush(); err != nil {
		return "", err
	}

	sb.WriteString(strings.Repeat("=", 100) + "\n")
	if best := table.Best(); best != nil {
		sb.WriteString(fmt.Sprintf("\nBest strategy: %s (net benefit %s)\n",
			best.Label, FormatCurrency(best.NetBenefit)))
	} else {
		sb.WriteString("\nNo strategies evaluated.\n")
	}
	return sb.String(), nil
}
