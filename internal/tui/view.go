package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/polisim/polisim/internal/domain"
	"github.com/polisim/polisim/internal/output"
)

// View renders the full screen.
func (m Model) View() string {
	if m.err != nil {
		return ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n" +
			StatusBarStyle.Render("q: quit")
	}
	if m.loading {
		return TitleStyle.Render("Strategy Comparison") + "\n\n" +
			SubtitleStyle.Render("Evaluating strategies...")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Strategy Comparison"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(m.planSummary()))
	b.WriteString("\n\n")
	b.WriteString(BorderStyle.Render(m.table.View()))
	b.WriteString("\n")

	if sel := m.selected(); sel != nil {
		b.WriteString(BorderStyle.Render(m.detailView(sel)))
		b.WriteString("\n")
	}

	b.WriteString(StatusBarStyle.Render("↑/↓: select   q: quit"))
	return b.String()
}

func (m Model) planSummary() string {
	summary := fmt.Sprintf("%s/month at %s over %d years, income %s",
		output.FormatCurrency(m.inputs.Plan.MonthlyPremium),
		output.FormatPercent(m.inputs.Plan.AnnualGrowthRate),
		m.inputs.Plan.PeriodYears,
		output.FormatCurrency(m.inputs.Taxes.TaxableIncome))
	if m.haveBreakeven {
		if m.breakevenOK {
			summary += fmt.Sprintf("   breakeven: year %d", m.breakevenYear)
		} else {
			summary += "   breakeven: never"
		}
	}
	return summary
}

func (m Model) detailView(e *domain.RankedStrategy) string {
	row := func(label string, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			DetailLabelStyle.Render(label),
			DetailValueStyle.Render(value)) + "\n"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("#%d  %s", e.Rank, e.Label)))
	b.WriteString("\n\n")
	b.WriteString(row("Net benefit", output.FormatCurrency(e.NetBenefit)))
	b.WriteString(row("Instrument value", output.FormatCurrency(e.TerminalBalance)))
	b.WriteString(row("Reinvested value", output.FormatCurrency(e.ReinvestedValue)))
	b.WriteString(row("Contributions", output.FormatCurrency(e.Contributions)))
	b.WriteString(row("Total fees", output.FormatCurrency(e.TotalFees)))
	b.WriteString(row("Tax savings", output.FormatCurrency(e.TaxSavings)))
	b.WriteString(row("One-time tax", output.FormatCurrency(e.OneTimeTax)))
	b.WriteString(row("Effective annual", output.FormatPercent(e.EffectiveAnnualReturn)))
	b.WriteString(row("IRR", output.FormatIRR(e.IRR, e.IRRValid)))
	return b.String()
}

func formatRank(rank int) string {
	return fmt.Sprintf("%d", rank)
}
