// Package tui is an interactive browser over a comparison run: a
// ranking table on top, a breakdown of the selected strategy below.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/polisim/polisim/internal/compare"
	"github.com/polisim/polisim/internal/config"
	"github.com/polisim/polisim/internal/domain"
	"github.com/polisim/polisim/internal/output"
	"github.com/polisim/polisim/internal/simulation"
	"github.com/polisim/polisim/internal/strategy"
)

// Model is the application state.
type Model struct {
	inputs  *config.RunInputs
	ranking *domain.RankingTable

	table table.Model

	breakevenYear int
	breakevenOK   bool
	haveBreakeven bool

	width   int
	height  int
	loading bool
	err     error
}

// NewModel creates the model for an already validated run input.
func NewModel(inputs *config.RunInputs) Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Strategy", Width: 38},
		{Title: "Net Benefit", Width: 14},
		{Title: "Tax Savings", Width: 13},
		{Title: "IRR", Width: 8},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(ColorPrimary).BorderForeground(ColorBorder)
	s.Selected = s.Selected.Foreground(ColorAccent).Bold(true)
	t.SetStyles(s)

	return Model{
		inputs:  inputs,
		table:   t,
		loading: true,
		width:   80,
		height:  24,
	}
}

// Init starts the comparison run in the background.
func (m Model) Init() tea.Cmd {
	return tea.Batch(runRankingCmd(m.inputs), breakevenCmd(m.inputs))
}

func runRankingCmd(inputs *config.RunInputs) tea.Cmd {
	return func() tea.Msg {
		evaluator, err := compare.NewEvaluator(inputs.Plan, inputs.Fund, inputs.Taxes)
		if err != nil {
			return RankingCompleteMsg{Err: err}
		}
		catalog, err := strategy.NewCatalog(inputs.Ranges, inputs.Plan.PeriodYears)
		if err != nil {
			return RankingCompleteMsg{Err: err}
		}
		ranking, err := compare.NewEngine(evaluator).Run(context.Background(), catalog)
		return RankingCompleteMsg{Table: ranking, Err: err}
	}
}

func breakevenCmd(inputs *config.RunInputs) tea.Cmd {
	return func() tea.Msg {
		sim, err := simulation.New(inputs.Plan, inputs.Fund, inputs.Taxes)
		if err != nil {
			return BreakevenMsg{}
		}
		year, ok := sim.BreakevenYear()
		return BreakevenMsg{Year: year, OK: ok}
	}
}

// selected returns the entry under the cursor, or nil.
func (m Model) selected() *domain.RankedStrategy {
	if m.ranking == nil {
		return nil
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.ranking.Entries) {
		return nil
	}
	return &m.ranking.Entries[i]
}

func rankingRows(t *domain.RankingTable) []table.Row {
	rows := make([]table.Row, len(t.Entries))
	for i, e := range t.Entries {
		rows[i] = table.Row{
			formatRank(e.Rank),
			e.Label,
			output.FormatCurrency(e.NetBenefit),
			output.FormatCurrency(e.TaxSavings),
			output.FormatIRR(e.IRR, e.IRRValid),
		}
	}
	return rows
}
