package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width - 4)
		return m, nil

	case RankingCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.ranking = msg.Table
		m.table.SetRows(rankingRows(msg.Table))
		return m, nil

	case BreakevenMsg:
		m.haveBreakeven = true
		m.breakevenYear = msg.Year
		m.breakevenOK = msg.OK
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}
