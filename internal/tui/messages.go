package tui

import "github.com/polisim/polisim/internal/domain"

// RankingCompleteMsg delivers the finished comparison run to the model.
type RankingCompleteMsg struct {
	Table *domain.RankingTable
	Err   error
}

// BreakevenMsg delivers the breakeven scan result.
type BreakevenMsg struct {
	Year int
	OK   bool
}
