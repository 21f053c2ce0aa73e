package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStrategyLabel(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		expected string
	}{
		{
			name:     "Full withdrawal",
			strategy: Strategy{Kind: FullWithdrawal, Year: 10},
			expected: "full withdrawal at year 10",
		},
		{
			name: "Partial withdrawal",
			strategy: Strategy{
				Kind:     PartialWithdrawal,
				Interval: 2,
				Ratio:    decimal.NewFromFloat(0.5),
			},
			expected: "partial withdrawal every 2y at 50%",
		},
		{
			name: "Switch",
			strategy: Strategy{
				Kind:    Switch,
				Year:    5,
				FeeRate: decimal.NewFromFloat(0.015),
			},
			expected: "switch at year 5 with 1.5% fee",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.strategy.Label())
		})
	}
}

func TestStrategyLabelsAreUniqueAcrossVariants(t *testing.T) {
	strategies := []Strategy{
		{Kind: FullWithdrawal, Year: 10},
		{Kind: FullWithdrawal, Year: 20},
		{Kind: PartialWithdrawal, Interval: 2, Ratio: decimal.NewFromFloat(0.25)},
		{Kind: PartialWithdrawal, Interval: 2, Ratio: decimal.NewFromFloat(0.5)},
		{Kind: PartialWithdrawal, Interval: 4, Ratio: decimal.NewFromFloat(0.5)},
		{Kind: Switch, Year: 10, FeeRate: decimal.Zero},
		{Kind: Switch, Year: 10, FeeRate: decimal.NewFromFloat(0.01)},
	}

	seen := make(map[string]bool)
	for _, s := range strategies {
		label := s.Label()
		assert.False(t, seen[label], "duplicate label %q", label)
		seen[label] = true
	}
}

func TestRankingTableBest(t *testing.T) {
	empty := &RankingTable{}
	assert.Nil(t, empty.Best())
	assert.Equal(t, 0, empty.Len())

	table := &RankingTable{Entries: []RankedStrategy{
		{Rank: 1, StrategyResult: StrategyResult{Label: "a"}},
		{Rank: 2, StrategyResult: StrategyResult{Label: "b"}},
	}}
	assert.Equal(t, "a", table.Best().Label)
	assert.Equal(t, 2, table.Len())
}
