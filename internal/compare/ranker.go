package compare

import (
	"sort"

	"github.com/polisim/polisim/internal/domain"
)

// Rank orders results by descending net benefit, breaking ties by
// ascending label so equal-benefit strategies always land in the same
// order. Ranks are contiguous starting at one.
func Rank(results []domain.StrategyResult) *domain.RankingTable {
	ordered := make([]domain.StrategyResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].NetBenefit.Equal(ordered[j].NetBenefit) {
			return ordered[i].NetBenefit.GreaterThan(ordered[j].NetBenefit)
		}
		return ordered[i].Label < ordered[j].Label
	})

	table := &domain.RankingTable{Entries: make([]domain.RankedStrategy, len(ordered))}
	for i, r := range ordered {
		table.Entries[i] = domain.RankedStrategy{Rank: i + 1, StrategyResult: r}
	}
	return table
}
