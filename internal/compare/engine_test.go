package compare

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polisim/polisim/internal/domain"
	"github.com/polisim/polisim/internal/strategy"
	"github.com/polisim/polisim/internal/tax"
)

// referenceEvaluator models a 9,000/month plan growing 1.25% a year
// over 20 years for a 6,000,000 income.
func referenceEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	plan, err := domain.NewPremiumPlan(
		decimal.NewFromInt(9000), decimal.NewFromFloat(0.0125), 20,
		decimal.Zero, decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	fund, err := domain.NewFundPlan(decimal.NewFromFloat(0.03), decimal.NewFromFloat(0.001), false)
	require.NoError(t, err)
	taxes, err := tax.NewContext(decimal.NewFromInt(6000000), nil)
	require.NoError(t, err)
	evaluator, err := NewEvaluator(plan, fund, taxes)
	require.NoError(t, err)
	return evaluator
}

func TestEvaluateReferenceScenario(t *testing.T) {
	evaluator := referenceEvaluator(t)

	result, err := evaluator.Evaluate(domain.Strategy{
		Kind:     domain.PartialWithdrawal,
		Interval: 2,
		Ratio:    decimal.NewFromFloat(0.5),
	})
	require.NoError(t, err)

	// Annual premium 108,000 hits the 50,000 deduction cap; at a
	// 20.42% margin plus 10% resident tax that saves 15,210 a year.
	expectedSavings := decimal.NewFromInt(15210 * 20)
	assert.True(t, result.TaxSavings.Equal(expectedSavings),
		"expected savings %s, got %s", expectedSavings, result.TaxSavings)
	assert.True(t, result.NetBenefit.GreaterThan(decimal.Zero),
		"net benefit %s", result.NetBenefit)
	assert.True(t, result.Contributions.Equal(decimal.NewFromInt(9000*12*20)))
	assert.Equal(t, "partial withdrawal every 2y at 50%", result.Label)
}

func TestEvaluateRejectsUnknownKind(t *testing.T) {
	evaluator := referenceEvaluator(t)
	_, err := evaluator.Evaluate(domain.Strategy{Kind: "mystery"})
	assert.Error(t, err)
}

func TestEvaluateComputesIRRForTypicalShape(t *testing.T) {
	evaluator := referenceEvaluator(t)

	result, err := evaluator.Evaluate(domain.Strategy{Kind: domain.FullWithdrawal, Year: 20})
	require.NoError(t, err)

	// Outflows followed by a terminal inflow always has a sign change,
	// so Newton should find a root.
	assert.True(t, result.IRRValid)
	assert.True(t, result.IRR.GreaterThan(decimal.NewFromInt(-1)))
}

func TestEngineRanksWholeCatalog(t *testing.T) {
	evaluator := referenceEvaluator(t)
	ranges := strategy.Ranges{
		WithdrawalIntervals: []int{2, 4},
		WithdrawalRatios:    []decimal.Decimal{decimal.NewFromFloat(0.5)},
		FullWithdrawalYears: []int{10, 20},
		SwitchYears:         []int{10},
		SwitchFeeRates:      []decimal.Decimal{decimal.Zero},
	}
	catalog, err := strategy.NewCatalog(ranges, 20)
	require.NoError(t, err)

	engine := NewEngine(evaluator)
	engine.SetWorkers(4)
	table, err := engine.Run(context.Background(), catalog)
	require.NoError(t, err)

	require.Equal(t, 5, table.Len())
	for i, e := range table.Entries {
		assert.Equal(t, i+1, e.Rank)
		if i > 0 {
			prev := table.Entries[i-1]
			assert.True(t, prev.NetBenefit.GreaterThanOrEqual(e.NetBenefit),
				"entry %d out of order", i)
		}
	}

	best := table.Best()
	require.NotNil(t, best)
	for _, e := range table.Entries {
		assert.True(t, best.NetBenefit.GreaterThanOrEqual(e.NetBenefit))
	}
}

func TestEngineRunIsDeterministic(t *testing.T) {
	evaluator := referenceEvaluator(t)
	ranges := strategy.Ranges{
		WithdrawalIntervals: []int{2},
		WithdrawalRatios:    []decimal.Decimal{decimal.NewFromFloat(0.25), decimal.NewFromFloat(0.5)},
		FullWithdrawalYears: []int{5, 10, 15, 20},
	}

	run := func() *domain.RankingTable {
		catalog, err := strategy.NewCatalog(ranges, 20)
		require.NoError(t, err)
		table, err := NewEngine(evaluator).Run(context.Background(), catalog)
		require.NoError(t, err)
		return table
	}

	first := run()
	second := run()
	require.Equal(t, first.Len(), second.Len())
	for i := range first.Entries {
		assert.Equal(t, first.Entries[i].Label, second.Entries[i].Label)
		assert.True(t, first.Entries[i].NetBenefit.Equal(second.Entries[i].NetBenefit))
	}
}

func TestEngineHonorsCancelledContext(t *testing.T) {
	evaluator := referenceEvaluator(t)
	catalog, err := strategy.NewCatalog(strategy.Ranges{
		FullWithdrawalYears: []int{1, 2, 3, 4, 5},
	}, 20)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewEngine(evaluator).Run(ctx, catalog)
	assert.ErrorIs(t, err, context.Canceled)
}
