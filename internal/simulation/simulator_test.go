package simulation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polisim/polisim/internal/domain"
	"github.com/polisim/polisim/internal/tax"
)

// flatSimulator builds a simulator with zero growth, zero fees, zero
// taxable income, and a tax-exempt fund, so every run conserves money
// exactly.
func flatSimulator(t *testing.T, periodYears int) *Simulator {
	t.Helper()
	plan, err := domain.NewPremiumPlan(
		decimal.NewFromInt(10000), decimal.Zero, periodYears,
		decimal.Zero, decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	fund, err := domain.NewFundPlan(decimal.Zero, decimal.Zero, true)
	require.NoError(t, err)
	taxes, err := tax.NewContext(decimal.Zero, nil)
	require.NoError(t, err)
	sim, err := New(plan, fund, taxes)
	require.NoError(t, err)
	return sim
}

func growthSimulator(t *testing.T) *Simulator {
	t.Helper()
	plan, err := domain.NewPremiumPlan(
		decimal.NewFromInt(9000), decimal.NewFromFloat(0.0125), 20,
		decimal.Zero, decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	fund, err := domain.NewFundPlan(decimal.NewFromFloat(0.03), decimal.NewFromFloat(0.001), false)
	require.NoError(t, err)
	taxes, err := tax.NewContext(decimal.NewFromInt(6000000), nil)
	require.NoError(t, err)
	sim, err := New(plan, fund, taxes)
	require.NoError(t, err)
	return sim
}

func TestNewRejectsNilInputs(t *testing.T) {
	plan, _ := domain.NewPremiumPlan(
		decimal.NewFromInt(10000), decimal.Zero, 10,
		decimal.Zero, decimal.Zero, decimal.Zero)
	fund, _ := domain.NewFundPlan(decimal.Zero, decimal.Zero, true)
	taxes, _ := tax.NewContext(decimal.Zero, nil)

	_, err := New(nil, fund, taxes)
	assert.Error(t, err)
	_, err = New(plan, nil, taxes)
	assert.Error(t, err)
	_, err = New(plan, fund, nil)
	assert.Error(t, err)
}

func TestFullWithdrawalConservesMoneyAtZeroGrowth(t *testing.T) {
	sim := flatSimulator(t, 10)

	// Year ten: the surrender deduction has decayed to zero, so the
	// whole paid-in amount comes back untouched.
	out, err := sim.RunFullWithdrawal(10)
	require.NoError(t, err)

	paid := decimal.NewFromInt(10000 * 12 * 10)
	assert.True(t, out.Contributions.Equal(paid), "contributions %s", out.Contributions)
	assert.True(t, out.NetInstrumentValue.Equal(paid), "net value %s", out.NetInstrumentValue)
	assert.True(t, out.OneTimeTax.IsZero())
	assert.True(t, out.Fees.IsZero())
	assert.True(t, out.NetBenefit.IsZero(), "net benefit %s", out.NetBenefit)
}

func TestFullWithdrawalSurrenderDeduction(t *testing.T) {
	sim := flatSimulator(t, 10)

	// Year five: 5% surrender deduction on the balance.
	out, err := sim.RunFullWithdrawal(5)
	require.NoError(t, err)

	paid := decimal.NewFromInt(10000 * 12 * 5)
	expected := paid.Mul(decimal.NewFromFloat(0.95))
	assert.True(t, out.NetInstrumentValue.Equal(expected),
		"expected %s, got %s", expected, out.NetInstrumentValue)
}

func TestFullWithdrawalRejectsYearOutsidePeriod(t *testing.T) {
	sim := flatSimulator(t, 10)
	_, err := sim.RunFullWithdrawal(0)
	assert.Error(t, err)
	_, err = sim.RunFullWithdrawal(11)
	assert.Error(t, err)
}

func TestPartialWithdrawalConservesMoneyAtZeroGrowth(t *testing.T) {
	sim := flatSimulator(t, 20)

	out, err := sim.RunPartialWithdrawal(2, decimal.NewFromFloat(0.5))
	require.NoError(t, err)

	paid := decimal.NewFromInt(10000 * 12 * 20)
	total := out.NetInstrumentValue.Add(out.NetReinvestedValue)
	assert.True(t, out.Contributions.Equal(paid))
	assert.True(t, total.Sub(paid).Abs().LessThan(decimal.NewFromFloat(0.01)),
		"instrument %s + reinvested %s != paid %s",
		out.NetInstrumentValue, out.NetReinvestedValue, paid)
	assert.True(t, out.OneTimeTax.IsZero())
	assert.True(t, out.GainsTax.IsZero())
}

func TestPartialWithdrawalValidatesInputs(t *testing.T) {
	sim := flatSimulator(t, 20)

	_, err := sim.RunPartialWithdrawal(0, decimal.NewFromFloat(0.5))
	assert.Error(t, err)
	_, err = sim.RunPartialWithdrawal(2, decimal.Zero)
	assert.Error(t, err)
	_, err = sim.RunPartialWithdrawal(2, decimal.NewFromFloat(1.5))
	assert.Error(t, err)
}

func TestSimulationIsIdempotent(t *testing.T) {
	sim := growthSimulator(t)

	first, err := sim.RunPartialWithdrawal(2, decimal.NewFromFloat(0.5))
	require.NoError(t, err)
	second, err := sim.RunPartialWithdrawal(2, decimal.NewFromFloat(0.5))
	require.NoError(t, err)

	assert.True(t, first.NetBenefit.Equal(second.NetBenefit))
	assert.True(t, first.Contributions.Equal(second.Contributions))
	assert.True(t, first.OneTimeTax.Equal(second.OneTimeTax))
	assert.True(t, first.NetInstrumentValue.Equal(second.NetInstrumentValue))
	assert.True(t, first.NetReinvestedValue.Equal(second.NetReinvestedValue))
}

func TestSwitchAtHorizonMatchesFullWithdrawal(t *testing.T) {
	sim := growthSimulator(t)

	full, err := sim.RunFullWithdrawal(20)
	require.NoError(t, err)
	switched, err := sim.RunSwitch(20, decimal.Zero)
	require.NoError(t, err)

	// A fee-free switch in the final year has no fund phase, so it is
	// the same liquidation as a full withdrawal.
	total := switched.NetInstrumentValue.Add(switched.NetReinvestedValue)
	assert.True(t, total.Equal(full.NetInstrumentValue),
		"switch %s vs full %s", total, full.NetInstrumentValue)
	assert.True(t, switched.NetBenefit.Equal(full.NetBenefit),
		"switch benefit %s vs full %s", switched.NetBenefit, full.NetBenefit)
}

func TestSwitchValidatesInputs(t *testing.T) {
	sim := growthSimulator(t)

	_, err := sim.RunSwitch(0, decimal.Zero)
	assert.Error(t, err)
	_, err = sim.RunSwitch(21, decimal.Zero)
	assert.Error(t, err)
	_, err = sim.RunSwitch(10, decimal.NewFromInt(1))
	assert.Error(t, err)
}

func TestSwitchFeeReducesBenefit(t *testing.T) {
	sim := growthSimulator(t)

	cheap, err := sim.RunSwitch(10, decimal.Zero)
	require.NoError(t, err)
	costly, err := sim.RunSwitch(10, decimal.NewFromFloat(0.02))
	require.NoError(t, err)

	assert.True(t, costly.NetBenefit.LessThan(cheap.NetBenefit))
	assert.True(t, costly.Fees.GreaterThan(cheap.Fees))
}

func TestProjectedGrossValueMatchesLoopWithoutBalanceFee(t *testing.T) {
	sim := flatSimulator(t, 10)

	// Zero growth: the closed form is just premium * months.
	got := sim.ProjectedGrossValue()
	assert.True(t, got.Equal(decimal.NewFromInt(10000*120)), "got %s", got)
}

func TestBreakevenYear(t *testing.T) {
	t.Run("Zero growth breaks even when the deduction decays away", func(t *testing.T) {
		sim := flatSimulator(t, 20)
		year, ok := sim.BreakevenYear()
		require.True(t, ok)
		assert.Equal(t, 10, year)
	})

	t.Run("Tax savings pull breakeven earlier", func(t *testing.T) {
		sim := growthSimulator(t)
		year, ok := sim.BreakevenYear()
		require.True(t, ok)
		assert.LessOrEqual(t, year, 10)
	})
}
