package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPremiumPlan(t *testing.T) {
	plan, err := NewPremiumPlan(
		decimal.NewFromInt(9000), decimal.NewFromFloat(0.0125), 20,
		decimal.Zero, decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, plan.AnnualPremium().Equal(decimal.NewFromInt(108000)))
	assert.Equal(t, 240, plan.TotalMonths())
	assert.True(t, plan.NetMonthlyPremium().Equal(decimal.NewFromInt(9000)))
}

func TestNewPremiumPlanValidation(t *testing.T) {
	tests := []struct {
		name    string
		premium decimal.Decimal
		growth  decimal.Decimal
		years   int
		setup   decimal.Decimal
	}{
		{
			name:    "Zero premium",
			premium: decimal.Zero,
			years:   20,
		},
		{
			name:    "Negative premium",
			premium: decimal.NewFromInt(-100),
			years:   20,
		},
		{
			name:    "Zero period",
			premium: decimal.NewFromInt(9000),
			years:   0,
		},
		{
			name:    "Growth below -100%",
			premium: decimal.NewFromInt(9000),
			growth:  decimal.NewFromFloat(-1.5),
			years:   20,
		},
		{
			name:    "Setup fee of one",
			premium: decimal.NewFromInt(9000),
			years:   20,
			setup:   decimal.NewFromInt(1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPremiumPlan(tt.premium, tt.growth, tt.years,
				tt.setup, decimal.Zero, decimal.Zero)
			assert.Error(t, err)
			var invalid *InvalidInputError
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestNetMonthlyPremiumAppliesSetupFee(t *testing.T) {
	plan, err := NewPremiumPlan(
		decimal.NewFromInt(10000), decimal.Zero, 10,
		decimal.NewFromFloat(0.03), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, plan.NetMonthlyPremium().Equal(decimal.NewFromInt(9700)))
}

func TestNewFundPlanDefaults(t *testing.T) {
	fund, err := NewFundPlan(decimal.NewFromFloat(0.03), decimal.NewFromFloat(0.001), false)
	require.NoError(t, err)

	assert.True(t, fund.GainsTaxRate.Equal(decimal.NewFromFloat(0.20315)))
	assert.True(t, fund.AssumedGainRatio.Equal(decimal.NewFromFloat(0.3)))
}

func TestFundPlanGainsTax(t *testing.T) {
	taxable, err := NewFundPlan(decimal.NewFromFloat(0.03), decimal.Zero, false)
	require.NoError(t, err)
	exempt, err := NewFundPlan(decimal.NewFromFloat(0.03), decimal.Zero, true)
	require.NoError(t, err)

	profit := decimal.NewFromInt(100000)
	assert.True(t, taxable.GainsTaxOn(profit).Equal(decimal.NewFromFloat(20315)))
	assert.True(t, exempt.GainsTaxOn(profit).IsZero())
	assert.True(t, taxable.GainsTaxOn(decimal.NewFromInt(-1)).IsZero())
}

func TestFundPlanMonthlyRateNetsOutFee(t *testing.T) {
	fund, err := NewFundPlan(decimal.NewFromFloat(0.03), decimal.NewFromFloat(0.006), false)
	require.NoError(t, err)
	expected := decimal.NewFromFloat(0.024).Div(decimal.NewFromInt(12))
	assert.True(t, fund.MonthlyRate().Equal(expected))
}
