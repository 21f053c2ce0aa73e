package domain

import (
	"github.com/shopspring/decimal"
)

// PremiumPlan describes the savings/insurance instrument under analysis.
// All rates are decimal fractions (0.0125 = 1.25%/year). Immutable once
// constructed; build one per comparison run.
type PremiumPlan struct {
	MonthlyPremium    decimal.Decimal
	AnnualGrowthRate  decimal.Decimal
	PeriodYears       int
	SetupFeeRate      decimal.Decimal // charged on each gross premium
	BalanceFeeRate    decimal.Decimal // charged monthly on the balance
	WithdrawalFeeRate decimal.Decimal // charged on partial withdrawal amounts
}

// NewPremiumPlan validates the plan parameters and returns the plan.
// Validation is fail-fast: the first offending field is reported.
func NewPremiumPlan(monthlyPremium, annualGrowthRate decimal.Decimal, periodYears int, setupFeeRate, balanceFeeRate, withdrawalFeeRate decimal.Decimal) (*PremiumPlan, error) {
	if monthlyPremium.LessThanOrEqual(decimal.Zero) {
		return nil, NewInvalidInput("monthly_premium", "must be positive")
	}
	if periodYears <= 0 {
		return nil, NewInvalidInput("period_years", "must be positive")
	}
	if annualGrowthRate.LessThan(decimal.NewFromInt(-1)) {
		return nil, NewInvalidInput("annual_growth_rate", "must be at least -100%")
	}
	for _, f := range []struct {
		name string
		rate decimal.Decimal
	}{
		{"setup_fee_rate", setupFeeRate},
		{"balance_fee_rate", balanceFeeRate},
		{"withdrawal_fee_rate", withdrawalFeeRate},
	} {
		if f.rate.LessThan(decimal.Zero) || f.rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return nil, NewInvalidInput(f.name, "must be in [0, 1)")
		}
	}
	return &PremiumPlan{
		MonthlyPremium:    monthlyPremium,
		AnnualGrowthRate:  annualGrowthRate,
		PeriodYears:       periodYears,
		SetupFeeRate:      setupFeeRate,
		BalanceFeeRate:    balanceFeeRate,
		WithdrawalFeeRate: withdrawalFeeRate,
	}, nil
}

// AnnualPremium returns the gross premium paid per year.
func (p *PremiumPlan) AnnualPremium() decimal.Decimal {
	return p.MonthlyPremium.Mul(decimal.NewFromInt(12))
}

// MonthlyRate returns the monthly growth rate (annual rate / 12).
func (p *PremiumPlan) MonthlyRate() decimal.Decimal {
	return p.AnnualGrowthRate.Div(decimal.NewFromInt(12))
}

// TotalMonths returns the accumulation horizon in months.
func (p *PremiumPlan) TotalMonths() int {
	return p.PeriodYears * 12
}

// NetMonthlyPremium returns the premium credited to the balance after
// the setup fee.
func (p *PremiumPlan) NetMonthlyPremium() decimal.Decimal {
	return p.MonthlyPremium.Mul(decimal.NewFromInt(1).Sub(p.SetupFeeRate))
}

// FundPlan describes the alternative vehicle that receives switch
// proceeds and reinvested partial withdrawals.
type FundPlan struct {
	AnnualReturnRate decimal.Decimal
	AnnualFeeRate    decimal.Decimal
	GainsTaxRate     decimal.Decimal // capital gains rate applied at sale
	AssumedGainRatio decimal.Decimal // gain fraction assumed for reinvested withdrawals
	TaxExempt        bool            // NISA-style wrapper: no gains tax
}

// Statutory capital gains rate on fund sales (income 15.315% + resident 5%).
var defaultGainsTaxRate = decimal.NewFromFloat(0.20315)

// Gain fraction assumed when taxing a reinvestment pot whose cost basis
// was not tracked month by month.
var defaultAssumedGainRatio = decimal.NewFromFloat(0.3)

// NewFundPlan validates fund parameters. A zero GainsTaxRate selects the
// statutory default; TaxExempt disables gains taxation entirely.
func NewFundPlan(annualReturnRate, annualFeeRate decimal.Decimal, taxExempt bool) (*FundPlan, error) {
	if annualReturnRate.LessThan(decimal.NewFromInt(-1)) {
		return nil, NewInvalidInput("fund_annual_return_rate", "must be at least -100%")
	}
	if annualFeeRate.LessThan(decimal.Zero) || annualFeeRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, NewInvalidInput("fund_annual_fee_rate", "must be in [0, 1)")
	}
	return &FundPlan{
		AnnualReturnRate: annualReturnRate,
		AnnualFeeRate:    annualFeeRate,
		GainsTaxRate:     defaultGainsTaxRate,
		AssumedGainRatio: defaultAssumedGainRatio,
		TaxExempt:        taxExempt,
	}, nil
}

// MonthlyRate returns the monthly net return (return minus fee, / 12).
func (f *FundPlan) MonthlyRate() decimal.Decimal {
	return f.AnnualReturnRate.Sub(f.AnnualFeeRate).Div(decimal.NewFromInt(12))
}

// GainsTaxOn returns the tax due when selling a holding with the given
// profit. Negative profit and tax-exempt wrappers owe nothing.
func (f *FundPlan) GainsTaxOn(profit decimal.Decimal) decimal.Decimal {
	if f.TaxExempt || profit.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return profit.Mul(f.GainsTaxRate)
}
