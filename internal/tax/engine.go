package tax

import (
	"github.com/polisim/polisim/internal/domain"
	"github.com/shopspring/decimal"
)

// Deduction table for premiums under the old life-insurance relief:
// each row is (premium ceiling, multiplier, base amount). The result is
// capped at deductionCap regardless of premium size.
var (
	deductionCap        = decimal.NewFromInt(50000)
	oneTimeAllowance    = decimal.NewFromInt(500000)
	defaultResidentRate = decimal.NewFromFloat(0.10)

	deductionTable = []struct {
		ceiling decimal.Decimal
		rate    decimal.Decimal
		base    decimal.Decimal
	}{
		{decimal.NewFromInt(25000), decimal.NewFromFloat(0.5), decimal.Zero},
		{decimal.NewFromInt(50000), decimal.NewFromFloat(0.25), decimal.NewFromInt(12500)},
		{decimal.NewFromInt(100000), decimal.NewFromFloat(0.2), decimal.NewFromInt(15000)},
	}
)

// Engine computes premium deductions and the tax effects of deductions
// and lump-sum withdrawal profits. Construct one per comparison run and
// pass it by reference; it holds no mutable state.
type Engine struct {
	Schedule     Schedule
	ResidentRate decimal.Decimal
}

// NewEngine creates a tax engine with the default progressive schedule
// and the nationwide 10% resident rate.
func NewEngine() *Engine {
	return &Engine{Schedule: DefaultSchedule(), ResidentRate: defaultResidentRate}
}

// NewEngineWithSchedule creates a tax engine with a custom schedule and
// resident rate.
func NewEngineWithSchedule(schedule Schedule, residentRate decimal.Decimal) (*Engine, error) {
	if len(schedule) == 0 {
		return nil, domain.NewInvalidInput("tax_schedule", "must not be empty")
	}
	if residentRate.LessThan(decimal.Zero) || residentRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, domain.NewInvalidInput("resident_tax_rate", "must be in [0, 1)")
	}
	return &Engine{Schedule: schedule, ResidentRate: residentRate}, nil
}

// Deduction returns the deductible amount for an annual premium under
// the piecewise relief table. Always <= the 50,000 cap.
func (e *Engine) Deduction(annualPremium decimal.Decimal) (decimal.Decimal, error) {
	if annualPremium.LessThan(decimal.Zero) {
		return decimal.Zero, domain.NewInvalidInput("annual_premium", "must not be negative")
	}
	if annualPremium.IsZero() {
		return decimal.Zero, nil
	}
	for _, row := range deductionTable {
		if annualPremium.LessThanOrEqual(row.ceiling) {
			return decimal.Min(annualPremium.Mul(row.rate).Add(row.base), deductionCap), nil
		}
	}
	return deductionCap, nil
}

// Savings is the breakdown of tax saved by applying a deduction.
type Savings struct {
	IncomeTaxSavings   decimal.Decimal
	ResidentTaxSavings decimal.Decimal
	Total              decimal.Decimal
}

// TaxSavings computes the income-tax and resident-tax saved by
// subtracting a deduction from taxable income. Zero or negative taxable
// income yields zero savings.
func (e *Engine) TaxSavings(deduction, taxableIncome decimal.Decimal) Savings {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return Savings{}
	}
	after := taxableIncome.Sub(deduction)
	if after.LessThan(decimal.Zero) {
		after = decimal.Zero
	}
	income := e.Schedule.IncomeTax(taxableIncome).Sub(e.Schedule.IncomeTax(after))
	resident := taxableIncome.Sub(after).Mul(e.ResidentRate)
	return Savings{
		IncomeTaxSavings:   income,
		ResidentTaxSavings: resident,
		Total:              income.Add(resident),
	}
}

// AnnualPremiumSavings computes the yearly savings produced by the
// deduction derived from an annual premium.
func (e *Engine) AnnualPremiumSavings(annualPremium, taxableIncome decimal.Decimal) (Savings, error) {
	deduction, err := e.Deduction(annualPremium)
	if err != nil {
		return Savings{}, err
	}
	return e.TaxSavings(deduction, taxableIncome), nil
}

// OneTimeWithdrawalTax computes the marginal income tax owed on a
// lump-sum withdrawal profit: a 500,000 allowance, half inclusion of the
// excess, and the delta of progressive tax with and without the included
// amount. Profit at or below the allowance, or a loss, owes nothing.
func (e *Engine) OneTimeWithdrawalTax(profit, taxableIncome decimal.Decimal) decimal.Decimal {
	excess := profit.Sub(oneTimeAllowance)
	if excess.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	included := excess.Div(decimal.NewFromInt(2))
	return e.Schedule.IncomeTax(taxableIncome.Add(included)).Sub(e.Schedule.IncomeTax(taxableIncome))
}

// Context bundles the read-only tax inputs shared by every evaluation in
// a comparison run.
type Context struct {
	TaxableIncome decimal.Decimal
	Engine        *Engine
}

// NewContext validates the taxable income and pairs it with an engine.
func NewContext(taxableIncome decimal.Decimal, engine *Engine) (*Context, error) {
	if taxableIncome.LessThan(decimal.Zero) {
		return nil, domain.NewInvalidInput("taxable_income", "must not be negative")
	}
	if engine == nil {
		engine = NewEngine()
	}
	return &Context{TaxableIncome: taxableIncome, Engine: engine}, nil
}
