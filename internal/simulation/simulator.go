// Package simulation advances a savings-instrument balance month by
// month and produces the terminal outcome of a withdrawal strategy.
package simulation

import (
	"github.com/polisim/polisim/internal/domain"
	"github.com/polisim/polisim/internal/finmath"
	"github.com/polisim/polisim/internal/tax"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Surrender deduction starts at 10% and decays by one point per
// elapsed year, reaching zero from year ten onward.
var (
	surrenderStartRate = decimal.NewFromFloat(0.10)
	surrenderStepRate  = decimal.NewFromFloat(0.01)
)

// Simulator runs strategy simulations against one plan, fund, and tax
// context. It holds no per-run state; every Run method simulates from
// month zero, so the same inputs always produce identical outcomes.
type Simulator struct {
	plan  *domain.PremiumPlan
	fund  *domain.FundPlan
	taxes *tax.Context
}

// New creates a simulator for the given plan, fund, and tax context.
func New(plan *domain.PremiumPlan, fund *domain.FundPlan, taxes *tax.Context) (*Simulator, error) {
	if plan == nil {
		return nil, domain.NewInvalidInput("plan", "is required")
	}
	if fund == nil {
		return nil, domain.NewInvalidInput("fund", "is required")
	}
	if taxes == nil {
		return nil, domain.NewInvalidInput("tax_context", "is required")
	}
	return &Simulator{plan: plan, fund: fund, taxes: taxes}, nil
}

// step applies one month: net premium in, growth, then the balance fee.
func (s *Simulator) step(st *State) {
	premium := s.plan.MonthlyPremium
	setupFee := premium.Mul(s.plan.SetupFeeRate)

	st.Month++
	st.Contributions = st.Contributions.Add(premium)
	st.CostBasis = st.CostBasis.Add(premium)
	st.Fees = st.Fees.Add(setupFee)
	st.Balance = st.Balance.Add(premium.Sub(setupFee)).Mul(one.Add(s.plan.MonthlyRate()))

	balanceFee := st.Balance.Mul(s.plan.BalanceFeeRate)
	st.Balance = st.Balance.Sub(balanceFee)
	st.Fees = st.Fees.Add(balanceFee)
}

// surrenderRate returns the surrender deduction rate after the given
// number of elapsed years.
func surrenderRate(years int) decimal.Decimal {
	rate := surrenderStartRate.Sub(surrenderStepRate.Mul(decimal.NewFromInt(int64(years))))
	if rate.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return rate
}

// surrender liquidates the remaining balance after the given elapsed
// years: surrender deduction, then one-time income tax on the profit
// over the remaining cost basis. Returns the net proceeds.
func (s *Simulator) surrender(st *State, elapsedYears int) decimal.Decimal {
	value := st.Balance.Mul(one.Sub(surrenderRate(elapsedYears)))
	profit := value.Sub(st.CostBasis)
	levy := s.taxes.Engine.OneTimeWithdrawalTax(profit, s.taxes.TaxableIncome)
	st.OneTimeTax = st.OneTimeTax.Add(levy)
	st.Balance = decimal.Zero
	return value.Sub(levy)
}

// cumulativeTaxSavings returns the deduction-derived savings over the
// given number of premium-paying years.
func (s *Simulator) cumulativeTaxSavings(years int) (decimal.Decimal, error) {
	savings, err := s.taxes.Engine.AnnualPremiumSavings(s.plan.AnnualPremium(), s.taxes.TaxableIncome)
	if err != nil {
		return decimal.Zero, err
	}
	return savings.Total.Mul(decimal.NewFromInt(int64(years))), nil
}

// RunFullWithdrawal accumulates for the given number of years, then
// surrenders the whole balance once.
func (s *Simulator) RunFullWithdrawal(year int) (*Outcome, error) {
	if year < 1 || year > s.plan.PeriodYears {
		return nil, domain.NewInvalidInput("withdrawal_year", "must be within the plan period")
	}
	st := &State{}
	for m := 0; m < year*12; m++ {
		s.step(st)
	}
	net := s.surrender(st, year)
	savings, err := s.cumulativeTaxSavings(year)
	if err != nil {
		return nil, err
	}
	return s.outcome(st, net, decimal.Zero, decimal.Zero, savings, year), nil
}

// RunPartialWithdrawal withdraws ratio of the balance every interval
// years (except at the horizon), reinvesting the net proceeds in the
// fund, and surrenders the remainder at the end of the period.
func (s *Simulator) RunPartialWithdrawal(interval int, ratio decimal.Decimal) (*Outcome, error) {
	if interval < 1 {
		return nil, domain.NewInvalidInput("withdrawal_interval", "must be at least one year")
	}
	if ratio.LessThanOrEqual(decimal.Zero) || ratio.GreaterThan(one) {
		return nil, domain.NewInvalidInput("withdrawal_ratio", "must be in (0, 1]")
	}

	st := &State{}
	totalMonths := s.plan.TotalMonths()
	fundRate := s.fund.MonthlyRate()
	for m := 1; m <= totalMonths; m++ {
		s.step(st)
		st.Reinvested = st.Reinvested.Mul(one.Add(fundRate))
		if m%(interval*12) == 0 && m < totalMonths {
			s.partialWithdraw(st, ratio)
		}
	}

	net := s.surrender(st, s.plan.PeriodYears)

	// The reinvestment pot is taxed at sale on an assumed gain
	// fraction; its month-by-month cost basis is not tracked.
	gainsTax := s.fund.GainsTaxOn(st.Reinvested.Mul(s.fund.AssumedGainRatio))
	netReinvested := st.Reinvested.Sub(gainsTax)

	savings, err := s.cumulativeTaxSavings(s.plan.PeriodYears)
	if err != nil {
		return nil, err
	}
	return s.outcome(st, net, netReinvested, gainsTax, savings, s.plan.PeriodYears), nil
}

// partialWithdraw takes ratio of the current balance: withdrawal fee,
// one-time tax on the profit over the proportional cost basis, and the
// remainder moves to the reinvestment pot. Balance and cost basis are
// scaled down together.
func (s *Simulator) partialWithdraw(st *State, ratio decimal.Decimal) {
	gross := st.Balance.Mul(ratio)
	fee := gross.Mul(s.plan.WithdrawalFeeRate)
	net := gross.Sub(fee)

	basisShare := st.CostBasis.Mul(ratio)
	profit := net.Sub(basisShare)
	levy := s.taxes.Engine.OneTimeWithdrawalTax(profit, s.taxes.TaxableIncome)

	st.Balance = st.Balance.Sub(gross)
	st.CostBasis = st.CostBasis.Sub(basisShare)
	st.Fees = st.Fees.Add(fee)
	st.OneTimeTax = st.OneTimeTax.Add(levy)
	st.Withdrawn = st.Withdrawn.Add(gross)
	st.Reinvested = st.Reinvested.Add(net.Sub(levy))
}

// RunSwitch liquidates the instrument at the given year (surrender
// deduction, switch fee, one-time tax) and runs the proceeds plus the
// continuing monthly premium through the fund for the remaining period.
// A switch in the final year simply has no fund phase.
func (s *Simulator) RunSwitch(year int, feeRate decimal.Decimal) (*Outcome, error) {
	if year < 1 || year > s.plan.PeriodYears {
		return nil, domain.NewInvalidInput("switch_year", "must be within the plan period")
	}
	if feeRate.LessThan(decimal.Zero) || feeRate.GreaterThanOrEqual(one) {
		return nil, domain.NewInvalidInput("switch_fee_rate", "must be in [0, 1)")
	}

	st := &State{}
	for m := 0; m < year*12; m++ {
		s.step(st)
	}

	value := st.Balance.Mul(one.Sub(surrenderRate(year)))
	switchFee := value.Mul(feeRate)
	value = value.Sub(switchFee)
	st.Fees = st.Fees.Add(switchFee)

	profit := value.Sub(st.CostBasis)
	levy := s.taxes.Engine.OneTimeWithdrawalTax(profit, s.taxes.TaxableIncome)
	st.OneTimeTax = st.OneTimeTax.Add(levy)
	st.Balance = decimal.Zero
	seed := value.Sub(levy)

	remainingMonths := s.plan.TotalMonths() - year*12
	fundRate := s.fund.MonthlyRate()
	fundBalance := seed
	for m := 0; m < remainingMonths; m++ {
		fundBalance = fundBalance.Mul(one.Add(fundRate)).Add(s.plan.MonthlyPremium)
		st.Contributions = st.Contributions.Add(s.plan.MonthlyPremium)
	}

	invested := seed.Add(s.plan.MonthlyPremium.Mul(decimal.NewFromInt(int64(remainingMonths))))
	gainsTax := s.fund.GainsTaxOn(fundBalance.Sub(invested))
	netFund := fundBalance.Sub(gainsTax)

	// Premium relief only applies while the instrument is alive.
	savings, err := s.cumulativeTaxSavings(year)
	if err != nil {
		return nil, err
	}
	return s.outcome(st, decimal.Zero, netFund, gainsTax, savings, s.plan.PeriodYears), nil
}

func (s *Simulator) outcome(st *State, netInstrument, netReinvested, gainsTax, savings decimal.Decimal, years int) *Outcome {
	return &Outcome{
		NetInstrumentValue: netInstrument,
		NetReinvestedValue: netReinvested,
		Contributions:      st.Contributions,
		Fees:               st.Fees,
		OneTimeTax:         st.OneTimeTax,
		GainsTax:           gainsTax,
		TaxSavings:         savings,
		NetBenefit: netInstrument.Add(netReinvested).Add(savings).
			Sub(st.Contributions),
		Years: years,
	}
}

// ProjectedGrossValue returns the closed-form maturity value of the net
// monthly premium ignoring balance fees, for quick estimates and
// drift checks against the monthly loop.
func (s *Simulator) ProjectedGrossValue() decimal.Decimal {
	return finmath.AnnuityFutureValue(s.plan.NetMonthlyPremium(), s.plan.MonthlyRate(), s.plan.TotalMonths())
}

const maxBreakevenYears = 30

// BreakevenYear returns the first year where surrendering in full,
// counting accumulated tax savings, recovers the premiums paid in. ok
// is false when no year within the plan period (capped at thirty
// years) breaks even.
func (s *Simulator) BreakevenYear() (int, bool) {
	limit := s.plan.PeriodYears
	if limit > maxBreakevenYears {
		limit = maxBreakevenYears
	}
	for year := 1; year <= limit; year++ {
		out, err := s.RunFullWithdrawal(year)
		if err != nil {
			return 0, false
		}
		if out.NetInstrumentValue.Add(out.TaxSavings).GreaterThanOrEqual(out.Contributions) {
			return year, true
		}
	}
	return 0, false
}
