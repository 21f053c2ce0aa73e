package tax

import (
	"github.com/polisim/polisim/internal/domain"
	"github.com/shopspring/decimal"
)

// Bracket is one row of the progressive income-tax quick table:
// tax = income*Rate - QuickDeduction for the first bracket whose
// ceiling covers the income. The last bracket is unbounded and its
// Ceiling is ignored.
type Bracket struct {
	Ceiling        decimal.Decimal
	QuickDeduction decimal.Decimal
	Rate           decimal.Decimal
}

// Schedule is an ordered progressive income-tax table. The final entry
// always applies, regardless of its ceiling.
type Schedule []Bracket

// DefaultSchedule returns the 2025 income-tax quick table with the
// reconstruction surtax folded into the rates. Quick deductions are the
// official bracket constants.
func DefaultSchedule() Schedule {
	return Schedule{
		{decimal.NewFromInt(1950000), decimal.Zero, decimal.NewFromFloat(0.0515)},
		{decimal.NewFromInt(3300000), decimal.NewFromInt(97500), decimal.NewFromFloat(0.1021)},
		{decimal.NewFromInt(6950000), decimal.NewFromInt(427500), decimal.NewFromFloat(0.2042)},
		{decimal.NewFromInt(9000000), decimal.NewFromInt(636000), decimal.NewFromFloat(0.2353)},
		{decimal.NewFromInt(18000000), decimal.NewFromInt(1536000), decimal.NewFromFloat(0.3372)},
		{decimal.NewFromInt(40000000), decimal.NewFromInt(2796000), decimal.NewFromFloat(0.4084)},
		{decimal.Zero, decimal.NewFromInt(4796000), decimal.NewFromFloat(0.4599)},
	}
}

// RatePair is a (threshold, marginal rate) entry for building a custom
// schedule. Thresholds must be strictly increasing; the last entry's
// threshold marks the start of the unbounded top bracket's predecessor.
type RatePair struct {
	Threshold decimal.Decimal
	Rate      decimal.Decimal
}

// NewScheduleFromRates builds a Schedule from ordered (threshold, rate)
// pairs plus the unbounded top rate, deriving quick deductions so the
// tax function is continuous at every bracket edge.
func NewScheduleFromRates(pairs []RatePair, topRate decimal.Decimal) (Schedule, error) {
	if len(pairs) == 0 {
		return nil, domain.NewInvalidInput("tax_brackets", "at least one bracket is required")
	}
	sched := make(Schedule, 0, len(pairs)+1)
	prevThreshold := decimal.Zero
	prevRate := decimal.Zero
	deduction := decimal.Zero
	for i, p := range pairs {
		if p.Threshold.LessThanOrEqual(prevThreshold) && i > 0 {
			return nil, domain.NewInvalidInput("tax_brackets", "thresholds must be strictly increasing")
		}
		if p.Rate.LessThan(decimal.Zero) || p.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, domain.NewInvalidInput("tax_brackets", "rates must be in [0, 1]")
		}
		if i > 0 {
			deduction = deduction.Add(prevThreshold.Mul(p.Rate.Sub(prevRate)))
		}
		sched = append(sched, Bracket{Ceiling: p.Threshold, QuickDeduction: deduction, Rate: p.Rate})
		prevThreshold = p.Threshold
		prevRate = p.Rate
	}
	deduction = deduction.Add(prevThreshold.Mul(topRate.Sub(prevRate)))
	sched = append(sched, Bracket{Ceiling: decimal.Zero, QuickDeduction: deduction, Rate: topRate})
	return sched, nil
}

// IncomeTax computes progressive income tax for the given taxable
// income. Zero or negative income owes nothing.
func (s Schedule) IncomeTax(taxableIncome decimal.Decimal) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	b := s.bracketFor(taxableIncome)
	tax := taxableIncome.Mul(b.Rate).Sub(b.QuickDeduction)
	if tax.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return tax
}

// MarginalRate returns the marginal rate applicable at the given income.
func (s Schedule) MarginalRate(taxableIncome decimal.Decimal) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return s.bracketFor(taxableIncome).Rate
}

func (s Schedule) bracketFor(income decimal.Decimal) Bracket {
	for i, b := range s {
		if i == len(s)-1 || income.LessThanOrEqual(b.Ceiling) {
			return b
		}
	}
	return s[len(s)-1]
}
