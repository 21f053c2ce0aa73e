// Package strategy enumerates the candidate withdrawal strategies for a
// comparison run.
package strategy

import (
	"github.com/polisim/polisim/internal/domain"
	"github.com/shopspring/decimal"
)

// Ranges are the caller-supplied parameter grids the catalog expands:
// intervals x ratios for partial withdrawal, years for full withdrawal,
// and years x fees for switching.
type Ranges struct {
	WithdrawalIntervals []int
	WithdrawalRatios    []decimal.Decimal
	FullWithdrawalYears []int
	SwitchYears         []int
	SwitchFeeRates      []decimal.Decimal
}

// Validate rejects grid values the evaluator could never accept. Values
// that merely produce no events (interval or year beyond the period)
// are legal and get filtered during iteration instead.
func (r Ranges) Validate(periodYears int) error {
	for _, iv := range r.WithdrawalIntervals {
		if iv < 1 {
			return domain.NewInvalidInput("withdrawal_intervals", "must be at least one year")
		}
	}
	for _, ratio := range r.WithdrawalRatios {
		if ratio.LessThanOrEqual(decimal.Zero) || ratio.GreaterThan(decimal.NewFromInt(1)) {
			return domain.NewInvalidInput("withdrawal_ratios", "must be in (0, 1]")
		}
	}
	for _, y := range r.FullWithdrawalYears {
		if y < 1 {
			return domain.NewInvalidInput("full_withdrawal_years", "must be at least one year")
		}
	}
	for _, y := range r.SwitchYears {
		if y < 1 {
			return domain.NewInvalidInput("switch_years", "must be at least one year")
		}
	}
	for _, f := range r.SwitchFeeRates {
		if f.LessThan(decimal.Zero) || f.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return domain.NewInvalidInput("switch_fee_rates", "must be in [0, 1)")
		}
	}
	if periodYears <= 0 {
		return domain.NewInvalidInput("period_years", "must be positive")
	}
	return nil
}

// MaxCount returns the descriptor count before degenerate filtering:
// I*R + Y + S*F. The catalog yields at most this many strategies.
func (r Ranges) MaxCount() int {
	return len(r.WithdrawalIntervals)*len(r.WithdrawalRatios) +
		len(r.FullWithdrawalYears) +
		len(r.SwitchYears)*len(r.SwitchFeeRates)
}

// Catalog lazily yields strategy descriptors in the nested cartesian
// order of the input grids: partial withdrawals (interval outer, ratio
// inner), then full withdrawals, then switches (year outer, fee inner).
// Degenerate descriptors (an interval with no withdrawal event before
// the horizon, or a year outside the period) are skipped, not errors.
// Iteration order is stable across runs for identical inputs.
type Catalog struct {
	ranges      Ranges
	periodYears int

	phase int // 0 partial, 1 full, 2 switch, 3 done
	i, j  int
}

// NewCatalog validates the grids and returns a fresh iterator.
func NewCatalog(ranges Ranges, periodYears int) (*Catalog, error) {
	if err := ranges.Validate(periodYears); err != nil {
		return nil, err
	}
	return &Catalog{ranges: ranges, periodYears: periodYears}, nil
}

// Next returns the next descriptor, or ok=false when exhausted.
func (c *Catalog) Next() (domain.Strategy, bool) {
	for {
		switch c.phase {
		case 0:
			if c.i >= len(c.ranges.WithdrawalIntervals) {
				c.phase, c.i, c.j = 1, 0, 0
				continue
			}
			interval := c.ranges.WithdrawalIntervals[c.i]
			if c.j >= len(c.ranges.WithdrawalRatios) {
				c.i, c.j = c.i+1, 0
				continue
			}
			ratio := c.ranges.WithdrawalRatios[c.j]
			c.j++
			if interval >= c.periodYears {
				continue // no withdrawal event would ever fire
			}
			return domain.Strategy{Kind: domain.PartialWithdrawal, Interval: interval, Ratio: ratio}, true
		case 1:
			if c.i >= len(c.ranges.FullWithdrawalYears) {
				c.phase, c.i, c.j = 2, 0, 0
				continue
			}
			year := c.ranges.FullWithdrawalYears[c.i]
			c.i++
			if year > c.periodYears {
				continue
			}
			return domain.Strategy{Kind: domain.FullWithdrawal, Year: year}, true
		case 2:
			if c.i >= len(c.ranges.SwitchYears) {
				c.phase = 3
				continue
			}
			year := c.ranges.SwitchYears[c.i]
			if c.j >= len(c.ranges.SwitchFeeRates) {
				c.i, c.j = c.i+1, 0
				continue
			}
			fee := c.ranges.SwitchFeeRates[c.j]
			c.j++
			if year >= c.periodYears {
				continue // no remaining period to reinvest
			}
			return domain.Strategy{Kind: domain.Switch, Year: year, FeeRate: fee}, true
		default:
			return domain.Strategy{}, false
		}
	}
}

// Collect drains the catalog into a slice. Intended for tests and small
// grids; large grids should be consumed through Next.
func (c *Catalog) Collect() []domain.Strategy {
	var out []domain.Strategy
	for {
		s, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, s)
	}
}
