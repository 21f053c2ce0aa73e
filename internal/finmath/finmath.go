// Package finmath provides the stateless compound-interest and
// cash-flow arithmetic shared by the simulator and the evaluator.
package finmath

import (
	"math"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// CompoundAmount returns principal grown at rate per period for the
// given number of periods.
func CompoundAmount(principal, rate decimal.Decimal, periods int) decimal.Decimal {
	return principal.Mul(one.Add(rate).Pow(decimal.NewFromInt(int64(periods))))
}

// PresentValue discounts a future amount back over the given periods.
func PresentValue(futureValue, rate decimal.Decimal, periods int) decimal.Decimal {
	return futureValue.Div(one.Add(rate).Pow(decimal.NewFromInt(int64(periods))))
}

// AnnuityFutureValue returns the value of a level payment made at the
// end of each period, compounded at rate. A zero rate uses the linear
// closed form payment*periods instead of dividing by zero.
func AnnuityFutureValue(payment, rate decimal.Decimal, periods int) decimal.Decimal {
	n := decimal.NewFromInt(int64(periods))
	if rate.IsZero() {
		return payment.Mul(n)
	}
	growth := one.Add(rate).Pow(n).Sub(one)
	return payment.Mul(growth).Div(rate)
}

// AnnuityPresentValue returns the present value of a level payment
// received at the end of each period, discounted at rate.
func AnnuityPresentValue(payment, rate decimal.Decimal, periods int) decimal.Decimal {
	n := decimal.NewFromInt(int64(periods))
	if rate.IsZero() {
		return payment.Mul(n)
	}
	factor := one.Sub(one.Div(one.Add(rate).Pow(n)))
	return payment.Mul(factor).Div(rate)
}

// NPV discounts the cash-flow sequence at the given rate. Flow 0 is not
// discounted.
func NPV(rate decimal.Decimal, flows []decimal.Decimal) decimal.Decimal {
	r := rate.InexactFloat64()
	total := 0.0
	for t, cf := range flows {
		total += cf.InexactFloat64() / math.Pow(1+r, float64(t))
	}
	return decimal.NewFromFloat(total)
}

const (
	irrMaxIterations = 100
	irrTolerance     = 1e-6
)

// IRR finds the rate at which the cash-flow sequence has zero net
// present value, by Newton iteration from guess. ok is false when the
// iteration does not converge or the sequence has no root (for example
// all-positive or all-negative flows); that is an expected outcome for
// some cash-flow shapes, not an error.
func IRR(flows []decimal.Decimal, guess float64) (decimal.Decimal, bool) {
	if len(flows) < 2 {
		return decimal.Zero, false
	}
	cf := make([]float64, len(flows))
	for i, f := range flows {
		cf[i] = f.InexactFloat64()
	}

	rate := guess
	for i := 0; i < irrMaxIterations; i++ {
		npv := 0.0
		derivative := 0.0
		for t, c := range cf {
			ft := float64(t)
			npv += c / math.Pow(1+rate, ft)
			derivative -= ft * c / math.Pow(1+rate, ft+1)
		}
		if math.Abs(derivative) < 1e-10 {
			return decimal.Zero, false
		}
		next := rate - npv/derivative
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return decimal.Zero, false
		}
		if math.Abs(next-rate) < irrTolerance {
			return decimal.NewFromFloat(next), true
		}
		rate = next
	}
	return decimal.Zero, false
}

// EffectiveAnnualRate returns the annualized growth rate implied by
// turning paidIn into endValue over the given years. Zero inputs yield
// zero.
func EffectiveAnnualRate(endValue, paidIn decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 || paidIn.LessThanOrEqual(decimal.Zero) || endValue.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	ratio := endValue.InexactFloat64() / paidIn.InexactFloat64()
	return decimal.NewFromFloat(math.Pow(ratio, 1/float64(years)) - 1)
}
