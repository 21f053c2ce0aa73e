// Package compare evaluates strategy catalogs against a single plan and
// tax context and ranks the outcomes.
package compare

import (
	"fmt"

	"github.com/polisim/polisim/internal/domain"
	"github.com/polisim/polisim/internal/finmath"
	"github.com/polisim/polisim/internal/simulation"
	"github.com/polisim/polisim/internal/tax"
	"github.com/shopspring/decimal"
)

const irrInitialGuess = 0.05

// Evaluator turns one strategy descriptor into a StrategyResult. It is
// stateless across evaluations and safe for concurrent use.
type Evaluator struct {
	plan *domain.PremiumPlan
	sim  *simulation.Simulator
}

// NewEvaluator builds an evaluator over the given plan, fund, and tax
// context.
func NewEvaluator(plan *domain.PremiumPlan, fund *domain.FundPlan, taxes *tax.Context) (*Evaluator, error) {
	sim, err := simulation.New(plan, fund, taxes)
	if err != nil {
		return nil, err
	}
	return &Evaluator{plan: plan, sim: sim}, nil
}

// Evaluate simulates the strategy and derives the comparison metrics.
func (e *Evaluator) Evaluate(strategy domain.Strategy) (domain.StrategyResult, error) {
	var (
		out *simulation.Outcome
		err error
	)
	switch strategy.Kind {
	case domain.FullWithdrawal:
		out, err = e.sim.RunFullWithdrawal(strategy.Year)
	case domain.PartialWithdrawal:
		out, err = e.sim.RunPartialWithdrawal(strategy.Interval, strategy.Ratio)
	case domain.Switch:
		out, err = e.sim.RunSwitch(strategy.Year, strategy.FeeRate)
	default:
		return domain.StrategyResult{}, domain.NewInvalidInput("strategy_kind",
			fmt.Sprintf("unknown kind %q", strategy.Kind))
	}
	if err != nil {
		return domain.StrategyResult{}, err
	}

	terminal := out.NetInstrumentValue.Add(out.NetReinvestedValue)
	ear := finmath.EffectiveAnnualRate(terminal.Add(out.TaxSavings), out.Contributions, out.Years)
	irr, irrOK := finmath.IRR(e.cashFlows(strategy, out), irrInitialGuess)

	return domain.StrategyResult{
		Strategy:              strategy,
		Label:                 strategy.Label(),
		NetBenefit:            out.NetBenefit,
		TerminalBalance:       out.NetInstrumentValue,
		ReinvestedValue:       out.NetReinvestedValue,
		Contributions:         out.Contributions,
		TotalFees:             out.Fees,
		TaxSavings:            out.TaxSavings,
		OneTimeTax:            out.OneTimeTax,
		EffectiveAnnualReturn: ear,
		IRR:                   irr,
		IRRValid:              irrOK,
	}, nil
}

// cashFlows builds the annual sequence fed to the IRR solver: premiums
// at the start of each paying year, deduction savings at the end of
// each covered year, and the terminal net value at the horizon.
func (e *Evaluator) cashFlows(strategy domain.Strategy, out *simulation.Outcome) []decimal.Decimal {
	horizon := out.Years
	paymentYears := horizon
	savingsYears := horizon
	if strategy.Kind != domain.FullWithdrawal {
		horizon = e.plan.PeriodYears
		paymentYears = e.plan.PeriodYears
	}
	if strategy.Kind == domain.Switch {
		savingsYears = strategy.Year
	}

	annualPremium := e.plan.AnnualPremium()
	annualSavings := decimal.Zero
	if savingsYears > 0 {
		annualSavings = out.TaxSavings.Div(decimal.NewFromInt(int64(savingsYears)))
	}

	flows := make([]decimal.Decimal, horizon+1)
	for t := 0; t <= horizon; t++ {
		f := decimal.Zero
		if t < paymentYears {
			f = f.Sub(annualPremium)
		}
		if t >= 1 && t <= savingsYears {
			f = f.Add(annualSavings)
		}
		flows[t] = f
	}
	flows[horizon] = flows[horizon].
		Add(out.NetInstrumentValue).
		Add(out.NetReinvestedValue)
	return flows
}
