package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StrategyKind identifies one of the candidate strategy families.
type StrategyKind string

const (
	FullWithdrawal    StrategyKind = "full_withdrawal"
	PartialWithdrawal StrategyKind = "partial_withdrawal"
	Switch            StrategyKind = "switch"
)

// Strategy is the tagged descriptor identifying one candidate in the
// search space. Which fields are meaningful depends on Kind:
//
//	FullWithdrawal:    Year
//	PartialWithdrawal: Interval, Ratio
//	Switch:            Year, FeeRate
//
// Descriptors are produced by the catalog and never mutated.
type Strategy struct {
	Kind     StrategyKind
	Year     int
	Interval int
	Ratio    decimal.Decimal
	FeeRate  decimal.Decimal
}

// Label returns a stable human-readable identifier. Labels double as the
// deterministic tie-breaker in ranking, so they must be unique within a
// catalog and must not depend on anything but the descriptor itself.
func (s Strategy) Label() string {
	switch s.Kind {
	case FullWithdrawal:
		return fmt.Sprintf("full withdrawal at year %d", s.Year)
	case PartialWithdrawal:
		return fmt.Sprintf("partial withdrawal every %dy at %s%%",
			s.Interval, s.Ratio.Mul(decimal.NewFromInt(100)).StringFixed(0))
	case Switch:
		return fmt.Sprintf("switch at year %d with %s%% fee",
			s.Year, s.FeeRate.Mul(decimal.NewFromInt(100)).StringFixed(1))
	default:
		return string(s.Kind)
	}
}

// StrategyResult is the terminal outcome of evaluating one strategy.
// Created once by the evaluator and treated as immutable afterwards.
type StrategyResult struct {
	Strategy   Strategy        `json:"strategy"`
	Label      string          `json:"label"`
	NetBenefit decimal.Decimal `json:"netBenefit"`

	// Supporting breakdown.
	TerminalBalance       decimal.Decimal `json:"terminalBalance"` // net instrument value at horizon
	ReinvestedValue       decimal.Decimal `json:"reinvestedValue"` // net fund/reinvestment value
	Contributions         decimal.Decimal `json:"contributions"`   // cumulative gross premiums paid
	TotalFees             decimal.Decimal `json:"totalFees"`       // setup + balance + withdrawal fees
	TaxSavings            decimal.Decimal `json:"taxSavings"`      // cumulative deduction-derived savings
	OneTimeTax            decimal.Decimal `json:"oneTimeTax"`      // lump-sum income tax paid on profits
	EffectiveAnnualReturn decimal.Decimal `json:"effectiveAnnualReturn"`

	// Internal rate of return of the annual cash-flow sequence. IRRValid
	// is false when the Newton iteration found no solution, which is an
	// expected outcome for some cash-flow shapes, not an error.
	IRR      decimal.Decimal `json:"irr"`
	IRRValid bool            `json:"irrValid"`
}

// RankedStrategy is a StrategyResult with its assigned rank.
type RankedStrategy struct {
	Rank int `json:"rank"`
	StrategyResult
}

// RankingTable is the ordered comparison output consumed by the report
// layer. Rank 1 is the highest net benefit; ranks are contiguous with
// ties broken by ascending label.
type RankingTable struct {
	Entries []RankedStrategy `json:"entries"`
}

// Best returns the top-ranked entry, or nil for an empty table.
func (rt *RankingTable) Best() *RankedStrategy {
	if len(rt.Entries) == 0 {
		return nil
	}
	return &rt.Entries[0]
}

// Len returns the number of ranked entries.
func (rt *RankingTable) Len() int { return len(rt.Entries) }
