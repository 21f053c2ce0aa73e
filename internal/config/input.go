// Package config loads and validates the YAML run configuration.
package config

import (
	"fmt"
	"os"

	"github.com/polisim/polisim/internal/domain"
	"github.com/polisim/polisim/internal/strategy"
	"github.com/polisim/polisim/internal/tax"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Input is the on-disk configuration for one comparison run. Rates are
// decimal fractions (0.0125 = 1.25%).
type Input struct {
	Plan       PlanInput       `yaml:"plan"`
	Fund       FundInput       `yaml:"fund"`
	Tax        TaxInput        `yaml:"tax"`
	Strategies StrategiesInput `yaml:"strategies"`
	Output     OutputInput     `yaml:"output"`
}

// PlanInput mirrors domain.PremiumPlan.
type PlanInput struct {
	MonthlyPremium    decimal.Decimal `yaml:"monthly_premium"`
	AnnualGrowthRate  decimal.Decimal `yaml:"annual_growth_rate"`
	PeriodYears       int             `yaml:"period_years"`
	SetupFeeRate      decimal.Decimal `yaml:"setup_fee_rate"`
	BalanceFeeRate    decimal.Decimal `yaml:"balance_fee_rate"`
	WithdrawalFeeRate decimal.Decimal `yaml:"withdrawal_fee_rate"`
}

// FundInput mirrors domain.FundPlan.
type FundInput struct {
	AnnualReturnRate decimal.Decimal `yaml:"annual_return_rate"`
	AnnualFeeRate    decimal.Decimal `yaml:"annual_fee_rate"`
	TaxExempt        bool            `yaml:"tax_exempt"`
}

// TaxInput selects the taxable income and, optionally, a custom
// progressive schedule in place of the built-in quick table.
type TaxInput struct {
	TaxableIncome decimal.Decimal `yaml:"taxable_income"`
	ResidentRate  decimal.Decimal `yaml:"resident_rate"`
	Brackets      []BracketInput  `yaml:"brackets"`
	TopRate       decimal.Decimal `yaml:"top_rate"`
}

// BracketInput is one (threshold, marginal rate) row of a custom
// schedule.
type BracketInput struct {
	Threshold decimal.Decimal `yaml:"threshold"`
	Rate      decimal.Decimal `yaml:"rate"`
}

// StrategiesInput holds the candidate grids the catalog expands.
type StrategiesInput struct {
	WithdrawalIntervals []int             `yaml:"withdrawal_intervals"`
	WithdrawalRatios    []decimal.Decimal `yaml:"withdrawal_ratios"`
	FullWithdrawalYears []int             `yaml:"full_withdrawal_years"`
	SwitchYears         []int             `yaml:"switch_years"`
	SwitchFeeRates      []decimal.Decimal `yaml:"switch_fee_rates"`
}

// OutputInput carries presentation and execution knobs.
type OutputInput struct {
	Format  string `yaml:"format"`
	Workers int    `yaml:"workers"`
}

// InputParser loads run configurations from YAML files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile reads and parses a YAML configuration. Semantic
// validation happens in Build, at domain-object construction.
func (ip *InputParser) LoadFromFile(filename string) (*Input, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes YAML bytes into an Input.
func (ip *InputParser) Parse(data []byte) (*Input, error) {
	var input Input
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &input, nil
}

// RunInputs is the fully validated object graph a comparison run needs.
type RunInputs struct {
	Plan   *domain.PremiumPlan
	Fund   *domain.FundPlan
	Taxes  *tax.Context
	Ranges strategy.Ranges
}

// Build validates the raw input fail-fast and constructs the domain
// objects. The first offending field aborts the build.
func (in *Input) Build() (*RunInputs, error) {
	plan, err := domain.NewPremiumPlan(
		in.Plan.MonthlyPremium,
		in.Plan.AnnualGrowthRate,
		in.Plan.PeriodYears,
		in.Plan.SetupFeeRate,
		in.Plan.BalanceFeeRate,
		in.Plan.WithdrawalFeeRate,
	)
	if err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	fund, err := domain.NewFundPlan(in.Fund.AnnualReturnRate, in.Fund.AnnualFeeRate, in.Fund.TaxExempt)
	if err != nil {
		return nil, fmt.Errorf("fund validation failed: %w", err)
	}

	engine, err := in.Tax.buildEngine()
	if err != nil {
		return nil, fmt.Errorf("tax validation failed: %w", err)
	}
	taxes, err := tax.NewContext(in.Tax.TaxableIncome, engine)
	if err != nil {
		return nil, fmt.Errorf("tax validation failed: %w", err)
	}

	ranges := strategy.Ranges{
		WithdrawalIntervals: in.Strategies.WithdrawalIntervals,
		WithdrawalRatios:    in.Strategies.WithdrawalRatios,
		FullWithdrawalYears: in.Strategies.FullWithdrawalYears,
		SwitchYears:         in.Strategies.SwitchYears,
		SwitchFeeRates:      in.Strategies.SwitchFeeRates,
	}
	if err := ranges.Validate(plan.PeriodYears); err != nil {
		return nil, fmt.Errorf("strategies validation failed: %w", err)
	}
	if ranges.MaxCount() == 0 {
		return nil, domain.NewInvalidInput("strategies", "at least one candidate strategy is required")
	}

	return &RunInputs{Plan: plan, Fund: fund, Taxes: taxes, Ranges: ranges}, nil
}

// buildEngine returns the default engine unless a custom schedule or
// resident rate is configured.
func (t *TaxInput) buildEngine() (*tax.Engine, error) {
	if len(t.Brackets) == 0 && t.ResidentRate.IsZero() {
		return tax.NewEngine(), nil
	}

	schedule := tax.DefaultSchedule()
	if len(t.Brackets) > 0 {
		pairs := make([]tax.RatePair, len(t.Brackets))
		for i, b := range t.Brackets {
			pairs[i] = tax.RatePair{Threshold: b.Threshold, Rate: b.Rate}
		}
		custom, err := tax.NewScheduleFromRates(pairs, t.TopRate)
		if err != nil {
			return nil, err
		}
		schedule = custom
	}

	residentRate := t.ResidentRate
	if residentRate.IsZero() {
		residentRate = decimal.NewFromFloat(0.10)
	}
	return tax.NewEngineWithSchedule(schedule, residentRate)
}
