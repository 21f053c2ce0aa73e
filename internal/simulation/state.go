package simulation

import "github.com/shopspring/decimal"

// State is the mutable per-run simulation state, advanced month by
// month. Contributions only ever grows; CostBasis is the contribution
// base remaining in the instrument and is scaled down by partial
// withdrawals.
type State struct {
	Month         int
	Balance       decimal.Decimal
	Reinvested    decimal.Decimal
	Contributions decimal.Decimal
	CostBasis     decimal.Decimal
	Fees          decimal.Decimal
	OneTimeTax    decimal.Decimal
	Withdrawn     decimal.Decimal
}

// Outcome is the terminal result of one strategy run.
type Outcome struct {
	NetInstrumentValue decimal.Decimal // surrender value net of deduction and one-time tax
	NetReinvestedValue decimal.Decimal // fund/reinvestment value net of gains tax
	Contributions      decimal.Decimal // cumulative gross premiums over the run
	Fees               decimal.Decimal // setup + balance + withdrawal/switch fees
	OneTimeTax         decimal.Decimal // lump-sum income tax on withdrawal profits
	GainsTax           decimal.Decimal // capital gains tax on the fund at sale
	TaxSavings         decimal.Decimal // cumulative deduction-derived savings
	NetBenefit         decimal.Decimal
	Years              int
}
