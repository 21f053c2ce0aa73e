package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/polisim/polisim/internal/compare"
	"github.com/polisim/polisim/internal/config"
	"github.com/polisim/polisim/internal/domain"
	"github.com/polisim/polisim/internal/output"
	"github.com/polisim/polisim/internal/simulation"
	"github.com/polisim/polisim/internal/strategy"
	"github.com/polisim/polisim/internal/tax"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// newLogger builds a console zap logger. The sugared logger satisfies
// compare.Logger directly.
func newLogger(debugMode bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !debugMode {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

var rootCmd = &cobra.Command{
	Use:   "polisim",
	Short: "Insurance-savings strategy simulator",
	Long:  "Simulates withdrawal strategies for savings-type insurance plans and ranks them by net benefit",
}

var rankCmd = &cobra.Command{
	Use:   "rank [input-file]",
	Short: "Evaluate every candidate strategy and print the ranking",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputs := loadInputs(args[0])

		debugMode, _ := cmd.Flags().GetBool("debug")
		sugar, err := newLogger(debugMode)
		if err != nil {
			log.Fatal(err)
		}
		defer sugar.Sync() //nolint:errcheck

		evaluator, err := compare.NewEvaluator(inputs.Plan, inputs.Fund, inputs.Taxes)
		if err != nil {
			log.Fatal(err)
		}
		catalog, err := strategy.NewCatalog(inputs.Ranges, inputs.Plan.PeriodYears)
		if err != nil {
			log.Fatal(err)
		}

		engine := compare.NewEngine(evaluator)
		engine.SetLogger(sugar)
		if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
			engine.SetWorkers(workers)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		table, err := engine.Run(ctx, catalog)
		if err != nil {
			log.Fatal(err)
		}

		formatName, _ := cmd.Flags().GetString("format")
		formatter, err := output.GetFormatterByName(formatName)
		if err != nil {
			log.Fatal(err)
		}
		report, err := formatter.Format(table)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(report)
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [input-file]",
	Short: "Simulate a single strategy and print its breakdown",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputs := loadInputs(args[0])

		s, err := strategyFromFlags(cmd)
		if err != nil {
			log.Fatal(err)
		}

		evaluator, err := compare.NewEvaluator(inputs.Plan, inputs.Fund, inputs.Taxes)
		if err != nil {
			log.Fatal(err)
		}
		result, err := evaluator.Evaluate(s)
		if err != nil {
			log.Fatal(err)
		}

		printResult(result)

		sim, err := simulation.New(inputs.Plan, inputs.Fund, inputs.Taxes)
		if err != nil {
			log.Fatal(err)
		}
		if year, ok := sim.BreakevenYear(); ok {
			fmt.Printf("Breakeven (full surrender): year %d\n", year)
		} else {
			fmt.Println("Breakeven (full surrender): never within the plan period")
		}
	},
}

var taxCmd = &cobra.Command{
	Use:   "tax",
	Short: "Show the deduction and tax savings for a premium and income",
	Run: func(cmd *cobra.Command, args []string) {
		monthly, _ := cmd.Flags().GetFloat64("premium")
		income, _ := cmd.Flags().GetFloat64("income")
		if monthly <= 0 || income < 0 {
			log.Fatal("require --premium > 0 and --income >= 0")
		}

		engine := tax.NewEngine()
		annual := decimal.NewFromFloat(monthly).Mul(decimal.NewFromInt(12))
		taxable := decimal.NewFromFloat(income)

		deduction, err := engine.Deduction(annual)
		if err != nil {
			log.Fatal(err)
		}
		savings := engine.TaxSavings(deduction, taxable)

		fmt.Printf("Annual premium:      %s\n", output.FormatCurrency(annual))
		fmt.Printf("Deduction:           %s\n", output.FormatCurrency(deduction))
		fmt.Printf("Income tax savings:  %s\n", output.FormatCurrency(savings.IncomeTaxSavings))
		fmt.Printf("Resident tax savings: %s\n", output.FormatCurrency(savings.ResidentTaxSavings))
		fmt.Printf("Total per year:      %s\n", output.FormatCurrency(savings.Total))
		fmt.Printf("Marginal rate:       %s\n", output.FormatPercent(engine.Schedule.MarginalRate(taxable)))
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a configuration file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		loadInputs(args[0])
		fmt.Printf("Configuration file %s is valid\n", args[0])
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "polisim %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Version)
			}
		},
	}
}

// loadInputs parses and validates the run configuration, exiting on
// failure.
func loadInputs(path string) *config.RunInputs {
	parser := config.NewInputParser()
	input, err := parser.LoadFromFile(path)
	if err != nil {
		log.Fatal(err)
	}
	inputs, err := input.Build()
	if err != nil {
		log.Fatal(err)
	}
	return inputs
}

// strategyFromFlags builds a single strategy descriptor from the
// simulate command's flags.
func strategyFromFlags(cmd *cobra.Command) (domain.Strategy, error) {
	kind, _ := cmd.Flags().GetString("strategy")
	year, _ := cmd.Flags().GetInt("year")
	interval, _ := cmd.Flags().GetInt("interval")
	ratio, _ := cmd.Flags().GetFloat64("ratio")
	fee, _ := cmd.Flags().GetFloat64("fee")

	switch kind {
	case "full":
		return domain.Strategy{Kind: domain.FullWithdrawal, Year: year}, nil
	case "partial":
		return domain.Strategy{
			Kind:     domain.PartialWithdrawal,
			Interval: interval,
			Ratio:    decimal.NewFromFloat(ratio),
		}, nil
	case "switch":
		return domain.Strategy{
			Kind:    domain.Switch,
			Year:    year,
			FeeRate: decimal.NewFromFloat(fee),
		}, nil
	default:
		return domain.Strategy{}, fmt.Errorf("unknown strategy %q (want full, partial, or switch)", kind)
	}
}

func printResult(r domain.StrategyResult) {
	fmt.Printf("STRATEGY: %s\n", r.Label)
	fmt.Println("----------------------------------------")
	fmt.Printf("Net benefit:         %s\n", output.FormatCurrency(r.NetBenefit))
	fmt.Printf("Instrument value:    %s\n", output.FormatCurrency(r.TerminalBalance))
	fmt.Printf("Reinvested value:    %s\n", output.FormatCurrency(r.ReinvestedValue))
	fmt.Printf("Contributions:       %s\n", output.FormatCurrency(r.Contributions))
	fmt.Printf("Total fees:          %s\n", output.FormatCurrency(r.TotalFees))
	fmt.Printf("Tax savings:         %s\n", output.FormatCurrency(r.TaxSavings))
	fmt.Printf("One-time tax:        %s\n", output.FormatCurrency(r.OneTimeTax))
	fmt.Printf("Effective annual:    %s\n", output.FormatPercent(r.EffectiveAnnualReturn))
	fmt.Printf("IRR:                 %s\n", output.FormatIRR(r.IRR, r.IRRValid))
	fmt.Println()
}

func main() {
	rankCmd.Flags().String("format", "table", "Output format (table, csv, json)")
	rankCmd.Flags().Int("workers", 0, "Worker count (default: one per CPU)")
	rankCmd.Flags().Bool("debug", false, "Enable debug logging")

	simulateCmd.Flags().String("strategy", "full", "Strategy kind (full, partial, switch)")
	simulateCmd.Flags().Int("year", 1, "Withdrawal or switch year")
	simulateCmd.Flags().Int("interval", 2, "Partial withdrawal interval in years")
	simulateCmd.Flags().Float64("ratio", 0.5, "Partial withdrawal ratio in (0, 1]")
	simulateCmd.Flags().Float64("fee", 0, "Switch fee rate in [0, 1)")

	taxCmd.Flags().Float64("premium", 0, "Monthly premium")
	taxCmd.Flags().Float64("income", 0, "Annual taxable income")

	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(taxCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
