package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"options-analyzer/internal/logging"
	"options-analyzer/internal/models"
	"options-analyzer/internal/payoff"
	"options-analyzer/internal/probability"
	"options-analyzer/internal/strategy"
)

// addAnalysisCommands adds the strategy analysis commands.
func addAnalysisCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newStrategyCmd(app))
	rootCmd.AddCommand(newPayoffCmd(app))
	rootCmd.AddCommand(newBreakEvenCmd(app))
	rootCmd.AddCommand(newProbabilityCmd(app))
}

func newStrategyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategy <type>",
		Short: "Compute risk metrics for a canonical strategy",
		Long: `Compute net cost, max profit, max loss, break-even and return on risk for
one of the canonical strategies using exact closed-form algebra.

Single-leg strategies take --strike and --premium. Spreads take
--short-strike/--short-premium and --long-strike/--long-premium.
With --iv and --dte the metrics include a profit probability.

When --symbol and --dte are given without --premium, single-leg premiums
and implied volatility come from the quote provider.`,
		Example: `  analyzer strategy long-call --price 100 --strike 100 --premium 5
  analyzer strategy bull-put-spread --price 100 --short-strike 100 --short-premium 3 --long-strike 95 --long-premium 1
  analyzer strategy long-call --symbol AAPL --strike 190 --premium 4.20 --iv 0.25 --dte 30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			t := models.StrategyType(args[0])

			iv, _ := cmd.Flags().GetFloat64("iv")
			dte, _ := cmd.Flags().GetInt("dte")
			if err := fillPremiumFromQuote(cmd, app, t, &iv, dte); err != nil {
				output.Error("%v", err)
				return err
			}

			def, err := definitionFromFlags(cmd, t)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			currentPrice, err := resolvePrice(cmd, app)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			opts := []strategy.Option{strategy.WithRiskFreeRate(app.Config.Analysis.RiskFreeRate)}
			if iv > 0 {
				opts = append(opts, strategy.WithVolatility(iv))
			}
			if dte > 0 {
				opts = append(opts, strategy.WithDaysToExpiration(dte))
			}

			metrics, err := strategy.ComputeMetrics(def, currentPrice, opts...)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			logger := logging.WithStrategy(app.Logger, string(def.Type()))
			logging.LogAnalysis(logger, currentPrice, metrics.NetCost, metrics.BreakEvenPoints)
			if metrics.ProfitProbability != nil && len(metrics.BreakEvenPoints) > 0 {
				logging.LogProbability(logger, metrics.BreakEvenPoints[0], iv, dte, *metrics.ProfitProbability)
			}

			if output.IsJSON() {
				return output.JSON(metrics)
			}
			return displayMetrics(output, def, currentPrice, metrics)
		},
	}

	addStrategyFlags(cmd)
	cmd.Flags().Float64("iv", 0, "annualized implied volatility (e.g. 0.25)")
	cmd.Flags().Int("dte", 0, "calendar days to expiration")

	return cmd
}

func displayMetrics(output *Output, def strategy.Definition, currentPrice float64, m *models.StrategyMetrics) error {
	output.Bold("%s", strategyTitle(def.Type()))
	output.Printf("  Underlying: %s\n\n", FormatPrice(currentPrice))

	legsTable := NewTable(output, "Position", "Type", "Strike", "Premium", "Qty")
	for _, leg := range def.Legs() {
		legsTable.AddRow(
			string(leg.Position), string(leg.Type),
			FormatPrice(leg.Strike), FormatCurrency(leg.Premium),
			fmt.Sprintf("%d", leg.Quantity))
	}
	legsTable.Render()
	output.Println()

	output.Bold("Metrics")
	output.Printf("  Net Cost:     %s\n", FormatCurrency(m.NetCost))
	output.Printf("  Max Profit:   %s\n", output.Green(FormatMoney(m.MaxProfit)))
	output.Printf("  Max Loss:     %s\n", output.Red(FormatMoney(m.MaxLoss)))
	output.Printf("  Break-Even:   %s\n", FormatBreakEvens(m.BreakEvenPoints))
	if m.ReturnOnRisk != nil {
		output.Printf("  Return/Risk:  %.2f%%\n", *m.ReturnOnRisk)
	}
	if m.ProfitProbability != nil {
		output.Printf("  Profit Prob:  %s\n", FormatProbability(*m.ProfitProbability))
	}
	return nil
}

func strategyTitle(t models.StrategyType) string {
	words := strings.Split(string(t), "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func newPayoffCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payoff",
		Short: "Generate the payoff curve and diagram",
		Long: `Sample the aggregate payoff across a terminal price grid and render it
as an ASCII diagram. Legs come either from a canonical strategy
(--type plus its flags) or from explicit --leg specs / a --legs-file CSV.`,
		Example: `  analyzer payoff --type long-call --price 100 --strike 100 --premium 5
  analyzer payoff --price 100 --leg long:call:105:2.50:1 --leg long:put:95:2.10:1
  analyzer payoff --price 100 --legs-file legs.csv --range 0.3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			legs, err := collectLegs(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			currentPrice, err := resolvePrice(cmd, app)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			priceRange, _ := cmd.Flags().GetFloat64("range")
			if !cmd.Flags().Changed("range") {
				priceRange = app.Config.Analysis.CurveRange
			}

			curve, err := payoff.GenerateCurve(legs, currentPrice, priceRange)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(curve)
			}

			output.Bold("Payoff Diagram")
			output.Printf("  Underlying: %s  Range: ±%.0f%%\n\n", FormatPrice(currentPrice), priceRange*100)
			renderPayoffDiagram(output, curve)

			breakEvens, err := payoff.FindBreakEvens(legs, currentPrice)
			if err != nil {
				return err
			}
			output.Println()
			output.Printf("  Break-Even: %s\n", FormatBreakEvens(breakEvens))
			output.Printf("  P&L at %s: %s\n", FormatPrice(curve[0].StockPrice), output.FormatPnL(curve[0].ProfitLoss))
			output.Printf("  P&L at %s: %s\n", FormatPrice(curve[len(curve)-1].StockPrice), output.FormatPnL(curve[len(curve)-1].ProfitLoss))
			return nil
		},
	}

	addStrategyFlags(cmd)
	cmd.Flags().String("type", "", "canonical strategy type to build legs from")
	cmd.Flags().StringArray("leg", nil, "leg spec position:type:strike:premium:quantity (repeatable)")
	cmd.Flags().String("legs-file", "", "CSV file of legs")
	cmd.Flags().Float64("range", payoff.DefaultPriceRange, "price range around current price (0.5 = ±50%)")

	return cmd
}

func newBreakEvenCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breakeven",
		Short: "Locate break-even prices with the generic scan",
		Long: `Scan terminal prices in one-cent steps across ±50% of the current price
and report every price where the aggregate P&L crosses zero. Works for
arbitrary leg combinations, including multi-break-even structures.`,
		Example: `  analyzer breakeven --price 100 --leg long:call:100:5.00:1
  analyzer breakeven --price 100 --leg long:call:105:2.50:1 --leg long:put:95:2.10:1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			legs, err := collectLegs(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			currentPrice, err := resolvePrice(cmd, app)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			points, err := payoff.FindBreakEvens(legs, currentPrice)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"breakEvenPoints": points})
			}

			if len(points) == 0 {
				output.Warning("No break-even found within ±50%% of %s", FormatPrice(currentPrice))
				return nil
			}
			output.Bold("Break-Even Points")
			for _, p := range points {
				output.Printf("  %s\n", FormatPrice(p))
			}
			return nil
		},
	}

	addStrategyFlags(cmd)
	cmd.Flags().String("type", "", "canonical strategy type to build legs from")
	cmd.Flags().StringArray("leg", nil, "leg spec position:type:strike:premium:quantity (repeatable)")
	cmd.Flags().String("legs-file", "", "CSV file of legs")

	return cmd
}

func newProbabilityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probability",
		Short: "Estimate the probability an option expires in the money",
		Long: `Query the lognormal (Black-Scholes) estimator directly: the probability
that an option at the given strike finishes in or out of the money, plus
the intermediate d1/d2 terms.`,
		Example: `  analyzer probability --price 100 --strike 105 --iv 0.25 --dte 30
  analyzer probability --price 100 --strike 95 --option-type put --iv 0.30 --dte 45 --rate 0.04`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			price, _ := cmd.Flags().GetFloat64("price")
			strike, _ := cmd.Flags().GetFloat64("strike")
			iv, _ := cmd.Flags().GetFloat64("iv")
			dte, _ := cmd.Flags().GetInt("dte")
			rate, _ := cmd.Flags().GetFloat64("rate")
			if !cmd.Flags().Changed("rate") {
				rate = app.Config.Analysis.RiskFreeRate
			}
			optType := models.OptionType(strings.ToUpper(mustString(cmd, "option-type")))
			if optType != models.Call && optType != models.Put {
				err := fmt.Errorf("option-type must be call or put, got %q", optType)
				output.Error("%v", err)
				return err
			}

			est := probability.BlackScholes(price, strike, dte, rate, iv, optType)

			if output.IsJSON() {
				return output.JSON(est)
			}

			output.Bold("Probability Estimate")
			output.Printf("  %s %s  Strike: %s  DTE: %d  IV: %s\n\n",
				FormatPrice(price), optType, FormatPrice(strike), dte, FormatIV(iv))
			output.Printf("  P(ITM): %s\n", FormatProbability(est.ProbabilityITM))
			output.Printf("  P(OTM): %s\n", FormatProbability(est.ProbabilityOTM))
			output.Printf("  d1:     %.4f\n", est.D1)
			output.Printf("  d2:     %.4f\n", est.D2)
			return nil
		},
	}

	cmd.Flags().Float64("price", 0, "current underlying price")
	cmd.Flags().Float64("strike", 0, "strike price")
	cmd.Flags().Float64("iv", 0, "annualized implied volatility (e.g. 0.25)")
	cmd.Flags().Int("dte", 0, "calendar days to expiration")
	cmd.Flags().Float64("rate", probability.DefaultRiskFreeRate, "annualized risk-free rate")
	cmd.Flags().String("option-type", "call", "option type: call or put")

	return cmd
}

// addStrategyFlags registers the flags shared by strategy-driven commands.
func addStrategyFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("price", 0, "current underlying price")
	cmd.Flags().String("symbol", "", "look up current price via the quote provider")
	cmd.Flags().Float64("strike", 0, "strike price (single-leg strategies)")
	cmd.Flags().Float64("premium", 0, "premium per share (single-leg strategies)")
	cmd.Flags().Float64("short-strike", 0, "short leg strike (spreads)")
	cmd.Flags().Float64("short-premium", 0, "short leg premium per share (spreads)")
	cmd.Flags().Float64("long-strike", 0, "long leg strike (spreads)")
	cmd.Flags().Float64("long-premium", 0, "long leg premium per share (spreads)")
	cmd.Flags().Int("qty", 1, "number of contracts")
}

// definitionFromFlags builds a canonical strategy definition from flags.
func definitionFromFlags(cmd *cobra.Command, t models.StrategyType) (strategy.Definition, error) {
	qty, _ := cmd.Flags().GetInt("qty")

	switch t {
	case models.StrategyLongCall, models.StrategyLongPut, models.StrategyShortCall, models.StrategyShortPut:
		strike, _ := cmd.Flags().GetFloat64("strike")
		premium, _ := cmd.Flags().GetFloat64("premium")
		return strategy.New(t, qty, strike, premium, 0, 0)
	case models.StrategyBullPutSpread, models.StrategyBearCallSpread:
		shortStrike, _ := cmd.Flags().GetFloat64("short-strike")
		shortPremium, _ := cmd.Flags().GetFloat64("short-premium")
		longStrike, _ := cmd.Flags().GetFloat64("long-strike")
		longPremium, _ := cmd.Flags().GetFloat64("long-premium")
		return strategy.New(t, qty, shortStrike, shortPremium, longStrike, longPremium)
	default:
		return strategy.New(t, qty, 0, 0, 0, 0)
	}
}

// collectLegs resolves legs from --type flags or explicit leg inputs.
func collectLegs(cmd *cobra.Command) ([]models.OptionLeg, error) {
	typeFlag, _ := cmd.Flags().GetString("type")
	if typeFlag != "" {
		def, err := definitionFromFlags(cmd, models.StrategyType(typeFlag))
		if err != nil {
			return nil, err
		}
		if err := def.Validate(); err != nil {
			return nil, err
		}
		return def.Legs(), nil
	}

	specs, _ := cmd.Flags().GetStringArray("leg")
	file, _ := cmd.Flags().GetString("legs-file")
	return legsFromFlags(specs, file)
}

// fillPremiumFromQuote resolves --premium and implied volatility from the
// quote provider for single-leg strategies when only a symbol was given.
// Spreads always take explicit premiums.
func fillPremiumFromQuote(cmd *cobra.Command, app *App, t models.StrategyType, iv *float64, dte int) error {
	if cmd.Flags().Changed("premium") {
		return nil
	}
	symbol := mustString(cmd, "symbol")
	if symbol == "" || app.Quotes == nil || dte <= 0 {
		return nil
	}
	optType, ok := singleLegOptionType(t)
	if !ok {
		return nil
	}
	strike, _ := cmd.Flags().GetFloat64("strike")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ctx = logging.WithLogger(ctx, app.Logger)

	q, err := app.Quotes.GetOptionQuote(ctx, strings.ToUpper(symbol), strike, optType, dte)
	if err != nil {
		return fmt.Errorf("looking up %s %v %s: %w", symbol, strike, optType, err)
	}
	if err := cmd.Flags().Set("premium", strconv.FormatFloat(q.Mid(), 'f', -1, 64)); err != nil {
		return err
	}
	if *iv == 0 && q.ImpliedVolatility > 0 {
		*iv = q.ImpliedVolatility
	}
	return nil
}

func singleLegOptionType(t models.StrategyType) (models.OptionType, bool) {
	switch t {
	case models.StrategyLongCall, models.StrategyShortCall:
		return models.Call, true
	case models.StrategyLongPut, models.StrategyShortPut:
		return models.Put, true
	}
	return "", false
}

// resolvePrice returns --price or looks the symbol up via the quote provider.
func resolvePrice(cmd *cobra.Command, app *App) (float64, error) {
	price, _ := cmd.Flags().GetFloat64("price")
	if price > 0 {
		return price, nil
	}

	symbol, _ := cmd.Flags().GetString("symbol")
	if symbol == "" {
		return 0, fmt.Errorf("current price required: use --price or --symbol")
	}
	if app.Quotes == nil {
		return 0, fmt.Errorf("no quote provider configured, use --price")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ctx = logging.WithLogger(ctx, app.Logger)

	quote, err := app.Quotes.GetQuote(ctx, strings.ToUpper(symbol))
	if err != nil {
		return 0, fmt.Errorf("looking up %s: %w", symbol, err)
	}
	app.Logger.Debug().Str("symbol", quote.Symbol).Float64("price", quote.Price).Msg("Quote resolved")
	return quote.Price, nil
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
