// Package strategy computes exact risk metrics for the canonical option
// strategies via closed-form algebra, without scanning the payoff curve.
//
// Each strategy is its own definition type, so the fields a strategy needs
// are enforced by the compiler instead of by optional-field convention.
package strategy

import (
	apperrors "options-analyzer/internal/errors"
	"options-analyzer/internal/models"
	"options-analyzer/internal/probability"
)

// Definition describes a canonical strategy whose metrics have a closed
// form. The unexported method seals the set to this package; arbitrary leg
// combinations go through the payoff scan instead.
type Definition interface {
	// Type returns the strategy identifier.
	Type() models.StrategyType
	// Legs materializes the strategy as option legs for curve sampling
	// and the generic break-even scan.
	Legs() []models.OptionLeg
	// Validate checks required fields and strike ordering conventions.
	Validate() error

	compute() *models.StrategyMetrics
	probabilityQuery() (models.Side, models.OptionType)
}

// Options carry the optional market inputs for ComputeMetrics.
type Option func(*computeOptions)

type computeOptions struct {
	riskFreeRate      float64
	impliedVolatility float64
	daysToExpiration  int
	wantProbability   bool
}

// WithVolatility supplies annualized implied volatility (e.g. 0.25 for 25%).
func WithVolatility(sigma float64) Option {
	return func(o *computeOptions) {
		o.impliedVolatility = sigma
		o.wantProbability = true
	}
}

// WithDaysToExpiration supplies the calendar day count until expiry.
func WithDaysToExpiration(days int) Option {
	return func(o *computeOptions) {
		o.daysToExpiration = days
		o.wantProbability = true
	}
}

// WithRiskFreeRate overrides the default annualized risk-free rate.
func WithRiskFreeRate(r float64) Option {
	return func(o *computeOptions) {
		o.riskFreeRate = r
	}
}

// ComputeMetrics validates the definition and returns its exact metrics.
// When implied volatility or days-to-expiration are supplied, the metrics
// additionally carry a profit probability keyed on the closed-form
// break-even; missing market data degrades that figure to 50% rather than
// dropping it.
func ComputeMetrics(def Definition, currentPrice float64, opts ...Option) (*models.StrategyMetrics, error) {
	if def == nil {
		return nil, apperrors.ErrInvalidStrategy
	}
	if currentPrice <= 0 {
		return nil, apperrors.NewValidationError("currentPrice", currentPrice, "must be positive")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	metrics := def.compute()

	o := computeOptions{riskFreeRate: probability.DefaultRiskFreeRate}
	for _, opt := range opts {
		opt(&o)
	}
	if o.wantProbability && len(metrics.BreakEvenPoints) > 0 {
		side, optType := def.probabilityQuery()
		p := probability.ProfitProbability(
			currentPrice,
			metrics.BreakEvenPoints[0],
			o.impliedVolatility,
			o.daysToExpiration,
			o.riskFreeRate,
			side,
			optType,
		)
		metrics.ProfitProbability = &p
	}
	return metrics, nil
}

// New returns an unvalidated definition for the given strategy type. Single
// strikes and premiums map to the short leg for spreads' short side and the
// long strike/premium to the long side; callers with full type information
// should construct the definition structs directly.
func New(t models.StrategyType, quantity int, strike, premium, longStrike, longPremium float64) (Definition, error) {
	switch t {
	case models.StrategyLongCall:
		return LongCall{Strike: strike, Premium: premium, Quantity: quantity}, nil
	case models.StrategyLongPut:
		return LongPut{Strike: strike, Premium: premium, Quantity: quantity}, nil
	case models.StrategyShortCall:
		return ShortCall{Strike: strike, Premium: premium, Quantity: quantity}, nil
	case models.StrategyShortPut:
		return ShortPut{Strike: strike, Premium: premium, Quantity: quantity}, nil
	case models.StrategyBullPutSpread:
		return BullPutSpread{
			ShortStrike:  strike,
			ShortPremium: premium,
			LongStrike:   longStrike,
			LongPremium:  longPremium,
			Quantity:     quantity,
		}, nil
	case models.StrategyBearCallSpread:
		return BearCallSpread{
			ShortStrike:  strike,
			ShortPremium: premium,
			LongStrike:   longStrike,
			LongPremium:  longPremium,
			Quantity:     quantity,
		}, nil
	default:
		return nil, apperrors.Wrapf(apperrors.ErrUnknownStrategy, "%q", t)
	}
}

// contractValue converts a per-share amount into dollars for qty contracts.
func contractValue(perShare float64, quantity int) float64 {
	return perShare * float64(quantity) * models.DefaultSharesPerContract
}
