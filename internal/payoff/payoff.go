// Package payoff evaluates option strategy profit and loss at expiration.
//
// Everything here is a pure function of its inputs: no I/O, no shared state,
// safe to call concurrently.
package payoff

import (
	"math"

	"github.com/shopspring/decimal"

	apperrors "options-analyzer/internal/errors"
	"options-analyzer/internal/models"
)

const (
	// CurvePoints is the number of samples in a generated payoff curve
	// (100 equal steps, inclusive endpoints).
	CurvePoints = 101

	// DefaultPriceRange samples terminal prices within ±50% of the
	// current price.
	DefaultPriceRange = 0.5
)

// Evaluate returns the dollar profit or loss of a single leg if the
// underlying finishes at terminalPrice. Premium paid or received is
// included, so the result is P&L rather than raw intrinsic value.
func Evaluate(leg models.OptionLeg, terminalPrice float64) float64 {
	var intrinsic float64
	switch leg.Type {
	case models.Call:
		intrinsic = math.Max(0, terminalPrice-leg.Strike)
	case models.Put:
		intrinsic = math.Max(0, leg.Strike-terminalPrice)
	}

	perShare := intrinsic - leg.Premium
	if leg.Position == models.Short {
		perShare = leg.Premium - intrinsic
	}
	return perShare * float64(leg.Quantity) * float64(leg.Shares())
}

// Aggregate sums the leg payoffs of a strategy at terminalPrice.
func Aggregate(legs []models.OptionLeg, terminalPrice float64) float64 {
	var total float64
	for _, leg := range legs {
		total += Evaluate(leg, terminalPrice)
	}
	return total
}

// GenerateCurve samples the aggregate payoff across a uniform terminal price
// grid spanning [currentPrice*(1-priceRange), currentPrice*(1+priceRange)].
// Prices and P&L values are rounded to cents. Identical inputs always yield
// an identical sequence.
func GenerateCurve(legs []models.OptionLeg, currentPrice, priceRange float64) ([]models.ProfitLossPoint, error) {
	if err := validateLegs(legs); err != nil {
		return nil, err
	}
	if currentPrice <= 0 {
		return nil, apperrors.NewValidationError("currentPrice", currentPrice, "must be positive")
	}
	if priceRange <= 0 || priceRange > 1 {
		return nil, apperrors.NewValidationError("priceRange", priceRange, "must be in (0, 1]")
	}

	low := currentPrice * (1 - priceRange)
	step := currentPrice * priceRange * 2 / float64(CurvePoints-1)

	curve := make([]models.ProfitLossPoint, 0, CurvePoints)
	for i := 0; i < CurvePoints; i++ {
		price := RoundCents(low + float64(i)*step)
		curve = append(curve, models.ProfitLossPoint{
			StockPrice: price,
			ProfitLoss: RoundCents(Aggregate(legs, price)),
		})
	}
	return curve, nil
}

// RoundCents rounds a dollar value to cent precision.
func RoundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func validateLegs(legs []models.OptionLeg) error {
	if len(legs) == 0 {
		return apperrors.NewValidationError("legs", len(legs), "at least one leg required")
	}
	for _, leg := range legs {
		if err := leg.Validate(); err != nil {
			return err
		}
	}
	return nil
}
