package payoff

import (
	"math"

	apperrors "options-analyzer/internal/errors"
	"options-analyzer/internal/models"
)

// scanStep is the terminal price increment of the break-even scan, one cent.
const scanStep = 0.01

// zeroTolerance absorbs float64 noise when testing aggregate P&L for zero.
// Payoffs are dollar amounts, so anything under a millionth of a cent is zero.
const zeroTolerance = 1e-6

// FindBreakEvens scans terminal prices in one-cent increments across
// [0.5*currentPrice, 1.5*currentPrice] and records a break-even wherever the
// aggregate P&L changes sign between consecutive steps. A zero landing
// exactly on a step counts once. Results are ascending.
//
// This is the generic fallback for arbitrary leg combinations; the canonical
// single-leg and spread strategies get exact break-evens from the strategy
// package instead.
func FindBreakEvens(legs []models.OptionLeg, currentPrice float64) ([]float64, error) {
	if err := validateLegs(legs); err != nil {
		return nil, err
	}
	if currentPrice <= 0 {
		return nil, apperrors.NewValidationError("currentPrice", currentPrice, "must be positive")
	}

	low := RoundCents(currentPrice * 0.5)
	high := currentPrice * 1.5
	steps := int(math.Round((high - low) / scanStep))

	points := []float64{}
	prev := Aggregate(legs, low)
	if isZero(prev) {
		points = append(points, low)
	}
	for i := 1; i <= steps; i++ {
		price := RoundCents(low + float64(i)*scanStep)
		cur := Aggregate(legs, price)
		if crossed(prev, cur) {
			points = append(points, price)
		}
		prev = cur
	}
	return points, nil
}

// crossed reports whether the P&L sign changed between consecutive samples.
// An exact zero registers on the step where it lands and is not counted
// again when the curve leaves zero.
func crossed(prev, cur float64) bool {
	if isZero(cur) {
		return !isZero(prev)
	}
	if isZero(prev) {
		return false
	}
	return (prev < 0) != (cur < 0)
}

func isZero(v float64) bool {
	return math.Abs(v) < zeroTolerance
}
