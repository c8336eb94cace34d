package strategy

import (
	apperrors "options-analyzer/internal/errors"
	"options-analyzer/internal/models"
)

// LongCall is a bought call: debit paid, unlimited upside.
type LongCall struct {
	Strike   float64
	Premium  float64
	Quantity int
}

func (s LongCall) Type() models.StrategyType { return models.StrategyLongCall }

func (s LongCall) Legs() []models.OptionLeg {
	return []models.OptionLeg{leg(models.Call, models.Long, s.Strike, s.Premium, s.Quantity)}
}

func (s LongCall) Validate() error {
	return validateSingleLeg(s.Strike, s.Premium, s.Quantity)
}

func (s LongCall) compute() *models.StrategyMetrics {
	cost := contractValue(s.Premium, s.Quantity)
	return &models.StrategyMetrics{
		NetCost:         cost,
		MaxProfit:       models.Unlimited(),
		MaxLoss:         models.Bounded(cost),
		BreakEvenPoints: []float64{s.Strike + s.Premium},
	}
}

func (s LongCall) probabilityQuery() (models.Side, models.OptionType) {
	return models.Long, models.Call
}

// LongPut is a bought put: debit paid, profit capped at a worthless
// underlying.
type LongPut struct {
	Strike   float64
	Premium  float64
	Quantity int
}

func (s LongPut) Type() models.StrategyType { return models.StrategyLongPut }

func (s LongPut) Legs() []models.OptionLeg {
	return []models.OptionLeg{leg(models.Put, models.Long, s.Strike, s.Premium, s.Quantity)}
}

func (s LongPut) Validate() error {
	return validateSingleLeg(s.Strike, s.Premium, s.Quantity)
}

func (s LongPut) compute() *models.StrategyMetrics {
	cost := contractValue(s.Premium, s.Quantity)
	return &models.StrategyMetrics{
		NetCost:         cost,
		MaxProfit:       models.Bounded(contractValue(s.Strike-s.Premium, s.Quantity)),
		MaxLoss:         models.Bounded(cost),
		BreakEvenPoints: []float64{s.Strike - s.Premium},
	}
}

func (s LongPut) probabilityQuery() (models.Side, models.OptionType) {
	return models.Long, models.Put
}

// ShortCall is a written call: credit received, unlimited risk.
type ShortCall struct {
	Strike   float64
	Premium  float64
	Quantity int
}

func (s ShortCall) Type() models.StrategyType { return models.StrategyShortCall }

func (s ShortCall) Legs() []models.OptionLeg {
	return []models.OptionLeg{leg(models.Call, models.Short, s.Strike, s.Premium, s.Quantity)}
}

func (s ShortCall) Validate() error {
	return validateSingleLeg(s.Strike, s.Premium, s.Quantity)
}

func (s ShortCall) compute() *models.StrategyMetrics {
	credit := contractValue(s.Premium, s.Quantity)
	return &models.StrategyMetrics{
		NetCost:         -credit,
		MaxProfit:       models.Bounded(credit),
		MaxLoss:         models.Unlimited(),
		BreakEvenPoints: []float64{s.Strike + s.Premium},
	}
}

func (s ShortCall) probabilityQuery() (models.Side, models.OptionType) {
	return models.Short, models.Call
}

// ShortPut is a written put: credit received, risk capped at a worthless
// underlying.
type ShortPut struct {
	Strike   float64
	Premium  float64
	Quantity int
}

func (s ShortPut) Type() models.StrategyType { return models.StrategyShortPut }

func (s ShortPut) Legs() []models.OptionLeg {
	return []models.OptionLeg{leg(models.Put, models.Short, s.Strike, s.Premium, s.Quantity)}
}

func (s ShortPut) Validate() error {
	return validateSingleLeg(s.Strike, s.Premium, s.Quantity)
}

func (s ShortPut) compute() *models.StrategyMetrics {
	credit := contractValue(s.Premium, s.Quantity)
	return &models.StrategyMetrics{
		NetCost:         -credit,
		MaxProfit:       models.Bounded(credit),
		MaxLoss:         models.Bounded(contractValue(s.Strike-s.Premium, s.Quantity)),
		BreakEvenPoints: []float64{s.Strike - s.Premium},
	}
}

func (s ShortPut) probabilityQuery() (models.Side, models.OptionType) {
	return models.Short, models.Put
}

func leg(t models.OptionType, side models.Side, strike, premium float64, quantity int) models.OptionLeg {
	return models.OptionLeg{
		Type:              t,
		Position:          side,
		Strike:            strike,
		Premium:           premium,
		Quantity:          quantity,
		SharesPerContract: models.DefaultSharesPerContract,
	}
}

func validateSingleLeg(strike, premium float64, quantity int) error {
	if strike <= 0 {
		return apperrors.NewValidationError("strike", strike, "must be positive")
	}
	if premium < 0 {
		return apperrors.NewValidationError("premium", premium, "must be non-negative")
	}
	if quantity <= 0 {
		return apperrors.NewValidationError("quantity", quantity, "must be positive")
	}
	return nil
}
