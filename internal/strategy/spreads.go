package strategy

import (
	"math"

	apperrors "options-analyzer/internal/errors"
	"options-analyzer/internal/models"
)

// BullPutSpread sells a put and buys a further out-of-the-money put below
// it: net credit received, both profit and risk capped by the strike width.
type BullPutSpread struct {
	ShortStrike  float64
	ShortPremium float64
	LongStrike   float64
	LongPremium  float64
	Quantity     int
}

func (s BullPutSpread) Type() models.StrategyType { return models.StrategyBullPutSpread }

func (s BullPutSpread) Legs() []models.OptionLeg {
	return []models.OptionLeg{
		leg(models.Put, models.Short, s.ShortStrike, s.ShortPremium, s.Quantity),
		leg(models.Put, models.Long, s.LongStrike, s.LongPremium, s.Quantity),
	}
}

func (s BullPutSpread) Validate() error {
	if err := validateSpread(s.ShortStrike, s.ShortPremium, s.LongStrike, s.LongPremium, s.Quantity); err != nil {
		return err
	}
	// Put credit spread: the short strike sits above the long strike.
	if s.ShortStrike <= s.LongStrike {
		return apperrors.Wrapf(apperrors.ErrStrikeOrdering,
			"bull put spread requires short strike %v above long strike %v", s.ShortStrike, s.LongStrike)
	}
	return nil
}

func (s BullPutSpread) compute() *models.StrategyMetrics {
	credit := contractValue(s.ShortPremium-s.LongPremium, s.Quantity)
	maxLoss := contractValue(s.ShortStrike-s.LongStrike, s.Quantity) - credit
	m := &models.StrategyMetrics{
		NetCost:         -credit,
		MaxProfit:       models.Bounded(credit),
		MaxLoss:         models.Bounded(maxLoss),
		BreakEvenPoints: []float64{s.ShortStrike - (s.ShortPremium - s.LongPremium)},
	}
	m.ReturnOnRisk = returnOnRisk(credit, maxLoss)
	return m
}

func (s BullPutSpread) probabilityQuery() (models.Side, models.OptionType) {
	// Profit comes from the short put expiring worthless above break-even.
	return models.Short, models.Put
}

// BearCallSpread sells a call and buys a further out-of-the-money call above
// it: net credit received, both profit and risk capped by the strike width.
type BearCallSpread struct {
	ShortStrike  float64
	ShortPremium float64
	LongStrike   float64
	LongPremium  float64
	Quantity     int
}

func (s BearCallSpread) Type() models.StrategyType { return models.StrategyBearCallSpread }

func (s BearCallSpread) Legs() []models.OptionLeg {
	return []models.OptionLeg{
		leg(models.Call, models.Short, s.ShortStrike, s.ShortPremium, s.Quantity),
		leg(models.Call, models.Long, s.LongStrike, s.LongPremium, s.Quantity),
	}
}

func (s BearCallSpread) Validate() error {
	if err := validateSpread(s.ShortStrike, s.ShortPremium, s.LongStrike, s.LongPremium, s.Quantity); err != nil {
		return err
	}
	// Call credit spread: the short strike sits below the long strike.
	if s.ShortStrike >= s.LongStrike {
		return apperrors.Wrapf(apperrors.ErrStrikeOrdering,
			"bear call spread requires short strike %v below long strike %v", s.ShortStrike, s.LongStrike)
	}
	return nil
}

func (s BearCallSpread) compute() *models.StrategyMetrics {
	credit := contractValue(s.ShortPremium-s.LongPremium, s.Quantity)
	maxLoss := contractValue(s.LongStrike-s.ShortStrike, s.Quantity) - credit
	m := &models.StrategyMetrics{
		NetCost:         -credit,
		MaxProfit:       models.Bounded(credit),
		MaxLoss:         models.Bounded(maxLoss),
		BreakEvenPoints: []float64{s.ShortStrike + (s.ShortPremium - s.LongPremium)},
	}
	m.ReturnOnRisk = returnOnRisk(credit, maxLoss)
	return m
}

func (s BearCallSpread) probabilityQuery() (models.Side, models.OptionType) {
	// Profit comes from the short call expiring worthless below break-even.
	return models.Short, models.Call
}

// returnOnRisk is maxProfit / |maxLoss| as a percentage, or nil when the
// structure carries no risk and the division is undefined.
func returnOnRisk(maxProfit, maxLoss float64) *float64 {
	if maxLoss == 0 {
		return nil
	}
	ror := maxProfit / math.Abs(maxLoss) * 100
	return &ror
}

func validateSpread(shortStrike, shortPremium, longStrike, longPremium float64, quantity int) error {
	if shortStrike <= 0 {
		return apperrors.NewValidationError("shortStrike", shortStrike, "must be positive")
	}
	if longStrike <= 0 {
		return apperrors.NewValidationError("longStrike", longStrike, "must be positive")
	}
	if shortPremium < 0 {
		return apperrors.NewValidationError("shortPremium", shortPremium, "must be non-negative")
	}
	if longPremium < 0 {
		return apperrors.NewValidationError("longPremium", longPremium, "must be non-negative")
	}
	if quantity <= 0 {
		return apperrors.NewValidationError("quantity", quantity, "must be positive")
	}
	// Both canonical spreads are credit structures.
	if shortPremium <= longPremium {
		return apperrors.NewValidationError("shortPremium", shortPremium,
			"credit spread requires the short premium to exceed the long premium")
	}
	return nil
}
