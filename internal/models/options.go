package models

import (
	apperrors "options-analyzer/internal/errors"
)

// DefaultSharesPerContract is the standard US equity option multiplier.
const DefaultSharesPerContract = 100

// OptionLeg is one option position within a strategy. Premium is quoted per
// share; multiply by SharesPerContract for the full contract cost. Legs are
// assembled per request by the caller and never persisted.
type OptionLeg struct {
	Type              OptionType `json:"type"`
	Position          Side       `json:"position"`
	Strike            float64    `json:"strikePrice"`
	Premium           float64    `json:"premium"`
	Quantity          int        `json:"quantity"`
	SharesPerContract int        `json:"sharesPerContract"`
}

// Shares returns the contract multiplier, defaulting to 100 when unset.
func (l OptionLeg) Shares() int {
	if l.SharesPerContract <= 0 {
		return DefaultSharesPerContract
	}
	return l.SharesPerContract
}

// Validate checks the leg invariants.
func (l OptionLeg) Validate() error {
	if l.Type != Call && l.Type != Put {
		return apperrors.NewValidationError("type", l.Type, "must be CALL or PUT")
	}
	if l.Position != Long && l.Position != Short {
		return apperrors.NewValidationError("position", l.Position, "must be LONG or SHORT")
	}
	if l.Strike <= 0 {
		return apperrors.NewValidationError("strikePrice", l.Strike, "must be positive")
	}
	if l.Premium < 0 {
		return apperrors.NewValidationError("premium", l.Premium, "must be non-negative")
	}
	if l.Quantity <= 0 {
		return apperrors.NewValidationError("quantity", l.Quantity, "must be positive")
	}
	if l.SharesPerContract < 0 {
		return apperrors.NewValidationError("sharesPerContract", l.SharesPerContract, "must be non-negative")
	}
	return nil
}
