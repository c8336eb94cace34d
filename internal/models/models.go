// Package models defines the core value objects for option strategy analysis.
package models

import "encoding/json"

// OptionType identifies a call or put contract.
type OptionType string

const (
	Call OptionType = "CALL"
	Put  OptionType = "PUT"
)

// Opposite returns the other option type.
func (t OptionType) Opposite() OptionType {
	if t == Call {
		return Put
	}
	return Call
}

// Side identifies the direction of a position.
type Side string

const (
	Long  Side = "LONG"
	Short Side = "SHORT"
)

// StrategyType identifies one of the canonical closed-form strategies.
type StrategyType string

const (
	StrategyLongCall       StrategyType = "long-call"
	StrategyLongPut        StrategyType = "long-put"
	StrategyShortCall      StrategyType = "short-call"
	StrategyShortPut       StrategyType = "short-put"
	StrategyBullPutSpread  StrategyType = "bull-put-spread"
	StrategyBearCallSpread StrategyType = "bear-call-spread"
)

// StrategyTypes lists all supported strategy types.
func StrategyTypes() []StrategyType {
	return []StrategyType{
		StrategyLongCall,
		StrategyLongPut,
		StrategyShortCall,
		StrategyShortPut,
		StrategyBullPutSpread,
		StrategyBearCallSpread,
	}
}

// Money is a dollar amount that may be unbounded, such as the maximum profit
// of a long call. Unbounded amounts marshal to JSON null so the sentinel
// survives transport without an IEEE infinity.
type Money struct {
	Value     float64
	Unbounded bool
}

// Bounded returns a bounded dollar amount.
func Bounded(v float64) Money {
	return Money{Value: v}
}

// Unlimited returns the unbounded sentinel.
func Unlimited() Money {
	return Money{Unbounded: true}
}

// MarshalJSON encodes unbounded amounts as null.
func (m Money) MarshalJSON() ([]byte, error) {
	if m.Unbounded {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON decodes null as the unbounded sentinel.
func (m *Money) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Money{Unbounded: true}
		return nil
	}
	m.Unbounded = false
	return json.Unmarshal(data, &m.Value)
}

// StrategyMetrics holds the summary risk metrics for a strategy. It is
// recomputed on every request and never persisted.
type StrategyMetrics struct {
	NetCost           float64   `json:"netCost"`
	MaxProfit         Money     `json:"maxProfit"`
	MaxLoss           Money     `json:"maxLoss"`
	BreakEvenPoints   []float64 `json:"breakEvenPoints"`
	ProfitProbability *float64  `json:"profitProbability,omitempty"`
	ReturnOnRisk      *float64  `json:"returnOnRisk,omitempty"`
}

// ProfitLossPoint is one sample of a payoff curve.
type ProfitLossPoint struct {
	StockPrice float64 `json:"stockPrice"`
	ProfitLoss float64 `json:"profitLoss"`
}
