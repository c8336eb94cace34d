// Package marketdata defines the quote lookup collaborators the request
// layer depends on. The analysis core never imports this package; it only
// consumes the numbers a Provider supplies.
package marketdata

import (
	"context"
	"math"
	"sync"
	"time"

	apperrors "options-analyzer/internal/errors"
	"options-analyzer/internal/logging"
	"options-analyzer/internal/models"
)

// StockQuote is a snapshot of the underlying.
type StockQuote struct {
	Symbol        string
	Price         float64
	Change        float64
	ChangePercent float64
	AsOf          time.Time
}

// OptionQuote is a snapshot of a single option contract.
type OptionQuote struct {
	Symbol            string
	Strike            float64
	Type              models.OptionType
	Bid               float64
	Ask               float64
	Last              float64
	ImpliedVolatility float64
	DaysToExpiration  int
}

// Mid returns the bid/ask midpoint, falling back to the last trade when the
// book is one-sided.
func (q OptionQuote) Mid() float64 {
	if q.Bid > 0 && q.Ask > 0 {
		return (q.Bid + q.Ask) / 2
	}
	return q.Last
}

// Provider supplies quotes to the request layer. Implementations are
// injected rather than reached through a process-wide singleton.
type Provider interface {
	GetQuote(ctx context.Context, symbol string) (*StockQuote, error)
	GetOptionQuote(ctx context.Context, symbol string, strike float64, optType models.OptionType, daysToExpiration int) (*OptionQuote, error)
}

// StaticProvider is an in-memory Provider for fixtures and offline use.
type StaticProvider struct {
	mu      sync.RWMutex
	quotes  map[string]StockQuote
	options map[string][]OptionQuote
}

// NewStaticProvider creates an empty StaticProvider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		quotes:  make(map[string]StockQuote),
		options: make(map[string][]OptionQuote),
	}
}

// SetQuote stores or replaces the underlying quote for a symbol.
func (p *StaticProvider) SetQuote(q StockQuote) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.quotes[q.Symbol] = q
}

// AddOption stores an option quote for a symbol.
func (p *StaticProvider) AddOption(q OptionQuote) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.options[q.Symbol] = append(p.options[q.Symbol], q)
}

// GetQuote returns the stored quote for a symbol.
func (p *StaticProvider) GetQuote(ctx context.Context, symbol string) (*StockQuote, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	q, ok := p.quotes[symbol]
	if !ok {
		return nil, apperrors.NewDataError("quote", symbol, "not in static provider", apperrors.ErrSymbolNotFound)
	}
	logger := logging.FromContext(ctx)
	logger.Debug().Str("symbol", symbol).Float64("price", q.Price).Msg("Static quote served")
	return &q, nil
}

// GetOptionQuote returns the stored contract closest to the requested strike
// among those matching the option type and expiry.
func (p *StaticProvider) GetOptionQuote(ctx context.Context, symbol string, strike float64, optType models.OptionType, daysToExpiration int) (*OptionQuote, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var best *OptionQuote
	for i := range p.options[symbol] {
		q := p.options[symbol][i]
		if q.Type != optType || q.DaysToExpiration != daysToExpiration {
			continue
		}
		if best == nil || math.Abs(q.Strike-strike) < math.Abs(best.Strike-strike) {
			best = &q
		}
	}
	if best == nil {
		return nil, apperrors.NewDataError("option", symbol, "no matching contract", apperrors.ErrQuoteUnavailable)
	}
	logger := logging.FromContext(ctx)
	logger.Debug().
		Str("symbol", symbol).
		Float64("requested_strike", strike).
		Float64("matched_strike", best.Strike).
		Msg("Static option quote served")
	out := *best
	return &out, nil
}
