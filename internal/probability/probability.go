// Package probability estimates the likelihood that an option finishes in
// the money, and by extension that a strategy finishes profitable, using the
// closed-form lognormal (Black-Scholes) model.
package probability

import (
	"math"

	"options-analyzer/internal/models"
)

// DefaultRiskFreeRate is the annualized risk-free rate assumed when the
// caller does not supply one.
const DefaultRiskFreeRate = 0.05

// daysPerYear converts a calendar day count into model time.
const daysPerYear = 365.0

// Estimate holds the in/out-of-the-money probabilities for a single option
// along with the intermediate d1/d2 terms.
type Estimate struct {
	ProbabilityITM float64 `json:"probabilityITM"`
	ProbabilityOTM float64 `json:"probabilityOTM"`
	D1             float64 `json:"d1"`
	D2             float64 `json:"d2"`
}

// BlackScholes returns the probability that an option on an underlying at
// price S with strike K expires in the money after the given number of
// calendar days, under volatility sigma and risk-free rate r.
//
// Degenerate inputs (days, sigma, S or K non-positive) return the documented
// default {ITM: 0, OTM: 1, d1: 0, d2: 0} rather than an error: with no time
// or no variance the model collapses and the caller gets the conservative
// answer.
func BlackScholes(S, K float64, days int, r, sigma float64, optType models.OptionType) Estimate {
	T := float64(days) / daysPerYear
	if T <= 0 || sigma <= 0 || S <= 0 || K <= 0 {
		return Estimate{ProbabilityITM: 0, ProbabilityOTM: 1}
	}

	sqrtT := math.Sqrt(T)
	d1 := (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT

	itm := NormCDF(d2)
	if optType == models.Put {
		itm = NormCDF(-d2)
	}

	return Estimate{
		ProbabilityITM: itm,
		ProbabilityOTM: 1 - itm,
		D1:             d1,
		D2:             d2,
	}
}

// ProfitProbability reframes "probability of profit" as an ITM query against
// the break-even price treated as a strike. A long (premium-paid) position
// profits when the original option type finishes in the money past
// break-even; a short (premium-received) position profits on the other side,
// so the option type is flipped before querying.
//
// When volatility or days-to-expiration are unavailable this returns 0.5, a
// statement of ignorance, not the estimator's 0%/100% degenerate default.
func ProfitProbability(currentPrice, breakEven, sigma float64, days int, r float64, position models.Side, optType models.OptionType) float64 {
	if sigma <= 0 || days <= 0 || currentPrice <= 0 || breakEven <= 0 {
		return 0.5
	}

	queryType := optType
	if position == models.Short {
		queryType = optType.Opposite()
	}
	return BlackScholes(currentPrice, breakEven, days, r, sigma, queryType).ProbabilityITM
}

// Coefficients of the Zelen & Severo rational polynomial approximation to
// the standard normal CDF (Abramowitz & Stegun 26.2.17).
const (
	cdfP  = 0.2316419
	cdfB1 = 0.319381530
	cdfB2 = -0.356563782
	cdfB3 = 1.781477937
	cdfB4 = -1.821255978
	cdfB5 = 1.330274429
)

// NormCDF is the standard normal cumulative distribution function, accurate
// to about 7.5e-8.
func NormCDF(x float64) float64 {
	if x < 0 {
		return 1 - NormCDF(-x)
	}
	t := 1 / (1 + cdfP*x)
	poly := t * (cdfB1 + t*(cdfB2+t*(cdfB3+t*(cdfB4+t*cdfB5))))
	return 1 - normPDF(x)*poly
}

func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}
