package probability

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"options-analyzer/internal/models"
)

func newProbabilityProperties(t *testing.T) *gopter.Properties {
	t.Helper()
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 100
	params.Rng.Seed(time.Now().UnixNano())
	return gopter.NewProperties(params)
}

func TestProperty_NormCDFIsADistribution(t *testing.T) {
	properties := newProbabilityProperties(t)

	properties.Property("values stay in [0, 1]", prop.ForAll(
		func(x float64) bool {
			v := NormCDF(x)
			return v >= 0 && v <= 1
		},
		gen.Float64Range(-40, 40),
	))

	// Monotone up to the approximation's error bound.
	properties.Property("monotone non-decreasing", prop.ForAll(
		func(x, delta float64) bool {
			return NormCDF(x+delta) >= NormCDF(x)-1e-7
		},
		gen.Float64Range(-10, 10),
		gen.Float64Range(0, 5),
	))

	properties.Property("symmetric: N(x) + N(-x) = 1", prop.ForAll(
		func(x float64) bool {
			return math.Abs(NormCDF(x)+NormCDF(-x)-1) < 1e-12
		},
		gen.Float64Range(-10, 10),
	))

	properties.TestingRun(t)
}

func TestProperty_EstimateProbabilitiesSumToOne(t *testing.T) {
	properties := newProbabilityProperties(t)

	properties.Property("ITM + OTM = 1 for any valid inputs", prop.ForAll(
		func(S, K, sigma, r float64, days int, isCall bool) bool {
			optType := models.Put
			if isCall {
				optType = models.Call
			}
			est := BlackScholes(S, K, days, r, sigma, optType)
			if est.ProbabilityITM < 0 || est.ProbabilityITM > 1 {
				return false
			}
			return math.Abs(est.ProbabilityITM+est.ProbabilityOTM-1) < 1e-12
		},
		gen.Float64Range(1, 1000),
		gen.Float64Range(1, 1000),
		gen.Float64Range(0.01, 2),
		gen.Float64Range(0, 0.2),
		gen.IntRange(1, 730),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
