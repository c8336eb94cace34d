package probability

import (
	"math"
	"testing"

	"options-analyzer/internal/models"
)

func TestBlackScholesDegenerateInputs(t *testing.T) {
	want := Estimate{ProbabilityITM: 0, ProbabilityOTM: 1, D1: 0, D2: 0}

	tests := []struct {
		name    string
		S, K    float64
		days    int
		sigma   float64
		optType models.OptionType
	}{
		{"zero days", 100, 100, 0, 0.2, models.Call},
		{"negative days", 100, 100, -5, 0.2, models.Put},
		{"zero volatility", 100, 100, 30, 0, models.Call},
		{"zero underlying", 0, 100, 30, 0.2, models.Call},
		{"zero strike", 100, 0, 30, 0.2, models.Put},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BlackScholes(tt.S, tt.K, tt.days, DefaultRiskFreeRate, tt.sigma, tt.optType)
			if got != want {
				t.Errorf("BlackScholes = %+v, want %+v", got, want)
			}
		})
	}
}

func TestBlackScholesATMCall(t *testing.T) {
	est := BlackScholes(100, 100, 30, 0.05, 0.2, models.Call)

	// With positive drift an at-the-money call is better than a coin flip.
	if est.ProbabilityITM <= 0.5 {
		t.Errorf("ProbabilityITM = %v, want > 0.5", est.ProbabilityITM)
	}
	if math.Abs(est.ProbabilityITM+est.ProbabilityOTM-1) > 1e-12 {
		t.Errorf("ITM + OTM = %v, want 1", est.ProbabilityITM+est.ProbabilityOTM)
	}
	if est.D1 <= est.D2 {
		t.Errorf("d1 = %v should exceed d2 = %v", est.D1, est.D2)
	}
}

func TestBlackScholesATMCallVanishingRate(t *testing.T) {
	// As the rate vanishes the at-the-money call probability approaches 0.5
	// from below the drifted value, offset only by the σ²/2 variance term.
	est := BlackScholes(100, 100, 30, 1e-9, 0.2, models.Call)

	if math.Abs(est.ProbabilityITM-0.5) > 0.02 {
		t.Errorf("ProbabilityITM = %v, want within 0.02 of 0.5", est.ProbabilityITM)
	}
}

func TestBlackScholesCallPutComplement(t *testing.T) {
	call := BlackScholes(105, 98, 45, 0.05, 0.3, models.Call)
	put := BlackScholes(105, 98, 45, 0.05, 0.3, models.Put)

	// Exactly one of the pair finishes in the money.
	if sum := call.ProbabilityITM + put.ProbabilityITM; math.Abs(sum-1) > 1e-12 {
		t.Errorf("call ITM + put ITM = %v, want 1", sum)
	}
	if call.D1 != put.D1 || call.D2 != put.D2 {
		t.Error("d1/d2 should not depend on option type")
	}
}

func TestNormCDFAgainstErf(t *testing.T) {
	for x := -6.0; x <= 6.0; x += 0.125 {
		want := 0.5 * (1 + math.Erf(x/math.Sqrt2))
		got := NormCDF(x)
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("NormCDF(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestNormCDFKnownValues(t *testing.T) {
	tests := []struct {
		x    float64
		want float64
	}{
		{0, 0.5},
		{1.96, 0.9750},
		{-1.96, 0.0250},
		{1, 0.8413},
		{-1, 0.1587},
	}
	for _, tt := range tests {
		if got := NormCDF(tt.x); math.Abs(got-tt.want) > 5e-5 {
			t.Errorf("NormCDF(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestProfitProbabilityLongCall(t *testing.T) {
	// Long call profits once the underlying clears break-even, so the answer
	// is the call's own ITM probability at the break-even strike.
	got := ProfitProbability(100, 105, 0.25, 30, DefaultRiskFreeRate, models.Long, models.Call)
	want := BlackScholes(100, 105, 30, DefaultRiskFreeRate, 0.25, models.Call).ProbabilityITM

	if got != want {
		t.Errorf("ProfitProbability = %v, want %v", got, want)
	}
	if got >= 0.5 {
		t.Errorf("ProfitProbability = %v, want < 0.5 for an out-of-reach break-even", got)
	}
}

func TestProfitProbabilityShortFlipsType(t *testing.T) {
	// Short call profits below break-even, which is the put side of the
	// same strike.
	got := ProfitProbability(100, 105, 0.25, 30, DefaultRiskFreeRate, models.Short, models.Call)
	want := BlackScholes(100, 105, 30, DefaultRiskFreeRate, 0.25, models.Put).ProbabilityITM

	if got != want {
		t.Errorf("ProfitProbability = %v, want %v", got, want)
	}

	long := ProfitProbability(100, 105, 0.25, 30, DefaultRiskFreeRate, models.Long, models.Call)
	if math.Abs(got+long-1) > 1e-12 {
		t.Errorf("short + long = %v, want 1", got+long)
	}
}

func TestProfitProbabilityMissingData(t *testing.T) {
	tests := []struct {
		name  string
		sigma float64
		days  int
	}{
		{"no volatility", 0, 30},
		{"no expiry", 0.25, 0},
		{"neither", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProfitProbability(100, 105, tt.sigma, tt.days, DefaultRiskFreeRate, models.Long, models.Call)
			if got != 0.5 {
				t.Errorf("ProfitProbability = %v, want 0.5", got)
			}
		})
	}
}
