package strategy

import (
	"math"
	"testing"

	apperrors "options-analyzer/internal/errors"
	"options-analyzer/internal/models"
)

func TestLongCallMetrics(t *testing.T) {
	m, err := ComputeMetrics(LongCall{Strike: 100, Premium: 5, Quantity: 1}, 100)
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}

	if m.NetCost != 500 {
		t.Errorf("NetCost = %v, want 500", m.NetCost)
	}
	if !m.MaxProfit.Unbounded {
		t.Error("MaxProfit should be unbounded")
	}
	if m.MaxLoss != models.Bounded(500) {
		t.Errorf("MaxLoss = %+v, want 500", m.MaxLoss)
	}
	if len(m.BreakEvenPoints) != 1 || m.BreakEvenPoints[0] != 105 {
		t.Errorf("BreakEvenPoints = %v, want [105]", m.BreakEvenPoints)
	}
	if m.ReturnOnRisk != nil {
		t.Error("single-leg strategies do not report return on risk")
	}
	if m.ProfitProbability != nil {
		t.Error("no probability expected without volatility inputs")
	}
}

func TestLongPutMetrics(t *testing.T) {
	m, err := ComputeMetrics(LongPut{Strike: 100, Premium: 4, Quantity: 2}, 100)
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}

	if m.NetCost != 800 {
		t.Errorf("NetCost = %v, want 800", m.NetCost)
	}
	if m.MaxProfit != models.Bounded(19200) {
		t.Errorf("MaxProfit = %+v, want 19200", m.MaxProfit)
	}
	if m.MaxLoss != models.Bounded(800) {
		t.Errorf("MaxLoss = %+v, want 800", m.MaxLoss)
	}
	if len(m.BreakEvenPoints) != 1 || m.BreakEvenPoints[0] != 96 {
		t.Errorf("BreakEvenPoints = %v, want [96]", m.BreakEvenPoints)
	}
}

func TestShortCallMetrics(t *testing.T) {
	m, err := ComputeMetrics(ShortCall{Strike: 100, Premium: 5, Quantity: 1}, 100)
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}

	if m.NetCost != -500 {
		t.Errorf("NetCost = %v, want -500", m.NetCost)
	}
	if m.MaxProfit != models.Bounded(500) {
		t.Errorf("MaxProfit = %+v, want 500", m.MaxProfit)
	}
	if !m.MaxLoss.Unbounded {
		t.Error("MaxLoss should be unbounded")
	}
	if len(m.BreakEvenPoints) != 1 || m.BreakEvenPoints[0] != 105 {
		t.Errorf("BreakEvenPoints = %v, want [105]", m.BreakEvenPoints)
	}
}

func TestShortPutMetrics(t *testing.T) {
	m, err := ComputeMetrics(ShortPut{Strike: 100, Premium: 4, Quantity: 1}, 100)
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}

	if m.NetCost != -400 {
		t.Errorf("NetCost = %v, want -400", m.NetCost)
	}
	if m.MaxProfit != models.Bounded(400) {
		t.Errorf("MaxProfit = %+v, want 400", m.MaxProfit)
	}
	if m.MaxLoss != models.Bounded(9600) {
		t.Errorf("MaxLoss = %+v, want 9600", m.MaxLoss)
	}
	if len(m.BreakEvenPoints) != 1 || m.BreakEvenPoints[0] != 96 {
		t.Errorf("BreakEvenPoints = %v, want [96]", m.BreakEvenPoints)
	}
}

func TestBullPutSpreadMetrics(t *testing.T) {
	def := BullPutSpread{ShortStrike: 100, ShortPremium: 3, LongStrike: 95, LongPremium: 1, Quantity: 1}

	m, err := ComputeMetrics(def, 100)
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}

	if m.NetCost != -200 {
		t.Errorf("NetCost = %v, want -200", m.NetCost)
	}
	if m.MaxProfit != models.Bounded(200) {
		t.Errorf("MaxProfit = %+v, want 200", m.MaxProfit)
	}
	if m.MaxLoss != models.Bounded(300) {
		t.Errorf("MaxLoss = %+v, want 300", m.MaxLoss)
	}
	if len(m.BreakEvenPoints) != 1 || m.BreakEvenPoints[0] != 98 {
		t.Errorf("BreakEvenPoints = %v, want [98]", m.BreakEvenPoints)
	}
	if m.ReturnOnRisk == nil {
		t.Fatal("spread should report return on risk")
	}
	if math.Abs(*m.ReturnOnRisk-66.6667) > 0.01 {
		t.Errorf("ReturnOnRisk = %v, want ≈66.67", *m.ReturnOnRisk)
	}
}

func TestBearCallSpreadMetrics(t *testing.T) {
	def := BearCallSpread{ShortStrike: 100, ShortPremium: 3, LongStrike: 105, LongPremium: 1, Quantity: 1}

	m, err := ComputeMetrics(def, 100)
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}

	if m.NetCost != -200 {
		t.Errorf("NetCost = %v, want -200", m.NetCost)
	}
	if m.MaxProfit != models.Bounded(200) {
		t.Errorf("MaxProfit = %+v, want 200", m.MaxProfit)
	}
	if m.MaxLoss != models.Bounded(300) {
		t.Errorf("MaxLoss = %+v, want 300", m.MaxLoss)
	}
	if len(m.BreakEvenPoints) != 1 || m.BreakEvenPoints[0] != 102 {
		t.Errorf("BreakEvenPoints = %v, want [102]", m.BreakEvenPoints)
	}
}

func TestSpreadStrikeOrderingValidation(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{"bull put inverted", BullPutSpread{ShortStrike: 95, ShortPremium: 3, LongStrike: 100, LongPremium: 1, Quantity: 1}},
		{"bull put equal strikes", BullPutSpread{ShortStrike: 100, ShortPremium: 3, LongStrike: 100, LongPremium: 1, Quantity: 1}},
		{"bear call inverted", BearCallSpread{ShortStrike: 105, ShortPremium: 3, LongStrike: 100, LongPremium: 1, Quantity: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeMetrics(tt.def, 100)
			if err == nil {
				t.Fatal("expected strike ordering error, got nil")
			}
			if !apperrors.Is(err, apperrors.ErrStrikeOrdering) {
				t.Errorf("error %v does not wrap ErrStrikeOrdering", err)
			}
		})
	}
}

func TestSpreadRequiresNetCredit(t *testing.T) {
	def := BullPutSpread{ShortStrike: 100, ShortPremium: 1, LongStrike: 95, LongPremium: 3, Quantity: 1}
	if _, err := ComputeMetrics(def, 100); err == nil {
		t.Error("expected net credit validation error, got nil")
	}
}

func TestReturnOnRiskGuardedAtZeroMaxLoss(t *testing.T) {
	// Credit equal to the full strike width leaves nothing at risk.
	def := BullPutSpread{ShortStrike: 100, ShortPremium: 6, LongStrike: 95, LongPremium: 1, Quantity: 1}

	m, err := ComputeMetrics(def, 100)
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}
	if m.MaxLoss != models.Bounded(0) {
		t.Fatalf("MaxLoss = %+v, want 0", m.MaxLoss)
	}
	if m.ReturnOnRisk != nil {
		t.Error("ReturnOnRisk must be omitted when max loss is zero")
	}
}

func TestComputeMetricsValidation(t *testing.T) {
	if _, err := ComputeMetrics(LongCall{Strike: 100, Premium: 5, Quantity: 1}, 0); err == nil {
		t.Error("expected error for non-positive current price")
	}
	if _, err := ComputeMetrics(LongCall{Strike: 0, Premium: 5, Quantity: 1}, 100); err == nil {
		t.Error("expected error for zero strike")
	}
	if _, err := ComputeMetrics(nil, 100); err == nil {
		t.Error("expected error for nil definition")
	}
}

func TestComputeMetricsProbability(t *testing.T) {
	def := LongCall{Strike: 100, Premium: 5, Quantity: 1}

	m, err := ComputeMetrics(def, 100, WithVolatility(0.25), WithDaysToExpiration(30))
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}
	if m.ProfitProbability == nil {
		t.Fatal("expected profit probability with volatility inputs")
	}
	if *m.ProfitProbability <= 0 || *m.ProfitProbability >= 1 {
		t.Errorf("ProfitProbability = %v, want in (0, 1)", *m.ProfitProbability)
	}
	// Needing the underlying to rise 5% leaves the long call below a coin
	// flip.
	if *m.ProfitProbability >= 0.5 {
		t.Errorf("ProfitProbability = %v, want < 0.5", *m.ProfitProbability)
	}
}

func TestComputeMetricsProbabilityDefaultsWhenDataMissing(t *testing.T) {
	def := LongCall{Strike: 100, Premium: 5, Quantity: 1}

	// Volatility given but no expiry: the wrapper answers 50%, not the
	// estimator's degenerate 0%.
	m, err := ComputeMetrics(def, 100, WithVolatility(0.25))
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}
	if m.ProfitProbability == nil || *m.ProfitProbability != 0.5 {
		t.Errorf("ProfitProbability = %v, want 0.5", m.ProfitProbability)
	}
}

func TestNewUnknownStrategy(t *testing.T) {
	if _, err := New("iron-condor", 1, 100, 2, 0, 0); !apperrors.Is(err, apperrors.ErrUnknownStrategy) {
		t.Errorf("err = %v, want ErrUnknownStrategy", err)
	}
}

func TestDefinitionLegsMatchStrategy(t *testing.T) {
	def := BullPutSpread{ShortStrike: 100, ShortPremium: 3, LongStrike: 95, LongPremium: 1, Quantity: 2}

	legs := def.Legs()
	if len(legs) != 2 {
		t.Fatalf("len(legs) = %d, want 2", len(legs))
	}
	if legs[0].Position != models.Short || legs[0].Type != models.Put || legs[0].Strike != 100 {
		t.Errorf("short leg = %+v", legs[0])
	}
	if legs[1].Position != models.Long || legs[1].Type != models.Put || legs[1].Strike != 95 {
		t.Errorf("long leg = %+v", legs[1])
	}
	for _, leg := range legs {
		if leg.Quantity != 2 {
			t.Errorf("leg quantity = %d, want 2", leg.Quantity)
		}
		if err := leg.Validate(); err != nil {
			t.Errorf("generated leg invalid: %v", err)
		}
	}
}
