package services

import (
	"math"
	"testing"

	"github.com/venturedeck/venturedeck-backend/internal/types"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestKPIAttainmentScore_AveragesCappedRatios(t *testing.T) {
	kpis := []*types.VentureKPI{
		{CurrentValue: 50, TargetValue: 100},  // 0.5
		{CurrentValue: 200, TargetValue: 100}, // capped at 1.0
		{CurrentValue: -10, TargetValue: 100}, // floored at 0
	}
	got := kpiAttainmentScore(kpis)
	want := (0.5 + 1.0 + 0.0) / 3 * 100
	if !almostEqual(got, want) {
		t.Fatalf("expected %v got %v", want, got)
	}
}

func TestKPIAttainmentScore_IgnoresZeroTargets(t *testing.T) {
	kpis := []*types.VentureKPI{
		{CurrentValue: 100, TargetValue: 0},
		{CurrentValue: 75, TargetValue: 100},
	}
	if got := kpiAttainmentScore(kpis); !almostEqual(got, 75) {
		t.Fatalf("expected 75 got %v", got)
	}
}

func TestKPIAttainmentScore_NeutralWhenNothingMeasurable(t *testing.T) {
	if got := kpiAttainmentScore(nil); !almostEqual(got, 50) {
		t.Fatalf("expected neutral 50 got %v", got)
	}
	kpis := []*types.VentureKPI{{CurrentValue: 10, TargetValue: 0}}
	if got := kpiAttainmentScore(kpis); !almostEqual(got, 50) {
		t.Fatalf("expected neutral 50 got %v", got)
	}
}

func TestFinancialHealthScore_MarginMapping(t *testing.T) {
	// Break-even maps to the midpoint.
	records := []*types.FinancialRecord{{Revenue: 100, Expenses: 100}}
	if got := financialHealthScore(records); !almostEqual(got, 50) {
		t.Fatalf("expected 50 got %v", got)
	}

	// All revenue, no expenses.
	records = []*types.FinancialRecord{{Revenue: 100, Expenses: 0}}
	if got := financialHealthScore(records); !almostEqual(got, 100) {
		t.Fatalf("expected 100 got %v", got)
	}

	// All expenses, no revenue.
	records = []*types.FinancialRecord{{Revenue: 0, Expenses: 100}}
	if got := financialHealthScore(records); !almostEqual(got, 0) {
		t.Fatalf("expected 0 got %v", got)
	}
}

func TestFinancialHealthScore_NeutralWithNoVolume(t *testing.T) {
	if got := financialHealthScore(nil); !almostEqual(got, 50) {
		t.Fatalf("expected neutral 50 got %v", got)
	}
}
