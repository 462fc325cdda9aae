package valuation

import (
	"math"
	"testing"

	"dcf-screener/internal/types"
)

func TestNormalizeFCFLatestValue(t *testing.T) {
	history := []types.FCFPeriod{
		{Period: "2025", FreeCashFlow: types.Ptr(120)},
		{Period: "2024", FreeCashFlow: types.Ptr(100)},
		{Period: "2023", FreeCashFlow: types.Ptr(80)},
	}

	got, err := NormalizeFCF(history, 1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.Value != 120 {
		t.Errorf("Expected latest value 120, got %f", got.Value)
	}
	if got.Fallback {
		t.Error("Expected direct line, got fallback")
	}
}

func TestNormalizeFCFTrailingAverage(t *testing.T) {
	history := []types.FCFPeriod{
		{Period: "2025", FreeCashFlow: types.Ptr(120)},
		{Period: "2024", FreeCashFlow: types.Ptr(100)},
		{Period: "2023", FreeCashFlow: types.Ptr(80)},
		{Period: "2022", FreeCashFlow: types.Ptr(999)}, // outside window
	}

	got, err := NormalizeFCF(history, 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.Value != 100 {
		t.Errorf("Expected trailing mean 100, got %f", got.Value)
	}
	if got.Periods != 3 {
		t.Errorf("Expected 3 contributing periods, got %d", got.Periods)
	}
}

func TestNormalizeFCFDropsUndefinedEntries(t *testing.T) {
	nan := math.NaN()
	history := []types.FCFPeriod{
		{Period: "2025", FreeCashFlow: &nan},
		{Period: "2024", FreeCashFlow: types.Ptr(90)},
		{Period: "2023"},
	}

	got, err := NormalizeFCF(history, 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.Value != 90 {
		t.Errorf("Expected mean of defined entries 90, got %f", got.Value)
	}
	if got.Periods != 1 {
		t.Errorf("Expected 1 contributing period, got %d", got.Periods)
	}
}

func TestNormalizeFCFFallbackFormula(t *testing.T) {
	history := []types.FCFPeriod{
		{Period: "2025", OperatingCashFlow: types.Ptr(500), CapitalExpenditure: types.Ptr(120)},
		{Period: "2024", OperatingCashFlow: types.Ptr(420), CapitalExpenditure: types.Ptr(100)},
	}

	got, err := NormalizeFCF(history, 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !got.Fallback {
		t.Error("Expected fallback formula to be used")
	}
	// (500-120 + 420-100) / 2
	if got.Value != 350 {
		t.Errorf("Expected derived mean 350, got %f", got.Value)
	}
}

func TestNormalizeFCFPrefersDirectLine(t *testing.T) {
	history := []types.FCFPeriod{
		{Period: "2025", FreeCashFlow: types.Ptr(200), OperatingCashFlow: types.Ptr(500), CapitalExpenditure: types.Ptr(120)},
	}

	got, err := NormalizeFCF(history, 1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.Value != 200 || got.Fallback {
		t.Errorf("Expected direct value 200, got %f (fallback=%v)", got.Value, got.Fallback)
	}
}

func TestNormalizeFCFEmptyAfterFiltering(t *testing.T) {
	cases := [][]types.FCFPeriod{
		nil,
		{},
		{{Period: "2025"}, {Period: "2024"}},
		{{Period: "2025", OperatingCashFlow: types.Ptr(500)}}, // capex missing
	}

	for i, history := range cases {
		if _, err := NormalizeFCF(history, 3); err != ErrNoCashFlowData {
			t.Errorf("case %d: Expected ErrNoCashFlowData, got %v", i, err)
		}
	}
}
