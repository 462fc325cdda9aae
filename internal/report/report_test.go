package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dcf-screener/internal/types"
)

func sampleResults() []types.ValuationResult {
	return []types.ValuationResult{
		{
			Ticker:            "AAPL",
			Tier:              "Mega-cap Tech",
			IntrinsicValue:    types.Ptr(150),
			CurrentPrice:      types.Ptr(200),
			MarginOfSafetyPct: types.Ptr(-33.3),
			Verdict:           types.VerdictOvervalued,
			PERatio:           types.Ptr(32),
			PEVerdict:         types.PEHigh,
		},
		{
			Ticker:            "JPM",
			Tier:              "Uncategorized",
			IntrinsicValue:    types.Ptr(250),
			CurrentPrice:      types.Ptr(200),
			MarginOfSafetyPct: types.Ptr(20),
			Verdict:           types.VerdictUndervalued,
			PERatio:           types.Ptr(12),
			PEVerdict:         types.PELow,
		},
		{
			Ticker:    "FAIL",
			Tier:      "Uncategorized",
			Verdict:   types.VerdictProviderError,
			PEVerdict: types.PEUnavailable,
			Notes:     []string{"fetch failed: no data"},
		},
	}
}

func TestRenderSortsByMargin(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sampleResults(), Options{SortBy: "margin"})
	out := buf.String()

	jpm := strings.Index(out, "JPM")
	aapl := strings.Index(out, "AAPL")
	fail := strings.Index(out, "FAIL")
	if jpm == -1 || aapl == -1 || fail == -1 {
		t.Fatalf("Expected all tickers in output, got:\n%s", out)
	}
	if !(jpm < aapl && aapl < fail) {
		t.Errorf("Expected JPM before AAPL before FAIL, got:\n%s", out)
	}
}

func TestRenderOnlyUndervalued(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sampleResults(), Options{OnlyUndervalued: true})
	out := buf.String()

	if !strings.Contains(out, "JPM") {
		t.Error("Expected JPM in filtered output")
	}
	// AAPL must not appear as a table row; summary counts stay batch-wide.
	lines := strings.Split(out, "\n")
	for _, line := range lines {
		if strings.HasPrefix(line, "AAPL") {
			t.Errorf("Expected AAPL row filtered out, got line %q", line)
		}
	}
	if !strings.Contains(out, "Total tickers evaluated: 3") {
		t.Error("Expected summary to cover the full batch")
	}
}

func TestRenderFocusFilter(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sampleResults(), Options{Focus: []string{"AAPL"}})
	out := buf.String()

	if strings.Contains(out, "JPM") {
		t.Error("Expected JPM excluded by focus filter")
	}
	if !strings.Contains(out, "AAPL") {
		t.Error("Expected AAPL in focused output")
	}
}

func TestRenderMaxResults(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sampleResults(), Options{SortBy: "ticker", MaxResults: 1})
	out := buf.String()

	if !strings.Contains(out, "AAPL") {
		t.Error("Expected first ticker kept")
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "JPM") {
			t.Errorf("Expected JPM row trimmed by max_results, got %q", line)
		}
	}
}

func TestRenderFailedRowShowsNotes(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sampleResults(), Options{})
	out := buf.String()

	if !strings.Contains(out, "N/A") {
		t.Error("Expected N/A placeholders for failed valuation")
	}
	if !strings.Contains(out, "fetch failed: no data") {
		t.Error("Expected notes rendered under the row")
	}
	if !strings.Contains(out, "Not investment advice") {
		t.Error("Expected disclaimer footer")
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "screen.csv")
	if err := WriteCSV(path, sampleResults()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Expected export file, got %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Expected valid CSV, got %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("Expected header + 3 rows, got %d", len(records))
	}
	if records[0][0] != "ticker" || records[0][5] != "verdict" {
		t.Errorf("Expected header row, got %v", records[0])
	}
	if records[2][0] != "JPM" || records[2][4] != "20.0" {
		t.Errorf("Expected JPM margin 20.0, got %v", records[2])
	}
	if records[3][0] != "FAIL" || records[3][2] != "" {
		t.Errorf("Expected empty numeric cells for failed row, got %v", records[3])
	}
}
