package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validYAML = `
data_source: STATIC
universe:
  mode: STATIC
  static: [AAPL, MSFT]
fcf:
  window: 3
valuation:
  tiers:
    - name: Mega-cap Tech
      tickers: [AAPL, MSFT]
      assumptions:
        growth_rate: 0.08
        discount_rate: 0.09
        perpetual_growth_rate: 0.03
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.FCF.Window != 3 {
		t.Errorf("Expected window 3, got %d", cfg.FCF.Window)
	}
	if cfg.Processing.MaxWorkers != 1 {
		t.Errorf("Expected default max_workers 1, got %d", cfg.Processing.MaxWorkers)
	}
	if cfg.Provider.TimeoutSeconds != 20 {
		t.Errorf("Expected default timeout 20s, got %d", cfg.Provider.TimeoutSeconds)
	}
	if cfg.Output.SortBy != "margin" {
		t.Errorf("Expected default sort_by margin, got %s", cfg.Output.SortBy)
	}

	defaults := cfg.Valuation.DefaultAssumptions
	if defaults.ShortTermGrowthRate != 0.05 || defaults.DiscountRate != 0.10 || defaults.PerpetualGrowthRate != 0.025 {
		t.Errorf("Expected documented default assumptions, got %+v", defaults)
	}
}

func TestLoadConfigParsesTiers(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(cfg.Valuation.Tiers) != 1 {
		t.Fatalf("Expected 1 tier, got %d", len(cfg.Valuation.Tiers))
	}
	tier := cfg.Valuation.Tiers[0]
	if tier.Name != "Mega-cap Tech" {
		t.Errorf("Expected tier name Mega-cap Tech, got %s", tier.Name)
	}
	if tier.Assumptions.DiscountRate != 0.09 {
		t.Errorf("Expected tier discount rate 0.09, got %f", tier.Assumptions.DiscountRate)
	}
}

func TestLoadConfigRejectsBadDataSource(t *testing.T) {
	body := strings.Replace(validYAML, "STATIC\nuniverse", "BOGUS\nuniverse", 1)
	if _, err := LoadConfig(writeConfig(t, body)); err == nil {
		t.Error("Expected validation error for bad data_source")
	}
}

func TestLoadConfigRejectsInvertedRates(t *testing.T) {
	body := strings.Replace(validYAML, "discount_rate: 0.09", "discount_rate: 0.02", 1)
	if _, err := LoadConfig(writeConfig(t, body)); err == nil {
		t.Error("Expected validation error when discount rate does not exceed perpetual growth")
	}
}

func TestLoadConfigRejectsEmptyStaticUniverse(t *testing.T) {
	body := strings.Replace(validYAML, "static: [AAPL, MSFT]", "static: []", 1)
	if _, err := LoadConfig(writeConfig(t, body)); err == nil {
		t.Error("Expected validation error for empty static universe")
	}
}
