package valuation

import (
	"testing"

	"dcf-screener/internal/types"
)

func testTiers() []types.Tier {
	return []types.Tier{
		{
			Name:    "Mega-cap Tech",
			Tickers: []string{"AAPL", "MSFT", "GOOGL"},
			Assumptions: types.AssumptionSet{
				ShortTermGrowthRate: 0.08,
				DiscountRate:        0.09,
				PerpetualGrowthRate: 0.03,
			},
		},
		{
			Name:    "Defensive",
			Tickers: []string{"KO", "JNJ", "AAPL"}, // AAPL overlaps on purpose
			Assumptions: types.AssumptionSet{
				ShortTermGrowthRate: 0.03,
				DiscountRate:        0.08,
				PerpetualGrowthRate: 0.02,
			},
		},
	}
}

func TestClassifyMember(t *testing.T) {
	c := NewCatalog(testTiers(), DefaultAssumptions())

	tier, a := c.Classify("KO")
	if tier != "Defensive" {
		t.Errorf("Expected tier Defensive, got %s", tier)
	}
	if a.DiscountRate != 0.08 {
		t.Errorf("Expected discount rate 0.08, got %f", a.DiscountRate)
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	c := NewCatalog(testTiers(), DefaultAssumptions())

	tier, a := c.Classify("AAPL")
	if tier != "Mega-cap Tech" {
		t.Errorf("Expected first matching tier Mega-cap Tech, got %s", tier)
	}
	if a.ShortTermGrowthRate != 0.08 {
		t.Errorf("Expected growth 0.08 from first tier, got %f", a.ShortTermGrowthRate)
	}
}

func TestClassifyUnknownTickerGetsDefaults(t *testing.T) {
	c := NewCatalog(testTiers(), DefaultAssumptions())

	tier, a := c.Classify("ZZZZ")
	if tier != DefaultTierName {
		t.Errorf("Expected %s, got %s", DefaultTierName, tier)
	}
	want := DefaultAssumptions()
	if a != want {
		t.Errorf("Expected default assumptions %+v, got %+v", want, a)
	}
}

func TestClassifyEmptyCatalog(t *testing.T) {
	c := NewCatalog(nil, DefaultAssumptions())

	tier, a := c.Classify("AAPL")
	if tier != DefaultTierName {
		t.Errorf("Expected %s, got %s", DefaultTierName, tier)
	}
	if a.DiscountRate <= a.PerpetualGrowthRate {
		t.Error("Expected default assumptions to keep discount rate above perpetual growth")
	}
}

func TestClassifyIsCaseSensitive(t *testing.T) {
	c := NewCatalog(testTiers(), DefaultAssumptions())

	if tier, _ := c.Classify("aapl"); tier != DefaultTierName {
		t.Errorf("Expected lowercase ticker to stay unclassified, got %s", tier)
	}
}
