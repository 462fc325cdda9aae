package universe

import (
	"context"
	"testing"
)

func TestStaticTickers(t *testing.T) {
	src := NewStatic([]string{"AAPL", "MSFT"})

	got, err := src.Tickers(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 2 || got[0] != "AAPL" || got[1] != "MSFT" {
		t.Errorf("Expected [AAPL MSFT], got %v", got)
	}
}

func TestStaticTickersReturnsCopy(t *testing.T) {
	src := NewStatic([]string{"AAPL", "MSFT"})

	got, _ := src.Tickers(context.Background())
	got[0] = "MUTATED"

	again, _ := src.Tickers(context.Background())
	if again[0] != "AAPL" {
		t.Error("Expected source list to be unaffected by caller mutation")
	}
}

func TestStaticEmptyIsError(t *testing.T) {
	src := NewStatic(nil)
	if _, err := src.Tickers(context.Background()); err == nil {
		t.Error("Expected error for empty static universe")
	}
}

func TestFallbackListMatchesReference(t *testing.T) {
	want := []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "TSLA", "META", "JPM"}
	if len(FallbackTickers) != len(want) {
		t.Fatalf("Expected %d fallback tickers, got %d", len(want), len(FallbackTickers))
	}
	for i, sym := range want {
		if FallbackTickers[i] != sym {
			t.Errorf("Expected fallback[%d]=%s, got %s", i, sym, FallbackTickers[i])
		}
	}
}
