package mock

import (
	"context"
	"reflect"
	"testing"
)

func TestFetchIsDeterministic(t *testing.T) {
	p := New()
	ctx := context.Background()

	first, err := p.Fetch(ctx, "AAPL")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := p.Fetch(ctx, "AAPL")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical financials for repeated fetches of the same ticker")
	}
}

func TestFetchVariesBySymbol(t *testing.T) {
	p := New()
	ctx := context.Background()

	a, _ := p.Fetch(ctx, "AAPL")
	b, _ := p.Fetch(ctx, "MSFT")

	if *a.SharesOutstanding == *b.SharesOutstanding && *a.CurrentPrice == *b.CurrentPrice {
		t.Error("Expected different tickers to generate different financials")
	}
}

func TestFetchProducesUsableSnapshot(t *testing.T) {
	p := New()
	fin, err := p.Fetch(context.Background(), "NVDA")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(fin.CashFlowHistory) != 4 {
		t.Errorf("Expected 4 periods of history, got %d", len(fin.CashFlowHistory))
	}
	if fin.CashFlowHistory[0].FreeCashFlow == nil || *fin.CashFlowHistory[0].FreeCashFlow <= 0 {
		t.Error("Expected positive free cash flow in latest period")
	}
	if fin.SharesOutstanding == nil || *fin.SharesOutstanding <= 0 {
		t.Error("Expected positive shares outstanding")
	}
	if fin.CurrentPrice == nil || *fin.CurrentPrice <= 0 {
		t.Error("Expected positive current price")
	}
}

func TestFetchHonorsCancelledContext(t *testing.T) {
	p := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Fetch(ctx, "AAPL"); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
