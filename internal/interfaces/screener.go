package interfaces

import (
	"context"

	"dcf-screener/internal/types"
)

// Screener runs the valuation pipeline over a ticker set.
type Screener interface {
	// Run evaluates every ticker and returns one result per unique input
	// ticker, ordered lexicographically. Per-ticker failures are folded
	// into the result rows, never returned as an error.
	Run(ctx context.Context, tickers []string) ([]types.ValuationResult, error)

	// Evaluate runs the full pipeline for a single ticker.
	Evaluate(ctx context.Context, ticker string) types.ValuationResult
}
