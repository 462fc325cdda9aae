package interfaces

import (
	"context"

	"dcf-screener/internal/types"
)

// MarketDataProvider fetches the financial snapshot the valuation pipeline
// needs for one ticker.
type MarketDataProvider interface {
	Fetch(ctx context.Context, ticker string) (*types.CompanyFinancials, error)
}
