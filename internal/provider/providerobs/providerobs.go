package providerobs

import (
	"context"
	"time"

	"dcf-screener/internal/interfaces"
	"dcf-screener/internal/logger"
	"dcf-screener/internal/trace"
	"dcf-screener/internal/types"
)

type observableProvider struct {
	provider interfaces.MarketDataProvider
}

var _ interfaces.MarketDataProvider = (*observableProvider)(nil)

// Wrap adds tracing and logging around a market-data provider.
func Wrap(p interfaces.MarketDataProvider) interfaces.MarketDataProvider {
	return &observableProvider{
		provider: p,
	}
}

func (op *observableProvider) Fetch(ctx context.Context, ticker string) (*types.CompanyFinancials, error) {
	ctx, span := trace.StartSpan(ctx, "provider.Fetch")
	defer span.End()

	start := time.Now()

	result, err := op.provider.Fetch(ctx, ticker)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Financials fetch failed", err,
			"ticker", ticker,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Financials fetched",
		"ticker", ticker,
		"periods", len(result.CashFlowHistory),
		"has_price", result.CurrentPrice != nil,
		"has_shares", result.SharesOutstanding != nil,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result, nil
}
