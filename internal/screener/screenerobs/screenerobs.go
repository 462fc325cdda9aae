package screenerobs

import (
	"context"
	"time"

	"dcf-screener/internal/interfaces"
	"dcf-screener/internal/logger"
	"dcf-screener/internal/trace"
	"dcf-screener/internal/types"
)

type observableScreener struct {
	screener interfaces.Screener
}

var _ interfaces.Screener = (*observableScreener)(nil)

// Wrap adds tracing and logging around a screener.
func Wrap(s interfaces.Screener) interfaces.Screener {
	return &observableScreener{
		screener: s,
	}
}

func (os *observableScreener) Run(ctx context.Context, tickers []string) ([]types.ValuationResult, error) {
	ctx, span := trace.StartSpan(ctx, "screener.Run")
	defer span.End()

	start := time.Now()

	results, err := os.screener.Run(ctx, tickers)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Valuation batch failed", err,
			"tickers", len(tickers),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	undervalued := 0
	for _, r := range results {
		if r.Verdict == types.VerdictUndervalued {
			undervalued++
		}
	}

	logger.InfoSkip(ctx, 1, "Valuation batch completed",
		"tickers", len(tickers),
		"results", len(results),
		"undervalued", undervalued,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return results, nil
}

func (os *observableScreener) Evaluate(ctx context.Context, ticker string) types.ValuationResult {
	ctx, span := trace.StartSpan(ctx, "screener.Evaluate")
	defer span.End()

	start := time.Now()

	result := os.screener.Evaluate(ctx, ticker)

	logger.InfoSkip(ctx, 1, "Ticker evaluated",
		"ticker", ticker,
		"tier", result.Tier,
		"verdict", result.Verdict,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result
}
