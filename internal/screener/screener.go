package screener

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"dcf-screener/internal/interfaces"
	"dcf-screener/internal/logger"
	"dcf-screener/internal/types"
	"dcf-screener/internal/valuation"
)

// Config tunes the batch runner.
type Config struct {
	// Window is the cash-flow normalization window: 1 takes the latest
	// value, 3 averages the trailing three periods.
	Window int
	// MaxWorkers bounds concurrent ticker evaluations. 1 runs the batch
	// sequentially.
	MaxWorkers int
	// FetchTimeout bounds each provider fetch; expiry is recorded as a
	// ProviderTimeout verdict for that ticker only.
	FetchTimeout time.Duration
}

// Runner executes the valuation pipeline per ticker and aggregates the
// results. Tickers are independent: a failure is folded into that ticker's
// result row and never aborts the batch.
type Runner struct {
	provider interfaces.MarketDataProvider
	catalog  *valuation.Catalog
	cfg      Config
}

var _ interfaces.Screener = (*Runner)(nil)

// New creates a batch runner.
func New(provider interfaces.MarketDataProvider, catalog *valuation.Catalog, cfg Config) *Runner {
	if cfg.Window < 1 {
		cfg.Window = 1
	}
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = 1
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 20 * time.Second
	}
	return &Runner{
		provider: provider,
		catalog:  catalog,
		cfg:      cfg,
	}
}

// Run evaluates every unique ticker and returns one result per ticker in
// lexicographic order, regardless of how many workers ran the batch.
func (r *Runner) Run(ctx context.Context, tickers []string) ([]types.ValuationResult, error) {
	unique := dedupe(tickers)
	if len(unique) == 0 {
		return nil, fmt.Errorf("no tickers to evaluate")
	}
	sort.Strings(unique)

	logger.Info(ctx, "Starting valuation batch",
		"tickers", len(unique), "workers", r.cfg.MaxWorkers, "fcf_window", r.cfg.Window)

	results := make([]types.ValuationResult, len(unique))

	if r.cfg.MaxWorkers == 1 {
		for i, ticker := range unique {
			results[i] = r.Evaluate(ctx, ticker)
		}
		return results, nil
	}

	// Result slots are indexed by the sorted position so parallel execution
	// cannot reorder the report.
	pool := newWorkerPool(r.cfg.MaxWorkers)
	defer pool.Close()

	var wg sync.WaitGroup
	for i, ticker := range unique {
		i, ticker := i, ticker
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			results[i] = r.Evaluate(ctx, ticker)
		})
	}
	wg.Wait()

	return results, nil
}

// Evaluate runs fetch → normalize → project → bridge → verdict for one
// ticker, plus the trailing P/E cross-check.
func (r *Runner) Evaluate(ctx context.Context, ticker string) types.ValuationResult {
	result := types.ValuationResult{Ticker: ticker}

	tierName, assumptions := r.catalog.Classify(ticker)
	result.Tier = tierName
	if tierName == valuation.DefaultTierName {
		result.Notes = append(result.Notes, "no tier matched; default assumptions applied")
	}

	fctx, cancel := context.WithTimeout(ctx, r.cfg.FetchTimeout)
	defer cancel()

	fin, err := r.provider.Fetch(fctx, ticker)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			result.Verdict = types.VerdictProviderTimeout
		} else {
			result.Verdict = types.VerdictProviderError
		}
		result.Notes = append(result.Notes, fmt.Sprintf("fetch failed: %v", err))
		logger.Valuation(ctx, ticker, tierName, result.Verdict)
		return result
	}

	// The cross-check is independent of the DCF outcome, so failure rows
	// still carry it.
	result.PERatio = fin.TrailingPE
	result.PEVerdict = valuation.ClassifyPE(fin.TrailingPE)
	result.CurrentPrice = fin.CurrentPrice

	norm, err := valuation.NormalizeFCF(fin.CashFlowHistory, r.cfg.Window)
	if err != nil {
		result.Verdict = verdictForError(err)
		logger.Valuation(ctx, ticker, tierName, result.Verdict)
		return result
	}
	if norm.Fallback {
		result.Notes = append(result.Notes, "free cash flow derived from operating cash flow minus capex")
	}

	ev, err := valuation.EnterpriseValue(norm.Value, assumptions)
	if err != nil {
		result.Verdict = verdictForError(err)
		logger.Valuation(ctx, ticker, tierName, result.Verdict, "base_fcf", norm.Value)
		return result
	}

	debt, cash := 0.0, 0.0
	if fin.TotalDebt != nil {
		debt = *fin.TotalDebt
	} else {
		result.Notes = append(result.Notes, "total debt unavailable; defaulted to 0")
	}
	if fin.CashAndEquivalents != nil {
		cash = *fin.CashAndEquivalents
	} else {
		result.Notes = append(result.Notes, "cash and equivalents unavailable; defaulted to 0")
	}

	shares := 0.0
	if fin.SharesOutstanding != nil {
		shares = *fin.SharesOutstanding
	}

	iv, err := valuation.IntrinsicValuePerShare(ev, debt, cash, shares)
	if err != nil {
		result.Verdict = verdictForError(err)
		logger.Valuation(ctx, ticker, tierName, result.Verdict)
		return result
	}

	if fin.CurrentPrice == nil {
		result.Verdict = types.VerdictNoPriceData
		logger.Valuation(ctx, ticker, tierName, result.Verdict)
		return result
	}

	margin, verdict := valuation.ClassifyValue(iv, *fin.CurrentPrice)
	result.IntrinsicValue = &iv
	result.MarginOfSafetyPct = &margin
	result.Verdict = verdict

	logger.Valuation(ctx, ticker, tierName, verdict,
		"intrinsic_value", iv,
		"current_price", *fin.CurrentPrice,
		"margin_pct", margin,
		"pe_verdict", result.PEVerdict,
	)

	return result
}

// verdictForError maps the valuation error taxonomy onto result verdicts.
// Unknown errors become a descriptive Error verdict rather than a panic or
// a dropped row.
func verdictForError(err error) string {
	switch {
	case errors.Is(err, valuation.ErrNoCashFlowData):
		return types.VerdictNoCashFlowData
	case errors.Is(err, valuation.ErrInvalidBaseCashFlow):
		return types.VerdictInvalidBaseCashFlow
	case errors.Is(err, valuation.ErrInvalidTerminalValue):
		return types.VerdictInvalidTerminalValue
	case errors.Is(err, valuation.ErrNoShareData):
		return types.VerdictNoShareData
	case errors.Is(err, valuation.ErrNoPriceData):
		return types.VerdictNoPriceData
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// dedupe keeps the first occurrence of each ticker, case as supplied.
func dedupe(tickers []string) []string {
	seen := make(map[string]struct{}, len(tickers))
	unique := make([]string, 0, len(tickers))
	for _, t := range tickers {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}
	return unique
}
