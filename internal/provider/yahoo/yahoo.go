package yahoo

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"dcf-screener/internal/api"
	"dcf-screener/internal/logger"
	"dcf-screener/internal/types"
)

const (
	quoteSummaryURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=cashflowStatementHistory%%2CfinancialData%%2CdefaultKeyStatistics%%2Cprice%%2CsummaryDetail"
	keyStatsURL     = "https://finance.yahoo.com/quote/%s/key-statistics/"
)

// Provider fetches company financials from the Yahoo Finance quoteSummary
// API, falling back to scraping the key-statistics page for snapshot fields
// the API response omits.
type Provider struct {
	client *api.Client
	retry  *api.RetryConfig
}

// Option configures the provider.
type Option func(*Provider)

// WithRetryAttempts overrides the number of fetch attempts per request.
func WithRetryAttempts(attempts int) Option {
	return func(p *Provider) {
		p.retry.MaxAttempts = attempts
	}
}

// New creates a Yahoo Finance provider. timeout bounds each HTTP request.
func New(timeout time.Duration, opts ...Option) *Provider {
	p := &Provider{
		client: api.NewClient(
			api.WithTimeout(timeout),
			api.WithLogging(true),
		),
		retry: api.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fetch retrieves the financial snapshot for one ticker.
func (p *Provider) Fetch(ctx context.Context, ticker string) (*types.CompanyFinancials, error) {
	reqURL := fmt.Sprintf(quoteSummaryURL, url.PathEscape(ticker))
	req := api.NewRequest(http.MethodGet, reqURL).WithContext(ctx)
	for k, v := range api.YahooFinanceHeaders() {
		req.WithHeader(k, v)
	}

	resp, err := p.client.DoWithRetry(req, p.retry)
	if err != nil {
		return nil, fmt.Errorf("quoteSummary fetch for %s: %w", ticker, err)
	}

	var qs quoteSummaryResponse
	if err := resp.ParseJSON(&qs); err != nil {
		return nil, fmt.Errorf("quoteSummary decode for %s: %w", ticker, err)
	}
	if qs.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quoteSummary error for %s: %s", ticker, qs.QuoteSummary.Error.Description)
	}
	if len(qs.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("quoteSummary returned no result for %s", ticker)
	}

	fin := mapResult(ticker, qs.QuoteSummary.Result[0])
	fin.FetchTime = time.Now()

	// The API sometimes omits the snapshot modules; the key-statistics page
	// usually still carries them.
	if fin.SharesOutstanding == nil || fin.TotalDebt == nil || fin.CashAndEquivalents == nil {
		if err := p.scrapeKeyStatistics(ctx, ticker, fin); err != nil {
			logger.Warn(ctx, "Key-statistics fallback failed", "ticker", ticker, "error", err)
		}
	}

	return fin, nil
}

// mapResult converts Yahoo's module layout into the provider-neutral
// snapshot the valuation core consumes.
func mapResult(ticker string, r quoteSummaryResult) *types.CompanyFinancials {
	fin := &types.CompanyFinancials{Ticker: ticker}

	if r.CashflowStatementHistory != nil {
		for _, stmt := range r.CashflowStatementHistory.Statements {
			period := types.FCFPeriod{Period: stmt.EndDate.Fmt}
			if period.Period == "" && stmt.EndDate.Raw != nil {
				period.Period = strconv.FormatInt(int64(*stmt.EndDate.Raw), 10)
			}
			period.OperatingCashFlow = stmt.TotalCashFromOperatingActivities.Raw
			if capex := stmt.CapitalExpenditures.Raw; capex != nil {
				// Yahoo reports capex as a negative outflow; the core
				// expects a positive magnitude.
				v := *capex
				if v < 0 {
					v = -v
				}
				period.CapitalExpenditure = &v
			}
			fin.CashFlowHistory = append(fin.CashFlowHistory, period)
		}
	}

	if r.FinancialData != nil {
		// financialData carries a single current free-cash-flow figure;
		// treat it as the designated line for the most recent period.
		if r.FinancialData.FreeCashflow.Raw != nil && len(fin.CashFlowHistory) > 0 {
			fin.CashFlowHistory[0].FreeCashFlow = r.FinancialData.FreeCashflow.Raw
		}
		fin.TotalDebt = r.FinancialData.TotalDebt.Raw
		fin.CashAndEquivalents = r.FinancialData.TotalCash.Raw
		fin.CurrentPrice = r.FinancialData.CurrentPrice.Raw
	}

	if r.DefaultKeyStatistics != nil {
		fin.SharesOutstanding = r.DefaultKeyStatistics.SharesOutstanding.Raw
	}

	if r.SummaryDetail != nil {
		fin.TrailingPE = r.SummaryDetail.TrailingPE.Raw
	}

	// regularMarketPrice is the documented fallback when currentPrice is
	// absent.
	if fin.CurrentPrice == nil && r.Price != nil {
		fin.CurrentPrice = r.Price.RegularMarketPrice.Raw
	}

	return fin
}

// scrapeKeyStatistics fills still-missing snapshot fields from the
// key-statistics HTML page.
func (p *Provider) scrapeKeyStatistics(ctx context.Context, ticker string, fin *types.CompanyFinancials) error {
	resp, err := p.client.GET(ctx, fmt.Sprintf(keyStatsURL, url.PathEscape(ticker)), api.BrowserHeaders())
	if err != nil {
		return fmt.Errorf("key-statistics fetch: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return fmt.Errorf("key-statistics parse: %w", err)
	}

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		label := strings.TrimSpace(cells.First().Text())
		value, err := parseAbbreviated(strings.TrimSpace(cells.Eq(1).Text()))
		if err != nil {
			return
		}

		switch {
		case fin.SharesOutstanding == nil && strings.Contains(label, "Shares Outstanding"):
			fin.SharesOutstanding = &value
		case fin.TotalDebt == nil && strings.Contains(label, "Total Debt"):
			fin.TotalDebt = &value
		case fin.CashAndEquivalents == nil && strings.HasPrefix(label, "Total Cash"):
			fin.CashAndEquivalents = &value
		case fin.TrailingPE == nil && strings.Contains(label, "Trailing P/E"):
			fin.TrailingPE = &value
		}
	})

	return nil
}

// parseAbbreviated parses Yahoo's abbreviated numbers ("15.55B", "1,234.5M").
func parseAbbreviated(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == "N/A" || s == "--" {
		return 0, fmt.Errorf("no value")
	}

	multiplier := 1.0
	switch s[len(s)-1] {
	case 'T':
		multiplier = 1e12
		s = s[:len(s)-1]
	case 'B':
		multiplier = 1e9
		s = s[:len(s)-1]
	case 'M':
		multiplier = 1e6
		s = s[:len(s)-1]
	case 'k', 'K':
		multiplier = 1e3
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	return v * multiplier, nil
}
