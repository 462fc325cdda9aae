package universe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"dcf-screener/internal/logger"
)

// Static serves a fixed ticker list from configuration.
type Static struct {
	tickers []string
}

// NewStatic creates a static universe source.
func NewStatic(tickers []string) *Static {
	return &Static{tickers: tickers}
}

// Tickers returns the configured list.
func (s *Static) Tickers(ctx context.Context) ([]string, error) {
	if len(s.tickers) == 0 {
		return nil, fmt.Errorf("static universe is empty")
	}
	out := make([]string, len(s.tickers))
	copy(out, s.tickers)
	return out, nil
}

const sp500URL = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"

// FallbackTickers is served when the index membership scrape fails.
var FallbackTickers = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "TSLA", "META", "JPM"}

// SP500 scrapes current S&P 500 constituents from Wikipedia.
type SP500 struct {
	timeout time.Duration
}

// NewSP500 creates an index-membership universe source.
func NewSP500(timeout time.Duration) *SP500 {
	return &SP500{timeout: timeout}
}

// Tickers scrapes the constituents table. A failed or empty scrape degrades
// to FallbackTickers rather than aborting the run.
func (s *SP500) Tickers(ctx context.Context) ([]string, error) {
	tickers, err := s.scrape(ctx)
	if err != nil || len(tickers) == 0 {
		logger.Warn(ctx, "S&P 500 scrape failed, using fallback list",
			"error", err, "fallback_count", len(FallbackTickers))
		out := make([]string, len(FallbackTickers))
		copy(out, FallbackTickers)
		return out, nil
	}

	logger.Info(ctx, "Fetched S&P 500 constituents", "count", len(tickers))
	return tickers, nil
}

func (s *SP500) scrape(ctx context.Context) ([]string, error) {
	c := colly.NewCollector(
		colly.AllowedDomains("en.wikipedia.org"),
		colly.MaxDepth(1),
		colly.Async(false),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	})

	var tickers []string
	c.OnHTML("table#constituents tbody tr", func(e *colly.HTMLElement) {
		symbol := strings.TrimSpace(e.ChildText("td:first-of-type"))
		if symbol == "" {
			return
		}
		tickers = append(tickers, symbol)
	})

	var scrapeErr error
	c.OnError(func(r *colly.Response, err error) {
		scrapeErr = err
	})

	if err := c.Visit(sp500URL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", sp500URL, err)
	}
	c.Wait()

	if scrapeErr != nil {
		return nil, scrapeErr
	}
	return tickers, nil
}
