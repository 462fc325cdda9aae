package mock

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"dcf-screener/internal/types"
)

// Provider generates plausible company financials without touching the
// network, so the full pipeline runs offline in STATIC mode. The data is a
// pure function of the ticker symbol: repeated fetches are identical.
type Provider struct{}

// New creates a mock provider.
func New() *Provider {
	return &Provider{}
}

// Fetch generates the snapshot for one ticker.
func (p *Provider) Fetch(ctx context.Context, ticker string) (*types.CompanyFinancials, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return generate(ticker), nil
}

func generate(ticker string) *types.CompanyFinancials {
	var seed int64
	for _, c := range ticker {
		seed = seed*31 + int64(c)
	}
	r := rand.New(rand.NewSource(seed))

	baseFCF := 2e9 + r.Float64()*90e9
	growth := 0.96 + r.Float64()*0.12 // year-over-year drift

	history := make([]types.FCFPeriod, 0, 4)
	fcf := baseFCF
	for year := 2024; year >= 2021; year-- {
		v := fcf
		op := v * (1.2 + r.Float64()*0.3)
		capex := op - v
		history = append(history, types.FCFPeriod{
			Period:             fmt.Sprintf("%d-12-31", year),
			FreeCashFlow:       &v,
			OperatingCashFlow:  &op,
			CapitalExpenditure: &capex,
		})
		fcf /= growth
	}

	shares := 1e9 + r.Float64()*14e9
	debt := baseFCF * (0.5 + r.Float64()*2.0)
	cash := baseFCF * (0.3 + r.Float64()*1.5)
	price := baseFCF / shares * (8 + r.Float64()*30)
	pe := 8 + r.Float64()*35

	return &types.CompanyFinancials{
		Ticker:             ticker,
		CashFlowHistory:    history,
		TotalDebt:          &debt,
		CashAndEquivalents: &cash,
		SharesOutstanding:  &shares,
		CurrentPrice:       &price,
		TrailingPE:         &pe,
		FetchTime:          time.Unix(0, 0).UTC(),
	}
}
