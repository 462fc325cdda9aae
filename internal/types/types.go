package types

import "time"

// AssumptionSet holds the three economic inputs to a DCF projection.
// DiscountRate must exceed PerpetualGrowthRate or the terminal value
// is undefined.
type AssumptionSet struct {
	ShortTermGrowthRate float64 `yaml:"growth_rate" json:"growth_rate"`
	DiscountRate        float64 `yaml:"discount_rate" json:"discount_rate"`
	PerpetualGrowthRate float64 `yaml:"perpetual_growth_rate" json:"perpetual_growth_rate"`
}

// Tier groups companies with a similar growth/risk profile and pins the
// assumption set used for every member.
type Tier struct {
	Name        string        `yaml:"name" json:"name"`
	Tickers     []string      `yaml:"tickers" json:"tickers"`
	Assumptions AssumptionSet `yaml:"assumptions" json:"assumptions"`
}

// FCFPeriod is one period of cash-flow statement history, most recent first.
// Nil fields were absent from the source data. CapitalExpenditure is a
// positive magnitude; providers normalize the sign.
type FCFPeriod struct {
	Period             string   `json:"period"`
	FreeCashFlow       *float64 `json:"free_cash_flow,omitempty"`
	OperatingCashFlow  *float64 `json:"operating_cash_flow,omitempty"`
	CapitalExpenditure *float64 `json:"capital_expenditure,omitempty"`
}

// CompanyFinancials is the per-ticker snapshot supplied by a market-data
// provider. Every field may be missing; the valuation core decides what
// each absence means.
type CompanyFinancials struct {
	Ticker             string      `json:"ticker"`
	CashFlowHistory    []FCFPeriod `json:"cash_flow_history,omitempty"`
	TotalDebt          *float64    `json:"total_debt,omitempty"`
	CashAndEquivalents *float64    `json:"cash_and_equivalents,omitempty"`
	SharesOutstanding  *float64    `json:"shares_outstanding,omitempty"`
	CurrentPrice       *float64    `json:"current_price,omitempty"`
	TrailingPE         *float64    `json:"trailing_pe,omitempty"`
	FetchTime          time.Time   `json:"fetch_time"`
}

// Verdicts carried on a ValuationResult. The first two are computed
// classifications, the rest name the per-ticker failure that stopped the
// pipeline.
const (
	VerdictUndervalued = "Undervalued"
	VerdictOvervalued  = "Overvalued"

	VerdictNoCashFlowData       = "NoCashFlowData"
	VerdictInvalidBaseCashFlow  = "InvalidBaseCashFlow"
	VerdictInvalidTerminalValue = "InvalidTerminalValue"
	VerdictNoShareData          = "NoShareData"
	VerdictNoPriceData          = "NoPriceData"
	VerdictProviderError        = "ProviderError"
	VerdictProviderTimeout      = "ProviderTimeout"
)

// Trailing P/E cross-check classifications.
const (
	PEHigh        = "HighPE"
	PELow         = "LowPE"
	PEUnavailable = "Unavailable"
)

// ValuationResult is the one record the screener emits per input ticker.
// Either IntrinsicValue, MarginOfSafetyPct and a computed verdict are all
// populated, or none are and Verdict names the reason. Notes record every
// fallback decision that shaped the number.
type ValuationResult struct {
	Ticker            string   `json:"ticker"`
	Tier              string   `json:"tier"`
	IntrinsicValue    *float64 `json:"intrinsic_value,omitempty"`
	CurrentPrice      *float64 `json:"current_price,omitempty"`
	MarginOfSafetyPct *float64 `json:"margin_of_safety_pct,omitempty"`
	Verdict           string   `json:"verdict"`
	PERatio           *float64 `json:"pe_ratio,omitempty"`
	PEVerdict         string   `json:"pe_verdict,omitempty"`
	Notes             []string `json:"notes,omitempty"`
}

// Ptr returns a pointer to v. Convenience for the optional float fields.
func Ptr(v float64) *float64 { return &v }
