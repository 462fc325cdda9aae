package yahoo

// Wire types for the quoteSummary API. Yahoo wraps every scalar in a
// {raw, fmt} pair; absent fields decode to nil Raw.

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

type rawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

type quoteSummaryResult struct {
	CashflowStatementHistory *struct {
		Statements []cashflowStatement `json:"cashflowStatements"`
	} `json:"cashflowStatementHistory"`
	FinancialData *struct {
		CurrentPrice rawValue `json:"currentPrice"`
		TotalDebt    rawValue `json:"totalDebt"`
		TotalCash    rawValue `json:"totalCash"`
		FreeCashflow rawValue `json:"freeCashflow"`
	} `json:"financialData"`
	DefaultKeyStatistics *struct {
		SharesOutstanding rawValue `json:"sharesOutstanding"`
	} `json:"defaultKeyStatistics"`
	SummaryDetail *struct {
		TrailingPE rawValue `json:"trailingPE"`
	} `json:"summaryDetail"`
	Price *struct {
		RegularMarketPrice rawValue `json:"regularMarketPrice"`
	} `json:"price"`
}

type cashflowStatement struct {
	EndDate                          rawValue `json:"endDate"`
	TotalCashFromOperatingActivities rawValue `json:"totalCashFromOperatingActivities"`
	CapitalExpenditures              rawValue `json:"capitalExpenditures"`
}
