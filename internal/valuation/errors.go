package valuation

import "errors"

// Per-ticker failure taxonomy. Every stage that can fail returns one of
// these so the batch runner can record a named verdict instead of aborting
// the run.
var (
	ErrNoCashFlowData       = errors.New("no usable free cash flow data")
	ErrInvalidBaseCashFlow  = errors.New("normalized free cash flow is not positive")
	ErrInvalidTerminalValue = errors.New("discount rate must exceed perpetual growth rate")
	ErrNoShareData          = errors.New("shares outstanding missing or zero")
	ErrNoPriceData          = errors.New("current price missing")
)
