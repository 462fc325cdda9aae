package interfaces

import "context"

// UniverseSource produces the set of ticker symbols to evaluate.
type UniverseSource interface {
	Tickers(ctx context.Context) ([]string, error)
}
