package valuation

import (
	"math"

	"dcf-screener/internal/types"
)

// NormalizedFCF is the single representative free-cash-flow figure derived
// from history, plus how it was obtained.
type NormalizedFCF struct {
	Value    float64
	Periods  int  // periods that contributed to the mean
	Fallback bool // derived from operating cash flow minus capex
}

// NormalizeFCF reduces cash-flow history to one scalar. window selects the
// mode: 1 takes the latest value, larger windows average the most recent
// periods. A direct free-cash-flow line is preferred; when the window holds
// none, each period falls back to operatingCashFlow − capitalExpenditure.
// Undefined and NaN entries are dropped before averaging; a window that is
// empty after filtering returns ErrNoCashFlowData.
func NormalizeFCF(history []types.FCFPeriod, window int) (NormalizedFCF, error) {
	if window < 1 {
		window = 1
	}
	if window > len(history) {
		window = len(history)
	}
	recent := history[:window]

	direct := make([]float64, 0, window)
	for _, p := range recent {
		if v, ok := defined(p.FreeCashFlow); ok {
			direct = append(direct, v)
		}
	}
	if len(direct) > 0 {
		return NormalizedFCF{Value: mean(direct), Periods: len(direct)}, nil
	}

	derived := make([]float64, 0, window)
	for _, p := range recent {
		op, okOp := defined(p.OperatingCashFlow)
		capex, okCapex := defined(p.CapitalExpenditure)
		if okOp && okCapex {
			derived = append(derived, op-capex)
		}
	}
	if len(derived) > 0 {
		return NormalizedFCF{Value: mean(derived), Periods: len(derived), Fallback: true}, nil
	}

	return NormalizedFCF{}, ErrNoCashFlowData
}

func defined(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, false
	}
	return *v, true
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
