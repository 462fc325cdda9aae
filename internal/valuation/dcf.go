package valuation

import (
	"math"

	"dcf-screener/internal/types"
)

// ProjectionHorizon is the number of explicitly projected periods before the
// terminal value takes over.
const ProjectionHorizon = 5

// PEThreshold splits the trailing-multiple cross-check into HighPE and LowPE.
const PEThreshold = 25.0

// EnterpriseValue projects baseFCF over the horizon, caps the stream with a
// Gordon-growth terminal value, and discounts everything to present value.
// Pure function of its inputs.
func EnterpriseValue(baseFCF float64, a types.AssumptionSet) (float64, error) {
	if baseFCF <= 0 || math.IsNaN(baseFCF) {
		return 0, ErrInvalidBaseCashFlow
	}
	if a.DiscountRate <= a.PerpetualGrowthRate {
		return 0, ErrInvalidTerminalValue
	}

	var pv float64
	var projected float64
	for i := 1; i <= ProjectionHorizon; i++ {
		projected = baseFCF * math.Pow(1+a.ShortTermGrowthRate, float64(i))
		pv += projected / math.Pow(1+a.DiscountRate, float64(i))
	}

	terminal := projected * (1 + a.PerpetualGrowthRate) / (a.DiscountRate - a.PerpetualGrowthRate)
	if terminal < 0 {
		return 0, ErrInvalidTerminalValue
	}
	pv += terminal / math.Pow(1+a.DiscountRate, float64(ProjectionHorizon))

	return pv, nil
}

// IntrinsicValuePerShare bridges enterprise value to a per-share equity
// value. Missing debt and cash default to zero at the call site; shares must
// be strictly positive.
func IntrinsicValuePerShare(enterpriseValue, totalDebt, cash, shares float64) (float64, error) {
	if shares <= 0 || math.IsNaN(shares) {
		return 0, ErrNoShareData
	}
	equity := enterpriseValue - totalDebt + cash
	return equity / shares, nil
}

// ClassifyValue compares intrinsic value to the market price. The margin of
// safety is pinned to −100 when the intrinsic value cannot support any
// margin. A tie classifies as Overvalued; only a strictly higher intrinsic
// value is Undervalued.
func ClassifyValue(intrinsic, price float64) (marginPct float64, verdict string) {
	if intrinsic > 0 {
		marginPct = (1 - price/intrinsic) * 100
	} else {
		marginPct = -100
	}
	verdict = types.VerdictOvervalued
	if intrinsic > price {
		verdict = types.VerdictUndervalued
	}
	return marginPct, verdict
}

// ClassifyPE buckets a trailing P/E against PEThreshold. Absent or
// non-positive ratios are Unavailable.
func ClassifyPE(pe *float64) string {
	if pe == nil || *pe <= 0 || math.IsNaN(*pe) {
		return types.PEUnavailable
	}
	if *pe > PEThreshold {
		return types.PEHigh
	}
	return types.PELow
}
