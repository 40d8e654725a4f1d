package forecast

import (
	"math"

	"github.com/shopspring/decimal"
)

var daysPerYear = decimal.NewFromInt(365)

// Ratios are the working-capital drivers attached to a balance row.
// Day counts (DIO/DSO/DPO) and the two percentage drivers feed the
// derivation below.
type Ratios struct {
	Dio                 float64
	Dso                 float64
	Dpo                 float64
	OtherAssetsPct      float64
	OtherLiabilitiesPct float64
}

// WorkingCapital holds the derived balance-sheet line items, rounded to
// whole currency units.
type WorkingCapital struct {
	Inventory                 decimal.Decimal
	Receivables               decimal.Decimal
	Payables                  decimal.Decimal
	OtherShortTermAssets      decimal.Decimal
	OtherShortTermLiabilities decimal.Decimal
}

// DeriveWorkingCapital turns day-count and percentage drivers into
// derived line items:
//
//	inventory                 = round(dio/365 * cogs)
//	receivables               = round(dso/365 * revenue)
//	payables                  = round(dpo/365 * cogs)
//	otherShortTermAssets      = round(otherAssetsPct/100 * revenue)
//	otherShortTermLiabilities = round(otherLiabilitiesPct/100 * revenue)
//
// The function is pure and total: zero or negative revenue/COGS are
// valid inputs and simply flow through the arithmetic. Rounding is half
// away from zero, applied consistently to every output.
func DeriveWorkingCapital(revenue, cogs decimal.Decimal, ratios Ratios) WorkingCapital {
	return WorkingCapital{
		Inventory:                 dayCountShare(ratios.Dio, cogs),
		Receivables:               dayCountShare(ratios.Dso, revenue),
		Payables:                  dayCountShare(ratios.Dpo, cogs),
		OtherShortTermAssets:      pctShare(ratios.OtherAssetsPct, revenue),
		OtherShortTermLiabilities: pctShare(ratios.OtherLiabilitiesPct, revenue),
	}
}

func dayCountShare(days float64, base decimal.Decimal) decimal.Decimal {
	return decimal.NewFromFloat(days).Div(daysPerYear).Mul(base).Round(0)
}

func pctShare(pct float64, base decimal.Decimal) decimal.Decimal {
	return decimal.NewFromFloat(pct).Div(decimal.NewFromInt(100)).Mul(base).Round(0)
}

// NormalizePct clamps a percentage driver to [0,100] and rounds it to
// one decimal place. A nil value means "raw amount entered directly"
// and passes through unchanged; it is never coerced to zero.
func NormalizePct(v *float64) *float64 {
	if v == nil {
		return nil
	}
	n := Round1(clamp(*v, 0, 100))
	return &n
}

// Round1 rounds to one decimal place, half away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
