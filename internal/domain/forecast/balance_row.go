package forecast

import (
	"time"

	"github.com/astris/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Defaults applied when a balance row is created without explicit
// values for these drivers.
const (
	DefaultDepreciationPct = 10.0
	DefaultInterestRatePct = 5.0
)

// BalanceRow is one forecast year of the balance sheet. Monetary
// fields carry no sign constraint (dividends can be negative). The
// ratio drivers feed DeriveWorkingCapital, whose outputs overwrite
// Inventory, Receivables, Payables and the two "other" buckets.
type BalanceRow struct {
	shared.BaseEntity
	ProjectID uuid.UUID
	Year      int

	FixedAssets               decimal.Decimal
	Investments               decimal.Decimal
	Inventory                 decimal.Decimal
	Receivables               decimal.Decimal
	OtherShortTermAssets      decimal.Decimal
	Cash                      decimal.Decimal
	Equity                    decimal.Decimal
	EquityContribution        decimal.Decimal
	Dividend                  decimal.Decimal
	LongDebt                  decimal.Decimal
	ShortDebt                 decimal.Decimal
	Payables                  decimal.Decimal
	OtherShortTermLiabilities decimal.Decimal

	DepreciationPct float64
	InterestRatePct float64

	RatioDio    float64
	RatioDso    float64
	RatioDpo    float64
	RatioOcaPct float64
	RatioOclPct float64
}

// BalanceRowInput carries optional initial values; nil pointers fall
// back to zero amounts and the driver defaults above.
type BalanceRowInput struct {
	FixedAssets               decimal.Decimal
	Investments               decimal.Decimal
	Inventory                 decimal.Decimal
	Receivables               decimal.Decimal
	OtherShortTermAssets      decimal.Decimal
	Cash                      decimal.Decimal
	Equity                    decimal.Decimal
	EquityContribution        decimal.Decimal
	Dividend                  decimal.Decimal
	LongDebt                  decimal.Decimal
	ShortDebt                 decimal.Decimal
	Payables                  decimal.Decimal
	OtherShortTermLiabilities decimal.Decimal

	DepreciationPct *float64
	InterestRatePct *float64

	RatioDio    float64
	RatioDso    float64
	RatioDpo    float64
	RatioOcaPct float64
	RatioOclPct float64
}

// NewBalanceRow creates a balance-sheet year with defaults filled in.
func NewBalanceRow(projectID uuid.UUID, year int, in BalanceRowInput) *BalanceRow {
	row := &BalanceRow{
		BaseEntity:                shared.NewBaseEntity(),
		ProjectID:                 projectID,
		Year:                      year,
		FixedAssets:               in.FixedAssets,
		Investments:               in.Investments,
		Inventory:                 in.Inventory,
		Receivables:               in.Receivables,
		OtherShortTermAssets:      in.OtherShortTermAssets,
		Cash:                      in.Cash,
		Equity:                    in.Equity,
		EquityContribution:        in.EquityContribution,
		Dividend:                  in.Dividend,
		LongDebt:                  in.LongDebt,
		ShortDebt:                 in.ShortDebt,
		Payables:                  in.Payables,
		OtherShortTermLiabilities: in.OtherShortTermLiabilities,
		DepreciationPct:           DefaultDepreciationPct,
		InterestRatePct:           DefaultInterestRatePct,
		RatioDio:                  in.RatioDio,
		RatioDso:                  in.RatioDso,
		RatioDpo:                  in.RatioDpo,
		RatioOcaPct:               in.RatioOcaPct,
		RatioOclPct:               in.RatioOclPct,
	}
	if in.DepreciationPct != nil {
		row.DepreciationPct = *NormalizePct(in.DepreciationPct)
	}
	if in.InterestRatePct != nil {
		row.InterestRatePct = *NormalizePct(in.InterestRatePct)
	}
	return row
}

// Ratios returns the working-capital drivers for derivation.
func (r *BalanceRow) Ratios() Ratios {
	return Ratios{
		Dio:                 r.RatioDio,
		Dso:                 r.RatioDso,
		Dpo:                 r.RatioDpo,
		OtherAssetsPct:      r.RatioOcaPct,
		OtherLiabilitiesPct: r.RatioOclPct,
	}
}

// ApplyDerived overwrites the ratio-driven line items with freshly
// derived values.
func (r *BalanceRow) ApplyDerived(wc WorkingCapital) {
	r.Inventory = wc.Inventory
	r.Receivables = wc.Receivables
	r.Payables = wc.Payables
	r.OtherShortTermAssets = wc.OtherShortTermAssets
	r.OtherShortTermLiabilities = wc.OtherShortTermLiabilities
	r.UpdatedAt = time.Now()
}

// SetAmountField updates one directly editable field by its API name.
// Fields outside the whitelist, including the derived line items,
// surface INVALID_FIELD.
func (r *BalanceRow) SetAmountField(field string, value decimal.Decimal) error {
	switch field {
	case "equityContribution":
		r.EquityContribution = value
	case "dividend":
		r.Dividend = value
	case "longDebt":
		r.LongDebt = value
	case "shortDebt":
		r.ShortDebt = value
	case "fixedAssets":
		r.FixedAssets = value
	case "investments":
		r.Investments = value
	case "cash":
		r.Cash = value
	case "interestRatePct":
		v, _ := value.Float64()
		r.InterestRatePct = *NormalizePct(&v)
	default:
		return shared.NewDomainError("INVALID_FIELD", "invalid update field: "+field)
	}
	r.UpdatedAt = time.Now()
	return nil
}

// SetRatioField updates one working-capital driver by its API name.
func (r *BalanceRow) SetRatioField(field string, value float64) error {
	switch field {
	case "ratioDio":
		r.RatioDio = value
	case "ratioDso":
		r.RatioDso = value
	case "ratioDpo":
		r.RatioDpo = value
	case "ratioOcaPct":
		r.RatioOcaPct = *NormalizePct(&value)
	case "ratioOclPct":
		r.RatioOclPct = *NormalizePct(&value)
	default:
		return shared.NewDomainError("INVALID_FIELD", "invalid ratio field: "+field)
	}
	r.UpdatedAt = time.Now()
	return nil
}
