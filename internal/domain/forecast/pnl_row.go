package forecast

import (
	"time"

	"github.com/astris/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultTaxRatePct applies when a P&L row is created without an
// explicit tax rate.
const DefaultTaxRatePct = 25.0

// PnlRow is one forecast year of the profit-and-loss statement.
// Monetary amounts are stored raw, exactly as entered. The percentage
// drivers are normalized on the way in: clamped to [0,100] and rounded
// to one decimal, except RevenueGrowthPct which is only rounded since
// growth may legitimately exceed 100 or go negative. A nil CogsPct or
// OpexPct means the amount was entered directly rather than driven.
type PnlRow struct {
	shared.BaseEntity
	ProjectID uuid.UUID
	Year      int

	Revenue      decimal.Decimal
	Cogs         decimal.Decimal
	Opex         decimal.Decimal
	Depreciation decimal.Decimal
	Interest     decimal.Decimal
	Taxes        decimal.Decimal

	RevenueGrowthPct float64
	CogsPct          *float64
	OpexPct          *float64
	TaxRatePct       float64
}

// PnlRowInput carries the amounts and drivers for a new row. Nil
// driver pointers fall back to defaults (growth 0, tax rate 25); nil
// CogsPct/OpexPct stay nil.
type PnlRowInput struct {
	Revenue      decimal.Decimal
	Cogs         decimal.Decimal
	Opex         decimal.Decimal
	Depreciation decimal.Decimal
	Interest     decimal.Decimal
	Taxes        decimal.Decimal

	RevenueGrowthPct *float64
	CogsPct          *float64
	OpexPct          *float64
	TaxRatePct       *float64
}

// NewPnlRow creates a row for a forecast year with normalized drivers.
func NewPnlRow(projectID uuid.UUID, year int, in PnlRowInput) *PnlRow {
	row := &PnlRow{
		BaseEntity:   shared.NewBaseEntity(),
		ProjectID:    projectID,
		Year:         year,
		Revenue:      in.Revenue,
		Cogs:         in.Cogs,
		Opex:         in.Opex,
		Depreciation: in.Depreciation,
		Interest:     in.Interest,
		Taxes:        in.Taxes,
		CogsPct:      NormalizePct(in.CogsPct),
		OpexPct:      NormalizePct(in.OpexPct),
		TaxRatePct:   DefaultTaxRatePct,
	}
	if in.RevenueGrowthPct != nil {
		row.RevenueGrowthPct = Round1(*in.RevenueGrowthPct)
	}
	if in.TaxRatePct != nil {
		row.TaxRatePct = *NormalizePct(in.TaxRatePct)
	}
	return row
}

// NewSeedPnlRow creates the zero-amount row seeded alongside a new
// project so the first listing is never empty.
func NewSeedPnlRow(projectID uuid.UUID, year int) *PnlRow {
	return NewPnlRow(projectID, year, PnlRowInput{})
}

// NullableFloatPatch distinguishes "leave unchanged" (Set false) from
// "clear to nil" (Set true, Value nil) from "set to a value".
type NullableFloatPatch struct {
	Set   bool
	Value *float64
}

// PnlRowPatch is a partial update; nil / unset fields are untouched.
type PnlRowPatch struct {
	Depreciation     *decimal.Decimal
	Interest         *decimal.Decimal
	RevenueGrowthPct *float64
	CogsPct          NullableFloatPatch
	OpexPct          NullableFloatPatch
	TaxRatePct       *float64
}

// Apply mutates the row with the patch, normalizing drivers the same
// way creation does.
func (r *PnlRow) Apply(patch PnlRowPatch) {
	if patch.Depreciation != nil {
		r.Depreciation = *patch.Depreciation
	}
	if patch.Interest != nil {
		r.Interest = *patch.Interest
	}
	if patch.RevenueGrowthPct != nil {
		r.RevenueGrowthPct = Round1(*patch.RevenueGrowthPct)
	}
	if patch.CogsPct.Set {
		r.CogsPct = NormalizePct(patch.CogsPct.Value)
	}
	if patch.OpexPct.Set {
		r.OpexPct = NormalizePct(patch.OpexPct.Value)
	}
	if patch.TaxRatePct != nil {
		r.TaxRatePct = *NormalizePct(patch.TaxRatePct)
	}
	r.UpdatedAt = time.Now()
}

// SyncFromBalance overwrites the two amounts the balance sheet drives.
func (r *PnlRow) SyncFromBalance(depreciation, interest decimal.Decimal) {
	r.Depreciation = depreciation
	r.Interest = interest
	r.UpdatedAt = time.Now()
}
