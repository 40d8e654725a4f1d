package handler

import (
	"encoding/json"
	"time"

	forecastapp "github.com/astris/backend/internal/application/forecast"
	"github.com/astris/backend/internal/domain/forecast"
	"github.com/shopspring/decimal"
)

// CreateProjectRequest represents the project creation request body
type CreateProjectRequest struct {
	Name          string `json:"name" binding:"required,max=120"`
	Description   string `json:"description" binding:"omitempty,max=2000"`
	StartYear     int    `json:"start_year" binding:"required"`
	ForecastYears *int   `json:"forecast_years" binding:"omitempty,min=1"`
}

// UpdateProjectRequest represents a partial project update body
type UpdateProjectRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=120"`
	Description   *string `json:"description" binding:"omitempty,max=2000"`
	ForecastYears *int    `json:"forecast_years" binding:"omitempty,min=1"`
}

// ProjectResponse represents a forecasting project
type ProjectResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	StartYear     int       `json:"start_year"`
	ForecastYears int       `json:"forecast_years"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProjectListResponse represents the project list
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

// NullableFloat distinguishes an absent JSON key (Set false) from an
// explicit null (Set true, Value nil) from a number.
type NullableFloat struct {
	Set   bool
	Value *float64
}

// UnmarshalJSON implements json.Unmarshaler. It only runs when the key
// is present, so absence leaves Set false.
func (n *NullableFloat) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// CreatePnlYearRequest represents the body for adding one P&L year
type CreatePnlYearRequest struct {
	Year             int      `json:"year" binding:"required"`
	Revenue          float64  `json:"revenue"`
	Cogs             float64  `json:"cogs"`
	Opex             float64  `json:"opex"`
	Depreciation     float64  `json:"depreciation"`
	Interest         float64  `json:"interest"`
	Taxes            float64  `json:"taxes"`
	RevenueGrowthPct *float64 `json:"revenue_growth_pct"`
	CogsPct          *float64 `json:"cogs_pct"`
	OpexPct          *float64 `json:"opex_pct"`
	TaxRatePct       *float64 `json:"tax_rate_pct"`
}

// UpdatePnlRowRequest represents a partial P&L row update. Omitted
// fields stay untouched; cogs_pct and opex_pct accept null to switch
// the amount back to direct entry.
type UpdatePnlRowRequest struct {
	Depreciation     *float64      `json:"depreciation"`
	Interest         *float64      `json:"interest"`
	RevenueGrowthPct *float64      `json:"revenue_growth_pct"`
	CogsPct          NullableFloat `json:"cogs_pct"`
	OpexPct          NullableFloat `json:"opex_pct"`
	TaxRatePct       *float64      `json:"tax_rate_pct"`
}

// PnlRowResponse represents one P&L forecast year
type PnlRowResponse struct {
	ID               string          `json:"id"`
	Year             int             `json:"year"`
	Revenue          decimal.Decimal `json:"revenue"`
	Cogs             decimal.Decimal `json:"cogs"`
	Opex             decimal.Decimal `json:"opex"`
	Depreciation     decimal.Decimal `json:"depreciation"`
	Interest         decimal.Decimal `json:"interest"`
	Taxes            decimal.Decimal `json:"taxes"`
	RevenueGrowthPct float64         `json:"revenue_growth_pct"`
	CogsPct          *float64        `json:"cogs_pct"`
	OpexPct          *float64        `json:"opex_pct"`
	TaxRatePct       float64         `json:"tax_rate_pct"`
}

// PnlListResponse represents the P&L statement of a project
type PnlListResponse struct {
	Rows []PnlRowResponse `json:"rows"`
}

// SyncPnlYearRequest carries the balance-driven amounts for one year
type SyncPnlYearRequest struct {
	Year         int     `json:"year" binding:"required"`
	Depreciation float64 `json:"depreciation"`
	Interest     float64 `json:"interest"`
}

// SyncPnlRequest represents the bulk depreciation/interest sync body
type SyncPnlRequest struct {
	Updates []SyncPnlYearRequest `json:"updates" binding:"required,min=1,dive"`
}

// CreateBalanceYearRequest represents the body for one balance year
type CreateBalanceYearRequest struct {
	Year int `json:"year" binding:"required"`

	FixedAssets               float64 `json:"fixed_assets"`
	Investments               float64 `json:"investments"`
	Inventory                 float64 `json:"inventory"`
	Receivables               float64 `json:"receivables"`
	OtherShortTermAssets      float64 `json:"other_short_term_assets"`
	Cash                      float64 `json:"cash"`
	Equity                    float64 `json:"equity"`
	EquityContribution        float64 `json:"equity_contribution"`
	Dividend                  float64 `json:"dividend"`
	LongDebt                  float64 `json:"long_debt"`
	ShortDebt                 float64 `json:"short_debt"`
	Payables                  float64 `json:"payables"`
	OtherShortTermLiabilities float64 `json:"other_short_term_liabilities"`

	DepreciationPct *float64 `json:"depreciation_pct"`
	InterestRatePct *float64 `json:"interest_rate_pct"`

	RatioDio    float64 `json:"ratio_dio"`
	RatioDso    float64 `json:"ratio_dso"`
	RatioDpo    float64 `json:"ratio_dpo"`
	RatioOcaPct float64 `json:"ratio_oca_pct"`
	RatioOclPct float64 `json:"ratio_ocl_pct"`
}

// UpdateBalanceFieldRequest updates one editable amount by field name
type UpdateBalanceFieldRequest struct {
	Field string  `json:"field" binding:"required"`
	Value float64 `json:"value"`
}

// UpdateBalanceRatioRequest updates one working-capital driver
type UpdateBalanceRatioRequest struct {
	Field string  `json:"field" binding:"required"`
	Value float64 `json:"value"`
}

// BalanceRowResponse represents one balance-sheet forecast year
type BalanceRowResponse struct {
	ID   string `json:"id"`
	Year int    `json:"year"`

	FixedAssets               decimal.Decimal `json:"fixed_assets"`
	Investments               decimal.Decimal `json:"investments"`
	Inventory                 decimal.Decimal `json:"inventory"`
	Receivables               decimal.Decimal `json:"receivables"`
	OtherShortTermAssets      decimal.Decimal `json:"other_short_term_assets"`
	Cash                      decimal.Decimal `json:"cash"`
	Equity                    decimal.Decimal `json:"equity"`
	EquityContribution        decimal.Decimal `json:"equity_contribution"`
	Dividend                  decimal.Decimal `json:"dividend"`
	LongDebt                  decimal.Decimal `json:"long_debt"`
	ShortDebt                 decimal.Decimal `json:"short_debt"`
	Payables                  decimal.Decimal `json:"payables"`
	OtherShortTermLiabilities decimal.Decimal `json:"other_short_term_liabilities"`

	DepreciationPct float64 `json:"depreciation_pct"`
	InterestRatePct float64 `json:"interest_rate_pct"`

	RatioDio    float64 `json:"ratio_dio"`
	RatioDso    float64 `json:"ratio_dso"`
	RatioDpo    float64 `json:"ratio_dpo"`
	RatioOcaPct float64 `json:"ratio_oca_pct"`
	RatioOclPct float64 `json:"ratio_ocl_pct"`
}

// BalanceListResponse represents the balance sheet of a project
type BalanceListResponse struct {
	Rows []BalanceRowResponse `json:"rows"`
}

// CashflowResponse combines both statements for the cashflow view
type CashflowResponse struct {
	Pnl     []PnlRowResponse     `json:"pnl"`
	Balance []BalanceRowResponse `json:"balance"`
}

// DashboardResponse adds the year axis to the combined statements
type DashboardResponse struct {
	ProjectID string               `json:"project_id"`
	Years     []int                `json:"years"`
	Pnl       []PnlRowResponse     `json:"pnl"`
	Balance   []BalanceRowResponse `json:"balance"`
}

func toProjectResponse(p *forecast.Project) ProjectResponse {
	return ProjectResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Description:   p.Description,
		StartYear:     p.StartYear,
		ForecastYears: p.ForecastYears,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toPnlRowResponse(r *forecast.PnlRow) PnlRowResponse {
	return PnlRowResponse{
		ID:               r.ID.String(),
		Year:             r.Year,
		Revenue:          r.Revenue,
		Cogs:             r.Cogs,
		Opex:             r.Opex,
		Depreciation:     r.Depreciation,
		Interest:         r.Interest,
		Taxes:            r.Taxes,
		RevenueGrowthPct: r.RevenueGrowthPct,
		CogsPct:          r.CogsPct,
		OpexPct:          r.OpexPct,
		TaxRatePct:       r.TaxRatePct,
	}
}

func toPnlRowResponses(rows []*forecast.PnlRow) []PnlRowResponse {
	out := make([]PnlRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toPnlRowResponse(r))
	}
	return out
}

func toBalanceRowResponse(r *forecast.BalanceRow) BalanceRowResponse {
	return BalanceRowResponse{
		ID:                        r.ID.String(),
		Year:                      r.Year,
		FixedAssets:               r.FixedAssets,
		Investments:               r.Investments,
		Inventory:                 r.Inventory,
		Receivables:               r.Receivables,
		OtherShortTermAssets:      r.OtherShortTermAssets,
		Cash:                      r.Cash,
		Equity:                    r.Equity,
		EquityContribution:        r.EquityContribution,
		Dividend:                  r.Dividend,
		LongDebt:                  r.LongDebt,
		ShortDebt:                 r.ShortDebt,
		Payables:                  r.Payables,
		OtherShortTermLiabilities: r.OtherShortTermLiabilities,
		DepreciationPct:           r.DepreciationPct,
		InterestRatePct:           r.InterestRatePct,
		RatioDio:                  r.RatioDio,
		RatioDso:                  r.RatioDso,
		RatioDpo:                  r.RatioDpo,
		RatioOcaPct:               r.RatioOcaPct,
		RatioOclPct:               r.RatioOclPct,
	}
}

func toBalanceRowResponses(rows []*forecast.BalanceRow) []BalanceRowResponse {
	out := make([]BalanceRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toBalanceRowResponse(r))
	}
	return out
}

func (req CreatePnlYearRequest) toRowInput() forecast.PnlRowInput {
	return forecast.PnlRowInput{
		Revenue:          toDecimal(req.Revenue),
		Cogs:             toDecimal(req.Cogs),
		Opex:             toDecimal(req.Opex),
		Depreciation:     toDecimal(req.Depreciation),
		Interest:         toDecimal(req.Interest),
		Taxes:            toDecimal(req.Taxes),
		RevenueGrowthPct: req.RevenueGrowthPct,
		CogsPct:          req.CogsPct,
		OpexPct:          req.OpexPct,
		TaxRatePct:       req.TaxRatePct,
	}
}

func (req UpdatePnlRowRequest) toPatch() forecast.PnlRowPatch {
	patch := forecast.PnlRowPatch{
		RevenueGrowthPct: req.RevenueGrowthPct,
		CogsPct:          forecast.NullableFloatPatch{Set: req.CogsPct.Set, Value: req.CogsPct.Value},
		OpexPct:          forecast.NullableFloatPatch{Set: req.OpexPct.Set, Value: req.OpexPct.Value},
		TaxRatePct:       req.TaxRatePct,
	}
	if req.Depreciation != nil {
		patch.Depreciation = toDecimalPtr(*req.Depreciation)
	}
	if req.Interest != nil {
		patch.Interest = toDecimalPtr(*req.Interest)
	}
	return patch
}

func (req CreateBalanceYearRequest) toRowInput() forecast.BalanceRowInput {
	return forecast.BalanceRowInput{
		FixedAssets:               toDecimal(req.FixedAssets),
		Investments:               toDecimal(req.Investments),
		Inventory:                 toDecimal(req.Inventory),
		Receivables:               toDecimal(req.Receivables),
		OtherShortTermAssets:      toDecimal(req.OtherShortTermAssets),
		Cash:                      toDecimal(req.Cash),
		Equity:                    toDecimal(req.Equity),
		EquityContribution:        toDecimal(req.EquityContribution),
		Dividend:                  toDecimal(req.Dividend),
		LongDebt:                  toDecimal(req.LongDebt),
		ShortDebt:                 toDecimal(req.ShortDebt),
		Payables:                  toDecimal(req.Payables),
		OtherShortTermLiabilities: toDecimal(req.OtherShortTermLiabilities),
		DepreciationPct:           req.DepreciationPct,
		InterestRatePct:           req.InterestRatePct,
		RatioDio:                  req.RatioDio,
		RatioDso:                  req.RatioDso,
		RatioDpo:                  req.RatioDpo,
		RatioOcaPct:               req.RatioOcaPct,
		RatioOclPct:               req.RatioOclPct,
	}
}

func (req SyncPnlRequest) toSyncInput() []forecastapp.YearSync {
	updates := make([]forecastapp.YearSync, 0, len(req.Updates))
	for _, u := range req.Updates {
		updates = append(updates, forecastapp.YearSync{
			Year:         u.Year,
			Depreciation: toDecimal(u.Depreciation),
			Interest:     toDecimal(u.Interest),
		})
	}
	return updates
}

// toDecimal converts a float64 request amount to a decimal.Decimal
func toDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// toDecimalPtr converts a float64 to a *decimal.Decimal
func toDecimalPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}
