package models

import (
	"github.com/astris/backend/internal/domain/forecast"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectModel is the persistence model for a forecasting project.
type ProjectModel struct {
	BaseModel
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"type:varchar(200);not null"`
	Description   string    `gorm:"type:text"`
	StartYear     int       `gorm:"not null"`
	ForecastYears int       `gorm:"not null;default:5"`
}

// TableName returns the table name for GORM
func (ProjectModel) TableName() string {
	return "projects"
}

// ToDomain converts the persistence model to a domain Project.
func (m *ProjectModel) ToDomain() *forecast.Project {
	return &forecast.Project{
		BaseEntity:    m.BaseModel.ToDomain(),
		UserID:        m.UserID,
		Name:          m.Name,
		Description:   m.Description,
		StartYear:     m.StartYear,
		ForecastYears: m.ForecastYears,
	}
}

// ProjectModelFromDomain builds the persistence model from a domain Project.
func ProjectModelFromDomain(p *forecast.Project) *ProjectModel {
	m := &ProjectModel{
		UserID:        p.UserID,
		Name:          p.Name,
		Description:   p.Description,
		StartYear:     p.StartYear,
		ForecastYears: p.ForecastYears,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// PnlRowModel is the persistence model for one P&L forecast year.
// (project_id, year) is unique so reconciliation can upsert on it.
type PnlRowModel struct {
	BaseModel
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pnl_project_year"`
	Year      int       `gorm:"not null;uniqueIndex:idx_pnl_project_year"`

	Revenue      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Cogs         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Opex         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Depreciation decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Interest     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Taxes        decimal.Decimal `gorm:"type:decimal(18,2);not null"`

	RevenueGrowthPct float64 `gorm:"not null;default:0"`
	CogsPct          *float64
	OpexPct          *float64
	TaxRatePct       float64 `gorm:"not null;default:25"`
}

// TableName returns the table name for GORM
func (PnlRowModel) TableName() string {
	return "pnl_rows"
}

// ToDomain converts the persistence model to a domain PnlRow.
func (m *PnlRowModel) ToDomain() *forecast.PnlRow {
	return &forecast.PnlRow{
		BaseEntity:       m.BaseModel.ToDomain(),
		ProjectID:        m.ProjectID,
		Year:             m.Year,
		Revenue:          m.Revenue,
		Cogs:             m.Cogs,
		Opex:             m.Opex,
		Depreciation:     m.Depreciation,
		Interest:         m.Interest,
		Taxes:            m.Taxes,
		RevenueGrowthPct: m.RevenueGrowthPct,
		CogsPct:          m.CogsPct,
		OpexPct:          m.OpexPct,
		TaxRatePct:       m.TaxRatePct,
	}
}

// PnlRowModelFromDomain builds the persistence model from a domain PnlRow.
func PnlRowModelFromDomain(r *forecast.PnlRow) *PnlRowModel {
	m := &PnlRowModel{
		ProjectID:        r.ProjectID,
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
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// BalanceRowModel is the persistence model for one balance-sheet
// forecast year.
type BalanceRowModel struct {
	BaseModel
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_balance_project_year"`
	Year      int       `gorm:"not null;uniqueIndex:idx_balance_project_year"`

	FixedAssets               decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Investments               decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Inventory                 decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Receivables               decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	OtherShortTermAssets      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Cash                      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Equity                    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	EquityContribution        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Dividend                  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	LongDebt                  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ShortDebt                 decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Payables                  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	OtherShortTermLiabilities decimal.Decimal `gorm:"type:decimal(18,2);not null"`

	DepreciationPct float64 `gorm:"not null;default:10"`
	InterestRatePct float64 `gorm:"not null;default:5"`

	RatioDio    float64 `gorm:"not null;default:0"`
	RatioDso    float64 `gorm:"not null;default:0"`
	RatioDpo    float64 `gorm:"not null;default:0"`
	RatioOcaPct float64 `gorm:"not null;default:0"`
	RatioOclPct float64 `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (BalanceRowModel) TableName() string {
	return "balance_rows"
}

// ToDomain converts the persistence model to a domain BalanceRow.
func (m *BalanceRowModel) ToDomain() *forecast.BalanceRow {
	return &forecast.BalanceRow{
		BaseEntity:                m.BaseModel.ToDomain(),
		ProjectID:                 m.ProjectID,
		Year:                      m.Year,
		FixedAssets:               m.FixedAssets,
		Investments:               m.Investments,
		Inventory:                 m.Inventory,
		Receivables:               m.Receivables,
		OtherShortTermAssets:      m.OtherShortTermAssets,
		Cash:                      m.Cash,
		Equity:                    m.Equity,
		EquityContribution:        m.EquityContribution,
		Dividend:                  m.Dividend,
		LongDebt:                  m.LongDebt,
		ShortDebt:                 m.ShortDebt,
		Payables:                  m.Payables,
		OtherShortTermLiabilities: m.OtherShortTermLiabilities,
		DepreciationPct:           m.DepreciationPct,
		InterestRatePct:           m.InterestRatePct,
		RatioDio:                  m.RatioDio,
		RatioDso:                  m.RatioDso,
		RatioDpo:                  m.RatioDpo,
		RatioOcaPct:               m.RatioOcaPct,
		RatioOclPct:               m.RatioOclPct,
	}
}

// BalanceRowModelFromDomain builds the persistence model from a domain
// BalanceRow.
func BalanceRowModelFromDomain(r *forecast.BalanceRow) *BalanceRowModel {
	m := &BalanceRowModel{
		ProjectID:                 r.ProjectID,
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
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}
