package forecast

import (
	"github.com/astris/backend/internal/domain/forecast"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProjectInput contains the input for creating a project
type CreateProjectInput struct {
	UserID        uuid.UUID
	Name          string
	Description   string
	StartYear     int
	ForecastYears *int // nil falls back to the default horizon
}

// UpdateProjectInput contains a partial project update
type UpdateProjectInput struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
	Patch     forecast.ProjectPatch
}

// AddPnlYearInput contains the input for adding one P&L forecast year
type AddPnlYearInput struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
	Year      int
	Row       forecast.PnlRowInput
}

// UpdatePnlRowInput contains a partial update for one P&L year.
// Updating a year that has no row yet creates it, mirroring the
// upsert the grid editor expects.
type UpdatePnlRowInput struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
	Year      int
	Patch     forecast.PnlRowPatch
}

// YearSync carries the balance-driven amounts for one year
type YearSync struct {
	Year         int
	Depreciation decimal.Decimal
	Interest     decimal.Decimal
}

// SyncFromBalanceInput contains the bulk depreciation/interest sync
type SyncFromBalanceInput struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
	Updates   []YearSync
}

// CreateBalanceYearInput contains the input for one balance-sheet year
type CreateBalanceYearInput struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
	Year      int
	Row       forecast.BalanceRowInput
}

// UpdateBalanceFieldInput updates a single whitelisted field by name
type UpdateBalanceFieldInput struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
	Year      int
	Field     string
	Value     decimal.Decimal
}

// UpdateBalanceRatioInput updates a single working-capital driver
type UpdateBalanceRatioInput struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
	Year      int
	Field     string
	Value     float64
}

// CashflowResult combines both statements so the client can derive the
// cashflow view
type CashflowResult struct {
	Pnl     []*forecast.PnlRow
	Balance []*forecast.BalanceRow
}

// DashboardResult adds the year axis on top of the combined statements
type DashboardResult struct {
	ProjectID uuid.UUID
	Pnl       []*forecast.PnlRow
	Balance   []*forecast.BalanceRow
	Years     []int
}
