package forecast

import (
	"context"

	"github.com/astris/backend/internal/domain/forecast"
	"github.com/astris/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DashboardService aggregates everything the project dashboard renders
type DashboardService struct {
	projectRepo forecast.ProjectRepository
	pnlRepo     forecast.PnlRowRepository
	balanceRepo forecast.BalanceRowRepository
	logger      *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	projectRepo forecast.ProjectRepository,
	pnlRepo forecast.PnlRowRepository,
	balanceRepo forecast.BalanceRowRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		projectRepo: projectRepo,
		pnlRepo:     pnlRepo,
		balanceRepo: balanceRepo,
		logger:      logger,
	}
}

// GetDashboard returns both statements plus the year axis. The axis
// follows the P&L years and falls back to the balance years when no
// P&L rows exist yet.
func (s *DashboardService) GetDashboard(ctx context.Context, userID, projectID uuid.UUID) (*DashboardResult, error) {
	if _, err := findOwnedProject(ctx, s.projectRepo, userID, projectID, s.logger); err != nil {
		return nil, err
	}

	pnl, balance, err := loadStatements(ctx, s.pnlRepo, s.balanceRepo, projectID)
	if err != nil {
		s.logger.Error("Failed to load statements", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load dashboard data")
	}

	years := make([]int, 0, len(pnl))
	if len(pnl) > 0 {
		for _, row := range pnl {
			years = append(years, row.Year)
		}
	} else {
		for _, row := range balance {
			years = append(years, row.Year)
		}
	}

	return &DashboardResult{
		ProjectID: projectID,
		Pnl:       pnl,
		Balance:   balance,
		Years:     years,
	}, nil
}
