package forecast

import (
	"context"

	"github.com/astris/backend/internal/domain/forecast"
	"github.com/astris/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CashflowService combines both statements of a project. The cashflow
// itself is computed client-side; the backend's job is the ownership
// guard and one consistent read.
type CashflowService struct {
	projectRepo forecast.ProjectRepository
	pnlRepo     forecast.PnlRowRepository
	balanceRepo forecast.BalanceRowRepository
	logger      *zap.Logger
}

// NewCashflowService creates a new cashflow service
func NewCashflowService(
	projectRepo forecast.ProjectRepository,
	pnlRepo forecast.PnlRowRepository,
	balanceRepo forecast.BalanceRowRepository,
	logger *zap.Logger,
) *CashflowService {
	return &CashflowService{
		projectRepo: projectRepo,
		pnlRepo:     pnlRepo,
		balanceRepo: balanceRepo,
		logger:      logger,
	}
}

// GetCashflow returns the project's P&L and balance rows, year
// ascending
func (s *CashflowService) GetCashflow(ctx context.Context, userID, projectID uuid.UUID) (*CashflowResult, error) {
	if _, err := findOwnedProject(ctx, s.projectRepo, userID, projectID, s.logger); err != nil {
		return nil, err
	}

	pnl, balance, err := loadStatements(ctx, s.pnlRepo, s.balanceRepo, projectID)
	if err != nil {
		s.logger.Error("Failed to load statements", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load cashflow data")
	}

	return &CashflowResult{Pnl: pnl, Balance: balance}, nil
}

func loadStatements(
	ctx context.Context,
	pnlRepo forecast.PnlRowRepository,
	balanceRepo forecast.BalanceRowRepository,
	projectID uuid.UUID,
) ([]*forecast.PnlRow, []*forecast.BalanceRow, error) {
	pnl, err := pnlRepo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	balance, err := balanceRepo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	return pnl, balance, nil
}
