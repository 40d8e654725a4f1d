package forecast

import (
	"context"
	"errors"

	"github.com/astris/backend/internal/domain/forecast"
	"github.com/astris/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BalanceService manages the balance-sheet forecast years of a project
type BalanceService struct {
	projectRepo forecast.ProjectRepository
	rowRepo     forecast.BalanceRowRepository
	pnlRepo     forecast.PnlRowRepository
	logger      *zap.Logger
}

// NewBalanceService creates a new balance-sheet service
func NewBalanceService(
	projectRepo forecast.ProjectRepository,
	rowRepo forecast.BalanceRowRepository,
	pnlRepo forecast.PnlRowRepository,
	logger *zap.Logger,
) *BalanceService {
	return &BalanceService{
		projectRepo: projectRepo,
		rowRepo:     rowRepo,
		pnlRepo:     pnlRepo,
		logger:      logger,
	}
}

// ListRows returns the project's balance years in ascending order
func (s *BalanceService) ListRows(ctx context.Context, userID, projectID uuid.UUID) ([]*forecast.BalanceRow, error) {
	if _, err := findOwnedProject(ctx, s.projectRepo, userID, projectID, s.logger); err != nil {
		return nil, err
	}
	rows, err := s.rowRepo.FindByProject(ctx, projectID)
	if err != nil {
		s.logger.Error("Failed to list balance rows", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list balance rows")
	}
	return rows, nil
}

// CreateRow creates one balance-sheet year. When the row carries ratio
// drivers, the working-capital line items are derived from the same
// year's P&L immediately; otherwise the entered amounts stand.
func (s *BalanceService) CreateRow(ctx context.Context, input CreateBalanceYearInput) (*forecast.BalanceRow, error) {
	project, err := findOwnedProject(ctx, s.projectRepo, input.UserID, input.ProjectID, s.logger)
	if err != nil {
		return nil, err
	}
	if !project.ContainsYear(input.Year) {
		return nil, shared.NewDomainError("INVALID_YEAR", "Year is outside the project horizon")
	}

	if _, err := s.rowRepo.FindByProjectAndYear(ctx, input.ProjectID, input.Year); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A balance row for this year already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to check for existing balance row", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create balance row")
	}

	row := forecast.NewBalanceRow(input.ProjectID, input.Year, input.Row)
	if row.Ratios() != (forecast.Ratios{}) {
		if err := s.recalcDerived(ctx, row); err != nil {
			return nil, err
		}
	}

	if err := s.rowRepo.Save(ctx, row); err != nil {
		s.logger.Error("Failed to save balance row", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create balance row")
	}

	s.logger.Info("Balance year added",
		zap.String("project_id", input.ProjectID.String()),
		zap.Int("year", input.Year))
	return row, nil
}

// UpdateAmountField sets one directly editable monetary field. The
// derived line items are not in the whitelist; they only change
// through their ratio drivers.
func (s *BalanceService) UpdateAmountField(ctx context.Context, input UpdateBalanceFieldInput) (*forecast.BalanceRow, error) {
	row, err := s.findOwnedRow(ctx, input.UserID, input.ProjectID, input.Year)
	if err != nil {
		return nil, err
	}

	if err := row.SetAmountField(input.Field, input.Value); err != nil {
		return nil, err
	}

	if err := s.rowRepo.Save(ctx, row); err != nil {
		s.logger.Error("Failed to save balance row", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update balance row")
	}
	return row, nil
}

// UpdateRatioField sets one working-capital driver and rederives the
// line items it feeds from the same year's P&L.
func (s *BalanceService) UpdateRatioField(ctx context.Context, input UpdateBalanceRatioInput) (*forecast.BalanceRow, error) {
	row, err := s.findOwnedRow(ctx, input.UserID, input.ProjectID, input.Year)
	if err != nil {
		return nil, err
	}

	if err := row.SetRatioField(input.Field, input.Value); err != nil {
		return nil, err
	}
	if err := s.recalcDerived(ctx, row); err != nil {
		return nil, err
	}

	if err := s.rowRepo.Save(ctx, row); err != nil {
		s.logger.Error("Failed to save balance row", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update balance row")
	}
	return row, nil
}

// DeleteRows removes every balance year of the project
func (s *BalanceService) DeleteRows(ctx context.Context, userID, projectID uuid.UUID) error {
	if _, err := findOwnedProject(ctx, s.projectRepo, userID, projectID, s.logger); err != nil {
		return err
	}
	if err := s.rowRepo.DeleteByProject(ctx, projectID); err != nil {
		s.logger.Error("Failed to delete balance rows", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete balance rows")
	}
	return nil
}

// recalcDerived feeds the row's ratios with the same year's P&L
// revenue and COGS. A missing P&L year contributes zeros; the
// derivation is total either way.
func (s *BalanceService) recalcDerived(ctx context.Context, row *forecast.BalanceRow) error {
	revenue := decimal.Zero
	cogs := decimal.Zero

	pnlRow, err := s.pnlRepo.FindByProjectAndYear(ctx, row.ProjectID, row.Year)
	if err == nil {
		revenue = pnlRow.Revenue
		cogs = pnlRow.Cogs
	} else if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to load P&L row for derivation", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to derive working capital")
	}

	row.ApplyDerived(forecast.DeriveWorkingCapital(revenue, cogs, row.Ratios()))
	return nil
}

func (s *BalanceService) findOwnedRow(ctx context.Context, userID, projectID uuid.UUID, year int) (*forecast.BalanceRow, error) {
	if _, err := findOwnedProject(ctx, s.projectRepo, userID, projectID, s.logger); err != nil {
		return nil, err
	}

	row, err := s.rowRepo.FindByProjectAndYear(ctx, projectID, year)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("BALANCE_NOT_FOUND", "Balance row not found")
		}
		s.logger.Error("Failed to load balance row", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load balance row")
	}
	return row, nil
}
