package forecast

import (
	"context"
	"errors"

	"github.com/astris/backend/internal/domain/forecast"
	"github.com/astris/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PnlService manages the P&L forecast years of a project
type PnlService struct {
	projectRepo forecast.ProjectRepository
	rowRepo     forecast.PnlRowRepository
	logger      *zap.Logger
}

// NewPnlService creates a new P&L service
func NewPnlService(
	projectRepo forecast.ProjectRepository,
	rowRepo forecast.PnlRowRepository,
	logger *zap.Logger,
) *PnlService {
	return &PnlService{
		projectRepo: projectRepo,
		rowRepo:     rowRepo,
		logger:      logger,
	}
}

// ListRows returns the project's P&L years in ascending order
func (s *PnlService) ListRows(ctx context.Context, userID, projectID uuid.UUID) ([]*forecast.PnlRow, error) {
	if _, err := findOwnedProject(ctx, s.projectRepo, userID, projectID, s.logger); err != nil {
		return nil, err
	}
	rows, err := s.rowRepo.FindByProject(ctx, projectID)
	if err != nil {
		s.logger.Error("Failed to list P&L rows", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list P&L rows")
	}
	return rows, nil
}

// AddYear creates one P&L forecast year inside the project horizon
func (s *PnlService) AddYear(ctx context.Context, input AddPnlYearInput) (*forecast.PnlRow, error) {
	project, err := findOwnedProject(ctx, s.projectRepo, input.UserID, input.ProjectID, s.logger)
	if err != nil {
		return nil, err
	}
	if !project.ContainsYear(input.Year) {
		return nil, shared.NewDomainError("INVALID_YEAR", "Year is outside the project horizon")
	}

	if _, err := s.rowRepo.FindByProjectAndYear(ctx, input.ProjectID, input.Year); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A P&L row for this year already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to check for existing P&L row", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to add P&L year")
	}

	row := forecast.NewPnlRow(input.ProjectID, input.Year, input.Row)
	if err := s.rowRepo.Save(ctx, row); err != nil {
		s.logger.Error("Failed to save P&L row", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to add P&L year")
	}

	s.logger.Info("P&L year added",
		zap.String("project_id", input.ProjectID.String()),
		zap.Int("year", input.Year))
	return row, nil
}

// GetRow resolves one row by its own ID, joined through the owning
// project so rows cannot be enumerated across users.
func (s *PnlService) GetRow(ctx context.Context, userID, rowID uuid.UUID) (*forecast.PnlRow, error) {
	row, err := s.rowRepo.FindByIDForUser(ctx, rowID, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PNL_NOT_FOUND", "P&L row not found")
		}
		s.logger.Error("Failed to load P&L row", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load P&L row")
	}
	return row, nil
}

// UpdateRow patches one year, creating the row when the year has none
// yet. Drivers are normalized the same way creation normalizes them.
func (s *PnlService) UpdateRow(ctx context.Context, input UpdatePnlRowInput) (*forecast.PnlRow, error) {
	if _, err := findOwnedProject(ctx, s.projectRepo, input.UserID, input.ProjectID, s.logger); err != nil {
		return nil, err
	}

	row, err := s.rowRepo.FindByProjectAndYear(ctx, input.ProjectID, input.Year)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Failed to load P&L row", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update P&L row")
		}
		row = forecast.NewPnlRow(input.ProjectID, input.Year, forecast.PnlRowInput{})
	}

	row.Apply(input.Patch)
	if err := s.rowRepo.Save(ctx, row); err != nil {
		s.logger.Error("Failed to save P&L row", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update P&L row")
	}
	return row, nil
}

// SyncFromBalance overwrites depreciation and interest for the given
// years with the balance-sheet-driven amounts, creating missing rows.
func (s *PnlService) SyncFromBalance(ctx context.Context, input SyncFromBalanceInput) error {
	if _, err := findOwnedProject(ctx, s.projectRepo, input.UserID, input.ProjectID, s.logger); err != nil {
		return err
	}

	for _, update := range input.Updates {
		row, err := s.rowRepo.FindByProjectAndYear(ctx, input.ProjectID, update.Year)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				s.logger.Error("Failed to load P&L row for sync", zap.Error(err))
				return shared.NewDomainError("INTERNAL_ERROR", "Failed to sync P&L from balance")
			}
			row = forecast.NewPnlRow(input.ProjectID, update.Year, forecast.PnlRowInput{})
		}

		row.SyncFromBalance(update.Depreciation, update.Interest)
		if err := s.rowRepo.Save(ctx, row); err != nil {
			s.logger.Error("Failed to save synced P&L row", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to sync P&L from balance")
		}
	}

	s.logger.Info("P&L synced from balance",
		zap.String("project_id", input.ProjectID.String()),
		zap.Int("years", len(input.Updates)))
	return nil
}

// DeleteRows removes every P&L year of the project
func (s *PnlService) DeleteRows(ctx context.Context, userID, projectID uuid.UUID) error {
	if _, err := findOwnedProject(ctx, s.projectRepo, userID, projectID, s.logger); err != nil {
		return err
	}
	if err := s.rowRepo.DeleteByProject(ctx, projectID); err != nil {
		s.logger.Error("Failed to delete P&L rows", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete P&L rows")
	}
	return nil
}
