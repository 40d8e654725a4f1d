package forecast

import (
	"context"
	"errors"

	"github.com/astris/backend/internal/domain/forecast"
	"github.com/astris/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EntitlementChecker is the slice of the billing entitlement service
// the forecast services need.
type EntitlementChecker interface {
	CheckCanCreateProject(ctx context.Context, userID uuid.UUID) error
	CheckForecastYears(ctx context.Context, userID uuid.UUID, years int) error
}

// ProjectService manages forecasting projects
type ProjectService struct {
	projectRepo  forecast.ProjectRepository
	entitlements EntitlementChecker
	logger       *zap.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo forecast.ProjectRepository,
	entitlements EntitlementChecker,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		entitlements: entitlements,
		logger:       logger,
	}
}

// ListProjects returns the user's projects, newest first
func (s *ProjectService) ListProjects(ctx context.Context, userID uuid.UUID) ([]*forecast.Project, error) {
	projects, err := s.projectRepo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list projects", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list projects")
	}
	return projects, nil
}

// GetProject returns one project owned by the user
func (s *ProjectService) GetProject(ctx context.Context, userID, projectID uuid.UUID) (*forecast.Project, error) {
	return findOwnedProject(ctx, s.projectRepo, userID, projectID, s.logger)
}

// CreateProject creates a project and its seed P&L row atomically.
// Entitlement checks run against the live plan and count.
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*forecast.Project, error) {
	forecastYears := forecast.DefaultForecastYears
	if input.ForecastYears != nil {
		forecastYears = *input.ForecastYears
	}

	if err := s.entitlements.CheckCanCreateProject(ctx, input.UserID); err != nil {
		return nil, err
	}
	if err := s.entitlements.CheckForecastYears(ctx, input.UserID, forecastYears); err != nil {
		return nil, err
	}

	project, err := forecast.NewProject(input.UserID, input.Name, input.Description, input.StartYear, forecastYears)
	if err != nil {
		return nil, err
	}

	// Seed the start year so the first grid load is never empty.
	seed := forecast.NewSeedPnlRow(project.ID, project.StartYear)
	if err := s.projectRepo.CreateWithSeedRow(ctx, project, seed); err != nil {
		s.logger.Error("Failed to create project", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create project")
	}

	s.logger.Info("Project created",
		zap.String("project_id", project.ID.String()),
		zap.String("user_id", input.UserID.String()),
		zap.Int("start_year", project.StartYear),
		zap.Int("forecast_years", project.ForecastYears))

	return project, nil
}

// UpdateProject applies a partial update. A horizon change re-checks
// the plan quota.
func (s *ProjectService) UpdateProject(ctx context.Context, input UpdateProjectInput) (*forecast.Project, error) {
	project, err := findOwnedProject(ctx, s.projectRepo, input.UserID, input.ProjectID, s.logger)
	if err != nil {
		return nil, err
	}

	if input.Patch.ForecastYears != nil {
		if err := s.entitlements.CheckForecastYears(ctx, input.UserID, *input.Patch.ForecastYears); err != nil {
			return nil, err
		}
	}

	if err := project.Apply(input.Patch); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Save(ctx, project); err != nil {
		s.logger.Error("Failed to save project", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update project")
	}

	s.logger.Info("Project updated", zap.String("project_id", project.ID.String()))
	return project, nil
}

// DeleteProject removes a project and all of its forecast rows
func (s *ProjectService) DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error {
	project, err := findOwnedProject(ctx, s.projectRepo, userID, projectID, s.logger)
	if err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, project.ID); err != nil {
		s.logger.Error("Failed to delete project", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete project")
	}

	s.logger.Info("Project deleted",
		zap.String("project_id", projectID.String()),
		zap.String("user_id", userID.String()))
	return nil
}

// findOwnedProject resolves a project filtered by owner in the query
// itself. Foreign and missing projects are indistinguishable, so the
// endpoint cannot confirm existence to non-owners.
func findOwnedProject(ctx context.Context, repo forecast.ProjectRepository, userID, projectID uuid.UUID, logger *zap.Logger) (*forecast.Project, error) {
	project, err := repo.FindByIDAndUser(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PROJECT_NOT_FOUND", "Project not found")
		}
		logger.Error("Failed to load project", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load project")
	}
	return project, nil
}
