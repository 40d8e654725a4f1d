package billing

import (
	"context"
	"errors"

	"github.com/astris/backend/internal/domain/billing"
	"github.com/astris/backend/internal/domain/forecast"
	"github.com/astris/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EntitlementService answers what a user's plan allows right now.
// Plan state is read live from the billing profile on every check, so
// a webhook downgrade takes effect on the next request.
type EntitlementService struct {
	profileRepo billing.BillingProfileRepository
	projectRepo forecast.ProjectRepository
	logger      *zap.Logger
}

// NewEntitlementService creates a new entitlement service
func NewEntitlementService(
	profileRepo billing.BillingProfileRepository,
	projectRepo forecast.ProjectRepository,
	logger *zap.Logger,
) *EntitlementService {
	return &EntitlementService{
		profileRepo: profileRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// Describe returns the user's plan, limits and current usage. Users
// without a billing profile are on the free plan.
func (s *EntitlementService) Describe(ctx context.Context, userID uuid.UUID) (*EntitlementResult, error) {
	plan, status, profile, err := s.currentPlan(ctx, userID)
	if err != nil {
		return nil, err
	}

	limits := billing.LimitsForPlan(plan)
	count, err := s.projectRepo.CountByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to count projects", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load entitlements")
	}

	result := &EntitlementResult{
		Plan:             plan,
		Status:           status,
		Limits:           limits,
		ProjectCount:     count,
		CanCreateProject: limits.AllowsProjectCount(count),
	}
	if profile != nil {
		result.CurrentPeriodEnd = profile.CurrentPeriodEnd
		result.CancelAtPeriodEnd = profile.CancelAtPeriodEnd
	}
	return result, nil
}

// CheckCanCreateProject rejects project creation beyond the plan quota
func (s *EntitlementService) CheckCanCreateProject(ctx context.Context, userID uuid.UUID) error {
	plan, _, _, err := s.currentPlan(ctx, userID)
	if err != nil {
		return err
	}

	limits := billing.LimitsForPlan(plan)
	count, err := s.projectRepo.CountByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to count projects", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check project limit")
	}

	if !limits.AllowsProjectCount(count) {
		s.logger.Info("Project limit reached",
			zap.String("user_id", userID.String()),
			zap.Int64("count", count))
		return shared.NewDomainError("LIMIT_PROJECTS", "Your plan does not allow more projects")
	}
	return nil
}

// CheckForecastYears rejects horizons beyond the plan quota
func (s *EntitlementService) CheckForecastYears(ctx context.Context, userID uuid.UUID, years int) error {
	plan, _, _, err := s.currentPlan(ctx, userID)
	if err != nil {
		return err
	}

	if !billing.LimitsForPlan(plan).AllowsForecastYears(years) {
		s.logger.Info("Forecast years limit exceeded",
			zap.String("user_id", userID.String()),
			zap.Int("years", years))
		return shared.NewDomainError("LIMIT_FORECAST_YEARS", "Your plan does not allow that many forecast years")
	}
	return nil
}

func (s *EntitlementService) currentPlan(ctx context.Context, userID uuid.UUID) (billing.Plan, billing.SubscriptionStatus, *billing.BillingProfile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return billing.PlanFree, billing.SubscriptionStatusCanceled, nil, nil
		}
		s.logger.Error("Failed to load billing profile", zap.Error(err))
		return "", "", nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load entitlements")
	}
	return profile.Plan, profile.Status, profile, nil
}
