package persistence

import (
	"context"
	"errors"

	"github.com/astris/backend/internal/domain/billing"
	"github.com/astris/backend/internal/domain/shared"
	"github.com/astris/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBillingProfileRepository implements BillingProfileRepository using GORM
type GormBillingProfileRepository struct {
	db *gorm.DB
}

// NewGormBillingProfileRepository creates a new GormBillingProfileRepository
func NewGormBillingProfileRepository(db *gorm.DB) *GormBillingProfileRepository {
	return &GormBillingProfileRepository{db: db}
}

// FindByUserID finds the profile for a user
func (r *GormBillingProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*billing.BillingProfile, error) {
	var model models.BillingProfileModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStripeCustomerID finds a profile by provider customer ID
func (r *GormBillingProfileRepository) FindByStripeCustomerID(ctx context.Context, customerID string) (*billing.BillingProfile, error) {
	if customerID == "" {
		return nil, shared.ErrNotFound
	}
	var model models.BillingProfileModel
	if err := r.db.WithContext(ctx).
		Where("stripe_customer_id = ?", customerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save upserts a profile keyed by user_id. Webhook delivery is
// unordered, so concurrent events for the same user must collapse
// into a single row.
func (r *GormBillingProfileRepository) Save(ctx context.Context, profile *billing.BillingProfile) error {
	model := models.BillingProfileModelFromDomain(profile)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"stripe_customer_id",
				"stripe_subscription_id",
				"price_id",
				"status",
				"plan",
				"current_period_end",
				"cancel_at_period_end",
				"updated_at",
			}),
		}).
		Create(model).Error
}

// Ensure GormBillingProfileRepository implements BillingProfileRepository
var _ billing.BillingProfileRepository = (*GormBillingProfileRepository)(nil)
