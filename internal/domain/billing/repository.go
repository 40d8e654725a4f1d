package billing

import (
	"context"

	"github.com/google/uuid"
)

// BillingProfileRepository defines persistence operations for billing profiles
type BillingProfileRepository interface {
	// FindByUserID finds the profile for a user, shared.ErrNotFound on a miss
	FindByUserID(ctx context.Context, userID uuid.UUID) (*BillingProfile, error)

	// FindByStripeCustomerID finds a profile by provider customer ID
	FindByStripeCustomerID(ctx context.Context, customerID string) (*BillingProfile, error)

	// Save upserts a profile keyed by user ID
	Save(ctx context.Context, profile *BillingProfile) error
}
