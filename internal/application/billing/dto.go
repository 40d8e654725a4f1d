package billing

import (
	"time"

	"github.com/astris/backend/internal/domain/billing"
	"github.com/google/uuid"
)

// EntitlementResult describes what the user's plan currently allows
type EntitlementResult struct {
	Plan              billing.Plan
	Status            billing.SubscriptionStatus
	Limits            billing.PlanLimits
	ProjectCount      int64
	CanCreateProject  bool
	CurrentPeriodEnd  *time.Time
	CancelAtPeriodEnd bool
}

// CreateCheckoutInput contains the input for starting a checkout
type CreateCheckoutInput struct {
	UserID uuid.UUID
	Email  string
}

// CheckoutResult carries the hosted checkout page URL
type CheckoutResult struct {
	URL string
}

// PortalResult carries the hosted billing portal URL
type PortalResult struct {
	URL string
}
