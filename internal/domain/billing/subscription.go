package billing

import (
	"time"

	"github.com/astris/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SubscriptionStatus is the normalized subscription state kept locally.
// Provider statuses are collapsed into this set; see MapProviderStatus.
type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "ACTIVE"
	SubscriptionStatusTrialing SubscriptionStatus = "TRIALING"
	SubscriptionStatusPastDue  SubscriptionStatus = "PAST_DUE"
	SubscriptionStatusCanceled SubscriptionStatus = "CANCELED"
)

// Plan is the entitlement tier derived from subscription status.
type Plan string

const (
	PlanFree    Plan = "FREE"
	PlanPremium Plan = "PREMIUM"
)

// MapProviderStatus collapses a raw Stripe subscription status into the
// local status set. Unknown statuses map to CANCELED so that a new
// provider state can never silently grant premium access.
func MapProviderStatus(status string) SubscriptionStatus {
	switch status {
	case "active":
		return SubscriptionStatusActive
	case "trialing":
		return SubscriptionStatusTrialing
	case "past_due", "unpaid", "incomplete", "incomplete_expired":
		return SubscriptionStatusPastDue
	case "canceled":
		return SubscriptionStatusCanceled
	default:
		return SubscriptionStatusCanceled
	}
}

// PlanForStatus derives the plan from a normalized status. Only ACTIVE
// and TRIALING grant premium.
func PlanForStatus(status SubscriptionStatus) Plan {
	if status == SubscriptionStatusActive || status == SubscriptionStatusTrialing {
		return PlanPremium
	}
	return PlanFree
}

// BillingProfile holds the provider-side billing state for one user.
// There is at most one profile per user; webhook reconciliation upserts
// it keyed by user ID, which makes event replays idempotent.
type BillingProfile struct {
	shared.BaseEntity
	UserID               uuid.UUID
	StripeCustomerID     string
	StripeSubscriptionID string
	PriceID              string
	Status               SubscriptionStatus
	Plan                 Plan
	CurrentPeriodEnd     *time.Time
	CancelAtPeriodEnd    bool
}

// NewBillingProfile creates an empty profile for a user on the free plan.
func NewBillingProfile(userID uuid.UUID) *BillingProfile {
	return &BillingProfile{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Status:     SubscriptionStatusCanceled,
		Plan:       PlanFree,
	}
}

// SubscriptionSnapshot is the subset of a provider subscription the
// reconciler cares about.
type SubscriptionSnapshot struct {
	SubscriptionID    string
	CustomerID        string
	PriceID           string
	ProviderStatus    string
	CurrentPeriodEnd  *time.Time
	CancelAtPeriodEnd bool
}

// ApplySubscription reconciles the profile against a provider snapshot.
// Status mapping and plan derivation are total functions, so applying
// the same snapshot twice leaves the profile unchanged.
func (p *BillingProfile) ApplySubscription(snap SubscriptionSnapshot) {
	if snap.CustomerID != "" {
		p.StripeCustomerID = snap.CustomerID
	}
	if snap.SubscriptionID != "" {
		p.StripeSubscriptionID = snap.SubscriptionID
	}
	if snap.PriceID != "" {
		p.PriceID = snap.PriceID
	}
	p.Status = MapProviderStatus(snap.ProviderStatus)
	p.Plan = PlanForStatus(p.Status)
	p.CurrentPeriodEnd = snap.CurrentPeriodEnd
	p.CancelAtPeriodEnd = snap.CancelAtPeriodEnd
	p.UpdatedAt = time.Now()
}

// ClearSubscription downgrades the profile to the free plan after a
// subscription deletion. The customer ID is kept so the user can
// resubscribe under the same provider customer.
func (p *BillingProfile) ClearSubscription() {
	p.StripeSubscriptionID = ""
	p.PriceID = ""
	p.Status = SubscriptionStatusCanceled
	p.Plan = PlanFree
	p.CurrentPeriodEnd = nil
	p.CancelAtPeriodEnd = false
	p.UpdatedAt = time.Now()
}

// IsPremium reports whether the profile currently grants premium access.
func (p *BillingProfile) IsPremium() bool {
	return p.Plan == PlanPremium
}
