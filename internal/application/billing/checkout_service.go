package billing

import (
	"context"
	"errors"

	"github.com/astris/backend/internal/domain/billing"
	"github.com/astris/backend/internal/domain/shared"
	infrabilling "github.com/astris/backend/internal/infrastructure/billing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentGateway is the slice of the Stripe adapter the checkout and
// webhook services depend on.
type PaymentGateway interface {
	EnsureCustomer(ctx context.Context, userID uuid.UUID, email, existingID string) (string, error)
	CreateCheckoutSession(ctx context.Context, input infrabilling.CheckoutSessionInput) (string, error)
	CreatePortalSession(ctx context.Context, customerID string) (string, error)
	RetrieveSubscription(ctx context.Context, subscriptionID string) (billing.SubscriptionSnapshot, error)
}

// CheckoutService starts checkout and billing portal sessions
type CheckoutService struct {
	profileRepo billing.BillingProfileRepository
	gateway     PaymentGateway
	logger      *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	profileRepo billing.BillingProfileRepository,
	gateway PaymentGateway,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		profileRepo: profileRepo,
		gateway:     gateway,
		logger:      logger,
	}
}

// CreateCheckoutSession returns the URL of a hosted checkout page for
// the premium plan. The provider customer is created up front and
// persisted, so webhook events can always be tied back to the user.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, input CreateCheckoutInput) (*CheckoutResult, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Failed to load billing profile", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to start checkout")
		}
		profile = billing.NewBillingProfile(input.UserID)
	}

	customerID, err := s.gateway.EnsureCustomer(ctx, input.UserID, input.Email, profile.StripeCustomerID)
	if err != nil {
		s.logger.Error("Failed to ensure provider customer", zap.Error(err))
		return nil, shared.NewDomainError("BILLING_PROVIDER_ERROR", "Failed to start checkout")
	}

	if customerID != profile.StripeCustomerID {
		profile.StripeCustomerID = customerID
		if err := s.profileRepo.Save(ctx, profile); err != nil {
			s.logger.Error("Failed to save billing profile", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to start checkout")
		}
	}

	url, err := s.gateway.CreateCheckoutSession(ctx, infrabilling.CheckoutSessionInput{
		UserID:     input.UserID,
		Email:      input.Email,
		CustomerID: customerID,
	})
	if err != nil {
		s.logger.Error("Failed to create checkout session", zap.Error(err))
		return nil, shared.NewDomainError("BILLING_PROVIDER_ERROR", "Failed to start checkout")
	}

	s.logger.Info("Checkout session created", zap.String("user_id", input.UserID.String()))
	return &CheckoutResult{URL: url}, nil
}

// CreatePortalSession returns the URL of the provider billing portal.
// Users who never went through checkout have no provider customer and
// nothing to manage.
func (s *CheckoutService) CreatePortalSession(ctx context.Context, userID uuid.UUID) (*PortalResult, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NO_STRIPE_CUSTOMER", "No billing account exists for this user")
		}
		s.logger.Error("Failed to load billing profile", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to open billing portal")
	}
	if profile.StripeCustomerID == "" {
		return nil, shared.NewDomainError("NO_STRIPE_CUSTOMER", "No billing account exists for this user")
	}

	url, err := s.gateway.CreatePortalSession(ctx, profile.StripeCustomerID)
	if err != nil {
		s.logger.Error("Failed to create portal session", zap.Error(err))
		return nil, shared.NewDomainError("BILLING_PROVIDER_ERROR", "Failed to open billing portal")
	}

	return &PortalResult{URL: url}, nil
}
