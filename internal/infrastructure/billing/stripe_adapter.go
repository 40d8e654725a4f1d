package billing

import (
	"context"
	"fmt"
	"time"

	domainbilling "github.com/astris/backend/internal/domain/billing"
	"github.com/astris/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	portalsession "github.com/stripe/stripe-go/v81/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/customer"
	"github.com/stripe/stripe-go/v81/subscription"
	"go.uber.org/zap"
)

// MetadataUserIDKey is the metadata key carrying the local user ID on
// Stripe customers, checkout sessions and subscriptions. Webhook
// reconciliation resolves users by it first.
const MetadataUserIDKey = "userId"

// StripeAdapter implements payment-provider operations for the
// checkout and reconciliation flows.
type StripeAdapter struct {
	config config.StripeConfig
	logger *zap.Logger
}

// NewStripeAdapter creates a new Stripe adapter and installs the API key.
func NewStripeAdapter(cfg config.StripeConfig, logger *zap.Logger) (*StripeAdapter, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("stripe: secret key is required")
	}
	if cfg.PremiumPriceID == "" {
		return nil, fmt.Errorf("stripe: premium price id is required")
	}

	stripe.Key = cfg.SecretKey

	return &StripeAdapter{
		config: cfg,
		logger: logger,
	}, nil
}

// EnsureCustomer returns the existing provider customer ID or creates
// a new customer tagged with the local user ID.
func (a *StripeAdapter) EnsureCustomer(ctx context.Context, userID uuid.UUID, email, existingID string) (string, error) {
	if existingID != "" {
		return existingID, nil
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Metadata: map[string]string{
			MetadataUserIDKey: userID.String(),
		},
	}
	params.Context = ctx

	cust, err := customer.New(params)
	if err != nil {
		a.logger.Error("Failed to create Stripe customer",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return "", fmt.Errorf("stripe: failed to create customer: %w", err)
	}

	a.logger.Info("Created Stripe customer",
		zap.String("user_id", userID.String()),
		zap.String("customer_id", cust.ID))

	return cust.ID, nil
}

// CheckoutSessionInput carries what checkout needs to know about the user.
type CheckoutSessionInput struct {
	UserID     uuid.UUID
	Email      string
	CustomerID string // optional, reuses an existing provider customer
}

// CreateCheckoutSession opens a subscription checkout for the premium
// plan. The user ID rides along as client_reference_id and in the
// subscription metadata so webhook events can be tied back.
func (a *StripeAdapter) CreateCheckoutSession(ctx context.Context, input CheckoutSessionInput) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(a.config.PremiumPriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(a.config.SuccessURL),
		CancelURL:         stripe.String(a.config.CancelURL),
		ClientReferenceID: stripe.String(input.UserID.String()),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				MetadataUserIDKey: input.UserID.String(),
			},
		},
		Metadata: map[string]string{
			MetadataUserIDKey: input.UserID.String(),
		},
	}
	params.Context = ctx

	if input.CustomerID != "" {
		params.Customer = stripe.String(input.CustomerID)
	} else if input.Email != "" {
		params.CustomerEmail = stripe.String(input.Email)
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		a.logger.Error("Failed to create checkout session",
			zap.String("user_id", input.UserID.String()),
			zap.Error(err))
		return "", fmt.Errorf("stripe: failed to create checkout session: %w", err)
	}

	a.logger.Info("Created checkout session",
		zap.String("user_id", input.UserID.String()),
		zap.String("session_id", sess.ID))

	return sess.URL, nil
}

// CreatePortalSession opens the Stripe billing portal for an existing
// provider customer.
func (a *StripeAdapter) CreatePortalSession(ctx context.Context, customerID string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(a.config.PortalReturn),
	}
	params.Context = ctx

	sess, err := portalsession.New(params)
	if err != nil {
		a.logger.Error("Failed to create billing portal session",
			zap.String("customer_id", customerID),
			zap.Error(err))
		return "", fmt.Errorf("stripe: failed to create portal session: %w", err)
	}

	return sess.URL, nil
}

// RetrieveSubscription fetches the live state of a provider
// subscription as a reconciliation snapshot.
func (a *StripeAdapter) RetrieveSubscription(ctx context.Context, subscriptionID string) (domainbilling.SubscriptionSnapshot, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	sub, err := subscription.Get(subscriptionID, params)
	if err != nil {
		a.logger.Error("Failed to retrieve subscription",
			zap.String("subscription_id", subscriptionID),
			zap.Error(err))
		return domainbilling.SubscriptionSnapshot{}, fmt.Errorf("stripe: failed to retrieve subscription: %w", err)
	}

	return SnapshotFromSubscription(sub), nil
}

// SnapshotFromSubscription maps a provider subscription object onto
// the reconciler's snapshot.
func SnapshotFromSubscription(sub *stripe.Subscription) domainbilling.SubscriptionSnapshot {
	snap := domainbilling.SubscriptionSnapshot{
		SubscriptionID:    sub.ID,
		ProviderStatus:    string(sub.Status),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}
	if sub.Customer != nil {
		snap.CustomerID = sub.Customer.ID
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		snap.PriceID = sub.Items.Data[0].Price.ID
	}
	if sub.CurrentPeriodEnd > 0 {
		end := time.Unix(sub.CurrentPeriodEnd, 0).UTC()
		snap.CurrentPeriodEnd = &end
	}
	return snap
}
