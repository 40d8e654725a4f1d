package billing

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/astris/backend/internal/domain/billing"
	"github.com/astris/backend/internal/domain/shared"
	infrabilling "github.com/astris/backend/internal/infrastructure/billing"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"
)

// WebhookService reconciles local billing state from Stripe events.
// Processing is idempotent: every event resolves to a full profile
// upsert keyed by user, so replays and out-of-order delivery converge
// on the provider's latest state.
type WebhookService struct {
	profileRepo   billing.BillingProfileRepository
	gateway       PaymentGateway
	webhookSecret string
	logger        *zap.Logger
}

// NewWebhookService creates a new webhook service
func NewWebhookService(
	profileRepo billing.BillingProfileRepository,
	gateway PaymentGateway,
	webhookSecret string,
	logger *zap.Logger,
) *WebhookService {
	return &WebhookService{
		profileRepo:   profileRepo,
		gateway:       gateway,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// HandleWebhook verifies the event signature and processes the event.
// Signature failures surface as INVALID_SIGNATURE and must be
// rejected; nothing inside the payload is trusted before that check.
func (s *WebhookService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		s.logger.Warn("Webhook signature verification failed", zap.Error(err))
		return shared.NewDomainError("INVALID_SIGNATURE", "Webhook signature verification failed")
	}
	return s.ProcessEvent(ctx, event)
}

// ProcessEvent dispatches one verified Stripe event
func (s *WebhookService) ProcessEvent(ctx context.Context, event stripe.Event) error {
	s.logger.Info("Processing billing event",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)))

	switch string(event.Type) {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(ctx, event)
	case "customer.subscription.created", "customer.subscription.updated":
		return s.handleSubscriptionChanged(ctx, event)
	case "customer.subscription.deleted":
		return s.handleSubscriptionDeleted(ctx, event)
	case "invoice.paid":
		return s.handleInvoiceEvent(ctx, event, "")
	case "invoice.payment_failed":
		return s.handleInvoiceEvent(ctx, event, "past_due")
	default:
		s.logger.Debug("Ignoring billing event", zap.String("type", string(event.Type)))
		return nil
	}
}

func (s *WebhookService) handleCheckoutCompleted(ctx context.Context, event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		s.logger.Error("Failed to parse checkout session", zap.Error(err))
		return nil
	}

	userID := session.ClientReferenceID
	if userID == "" {
		userID = session.Metadata[infrabilling.MetadataUserIDKey]
	}
	customerID := ""
	if session.Customer != nil {
		customerID = session.Customer.ID
	}

	profile := s.resolveProfile(ctx, userID, customerID)
	if profile == nil {
		return nil
	}

	if customerID != "" {
		profile.StripeCustomerID = customerID
	}

	if session.Subscription != nil && session.Subscription.ID != "" {
		snapshot, err := s.gateway.RetrieveSubscription(ctx, session.Subscription.ID)
		if err != nil {
			s.logger.Error("Failed to retrieve subscription after checkout",
				zap.String("subscription_id", session.Subscription.ID),
				zap.Error(err))
		} else {
			profile.ApplySubscription(snapshot)
		}
	}

	return s.saveProfile(ctx, profile)
}

func (s *WebhookService) handleSubscriptionChanged(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		s.logger.Error("Failed to parse subscription", zap.Error(err))
		return nil
	}

	snapshot := infrabilling.SnapshotFromSubscription(&sub)
	profile := s.resolveProfile(ctx, sub.Metadata[infrabilling.MetadataUserIDKey], snapshot.CustomerID)
	if profile == nil {
		return nil
	}

	profile.ApplySubscription(snapshot)
	return s.saveProfile(ctx, profile)
}

func (s *WebhookService) handleSubscriptionDeleted(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		s.logger.Error("Failed to parse subscription", zap.Error(err))
		return nil
	}

	customerID := ""
	if sub.Customer != nil {
		customerID = sub.Customer.ID
	}
	profile := s.resolveProfile(ctx, sub.Metadata[infrabilling.MetadataUserIDKey], customerID)
	if profile == nil {
		return nil
	}

	profile.ClearSubscription()
	return s.saveProfile(ctx, profile)
}

// handleInvoiceEvent refreshes the profile from the live subscription.
// fallbackStatus is applied when the subscription cannot be fetched,
// so a failed payment still downgrades access.
func (s *WebhookService) handleInvoiceEvent(ctx context.Context, event stripe.Event, fallbackStatus string) error {
	var invoice stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		s.logger.Error("Failed to parse invoice", zap.Error(err))
		return nil
	}

	customerID := ""
	if invoice.Customer != nil {
		customerID = invoice.Customer.ID
	}
	profile := s.resolveProfile(ctx, "", customerID)
	if profile == nil {
		return nil
	}

	subscriptionID := profile.StripeSubscriptionID
	if invoice.Subscription != nil && invoice.Subscription.ID != "" {
		subscriptionID = invoice.Subscription.ID
	}
	if subscriptionID == "" {
		s.logger.Warn("Invoice event without subscription",
			zap.String("customer_id", customerID))
		return nil
	}

	snapshot, err := s.gateway.RetrieveSubscription(ctx, subscriptionID)
	if err != nil {
		s.logger.Error("Failed to retrieve subscription for invoice event",
			zap.String("subscription_id", subscriptionID),
			zap.Error(err))
		if fallbackStatus == "" {
			return nil
		}
		snapshot = billing.SubscriptionSnapshot{
			SubscriptionID: subscriptionID,
			CustomerID:     customerID,
			ProviderStatus: fallbackStatus,
		}
	}

	profile.ApplySubscription(snapshot)
	return s.saveProfile(ctx, profile)
}

// resolveProfile ties an event back to a user, preferring the user ID
// the checkout flow planted in metadata and falling back to the stored
// provider customer ID. Unresolvable events are logged and dropped so
// the provider does not retry them forever.
func (s *WebhookService) resolveProfile(ctx context.Context, rawUserID, customerID string) *billing.BillingProfile {
	if rawUserID != "" {
		userID, err := uuid.Parse(rawUserID)
		if err == nil {
			profile, err := s.profileRepo.FindByUserID(ctx, userID)
			if err == nil {
				return profile
			}
			if errors.Is(err, shared.ErrNotFound) {
				return billing.NewBillingProfile(userID)
			}
			s.logger.Error("Failed to load billing profile", zap.Error(err))
			return nil
		}
		s.logger.Warn("Event carries malformed user ID", zap.String("user_id", rawUserID))
	}

	if customerID != "" {
		profile, err := s.profileRepo.FindByStripeCustomerID(ctx, customerID)
		if err == nil {
			return profile
		}
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Failed to load billing profile", zap.Error(err))
			return nil
		}
	}

	s.logger.Warn("Billing event could not be tied to a user",
		zap.String("customer_id", customerID))
	return nil
}

// saveProfile persists the reconciled profile. Persistence failures
// are logged and acked; the provider's retry policy is punitive and a
// later event converges on the same state anyway.
func (s *WebhookService) saveProfile(ctx context.Context, profile *billing.BillingProfile) error {
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		s.logger.Error("Failed to save billing profile",
			zap.String("user_id", profile.UserID.String()),
			zap.Error(err))
		return nil
	}
	s.logger.Info("Billing profile reconciled",
		zap.String("user_id", profile.UserID.String()),
		zap.String("plan", string(profile.Plan)),
		zap.String("status", string(profile.Status)))
	return nil
}
