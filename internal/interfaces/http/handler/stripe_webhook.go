package handler

import (
	"errors"
	"io"
	"net/http"

	billingapp "github.com/astris/backend/internal/application/billing"
	"github.com/astris/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// Maximum webhook payload size (64KB - Stripe webhooks are typically small)
const maxWebhookPayloadSize = 65536

// StripeWebhookHandler handles Stripe webhook endpoints
// These endpoints are called by Stripe and do not require authentication
type StripeWebhookHandler struct {
	BaseHandler
	webhookService *billingapp.WebhookService
}

// NewStripeWebhookHandler creates a new StripeWebhookHandler
func NewStripeWebhookHandler(webhookService *billingapp.WebhookService) *StripeWebhookHandler {
	return &StripeWebhookHandler{
		webhookService: webhookService,
	}
}

// StripeWebhookResponse represents the response for Stripe webhook
type StripeWebhookResponse struct {
	Received bool   `json:"received" example:"true"`
	Message  string `json:"message,omitempty" example:"Webhook processed successfully"`
}

// HandleStripeWebhook godoc
// @Summary      Handle Stripe webhook
// @Description  Receives and processes subscription lifecycle events from Stripe
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature header string true "Stripe webhook signature"
// @Success      200 {object} StripeWebhookResponse "Webhook processed"
// @Failure      400 {object} StripeWebhookResponse "Invalid request"
// @Failure      401 {object} StripeWebhookResponse "Invalid signature"
// @Failure      413 {object} StripeWebhookResponse "Payload too large"
// @Router       /billing/webhook [post]
func (h *StripeWebhookHandler) HandleStripeWebhook(c *gin.Context) {
	// Stripe requires the raw body for signature verification; the
	// limit keeps oversized payloads from being buffered in full.
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, StripeWebhookResponse{
			Received: false,
			Message:  "Failed to read request body",
		})
		return
	}

	if len(payload) > maxWebhookPayloadSize {
		c.JSON(http.StatusRequestEntityTooLarge, StripeWebhookResponse{
			Received: false,
			Message:  "Payload too large",
		})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		c.JSON(http.StatusUnauthorized, StripeWebhookResponse{
			Received: false,
			Message:  "Missing Stripe-Signature header",
		})
		return
	}

	if err := h.webhookService.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "INVALID_SIGNATURE" {
			c.JSON(http.StatusUnauthorized, StripeWebhookResponse{
				Received: false,
				Message:  "Webhook signature verification failed",
			})
			return
		}

		// Other processing errors still ack with 200 so Stripe does not
		// retry events that will fail the same way again.
		c.JSON(http.StatusOK, StripeWebhookResponse{
			Received: true,
			Message:  "Webhook received but processing encountered an issue",
		})
		return
	}

	c.JSON(http.StatusOK, StripeWebhookResponse{
		Received: true,
		Message:  "Webhook processed successfully",
	})
}
