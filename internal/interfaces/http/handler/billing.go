package handler

import (
	"time"

	billingapp "github.com/astris/backend/internal/application/billing"
	"github.com/astris/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// BillingHandler handles billing and entitlement API endpoints
type BillingHandler struct {
	BaseHandler
	entitlementService *billingapp.EntitlementService
	checkoutService    *billingapp.CheckoutService
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(
	entitlementService *billingapp.EntitlementService,
	checkoutService *billingapp.CheckoutService,
) *BillingHandler {
	return &BillingHandler{
		entitlementService: entitlementService,
		checkoutService:    checkoutService,
	}
}

// PlanLimitsResponse represents the quota attached to a plan. Null
// means unlimited.
type PlanLimitsResponse struct {
	MaxProjects      *int `json:"max_projects"`
	MaxForecastYears *int `json:"max_forecast_years"`
}

// EntitlementResponse represents what the user's plan currently allows
type EntitlementResponse struct {
	Plan              string             `json:"plan"`
	Status            string             `json:"status"`
	Limits            PlanLimitsResponse `json:"limits"`
	ProjectCount      int64              `json:"project_count"`
	CanCreateProject  bool               `json:"can_create_project"`
	CurrentPeriodEnd  *time.Time         `json:"current_period_end"`
	CancelAtPeriodEnd bool               `json:"cancel_at_period_end"`
}

// CheckoutSessionResponse carries the hosted checkout page URL
type CheckoutSessionResponse struct {
	URL string `json:"url"`
}

// PortalSessionResponse carries the hosted billing portal URL
type PortalSessionResponse struct {
	URL string `json:"url"`
}

// GetEntitlements godoc
// @Summary      Get entitlements
// @Description  Returns the user's plan, quota and current usage
// @Tags         billing
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=EntitlementResponse}
// @Failure      401 {object} dto.Response
// @Router       /billing/entitlements [get]
func (h *BillingHandler) GetEntitlements(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.entitlementService.Describe(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, EntitlementResponse{
		Plan:   string(result.Plan),
		Status: string(result.Status),
		Limits: PlanLimitsResponse{
			MaxProjects:      result.Limits.MaxProjects,
			MaxForecastYears: result.Limits.MaxForecastYears,
		},
		ProjectCount:      result.ProjectCount,
		CanCreateProject:  result.CanCreateProject,
		CurrentPeriodEnd:  result.CurrentPeriodEnd,
		CancelAtPeriodEnd: result.CancelAtPeriodEnd,
	})
}

// CreateCheckoutSession godoc
// @Summary      Start a premium checkout
// @Description  Creates a hosted checkout session for the premium plan
// @Tags         billing
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=CheckoutSessionResponse}
// @Failure      401 {object} dto.Response
// @Failure      502 {object} dto.Response
// @Router       /billing/checkout [post]
func (h *BillingHandler) CreateCheckoutSession(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.checkoutService.CreateCheckoutSession(c.Request.Context(), billingapp.CreateCheckoutInput{
		UserID: userID,
		Email:  middleware.GetJWTEmail(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CheckoutSessionResponse{URL: result.URL})
}

// CreatePortalSession godoc
// @Summary      Open the billing portal
// @Description  Creates a hosted billing portal session for subscription management
// @Tags         billing
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=PortalSessionResponse}
// @Failure      400 {object} dto.Response
// @Failure      502 {object} dto.Response
// @Router       /billing/portal [post]
func (h *BillingHandler) CreatePortalSession(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.checkoutService.CreatePortalSession(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, PortalSessionResponse{URL: result.URL})
}
