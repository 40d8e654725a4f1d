package handler

import (
	forecastapp "github.com/astris/backend/internal/application/forecast"
	"github.com/gin-gonic/gin"
)

// AggregateHandler handles the combined-statement API endpoints
type AggregateHandler struct {
	BaseHandler
	cashflowService  *forecastapp.CashflowService
	dashboardService *forecastapp.DashboardService
}

// NewAggregateHandler creates a new AggregateHandler
func NewAggregateHandler(
	cashflowService *forecastapp.CashflowService,
	dashboardService *forecastapp.DashboardService,
) *AggregateHandler {
	return &AggregateHandler{
		cashflowService:  cashflowService,
		dashboardService: dashboardService,
	}
}

// GetCashflow godoc
// @Summary      Get the cashflow view
// @Description  Returns both statements so the client can derive the cashflow
// @Tags         aggregate
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Success      200 {object} dto.Response{data=CashflowResponse}
// @Failure      404 {object} dto.Response
// @Router       /projects/{id}/cashflow [get]
func (h *AggregateHandler) GetCashflow(c *gin.Context) {
	userID, projectID, ok := h.projectScope(c)
	if !ok {
		return
	}

	result, err := h.cashflowService.GetCashflow(c.Request.Context(), userID, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CashflowResponse{
		Pnl:     toPnlRowResponses(result.Pnl),
		Balance: toBalanceRowResponses(result.Balance),
	})
}

// GetDashboard godoc
// @Summary      Get the dashboard view
// @Description  Returns both statements plus the combined year axis
// @Tags         aggregate
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Success      200 {object} dto.Response{data=DashboardResponse}
// @Failure      404 {object} dto.Response
// @Router       /projects/{id}/dashboard [get]
func (h *AggregateHandler) GetDashboard(c *gin.Context) {
	userID, projectID, ok := h.projectScope(c)
	if !ok {
		return
	}

	result, err := h.dashboardService.GetDashboard(c.Request.Context(), userID, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, DashboardResponse{
		ProjectID: result.ProjectID.String(),
		Years:     result.Years,
		Pnl:       toPnlRowResponses(result.Pnl),
		Balance:   toBalanceRowResponses(result.Balance),
	})
}
