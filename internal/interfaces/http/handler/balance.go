package handler

import (
	"strconv"

	forecastapp "github.com/astris/backend/internal/application/forecast"
	"github.com/gin-gonic/gin"
)

// BalanceHandler handles balance-sheet API endpoints
type BalanceHandler struct {
	BaseHandler
	balanceService *forecastapp.BalanceService
}

// NewBalanceHandler creates a new BalanceHandler
func NewBalanceHandler(balanceService *forecastapp.BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceService: balanceService}
}

// ListRows godoc
// @Summary      List balance rows
// @Description  Returns the balance sheet of a project, ordered by year
// @Tags         balance
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Success      200 {object} dto.Response{data=BalanceListResponse}
// @Failure      404 {object} dto.Response
// @Router       /projects/{id}/balance [get]
func (h *BalanceHandler) ListRows(c *gin.Context) {
	userID, projectID, ok := h.projectScope(c)
	if !ok {
		return
	}

	rows, err := h.balanceService.ListRows(c.Request.Context(), userID, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, BalanceListResponse{Rows: toBalanceRowResponses(rows)})
}

// CreateRow godoc
// @Summary      Add a balance year
// @Description  Adds one balance-sheet year; active ratios overwrite the working-capital amounts
// @Tags         balance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Param        request body CreateBalanceYearRequest true "Year data"
// @Success      201 {object} dto.Response{data=BalanceRowResponse}
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /projects/{id}/balance [post]
func (h *BalanceHandler) CreateRow(c *gin.Context) {
	userID, projectID, ok := h.projectScope(c)
	if !ok {
		return
	}

	var req CreateBalanceYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	row, err := h.balanceService.CreateRow(c.Request.Context(), forecastapp.CreateBalanceYearInput{
		UserID:    userID,
		ProjectID: projectID,
		Year:      req.Year,
		Row:       req.toRowInput(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toBalanceRowResponse(row))
}

// UpdateAmountField godoc
// @Summary      Update one balance amount
// @Description  Sets one directly editable field by name; derived fields are rejected
// @Tags         balance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Param        year path int true "Forecast year"
// @Param        request body UpdateBalanceFieldRequest true "Field and value"
// @Success      200 {object} dto.Response{data=BalanceRowResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /projects/{id}/balance/{year}/amount [put]
func (h *BalanceHandler) UpdateAmountField(c *gin.Context) {
	userID, projectID, ok := h.projectScope(c)
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		h.BadRequest(c, "Invalid year")
		return
	}

	var req UpdateBalanceFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	row, err := h.balanceService.UpdateAmountField(c.Request.Context(), forecastapp.UpdateBalanceFieldInput{
		UserID:    userID,
		ProjectID: projectID,
		Year:      year,
		Field:     req.Field,
		Value:     toDecimal(req.Value),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toBalanceRowResponse(row))
}

// UpdateRatioField godoc
// @Summary      Update one working-capital driver
// @Description  Sets one ratio by name and rederives the driven amounts
// @Tags         balance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Param        year path int true "Forecast year"
// @Param        request body UpdateBalanceRatioRequest true "Ratio and value"
// @Success      200 {object} dto.Response{data=BalanceRowResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /projects/{id}/balance/{year}/ratio [put]
func (h *BalanceHandler) UpdateRatioField(c *gin.Context) {
	userID, projectID, ok := h.projectScope(c)
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		h.BadRequest(c, "Invalid year")
		return
	}

	var req UpdateBalanceRatioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	row, err := h.balanceService.UpdateRatioField(c.Request.Context(), forecastapp.UpdateBalanceRatioInput{
		UserID:    userID,
		ProjectID: projectID,
		Year:      year,
		Field:     req.Field,
		Value:     req.Value,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toBalanceRowResponse(row))
}

// DeleteRows godoc
// @Summary      Delete all balance rows
// @Description  Clears the balance sheet of a project
// @Tags         balance
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response
// @Router       /projects/{id}/balance [delete]
func (h *BalanceHandler) DeleteRows(c *gin.Context) {
	userID, projectID, ok := h.projectScope(c)
	if !ok {
		return
	}

	if err := h.balanceService.DeleteRows(c.Request.Context(), userID, projectID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
