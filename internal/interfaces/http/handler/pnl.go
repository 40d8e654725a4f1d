package handler

import (
	"strconv"

	forecastapp "github.com/astris/backend/internal/application/forecast"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PnlHandler handles profit-and-loss statement API endpoints
type PnlHandler struct {
	BaseHandler
	pnlService *forecastapp.PnlService
}

// NewPnlHandler creates a new PnlHandler
func NewPnlHandler(pnlService *forecastapp.PnlService) *PnlHandler {
	return &PnlHandler{pnlService: pnlService}
}

// ListRows godoc
// @Summary      List P&L rows
// @Description  Returns the P&L statement of a project, ordered by year
// @Tags         pnl
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Success      200 {object} dto.Response{data=PnlListResponse}
// @Failure      404 {object} dto.Response
// @Router       /projects/{id}/pnl [get]
func (h *PnlHandler) ListRows(c *gin.Context) {
	userID, projectID, ok := h.projectScope(c)
	if !ok {
		return
	}

	rows, err := h.pnlService.ListRows(c.Request.Context(), userID, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, PnlListResponse{Rows: toPnlRowResponses(rows)})
}

// AddYear godoc
// @Summary      Add a P&L year
// @Description  Adds one forecast year inside the project horizon
// @Tags         pnl
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Param        request body CreatePnlYearRequest true "Year data"
// @Success      201 {object} dto.Response{data=PnlRowResponse}
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /projects/{id}/pnl [post]
func (h *PnlHandler) AddYear(c *gin.Context) {
	userID, projectID, ok := h.projectScope(c)
	if !ok {
		return
	}

	var req CreatePnlYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	row, err := h.pnlService.AddYear(c.Request.Context(), forecastapp.AddPnlYearInput{
		UserID:    userID,
		ProjectID: projectID,
		Year:      req.Year,
		Row:       req.toRowInput(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toPnlRowResponse(row))
}

// GetRow godoc
// @Summary      Get a P&L row
// @Description  Returns one P&L row by its ID
// @Tags         pnl
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Row ID"
// @Success      200 {object} dto.Response{data=PnlRowResponse}
// @Failure      404 {object} dto.Response
// @Router       /pnl/rows/{id} [get]
func (h *PnlHandler) GetRow(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	rowID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid row ID")
		return
	}

	row, err := h.pnlService.GetRow(c.Request.Context(), userID, rowID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPnlRowResponse(row))
}

// UpdateRow godoc
// @Summary      Update a P&L year
// @Description  Applies a partial update; updating a missing year creates it
// @Tags         pnl
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Param        year path int true "Forecast year"
// @Param        request body UpdatePnlRowRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=PnlRowResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /projects/{id}/pnl/{year} [patch]
func (h *PnlHandler) UpdateRow(c *gin.Context) {
	userID, projectID, ok := h.projectScope(c)
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		h.BadRequest(c, "Invalid year")
		return
	}

	var req UpdatePnlRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	row, err := h.pnlService.UpdateRow(c.Request.Context(), forecastapp.UpdatePnlRowInput{
		UserID:    userID,
		ProjectID: projectID,
		Year:      year,
		Patch:     req.toPatch(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPnlRowResponse(row))
}

// SyncFromBalance godoc
// @Summary      Sync P&L from balance sheet
// @Description  Bulk-writes balance-driven depreciation and interest into the P&L
// @Tags         pnl
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Param        request body SyncPnlRequest true "Per-year amounts"
// @Success      200 {object} dto.Response{data=MessageResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /projects/{id}/pnl/sync [post]
func (h *PnlHandler) SyncFromBalance(c *gin.Context) {
	userID, projectID, ok := h.projectScope(c)
	if !ok {
		return
	}

	var req SyncPnlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.pnlService.SyncFromBalance(c.Request.Context(), forecastapp.SyncFromBalanceInput{
		UserID:    userID,
		ProjectID: projectID,
		Updates:   req.toSyncInput(),
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MessageResponse{Message: "P&L synchronized"})
}

// DeleteRows godoc
// @Summary      Delete all P&L rows
// @Description  Clears the P&L statement of a project
// @Tags         pnl
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response
// @Router       /projects/{id}/pnl [delete]
func (h *PnlHandler) DeleteRows(c *gin.Context) {
	userID, projectID, ok := h.projectScope(c)
	if !ok {
		return
	}

	if err := h.pnlService.DeleteRows(c.Request.Context(), userID, projectID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
