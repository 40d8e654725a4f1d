package handler

import (
	forecastapp "github.com/astris/backend/internal/application/forecast"
	"github.com/astris/backend/internal/domain/forecast"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectHandler handles forecasting project API endpoints
type ProjectHandler struct {
	BaseHandler
	projectService *forecastapp.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService *forecastapp.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ListProjects godoc
// @Summary      List projects
// @Description  Returns all projects owned by the authenticated user
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=ProjectListResponse}
// @Router       /projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	projects, err := h.projectService.ListProjects(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	h.Success(c, ProjectListResponse{Projects: out})
}

// CreateProject godoc
// @Summary      Create a project
// @Description  Creates a forecasting project with a seed P&L row for the start year
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateProjectRequest true "Project data"
// @Success      201 {object} dto.Response{data=ProjectResponse}
// @Failure      400 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Router       /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), forecastapp.CreateProjectInput{
		UserID:        userID,
		Name:          req.Name,
		Description:   req.Description,
		StartYear:     req.StartYear,
		ForecastYears: req.ForecastYears,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toProjectResponse(project))
}

// GetProject godoc
// @Summary      Get a project
// @Description  Returns one project owned by the authenticated user
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Success      200 {object} dto.Response{data=ProjectResponse}
// @Failure      404 {object} dto.Response
// @Router       /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	project, err := h.projectService.GetProject(c.Request.Context(), userID, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProjectResponse(project))
}

// UpdateProject godoc
// @Summary      Update a project
// @Description  Applies a partial update; extending the horizon rechecks the plan limit
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Param        request body UpdateProjectRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=ProjectResponse}
// @Failure      400 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /projects/{id} [patch]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), forecastapp.UpdateProjectInput{
		UserID:    userID,
		ProjectID: projectID,
		Patch: forecast.ProjectPatch{
			Name:          req.Name,
			Description:   req.Description,
			ForecastYears: req.ForecastYears,
		},
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProjectResponse(project))
}

// DeleteProject godoc
// @Summary      Delete a project
// @Description  Deletes a project and all of its forecast rows
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Success      204 "No Content"
// @Failure      404 {object} dto.Response
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), userID, projectID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
