package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mpetrov/taskdesk/internal/middleware"
	"github.com/mpetrov/taskdesk/internal/services"
	"github.com/mpetrov/taskdesk/pkg/response"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	perms          *services.PermissionService
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectService: services.NewProjectService(db),
		perms:          services.NewPermissionService(db),
	}
}

func parseProjectID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("projectId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return 0, false
	}
	return uint(id), true
}

// List returns paginated projects
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	var p services.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.projectService.List(&p)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, resp)
}

// Get returns one project
// GET /api/projects/:projectId
func (h *ProjectHandler) Get(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}
	if !requireGrant(c, h.perms, projectID, services.GrantParticipant) {
		return
	}

	project, err := h.projectService.Get(projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, project)
}

// Create creates a new project with the actor as manager
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, project)
}

type UpdateStateRequest struct {
	State string `json:"state" binding:"required"`
}

// UpdateState transitions the project state
// PATCH /api/projects/:projectId/state
func (h *ProjectHandler) UpdateState(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}
	if !requireGrant(c, h.perms, projectID, services.GrantOwner) {
		return
	}

	var req UpdateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.UpdateState(projectID, req.State)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, project)
}

// ListStates returns the state catalog
// GET /api/projects/states
func (h *ProjectHandler) ListStates(c *gin.Context) {
	states, err := h.projectService.ListStates()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, states)
}
