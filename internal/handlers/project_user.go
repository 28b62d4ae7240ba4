package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mpetrov/taskdesk/internal/services"
	"github.com/mpetrov/taskdesk/pkg/response"
	"gorm.io/gorm"
)

// ProjectUserHandler exposes the membership set of a project.
type ProjectUserHandler struct {
	memberService *services.ProjectUserService
	perms         *services.PermissionService
}

func NewProjectUserHandler(db *gorm.DB) *ProjectUserHandler {
	return &ProjectUserHandler{
		memberService: services.NewProjectUserService(db),
		perms:         services.NewPermissionService(db),
	}
}

// List returns the project's participants
// GET /api/projects/:projectId/users
func (h *ProjectUserHandler) List(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}
	if !requireGrant(c, h.perms, projectID, services.GrantParticipant) {
		return
	}

	var p services.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.memberService.List(projectID, &p)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, resp)
}

// GetOne returns one participant
// GET /api/projects/:projectId/users/:userId
func (h *ProjectUserHandler) GetOne(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	if !requireGrant(c, h.perms, projectID, services.GrantParticipant) {
		return
	}

	user, err := h.memberService.GetOne(projectID, uint(userID))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, user)
}

type AddUserRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// Add puts a user into the project's membership set
// POST /api/projects/:projectId/users
func (h *ProjectUserHandler) Add(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}
	if !requireGrant(c, h.perms, projectID, services.GrantOwner) {
		return
	}

	var req AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.memberService.Add(projectID, req.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, user)
}

// Remove deletes a user from the project's membership set
// DELETE /api/projects/:projectId/users/:userId
func (h *ProjectUserHandler) Remove(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	if !requireGrant(c, h.perms, projectID, services.GrantOwner) {
		return
	}

	user, err := h.memberService.Remove(projectID, uint(userID))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, user)
}
