package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mpetrov/taskdesk/internal/services"
	"github.com/mpetrov/taskdesk/pkg/response"
	"gorm.io/gorm"
)

type TaskHandler struct {
	taskService *services.TaskService
	perms       *services.PermissionService
}

func NewTaskHandler(db *gorm.DB) *TaskHandler {
	return &TaskHandler{
		taskService: services.NewTaskService(db),
		perms:       services.NewPermissionService(db),
	}
}

func parseTaskID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("taskId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return 0, false
	}
	return uint(id), true
}

// List returns the project's tasks
// GET /api/projects/:projectId/tasks
func (h *TaskHandler) List(c *gin.Context) {
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

	resp, err := h.taskService.List(projectID, &p)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, resp)
}

// GetOne returns one task
// GET /api/projects/:projectId/tasks/:taskId
func (h *TaskHandler) GetOne(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}
	if !requireGrant(c, h.perms, projectID, services.GrantParticipant) {
		return
	}

	task, err := h.taskService.GetOne(projectID, taskID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, task)
}

// Create creates a task assigned to a project participant
// POST /api/projects/:projectId/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}
	if !requireGrant(c, h.perms, projectID, services.GrantOwner) {
		return
	}

	var req services.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Create(projectID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, task)
}

// Delete removes a task
// DELETE /api/projects/:projectId/tasks/:taskId
func (h *TaskHandler) Delete(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}
	if !requireGrant(c, h.perms, projectID, services.GrantOwner) {
		return
	}

	task, err := h.taskService.Delete(projectID, taskID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, task)
}

// UpdateState transitions a task's state
// PATCH /api/projects/:projectId/tasks/:taskId/state
func (h *TaskHandler) UpdateState(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}
	if !requireGrant(c, h.perms, projectID, services.GrantParticipant) {
		return
	}

	var req UpdateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.UpdateState(projectID, taskID, req.State)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, task)
}
