package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/mpetrov/taskdesk/internal/middleware"
	"github.com/mpetrov/taskdesk/internal/services"
	"github.com/mpetrov/taskdesk/pkg/response"
)

// handleServiceError maps service-layer failures onto HTTP statuses.
// Unknown errors become a 500 unchanged.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrManagerNotFound),
		errors.Is(err, services.ErrMembersNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrUserNotInProject),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrStateNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrEmailTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidRelation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	default:
		response.ServerError(c, err.Error())
	}
}

// requireGrant enforces the minimum grant for a project-scoped route.
// It writes the failure response itself and reports whether the request may
// proceed.
func requireGrant(c *gin.Context, perms *services.PermissionService, projectID uint, min services.Grant) bool {
	actor := middleware.Actor(c)
	if actor == nil {
		response.Unauthorized(c, "authentication required")
		return false
	}
	if perms.Evaluate(actor, projectID) < min {
		response.Forbidden(c, "insufficient project access")
		return false
	}
	return true
}

