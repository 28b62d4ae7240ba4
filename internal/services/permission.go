package services

import (
	"errors"

	"github.com/mpetrov/taskdesk/internal/models"
	"github.com/mpetrov/taskdesk/pkg/logger"
	"gorm.io/gorm"
)

// Grant is the access level an actor holds on a project. Levels are ordered:
// a higher grant dominates every lower one.
type Grant int

const (
	GrantNone Grant = iota
	GrantParticipant
	GrantOwner
	GrantAdmin
)

func (g Grant) String() string {
	switch g {
	case GrantParticipant:
		return "participant"
	case GrantOwner:
		return "owner"
	case GrantAdmin:
		return "admin"
	default:
		return "none"
	}
}

// PermissionService evaluates what a given actor may do with a project.
// It is read-only and never returns an error: storage failures are logged
// and reported as no grant.
type PermissionService struct {
	db *gorm.DB
}

func NewPermissionService(db *gorm.DB) *PermissionService {
	return &PermissionService{db: db}
}

// Evaluate returns the highest grant the actor holds on the project.
// A nil actor always evaluates to GrantNone. Admins are granted without
// touching the project row, so a missing project still yields GrantAdmin;
// the 404/403 distinction is the caller's concern.
func (s *PermissionService) Evaluate(actor *models.User, projectID uint) Grant {
	if actor == nil {
		return GrantNone
	}

	if actor.Role == models.RoleAdmin {
		return GrantAdmin
	}

	var project models.Project
	err := s.db.Select("id", "manager_id").First(&project, projectID).Error
	switch {
	case err == nil:
		if project.ManagerID == actor.ID {
			return GrantOwner
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Missing project: no ownership, membership check below still runs
		// and finds nothing.
	default:
		logger.Error().Err(err).Uint("project_id", projectID).Msg("permission: project lookup failed")
		return GrantNone
	}

	var count int64
	if err := s.db.Model(&models.ProjectUser{}).
		Where("user_id = ? AND project_id = ?", actor.ID, projectID).
		Count(&count).Error; err != nil {
		logger.Error().Err(err).Uint("project_id", projectID).Msg("permission: membership lookup failed")
		return GrantNone
	}
	if count > 0 {
		return GrantParticipant
	}

	return GrantNone
}

// IsAdmin reports whether the actor holds the Admin role.
func (s *PermissionService) IsAdmin(actor *models.User) bool {
	return actor != nil && actor.Role == models.RoleAdmin
}

// IsOwnerOrAdmin reports whether the actor manages the project or is Admin.
func (s *PermissionService) IsOwnerOrAdmin(actor *models.User, projectID uint) bool {
	return s.Evaluate(actor, projectID) >= GrantOwner
}

// IsParticipantOrOwnerOrAdmin reports whether the actor has any grant on the
// project.
func (s *PermissionService) IsParticipantOrOwnerOrAdmin(actor *models.User, projectID uint) bool {
	return s.Evaluate(actor, projectID) >= GrantParticipant
}
