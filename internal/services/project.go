package services

import (
	"errors"
	"strings"
	"time"

	"github.com/mpetrov/taskdesk/internal/models"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	UserIDs     []uint `json:"user_ids"`
}

type ProjectListResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []models.Project `json:"items"`
}

// hydrated attaches manager, state and tasks (with their assignees and
// states) to project queries.
func hydrated(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Manager").
		Preload("State").
		Preload("Tasks").
		Preload("Tasks.User").
		Preload("Tasks.State")
}

// Create verifies the manager and every listed member exist, then persists
// the project together with its initial membership set in one transaction.
func (s *ProjectService) Create(req *CreateProjectRequest, managerID uint) (*models.Project, error) {
	var manager models.User
	if err := s.db.First(&manager, managerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrManagerNotFound
		}
		return nil, err
	}

	if len(req.UserIDs) > 0 {
		var found int64
		if err := s.db.Model(&models.User{}).
			Where("id IN ?", req.UserIDs).
			Count(&found).Error; err != nil {
			return nil, err
		}
		if found != int64(len(req.UserIDs)) {
			return nil, ErrMembersNotFound
		}
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		ManagerID:   managerID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var state models.ProjectState
		if err := tx.Order("id ASC").First(&state).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStateNotFound
			}
			return err
		}
		project.StateID = state.ID

		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		for _, userID := range req.UserIDs {
			membership := models.ProjectUser{UserID: userID, ProjectID: project.ID}
			if err := tx.Create(&membership).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrInvalidRelation
		}
		return nil, err
	}

	return s.Get(project.ID)
}

// List returns one page of projects plus the total count, both read inside
// a single transaction so the pair is consistent.
func (s *ProjectService) List(p *Pagination) (*ProjectListResponse, error) {
	p.normalize()

	var projects []models.Project
	var total int64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Project{}).Count(&total).Error; err != nil {
			return err
		}
		return hydrated(tx).
			Order("id ASC").
			Offset(p.offset()).
			Limit(p.PageSize).
			Find(&projects).Error
	})
	if err != nil {
		return nil, err
	}

	return &ProjectListResponse{
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
		Items:    projects,
	}, nil
}

// Get returns the hydrated project.
func (s *ProjectService) Get(id uint) (*models.Project, error) {
	var project models.Project
	if err := hydrated(s.db).First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// UpdateState transitions the project to the state resolved from stateName.
// Only task creation touches the project timestamp; a state transition does
// not, so UpdateColumns skips the automatic updated_at bump.
func (s *ProjectService) UpdateState(projectID uint, stateName string) (*models.Project, error) {
	state, err := s.resolveState(stateName)
	if err != nil {
		return nil, err
	}

	res := s.db.Model(&models.Project{}).
		Where("id = ?", projectID).
		UpdateColumns(map[string]interface{}{"state_id": state.ID})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrProjectNotFound
	}

	return s.Get(projectID)
}

// TouchModified bumps the project's last-modified timestamp.
func (s *ProjectService) TouchModified(projectID uint) error {
	res := s.db.Model(&models.Project{}).
		Where("id = ?", projectID).
		Update("updated_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// ListStates returns the full state catalog.
func (s *ProjectService) ListStates() ([]models.ProjectState, error) {
	var states []models.ProjectState
	if err := s.db.Order("id ASC").Find(&states).Error; err != nil {
		return nil, err
	}
	return states, nil
}

// escapeLike escapes LIKE wildcards so the needle matches literally. The
// exclamation mark is the escape character; unlike a backslash it reads the
// same in every supported dialect.
func escapeLike(s string) string {
	return strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`).Replace(s)
}

// resolveState finds the state whose name contains stateName
// (case-insensitive). An exact name match wins; among substring matches the
// lowest id wins. Wildcard characters in stateName match only themselves.
func (s *ProjectService) resolveState(stateName string) (*models.ProjectState, error) {
	needle := strings.ToLower(stateName)

	var state models.ProjectState
	err := s.db.Where("LOWER(name) = ?", needle).First(&state).Error
	if err == nil {
		return &state, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = s.db.Where("LOWER(name) LIKE ? ESCAPE '!'", "%"+escapeLike(needle)+"%").
		Order("id ASC").
		First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStateNotFound
		}
		return nil, err
	}
	return &state, nil
}
