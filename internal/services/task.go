package services

import (
	"errors"
	"time"

	"github.com/mpetrov/taskdesk/internal/models"
	"gorm.io/gorm"
)

// TaskService manages the tasks of a project.
type TaskService struct {
	db       *gorm.DB
	projects *ProjectService
	members  *ProjectUserService
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{
		db:       db,
		projects: NewProjectService(db),
		members:  NewProjectUserService(db),
	}
}

type CreateTaskRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	UserID      uint   `json:"user_id" binding:"required"`
}

type TaskListResponse struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Items    []models.Task `json:"items"`
}

func taskDetail(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("State")
}

// List returns one page of the project's tasks plus the total count.
func (s *TaskService) List(projectID uint, p *Pagination) (*TaskListResponse, error) {
	if err := projectExists(s.db, projectID); err != nil {
		return nil, err
	}

	p.normalize()

	var tasks []models.Task
	var total int64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("project_id = ?", projectID).
			Count(&total).Error; err != nil {
			return err
		}
		return taskDetail(tx).
			Where("project_id = ?", projectID).
			Order("id ASC").
			Offset(p.offset()).
			Limit(p.PageSize).
			Find(&tasks).Error
	})
	if err != nil {
		return nil, err
	}

	return &TaskListResponse{
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
		Items:    tasks,
	}, nil
}

// GetOne returns the task matching both the project and the task id.
func (s *TaskService) GetOne(projectID, taskID uint) (*models.Task, error) {
	var task models.Task
	err := taskDetail(s.db).
		Where("project_id = ? AND id = ?", projectID, taskID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// Create inserts the task and bumps the project's last-modified timestamp in
// a single transaction. The assignee must already participate in the project.
func (s *TaskService) Create(projectID uint, req *CreateTaskRequest) (*models.Task, error) {
	isMember, err := s.members.Exists(projectID, req.UserID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrUserNotFound
	}

	task := models.Task{
		Name:        req.Name,
		Description: req.Description,
		ProjectID:   projectID,
		UserID:      req.UserID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var state models.ProjectState
		if err := tx.Order("id ASC").First(&state).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStateNotFound
			}
			return err
		}
		task.StateID = state.ID

		if err := tx.Create(&task).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Project{}).
			Where("id = ?", projectID).
			Update("updated_at", time.Now())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProjectNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrInvalidRelation
		}
		return nil, err
	}

	return s.GetOne(projectID, task.ID)
}

// Delete removes the task and returns it.
func (s *TaskService) Delete(projectID, taskID uint) (*models.Task, error) {
	task, err := s.GetOne(projectID, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Delete(&models.Task{}, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrInvalidRelation
		}
		return nil, err
	}

	return task, nil
}

// UpdateState transitions the task to the state resolved from stateName.
// The project's timestamp is deliberately left untouched here.
func (s *TaskService) UpdateState(projectID, taskID uint, stateName string) (*models.Task, error) {
	state, err := s.projects.resolveState(stateName)
	if err != nil {
		return nil, err
	}

	res := s.db.Model(&models.Task{}).
		Where("project_id = ? AND id = ?", projectID, taskID).
		Updates(map[string]interface{}{"state_id": state.ID, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrTaskNotFound
	}

	return s.GetOne(projectID, taskID)
}
