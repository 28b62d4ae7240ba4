package services

import (
	"errors"

	"github.com/mpetrov/taskdesk/internal/models"
	"gorm.io/gorm"
)

// ProjectUserService manages the membership set of a project.
type ProjectUserService struct {
	db *gorm.DB
}

func NewProjectUserService(db *gorm.DB) *ProjectUserService {
	return &ProjectUserService{db: db}
}

type ProjectUserListResponse struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Items    []models.User `json:"items"`
}

// projectExists is the lightweight existence pre-check shared by the
// membership and task services.
func projectExists(db *gorm.DB, projectID uint) error {
	var count int64
	if err := db.Model(&models.Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// List returns one page of the project's participants plus the total count.
func (s *ProjectUserService) List(projectID uint, p *Pagination) (*ProjectUserListResponse, error) {
	if err := projectExists(s.db, projectID); err != nil {
		return nil, err
	}

	p.normalize()

	var users []models.User
	var total int64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		memberQuery := func() *gorm.DB {
			return tx.Model(&models.User{}).
				Joins("JOIN project_users ON project_users.user_id = users.id").
				Where("project_users.project_id = ?", projectID)
		}
		if err := memberQuery().Count(&total).Error; err != nil {
			return err
		}
		return memberQuery().
			Order("users.id ASC").
			Offset(p.offset()).
			Limit(p.PageSize).
			Find(&users).Error
	})
	if err != nil {
		return nil, err
	}

	return &ProjectUserListResponse{
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
		Items:    users,
	}, nil
}

// GetOne returns a participant of the project.
func (s *ProjectUserService) GetOne(projectID, userID uint) (*models.User, error) {
	if err := projectExists(s.db, projectID); err != nil {
		return nil, err
	}

	var user models.User
	err := s.db.Model(&models.User{}).
		Joins("JOIN project_users ON project_users.user_id = users.id").
		Where("project_users.project_id = ?", projectID).
		Where("users.id = ?", userID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotInProject
		}
		return nil, err
	}
	return &user, nil
}

// Add puts the user into the project's membership set and returns the user.
func (s *ProjectUserService) Add(projectID, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	exists, err := s.Exists(projectID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyMember
	}

	membership := models.ProjectUser{UserID: userID, ProjectID: projectID}
	if err := s.db.Create(&membership).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrAlreadyMember
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return nil, ErrInvalidRelation
		}
		return nil, err
	}

	return &user, nil
}

// Remove deletes the membership row and returns the removed user. Checks run
// in order: user, project, membership.
func (s *ProjectUserService) Remove(projectID, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := projectExists(s.db, projectID); err != nil {
		return nil, err
	}

	res := s.db.
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Delete(&models.ProjectUser{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotInProject
	}

	return &user, nil
}

// Exists reports whether a membership row exists for (user, project).
func (s *ProjectUserService) Exists(projectID, userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.ProjectUser{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
