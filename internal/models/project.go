package models

import (
	"time"
)

// Project represents a managed project. Manager is required and verified at
// creation time only.
type Project struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"size:200;not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	ManagerID   uint          `gorm:"not null" json:"manager_id"`
	Manager     *User         `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	StateID     uint          `json:"state_id"`
	State       *ProjectState `gorm:"foreignKey:StateID" json:"state,omitempty"`
	Tasks       []Task        `gorm:"foreignKey:ProjectID" json:"tasks"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }
