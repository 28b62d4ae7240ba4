package models

import (
	"time"
)

// Task belongs to exactly one project; its assignee must be a participant of
// that project when the task is created.
type Task struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"size:200;not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	ProjectID   uint          `gorm:"index;not null" json:"project_id"`
	UserID      uint          `gorm:"not null" json:"user_id"`
	User        *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	StateID     uint          `json:"state_id"`
	State       *ProjectState `gorm:"foreignKey:StateID" json:"state,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }
