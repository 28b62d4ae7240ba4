package models

// ProjectUser is a membership row: the user participates in the project.
// Row existence is the sole authority for participation; there is no payload.
type ProjectUser struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	ProjectID uint `gorm:"primaryKey;autoIncrement:false" json:"project_id"`
}

func (ProjectUser) TableName() string { return "project_users" }
