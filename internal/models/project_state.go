package models

// ProjectState is a catalog entry shared by projects and tasks. Transitions
// resolve the target by case-insensitive substring match on Name.
type ProjectState struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

func (ProjectState) TableName() string { return "project_states" }
