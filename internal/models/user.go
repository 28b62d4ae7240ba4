package models

import (
	"time"
)

// User represents a system user. The password hash never leaves the API.
type User struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Email              string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FirstName          string     `gorm:"size:100" json:"first_name"`
	LastName           string     `gorm:"size:100" json:"last_name"`
	DateOfBirth        *time.Time `json:"date_of_birth"`
	DateOfRegistration time.Time  `gorm:"autoCreateTime" json:"date_of_registration"`
	PasswordHash       string     `gorm:"size:255" json:"-"`
	Role               Role       `gorm:"default:1" json:"role"`
}

func (User) TableName() string { return "users" }
