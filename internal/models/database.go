package models

import (
	"fmt"

	"github.com/mpetrov/taskdesk/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Constraint violations surface as gorm.ErrDuplicatedKey /
		// gorm.ErrForeignKeyViolated regardless of driver.
		TranslateError: true,
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&User{},
		&ProjectState{},
		&Project{},
		&ProjectUser{},
		&Task{},
		&SystemLog{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// SeedDefaultData creates the state catalog if it is empty.
func SeedDefaultData() error {
	var stateCount int64
	DB.Model(&ProjectState{}).Count(&stateCount)
	if stateCount > 0 {
		return nil
	}

	states := []ProjectState{
		{Name: "Created"},
		{Name: "In Progress"},
		{Name: "Done"},
		{Name: "Cancelled"},
	}
	for i := range states {
		if err := DB.Create(&states[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
