package services

import (
	"fmt"
	"testing"

	"github.com/mpetrov/taskdesk/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory database, migrates the schema and
// seeds the state catalog. The single-connection pool keeps every query on
// the same in-memory instance.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.ProjectState{},
		&models.Project{},
		&models.ProjectUser{},
		&models.Task{},
		&models.SystemLog{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	states := []models.ProjectState{
		{Name: "Created"},
		{Name: "In Progress"},
		{Name: "Done"},
		{Name: "Cancelled"},
	}
	if err := db.Create(&states).Error; err != nil {
		t.Fatalf("failed to seed states: %v", err)
	}

	return db
}

var testUserSeq int

// createTestUser inserts a user with a unique email and the given role.
func createTestUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()

	testUserSeq++
	user := models.User{
		Email:        fmt.Sprintf("user%d@example.com", testUserSeq),
		FirstName:    "Test",
		LastName:     fmt.Sprintf("User%d", testUserSeq),
		PasswordHash: "x",
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

// createTestProject creates a project managed by manager with the given
// members in its membership set.
func createTestProject(t *testing.T, db *gorm.DB, manager *models.User, members ...*models.User) *models.Project {
	t.Helper()

	svc := NewProjectService(db)
	req := &CreateProjectRequest{Name: "Test Project"}
	for _, m := range members {
		req.UserIDs = append(req.UserIDs, m.ID)
	}

	project, err := svc.Create(req, manager.ID)
	if err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return project
}
