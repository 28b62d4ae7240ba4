package services

import (
	"errors"
	"testing"
	"time"

	"github.com/mpetrov/taskdesk/internal/models"
	"gorm.io/gorm"
)

func projectUpdatedAt(t *testing.T, db *gorm.DB, projectID uint) time.Time {
	t.Helper()
	var project models.Project
	if err := db.First(&project, projectID).Error; err != nil {
		t.Fatalf("failed to load project: %v", err)
	}
	return project.UpdatedAt
}

func TestTaskCreate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(db)

	manager := createTestUser(t, db, models.RoleManager)
	member := createTestUser(t, db, models.RoleUser)
	project := createTestProject(t, db, manager, member)

	task, err := svc.Create(project.ID, &CreateTaskRequest{
		Name:   "Ship it",
		UserID: member.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.ProjectID != project.ID {
		t.Errorf("ProjectID = %d, expected %d", task.ProjectID, project.ID)
	}
	if task.User == nil || task.User.ID != member.ID {
		t.Error("assignee should be preloaded")
	}
	if task.State == nil || task.State.Name != "Created" {
		t.Errorf("new task should start in the first catalog state, got %+v", task.State)
	}
}

func TestTaskCreate_AssigneeNotParticipant(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(db)

	manager := createTestUser(t, db, models.RoleManager)
	outsider := createTestUser(t, db, models.RoleUser)
	project := createTestProject(t, db, manager)

	before := projectUpdatedAt(t, db, project.ID)
	time.Sleep(10 * time.Millisecond)

	_, err := svc.Create(project.ID, &CreateTaskRequest{Name: "t", UserID: outsider.ID})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}

	var count int64
	db.Model(&models.Task{}).Count(&count)
	if count != 0 {
		t.Errorf("no task should persist, found %d", count)
	}
	if !projectUpdatedAt(t, db, project.ID).Equal(before) {
		t.Error("a rejected create must not touch the project timestamp")
	}
}

func TestTaskCreate_TouchesProjectTimestamp(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(db)

	manager := createTestUser(t, db, models.RoleManager)
	member := createTestUser(t, db, models.RoleUser)
	project := createTestProject(t, db, manager, member)

	before := projectUpdatedAt(t, db, project.ID)
	time.Sleep(10 * time.Millisecond)

	if _, err := svc.Create(project.ID, &CreateTaskRequest{Name: "t", UserID: member.ID}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !projectUpdatedAt(t, db, project.ID).After(before) {
		t.Error("task creation should bump the project timestamp")
	}
}

func TestTaskDelete_LeavesProjectTimestamp(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(db)

	manager := createTestUser(t, db, models.RoleManager)
	member := createTestUser(t, db, models.RoleUser)
	project := createTestProject(t, db, manager, member)

	task, err := svc.Create(project.ID, &CreateTaskRequest{Name: "t", UserID: member.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	before := projectUpdatedAt(t, db, project.ID)
	time.Sleep(10 * time.Millisecond)

	deleted, err := svc.Delete(project.ID, task.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted.ID != task.ID {
		t.Errorf("returned task id = %d, expected %d", deleted.ID, task.ID)
	}
	if !projectUpdatedAt(t, db, project.ID).Equal(before) {
		t.Error("deleting a task must not touch the project timestamp")
	}

	if _, err := svc.GetOne(project.ID, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound after delete, got %v", err)
	}
}

func TestTaskUpdateState_LeavesProjectTimestamp(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(db)

	manager := createTestUser(t, db, models.RoleManager)
	member := createTestUser(t, db, models.RoleUser)
	project := createTestProject(t, db, manager, member)

	task, err := svc.Create(project.ID, &CreateTaskRequest{Name: "t", UserID: member.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	before := projectUpdatedAt(t, db, project.ID)
	time.Sleep(10 * time.Millisecond)

	updated, err := svc.UpdateState(project.ID, task.ID, "done")
	if err != nil {
		t.Fatalf("UpdateState failed: %v", err)
	}
	if updated.State == nil || updated.State.Name != "Done" {
		t.Errorf("state = %+v, expected Done", updated.State)
	}
	if !projectUpdatedAt(t, db, project.ID).Equal(before) {
		t.Error("a task state change must not touch the project timestamp")
	}
}

func TestTaskUpdateState_WrongProject(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(db)

	manager := createTestUser(t, db, models.RoleManager)
	member := createTestUser(t, db, models.RoleUser)
	project := createTestProject(t, db, manager, member)
	other := createTestProject(t, db, manager)

	task, err := svc.Create(project.ID, &CreateTaskRequest{Name: "t", UserID: member.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// The task id exists, but not under this project.
	if _, err := svc.UpdateState(other.ID, task.ID, "done"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskGetOne_ScopedToProject(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(db)

	manager := createTestUser(t, db, models.RoleManager)
	member := createTestUser(t, db, models.RoleUser)
	project := createTestProject(t, db, manager, member)
	other := createTestProject(t, db, manager)

	task, err := svc.Create(project.ID, &CreateTaskRequest{Name: "t", UserID: member.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.GetOne(other.ID, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskList(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(db)

	manager := createTestUser(t, db, models.RoleManager)
	member := createTestUser(t, db, models.RoleUser)
	project := createTestProject(t, db, manager, member)

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(project.ID, &CreateTaskRequest{Name: "t", UserID: member.ID}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	resp, err := svc.List(project.ID, &Pagination{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if resp.Total != 3 {
		t.Errorf("Total = %d, expected 3", resp.Total)
	}
	if len(resp.Items) != 2 {
		t.Errorf("len(Items) = %d, expected 2", len(resp.Items))
	}
}

func TestTaskList_MissingProject(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTaskService(db)

	_, err := svc.List(9999, &Pagination{})
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}
