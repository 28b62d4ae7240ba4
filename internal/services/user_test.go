package services

import (
	"errors"
	"testing"

	"github.com/mpetrov/taskdesk/internal/models"
)

func TestUserList(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	for i := 0; i < 3; i++ {
		createTestUser(t, db, models.RoleUser)
	}

	resp, err := svc.List(&Pagination{Page: 1, PageSize: 2})
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

func TestUserGetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	if _, err := svc.GetByID(9999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserUpdateRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	user := createTestUser(t, db, models.RoleUser)

	updated, err := svc.UpdateRole(user.ID, models.RoleManager)
	if err != nil {
		t.Fatalf("UpdateRole failed: %v", err)
	}
	if updated.Role != models.RoleManager {
		t.Errorf("role = %v, expected RoleManager", updated.Role)
	}

	reloaded, err := svc.GetByID(user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if reloaded.Role != models.RoleManager {
		t.Error("role change should persist")
	}
}

func TestUserUpdateRole_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	if _, err := svc.UpdateRole(9999, models.RoleAdmin); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
