package services

import (
	"testing"

	"github.com/mpetrov/taskdesk/internal/models"
)

func TestEvaluate_NilActor(t *testing.T) {
	db := setupTestDB(t)
	perms := NewPermissionService(db)

	if g := perms.Evaluate(nil, 1); g != GrantNone {
		t.Errorf("Evaluate(nil) = %v, expected GrantNone", g)
	}
}

func TestEvaluate_AdminWithoutProject(t *testing.T) {
	db := setupTestDB(t)
	perms := NewPermissionService(db)
	admin := createTestUser(t, db, models.RoleAdmin)

	// Admins are granted even for projects that do not exist.
	if g := perms.Evaluate(admin, 9999); g != GrantAdmin {
		t.Errorf("Evaluate(admin, missing project) = %v, expected GrantAdmin", g)
	}
}

func TestEvaluate_Owner(t *testing.T) {
	db := setupTestDB(t)
	perms := NewPermissionService(db)

	manager := createTestUser(t, db, models.RoleManager)
	project := createTestProject(t, db, manager)

	if g := perms.Evaluate(manager, project.ID); g != GrantOwner {
		t.Errorf("Evaluate(manager) = %v, expected GrantOwner", g)
	}
}

func TestEvaluate_Participant(t *testing.T) {
	db := setupTestDB(t)
	perms := NewPermissionService(db)

	manager := createTestUser(t, db, models.RoleManager)
	member := createTestUser(t, db, models.RoleUser)
	project := createTestProject(t, db, manager, member)

	if g := perms.Evaluate(member, project.ID); g != GrantParticipant {
		t.Errorf("Evaluate(member) = %v, expected GrantParticipant", g)
	}
}

func TestEvaluate_StrangerDenied(t *testing.T) {
	db := setupTestDB(t)
	perms := NewPermissionService(db)

	manager := createTestUser(t, db, models.RoleManager)
	stranger := createTestUser(t, db, models.RoleUser)
	project := createTestProject(t, db, manager)

	if g := perms.Evaluate(stranger, project.ID); g != GrantNone {
		t.Errorf("Evaluate(stranger) = %v, expected GrantNone", g)
	}
}

func TestEvaluate_MissingProject(t *testing.T) {
	db := setupTestDB(t)
	perms := NewPermissionService(db)
	user := createTestUser(t, db, models.RoleUser)

	if g := perms.Evaluate(user, 9999); g != GrantNone {
		t.Errorf("Evaluate(user, missing project) = %v, expected GrantNone", g)
	}
}

func TestEvaluate_AdminDominatesMembership(t *testing.T) {
	db := setupTestDB(t)
	perms := NewPermissionService(db)

	manager := createTestUser(t, db, models.RoleManager)
	admin := createTestUser(t, db, models.RoleAdmin)
	project := createTestProject(t, db, manager, admin)

	// Role beats ownership and participation in the ranking.
	if g := perms.Evaluate(admin, project.ID); g != GrantAdmin {
		t.Errorf("Evaluate(admin member) = %v, expected GrantAdmin", g)
	}
}

func TestGrantOrdering(t *testing.T) {
	if !(GrantNone < GrantParticipant && GrantParticipant < GrantOwner && GrantOwner < GrantAdmin) {
		t.Error("grant levels must be strictly ordered")
	}
}

func TestBooleanWrappers(t *testing.T) {
	db := setupTestDB(t)
	perms := NewPermissionService(db)

	manager := createTestUser(t, db, models.RoleManager)
	member := createTestUser(t, db, models.RoleUser)
	project := createTestProject(t, db, manager, member)

	if !perms.IsOwnerOrAdmin(manager, project.ID) {
		t.Error("manager should pass IsOwnerOrAdmin")
	}
	if perms.IsOwnerOrAdmin(member, project.ID) {
		t.Error("member should not pass IsOwnerOrAdmin")
	}
	if !perms.IsParticipantOrOwnerOrAdmin(member, project.ID) {
		t.Error("member should pass IsParticipantOrOwnerOrAdmin")
	}
	if perms.IsAdmin(manager) {
		t.Error("manager should not pass IsAdmin")
	}
}
