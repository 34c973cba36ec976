package users

import (
	"context"
	"testing"

	"github.com/amaclone/storefront/pkg/db"
	"github.com/amaclone/storefront/pkg/enums"
	"github.com/amaclone/storefront/pkg/migrate/migratetest"
)

func TestRepositoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(migratetest.Open(t).DB())

	created, err := repo.Create(ctx, CreateUserDTO{Name: "Sam", Email: "sam@example.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Role != enums.UserRoleUser {
		t.Errorf("expected default role user, got %s", created.Role)
	}

	byEmail, err := repo.FindByEmail(ctx, "sam@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Errorf("expected %s, got %s", created.ID, byEmail.ID)
	}

	if err := repo.UpdateRole(ctx, created.ID, enums.UserRoleAdmin); err != nil {
		t.Fatalf("update role: %v", err)
	}
	byID, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if byID.Role != enums.UserRoleAdmin {
		t.Errorf("expected admin role, got %s", byID.Role)
	}

	if dto := FromModel(byID); dto == nil || dto.Name != "Sam" {
		t.Errorf("unexpected dto %+v", dto)
	}
	if FromModel(nil) != nil {
		t.Error("nil model should map to nil dto")
	}
}

func TestRepositoryRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(migratetest.Open(t).DB())

	if _, err := repo.Create(ctx, CreateUserDTO{Name: "A", Email: "dup@example.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("create first: %v", err)
	}
	_, err := repo.Create(ctx, CreateUserDTO{Name: "B", Email: "dup@example.com", PasswordHash: "h"})
	if err == nil || !db.IsUniqueViolation(err, "") {
		t.Fatalf("expected unique violation, got %v", err)
	}

	if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !db.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}
