//go:build integration

package data

import (
	"context"
	"testing"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, "admin", "admin@example.com", "hash", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected to find user, got nil")
	}
	if got.ID != id || !got.IsAdmin {
		t.Errorf("unexpected user: %+v", got)
	}

	missing, err := repo.GetByUsername(ctx, "nobody")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing user, got %+v", missing)
	}
}

func TestUserRepository_DuplicateUsernameFails(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "admin", "admin@example.com", "hash", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Create(ctx, "admin", "other@example.com", "hash", false); err == nil {
		t.Error("expected unique constraint error on duplicate username")
	}
}
