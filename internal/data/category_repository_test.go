//go:build integration

package data

import (
	"context"
	"testing"
)

func TestCategoryRepository_CreateAppends(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	firstID, err := repo.Create(ctx, "Linux", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	secondID, err := repo.Create(ctx, "Tools", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := repo.GetByID(ctx, firstID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := repo.GetByID(ctx, secondID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.DisplayOrder != 0 {
		t.Errorf("expected first category at order 0, got %d", first.DisplayOrder)
	}
	if second.DisplayOrder != 1 {
		t.Errorf("expected second category at order 1, got %d", second.DisplayOrder)
	}
}

func TestCategoryRepository_CreateExplicitOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	order := 7
	id, err := repo.Create(ctx, "Databases", &order)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DisplayOrder != 7 {
		t.Errorf("expected order 7, got %d", got.DisplayOrder)
	}
}

func TestCategoryRepository_DuplicateNameFails(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "Linux", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Create(ctx, "Linux", nil); err == nil {
		t.Error("expected unique constraint error on duplicate name")
	}

	categories, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 1 {
		t.Errorf("expected 1 category after failed duplicate insert, got %d", len(categories))
	}
}

func TestCategoryRepository_GetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)

	got, err := repo.GetByID(context.Background(), 999)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing category, got %+v", got)
	}
}

func TestCategoryRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, "Netwroking", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Update(ctx, id, "Networking", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Networking" || got.DisplayOrder != 3 {
		t.Errorf("expected Networking/3, got %s/%d", got.Name, got.DisplayOrder)
	}

	if err := repo.Update(ctx, 999, "Ghost", 0); err == nil {
		t.Error("expected error when updating a missing category")
	}
}

func TestCategoryRepository_DeleteBlockedByTopics(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	userID := seedUser(t, db)
	categoryID := seedCategory(t, db, "Linux", 0)
	seedTopic(t, db, "bash", categoryID, userID)

	if err := repo.Delete(ctx, categoryID); err == nil {
		t.Error("expected foreign key error deleting a category with topics")
	}

	// An empty category deletes cleanly.
	emptyID := seedCategory(t, db, "Empty", 1)
	if err := repo.Delete(ctx, emptyID); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := repo.Delete(ctx, emptyID); err == nil {
		t.Error("expected error deleting an already-deleted category")
	}
}

func TestCategoryRepository_ReorderNormalizes(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	linuxID := seedCategory(t, db, "Linux", 0)
	toolsID := seedCategory(t, db, "Tools", 5)

	if err := repo.Reorder(ctx, []int64{toolsID, linuxID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	categories, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].Name != "Tools" || categories[0].DisplayOrder != 0 {
		t.Errorf("expected Tools first at order 0, got %s at %d", categories[0].Name, categories[0].DisplayOrder)
	}
	if categories[1].Name != "Linux" || categories[1].DisplayOrder != 1 {
		t.Errorf("expected Linux second at order 1, got %s at %d", categories[1].Name, categories[1].DisplayOrder)
	}
}
