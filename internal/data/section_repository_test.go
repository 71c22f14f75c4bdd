//go:build integration

package data

import (
	"context"
	"testing"
)

func TestSectionRepository_CreateAppends(t *testing.T) {
	db := newTestDB(t)
	repo := NewSectionRepository(db)
	ctx := context.Background()

	userID := seedUser(t, db)
	categoryID := seedCategory(t, db, "Linux", 0)
	topicID := seedTopic(t, db, "bash", categoryID, userID)

	firstID, err := repo.Create(ctx, "Basics", topicID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	secondID, err := repo.Create(ctx, "Pipes", topicID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sections, err := repo.GetByTopic(ctx, topicID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].ID != firstID || sections[0].DisplayOrder != 0 {
		t.Errorf("expected section %d first at order 0, got %d at %d", firstID, sections[0].ID, sections[0].DisplayOrder)
	}
	if sections[1].ID != secondID || sections[1].DisplayOrder != 1 {
		t.Errorf("expected section %d second at order 1, got %d at %d", secondID, sections[1].ID, sections[1].DisplayOrder)
	}
}

func TestSectionRepository_CreateTouchesTopic(t *testing.T) {
	db := newTestDB(t)
	repo := NewSectionRepository(db)
	ctx := context.Background()

	userID := seedUser(t, db)
	categoryID := seedCategory(t, db, "Linux", 0)
	topicID := seedTopic(t, db, "bash", categoryID, userID)
	agedTopicTime(t, db, topicID)
	before := topicUpdatedAt(t, db, topicID)

	if _, err := repo.Create(ctx, "Basics", topicID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after := topicUpdatedAt(t, db, topicID); after <= before {
		t.Errorf("expected section create to bump topic updated_at, got %q", after)
	}
}

func TestSectionRepository_DeleteCascadesItems(t *testing.T) {
	db := newTestDB(t)
	repo := NewSectionRepository(db)
	ctx := context.Background()

	userID := seedUser(t, db)
	categoryID := seedCategory(t, db, "Linux", 0)
	topicID := seedTopic(t, db, "bash", categoryID, userID)
	sectionID, err := repo.Create(ctx, "Basics", topicID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	db.MustExec(`INSERT INTO section_items (title, section_id) VALUES ('ls', ?)`, sectionID)
	db.MustExec(`INSERT INTO section_items (title, section_id) VALUES ('cd', ?)`, sectionID)

	agedTopicTime(t, db, topicID)
	before := topicUpdatedAt(t, db, topicID)

	if err := repo.Delete(ctx, sectionID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var items int
	if err := db.GetContext(ctx, &items, `SELECT COUNT(*) FROM section_items`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items != 0 {
		t.Errorf("expected cascade to remove items, %d left", items)
	}
	if after := topicUpdatedAt(t, db, topicID); after <= before {
		t.Errorf("expected section delete to bump topic updated_at, got %q", after)
	}
}

func TestSectionRepository_Reorder(t *testing.T) {
	db := newTestDB(t)
	repo := NewSectionRepository(db)
	ctx := context.Background()

	userID := seedUser(t, db)
	categoryID := seedCategory(t, db, "Linux", 0)
	topicID := seedTopic(t, db, "bash", categoryID, userID)
	firstID, err := repo.Create(ctx, "Basics", topicID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	secondID, err := repo.Create(ctx, "Pipes", topicID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.Reorder(ctx, topicID, []int64{secondID, firstID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sections, err := repo.GetByTopic(ctx, topicID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sections[0].ID != secondID || sections[1].ID != firstID {
		t.Errorf("expected order %d,%d; got %d,%d", secondID, firstID, sections[0].ID, sections[1].ID)
	}
}
