//go:build integration

package data

import (
	"context"
	"testing"
)

func TestTopicRepository_CreateAppendsWithinCategory(t *testing.T) {
	db := newTestDB(t)
	repo := NewTopicRepository(db)
	ctx := context.Background()

	userID := seedUser(t, db)
	linuxID := seedCategory(t, db, "Linux", 0)
	toolsID := seedCategory(t, db, "Tools", 1)

	bashID, err := repo.Create(ctx, &Topic{Slug: "bash", Title: "Bash", CategoryID: linuxID, UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sedID, err := repo.Create(ctx, &Topic{Slug: "sed", Title: "Sed", CategoryID: linuxID, UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gitID, err := repo.Create(ctx, &Topic{Slug: "git", Title: "Git", CategoryID: toolsID, UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, tc := range []struct {
		id   int64
		want int
	}{
		{bashID, 0},
		{sedID, 1},
		{gitID, 0}, // ordering restarts per category
	} {
		topic, err := repo.GetByID(ctx, tc.id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if topic.DisplayOrder != tc.want {
			t.Errorf("topic %d: expected order %d, got %d", tc.id, tc.want, topic.DisplayOrder)
		}
	}
}

func TestTopicRepository_GetBySlugPublishedOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewTopicRepository(db)
	ctx := context.Background()

	userID := seedUser(t, db)
	categoryID := seedCategory(t, db, "Linux", 0)

	draftID, err := repo.Create(ctx, &Topic{Slug: "awk", Title: "Awk", CategoryID: categoryID, UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Drafts are invisible by slug but reachable by id.
	got, err := repo.GetBySlug(ctx, "awk")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for a draft slug, got %+v", got)
	}
	byID, err := repo.GetByID(ctx, draftID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byID == nil {
		t.Fatal("expected draft to be reachable by id")
	}

	byID.IsPublished = true
	if err := repo.Update(ctx, byID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err = repo.GetBySlug(ctx, "awk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected published topic by slug")
	}
	if got.CategoryName != "Linux" {
		t.Errorf("expected category name Linux, got %q", got.CategoryName)
	}
}

func TestTopicRepository_CountByCategory(t *testing.T) {
	db := newTestDB(t)
	repo := NewTopicRepository(db)
	ctx := context.Background()

	userID := seedUser(t, db)
	categoryID := seedCategory(t, db, "Linux", 0)
	seedTopic(t, db, "bash", categoryID, userID)
	seedTopic(t, db, "sed", categoryID, userID)

	n, err := repo.CountByCategory(ctx, categoryID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 topics, got %d", n)
	}
}

func TestTopicRepository_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewTopicRepository(db)
	ctx := context.Background()

	userID := seedUser(t, db)
	categoryID := seedCategory(t, db, "Linux", 0)
	topicID := seedTopic(t, db, "bash", categoryID, userID)
	res := db.MustExec(`INSERT INTO sections (title, topic_id) VALUES ('Basics', ?)`, topicID)
	sectionID, _ := res.LastInsertId()
	db.MustExec(`INSERT INTO section_items (title, section_id) VALUES ('ls', ?)`, sectionID)

	if err := repo.Delete(ctx, topicID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sections, items int
	if err := db.GetContext(ctx, &sections, `SELECT COUNT(*) FROM sections`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := db.GetContext(ctx, &items, `SELECT COUNT(*) FROM section_items`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sections != 0 || items != 0 {
		t.Errorf("expected cascade to remove sections and items, got %d/%d", sections, items)
	}
}

func TestTopicRepository_ReorderScopedToCategory(t *testing.T) {
	db := newTestDB(t)
	repo := NewTopicRepository(db)
	ctx := context.Background()

	userID := seedUser(t, db)
	linuxID := seedCategory(t, db, "Linux", 0)
	toolsID := seedCategory(t, db, "Tools", 1)
	bashID := seedTopic(t, db, "bash", linuxID, userID)
	sedID := seedTopic(t, db, "sed", linuxID, userID)
	gitID := seedTopic(t, db, "git", toolsID, userID)

	if err := repo.Reorder(ctx, linuxID, []int64{sedID, bashID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	topics, err := repo.GetByCategory(ctx, linuxID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(topics))
	}
	if topics[0].ID != sedID || topics[1].ID != bashID {
		t.Errorf("expected sed before bash, got %d then %d", topics[0].ID, topics[1].ID)
	}

	// The other category is untouched.
	git, err := repo.GetByID(ctx, gitID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if git.DisplayOrder != 0 {
		t.Errorf("expected git to keep order 0, got %d", git.DisplayOrder)
	}
}

func TestTopicRepository_SetLogo(t *testing.T) {
	db := newTestDB(t)
	repo := NewTopicRepository(db)
	ctx := context.Background()

	userID := seedUser(t, db)
	categoryID := seedCategory(t, db, "Linux", 0)
	topicID := seedTopic(t, db, "bash", categoryID, userID)

	name := "abc123.png"
	if err := repo.SetLogo(ctx, topicID, &name); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	topic, err := repo.GetByID(ctx, topicID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if topic.LogoFilename == nil || *topic.LogoFilename != name {
		t.Errorf("expected logo %q, got %v", name, topic.LogoFilename)
	}

	if err := repo.SetLogo(ctx, topicID, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	topic, err = repo.GetByID(ctx, topicID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if topic.LogoFilename != nil {
		t.Errorf("expected cleared logo, got %v", *topic.LogoFilename)
	}
}
