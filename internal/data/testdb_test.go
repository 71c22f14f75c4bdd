//go:build integration

package data

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// newTestDB creates a fresh in-memory SQLite database with the full schema.
// A single connection keeps every query on the same in-memory database.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite", "file::memory:?_pragma=foreign_keys(1)&_time_format=sqlite")
	if err != nil {
		t.Fatalf("Failed to connect to sqlite test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		username      TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_admin      BOOLEAN NOT NULL DEFAULT 0,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE categories (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT NOT NULL UNIQUE,
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE topics (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		slug             TEXT NOT NULL UNIQUE,
		title            TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		category_id      INTEGER NOT NULL REFERENCES categories(id),
		display_order    INTEGER NOT NULL DEFAULT 0,
		is_published     BOOLEAN NOT NULL DEFAULT 0,
		user_id          INTEGER NOT NULL REFERENCES users(id),
		card_color_light TEXT NOT NULL DEFAULT '#ffffff',
		card_color_dark  TEXT NOT NULL DEFAULT '#1a1a1a',
		logo_filename    TEXT,
		created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE sections (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		title         TEXT NOT NULL,
		display_order INTEGER NOT NULL DEFAULT 0,
		topic_id      INTEGER NOT NULL REFERENCES topics(id) ON DELETE CASCADE
	);
	CREATE TABLE section_items (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		title            TEXT NOT NULL,
		markdown_content TEXT NOT NULL DEFAULT '',
		display_order    INTEGER NOT NULL DEFAULT 0,
		card_size        TEXT NOT NULL DEFAULT 'normal',
		accent_color     TEXT NOT NULL DEFAULT '',
		section_id       INTEGER NOT NULL REFERENCES sections(id) ON DELETE CASCADE,
		created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`
	db.MustExec(schema)

	t.Cleanup(func() { db.Close() })
	return db
}

// seedUser inserts a user and returns its id.
func seedUser(t *testing.T, db *sqlx.DB) int64 {
	t.Helper()
	res := db.MustExec(`INSERT INTO users (username, email, password_hash, is_admin) VALUES ('tester', 'tester@example.com', 'x', 1)`)
	id, _ := res.LastInsertId()
	return id
}

// seedCategory inserts a category at the given order and returns its id.
func seedCategory(t *testing.T, db *sqlx.DB, name string, order int) int64 {
	t.Helper()
	res := db.MustExec(`INSERT INTO categories (name, display_order) VALUES (?, ?)`, name, order)
	id, _ := res.LastInsertId()
	return id
}

// seedTopic inserts a published topic and returns its id.
func seedTopic(t *testing.T, db *sqlx.DB, slug string, categoryID, userID int64) int64 {
	t.Helper()
	res := db.MustExec(
		`INSERT INTO topics (slug, title, description, category_id, user_id, is_published) VALUES (?, ?, '', ?, ?, 1)`,
		slug, slug, categoryID, userID)
	id, _ := res.LastInsertId()
	return id
}

// agedTopicTime pushes a topic's updated_at well into the past so that a
// subsequent touch is observable.
func agedTopicTime(t *testing.T, db *sqlx.DB, topicID int64) {
	t.Helper()
	db.MustExec(`UPDATE topics SET updated_at = '2000-01-01 00:00:00' WHERE id = ?`, topicID)
}

// topicUpdatedAt reads the raw updated_at value of a topic.
func topicUpdatedAt(t *testing.T, db *sqlx.DB, topicID int64) string {
	t.Helper()
	var raw string
	if err := db.GetContext(context.Background(), &raw, `SELECT updated_at FROM topics WHERE id = ?`, topicID); err != nil {
		t.Fatalf("Failed to read topic timestamp: %v", err)
	}
	return raw
}
