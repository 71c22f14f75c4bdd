package data

import (
	"html/template"
	"time"
)

// Category groups topics on the home page. DisplayOrder defines its
// position; the reorder operation normalizes orders to 0..n-1.
type Category struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    time.Time `db:"created_at"`
}

// Topic is a single cheatsheet. DisplayOrder is scoped to its category.
type Topic struct {
	ID             int64     `db:"id"`
	Slug           string    `db:"slug"`
	Title          string    `db:"title"`
	Description    string    `db:"description"`
	CategoryID     int64     `db:"category_id"`
	CategoryName   string    `db:"category_name"`
	DisplayOrder   int       `db:"display_order"`
	IsPublished    bool      `db:"is_published"`
	UserID         int64     `db:"user_id"`
	CardColorLight string    `db:"card_color_light"`
	CardColorDark  string    `db:"card_color_dark"`
	LogoFilename   *string   `db:"logo_filename"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Section is an ordered group of items within a topic.
type Section struct {
	ID           int64  `db:"id"`
	Title        string `db:"title"`
	DisplayOrder int    `db:"display_order"`
	TopicID      int64  `db:"topic_id"`
}

// SectionItem is a markdown snippet within a section. HTMLContent is the
// rendered, sanitized markdown and is never persisted.
type SectionItem struct {
	ID              int64         `db:"id"`
	Title           string        `db:"title"`
	MarkdownContent string        `db:"markdown_content"`
	HTMLContent     template.HTML `db:"-"`
	DisplayOrder    int           `db:"display_order"`
	CardSize        string        `db:"card_size"`
	AccentColor     string        `db:"accent_color"`
	SectionID       int64         `db:"section_id"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

// User is an account able to log into the admin area.
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	IsAdmin      bool      `db:"is_admin"`
	CreatedAt    time.Time `db:"created_at"`
}
