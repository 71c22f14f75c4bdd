package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// TopicRepository handles database operations for topics. Every read
// joins the category name so callers never issue a second lookup.
type TopicRepository struct {
	db *sqlx.DB
}

// NewTopicRepository creates a new TopicRepository.
func NewTopicRepository(db *sqlx.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

const topicSelect = `
	SELECT t.*, COALESCE(c.name, 'General') AS category_name
	FROM topics t
	LEFT JOIN categories c ON t.category_id = c.id`

// GetAll retrieves every topic regardless of publish state, for the
// admin dashboard.
func (r *TopicRepository) GetAll(ctx context.Context) ([]*Topic, error) {
	var topics []*Topic
	query := topicSelect + ` ORDER BY t.title`
	if err := r.db.SelectContext(ctx, &topics, query); err != nil {
		return nil, fmt.Errorf("failed to get all topics: %w", err)
	}
	return topics, nil
}

// GetAllPublished retrieves every published topic.
func (r *TopicRepository) GetAllPublished(ctx context.Context) ([]*Topic, error) {
	var topics []*Topic
	query := topicSelect + ` WHERE t.is_published = 1 ORDER BY t.title`
	if err := r.db.SelectContext(ctx, &topics, query); err != nil {
		return nil, fmt.Errorf("failed to get published topics: %w", err)
	}
	return topics, nil
}

// GetBySlug retrieves a published topic by slug. Unpublished topics are
// invisible here: public slug lookups must 404 for drafts while the
// admin id lookup still sees them.
func (r *TopicRepository) GetBySlug(ctx context.Context, slug string) (*Topic, error) {
	var topic Topic
	query := topicSelect + ` WHERE t.slug = ? AND t.is_published = 1`
	if err := r.db.GetContext(ctx, &topic, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get topic by slug: %w", err)
	}
	return &topic, nil
}

// GetByID retrieves a topic by ID in any publish state.
func (r *TopicRepository) GetByID(ctx context.Context, id int64) (*Topic, error) {
	var topic Topic
	query := topicSelect + ` WHERE t.id = ?`
	if err := r.db.GetContext(ctx, &topic, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get topic by id: %w", err)
	}
	return &topic, nil
}

// GetByCategory retrieves all topics in a category, ordered for display.
func (r *TopicRepository) GetByCategory(ctx context.Context, categoryID int64) ([]*Topic, error) {
	var topics []*Topic
	query := topicSelect + ` WHERE t.category_id = ? ORDER BY t.display_order, t.title`
	if err := r.db.SelectContext(ctx, &topics, query, categoryID); err != nil {
		return nil, fmt.Errorf("failed to get topics by category: %w", err)
	}
	return topics, nil
}

// GetPublishedByCategory retrieves the published topics in a category,
// ordered for display.
func (r *TopicRepository) GetPublishedByCategory(ctx context.Context, categoryID int64) ([]*Topic, error) {
	var topics []*Topic
	query := topicSelect + ` WHERE t.category_id = ? AND t.is_published = 1 ORDER BY t.display_order, t.title`
	if err := r.db.SelectContext(ctx, &topics, query, categoryID); err != nil {
		return nil, fmt.Errorf("failed to get published topics by category: %w", err)
	}
	return topics, nil
}

// CountByCategory reports how many topics a category owns. The category
// delete precondition is checked against this.
func (r *TopicRepository) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM topics WHERE category_id = ?`
	if err := r.db.GetContext(ctx, &count, query, categoryID); err != nil {
		return 0, fmt.Errorf("failed to count topics by category: %w", err)
	}
	return count, nil
}

// Create inserts a new topic at the end of its category's display order
// and returns its ID.
func (r *TopicRepository) Create(ctx context.Context, topic *Topic) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin create topic transaction: %w", err)
	}
	defer tx.Rollback()

	var order int
	if err := tx.GetContext(ctx, &order,
		`SELECT COALESCE(MAX(display_order), -1) + 1 FROM topics WHERE category_id = ?`,
		topic.CategoryID); err != nil {
		return 0, fmt.Errorf("failed to get next topic display order: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO topics (slug, title, description, category_id, display_order, is_published, user_id, card_color_light, card_color_dark, logo_filename)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		topic.Slug, topic.Title, topic.Description, topic.CategoryID, order,
		topic.IsPublished, topic.UserID, topic.CardColorLight, topic.CardColorDark, topic.LogoFilename)
	if err != nil {
		return 0, fmt.Errorf("failed to create topic: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted topic id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit topic creation: %w", err)
	}
	return id, nil
}

// Update rewrites a topic's editable fields and touches updated_at.
func (r *TopicRepository) Update(ctx context.Context, topic *Topic) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE topics SET slug = ?, title = ?, description = ?, category_id = ?, is_published = ?,
			card_color_light = ?, card_color_dark = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		topic.Slug, topic.Title, topic.Description, topic.CategoryID, topic.IsPublished,
		topic.CardColorLight, topic.CardColorDark, topic.ID)
	if err != nil {
		return fmt.Errorf("failed to update topic: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no topic found to update with id %d", topic.ID)
	}
	return nil
}

// SetLogo stores the opaque logo filename for a topic. A nil filename
// clears the logo.
func (r *TopicRepository) SetLogo(ctx context.Context, id int64, filename *string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE topics SET logo_filename = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		filename, id)
	if err != nil {
		return fmt.Errorf("failed to set topic logo: %w", err)
	}
	return nil
}

// Touch bumps a topic's updated_at. Section and item repositories call
// this inside their own transactions; this variant is for callers that
// mutate descendants outside those paths.
func (r *TopicRepository) Touch(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE topics SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to touch topic: %w", err)
	}
	return nil
}

// Delete removes a topic. Sections and their items go with it via
// ON DELETE CASCADE.
func (r *TopicRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM topics WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no topic found to delete with id %d", id)
	}
	return nil
}

// Reorder assigns each topic its zero-based index in ids as the new
// display order, scoped to one category.
func (r *TopicRepository) Reorder(ctx context.Context, categoryID int64, ids []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reorder transaction: %w", err)
	}
	defer tx.Rollback()

	for index, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`UPDATE topics SET display_order = ? WHERE id = ? AND category_id = ?`,
			index, id, categoryID); err != nil {
			return fmt.Errorf("failed to reorder topic %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit topic reorder: %w", err)
	}
	return nil
}
