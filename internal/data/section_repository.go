package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SectionRepository handles database operations for sections. Every
// write also touches the owning topic's updated_at, in the same
// transaction, so a topic's timestamp reflects its newest descendant.
type SectionRepository struct {
	db *sqlx.DB
}

// NewSectionRepository creates a new SectionRepository.
func NewSectionRepository(db *sqlx.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

// GetByTopic retrieves a topic's sections in display order.
func (r *SectionRepository) GetByTopic(ctx context.Context, topicID int64) ([]*Section, error) {
	var sections []*Section
	query := `SELECT * FROM sections WHERE topic_id = ? ORDER BY display_order, id`
	if err := r.db.SelectContext(ctx, &sections, query, topicID); err != nil {
		return nil, fmt.Errorf("failed to get sections by topic: %w", err)
	}
	return sections, nil
}

// GetByID finds a section by its ID. A missing row is not an error.
func (r *SectionRepository) GetByID(ctx context.Context, id int64) (*Section, error) {
	var section Section
	query := `SELECT * FROM sections WHERE id = ?`
	if err := r.db.GetContext(ctx, &section, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get section by id: %w", err)
	}
	return &section, nil
}

// Create appends a new section to a topic and returns its ID.
func (r *SectionRepository) Create(ctx context.Context, title string, topicID int64) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin create section transaction: %w", err)
	}
	defer tx.Rollback()

	var order int
	if err := tx.GetContext(ctx, &order,
		`SELECT COALESCE(MAX(display_order), -1) + 1 FROM sections WHERE topic_id = ?`, topicID); err != nil {
		return 0, fmt.Errorf("failed to get next section display order: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sections (title, topic_id, display_order) VALUES (?, ?, ?)`,
		title, topicID, order)
	if err != nil {
		return 0, fmt.Errorf("failed to create section: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted section id: %w", err)
	}

	if err := touchTopic(ctx, tx, topicID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit section creation: %w", err)
	}
	return id, nil
}

// Update renames a section and/or moves it to a new display position.
func (r *SectionRepository) Update(ctx context.Context, id int64, title string, displayOrder int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin update section transaction: %w", err)
	}
	defer tx.Rollback()

	topicID, err := sectionTopicID(ctx, tx, id)
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE sections SET title = ?, display_order = ? WHERE id = ?`, title, displayOrder, id)
	if err != nil {
		return fmt.Errorf("failed to update section: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no section found to update with id %d", id)
	}

	if err := touchTopic(ctx, tx, topicID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit section update: %w", err)
	}
	return nil
}

// Delete removes a section. Its items go with it via ON DELETE CASCADE.
func (r *SectionRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete section transaction: %w", err)
	}
	defer tx.Rollback()

	topicID, err := sectionTopicID(ctx, tx, id)
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM sections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete section: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no section found to delete with id %d", id)
	}

	if err := touchTopic(ctx, tx, topicID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit section delete: %w", err)
	}
	return nil
}

// Reorder assigns each section its zero-based index in ids as the new
// display order, scoped to one topic.
func (r *SectionRepository) Reorder(ctx context.Context, topicID int64, ids []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reorder transaction: %w", err)
	}
	defer tx.Rollback()

	for index, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`UPDATE sections SET display_order = ? WHERE id = ? AND topic_id = ?`,
			index, id, topicID); err != nil {
			return fmt.Errorf("failed to reorder section %d: %w", id, err)
		}
	}

	if err := touchTopic(ctx, tx, topicID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit section reorder: %w", err)
	}
	return nil
}

// sectionTopicID resolves the owning topic inside a transaction.
func sectionTopicID(ctx context.Context, tx *sqlx.Tx, sectionID int64) (int64, error) {
	var topicID int64
	if err := tx.GetContext(ctx, &topicID,
		`SELECT topic_id FROM sections WHERE id = ?`, sectionID); err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("no section found with id %d", sectionID)
		}
		return 0, fmt.Errorf("failed to resolve section topic: %w", err)
	}
	return topicID, nil
}

// touchTopic bumps the topic's updated_at inside the caller's transaction.
func touchTopic(ctx context.Context, tx *sqlx.Tx, topicID int64) error {
	if _, err := tx.ExecContext(ctx,
		`UPDATE topics SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, topicID); err != nil {
		return fmt.Errorf("failed to touch topic %d: %w", topicID, err)
	}
	return nil
}
