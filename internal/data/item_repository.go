package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SectionItemRepository handles database operations for section items.
// Writes touch the grandparent topic's updated_at through the section
// join, inside the same transaction.
type SectionItemRepository struct {
	db *sqlx.DB
}

// NewSectionItemRepository creates a new SectionItemRepository.
func NewSectionItemRepository(db *sqlx.DB) *SectionItemRepository {
	return &SectionItemRepository{db: db}
}

// GetBySection retrieves a section's items in display order.
func (r *SectionItemRepository) GetBySection(ctx context.Context, sectionID int64) ([]*SectionItem, error) {
	var items []*SectionItem
	query := `SELECT * FROM section_items WHERE section_id = ? ORDER BY display_order, id`
	if err := r.db.SelectContext(ctx, &items, query, sectionID); err != nil {
		return nil, fmt.Errorf("failed to get items by section: %w", err)
	}
	return items, nil
}

// GetByID finds an item by its ID. A missing row is not an error.
func (r *SectionItemRepository) GetByID(ctx context.Context, id int64) (*SectionItem, error) {
	var item SectionItem
	query := `SELECT * FROM section_items WHERE id = ?`
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item by id: %w", err)
	}
	return &item, nil
}

// Create appends a new item to a section and returns its ID.
func (r *SectionItemRepository) Create(ctx context.Context, item *SectionItem) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin create item transaction: %w", err)
	}
	defer tx.Rollback()

	var order int
	if err := tx.GetContext(ctx, &order,
		`SELECT COALESCE(MAX(display_order), -1) + 1 FROM section_items WHERE section_id = ?`,
		item.SectionID); err != nil {
		return 0, fmt.Errorf("failed to get next item display order: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO section_items (title, markdown_content, display_order, card_size, accent_color, section_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.Title, item.MarkdownContent, order, item.CardSize, item.AccentColor, item.SectionID)
	if err != nil {
		return 0, fmt.Errorf("failed to create item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted item id: %w", err)
	}

	if err := r.touchTopicOfSection(ctx, tx, item.SectionID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit item creation: %w", err)
	}
	return id, nil
}

// Update rewrites an item's fields and touches timestamps up the tree.
func (r *SectionItemRepository) Update(ctx context.Context, item *SectionItem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin update item transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE section_items SET title = ?, markdown_content = ?, display_order = ?, card_size = ?, accent_color = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		item.Title, item.MarkdownContent, item.DisplayOrder, item.CardSize, item.AccentColor, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no item found to update with id %d", item.ID)
	}

	if err := r.touchTopicOfItem(ctx, tx, item.ID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit item update: %w", err)
	}
	return nil
}

// Delete removes an item.
func (r *SectionItemRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete item transaction: %w", err)
	}
	defer tx.Rollback()

	// Touch before the row disappears; the join needs it.
	if err := r.touchTopicOfItem(ctx, tx, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM section_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no item found to delete with id %d", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit item delete: %w", err)
	}
	return nil
}

// Reorder assigns each item its zero-based index in ids as the new
// display order, scoped to one section.
func (r *SectionItemRepository) Reorder(ctx context.Context, sectionID int64, ids []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reorder transaction: %w", err)
	}
	defer tx.Rollback()

	for index, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`UPDATE section_items SET display_order = ? WHERE id = ? AND section_id = ?`,
			index, id, sectionID); err != nil {
			return fmt.Errorf("failed to reorder item %d: %w", id, err)
		}
	}

	if err := r.touchTopicOfSection(ctx, tx, sectionID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit item reorder: %w", err)
	}
	return nil
}

func (r *SectionItemRepository) touchTopicOfSection(ctx context.Context, tx *sqlx.Tx, sectionID int64) error {
	if _, err := tx.ExecContext(ctx,
		`UPDATE topics SET updated_at = CURRENT_TIMESTAMP
		 WHERE id = (SELECT topic_id FROM sections WHERE id = ?)`, sectionID); err != nil {
		return fmt.Errorf("failed to touch topic of section %d: %w", sectionID, err)
	}
	return nil
}

func (r *SectionItemRepository) touchTopicOfItem(ctx context.Context, tx *sqlx.Tx, itemID int64) error {
	if _, err := tx.ExecContext(ctx,
		`UPDATE topics SET updated_at = CURRENT_TIMESTAMP
		 WHERE id = (SELECT s.topic_id FROM sections s
		             JOIN section_items i ON i.section_id = s.id
		             WHERE i.id = ?)`, itemID); err != nil {
		return fmt.Errorf("failed to touch topic of item %d: %w", itemID, err)
	}
	return nil
}
