package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CategoryRepository handles database operations for categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetAll retrieves all categories ordered by display position.
func (r *CategoryRepository) GetAll(ctx context.Context) ([]*Category, error) {
	var categories []*Category
	query := `SELECT * FROM categories ORDER BY display_order, name`
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to get all categories: %w", err)
	}
	return categories, nil
}

// GetByID finds a category by its ID. A missing row is not an error.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*Category, error) {
	var category Category
	query := `SELECT * FROM categories WHERE id = ?`
	if err := r.db.GetContext(ctx, &category, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}
	return &category, nil
}

// Create inserts a new category and returns its ID. When displayOrder is
// nil the category is appended after the current last one.
func (r *CategoryRepository) Create(ctx context.Context, name string, displayOrder *int) (int64, error) {
	order := 0
	if displayOrder != nil {
		order = *displayOrder
	} else {
		next, err := r.NextDisplayOrder(ctx)
		if err != nil {
			return 0, err
		}
		order = next
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (name, display_order) VALUES (?, ?)`, name, order)
	if err != nil {
		return 0, fmt.Errorf("failed to create category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted category id: %w", err)
	}
	return id, nil
}

// Update renames a category and/or moves it to a new display position.
func (r *CategoryRepository) Update(ctx context.Context, id int64, name string, displayOrder int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, display_order = ? WHERE id = ?`, name, displayOrder, id)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no category found to update with id %d", id)
	}
	return nil
}

// Delete removes a category. The caller must verify the category owns no
// topics first; the foreign key on topics rejects the delete otherwise.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no category found to delete with id %d", id)
	}
	return nil
}

// Reorder assigns each category its zero-based index in ids as the new
// display order, normalizing the sequence to 0..n-1. All updates run in
// one transaction so a failure leaves the old ordering intact.
func (r *CategoryRepository) Reorder(ctx context.Context, ids []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reorder transaction: %w", err)
	}
	defer tx.Rollback()

	for index, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`UPDATE categories SET display_order = ? WHERE id = ?`, index, id); err != nil {
			return fmt.Errorf("failed to reorder category %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit category reorder: %w", err)
	}
	return nil
}

// NextDisplayOrder returns max(display_order)+1, or 0 for an empty table.
func (r *CategoryRepository) NextDisplayOrder(ctx context.Context) (int, error) {
	var next int
	query := `SELECT COALESCE(MAX(display_order), -1) + 1 FROM categories`
	if err := r.db.GetContext(ctx, &next, query); err != nil {
		return 0, fmt.Errorf("failed to get next category display order: %w", err)
	}
	return next, nil
}
