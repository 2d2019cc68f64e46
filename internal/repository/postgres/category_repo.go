// internal/repository/postgres/category_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"showroom-service/internal/domain/category"
	xerrors "showroom-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type CategoryRepository struct {
	db DBTX
}

func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListActive returns all active categories ordered by display_order, name.
func (r *CategoryRepository) ListActive(ctx context.Context) ([]category.Category, error) {
	query := `
		SELECT id, code, name, parent_id, display_order, is_active
		FROM categories
		WHERE is_active = TRUE
		ORDER BY display_order, name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []category.Category{}
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.ParentID, &c.DisplayOrder, &c.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

// FindNameByID returns the name of the category with the given id.
func (r *CategoryRepository) FindNameByID(ctx context.Context, id int64) (string, error) {
	var name string
	err := r.db.QueryRow(ctx, `SELECT name FROM categories WHERE id = $1`, id).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", xerrors.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to find category: %w", err)
	}
	return name, nil
}
