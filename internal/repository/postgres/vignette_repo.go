// internal/repository/postgres/vignette_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"showroom-service/internal/domain/vignette"
	xerrors "showroom-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type VignetteRepository struct {
	db DBTX
}

func NewVignetteRepository(db DBTX) *VignetteRepository {
	return &VignetteRepository{db: db}
}

// ListActive returns active vignettes newest first, each with its linked
// product and image counts.
func (r *VignetteRepository) ListActive(ctx context.Context) ([]vignette.Summary, error) {
	query := `
		SELECT v.id, v.name, v.description, v.location, v.theme,
		       v.date_created, v.date_updated, v.is_active,
		       COUNT(DISTINCT vp.product_id) AS product_count,
		       COUNT(DISTINCT i.id) AS image_count
		FROM vignettes v
		LEFT JOIN vignette_products vp ON v.id = vp.vignette_id
		LEFT JOIN images i ON v.id = i.vignette_id
		WHERE v.is_active = TRUE
		GROUP BY v.id
		ORDER BY v.date_created DESC, v.id DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vignettes: %w", err)
	}
	defer rows.Close()

	vignettes := []vignette.Summary{}
	for rows.Next() {
		var s vignette.Summary
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Description, &s.Location, &s.Theme,
			&s.DateCreated, &s.DateUpdated, &s.IsActive,
			&s.ProductCount, &s.ImageCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vignette: %w", err)
		}
		vignettes = append(vignettes, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list vignettes: %w", err)
	}

	return vignettes, nil
}

// FindActiveByID retrieves an active vignette by ID
func (r *VignetteRepository) FindActiveByID(ctx context.Context, id int64) (*vignette.Vignette, error) {
	query := `
		SELECT id, name, description, location, theme, date_created, date_updated, is_active
		FROM vignettes
		WHERE id = $1 AND is_active = TRUE
	`

	var v vignette.Vignette
	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.Name, &v.Description, &v.Location, &v.Theme,
		&v.DateCreated, &v.DateUpdated, &v.IsActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vignette: %w", err)
	}

	return &v, nil
}

func (r *VignetteRepository) Create(ctx context.Context, req *vignette.VignetteRequest) (int64, error) {
	query := `
		INSERT INTO vignettes (name, description, location, theme)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	if err := r.db.QueryRow(ctx, query, req.Name, req.Description, req.Location, req.Theme).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to create vignette: %w", err)
	}

	return id, nil
}

// Update replaces a vignette's columns and returns the affected row count.
func (r *VignetteRepository) Update(ctx context.Context, id int64, req *vignette.VignetteRequest) (int64, error) {
	query := `
		UPDATE vignettes
		SET name = $1, description = $2, location = $3, theme = $4, date_updated = NOW()
		WHERE id = $5
	`

	result, err := r.db.Exec(ctx, query, req.Name, req.Description, req.Location, req.Theme, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update vignette: %w", err)
	}

	return result.RowsAffected(), nil
}

// SoftDelete marks a vignette inactive.
func (r *VignetteRepository) SoftDelete(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.Exec(ctx, `UPDATE vignettes SET is_active = FALSE, date_updated = NOW() WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete vignette: %w", err)
	}

	return result.RowsAffected(), nil
}

// AddProduct links a product into a vignette and returns the link id.
func (r *VignetteRepository) AddProduct(ctx context.Context, vignetteID, productID int64, position int, notes *string) (int64, error) {
	query := `
		INSERT INTO vignette_products (vignette_id, product_id, position, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, vignetteID, productID, position, notes).Scan(&id)
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("product %d is already in vignette %d: %w", productID, vignetteID, xerrors.ErrDuplicateEntry)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to add product to vignette: %w", err)
	}

	return id, nil
}

// RemoveProduct deletes a vignette-product link and returns the affected count.
func (r *VignetteRepository) RemoveProduct(ctx context.Context, vignetteID, productID int64) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM vignette_products WHERE vignette_id = $1 AND product_id = $2`, vignetteID, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to remove product from vignette: %w", err)
	}

	return result.RowsAffected(), nil
}
