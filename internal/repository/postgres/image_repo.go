// internal/repository/postgres/image_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"showroom-service/internal/domain/image"
	xerrors "showroom-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type ImageRepository struct {
	db DBTX
}

func NewImageRepository(db DBTX) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Create(ctx context.Context, owner image.Owner, path string, isPrimary bool, caption *string) (int64, error) {
	productID, vignetteID := owner.Columns()
	query := `
		INSERT INTO images (product_id, vignette_id, image_path, is_primary, caption)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	if err := r.db.QueryRow(ctx, query, productID, vignetteID, path, isPrimary, caption).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to create image: %w", err)
	}

	return id, nil
}

func (r *ImageRepository) FindByID(ctx context.Context, id int64) (*image.Image, error) {
	query := `
		SELECT id, product_id, vignette_id, image_path, is_primary, caption, date_added
		FROM images
		WHERE id = $1
	`

	var (
		img                   image.Image
		productID, vignetteID *int64
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&img.ID, &productID, &vignetteID, &img.ImagePath, &img.IsPrimary, &img.Caption, &img.DateAdded,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find image: %w", err)
	}

	img.Owner = image.OwnerFromColumns(productID, vignetteID)
	return &img, nil
}

// ListByOwner returns an owner's images, primary first.
func (r *ImageRepository) ListByOwner(ctx context.Context, owner image.Owner) ([]image.Image, error) {
	column := "product_id"
	if owner.Kind == image.OwnerVignette {
		column = "vignette_id"
	}

	query := `
		SELECT id, product_id, vignette_id, image_path, is_primary, caption, date_added
		FROM images
		WHERE ` + column + ` = $1
		ORDER BY is_primary DESC, date_added, id
	`

	rows, err := r.db.Query(ctx, query, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	images := []image.Image{}
	for rows.Next() {
		var (
			img                   image.Image
			productID, vignetteID *int64
		)
		if err := rows.Scan(
			&img.ID, &productID, &vignetteID, &img.ImagePath, &img.IsPrimary, &img.Caption, &img.DateAdded,
		); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		img.Owner = image.OwnerFromColumns(productID, vignetteID)
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	return images, nil
}

func (r *ImageRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete image: %w", err)
	}

	return result.RowsAffected(), nil
}
