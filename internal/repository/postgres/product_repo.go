// internal/repository/postgres/product_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"showroom-service/internal/domain/product"
	xerrors "showroom-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
)

// productColumns resolves the display category through the categories table,
// falling back to the legacy free-text column.
const productColumns = `
	p.id, p.name, COALESCE(c.name, p.category) AS category, p.category_id,
	p.description, p.manufacturer, p.model_number, p.sku, p.price::float8,
	p.dimensions, p.material, p.color, p.date_added, p.date_updated, p.is_active
`

const productCategoryJoin = `
	LEFT JOIN categories c ON p.category_id = c.id AND c.is_active = TRUE
`

type ProductRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

func productDest(p *product.Product) []any {
	return []any{
		&p.ID, &p.Name, &p.Category, &p.CategoryID,
		&p.Description, &p.Manufacturer, &p.ModelNumber, &p.SKU, &p.Price,
		&p.Dimensions, &p.Material, &p.Color, &p.DateAdded, &p.DateUpdated, &p.IsActive,
	}
}

// List retrieves active products, optionally narrowed to a category given
// either as legacy text or as a category id.
func (r *ProductRepository) List(ctx context.Context, filters *product.ListFilters) ([]product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p ` + productCategoryJoin + ` WHERE p.is_active = TRUE`
	args := []any{}

	if filters != nil && filters.Category != "" {
		if id, err := strconv.ParseInt(filters.Category, 10, 64); err == nil {
			query += ` AND (p.category = $1 OR p.category_id = $2)`
			args = append(args, filters.Category, id)
		} else {
			query += ` AND p.category = $1`
			args = append(args, filters.Category)
		}
	}

	query += ` ORDER BY p.name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []product.Product{}
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(productDest(&p)...); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// FindActiveByID retrieves an active product by ID
func (r *ProductRepository) FindActiveByID(ctx context.Context, id int64) (*product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p ` + productCategoryJoin + ` WHERE p.id = $1 AND p.is_active = TRUE`

	var p product.Product
	err := r.db.QueryRow(ctx, query, id).Scan(productDest(&p)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return &p, nil
}

// ListByVignette returns the active products linked to a vignette in
// position order.
func (r *ProductRepository) ListByVignette(ctx context.Context, vignetteID int64) ([]product.VignetteProduct, error) {
	query := `
		SELECT ` + productColumns + `, vp.position, vp.notes
		FROM products p
		JOIN vignette_products vp ON p.id = vp.product_id
		` + productCategoryJoin + `
		WHERE vp.vignette_id = $1 AND p.is_active = TRUE
		ORDER BY vp.position, vp.id
	`

	rows, err := r.db.Query(ctx, query, vignetteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vignette products: %w", err)
	}
	defer rows.Close()

	products := []product.VignetteProduct{}
	for rows.Next() {
		var vp product.VignetteProduct
		dest := append(productDest(&vp.Product), &vp.Position, &vp.Notes)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan vignette product: %w", err)
		}
		products = append(products, vp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list vignette products: %w", err)
	}

	return products, nil
}

// Create inserts a product and returns its generated id. The legacy category
// column is written only when f.SyncLegacy is set.
func (r *ProductRepository) Create(ctx context.Context, f *product.Fields) (int64, error) {
	query := `
		INSERT INTO products (
			name, category, category_id, description, manufacturer, model_number,
			sku, price, dimensions, material, color
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var legacy *string
	if f.SyncLegacy {
		legacy = f.LegacyName
	}

	var id int64
	err := r.db.QueryRow(
		ctx, query,
		f.Name, legacy, f.CategoryID, f.Description, f.Manufacturer, f.ModelNumber,
		f.SKU, f.Price, f.Dimensions, f.Material, f.Color,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create product: %w", err)
	}

	return id, nil
}

// Update replaces a product's columns and returns the affected row count.
func (r *ProductRepository) Update(ctx context.Context, id int64, f *product.Fields) (int64, error) {
	args := []any{
		f.Name, f.CategoryID, f.Description, f.Manufacturer, f.ModelNumber,
		f.SKU, f.Price, f.Dimensions, f.Material, f.Color, id,
	}

	query := `
		UPDATE products
		SET name = $1, category_id = $2, description = $3, manufacturer = $4,
		    model_number = $5, sku = $6, price = $7, dimensions = $8,
		    material = $9, color = $10, date_updated = NOW()
		WHERE id = $11
	`
	if f.SyncLegacy {
		query = `
			UPDATE products
			SET name = $1, category_id = $2, description = $3, manufacturer = $4,
			    model_number = $5, sku = $6, price = $7, dimensions = $8,
			    material = $9, color = $10, category = $12, date_updated = NOW()
			WHERE id = $11
		`
		args = append(args, f.LegacyName)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update product: %w", err)
	}

	return result.RowsAffected(), nil
}

// SoftDelete marks a product inactive.
func (r *ProductRepository) SoftDelete(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.Exec(ctx, `UPDATE products SET is_active = FALSE, date_updated = NOW() WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete product: %w", err)
	}

	return result.RowsAffected(), nil
}
