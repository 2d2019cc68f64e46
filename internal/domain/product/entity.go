// internal/domain/product/entity.go
package product

import "time"

// Product is a catalog item. Category holds the display category: the name of
// the active category referenced by CategoryID when there is one, otherwise the
// legacy free-text value stored on the row.
type Product struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Category     *string   `json:"category" db:"category"`
	CategoryID   *int64    `json:"category_id" db:"category_id"`
	Description  *string   `json:"description" db:"description"`
	Manufacturer *string   `json:"manufacturer" db:"manufacturer"`
	ModelNumber  *string   `json:"model_number" db:"model_number"`
	SKU          *string   `json:"sku" db:"sku"`
	Price        *float64  `json:"price" db:"price"`
	Dimensions   *string   `json:"dimensions" db:"dimensions"`
	Material     *string   `json:"material" db:"material"`
	Color        *string   `json:"color" db:"color"`
	DateAdded    time.Time `json:"date_added" db:"date_added"`
	DateUpdated  time.Time `json:"date_updated" db:"date_updated"`
	IsActive     bool      `json:"is_active" db:"is_active"`
}

// VignetteProduct is a product as placed inside a vignette.
type VignetteProduct struct {
	Product
	Position int     `json:"position" db:"position"`
	Notes    *string `json:"notes" db:"notes"`
}
