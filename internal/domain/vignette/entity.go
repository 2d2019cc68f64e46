// internal/domain/vignette/entity.go
package vignette

import (
	"time"

	"showroom-service/internal/domain/image"
	"showroom-service/internal/domain/product"
)

// Vignette is a staged room display on the showroom floor.
type Vignette struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	Location    *string   `json:"location" db:"location"`
	Theme       *string   `json:"theme" db:"theme"`
	DateCreated time.Time `json:"date_created" db:"date_created"`
	DateUpdated time.Time `json:"date_updated" db:"date_updated"`
	IsActive    bool      `json:"is_active" db:"is_active"`
}

// Summary is a vignette as shown in listings.
type Summary struct {
	Vignette
	ProductCount int64 `json:"product_count"`
	ImageCount   int64 `json:"image_count"`
}

// Detail is a vignette with its products in position order and its images
// primary-first.
type Detail struct {
	Vignette *Vignette                 `json:"vignette"`
	Products []product.VignetteProduct `json:"products"`
	Images   []image.Image             `json:"images"`
}
