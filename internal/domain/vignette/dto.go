// internal/domain/vignette/dto.go
package vignette

type VignetteRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Theme       *string `json:"theme"`
}

// LinkProductRequest places a product inside a vignette.
type LinkProductRequest struct {
	Position *int    `json:"position"`
	Notes    *string `json:"notes"`
}
