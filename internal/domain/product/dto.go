// internal/domain/product/dto.go
package product

// ProductRequest is the body of create and update calls. Update replaces
// every column, matching how the admin form submits the full record.
type ProductRequest struct {
	Name         string   `json:"name" binding:"required,max=255"`
	CategoryID   *int64   `json:"category_id"`
	Description  *string  `json:"description"`
	Manufacturer *string  `json:"manufacturer"`
	ModelNumber  *string  `json:"model_number"`
	SKU          *string  `json:"sku"`
	Price        *float64 `json:"price" binding:"omitempty,min=0"`
	Dimensions   *string  `json:"dimensions"`
	Material     *string  `json:"material"`
	Color        *string  `json:"color"`
}

// ListFilters narrows product listings. Category matches either the legacy
// free-text column or, when numeric, the category id.
type ListFilters struct {
	Category string `form:"category"`
}

// Fields is the write model handed to the repository.
type Fields struct {
	Name         string
	LegacyName   *string
	SyncLegacy   bool
	CategoryID   *int64
	Description  *string
	Manufacturer *string
	ModelNumber  *string
	SKU          *string
	Price        *float64
	Dimensions   *string
	Material     *string
	Color        *string
}

// ToFields converts a request into the repository write model.
func (r *ProductRequest) ToFields() *Fields {
	return &Fields{
		Name:         r.Name,
		CategoryID:   r.CategoryID,
		Description:  r.Description,
		Manufacturer: r.Manufacturer,
		ModelNumber:  r.ModelNumber,
		SKU:          r.SKU,
		Price:        r.Price,
		Dimensions:   r.Dimensions,
		Material:     r.Material,
		Color:        r.Color,
	}
}
