// internal/domain/category/entity.go
package category

// Category is one node of the two-level merchandising classification.
// A nil ParentID marks a main category.
type Category struct {
	ID           int64  `json:"id" db:"id"`
	Code         string `json:"code" db:"code"`
	Name         string `json:"name" db:"name"`
	ParentID     *int64 `json:"parent_id" db:"parent_id"`
	DisplayOrder int    `json:"display_order" db:"display_order"`
	IsActive     bool   `json:"-" db:"is_active"`
}

// IsMain reports whether c sits at the top of the hierarchy.
func (c Category) IsMain() bool {
	return c.ParentID == nil
}

// MainCategory is a main category with its subcategories attached.
type MainCategory struct {
	Category
	Subcategories []Category `json:"subcategories"`
}
