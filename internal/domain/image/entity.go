// internal/domain/image/entity.go
package image

import (
	"encoding/json"
	"time"
)

// OwnerKind names what an image is attached to.
type OwnerKind string

const (
	OwnerProduct  OwnerKind = "product"
	OwnerVignette OwnerKind = "vignette"
)

// Owner identifies the single product or vignette an image belongs to.
type Owner struct {
	Kind OwnerKind
	ID   int64
}

func ProductOwner(id int64) Owner  { return Owner{Kind: OwnerProduct, ID: id} }
func VignetteOwner(id int64) Owner { return Owner{Kind: OwnerVignette, ID: id} }

// Columns splits the owner into the product_id / vignette_id column pair.
func (o Owner) Columns() (productID, vignetteID *int64) {
	id := o.ID
	switch o.Kind {
	case OwnerProduct:
		return &id, nil
	case OwnerVignette:
		return nil, &id
	}
	return nil, nil
}

// OwnerFromColumns rebuilds an owner from the stored column pair.
func OwnerFromColumns(productID, vignetteID *int64) Owner {
	if productID != nil {
		return ProductOwner(*productID)
	}
	if vignetteID != nil {
		return VignetteOwner(*vignetteID)
	}
	return Owner{}
}

type Image struct {
	ID        int64     `db:"id"`
	Owner     Owner     `db:"-"`
	ImagePath string    `db:"image_path"`
	IsPrimary bool      `db:"is_primary"`
	Caption   *string   `db:"caption"`
	DateAdded time.Time `db:"date_added"`
}

// MarshalJSON keeps the product_id / vignette_id shape the display pages read.
func (i Image) MarshalJSON() ([]byte, error) {
	productID, vignetteID := i.Owner.Columns()
	return json.Marshal(struct {
		ID         int64     `json:"id"`
		ProductID  *int64    `json:"product_id"`
		VignetteID *int64    `json:"vignette_id"`
		ImagePath  string    `json:"image_path"`
		IsPrimary  bool      `json:"is_primary"`
		Caption    *string   `json:"caption"`
		DateAdded  time.Time `json:"date_added"`
	}{i.ID, productID, vignetteID, i.ImagePath, i.IsPrimary, i.Caption, i.DateAdded})
}
