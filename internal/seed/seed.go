// Package seed loads the sample showroom used for demos and local development.
package seed

import (
	"context"
	"fmt"

	"showroom-service/internal/domain/product"
	"showroom-service/internal/domain/vignette"
)

type VignetteStore interface {
	ListActive(ctx context.Context) ([]vignette.Summary, error)
	Create(ctx context.Context, req *vignette.VignetteRequest) (int64, error)
	AddProduct(ctx context.Context, vignetteID, productID int64, position int, notes *string) (int64, error)
}

type ProductStore interface {
	Create(ctx context.Context, f *product.Fields) (int64, error)
}

// Result counts what Run inserted.
type Result struct {
	Vignettes int
	Products  int
	Links     int
	Skipped   bool
}

var sampleVignettes = []vignette.VignetteRequest{
	{Name: "Modern Living", Description: ptr("Contemporary living room setup with clean lines"), Location: ptr("Section A1"), Theme: ptr("Modern")},
	{Name: "Cozy Family Room", Description: ptr("Warm and inviting family space"), Location: ptr("Section B2"), Theme: ptr("Traditional")},
}

var sampleProducts = []product.Fields{
	{Name: "Cloud Comfort Sofa", LegacyName: ptr("Sofa"), SyncLegacy: true, Description: ptr("Luxurious 3-seater sofa with deep cushions"), Manufacturer: ptr("ComfortCo"), Price: ptr(1299.99), Color: ptr("Charcoal Gray")},
	{Name: "Elegance Armchair", LegacyName: ptr("Chair"), SyncLegacy: true, Description: ptr("Mid-century modern armchair with wooden legs"), Manufacturer: ptr("DesignPlus"), Price: ptr(449.99), Color: ptr("Navy Blue")},
	{Name: "Geometric Area Rug", LegacyName: ptr("Rug"), SyncLegacy: true, Description: ptr("Hand-tufted wool rug with modern pattern"), Manufacturer: ptr("RugMasters"), Price: ptr(599.99), Color: ptr("Multi-color")},
	{Name: "Glass-Top Coffee Table", LegacyName: ptr("Coffee Table"), SyncLegacy: true, Description: ptr("Tempered glass with chrome base"), Manufacturer: ptr("ModernHome"), Price: ptr(329.99), Color: ptr("Clear/Chrome")},
	{Name: "Amber Table Lamp", LegacyName: ptr("Lamp"), SyncLegacy: true, Description: ptr("Ceramic base with fabric shade"), Manufacturer: ptr("LightUp"), Price: ptr(89.99), Color: ptr("Amber/White")},
}

// Run inserts the sample vignettes and products and places every product in
// the first vignette. It does nothing when any active vignette exists.
func Run(ctx context.Context, vignettes VignetteStore, products ProductStore) (*Result, error) {
	existing, err := vignettes.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return &Result{Skipped: true}, nil
	}

	res := &Result{}

	vignetteIDs := make([]int64, 0, len(sampleVignettes))
	for i := range sampleVignettes {
		id, err := vignettes.Create(ctx, &sampleVignettes[i])
		if err != nil {
			return res, fmt.Errorf("seed vignette %q: %w", sampleVignettes[i].Name, err)
		}
		vignetteIDs = append(vignetteIDs, id)
		res.Vignettes++
	}

	for i := range sampleProducts {
		id, err := products.Create(ctx, &sampleProducts[i])
		if err != nil {
			return res, fmt.Errorf("seed product %q: %w", sampleProducts[i].Name, err)
		}
		res.Products++

		if _, err := vignettes.AddProduct(ctx, vignetteIDs[0], id, i+1, nil); err != nil {
			return res, fmt.Errorf("seed link for %q: %w", sampleProducts[i].Name, err)
		}
		res.Links++
	}

	return res, nil
}

func ptr[T any](v T) *T {
	return &v
}
