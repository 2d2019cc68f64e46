// internal/service/vignette/vignette.go
package vignette

import (
	"context"

	"showroom-service/internal/domain/image"
	"showroom-service/internal/domain/product"
	"showroom-service/internal/domain/vignette"
	wsdomain "showroom-service/internal/domain/websocket"

	"go.uber.org/zap"
)

type Repository interface {
	ListActive(ctx context.Context) ([]vignette.Summary, error)
	FindActiveByID(ctx context.Context, id int64) (*vignette.Vignette, error)
	Create(ctx context.Context, req *vignette.VignetteRequest) (int64, error)
	Update(ctx context.Context, id int64, req *vignette.VignetteRequest) (int64, error)
	SoftDelete(ctx context.Context, id int64) (int64, error)
	AddProduct(ctx context.Context, vignetteID, productID int64, position int, notes *string) (int64, error)
	RemoveProduct(ctx context.Context, vignetteID, productID int64) (int64, error)
}

type ProductLister interface {
	ListByVignette(ctx context.Context, vignetteID int64) ([]product.VignetteProduct, error)
}

type ImageLister interface {
	ListByOwner(ctx context.Context, owner image.Owner) ([]image.Image, error)
}

type VignetteService struct {
	repo     Repository
	products ProductLister
	images   ImageLister
	notifier wsdomain.Notifier
	logger   *zap.Logger
}

func NewVignetteService(
	repo Repository,
	products ProductLister,
	images ImageLister,
	notifier wsdomain.Notifier,
	logger *zap.Logger,
) *VignetteService {
	if notifier == nil {
		notifier = wsdomain.NopNotifier{}
	}
	return &VignetteService{
		repo:     repo,
		products: products,
		images:   images,
		notifier: notifier,
		logger:   logger,
	}
}

// ListVignettes returns active vignettes newest first with their counts.
func (s *VignetteService) ListVignettes(ctx context.Context) ([]vignette.Summary, error) {
	return s.repo.ListActive(ctx)
}

// GetVignette composes the vignette row, its products in position order and
// its images primary first.
func (s *VignetteService) GetVignette(ctx context.Context, id int64) (*vignette.Detail, error) {
	v, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	products, err := s.products.ListByVignette(ctx, id)
	if err != nil {
		return nil, err
	}

	images, err := s.images.ListByOwner(ctx, image.VignetteOwner(id))
	if err != nil {
		return nil, err
	}

	return &vignette.Detail{Vignette: v, Products: products, Images: images}, nil
}

func (s *VignetteService) CreateVignette(ctx context.Context, req *vignette.VignetteRequest) (int64, error) {
	id, err := s.repo.Create(ctx, req)
	if err != nil {
		s.logger.Error("failed to create vignette", zap.Error(err))
		return 0, err
	}

	s.logger.Info("vignette created", zap.Int64("vignette_id", id), zap.String("name", req.Name))
	s.notifier.Publish(wsdomain.CatalogChange{Entity: wsdomain.EntityVignette, ID: id, Action: wsdomain.ActionCreated})

	return id, nil
}

// UpdateVignette returns the affected row count; zero is not an error.
func (s *VignetteService) UpdateVignette(ctx context.Context, id int64, req *vignette.VignetteRequest) (int64, error) {
	changes, err := s.repo.Update(ctx, id, req)
	if err != nil {
		s.logger.Error("failed to update vignette", zap.Int64("vignette_id", id), zap.Error(err))
		return 0, err
	}

	if changes > 0 {
		s.logger.Info("vignette updated", zap.Int64("vignette_id", id))
		s.notifier.Publish(wsdomain.CatalogChange{Entity: wsdomain.EntityVignette, ID: id, Action: wsdomain.ActionUpdated})
	}

	return changes, nil
}

// DeleteVignette soft deletes; links and images stay in place.
func (s *VignetteService) DeleteVignette(ctx context.Context, id int64) (int64, error) {
	changes, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete vignette", zap.Int64("vignette_id", id), zap.Error(err))
		return 0, err
	}

	if changes > 0 {
		s.logger.Info("vignette deleted", zap.Int64("vignette_id", id))
		s.notifier.Publish(wsdomain.CatalogChange{Entity: wsdomain.EntityVignette, ID: id, Action: wsdomain.ActionDeleted})
	}

	return changes, nil
}

// AddProduct places a product in a vignette. Position defaults to 0.
func (s *VignetteService) AddProduct(ctx context.Context, vignetteID, productID int64, req *vignette.LinkProductRequest) (int64, error) {
	position := 0
	var notes *string
	if req != nil {
		if req.Position != nil {
			position = *req.Position
		}
		notes = req.Notes
	}

	id, err := s.repo.AddProduct(ctx, vignetteID, productID, position, notes)
	if err != nil {
		s.logger.Error("failed to add product to vignette",
			zap.Int64("vignette_id", vignetteID),
			zap.Int64("product_id", productID),
			zap.Error(err),
		)
		return 0, err
	}

	s.logger.Info("product added to vignette",
		zap.Int64("vignette_id", vignetteID),
		zap.Int64("product_id", productID),
		zap.Int("position", position),
	)
	s.notifier.Publish(wsdomain.CatalogChange{
		Entity:     wsdomain.EntityVignetteProduct,
		ID:         productID,
		Action:     wsdomain.ActionCreated,
		VignetteID: vignetteID,
	})

	return id, nil
}

func (s *VignetteService) RemoveProduct(ctx context.Context, vignetteID, productID int64) (int64, error) {
	changes, err := s.repo.RemoveProduct(ctx, vignetteID, productID)
	if err != nil {
		s.logger.Error("failed to remove product from vignette",
			zap.Int64("vignette_id", vignetteID),
			zap.Int64("product_id", productID),
			zap.Error(err),
		)
		return 0, err
	}

	if changes > 0 {
		s.logger.Info("product removed from vignette",
			zap.Int64("vignette_id", vignetteID),
			zap.Int64("product_id", productID),
		)
		s.notifier.Publish(wsdomain.CatalogChange{
			Entity:     wsdomain.EntityVignetteProduct,
			ID:         productID,
			Action:     wsdomain.ActionDeleted,
			VignetteID: vignetteID,
		})
	}

	return changes, nil
}
