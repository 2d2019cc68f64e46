// internal/service/product/product.go
package product

import (
	"context"
	"errors"

	"showroom-service/internal/domain/image"
	"showroom-service/internal/domain/product"
	wsdomain "showroom-service/internal/domain/websocket"
	xerrors "showroom-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filters *product.ListFilters) ([]product.Product, error)
	FindActiveByID(ctx context.Context, id int64) (*product.Product, error)
	Create(ctx context.Context, f *product.Fields) (int64, error)
	Update(ctx context.Context, id int64, f *product.Fields) (int64, error)
	SoftDelete(ctx context.Context, id int64) (int64, error)
}

// CategoryLookup resolves a category id to its name.
type CategoryLookup interface {
	FindNameByID(ctx context.Context, id int64) (string, error)
}

type ImageLister interface {
	ListByOwner(ctx context.Context, owner image.Owner) ([]image.Image, error)
}

type ProductService struct {
	repo       Repository
	categories CategoryLookup
	images     ImageLister
	notifier   wsdomain.Notifier
	logger     *zap.Logger

	// syncLegacy copies the category name into the legacy text column on
	// every write that sets category_id.
	syncLegacy bool
}

func NewProductService(
	repo Repository,
	categories CategoryLookup,
	images ImageLister,
	notifier wsdomain.Notifier,
	syncLegacy bool,
	logger *zap.Logger,
) *ProductService {
	if notifier == nil {
		notifier = wsdomain.NopNotifier{}
	}
	return &ProductService{
		repo:       repo,
		categories: categories,
		images:     images,
		notifier:   notifier,
		syncLegacy: syncLegacy,
		logger:     logger,
	}
}

// ListProducts returns active products ordered by name.
func (s *ProductService) ListProducts(ctx context.Context, filters *product.ListFilters) ([]product.Product, error) {
	return s.repo.List(ctx, filters)
}

// GetProduct returns an active product and its images, primary first.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*product.Product, []image.Image, error) {
	p, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	images, err := s.images.ListByOwner(ctx, image.ProductOwner(id))
	if err != nil {
		return nil, nil, err
	}

	return p, images, nil
}

// CreateProduct inserts a product and returns its id.
func (s *ProductService) CreateProduct(ctx context.Context, req *product.ProductRequest) (int64, error) {
	fields, err := s.fields(ctx, req)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, fields)
	if err != nil {
		s.logger.Error("failed to create product", zap.Error(err))
		return 0, err
	}

	s.logger.Info("product created", zap.Int64("product_id", id), zap.String("name", req.Name))
	s.notifier.Publish(wsdomain.CatalogChange{Entity: wsdomain.EntityProduct, ID: id, Action: wsdomain.ActionCreated})

	return id, nil
}

// UpdateProduct replaces a product's fields and returns the affected row
// count. A count of zero means no row had that id.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, req *product.ProductRequest) (int64, error) {
	fields, err := s.fields(ctx, req)
	if err != nil {
		return 0, err
	}

	changes, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		s.logger.Error("failed to update product", zap.Int64("product_id", id), zap.Error(err))
		return 0, err
	}

	if changes > 0 {
		s.logger.Info("product updated", zap.Int64("product_id", id))
		s.notifier.Publish(wsdomain.CatalogChange{Entity: wsdomain.EntityProduct, ID: id, Action: wsdomain.ActionUpdated})
	}

	return changes, nil
}

// DeleteProduct soft deletes a product and returns the affected row count.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	changes, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete product", zap.Int64("product_id", id), zap.Error(err))
		return 0, err
	}

	if changes > 0 {
		s.logger.Info("product deleted", zap.Int64("product_id", id))
		s.notifier.Publish(wsdomain.CatalogChange{Entity: wsdomain.EntityProduct, ID: id, Action: wsdomain.ActionDeleted})
	}

	return changes, nil
}

func (s *ProductService) fields(ctx context.Context, req *product.ProductRequest) (*product.Fields, error) {
	fields := req.ToFields()
	if !s.syncLegacy {
		return fields, nil
	}

	fields.SyncLegacy = true
	if req.CategoryID == nil {
		return fields, nil
	}

	// Separate round trip; the category may change before the write lands.
	name, err := s.categories.FindNameByID(ctx, *req.CategoryID)
	if errors.Is(err, xerrors.ErrNotFound) {
		return fields, nil
	}
	if err != nil {
		return nil, err
	}

	fields.LegacyName = &name
	return fields, nil
}
