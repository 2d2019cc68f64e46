// internal/service/category/category.go
package category

import (
	"context"

	"showroom-service/internal/domain/category"
)

// Repository reads categories from storage.
type Repository interface {
	ListActive(ctx context.Context) ([]category.Category, error)
}

type CategoryService struct {
	repo Repository
}

func NewCategoryService(repo Repository) *CategoryService {
	return &CategoryService{repo: repo}
}

// Tree returns active main categories with their subcategories attached.
func (s *CategoryService) Tree(ctx context.Context) ([]category.MainCategory, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return category.BuildTree(rows), nil
}

// Flat returns every active category ordered by display_order, name.
func (s *CategoryService) Flat(ctx context.Context) ([]category.Category, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	category.SortByDisplayOrder(rows)
	return rows, nil
}
