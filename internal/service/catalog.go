package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/shop_schema/internal/models"
	"github.com/Skotchmaster/shop_schema/internal/transport"
	"github.com/Skotchmaster/shop_schema/pkg/logging"
)

func (s *ShopService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	cat := &models.Category{Name: req.Name}
	if err := s.Repo.CreateCategory(ctx, cat); err != nil {
		return nil, mapRepoError(err)
	}
	return cat, nil
}

func (s *ShopService) ListCategories(ctx context.Context) ([]models.Category, error) {
	cats, err := s.Repo.ListCategories(ctx)
	return cats, mapRepoError(err)
}

func (s *ShopService) DeleteCategory(ctx context.Context, id uint) error {
	return mapRepoError(s.Repo.DeleteCategory(ctx, id))
}

func (s *ShopService) CategoryProducts(ctx context.Context, categoryID uint, offset, limit int) (int64, []models.Product, error) {
	if _, err := s.Repo.GetCategory(ctx, categoryID); err != nil {
		return 0, nil, mapRepoError(err)
	}
	total, items, err := s.Repo.GetProductsByCategory(ctx, categoryID, offset, limit)
	return total, items, mapRepoError(err)
}

func (s *ShopService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	return p, mapRepoError(err)
}

func (s *ShopService) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	total, items, err := s.Repo.GetProducts(ctx, offset, limit)
	return total, items, mapRepoError(err)
}

func (s *ShopService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if _, err := s.Repo.GetCategory(ctx, req.CategoryID); err != nil {
		return nil, mapRepoError(err)
	}

	prod := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price.Round(2),
		Quantity:    req.Quantity,
		CategoryID:  req.CategoryID,
	}
	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		return nil, mapRepoError(err)
	}

	s.reindex(ctx, prod)
	s.publish(ctx, TopicProduct, prod.ID, "product_created", map[string]any{"productID": prod.ID, "name": prod.Name})
	return prod, nil
}

func (s *ShopService) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error) {
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
		}
		rounded := req.Price.Round(2)
		req.Price = &rounded
	}
	if req.CategoryID != nil {
		if _, err := s.Repo.GetCategory(ctx, *req.CategoryID); err != nil {
			return nil, mapRepoError(err)
		}
	}

	prod, err := s.Repo.PatchProduct(ctx, req, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.reindex(ctx, prod)
	s.publish(ctx, TopicProduct, prod.ID, "product_updated", map[string]any{"productID": prod.ID, "name": prod.Name})
	return prod, nil
}

func (s *ShopService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return mapRepoError(err)
	}

	s.unindex(ctx, id)
	s.publish(ctx, TopicProduct, id, "product_deleted", map[string]any{"productID": id})
	return nil
}

// SearchProducts asks the search index when one is configured and falls back
// to a substring match in the store otherwise, or when the index fails.
func (s *ShopService) SearchProducts(ctx context.Context, query string, offset, limit int) (int64, []models.Product, error) {
	if s.Search != nil {
		total, ids, err := s.Search.Search(ctx, query, offset, limit)
		if err == nil {
			items, err := s.Repo.GetProductsByIDs(ctx, ids)
			return total, items, mapRepoError(err)
		}
		logging.FromContext(ctx).Warn("search_index_failed", "error", err)
	}

	total, items, err := s.Repo.SearchProducts(ctx, query, offset, limit)
	return total, items, mapRepoError(err)
}
