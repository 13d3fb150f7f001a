package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

// ProductIndex mirrors the catalog into a full-text index.
type ProductIndex interface {
	IndexProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	SearchIDs(ctx context.Context, query string, from, size int) (int64, []uuid.UUID, error)
}

type CatalogService struct {
	Repo   *repo.GormRepo
	Index  ProductIndex
	Events EventPublisher
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fail(ErrNotFound, "product not found")
	}
	return p, err
}

func (s *CatalogService) ListProducts(ctx context.Context, f repo.ProductFilter, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.ListProducts(ctx, f, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	p := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Size:        strings.TrimSpace(req.Size),
		Price:       req.Price,
		Image:       strings.TrimSpace(req.Image),
		Stock:       req.Stock,
		Popular:     req.Popular,
		Features:    req.Features,
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, "product_created", p)
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req transport.PatchProductRequest) (*models.Product, error) {
	p, err := s.Repo.UpdateProduct(ctx, id, func(p *models.Product) ([]string, error) {
		var cols []string
		if req.Name != nil {
			p.Name = strings.TrimSpace(*req.Name)
			cols = append(cols, "name")
		}
		if req.Description != nil {
			p.Description = strings.TrimSpace(*req.Description)
			cols = append(cols, "description")
		}
		if req.Size != nil {
			p.Size = strings.TrimSpace(*req.Size)
			cols = append(cols, "size")
		}
		if req.Price != nil {
			p.Price = *req.Price
			cols = append(cols, "price")
		}
		if req.Image != nil {
			p.Image = strings.TrimSpace(*req.Image)
			cols = append(cols, "image")
		}
		if req.Stock != nil {
			p.Stock = *req.Stock
			cols = append(cols, "stock")
		}
		if req.Popular != nil {
			p.Popular = *req.Popular
			cols = append(cols, "popular")
		}
		if req.Features != nil {
			p.Features = *req.Features
			cols = append(cols, "features")
		}
		return cols, validateProduct(p)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fail(ErrNotFound, "product not found")
		}
		return nil, err
	}

	s.afterWrite(ctx, "product_updated", p)
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(ErrNotFound, "product not found")
		}
		return err
	}

	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_index_delete_failed", "product_id", id, "error", err)
		}
	}
	publish(ctx, s.Events, TopicProducts, id.String(), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	return nil
}

// CustomProduct returns the product for a bespoke size, creating it on first request.
func (s *CatalogService) CustomProduct(ctx context.Context, req transport.CustomProductRequest) (*models.Product, bool, error) {
	p := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Size:        strings.TrimSpace(req.Size),
		Price:       req.Price,
		Description: strings.TrimSpace(req.Description),
		Image:       strings.TrimSpace(req.Image),
	}
	if p.Description == "" {
		p.Description = "Custom size " + p.Size
	}
	if p.Size == "" {
		return nil, false, fail(ErrValidation, "size is required")
	}
	if err := validateProduct(p); err != nil {
		return nil, false, err
	}

	out, created, err := s.Repo.FindOrCreateCustom(ctx, p)
	if err != nil {
		return nil, false, err
	}
	if created {
		s.afterWrite(ctx, "product_created", out)
	}
	return out, created, nil
}

// Search ranks with the index when one is configured and reads the products
// back from the database so stock and price are current.
func (s *CatalogService) Search(ctx context.Context, query string, offset, limit int) (int64, []models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, nil, fail(ErrValidation, "query is required")
	}

	if s.Index == nil {
		return s.Repo.SearchProducts(ctx, query, offset, limit)
	}

	total, ids, err := s.Index.SearchIDs(ctx, query, offset, limit)
	if err != nil {
		logging.FromContext(ctx).Warn("search_index_query_failed", "error", err)
		return s.Repo.SearchProducts(ctx, query, offset, limit)
	}
	items, err := s.Repo.ProductsByIDs(ctx, ids)
	if err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (s *CatalogService) afterWrite(ctx context.Context, eventType string, p *models.Product) {
	if s.Index != nil {
		if err := s.Index.IndexProduct(ctx, p); err != nil {
			logging.FromContext(ctx).Warn("search_index_write_failed", "product_id", p.ID, "error", err)
		}
	}
	publish(ctx, s.Events, TopicProducts, p.ID.String(), map[string]any{
		"type":      eventType,
		"productID": p.ID,
		"name":      p.Name,
		"price":     p.Price.String(),
		"stock":     p.Stock,
	})
}

func validateProduct(p *models.Product) error {
	switch {
	case p.Name == "":
		return fail(ErrValidation, "name is required")
	case p.Price.IsNegative():
		return fail(ErrValidation, "price must be >= 0")
	case p.Stock < 0:
		return fail(ErrValidation, "stock must be >= 0")
	}
	return nil
}
