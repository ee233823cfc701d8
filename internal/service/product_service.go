package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Nishantvidhuri/storebackend/internal/models"
	"github.com/Nishantvidhuri/storebackend/internal/util"

	"go.uber.org/zap"
)

const productCacheTTL = 5 * time.Minute

// ProductStore is the persistence surface the catalog needs
type ProductStore interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

// ProductCache is the read cache in front of single-product lookups
type ProductCache interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	SetProduct(ctx context.Context, p *models.Product, ttl time.Duration) error
	InvalidateProduct(ctx context.Context, id int64) error
}

// ProductService serves the catalog, cache-aside over Redis for reads
type ProductService struct {
	store  ProductStore
	cache  ProductCache
	logger *zap.Logger
}

// NewProductService creates a new catalog service
func NewProductService(store ProductStore, cache ProductCache) *ProductService {
	return &ProductService{store: store, cache: cache, logger: util.GetLogger()}
}

// ListProducts retrieves the whole catalog
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.store.GetProducts(ctx)
}

// GetProduct retrieves one product, serving from cache when possible.
// Cache failures fall through to the database.
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if s.cache != nil {
		cached, err := s.cache.GetProduct(ctx, id)
		if err != nil {
			s.logger.Warn("Product cache read failed", zap.Int64("product_id", id), zap.Error(err))
		} else if cached != nil {
			util.ProductCacheHits.Inc()
			return cached, nil
		}
		util.ProductCacheMisses.Inc()
	}

	product, err := s.store.GetProductByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetProduct(ctx, product, productCacheTTL); err != nil {
			s.logger.Warn("Product cache write failed", zap.Int64("product_id", id), zap.Error(err))
		}
	}
	return product, nil
}

// CreateProductRequest is the admin catalog-create body
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required"`
	Image       string `json:"image" binding:"required"`
	Stock       int    `json:"stock"`
}

// CreateProduct inserts a catalog entry
func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Stock:       req.Stock,
	}
	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// UpdateProductRequest is the admin catalog-update body; nil means keep
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	Image       *string `json:"image"`
	Stock       *int    `json:"stock"`
}

// UpdateProduct patches a catalog entry and drops it from the cache
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, req *UpdateProductRequest) (*models.Product, error) {
	product, err := s.store.GetProductByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	err = s.store.UpdateProduct(ctx, product)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.invalidate(ctx, id)
	return product, nil
}

// DeleteProduct removes a catalog entry. Existing order items keep their
// snapshot; cart lines pointing here disappear from the cart read view.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	err := s.store.DeleteProduct(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateProduct(ctx, id); err != nil {
		s.logger.Warn("Product cache invalidation failed", zap.Int64("product_id", id), zap.Error(err))
	}
}
