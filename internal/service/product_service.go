package service

import (
	"context"

	"bar-tpv/internal/catalog"
	"bar-tpv/internal/model"

	"github.com/rs/zerolog"
)

// productService implements ProductService over the catalog.
type productService struct {
	catalog catalog.Catalog
	logger  zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(cat catalog.Catalog, logger zerolog.Logger) ProductService {
	return &productService{
		catalog: cat,
		logger:  logger.With().Str("service", "product").Logger(),
	}
}

// Products returns all products, optionally filtered by category name.
func (s *productService) Products(ctx context.Context, category string) ([]model.Product, error) {
	products := s.catalog.Products(category)

	s.logger.Debug().
		Str("category", category).
		Int("count", len(products)).
		Msg("retrieved products")

	return products, nil
}

// ProductByID retrieves a single product by ID.
func (s *productService) ProductByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.catalog.ProductByID(id)
	if err != nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, err
	}
	return product, nil
}

// Categories returns all categories.
func (s *productService) Categories(ctx context.Context) ([]model.Category, error) {
	return s.catalog.Categories(), nil
}
