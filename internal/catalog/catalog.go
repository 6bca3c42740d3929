package catalog

import (
	"bar-tpv/internal/model"

	"github.com/rs/zerolog"
)

// Catalog provides read-only access to the product and category
// reference data loaded at startup.
type Catalog interface {
	// Products returns all products, optionally filtered by category name.
	Products(category string) []model.Product

	// ProductByID returns a single product.
	ProductByID(id int64) (*model.Product, error)

	// ProductsByIDs returns products for all given ids. Any missing id
	// fails the whole lookup.
	ProductsByIDs(ids []int64) ([]model.Product, error)

	// Categories returns all categories.
	Categories() []model.Category
}

// memCatalog implements Catalog over in-memory slices and an id index.
type memCatalog struct {
	products   []model.Product
	categories []model.Category
	byID       map[int64]int
	logger     zerolog.Logger
}

// New builds a catalog from seed data. Products with a duplicate id are
// dropped, keeping the first occurrence.
func New(products []model.Product, categories []model.Category, logger zerolog.Logger) Catalog {
	c := &memCatalog{
		categories: categories,
		byID:       make(map[int64]int, len(products)),
		logger:     logger.With().Str("component", "catalog").Logger(),
	}

	for _, p := range products {
		if _, exists := c.byID[p.ID]; exists {
			c.logger.Warn().Int64("product_id", p.ID).Str("name", p.Name).Msg("dropping duplicate product id")
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	c.logger.Info().
		Int("products", len(c.products)).
		Int("categories", len(c.categories)).
		Msg("catalog loaded")

	return c
}

// Products returns all products, optionally filtered by category name.
func (c *memCatalog) Products(category string) []model.Product {
	if category == "" {
		out := make([]model.Product, len(c.products))
		copy(out, c.products)
		return out
	}

	var out []model.Product
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// ProductByID returns a single product.
func (c *memCatalog) ProductByID(id int64) (*model.Product, error) {
	idx, ok := c.byID[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	p := c.products[idx]
	return &p, nil
}

// ProductsByIDs returns products for all given ids.
func (c *memCatalog) ProductsByIDs(ids []int64) ([]model.Product, error) {
	out := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		idx, ok := c.byID[id]
		if !ok {
			return nil, model.ErrProductNotFound
		}
		out = append(out, c.products[idx])
	}
	return out, nil
}

// Categories returns all categories.
func (c *memCatalog) Categories() []model.Category {
	out := make([]model.Category, len(c.categories))
	copy(out, c.categories)
	return out
}
