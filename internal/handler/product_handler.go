package handler

import (
	"net/http"

	"bar-tpv/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles catalog and product-tracker HTTP requests.
type ProductHandler struct {
	products service.ProductService
	orders   service.OrderManager
	logger   zerolog.Logger
}

// NewProductHandler creates a new product handler. The order manager is
// needed for the recent/pinned trackers it owns.
func NewProductHandler(products service.ProductService, orders service.OrderManager, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		orders:   orders,
		logger:   logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /api/products requests.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.Products(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid product ID format", h.logger)
		return
	}

	product, err := h.products.ProductByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// GetCategories handles GET /api/categories requests.
func (h *ProductHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.products.Categories(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// GetRecent handles GET /api/products/recent requests.
func (h *ProductHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.orders.RecentProducts(r.Context()))
}

// GetPinned handles GET /api/products/pinned requests.
func (h *ProductHandler) GetPinned(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.orders.PinnedProducts(r.Context()))
}

// TogglePin handles POST /api/products/{id}/pin requests.
func (h *ProductHandler) TogglePin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid product ID format", h.logger)
		return
	}

	pinned, err := h.orders.TogglePin(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"pinned": pinned})
}
