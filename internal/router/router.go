package router

import (
	"net/http"

	"bar-tpv/internal/handler"
	"bar-tpv/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Catalog
	mux.HandleFunc("GET /api/products", productHandler.GetAll)
	mux.HandleFunc("GET /api/products/recent", productHandler.GetRecent)
	mux.HandleFunc("GET /api/products/pinned", productHandler.GetPinned)
	mux.HandleFunc("GET /api/products/{id}", productHandler.GetByID)
	mux.HandleFunc("POST /api/products/{id}/pin", productHandler.TogglePin)
	mux.HandleFunc("GET /api/categories", productHandler.GetCategories)

	// Tables
	mux.HandleFunc("GET /api/tables", orderHandler.GetTables)
	mux.HandleFunc("POST /api/tables/{id}/select", orderHandler.SelectTable)

	// Orders
	mux.HandleFunc("GET /api/orders", orderHandler.GetHistory)
	mux.HandleFunc("GET /api/orders/selected", orderHandler.GetSelected)
	mux.HandleFunc("GET /api/orders/{id}", orderHandler.GetByID)
	mux.HandleFunc("DELETE /api/orders/{id}", orderHandler.Close)
	mux.HandleFunc("POST /api/orders/{id}/items", orderHandler.AddItem)
	mux.HandleFunc("DELETE /api/orders/{id}/items/{productId}", orderHandler.RemoveItem)
	mux.HandleFunc("POST /api/orders/{id}/complete", orderHandler.Complete)
	mux.HandleFunc("POST /api/orders/{id}/cancel", orderHandler.Cancel)
	mux.HandleFunc("POST /api/orders/{id}/resume", orderHandler.Resume)
	mux.HandleFunc("GET /api/orders/{id}/ticket", orderHandler.Ticket)

	// Dashboard
	mux.HandleFunc("GET /api/stats", orderHandler.GetStats)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
