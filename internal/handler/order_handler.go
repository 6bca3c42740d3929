package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bar-tpv/internal/model"
	"bar-tpv/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order, table and stats HTTP requests.
type OrderHandler struct {
	orders service.OrderManager
	logger zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders service.OrderManager, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger.With().Str("handler", "order").Logger(),
	}
}

// AddItemRequest is the payload for adding one unit of a product.
type AddItemRequest struct {
	ProductID int64 `json:"productId"`
}

// CompleteRequest is the checkout payload.
type CompleteRequest struct {
	PaymentMethod  string  `json:"paymentMethod"`
	AmountTendered float64 `json:"amountTendered"`
}

// GetTables handles GET /api/tables requests.
func (h *OrderHandler) GetTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.orders.Tables(r.Context()))
}

// SelectTable handles POST /api/tables/{id}/select requests. It returns
// the table's in-progress order, creating one when the table is free.
func (h *OrderHandler) SelectTable(w http.ResponseWriter, r *http.Request) {
	tableID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid table ID format", h.logger)
		return
	}

	order, err := h.orders.SelectTable(r.Context(), tableID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// GetHistory handles GET /api/orders requests.
func (h *OrderHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := service.HistoryFilter{
		Status:     q.Get("status"),
		SortBy:     q.Get("sort"),
		Descending: q.Get("dir") != "asc", // the history view defaults to newest first
	}
	writeJSON(w, http.StatusOK, h.orders.History(r.Context(), filter))
}

// GetSelected handles GET /api/orders/selected requests.
func (h *OrderHandler) GetSelected(w http.ResponseWriter, r *http.Request) {
	order, ok := h.orders.SelectedOrder(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "no order selected", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	order, err := h.orders.Order(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// AddItem handles POST /api/orders/{id}/items requests.
func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	order, err := h.orders.AddItem(r.Context(), orderID, req.ProductID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// RemoveItem handles DELETE /api/orders/{id}/items/{productId} requests.
func (h *OrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}
	productID, ok := pathID(r, "productId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid product ID format", h.logger)
		return
	}

	order, err := h.orders.RemoveItem(r.Context(), orderID, productID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Complete handles POST /api/orders/{id}/complete requests.
func (h *OrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	var req CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	order, err := h.orders.CompleteOrder(r.Context(), orderID, model.PaymentMethod(req.PaymentMethod), req.AmountTendered)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Close handles DELETE /api/orders/{id} requests. Confirmation for
// non-empty orders is the client's responsibility.
func (h *OrderHandler) Close(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	if err := h.orders.CloseOrder(r.Context(), orderID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Cancel handles POST /api/orders/{id}/cancel requests.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	order, err := h.orders.CancelOrder(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Resume handles POST /api/orders/{id}/resume requests.
func (h *OrderHandler) Resume(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	order, err := h.orders.ResumeOrder(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Ticket handles GET /api/orders/{id}/ticket requests, returning the
// plain-text receipt.
func (h *OrderHandler) Ticket(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	text, err := h.orders.Ticket(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

// GetStats handles GET /api/stats requests.
func (h *OrderHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.orders.Stats(r.Context()))
}
