package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bar-tpv/internal/catalog"
	"bar-tpv/internal/handler"
	"bar-tpv/internal/model"
	"bar-tpv/internal/router"
	"bar-tpv/internal/service"
	"bar-tpv/internal/ticket"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "integration-test-key"

// newTestServer wires the full stack the way cmd/api does, minus the
// real listener.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := zerolog.Nop()

	products := []model.Product{
		{ID: 1, Name: "Caña", Price: 2.50, Category: "Cervezas"},
		{ID: 2, Name: "Pincho de chorizo", Price: 2.20, Category: "Pinchos"},
	}
	categories := []model.Category{
		{ID: 1, Name: "Cervezas"},
		{ID: 2, Name: "Pinchos"},
	}
	cat := catalog.New(products, categories, logger)

	renderer := &ticket.Renderer{Venue: "Bar El Haido", Dir: "tickets"}
	printer := ticket.NewMockPrinter(renderer, ticket.Options{Type: "EPSON"}, logger)

	manager := service.NewOrderManager(cat, printer, renderer, 4, logger)
	productService := service.NewProductService(cat, logger)

	productHandler := handler.NewProductHandler(productService, manager, logger)
	orderHandler := handler.NewOrderHandler(manager, logger)

	srv := httptest.NewServer(router.New(productHandler, orderHandler, testAPIKey, logger))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("X-API-Key", testAPIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, data
}

func decodeOrder(t *testing.T, data []byte) model.Order {
	t.Helper()
	var o model.Order
	require.NoError(t, json.Unmarshal(data, &o))
	return o
}

func TestAPI_RequiresKey(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/api/products")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = srv.Client().Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_FullOrderLifecycle(t *testing.T) {
	srv := newTestServer(t)

	// Open an order on table 2.
	resp, data := do(t, srv, http.MethodPost, "/api/tables/2/select", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	order := decodeOrder(t, data)
	assert.Equal(t, model.StatusInProgress, order.Status)
	assert.Equal(t, 2, order.TableID)

	// Table 2 is now occupied.
	resp, data = do(t, srv, http.MethodGet, "/api/tables", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tables []model.Table
	require.NoError(t, json.Unmarshal(data, &tables))
	for _, tbl := range tables {
		assert.Equal(t, tbl.ID != 2, tbl.Available, "table %d", tbl.ID)
	}

	// Two cañas and a pincho: total 7.20.
	itemsPath := fmt.Sprintf("/api/orders/%d/items", order.ID)
	for _, productID := range []int64{1, 1, 2} {
		resp, data = do(t, srv, http.MethodPost, itemsPath, handler.AddItemRequest{ProductID: productID})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	order = decodeOrder(t, data)
	assert.InDelta(t, 7.20, order.Total, 1e-9)
	assert.Equal(t, 3, order.ItemCount)
	assert.Len(t, order.Items, 2)

	// The caña is the most recent product.
	resp, data = do(t, srv, http.MethodGet, "/api/products/recent", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var recent []model.Product
	require.NoError(t, json.Unmarshal(data, &recent))
	require.NotEmpty(t, recent)
	assert.Equal(t, int64(2), recent[0].ID)

	// Pay cash with a ten.
	resp, data = do(t, srv, http.MethodPost, fmt.Sprintf("/api/orders/%d/complete", order.ID),
		handler.CompleteRequest{PaymentMethod: "efectivo", AmountTendered: 10.00})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	paid := decodeOrder(t, data)
	assert.Equal(t, model.StatusPaid, paid.Status)
	assert.InDelta(t, 2.80, paid.Change, 1e-9)
	assert.NotEmpty(t, paid.TicketPath)

	// Table freed, ticket renders, stats reflect the sale.
	resp, data = do(t, srv, http.MethodGet, "/api/tables", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &tables))
	for _, tbl := range tables {
		assert.True(t, tbl.Available)
	}

	resp, data = do(t, srv, http.MethodGet, fmt.Sprintf("/api/orders/%d/ticket", order.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "Caña x2 - 5.00€")
	assert.Contains(t, string(data), "Cambio: 2.80€")

	resp, data = do(t, srv, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats service.Stats
	require.NoError(t, json.Unmarshal(data, &stats))
	assert.Equal(t, 1, stats.TotalOrders)
	assert.InDelta(t, 7.20, stats.TotalSales, 1e-9)

	// Completing again is an invalid transition.
	resp, _ = do(t, srv, http.MethodPost, fmt.Sprintf("/api/orders/%d/complete", order.ID),
		handler.CompleteRequest{PaymentMethod: "tarjeta"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_PayLaterThenResume(t *testing.T) {
	srv := newTestServer(t)

	resp, data := do(t, srv, http.MethodPost, "/api/tables/1/select", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	order := decodeOrder(t, data)

	resp, _ = do(t, srv, http.MethodPost, fmt.Sprintf("/api/orders/%d/items", order.ID),
		handler.AddItemRequest{ProductID: 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, data = do(t, srv, http.MethodPost, fmt.Sprintf("/api/orders/%d/complete", order.ID),
		handler.CompleteRequest{PaymentMethod: "pendiente"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.StatusUnpaid, decodeOrder(t, data).Status)

	// Unpaid orders show up in the history filter.
	resp, data = do(t, srv, http.MethodGet, "/api/orders?status=unpaid", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var history []model.Order
	require.NoError(t, json.Unmarshal(data, &history))
	require.Len(t, history, 1)

	// Resume and settle by card.
	resp, data = do(t, srv, http.MethodPost, fmt.Sprintf("/api/orders/%d/resume", order.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.StatusInProgress, decodeOrder(t, data).Status)

	resp, data = do(t, srv, http.MethodPost, fmt.Sprintf("/api/orders/%d/complete", order.ID),
		handler.CompleteRequest{PaymentMethod: "tarjeta"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.StatusPaid, decodeOrder(t, data).Status)
}

func TestAPI_CloseEmptyOrder(t *testing.T) {
	srv := newTestServer(t)

	resp, data := do(t, srv, http.MethodPost, "/api/tables/3/select", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	order := decodeOrder(t, data)

	resp, _ = do(t, srv, http.MethodDelete, fmt.Sprintf("/api/orders/%d", order.ID), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_CatalogEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, data := do(t, srv, http.MethodGet, "/api/products?category=Pinchos", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var products []model.Product
	require.NoError(t, json.Unmarshal(data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Pincho de chorizo", products[0].Name)

	resp, _ = do(t, srv, http.MethodGet, "/api/products/99", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, data = do(t, srv, http.MethodPost, "/api/products/1/pin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"pinned":true`)

	resp, data = do(t, srv, http.MethodGet, "/api/products/pinned", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, int64(1), products[0].ID)
}
