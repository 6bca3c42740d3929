package service

import (
	"context"

	"bar-tpv/internal/model"
)

// HistoryFilter selects and sorts the order history view.
type HistoryFilter struct {
	// Status narrows to one lifecycle status. Empty or "all" keeps everything.
	Status string
	// SortBy is one of "date", "total", "status", "id". Defaults to "date".
	SortBy string
	// Descending orders newest/highest first. The UI default is date descending.
	Descending bool
}

// Stats are the dashboard aggregates derived from the order history.
type Stats struct {
	TotalSales        float64        `json:"totalSales"`
	TotalOrders       int            `json:"totalOrders"`
	AverageOrderValue float64        `json:"averageOrderValue"`
	OrdersByStatus    map[string]int `json:"ordersByStatus"`
}

// ProductService defines read operations over the catalog.
type ProductService interface {
	// Products returns all products, optionally filtered by category name.
	Products(ctx context.Context, category string) ([]model.Product, error)

	// ProductByID retrieves a single product by ID.
	ProductByID(ctx context.Context, id int64) (*model.Product, error)

	// Categories returns all categories.
	Categories(ctx context.Context) ([]model.Category, error)
}

// OrderManager owns every order, table and tracker mutation. It is the
// only component with write access to order line items and lifecycle
// status; callers never hand-maintain totals.
type OrderManager interface {
	// SelectTable selects the in-progress order on the table, creating a
	// fresh empty order when the table is free. Table 0 is the counter.
	SelectTable(ctx context.Context, tableID int) (*model.Order, error)

	// AddItem adds one unit of the product to an in-progress order.
	AddItem(ctx context.Context, orderID, productID int64) (*model.Order, error)

	// RemoveItem removes one unit of the product from an in-progress
	// order. Removing the last unit removes the whole line. Removing a
	// product the order has no line for is a precondition violation.
	RemoveItem(ctx context.Context, orderID, productID int64) (*model.Order, error)

	// CompleteOrder checks out an in-progress or unpaid order. Cash
	// computes change from the tendered amount; pay-later leaves the
	// order unpaid. The order's table becomes available immediately.
	CompleteOrder(ctx context.Context, orderID int64, method model.PaymentMethod, tendered float64) (*model.Order, error)

	// CloseOrder removes an in-progress order outright. When the order
	// has line items the caller must have obtained confirmation; the
	// manager itself never prompts.
	CloseOrder(ctx context.Context, orderID int64) error

	// CancelOrder cancels an in-progress or unpaid order. Terminal.
	CancelOrder(ctx context.Context, orderID int64) (*model.Order, error)

	// ResumeOrder reopens an unpaid order (or re-selects an in-progress
	// one) for continued editing.
	ResumeOrder(ctx context.Context, orderID int64) (*model.Order, error)

	// Order retrieves one order by id.
	Order(ctx context.Context, orderID int64) (*model.Order, error)

	// SelectedOrder returns the currently selected order, if any.
	SelectedOrder(ctx context.Context) (*model.Order, bool)

	// History returns the filtered, sorted order history. In-progress
	// orders appear in it alongside completed ones.
	History(ctx context.Context, filter HistoryFilter) []model.Order

	// Tables returns all tables with derived availability.
	Tables(ctx context.Context) []model.Table

	// Ticket renders the receipt text for an order.
	Ticket(ctx context.Context, orderID int64) (string, error)

	// RecentProducts returns the most-recently-added products, newest
	// first, capped at eight.
	RecentProducts(ctx context.Context) []model.Product

	// TogglePin toggles a product in the pinned set and reports the new
	// pinned state.
	TogglePin(ctx context.Context, productID int64) (bool, error)

	// PinnedProducts returns the pinned products.
	PinnedProducts(ctx context.Context) []model.Product

	// Stats returns dashboard aggregates over the order history.
	Stats(ctx context.Context) Stats
}
