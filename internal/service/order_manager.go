package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"bar-tpv/internal/catalog"
	"bar-tpv/internal/model"
	"bar-tpv/internal/ticket"

	"github.com/rs/zerolog"
)

// recentCap bounds the most-recently-used product list.
const recentCap = 8

// orderManager implements OrderManager. One mutex serializes every
// mutation so concurrent API clients get the same atomicity a
// single-threaded till has.
type orderManager struct {
	mu       sync.Mutex
	catalog  catalog.Catalog
	printer  ticket.Printer
	renderer *ticket.Renderer
	logger   zerolog.Logger

	orders   map[int64]*model.Order
	orderIDs []int64 // insertion order, for stable history output
	tables   []model.Table
	recent   *recentList
	pinned   map[int64]struct{}
	selected int64 // 0 = none
	lastID   int64
}

// NewOrderManager creates the order manager. tableCount is the number of
// numbered tables; table 0 (the counter) always exists on top of that.
func NewOrderManager(
	cat catalog.Catalog,
	printer ticket.Printer,
	renderer *ticket.Renderer,
	tableCount int,
	logger zerolog.Logger,
) OrderManager {
	tables := make([]model.Table, 0, tableCount+1)
	tables = append(tables, model.Table{ID: model.CounterTableID, Name: "Barra"})
	for i := 1; i <= tableCount; i++ {
		tables = append(tables, model.Table{ID: i, Name: fmt.Sprintf("Mesa %d", i)})
	}

	return &orderManager{
		catalog:  cat,
		printer:  printer,
		renderer: renderer,
		logger:   logger.With().Str("service", "orders").Logger(),
		orders:   make(map[int64]*model.Order),
		tables:   tables,
		recent:   newRecentList(recentCap),
		pinned:   make(map[int64]struct{}),
	}
}

// SelectTable selects the in-progress order on the table, creating a
// fresh one when the table is free.
func (m *orderManager) SelectTable(ctx context.Context, tableID int) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tableID < 0 || tableID >= len(m.tables) {
		m.logger.Warn().Int("table_id", tableID).Msg("unknown table selected")
		return nil, model.ErrInvalidTable
	}

	if existing := m.activeOrderOn(tableID); existing != nil {
		m.selected = existing.ID
		return cloneOrder(existing), nil
	}

	order := &model.Order{
		ID:      m.nextID(),
		Date:    time.Now(),
		TableID: tableID,
		Status:  model.StatusInProgress,
	}
	m.orders[order.ID] = order
	m.orderIDs = append(m.orderIDs, order.ID)
	m.selected = order.ID

	m.logger.Info().
		Int64("order_id", order.ID).
		Int("table_id", tableID).
		Msg("order opened")

	return cloneOrder(order), nil
}

// AddItem adds one unit of the product to an in-progress order.
func (m *orderManager) AddItem(ctx context.Context, orderID, productID int64) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderID]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	if order.Status != model.StatusInProgress {
		m.logger.Warn().
			Int64("order_id", orderID).
			Str("status", string(order.Status)).
			Msg("add item rejected: order not in progress")
		return nil, model.ErrInvalidState
	}

	product, err := m.catalog.ProductByID(productID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range order.Items {
		if order.Items[i].ProductID == productID {
			order.Items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		order.Items = append(order.Items, model.LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  1,
		})
	}
	recompute(order)
	m.recent.push(*product)

	m.logger.Debug().
		Int64("order_id", orderID).
		Int64("product_id", productID).
		Float64("total", order.Total).
		Int("item_count", order.ItemCount).
		Msg("item added")

	return cloneOrder(order), nil
}

// RemoveItem removes one unit of the product from an in-progress order.
// A missing line item is a precondition violation, not a silent no-op:
// silently absorbing it would let callers lose track of totals.
func (m *orderManager) RemoveItem(ctx context.Context, orderID, productID int64) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderID]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	if order.Status != model.StatusInProgress {
		return nil, model.ErrInvalidState
	}

	idx := -1
	for i := range order.Items {
		if order.Items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.logger.Warn().
			Int64("order_id", orderID).
			Int64("product_id", productID).
			Msg("remove item rejected: no such line item")
		return nil, model.ErrLineItemNotFound
	}

	if order.Items[idx].Quantity > 1 {
		order.Items[idx].Quantity--
	} else {
		order.Items = append(order.Items[:idx], order.Items[idx+1:]...)
	}
	recompute(order)

	m.logger.Debug().
		Int64("order_id", orderID).
		Int64("product_id", productID).
		Float64("total", order.Total).
		Msg("item removed")

	return cloneOrder(order), nil
}

// CompleteOrder checks out an in-progress or unpaid order.
func (m *orderManager) CompleteOrder(ctx context.Context, orderID int64, method model.PaymentMethod, tendered float64) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderID]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	if order.Status != model.StatusInProgress && order.Status != model.StatusUnpaid {
		m.logger.Warn().
			Int64("order_id", orderID).
			Str("status", string(order.Status)).
			Msg("complete rejected: terminal order")
		return nil, model.ErrInvalidState
	}
	if !method.Valid() {
		return nil, model.ErrInvalidPaymentMethod
	}

	order.PaymentMethod = method
	switch method {
	case model.PaymentCash:
		order.TotalPaid = round2(tendered)
		order.Change = round2(math.Max(0, tendered-order.Total))
		order.Status = model.StatusPaid
	case model.PaymentCard:
		order.TotalPaid = order.Total
		order.Change = 0
		order.Status = model.StatusPaid
	case model.PaymentDeferred:
		order.TotalPaid = 0
		order.Change = 0
		order.Status = model.StatusUnpaid
	}
	order.TicketPath = m.renderer.NewReference(order)

	if m.selected == orderID {
		m.selected = 0
	}

	// The printer is an external collaborator; the transition above
	// already happened, so a print failure only gets logged.
	if _, err := m.printer.Print(ctx, order); err != nil {
		m.logger.Error().Err(err).Int64("order_id", orderID).Msg("ticket print failed")
	}

	m.logger.Info().
		Int64("order_id", orderID).
		Str("status", string(order.Status)).
		Str("payment_method", string(method)).
		Float64("total", order.Total).
		Float64("change", order.Change).
		Msg("order completed")

	return cloneOrder(order), nil
}

// CloseOrder removes an in-progress order outright. Confirmation for
// non-empty orders is the caller's contract; the manager never prompts.
func (m *orderManager) CloseOrder(ctx context.Context, orderID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderID]
	if !ok {
		return model.ErrOrderNotFound
	}
	if order.Status != model.StatusInProgress {
		return model.ErrInvalidState
	}

	delete(m.orders, orderID)
	for i, id := range m.orderIDs {
		if id == orderID {
			m.orderIDs = append(m.orderIDs[:i], m.orderIDs[i+1:]...)
			break
		}
	}

	if m.selected == orderID {
		m.selected = 0
		for _, id := range m.orderIDs {
			if m.orders[id].Status == model.StatusInProgress {
				m.selected = id
				break
			}
		}
	}

	m.logger.Info().
		Int64("order_id", orderID).
		Int("items", len(order.Items)).
		Msg("order closed")

	return nil
}

// CancelOrder cancels an in-progress or unpaid order.
func (m *orderManager) CancelOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderID]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	if order.Terminal() {
		return nil, model.ErrInvalidState
	}

	order.Status = model.StatusCanceled
	if m.selected == orderID {
		m.selected = 0
	}

	m.logger.Info().Int64("order_id", orderID).Msg("order canceled")
	return cloneOrder(order), nil
}

// ResumeOrder reopens an unpaid order for continued editing.
func (m *orderManager) ResumeOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderID]
	if !ok {
		return nil, model.ErrOrderNotFound
	}

	switch order.Status {
	case model.StatusInProgress:
		// Already editable, just re-select it.
	case model.StatusUnpaid:
		// The table may have been taken by a newer order in the meantime.
		if other := m.activeOrderOn(order.TableID); other != nil {
			m.logger.Warn().
				Int64("order_id", orderID).
				Int64("blocking_order_id", other.ID).
				Int("table_id", order.TableID).
				Msg("resume rejected: table occupied")
			return nil, model.ErrInvalidState
		}
		order.Status = model.StatusInProgress
		order.TicketPath = ""
		order.PaymentMethod = ""
	default:
		return nil, model.ErrInvalidState
	}

	m.selected = orderID
	m.logger.Info().Int64("order_id", orderID).Msg("order resumed")
	return cloneOrder(order), nil
}

// Order retrieves one order by id.
func (m *orderManager) Order(ctx context.Context, orderID int64) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderID]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// SelectedOrder returns the currently selected order, if any.
func (m *orderManager) SelectedOrder(ctx context.Context) (*model.Order, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.selected == 0 {
		return nil, false
	}
	order, ok := m.orders[m.selected]
	if !ok {
		return nil, false
	}
	return cloneOrder(order), true
}

// Tables returns all tables. Availability is derived from the active
// order set on every call so it can never diverge from it.
func (m *orderManager) Tables(ctx context.Context) []model.Table {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Table, len(m.tables))
	copy(out, m.tables)
	for i := range out {
		out[i].Available = m.activeOrderOn(out[i].ID) == nil
	}
	return out
}

// Ticket renders the receipt text for an order.
func (m *orderManager) Ticket(ctx context.Context, orderID int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderID]
	if !ok {
		return "", model.ErrOrderNotFound
	}
	return m.renderer.Render(order), nil
}

// activeOrderOn returns the in-progress order targeting the table, if
// any. Callers hold the mutex.
func (m *orderManager) activeOrderOn(tableID int) *model.Order {
	for _, id := range m.orderIDs {
		o := m.orders[id]
		if o.Status == model.StatusInProgress && o.TableID == tableID {
			return o
		}
	}
	return nil
}

// nextID returns a fresh time-based order id, bumped past the previous
// one when two orders open within the same millisecond.
func (m *orderManager) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= m.lastID {
		id = m.lastID + 1
	}
	m.lastID = id
	return id
}

// recompute rederives the order's total and item count from its line
// items. Every mutation funnels through here; nothing maintains the
// derived fields incrementally.
func recompute(o *model.Order) {
	var total float64
	count := 0
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
		count += item.Quantity
	}
	o.Total = round2(total)
	o.ItemCount = count
}

// round2 rounds to two decimals, the till's money precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// cloneOrder returns a deep copy so callers can't reach into manager
// state.
func cloneOrder(o *model.Order) *model.Order {
	c := *o
	c.Items = make([]model.LineItem, len(o.Items))
	copy(c.Items, o.Items)
	return &c
}
