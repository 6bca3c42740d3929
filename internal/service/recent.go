package service

import (
	"context"
	"sort"

	"bar-tpv/internal/model"
)

// recentList is a bounded most-recently-used product list. Pushing an
// already-listed product moves it to the front instead of duplicating it.
type recentList struct {
	cap   int
	items []model.Product
}

func newRecentList(cap int) *recentList {
	return &recentList{cap: cap}
}

func (r *recentList) push(p model.Product) {
	kept := r.items[:0]
	for _, existing := range r.items {
		if existing.ID != p.ID {
			kept = append(kept, existing)
		}
	}
	r.items = append([]model.Product{p}, kept...)
	if len(r.items) > r.cap {
		r.items = r.items[:r.cap]
	}
}

func (r *recentList) all() []model.Product {
	out := make([]model.Product, len(r.items))
	copy(out, r.items)
	return out
}

// RecentProducts returns the most-recently-added products, newest first.
func (m *orderManager) RecentProducts(ctx context.Context) []model.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recent.all()
}

// TogglePin toggles a product in the pinned set and reports the new
// pinned state.
func (m *orderManager) TogglePin(ctx context.Context, productID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.catalog.ProductByID(productID); err != nil {
		return false, err
	}

	if _, pinned := m.pinned[productID]; pinned {
		delete(m.pinned, productID)
		m.logger.Debug().Int64("product_id", productID).Msg("product unpinned")
		return false, nil
	}
	m.pinned[productID] = struct{}{}
	m.logger.Debug().Int64("product_id", productID).Msg("product pinned")
	return true, nil
}

// PinnedProducts returns the pinned products in id order.
func (m *orderManager) PinnedProducts(ctx context.Context) []model.Product {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]int64, 0, len(m.pinned))
	for id := range m.pinned {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		if p, err := m.catalog.ProductByID(id); err == nil {
			out = append(out, *p)
		}
	}
	return out
}
