package service

import (
	"context"
	"sort"

	"bar-tpv/internal/model"
)

// History returns the filtered, sorted order history. In-progress orders
// appear alongside completed ones, the way the till's history tab shows
// them.
func (m *orderManager) History(ctx context.Context, filter HistoryFilter) []model.Order {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Order, 0, len(m.orderIDs))
	for _, id := range m.orderIDs {
		o := m.orders[id]
		if filter.Status != "" && filter.Status != "all" && string(o.Status) != filter.Status {
			continue
		}
		out = append(out, *cloneOrder(o))
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "date"
	}

	sort.SliceStable(out, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "total":
			less = out[i].Total < out[j].Total
		case "status":
			less = out[i].Status < out[j].Status
		case "id":
			less = out[i].ID < out[j].ID
		default:
			less = out[i].Date.Before(out[j].Date)
		}
		if filter.Descending {
			return !less && !equalKey(out[i], out[j], sortBy)
		}
		return less
	})

	return out
}

func equalKey(a, b model.Order, key string) bool {
	switch key {
	case "total":
		return a.Total == b.Total
	case "status":
		return a.Status == b.Status
	case "id":
		return a.ID == b.ID
	default:
		return a.Date.Equal(b.Date)
	}
}
