package service

import (
	"context"

	"bar-tpv/internal/model"
)

// Stats returns the dashboard aggregates. Everything is rederived from
// the order set on each call; nothing is cached.
func (m *orderManager) Stats(ctx context.Context) Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := Stats{
		OrdersByStatus: make(map[string]int),
	}

	paid := 0
	for _, id := range m.orderIDs {
		o := m.orders[id]
		stats.TotalOrders++
		stats.OrdersByStatus[string(o.Status)]++
		if o.Status == model.StatusPaid {
			stats.TotalSales += o.Total
			paid++
		}
	}

	stats.TotalSales = round2(stats.TotalSales)
	if paid > 0 {
		stats.AverageOrderValue = round2(stats.TotalSales / float64(paid))
	}

	return stats
}
