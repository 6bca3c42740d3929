package model

import "time"

// OrderStatus is the lifecycle state of an order. Paid and canceled are
// terminal: no operation moves an order out of them.
type OrderStatus string

const (
	StatusInProgress OrderStatus = "inProgress"
	StatusUnpaid     OrderStatus = "unpaid"
	StatusPaid       OrderStatus = "paid"
	StatusCanceled   OrderStatus = "canceled"
)

// PaymentMethod identifies how an order was (or will be) paid.
type PaymentMethod string

const (
	// PaymentCash settles immediately with tendered cash and change.
	PaymentCash PaymentMethod = "efectivo"
	// PaymentCard settles immediately, no change involved.
	PaymentCard PaymentMethod = "tarjeta"
	// PaymentDeferred leaves the order unpaid until settled later.
	PaymentDeferred PaymentMethod = "pendiente"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentDeferred:
		return true
	}
	return false
}

// CounterTableID is the reserved table id for the counter/bar location.
const CounterTableID = 0

// LineItem is one product line within an order. Quantity is always >= 1:
// removing the last unit removes the line itself.
type LineItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is one customer tab, tied to a table or the counter.
// Total and ItemCount are derived from Items; the order manager recomputes
// them after every mutation and nothing else writes them.
type Order struct {
	ID            int64         `json:"id"`
	Date          time.Time     `json:"date"`
	TableID       int           `json:"tableNumber"`
	Items         []LineItem    `json:"items"`
	Total         float64       `json:"total"`
	ItemCount     int           `json:"itemCount"`
	Status        OrderStatus   `json:"status"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
	TotalPaid     float64       `json:"totalPaid"`
	Change        float64       `json:"change"`
	TicketPath    string        `json:"ticketPath,omitempty"`
}

// Terminal reports whether the order can no longer be mutated.
func (o *Order) Terminal() bool {
	return o.Status == StatusPaid || o.Status == StatusCanceled
}

// Table is a service location. Available is derived from the active order
// set on read, never stored.
type Table struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}
