// Package ticket renders plain-text receipts for orders and generates
// the opaque ticket references recorded on completed orders. No real
// printing or file I/O happens here; the printer is a stubbed external
// collaborator.
package ticket

import (
	"fmt"
	"path/filepath"
	"strings"

	"bar-tpv/internal/model"

	"github.com/google/uuid"
)

const divider = "--------------------------------"

// Renderer produces the deterministic receipt text for an order.
type Renderer struct {
	// Venue is the header line printed on every ticket.
	Venue string
	// Dir is where ticket references point. Nothing is written there.
	Dir string
}

// Render returns the receipt text for the order.
func (r *Renderer) Render(o *model.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s Ticket #%d\n", r.Venue, o.ID)
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Fecha: %s\n", o.Date.Format("2006-01-02"))
	if o.TableID == model.CounterTableID {
		b.WriteString("Mesa: Barra\n")
	} else {
		fmt.Fprintf(&b, "Mesa: %d\n", o.TableID)
	}

	b.WriteString("\nPedido:\n")
	for _, item := range o.Items {
		fmt.Fprintf(&b, "%s x%d - %.2f€\n", item.Name, item.Quantity, item.Price*float64(item.Quantity))
	}

	fmt.Fprintf(&b, "\nTotal: %.2f€\n", o.Total)

	switch o.Status {
	case model.StatusPaid:
		b.WriteString("Estado: Pagado\n")
		if o.PaymentMethod == model.PaymentCash {
			b.WriteString("Método de pago: Efectivo\n")
			fmt.Fprintf(&b, "Total pagado: %.2f€\n", o.TotalPaid)
			fmt.Fprintf(&b, "Cambio: %.2f€\n", o.Change)
		} else {
			b.WriteString("Método de pago: Tarjeta\n")
		}
	default:
		b.WriteString("Estado: Pendiente de pago\n")
	}

	b.WriteString(divider + "\n")
	return b.String()
}

// NewReference returns a fresh opaque ticket reference for the order.
// It looks like a file path under Dir but is only an identifier.
func (r *Renderer) NewReference(o *model.Order) string {
	name := fmt.Sprintf("ticket-%d_%s_%s.txt", o.ID, o.Date.Format("2006-01-02"), uuid.NewString())
	return filepath.Join(r.Dir, name)
}
