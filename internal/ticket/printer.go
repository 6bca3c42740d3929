package ticket

import (
	"context"

	"bar-tpv/internal/model"

	"github.com/rs/zerolog"
)

// Options describes a thermal printer connection. Only carried through
// config and logs; the shipped printer is a mock.
type Options struct {
	Type              string // e.g. "EPSON", "STAR"
	IP                string
	Port              int
	CharactersPerLine int
}

// Printer is the capability the order manager needs on completion.
type Printer interface {
	// Print renders and "prints" the order's receipt, returning the
	// rendered text.
	Print(ctx context.Context, order *model.Order) (string, error)
}

// mockPrinter implements Printer by rendering the ticket and logging it.
type mockPrinter struct {
	renderer *Renderer
	opts     Options
	logger   zerolog.Logger
}

// NewMockPrinter creates a printer stub that logs instead of printing.
func NewMockPrinter(renderer *Renderer, opts Options, logger zerolog.Logger) Printer {
	return &mockPrinter{
		renderer: renderer,
		opts:     opts,
		logger:   logger.With().Str("component", "printer").Logger(),
	}
}

// Print renders the order's receipt and logs it at debug level.
func (p *mockPrinter) Print(ctx context.Context, order *model.Order) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text := p.renderer.Render(order)
	p.logger.Debug().
		Int64("order_id", order.ID).
		Str("printer_type", p.opts.Type).
		Str("printer_addr", p.opts.IP).
		Int("chars_per_line", p.opts.CharactersPerLine).
		Msg("mock print\n" + text)

	return text, nil
}
