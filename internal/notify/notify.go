// Package notify delivers best-effort order notifications. Callers treat
// every implementation as fire-and-forget: a failed delivery is logged by the
// caller and never alters the order flow.
package notify

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrderEmail describes a placed order for notification purposes.
type OrderEmail struct {
	OrderID       string
	CustomerPhone string
	ServiceNames  []string
	Total         decimal.Decimal
	TransactionID string
}

// Notifier sends a notification about a placed order.
type Notifier interface {
	OrderPlaced(ctx context.Context, e OrderEmail) error
}

var _ Notifier = Noop{}

// Noop is a Notifier that does nothing. Used when SMTP is not configured.
type Noop struct{}

func (Noop) OrderPlaced(context.Context, OrderEmail) error { return nil }
