package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SammyMuraya-DA/online-cyber/internal/domain/cart"
	"github.com/SammyMuraya-DA/online-cyber/internal/notify"
)

// Confirmation is the user-visible outcome of an order submission. Persisted
// tells the caller whether the write actually landed; Message is safe to show
// the customer either way.
type Confirmation struct {
	OrderID   string
	Persisted bool
	Message   string
}

// Service is the order submission pipeline: it turns a paid-for cart into a
// persisted order with a best-effort email notification.
//
// Persistence and notification are deliberately decoupled, two independent
// best-effort writes rather than a transaction. A customer whose payment
// succeeded must never see a hard failure: if the order write fails the cart
// is still cleared and a generic acknowledgement is returned. Do not "fix"
// this into all-or-nothing semantics.
type Service struct {
	orders   Repository
	notifier notify.Notifier
	lg       *zap.Logger
	newID    func() string
}

// NewService creates the submission pipeline.
func NewService(orders Repository, notifier notify.Notifier, lg *zap.Logger) *Service {
	return &Service{
		orders:   orders,
		notifier: notifier,
		lg:       lg,
		newID:    func() string { return uuid.New().String() },
	}
}

// Submit persists an order for the cart contents and the completed payment,
// then fires the notification. It never returns an error: every failure is
// absorbed and reflected only in the Confirmation. The cart is cleared on
// every path.
func (s *Service) Submit(ctx context.Context, c *cart.Cart, customerPhone, transactionID string) Confirmation {
	defer c.Clear()

	// Snapshot before anything can fail: totals on historical orders must not
	// track later catalog price changes.
	items := c.Items()
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	total := c.Total()

	o := &Order{
		ID:            s.newID(),
		CustomerPhone: customerPhone,
		ServiceNames:  names,
		TotalAmount:   total,
		PaymentStatus: "completed",
		TransactionID: transactionID,
		Status:        StatusPending,
	}

	if err := s.orders.Create(ctx, o); err != nil {
		s.lg.Error("order persistence failed, reporting degraded success",
			zap.String("transaction_id", transactionID),
			zap.Error(err))
		return Confirmation{
			Persisted: false,
			Message:   "Your order has been processed. You'll receive updates soon.",
		}
	}

	if err := s.notifier.OrderPlaced(ctx, notify.OrderEmail{
		OrderID:       o.ID,
		CustomerPhone: o.CustomerPhone,
		ServiceNames:  o.ServiceNames,
		Total:         o.TotalAmount,
		TransactionID: o.TransactionID,
	}); err != nil {
		// Observed only, never surfaced.
		s.lg.Warn("order notification failed",
			zap.String("order_id", o.ID),
			zap.Error(err))
	}

	return Confirmation{
		OrderID:   o.ID,
		Persisted: true,
		Message:   fmt.Sprintf("Your order #%s has been placed. You'll receive updates on your phone.", o.ID),
	}
}
