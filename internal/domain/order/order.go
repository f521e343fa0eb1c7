package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Status is the admin-owned fulfilment state of an order. The checkout core
// only ever creates orders in StatusPending; later transitions belong to the
// admin console and never feed back into checkout.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Valid reports whether s is a known fulfilment status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Order is the persisted record of a completed checkout. ServiceNames and
// TotalAmount are a snapshot taken at submission time; later catalog changes
// must not alter them.
type Order struct {
	ID            string
	CustomerPhone string
	ServiceNames  []string
	TotalAmount   decimal.Decimal
	PaymentStatus string
	TransactionID string
	Status        Status
	Notes         string
	CreatedAt     time.Time
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	List(ctx context.Context) ([]Order, error)
	// UpdateStatus sets the fulfilment status and notes of an existing order.
	UpdateStatus(ctx context.Context, id string, status Status, notes string) error
}
