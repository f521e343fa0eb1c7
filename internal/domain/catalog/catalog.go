package catalog

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested service does not exist.
var ErrNotFound = errors.New("service not found")

// Service is a catalog line item purchasable by a customer. The checkout core
// treats services as immutable reference data; only the admin surface mutates
// them.
type Service struct {
	ID            string
	Name          string
	Price         decimal.Decimal
	Category      string
	Description   string
	EstimatedDays int
	Active        bool
	CreatedAt     time.Time
}

// Repository defines catalog persistence. ListActive is the storefront read
// path; the remaining operations serve the admin console.
type Repository interface {
	// ListActive returns visible services ordered by category.
	ListActive(ctx context.Context) ([]Service, error)
	// List returns every service, including inactive ones.
	List(ctx context.Context) ([]Service, error)
	GetByIDs(ctx context.Context, ids []string) ([]Service, error)
	Create(ctx context.Context, s *Service) error
	Update(ctx context.Context, s *Service) error
	Delete(ctx context.Context, id string) error
}
