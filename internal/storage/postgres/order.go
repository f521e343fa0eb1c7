package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SammyMuraya-DA/online-cyber/internal/domain/order"
)

const (
	createOrderSQL = `INSERT INTO orders (id, customer_phone, services, total_amount, payment_status, transaction_id, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	listOrdersSQL = `SELECT id, customer_phone, services, total_amount, payment_status, transaction_id, status, notes, created_at
		FROM orders ORDER BY created_at DESC`

	updateOrderStatusSQL = `UPDATE orders SET status = $2, notes = $3 WHERE id = $1`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order. The service name snapshot is serialized to
// JSON for storage in the JSONB column.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	namesJSON, err := json.Marshal(o.ServiceNames)
	if err != nil {
		return fmt.Errorf("marshaling order services: %w", err)
	}

	_, err = r.pool.Exec(ctx, createOrderSQL,
		o.ID, o.CustomerPhone, namesJSON, o.TotalAmount,
		o.PaymentStatus, o.TransactionID, o.Status, o.Notes,
	)
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}

	return nil
}

// List returns all orders, newest first.
func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return pgx.CollectRows(rows, scanOrder)
}

// UpdateStatus sets the fulfilment status and notes of an existing order.
// Returns order.ErrNotFound when the id does not exist.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status order.Status, notes string) error {
	tag, err := r.pool.Exec(ctx, updateOrderStatusSQL, id, status, notes)
	if err != nil {
		return fmt.Errorf("updating order %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var (
		o         order.Order
		namesJSON []byte
		total     decimal.Decimal
	)
	err := row.Scan(
		&o.ID, &o.CustomerPhone, &namesJSON, &total,
		&o.PaymentStatus, &o.TransactionID, &o.Status, &o.Notes, &o.CreatedAt,
	)
	if err != nil {
		return o, err
	}
	o.TotalAmount = total

	if err := json.Unmarshal(namesJSON, &o.ServiceNames); err != nil {
		return o, fmt.Errorf("unmarshaling order %q services: %w", o.ID, err)
	}
	return o, nil
}
