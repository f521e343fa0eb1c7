package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SammyMuraya-DA/online-cyber/internal/domain/catalog"
)

const (
	serviceColumns = `id, name, price, category, description, estimated_days, is_active, created_at`

	listActiveServicesSQL = `SELECT ` + serviceColumns + `
		FROM services WHERE is_active ORDER BY category, name`

	listServicesSQL = `SELECT ` + serviceColumns + `
		FROM services ORDER BY category, name`

	getServicesByIDsSQL = `SELECT ` + serviceColumns + `
		FROM services WHERE id = ANY($1)`

	createServiceSQL = `INSERT INTO services (id, name, price, category, description, estimated_days, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	updateServiceSQL = `UPDATE services
		SET name = $2, price = $3, category = $4, description = $5, estimated_days = $6, is_active = $7
		WHERE id = $1`

	deleteServiceSQL = `DELETE FROM services WHERE id = $1`
)

var _ catalog.Repository = (*ServiceRepository)(nil)

// ServiceRepository implements catalog.Repository backed by PostgreSQL.
type ServiceRepository struct {
	pool *pgxpool.Pool
}

// NewServiceRepository returns a ServiceRepository that uses the given pool.
func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

// ListActive returns visible services ordered by category.
func (r *ServiceRepository) ListActive(ctx context.Context) ([]catalog.Service, error) {
	rows, err := r.pool.Query(ctx, listActiveServicesSQL)
	if err != nil {
		return nil, fmt.Errorf("listing active services: %w", err)
	}
	return pgx.CollectRows(rows, scanService)
}

// List returns every service, including inactive ones.
func (r *ServiceRepository) List(ctx context.Context) ([]catalog.Service, error) {
	rows, err := r.pool.Query(ctx, listServicesSQL)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}
	return pgx.CollectRows(rows, scanService)
}

// GetByIDs returns services matching any of the given ids.
func (r *ServiceRepository) GetByIDs(ctx context.Context, ids []string) ([]catalog.Service, error) {
	rows, err := r.pool.Query(ctx, getServicesByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("getting services by ids: %w", err)
	}
	return pgx.CollectRows(rows, scanService)
}

// Create inserts a new service.
func (r *ServiceRepository) Create(ctx context.Context, s *catalog.Service) error {
	_, err := r.pool.Exec(ctx, createServiceSQL,
		s.ID, s.Name, s.Price, s.Category, s.Description, s.EstimatedDays, s.Active,
	)
	if err != nil {
		return fmt.Errorf("creating service %q: %w", s.ID, err)
	}
	return nil
}

// Update rewrites an existing service. Returns catalog.ErrNotFound when the
// id does not exist.
func (r *ServiceRepository) Update(ctx context.Context, s *catalog.Service) error {
	tag, err := r.pool.Exec(ctx, updateServiceSQL,
		s.ID, s.Name, s.Price, s.Category, s.Description, s.EstimatedDays, s.Active,
	)
	if err != nil {
		return fmt.Errorf("updating service %q: %w", s.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// Delete removes a service. Returns catalog.ErrNotFound when the id does not
// exist.
func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, deleteServiceSQL, id)
	if err != nil {
		return fmt.Errorf("deleting service %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func scanService(row pgx.CollectableRow) (catalog.Service, error) {
	var (
		s     catalog.Service
		price decimal.Decimal
	)
	err := row.Scan(
		&s.ID, &s.Name, &price, &s.Category,
		&s.Description, &s.EstimatedDays, &s.Active, &s.CreatedAt,
	)
	s.Price = price
	return s, err
}
