package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SammyMuraya-DA/online-cyber/internal/domain/content"
)

const (
	getActiveSectionsSQL = `SELECT section_name, content, is_active, updated_at
		FROM home_content WHERE is_active AND section_name = ANY($1)`

	upsertSectionSQL = `INSERT INTO home_content (section_name, content, is_active, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (section_name)
		DO UPDATE SET content = EXCLUDED.content, is_active = EXCLUDED.is_active, updated_at = now()`
)

var _ content.Repository = (*ContentRepository)(nil)

// ContentRepository implements content.Repository backed by PostgreSQL.
type ContentRepository struct {
	pool *pgxpool.Pool
}

// NewContentRepository returns a ContentRepository that uses the given pool.
func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

// GetActive returns the active sections matching the given names.
func (r *ContentRepository) GetActive(ctx context.Context, names []string) ([]content.Section, error) {
	rows, err := r.pool.Query(ctx, getActiveSectionsSQL, names)
	if err != nil {
		return nil, fmt.Errorf("getting content sections: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (content.Section, error) {
		var s content.Section
		err := row.Scan(&s.Name, &s.Content, &s.Active, &s.UpdatedAt)
		return s, err
	})
}

// Upsert inserts or rewrites a section by name.
func (r *ContentRepository) Upsert(ctx context.Context, s *content.Section) error {
	_, err := r.pool.Exec(ctx, upsertSectionSQL, s.Name, s.Content, s.Active)
	if err != nil {
		return fmt.Errorf("upserting section %q: %w", s.Name, err)
	}
	return nil
}
