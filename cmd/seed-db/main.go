// Command seed-db creates the schema and loads the built-in service catalog
// and default homepage copy into PostgreSQL. Existing rows are left alone.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"

	"github.com/SammyMuraya-DA/online-cyber/internal/domain/catalog"
	"github.com/SammyMuraya-DA/online-cyber/internal/domain/content"
	"github.com/SammyMuraya-DA/online-cyber/internal/storage/postgres"
)

func main() {
	var databaseURL string
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL string) error {
	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "create pool")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	const insertService = `INSERT INTO services (id, name, price, category, description, estimated_days, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`

	seeded := 0
	for _, s := range catalog.Fallback() {
		tag, err := pool.Exec(ctx, insertService,
			s.ID, s.Name, s.Price, s.Category, s.Description, s.EstimatedDays, s.Active,
		)
		if err != nil {
			return errors.Wrapf(err, "seed service %q", s.ID)
		}
		seeded += int(tag.RowsAffected())
	}
	slog.Info("seeded services", slog.Int("count", seeded))

	const insertContent = `INSERT INTO home_content (section_name, content, is_active)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (section_name) DO NOTHING`

	defaults := map[string]string{
		content.SectionHeroTitle:    content.DefaultHeroTitle,
		content.SectionHeroSubtitle: content.DefaultHeroSubtitle,
	}
	for name, text := range defaults {
		if _, err := pool.Exec(ctx, insertContent, name, text); err != nil {
			return errors.Wrapf(err, "seed content %q", name)
		}
	}
	slog.Info("seeded home content", slog.Int("sections", len(defaults)))

	return nil
}
