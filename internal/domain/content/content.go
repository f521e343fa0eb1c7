// Package content manages editable homepage copy.
package content

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// Section names used by the storefront hero banner.
const (
	SectionHeroTitle    = "hero_title"
	SectionHeroSubtitle = "hero_subtitle"
)

// Built-in copy used when the store has no row for a section or is
// unreachable.
const (
	DefaultHeroTitle    = "CONNEX CYBER SERVICES"
	DefaultHeroSubtitle = "Your trusted partner for Government Services, IT Solutions, and Tax Services"
)

// ErrNotFound is returned when a requested section does not exist.
var ErrNotFound = errors.New("content section not found")

// Section is a named block of homepage copy.
type Section struct {
	Name      string
	Content   string
	Active    bool
	UpdatedAt time.Time
}

// Repository defines persistence for homepage content sections.
type Repository interface {
	// GetActive returns the active sections matching the given names.
	GetActive(ctx context.Context, names []string) ([]Section, error)
	Upsert(ctx context.Context, s *Section) error
}

// Hero is the homepage banner copy.
type Hero struct {
	Title    string
	Subtitle string
}

// Service reads homepage copy with built-in defaults: a fetch failure or a
// missing section degrades to the default text, never to an error.
type Service struct {
	repo Repository
	lg   *zap.Logger
}

// NewService creates a content service over the given repository.
func NewService(repo Repository, lg *zap.Logger) *Service {
	return &Service{repo: repo, lg: lg}
}

// Hero returns the hero banner copy, falling back per-section to defaults.
func (s *Service) Hero(ctx context.Context) Hero {
	hero := Hero{Title: DefaultHeroTitle, Subtitle: DefaultHeroSubtitle}

	sections, err := s.repo.GetActive(ctx, []string{SectionHeroTitle, SectionHeroSubtitle})
	if err != nil {
		s.lg.Warn("hero content fetch failed, using defaults", zap.Error(err))
		return hero
	}

	for _, sec := range sections {
		if sec.Content == "" {
			continue
		}
		switch sec.Name {
		case SectionHeroTitle:
			hero.Title = sec.Content
		case SectionHeroSubtitle:
			hero.Subtitle = sec.Content
		}
	}
	return hero
}

// Upsert stores a section. Admin-only path, errors propagate.
func (s *Service) Upsert(ctx context.Context, sec *Section) error {
	if err := s.repo.Upsert(ctx, sec); err != nil {
		return errors.Wrapf(err, "upsert section %q", sec.Name)
	}
	return nil
}
