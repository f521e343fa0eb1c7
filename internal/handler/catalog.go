package handler

import (
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/SammyMuraya-DA/online-cyber/internal/domain/catalog"
)

// serviceJSON is the wire shape of a catalog service.
type serviceJSON struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	EstimatedDays int     `json:"estimated_days"`
	Active        bool    `json:"is_active,omitempty"`
}

func toServiceJSON(s catalog.Service) serviceJSON {
	return serviceJSON{
		ID:            s.ID,
		Name:          s.Name,
		Price:         s.Price.InexactFloat64(),
		Category:      s.Category,
		Description:   s.Description,
		EstimatedDays: s.EstimatedDays,
		Active:        s.Active,
	}
}

// listServices returns the visible catalog. The repository degrades to the
// built-in list on store failure, so this cannot 500 on backend outage.
func (h *Handler) listServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalog.ListActive(r.Context())
	if err != nil {
		zctx.From(r.Context()).Error("list services", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "failed to load services")
		return
	}

	out := make([]serviceJSON, len(services))
	for i, s := range services {
		out[i] = toServiceJSON(s)
	}
	respondJSON(w, r, http.StatusOK, out)
}

// getHero returns the homepage banner copy, defaults included.
func (h *Handler) getHero(w http.ResponseWriter, r *http.Request) {
	hero := h.content.Hero(r.Context())
	respondJSON(w, r, http.StatusOK, map[string]string{
		"title":    hero.Title,
		"subtitle": hero.Subtitle,
	})
}
