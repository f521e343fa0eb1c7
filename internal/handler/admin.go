package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/SammyMuraya-DA/online-cyber/internal/domain/catalog"
	"github.com/SammyMuraya-DA/online-cyber/internal/domain/content"
	"github.com/SammyMuraya-DA/online-cyber/internal/domain/order"
)

type serviceRequest struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	EstimatedDays int     `json:"estimated_days"`
	Active        *bool   `json:"is_active"`
}

func (req *serviceRequest) validate() string {
	switch {
	case req.Name == "":
		return "name is required"
	case req.Price < 0:
		return "price must be non-negative"
	case req.Category == "":
		return "category is required"
	case req.EstimatedDays <= 0:
		return "estimated_days must be positive"
	}
	return ""
}

func (req *serviceRequest) toService(id string) *catalog.Service {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return &catalog.Service{
		ID:            id,
		Name:          req.Name,
		Price:         decimal.NewFromFloat(req.Price),
		Category:      req.Category,
		Description:   req.Description,
		EstimatedDays: req.EstimatedDays,
		Active:        active,
	}
}

func (h *Handler) adminListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalog.List(r.Context())
	if err != nil {
		zctx.From(r.Context()).Error("admin list services", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "failed to list services")
		return
	}

	out := make([]serviceJSON, len(services))
	for i, s := range services {
		out[i] = toServiceJSON(s)
	}
	respondJSON(w, r, http.StatusOK, out)
}

func (h *Handler) adminCreateService(w http.ResponseWriter, r *http.Request) {
	var req serviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, r, http.StatusUnprocessableEntity, msg)
		return
	}

	svc := req.toService(uuid.New().String())
	if err := h.catalog.Create(r.Context(), svc); err != nil {
		zctx.From(r.Context()).Error("admin create service", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "failed to create service")
		return
	}
	respondJSON(w, r, http.StatusCreated, toServiceJSON(*svc))
}

func (h *Handler) adminUpdateService(w http.ResponseWriter, r *http.Request) {
	var req serviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, r, http.StatusUnprocessableEntity, msg)
		return
	}

	svc := req.toService(chi.URLParam(r, "serviceID"))
	err := h.catalog.Update(r.Context(), svc)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		respondError(w, r, http.StatusNotFound, "service not found")
		return
	case err != nil:
		zctx.From(r.Context()).Error("admin update service", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "failed to update service")
		return
	}
	respondJSON(w, r, http.StatusOK, toServiceJSON(*svc))
}

func (h *Handler) adminDeleteService(w http.ResponseWriter, r *http.Request) {
	err := h.catalog.Delete(r.Context(), chi.URLParam(r, "serviceID"))
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		respondError(w, r, http.StatusNotFound, "service not found")
		return
	case err != nil:
		zctx.From(r.Context()).Error("admin delete service", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "failed to delete service")
		return
	}
	respondJSON(w, r, http.StatusNoContent, nil)
}

type orderJSON struct {
	ID            string   `json:"id"`
	CustomerPhone string   `json:"customer_phone"`
	ServiceNames  []string `json:"services"`
	TotalAmount   float64  `json:"total_amount"`
	PaymentStatus string   `json:"payment_status"`
	TransactionID string   `json:"transaction_id"`
	Status        string   `json:"status"`
	Notes         string   `json:"notes,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

func (h *Handler) adminListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		zctx.From(r.Context()).Error("admin list orders", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "failed to list orders")
		return
	}

	out := make([]orderJSON, len(orders))
	for i, o := range orders {
		out[i] = orderJSON{
			ID:            o.ID,
			CustomerPhone: o.CustomerPhone,
			ServiceNames:  o.ServiceNames,
			TotalAmount:   o.TotalAmount.InexactFloat64(),
			PaymentStatus: o.PaymentStatus,
			TransactionID: o.TransactionID,
			Status:        string(o.Status),
			Notes:         o.Notes,
			CreatedAt:     o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}
	respondJSON(w, r, http.StatusOK, out)
}

type orderUpdateRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (h *Handler) adminUpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	status := order.Status(req.Status)
	if !status.Valid() {
		respondError(w, r, http.StatusUnprocessableEntity, "status must be pending, in-progress, or completed")
		return
	}

	err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "orderID"), status, req.Notes)
	switch {
	case errors.Is(err, order.ErrNotFound):
		respondError(w, r, http.StatusNotFound, "order not found")
		return
	case err != nil:
		zctx.From(r.Context()).Error("admin update order", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "failed to update order")
		return
	}
	respondJSON(w, r, http.StatusNoContent, nil)
}

type contentRequest struct {
	Content string `json:"content"`
	Active  *bool  `json:"is_active"`
}

func (h *Handler) adminUpsertContent(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	sec := &content.Section{
		Name:    chi.URLParam(r, "section"),
		Content: req.Content,
		Active:  active,
	}
	if err := h.content.Upsert(r.Context(), sec); err != nil {
		zctx.From(r.Context()).Error("admin upsert content", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "failed to update content")
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{
		"section": sec.Name,
		"content": sec.Content,
	})
}
