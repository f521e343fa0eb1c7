// Package handler exposes the storefront and admin HTTP API. Handlers stay
// thin: decode, delegate to the domain, map errors to {code, message} bodies.
package handler

import (
	"github.com/go-chi/chi/v5"

	"github.com/SammyMuraya-DA/online-cyber/internal/checkout"
	"github.com/SammyMuraya-DA/online-cyber/internal/domain/catalog"
	"github.com/SammyMuraya-DA/online-cyber/internal/domain/content"
	"github.com/SammyMuraya-DA/online-cyber/internal/domain/order"
)

// Handler implements the HTTP API, delegating business logic to the injected
// domain collaborators.
type Handler struct {
	catalog  catalog.Repository
	content  *content.Service
	checkout *checkout.Manager
	orders   order.Repository
}

// New constructs a Handler with the required domain dependencies.
func New(
	cat catalog.Repository,
	cont *content.Service,
	co *checkout.Manager,
	orders order.Repository,
) *Handler {
	return &Handler{
		catalog:  cat,
		content:  cont,
		checkout: co,
		orders:   orders,
	}
}

// Routes builds the API router. Admin routes require the configured bearer
// token; an empty token disables the admin surface entirely.
func (h *Handler) Routes(adminToken string) chi.Router {
	r := chi.NewRouter()

	r.Get("/services", h.listServices)
	r.Get("/content/hero", h.getHero)

	// Session-scoped storefront flow; the session cookie middleware runs in
	// the outer chain.
	r.Get("/cart", h.getCart)
	r.Post("/cart/items", h.addCartItem)
	r.Delete("/cart/items/{serviceID}", h.removeCartItem)
	r.Post("/checkout", h.beginCheckout)
	r.Delete("/checkout", h.abortCheckout)
	r.Post("/checkout/payment", h.submitPayment)
	r.Get("/checkout/payment", h.paymentStatus)

	r.Route("/admin", func(r chi.Router) {
		r.Use(AdminAuth(adminToken))
		r.Get("/services", h.adminListServices)
		r.Post("/services", h.adminCreateService)
		r.Put("/services/{serviceID}", h.adminUpdateService)
		r.Delete("/services/{serviceID}", h.adminDeleteService)
		r.Get("/orders", h.adminListOrders)
		r.Patch("/orders/{orderID}", h.adminUpdateOrder)
		r.Put("/content/{section}", h.adminUpsertContent)
	})

	return r
}
