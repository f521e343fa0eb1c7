package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/SammyMuraya-DA/online-cyber/internal/checkout"
	"github.com/SammyMuraya-DA/online-cyber/internal/domain/catalog"
	"github.com/SammyMuraya-DA/online-cyber/internal/domain/payment"
	"github.com/SammyMuraya-DA/online-cyber/pkg/httpmiddleware"
)

// session resolves the checkout session for the request's cookie.
func (h *Handler) session(r *http.Request) (*checkout.Session, bool) {
	id := httpmiddleware.SessionIDFromContext(r.Context())
	if id == "" {
		return nil, false
	}
	return h.checkout.Session(id), true
}

type cartResponse struct {
	Items []serviceJSON `json:"items"`
	Total float64       `json:"total"`
	Count int           `json:"count"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(r)
	if !ok {
		respondError(w, r, http.StatusInternalServerError, "session unavailable")
		return
	}

	items, total := sess.CartView()
	out := cartResponse{
		Items: make([]serviceJSON, len(items)),
		Total: total.InexactFloat64(),
		Count: len(items),
	}
	for i, s := range items {
		out.Items[i] = toServiceJSON(s)
	}
	respondJSON(w, r, http.StatusOK, out)
}

type addItemRequest struct {
	ServiceID string `json:"service_id"`
}

// addCartItem resolves the service and puts it in the session cart. When the
// catalog store is down the built-in list is consulted, so the service ids the
// storefront displayed remain addable.
func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(r)
	if !ok {
		respondError(w, r, http.StatusInternalServerError, "session unavailable")
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ServiceID == "" {
		respondError(w, r, http.StatusBadRequest, "service_id is required")
		return
	}

	svc, err := h.resolveService(r, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "service not found")
			return
		}
		zctx.From(r.Context()).Error("resolve service", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "failed to add service")
		return
	}

	if err := sess.AddService(svc); err != nil {
		respondError(w, r, http.StatusConflict, "checkout already in progress")
		return
	}
	h.getCart(w, r)
}

// resolveService finds a service by id in the store, falling back to the
// built-in list when the store errors out or lacks the id.
func (h *Handler) resolveService(r *http.Request, id string) (catalog.Service, error) {
	found, err := h.catalog.GetByIDs(r.Context(), []string{id})
	if err == nil && len(found) > 0 {
		return found[0], nil
	}
	if err != nil {
		zctx.From(r.Context()).Warn("catalog lookup failed, trying built-in list",
			zap.String("service_id", id), zap.Error(err))
	}

	for _, s := range catalog.Fallback() {
		if s.ID == id {
			return s, nil
		}
	}
	return catalog.Service{}, catalog.ErrNotFound
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(r)
	if !ok {
		respondError(w, r, http.StatusInternalServerError, "session unavailable")
		return
	}

	if err := sess.RemoveService(chi.URLParam(r, "serviceID")); err != nil {
		respondError(w, r, http.StatusConflict, "checkout already in progress")
		return
	}
	h.getCart(w, r)
}

// beginCheckout opens the payment flow seeded with the cart total.
func (h *Handler) beginCheckout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(r)
	if !ok {
		respondError(w, r, http.StatusInternalServerError, "session unavailable")
		return
	}

	total, err := sess.Checkout()
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, r, http.StatusBadRequest, "cart is empty")
		return
	case errors.Is(err, checkout.ErrCheckoutActive):
		respondError(w, r, http.StatusConflict, "checkout already in progress")
		return
	case err != nil:
		zctx.From(r.Context()).Error("begin checkout", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "failed to begin checkout")
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]float64{"total": total.InexactFloat64()})
}

type payRequest struct {
	Phone string `json:"phone"`
}

// submitPayment starts the simulated payment; progress is polled via
// paymentStatus.
func (h *Handler) submitPayment(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(r)
	if !ok {
		respondError(w, r, http.StatusInternalServerError, "session unavailable")
		return
	}

	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := sess.Pay(req.Phone)
	switch {
	case errors.Is(err, checkout.ErrNoCheckout):
		respondError(w, r, http.StatusConflict, "no checkout in progress")
		return
	case errors.Is(err, payment.ErrPhoneRequired):
		respondError(w, r, http.StatusUnprocessableEntity, "phone number required")
		return
	case errors.Is(err, payment.ErrAttemptInFlight):
		respondError(w, r, http.StatusConflict, "payment already in progress")
		return
	case err != nil:
		zctx.From(r.Context()).Error("submit payment", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "failed to start payment")
		return
	}

	respondJSON(w, r, http.StatusAccepted, map[string]string{"status": string(payment.StatusProcessing)})
}

type paymentStatusResponse struct {
	Status        string                `json:"status"`
	TransactionID string                `json:"transaction_id,omitempty"`
	Confirmation  *confirmationResponse `json:"confirmation,omitempty"`
}

type confirmationResponse struct {
	OrderID string `json:"order_id,omitempty"`
	Message string `json:"message"`
}

func (h *Handler) paymentStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(r)
	if !ok {
		respondError(w, r, http.StatusInternalServerError, "session unavailable")
		return
	}

	attempt, conf := sess.Status()
	out := paymentStatusResponse{
		Status:        string(attempt.Status),
		TransactionID: attempt.TransactionID,
	}
	if conf != nil {
		out.Confirmation = &confirmationResponse{
			OrderID: conf.OrderID,
			Message: conf.Message,
		}
	}
	respondJSON(w, r, http.StatusOK, out)
}

// abortCheckout closes the payment flow. Rejected once a payment is past the
// input state; the cart survives untouched.
func (h *Handler) abortCheckout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(r)
	if !ok {
		respondError(w, r, http.StatusInternalServerError, "session unavailable")
		return
	}

	if err := sess.Abort(); err != nil {
		if errors.Is(err, payment.ErrCannotCancel) {
			respondError(w, r, http.StatusConflict, "cannot cancel payment in progress")
			return
		}
		zctx.From(r.Context()).Error("abort checkout", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "failed to abort checkout")
		return
	}

	respondJSON(w, r, http.StatusNoContent, nil)
}
