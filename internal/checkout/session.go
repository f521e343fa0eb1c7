// Package checkout sequences the storefront flow: cart assembly, the
// simulated payment, and order submission.
package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/SammyMuraya-DA/online-cyber/internal/domain/cart"
	"github.com/SammyMuraya-DA/online-cyber/internal/domain/catalog"
	"github.com/SammyMuraya-DA/online-cyber/internal/domain/order"
	"github.com/SammyMuraya-DA/online-cyber/internal/domain/payment"
)

var (
	// ErrEmptyCart is returned when checkout is invoked on an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNoCheckout is returned when a payment is attempted without an open
	// checkout.
	ErrNoCheckout = errors.New("no checkout in progress")
	// ErrCheckoutActive is returned when a new checkout is started while a
	// payment attempt is already past the input state.
	ErrCheckoutActive = errors.New("checkout already in progress")
)

// submitTimeout bounds the order submission once payment has completed. The
// customer-facing outcome does not depend on it succeeding.
const submitTimeout = 15 * time.Second

// Session is one customer's checkout state: their cart, at most one payment
// attempt, and the confirmation from the last completed order. A session is
// touched by multiple HTTP requests and by the simulator's timer goroutine,
// so every operation takes the session lock. The lock is never held across
// the submission pipeline itself: the order write and the notification can
// stall, and a stalled submission must not block Status or any other request.
type Session struct {
	mu           sync.Mutex
	cart         *cart.Cart
	sim          *payment.Simulator
	orders       *order.Service
	active       bool
	submitting   bool
	confirmation *order.Confirmation
	lastSeen     time.Time
	lg           *zap.Logger
}

// NewSession creates an idle session with an empty cart.
func NewSession(orders *order.Service, simCfg payment.Config, lg *zap.Logger) *Session {
	s := &Session{
		cart:     cart.New(),
		orders:   orders,
		lastSeen: time.Now(),
		lg:       lg,
	}
	s.sim = payment.NewSimulator(simCfg, s.onPaymentSuccess)
	return s
}

// AddService puts a service in the cart. Duplicates are ignored. The cart is
// frozen once a checkout is open: the total shown to the payment flow must
// match what gets submitted.
func (s *Session) AddService(svc catalog.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return ErrCheckoutActive
	}
	s.cart.Add(svc)
	return nil
}

// RemoveService drops a service from the cart. Absent ids are ignored.
// Rejected while a checkout is open, same as AddService.
func (s *Session) RemoveService(serviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return ErrCheckoutActive
	}
	s.cart.Remove(serviceID)
	return nil
}

// CartView returns the current selection and its total.
func (s *Session) CartView() ([]catalog.Service, decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items(), s.cart.Total()
}

// Checkout opens the payment flow seeded with the cart total. It is
// idempotent while the attempt is still awaiting input, and rejected once a
// payment is past the input state.
func (s *Session) Checkout() (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sim.State().Status != payment.StatusInput {
		return decimal.Zero, ErrCheckoutActive
	}
	if s.cart.Count() == 0 {
		return decimal.Zero, ErrEmptyCart
	}

	s.active = true
	s.confirmation = nil
	return s.cart.Total(), nil
}

// Pay submits the phone number to the payment simulator. The simulator
// rejects empty phone numbers and concurrent attempts.
func (s *Session) Pay(phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ErrNoCheckout
	}
	return s.sim.Begin(phone)
}

// Abort closes the payment flow. Permitted only while the attempt is awaiting
// input; the cart is left exactly as it was before checkout began.
func (s *Session) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sim.Close(); err != nil {
		return err
	}
	s.active = false
	return nil
}

// Status reports the payment attempt state and, once the pipeline has run,
// the order confirmation.
func (s *Session) Status() (payment.Attempt, *order.Confirmation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt := s.sim.State()
	if s.confirmation == nil {
		return attempt, nil
	}
	conf := *s.confirmation
	return attempt, &conf
}

// onPaymentSuccess runs the order submission pipeline. Invoked from the
// simulator's timer goroutine after the success display interval; ordering is
// guaranteed by the simulator, which only fires this callback from the
// success state.
//
// The paid cart is detached under the lock and the pipeline runs unlocked:
// the database write and the notification are both slow-path calls, and a
// hung notifier must not stop Status from reporting an already-persisted
// order.
func (s *Session) onPaymentSuccess(a payment.Attempt) {
	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()

	s.mu.Lock()
	paid := s.cart
	s.cart = cart.New()
	s.active = false
	s.submitting = true
	s.mu.Unlock()

	conf := s.orders.Submit(ctx, paid, a.Phone, a.TransactionID)

	s.mu.Lock()
	s.confirmation = &conf
	s.submitting = false
	s.mu.Unlock()

	s.lg.Info("checkout completed",
		zap.String("order_id", conf.OrderID),
		zap.Bool("persisted", conf.Persisted))
}

// touch records activity for idle-session eviction.
func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

// idle reports whether the session has been inactive since the cutoff and is
// safe to evict. A session mid-payment or mid-submission is never idle.
func (s *Session) idle(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(cutoff) &&
		!s.submitting &&
		s.sim.State().Status == payment.StatusInput
}
