package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SammyMuraya-DA/online-cyber/internal/domain/catalog"
	"github.com/SammyMuraya-DA/online-cyber/internal/domain/order"
	"github.com/SammyMuraya-DA/online-cyber/internal/domain/payment"
	"github.com/SammyMuraya-DA/online-cyber/internal/notify"
)

type memOrderRepo struct {
	orders []order.Order
	err    error
}

func (m *memOrderRepo) Create(_ context.Context, o *order.Order) error {
	if m.err != nil {
		return m.err
	}
	m.orders = append(m.orders, *o)
	return nil
}

func (m *memOrderRepo) List(context.Context) ([]order.Order, error) { return m.orders, nil }

func (m *memOrderRepo) UpdateStatus(context.Context, string, order.Status, string) error {
	return nil
}

// fastConfig removes the simulated delays so the full flow runs immediately.
func fastConfig() payment.Config {
	return payment.Config{}
}

func newTestSession(t *testing.T, repo order.Repository, cfg payment.Config) *Session {
	t.Helper()
	svc := order.NewService(repo, notify.Noop{}, zap.NewNop())
	return NewSession(svc, cfg, zap.NewNop())
}

func conduct() catalog.Service {
	return catalog.Service{ID: "1", Name: "Good Conduct Certificate", Price: decimal.NewFromInt(1500)}
}

func webDev() catalog.Service {
	return catalog.Service{ID: "6", Name: "Web Development", Price: decimal.NewFromInt(15000)}
}

func waitForConfirmation(t *testing.T, s *Session) (payment.Attempt, *order.Confirmation) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		attempt, conf := s.Status()
		if conf != nil {
			return attempt, conf
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for confirmation")
	return payment.Attempt{}, nil
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	s := newTestSession(t, &memOrderRepo{}, fastConfig())

	_, err := s.Checkout()
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckout_ReturnsCartTotal(t *testing.T) {
	s := newTestSession(t, &memOrderRepo{}, fastConfig())
	s.AddService(conduct())
	s.AddService(webDev())

	total, err := s.Checkout()
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(16500).Equal(total))
}

func TestPay_WithoutCheckoutRejected(t *testing.T) {
	s := newTestSession(t, &memOrderRepo{}, fastConfig())
	s.AddService(conduct())

	err := s.Pay("0712345678")
	assert.ErrorIs(t, err, ErrNoCheckout)
}

func TestAbort_LeavesCartUntouched(t *testing.T) {
	s := newTestSession(t, &memOrderRepo{}, fastConfig())
	s.AddService(conduct())
	s.AddService(webDev())

	_, err := s.Checkout()
	require.NoError(t, err)
	require.NoError(t, s.Abort())

	items, total := s.CartView()
	assert.Len(t, items, 2)
	assert.True(t, decimal.NewFromInt(16500).Equal(total))

	// Aborted checkout can be reopened.
	_, err = s.Checkout()
	assert.NoError(t, err)
}

func TestAbort_RejectedMidPayment(t *testing.T) {
	slow := payment.Config{ProcessingDelay: time.Hour, SuccessDisplay: time.Hour}
	s := newTestSession(t, &memOrderRepo{}, slow)
	s.AddService(conduct())

	_, err := s.Checkout()
	require.NoError(t, err)
	require.NoError(t, s.Pay("0712345678"))

	assert.ErrorIs(t, s.Abort(), payment.ErrCannotCancel)
}

func TestCheckout_RejectedMidPayment(t *testing.T) {
	slow := payment.Config{ProcessingDelay: time.Hour, SuccessDisplay: time.Hour}
	s := newTestSession(t, &memOrderRepo{}, slow)
	s.AddService(conduct())

	_, err := s.Checkout()
	require.NoError(t, err)
	require.NoError(t, s.Pay("0712345678"))

	_, err = s.Checkout()
	assert.ErrorIs(t, err, ErrCheckoutActive)
}

func TestFullFlow_OrderPlacedAndCartCleared(t *testing.T) {
	repo := &memOrderRepo{}
	s := newTestSession(t, repo, fastConfig())
	s.AddService(conduct())
	s.AddService(webDev())

	_, err := s.Checkout()
	require.NoError(t, err)
	require.NoError(t, s.Pay("0712345678"))

	attempt, conf := waitForConfirmation(t, s)
	assert.True(t, conf.Persisted)
	assert.NotEmpty(t, conf.OrderID)
	assert.Contains(t, conf.Message, conf.OrderID)

	// Simulator is back to awaiting input for the next checkout.
	assert.Equal(t, payment.StatusInput, attempt.Status)

	items, total := s.CartView()
	assert.Empty(t, items)
	assert.True(t, total.IsZero())

	require.Len(t, repo.orders, 1)
	o := repo.orders[0]
	assert.Equal(t, "0712345678", o.CustomerPhone)
	assert.Equal(t, []string{"Good Conduct Certificate", "Web Development"}, o.ServiceNames)
	assert.True(t, decimal.NewFromInt(16500).Equal(o.TotalAmount))
	assert.NotEmpty(t, o.TransactionID)
}

func TestFullFlow_PersistenceFailureStillConfirms(t *testing.T) {
	repo := &memOrderRepo{err: context.DeadlineExceeded}
	s := newTestSession(t, repo, fastConfig())
	s.AddService(conduct())

	_, err := s.Checkout()
	require.NoError(t, err)
	require.NoError(t, s.Pay("0712345678"))

	_, conf := waitForConfirmation(t, s)
	assert.False(t, conf.Persisted)
	assert.NotEmpty(t, conf.Message)

	items, _ := s.CartView()
	assert.Empty(t, items, "cart is cleared even when the order write fails")
}

func TestCart_FrozenWhileCheckoutOpen(t *testing.T) {
	s := newTestSession(t, &memOrderRepo{}, fastConfig())
	require.NoError(t, s.AddService(conduct()))

	_, err := s.Checkout()
	require.NoError(t, err)

	assert.ErrorIs(t, s.AddService(webDev()), ErrCheckoutActive)
	assert.ErrorIs(t, s.RemoveService("1"), ErrCheckoutActive)

	// The total shown at checkout still matches the cart contents.
	items, total := s.CartView()
	assert.Len(t, items, 1)
	assert.True(t, decimal.NewFromInt(1500).Equal(total))

	// Aborting unfreezes the cart.
	require.NoError(t, s.Abort())
	assert.NoError(t, s.AddService(webDev()))
	assert.NoError(t, s.RemoveService("1"))
}

type blockingNotifier struct {
	entered chan struct{}
	release chan struct{}
}

func (n *blockingNotifier) OrderPlaced(context.Context, notify.OrderEmail) error {
	close(n.entered)
	<-n.release
	return nil
}

func TestFullFlow_HungNotifierDoesNotBlockSessions(t *testing.T) {
	repo := &memOrderRepo{}
	n := &blockingNotifier{entered: make(chan struct{}), release: make(chan struct{})}
	svc := order.NewService(repo, n, zap.NewNop())
	m := NewManager(svc, fastConfig(), zap.NewNop())

	s := m.Session("customer")
	require.NoError(t, s.AddService(conduct()))
	_, err := s.Checkout()
	require.NoError(t, err)
	require.NoError(t, s.Pay("0712345678"))

	// The notifier runs only after the order write returned, so once it is
	// entered the order is persisted and the pipeline is stalled on it.
	select {
	case <-n.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("notifier was never invoked")
	}

	done := make(chan struct{})
	go func() {
		s.Status()
		m.Session("other-visitor")
		m.Sweep(time.Nanosecond)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("session or manager blocked on the stalled notifier")
	}

	// The submitting session survives even an aggressive sweep.
	assert.Same(t, s, m.Session("customer"))

	close(n.release)
	_, conf := waitForConfirmation(t, s)
	assert.True(t, conf.Persisted)
	require.Len(t, repo.orders, 1)
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	svc := order.NewService(&memOrderRepo{}, notify.Noop{}, zap.NewNop())
	m := NewManager(svc, fastConfig(), zap.NewNop())

	a := m.Session("a")
	b := m.Session("b")
	require.NotSame(t, a, b)

	a.AddService(conduct())
	_, total := b.CartView()
	assert.True(t, total.IsZero())

	assert.Same(t, a, m.Session("a"))
}

func TestManager_SweepEvictsIdleOnly(t *testing.T) {
	svc := order.NewService(&memOrderRepo{}, notify.Noop{}, zap.NewNop())
	m := NewManager(svc, payment.Config{ProcessingDelay: time.Hour, SuccessDisplay: time.Hour}, zap.NewNop())

	base := time.Now()
	m.now = func() time.Time { return base }

	idle := m.Session("idle")
	_ = idle

	paying := m.Session("paying")
	paying.AddService(conduct())
	_, err := paying.Checkout()
	require.NoError(t, err)
	require.NoError(t, paying.Pay("0712345678"))

	m.now = func() time.Time { return base.Add(time.Hour) }
	evicted := m.Sweep(30 * time.Minute)
	assert.Equal(t, 1, evicted)

	// An evicted id gets a fresh session; the paying one is preserved.
	fresh := m.Session("idle")
	require.NotSame(t, idle, fresh)
	assert.Same(t, paying, m.Session("paying"))
}
