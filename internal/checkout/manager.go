package checkout

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SammyMuraya-DA/online-cyber/internal/domain/order"
	"github.com/SammyMuraya-DA/online-cyber/internal/domain/payment"
)

// Manager owns the per-session checkout state, creating sessions on demand
// and evicting ones that have gone idle.
type Manager struct {
	orders *order.Service
	simCfg payment.Config
	lg     *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager.
func NewManager(orders *order.Service, simCfg payment.Config, lg *zap.Logger) *Manager {
	return &Manager{
		orders:   orders,
		simCfg:   simCfg,
		lg:       lg,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Session returns the session for the given id, creating it if needed.
func (m *Manager) Session(id string) *Session {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		s = NewSession(m.orders, m.simCfg, m.lg.With(zap.String("session", id)))
		m.sessions[id] = s
	}
	m.mu.Unlock()

	s.touch(m.now())
	return s
}

// Sweep evicts sessions idle since before maxIdle ago. Sessions with a
// payment or submission in flight are kept regardless of age. Returns the
// eviction count.
//
// The manager lock is never held while probing a session: idle takes the
// session lock, and a session stuck in a slow collaborator must not freeze
// session lookup for every other visitor.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	m.mu.Lock()
	candidates := make(map[string]*Session, len(m.sessions))
	for id, s := range m.sessions {
		candidates[id] = s
	}
	m.mu.Unlock()

	evicted := 0
	for id, s := range candidates {
		if !s.idle(cutoff) {
			continue
		}
		m.mu.Lock()
		// Evict only if the id still maps to the session we probed.
		if m.sessions[id] == s {
			delete(m.sessions, id)
			evicted++
		}
		m.mu.Unlock()
	}
	return evicted
}

// Run sweeps idle sessions on the given interval until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(maxIdle); n > 0 {
				m.lg.Debug("evicted idle sessions", zap.Int("count", n))
			}
		}
	}
}
