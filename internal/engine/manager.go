package engine

import (
	"context"
	"sync"
	"sync/atomic"

	scanner "signal_scanner/internal/modules/scanner/service"

	"signal_scanner/internal/models"
)

// Manager owns one session per pair. Sessions are created lazily on the
// first update and live until the app context is cancelled.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	deps     *Deps
	ctx      context.Context

	signalsSent atomic.Int64
}

func NewManager(
	ctx context.Context,
	sc *scanner.Scanner,
	store SignalStore,
	fw Forwarder,
	points PointResolver,
	notify ServiceNotifier,
) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		ctx:      ctx,
	}
	m.deps = &Deps{
		Scanner:     sc,
		Store:       store,
		Forward:     fw,
		Points:      points,
		Notify:      notify,
		SignalsSent: &m.signalsSent,
	}
	return m
}

// Dispatch routes an update to its pair session, starting one if needed.
// Sends block when the session lags, which keeps per-pair ordering.
func (m *Manager) Dispatch(upd models.BoxUpdate) {
	if upd.Pair == "" {
		return
	}

	m.mu.Lock()
	s, ok := m.sessions[upd.Pair]
	if !ok {
		s = newSession(upd.Pair, m.deps)
		m.sessions[upd.Pair] = s
		go func() {
			s.run(m.ctx)
			m.mu.Lock()
			delete(m.sessions, upd.Pair)
			m.mu.Unlock()
		}()
	}
	m.mu.Unlock()

	select {
	case s.in <- upd:
	case <-m.ctx.Done():
	}
}

func (m *Manager) SignalsSent() int64 { return m.signalsSent.Load() }

// ActiveSignals reports the live proposal counts for the status surface.
func (m *Manager) ActiveSignals() (int, map[string]int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	byPair := make(map[string]int, len(m.sessions))
	for pair, s := range m.sessions {
		n := int(s.state.activeCount.Load())
		if n > 0 {
			byPair[pair] = n
		}
		total += n
	}
	return total, byPair
}
