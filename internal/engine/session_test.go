package engine

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"signal_scanner/internal/models"
	scanner "signal_scanner/internal/modules/scanner/service"
	"signal_scanner/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type memStore struct {
	mu         sync.Mutex
	nextID     int64
	inserted   []*models.Signal
	hitUpdates []int64
	settled    []int64
	failInsert bool
	insertCh   chan int64
}

func (s *memStore) Insert(_ context.Context, sig *models.Signal) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failInsert {
		return 0, fmt.Errorf("store down")
	}
	s.nextID++
	cp := *sig
	s.inserted = append(s.inserted, &cp)
	if s.insertCh != nil {
		s.insertCh <- s.nextID
	}
	return s.nextID, nil
}

func (s *memStore) UpdateHits(_ context.Context, sig *models.Signal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hitUpdates = append(s.hitUpdates, sig.ID)
	return nil
}

func (s *memStore) Settle(_ context.Context, sig *models.Signal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settled = append(s.settled, sig.ID)
	return nil
}

func (s *memStore) insertCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inserted)
}

type memForward struct {
	mu   sync.Mutex
	sent []*models.Signal
	fail bool
}

func (f *memForward) Forward(_ context.Context, sig *models.Signal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("broadcaster down")
	}
	f.sent = append(f.sent, sig)
	return nil
}

type fixedPoints float64

func (p fixedPoints) Point(string, float64) float64 { return float64(p) }

type memNotify struct {
	mu   sync.Mutex
	msgs []string
}

func (n *memNotify) SendService(_ context.Context, format string, args ...any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, fmt.Sprintf(format, args...))
}

func testDeps(store *memStore, fw *memForward, notify *memNotify) *Deps {
	m := NewManager(context.Background(), scanner.New(), store, fw, fixedPoints(10), notify)
	return m.deps
}

func btcUpdate(price float64) models.BoxUpdate {
	return models.BoxUpdate{
		Pair: "BTCUSD",
		Boxes: []models.Box{
			{High: 98000, Low: 78000, Value: 20000},
			{High: 97000, Low: 80680, Value: 17320},
			{High: 85000, Low: 70000, Value: -15000},
		},
		Price:     price,
		Timestamp: time.Now(),
	}
}

func TestSessionEmitsLongL1(t *testing.T) {
	store := &memStore{}
	fw := &memForward{}
	notify := &memNotify{}
	s := newSession("BTCUSD", testDeps(store, fw, notify))
	ctx := context.Background()

	s.handle(ctx, btcUpdate(90000))

	if store.insertCount() != 1 {
		t.Fatalf("inserts %d, want 1", store.insertCount())
	}
	sig := store.inserted[0]
	if sig.SignalType != models.SignalLong || sig.Level != 1 {
		t.Fatalf("signal %s L%d", sig.SignalType, sig.Level)
	}
	if sig.Entry != 97000 || sig.StopLosses[0] != 80680 {
		t.Fatalf("entry %v stop %v", sig.Entry, sig.StopLosses)
	}
	if len(fw.sent) != 1 {
		t.Fatalf("forwards %d, want 1", len(fw.sent))
	}
	if got := s.deps.SignalsSent.Load(); got != 1 {
		t.Fatalf("signals sent %d, want 1", got)
	}
	if n := s.state.activeCount.Load(); n != 1 {
		t.Fatalf("active %d, want 1", n)
	}
}

func TestSessionSuppressesReplay(t *testing.T) {
	store := &memStore{}
	s := newSession("BTCUSD", testDeps(store, &memForward{}, &memNotify{}))
	ctx := context.Background()

	s.handle(ctx, btcUpdate(90000))
	s.handle(ctx, btcUpdate(90000))

	if store.insertCount() != 1 {
		t.Fatalf("replayed boxes produced %d inserts, want 1", store.insertCount())
	}
}

func TestSessionBox0ChangeReopensL1(t *testing.T) {
	store := &memStore{}
	s := newSession("BTCUSD", testDeps(store, &memForward{}, &memNotify{}))
	ctx := context.Background()

	s.handle(ctx, btcUpdate(90000))
	s.handle(ctx, btcUpdate(90000))

	moved := btcUpdate(90000)
	moved.Boxes[0].High = 98010
	moved.Boxes[0].Low = 78010
	s.handle(ctx, moved)

	if store.insertCount() != 2 {
		t.Fatalf("moved box 0 produced %d inserts, want 2", store.insertCount())
	}
}

func TestSessionTracksThroughStore(t *testing.T) {
	store := &memStore{}
	notify := &memNotify{}
	s := newSession("BTCUSD", testDeps(store, &memForward{}, notify))
	ctx := context.Background()

	s.handle(ctx, btcUpdate(90000))
	s.handle(ctx, btcUpdate(98500)) // first target fills
	s.handle(ctx, btcUpdate(80000)) // stop fills

	if len(store.hitUpdates) != 1 {
		t.Fatalf("hit updates %v, want one", store.hitUpdates)
	}
	if len(store.settled) != 1 {
		t.Fatalf("settles %v, want one", store.settled)
	}
	if s.state.activeCount.Load() != 0 {
		t.Fatal("settled proposal must leave the active set")
	}
	if len(notify.msgs) == 0 {
		t.Fatal("settlement must notify")
	}
}

func TestSessionStoreFailureKeepsSignalLocal(t *testing.T) {
	store := &memStore{failInsert: true}
	fw := &memForward{}
	s := newSession("BTCUSD", testDeps(store, fw, &memNotify{}))
	ctx := context.Background()

	s.handle(ctx, btcUpdate(90000))

	if len(fw.sent) != 1 {
		t.Fatal("insert failure must not block forwarding")
	}
	if fw.sent[0].ID >= 0 {
		t.Fatalf("local signal must carry a negative id, got %d", fw.sent[0].ID)
	}
	if s.state.activeCount.Load() != 1 {
		t.Fatal("local signal must stay tracked")
	}

	// settling a local signal never reaches the store
	s.handle(ctx, btcUpdate(80000))
	if len(store.settled) != 0 {
		t.Fatalf("local settle leaked to the store: %v", store.settled)
	}
}

func TestSessionForwardFailureKeepsSignal(t *testing.T) {
	store := &memStore{}
	fw := &memForward{fail: true}
	s := newSession("BTCUSD", testDeps(store, fw, &memNotify{}))
	ctx := context.Background()

	s.handle(ctx, btcUpdate(90000))

	if store.insertCount() != 1 {
		t.Fatal("forward failure must not undo the insert")
	}
	if s.deps.SignalsSent.Load() != 0 {
		t.Fatal("failed forwards must not count as sent")
	}
	if s.state.activeCount.Load() != 1 {
		t.Fatal("failed forward must not drop the signal")
	}
}

func TestSessionEmptyUpdateIsNoop(t *testing.T) {
	store := &memStore{}
	s := newSession("BTCUSD", testDeps(store, &memForward{}, &memNotify{}))

	s.handle(context.Background(), models.BoxUpdate{Pair: "BTCUSD", Price: 90000, Timestamp: time.Now()})

	if store.insertCount() != 0 || s.state.box0Set {
		t.Fatal("empty box array must not touch state")
	}
}

func TestManagerDispatch(t *testing.T) {
	store := &memStore{insertCh: make(chan int64, 1)}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager(ctx, scanner.New(), store, &memForward{}, fixedPoints(10), &memNotify{})
	m.Dispatch(btcUpdate(90000))

	select {
	case <-store.insertCh:
	case <-time.After(5 * time.Second):
		t.Fatal("dispatched update never reached the store")
	}

	if m.SignalsSent() == 0 {
		// forward happens after insert; give the session a moment
		deadline := time.Now().Add(time.Second)
		for m.SignalsSent() == 0 && time.Now().Before(deadline) {
			time.Sleep(10 * time.Millisecond)
		}
	}
	if m.SignalsSent() != 1 {
		t.Fatalf("signals sent %d, want 1", m.SignalsSent())
	}

	total, byPair := m.ActiveSignals()
	if total != 1 || byPair["BTCUSD"] != 1 {
		t.Fatalf("active %d %v", total, byPair)
	}
}
