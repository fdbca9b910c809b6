package engine

import (
	"context"
	"log"
	"math"
	"sync/atomic"

	"github.com/samber/lo"

	scanner "signal_scanner/internal/modules/scanner/service"

	"signal_scanner/internal/models"
	"signal_scanner/pkg/logger"
)

// Deps is everything a pair session needs besides its own state.
type Deps struct {
	Scanner     *scanner.Scanner
	Store       SignalStore
	Forward     Forwarder
	Points      PointResolver
	Notify      ServiceNotifier
	SignalsSent *atomic.Int64
}

// Session owns one instrument. Updates arrive on its channel in order and
// are processed one at a time; the state never leaves this goroutine.
type Session struct {
	pair     string
	in       chan models.BoxUpdate
	state    *instrumentState
	deps     *Deps
	localSeq int64
}

func newSession(pair string, deps *Deps) *Session {
	return &Session{
		pair:  pair,
		in:    make(chan models.BoxUpdate, 64),
		state: newInstrumentState(pair),
		deps:  deps,
	}
}

func (s *Session) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case upd, ok := <-s.in:
			if !ok {
				return
			}
			s.handle(ctx, upd)
		}
	}
}

func (s *Session) handle(ctx context.Context, upd models.BoxUpdate) {
	if len(upd.Boxes) == 0 {
		return
	}

	res := s.state.applyPrice(upd.Price, upd.Timestamp)
	s.flush(ctx, res)

	point := s.deps.Points.Point(s.pair, upd.Price)
	box0, ok := largestBox(upd.Boxes)
	if !ok {
		return
	}
	s.state.trackBox0(box0.High, box0.Low)

	matches := s.deps.Scanner.Detect(upd.Boxes, point)
	if len(matches) == 0 {
		return
	}

	matches = lo.Filter(matches, func(m models.PatternMatch, _ int) bool {
		return s.state.passesL1Gate(m)
	})
	matches = removeSubsetDuplicates(matches)

	for _, m := range matches {
		sig := synthesize(s.pair, m, s.state.box0High, s.state.box0Low, upd.Timestamp)
		if sig == nil {
			continue
		}
		if !s.state.admitStructural(sig) {
			continue
		}
		s.emit(ctx, sig)
	}
}

// emit completes the in-memory registration before any I/O; store and
// forward failures never undo it.
func (s *Session) emit(ctx context.Context, sig *models.Signal) {
	id, err := s.deps.Store.Insert(ctx, sig)
	if err != nil || id == 0 {
		if err != nil {
			logger.Error("signal insert failed for %s: %v", s.pair, err)
		}
		s.localSeq++
		id = -s.localSeq
	}
	sig.ID = id
	s.state.register(sig)

	log.Printf("[SIGNAL] %s %s L%d entry=%.5f stop=%.5f targets=%v rr=%v",
		s.pair, sig.SignalType, sig.Level, sig.Entry, sig.StopLosses[0], sig.Targets, sig.RiskReward)

	if err := s.deps.Forward.Forward(ctx, sig); err != nil {
		logger.Error("signal forward failed for %s: %v", s.pair, err)
		return
	}
	if s.deps.SignalsSent != nil {
		s.deps.SignalsSent.Add(1)
	}
}

func (s *Session) flush(ctx context.Context, res trackResult) {
	for _, q := range res.updated {
		if q.ID <= 0 {
			continue
		}
		if err := s.deps.Store.UpdateHits(ctx, q); err != nil {
			logger.Error("hit update failed for %s signal %d: %v", s.pair, q.ID, err)
		}
	}
	for _, q := range res.settled {
		if q.ID > 0 {
			if err := s.deps.Store.Settle(ctx, q); err != nil {
				logger.Error("settle failed for %s signal %d: %v", s.pair, q.ID, err)
			}
		}
		log.Printf("[TRACK] %s signal %d settled %s at %.5f", s.pair, q.ID, q.Status, q.SettledPrice)
		if s.deps.Notify != nil {
			s.deps.Notify.SendService(ctx, "%s %s L%d settled %s at %.5f",
				s.pair, q.SignalType, q.Level, q.Status, q.SettledPrice)
		}
	}
}

func largestBox(boxes []models.Box) (models.Box, bool) {
	var best models.Box
	found := false
	max := 0.0
	for _, b := range boxes {
		if a := math.Abs(b.Value); !found || a > max {
			best, max, found = b, a, true
		}
	}
	return best, found
}
