package signals

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"
	"github.com/opentracing/opentracing-go"

	"signal_scanner/internal/models"
	"signal_scanner/internal/store/pg/signals/sql"
	"signal_scanner/pkg/db"
)

// Signals implement db store
type Signals struct {
	db  *db.PgTxManager
	sql *sql.Queries
}

// New instance
func New(m *db.PgTxManager) *Signals {
	return &Signals{
		db:  m,
		sql: sql.New(),
	}
}

// priceHit is the stored shape of one stop or target level. Timestamp stays
// empty until the level is hit.
type priceHit struct {
	Price     float64 `json:"price"`
	Timestamp *string `json:"timestamp,omitempty"`
}

func (s *Signals) Insert(ctx context.Context, sig *models.Signal) (id int64, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "Signals.Insert")
	defer span.Finish()
	defer func() {
		if err != nil {
			err = fmt.Errorf("Signals.Insert: %w", err)
		}
	}()

	details, err := sonic.Marshal(sig.BoxDetails)
	if err != nil {
		return 0, err
	}
	targets, err := sonic.Marshal(targetRows(sig))
	if err != nil {
		return 0, err
	}
	stops, err := sonic.Marshal(stopRows(sig))
	if err != nil {
		return 0, err
	}

	err = s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		var e error
		id, e = s.sql.Insert(ctxTx, tx, &sql.InsertParams{
			Pair:            sig.Pair,
			SignalType:      string(sig.SignalType),
			Level:           int32(sig.Level),
			PatternSequence: toInt32(sig.PatternSequence),
			BoxDetails:      details,
			Entry:           sig.Entry,
			StopLosses:      stops,
			Targets:         targets,
			RiskReward:      toInt32(sig.RiskReward),
			Status:          string(sig.Status),
		})
		return e
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Signals) UpdateHits(ctx context.Context, sig *models.Signal) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "Signals.UpdateHits")
	defer span.Finish()
	defer func() {
		if err != nil {
			err = fmt.Errorf("Signals.UpdateHits: %w", err)
		}
	}()

	targets, err := sonic.Marshal(targetRows(sig))
	if err != nil {
		return err
	}
	stops, err := sonic.Marshal(stopRows(sig))
	if err != nil {
		return err
	}

	return s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		return s.sql.UpdateHits(ctxTx, tx, &sql.UpdateHitsParams{
			ID:         sig.ID,
			Targets:    targets,
			StopLosses: stops,
		})
	})
}

func (s *Signals) Settle(ctx context.Context, sig *models.Signal) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "Signals.Settle")
	defer span.Finish()
	defer func() {
		if err != nil {
			err = fmt.Errorf("Signals.Settle: %w", err)
		}
	}()

	targets, err := sonic.Marshal(targetRows(sig))
	if err != nil {
		return err
	}
	stops, err := sonic.Marshal(stopRows(sig))
	if err != nil {
		return err
	}

	return s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		return s.sql.Settle(ctxTx, tx, &sql.SettleParams{
			ID:           sig.ID,
			Status:       string(sig.Status),
			SettledPrice: sig.SettledPrice,
			Targets:      targets,
			StopLosses:   stops,
		})
	})
}

func targetRows(sig *models.Signal) []priceHit {
	rows := make([]priceHit, len(sig.Targets))
	for i, price := range sig.Targets {
		rows[i] = priceHit{Price: price}
		if i < len(sig.TargetHits) && sig.TargetHits[i] != nil {
			rows[i].Timestamp = isoPtr(sig.TargetHits[i].Timestamp)
		}
	}
	return rows
}

func stopRows(sig *models.Signal) []priceHit {
	rows := make([]priceHit, len(sig.StopLosses))
	for i, price := range sig.StopLosses {
		rows[i] = priceHit{Price: price}
	}
	if len(rows) > 0 && sig.StopLossHit != nil {
		rows[0].Timestamp = isoPtr(sig.StopLossHit.Timestamp)
	}
	return rows
}

func isoPtr(t time.Time) *string {
	v := t.UTC().Format("2006-01-02T15:04:05.000Z")
	return &v
}

func toInt32(in []int) []int32 {
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = int32(v)
	}
	return out
}
