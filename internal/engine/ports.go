package engine

import (
	"context"

	"signal_scanner/internal/models"
)

// SignalStore persists proposals. Implementations must tolerate concurrent
// single-row writes from many pair executors.
type SignalStore interface {
	Insert(ctx context.Context, sig *models.Signal) (int64, error)
	UpdateHits(ctx context.Context, sig *models.Signal) error
	Settle(ctx context.Context, sig *models.Signal) error
}

// Forwarder pushes an admitted proposal downstream. No retry.
type Forwarder interface {
	Forward(ctx context.Context, sig *models.Signal) error
}

// PointResolver maps a pair to its point scale.
type PointResolver interface {
	Point(pair string, price float64) float64
}

// ServiceNotifier mirrors the notify package surface.
type ServiceNotifier interface {
	SendService(ctx context.Context, format string, args ...any)
}
