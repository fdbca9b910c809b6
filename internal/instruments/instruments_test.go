package instruments

import (
	"os"
	"testing"

	"signal_scanner/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestPointOverrides(t *testing.T) {
	r := New()
	if got := r.Point("BTCUSD", 97000); got != 10.0 {
		t.Fatalf("BTCUSD point %v, want 10", got)
	}
	if got := r.Point("XAUUSD", 2400); got != 0.1 {
		t.Fatalf("XAUUSD point %v, want 0.1", got)
	}
}

func TestPointForex(t *testing.T) {
	r := New()
	if got := r.Point("EURUSD", 1.085); got != 0.0001 {
		t.Fatalf("EURUSD point %v, want 0.0001", got)
	}
	if got := r.Point("USDJPY", 150.2); got != 0.001 {
		t.Fatalf("USDJPY point %v, want 0.001", got)
	}
}

func TestPointCryptoByPrice(t *testing.T) {
	r := New()
	if got := r.Point("ETHUSD", 3000); got != 1.0 {
		t.Fatalf("ETHUSD point %v, want 1", got)
	}
	if got := r.Point("DOGEUSD", 0.2); got != 0.0001 {
		t.Fatalf("DOGEUSD point %v, want 0.0001", got)
	}
	if got := r.Point("SOLUSD", 0); got != 1.0 {
		t.Fatalf("zero price crypto point %v, want 1", got)
	}
}

func TestPointStockAndDefault(t *testing.T) {
	r := New()
	if got := r.Point("AAPL", 190); got != 0.01 {
		t.Fatalf("AAPL point %v, want 0.01", got)
	}
	if got := r.Point("UNKNOWN99", 5); got != defaultPoint {
		t.Fatalf("unknown point %v, want %v", got, defaultPoint)
	}
}

func TestPointPinnedOnFirstPrice(t *testing.T) {
	r := New()
	first := r.Point("ETHUSD", 3000)
	if first != 1.0 {
		t.Fatalf("first resolve %v, want 1", first)
	}
	if got := r.Point("ETHUSD", 0.5); got != first {
		t.Fatalf("point re-graded to %v after a price swing", got)
	}
}
