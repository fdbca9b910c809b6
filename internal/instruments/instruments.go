package instruments

import (
	"math"
	"strings"
	"sync"

	"signal_scanner/pkg/logger"
)

// defaultPoint is used when a pair fits no known asset class.
const defaultPoint = 0.0001

// pointOverrides pin scales that the generic rules get wrong.
var pointOverrides = map[string]float64{
	"BTCUSD": 10.0,
	"YFIUSD": 10.0,
	"MKRUSD": 1.0,
	"XAUUSD": 0.1,
	"XAGUSD": 0.01,
}

var cryptoPrefixes = []string{
	"BTC", "ETH", "SOL", "XRP", "ADA", "DOGE", "LTC", "BNB",
	"DOT", "AVAX", "LINK", "MATIC", "UNI", "ATOM", "YFI", "MKR",
}

var currencyCodes = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CHF": true, "AUD": true, "CAD": true, "NZD": true,
}

// Resolver maps a pair to its point scale. The scale is pinned on the first
// update for the pair so later price swings cannot re-grade the instrument.
type Resolver struct {
	mu     sync.RWMutex
	points map[string]float64
	warned map[string]bool
}

func New() *Resolver {
	return &Resolver{
		points: make(map[string]float64),
		warned: make(map[string]bool),
	}
}

func (r *Resolver) Point(pair string, price float64) float64 {
	r.mu.RLock()
	p, ok := r.points[pair]
	r.mu.RUnlock()
	if ok {
		return p
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok = r.points[pair]; ok {
		return p
	}
	p = r.resolve(pair, price)
	r.points[pair] = p
	return p
}

func (r *Resolver) resolve(pair string, price float64) float64 {
	up := strings.ToUpper(strings.TrimSpace(pair))

	if p, ok := pointOverrides[up]; ok {
		return p
	}

	switch {
	case isForex(up):
		if strings.Contains(up, "JPY") {
			return 0.001
		}
		return 0.0001
	case isCrypto(up):
		return cryptoPoint(price)
	case isStock(up):
		return 0.01
	}

	if !r.warned[pair] {
		r.warned[pair] = true
		logger.Error("unknown instrument %s, using default point %g", pair, defaultPoint)
	}
	return defaultPoint
}

// cryptoPoint derives the scale from the first observed price so that the
// normalized box values stay in the same integer range across instruments.
func cryptoPoint(price float64) float64 {
	if price <= 0 {
		return 1.0
	}
	exp := math.Floor(math.Log10(price)) - 3
	p := math.Pow(10, exp)
	if p < 0.0001 {
		return 0.0001
	}
	if p > 10 {
		return 10
	}
	return p
}

func isForex(pair string) bool {
	if len(pair) != 6 {
		return false
	}
	return currencyCodes[pair[:3]] && currencyCodes[pair[3:]]
}

func isCrypto(pair string) bool {
	for _, pre := range cryptoPrefixes {
		if strings.HasPrefix(pair, pre) {
			return true
		}
	}
	return false
}

func isStock(pair string) bool {
	if len(pair) < 1 || len(pair) > 5 {
		return false
	}
	for _, c := range pair {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
