package models

import (
	"math"
	"time"
)

type SignalType string

const (
	SignalLong  SignalType = "LONG"
	SignalShort SignalType = "SHORT"
)

type SignalStatus string

const (
	StatusActive  SignalStatus = "active"
	StatusSuccess SignalStatus = "success"
	StatusFailed  SignalStatus = "failed"
)

// PriceTolerance is the absolute tolerance for every price and box-bound
// comparison. Never compare prices with ==.
const PriceTolerance = 1e-5

// EqualPrice reports whether two prices are equal within PriceTolerance.
func EqualPrice(a, b float64) bool { return math.Abs(a-b) <= PriceTolerance }

// BoxDetail ties a path element to the box that produced it.
type BoxDetail struct {
	IntegerValue int     `json:"integer_value"`
	High         float64 `json:"high"`
	Low          float64 `json:"low"`
	Value        float64 `json:"value"`
}

// PatternMatch is a catalog path found in the current box set.
type PatternMatch struct {
	Path       []int
	SignalType SignalType
	Level      int
	BoxDetails []BoxDetail
}

// Hit marks a crossed threshold.
type Hit struct {
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// Signal is a synthesized trade proposal.
type Signal struct {
	ID              int64
	Pair            string
	SignalType      SignalType
	Level           int
	PatternSequence []int
	BoxDetails      []BoxDetail
	Entry           float64
	StopLosses      []float64
	Targets         []float64 // closest to entry first
	RiskReward      []int
	TargetHits      []*Hit
	StopLossHit     *Hit
	Status          SignalStatus
	SettledPrice    float64

	// box 0 bounds at synthesis time, consulted by the L1 gate
	Box0High float64
	Box0Low  float64

	CreatedAt time.Time
}

func (s *Signal) Settled() bool { return s.Status != StatusActive }
