package models

import "time"

// Box is one price interval of an instrument snapshot. Value keeps its sign:
// positive boxes are bullish, negative bearish.
type Box struct {
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Value float64 `json:"value"`
}

// BoxUpdate is a full box snapshot for one pair plus the current price.
type BoxUpdate struct {
	Pair      string
	Boxes     []Box
	Price     float64
	Timestamp time.Time
}
