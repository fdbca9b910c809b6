package engine

import (
	"math"
	"sort"
	"time"

	"github.com/samber/lo"

	"signal_scanner/internal/models"
)

// tradeLevelMax bounds the trade rule table: entry box index equals the
// level, targets cover every stronger primary box.
const tradeLevelMax = 6

// synthesize turns a surviving match into a proposal, or nil when the match
// cannot produce a valid one. The entry box is the primary box at index
// level; its opposite bound is the stop. Targets are the stronger primary
// bounds plus one extension beyond the strongest box, sorted closest to
// entry first.
func synthesize(pair string, m models.PatternMatch, box0High, box0Low float64, now time.Time) *models.Signal {
	if m.Level < 1 || m.Level > tradeLevelMax {
		return nil
	}
	primary := primaryBoxes(m.SignalType, m.BoxDetails)
	if len(primary) <= m.Level {
		return nil
	}

	long := m.SignalType == models.SignalLong
	entryBox := primary[m.Level]

	var entry, stop float64
	if long {
		entry, stop = entryBox.High, entryBox.Low
	} else {
		entry, stop = entryBox.Low, entryBox.High
	}

	targets := make([]float64, 0, m.Level+1)
	for i := 0; i < m.Level; i++ {
		if long {
			targets = append(targets, primary[i].High)
		} else {
			targets = append(targets, primary[i].Low)
		}
	}
	size := primary[0].High - primary[0].Low
	if long {
		targets = append(targets, primary[0].High+size)
	} else {
		targets = append(targets, primary[0].Low-size)
	}

	if !finite(entry) || !finite(stop) || lo.SomeBy(targets, func(t float64) bool { return !finite(t) }) {
		return nil
	}

	// closest to entry first
	sort.Float64s(targets)
	if !long {
		for i, j := 0, len(targets)-1; i < j; i, j = i+1, j-1 {
			targets[i], targets[j] = targets[j], targets[i]
		}
	}

	risk := math.Abs(entry - stop)
	if risk <= models.PriceTolerance {
		return nil
	}
	if long && !(stop < entry && entry < targets[0]) {
		return nil
	}
	if !long && !(stop > entry && entry > targets[0]) {
		return nil
	}

	rr := lo.Map(targets, func(t float64, _ int) int {
		return int(math.Round(math.Abs(t-entry) / risk))
	})

	return &models.Signal{
		Pair:            pair,
		SignalType:      m.SignalType,
		Level:           m.Level,
		PatternSequence: m.Path,
		BoxDetails:      m.BoxDetails,
		Entry:           entry,
		StopLosses:      []float64{stop},
		Targets:         targets,
		RiskReward:      rr,
		TargetHits:      make([]*models.Hit, len(targets)),
		Status:          models.StatusActive,
		Box0High:        box0High,
		Box0Low:         box0Low,
		CreatedAt:       now,
	}
}

// primaryBoxes filters the details down to the signal's own side and sorts
// them strongest first.
func primaryBoxes(t models.SignalType, details []models.BoxDetail) []models.BoxDetail {
	primary := lo.Filter(details, func(d models.BoxDetail, _ int) bool {
		if t == models.SignalLong {
			return d.IntegerValue > 0
		}
		return d.IntegerValue < 0
	})
	sort.SliceStable(primary, func(i, j int) bool {
		return absInt(primary[i].IntegerValue) > absInt(primary[j].IntegerValue)
	})
	return primary
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
