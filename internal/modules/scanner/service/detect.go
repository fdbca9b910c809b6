package service

import (
	"math"
	"sort"

	"signal_scanner/internal/models"
)

// Detect normalizes the update's boxes by the instrument point and returns
// every catalog path fully present in the integer set, in both orientations.
// Output order is deterministic: long matches in catalog order, then short.
func (s *Scanner) Detect(boxes []models.Box, point float64) []models.PatternMatch {
	present := normalize(boxes, point)
	if len(present) == 0 {
		return nil
	}

	var longIdx, shortIdx []int
	for v := range present {
		if v > 0 {
			longIdx = append(longIdx, s.byFirst[v]...)
		} else {
			shortIdx = append(shortIdx, s.byFirst[-v]...)
		}
	}
	sort.Ints(longIdx)
	sort.Ints(shortIdx)

	var matches []models.PatternMatch
	for _, i := range longIdx {
		if m, ok := s.match(s.paths[i], present, false); ok {
			matches = append(matches, m)
		}
	}
	for _, i := range shortIdx {
		if m, ok := s.match(s.paths[i], present, true); ok {
			matches = append(matches, m)
		}
	}
	return matches
}

func (s *Scanner) match(path []int, present map[int]models.Box, negate bool) (models.PatternMatch, bool) {
	oriented := make([]int, len(path))
	for i, v := range path {
		if negate {
			v = -v
		}
		if _, ok := present[v]; !ok {
			return models.PatternMatch{}, false
		}
		oriented[i] = v
	}

	details := make([]models.BoxDetail, len(oriented))
	for i, v := range oriented {
		b := present[v]
		details[i] = models.BoxDetail{
			IntegerValue: v,
			High:         b.High,
			Low:          b.Low,
			Value:        b.Value,
		}
	}

	st := models.SignalLong
	if oriented[0] < 0 {
		st = models.SignalShort
	}
	return models.PatternMatch{
		Path:       oriented,
		SignalType: st,
		Level:      Level(oriented),
		BoxDetails: details,
	}, true
}

// normalize rounds each box value by the point scale and drops zeros. On a
// duplicate integer value the later box wins; producers must not send two
// boxes with the same integer value and different bounds in one update.
func normalize(boxes []models.Box, point float64) map[int]models.Box {
	if point <= 0 {
		return nil
	}
	present := make(map[int]models.Box, len(boxes))
	for _, b := range boxes {
		iv := int(math.Round(b.Value / point))
		if iv == 0 {
			continue
		}
		present[iv] = b
	}
	return present
}
