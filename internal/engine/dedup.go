package engine

import (
	"sort"

	"github.com/samber/lo"

	"signal_scanner/internal/models"
)

// trackBox0 refreshes the box 0 reference for the pair. A moved reference
// clears the L1 memory for both signal types; structural memory stays.
// Returns true when the reference changed.
func (st *instrumentState) trackBox0(high, low float64) bool {
	if st.box0Set && models.EqualPrice(high, st.box0High) && models.EqualPrice(low, st.box0Low) {
		return false
	}
	st.box0Set = true
	st.box0High = high
	st.box0Low = low
	for t := range st.l1Active {
		delete(st.l1Active, t)
	}
	return true
}

// passesL1Gate admits at most one live L1 proposal per signal type while the
// box 0 reference stands still. Levels above 1 pass through.
func (st *instrumentState) passesL1Gate(m models.PatternMatch) bool {
	if m.Level != 1 {
		return true
	}
	dup := lo.SomeBy(st.l1Active[m.SignalType], func(s *models.Signal) bool {
		return models.EqualPrice(s.Box0High, st.box0High) && models.EqualPrice(s.Box0Low, st.box0Low)
	})
	return !dup
}

// removeSubsetDuplicates collapses, per signal type, matches whose element
// set is contained in an already kept higher-level match of the same update.
func removeSubsetDuplicates(matches []models.PatternMatch) []models.PatternMatch {
	byType := lo.GroupBy(matches, func(m models.PatternMatch) models.SignalType { return m.SignalType })

	var out []models.PatternMatch
	for _, t := range []models.SignalType{models.SignalLong, models.SignalShort} {
		group := byType[t]
		if len(group) == 0 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool { return group[i].Level > group[j].Level })

		var kept []models.PatternMatch
		var keptSets []map[int]struct{}
		for _, m := range group {
			set := elementSet(m.Path)
			covered := lo.SomeBy(keptSets, func(ks map[int]struct{}) bool { return isSubset(set, ks) })
			if covered {
				continue
			}
			kept = append(kept, m)
			keptSets = append(keptSets, set)
		}
		out = append(out, kept...)
	}
	return out
}

// admitStructural is the final gate. The tracked boxes are the strongest
// level-many primary boxes; the entry box itself is not tracked. A key whose
// tracked bounds have not moved since the last admit filters the proposal.
func (st *instrumentState) admitStructural(sig *models.Signal) bool {
	primary := primaryBoxes(sig.SignalType, sig.BoxDetails)
	if len(primary) < sig.Level {
		return true
	}
	tracked := primary[:sig.Level]

	values := lo.Map(tracked, func(d models.BoxDetail, _ int) int { return d.IntegerValue })
	key := structKey(sig.SignalType, values)

	stored, ok := st.structural[key]
	if !ok {
		st.structural[key] = snapshotBounds(tracked)
		return true
	}

	same := true
	for _, d := range tracked {
		b, ok := stored[d.IntegerValue]
		if !ok || !models.EqualPrice(b.high, d.High) || !models.EqualPrice(b.low, d.Low) {
			same = false
			break
		}
	}
	if same {
		return false
	}
	st.structural[key] = snapshotBounds(tracked)
	return true
}

func snapshotBounds(details []models.BoxDetail) map[int]bound {
	m := make(map[int]bound, len(details))
	for _, d := range details {
		m[d.IntegerValue] = bound{high: d.High, low: d.Low}
	}
	return m
}

func elementSet(path []int) map[int]struct{} {
	s := make(map[int]struct{}, len(path))
	for _, v := range path {
		s[v] = struct{}{}
	}
	return s
}

func isSubset(sub, super map[int]struct{}) bool {
	if len(sub) > len(super) {
		return false
	}
	for v := range sub {
		if _, ok := super[v]; !ok {
			return false
		}
	}
	return true
}
