package engine

import (
	"testing"

	"signal_scanner/internal/models"
)

func btcDetails() []models.BoxDetail {
	return []models.BoxDetail{
		{IntegerValue: 2000, High: 98000, Low: 78000, Value: 20000},
		{IntegerValue: 1732, High: 97000, Low: 80680, Value: 17320},
		{IntegerValue: -1500, High: 85000, Low: 70000, Value: -15000},
	}
}

func btcMatch() models.PatternMatch {
	return models.PatternMatch{
		Path:       []int{2000, 1732, -1500},
		SignalType: models.SignalLong,
		Level:      1,
		BoxDetails: btcDetails(),
	}
}

func TestTrackBox0(t *testing.T) {
	st := newInstrumentState("BTCUSD")

	if !st.trackBox0(98000, 78000) {
		t.Fatal("first observation must register a change")
	}
	if st.trackBox0(98000, 78000.000001) {
		t.Fatal("sub-tolerance move must not count as a change")
	}
	if !st.trackBox0(98010, 78010) {
		t.Fatal("moved reference must count as a change")
	}
}

func TestTrackBox0ClearsL1Memory(t *testing.T) {
	st := newInstrumentState("BTCUSD")
	st.trackBox0(98000, 78000)
	st.register(&models.Signal{SignalType: models.SignalLong, Level: 1, Box0High: 98000, Box0Low: 78000})
	st.register(&models.Signal{SignalType: models.SignalShort, Level: 1, Box0High: 98000, Box0Low: 78000})

	st.trackBox0(98010, 78010)
	if len(st.l1Active[models.SignalLong]) != 0 || len(st.l1Active[models.SignalShort]) != 0 {
		t.Fatal("box 0 change must clear l1 memory for both signal types")
	}
}

func TestPassesL1Gate(t *testing.T) {
	st := newInstrumentState("BTCUSD")
	st.trackBox0(98000, 78000)

	m := btcMatch()
	if !st.passesL1Gate(m) {
		t.Fatal("no live L1 yet, gate must pass")
	}

	st.register(&models.Signal{SignalType: models.SignalLong, Level: 1, Box0High: 98000, Box0Low: 78000})
	if st.passesL1Gate(m) {
		t.Fatal("second L1 LONG against the same box 0 must be filtered")
	}

	short := m
	short.SignalType = models.SignalShort
	if !st.passesL1Gate(short) {
		t.Fatal("L1 gate is per signal type")
	}

	l2 := m
	l2.Level = 2
	if !st.passesL1Gate(l2) {
		t.Fatal("levels above 1 bypass the gate")
	}
}

func TestRemoveSubsetDuplicates(t *testing.T) {
	super := models.PatternMatch{
		Path:       []int{2000, -1732, 1299, 1125, -974, 843},
		SignalType: models.SignalLong,
		Level:      2,
	}
	sub := models.PatternMatch{
		Path:       []int{2000, -1732, 1299},
		SignalType: models.SignalLong,
		Level:      1,
	}
	shortSub := models.PatternMatch{
		Path:       []int{-2000, 1732, -1299},
		SignalType: models.SignalShort,
		Level:      1,
	}

	out := removeSubsetDuplicates([]models.PatternMatch{sub, super, shortSub})
	if len(out) != 2 {
		t.Fatalf("got %d matches, want 2: %v", len(out), out)
	}
	for _, m := range out {
		if m.SignalType == models.SignalLong && m.Level != 2 {
			t.Fatalf("subset match survived: %v", m)
		}
	}

	// property: no retained element set is contained in another of the same type
	for i, a := range out {
		for j, b := range out {
			if i == j || a.SignalType != b.SignalType {
				continue
			}
			if isSubset(elementSet(a.Path), elementSet(b.Path)) {
				t.Fatalf("retained %v is a subset of %v", a.Path, b.Path)
			}
		}
	}
}

func TestAdmitStructural(t *testing.T) {
	st := newInstrumentState("BTCUSD")

	sig := func(details []models.BoxDetail) *models.Signal {
		return &models.Signal{
			SignalType: models.SignalLong,
			Level:      1,
			BoxDetails: details,
		}
	}

	if !st.admitStructural(sig(btcDetails())) {
		t.Fatal("first proposal must be admitted")
	}
	if st.admitStructural(sig(btcDetails())) {
		t.Fatal("identical tracked bounds must be filtered")
	}

	// the entry box is not tracked for an L1, moving it changes nothing
	moved := btcDetails()
	moved[1].High = 97100
	if st.admitStructural(sig(moved)) {
		t.Fatal("entry box move must not re-admit")
	}

	// moving the tracked box 2000 re-admits
	shifted := btcDetails()
	shifted[0].High = 98050
	if !st.admitStructural(sig(shifted)) {
		t.Fatal("tracked box move must re-admit")
	}
	if st.admitStructural(sig(shifted)) {
		t.Fatal("replaced snapshot must filter the repeat")
	}
}
