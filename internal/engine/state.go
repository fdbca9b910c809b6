package engine

import (
	"strconv"
	"sync/atomic"

	"signal_scanner/internal/models"
)

type bound struct {
	high float64
	low  float64
}

// instrumentState is confined to its session goroutine. Only activeCount is
// read from outside, by the status surface.
type instrumentState struct {
	pair string

	box0Set  bool
	box0High float64
	box0Low  float64

	l1Active   map[models.SignalType][]*models.Signal
	structural map[string]map[int]bound

	active      []*models.Signal
	activeCount atomic.Int64
}

func newInstrumentState(pair string) *instrumentState {
	return &instrumentState{
		pair:       pair,
		l1Active:   map[models.SignalType][]*models.Signal{},
		structural: map[string]map[int]bound{},
	}
}

func (st *instrumentState) register(sig *models.Signal) {
	st.active = append(st.active, sig)
	if sig.Level == 1 {
		st.l1Active[sig.SignalType] = append(st.l1Active[sig.SignalType], sig)
	}
	st.activeCount.Store(int64(len(st.active)))
}

func (st *instrumentState) dropL1(sig *models.Signal) {
	list := st.l1Active[sig.SignalType]
	kept := list[:0]
	for _, s := range list {
		if s != sig {
			kept = append(kept, s)
		}
	}
	st.l1Active[sig.SignalType] = kept
}

func structKey(t models.SignalType, values []int) string {
	b := make([]byte, 0, len(values)*6+8)
	b = append(b, t...)
	for _, v := range values {
		b = append(b, ':')
		b = strconv.AppendInt(b, int64(v), 10)
	}
	return string(b)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
