package service

import (
	"testing"
	"time"
)

func TestStateFlags(t *testing.T) {
	s := NewState()
	if s.Ready() || s.WSConnected() {
		t.Fatal("fresh state must be down")
	}
	s.SetReady(true)
	s.SetWSConnected(true)
	if !s.Ready() || !s.WSConnected() {
		t.Fatal("flags did not stick")
	}
}

func TestStateLastUpdate(t *testing.T) {
	s := NewState()
	if !s.LastUpdate().IsZero() {
		t.Fatal("untouched state must report zero time")
	}
	at := time.Date(2026, 8, 6, 12, 0, 0, 500_000_000, time.UTC)
	s.TouchUpdate(at)
	if got := s.LastUpdate(); !got.Equal(at) {
		t.Fatalf("last update %v, want %v", got, at)
	}
}
