package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStops(t *testing.T) {
	tests := []struct {
		name string
		stop func(*Spinner)
	}{
		{"plain", func(s *Spinner) { s.Stop() }},
		{"success", func(s *Spinner) { s.StopWithSuccess("connected to redis") }},
		{"error", func(s *Spinner) { s.StopWithError("redis unreachable") }},
		{"repeated", func(s *Spinner) { s.Stop(); s.Stop(); s.StopWithError("late") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSpinnerWithContext(context.Background(), "Connecting...")
			s.Start()
			time.Sleep(20 * time.Millisecond)
			tt.stop(s)
			if s.Cancelled() {
				t.Error("an explicit stop is not a cancellation")
			}
		})
	}
}

func TestSpinnerCancelled(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	expired, cancelTimeout := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancelTimeout()

	tests := []struct {
		name string
		ctx  context.Context
	}{
		{"cancelled", cancelled},
		{"deadline", expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSpinnerWithContext(tt.ctx, "Connecting...")
			s.Start()
			time.Sleep(100 * time.Millisecond)
			if !s.Cancelled() {
				t.Error("spinner should report cancellation of its context")
			}
			s.Stop()
		})
	}
}
