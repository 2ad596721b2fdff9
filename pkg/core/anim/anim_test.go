package anim

import (
	"testing"
	"time"
)

func TestSchedule_Defaults(t *testing.T) {
	s := NewScheduler(Config{})
	tests := []struct {
		index     int
		wantDelay time.Duration
	}{
		{0, 0},
		{1, 6 * time.Millisecond},
		{50, 300 * time.Millisecond},
		{99, 594 * time.Millisecond},
		{-3, 0},
	}
	for _, tt := range tests {
		got := s.Schedule(tt.index)
		if got.Delay != tt.wantDelay {
			t.Errorf("Schedule(%d).Delay = %v, want %v", tt.index, got.Delay, tt.wantDelay)
		}
		if got.Duration != DefaultDuration {
			t.Errorf("Schedule(%d).Duration = %v, want %v", tt.index, got.Duration, DefaultDuration)
		}
	}
}

func TestSchedule_Custom(t *testing.T) {
	s := NewScheduler(Config{Duration: time.Second, Stagger: 10 * time.Millisecond})
	got := s.Schedule(3)
	if got.Delay != 30*time.Millisecond || got.Duration != time.Second {
		t.Errorf("Schedule(3) = %+v, want delay 30ms duration 1s", got)
	}
}

func TestSpan(t *testing.T) {
	s := NewScheduler(DefaultConfig())
	if got := s.Span(0); got != 0 {
		t.Errorf("Span(0) = %v, want 0", got)
	}
	if got, want := s.Span(100), 794*time.Millisecond; got != want {
		t.Errorf("Span(100) = %v, want %v", got, want)
	}
}

func TestTiming_Progress(t *testing.T) {
	tm := Timing{Delay: 100 * time.Millisecond, Duration: 200 * time.Millisecond}
	tests := []struct {
		elapsed time.Duration
		want    float64
	}{
		{0, 0},
		{100 * time.Millisecond, 0},
		{200 * time.Millisecond, 0.5},
		{300 * time.Millisecond, 1},
		{time.Second, 1},
	}
	for _, tt := range tests {
		if got := tm.Progress(tt.elapsed); got != tt.want {
			t.Errorf("Progress(%v) = %v, want %v", tt.elapsed, got, tt.want)
		}
	}
	if got := (Timing{}).Progress(time.Millisecond); got != 1 {
		t.Errorf("zero timing Progress = %v, want 1", got)
	}
}
