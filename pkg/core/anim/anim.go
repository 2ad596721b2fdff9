// Package anim schedules the staggered transitions of the chart's circles.
//
// Every entering or persisting circle i transitions over [Config.Duration]
// after a delay of i*[Config.Stagger]. Exiting circles are removed instantly
// and never receive a [Timing].
package anim

import "time"

const (
	// DefaultDuration is the length of each circle transition.
	DefaultDuration = 200 * time.Millisecond
	// DefaultStagger is the per-index delay increment.
	DefaultStagger = 6 * time.Millisecond
)

// Timing is when a transition starts and how long it runs, relative to the
// moment its update was issued.
type Timing struct {
	Delay    time.Duration `json:"delay"`
	Duration time.Duration `json:"duration"`
}

// End returns the offset at which the transition completes.
func (t Timing) End() time.Duration { return t.Delay + t.Duration }

// Progress returns the eased-linear completion in [0, 1] at elapsed.
func (t Timing) Progress(elapsed time.Duration) float64 {
	if elapsed <= t.Delay {
		return 0
	}
	if t.Duration <= 0 || elapsed >= t.End() {
		return 1
	}
	return float64(elapsed-t.Delay) / float64(t.Duration)
}

// Config configures a Scheduler. Zero fields take the defaults.
type Config struct {
	Duration time.Duration `toml:"duration"`
	Stagger  time.Duration `toml:"stagger"`
}

// DefaultConfig returns the standard 200ms transitions staggered by 6ms.
func DefaultConfig() Config {
	return Config{Duration: DefaultDuration, Stagger: DefaultStagger}
}

// Scheduler assigns timings by index.
type Scheduler struct {
	cfg Config
}

// NewScheduler returns a scheduler for cfg.
// A zero Duration means DefaultDuration; a zero Stagger means DefaultStagger.
// Negative values are treated as zero.
func NewScheduler(cfg Config) Scheduler {
	if cfg.Duration == 0 {
		cfg.Duration = DefaultDuration
	}
	if cfg.Stagger == 0 {
		cfg.Stagger = DefaultStagger
	}
	cfg.Duration = max(cfg.Duration, 0)
	cfg.Stagger = max(cfg.Stagger, 0)
	return Scheduler{cfg: cfg}
}

// Config returns the effective configuration.
func (s Scheduler) Config() Config { return s.cfg }

// Schedule returns the timing of item index. Negative indices are scheduled
// like index 0.
func (s Scheduler) Schedule(index int) Timing {
	index = max(index, 0)
	return Timing{
		Delay:    time.Duration(index) * s.cfg.Stagger,
		Duration: s.cfg.Duration,
	}
}

// Span returns the time until the last of n staggered transitions completes.
func (s Scheduler) Span(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return s.Schedule(n - 1).End()
}
