package stats

import (
	"sync"
	"time"

	"fleetstats-service/internal/model"
)

// DefaultQuietPeriod is how long the scheduler waits after the last trigger
// before running an aggregation pass.
const DefaultQuietPeriod = 300 * time.Millisecond

// Scheduler coalesces rapid successive triggers into one aggregation pass.
// It is a two-state machine: idle, or pending with a running timer. Every
// trigger supersedes the pending one, so only the last trigger within a burst
// produces a snapshot. Before the first pass completes there is no snapshot;
// consumers must treat that as a loading state, not as zeroed data.
type Scheduler struct {
	engine  *Engine
	quiet   time.Duration
	publish func(model.StatisticsSnapshot)

	mu       sync.Mutex
	timer    *time.Timer
	latest   Input
	snapshot *model.StatisticsSnapshot
	closed   bool
}

// NewScheduler builds a scheduler around the engine. publish may be nil; when
// set, it is invoked after every completed pass with the fresh snapshot.
func NewScheduler(engine *Engine, quiet time.Duration, publish func(model.StatisticsSnapshot)) *Scheduler {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Scheduler{engine: engine, quiet: quiet, publish: publish}
}

// Schedule records the trigger's input and (re)starts the quiet-period timer,
// cancelling any pass already pending.
func (s *Scheduler) Schedule(in Input) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.latest = in
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.quiet, s.run)
}

func (s *Scheduler) run() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	in := s.latest
	s.timer = nil
	s.mu.Unlock()

	// Once the timer fires, the pass runs to completion; there is no
	// mid-aggregation cancellation.
	snap := s.engine.Compute(in)

	s.mu.Lock()
	s.snapshot = &snap
	publish := s.publish
	s.mu.Unlock()

	if publish != nil {
		publish(snap)
	}
}

// Snapshot returns the most recently published snapshot, or ok=false when no
// pass has completed yet.
func (s *Scheduler) Snapshot() (model.StatisticsSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return model.StatisticsSnapshot{}, false
	}
	return *s.snapshot, true
}

// Pending reports whether a pass is scheduled but has not run yet.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Close cancels any pending pass. Further Schedule calls are ignored.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
