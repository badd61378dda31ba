// Package timing provides the clock sources used to timestamp events and a
// stopwatch for coarse measurements.
package timing

import (
	"fmt"
	"sync"
	"time"
)

// Clock returns monotonic readings relative to an arbitrary origin
type Clock interface {
	Now() time.Duration
}

// Monotonic reads the runtime's monotonic clock
type Monotonic struct {
	origin time.Time
}

// NewMonotonic creates a clock whose origin is the current instant
func NewMonotonic() *Monotonic {
	return &Monotonic{origin: time.Now()}
}

// Now returns the time elapsed since the clock was created
func (m *Monotonic) Now() time.Duration {
	return time.Since(m.origin)
}

// Manual is a clock that only moves when told to
type Manual struct {
	mu  sync.Mutex
	now time.Duration
}

// NewManual creates a manual clock reading start
func NewManual(start time.Duration) *Manual {
	return &Manual{now: start}
}

// Now returns the current reading
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += d
}

// Set moves the clock to an absolute reading
func (m *Manual) Set(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = d
}

// Stopwatch tracks labelled checkpoints against a clock
type Stopwatch struct {
	clock Clock
	start time.Duration
	marks map[string]time.Duration
	order []string // Track order of marks for consistent output
}

// NewStopwatch creates a stopwatch started now on clock
func NewStopwatch(clock Clock) *Stopwatch {
	return &Stopwatch{
		clock: clock,
		start: clock.Now(),
		marks: make(map[string]time.Duration),
		order: make([]string, 0),
	}
}

// Mark records a checkpoint with a label
func (s *Stopwatch) Mark(label string) time.Duration {
	elapsed := s.Elapsed()
	if _, exists := s.marks[label]; !exists {
		s.order = append(s.order, label)
	}
	s.marks[label] = elapsed
	return elapsed
}

// Elapsed returns total elapsed time since the stopwatch started
func (s *Stopwatch) Elapsed() time.Duration {
	return s.clock.Now() - s.start
}

// Get returns the duration for a specific mark
func (s *Stopwatch) Get(label string) (time.Duration, bool) {
	d, ok := s.marks[label]
	return d, ok
}

// Summary returns a formatted summary of all timings
func (s *Stopwatch) Summary() string {
	summary := fmt.Sprintf("Total: %.3fms", millis(s.Elapsed()))

	if len(s.order) > 0 {
		summary += " ("
		for i, label := range s.order {
			if i > 0 {
				summary += ", "
			}
			summary += fmt.Sprintf("%s: %.3fms", label, millis(s.marks[label]))
		}
		summary += ")"
	}

	return summary
}

// Reset restarts the stopwatch and drops all marks
func (s *Stopwatch) Reset() {
	s.start = s.clock.Now()
	s.marks = make(map[string]time.Duration)
	s.order = make([]string, 0)
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
