// Package stats folds completed iteration logs into running per-step and per-value statistics.
//
// Only the moments needed for mean and deviation are kept (count, sum, sum of
// squares, min, max); raw events of past iterations are never retained.
package stats

import (
	"math"
	"time"

	"github.com/NikitaCOEUR/looptimer/internal/event"
	"github.com/NikitaCOEUR/looptimer/internal/ids"
)

// Root is the step identifier of the whole timer span
const Root = ids.None

// StepStats accumulates durations of one step
type StepStats struct {
	// Level is the nesting depth observed at the latest occurrence
	Level int
	// Num counts every occurrence across folded iterations
	Num int
	// Iterations counts folded iterations in which the step appeared
	Iterations int
	// StartTotal sums the offset of the first occurrence in each iteration
	StartTotal time.Duration
	Total      time.Duration
	// TotalSquared is the sum of squared durations in ns²
	TotalSquared float64
	Min          time.Duration
	Max          time.Duration

	hasRange       bool
	lastIteration  int
	lastStart      time.Duration
	iterOccurrence int
}

// Mean returns the mean duration per occurrence in nanoseconds
func (s *StepStats) Mean() float64 {
	if s.Num == 0 {
		return 0
	}
	return float64(s.Total) / float64(s.Num)
}

// StdDev returns the standard deviation per occurrence in nanoseconds
func (s *StepStats) StdDev() float64 {
	return deviation(s.TotalSquared, s.Mean(), s.Num)
}

// MeanStart returns the mean offset of the step's first occurrence in an iteration
func (s *StepStats) MeanStart() float64 {
	if s.Iterations == 0 {
		return 0
	}
	return float64(s.StartTotal) / float64(s.Iterations)
}

// Ranged reports whether Min and Max hold at least one completed duration
func (s *StepStats) Ranged() bool {
	return s.hasRange
}

func (s *StepStats) observe(d time.Duration) {
	if !s.hasRange || d < s.Min {
		s.Min = d
	}
	if !s.hasRange || d > s.Max {
		s.Max = d
	}
	s.hasRange = true
}

// ValueStats accumulates the per-iteration aggregate of one value.
// A set replaces the iteration's aggregate, an add accumulates onto it.
type ValueStats struct {
	// Num counts every set/add event
	Num int
	// Iterations counts folded iterations in which the value was touched
	Iterations   int
	Total        float64
	TotalSquared float64
	Min          float64
	Max          float64

	hasRange      bool
	lastIteration int
	current       float64
	pending       bool
}

// Mean returns the mean per-iteration aggregate
func (v *ValueStats) Mean() float64 {
	if v.Iterations == 0 {
		return 0
	}
	return v.Total / float64(v.Iterations)
}

// StdDev returns the standard deviation of per-iteration aggregates
func (v *ValueStats) StdDev() float64 {
	return deviation(v.TotalSquared, v.Mean(), v.Iterations)
}

// Current returns the aggregate of the latest iteration
func (v *ValueStats) Current() float64 {
	return v.current
}

func (v *ValueStats) fold() {
	if !v.pending {
		return
	}
	v.Total += v.current
	v.TotalSquared += v.current * v.current
	if !v.hasRange || v.current < v.Min {
		v.Min = v.current
	}
	if !v.hasRange || v.current > v.Max {
		v.Max = v.current
	}
	v.hasRange = true
	v.pending = false
}

func deviation(totalSquared, mean float64, n int) float64 {
	if n == 0 {
		return 0
	}
	variance := totalSquared/float64(n) - mean*mean
	if variance <= 0 {
		return 0
	}
	return math.Sqrt(variance)
}

// Aggregate holds the running statistics of one timer
type Aggregate struct {
	// Iterations counts processed iterations since the last Reset, warm-up included
	Iterations int
	// Sampled counts iterations actually folded into statistics
	Sampled int

	warm   bool
	steps  []ids.ID
	values []ids.ID
	step   map[ids.ID]*StepStats
	value  map[ids.ID]*ValueStats
}

// NewAggregate creates empty statistics
func NewAggregate() *Aggregate {
	return &Aggregate{
		step:  make(map[ids.ID]*StepStats),
		value: make(map[ids.ID]*ValueStats),
	}
}

// Steps returns step identifiers in first-seen order. Root comes first when present.
func (a *Aggregate) Steps() []ids.ID {
	return a.steps
}

// Values returns value identifiers in first-seen order
func (a *Aggregate) Values() []ids.ID {
	return a.values
}

// Step returns the statistics of a step
func (a *Aggregate) Step(id ids.ID) (*StepStats, bool) {
	s, ok := a.step[id]
	return s, ok
}

// Value returns the statistics of a value
func (a *Aggregate) Value(id ids.ID) (*ValueStats, bool) {
	v, ok := a.value[id]
	return v, ok
}

// Warm reports whether the warm-up iteration has already been consumed
func (a *Aggregate) Warm() bool {
	return a.warm
}

// Reset clears statistics and the iteration counter. The warm-up is not repeated.
func (a *Aggregate) Reset() {
	a.Iterations = 0
	a.Sampled = 0
	a.steps = nil
	a.values = nil
	a.step = make(map[ids.ID]*StepStats)
	a.value = make(map[ids.ID]*ValueStats)
}

// Fold merges one completed iteration. The very first iteration only
// advances the counter.
func (a *Aggregate) Fold(events []event.Event) {
	if len(events) == 0 {
		return
	}
	a.Iterations++
	if !a.warm {
		a.warm = true
		return
	}
	a.Sampled++
	iter := a.Sampled

	t0 := event.Origin(events)
	level := 0
	for _, e := range events {
		t := e.At - t0
		if e.Kind.Closes() {
			level--
		}

		switch e.Kind {
		case event.TimerBegin, event.StepBegin, event.Step:
			s := a.stepFor(stepID(e))
			s.Level = level
			if s.lastIteration != iter {
				s.lastIteration = iter
				s.StartTotal += t
				s.Iterations++
				s.iterOccurrence = 0
			}
			s.iterOccurrence++
			s.lastStart = t
			s.Num++

		case event.TimerEnd, event.StepEnd:
			s, ok := a.step[stepID(e)]
			if !ok || s.lastIteration != iter {
				continue
			}
			d := t - s.lastStart
			s.Total += d
			s.TotalSquared += float64(d) * float64(d)
			if s.iterOccurrence == 1 {
				s.observe(d)
			}

		case event.ValueSet, event.ValueAdd:
			v := a.valueFor(e.ID)
			switch {
			case v.lastIteration != iter:
				v.fold()
				v.lastIteration = iter
				v.current = e.Value
				v.Iterations++
				v.pending = true
			case e.Kind == event.ValueSet:
				v.current = e.Value
			default:
				v.current += e.Value
			}
			v.Num++
		}

		if e.Kind.Opens() {
			level++
		}
	}

	for _, id := range a.values {
		a.value[id].fold()
	}
}

func stepID(e event.Event) ids.ID {
	if e.Kind == event.TimerBegin || e.Kind == event.TimerEnd {
		return Root
	}
	return e.ID
}

func (a *Aggregate) stepFor(id ids.ID) *StepStats {
	s, ok := a.step[id]
	if !ok {
		s = &StepStats{lastIteration: -1}
		a.step[id] = s
		a.steps = append(a.steps, id)
	}
	return s
}

func (a *Aggregate) valueFor(id ids.ID) *ValueStats {
	v, ok := a.value[id]
	if !ok {
		v = &ValueStats{lastIteration: -1}
		a.value[id] = v
		a.values = append(a.values, id)
	}
	return v
}
