// Package looptimer records nested timers, steps and values emitted by a hot
// loop, folds them into running statistics and prints a report every
// configured number of iterations.
//
// A Registry is not safe for concurrent use. Timers started from several
// goroutines must use separate registries or be serialized by the caller.
package looptimer

import (
	"io"
	"os"
	"time"

	"github.com/NikitaCOEUR/looptimer/internal/config"
	"github.com/NikitaCOEUR/looptimer/internal/derrors"
	"github.com/NikitaCOEUR/looptimer/internal/event"
	"github.com/NikitaCOEUR/looptimer/internal/ids"
	"github.com/NikitaCOEUR/looptimer/internal/logger"
	"github.com/NikitaCOEUR/looptimer/internal/report"
	"github.com/NikitaCOEUR/looptimer/internal/stats"
	"github.com/NikitaCOEUR/looptimer/internal/timing"
	"github.com/NikitaCOEUR/looptimer/internal/trace"
)

type (
	// ID is an interned timer, step, object or value name
	ID = ids.ID
	// Event is one recorded entry of a timer's log
	Event = event.Event
	// Stats holds the running statistics of one timer
	Stats = stats.Aggregate
)

// Sampler returns the report interval of a timer; 0 disables it.
// *config.Sampling implements it.
type Sampler interface {
	Interval(timer string) int
}

// SyncFunc is called with its user data before every timestamp that closes
// a region, so the time reflects completion of pending asynchronous work.
// It must not call back into the registry.
type SyncFunc func(data any)

// Options configures a Registry. Zero fields get defaults.
type Options struct {
	Names   *ids.Interner
	Sampler Sampler
	Clock   timing.Clock
	// Output receives reports, stdout by default
	Output io.Writer
	Logger *logger.Logger
	// Margin groups trace events closer than this under one timestamp
	Margin time.Duration
	// Summary is a template printed after each report, see report.ParseSummary
	Summary string
}

// TimerState is the per-timer log, interval and statistics
type TimerState struct {
	ID       ID
	Name     string
	Interval int
	// Reports counts reports emitted for this timer
	Reports int

	log   event.Log
	stats *stats.Aggregate
}

// Events returns the log of the latest iteration
func (s *TimerState) Events() []Event {
	return s.log.Events()
}

// Stats returns the statistics accumulated since the last report
func (s *TimerState) Stats() *Stats {
	return s.stats
}

// Enabled reports whether the timer records
func (s *TimerState) Enabled() bool {
	return s.Interval > 0
}

type frame struct {
	state     *TimerState
	recording bool
	endTrace  func()
}

// Registry owns the timer stack and every timer's state
type Registry struct {
	names   *ids.Interner
	sampler Sampler
	clock   timing.Clock
	out     io.Writer
	log     *logger.Logger
	margin  time.Duration
	summary *report.Summary

	timers  map[ID]*TimerState
	stack   []frame
	current *event.Log

	sync     SyncFunc
	syncData any
}

// New creates a registry. An invalid Options.Summary is logged and ignored.
func New(opts Options) *Registry {
	if opts.Names == nil {
		opts.Names = ids.NewInterner()
	}
	if opts.Logger == nil {
		opts.Logger = logger.New("warn", os.Stderr)
	}
	if opts.Sampler == nil {
		opts.Sampler = config.FromEnv(config.DefaultPrefix)
	}
	if opts.Clock == nil {
		opts.Clock = timing.NewMonotonic()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Margin <= 0 {
		opts.Margin = report.DefaultMargin
	}

	summary, err := report.ParseSummary(opts.Summary)
	if err != nil {
		opts.Logger.Warn().Err(err).Msg("summary template disabled")
	}

	return &Registry{
		names:   opts.Names,
		sampler: opts.Sampler,
		clock:   opts.Clock,
		out:     opts.Output,
		log:     opts.Logger,
		margin:  opts.Margin,
		summary: summary,
		timers:  make(map[ID]*TimerState),
	}
}

// Names returns the name interner shared by all timers
func (r *Registry) Names() *ids.Interner {
	return r.names
}

// TimerID interns a timer name
func (r *Registry) TimerID(name string) ID { return r.names.ID(ids.Timer, name) }

// StepID interns a step name
func (r *Registry) StepID(name string) ID { return r.names.ID(ids.Step, name) }

// ObjectID interns an object name
func (r *Registry) ObjectID(name string) ID { return r.names.ID(ids.Object, name) }

// ValueID interns a value name
func (r *Registry) ValueID(name string) ID { return r.names.ID(ids.Value, name) }

// Depth returns the number of open timers
func (r *Registry) Depth() int {
	return len(r.stack)
}

// Recording reports whether step and value calls currently land in a log
func (r *Registry) Recording() bool {
	return r.current != nil
}

// Lookup returns the state of a timer that has been begun at least once
func (r *Registry) Lookup(name string) (*TimerState, bool) {
	id, ok := r.names.Lookup(ids.Timer, name)
	if !ok {
		return nil, false
	}
	s, ok := r.timers[id]
	return s, ok
}

// SetSync installs fn as the synchronization hook and returns the previous one
func (r *Registry) SetSync(fn SyncFunc, data any) (SyncFunc, any) {
	prev, prevData := r.sync, r.syncData
	r.sync, r.syncData = fn, data
	return prev, prevData
}

// SetInterval changes a timer's report interval. It takes effect at the
// timer's next Begin; 0 disables it.
func (r *Registry) SetInterval(name string, interval int) {
	s := r.state(r.TimerID(name))
	s.Interval = max(interval, 0)
}

// Clear drops the stack, the current log and every timer state.
// Interned names are kept.
func (r *Registry) Clear() {
	for i := len(r.stack) - 1; i >= 0; i-- {
		r.stack[i].endTrace()
	}
	r.stack = nil
	r.current = nil
	r.timers = make(map[ID]*TimerState)
}

// Begin opens the timer name
func (r *Registry) Begin(name string) {
	r.BeginID(r.TimerID(name))
}

// End closes the timer name, which must be the last one begun
func (r *Registry) End(name string) error {
	return r.EndID(r.TimerID(name))
}

// Timed runs fn between Begin and End of timer name
func (r *Registry) Timed(name string, fn func()) error {
	id := r.TimerID(name)
	r.BeginID(id)
	fn()
	return r.EndID(id)
}

// BeginID pushes timer id. Nothing is recorded when the timer is disabled
// or nested under a timer that does not record.
func (r *Registry) BeginID(id ID) {
	s := r.state(id)

	recording := s.Interval > 0
	if n := len(r.stack); n > 0 && !r.stack[n-1].recording {
		recording = false
	}

	r.stack = append(r.stack, frame{
		state:     s,
		recording: recording,
		endTrace:  trace.Begin(s.Name),
	})

	if !recording {
		r.current = nil
		return
	}

	r.current = &s.log
	r.current.Reset()
	r.record(event.TimerBegin, id, ids.None, 0, true)
}

// EndID pops timer id. A call that does not match the top of the stack is
// logged and returned as a *derrors.NestingError; nothing is modified.
func (r *Registry) EndID(id ID) error {
	n := len(r.stack)
	if n == 0 {
		err := derrors.NewNestingError(derrors.EmptyStack, r.names.Name(ids.Timer, id), "")
		r.log.Error().Err(err).Msg("timer nesting violated")
		return err
	}
	top := r.stack[n-1]
	if top.state.ID != id {
		err := derrors.NewNestingError(derrors.Mismatch, r.names.Name(ids.Timer, id), top.state.Name)
		r.log.Error().Err(err).Msg("timer nesting violated")
		return err
	}

	if top.recording {
		r.record(event.TimerEnd, id, ids.None, 0, true)
		r.complete(top.state)
	}

	top.endTrace()
	r.stack = r.stack[:n-1]
	r.current = nil
	if n > 1 && r.stack[n-2].recording {
		r.current = &r.stack[n-2].state.log
	}
	return nil
}

// state returns the timer's state, reading its interval on first use
func (r *Registry) state(id ID) *TimerState {
	if s, ok := r.timers[id]; ok {
		return s
	}
	name := r.names.Name(ids.Timer, id)
	s := &TimerState{
		ID:       id,
		Name:     name,
		Interval: max(r.sampler.Interval(name), 0),
		stats:    stats.NewAggregate(),
	}
	r.timers[id] = s

	r.log.Debug().Str("timer", name).Int("interval", s.Interval).Msg("timer initialized")
	return s
}

// complete folds the finished iteration and reports when the interval is reached
func (r *Registry) complete(s *TimerState) {
	s.stats.Fold(s.log.Events())
	if s.Interval == 0 || s.stats.Iterations < s.Interval {
		return
	}

	err := report.Write(r.out, report.Input{
		Timer:  s.Name,
		Events: s.log.Events(),
		Stats:  s.stats,
		Names:  r.names,
		Margin: r.margin,
	})
	if err == nil {
		err = r.summary.Execute(r.out, report.NewSummaryData(s.Name, s.stats))
	}
	if err != nil {
		r.log.Warn().Str("timer", s.Name).Err(err).Msg("failed to write report")
	}

	s.Reports++
	r.log.Debug().Str("timer", s.Name).Int("iterations", s.stats.Sampled).Msg("report emitted")
	s.stats.Reset()
}

// record appends an event to the current log; sync runs the hook first
func (r *Registry) record(kind event.Kind, id, obj ID, value float64, sync bool) {
	if sync && r.sync != nil {
		r.sync(r.syncData)
	}
	r.current.Append(event.Event{
		At:     r.clock.Now(),
		Kind:   kind,
		ID:     id,
		Object: obj,
		Value:  value,
	})
}
