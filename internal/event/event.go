// Package event defines the raw records appended to a timer's log during one iteration.
package event

import (
	"time"

	"github.com/NikitaCOEUR/looptimer/internal/ids"
)

// Kind identifies what an event records
type Kind uint8

const (
	// None is the zero kind, never appended by the recorder
	None Kind = iota
	TimerBegin
	TimerEnd
	StepBegin
	StepEnd
	// Step is an instantaneous marker
	Step
	ValueSet
	ValueAdd
)

// String returns a short label for the kind
func (k Kind) String() string {
	switch k {
	case TimerBegin:
		return "timer-begin"
	case TimerEnd:
		return "timer-end"
	case StepBegin:
		return "step-begin"
	case StepEnd:
		return "step-end"
	case Step:
		return "step"
	case ValueSet:
		return "value-set"
	case ValueAdd:
		return "value-add"
	default:
		return "none"
	}
}

// Opens reports whether the kind increases nesting depth
func (k Kind) Opens() bool {
	return k == TimerBegin || k == StepBegin
}

// Closes reports whether the kind decreases nesting depth
func (k Kind) Closes() bool {
	return k == TimerEnd || k == StepEnd
}

// Event is one record. ID is a timer id for TimerBegin/TimerEnd, a step id for
// step kinds and a value id for value kinds.
type Event struct {
	At     time.Duration
	Kind   Kind
	ID     ids.ID
	Object ids.ID
	Value  float64
}

// Log holds the events of the iteration currently being recorded
type Log struct {
	events []Event
}

// Append adds an event at the end of the log
func (l *Log) Append(e Event) {
	l.events = append(l.events, e)
}

// Reset empties the log, keeping its capacity for the next iteration
func (l *Log) Reset() {
	l.events = l.events[:0]
}

// Len returns the number of recorded events
func (l *Log) Len() int {
	return len(l.events)
}

// Events returns the recorded events. The slice is reused by the next Reset.
func (l *Log) Events() []Event {
	return l.events
}

// Origin returns the time of the first event, the reference for relative times
func Origin(events []Event) time.Duration {
	if len(events) == 0 {
		return 0
	}
	return events[0].At
}
