package looptimer

import (
	"github.com/NikitaCOEUR/looptimer/internal/event"
	"github.com/NikitaCOEUR/looptimer/internal/ids"
)

// Step and value calls are no-ops unless the innermost timer records.
// Names are only interned when something is recorded.

// StepBegin opens step name in the current timer
func (r *Registry) StepBegin(name string) {
	if r.current == nil {
		return
	}
	r.StepBeginID(r.StepID(name), ids.None)
}

// StepBeginOn opens step name applied to object
func (r *Registry) StepBeginOn(name, object string) {
	if r.current == nil {
		return
	}
	r.StepBeginID(r.StepID(name), r.ObjectID(object))
}

// StepEnd closes step name
func (r *Registry) StepEnd(name string) {
	if r.current == nil {
		return
	}
	r.StepEndID(r.StepID(name), ids.None)
}

// StepEndOn closes step name applied to object
func (r *Registry) StepEndOn(name, object string) {
	if r.current == nil {
		return
	}
	r.StepEndID(r.StepID(name), r.ObjectID(object))
}

// Step records an instantaneous marker
func (r *Registry) Step(name string) {
	if r.current == nil {
		return
	}
	r.StepMarkID(r.StepID(name), ids.None)
}

// StepOn records an instantaneous marker applied to object
func (r *Registry) StepOn(name, object string) {
	if r.current == nil {
		return
	}
	r.StepMarkID(r.StepID(name), r.ObjectID(object))
}

// StepNext closes prev and opens next at the same instant
func (r *Registry) StepNext(prev, next string) {
	if r.current == nil {
		return
	}
	r.StepNextID(r.StepID(prev), r.StepID(next))
}

// ValSet replaces the current iteration's value of name
func (r *Registry) ValSet(name string, v float64) {
	if r.current == nil {
		return
	}
	r.ValSetID(r.ValueID(name), v)
}

// ValAdd adds v to the current iteration's value of name
func (r *Registry) ValAdd(name string, v float64) {
	if r.current == nil {
		return
	}
	r.ValAddID(r.ValueID(name), v)
}

// StepBeginID opens step id; obj may be ids.None
func (r *Registry) StepBeginID(id, obj ID) {
	if r.current == nil {
		return
	}
	r.record(event.StepBegin, id, obj, 0, false)
}

// StepEndID closes step id
func (r *Registry) StepEndID(id, obj ID) {
	if r.current == nil {
		return
	}
	r.record(event.StepEnd, id, obj, 0, true)
}

// StepMarkID records an instantaneous step
func (r *Registry) StepMarkID(id, obj ID) {
	if r.current == nil {
		return
	}
	r.record(event.Step, id, obj, 0, true)
}

// StepNextID closes prev and opens next with one timestamp
func (r *Registry) StepNextID(prev, next ID) {
	if r.current == nil {
		return
	}
	r.record(event.StepEnd, prev, ids.None, 0, true)
	at := r.current.Events()[r.current.Len()-1].At
	r.current.Append(event.Event{At: at, Kind: event.StepBegin, ID: next})
}

// ValSetID replaces the current iteration's value of id
func (r *Registry) ValSetID(id ID, v float64) {
	if r.current == nil {
		return
	}
	r.record(event.ValueSet, id, ids.None, v, false)
}

// ValAddID adds v to the current iteration's value of id
func (r *Registry) ValAddID(id ID, v float64) {
	if r.current == nil {
		return
	}
	r.record(event.ValueAdd, id, ids.None, v, false)
}
