package looptimer

import "sync"

var (
	defaultMu       sync.Mutex
	defaultRegistry *Registry
)

// Default returns the process-wide registry, created on first use with
// default Options
func Default() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultRegistry == nil {
		defaultRegistry = New(Options{})
	}
	return defaultRegistry
}

// SetDefault replaces the process-wide registry and returns the previous one.
// A nil r makes the next Default call build a fresh registry.
func SetDefault(r *Registry) *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultRegistry
	defaultRegistry = r
	return prev
}

// Begin opens timer name on the default registry
func Begin(name string) { Default().Begin(name) }

// End closes timer name on the default registry
func End(name string) error { return Default().End(name) }

// StepBegin opens a step on the default registry
func StepBegin(name string) { Default().StepBegin(name) }

// StepEnd closes a step on the default registry
func StepEnd(name string) { Default().StepEnd(name) }

// Step records an instantaneous step on the default registry
func Step(name string) { Default().Step(name) }

// StepNext closes prev and opens next on the default registry
func StepNext(prev, next string) { Default().StepNext(prev, next) }

// ValSet sets a value on the default registry
func ValSet(name string, v float64) { Default().ValSet(name, v) }

// ValAdd accumulates a value on the default registry
func ValAdd(name string, v float64) { Default().ValAdd(name, v) }

// SetSync installs the synchronization hook of the default registry
func SetSync(fn SyncFunc, data any) (SyncFunc, any) { return Default().SetSync(fn, data) }

// Clear resets the default registry
func Clear() { Default().Clear() }
