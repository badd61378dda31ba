//go:build !dev

// Package trace mirrors timer brackets into runtime/trace regions in
// development builds. This is the release version with no-op stubs.
package trace

// EnvVar names the variable holding the trace output path
const EnvVar = "LOOPTIMER_TRACE"

// Init is a no-op in release builds.
// Returns a cleanup function that should be deferred.
func Init() func() {
	return noop
}

// Begin returns a no-op region end in release builds.
func Begin(_ string) func() {
	return noop
}

// Log is a no-op in release builds.
func Log(_, _ string) {
}

// IsEnabled returns false in release builds.
func IsEnabled() bool {
	return false
}

func noop() {}
