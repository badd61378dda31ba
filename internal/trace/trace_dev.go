//go:build dev

// Package trace mirrors timer brackets into runtime/trace regions in
// development builds.
//
// Usage:
//
//	go build -tags dev ./cmd/looptimer
//	LOOPTIMER_TRACE=trace.out looptimer demo
//	go tool trace trace.out
package trace

import (
	"context"
	"fmt"
	"os"
	"runtime/trace"
	"sync"
)

// EnvVar names the variable holding the trace output path
const EnvVar = "LOOPTIMER_TRACE"

var (
	traceFile   *os.File
	traceMu     sync.Mutex
	traceActive bool
)

// Init starts tracing if LOOPTIMER_TRACE is set to a file path.
// Returns a cleanup function that should be deferred.
func Init() func() {
	tracePath := os.Getenv(EnvVar)
	if tracePath == "" {
		return func() {}
	}

	traceMu.Lock()
	defer traceMu.Unlock()

	var err error
	traceFile, err = os.Create(tracePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "looptimer: failed to create trace file %s: %v\n", tracePath, err)
		return func() {}
	}

	if err := trace.Start(traceFile); err != nil {
		fmt.Fprintf(os.Stderr, "looptimer: failed to start trace: %v\n", err)
		traceFile.Close()
		traceFile = nil
		return func() {}
	}

	traceActive = true
	fmt.Fprintf(os.Stderr, "looptimer: tracing to %s\n", tracePath)

	return func() {
		traceMu.Lock()
		defer traceMu.Unlock()

		if traceActive {
			trace.Stop()
			traceActive = false
		}
		if traceFile != nil {
			traceFile.Close()
			traceFile = nil
		}
	}
}

// Begin opens a region named after a timer. The returned function closes it
// and must be called on the same goroutine, in LIFO order.
func Begin(name string) func() {
	if !traceActive {
		return noop
	}
	return trace.StartRegion(context.Background(), name).End
}

// Log attaches a message to the execution trace
func Log(category, message string) {
	if traceActive {
		trace.Log(context.Background(), category, message)
	}
}

// IsEnabled returns true if tracing is enabled.
func IsEnabled() bool {
	return traceActive
}

func noop() {}
