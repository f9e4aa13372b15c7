//go:build dev

// Package trace records runtime traces of command parsing in dev builds.
//
// Usage:
//
//	go build -tags dev ./cmd/paramkit
//	PARAMKIT_TRACE=trace.out paramkit run give steve sword
//	go tool trace trace.out
package trace

import (
	"context"
	"fmt"
	"os"
	"runtime/trace"
	"sync"
)

// EnvVar names the file the trace is written to
const EnvVar = "PARAMKIT_TRACE"

var (
	traceFile   *os.File
	traceMu     sync.Mutex
	traceActive bool
)

// Init starts tracing when PARAMKIT_TRACE holds a path. The returned
// function stops it and must be called before exit.
func Init() func() {
	path := os.Getenv(EnvVar)
	if path == "" {
		return func() {}
	}

	traceMu.Lock()
	defer traceMu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "paramkit: failed to create trace file %s: %v\n", path, err)
		return func() {}
	}
	if err := trace.Start(f); err != nil {
		fmt.Fprintf(os.Stderr, "paramkit: failed to start trace: %v\n", err)
		_ = f.Close()
		return func() {}
	}
	traceFile = f
	traceActive = true

	return func() {
		traceMu.Lock()
		defer traceMu.Unlock()
		if traceActive {
			trace.Stop()
			traceActive = false
		}
		if traceFile != nil {
			_ = traceFile.Close()
			traceFile = nil
		}
	}
}

// Region opens a trace region and returns its end function
func Region(ctx context.Context, name string) func() {
	if !traceActive {
		return func() {}
	}
	return trace.StartRegion(ctx, name).End
}

// Log attaches a message to the trace
func Log(ctx context.Context, category, message string) {
	if traceActive {
		trace.Log(ctx, category, message)
	}
}

// IsEnabled reports whether a trace is being recorded
func IsEnabled() bool {
	return traceActive
}
