//go:build !dev

// Package trace records runtime traces of command parsing in dev builds.
// Release builds compile these no-ops.
package trace

import "context"

// EnvVar names the file the trace is written to
const EnvVar = "PARAMKIT_TRACE"

// Init is a no-op in release builds
func Init() func() {
	return func() {}
}

// Region is a no-op in release builds
func Region(_ context.Context, _ string) func() {
	return func() {}
}

// Log is a no-op in release builds
func Log(_ context.Context, _, _ string) {}

// IsEnabled always reports false in release builds
func IsEnabled() bool {
	return false
}
