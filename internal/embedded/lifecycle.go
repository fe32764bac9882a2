// Package embedded declares the lifecycle contract of the bundled durable
// store process. The switcher consults it during startup probing; the
// process supervisor implementing it lives outside this module.
package embedded

import "context"

// LocalFile returns the lifecycle of an in-process SQLite file: always
// ready, no startup to wait for, the connection info is the path itself.
func LocalFile(path string) Lifecycle {
	return localFile(path)
}

type localFile string

func (f localFile) ConnectionInfo() string                   { return string(f) }
func (f localFile) StartupFailed() bool                      { return false }
func (f localFile) WaitForStartup(ctx context.Context) error { return ctx.Err() }

type Lifecycle interface {
	// ConnectionInfo returns the connection string of the embedded store.
	ConnectionInfo() string

	// StartupFailed reports whether the embedded store already failed its own
	// startup; probing skips it entirely in that case.
	StartupFailed() bool

	// WaitForStartup blocks until the store is ready to accept connections or
	// the context expires.
	WaitForStartup(ctx context.Context) error
}
