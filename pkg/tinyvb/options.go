// Package tinyvb provides the public API for the VB-flavored scripting
// runtime.
package tinyvb

import (
	"fmt"
	"io"

	"github.com/dinikifo/VB6.tiny.clone/internal/interp"
	"github.com/dinikifo/VB6.tiny.clone/internal/store"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithFileStore configures JSON-file persistence at the given path.
func WithFileStore(path string) Option {
	return func(r *Runtime) {
		r.store = store.NewFile(path, Heal)
	}
}

// WithSQLiteStore configures SQLite persistence at the given path.
func WithSQLiteStore(path string) Option {
	return func(r *Runtime) {
		s, err := store.NewSQLite(path, Heal)
		if err == nil {
			r.store = s
		}
	}
}

// WithMemoryStore configures an in-memory store (for testing).
func WithMemoryStore() Option {
	return func(r *Runtime) {
		r.store = store.NewMemory(Heal)
	}
}

// WithStore configures a custom store.
func WithStore(s Store) Option {
	return func(r *Runtime) {
		r.store = s
	}
}

// WithNotify sets the sink for the MsgBox builtin.
func WithNotify(fn func(text string)) Option {
	return func(r *Runtime) {
		r.notify = fn
	}
}

// WithDiagnostics sets the sink for engine diagnostics.
func WithDiagnostics(fn func(msg string)) Option {
	return func(r *Runtime) {
		r.diag = fn
	}
}

// WithOutput routes both diagnostics and MsgBox text to an io.Writer.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		r.diag = func(msg string) {
			fmt.Fprintln(w, msg)
		}
	}
}

// WithDispatcher appends an extension dispatcher, consulted before the
// bundled accounting and stats builtins and the base builtin table.
func WithDispatcher(d Dispatcher) Option {
	return func(r *Runtime) {
		r.dispatchers = append(r.dispatchers, d)
	}
}

// Store interface for custom stores.
type Store = store.Store

// Dispatcher interface for builtin extensions.
type Dispatcher = interp.Dispatcher

// HostObject interface for host-owned values.
type HostObject = interp.HostObject
