// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 dinikifo

// Package interp implements the VB-flavored scripting engine: the block
// executor, the expression evaluator, and the builtin/host dispatch bridge.
package interp

import (
	"fmt"

	"github.com/dinikifo/VB6.tiny.clone/internal/script"
	"github.com/dinikifo/VB6.tiny.clone/internal/value"
)

// HostObject is the capability contract for values owned by the embedding
// application (widgets, browsers, services). The engine probes properties
// and methods by name at call time and degrades to a diagnostic when the
// probe fails.
type HostObject interface {
	// GetProp reads a named property; false means no such property.
	GetProp(name string) (value.Value, bool)
	// SetProp writes a named property; false means no such property.
	SetProp(name string, v value.Value) bool
	// CallMethod invokes a named method; false means no such method.
	CallMethod(name string, args []value.Value) (value.Value, bool)
}

// Dispatcher resolves builtin names for call expressions (CallFunc) and
// bare-call statements (CallStmt). The second return reports whether the
// name was recognized; unrecognized names fall through to the next
// dispatcher in the chain. Names arrive as written in the script and must
// be matched case-insensitively.
type Dispatcher interface {
	CallFunc(in *Interp, name string, args []value.Value) (value.Value, bool)
	CallStmt(in *Interp, name string, args []value.Value) bool
}

// Interp interprets loaded Sub/Function bodies against a Context. Extension
// dispatchers registered with WithDispatcher are consulted before the base
// builtin table; the engine itself never terminates the host on a script
// fault.
type Interp struct {
	ctx    *Context
	prog   *script.Program
	ext    []Dispatcher
	notify func(text string)
	diag   func(msg string)
}

// Option configures an Interp.
type Option func(*Interp)

// WithNotify sets the sink for the MsgBox builtin.
func WithNotify(fn func(text string)) Option {
	return func(in *Interp) { in.notify = fn }
}

// WithDiagnostics sets the sink for engine diagnostics.
func WithDiagnostics(fn func(msg string)) Option {
	return func(in *Interp) { in.diag = fn }
}

// WithDispatcher appends an extension dispatcher. Dispatchers are consulted
// in registration order, before the base builtin table.
func WithDispatcher(d Dispatcher) Option {
	return func(in *Interp) { in.ext = append(in.ext, d) }
}

// New creates an interpreter with an empty program and context.
func New(opts ...Option) *Interp {
	in := &Interp{
		ctx:  NewContext(),
		prog: script.Parse(""),
		diag: func(msg string) { fmt.Println(msg) },
	}
	in.notify = func(text string) { in.diag("[MsgBox] " + text) }
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Context returns the interpreter's symbol table.
func (in *Interp) Context() *Context { return in.ctx }

// Program returns the loaded program.
func (in *Interp) Program() *script.Program { return in.prog }

// LoadSource parses Sub/Function definitions from source text and merges
// them into the program.
func (in *Interp) LoadSource(source string) {
	in.prog.Merge(script.Parse(source))
}

// Reportf emits a diagnostic. Scripting faults never become Go errors at
// this level; they degrade to a report plus a safe continuation value.
func (in *Interp) Reportf(format string, args ...any) {
	in.diag("[VB] " + fmt.Sprintf(format, args...))
}

// Notify sends text to the MsgBox sink.
func (in *Interp) Notify(text string) {
	in.notify(text)
}

// CallSub runs a Sub by case-insensitive name. Unknown or empty Subs are a
// no-op. Host callbacks may re-enter CallSub; execution is sequential.
func (in *Interp) CallSub(name string) {
	lines, ok := in.prog.Sub(name)
	if !ok || len(lines) == 0 {
		return
	}
	in.runRange(lines, 0, len(lines))
}

// CallFunction runs a Function by case-insensitive name and returns the
// value of the Context slot named after it (assignment to the function's
// own name is the return statement). Unknown names report and yield null.
func (in *Interp) CallFunction(name string) value.Value {
	declName, lines, ok := in.prog.Function(name)
	if !ok || len(lines) == 0 {
		in.Reportf("Function %s not found", name)
		return nil
	}
	in.ctx.Set(declName, nil)
	in.runRange(lines, 0, len(lines))
	return in.ctx.Get(declName)
}
