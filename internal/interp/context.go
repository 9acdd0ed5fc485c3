// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 dinikifo

package interp

import "github.com/dinikifo/VB6.tiny.clone/internal/value"

// Context is the symbol table of a running program: identifier to value,
// including host-object bindings. Identifiers are case-sensitive even though
// keywords and builtin names are not; scripts rely on consistent spelling of
// their own variables. One Context lives for the life of its Interp, and the
// engine assumes single-threaded reentry, so there is no locking.
type Context struct {
	vars map[string]value.Value
}

// NewContext creates an empty symbol table.
func NewContext() *Context {
	return &Context{vars: make(map[string]value.Value)}
}

// Get returns the value bound to name, or nil when unbound.
func (c *Context) Get(name string) value.Value {
	return c.vars[name]
}

// Set binds name to v, replacing any previous binding.
func (c *Context) Set(name string, v value.Value) {
	c.vars[name] = v
}

// Has reports whether name is bound, even to null.
func (c *Context) Has(name string) bool {
	_, ok := c.vars[name]
	return ok
}

// Delete removes a binding.
func (c *Context) Delete(name string) {
	delete(c.vars, name)
}

// Names returns all bound identifiers, in no particular order.
func (c *Context) Names() []string {
	names := make([]string, 0, len(c.vars))
	for n := range c.vars {
		names = append(names, n)
	}
	return names
}
