// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 dinikifo

package forms

import (
	"strings"

	"github.com/dinikifo/VB6.tiny.clone/internal/interp"
	"github.com/dinikifo/VB6.tiny.clone/internal/value"
)

// Form wires a definition to an interpreter: widgets are bound into the
// Context under their control names, events route to Subs, and bound
// controls load their values from the AppData tree.
type Form struct {
	def     *FormDef
	in      *interp.Interp
	widgets map[string]interp.HostObject
}

// binding pairs a named widget with its tree path relative to the form's
// dataContext.
type binding struct {
	name string
	rel  string
	kind string
}

// New builds the form's widgets with the factory (DefaultFactory when nil)
// and binds each named control into the interpreter's Context.
func New(def *FormDef, in *interp.Interp, factory WidgetFactory) *Form {
	if factory == nil {
		factory = DefaultFactory
	}
	f := &Form{
		def:     def,
		in:      in,
		widgets: make(map[string]interp.HostObject),
	}
	for _, ctrl := range def.Controls {
		if ctrl.Name == "" {
			continue
		}
		w := factory(ctrl)
		if w == nil {
			continue
		}
		f.widgets[ctrl.Name] = w
		in.Context().Set(ctrl.Name, w)
	}
	return f
}

// Def returns the form definition.
func (f *Form) Def() *FormDef { return f.def }

// Widget returns the host object bound for a control name.
func (f *Form) Widget(name string) (interp.HostObject, bool) {
	w, ok := f.widgets[name]
	return w, ok
}

// Show runs the form's <Name>_Load Sub, then applies data bindings. The
// Load handler is optional; an absent Sub is a no-op.
func (f *Form) Show() {
	f.in.CallSub(f.def.Name + "_Load")
	f.ApplyBindings()
}

// Fire triggers a control event by name, running its bound Sub. Unknown
// controls and unbound events do nothing.
func (f *Form) Fire(controlName, event string) {
	for _, ctrl := range f.def.Controls {
		if ctrl.Name != controlName {
			continue
		}
		if handler, ok := ctrl.Handler(event); ok {
			f.in.CallSub(handler)
		}
		return
	}
}

// ApplyBindings loads bound control values from the AppData tree. Paths
// resolve relative to the form's dataContext; a failed lookup leaves the
// control empty rather than erroring.
func (f *Form) ApplyBindings() {
	appData := f.in.Context().Get("AppData")
	if appData == nil {
		return
	}

	for _, ctrl := range f.def.Controls {
		if ctrl.Bind == "" || ctrl.Name == "" {
			continue
		}
		w, ok := f.widgets[ctrl.Name]
		if !ok {
			continue
		}

		path := ctrl.Bind
		if f.def.DataContext != "" {
			path = f.def.DataContext + "." + ctrl.Bind
		}
		val, err := value.Get(appData, path)
		if err != nil {
			val = nil
		}

		switch strings.ToLower(ctrl.Type) {
		case "textbox":
			text := ""
			if val != nil {
				text = value.Format(val)
			}
			w.SetProp("Text", text)
		case "listbox", "combobox":
			w.CallMethod("Clear", nil)
			if list, ok := val.(*value.List); ok {
				for _, item := range list.Items {
					w.CallMethod("Add", []value.Value{value.Format(item)})
				}
			}
		}
	}
}
