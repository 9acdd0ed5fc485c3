// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 dinikifo

package forms

import (
	"strings"

	"github.com/dinikifo/VB6.tiny.clone/internal/interp"
	"github.com/dinikifo/VB6.tiny.clone/internal/value"
)

// WidgetFactory builds the host object backing a control. Returning nil
// skips binding the control into the Context.
type WidgetFactory func(ctrl ControlDef) interp.HostObject

// DefaultFactory builds the headless widget set.
func DefaultFactory(ctrl ControlDef) interp.HostObject {
	switch strings.ToLower(ctrl.Type) {
	case "textbox":
		return &TextBox{Text: ctrl.Text}
	case "button":
		return &Button{Text: ctrl.Text}
	case "listbox":
		return &ListBox{Selected: -1}
	case "combobox":
		return &ComboBox{Selected: -1}
	case "webbrowser":
		return &WebBrowser{URL: ctrl.URL}
	default:
		return nil
	}
}

// TextBox is a single-line text field exposing a Text property.
type TextBox struct {
	Text string
}

func (t *TextBox) GetProp(name string) (value.Value, bool) {
	if name == "Text" {
		return t.Text, true
	}
	return nil, false
}

func (t *TextBox) SetProp(name string, v value.Value) bool {
	if name == "Text" {
		t.Text = value.Format(v)
		return true
	}
	return false
}

func (t *TextBox) CallMethod(name string, args []value.Value) (value.Value, bool) {
	if name == "Clear" {
		t.Text = ""
		return nil, true
	}
	return nil, false
}

// Button exposes a Text property. Click events are routed by the form, not
// the widget.
type Button struct {
	Text string
}

func (b *Button) GetProp(name string) (value.Value, bool) {
	if name == "Text" {
		return b.Text, true
	}
	return nil, false
}

func (b *Button) SetProp(name string, v value.Value) bool {
	if name == "Text" {
		b.Text = value.Format(v)
		return true
	}
	return false
}

func (b *Button) CallMethod(name string, args []value.Value) (value.Value, bool) {
	return nil, false
}

// ListBox holds a list of display strings with a current selection.
// Selected is -1 when nothing is selected.
type ListBox struct {
	Items    []string
	Selected int
}

func (l *ListBox) GetProp(name string) (value.Value, bool) {
	switch name {
	case "SelectedIndex":
		return int64(l.Selected), true
	case "SelectedText":
		if l.Selected >= 0 && l.Selected < len(l.Items) {
			return l.Items[l.Selected], true
		}
		return "", true
	}
	return nil, false
}

func (l *ListBox) SetProp(name string, v value.Value) bool {
	if name == "SelectedIndex" {
		l.Selected = int(value.ToFloat(v))
		return true
	}
	return false
}

func (l *ListBox) CallMethod(name string, args []value.Value) (value.Value, bool) {
	switch name {
	case "Clear":
		l.Items = nil
		l.Selected = -1
		return nil, true
	case "Add", "AddItem":
		for _, a := range args {
			l.Items = append(l.Items, value.Format(a))
		}
		return nil, true
	}
	return nil, false
}

// ComboBox is a ListBox whose Text property tracks the selection.
type ComboBox struct {
	Items    []string
	Selected int
	text     string
}

func (c *ComboBox) GetProp(name string) (value.Value, bool) {
	switch name {
	case "Text", "SelectedText":
		if c.Selected >= 0 && c.Selected < len(c.Items) {
			return c.Items[c.Selected], true
		}
		return c.text, true
	case "SelectedIndex":
		return int64(c.Selected), true
	}
	return nil, false
}

func (c *ComboBox) SetProp(name string, v value.Value) bool {
	switch name {
	case "Text":
		text := value.Format(v)
		c.text = text
		c.Selected = -1
		for i, item := range c.Items {
			if item == text {
				c.Selected = i
				break
			}
		}
		return true
	case "SelectedIndex":
		c.Selected = int(value.ToFloat(v))
		return true
	}
	return false
}

func (c *ComboBox) CallMethod(name string, args []value.Value) (value.Value, bool) {
	switch name {
	case "Clear":
		c.Items = nil
		c.Selected = -1
		c.text = ""
		return nil, true
	case "Add", "AddItem":
		for _, a := range args {
			c.Items = append(c.Items, value.Format(a))
		}
		return nil, true
	}
	return nil, false
}

// WebBrowser exposes a Url property and fire-and-forget script evaluation.
// EvalJS, when set, receives the script text; otherwise EvalJs is a no-op
// that still counts as handled.
type WebBrowser struct {
	URL    string
	EvalJS func(script string)
}

func (w *WebBrowser) GetProp(name string) (value.Value, bool) {
	if name == "Url" {
		return w.URL, true
	}
	return nil, false
}

func (w *WebBrowser) SetProp(name string, v value.Value) bool {
	if name == "Url" {
		if s := value.Format(v); s != "" {
			w.URL = s
		}
		return true
	}
	return false
}

func (w *WebBrowser) CallMethod(name string, args []value.Value) (value.Value, bool) {
	switch name {
	case "Navigate":
		if len(args) > 0 {
			w.SetProp("Url", args[0])
		}
		return nil, true
	case "SetHtml":
		return nil, true
	case "EvalJs":
		if w.EvalJS != nil && len(args) > 0 {
			w.EvalJS(value.Format(args[0]))
		}
		return nil, true
	}
	return nil, false
}
