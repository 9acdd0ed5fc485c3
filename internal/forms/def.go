// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 dinikifo

// Package forms models VB-style forms described as JSON: a form definition
// with named controls, data bindings into the application tree, and event
// handlers resolved to Sub names. The widgets here are headless; a GUI
// host can supply its own through a WidgetFactory.
package forms

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ControlDef describes one control of a form.
type ControlDef struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Text        string            `json:"text"`
	Placeholder string            `json:"placeholder"`
	URL         string            `json:"url"`
	Bind        string            `json:"bind"`
	X           int               `json:"x"`
	Y           int               `json:"y"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Events      map[string]string `json:"events"`
}

// FormDef describes a form. Two JSON shapes are accepted: the form object
// at the top level, or wrapped as {"form": {...}}. Size comes from either
// a two-element "size" array or flat "width"/"height" fields.
type FormDef struct {
	Name        string       `json:"name"`
	Title       string       `json:"title"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	DataContext string       `json:"dataContext"`
	Controls    []ControlDef `json:"controls"`
}

type wrappedForm struct {
	Form *json.RawMessage `json:"form"`
}

type sizedForm struct {
	Size []int `json:"size"`
}

// ParseDef decodes a form definition from JSON text.
func ParseDef(text string) (*FormDef, error) {
	raw := []byte(text)

	var wrapper wrappedForm
	if err := json.Unmarshal(raw, &wrapper); err == nil && wrapper.Form != nil {
		raw = *wrapper.Form
	}

	var def FormDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parse form definition: %w", err)
	}

	var sized sizedForm
	if err := json.Unmarshal(raw, &sized); err == nil && len(sized.Size) == 2 {
		def.Width = sized.Size[0]
		def.Height = sized.Size[1]
	}
	if def.Width == 0 {
		def.Width = 400
	}
	if def.Height == 0 {
		def.Height = 200
	}
	return &def, nil
}

// Handler resolves the Sub name bound to a control event, matching the
// event name case-insensitively with the usual aliases.
func (c *ControlDef) Handler(event string) (string, bool) {
	want := normalizeEvent(event)
	for name, handler := range c.Events {
		if normalizeEvent(name) == want {
			return handler, true
		}
	}
	return "", false
}

func normalizeEvent(name string) string {
	switch strings.ToLower(name) {
	case "change", "selectedindexchanged", "selectionchanged":
		return "change"
	case "loadfinished", "load_done":
		return "loadfinished"
	default:
		return strings.ToLower(name)
	}
}
