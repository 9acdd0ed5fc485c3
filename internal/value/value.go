// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 dinikifo

// Package value implements the dynamic value tree shared by scripts and the
// host: null, int64, float64, string, bool, ordered-key mappings (*Object)
// and indexed sequences (*List), plus the dotted/bracketed path accessor.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a dynamic value. The engine only ever produces nil, int64,
// float64, string, bool, *Object, *List, or an opaque host object; integers
// are always int64 so equality and formatting stay uniform.
type Value = any

// Object is a mapping with stable key order (insertion order, like the
// JSON documents it round-trips with).
type Object struct {
	keys   []string
	fields map[string]Value
}

// NewObject creates an empty ordered mapping.
func NewObject() *Object {
	return &Object{fields: make(map[string]Value)}
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.fields[key]
	return v, ok
}

// Set stores key=v, appending the key on first use.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.fields[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.fields[key]
	return ok
}

// Delete removes key if present.
func (o *Object) Delete(key string) {
	if _, ok := o.fields[key]; !ok {
		return
	}
	delete(o.fields, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// List is a mutable indexed sequence.
type List struct {
	Items []Value
}

// NewList creates a list from the given items.
func NewList(items ...Value) *List {
	return &List{Items: items}
}

// Append adds items to the end of the list.
func (l *List) Append(items ...Value) {
	l.Items = append(l.Items, items...)
}

// Len returns the number of items.
func (l *List) Len() int { return len(l.Items) }

// NormalizeFloat collapses a float with no fractional part to int64. This
// normalization is applied to every arithmetic result and parsed number, so
// 3.5+0.5 formats as "4", not "4.0".
func NormalizeFloat(f float64) Value {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && !math.IsNaN(f) &&
		f >= math.MinInt64 && f <= math.MaxInt64 {
		return int64(f)
	}
	return f
}

// ParseNumber parses a numeric literal, producing int64 for integral text
// and float64 otherwise.
func ParseNumber(s string) (Value, error) {
	if !strings.ContainsAny(s, ".eE") {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Format renders a value the way scripts see it: null is the empty string,
// integers have no decimal point, structured nodes serialize as JSON.
func Format(v Value) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		if t {
			return "True"
		}
		return "False"
	case *Object, *List:
		s, err := Stringify(t)
		if err != nil {
			return ""
		}
		return s
	default:
		return fmt.Sprint(v)
	}
}

// ToFloat coerces a value to float64, yielding 0 for anything non-numeric.
func ToFloat(v Value) float64 {
	switch t := v.(type) {
	case int64:
		return float64(t)
	case float64:
		return t
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Truthy reports condition truth for a value without a relational operator:
// non-null, non-empty string, non-zero number, non-empty container.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case int64:
		return t != 0
	case float64:
		return t != 0
	case bool:
		return t
	case *Object:
		return t.Len() > 0
	case *List:
		return t.Len() > 0
	default:
		return true
	}
}

// Clone deep-copies structured nodes; scalars and host objects are shared.
func Clone(v Value) Value {
	switch t := v.(type) {
	case *Object:
		out := NewObject()
		for _, k := range t.keys {
			out.Set(k, Clone(t.fields[k]))
		}
		return out
	case *List:
		items := make([]Value, len(t.Items))
		for i, it := range t.Items {
			items[i] = Clone(it)
		}
		return NewList(items...)
	default:
		return v
	}
}
