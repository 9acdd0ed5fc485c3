// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 dinikifo

package value

import (
	"fmt"
	"strconv"
	"strings"
)

// PathToken is one step of a path: either a string key into a mapping or an
// integer index into a sequence.
type PathToken struct {
	Key   string
	Index int
	IsKey bool
}

func (t PathToken) String() string {
	if t.IsKey {
		return t.Key
	}
	return "[" + strconv.Itoa(t.Index) + "]"
}

// ParsePath splits a dotted-and-bracketed path like "a.b[0].c" into tokens.
func ParsePath(path string) ([]PathToken, error) {
	var tokens []PathToken
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			tokens = append(tokens, PathToken{Key: buf.String(), IsKey: true})
			buf.Reset()
		}
	}

	for i := 0; i < len(path); {
		switch ch := path[i]; ch {
		case '.':
			flush()
			i++
		case '[':
			flush()
			i++
			start := i
			for i < len(path) && path[i] != ']' {
				i++
			}
			n, err := strconv.Atoi(path[start:i])
			if err != nil {
				return nil, fmt.Errorf("path %q: bad index %q", path, path[start:i])
			}
			if i < len(path) {
				i++ // skip ]
			}
			tokens = append(tokens, PathToken{Index: n})
		default:
			buf.WriteByte(ch)
			i++
		}
	}
	flush()
	return tokens, nil
}

// Get resolves a path against a structured tree. It fails with an error for
// missing keys, out-of-range indexes, and type-mismatched segments.
func Get(root Value, path string) (Value, error) {
	tokens, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	cur := root
	for _, tok := range tokens {
		if tok.IsKey {
			obj, ok := cur.(*Object)
			if !ok {
				return nil, fmt.Errorf("path %q: key %q on non-mapping %s", path, tok.Key, TypeName(cur))
			}
			v, ok := obj.Get(tok.Key)
			if !ok {
				return nil, fmt.Errorf("path %q: key %q not found", path, tok.Key)
			}
			cur = v
		} else {
			list, ok := cur.(*List)
			if !ok {
				return nil, fmt.Errorf("path %q: index [%d] on non-sequence %s", path, tok.Index, TypeName(cur))
			}
			if tok.Index < 0 || tok.Index >= len(list.Items) {
				return nil, fmt.Errorf("path %q: index [%d] out of range", path, tok.Index)
			}
			cur = list.Items[tok.Index]
		}
	}
	return cur, nil
}

// Set writes a value at a path, creating empty mappings for missing or null
// intermediate key segments. Index segments never create nodes; traversing
// a segment whose node has the wrong shape is a type error.
func Set(root Value, path string, v Value) error {
	tokens, err := ParsePath(path)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return fmt.Errorf("empty path")
	}

	switch root.(type) {
	case *Object, *List:
	default:
		return fmt.Errorf("set %q: root must be a mapping or sequence, got %s", path, TypeName(root))
	}

	cur := root
	for _, tok := range tokens[:len(tokens)-1] {
		if tok.IsKey {
			obj, ok := cur.(*Object)
			if !ok {
				return fmt.Errorf("set %q: key %q on non-mapping %s", path, tok.Key, TypeName(cur))
			}
			next, ok := obj.Get(tok.Key)
			if !ok || next == nil {
				next = NewObject()
				obj.Set(tok.Key, next)
			}
			cur = next
		} else {
			list, ok := cur.(*List)
			if !ok {
				return fmt.Errorf("set %q: index [%d] on non-sequence %s", path, tok.Index, TypeName(cur))
			}
			if tok.Index < 0 || tok.Index >= len(list.Items) {
				return fmt.Errorf("set %q: index [%d] out of range", path, tok.Index)
			}
			cur = list.Items[tok.Index]
		}
	}

	last := tokens[len(tokens)-1]
	if last.IsKey {
		obj, ok := cur.(*Object)
		if !ok {
			return fmt.Errorf("set %q: key %q on non-mapping %s", path, last.Key, TypeName(cur))
		}
		obj.Set(last.Key, v)
		return nil
	}
	list, ok := cur.(*List)
	if !ok {
		return fmt.Errorf("set %q: index [%d] on non-sequence %s", path, last.Index, TypeName(cur))
	}
	if last.Index < 0 || last.Index >= len(list.Items) {
		return fmt.Errorf("set %q: index [%d] out of range", path, last.Index)
	}
	list.Items[last.Index] = v
	return nil
}

// TypeName names a value's dynamic type for diagnostics.
func TypeName(v Value) string {
	switch v.(type) {
	case nil:
		return "null"
	case *Object:
		return "mapping"
	case *List:
		return "sequence"
	case string:
		return "string"
	case int64, float64:
		return "number"
	case bool:
		return "bool"
	default:
		return fmt.Sprintf("%T", v)
	}
}
