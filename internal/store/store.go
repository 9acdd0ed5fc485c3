// Package store provides persistence for the application data tree.
package store

import "github.com/dinikifo/VB6.tiny.clone/internal/value"

// Store is the interface for tree persistence.
type Store interface {
	// Load retrieves the persisted tree, healed to the expected shape.
	// A missing or empty backend yields a fresh default, not an error.
	Load() (value.Value, error)
	// Save persists the tree, replacing whatever was stored before.
	Save(root value.Value) error
	// Close releases resources.
	Close() error
}

// Healer repairs a loaded tree into the shape the application expects. It
// receives whatever was decoded (possibly nil) and returns the tree to
// use; implementations must tolerate arbitrary input.
type Healer func(root value.Value) value.Value

func heal(h Healer, root value.Value) value.Value {
	if h == nil {
		return root
	}
	return h(root)
}
