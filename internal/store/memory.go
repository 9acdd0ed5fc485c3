package store

import (
	"sync"

	"github.com/dinikifo/VB6.tiny.clone/internal/value"
)

// Memory is an in-memory store for testing.
type Memory struct {
	mu   sync.RWMutex
	root value.Value
	heal Healer
}

// NewMemory creates a new in-memory store.
func NewMemory(h Healer) *Memory {
	return &Memory{heal: h}
}

// Load returns a deep copy of the held tree, healed.
func (m *Memory) Load() (value.Value, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return heal(m.heal, value.Clone(m.root)), nil
}

// Save replaces the held tree with a deep copy of root.
func (m *Memory) Save(root value.Value) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.root = value.Clone(root)
	return nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}
