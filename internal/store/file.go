// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 dinikifo

package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dinikifo/VB6.tiny.clone/internal/value"
)

// File is a JSON-file-backed store. Save writes to a temp file and renames
// it into place, then drops a timestamped backup copy next to it.
type File struct {
	mu   sync.Mutex
	path string
	heal Healer
}

// NewFile creates a file store at the given path. Nothing is read or
// written until Load or Save.
func NewFile(path string, h Healer) *File {
	return &File{path: path, heal: h}
}

// Load reads and decodes the file. A missing or undecodable file yields
// the healed default rather than an error.
func (f *File) Load() (value.Value, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		return heal(f.heal, nil), nil
	}
	root, err := value.Parse(string(data))
	if err != nil {
		return heal(f.heal, nil), nil
	}
	return heal(f.heal, root), nil
}

// Save encodes the tree, writes it atomically, and leaves a timestamped
// backup like ledger.2025.11.21.13.45.00.json beside the main file.
func (f *File) Save(root value.Value) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	text, err := value.StringifyIndent(root)
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}
	data := []byte(text)

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}

	backup := f.backupPath(time.Now())
	if err := os.WriteFile(backup, data, 0o644); err != nil {
		return fmt.Errorf("write backup %s: %w", backup, err)
	}
	return nil
}

// Close is a no-op for file store.
func (f *File) Close() error {
	return nil
}

func (f *File) backupPath(now time.Time) string {
	dir := filepath.Dir(f.path)
	base := filepath.Base(f.path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	ts := now.Format("2006.01.02.15.04.05")
	return filepath.Join(dir, fmt.Sprintf("%s.%s%s", stem, ts, ext))
}
