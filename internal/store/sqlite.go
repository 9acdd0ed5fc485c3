package store

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/dinikifo/VB6.tiny.clone/internal/value"
)

// Current schema version
const SchemaVersion = "1"

// documentName is the fixed key the application tree is stored under.
const documentName = "appdata"

// SQLite is a SQLite-backed store. The tree is serialized to JSON and kept
// as a single row in the documents table.
type SQLite struct {
	mu   sync.Mutex
	db   *sql.DB
	heal Healer
}

// NewSQLite creates a new SQLite store at the given path.
func NewSQLite(path string, h Healer) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Create tables if not exists
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			name TEXT PRIMARY KEY,
			body TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLite{db: db, heal: h}

	// Check/set schema version (use unlocked versions since we're in init)
	version, err := s.getMetadataUnlocked("schema_version")
	if err != nil {
		db.Close()
		return nil, err
	}
	if version == "" {
		if err := s.setMetadataUnlocked("schema_version", SchemaVersion); err != nil {
			db.Close()
			return nil, err
		}
	} else if version != SchemaVersion {
		db.Close()
		return nil, fmt.Errorf("unsupported schema version: %s (expected %s)", version, SchemaVersion)
	}

	return s, nil
}

// Load retrieves the tree document. A missing or undecodable row yields
// the healed default.
func (s *SQLite) Load() (value.Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var body string
	err := s.db.QueryRow("SELECT body FROM documents WHERE name = ?", documentName).Scan(&body)
	if err == sql.ErrNoRows {
		return heal(s.heal, nil), nil
	}
	if err != nil {
		return nil, err
	}

	root, err := value.Parse(body)
	if err != nil {
		return heal(s.heal, nil), nil
	}
	return heal(s.heal, root), nil
}

// Save serializes the tree and upserts the document row.
func (s *SQLite) Save(root value.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	body, err := value.Stringify(root)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO documents (name, body) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body
	`, documentName, body)
	return err
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// GetMetadata retrieves a metadata value by key.
func (s *SQLite) GetMetadata(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getMetadataUnlocked(key)
}

// getMetadataUnlocked retrieves metadata without locking (caller must hold lock).
func (s *SQLite) getMetadataUnlocked(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetMetadata stores a metadata value by key.
func (s *SQLite) SetMetadata(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setMetadataUnlocked(key, value)
}

// setMetadataUnlocked stores metadata without locking (caller must hold lock).
func (s *SQLite) setMetadataUnlocked(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
