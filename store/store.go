// Package store implements the file-backed JSON key/value stores used for
// user LLM credentials and theme/footer preferences. Each Store owns one
// JSON document on disk and fully rewrites it on every mutation.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a key/value store persisted as a single JSON document.
// Construct one per logical purpose with its file path; it is safe for
// concurrent use within one process but not across processes (the
// read-modify-write cycle is not atomic on disk).
type Store struct {
	path   string
	logger func(string)
	mu     sync.Mutex
	data   map[string]interface{}
	loaded bool
}

// New creates a store backed by the JSON document at path. The file is
// loaded lazily on first access; a missing or unreadable document is
// treated as an empty store, never as an error.
func New(path string, logger func(string)) *Store {
	return &Store{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.data = make(map[string]interface{})

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log(fmt.Sprintf("store %s unreadable, starting empty: %v", s.path, err))
		}
		return
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		// corrupt document: replaced by an empty store on next write
		s.log(fmt.Sprintf("store %s corrupt, starting empty: %v", s.path, err))
		s.data = make(map[string]interface{})
	}
}

// Get returns the stored value for key. Absent or falsy values ("" , 0,
// false, nil) fall back to def. This is a value-level fallback: use Has
// for an existence-level check.
func (s *Store) Get(key string, def interface{}) interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	v, ok := s.data[key]
	if !ok || isFalsy(v) {
		return def
	}
	return v
}

// GetString is Get with a string default and result.
func (s *Store) GetString(key, def string) string {
	v := s.Get(key, def)
	if str, ok := v.(string); ok {
		return str
	}
	return def
}

// Set replaces the value for key and rewrites the whole document.
// Write failures propagate: silently losing a user write is worse than
// surfacing an error.
func (s *Store) Set(key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	s.data[key] = value
	return s.flush()
}

// SetAll merges every entry of values into the document in one write.
func (s *Store) SetAll(values map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	for k, v := range values {
		s.data[k] = v
	}
	return s.flush()
}

// Has reports whether key exists, regardless of how falsy its value is.
func (s *Store) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	_, ok := s.data[key]
	return ok
}

// Delete removes key and rewrites the whole document. Deleting an absent
// key is a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.flush()
}

// Snapshot returns a copy of the current document.
func (s *Store) Snapshot() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	out := make(map[string]interface{}, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// flush serializes the whole document. Caller holds the mutex.
func (s *Store) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store document: %w", err)
	}
	// 0600: may contain API keys
	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write store document: %w", err)
	}
	return nil
}

func (s *Store) log(msg string) {
	if s.logger != nil {
		s.logger(msg)
	}
}

// isFalsy mirrors the historical value-level fallback: empty strings,
// numeric zero, false and nil all read as unset.
func isFalsy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64: // json numbers decode as float64
		return t == 0
	case int:
		return t == 0
	case int64:
		return t == 0
	default:
		return false
	}
}
