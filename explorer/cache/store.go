// Package cache holds the explorer's local key-value store. Entries are written whole and
// never merged, the last writer wins.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ValidatorsKey is the entry holding the validator directory
const ValidatorsKey = "validators"

// Backends accepted by Open
const (
	BackendMemory  = "memory"
	BackendLevelDB = "leveldb"
)

var ErrClosed = errors.New("cache: store closed")

// Store is a flat key-value store
type Store interface {
	// Get returns the value and whether the key was present
	Get(key string) ([]byte, bool, error)
	// Put replaces the value of key
	Put(key string, value []byte) error
	Close() error
}

// Open returns the store for the configured backend, "memory" or "leveldb"
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendLevelDB:
		return NewLevelStore(path)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}

// SaveJSON serializes v and replaces the entry
func SaveJSON(s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.Put(key, data)
}

// LoadJSON parses the entry into v. It reports false when the entry is absent.
func LoadJSON(s Store, key string, v any) (bool, error) {
	data, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}
