// Package prefs persists user preferences (theme and language) between runs.
package prefs

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/cristianoliveira/contacts/internal/config"
)

// Known preference keys.
const (
	KeyDarkMode = "darkMode"
	KeyLanguage = "language"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendTOML   = "toml"
)

var (
	// ErrUnknownKey is returned when setting a key that is not a known preference.
	ErrUnknownKey = errors.New("unknown preference key")
	// ErrInvalidValue is returned when a value does not fit its key.
	ErrInvalidValue = errors.New("invalid preference value")
)

// Store is a small string key/value store.
type Store interface {
	// Get returns the stored value and whether it exists.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// All returns every stored pair.
	All() (map[string]string, error)
	// Close releases the store's resources.
	Close() error
}

// Keys returns the known preference keys in display order.
func Keys() []string {
	return []string{KeyDarkMode, KeyLanguage}
}

// Open returns the store for backend using the configured directories.
// An empty backend uses the prefs_backend setting.
func Open(backend string) (Store, error) {
	if backend == "" {
		backend = config.Get("prefs_backend", BackendSQLite)
	}
	switch strings.ToLower(backend) {
	case BackendSQLite:
		return NewSQLiteStore(filepath.Join(config.Get("state_dir", ""), "prefs.db"))
	case BackendTOML:
		return NewTOMLStore(filepath.Join(config.Get("config_dir", ""), "prefs"+config.FileExtTOML))
	default:
		return nil, fmt.Errorf("unsupported prefs backend: %s", backend)
	}
}

// Normalize validates value for key and returns its canonical form.
func Normalize(key, value string) (string, error) {
	switch key {
	case KeyDarkMode:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return "", fmt.Errorf("%w: %s must be true or false", ErrInvalidValue, key)
		}
		return strconv.FormatBool(b), nil
	case KeyLanguage:
		v := strings.TrimSpace(value)
		if v == "" {
			return "", fmt.Errorf("%w: %s cannot be empty", ErrInvalidValue, key)
		}
		return v, nil
	default:
		return "", fmt.Errorf("%w: %s (known: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}
}

// DarkMode reports the saved theme. Missing or unreadable values mean light.
func DarkMode(s Store) bool {
	v, ok, err := s.Get(KeyDarkMode)
	if err != nil || !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// SetDarkMode saves the theme.
func SetDarkMode(s Store, dark bool) error {
	return s.Set(KeyDarkMode, strconv.FormatBool(dark))
}

// Language returns the saved language or fallback.
func Language(s Store, fallback string) string {
	v, ok, err := s.Get(KeyLanguage)
	if err != nil || !ok || v == "" {
		return fallback
	}
	return v
}

// SetLanguage saves the language code.
func SetLanguage(s Store, code string) error {
	v, err := Normalize(KeyLanguage, code)
	if err != nil {
		return err
	}
	return s.Set(KeyLanguage, v)
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MemoryStore keeps preferences in memory only.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) All() (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
