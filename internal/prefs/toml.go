package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cristianoliveira/contacts/internal/config"
	"github.com/pelletier/go-toml/v2"
)

// TOMLStore keeps preferences in a flat TOML file. Every Set rewrites the
// whole file.
type TOMLStore struct {
	mu   sync.Mutex
	path string
}

// NewTOMLStore returns a store backed by path. The file is created on the
// first Set.
func NewTOMLStore(path string) (*TOMLStore, error) {
	if path == "" {
		return nil, fmt.Errorf("toml prefs: path cannot be empty")
	}
	return &TOMLStore{path: path}, nil
}

// Path returns the backing file path.
func (t *TOMLStore) Path() string { return t.path }

func (t *TOMLStore) read() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(t.path)
	if os.IsNotExist(err) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("toml prefs: read %s: %w", t.path, err)
	}
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("toml prefs: parse %s: %w", t.path, err)
	}
	return values, nil
}

func (t *TOMLStore) Get(key string) (string, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	values, err := t.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (t *TOMLStore) Set(key, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	values, err := t.read()
	if err != nil {
		return err
	}
	values[key] = value

	data, err := toml.Marshal(values)
	if err != nil {
		return fmt.Errorf("toml prefs: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(t.path), config.FileModeDir); err != nil {
		return fmt.Errorf("toml prefs: create directory: %w", err)
	}
	tmp := t.path + ".tmp"
	if err := os.WriteFile(tmp, data, config.FileModeFile); err != nil {
		return fmt.Errorf("toml prefs: write: %w", err)
	}
	return os.Rename(tmp, t.path)
}

func (t *TOMLStore) All() (map[string]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.read()
}

func (t *TOMLStore) Close() error { return nil }
