package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// File permissions for the catalog file
const (
	catalogFilePermissions = 0644
)

// ConfigError reports a catalog file that exists but could not be read or
// parsed. The store recovers by falling back to the built-in default
// catalog in memory; the broken file is left untouched on disk.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("failed to read catalog %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Store persists a Catalog as a pretty-printed JSON document at Path.
type Store struct {
	Path string
}

// NewStore creates a catalog store for the given file path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads the catalog file. When the file does not exist, the built-in
// default catalog is written to Path and returned with created=true. When
// the file exists but cannot be parsed, the default catalog is returned
// together with a *ConfigError; the on-disk file is not overwritten so the
// user can still repair it by hand.
func (s *Store) Load() (cat Catalog, created bool, err error) {
	data, readErr := os.ReadFile(s.Path)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			cat = Default()
			if saveErr := s.Save(cat); saveErr != nil {
				return cat, false, saveErr
			}
			log.Printf("Catalog %s not found, sample created", s.Path)
			return cat, true, nil
		}
		return Default(), false, &ConfigError{Path: s.Path, Err: readErr}
	}

	if err := json.Unmarshal(data, &cat); err != nil {
		return Default(), false, &ConfigError{Path: s.Path, Err: err}
	}
	return cat, false, nil
}

// Save serializes the full catalog as indented JSON, overwriting Path.
func (s *Store) Save(cat Catalog) error {
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	if err := os.WriteFile(s.Path, data, catalogFilePermissions); err != nil {
		return fmt.Errorf("failed to write catalog %s: %w", s.Path, err)
	}
	return nil
}

// UpsertComponent inserts or overwrites a component URL in the catalog.
// Persisting the change is left to the caller via Save, so a failed write
// never loses the in-memory edit.
func (s *Store) UpsertComponent(cat Catalog, category, project, component, url string) {
	cat.Upsert(category, project, component, url)
}
