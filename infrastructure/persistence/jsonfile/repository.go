// Package jsonfile persists the glossary collection as a JSON document on
// disk. Load returns the same logical collection that was last saved.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"glossary-backend/domain/glossary"
)

// document is the on-disk shape, matching the seed dataset.
type document struct {
	Glossary []glossary.Term `json:"glossary"`
}

// Repository serializes the full collection to a single JSON file.
type Repository struct {
	path string
	mu   sync.Mutex
}

// NewRepository creates a repository writing to the given path.
func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

// Exists reports whether a previously saved collection is present.
func (r *Repository) Exists() bool {
	_, err := os.Stat(r.path)
	return err == nil
}

// Save writes the collection atomically (temp file + rename) so a crash
// mid-write never leaves a truncated data file behind.
func (r *Repository) Save(terms []glossary.Term) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(document{Glossary: terms}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode glossary data: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".glossary-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp data file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close data file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}

// Load reads the last-saved collection.
func (r *Repository) Load() ([]glossary.Term, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file %s: %w", r.path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse data file %s: %w", r.path, err)
	}
	return doc.Glossary, nil
}
