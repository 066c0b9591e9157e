// Package persistence stores the trained model as an opaque gzip-compressed gob blob
package persistence

import (
	"compress/gzip"
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrModelNotFound is returned when no model exists at the managed path
var ErrModelNotFound = errors.New("trained model not found")

// Manager handles save/load of the trained model
type Manager struct {
	path string
}

// NewManager creates a manager for the given model file
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// FilePath returns the model file path
func (m *Manager) FilePath() string {
	return m.path
}

// Exists checks if a model file exists
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.path)
	return err == nil
}

// Save writes the model to disk, replacing any previous one only once fully written
func (m *Manager) Save(dto ModelDTO) error {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(m.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create model file: %w", err)
	}
	defer os.Remove(tmp.Name())

	gz := gzip.NewWriter(tmp)
	if err := gob.NewEncoder(gz).Encode(dto); err != nil {
		tmp.Close()
		return fmt.Errorf("encode model: %w", err)
	}
	if err := gz.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("compress model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write model: %w", err)
	}

	return os.Rename(tmp.Name(), m.path)
}

// Load reads the model from disk
func (m *Manager) Load() (ModelDTO, error) {
	var dto ModelDTO

	f, err := os.Open(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		return dto, fmt.Errorf("%w: %s", ErrModelNotFound, m.path)
	}
	if err != nil {
		return dto, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return dto, fmt.Errorf("read model %s: %w", m.path, err)
	}
	defer gz.Close()

	if err := gob.NewDecoder(gz).Decode(&dto); err != nil {
		return dto, fmt.Errorf("decode model %s: %w", m.path, err)
	}

	if len(dto.Genes) != dto.Shape().GeneCount() {
		return dto, fmt.Errorf("model %s: shape %s with %d genes", m.path, dto.Shape(), len(dto.Genes))
	}

	return dto, nil
}
