package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/piwi3910/RackPlanner/internal/model"
)

var (
	// ErrNotFound is returned when a named layout does not exist.
	ErrNotFound = errors.New("layout not found")
	// ErrInvalidName is returned for names that do not resolve to a file.
	ErrInvalidName = errors.New("invalid layout name")
)

const layoutExt = ".json"

// FileStore keeps named layouts as <dir>/<name>.json.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on
// the first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the directory the store writes to.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path resolves a layout name to its file. Directory components are
// stripped and the .json suffix is added when missing.
func (s *FileStore) Path(name string) (string, error) {
	base := filepath.Base(strings.TrimSpace(name))
	switch base {
	case "", ".", "..", string(filepath.Separator):
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if !strings.HasSuffix(base, layoutExt) {
		base += layoutExt
	}
	return filepath.Join(s.dir, base), nil
}

// List returns the stored layout names without extension, sorted.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), layoutExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), layoutExt))
	}
	sort.Strings(names)
	return names, nil
}

// Save writes racks under name, replacing any existing file.
func (s *FileStore) Save(ctx context.Context, name string, racks []model.Rack) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	data, err := EncodeLayout(racks)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	return nil
}

// Load reads the named layout.
func (s *FileStore) Load(ctx context.Context, name string) ([]model.Rack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	return DecodeLayout(data)
}

// Delete removes the named layout.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return fmt.Errorf("failed to delete layout: %w", err)
	}
	return nil
}
