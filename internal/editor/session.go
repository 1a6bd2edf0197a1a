package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/piwi3910/RackPlanner/internal/model"
)

// Gateway stores layouts by name.
type Gateway interface {
	List(ctx context.Context) ([]string, error)
	Save(ctx context.Context, name string, racks []model.Rack) error
	Load(ctx context.Context, name string) ([]model.Rack, error)
	Delete(ctx context.Context, name string) error
}

// ErrNoGateway is returned by session operations on a state without a
// layout store.
var ErrNoGateway = errors.New("no layout store configured")

// ErrNoFilename is returned by Save when the layout has never been named.
var ErrNoFilename = errors.New("layout has no name")

// Layouts lists the stored layout names.
func (s *State) Layouts(ctx context.Context) ([]string, error) {
	if s.gateway == nil {
		return nil, ErrNoGateway
	}
	return s.gateway.List(ctx)
}

// Exists reports whether a layout with the given name is stored.
func (s *State) Exists(ctx context.Context, name string) (bool, error) {
	names, err := s.Layouts(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// Save writes the layout under its current name.
func (s *State) Save(ctx context.Context) error {
	if s.Filename == "" {
		return ErrNoFilename
	}
	return s.SaveAs(ctx, s.Filename)
}

// SaveAs writes the layout under name, which becomes the current name.
func (s *State) SaveAs(ctx context.Context, name string) error {
	if s.gateway == nil {
		return ErrNoGateway
	}
	if err := s.gateway.Save(ctx, name, s.Racks); err != nil {
		return fmt.Errorf("failed to save layout %q: %w", name, err)
	}
	s.Filename = name
	s.MarkSaved()
	s.log.Info("layout saved", "name", name, "racks", len(s.Racks))
	return nil
}

// Open replaces the layout with the stored one called name.
func (s *State) Open(ctx context.Context, name string) error {
	if s.gateway == nil {
		return ErrNoGateway
	}
	racks, err := s.gateway.Load(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to load layout %q: %w", name, err)
	}
	s.Load(racks, name)
	s.log.Info("layout loaded", "name", name, "racks", len(s.Racks))
	return nil
}

// DeleteLayout removes a stored layout. Deleting the current layout's file
// forgets its name but keeps the racks on screen.
func (s *State) DeleteLayout(ctx context.Context, name string) error {
	if s.gateway == nil {
		return ErrNoGateway
	}
	if err := s.gateway.Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to delete layout %q: %w", name, err)
	}
	if s.Filename == name {
		s.Filename = ""
	}
	s.log.Info("layout deleted", "name", name)
	return nil
}
