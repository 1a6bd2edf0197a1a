package editor

import (
	"fmt"
	"strings"

	"github.com/piwi3910/RackPlanner/internal/model"
)

// AddRack appends a new empty rack named after its position and makes it
// active.
func (s *State) AddRack() *model.Rack {
	r := model.NewRack(fmt.Sprintf("Rack %d", len(s.Racks)+1), s.RackHeight)
	s.Racks = append(s.Racks, r)
	s.Active = len(s.Racks) - 1
	s.Selection.Clear()
	s.log.Debug("rack added", "name", r.Name, "heightU", r.HeightU)
	return &s.Racks[s.Active]
}

// DeleteRack removes rack i. The active index follows the rack it pointed
// at; removing the last remaining rack leaves a fresh empty one.
func (s *State) DeleteRack(i int) error {
	if i < 0 || i >= len(s.Racks) {
		return fmt.Errorf("rack index %d out of range", i)
	}
	name := s.Racks[i].Name
	s.Racks = append(s.Racks[:i], s.Racks[i+1:]...)
	switch {
	case len(s.Racks) == 0:
		s.Racks = []model.Rack{model.NewRack("Rack 1", s.RackHeight)}
		s.Active = 0
	case s.Active > i:
		s.Active--
	case s.Active >= len(s.Racks):
		s.Active = len(s.Racks) - 1
	}
	s.Selection.Clear()
	s.log.Info("rack deleted", "name", name)
	return nil
}

// SwitchRack moves the active rack by delta, wrapping around.
func (s *State) SwitchRack(delta int) {
	n := len(s.Racks)
	if n == 0 {
		return
	}
	s.SetActive(((s.Active+delta)%n + n) % n)
}

// SetActive makes rack i active. Item selections on other racks are
// dropped.
func (s *State) SetActive(i int) {
	if i < 0 || i >= len(s.Racks) || i == s.Active {
		return
	}
	s.Active = i
	s.Selection.ClearNotes()
	kept := s.Selection.Items[:0]
	for _, it := range s.Selection.Items {
		if it.Rack == i {
			kept = append(kept, it)
		}
	}
	s.Selection.Items = kept
}

// RenameRack sets the name of rack i. A blank name falls back to
// "Rack {i+1}".
func (s *State) RenameRack(i int, name string) {
	if i < 0 || i >= len(s.Racks) {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Rack %d", i+1)
	}
	s.Racks[i].Name = name
}

// ResizeRack changes the height of rack i. Items that end up past the new
// bottom are left where they are; full-height PDUs follow the rack.
func (s *State) ResizeRack(i, heightU int) error {
	if i < 0 || i >= len(s.Racks) {
		return fmt.Errorf("rack index %d out of range", i)
	}
	if heightU < model.MinRackHeight || heightU > model.MaxRackHeight {
		return fmt.Errorf("rack height must be between %d and %d, got %d",
			model.MinRackHeight, model.MaxRackHeight, heightU)
	}
	r := &s.Racks[i]
	r.HeightU = heightU
	for j := range r.Equipment {
		it := &r.Equipment[j]
		if it.Kind == model.KindPDU && it.FullHeight {
			it.Y = 0
			it.U = heightU
		}
	}
	return nil
}

// MoveRack moves the rack at from so that it lands at insertion index to,
// as computed against the list before removal. The active rack is tracked
// by id.
func (s *State) MoveRack(from, to int) {
	n := len(s.Racks)
	if from < 0 || from >= n {
		return
	}
	to = max(0, min(to, n))
	if to > from {
		to--
	}
	if to == from {
		return
	}
	activeID := ""
	if a := s.ActiveRack(); a != nil {
		activeID = a.ID
	}
	r := s.Racks[from]
	s.Racks = append(s.Racks[:from], s.Racks[from+1:]...)
	s.Racks = append(s.Racks[:to], append([]model.Rack{r}, s.Racks[to:]...)...)
	for i := range s.Racks {
		if s.Racks[i].ID == activeID {
			s.Active = i
			break
		}
	}
	s.Selection.Clear()
}
