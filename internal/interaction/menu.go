package interaction

import (
	"fmt"

	"github.com/piwi3910/RackPlanner/internal/editor"
	"github.com/piwi3910/RackPlanner/internal/engine"
	"github.com/piwi3910/RackPlanner/internal/geometry"
	"github.com/piwi3910/RackPlanner/internal/scene"
)

// Action names a context menu entry.
type Action string

const (
	ActionFillBlanks    Action = "fill-blanks"
	ActionEditNotes     Action = "edit-notes"
	ActionAlignNotesX   Action = "align-notes-x"
	ActionDuplicateUp   Action = "duplicate-up"
	ActionDuplicateDown Action = "duplicate-down"
	ActionDelete        Action = "delete"
)

// DuplicateCounts are the repeat counts offered for duplication.
var DuplicateCounts = []int{1, 2, 3, 5}

// MenuItem is one context menu entry.
type MenuItem struct {
	Action  Action
	Count   int
	Label   string
	Enabled bool
}

// Menu is the context menu for the current selection.
type Menu struct {
	Items []MenuItem
}

// Enabled reports whether the entry for action and count is enabled.
func (m Menu) Enabled(a Action, count int) bool {
	for _, it := range m.Items {
		if it.Action == a && it.Count == count {
			return it.Enabled
		}
	}
	return false
}

// ContextMenu updates the selection for a secondary click at a screen
// position and returns the menu to show. It returns false when no menu
// should be shown.
func (m *Machine) ContextMenu(pos geometry.Point) (Menu, bool) {
	if m.Mode() == ModeEditingRackName {
		return Menu{}, false
	}
	st := m.st
	world := st.View.ToWorld(pos)
	m.menuTarget = nil
	defer m.selectionChanged()
	defer m.redraw()

	if n, ok := m.noteAt(world); ok {
		m.menuTarget = &n
		st.Selection.ClearItems()
		if st.Active != n.Rack {
			st.Active = n.Rack
			st.Selection.ClearNotes()
		}
		if !st.Selection.HasNote(n) {
			st.Selection.SetNotes(n)
		}
		return m.buildMenu(), true
	}

	hit, ok := m.rackAt(world)
	if !ok {
		st.Selection.Clear()
		return Menu{}, false
	}
	st.Active = hit.Index
	st.Selection.ClearNotes()
	if ref, ok := scene.HitItem(st.Racks[hit.Index], hit.Local); ok {
		sel := editor.ItemSel{Rack: hit.Index, Ref: ref}
		if !st.Selection.HasItem(sel) {
			st.Selection.SetItems(sel)
		}
	} else {
		st.Selection.Clear()
	}
	return m.buildMenu(), true
}

func (m *Machine) buildMenu() Menu {
	st := m.st
	menu := Menu{Items: []MenuItem{
		{Action: ActionFillBlanks, Label: "Fill with Blanks", Enabled: st.ActiveRack() != nil},
		{Action: ActionEditNotes, Label: "Edit Notes", Enabled: len(st.Selection.Items) == 1},
		{Action: ActionAlignNotesX, Label: "Align Notes Horizontally", Enabled: m.menuTarget != nil && len(st.Selection.Notes) >= 2},
	}}
	for _, dir := range []engine.Direction{engine.Up, engine.Down} {
		action := ActionDuplicateDown
		if dir == engine.Up {
			action = ActionDuplicateUp
		}
		for _, n := range DuplicateCounts {
			menu.Items = append(menu.Items, MenuItem{
				Action:  action,
				Count:   n,
				Label:   fmt.Sprintf("Duplicate %s x%d", dir, n),
				Enabled: st.CanDuplicate(dir, n),
			})
		}
	}
	menu.Items = append(menu.Items, MenuItem{Action: ActionDelete, Label: "Delete", Enabled: len(st.Selection.Items) > 0})
	return menu
}

// RunMenuAction performs a context menu entry.
func (m *Machine) RunMenuAction(a Action, count int) error {
	st := m.st
	defer m.selectionChanged()
	defer m.redraw()
	switch a {
	case ActionFillBlanks:
		st.FillBlanks()
	case ActionEditNotes:
		if m.hooks.OpenInfo != nil {
			m.hooks.OpenInfo()
		}
	case ActionAlignNotesX:
		if m.menuTarget == nil {
			return fmt.Errorf("%w: no alignment target", engine.ErrInvalidSelection)
		}
		return st.AlignNotesX(*m.menuTarget)
	case ActionDuplicateUp:
		return st.Duplicate(engine.Up, count)
	case ActionDuplicateDown:
		return st.Duplicate(engine.Down, count)
	case ActionDelete:
		m.requestDeleteSelection()
	default:
		return fmt.Errorf("unknown menu action %q", a)
	}
	return nil
}
