package interaction

import (
	"math"

	"github.com/piwi3910/RackPlanner/internal/editor"
	"github.com/piwi3910/RackPlanner/internal/geometry"
	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/piwi3910/RackPlanner/internal/notes"
	"github.com/piwi3910/RackPlanner/internal/scene"
)

// noteAt returns the floating note under a world point. Floating notes
// exist in the single-rack view only, where the active rack sits at the
// world origin.
func (m *Machine) noteAt(world geometry.Point) (editor.NoteSel, bool) {
	st := m.st
	if st.Multi || !st.ShowNotes {
		return editor.NoteSel{}, false
	}
	r := st.ActiveRack()
	if r == nil {
		return editor.NoteSel{}, false
	}
	p, ok := notes.HitTest(*r, world, m.measure())
	if !ok {
		return editor.NoteSel{}, false
	}
	return editor.NoteSel{Rack: st.Active, Owner: p.Ref}, true
}

// headerAt returns the rack whose header region contains a world point.
// onDelete is true for the delete button.
func (m *Machine) headerAt(world geometry.Point) (i int, onDelete, ok bool) {
	if !m.st.Multi {
		return 0, false, false
	}
	b := m.r.Bounds()
	for i, r := range m.st.Racks {
		h, found := b.Header(r.ID)
		if !found {
			continue
		}
		if h.Delete.Contains(world) {
			return i, true, true
		}
		if h.Name.Contains(world) {
			return i, false, true
		}
	}
	return 0, false, false
}

func (m *Machine) rackAt(world geometry.Point) (scene.RackHit, bool) {
	return scene.RackAt(m.st.Racks, m.st.Active, m.st.Multi, world)
}

// worldRect returns an item's rectangle in world coordinates.
func (m *Machine) worldRect(sel editor.ItemSel) (geometry.Rect, bool) {
	if sel.Rack < 0 || sel.Rack >= len(m.st.Racks) {
		return geometry.Rect{}, false
	}
	r, ok := scene.OwnerRect(m.st.Racks[sel.Rack], sel.Ref)
	if !ok {
		return geometry.Rect{}, false
	}
	return r.Translate(scene.RackOrigin(m.st.Racks, sel.Rack, m.st.Multi)), true
}

// PointerDown starts a gesture.
func (m *Machine) PointerDown(ev PointerEvent) {
	if m.Mode() == ModeEditingRackName {
		return
	}
	st := m.st
	if (ev.Button == ButtonPrimary && ev.Mods.Shift) || ev.Button == ButtonMiddle {
		m.payload = panPayload{last: ev.Pos}
		return
	}
	if ev.Button != ButtonPrimary {
		return
	}
	world := st.View.ToWorld(ev.Pos)
	defer m.selectionChanged()
	defer m.redraw()

	if n, ok := m.noteAt(world); ok {
		m.pressNote(n, world, ev.Mods)
		return
	}

	if i, onDelete, ok := m.headerAt(world); ok {
		if onDelete {
			m.requestDeleteRack(i)
			return
		}
		x := float64(i * scene.RackPitch)
		m.payload = rackDragPayload{index: i, grab: world.X - x, ghostX: x, drop: i}
		return
	}

	hit, ok := m.rackAt(world)
	if !ok {
		m.startMarquee(ev)
		return
	}
	st.Active = hit.Index
	if !ev.Mods.Ctrl && len(st.Selection.Items) > 0 && st.Selection.Items[0].Rack != hit.Index {
		st.Selection.Clear()
	}

	ref, ok := scene.HitItem(st.Racks[hit.Index], hit.Local)
	if !ok {
		m.startMarquee(ev)
		return
	}
	sel := editor.ItemSel{Rack: hit.Index, Ref: ref}
	st.Selection.ClearNotes()
	if ev.Mods.Ctrl {
		st.Selection.ToggleItem(sel)
		return
	}
	if !st.Selection.HasItem(sel) {
		st.Selection.SetItems(sel)
	}
	m.startItemDrag(sel, world)
}

func (m *Machine) pressNote(n editor.NoteSel, world geometry.Point, mods Mods) {
	st := m.st
	selected := st.Selection.HasNote(n)

	if selected && !mods.Alt {
		initial := make(map[editor.NoteSel]model.Offset, len(st.Selection.Notes))
		for _, sn := range st.Selection.Notes {
			if off, ok := st.NoteOffset(sn); ok {
				initial[sn] = off
			}
		}
		m.payload = noteGroupPayload{start: world, initial: initial}
		return
	}

	if mods.Alt {
		switch {
		case mods.Ctrl:
			st.Selection.ToggleNote(n)
		case selected && len(st.Selection.Notes) == 1:
			st.Selection.ClearNotes()
		default:
			st.Selection.SetNotes(n)
		}
		st.Selection.ClearItems()
		return
	}

	st.Selection.ClearNotes()
	off, _ := st.NoteOffset(n)
	m.payload = noteDragPayload{note: n, start: world, initial: off, current: off}
	owner := editor.ItemSel{Rack: n.Rack, Ref: n.Owner}
	switch {
	case mods.Ctrl:
		st.Selection.ToggleItem(owner)
	case !st.Selection.HasItem(owner):
		st.Selection.SetItems(owner)
	}
}

func (m *Machine) startMarquee(ev PointerEvent) {
	st := m.st
	if !ev.Mods.Ctrl {
		st.Selection.Clear()
	}
	base := editor.Selection{}
	base.SetItems(st.Selection.Items...)
	base.SetNotes(st.Selection.Notes...)
	m.payload = marqueePayload{start: ev.Pos, current: ev.Pos, notes: ev.Mods.Alt, base: base}
}

func (m *Machine) startItemDrag(anchor editor.ItemSel, world geometry.Point) {
	ar, ok := m.worldRect(anchor)
	if !ok {
		return
	}
	top := geometry.Point{X: ar.X, Y: ar.Y}
	p := itemDragPayload{grab: world.Sub(top), start: world, pointer: world}
	for _, sel := range m.st.Selection.Items {
		it := m.st.Item(sel)
		if it == nil || it.Kind == model.KindPDU {
			continue
		}
		r, ok := m.worldRect(sel)
		if !ok {
			continue
		}
		p.members = append(p.members, dragMember{
			sel:    sel,
			offset: geometry.Point{X: r.X, Y: r.Y}.Sub(top),
			size:   geometry.Point{X: r.W, Y: r.H},
		})
	}
	m.payload = p
}

// PointerMove advances the current gesture or updates hover feedback.
func (m *Machine) PointerMove(ev PointerEvent) {
	st := m.st
	world := st.View.ToWorld(ev.Pos)
	switch p := m.payload.(type) {
	case renamePayload:
		return
	case noteGroupPayload:
		d := world.Sub(p.start)
		for n, off := range p.initial {
			st.SetNoteOffset(n, model.Offset{X: off.X + d.X, Y: off.Y + d.Y})
		}
	case noteDragPayload:
		d := world.Sub(p.start)
		p.current = model.Offset{X: p.initial.X + d.X, Y: p.initial.Y + d.Y}
		m.payload = p
	case rackDragPayload:
		p.ghostX = world.X - p.grab
		p.drop = scene.DropIndex(world.X, len(st.Racks))
		m.payload = p
	case panPayload:
		st.View.Offset = st.View.Offset.Add(ev.Pos.Sub(p.last))
		p.last = ev.Pos
		m.payload = p
	case itemDragPayload:
		p.pointer = world
		m.payload = p
	case marqueePayload:
		p.current = ev.Pos
		m.payload = p
		m.applyMarquee(p)
		m.selectionChanged()
	case nil:
		m.hover(world)
		return
	}
	m.redraw()
}

func (m *Machine) hover(world geometry.Point) {
	st := m.st
	cursor := CursorDefault
	var hovered *scene.NoteKey

	if _, onDelete, ok := m.headerAt(world); ok && !onDelete {
		cursor = CursorGrab
	} else if st.Multi {
		if n, ok := m.r.Bounds().StackedNoteAt(world); ok {
			k := n.Key
			hovered = &k
			cursor = CursorPointer
		}
	} else if _, ok := m.noteAt(world); ok {
		cursor = CursorGrab
	}

	changed := (hovered == nil) != (m.hoverNote == nil) ||
		(hovered != nil && *hovered != *m.hoverNote)
	m.hoverNote = hovered
	m.hoverCursor = cursor
	if changed {
		m.redraw()
	}
}

func (m *Machine) applyMarquee(p marqueePayload) {
	st := m.st
	wr := geometry.RectFromPoints(st.View.ToWorld(p.start), st.View.ToWorld(p.current))
	sel := editor.Selection{}

	if p.notes {
		sel.SetNotes(p.base.Notes...)
		for _, n := range m.notesIn(wr) {
			sel.AddNote(n)
		}
		st.Selection = sel
		return
	}

	sel.SetItems(p.base.Items...)
	for _, i := range m.visibleRacks() {
		origin := scene.RackOrigin(st.Racks, i, st.Multi)
		for _, ref := range scene.ItemsInRect(st.Racks[i], origin, wr) {
			sel.AddItem(editor.ItemSel{Rack: i, Ref: ref})
		}
	}
	st.Selection = sel
}

func (m *Machine) visibleRacks() []int {
	st := m.st
	if st.Multi {
		out := make([]int, len(st.Racks))
		for i := range out {
			out[i] = i
		}
		return out
	}
	if st.ActiveRack() == nil {
		return nil
	}
	return []int{st.Active}
}

func (m *Machine) notesIn(world geometry.Rect) []editor.NoteSel {
	st := m.st
	if !st.ShowNotes {
		return nil
	}
	var out []editor.NoteSel
	if !st.Multi {
		r := st.ActiveRack()
		if r == nil {
			return nil
		}
		for _, ref := range notes.InRect(*r, world, m.measure()) {
			out = append(out, editor.NoteSel{Rack: st.Active, Owner: ref})
		}
		return out
	}
	index := make(map[string]int, len(st.Racks))
	for i, r := range st.Racks {
		index[r.ID] = i
	}
	for _, n := range m.r.Bounds().StackedNotesIn(world) {
		if i, ok := index[n.Key.RackID]; ok {
			out = append(out, editor.NoteSel{Rack: i, Owner: n.Key.Item})
		}
	}
	return out
}

// PointerUp finishes the current gesture.
func (m *Machine) PointerUp(ev PointerEvent) {
	st := m.st
	switch p := m.payload.(type) {
	case renamePayload, nil:
		return
	case noteDragPayload:
		st.SetNoteOffset(p.note, p.current)
	case rackDragPayload:
		st.MoveRack(p.index, p.drop)
		m.selectionChanged()
	case itemDragPayload:
		// A click without movement leaves the layout and selection alone.
		if world := st.View.ToWorld(ev.Pos); world != p.start {
			m.commitItemDrag(p, world)
			m.selectionChanged()
		}
	case marqueePayload:
		m.selectionChanged()
	case panPayload, noteGroupPayload:
	}
	m.idle()
	m.redraw()
}

func (m *Machine) commitItemDrag(p itemDragPayload, world geometry.Point) {
	st := m.st
	hit, ok := m.rackAt(world)
	if !ok {
		return
	}
	top := world.Sub(p.grab)
	var moves []editor.ItemMove
	for _, mem := range p.members {
		it := st.Item(mem.sel)
		if it == nil || it.Kind != model.KindStandard {
			continue
		}
		ghostY := top.Y + mem.offset.Y - hit.Origin.Y
		moves = append(moves, editor.ItemMove{
			Sel:  mem.sel,
			NewY: int(math.Round(ghostY / model.BaseUnitHeight)),
		})
	}
	if err := st.CommitItemMove(hit.Index, moves); err != nil {
		st.Logger().Debug("drag rejected", "err", err)
	}
}

// DoubleClick renames a rack from its header in the overview, or selects
// the note owner or item under the pointer and opens its details.
func (m *Machine) DoubleClick(pos geometry.Point) {
	st := m.st
	if m.Mode() == ModeEditingRackName {
		m.idle()
	}
	world := st.View.ToWorld(pos)
	defer m.redraw()

	if i, onDelete, ok := m.headerAt(world); ok && !onDelete {
		m.payload = renamePayload{index: i}
		if m.hooks.EditRackName != nil {
			m.hooks.EditRackName(i, st.Racks[i].Name)
		}
		return
	}

	var sel editor.ItemSel
	if n, ok := m.noteAt(world); ok {
		sel = editor.ItemSel{Rack: n.Rack, Ref: n.Owner}
	} else {
		hit, ok := m.rackAt(world)
		if !ok {
			return
		}
		ref, ok := scene.HitItem(st.Racks[hit.Index], hit.Local)
		if !ok {
			return
		}
		sel = editor.ItemSel{Rack: hit.Index, Ref: ref}
	}
	st.Selection.Clear()
	st.Selection.SetItems(sel)
	m.selectionChanged()
	if m.hooks.OpenInfo != nil {
		m.hooks.OpenInfo()
	}
}

// Drop places a catalog template at a screen position.
func (m *Machine) Drop(tpl model.Template, pos geometry.Point) error {
	if m.Mode() == ModeEditingRackName {
		return nil
	}
	hit, ok := m.rackAt(m.st.View.ToWorld(pos))
	if !ok {
		return nil
	}
	_, err := m.st.Drop(tpl, hit.Index, hit.Local)
	m.redraw()
	m.selectionChanged()
	return err
}
