// Package interaction turns pointer, wheel and keyboard input into edits
// of an editor.State. A Machine is always in exactly one Mode and keeps
// that mode's transient data in a single payload.
package interaction

import (
	"github.com/piwi3910/RackPlanner/internal/editor"
	"github.com/piwi3910/RackPlanner/internal/geometry"
	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/piwi3910/RackPlanner/internal/notes"
	"github.com/piwi3910/RackPlanner/internal/scene"
)

// Renderer is the drawing surface the machine drives.
type Renderer interface {
	RequestRedraw()
	MeasureText(text string, size float64) float64
	// Bounds is rewritten on every draw with the rack header and stacked
	// note regions.
	Bounds() *scene.Bounds
}

// Mode is the current interaction mode.
type Mode int

const (
	ModeIdle Mode = iota
	ModePanning
	ModeMarqueeSelecting
	ModeDraggingItemSelection
	ModeDraggingNote
	ModeDraggingNoteSelection
	ModeDraggingRack
	ModeEditingRackName
)

func (m Mode) String() string {
	switch m {
	case ModePanning:
		return "panning"
	case ModeMarqueeSelecting:
		return "marquee"
	case ModeDraggingItemSelection:
		return "dragging-items"
	case ModeDraggingNote:
		return "dragging-note"
	case ModeDraggingNoteSelection:
		return "dragging-notes"
	case ModeDraggingRack:
		return "dragging-rack"
	case ModeEditingRackName:
		return "editing-rack-name"
	default:
		return "idle"
	}
}

// Cursor is the pointer affordance to show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorGrab
	CursorGrabbing
	CursorPointer
)

// Button is a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// Mods are the modifier keys held during an event.
type Mods struct {
	Ctrl, Shift, Alt bool
}

// PointerEvent is a pointer press, move or release in screen coordinates.
type PointerEvent struct {
	Pos    geometry.Point
	Button Button
	Mods   Mods
}

// Hooks let the host react to requests the machine cannot complete on its
// own, such as confirmations and panels. Every hook is optional.
type Hooks struct {
	// DeleteSelection is asked to confirm and delete the selected items.
	// When nil the items are deleted at once.
	DeleteSelection func()
	// DeleteRack is asked to confirm and delete rack i. When nil the rack
	// is deleted at once.
	DeleteRack func(i int)
	// EditRackName opens an inline editor for rack i.
	EditRackName func(i int, current string)
	// OpenInfo shows the details of the selection.
	OpenInfo func()
	// Save stores the layout.
	Save func()
	// SelectionChanged runs after any pointer or key event that may have
	// changed the selection.
	SelectionChanged func()
}

type payload interface {
	mode() Mode
}

type panPayload struct {
	last geometry.Point
}

type marqueePayload struct {
	start, current geometry.Point // screen
	notes          bool
	base           editor.Selection
}

type dragMember struct {
	sel    editor.ItemSel
	offset geometry.Point // member top-left minus anchor top-left
	size   geometry.Point
}

type itemDragPayload struct {
	grab    geometry.Point // pointer minus anchor top-left, world
	start   geometry.Point // world
	pointer geometry.Point // world
	members []dragMember
}

type noteDragPayload struct {
	note    editor.NoteSel
	start   geometry.Point
	initial model.Offset
	current model.Offset
}

type noteGroupPayload struct {
	start   geometry.Point
	initial map[editor.NoteSel]model.Offset
}

type rackDragPayload struct {
	index  int
	grab   float64
	ghostX float64
	drop   int
}

type renamePayload struct {
	index int
}

func (panPayload) mode() Mode       { return ModePanning }
func (marqueePayload) mode() Mode   { return ModeMarqueeSelecting }
func (itemDragPayload) mode() Mode  { return ModeDraggingItemSelection }
func (noteDragPayload) mode() Mode  { return ModeDraggingNote }
func (noteGroupPayload) mode() Mode { return ModeDraggingNoteSelection }
func (rackDragPayload) mode() Mode  { return ModeDraggingRack }
func (renamePayload) mode() Mode    { return ModeEditingRackName }

// Machine is the interaction state machine. It is not safe for concurrent
// use.
type Machine struct {
	st    *editor.State
	r     Renderer
	hooks Hooks

	payload payload

	hoverCursor Cursor
	hoverNote   *scene.NoteKey
	menuTarget  *editor.NoteSel
}

// New creates an idle machine.
func New(st *editor.State, r Renderer, hooks Hooks) *Machine {
	return &Machine{st: st, r: r, hooks: hooks}
}

// State returns the edited state.
func (m *Machine) State() *editor.State {
	return m.st
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode {
	if m.payload == nil {
		return ModeIdle
	}
	return m.payload.mode()
}

func (m *Machine) idle() {
	m.payload = nil
}

func (m *Machine) measure() notes.Measurer {
	return m.r.MeasureText
}

func (m *Machine) redraw() {
	m.r.RequestRedraw()
}

func (m *Machine) selectionChanged() {
	if m.hooks.SelectionChanged != nil {
		m.hooks.SelectionChanged()
	}
}

// Cursor returns the pointer affordance for the current mode and hover.
func (m *Machine) Cursor() Cursor {
	switch m.Mode() {
	case ModePanning, ModeDraggingItemSelection, ModeDraggingNote,
		ModeDraggingNoteSelection, ModeDraggingRack:
		return CursorGrabbing
	case ModeIdle:
		return m.hoverCursor
	case ModeMarqueeSelecting, ModeEditingRackName:
		return CursorDefault
	}
	return CursorDefault
}

// Marquee returns the selection rectangle in screen coordinates while a
// marquee is being drawn, and whether it selects notes.
func (m *Machine) Marquee() (geometry.Rect, bool, bool) {
	p, ok := m.payload.(marqueePayload)
	if !ok {
		return geometry.Rect{}, false, false
	}
	return geometry.RectFromPoints(p.start, p.current), p.notes, true
}

// Ghost is where a dragged item would be drawn, in world coordinates.
type Ghost struct {
	Sel  editor.ItemSel
	Rect geometry.Rect
}

// Ghosts returns the drag previews of the selected items. PDUs do not
// move and have no ghost.
func (m *Machine) Ghosts() []Ghost {
	p, ok := m.payload.(itemDragPayload)
	if !ok {
		return nil
	}
	top := p.pointer.Sub(p.grab)
	out := make([]Ghost, 0, len(p.members))
	for _, mem := range p.members {
		pos := top.Add(mem.offset)
		out = append(out, Ghost{Sel: mem.sel, Rect: geometry.Rect{X: pos.X, Y: pos.Y, W: mem.size.X, H: mem.size.Y}})
	}
	return out
}

// RackDrag returns the dragged rack, its ghost x and the drop index while
// a rack is being reordered.
func (m *Machine) RackDrag() (index int, ghostX float64, drop int, ok bool) {
	p, ok := m.payload.(rackDragPayload)
	if !ok {
		return 0, 0, 0, false
	}
	return p.index, p.ghostX, p.drop, true
}

// NoteOffsets returns the override for a note being dragged on its own,
// or nil.
func (m *Machine) NoteOffsets() notes.Offsets {
	p, ok := m.payload.(noteDragPayload)
	if !ok {
		return nil
	}
	return func(ref scene.ItemRef) (model.Offset, bool) {
		if p.note.Rack == m.st.Active && ref == p.note.Owner {
			return p.current, true
		}
		return model.Offset{}, false
	}
}

// HoveredNote returns the stacked note under the pointer in the overview.
func (m *Machine) HoveredNote() (scene.NoteKey, bool) {
	if m.hoverNote == nil {
		return scene.NoteKey{}, false
	}
	return *m.hoverNote, true
}

// EditingRack returns the rack whose name is being edited.
func (m *Machine) EditingRack() (int, bool) {
	p, ok := m.payload.(renamePayload)
	return p.index, ok
}

// CommitRackName ends rack name editing and applies text. A blank name
// falls back to the default.
func (m *Machine) CommitRackName(text string) {
	p, ok := m.payload.(renamePayload)
	if !ok {
		return
	}
	m.st.RenameRack(p.index, text)
	m.idle()
	m.redraw()
}

// CancelRackName ends rack name editing without changes.
func (m *Machine) CancelRackName() {
	if _, ok := m.payload.(renamePayload); ok {
		m.idle()
		m.redraw()
	}
}

func (m *Machine) requestDeleteSelection() {
	if len(m.st.Selection.Items) == 0 {
		return
	}
	if m.hooks.DeleteSelection != nil {
		m.hooks.DeleteSelection()
		return
	}
	m.st.DeleteSelection()
	m.redraw()
	m.selectionChanged()
}

func (m *Machine) requestDeleteRack(i int) {
	if m.hooks.DeleteRack != nil {
		m.hooks.DeleteRack(i)
		return
	}
	if err := m.st.DeleteRack(i); err == nil {
		m.redraw()
		m.selectionChanged()
	}
}
