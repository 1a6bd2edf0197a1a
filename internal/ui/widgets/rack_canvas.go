// Package widgets holds the custom Fyne widgets of the rack planner.
package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/RackPlanner/internal/editor"
	"github.com/piwi3910/RackPlanner/internal/export"
	"github.com/piwi3910/RackPlanner/internal/geometry"
	"github.com/piwi3910/RackPlanner/internal/interaction"
	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/piwi3910/RackPlanner/internal/notes"
	"github.com/piwi3910/RackPlanner/internal/scene"
)

// Overlay colors.
var (
	colorBackground = color.NRGBA{R: 38, G: 50, B: 56, A: 255}
	colorSelect     = color.NRGBA{R: 0, G: 229, B: 255, A: 255}
	colorActive     = color.NRGBA{R: 255, G: 193, B: 7, A: 255}
	colorGhost      = color.NRGBA{R: 0, G: 229, B: 255, A: 70}
	colorGhostRack  = color.NRGBA{R: 255, G: 255, B: 255, A: 40}
	colorMarquee    = color.NRGBA{R: 0, G: 229, B: 255, A: 40}
	colorHover      = color.NRGBA{R: 255, G: 235, B: 59, A: 90}
	colorDelete     = color.NRGBA{R: 229, G: 57, B: 53, A: 255}
)

// minTextSize is the smallest on-screen font size still drawn.
const minTextSize = 4

// RackCanvas draws the racks of an editor.State and feeds pointer, wheel
// and keyboard input to an interaction.Machine. It implements
// interaction.Renderer.
type RackCanvas struct {
	widget.BaseWidget

	machine *interaction.Machine
	bounds  *scene.Bounds

	armed   *model.Template
	pressed bool
	last    geometry.Point

	// OnDrop reports the result of placing an armed template.
	OnDrop func(tpl model.Template, err error)
	// OnMenuError reports a failed context menu action.
	OnMenuError func(err error)
	// OnSettled runs after every gesture, key or menu action that may
	// have edited the layout.
	OnSettled func()
	// OnShortcut receives shortcuts the machine does not handle.
	OnShortcut func(s fyne.Shortcut)
}

// NewRackCanvas creates the canvas and the machine that drives st.
func NewRackCanvas(st *editor.State, hooks interaction.Hooks) *RackCanvas {
	c := &RackCanvas{bounds: scene.NewBounds()}
	c.machine = interaction.New(st, c, hooks)
	c.ExtendBaseWidget(c)
	return c
}

// Machine returns the interaction machine behind the canvas.
func (c *RackCanvas) Machine() *interaction.Machine {
	return c.machine
}

// RequestRedraw schedules a repaint.
func (c *RackCanvas) RequestRedraw() {
	c.Refresh()
}

// MeasureText returns the width of text in world units.
func (c *RackCanvas) MeasureText(text string, size float64) float64 {
	return float64(fyne.MeasureText(text, float32(size), fyne.TextStyle{}).Width)
}

// Bounds returns the hit regions written by the last paint.
func (c *RackCanvas) Bounds() *scene.Bounds {
	return c.bounds
}

// Arm makes the next primary click place tpl instead of selecting.
func (c *RackCanvas) Arm(tpl model.Template) {
	c.armed = &tpl
}

// Disarm cancels a pending placement.
func (c *RackCanvas) Disarm() {
	c.armed = nil
}

// Armed returns the template waiting to be placed.
func (c *RackCanvas) Armed() (model.Template, bool) {
	if c.armed == nil {
		return model.Template{}, false
	}
	return *c.armed, true
}

func (c *RackCanvas) settled() {
	if c.OnSettled != nil {
		c.OnSettled()
	}
}

func (c *RackCanvas) viewport() geometry.Point {
	s := c.Size()
	return geometry.Point{X: float64(s.Width), Y: float64(s.Height)}
}

// ZoomTo sets a preset scale centred in the widget.
func (c *RackCanvas) ZoomTo(scale float64) {
	c.machine.ZoomTo(scale, c.viewport())
}

// ZoomFit fits the visible racks into the widget.
func (c *RackCanvas) ZoomFit() {
	c.machine.ZoomFit(c.viewport())
}

// CreateRenderer implements fyne.Widget.
func (c *RackCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &rackCanvasRenderer{c: c}
	r.rebuild()
	return r
}

func toPoint(p fyne.Position) geometry.Point {
	return geometry.Point{X: float64(p.X), Y: float64(p.Y)}
}

func toMods(m fyne.KeyModifier) interaction.Mods {
	return interaction.Mods{
		Ctrl:  m&(fyne.KeyModifierControl|fyne.KeyModifierSuper) != 0,
		Shift: m&fyne.KeyModifierShift != 0,
		Alt:   m&fyne.KeyModifierAlt != 0,
	}
}

func toButton(b desktop.MouseButton) interaction.Button {
	switch b {
	case desktop.MouseButtonSecondary:
		return interaction.ButtonSecondary
	case desktop.MouseButtonTertiary:
		return interaction.ButtonMiddle
	}
	return interaction.ButtonPrimary
}

// MouseDown implements desktop.Mouseable.
func (c *RackCanvas) MouseDown(ev *desktop.MouseEvent) {
	if cv := fyne.CurrentApp().Driver().CanvasForObject(c); cv != nil {
		cv.Focus(c)
	}
	pos := toPoint(ev.Position)
	btn := toButton(ev.Button)
	if btn == interaction.ButtonSecondary {
		return
	}
	if tpl, ok := c.Armed(); ok && btn == interaction.ButtonPrimary && ev.Modifier&fyne.KeyModifierShift == 0 {
		c.armed = nil
		err := c.machine.Drop(tpl, pos)
		if c.OnDrop != nil {
			c.OnDrop(tpl, err)
		}
		c.settled()
		return
	}
	c.pressed = true
	c.last = pos
	c.machine.PointerDown(interaction.PointerEvent{Pos: pos, Button: btn, Mods: toMods(ev.Modifier)})
}

// MouseUp implements desktop.Mouseable.
func (c *RackCanvas) MouseUp(ev *desktop.MouseEvent) {
	c.release(toPoint(ev.Position), toButton(ev.Button), toMods(ev.Modifier))
}

func (c *RackCanvas) release(pos geometry.Point, btn interaction.Button, mods interaction.Mods) {
	if !c.pressed {
		return
	}
	c.pressed = false
	c.machine.PointerUp(interaction.PointerEvent{Pos: pos, Button: btn, Mods: mods})
	c.settled()
}

// Dragged implements fyne.Draggable; moves with a button held arrive here.
func (c *RackCanvas) Dragged(ev *fyne.DragEvent) {
	c.last = toPoint(ev.Position)
	c.machine.PointerMove(interaction.PointerEvent{Pos: c.last})
}

// DragEnd implements fyne.Draggable.
func (c *RackCanvas) DragEnd() {
	c.release(c.last, interaction.ButtonPrimary, interaction.Mods{})
}

// MouseIn implements desktop.Hoverable.
func (c *RackCanvas) MouseIn(ev *desktop.MouseEvent) {
	c.MouseMoved(ev)
}

// MouseMoved implements desktop.Hoverable.
func (c *RackCanvas) MouseMoved(ev *desktop.MouseEvent) {
	c.last = toPoint(ev.Position)
	c.machine.PointerMove(interaction.PointerEvent{Pos: c.last, Mods: toMods(ev.Modifier)})
}

// MouseOut implements desktop.Hoverable.
func (c *RackCanvas) MouseOut() {}

// Scrolled implements fyne.Scrollable.
func (c *RackCanvas) Scrolled(ev *fyne.ScrollEvent) {
	// Wheel up reports a positive DY; the machine zooms in on negative.
	c.machine.Wheel(toPoint(ev.Position), -float64(ev.Scrolled.DY))
}

// DoubleTapped implements fyne.DoubleTappable.
func (c *RackCanvas) DoubleTapped(ev *fyne.PointEvent) {
	c.machine.DoubleClick(toPoint(ev.Position))
}

// TappedSecondary opens the context menu.
func (c *RackCanvas) TappedSecondary(ev *fyne.PointEvent) {
	menu, ok := c.machine.ContextMenu(toPoint(ev.Position))
	if !ok {
		return
	}
	cv := fyne.CurrentApp().Driver().CanvasForObject(c)
	if cv == nil {
		return
	}
	widget.ShowPopUpMenuAtPosition(c.fyneMenu(menu), cv, ev.AbsolutePosition)
}

func (c *RackCanvas) fyneMenu(menu interaction.Menu) *fyne.Menu {
	var items []*fyne.MenuItem
	for i, it := range menu.Items {
		if i > 0 && it.Action != menu.Items[i-1].Action && (it.Action == interaction.ActionDuplicateUp || it.Action == interaction.ActionDelete) {
			items = append(items, fyne.NewMenuItemSeparator())
		}
		mi := fyne.NewMenuItem(it.Label, func() {
			if err := c.machine.RunMenuAction(it.Action, it.Count); err != nil && c.OnMenuError != nil {
				c.OnMenuError(err)
			}
			c.settled()
		})
		mi.Disabled = !it.Enabled
		items = append(items, mi)
	}
	return fyne.NewMenu("", items...)
}

// Cursor implements desktop.Cursorable.
func (c *RackCanvas) Cursor() desktop.Cursor {
	if c.armed != nil {
		return desktop.CrosshairCursor
	}
	switch c.machine.Cursor() {
	case interaction.CursorGrab, interaction.CursorPointer:
		return desktop.PointerCursor
	case interaction.CursorGrabbing:
		return desktop.CrosshairCursor
	case interaction.CursorDefault:
	}
	return desktop.DefaultCursor
}

// FocusGained implements fyne.Focusable.
func (c *RackCanvas) FocusGained() {}

// FocusLost implements fyne.Focusable.
func (c *RackCanvas) FocusLost() {}

// TypedRune implements fyne.Focusable.
func (c *RackCanvas) TypedRune(rune) {}

// TypedKey forwards Delete, Backspace and Escape.
func (c *RackCanvas) TypedKey(ev *fyne.KeyEvent) {
	if ev.Name == fyne.KeyEscape && c.armed != nil {
		c.armed = nil
		return
	}
	if c.machine.Key(interaction.KeyEvent{Name: string(ev.Name)}) {
		c.settled()
	}
}

// TypedShortcut maps clipboard and save shortcuts onto Ctrl key events.
func (c *RackCanvas) TypedShortcut(s fyne.Shortcut) {
	ev := interaction.KeyEvent{Mods: interaction.Mods{Ctrl: true}}
	switch sc := s.(type) {
	case *fyne.ShortcutCopy:
		ev.Name = "C"
	case *fyne.ShortcutCut:
		ev.Name = "X"
	case *fyne.ShortcutPaste:
		ev.Name = "V"
	case *desktop.CustomShortcut:
		ev = interaction.KeyEvent{Name: string(sc.KeyName), Mods: toMods(sc.Modifier)}
	}
	if ev.Name != "" && c.machine.Key(ev) {
		c.settled()
		return
	}
	if c.OnShortcut != nil {
		c.OnShortcut(s)
	}
}

// fyneSurface turns world-space drawing calls into canvas objects in
// widget coordinates.
type fyneSurface struct {
	view editor.View
	objs []fyne.CanvasObject
}

func (s *fyneSurface) screen(r geometry.Rect) (fyne.Position, fyne.Size) {
	p := s.view.ToScreen(geometry.Point{X: r.X, Y: r.Y})
	return fyne.NewPos(float32(p.X), float32(p.Y)),
		fyne.NewSize(float32(r.W*s.view.Scale), float32(r.H*s.view.Scale))
}

func (s *fyneSurface) add(o fyne.CanvasObject) {
	s.objs = append(s.objs, o)
}

func (s *fyneSurface) FillRect(r geometry.Rect, fill color.Color) {
	rect := canvas.NewRectangle(fill)
	pos, size := s.screen(r)
	rect.Move(pos)
	rect.Resize(size)
	s.add(rect)
}

func (s *fyneSurface) StrokeRect(r geometry.Rect, stroke color.Color, width float64) {
	rect := canvas.NewRectangle(color.Transparent)
	rect.StrokeColor = stroke
	rect.StrokeWidth = float32(max(1, width*s.view.Scale))
	pos, size := s.screen(r)
	rect.Move(pos)
	rect.Resize(size)
	s.add(rect)
}

func (s *fyneSurface) Line(a, b geometry.Point, stroke color.Color, width float64) {
	l := canvas.NewLine(stroke)
	l.StrokeWidth = float32(max(1, width*s.view.Scale))
	pa, pb := s.view.ToScreen(a), s.view.ToScreen(b)
	l.Position1 = fyne.NewPos(float32(pa.X), float32(pa.Y))
	l.Position2 = fyne.NewPos(float32(pb.X), float32(pb.Y))
	s.add(l)
}

func (s *fyneSurface) Text(x, y float64, text string, size float64, c color.Color, align export.Align) {
	px := float32(size * s.view.Scale)
	if px < minTextSize || text == "" {
		return
	}
	t := canvas.NewText(text, c)
	t.TextSize = px
	ts := fyne.MeasureText(text, px, t.TextStyle)
	p := s.view.ToScreen(geometry.Point{X: x, Y: y})
	left := float32(p.X)
	switch align {
	case export.AlignCenter:
		left -= ts.Width / 2
	case export.AlignRight:
		left -= ts.Width
	}
	t.Move(fyne.NewPos(left, float32(p.Y)-ts.Height/2))
	t.Resize(ts)
	s.add(t)
}

func (s *fyneSurface) Measure(text string, size float64) float64 {
	return float64(fyne.MeasureText(text, float32(size), fyne.TextStyle{}).Width)
}

type rackCanvasRenderer struct {
	c       *RackCanvas
	bg      *canvas.Rectangle
	objects []fyne.CanvasObject
}

func (r *rackCanvasRenderer) rebuild() {
	c := r.c
	st := c.machine.State()
	c.bounds.Reset()

	if r.bg == nil {
		r.bg = canvas.NewRectangle(colorBackground)
	}
	r.bg.Resize(c.Size())
	s := &fyneSurface{view: st.View, objs: []fyne.CanvasObject{r.bg}}

	if st.Multi {
		r.paintOverview(s, st)
	} else if rack := st.ActiveRack(); rack != nil {
		opts := export.Options{Rear: st.ShowRear, Notes: st.ShowNotes, Offsets: c.machine.NoteOffsets()}
		export.DrawRack(s, *rack, geometry.Point{}, opts)
		r.paintSelectedNotes(s, st, *rack, opts.Offsets)
	}
	r.paintSelection(s, st)

	for _, g := range c.machine.Ghosts() {
		s.FillRect(g.Rect, colorGhost)
		s.StrokeRect(g.Rect, colorSelect, 1)
	}
	if m, _, ok := c.machine.Marquee(); ok {
		rect := canvas.NewRectangle(colorMarquee)
		rect.StrokeColor = colorSelect
		rect.StrokeWidth = 1
		rect.Move(fyne.NewPos(float32(m.X), float32(m.Y)))
		rect.Resize(fyne.NewSize(float32(m.W), float32(m.H)))
		s.add(rect)
	}
	r.objects = s.objs
}

func (r *rackCanvasRenderer) paintOverview(s *fyneSurface, st *editor.State) {
	c := r.c
	opts := export.Options{Rear: st.ShowRear}
	dragIndex, ghostX, drop, dragging := c.machine.RackDrag()

	for i, rack := range st.Racks {
		origin := scene.RackOrigin(st.Racks, i, true)
		export.DrawRack(s, rack, origin, opts)

		h := scene.HeaderFor(origin, c.MeasureText(rack.Name, scene.NameFontSize))
		c.bounds.SetHeader(rack.ID, h)
		s.FillRect(h.Delete, colorDelete)
		d := h.Delete.Center()
		s.Text(d.X, d.Y, "x", scene.NameFontSize*0.8, color.White, export.AlignCenter)

		if i == st.Active {
			s.StrokeRect(scene.RackBody(st.Racks, i, true), colorActive, 3)
		}
		if dragging && i == dragIndex {
			body := scene.RackBody(st.Racks, i, true)
			body.X = ghostX
			s.FillRect(body, colorGhostRack)
		}
	}
	if dragging {
		x := float64(drop*scene.RackPitch) - model.RackSpacing/2
		top := geometry.Point{X: x, Y: 0}
		bottom := geometry.Point{X: x, Y: float64(scene.MaxHeightU(st.Racks) * model.BaseUnitHeight)}
		s.Line(top, bottom, colorActive, 4)
	}

	if !st.ShowNotes {
		return
	}
	hovered, isHovered := c.machine.HoveredNote()
	for i, rack := range st.Racks {
		for _, n := range notes.StackLayout(st.Racks, i, c.MeasureText) {
			key := scene.NoteKey{RackID: rack.ID, Item: n.Ref}
			c.bounds.AddStackedNote(scene.StackedNote{Key: key, Bounds: n.Bounds})
			if (isHovered && hovered == key) || st.Selection.HasNote(editor.NoteSel{Rack: i, Owner: n.Ref}) {
				s.FillRect(n.Bounds, colorHover)
			}
			export.DrawStackedNote(s, n)
		}
	}
}

func (r *rackCanvasRenderer) paintSelectedNotes(s *fyneSurface, st *editor.State, rack model.Rack, override notes.Offsets) {
	if !st.ShowNotes || st.ShowRear || len(st.Selection.Notes) == 0 {
		return
	}
	for _, p := range notes.Layout(rack, r.c.MeasureText, override) {
		if st.Selection.HasNote(editor.NoteSel{Rack: st.Active, Owner: p.Ref}) {
			s.StrokeRect(p.Metrics.Box, colorSelect, 2)
		}
	}
}

func (r *rackCanvasRenderer) paintSelection(s *fyneSurface, st *editor.State) {
	for _, sel := range st.Selection.Items {
		if sel.Rack < 0 || sel.Rack >= len(st.Racks) || (!st.Multi && sel.Rack != st.Active) {
			continue
		}
		rect, ok := scene.OwnerRect(st.Racks[sel.Rack], sel.Ref)
		if !ok {
			continue
		}
		s.StrokeRect(rect.Translate(scene.RackOrigin(st.Racks, sel.Rack, st.Multi)), colorSelect, 2)
	}
}

func (r *rackCanvasRenderer) Layout(size fyne.Size) {
	if r.bg != nil {
		r.bg.Resize(size)
	}
}

func (r *rackCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

func (r *rackCanvasRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.c)
}

func (r *rackCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *rackCanvasRenderer) Destroy()                     {}

var (
	_ interaction.Renderer = (*RackCanvas)(nil)
	_ desktop.Mouseable    = (*RackCanvas)(nil)
	_ desktop.Hoverable    = (*RackCanvas)(nil)
	_ fyne.Draggable       = (*RackCanvas)(nil)
	_ fyne.Scrollable      = (*RackCanvas)(nil)
	_ fyne.Focusable       = (*RackCanvas)(nil)
	_ fyne.Shortcutable    = (*RackCanvas)(nil)
)
