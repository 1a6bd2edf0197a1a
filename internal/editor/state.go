// Package editor holds the application state of the rack planner and
// every operation that changes it outside of pointer gestures: rack
// management, drops, deletion, clipboard, duplication, blank filling and
// the save/load session.
package editor

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/RackPlanner/internal/engine"
	"github.com/piwi3910/RackPlanner/internal/geometry"
	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/piwi3910/RackPlanner/internal/scene"
)

// Notifier surfaces non-fatal problems to the user.
type Notifier interface {
	Warn(title, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(title, message string)

func (f NotifierFunc) Warn(title, message string) { f(title, message) }

// View is the pan and zoom of the canvas: screen = world*Scale + Offset.
type View struct {
	Scale  float64
	Offset geometry.Point
}

// ToWorld converts a screen point to world coordinates.
func (v View) ToWorld(p geometry.Point) geometry.Point {
	return geometry.Point{X: (p.X - v.Offset.X) / v.Scale, Y: (p.Y - v.Offset.Y) / v.Scale}
}

// ToScreen converts a world point to screen coordinates.
func (v View) ToScreen(p geometry.Point) geometry.Point {
	return geometry.Point{X: p.X*v.Scale + v.Offset.X, Y: p.Y*v.Scale + v.Offset.Y}
}

// State is the whole editable application state. It is not safe for
// concurrent use.
type State struct {
	Racks     []model.Rack
	Active    int
	Selection Selection
	View      View
	Multi     bool
	ShowRear  bool
	ShowNotes bool
	Clipboard Clipboard
	Filename  string

	// RackHeight is the height given to new racks.
	RackHeight int

	saved    []model.Rack
	log      *log.Logger
	notifier Notifier
	gateway  Gateway
}

// Option configures a State.
type Option func(*State)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *State) { s.log = l }
}

// WithNotifier sets where user-facing warnings go.
func WithNotifier(n Notifier) Option {
	return func(s *State) { s.notifier = n }
}

// WithGateway sets the layout store.
func WithGateway(g Gateway) Option {
	return func(s *State) { s.gateway = g }
}

// WithRackHeight sets the height of new racks.
func WithRackHeight(h int) Option {
	return func(s *State) { s.RackHeight = h }
}

// New creates a state holding a single empty rack, marked as saved.
func New(opts ...Option) *State {
	s := &State{
		View:       View{Scale: 1},
		ShowNotes:  true,
		RackHeight: model.DefaultRackHeight,
		log:        log.NewWithOptions(os.Stderr, log.Options{Prefix: "editor"}),
	}
	for _, o := range opts {
		o(s)
	}
	s.Racks = []model.Rack{model.NewRack("Rack 1", s.RackHeight)}
	s.MarkSaved()
	return s
}

// Logger returns the state's logger.
func (s *State) Logger() *log.Logger {
	return s.log
}

func (s *State) warn(title, msg string) {
	s.log.Warn(msg, "op", title)
	if s.notifier != nil {
		s.notifier.Warn(title, msg)
	}
}

// noSpace warns about a failed placement and returns it wrapped in
// engine.ErrNoSpace.
func (s *State) noSpace(op, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	s.warn(op, msg)
	return fmt.Errorf("%w: %s", engine.ErrNoSpace, msg)
}

// ActiveRack returns the active rack or nil.
func (s *State) ActiveRack() *model.Rack {
	if s.Active < 0 || s.Active >= len(s.Racks) {
		return nil
	}
	return &s.Racks[s.Active]
}

// Item resolves an item selection to the item it names.
func (s *State) Item(sel ItemSel) *model.Item {
	if sel.Rack < 0 || sel.Rack >= len(s.Racks) {
		return nil
	}
	return s.Racks[sel.Rack].Item(sel.Ref.ID, sel.Ref.ParentID)
}

// SelectedItems returns the items of the current selection that still
// exist, in selection order.
func (s *State) SelectedItems() []*model.Item {
	var out []*model.Item
	for _, sel := range s.Selection.Items {
		if it := s.Item(sel); it != nil {
			out = append(out, it)
		}
	}
	return out
}

// MarkSaved records the current layout as the saved snapshot.
func (s *State) MarkSaved() {
	s.saved = model.CopyRacks(s.Racks)
}

// HasUnsavedChanges reports whether the layout differs from the snapshot.
func (s *State) HasUnsavedChanges() bool {
	return engine.HasUnsavedChanges(s.Racks, s.saved)
}

// IsEffectivelyEmpty reports whether there is nothing worth saving.
func (s *State) IsEffectivelyEmpty() bool {
	return engine.IsEffectivelyEmpty(s.Racks)
}

// NeedsSavePrompt reports whether a destructive navigation should ask the
// user first.
func (s *State) NeedsSavePrompt() bool {
	return !s.IsEffectivelyEmpty() && s.HasUnsavedChanges()
}

// Reset replaces the layout with a single empty rack and forgets the
// current file.
func (s *State) Reset() {
	s.Racks = []model.Rack{model.NewRack("Rack 1", s.RackHeight)}
	s.Active = 0
	s.Selection.Clear()
	s.Filename = ""
	s.MarkSaved()
}

// Load replaces the layout with racks read from name. Racks are
// normalized and the first one becomes active.
func (s *State) Load(racks []model.Rack, name string) {
	for i := range racks {
		racks[i].Normalize()
	}
	if len(racks) == 0 {
		racks = []model.Rack{model.NewRack("Rack 1", s.RackHeight)}
	}
	s.Racks = racks
	s.Active = 0
	s.Selection.Clear()
	s.Filename = name
	s.MarkSaved()
}

// ToggleMulti switches between the single-rack view and the overview.
func (s *State) ToggleMulti() {
	s.Multi = !s.Multi
	s.Selection.Clear()
}

// PositionLabel returns the U position shown for an item, counted from the
// bottom of its rack.
func (s *State) PositionLabel(sel ItemSel) string {
	it := s.Item(sel)
	if it == nil {
		return ""
	}
	owner := *it
	if sel.Ref.ParentID != "" {
		if p := s.Item(ItemSel{Rack: sel.Rack, Ref: scene.ItemRef{ID: sel.Ref.ParentID}}); p != nil {
			owner = *p
		}
	}
	return "U" + strconv.Itoa(s.Racks[sel.Rack].HeightU-owner.Y)
}
