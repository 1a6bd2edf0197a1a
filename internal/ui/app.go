// Package ui is the RackPlanner desktop application built on Fyne.
package ui

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/piwi3910/RackPlanner/internal/editor"
	"github.com/piwi3910/RackPlanner/internal/interaction"
	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/piwi3910/RackPlanner/internal/project"
	"github.com/piwi3910/RackPlanner/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	window  fyne.Window
	config  model.AppConfig
	theme   *Theme
	log     *log.Logger
	state   *editor.State
	catalog model.Catalog

	// files is set when layouts are stored locally; backups need it.
	files *project.FileStore

	canvas        *widgets.RackCanvas
	status        *widget.Label
	info          *infoPanel
	palette       *widget.Accordion
	paletteFilter *widget.Entry
}

// NewApp wires the editor state to the configured layout store and
// equipment catalog.
func NewApp(window fyne.Window, config model.AppConfig, th *Theme, logger *log.Logger) *App {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "ui"})
	}
	a := &App{
		window: window,
		config: config,
		theme:  th,
		log:    logger,
	}

	var gw editor.Gateway
	if config.ServerURL != "" {
		gw = project.NewHTTPStore(config.ServerURL, nil)
		a.log.Info("using layout server", "url", config.ServerURL)
	} else {
		a.files = project.NewFileStore(project.LayoutsDir(config))
		gw = a.files
		a.log.Debug("using layout directory", "dir", a.files.Dir())
	}

	a.state = editor.New(
		editor.WithLogger(logger.WithPrefix("editor")),
		editor.WithGateway(gw),
		editor.WithRackHeight(config.RackHeight()),
		editor.WithNotifier(editor.NotifierFunc(func(title, msg string) {
			dialog.ShowInformation(title, msg, a.window)
		})),
	)
	a.state.ShowNotes = config.ShowNotes
	a.loadCatalog()
	return a
}

func (a *App) loadCatalog() {
	path := project.CatalogPath(a.config)
	cat, warnings, err := project.LoadCatalog(path)
	for _, w := range warnings {
		a.log.Warn("catalog", "path", path, "warning", w)
	}
	if err != nil {
		a.log.Error("failed to load catalog, using built-in", "path", path, "err", err)
		cat = model.DefaultCatalog()
	}
	a.catalog = cat
}

func (a *App) ctx() context.Context {
	return context.Background()
}

// Build constructs the full UI and returns the root object.
func (a *App) Build() fyne.CanvasObject {
	a.canvas = widgets.NewRackCanvas(a.state, interaction.Hooks{
		DeleteSelection:  a.confirmDeleteSelection,
		DeleteRack:       a.confirmDeleteRack,
		EditRackName:     a.editRackName,
		OpenInfo:         a.openInfo,
		Save:             a.save,
		SelectionChanged: a.refreshInfo,
	})
	a.canvas.OnSettled = a.settled
	a.canvas.OnShortcut = a.handleShortcut
	a.canvas.OnMenuError = func(err error) { dialog.ShowError(err, a.window) }
	a.canvas.OnDrop = func(tpl model.Template, err error) {
		if err != nil {
			a.log.Debug("drop rejected", "template", tpl.Label, "err", err)
		}
		a.setStatus("")
	}

	a.status = widget.NewLabel("")
	a.info = a.buildInfoPanel()

	split := container.NewHSplit(a.buildPalette(), container.NewHSplit(a.canvas, a.info.root))
	split.Offset = 0.18
	split.Trailing.(*container.Split).Offset = 0.78

	root := container.NewBorder(a.buildToolbar(), a.status, nil, nil, split)
	a.updateTitle()
	a.refreshInfo()
	return withToolTips(root, a.window)
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	recent := fyne.NewMenuItem("Open Recent", nil)
	recent.ChildMenu = a.recentMenu()

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Layout", a.newLayout),
		fyne.NewMenuItem("Open Layout...", a.openLayout),
		recent,
		fyne.NewMenuItem("Save", a.save),
		fyne.NewMenuItem("Save As...", a.saveAs),
		fyne.NewMenuItem("Delete Layout...", a.deleteLayout),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF...", a.exportPDF),
		fyne.NewMenuItem("Export PNG...", a.exportPNG),
		fyne.NewMenuItem("Export Rack Images...", a.exportRackPNGs),
		fyne.NewMenuItem("Export DXF...", a.exportDXF),
		fyne.NewMenuItem("Export Bill of Materials...", a.exportBOM),
		fyne.NewMenuItem("Print Asset Labels...", a.exportLabels),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Equipment Catalog...", a.importCatalog),
		fyne.NewMenuItem("Backup / Restore...", a.showImportExportDialog),
		fyne.NewMenuItem("Settings...", a.showSettingsDialog),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Copy", func() { a.state.Copy() }),
		fyne.NewMenuItem("Cut", func() { a.key("X") }),
		fyne.NewMenuItem("Paste", func() { a.key("V") }),
		fyne.NewMenuItem("Delete", a.confirmDeleteSelection),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Fill Empty Slots with Blanks", func() {
			a.state.FillBlanks()
			a.changed()
		}),
	)

	rackMenu := fyne.NewMenu("Rack",
		fyne.NewMenuItem("Add Rack", a.addRack),
		fyne.NewMenuItem("Previous Rack", func() { a.switchRack(-1) }),
		fyne.NewMenuItem("Next Rack", func() { a.switchRack(1) }),
		fyne.NewMenuItem("Rename Rack...", func() { a.editRackName(a.state.Active, a.activeName()) }),
		fyne.NewMenuItem("Delete Rack", func() { a.confirmDeleteRack(a.state.Active) }),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Toggle All Racks", a.toggleMulti),
		fyne.NewMenuItem("Toggle Front / Rear", a.toggleRear),
		fyne.NewMenuItem("Toggle Notes", a.toggleNotes),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Zoom 50%", func() { a.canvas.ZoomTo(0.5) }),
		fyne.NewMenuItem("Zoom 100%", func() { a.canvas.ZoomTo(1) }),
		fyne.NewMenuItem("Zoom 200%", func() { a.canvas.ZoomTo(2) }),
		fyne.NewMenuItem("Zoom to Fit", a.canvas.ZoomFit),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, rackMenu, viewMenu, helpMenu))

	ctrl := fyne.KeyModifierShortcutDefault
	a.window.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: ctrl}, func(fyne.Shortcut) { a.save() })
	a.window.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.Key0, Modifier: ctrl}, a.handleShortcut)
	a.window.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyEqual, Modifier: ctrl}, a.handleShortcut)
	a.window.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyMinus, Modifier: ctrl}, a.handleShortcut)
	a.window.SetCloseIntercept(func() {
		a.guardUnsaved(a.window.Close)
	})
}

func (a *App) recentMenu() *fyne.Menu {
	var items []*fyne.MenuItem
	for _, name := range a.config.RecentLayouts {
		items = append(items, fyne.NewMenuItem(name, func() {
			a.guardUnsaved(func() { a.open(name) })
		}))
	}
	if len(items) == 0 {
		none := fyne.NewMenuItem("(none)", nil)
		none.Disabled = true
		items = append(items, none)
	}
	return fyne.NewMenu("", items...)
}

func (a *App) buildToolbar() fyne.CanvasObject {
	return container.NewHBox(
		newIconButtonWithTooltip(theme.DocumentIcon(), "New layout", a.newLayout),
		newIconButtonWithTooltip(theme.FolderOpenIcon(), "Open layout", a.openLayout),
		newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save layout (Ctrl+S)", a.save),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.ContentAddIcon(), "Add rack", a.addRack),
		newIconButtonWithTooltip(theme.NavigateBackIcon(), "Previous rack", func() { a.switchRack(-1) }),
		newIconButtonWithTooltip(theme.NavigateNextIcon(), "Next rack", func() { a.switchRack(1) }),
		widget.NewSeparator(),
		newButtonWithTooltip("All Racks", "Toggle the side-by-side view", a.toggleMulti),
		newButtonWithTooltip("Front/Rear", "Toggle front and rear view", a.toggleRear),
		newButtonWithTooltip("Notes", "Show or hide notes", a.toggleNotes),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.ZoomOutIcon(), "Zoom 50%", func() { a.canvas.ZoomTo(0.5) }),
		newButtonWithTooltip("1:1", "Zoom 100%", func() { a.canvas.ZoomTo(1) }),
		newIconButtonWithTooltip(theme.ZoomInIcon(), "Zoom 200%", func() { a.canvas.ZoomTo(2) }),
		newIconButtonWithTooltip(theme.ZoomFitIcon(), "Zoom to fit", a.canvas.ZoomFit),
		layout.NewSpacer(),
	)
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About RackPlanner",
		"RackPlanner: server rack layout editor\n\n"+
			"Plan equipment, vertical PDUs and shelf accessories across\n"+
			"racks, annotate them and export elevations and labels.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// zoomStep is the factor applied by the zoom in and out shortcuts.
const zoomStep = 1.25

// key feeds a Ctrl shortcut to the machine.
func (a *App) key(name string) {
	if a.canvas.Machine().Key(interaction.KeyEvent{Name: name, Mods: interaction.Mods{Ctrl: true}}) {
		a.settled()
	}
}

func (a *App) handleShortcut(s fyne.Shortcut) {
	sc, ok := s.(*desktop.CustomShortcut)
	if !ok || sc.Modifier&(fyne.KeyModifierControl|fyne.KeyModifierSuper) == 0 {
		return
	}
	switch sc.KeyName {
	case fyne.Key0:
		a.canvas.ZoomFit()
	case fyne.KeyEqual:
		a.canvas.ZoomTo(a.state.View.Scale * zoomStep)
	case fyne.KeyMinus:
		a.canvas.ZoomTo(a.state.View.Scale / zoomStep)
	}
}

func (a *App) setStatus(msg string) {
	if msg == "" {
		r := a.state.ActiveRack()
		if r == nil {
			msg = "No rack"
		} else {
			msg = fmt.Sprintf("%s (%d of %d, %dU)", r.Name, a.state.Active+1, len(a.state.Racks), r.HeightU)
		}
		if n := len(a.state.Selection.Items); n > 0 {
			msg += fmt.Sprintf(" | %d selected", n)
		}
		if a.state.ShowRear {
			msg += " | rear view"
		}
	}
	a.status.SetText(msg)
}

func (a *App) updateTitle() {
	name := a.state.Filename
	if name == "" {
		name = "Untitled"
	}
	if a.state.HasUnsavedChanges() {
		name += " *"
	}
	a.window.SetTitle("RackPlanner - " + name)
}

// settled refreshes the chrome after a canvas gesture or edit.
func (a *App) settled() {
	a.updateTitle()
	a.refreshInfo()
}

// changed redraws after an edit made outside the canvas.
func (a *App) changed() {
	a.canvas.RequestRedraw()
	a.settled()
}

func (a *App) activeName() string {
	if r := a.state.ActiveRack(); r != nil {
		return r.Name
	}
	return ""
}

func (a *App) addRack() {
	a.state.AddRack()
	a.changed()
}

func (a *App) switchRack(delta int) {
	a.state.SwitchRack(delta)
	a.canvas.RequestRedraw()
	a.refreshInfo()
}

func (a *App) toggleMulti() {
	a.state.ToggleMulti()
	a.canvas.ZoomFit()
	a.refreshInfo()
}

func (a *App) toggleRear() {
	a.state.ShowRear = !a.state.ShowRear
	a.canvas.RequestRedraw()
	a.refreshInfo()
}

func (a *App) toggleNotes() {
	a.state.ShowNotes = !a.state.ShowNotes
	a.canvas.RequestRedraw()
}

func (a *App) confirmDeleteSelection() {
	n := len(a.state.Selection.Items)
	if n == 0 {
		return
	}
	msg := "Delete the selected item?"
	if n > 1 {
		msg = fmt.Sprintf("Delete %d selected items?", n)
	}
	dialog.ShowConfirm("Delete", msg, func(ok bool) {
		if !ok {
			return
		}
		a.state.DeleteSelection()
		a.changed()
	}, a.window)
}

func (a *App) confirmDeleteRack(i int) {
	if i < 0 || i >= len(a.state.Racks) {
		return
	}
	r := a.state.Racks[i]
	msg := fmt.Sprintf("Delete rack %q?", r.Name)
	if len(r.Equipment) > 0 {
		msg = fmt.Sprintf("Delete rack %q and its %d items?", r.Name, len(r.Equipment))
	}
	dialog.ShowConfirm("Delete Rack", msg, func(ok bool) {
		if !ok {
			return
		}
		if err := a.state.DeleteRack(i); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.changed()
	}, a.window)
}

func (a *App) editRackName(i int, current string) {
	entry := widget.NewEntry()
	entry.SetText(current)
	d := dialog.NewForm("Rename Rack", "Rename", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", entry)},
		func(ok bool) {
			m := a.canvas.Machine()
			if _, editing := m.EditingRack(); !editing {
				if ok {
					a.state.RenameRack(i, entry.Text)
				}
				a.changed()
				return
			}
			if ok {
				m.CommitRackName(entry.Text)
			} else {
				m.CancelRackName()
			}
			a.settled()
		},
		a.window,
	)
	d.Resize(fyne.NewSize(360, 160))
	d.Show()
	a.window.Canvas().Focus(entry)
}
