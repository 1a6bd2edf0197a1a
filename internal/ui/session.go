package ui

import (
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/RackPlanner/internal/editor"
	"github.com/piwi3910/RackPlanner/internal/importer"
	"github.com/piwi3910/RackPlanner/internal/project"
)

// guardUnsaved runs next, asking first when the layout has unsaved
// changes worth keeping.
func (a *App) guardUnsaved(next func()) {
	if !a.state.NeedsSavePrompt() {
		next()
		return
	}
	dialog.ShowConfirm("Unsaved Changes",
		"The current layout has unsaved changes.\n\nDiscard them and continue?",
		func(ok bool) {
			if ok {
				next()
			}
		}, a.window)
}

// loaded refreshes everything after the layout was replaced wholesale.
func (a *App) loaded() {
	a.canvas.Disarm()
	a.canvas.ZoomFit()
	a.updateTitle()
	a.refreshInfo()
}

func (a *App) newLayout() {
	a.guardUnsaved(func() {
		a.state.Reset()
		a.loaded()
	})
}

func (a *App) openLayout() {
	a.guardUnsaved(func() {
		names, err := a.state.Layouts(a.ctx())
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to list layouts: %w", err), a.window)
			return
		}
		if len(names) == 0 {
			dialog.ShowInformation("Open Layout", "No saved layouts found.", a.window)
			return
		}
		a.pickLayout("Open Layout", "Open", names, a.open)
	})
}

// pickLayout shows a list of layout names and calls chosen with the
// selected one.
func (a *App) pickLayout(title, confirm string, names []string, chosen func(string)) {
	selected := ""
	list := widget.NewList(
		func() int { return len(names) },
		func() fyne.CanvasObject { return widget.NewLabel("layout name") },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(names[id])
		},
	)
	list.OnSelected = func(id widget.ListItemID) { selected = names[id] }

	d := dialog.NewCustomConfirm(title, confirm, "Cancel", list, func(ok bool) {
		if ok && selected != "" {
			chosen(selected)
		}
	}, a.window)
	d.Resize(fyne.NewSize(360, 400))
	d.Show()
}

func (a *App) open(name string) {
	if err := a.state.Open(a.ctx(), name); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.remember(name)
	a.loaded()
}

func (a *App) save() {
	err := a.state.Save(a.ctx())
	if errors.Is(err, editor.ErrNoFilename) {
		a.saveAs()
		return
	}
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.remember(a.state.Filename)
	a.updateTitle()
}

func (a *App) saveAs() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("layout name")
	entry.SetText(a.state.Filename)
	d := dialog.NewForm("Save Layout As", "Save", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", entry)},
		func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(entry.Text)
			if name == "" {
				dialog.ShowError(errors.New("layout name is required"), a.window)
				return
			}
			exists, err := a.state.Exists(a.ctx(), name)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			if exists && name != a.state.Filename {
				dialog.ShowConfirm("Overwrite Layout",
					fmt.Sprintf("A layout named %q already exists. Overwrite it?", name),
					func(ok bool) {
						if ok {
							a.saveNamed(name)
						}
					}, a.window)
				return
			}
			a.saveNamed(name)
		},
		a.window,
	)
	d.Resize(fyne.NewSize(360, 160))
	d.Show()
}

func (a *App) saveNamed(name string) {
	if err := a.state.SaveAs(a.ctx(), name); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.remember(name)
	a.updateTitle()
}

func (a *App) deleteLayout() {
	names, err := a.state.Layouts(a.ctx())
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to list layouts: %w", err), a.window)
		return
	}
	if len(names) == 0 {
		dialog.ShowInformation("Delete Layout", "No saved layouts found.", a.window)
		return
	}
	a.pickLayout("Delete Layout", "Delete", names, func(name string) {
		dialog.ShowConfirm("Delete Layout",
			fmt.Sprintf("Permanently delete layout %q?", name),
			func(ok bool) {
				if !ok {
					return
				}
				if err := a.state.DeleteLayout(a.ctx(), name); err != nil {
					dialog.ShowError(err, a.window)
					return
				}
				a.forget(name)
				a.updateTitle()
			}, a.window)
	})
}

// remember moves name to the front of the recent layouts menu.
func (a *App) remember(name string) {
	a.config.AddRecent(name)
	a.persistRecent()
}

func (a *App) forget(name string) {
	kept := a.config.RecentLayouts[:0]
	for _, n := range a.config.RecentLayouts {
		if n != name {
			kept = append(kept, n)
		}
	}
	a.config.RecentLayouts = kept
	a.persistRecent()
}

func (a *App) persistRecent() {
	if err := a.saveConfig(); err != nil {
		a.log.Warn("failed to save recent layouts", "err", err)
	}
	a.SetupMenus()
}

// importCatalog replaces the equipment catalog with one read from a JSON,
// YAML, TOML, CSV or Excel file.
func (a *App) importCatalog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		res := importer.ImportFile(path)
		if res.Templates() == 0 {
			dialog.ShowError(fmt.Errorf("no equipment found in %s:\n%s", path, strings.Join(res.Errors, "\n")), a.window)
			return
		}
		if err := project.SaveCatalog(project.CatalogPath(a.config), res.Catalog); err != nil {
			dialog.ShowError(fmt.Errorf("failed to save catalog: %w", err), a.window)
			return
		}
		a.catalog = res.Catalog.WithPDUVariants()
		a.refreshPalette()

		msg := fmt.Sprintf("Imported %d equipment templates.", res.Templates())
		if n := len(res.Warnings) + len(res.Errors); n > 0 {
			msg += fmt.Sprintf("\n\n%d rows were skipped or adjusted:\n%s", n,
				strings.Join(append(res.Warnings, res.Errors...), "\n"))
		}
		dialog.ShowInformation("Catalog Imported", msg, a.window)
	}, a.window)
	d.Show()
}
