package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/piwi3910/RackPlanner/internal/project"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.Itoa(*val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}
	stringEntry := func(val *string, placeholder string) *widget.Entry {
		e := widget.NewEntry()
		e.SetPlaceHolder(placeholder)
		e.SetText(*val)
		e.OnChanged = func(text string) { *val = strings.TrimSpace(text) }
		return e
	}

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	showNotes := widget.NewCheck("", func(on bool) { cfg.ShowNotes = on })
	showNotes.SetChecked(cfg.ShowNotes)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Show Notes", showNotes),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem(fmt.Sprintf("New Rack Height (%d-%dU)", model.MinRackHeight, model.MaxRackHeight), intEntry(&cfg.DefaultRackHeight)),
		widget.NewFormItem("Layouts Folder", stringEntry(&cfg.LayoutsDir, project.DefaultLayoutsDir())),
		widget.NewFormItem("Equipment Catalog", stringEntry(&cfg.CatalogPath, project.DefaultCatalogPath())),
		widget.NewFormItem("Layout Server URL", stringEntry(&cfg.ServerURL, "empty = store layouts locally")),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			restart := cfg.LayoutsDir != a.config.LayoutsDir || cfg.ServerURL != a.config.ServerURL
			reloadCatalog := cfg.CatalogPath != a.config.CatalogPath
			a.config = cfg
			a.applyConfig(reloadCatalog)
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
				return
			}
			msg := "Application settings have been saved."
			if restart {
				msg += "\n\nThe layout store changes take effect after a restart."
			}
			dialog.ShowInformation("Settings Saved", msg, a.window)
		},
		a.window,
	)
	d.Resize(fyne.NewSize(520, 420))
	d.Show()
}

// applyConfig pushes settings that take effect at once.
func (a *App) applyConfig(reloadCatalog bool) {
	a.state.RackHeight = a.config.RackHeight()
	a.state.ShowNotes = a.config.ShowNotes
	if a.theme != nil {
		a.theme.SetVariant(a.config.Theme)
		fyne.CurrentApp().Settings().SetTheme(a.theme)
	}
	if reloadCatalog {
		a.loadCatalog()
		a.refreshPalette()
	}
	a.canvas.RequestRedraw()
}

// showImportExportDialog displays the backup and restore dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()
			if err := project.ExportAllData(a.ctx(), path, a.config, a.files); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("rackplanner-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your current settings and overwrite\nsaved layouts with the same names.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					path := reader.URI().Path()
					reader.Close()
					a.importBackup(path)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	note := "Layouts are included when they are stored locally."
	if a.files == nil {
		note = "Layouts live on the layout server and are not included."
	}
	content := container.NewVBox(
		widget.NewLabel("Export all application data (settings and saved layouts) to a backup file,\nor import from a previously exported backup."),
		widget.NewLabel(note),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Backup / Restore", "Close", content, a.window)
	d.Resize(fyne.NewSize(480, 260))
	d.Show()
}

func (a *App) importBackup(path string) {
	backup, err := project.ImportAllData(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	restored := 0
	if a.files != nil {
		restored, err = project.RestoreLayouts(a.ctx(), backup, a.files)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
	}
	a.config = backup.Config
	a.applyConfig(true)
	if err := a.saveConfig(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
		return
	}
	a.SetupMenus()
	dialog.ShowInformation("Import Complete",
		fmt.Sprintf("Data imported from backup created at %s.\n%d layouts restored.", backup.CreatedAt, restored), a.window)
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
