package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/piwi3910/RackPlanner/internal/export"
)

func (a *App) exportOptions() export.Options {
	return export.Options{Rear: a.state.ShowRear, Notes: a.state.ShowNotes}
}

func (a *App) baseName() string {
	return export.FileName(a.state.Filename, "rack-layout")
}

// saveFile asks for a destination and runs write on it.
func (a *App) saveFile(defaultName, kind string, write func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		// The exporters create the file themselves.
		writer.Close()
		if err := write(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.log.Info("exported", "kind", kind, "path", path)
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("%s saved to %s", kind, path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) exportPDF() {
	racks, opts := a.state.Racks, a.exportOptions()
	a.saveFile(a.baseName()+".pdf", "PDF", func(path string) error {
		return export.ExportPDF(path, racks, opts)
	})
}

func (a *App) exportPNG() {
	racks := a.state.Racks
	o := export.ImageOptions{Options: a.exportOptions(), Scale: 2}
	a.saveFile(a.baseName()+".png", "Image", func(path string) error {
		return export.ExportPNG(path, racks, o)
	})
}

// exportRackPNGs writes one image per rack into a chosen folder.
func (a *App) exportRackPNGs() {
	racks := a.state.Racks
	o := export.ImageOptions{Options: a.exportOptions(), Scale: 2}
	d := dialog.NewFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil || dir == nil {
			return
		}
		paths, err := export.ExportRackPNGs(dir.Path(), racks, o)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("%d rack images saved to %s", len(paths), dir.Path()), a.window)
	}, a.window)
	d.Show()
}

func (a *App) exportDXF() {
	racks, opts := a.state.Racks, a.exportOptions()
	a.saveFile(a.baseName()+".dxf", "DXF drawing", func(path string) error {
		return export.ExportDXF(path, racks, opts)
	})
}

func (a *App) exportBOM() {
	racks := a.state.Racks
	a.saveFile(a.baseName()+"-bom.xlsx", "Bill of materials", func(path string) error {
		return export.ExportBOM(path, racks)
	})
}

func (a *App) exportLabels() {
	racks := a.state.Racks
	if len(export.CollectLabelInfos(racks)) == 0 {
		dialog.ShowInformation("No Equipment", "Place some equipment before printing labels.", a.window)
		return
	}
	a.saveFile(a.baseName()+"-labels.pdf", "Labels", func(path string) error {
		return export.ExportLabels(path, racks)
	})
}
