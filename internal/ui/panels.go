package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/RackPlanner/internal/editor"
	"github.com/piwi3910/RackPlanner/internal/engine"
	"github.com/piwi3910/RackPlanner/internal/model"
)

// buildPalette returns the equipment catalog panel. Selecting a template
// arms the canvas; the next click in a rack places it.
func (a *App) buildPalette() fyne.CanvasObject {
	a.paletteFilter = widget.NewEntry()
	a.paletteFilter.SetPlaceHolder("Filter equipment...")
	a.paletteFilter.OnChanged = func(string) { a.refreshPalette() }

	a.palette = widget.NewAccordion()
	a.refreshPalette()

	header := container.NewVBox(widget.NewLabelWithStyle("Equipment", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), a.paletteFilter)
	return container.NewBorder(header, nil, nil, nil, container.NewVScroll(a.palette))
}

// refreshPalette rebuilds the category sections from the catalog and the
// filter text.
func (a *App) refreshPalette() {
	if a.palette == nil {
		return
	}
	filter := ""
	if a.paletteFilter != nil {
		filter = strings.ToLower(strings.TrimSpace(a.paletteFilter.Text))
	}

	a.palette.Items = nil
	for _, cat := range a.catalog.Categories {
		var items []model.Template
		for _, t := range cat.Items {
			if filter == "" || strings.Contains(strings.ToLower(t.Label), filter) {
				items = append(items, t)
			}
		}
		if len(items) == 0 {
			continue
		}
		ai := widget.NewAccordionItem(cat.Name, a.templateList(items))
		ai.Open = filter != ""
		a.palette.Items = append(a.palette.Items, ai)
	}
	if len(a.palette.Items) > 0 && filter == "" {
		a.palette.Items[0].Open = true
	}
	a.palette.Refresh()
}

func (a *App) templateList(items []model.Template) fyne.CanvasObject {
	box := container.NewVBox()
	for _, t := range items {
		btn := widget.NewButton(templateCaption(t), func() {
			a.canvas.Arm(t)
			a.setStatus(fmt.Sprintf("Click in a rack to place %s (Esc to cancel)", t.Label))
		})
		btn.Alignment = widget.ButtonAlignLeading
		box.Add(btn)
	}
	return box
}

func templateCaption(t model.Template) string {
	switch t.Kind() {
	case model.KindShelf:
		return t.Label + " (shelf)"
	case model.KindPDU:
		if t.U < 1 {
			return t.Label
		}
	}
	return fmt.Sprintf("%s [%dU]", t.Label, t.HeightU())
}

// infoPanel shows the active rack and lets the user edit the selected
// item's label and notes.
type infoPanel struct {
	root fyne.CanvasObject

	rackName   *widget.Entry
	rackHeight *widget.Entry
	usage      *widget.Label

	selTitle *widget.Label
	position *widget.Label
	label    *widget.Entry
	notes    *widget.Entry
	apply    *widget.Button

	current editor.ItemSel
	single  bool
}

func (a *App) buildInfoPanel() *infoPanel {
	p := &infoPanel{
		rackName:   widget.NewEntry(),
		rackHeight: widget.NewEntry(),
		usage:      widget.NewLabel(""),
		selTitle:   widget.NewLabel(""),
		position:   widget.NewLabel(""),
		label:      widget.NewEntry(),
		notes:      widget.NewMultiLineEntry(),
	}
	p.usage.Wrapping = fyne.TextWrapWord
	p.notes.SetPlaceHolder("Notes (one line per row)")
	p.notes.SetMinRowsVisible(5)
	p.rackHeight.Validator = func(s string) error {
		h, err := strconv.Atoi(s)
		if err != nil || h < model.MinRackHeight || h > model.MaxRackHeight {
			return fmt.Errorf("height must be %d-%d", model.MinRackHeight, model.MaxRackHeight)
		}
		return nil
	}

	applyRack := widget.NewButton("Apply", a.applyRack)
	p.apply = widget.NewButton("Apply", a.applyItem)

	fill := newButtonWithTooltip("Fill Blanks", "Fill every empty slot of the active rack with blank panels", func() {
		if n := a.state.FillBlanks(); n > 0 {
			a.changed()
		}
	})

	rackForm := widget.NewForm(
		widget.NewFormItem("Name", p.rackName),
		widget.NewFormItem("Height (U)", p.rackHeight),
	)
	itemForm := widget.NewForm(
		widget.NewFormItem("Position", p.position),
		widget.NewFormItem("Label", p.label),
		widget.NewFormItem("Notes", p.notes),
	)

	p.root = container.NewVScroll(container.NewVBox(
		widget.NewLabelWithStyle("Rack", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		rackForm,
		container.NewHBox(applyRack, fill),
		p.usage,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Selection", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		p.selTitle,
		itemForm,
		p.apply,
	))
	return p
}

// refreshInfo reloads the panel from the state.
func (a *App) refreshInfo() {
	if a.info == nil {
		return
	}
	p := a.info
	if r := a.state.ActiveRack(); r != nil {
		p.rackName.SetText(r.Name)
		p.rackHeight.SetText(strconv.Itoa(r.HeightU))
		u := engine.RackUsage(*r)
		p.usage.SetText(fmt.Sprintf("%d/%dU used (%.0f%%), %dU blanks, %dU free\n%d items, %d shelf items, %d PDUs",
			u.EquipmentU, u.HeightU, u.Utilization()*100, u.BlankU, u.FreeU, u.Items, u.ShelfItems, u.PDUs))
	}

	sel := a.state.Selection.Items
	p.single = len(sel) == 1
	switch {
	case len(sel) == 0:
		p.selTitle.SetText("Nothing selected")
	case len(sel) > 1:
		p.selTitle.SetText(fmt.Sprintf("%d items selected", len(sel)))
	}
	if !p.single {
		p.position.SetText("")
		p.label.SetText("")
		p.notes.SetText("")
		p.label.Disable()
		p.notes.Disable()
		p.apply.Disable()
		a.setStatus("")
		return
	}

	p.current = sel[0]
	it := a.state.Item(p.current)
	if it == nil {
		p.single = false
		a.setStatus("")
		return
	}
	p.selTitle.SetText(fmt.Sprintf("%s (%s)", it.Type, it.Kind))
	p.position.SetText(a.state.PositionLabel(p.current))
	p.label.SetText(it.Label)
	p.notes.SetText(it.Notes)
	p.label.Enable()
	p.notes.Enable()
	p.apply.Enable()
	a.setStatus("")
}

func (a *App) applyRack() {
	p := a.info
	if err := p.rackHeight.Validate(); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	h, _ := strconv.Atoi(p.rackHeight.Text)
	i := a.state.Active
	if name := strings.TrimSpace(p.rackName.Text); name != "" {
		a.state.RenameRack(i, name)
	}
	if err := a.state.ResizeRack(i, h); err != nil {
		dialog.ShowError(err, a.window)
	}
	a.changed()
}

func (a *App) applyItem() {
	p := a.info
	if !p.single {
		return
	}
	a.state.SetLabel(p.current, p.label.Text)
	a.state.SetNotes(p.current, p.notes.Text)
	a.changed()
}

// openInfo focuses the label editor for the selected item.
func (a *App) openInfo() {
	a.refreshInfo()
	if a.info.single {
		a.window.Canvas().Focus(a.info.label)
	}
}
