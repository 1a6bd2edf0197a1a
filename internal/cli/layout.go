package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/piwi3910/RackPlanner/internal/engine"
	"github.com/piwi3910/RackPlanner/internal/model"
)

// slotWidth is the character width of the equipment column in show.
const slotWidth = 36

func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gw := c.gateway()
			names, err := gw.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list layouts: %w", err)
			}
			if len(names) == 0 {
				c.printInfo("No saved layouts")
				return nil
			}
			rows := make([][]string, 0, len(names))
			for _, n := range names {
				racks, err := gw.Load(ctx, n)
				if err != nil {
					c.Logger.Warn("failed to read layout", "name", n, "err", err)
					rows = append(rows, []string{n, "?", "?", "?"})
					continue
				}
				used, total := 0, 0
				for _, r := range racks {
					u := engine.RackUsage(r)
					used += u.EquipmentU
					total += u.HeightU
				}
				rows = append(rows, []string{n, strconv.Itoa(len(racks)), strconv.Itoa(total), percent(used, total)})
			}
			c.printTable([]string{"Layout", "Racks", "Total U", "Used"}, rows)
			return nil
		},
	}
}

func percent(part, whole int) string {
	if whole == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", float64(part)*100/float64(whole))
}

func (c *CLI) showCommand() *cobra.Command {
	var (
		rack  int
		notes bool
	)
	cmd := &cobra.Command{
		Use:   "show <layout>",
		Short: "Print rack elevations of a layout",
		Long:  `Print each rack of a layout top to bottom with slot numbers counted from the bottom, vertical PDUs on the rails and shelf items next to their shelf. The layout is a saved name or a path to a .json file.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			racks, err := c.loadLayout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			racks, err = selectRacks(racks, rack)
			if err != nil {
				return err
			}
			for i, r := range racks {
				if i > 0 {
					fmt.Fprintln(c.out)
				}
				c.printRack(r, notes)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&rack, "rack", "r", 0, "only this rack (1-based)")
	cmd.Flags().BoolVarP(&notes, "notes", "n", false, "show the first line of each item's notes")
	return cmd
}

func (c *CLI) printRack(r model.Rack, notes bool) {
	u := engine.RackUsage(r)
	fmt.Fprintln(c.out, styleTitle.Render(r.Name)+" "+styleDim.Render(fmt.Sprintf("%dU", r.HeightU)))
	for _, line := range elevationLines(r, notes) {
		fmt.Fprintln(c.out, line)
	}
	fmt.Fprintf(c.out, "%s used, %s blank, %s free (%s)\n",
		styleNumber.Render(fmt.Sprintf("%dU", u.EquipmentU)),
		styleNumber.Render(fmt.Sprintf("%dU", u.BlankU)),
		styleNumber.Render(fmt.Sprintf("%dU", u.FreeU)),
		percent(u.EquipmentU, u.HeightU))
	if u.PDUs > 0 {
		c.printDetail("%d vertical PDUs", u.PDUs)
	}
}

// elevationLines draws one line per slot, top slot first.
func elevationLines(r model.Rack, notes bool) []string {
	owner := make([]int, r.HeightU)
	for i := range owner {
		owner[i] = -1
	}
	for i, it := range r.Equipment {
		if !it.OccupiesSlots() {
			continue
		}
		start, end := it.Span()
		for y := max(start, 0); y < min(end, r.HeightU); y++ {
			owner[y] = i
		}
	}

	lines := make([]string, 0, r.HeightU)
	for y := 0; y < r.HeightU; y++ {
		pos := styleDim.Render(fmt.Sprintf("U%-3d", r.HeightU-y))
		cell := styleDim.Render(padRight(" ·", slotWidth))
		extra := ""
		if i := owner[y]; i >= 0 {
			it := r.Equipment[i]
			text := ""
			if it.Y == y || y == 0 {
				text = " " + it.Label
				if len(it.ShelfItems) > 0 {
					text += " [" + shelfLabels(it) + "]"
				}
				if notes && it.Notes != "" {
					extra = " " + styleDim.Render("# "+firstLine(it.Notes))
				}
			}
			cell = typeStyle(it.Type).Render(padRight(text, slotWidth))
		}
		lines = append(lines, pos+rail(r, model.SideLeft, y)+cell+rail(r, model.SideRight, y)+extra)
	}
	return lines
}

func rail(r model.Rack, side model.Side, y int) string {
	for _, it := range r.Equipment {
		if it.Kind != model.KindPDU || it.Side != side {
			continue
		}
		if it.FullHeight || (y >= it.Y && y < it.Y+it.U) {
			return lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("┃")
		}
	}
	return styleDim.Render("│")
}

func shelfLabels(it model.Item) string {
	labels := make([]string, len(it.ShelfItems))
	for i, s := range it.ShelfItems {
		labels[i] = s.Label
	}
	return strings.Join(labels, ", ")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// padRight cuts or pads s to exactly n runes.
func padRight(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s + strings.Repeat(" ", n-len(r))
}

func (c *CLI) fillCommand() *cobra.Command {
	var (
		rack   int
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "fill <layout>",
		Short: "Fill empty slots with blank panels",
		Long:  `Replace the blank panels of each rack with a covering of all free slots, largest panels first, and save the layout. Running it twice gives the same result.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			racks, err := c.loadLayout(ctx, args[0])
			if err != nil {
				return err
			}
			targets, err := selectRacks(racks, rack)
			if err != nil {
				return err
			}
			total := 0
			for i := range targets {
				n := engine.FillWithBlanks(&targets[i])
				c.Logger.Debug("filled rack", "rack", targets[i].Name, "blanks", n)
				c.printDetail("%s: %d blank panels", targets[i].Name, n)
				total += n
			}
			if dryRun {
				c.printInfo("Dry run, %d blank panels would be placed", total)
				return nil
			}
			if err := c.saveLayout(ctx, args[0], racks); err != nil {
				return fmt.Errorf("failed to save layout: %w", err)
			}
			c.printSuccess("Placed %d blank panels in %s", total, args[0])
			return nil
		},
	}
	cmd.Flags().IntVarP(&rack, "rack", "r", 0, "only this rack (1-based)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report without saving")
	return cmd
}

func (c *CLI) bomCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bom <layout>",
		Short: "Print the bill of materials of a layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			racks, err := c.loadLayout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			lines := engine.BillOfMaterials(racks)
			if len(lines) == 0 {
				c.printInfo("Layout is empty")
				return nil
			}
			rows := make([][]string, 0, len(lines))
			for _, l := range lines {
				u := ""
				if l.U > 0 {
					u = strconv.Itoa(l.U)
				}
				rows = append(rows, []string{l.Label, l.Type, u, strconv.Itoa(l.Quantity), strings.Join(l.Racks, ", ")})
			}
			c.printTable([]string{"Item", "Type", "U", "Qty", "Racks"}, rows)
			return nil
		},
	}
}

func (c *CLI) diffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <layout-a> <layout-b>",
		Short: "Compare two layouts rack by rack",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := c.loadLayout(ctx, args[0])
			if err != nil {
				return err
			}
			b, err := c.loadLayout(ctx, args[1])
			if err != nil {
				return err
			}
			if engine.LayoutsEqual(a, b) {
				c.printSuccess("Layouts are identical")
				return nil
			}
			cmp := engine.CompareLayouts(a, b)
			rows := make([][]string, 0, len(cmp))
			for _, rc := range cmp {
				rows = append(rows, []string{
					strconv.Itoa(rc.Index + 1), rc.Name, string(rc.Change),
					strconv.Itoa(rc.ItemsA), strconv.Itoa(rc.ItemsB),
				})
			}
			c.printTable([]string{"#", "Rack", "Change", "Items A", "Items B"}, rows)
			return nil
		},
	}
}
