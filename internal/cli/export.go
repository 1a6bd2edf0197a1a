package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RackPlanner/internal/export"
)

// Export formats accepted by --format.
const (
	formatPDF    = "pdf"
	formatPNG    = "png"
	formatPNGs   = "pngs"
	formatDXF    = "dxf"
	formatBOM    = "xlsx"
	formatLabels = "labels"
)

var exportFormats = []string{formatPDF, formatPNG, formatPNGs, formatDXF, formatBOM, formatLabels}

// formatFor infers the export format from the output path when --format is
// empty.
func formatFor(format, output string) (string, error) {
	if format != "" {
		for _, f := range exportFormats {
			if f == format {
				return f, nil
			}
		}
		return "", fmt.Errorf("unknown format %q, want one of %s", format, strings.Join(exportFormats, ", "))
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".pdf":
		return formatPDF, nil
	case ".png":
		return formatPNG, nil
	case ".dxf":
		return formatDXF, nil
	case ".xlsx":
		return formatBOM, nil
	case "":
		return formatPNGs, nil
	}
	return "", fmt.Errorf("cannot infer format from %q, pass --format", output)
}

func (c *CLI) exportCommand() *cobra.Command {
	var (
		output string
		format string
		rack   int
		rear   bool
		notes  bool
		scale  float64
	)
	cmd := &cobra.Command{
		Use:   "export <layout>",
		Short: "Export a layout as PDF, PNG, DXF, Excel or asset labels",
		Long: `Export a layout. The format follows the output extension unless --format is given:

  .pdf   elevation and item table per rack plus a summary page
  .png   all racks side by side in one image
  .dxf   CAD drawing with one layer per equipment class
  .xlsx  bill of materials, rack usage and equipment list
  dir/   one PNG per rack (--format pngs)

Asset labels are printed with --format labels to a PDF on Avery 5160 sheets.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatFor(format, output)
			if err != nil {
				return err
			}
			racks, err := c.loadLayout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			racks, err = selectRacks(racks, rack)
			if err != nil {
				return err
			}
			opts := export.Options{Rear: rear, Notes: notes}
			img := export.ImageOptions{Options: opts, Scale: scale}

			c.Logger.Debug("exporting", "layout", args[0], "format", f, "output", output, "racks", len(racks))
			switch f {
			case formatPDF:
				err = export.ExportPDF(output, racks, opts)
			case formatPNG:
				err = export.ExportPNG(output, racks, img)
			case formatPNGs:
				var paths []string
				paths, err = export.ExportRackPNGs(output, racks, img)
				for _, p := range paths {
					c.printDetail("%s", p)
				}
			case formatDXF:
				err = export.ExportDXF(output, racks, opts)
			case formatBOM:
				err = export.ExportBOM(output, racks)
			case formatLabels:
				err = export.ExportLabels(output, racks)
			}
			if err != nil {
				return err
			}
			c.printSuccess("Exported %s to %s", args[0], output)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&output, "output", "o", "", "output file, or directory for pngs")
	fl.StringVarP(&format, "format", "f", "", "one of "+strings.Join(exportFormats, ", "))
	fl.IntVarP(&rack, "rack", "r", 0, "only this rack (1-based)")
	fl.BoolVar(&rear, "rear", false, "draw the rear view")
	fl.BoolVar(&notes, "notes", true, "include notes")
	fl.Float64Var(&scale, "scale", 2, "pixels per world unit for images")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
