package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RackPlanner/internal/importer"
	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/piwi3910/RackPlanner/internal/project"
)

func (c *CLI) catalogCommand() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show or replace the equipment catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.catalogPath(path)
			cat, warnings, err := project.LoadCatalog(p)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				c.printWarning("%s", w)
			}
			c.printCatalog(cat)
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&path, "file", "", "catalog file (default from the app settings)")
	cmd.AddCommand(c.catalogImportCommand(&path))
	return cmd
}

func (c *CLI) catalogPath(flag string) string {
	if flag != "" {
		return flag
	}
	return project.CatalogPath(c.appConfig())
}

func (c *CLI) printCatalog(cat model.Catalog) {
	var rows [][]string
	for _, category := range cat.Categories {
		for _, t := range category.Items {
			u := ""
			switch {
			case t.Kind() == model.KindShelf && t.Size != nil:
				u = fmt.Sprintf("%gx%g", t.Size.Width, t.Size.Height)
			case t.Kind() == model.KindPDU && t.U < 1:
				u = "full"
			default:
				u = strconv.Itoa(t.HeightU())
			}
			rows = append(rows, []string{category.Name, t.Label, t.Type, u})
		}
	}
	c.printTable([]string{"Category", "Label", "Type", "Size"}, rows)
	c.printDetail("%d templates in %d categories", cat.Count(), len(cat.Categories))
}

func (c *CLI) catalogImportCommand(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the catalog with one read from JSON, YAML, TOML, CSV or Excel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := importer.ImportFile(args[0])
			for _, w := range res.Warnings {
				c.printWarning("%s", w)
			}
			for _, e := range res.Errors {
				c.printWarning("%s", e)
			}
			if res.Templates() == 0 {
				return fmt.Errorf("no equipment found in %s", args[0])
			}
			dest := c.catalogPath(*path)
			if err := project.SaveCatalog(dest, res.Catalog); err != nil {
				return fmt.Errorf("failed to save catalog: %w", err)
			}
			c.printSuccess("Imported %d templates into %s", res.Templates(), dest)
			return nil
		},
	}
}
