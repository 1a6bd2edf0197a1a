// Package cli implements rackctl, the command-line companion to the
// RackPlanner desktop app. It reads and writes the same layout store and
// renders the same exports.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/RackPlanner/internal/editor"
	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/piwi3910/RackPlanner/internal/project"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Version is reported by --version.
var Version = "dev"

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	out    io.Writer

	dir       string
	serverURL string
	config    string
}

// New creates a CLI writing results to out and logs to logw.
func New(out, logw io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(logw, level),
		out:    out,
	}
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "rackctl",
		Short:         "rackctl inspects and exports RackPlanner layouts",
		Long:          `rackctl lists, prints, fills and exports the rack layouts saved by RackPlanner, and serves them over HTTP for shared use.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&c.dir, "dir", "", "layouts directory (default from the app settings)")
	pf.StringVar(&c.serverURL, "server", "", "layout server URL, overrides --dir")
	pf.StringVar(&c.config, "config", "", "app settings file (default "+project.DefaultConfigPath()+")")

	root.AddCommand(c.listCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.fillCommand())
	root.AddCommand(c.bomCommand())
	root.AddCommand(c.diffCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.serveCommand())

	return root
}

// appConfig loads the desktop app's settings, falling back to defaults.
func (c *CLI) appConfig() model.AppConfig {
	path := c.config
	if path == "" {
		path = project.DefaultConfigPath()
	}
	cfg, err := project.LoadAppConfig(path)
	if err != nil {
		c.Logger.Warn("failed to read app settings, using defaults", "path", path, "err", err)
		return model.DefaultAppConfig()
	}
	return cfg
}

// gateway returns the layout store selected by the flags and settings.
func (c *CLI) gateway() editor.Gateway {
	if c.serverURL != "" {
		c.Logger.Debug("using layout server", "url", c.serverURL)
		return project.NewHTTPStore(c.serverURL, nil)
	}
	dir := c.dir
	if dir == "" {
		cfg := c.appConfig()
		if cfg.ServerURL != "" {
			c.Logger.Debug("using layout server from settings", "url", cfg.ServerURL)
			return project.NewHTTPStore(cfg.ServerURL, nil)
		}
		dir = project.LayoutsDir(cfg)
	}
	c.Logger.Debug("using layout directory", "dir", dir)
	return project.NewFileStore(dir)
}

// isFile reports whether ref names a layout file on disk rather than a
// stored layout.
func isFile(ref string) bool {
	if !strings.HasSuffix(strings.ToLower(ref), ".json") {
		return false
	}
	st, err := os.Stat(ref)
	return err == nil && !st.IsDir()
}

// loadLayout reads a layout by store name or JSON file path.
func (c *CLI) loadLayout(ctx context.Context, ref string) ([]model.Rack, error) {
	if isFile(ref) {
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", ref, err)
		}
		return project.DecodeLayout(data)
	}
	racks, err := c.gateway().Load(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout %q: %w", ref, err)
	}
	return racks, nil
}

// saveLayout writes a layout back where loadLayout found it.
func (c *CLI) saveLayout(ctx context.Context, ref string, racks []model.Rack) error {
	if isFile(ref) {
		data, err := project.EncodeLayout(racks)
		if err != nil {
			return err
		}
		return os.WriteFile(ref, data, 0644)
	}
	return c.gateway().Save(ctx, ref, racks)
}

// selectRacks narrows racks to the 1-based index n, or returns all of
// them for n == 0.
func selectRacks(racks []model.Rack, n int) ([]model.Rack, error) {
	if n == 0 {
		return racks, nil
	}
	if n < 1 || n > len(racks) {
		return nil, fmt.Errorf("rack %d out of range, layout has %d racks", n, len(racks))
	}
	return racks[n-1 : n], nil
}
