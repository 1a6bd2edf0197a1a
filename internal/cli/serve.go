package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RackPlanner/internal/server"
)

const shutdownTimeout = 5 * time.Second

func (c *CLI) serveCommand() *cobra.Command {
	var addr, catalog string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout directory over HTTP",
		Long: `Serve layouts over HTTP so several planners can share them. Settings come
from the environment or a .env file:

  RACKPLANNER_ADDR         listen address (default :5000)
  RACKPLANNER_LAYOUTS_DIR  layouts directory
  RACKPLANNER_CATALOG      equipment catalog file

Flags override the environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.LoadConfig()
			if addr != "" {
				cfg.Addr = addr
			}
			if c.dir != "" {
				cfg.LayoutsDir = c.dir
			}
			if catalog != "" {
				cfg.Catalog = catalog
			}
			return c.serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address")
	cmd.Flags().StringVar(&catalog, "catalog", "", "equipment catalog file")
	return cmd
}

// serve runs the layout server until ctx is cancelled.
func (c *CLI) serve(ctx context.Context, cfg server.Config) error {
	srv := server.NewServer(cfg, c.Logger.WithPrefix("http"))
	errc := make(chan error, 1)
	go func() {
		c.Logger.Info("layout server listening", "addr", cfg.Addr, "dir", cfg.LayoutsDir)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("layout server failed: %w", err)
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
