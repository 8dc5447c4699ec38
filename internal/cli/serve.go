package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dressform/internal/config"
	"github.com/matzehuels/dressform/internal/server"
	"github.com/matzehuels/dressform/pkg/pipeline"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Draft IDs and rendered artifacts live in the configured cache. With the file
or redis backend they survive restarts; "none" is replaced by an in-memory
cache because the API cannot serve artifacts without one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.Config.Server.Addr = addr
			}
			return c.runServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context) error {
	cacheCfg := c.Config.Cache
	if cacheCfg.Backend == config.BackendNone {
		cacheCfg.Backend = config.BackendMemory
	}
	store, err := cacheCfg.OpenCache(ctx, false)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	runner := pipeline.NewRunner(store, cacheCfg.Keyer(), c.Logger)
	defer runner.Close()

	srv := server.New(server.Config{
		Addr:         c.Config.Server.Addr,
		MaxBodyBytes: c.Config.Server.MaxBodyBytes,
		Defaults: pipeline.Options{
			Split:   c.Config.Draft.Split,
			Formats: c.Config.Render.Formats,
			Style:   c.Config.Render.Style,
			Paper:   c.Config.Render.Paper,
			Scale:   c.Config.Render.Scale,
		},
	}, runner, c.Logger)

	url := "http://" + c.Config.Server.Addr
	if strings.HasPrefix(c.Config.Server.Addr, ":") {
		url = "http://localhost" + c.Config.Server.Addr
	}
	printInfo("Listening on %s", StyleLink.Render(url))
	printDetail("cache: %s", cacheCfg.Backend)
	return srv.ListenAndServe(ctx)
}
