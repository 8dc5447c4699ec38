// Package cli implements the dressform command-line interface.
package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dressform/internal/config"
	"github.com/matzehuels/dressform/pkg/buildinfo"
	"github.com/matzehuels/dressform/pkg/observability"
	"github.com/matzehuels/dressform/pkg/pipeline"
	"github.com/matzehuels/dressform/pkg/render/pattern/sink"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config     config.Config
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "dressform",
		Short: "Dressform drafts bodice and sleeve patterns from body measurements",
		Long: `Dressform drafts a fitted bodice and its matching sleeve from a set of body
measurements and figure options, and renders the pattern pieces as SVG, PNG,
PDF, DXF, JSON or tiled print pages.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/dressform/config.toml)")

	root.AddCommand(c.draftCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.formCommand())
	root.AddCommand(c.diagramCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and attaches the logger to the command
// context.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	if c.Logger.GetLevel() <= log.DebugLevel {
		sink.SetRasterLogger(slog.New(c.Logger))
		observability.Install(observability.LogHooks{Logger: c.Logger})
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cache, err := c.Config.Cache.OpenCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, c.Config.Cache.Keyer(), c.Logger), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// applyConfigDefaults fills render options left empty by flags and profiles
// from the config file.
func (c *CLI) applyConfigDefaults(opts *pipeline.Options) {
	if opts.Split == "" {
		opts.Split = c.Config.Draft.Split
	}
	if len(opts.Formats) == 0 {
		opts.Formats = append([]string(nil), c.Config.Render.Formats...)
	}
	if opts.Style == "" {
		opts.Style = c.Config.Render.Style
	}
	if opts.Paper == "" {
		opts.Paper = c.Config.Render.Paper
	}
	if opts.Scale == 0 {
		opts.Scale = c.Config.Render.Scale
	}
}

// parseList parses a comma-separated flag value into a slice. The empty
// string yields nil so that defaults apply.
func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
