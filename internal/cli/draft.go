package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	derrors "github.com/matzehuels/dressform/pkg/errors"
	"github.com/matzehuels/dressform/pkg/pipeline"
)

// draftCommand creates the draft command: profile in, pattern files out.
func (c *CLI) draftCommand() *cobra.Command {
	var (
		pf         profileFlags
		output     string
		formatsStr string
		piecesStr  string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "draft [profile.toml]",
		Short: "Draft a bodice and sleeve and render the pattern files",
		Long: `Draft a bodice and sleeve and render the pattern files.

The profile is a TOML or JSON file with [measurements], [figure], [draft] and
an optional [render] table. Without a profile the reference measurements are
used. Flags override the profile; the profile overrides the config file.

Rendered artifacts are cached, so re-running an unchanged profile only writes
the files again.

Examples:
  dressform draft anna.toml -f svg,pdf,pages --paper a4
  dressform draft --set bust=96,waist=78 --figure posture=erect -o out/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			opts.Formats = parseList(formatsStr)
			opts.Pieces = parseList(piecesStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runDraft(cmd.Context(), input, &pf, opts, output, noCache)
		},
	}

	pf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default: <profile>-pattern)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even when cached")

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg, png, pdf, dxf, json, pages (comma-separated)")
	cmd.Flags().StringVarP(&piecesStr, "piece", "p", "", "piece(s) to render: bodice, sleeve (default: both)")
	cmd.Flags().StringVar(&opts.Style, "style", "", "visual style: technical, print")
	cmd.Flags().StringVar(&opts.Paper, "paper", "", "paper for tiled pages: a4, a3, letter")
	cmd.Flags().Float64Var(&opts.Overlap, "overlap", 0, "page overlap in cm for tiled pages")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "preview resolution in px/cm (svg, png)")
	cmd.Flags().BoolVar(&opts.NoGrid, "no-grid", false, "omit the drafting grid")
	cmd.Flags().BoolVar(&opts.NoMarks, "no-marks", false, "omit reference point marks")
	cmd.Flags().BoolVar(&opts.Diagram, "diagram", false, "also render the construction diagram")
	cmd.ValidArgsFunction = completeProfiles
	registerRenderCompletions(cmd)

	return cmd
}

// runDraft loads the profile, runs the pipeline and writes every artifact.
func (c *CLI) runDraft(ctx context.Context, input string, pf *profileFlags, flagOpts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)

	p, err := pf.load(input)
	if err != nil {
		return err
	}
	opts := pipeline.OptionsFromProfile(p, flagOpts)
	c.applyConfigDefaults(&opts)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Drafting %s...", profileBase(input)))
	spinner.Start()

	opts.Logger = logger
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Draft failed")
		return err
	}
	spinner.Stop()

	if output == "" {
		output = profileBase(input) + "-pattern"
	}
	paths, err := writeArtifacts(output, res)
	if err != nil {
		return err
	}

	printSuccess("Pattern drafted")
	for _, path := range paths {
		printFile(path)
	}
	printRunStats(res)
	printWarnings(res.Warnings)
	printNewline()
	next := "dressform inspect"
	if input != "" {
		next += " " + input
	}
	printNextStep("Inspect", next)
	return nil
}

// writeArtifacts writes every artifact of res into dir and returns the
// written paths in name order.
func writeArtifacts(dir string, res *pipeline.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	var paths []string
	for _, name := range res.Names() {
		if err := derrors.ValidateArtifactName(name); err != nil {
			return nil, err
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, res.Artifacts[name], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
