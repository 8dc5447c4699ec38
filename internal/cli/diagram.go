package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dressform/pkg/draft"
	derrors "github.com/matzehuels/dressform/pkg/errors"
	"github.com/matzehuels/dressform/pkg/pipeline"
	"github.com/matzehuels/dressform/pkg/render/diagram"
)

// diagramFormats are the outputs of the diagram command. "dot" writes the
// Graphviz source.
var diagramFormats = map[string]bool{"svg": true, "pdf": true, "png": true, "dot": true}

// diagramCommand creates the diagram command, which renders how each
// construction point is derived from the measurements.
func (c *CLI) diagramCommand() *cobra.Command {
	var (
		pf       profileFlags
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "diagram [profile.toml]",
		Short: "Render the construction diagram of a draft",
		Long: `Render the construction diagram of a draft.

Every grid quantity and construction point is a node; edges point from the
quantities a step is derived from to the step. Rendering uses Graphviz.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			if !diagramFormats[format] {
				return derrors.New(derrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, pdf, png, dot)", format)
			}
			return c.runDiagram(cmd.Context(), input, &pf, format, output, detailed)
		},
	}

	pf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <profile>-construction.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, pdf, png, dot")
	cmd.Flags().BoolVar(&detailed, "detailed", true, "show formulas and values in nodes")
	cmd.ValidArgsFunction = completeProfiles
	_ = cmd.RegisterFlagCompletionFunc("split", cobra.FixedCompletions(draft.DartSplitNames(), cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{"svg", "pdf", "png", "dot"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runDiagram(ctx context.Context, input string, pf *profileFlags, format, output string, detailed bool) error {
	logger := loggerFromContext(ctx)

	p, err := pf.load(input)
	if err != nil {
		return err
	}
	opts := pipeline.OptionsFromProfile(p, pipeline.Options{Logger: logger})
	c.applyConfigDefaults(&opts)

	pat, err := pipeline.NewRunner(nil, nil, logger).Draft(ctx, opts)
	if err != nil {
		return err
	}
	steps := draft.ConstructionSteps(&pat)
	dot := diagram.ToDOT(steps, diagram.Options{Detailed: detailed})
	logger.Debug("built construction graph", "steps", len(steps))

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = diagram.RenderSVG(ctx, dot)
	case "pdf":
		data, err = diagram.RenderPDF(ctx, dot)
	case "png":
		data, err = diagram.RenderPNG(ctx, dot, 2.0)
	}
	if err != nil {
		return fmt.Errorf("render diagram: %w", err)
	}

	if output == "" {
		output = profileBase(input) + "-construction." + format
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Construction diagram rendered")
	printFile(output)
	printDetail("%d steps", len(steps))
	return nil
}
