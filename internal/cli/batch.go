package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dressform/pkg/draft"
	"github.com/matzehuels/dressform/pkg/pipeline"
)

// batchManifest is written next to the outputs of a batch run.
type batchManifest struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Jobs      []batchJob `json:"jobs"`
}

type batchJob struct {
	Profile   string          `json:"profile"`
	Dir       string          `json:"dir"`
	DraftHash string          `json:"draft_hash"`
	Artifacts []string        `json:"artifacts"`
	Warnings  []draft.Warning `json:"warnings,omitempty"`
}

// batchCommand creates the batch command, which drafts several profiles
// concurrently.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		jobs       int
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "batch profile.toml...",
		Short: "Draft several profiles concurrently",
		Long: `Draft several profiles concurrently.

Each profile is written to its own directory below the output directory, and
a batch.json manifest lists every job. The first failing profile aborts the
batch.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseList(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runBatch(cmd.Context(), args, opts, output, jobs, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "patterns", "output directory")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s) for every profile (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", "", "visual style: technical, print")
	cmd.Flags().StringVar(&opts.Paper, "paper", "", "paper for tiled pages: a4, a3, letter")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", pipeline.DefaultBatchLimit, "profiles drafted in parallel")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.ValidArgsFunction = completeProfiles
	registerRenderCompletions(cmd)

	return cmd
}

func (c *CLI) runBatch(ctx context.Context, inputs []string, flagOpts pipeline.Options, output string, jobs int, noCache bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	all := make([]pipeline.Options, len(inputs))
	for i, input := range inputs {
		var pf profileFlags
		p, err := pf.load(input)
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
		o := pipeline.OptionsFromProfile(p, flagOpts)
		c.applyConfigDefaults(&o)
		o.Logger = logger.With("profile", filepath.Base(input))
		all[i] = o
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Drafting %d profiles...", len(inputs)))
	spinner.Start()
	results, err := runner.ExecuteBatch(ctx, all, jobs)
	if err != nil {
		spinner.StopWithError("Batch failed")
		return err
	}
	spinner.Stop()

	m := batchManifest{ID: uuid.New().String(), CreatedAt: time.Now().UTC()}
	used := make(map[string]bool, len(results))
	for i, res := range results {
		dir := filepath.Join(output, filepath.Base(profileBase(inputs[i])))
		if used[dir] {
			dir = fmt.Sprintf("%s-%d", dir, i+1)
		}
		used[dir] = true
		if _, err := writeArtifacts(dir, res); err != nil {
			return err
		}
		m.Jobs = append(m.Jobs, batchJob{
			Profile:   inputs[i],
			Dir:       dir,
			DraftHash: res.DraftHash,
			Artifacts: res.Names(),
			Warnings:  res.Warnings,
		})
	}
	manifestPath := filepath.Join(output, "batch.json")
	if err := writeJSON(manifestPath, m); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Drafted %d profiles", len(results)))

	printSuccess("Batch %s complete", m.ID)
	for i, job := range m.Jobs {
		printFile(job.Dir)
		printRunStats(results[i])
		printWarnings(job.Warnings)
	}
	printFile(manifestPath)
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
