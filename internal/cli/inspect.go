package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dressform/pkg/draft"
	"github.com/matzehuels/dressform/pkg/pipeline"
)

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

// inspectCommand creates the inspect command, which prints the drafting
// quantities of a profile without rendering.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		pf     profileFlags
		points bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [profile.toml]",
		Short: "Show the grid, darts, sleeve and warnings of a draft",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runInspect(cmd.Context(), input, &pf, points, asJSON)
		},
	}

	pf.register(cmd)
	cmd.Flags().BoolVar(&points, "points", false, "list every construction point")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the drafted pattern as JSON")
	cmd.ValidArgsFunction = completeProfiles
	registerRenderCompletions(cmd)

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, pf *profileFlags, points, asJSON bool) error {
	p, err := pf.load(input)
	if err != nil {
		return err
	}
	opts := pipeline.OptionsFromProfile(p, pipeline.Options{})
	c.applyConfigDefaults(&opts)

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	pat, err := runner.Draft(ctx, opts)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(pat)
	}

	name := p.Name
	if name == "" {
		name = profileBase(input)
	}
	fmt.Println(StyleTitle.Render(name) + " " + StyleDim.Render(pat.Bodice.Grid.Options.String()))
	printNewline()
	fmt.Println(gridTable(pat.Bodice.Grid))
	fmt.Println(dartTable(pat.Bodice.Darts))
	fmt.Println(sleeveTable(pat.Sleeve))
	if points {
		fmt.Println(pointTable(pat.Bodice.Back))
		fmt.Println(pointTable(pat.Bodice.Front))
	}

	printKeyValue("armhole", fmt.Sprintf("%.1f cm measured", pat.Bodice.ArmholeLength))
	printKeyValue("diagonal", fmt.Sprintf("%.1f cm measured", pat.Bodice.ShoulderDiagonal))
	if ws := pat.Warnings(); len(ws) > 0 {
		printNewline()
		printWarnings(ws)
	}
	return nil
}

// gridTable lists the base and adjusted grid quantities side by side.
func gridTable(a draft.AdjustedGrid) string {
	b, g := a.Base, a.Grid
	rows := [][]string{
		{"total", cm(b.Total), cm(g.Total)},
		{"back", cm(b.Back), cm(g.Back)},
		{"armhole", cm(b.Armhole), cm(g.Armhole)},
		{"front", cm(b.Front), cm(g.Front)},
		{"hip width", cm(b.HipWidth), cm(g.HipWidth)},
		{"A neck", cm(b.Neck), cm(g.Neck)},
		{"G chest", cm(b.Chest), cm(g.Chest)},
		{"T waist", cm(b.Waist), cm(g.Waist)},
		{"B hip", cm(b.Hip), cm(g.Hip)},
		{"N hem", cm(b.Hem), cm(g.Hem)},
		{"dart volume", cm(b.DartVolume), cm(g.DartVolume)},
		{"shoulder dart", cm(b.ShoulderDart), cm(g.ShoulderDart)},
	}
	return newTable("Grid", "Base", "Adjusted").Rows(rows...).Render()
}

func dartTable(d draft.DartAllocation) string {
	rows := [][]string{
		{"back waist", cm(d.Back)},
		{"side waist", cm(d.Side)},
		{"front waist", cm(d.Front)},
		{"bust", cm(d.Bust)},
		{"shoulder", cm(d.Shoulder)},
		{"hip widening", cm(d.HipWidening)},
	}
	return newTable("Darts ("+d.Split.Name+")", "Intake").Rows(rows...).Render()
}

func sleeveTable(s draft.SleeveGeometry) string {
	rows := [][]string{
		{"cap height", cm(s.Base.CapHeight), cm(s.CapHeight)},
		{"cap width", cm(s.Base.CapWidth), cm(s.CapWidth)},
		{"bottom width", cm(s.Base.BottomWidth), cm(s.BottomWidth)},
		{"length", cm(s.Base.Length), cm(s.Length)},
		{"cap length", "", cm(s.CapLength)},
		{"cap ease", "", cm(s.CapEase)},
	}
	return newTable("Sleeve", "Base", "Adjusted").Rows(rows...).Render()
}

func pointTable(p draft.Panel) string {
	var rows [][]string
	for _, name := range p.PointNames() {
		pt := p.Points[name]
		rows = append(rows, []string{name, cm(pt.X), cm(pt.Y)})
	}
	return newTable(p.Name, "x", "y").Rows(rows...).Render()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return tableHeaderStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorGray).PaddingRight(1)
			}
			return StyleNumber.PaddingLeft(1)
		})
}

func cm(v float64) string { return fmt.Sprintf("%.2f", v) }
