package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dressform/pkg/draft"
	derrors "github.com/matzehuels/dressform/pkg/errors"
	pkgio "github.com/matzehuels/dressform/pkg/io"
	"github.com/matzehuels/dressform/pkg/measure"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// FigureFormModel - Interactive figure option selection
// =============================================================================

// FigureFormModel is the bubbletea model for picking one value per figure
// axis. The adjustment rows selected so far are previewed below the form.
type FigureFormModel struct {
	Options   measure.FigureOptions
	Cursor    int
	Confirmed bool
}

// NewFigureFormModel creates a form starting from o.
func NewFigureFormModel(o measure.FigureOptions) FigureFormModel {
	return FigureFormModel{Options: o.Normalized()}
}

func (m FigureFormModel) Init() tea.Cmd {
	return nil
}

func (m FigureFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(measure.Axes)-1 {
			m.Cursor++
		}
	case "left", "h":
		m.step(-1)
	case "right", "l", " ":
		m.step(1)
	case "enter":
		m.Confirmed = true
		return m, tea.Quit
	}
	return m, nil
}

// step cycles the value of the axis under the cursor.
func (m *FigureFormModel) step(dir int) {
	axis := measure.Axes[m.Cursor]
	vals := measure.Values(axis)
	cur := 0
	for i, v := range vals {
		if v == m.Options.Get(axis) {
			cur = i
		}
	}
	next := (cur + dir + len(vals)) % len(vals)
	_ = m.Options.Set(axis, vals[next])
}

func (m FigureFormModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Figure Options"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ axis  ←/→ value  ⏎ save  q quit"))
	b.WriteString("\n\n")

	for i, axis := range measure.Axes {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		var vals []string
		for _, v := range measure.Values(axis) {
			if v == m.Options.Get(axis) {
				vals = append(vals, listSelectedStyle.Render("["+v+"]"))
			} else {
				vals = append(vals, listDimStyle.Render(" "+v+" "))
			}
		}
		label := fmt.Sprintf("%s%-10s", cursor, axis)
		if i == m.Cursor {
			label = listSelectedStyle.Render(label)
		} else {
			label = listNormalStyle.Render(label)
		}
		b.WriteString(label + strings.Join(vals, " ") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("-", 40)))
	b.WriteString("\n")
	effects := draft.EffectsFor(m.Options)
	if len(effects) == 0 {
		b.WriteString(listDimStyle.Render("  no adjustments (neutral figure)") + "\n")
	}
	for _, e := range effects {
		b.WriteString(fmt.Sprintf("  %s %-20s %s\n",
			listDimStyle.Render(string(e.Axis)),
			e.Field,
			StyleNumber.Render(fmt.Sprintf("%+.1f", e.Delta))))
	}
	return b.String()
}

// =============================================================================
// form command
// =============================================================================

// formCommand creates the form command, which edits the figure options of a
// profile interactively and saves it.
func (c *CLI) formCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "form [profile.toml]",
		Short: "Pick figure options interactively and save them to a profile",
		Long: `Pick figure options interactively and save them to a profile.

An existing profile is edited in place unless -o is given. Without a profile a
new one with the reference measurements is written to profile.toml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runForm(input, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "profile to write (default: the input, or profile.toml)")
	return cmd
}

func (c *CLI) runForm(input, output string) error {
	p := pkgio.DefaultProfile()
	if input != "" {
		loaded, err := pkgio.ImportProfile(input)
		switch {
		case err == nil:
			p = loaded
		case !derrors.Is(err, derrors.ErrCodeFileNotFound):
			return err
		}
	}
	if output == "" {
		output = input
	}
	if output == "" {
		output = "profile.toml"
	}
	if err := derrors.ValidateProfileFilename(output); err != nil {
		return err
	}

	prog := tea.NewProgram(NewFigureFormModel(p.Figure), tea.WithOutput(os.Stderr))
	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("run form: %w", err)
	}
	m := final.(FigureFormModel)
	if !m.Confirmed {
		printInfo("Cancelled")
		return nil
	}

	p.Figure = m.Options
	if err := pkgio.ExportProfile(p, output); err != nil {
		return err
	}
	printSuccess("Profile saved")
	printFile(output)
	printDetail("%s", p.Figure)
	printNewline()
	printNextStep("Draft", "dressform draft "+output)
	return nil
}
