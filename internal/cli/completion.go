package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dressform/pkg/draft"
	"github.com/matzehuels/dressform/pkg/pipeline"
	"github.com/matzehuels/dressform/pkg/render/pattern/sink"
	"github.com/matzehuels/dressform/pkg/render/pattern/tile"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for dressform.

To load completions:

Bash:
  $ source <(dressform completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ dressform completion bash > /etc/bash_completion.d/dressform
  # macOS:
  $ dressform completion bash > $(brew --prefix)/etc/bash_completion.d/dressform

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ dressform completion zsh > "${fpath[1]}/_dressform"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ dressform completion fish | source

  # To load completions for each session, execute once:
  $ dressform completion fish > ~/.config/fish/completions/dressform.fish

PowerShell:
  PS> dressform completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> dressform completion powershell > dressform.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// completeProfiles completes profile file arguments.
func completeProfiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"toml", "json"}, cobra.ShellCompDirectiveFilterFileExt
}

// registerRenderCompletions completes the render flags a command defines.
func registerRenderCompletions(cmd *cobra.Command) {
	fixed := map[string][]string{
		"style":  sink.StyleNames,
		"paper":  tile.PaperNames(),
		"split":  draft.DartSplitNames(),
		"format": {"svg", "png", "pdf", "dxf", "json", "pages"},
		"piece":  {pipeline.PieceBodice, pipeline.PieceSleeve},
	}
	for name, values := range fixed {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
	}
}
