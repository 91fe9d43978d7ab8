package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for orgtree.

To install completions:

  Bash (Linux):
    orgtree completion bash | sudo tee /etc/bash_completion.d/orgtree > /dev/null

  Bash (macOS with Homebrew):
    orgtree completion bash > $(brew --prefix)/etc/bash_completion.d/orgtree

  Zsh:
    orgtree completion zsh > "${fpath[1]}/_orgtree"

  Fish:
    orgtree completion fish > ~/.config/fish/completions/orgtree.fish

  PowerShell:
    orgtree completion powershell > orgtree.ps1
    # Then add ". orgtree.ps1" to your PowerShell profile`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		root := cmd.Root()
		switch args[0] {
		case "bash":
			return root.GenBashCompletionV2(out, true)
		case "zsh":
			return root.GenZshCompletion(out)
		case "fish":
			return root.GenFishCompletion(out, true)
		case "powershell":
			return root.GenPowerShellCompletionWithDesc(out)
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
