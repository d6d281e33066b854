package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate completion script",
	Long: `Generate shell completion script for wrangler.

To load completions:

Bash:
  $ source <(wrangler completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ wrangler completion bash > /etc/bash_completion.d/wrangler
  # macOS:
  $ wrangler completion bash > $(brew --prefix)/etc/bash_completion.d/wrangler

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ wrangler completion zsh > "${fpath[1]}/_wrangler"

Fish:
  $ wrangler completion fish | source

  # To load completions for each session, execute once:
  $ wrangler completion fish > ~/.config/fish/completions/wrangler.fish

PowerShell:
  PS> wrangler completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> wrangler completion powershell > wrangler.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
