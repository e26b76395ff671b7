package cli

import (
	"github.com/spf13/cobra"
)

// scheduleExtensions are offered when completing a schedule argument.
var scheduleExtensions = []string{"yaml", "yml", "toml", "json"}

// completeSchedule completes the single schedule-file argument.
func completeSchedule(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return scheduleExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for weekgrid.

Bash:
  $ source <(weekgrid completion bash)

Zsh:
  $ weekgrid completion zsh > "${fpath[1]}/_weekgrid"

Fish:
  $ weekgrid completion fish | source

PowerShell:
  PS> weekgrid completion powershell | Out-String | Invoke-Expression

Schedule arguments complete to .yaml, .yml, .toml and .json files.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(c.Out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(c.Out)
			case "fish":
				return cmd.Root().GenFishCompletion(c.Out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(c.Out)
			}
			return nil
		},
	}

	return cmd
}
