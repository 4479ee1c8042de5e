package cli

import (
	"io"
	"slices"
	"sort"

	"github.com/spf13/cobra"
)

// diagramExts and configExts filter file completion for layout inputs and
// --config values.
var (
	diagramExts = []string{"json", "yaml", "yml"}
	configExts  = []string{"toml", "yaml", "yml", "json"}
)

var completionScripts = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        (*cobra.Command).GenZshCompletion,
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": (*cobra.Command).GenPowerShellCompletionWithDesc,
}

// completionCommand prints a shell completion script.
func (c *CLI) completionCommand() *cobra.Command {
	shells := make([]string, 0, len(completionScripts))
	for name := range completionScripts {
		shells = append(shells, name)
	}
	sort.Strings(shells)

	return &cobra.Command{
		Use:   "completion [bash|fish|powershell|zsh]",
		Short: "Print a shell completion script",
		Long: `Print a shell completion script for diagramlayout.

Besides subcommands and flags, the script completes diagram files
(.json, .yaml, .yml) for "layout", configuration files for --config, and
output formats for "config --format".

  bash:        source <(diagramlayout completion bash)
  zsh:         diagramlayout completion zsh > "${fpath[1]}/_diagramlayout"
  fish:        diagramlayout completion fish | source
  powershell:  diagramlayout completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionScripts[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// completeFiles returns a completion function offering files with one of
// the given extensions.
func completeFiles(exts []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	exts = slices.Clone(exts)
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return exts, cobra.ShellCompDirectiveFilterFileExt
	}
}
