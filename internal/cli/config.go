package cli

import (
	"github.com/spf13/cobra"

	dlio "github.com/matzehuels/diagramlayout/pkg/io"
)

// configCommand creates the config command, which prints the effective
// configuration. Its output is a valid --config file.
func (c *CLI) configCommand() *cobra.Command {
	var (
		configPath string
		format     string
		dark       bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective layout configuration",
		Long: `Print the effective layout configuration.

Without flags this is the default preset. Use it as a starting point for a
configuration file:

  diagramlayout config --format toml > diagram.toml
  diagramlayout layout --config diagram.toml flow.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := dlio.ParseFormat(format)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(configPath, dark)
			if err != nil {
				return err
			}
			return dlio.WriteConfig(cmd.OutOrStdout(), cfg, f)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file to merge onto the preset")
	cmd.Flags().StringVarP(&format, "format", "f", "toml", "output format: toml, yaml, json")
	cmd.Flags().BoolVar(&dark, "dark", false, "use the dark color theme")
	_ = cmd.RegisterFlagCompletionFunc("config", completeFiles(configExts))
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"toml", "yaml", "json"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
