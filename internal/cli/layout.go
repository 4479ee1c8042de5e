package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diagramlayout/pkg/errors"
	dlio "github.com/matzehuels/diagramlayout/pkg/io"
)

// layoutOptions holds the flags of the layout command.
type layoutOptions struct {
	output     string
	configPath string
	dark       bool
	noCache    bool
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var opts layoutOptions

	cmd := &cobra.Command{
		Use:   "layout [diagram.json|diagram.yaml]...",
		Short: "Compute layouts for diagram files",
		Long: `Compute layouts for diagram files.

Each input is a diagram document in JSON or YAML. The layout is written next
to it as <input>.layout.json unless --output is given; "--output -" writes
the layout to stdout. Several inputs can be laid out in one run when no
--output is set.

Settings come from the default preset, --dark, or a TOML/YAML/JSON file
passed with --config. Results are cached locally for faster subsequent runs.`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeFiles(diagramExts),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return c.runLayout(ctx, cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file (default: <input>.layout.json, "-" for stdout)`)
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "configuration file (.toml, .yaml, .json)")
	cmd.Flags().BoolVar(&opts.dark, "dark", false, "use the dark color theme")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	_ = cmd.RegisterFlagCompletionFunc("config", completeFiles(configExts))

	return cmd
}

// runLayout lays out every input and writes the results.
func (c *CLI) runLayout(ctx context.Context, stdout io.Writer, inputs []string, opts layoutOptions) error {
	if opts.output != "" && len(inputs) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "--output takes a single input, got %d", len(inputs))
	}

	cfg, err := loadConfig(opts.configPath, opts.dark)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	toStdout := opts.output == "-"
	prog := newProgress(c.Logger)

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}

		d, err := dlio.ImportDiagram(input)
		if err != nil {
			return err
		}
		res, err := runner.Layout(ctx, d, cfg)
		if err != nil {
			return fmt.Errorf("layout %s: %w", input, err)
		}

		if toStdout {
			if err := dlio.WriteLayout(stdout, res.Layout); err != nil {
				return err
			}
			continue
		}

		path := layoutPath(input, opts.output)
		if err := dlio.ExportLayout(res.Layout, path); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printSuccess("Laid out %s", input)
		printFile(path)
		printStats(string(res.Layout.Kind()), res.Layout.Canvas().Width, res.Layout.Canvas().Height, res.Hit)
	}

	prog.done(fmt.Sprintf("Laid out %d diagram(s)", len(inputs)))
	return nil
}

// layoutPath returns output, or <input without extension>.layout.json.
func layoutPath(input, output string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
}
