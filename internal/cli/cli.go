// Package cli implements the diagramlayout command-line interface.
//
// # Commands
//
//   - layout: Compute layouts for diagram files (JSON or YAML)
//   - config: Print the effective configuration as TOML, YAML or JSON
//   - serve: Run the HTTP API
//   - cache: Manage the local layout cache
//   - completion: Generate shell completion scripts
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/diagramlayout/pkg/buildinfo"
	"github.com/matzehuels/diagramlayout/pkg/cache"
	dlio "github.com/matzehuels/diagramlayout/pkg/io"
	"github.com/matzehuels/diagramlayout/pkg/layout"
	"github.com/matzehuels/diagramlayout/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "diagramlayout"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "diagramlayout positions diagrams on a 2D canvas",
		Long: `diagramlayout computes coordinates for flowcharts, sequence, pie, class,
state, Gantt and entity-relationship diagrams. The output is a JSON layout
document that any renderer can draw without further measurement.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the local file cache.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/diagramlayout/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Config Helpers
// =============================================================================

// loadConfig returns the config file at path, or the preset when path is
// empty. dark forces the dark theme on top of either.
func loadConfig(path string, dark bool) (layout.Config, error) {
	if path == "" {
		if dark {
			return layout.DarkConfig(), nil
		}
		return layout.DefaultConfig(), nil
	}
	cfg, err := dlio.ImportConfig(path)
	if err != nil {
		return layout.Config{}, err
	}
	if dark {
		cfg = withDarkColors(cfg)
	}
	return cfg, nil
}

// withDarkColors keeps cfg's dimensions and takes the dark preset's colors.
func withDarkColors(cfg layout.Config) layout.Config {
	d := layout.DarkConfig()
	cfg.Theme = d.Theme
	cfg.BackgroundColor = d.BackgroundColor
	cfg.NodeColor = d.NodeColor
	cfg.NodeBorderColor = d.NodeBorderColor
	cfg.EdgeColor = d.EdgeColor
	cfg.TextColor = d.TextColor
	cfg.ArrowColor = d.ArrowColor
	cfg.LifelineColor = d.LifelineColor
	cfg.SubgraphBorderColor = d.SubgraphBorderColor
	cfg.SubgraphFillColor = d.SubgraphFillColor
	cfg.PieColorPalette = d.PieColorPalette
	cfg.GanttColorPalette = d.GanttColorPalette
	cfg.GanttDoneColor = d.GanttDoneColor
	cfg.GanttActiveColor = d.GanttActiveColor
	cfg.GanttCritColor = d.GanttCritColor
	cfg.GanttCritDoneColor = d.GanttCritDoneColor
	cfg.GanttCritActiveColor = d.GanttCritActiveColor
	cfg.GanttMilestoneColor = d.GanttMilestoneColor
	return cfg
}
