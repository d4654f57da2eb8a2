// Package cli implements the chrono command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tOgg1/chrono/internal/archive"
	"github.com/tOgg1/chrono/internal/config"
	"github.com/tOgg1/chrono/internal/logging"
	"github.com/tOgg1/chrono/internal/timeline"
)

// Execute runs the root command.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

// options carries the persistent flags and the configuration they resolve to.
type options struct {
	configFile string
	dataPath   string
	source     string
	logLevel   string

	cfg *config.Config
}

func newRootCmd(version string) *cobra.Command {
	opts := &options{}
	ui := &uiOptions{}

	cmd := &cobra.Command{
		Use:   "chrono [link]",
		Short: "Browse a dated archive as a terminal timeline",
		Long: "chrono lays out books, broadcasts, articles and events chronologically,\n" +
			"grouped by decade, with search, type filters and shareable deep links.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, opts, ui, args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/chrono/config.yaml)")
	flags.StringVar(&opts.dataPath, "data", "", "dataset: JSON file, or database with --source sqlite")
	flags.StringVar(&opts.source, "source", "", "dataset source: file|sqlite")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug|info|warn|error")
	bindUIFlags(cmd, ui)

	cmd.AddCommand(
		newUICmd(opts),
		newRowsCmd(opts),
		newDecadesCmd(opts),
		newImportCmd(opts),
	)
	return cmd
}

// load resolves configuration: defaults < config file < env < flags.
func (o *options) load(cmd *cobra.Command) error {
	loader := config.NewLoader()
	if o.configFile != "" {
		loader.SetConfigFile(o.configFile)
	}
	changed := cmd.Flags().Changed
	if changed("source") {
		loader.Set("data.source", strings.TrimSpace(o.source))
	}
	if changed("log-level") {
		loader.Set("logging.level", strings.TrimSpace(o.logLevel))
	}
	if changed("theme") {
		theme, _ := cmd.Flags().GetString("theme")
		loader.Set("tui.theme", strings.TrimSpace(theme))
	}
	if changed("compact") {
		compact, _ := cmd.Flags().GetBool("compact")
		loader.Set("tui.compact", compact)
	}

	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	if changed("data") {
		path, err := filepath.Abs(strings.TrimSpace(o.dataPath))
		if err != nil {
			return fmt.Errorf("resolve --data: %w", err)
		}
		if cfg.Data.Source == config.SourceSQLite {
			cfg.Data.Database = path
		} else {
			cfg.Data.Path = path
		}
	}
	o.cfg = cfg
	return nil
}

// initLogging configures the global logger. TUI runs log to the configured file
// since the terminal belongs to the interface.
func (o *options) initLogging(toFile bool) (io.Closer, error) {
	logCfg := logging.Config{
		Level:        o.cfg.Logging.Level,
		Format:       o.cfg.Logging.Format,
		Output:       os.Stderr,
		EnableCaller: o.cfg.Logging.EnableCaller,
	}
	if !toFile {
		logging.Init(logCfg)
		return io.NopCloser(nil), nil
	}
	out, err := logging.OpenFile(o.cfg.Logging.File)
	if err != nil {
		return nil, err
	}
	logCfg.Output = out
	logging.Init(logCfg)
	return out, nil
}

// loadItems opens the configured source and loads the normalized dataset.
func (o *options) loadItems(ctx context.Context) ([]timeline.Item, error) {
	source, err := archive.OpenSource(o.cfg.Data)
	if err != nil {
		return nil, err
	}
	defer source.Close()
	return source.Load(ctx)
}
