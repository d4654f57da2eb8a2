package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tOgg1/chrono/internal/archive"
	"github.com/tOgg1/chrono/internal/config"
	"github.com/tOgg1/chrono/internal/logging"
	"github.com/tOgg1/chrono/internal/timeline"
	"github.com/tOgg1/chrono/internal/tui"
)

type uiOptions struct {
	anchor  string
	compact bool
	theme   string
}

// PreflightError is returned when a command cannot run in the current environment.
type PreflightError struct {
	Message string
	Hint    string
}

func (e *PreflightError) Error() string {
	if e.Hint == "" {
		return e.Message
	}
	return e.Message + " (" + e.Hint + ")"
}

func bindUIFlags(cmd *cobra.Command, ui *uiOptions) {
	cmd.Flags().StringVar(&ui.anchor, "anchor", "", "start at this anchor (overrides the restored position)")
	cmd.Flags().BoolVar(&ui.compact, "compact", false, "start in compact mode")
	cmd.Flags().StringVar(&ui.theme, "theme", config.ThemeDefault, "theme: default|high-contrast")
}

func newUICmd(opts *options) *cobra.Command {
	ui := &uiOptions{}
	cmd := &cobra.Command{
		Use:   "ui [link]",
		Short: "Launch the timeline TUI",
		Long: "Launch the interactive timeline. A link (#anchor, anchor or\n" +
			"chrono://timeline#anchor) opens the timeline at that record.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, opts, ui, args)
		},
	}
	bindUIFlags(cmd, ui)
	return cmd
}

func runUI(cmd *cobra.Command, opts *options, ui *uiOptions, args []string) error {
	if !hasTTY() {
		return &PreflightError{
			Message: "chrono ui requires an interactive terminal",
			Hint:    "use `chrono rows` for plain output",
		}
	}
	if err := opts.cfg.EnsureDirectories(); err != nil {
		return err
	}
	logFile, err := opts.initLogging(true)
	if err != nil {
		return err
	}
	defer logFile.Close()

	source, err := archive.OpenSource(opts.cfg.Data)
	if err != nil {
		return err
	}
	defer source.Close()

	tuiCfg, err := buildTUIConfig(opts.cfg, ui, args, cmd.Flags().Changed("theme"))
	if err != nil {
		return err
	}
	tuiCfg.Source = source
	return tui.Run(tuiCfg)
}

// buildTUIConfig maps configuration, flags and the optional link argument onto
// the TUI config. The positional link wins over --anchor.
func buildTUIConfig(cfg *config.Config, ui *uiOptions, args []string, themeFlag bool) (tui.Config, error) {
	anchor := strings.TrimSpace(ui.anchor)
	if len(args) > 0 {
		parsed, ok := timeline.ParseLink(args[0])
		if !ok {
			return tui.Config{}, fmt.Errorf("invalid link %q", args[0])
		}
		anchor = parsed
	}

	label := cfg.Data.Path
	watchPath := ""
	switch cfg.Data.Source {
	case config.SourceSQLite:
		label = cfg.Data.Database
	case config.SourceFile:
		if cfg.Data.Watch {
			watchPath = cfg.Data.Path
		}
	}

	log := logging.Component("cli")
	return tui.Config{
		SourceLabel: label,
		WatchPath:   watchPath,
		Theme:       cfg.TUI.Theme,
		ForceTheme:  themeFlag,
		Compact:     cfg.TUI.Compact,
		Anchor:      anchor,
		StatePath:   cfg.State.Path,
		Estimates: timeline.Estimates{
			Item:        cfg.TUI.Estimates.Item,
			ItemCompact: cfg.TUI.Estimates.ItemCompact,
			Header:      cfg.TUI.Estimates.Header,
		},
		Overscan:          cfg.TUI.Overscan,
		SmoothScroll:      cfg.TUI.SmoothScroll,
		TwoColumnMinWidth: cfg.TUI.TwoColumnMinWidth,
		OnOpen: func(item timeline.Item) {
			log.Info().Str("anchor", item.AnchorID).Str("title", item.Title).Msg("item opened")
		},
	}, nil
}

func hasTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
