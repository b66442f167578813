// Package cli implements the foolson command.
package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/foolson/foolson-go/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Color      string // "auto" | "on" | "off"
	ConfigPath string

	// Config is loaded before any command runs; nil means the defaults.
	Config *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

func (o *RootOptions) settings() config.Config {
	if o.Config == nil {
		return config.Default()
	}
	return *o.Config
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
	}
}

// NewRootCommand creates the root command for the foolson CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "foolson",
		Short: "Convert foolson documents to JSON",
		Long: `foolson reads documents in the foolson format, where objects are nested
by indentation instead of braces, and converts them to JSON (or any format
a JSON value can be written in).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(opts, cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "diagnostic output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Color, "color", "auto", "colorize output (auto|on|off)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default: nearest "+config.FileName+")")

	cmd.AddCommand(NewToJSONCommand(opts))
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewFromJSONCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

func setup(opts *RootOptions, cmd *cobra.Command) error {
	if !slices.Contains(ValidFormats, opts.Format) {
		return WrapExitError(ExitCommandError, "invalid flag",
			fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	var (
		cfg  config.Config
		path = opts.ConfigPath
		err  error
	)
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, path, err = config.Discover(".")
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if path != "" {
		slog.Debug("loaded config", "path", path)
	}

	if cmd.Flags().Changed("color") {
		cfg.UI.Color = opts.Color
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid flag", err)
	}
	configureColor(cfg.UI.Color, cmd.OutOrStdout(), cmd.ErrOrStderr())

	opts.Config = &cfg
	return nil
}
