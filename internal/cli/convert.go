package cli

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/foolson/foolson-go"
	"github.com/foolson/foolson-go/internal/encode"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	To                 string
	Indent             string
	RejectSplitStrings bool
	Output             string
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Decode a foolson document and write it in another format",
		Long: `Decode a foolson document and write the value as JSON, YAML, TOML or
MessagePack.

TOML can only represent documents whose top-level value is an object.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, argOrEmpty(args), cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.To, "to", "t", "", "output format: json, yaml, toml or msgpack (default from config)")
	cmd.Flags().StringVar(&opts.Indent, "indent", "", "JSON indentation (default from config)")
	cmd.Flags().BoolVar(&opts.RejectSplitStrings, "reject-split-strings", false, "fail when a line ends inside a quoted string")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runConvert(opts *ConvertOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	cfg := opts.settings()

	if cmd.Flags().Changed("to") {
		cfg.Output.Format = opts.To
	}
	if cmd.Flags().Changed("indent") {
		cfg.Output.Indent = opts.Indent
	}
	if cmd.Flags().Changed("reject-split-strings") {
		cfg.Transpile.RejectSplitStrings = opts.RejectSplitStrings
	}
	format, err := encode.ParseFormat(cfg.Output.Format)
	if err != nil {
		formatter.Fail(ErrCodeUnsupported, err.Error())
		return reported(ExitCommandError, "invalid flag")
	}
	if format.Binary() && (opts.Output == "" || opts.Output == "-") && isTerminal(cmd.OutOrStdout()) {
		formatter.Fail(ErrCodeUnsupported, "refusing to write "+string(format)+" to a terminal; use --output")
		return reported(ExitCommandError, "invalid flag")
	}

	name, data, err := readInput(cmd, path)
	if err != nil {
		formatter.Fail(ErrCodeIO, err.Error())
		return reported(ExitCommandError, "failed to read input")
	}

	var value any
	if err := foolson.UnmarshalWithOptions(data, &value, cfg.Options()); err != nil {
		formatter.Diagnostics(diagnose(name, data, err))
		return reported(ExitFailure, "invalid document")
	}
	slog.Debug("decoded", "file", name, "format", format)

	var buf bytes.Buffer
	if err := encode.Encode(&buf, value, format, cfg.Output.Indent); err != nil {
		formatter.Fail(ErrCodeUnsupported, err.Error())
		return reported(ExitFailure, "cannot encode document")
	}

	err = writeOutput(cmd, opts.Output, func(w io.Writer) error {
		_, err := buf.WriteTo(w)
		return err
	})
	if err != nil {
		formatter.Fail(ErrCodeIO, err.Error())
		return reported(ExitCommandError, "failed to write output")
	}
	return nil
}
