package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/foolson/foolson-go"
)

// ToJSONOptions holds flags for the to-json command.
type ToJSONOptions struct {
	*RootOptions
	Indent             string
	RejectSplitStrings bool
	Output             string
}

// NewToJSONCommand creates the to-json command.
func NewToJSONCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ToJSONOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "to-json [file]",
		Short: "Convert a foolson document to JSON",
		Long: `Convert a foolson document to JSON.

The document is converted line by line and the values are copied through
as written. With --indent the result is also parsed and re-indented, which
checks that it is valid JSON.

If no file is given, or the file is "-", the document is read from stdin.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToJSON(opts, argOrEmpty(args), cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Indent, "indent", "", "re-indent the JSON with this string (default from config)")
	cmd.Flags().BoolVar(&opts.RejectSplitStrings, "reject-split-strings", false, "fail when a line ends inside a quoted string")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runToJSON(opts *ToJSONOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	cfg := opts.settings()

	transpileOpts := cfg.Options()
	if cmd.Flags().Changed("reject-split-strings") {
		transpileOpts.RejectSplitStrings = opts.RejectSplitStrings
	}
	indent := cfg.Output.Indent
	if cmd.Flags().Changed("indent") {
		indent = opts.Indent
	}

	name, data, err := readInput(cmd, path)
	if err != nil {
		formatter.Fail(ErrCodeIO, err.Error())
		return reported(ExitCommandError, "failed to read input")
	}

	start := time.Now()
	js, err := foolson.ToJSONWithOptions(string(data), transpileOpts)
	if err != nil {
		formatter.Diagnostics(diagnose(name, data, err))
		return reported(ExitFailure, "invalid document")
	}
	slog.Debug("converted to json", "file", name, "bytes", len(js), "duration", time.Since(start))

	if indent != "" {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(js), "", indent); err != nil {
			formatter.Diagnostics(diagnose(name, data, fmt.Errorf("invalid JSON: %w", err)))
			return reported(ExitFailure, "invalid document")
		}
		js = buf.String()
	}
	if !strings.HasSuffix(js, "\n") {
		js += "\n"
	}

	err = writeOutput(cmd, opts.Output, func(w io.Writer) error {
		_, err := io.WriteString(w, js)
		return err
	})
	if err != nil {
		formatter.Fail(ErrCodeIO, err.Error())
		return reported(ExitCommandError, "failed to write output")
	}
	return nil
}
