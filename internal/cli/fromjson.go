package cli

import (
	"github.com/spf13/cobra"

	"github.com/foolson/foolson-go"
)

// NewFromJSONCommand creates the from-json command, which always fails:
// converting JSON to foolson is not supported.
func NewFromJSONCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "from-json [file]",
		Short:         "Convert JSON to foolson (not supported)",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rootOpts.formatter(cmd)

			_, data, err := readInput(cmd, argOrEmpty(args))
			if err != nil {
				formatter.Fail(ErrCodeIO, err.Error())
				return reported(ExitCommandError, "failed to read input")
			}
			if _, err := foolson.FromJSON(data); err != nil {
				formatter.Fail(errorCode(err), err.Error())
				return reported(ExitCommandError, "unsupported")
			}
			return nil
		},
	}
}
