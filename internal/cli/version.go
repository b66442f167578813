package cli

import (
	"github.com/spf13/cobra"

	"github.com/foolson/foolson-go"
)

// Version is the version of the foolson command.
// It can be overridden at build time via -ldflags.
var Version = "0.1.0-dev"

// VersionInfo is the JSON output of the version command.
type VersionInfo struct {
	Version  string `json:"version"`
	MIMEType string `json:"mime_type"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.formatter(cmd).Success(
				VersionInfo{Version: Version, MIMEType: foolson.MIMEType},
				"foolson "+Version,
			)
		},
	}
}
