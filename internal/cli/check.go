package cli

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/foolson/foolson-go"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	RejectSplitStrings bool
	Jobs               int
}

// FileResult is the outcome of checking one file.
type FileResult struct {
	File       string      `json:"file"`
	Valid      bool        `json:"valid"`
	Diagnostic *Diagnostic `json:"diagnostic,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Check that foolson documents are valid",
		Long: `Check that foolson documents are valid.

Each document is converted to JSON and parsed. Directories are searched
recursively for files with the ` + foolson.Extension + ` extension.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.RejectSplitStrings, "reject-split-strings", false, "fail when a line ends inside a quoted string")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of files to check in parallel")

	return cmd
}

// collectFiles expands directories into the foolson files they contain.
func collectFiles(paths []string) ([]string, error) {
	files := []string{}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		found := 0
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(p, foolson.Extension) {
				files = append(files, p)
				found++
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if found == 0 {
			slog.Warn("no foolson files found", "dir", path)
		}
	}
	return files, nil
}

// checkFile returns an error only when the file cannot be read.
func checkFile(path string, opts foolson.Options) (FileResult, error) {
	slog.Debug("checking", "file", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, err
	}
	var value any
	if err := foolson.UnmarshalWithOptions(data, &value, opts); err != nil {
		d := diagnose(path, data, err)
		return FileResult{File: path, Diagnostic: &d}, nil
	}
	return FileResult{File: path, Valid: true}, nil
}

func runCheck(opts *CheckOptions, paths []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	cfg := opts.settings()

	transpileOpts := cfg.Options()
	if cmd.Flags().Changed("reject-split-strings") {
		transpileOpts.RejectSplitStrings = opts.RejectSplitStrings
	}

	files, err := collectFiles(paths)
	if err != nil {
		formatter.Fail(ErrCodeIO, err.Error())
		return reported(ExitCommandError, "failed to find files")
	}

	results := make([]FileResult, len(files))
	g, ctx := errgroup.WithContext(context.Background())
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := checkFile(file, transpileOpts)
			results[i] = result
			return err
		})
	}
	if err := g.Wait(); err != nil {
		formatter.Fail(ErrCodeIO, err.Error())
		return reported(ExitCommandError, "failed to read file")
	}

	invalid := []Diagnostic{}
	for _, result := range results {
		if result.Diagnostic != nil {
			invalid = append(invalid, *result.Diagnostic)
		}
	}

	if formatter.Format == "json" {
		if len(invalid) > 0 {
			formatter.Diagnostics(invalid...)
			return reported(ExitFailure, "invalid documents")
		}
		return formatter.Success(results, "")
	}

	if opts.Verbose {
		for _, result := range results {
			if result.Valid {
				fmt.Fprintln(formatter.Writer, okColor.Sprint("✓ ")+result.File)
			}
		}
	}
	if len(invalid) > 0 {
		formatter.Diagnostics(invalid...)
		fmt.Fprintf(formatter.Writer, "✗ %d of %d file(s) invalid\n", len(invalid), len(results))
		return reported(ExitFailure, "invalid documents")
	}
	return formatter.Success(nil, okColor.Sprintf("✓ %d file(s) valid", len(results)))
}
