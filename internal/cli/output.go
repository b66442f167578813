package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/foolson/foolson-go"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // One or more documents are invalid
	ExitCommandError = 2 // Usage, I/O, or unsupported conversion
)

// Error codes reported in diagnostics.
const (
	ErrCodeFraming     = "E001"
	ErrCodeIndentation = "E002"
	ErrCodeSplitString = "E003"
	ErrCodeUnsupported = "E004"
	ErrCodeJSON        = "E005"
	ErrCodeIO          = "E006"
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error

	// Reported is set when the command has already written the error to
	// its output, so it should not be printed again.
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// reported returns an ExitError for a failure the command has already
// written to its output.
func reported(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message, Reported: true}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitCommandError if the error is not an ExitError: invalid
// documents are always reported as ExitErrors, so anything else is a usage
// error from cobra or a failure to write output.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// Diagnostic describes why a document could not be read.
type Diagnostic struct {
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"` // 1-based, counting the magic number line
	Code    string `json:"code"`
	Message string `json:"message"`

	text   string
	column int
}

var lineBreak = regexp.MustCompile("\r\n|\r|\n")

// diagnose converts an error from the foolson package into a diagnostic
// for the named file.
func diagnose(file string, input []byte, err error) Diagnostic {
	d := Diagnostic{File: file, Code: errorCode(err), Message: err.Error()}

	var lno int
	var indentErr *foolson.IndentationError
	var splitErr *foolson.SplitStringError
	switch {
	case errors.As(err, &indentErr):
		lno, d.Message = indentErr.Lno(), indentErr.Msg()
	case errors.As(err, &splitErr):
		lno, d.Message = splitErr.Lno(), splitErr.Msg()
	default:
		return d
	}

	// Line numbers from the foolson package start after the magic number.
	d.Line = lno + 1
	lines := lineBreak.Split(string(input), -1)
	if d.Line > len(lines) {
		return d
	}
	d.text = lines[d.Line-1]
	if splitErr != nil {
		d.column = len(d.text)
	} else {
		d.column = len(d.text) - len(strings.TrimLeft(d.text, " "))
	}
	return d
}

func errorCode(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, foolson.ErrMalformedFraming):
		return ErrCodeFraming
	case errors.Is(err, foolson.ErrIndentation):
		return ErrCodeIndentation
	case errors.Is(err, foolson.ErrSplitString):
		return ErrCodeSplitString
	case errors.Is(err, foolson.ErrUnsupported):
		return ErrCodeUnsupported
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return ErrCodeJSON
	default:
		return ErrCodeIO
	}
}

var (
	fileColor  = color.New(color.Bold)
	errorColor = color.New(color.FgRed, color.Bold)
	caretColor = color.New(color.FgGreen, color.Bold)
	okColor    = color.New(color.FgGreen)
)

// configureColor enables or disables colored output. In "auto" mode color
// is used only when every writer that colored text goes to is a terminal.
func configureColor(mode string, writers ...io.Writer) {
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = false
		for _, w := range writers {
			if !isTerminal(w) {
				color.NoColor = true
			}
		}
	}
}

var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}


func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

// String renders the diagnostic as text, followed by the offending line
// and a caret when the line is known.
func (d Diagnostic) String() string {
	var b strings.Builder
	location := d.File
	if d.Line > 0 {
		location = fmt.Sprintf("%s:%d", d.File, d.Line)
	}
	if location != "" {
		b.WriteString(fileColor.Sprint(location) + ": ")
	}
	b.WriteString(errorColor.Sprintf("error[%s]", d.Code) + ": " + d.Message + "\n")
	if d.Line > 0 && d.text != "" {
		width := runewidth.StringWidth(expandTabs(d.text[:d.column]))
		b.WriteString("  | " + expandTabs(d.text) + "\n")
		b.WriteString("  | " + strings.Repeat(" ", width) + caretColor.Sprint("^") + "\n")
	}
	return b.String()
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Diagnostics in text mode go here
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (f *OutputFormatter) errWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any, text string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	if text != "" {
		fmt.Fprintln(f.Writer, text)
	}
	return nil
}

// Diagnostics outputs diagnostics for one or more failed documents.
func (f *OutputFormatter) Diagnostics(ds ...Diagnostic) error {
	if f.Format == "json" {
		if len(ds) == 1 {
			return json.NewEncoder(f.Writer).Encode(CLIResponse{
				Status: "error",
				Error:  &CLIError{Code: ds[0].Code, Message: ds[0].Message, Details: ds[0]},
			})
		}
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: ds[0].Code, Message: fmt.Sprintf("%d documents are invalid", len(ds)), Details: ds},
		})
	}
	for _, d := range ds {
		fmt.Fprint(f.errWriter(), d.String())
	}
	return nil
}

// Fail reports a single error that is not about a document's contents.
func (f *OutputFormatter) Fail(code, message string) error {
	return f.Diagnostics(Diagnostic{Code: code, Message: message})
}
