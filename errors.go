package foolson

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors, for use with [errors.Is].
var (
	// ErrMalformedFraming is matched by every [FramingError].
	ErrMalformedFraming = errors.New("malformed framing")

	// ErrIndentation is matched by every [IndentationError].
	ErrIndentation = errors.New("invalid indentation")

	// ErrSplitString is matched by every [SplitStringError].
	ErrSplitString = errors.New("string split across lines")

	// ErrUnsupported is matched by every [UnsupportedError].
	ErrUnsupported = errors.New("unsupported")
)

func quote(s string) string {
	return strconv.Quote(s)
}

// A FramingError is returned when the magic number or the rebmun cigam
// is missing or incorrect.
type FramingError struct {
	Msg string
}

func (fe *FramingError) Error() string {
	return fe.Msg
}

func (fe *FramingError) Is(target error) bool {
	return target == ErrMalformedFraming
}

// An IndentationError is returned for a line whose indentation is not a
// whole number of indentons, contains whitespace other than spaces, or is
// more than one level deeper than the line before it.
type IndentationError struct {
	// From is the depth of the previous line.
	From int
	// To is the depth of the offending line, or -1 if the line's
	// indentation could not be measured.
	To int

	lno int
	msg string
}

// Lno returns the 1-indexed line number of the offending line, counted
// from the line after the magic number.
func (ie *IndentationError) Lno() int {
	return ie.lno
}

// Msg returns a human-readable description of the problem.
func (ie *IndentationError) Msg() string {
	return ie.msg
}

// Error implements the error interface
func (ie *IndentationError) Error() string {
	return fmt.Sprintf("%d: %s", ie.Lno(), ie.Msg())
}

func (ie *IndentationError) Is(target error) bool {
	return target == ErrIndentation
}

func skippedLevel(from, to int) string {
	return fmt.Sprintf("skipped a level; the indenton level went from %d to %d, but may only increase by one at a time", from, to)
}

// A SplitStringError is returned by [ToJSONWithOptions] with
// RejectSplitStrings set, for a line that ends inside a quoted string.
type SplitStringError struct {
	lno int
}

// Lno returns the 1-indexed line number of the offending line.
func (se *SplitStringError) Lno() int {
	return se.lno
}

// Msg returns a human-readable description of the problem.
func (se *SplitStringError) Msg() string {
	return "line ends inside a quoted string; strings may not contain line breaks"
}

// Error implements the error interface
func (se *SplitStringError) Error() string {
	return fmt.Sprintf("%d: %s", se.Lno(), se.Msg())
}

func (se *SplitStringError) Is(target error) bool {
	return target == ErrSplitString
}

// An UnsupportedError is returned by conversions that produce foolson;
// only reading foolson is implemented.
type UnsupportedError struct {
	Direction Direction
	Msg       string
}

func (ue *UnsupportedError) Error() string {
	return ue.Direction.String() + ": " + ue.Msg
}

func (ue *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}
