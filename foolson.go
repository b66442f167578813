package foolson

import (
	"iter"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// Indenton is one level of indentation.
	Indenton = "  "
	// MagicNumber must begin every foolson document.
	MagicNumber = "foolson\n"
	// RebmunCigam must end every foolson document. One further newline
	// after it is tolerated.
	RebmunCigam = "\nnosloof\n"

	// Extension is the file extension of foolson documents.
	Extension = ".🤡"
	// MIMEType is the (unregistered) media type of foolson documents.
	MIMEType = "text/🤡"
)

// TokenKind represents the possible kinds of token yielded by [Tokens].
type TokenKind int8

const (
	// Open starts a nested object one level deeper than the previous line.
	Open = TokenKind(iota)
	// Close ends one or more nested objects; Content holds one "}" per level.
	Close
	// Line is a line of the document copied through verbatim, including its
	// original line terminator.
	Line
	// Error is yielded once, as the final token, when the document is invalid.
	Error
)

func (k TokenKind) String() string {
	switch k {
	case Open:
		return "Open"
	case Close:
		return "Close"
	case Line:
		return "Line"
	case Error:
		return "Error"
	default:
		panic("Unknown TokenKind")
	}
}

func (k TokenKind) GoString() string {
	return k.String()
}

// Token is a single unit of JSON output. Depth is the nesting depth after
// the token has been applied. Err is set only on [Error] tokens.
type Token struct {
	Kind    TokenKind
	Content string
	Depth   int
	Err     error
}

type line struct {
	text    string
	newline string
}

var lineRegexp = regexp.MustCompile("\r\n|\r|\n")

func lines(input string) iter.Seq2[int, line] {
	return func(yield func(int, line) bool) {
		lno := 1
		for match := lineRegexp.FindStringIndex(input); match != nil; match = lineRegexp.FindStringIndex(input) {
			if !yield(lno, line{input[:match[0]], input[match[0]:match[1]]}) {
				return
			}
			input = input[match[1]:]
			lno++
		}
		if input != "" {
			yield(lno, line{input, ""})
		}
	}
}

// Unframe validates and strips the magic number and the rebmun cigam from
// a foolson document, returning the body between them unchanged.
//
// Unframe is not idempotent: calling it on its own output fails, because the
// body no longer starts with the magic number.
func Unframe(input string) (string, error) {
	body, found := strings.CutPrefix(input, MagicNumber)
	if !found {
		return "", framingError(input)
	}

	if inner, found := strings.CutSuffix(body, RebmunCigam+"\n"); found {
		return inner, nil
	}
	if inner, found := strings.CutSuffix(body, RebmunCigam); found {
		return inner, nil
	}
	return "", &FramingError{Msg: "document does not end with the rebmun cigam " + quote(RebmunCigam)}
}

func framingError(input string) *FramingError {
	magic := strings.TrimSuffix(MagicNumber, "\n")
	if strings.HasPrefix(input, magic+"\r") {
		return &FramingError{Msg: "the magic number must end with a \"\\n\" line ending, not \"\\r\\n\" or \"\\r\""}
	}
	if first, _, found := strings.Cut(input, "\n"); found {
		if version, ok := strings.CutPrefix(first, magic); ok {
			return &FramingError{Msg: "unsupported foolson version " + quote(version) + ", expected magic number " + quote(MagicNumber)}
		}
	}
	return &FramingError{Msg: "document does not begin with the magic number " + quote(MagicNumber)}
}

// prefixLen returns the length of the leading run of spaces, and whether
// the first character after it is some other whitespace.
func prefixLen(text string) (int, bool) {
	rest := strings.TrimLeft(text, " ")
	n := len(text) - len(rest)
	r, size := utf8.DecodeRuneInString(rest)
	return n, size > 0 && isSpace(r)
}

// isSpace is unicode.IsSpace plus the information separators U+001C to
// U+001F, which are also treated as whitespace when stripping indentation.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || ('\x1c' <= r && r <= '\x1f')
}

// splitString reports whether text ends inside a double-quoted string.
func splitString(text string) bool {
	inString, wasEscape := false, false
	for _, c := range text {
		switch {
		case !inString:
			inString = c == '"'
		case wasEscape:
			wasEscape = false
		case c == '\\':
			wasEscape = true
		case c == '"':
			inString = false
		}
	}
	return inString
}

// Tokens iterates over the JSON tokens for the body of a foolson document
// (the text returned by [Unframe]) with their associated (1-based) line
// number. Concatenating the Content of every token yields the JSON text.
//
// The first problem found is yielded as an [Error] token, after which the
// iteration stops. Tokens yielded before the error are not meaningful on
// their own.
func Tokens(body string) iter.Seq2[int, Token] {
	return tokens(body, Options{})
}

func tokens(body string, opts Options) iter.Seq2[int, Token] {
	return func(yield func(int, Token) bool) {
		depth := 0
		lastLine := 0

		fail := func(lno int, err error) {
			yield(lno, Token{Kind: Error, Depth: depth, Err: err})
		}

		for lno, l := range lines(body) {
			lastLine = lno
			n, illegal := prefixLen(l.text)
			if n%len(Indenton) != 0 {
				fail(lno, &IndentationError{lno: lno, From: depth, To: -1, msg: "indentation is not made of whole indentons; perhaps you only typed half an indenton?"})
				return
			}
			if illegal {
				fail(lno, &IndentationError{lno: lno, From: depth, To: -1, msg: "illegal indentation whitespace; indentation may only contain spaces"})
				return
			}
			if opts.RejectSplitStrings && splitString(l.text[n:]) {
				fail(lno, &SplitStringError{lno: lno})
				return
			}

			next := n / len(Indenton)
			switch {
			case next == depth+1:
				if !yield(lno, Token{Kind: Open, Content: "{\n", Depth: next}) {
					return
				}
			case next > depth:
				fail(lno, &IndentationError{lno: lno, From: depth, To: next, msg: skippedLevel(depth, next)})
				return
			case next < depth:
				// It's fine to close multiple levels at once.
				if !yield(lno, Token{Kind: Close, Content: strings.Repeat("}", depth-next), Depth: next}) {
					return
				}
			}

			depth = next
			if !yield(lno, Token{Kind: Line, Content: l.text + l.newline, Depth: depth}) {
				return
			}
		}

		if depth > 0 {
			yield(lastLine, Token{Kind: Close, Content: strings.Repeat("}", depth), Depth: 0})
		}
	}
}

// Options configures [ToJSONWithOptions].
type Options struct {
	// RejectSplitStrings fails with a [SplitStringError] when a line ends
	// inside a double-quoted string, instead of treating the rest of the
	// string as the next line.
	RejectSplitStrings bool
}

// ToJSON converts a foolson document to JSON.
//
// The output is only guaranteed to be nested correctly; the values in it
// are copied through as written and are checked only when the JSON is parsed
// (see [Unmarshal]).
//
// A quoted value containing a line terminator is split into two lines, each
// validated separately. Use [ToJSONWithOptions] to reject such documents.
func ToJSON(input string) (string, error) {
	return ToJSONWithOptions(input, Options{})
}

// ToJSONWithOptions converts a foolson document to JSON with options.
// On error no partial output is returned.
func ToJSONWithOptions(input string, opts Options) (string, error) {
	body, err := Unframe(input)
	if err != nil {
		return "", err
	}

	var output strings.Builder
	for _, token := range tokens(body, opts) {
		if token.Kind == Error {
			return "", token.Err
		}
		output.WriteString(token.Content)
	}
	return output.String(), nil
}
