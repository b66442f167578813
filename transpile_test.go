package foolson_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foolson/foolson-go"
)

func frame(body string) string {
	return foolson.MagicNumber + body + foolson.RebmunCigam
}

func TestUnframe(t *testing.T) {
	body, err := foolson.Unframe("foolson\n  \"a\": 1\nnosloof\n")
	require.NoError(t, err)
	assert.Equal(t, "  \"a\": 1", body)

	body, err = foolson.Unframe("foolson\n  \"a\": 1\nnosloof\n\n")
	require.NoError(t, err)
	assert.Equal(t, "  \"a\": 1", body)

	_, err = foolson.Unframe("foolson\n  \"a\": 1\nnosloof\n\n\n")
	assert.ErrorIs(t, err, foolson.ErrMalformedFraming)
}

func TestUnframeTwice(t *testing.T) {
	once, err := foolson.Unframe(frame(frame("  \"a\": 1")))
	require.NoError(t, err)
	assert.Equal(t, frame("  \"a\": 1"), once)

	body, err := foolson.Unframe(frame("  \"a\": 1"))
	require.NoError(t, err)

	_, err = foolson.Unframe(body)
	assert.ErrorIs(t, err, foolson.ErrMalformedFraming)
}

func TestMissingMarkers(t *testing.T) {
	for name, input := range map[string]string{
		"no magic number":     "  \"a\": 1\nnosloof\n",
		"no rebmun cigam":     "foolson\n  \"a\": 1\n",
		"rebmun cigam inline": "foolson\n  \"a\": 1 nosloof\n",
		"magic number inline": "foolson  \"a\": 1\nnosloof\n",
		"version tag":         "foolson1\n  \"a\": 1\nnosloof\n",
		"empty":               "",
		"only magic number":   "foolson\n",
		"no body separator":   "foolson\nnosloof\n",
	} {
		t.Run(name, func(t *testing.T) {
			out, err := foolson.ToJSON(input)
			assert.ErrorIs(t, err, foolson.ErrMalformedFraming)
			assert.Empty(t, out)

			var framingErr *foolson.FramingError
			assert.ErrorAs(t, err, &framingErr)
		})
	}
}

func TestMagicNumberLineEnding(t *testing.T) {
	for name, input := range map[string]string{
		"crlf": "foolson\r\n  \"a\": 1\r\nnosloof\r\n",
		"cr":   "foolson\r  \"a\": 1\rnosloof\r",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := foolson.ToJSON(input)
			var framingErr *foolson.FramingError
			require.ErrorAs(t, err, &framingErr)
			assert.Contains(t, framingErr.Msg, "line ending")
			assert.NotContains(t, framingErr.Msg, "version")
		})
	}

	_, err := foolson.ToJSON("foolson2\n  \"a\": 1\nnosloof\n")
	assert.ErrorContains(t, err, `unsupported foolson version "2"`)
}

func TestEmptyBody(t *testing.T) {
	out, err := foolson.ToJSON("foolson\n\nnosloof\n")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestHalfIndenton(t *testing.T) {
	for lno := 1; lno <= 4; lno++ {
		t.Run(fmt.Sprint(lno), func(t *testing.T) {
			lines := []string{`  "a": 1,`, `  "b": 2,`, `  "c": 3,`, `  "d": 4`}
			lines[lno-1] = " " + lines[lno-1]

			out, err := foolson.ToJSON(frame(strings.Join(lines, "\n")))
			require.ErrorIs(t, err, foolson.ErrIndentation)
			assert.Empty(t, out)

			var indentErr *foolson.IndentationError
			require.ErrorAs(t, err, &indentErr)
			assert.Equal(t, lno, indentErr.Lno())
			assert.Contains(t, indentErr.Msg(), "half an indenton")
		})
	}
}

func TestIllegalWhitespace(t *testing.T) {
	for name, prefix := range map[string]string{
		"tab":            "\t",
		"spaces tab":     "  \t",
		"vertical tab":   "  \v",
		"form feed":      "\f",
		"no-break":       "  \u00a0",
		"ideographic":    "\u3000",
		"tab in spaces":  "\t  ",
		"file separator": "\x1c",
		"unit separator": "  \x1f",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := foolson.ToJSON(frame("  \"a\":\n" + prefix + "  \"b\": 1"))
			var indentErr *foolson.IndentationError
			require.ErrorAs(t, err, &indentErr)
			assert.Equal(t, 2, indentErr.Lno())
			assert.Contains(t, indentErr.Msg(), "illegal indentation whitespace")
		})
	}
}

func TestWhitespaceAfterPrefix(t *testing.T) {
	out, err := foolson.ToJSON(frame("  \"a\":\t\"b\"\v"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\":\t\"b\"\v}", out)
}

func TestSkippedLevel(t *testing.T) {
	_, err := foolson.ToJSON(frame("  \"a\":\n    \"b\":\n          \"c\": 1"))
	var indentErr *foolson.IndentationError
	require.ErrorAs(t, err, &indentErr)
	assert.Equal(t, 3, indentErr.Lno())
	assert.Equal(t, 2, indentErr.From)
	assert.Equal(t, 5, indentErr.To)
	assert.Contains(t, indentErr.Error(), "from 2 to 5")
	assert.Contains(t, indentErr.Error(), "skipped a level")
}

func TestFlush(t *testing.T) {
	for depth := 1; depth <= 6; depth++ {
		t.Run(fmt.Sprint(depth), func(t *testing.T) {
			lines := []string{}
			for d := 1; d <= depth; d++ {
				lines = append(lines, strings.Repeat(foolson.Indenton, d)+fmt.Sprintf(`"k%d":`, d))
			}
			lines = append(lines, strings.Repeat(foolson.Indenton, depth)+`"leaf": true`)

			out, err := foolson.ToJSON(frame(strings.Join(lines, "\n")))
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(out, `"leaf": true`+strings.Repeat("}", depth)))
			assert.Equal(t, depth, strings.Count(out, "{"))
			assert.Equal(t, depth, strings.Count(out, "}"))
		})
	}
}

func TestScenarios(t *testing.T) {
	t.Run("top level line", func(t *testing.T) {
		out, err := foolson.ToJSON("foolson\n\"a\": \"b\"\nnosloof\n")
		require.NoError(t, err)
		assert.Equal(t, `"a": "b"`, out)

		_, err = foolson.Decode([]byte("foolson\n\"a\": \"b\"\nnosloof\n"))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, foolson.ErrIndentation)
	})

	t.Run("one level", func(t *testing.T) {
		input := "foolson\n  \"a\":\n    \"b\": \"c\"\nnosloof\n"
		out, err := foolson.ToJSON(input)
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"a\":\n{\n    \"b\": \"c\"}}", out)

		value, err := foolson.Decode([]byte(input))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": map[string]any{"b": "c"}}, value)
	})

	t.Run("multi-level close", func(t *testing.T) {
		out, err := foolson.ToJSON(frame("  \"a\":\n    \"b\":\n      \"c\": 1\n  ,\"d\": 2"))
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"a\":\n{\n    \"b\":\n{\n      \"c\": 1\n}}  ,\"d\": 2}", out)
	})
}

func TestBlankLineClosesObjects(t *testing.T) {
	// Blank lines are at depth 0, like any other line.
	out, err := foolson.ToJSON(frame("  \"a\": 1\n\n  \"b\": 2"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}\n{\n  \"b\": 2}", out)
}

func TestSplitStrings(t *testing.T) {
	input := frame("  \"a\": \"one\n  two\"")

	out, err := foolson.ToJSON(input)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": \"one\n  two\"}", out)

	out, err = foolson.ToJSONWithOptions(input, foolson.Options{RejectSplitStrings: true})
	require.ErrorIs(t, err, foolson.ErrSplitString)
	assert.Empty(t, out)
	var splitErr *foolson.SplitStringError
	require.True(t, errors.As(err, &splitErr))
	assert.Equal(t, 1, splitErr.Lno())
	assert.Equal(t, "1: line ends inside a quoted string; strings may not contain line breaks", err.Error())
}

func TestSplitStringsEscapes(t *testing.T) {
	opts := foolson.Options{RejectSplitStrings: true}
	for name, body := range map[string]string{
		"escaped quote":     `  "a": "say \"hi\""`,
		"escaped backslash": `  "a": "c:\\"`,
		"unicode":           `  "🤡": "\u00e9"`,
		"two strings":       `  "a": ["x", "y"]`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := foolson.ToJSONWithOptions(frame(body), opts)
			assert.NoError(t, err)
		})
	}

	_, err := foolson.ToJSONWithOptions(frame(`  "a": "ends in \"`), opts)
	assert.ErrorIs(t, err, foolson.ErrSplitString)
}

func TestGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, name := range []string{"glossary", "menu"} {
		t.Run(name, func(t *testing.T) {
			input, err := readFixture(name)
			require.NoError(t, err)

			out, err := foolson.ToJSON(input)
			require.NoError(t, err)
			g.Assert(t, name, []byte(out))
		})
	}
}
