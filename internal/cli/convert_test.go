package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

const convertInput = "foolson\n  \"name\": \"menu\",\n  \"popup\":\n    \"items\": [\"open\", \"close\"]\nnosloof\n"

func TestConvertJSON(t *testing.T) {
	res := execute(NewConvertCommand(&RootOptions{Format: "text"}), convertInput)
	require.NoError(t, res.err)
	assert.Equal(t, `{"name":"menu","popup":{"items":["open","close"]}}`+"\n", res.stdout)
}

func TestConvertYAML(t *testing.T) {
	res := execute(NewConvertCommand(&RootOptions{Format: "text"}), convertInput, "--to", "yaml")
	require.NoError(t, res.err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, map[string]any{
		"name":  "menu",
		"popup": map[string]any{"items": []any{"open", "close"}},
	}, got)
}

func TestConvertTOML(t *testing.T) {
	res := execute(NewConvertCommand(&RootOptions{Format: "text"}), convertInput, "-t", "toml")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `name = "menu"`)
	assert.Contains(t, res.stdout, "[popup]")

	res = execute(NewConvertCommand(&RootOptions{Format: "text"}), "foolson\n[1, 2]\nnosloof\n", "-t", "toml")
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, GetExitCode(res.err))
	assert.Contains(t, res.stderr, "must be an object")
}

func TestConvertMsgPack(t *testing.T) {
	res := execute(NewConvertCommand(&RootOptions{Format: "text"}), convertInput, "--to", "msgpack")
	require.NoError(t, res.err)

	var got map[string]any
	require.NoError(t, msgpack.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, "menu", got["name"])
}

func TestConvertUnknownFormat(t *testing.T) {
	res := execute(NewConvertCommand(&RootOptions{Format: "text"}), convertInput, "--to", "xml")
	require.Error(t, res.err)
	assert.Equal(t, ExitCommandError, GetExitCode(res.err))
	assert.Contains(t, res.stderr, `unknown format "xml"`)
}

func TestConvertInvalidJSON(t *testing.T) {
	res := execute(NewConvertCommand(&RootOptions{Format: "text"}), "foolson\n  \"a\": tru\nnosloof\n")
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, GetExitCode(res.err))
	assert.Contains(t, res.stderr, "error[E005]")
}
