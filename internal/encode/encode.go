// Package encode writes decoded foolson values in other interchange formats.
package encode

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format names an output format.
type Format string

const (
	JSON    Format = "json"
	YAML    Format = "yaml"
	TOML    Format = "toml"
	MsgPack Format = "msgpack"
)

// Formats lists the supported output formats.
var Formats = []Format{JSON, YAML, TOML, MsgPack}

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	if slices.Contains(Formats, Format(s)) {
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q: must be one of %v", s, Formats)
}

// Binary reports whether the format's output is not text.
func (f Format) Binary() bool {
	return f == MsgPack
}

// Encode writes v to w in format f. Indent is used for JSON only;
// an empty indent writes compact JSON.
func Encode(w io.Writer, v any, f Format, indent string) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", indent)
		return enc.Encode(v)

	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()

	case TOML:
		if _, ok := v.(map[string]any); !ok {
			return fmt.Errorf("toml: top-level value must be an object, not %s", kind(v))
		}
		return toml.NewEncoder(w).Encode(v)

	case MsgPack:
		enc := msgpack.NewEncoder(w)
		enc.SetSortMapKeys(true)
		return enc.Encode(v)

	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

func kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "an array"
	case string:
		return "a string"
	case float64:
		return "a number"
	case bool:
		return "a boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
