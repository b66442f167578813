// Package config loads the optional .foolson.toml configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/foolson/foolson-go"
	"github.com/foolson/foolson-go/internal/encode"
)

// FileName is the name of the configuration file searched for by [Find].
const FileName = ".foolson.toml"

// ColorModes lists the valid values of ui.color.
var ColorModes = []string{"auto", "on", "off"}

type Config struct {
	Transpile TranspileConfig `toml:"transpile"`
	Output    OutputConfig    `toml:"output"`
	UI        UIConfig        `toml:"ui"`
}

type TranspileConfig struct {
	RejectSplitStrings bool `toml:"reject_split_strings"`
}

type OutputConfig struct {
	Format string `toml:"format"`
	Indent string `toml:"indent"`
}

type UIConfig struct {
	Color string `toml:"color"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Output: OutputConfig{Format: string(encode.JSON)},
		UI:     UIConfig{Color: "auto"},
	}
}

// Options returns the transpiler options selected by the configuration.
func (c Config) Options() foolson.Options {
	return foolson.Options{RejectSplitStrings: c.Transpile.RejectSplitStrings}
}

// Validate checks that every enumerated setting has a known value.
func (c Config) Validate() error {
	if _, err := encode.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if strings.Trim(c.Output.Indent, " \t") != "" {
		return fmt.Errorf("output.indent: must contain only spaces and tabs")
	}
	if !slices.Contains(ColorModes, c.UI.Color) {
		return fmt.Errorf("ui.color: invalid value %q: must be one of %v", c.UI.Color, ColorModes)
	}
	return nil
}

// Find walks up from startDir looking for a configuration file.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads the configuration file at path. Settings missing from the
// file keep their default values; unknown settings are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Config{}, fmt.Errorf("%s: unknown settings: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the nearest configuration file above startDir, or
// returns the default configuration and an empty path if there is none.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}
