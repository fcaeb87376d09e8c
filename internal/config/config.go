// Package config loads cmd/cfgparse's optional defaults file.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds the CLI's persisted defaults, loaded from .cfgparse.toml.
type Config struct {
	// TraceLevel is one of "debug", "info", "error".
	TraceLevel string `toml:"trace_level"`

	// Color toggles pterm's colored output in print/print-normalized.
	Color bool `toml:"color"`

	// GrammarFile is the default grammar source for the --grammar flag,
	// when the flag is not given.
	GrammarFile string `toml:"grammar_file"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{TraceLevel: "info", Color: true}
}

// Load reads and parses path. A missing file is not an error: Default() is
// returned instead, matching the CLI's "config is optional" contract.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "config: reading %q", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "config: parsing %q", path)
	}
	return cfg, nil
}
