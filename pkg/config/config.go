// Package config loads workspace configuration for devtool using koanf.
// Configuration is layered: built-in defaults, then an optional
// devtool.toml in the workspace, then DEVTOOL_* environment variables.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/bitbakery/devtool/pkg/errors"
)

// EnvPrefix is the prefix for environment variable overrides,
// e.g. DEVTOOL_BITBAKE_COMMAND overrides bitbake.command
const EnvPrefix = "DEVTOOL_"

// BitBake holds settings for invoking the external build system
type BitBake struct {
	// Command is the bitbake executable name or path
	Command string `koanf:"command"`

	// GetVarCommand is the executable used for recipe variable lookups
	GetVarCommand string `koanf:"getvar_command"`
}

// TestImage holds settings for the on-target test run
type TestImage struct {
	// Task is the BitBake task that executes the image test suite
	Task string `koanf:"task"`
}

// Config is the resolved devtool configuration
type Config struct {
	BitBake   BitBake   `koanf:"bitbake"`
	TestImage TestImage `koanf:"testimage"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"bitbake.command":        "bitbake",
		"bitbake.getvar_command": "bitbake-getvar",
		"testimage.task":         "testimage",
	}
}

// Load resolves the configuration for the given workspace config file.
// A missing config file is not an error; defaults and environment
// overrides still apply.
func Load(configFile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse,
					"failed to load config from %s", configFile)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(
			strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}

	return &cfg, nil
}
