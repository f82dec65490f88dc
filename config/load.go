package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
)

// EnvPrefix prefixes every environment variable the config is read from.
const EnvPrefix = "SMOL_"

// PathEnv names the variable pointing at an optional JSON config file.
const PathEnv = EnvPrefix + "CONFIG"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Load reads the JSON file at path over the defaults. Missing keys keep their default
// values. Durations are given in nanoseconds.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	if err = json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config file %s", path)
	}

	return cfg, nil
}

// FromEnv overrides the config values with SMOL_* environment variables, e.g.
// SMOL_ADDR or SMOL_NET_READ_TIMEOUT=30s. Unset variables leave values intact.
func FromEnv(cfg *Config) (*Config, error) {
	err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}

	return cfg, nil
}

// Resolve builds the config the way the server binary does: defaults, then the file
// named by SMOL_CONFIG if it is set, then the environment.
func Resolve() (*Config, error) {
	cfg := Default()

	if path, ok := os.LookupEnv(PathEnv); ok && len(path) > 0 {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}

	return FromEnv(cfg)
}
