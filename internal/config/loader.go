package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "BOOST_"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if BOOST_CONFIG is set
//  3. env (prefix BOOST_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// BOOST_MONGO_URI -> mongo_uri. Keys stay flat so underscores survive.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.WinsCollection == "" || c.ClaimsCollection == "":
		return fmt.Errorf("%w: collection names must not be empty", ErrInvalidConfig)
	case c.WinsCollection == c.ClaimsCollection:
		return fmt.Errorf("%w: wins and claims must live in different collections", ErrInvalidConfig)
	}

	switch c.QueryMode {
	case QueryModePipeline, QueryModeSplit:
	default:
		return fmt.Errorf("%w: unknown query_mode %q", ErrInvalidConfig, c.QueryMode)
	}

	switch c.Store {
	case StoreMongo:
		if c.MongoURI == "" || c.Database == "" {
			return fmt.Errorf("%w: mongo store needs mongo_uri and database", ErrInvalidConfig)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	}

	if c.ConnectTimeoutMS < 0 {
		return fmt.Errorf("%w: connect_timeout_ms must not be negative", ErrInvalidConfig)
	}
	return nil
}
