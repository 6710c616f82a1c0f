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

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if REXBOT_CONFIG is set
//  3. env (prefix REXBOT_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("REXBOT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: REXBOT_PREFIX, REXBOT_CATALOG_PATH, ...
	// Map env keys like REXBOT_CATALOG_PATH -> catalog_path (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("REXBOT_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "rexbot_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.OpsAddr == "":
		return fmt.Errorf("%w: ops_addr must not be empty", ErrInvalidConfig)
	case c.Prefix == "":
		return fmt.Errorf("%w: prefix must not be empty", ErrInvalidConfig)
	case c.CatalogPath == "":
		return fmt.Errorf("%w: catalog_path must not be empty", ErrInvalidConfig)
	case c.FetchConcurrency <= 0:
		return fmt.Errorf("%w: fetch_concurrency must be positive", ErrInvalidConfig)
	case c.ReactionTimeoutSeconds <= 0:
		return fmt.Errorf("%w: reaction_timeout_seconds must be positive", ErrInvalidConfig)
	}
	return nil
}
