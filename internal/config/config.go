// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// OpsAddr configures the operational HTTP listen address
	// (health, stats, metrics), e.g. ":9090".
	OpsAddr string `koanf:"ops_addr"`

	// Prefix is the chat command prefix, e.g. "cr.".
	Prefix string `koanf:"prefix"`

	// DataDir holds the registry files (users.json, guilds.json).
	DataDir string `koanf:"data_dir"`

	// CatalogPath points at the raid catalog document. The catalog is
	// re-read on every raids invocation so edits take effect immediately.
	CatalogPath string `koanf:"catalog_path"`

	// ProviderBaseURL and ProviderToken configure the roster/unit data provider.
	ProviderBaseURL string `koanf:"provider_base_url"`
	ProviderToken   string `koanf:"provider_token"`

	// FetchConcurrency bounds parallel roster fetches against the provider.
	FetchConcurrency int `koanf:"fetch_concurrency"`

	// ReactionTimeoutSeconds bounds the wait for an ally-code pick
	// when a user has several codes registered.
	ReactionTimeoutSeconds int `koanf:"reaction_timeout_seconds"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		OpsAddr:                ":9090",
		Prefix:                 "cr.",
		DataDir:                "data",
		CatalogPath:            "config/raids_helper.json",
		ProviderBaseURL:        "https://api.swgoh.help",
		FetchConcurrency:       4,
		ReactionTimeoutSeconds: 30,
	}
}
