// Package config loads hankyo settings from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "HANKYO_"

// Config holds every tunable of the pipeline.
type Config struct {
	Gmail    Gmail    `koanf:"gmail"`
	Webhook  Webhook  `koanf:"webhook"`
	Pipeline Pipeline `koanf:"pipeline"`
	Ledger   Ledger   `koanf:"ledger"`
}

type Gmail struct {
	CredentialsPath string `koanf:"credentials_path"`
	TokenPath       string `koanf:"token_path"`
	Query           string `koanf:"query"`
}

type Webhook struct {
	URL string `koanf:"url"`
}

type Pipeline struct {
	MaxMessages      int           `koanf:"max_messages"`
	MinConfidence    float64       `koanf:"min_confidence"`
	MinFieldCount    int           `koanf:"min_field_count"`
	ArchiveOnSuccess bool          `koanf:"archive_on_success"`
	Workers          int           `koanf:"workers"`
	Interval         time.Duration `koanf:"interval"`
}

type Ledger struct {
	Path string `koanf:"path"`
}

// Load reads configPath when it exists, then applies HANKYO_* overrides.
// HANKYO_WEBHOOK_URL maps to webhook.url, HANKYO_PIPELINE_MAX_MESSAGES
// to pipeline.max_messages, and so on.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath == "" {
		configPath = DefaultPath()
	}
	if content, err := os.ReadFile(configPath); err == nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", configPath, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		// HANKYO_PIPELINE_MAX_MESSAGES -> pipeline.max_messages
		lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "hankyo", "config.yaml")
}

func applyDefaults(cfg *Config) {
	if cfg.Gmail.CredentialsPath == "" {
		cfg.Gmail.CredentialsPath = "credentials.json"
	}
	if cfg.Gmail.TokenPath == "" {
		cfg.Gmail.TokenPath = filepath.Join(filepath.Dir(cfg.Gmail.CredentialsPath), "token.json")
	}
	if cfg.Pipeline.MaxMessages <= 0 {
		cfg.Pipeline.MaxMessages = 10
	}
	if cfg.Pipeline.MinConfidence <= 0 {
		cfg.Pipeline.MinConfidence = 0.5
	}
	if cfg.Pipeline.MinFieldCount <= 0 {
		cfg.Pipeline.MinFieldCount = 2
	}
	if cfg.Pipeline.Workers <= 0 {
		cfg.Pipeline.Workers = 1
	}
	if cfg.Pipeline.Interval <= 0 {
		cfg.Pipeline.Interval = 5 * time.Minute
	}
	if cfg.Ledger.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			cfg.Ledger.Path = "hankyo.db"
		} else {
			cfg.Ledger.Path = filepath.Join(home, ".config", "hankyo", "hankyo.db")
		}
	}
}
