// Package config provides configuration loading for the personalization
// module and its CLI.
package config

import (
	"fmt"

	"github.com/skillpathlabs/personalization/internal/embeddings"
	"github.com/skillpathlabs/personalization/internal/recommend"
)

// StoreConfig locates the durable context store.
type StoreConfig struct {
	// Path is the SQLite database file. "~" expands to the home directory.
	Path string `koanf:"path"`
}

// EmbeddingsConfig wraps the provider settings with an enable switch.
// Disabled means no provider is constructed: records are stored without
// embeddings and retrieval uses keyword mode.
type EmbeddingsConfig struct {
	Enabled           bool `koanf:"enabled"`
	embeddings.Config `koanf:",squash"`
}

// RetrievalConfig selects the similarity search implementation.
type RetrievalConfig struct {
	// Searcher is "brute_force" or "chromem".
	Searcher string `koanf:"searcher"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`
}

// Config is the root configuration.
type Config struct {
	Store      StoreConfig       `koanf:"store"`
	Embeddings EmbeddingsConfig  `koanf:"embeddings"`
	Retrieval  RetrievalConfig   `koanf:"retrieval"`
	Logging    LoggingConfig     `koanf:"logging"`
	Weights    recommend.Weights `koanf:"weights"`
}

// applyDefaults fills missing values. Weight defaults live in the scorer
// constructor so a zero weight here cannot null a term.
func applyDefaults(cfg *Config) {
	if cfg.Store.Path == "" {
		cfg.Store.Path = "~/.local/share/personalization/context.db"
	}
	if cfg.Retrieval.Searcher == "" {
		cfg.Retrieval.Searcher = "brute_force"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Embeddings.Enabled {
		cfg.Embeddings.Config.ApplyDefaults()
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}

	switch c.Retrieval.Searcher {
	case "brute_force", "chromem":
	default:
		return fmt.Errorf("retrieval.searcher must be brute_force or chromem, got %q", c.Retrieval.Searcher)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	if c.Weights.Interest < 0 || c.Weights.SkillLevel < 0 || c.Weights.TechStack < 0 ||
		c.Weights.Goals < 0 || c.Weights.Feedback < 0 {
		return fmt.Errorf("weights must be non-negative")
	}

	if c.Embeddings.Enabled {
		if err := c.Embeddings.Config.Validate(); err != nil {
			return fmt.Errorf("embeddings: %w", err)
		}
	}
	return nil
}
