// Package main implements the personalctl CLI for operating a local
// personalization store: ingesting events and inspecting the profiles,
// recommendations, and learning paths derived from them.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillpathlabs/personalization/internal/config"
	"github.com/skillpathlabs/personalization/internal/contextstore"
	"github.com/skillpathlabs/personalization/internal/embeddings"
	"github.com/skillpathlabs/personalization/internal/engine"
	"github.com/skillpathlabs/personalization/internal/logging"
	"github.com/skillpathlabs/personalization/internal/semantics"
	"github.com/skillpathlabs/personalization/internal/similarity"
)

var (
	configPath string
	userID     string
	version    = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "personalctl",
	Short: "CLI for the personalization context store",
	Long: `personalctl operates a local personalization store.

It ingests user interaction events, and derives profiles, recommendations
and learning paths from the accumulated context.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "user ID to operate on")
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(pathCmd)
}

// newEngine builds the engine stack from config: SQLite store, optional
// embedding provider, searcher, logger. The returned cleanup flushes the
// logger and closes the store; callers defer it.
func newEngine() (*engine.Engine, *logging.Logger, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	logger, err := logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		return nil, nil, nil, err
	}

	adapter, err := contextstore.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening store: %w", err)
	}
	cleanup := func() {
		logger.Sync()
		adapter.Close()
	}

	opts := []engine.Option{
		engine.WithLogger(logger.Underlying()),
		engine.WithWeights(cfg.Weights),
	}
	if cfg.Embeddings.Enabled {
		provider, err := embeddings.NewService(cfg.Embeddings.Config, logger.Underlying().Named("embeddings"))
		if err != nil {
			cleanup()
			return nil, nil, nil, fmt.Errorf("configuring embeddings: %w", err)
		}
		opts = append(opts, engine.WithProvider(provider))
	}
	if cfg.Retrieval.Searcher == "chromem" {
		opts = append(opts, engine.WithSearcher(similarity.ChromemIndex{}))
	}

	eng, err := engine.New(adapter, semantics.NewAnalyzer(semantics.Config{}), opts...)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	return eng, logger, cleanup, nil
}

func requireUser() error {
	if userID == "" {
		return fmt.Errorf("--user is required")
	}
	return nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
