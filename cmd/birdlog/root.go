// ABOUTME: Root Cobra command and global flags for the birdlog CLI.
// ABOUTME: Loads config, builds the logger, and opens the bird journal before each command.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/birdlog/internal/config"
	"github.com/2389-research/birdlog/internal/logger"
	"github.com/2389-research/birdlog/internal/storage"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	globalConfig *config.Config
	globalLogger logger.Logger
	globalStore  *storage.BirdJSONStore
)

var (
	journalFlag  string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:     "birdlog",
	Short:   "A field journal for bird sightings",
	Version: version,
	Long: `Record bird sightings with species, place, notes, date and map location.

Sightings live in a single JSON file on disk. Use the CLI directly, the
interactive form, the HTTP API, or the MCP server for AI agents.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "species" || isConfigCommand(cmd) {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		globalConfig = cfg

		level := cfg.GetLogLevel()
		if logLevelFlag != "" {
			level = logLevelFlag
		}
		log, err := logger.New(level, cfg.Log.Pretty)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		globalLogger = log

		path := journalFlag
		if path != "" {
			path, err = config.ExpandPath(path)
		} else {
			path, err = cfg.GetJournalPath()
		}
		if err != nil {
			return fmt.Errorf("failed to resolve journal path: %w", err)
		}

		store, err := storage.NewBirdJSONStore(path, storage.WithLogger(log))
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		if diag := store.LoadDiagnostic(); diag != nil && errors.Is(diag, storage.ErrCorruptJournal) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v (previous file kept as %s.corrupt)\n", diag, path)
		}
		globalStore = store
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if globalStore != nil {
			_ = globalStore.Close()
			globalStore = nil
		}
		if globalLogger != nil {
			_ = globalLogger.Sync()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&journalFlag, "journal", "", "Path to the journal file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
}
