// ABOUTME: Root Cobra command and global flags
// ABOUTME: Loads configuration and opens the storage backend for subcommands

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mio/newsgather/internal/config"
	"github.com/mio/newsgather/internal/storage"
)

var (
	dataDir string
	cfg     *config.Config
	store   storage.Store
)

var rootCmd = &cobra.Command{
	Use:   "newsgather",
	Short: "Categorized news-feed ingestion for the news tutor",
	Long: `newsgather fetches news articles from configured RSS/Atom sources,
deduplicates them by URL, and stores summarized articles per category.

Categories: technology, business, science, health, sports, entertainment.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		store, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			if err := store.Close(); err != nil {
				return fmt.Errorf("failed to close storage: %w", err)
			}
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default: ~/.local/share/newsgather)")
}
