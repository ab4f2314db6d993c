// ABOUTME: Source management commands for the feed source registry
// ABOUTME: Add, list, enable/disable, remove, discover, and OPML import/export

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mio/newsgather/internal/discover"
	"github.com/mio/newsgather/internal/models"
	"github.com/mio/newsgather/internal/opml"
	"github.com/mio/newsgather/internal/storage"
)

var sourceCmd = &cobra.Command{
	Use:     "source",
	Aliases: []string{"s"},
	Short:   "Manage feed sources",
	Long:    "Add, list, and remove the RSS/Atom sources each category is ingested from",
}

var sourceAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add a new feed source",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, url := args[0], args[1]
		category, _ := cmd.Flags().GetString("category")

		if !models.ValidCategory(category) {
			return fmt.Errorf("unknown category %q (one of: %s)", category, strings.Join(models.Categories, ", "))
		}

		existing, err := store.GetSourceByURL(url)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to check for existing source: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("source already exists: %s", url)
		}

		source := models.NewFeedSource(name, url, category)
		if err := store.CreateSource(source); err != nil {
			return fmt.Errorf("failed to create source: %w", err)
		}

		fmt.Printf("Added source to category '%s': %s\n", category, url)
		fmt.Printf("Source ID: %s\n", source.ID)
		return nil
	},
}

var sourceListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := store.GetSourceStats()
		if err != nil {
			return fmt.Errorf("failed to list sources: %w", err)
		}
		if len(stats) == 0 {
			fmt.Println("No sources found. Add one with 'newsgather source add <name> <url> --category <c>'")
			return nil
		}

		faint := color.New(color.Faint).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		sources, err := store.ListSources()
		if err != nil {
			return fmt.Errorf("failed to list sources: %w", err)
		}
		urls := make(map[string]string, len(sources))
		for _, src := range sources {
			urls[src.ID] = src.URL
		}

		fmt.Printf("Found %d source(s):\n\n", len(stats))
		for _, row := range stats {
			state := ""
			if !row.Active {
				state = red(" (disabled)")
			}
			fmt.Printf("[%s] %s%s %s\n", row.Category, row.SourceName, state,
				faint(fmt.Sprintf("(%d articles)", row.ArticleCount)))
			fmt.Printf("  ID:  %s\n", row.SourceID)
			fmt.Printf("  URL: %s\n\n", urls[row.SourceID])
		}
		return nil
	},
}

var sourceRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.DeleteSource(args[0]); err != nil {
			return fmt.Errorf("failed to remove source: %w", err)
		}
		fmt.Printf("Removed source: %s\n", args[0])
		return nil
	},
}

var sourceEnableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Enable a source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.SetSourceActive(args[0], true); err != nil {
			return fmt.Errorf("failed to enable source: %w", err)
		}
		fmt.Printf("Enabled source: %s\n", args[0])
		return nil
	},
}

var sourceDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable a source",
	Long:  "Disable a source so ingestion skips it without forgetting it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.SetSourceActive(args[0], false); err != nil {
			return fmt.Errorf("failed to disable source: %w", err)
		}
		fmt.Printf("Disabled source: %s\n", args[0])
		return nil
	},
}

var sourceDiscoverCmd = &cobra.Command{
	Use:   "discover <site-url>",
	Short: "Discover the feed URL of a website",
	Long:  "Probe a website for its RSS/Atom feed and print the feed URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feedURL, err := discover.Discover(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("discovery failed: %w", err)
		}
		fmt.Println(feedURL)
		return nil
	},
}

var sourceImportCmd = &cobra.Command{
	Use:   "import <opml-file>",
	Short: "Import sources from an OPML file",
	Long: `Import feed sources from an OPML file. Top-level folders map to categories;
feeds in unknown folders (or at the root) are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := opml.ParseFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to parse OPML: %w", err)
		}

		imported := 0
		skipped := 0
		for _, entry := range entries {
			if !models.ValidCategory(entry.Category) {
				skipped++
				continue
			}
			if existing, err := store.GetSourceByURL(entry.URL); err == nil && existing != nil {
				skipped++
				continue
			}
			name := entry.Title
			if name == "" {
				name = entry.URL
			}
			if err := store.CreateSource(models.NewFeedSource(name, entry.URL, entry.Category)); err != nil {
				return fmt.Errorf("failed to import %s: %w", entry.URL, err)
			}
			imported++
		}

		fmt.Printf("Imported %d source(s), skipped %d\n", imported, skipped)
		return nil
	},
}

var sourceExportCmd = &cobra.Command{
	Use:   "export [opml-file]",
	Short: "Export sources to OPML",
	Long:  "Export all sources as OPML, one folder per category. Writes to stdout without a file argument.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := store.ListSources()
		if err != nil {
			return fmt.Errorf("failed to list sources: %w", err)
		}

		entries := make([]opml.Entry, 0, len(sources))
		for _, src := range sources {
			entries = append(entries, opml.Entry{
				Title:    src.Name,
				URL:      src.URL,
				Category: src.Category,
			})
		}

		if len(args) == 1 {
			if err := opml.WriteFile(args[0], "newsgather sources", entries); err != nil {
				return fmt.Errorf("failed to write OPML: %w", err)
			}
			fmt.Printf("Exported %d source(s) to %s\n", len(entries), args[0])
			return nil
		}
		return opml.Write(os.Stdout, "newsgather sources", entries)
	},
}

func init() {
	rootCmd.AddCommand(sourceCmd)
	sourceCmd.AddCommand(sourceAddCmd)
	sourceCmd.AddCommand(sourceListCmd)
	sourceCmd.AddCommand(sourceRemoveCmd)
	sourceCmd.AddCommand(sourceEnableCmd)
	sourceCmd.AddCommand(sourceDisableCmd)
	sourceCmd.AddCommand(sourceDiscoverCmd)
	sourceCmd.AddCommand(sourceImportCmd)
	sourceCmd.AddCommand(sourceExportCmd)

	sourceAddCmd.Flags().StringP("category", "c", "", "category for the source (required)")
	sourceAddCmd.MarkFlagRequired("category")
}
