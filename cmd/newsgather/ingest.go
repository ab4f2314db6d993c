// ABOUTME: Ingest command running the fetch/dedup/persist pipeline for one or all categories
// ABOUTME: Prints a colored per-source summary and an aggregated report

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mio/newsgather/internal/ingest"
	"github.com/mio/newsgather/internal/models"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [category]",
	Short: "Fetch and store new articles",
	Long: `Fetch the active feed sources of a category, deduplicate by URL, and store
summarized articles. With --all, every category that has sources is ingested.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		asJSON, _ := cmd.Flags().GetBool("json")

		if all == (len(args) == 1) {
			return fmt.Errorf("specify exactly one category or --all (categories: %s)",
				strings.Join(models.Categories, ", "))
		}

		pipeline := ingest.New(store, ingest.Options{
			Workers:      cfg.GetWorkers(),
			FetchTimeout: cfg.GetFetchTimeout(),
		})

		ctx := context.Background()

		var reports []*models.Report
		if all {
			var err error
			reports, err = pipeline.RunAll(ctx)
			if err != nil {
				return fmt.Errorf("ingestion failed: %w", err)
			}
			if len(reports) == 0 {
				fmt.Println("No sources found. Add one with 'newsgather source add'")
				return nil
			}
		} else {
			report, err := pipeline.Run(ctx, args[0])
			if err != nil {
				if errors.Is(err, ingest.ErrNoSources) || errors.Is(err, ingest.ErrUnknownCategory) {
					return err
				}
				return fmt.Errorf("ingestion failed: %w", err)
			}
			reports = append(reports, report)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			if !all {
				return enc.Encode(reports[0])
			}
			return enc.Encode(reports)
		}

		printReports(reports)
		return nil
	},
}

func printReports(reports []*models.Report) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	totalNew := 0
	totalErrors := 0
	for _, report := range reports {
		fmt.Printf("%s: %s %d new article(s) from %d source(s)\n",
			report.Category, green("v"), report.TotalArticles, report.SourcesProcessed)

		for _, article := range report.Articles {
			fmt.Printf("  %s %s\n", faint("+"), article.Title)
		}
		for _, msg := range report.Errors {
			fmt.Printf("  %s %s\n", red("x"), msg)
		}

		totalNew += report.TotalArticles
		totalErrors += len(report.Errors)
	}

	fmt.Println()
	fmt.Printf("Summary: %d ingestion run(s) completed\n", len(reports))
	if totalNew > 0 {
		fmt.Printf("  %s %d new articles\n", green("v"), totalNew)
	}
	if totalErrors > 0 {
		fmt.Printf("  %s %d errors\n", red("x"), totalErrors)
	}
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().Bool("all", false, "ingest every category with active sources")
	ingestCmd.Flags().Bool("json", false, "print the ingestion report as JSON")
}
