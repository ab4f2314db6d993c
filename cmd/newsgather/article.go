// ABOUTME: Article commands for listing, reading, and searching stored articles
// ABOUTME: Read view renders the stored description as Markdown in the terminal

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mio/newsgather/internal/content"
	"github.com/mio/newsgather/internal/models"
	"github.com/mio/newsgather/internal/storage"
)

var articleCmd = &cobra.Command{
	Use:     "article",
	Aliases: []string{"a"},
	Short:   "Browse stored articles",
	Long:    "List, read, and search the articles ingested so far",
}

var articleListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		limit, _ := cmd.Flags().GetInt("limit")
		days, _ := cmd.Flags().GetInt("days")

		filter := &storage.ArticleFilter{Limit: &limit}
		if category != "" {
			if !models.ValidCategory(category) {
				return fmt.Errorf("unknown category %q (one of: %s)", category, strings.Join(models.Categories, ", "))
			}
			filter.Category = &category
		}
		if days > 0 {
			since := time.Now().AddDate(0, 0, -days)
			filter.Since = &since
		}

		articles, err := store.ListArticles(filter)
		if err != nil {
			return fmt.Errorf("failed to list articles: %w", err)
		}

		printArticleList(articles)
		return nil
	},
}

var articleReadCmd = &cobra.Command{
	Use:   "read <article-id>",
	Short: "Read an article",
	Long:  "Display the stored article with its summary and rendered description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		article, err := store.GetArticleByIDOrPrefix(args[0])
		if err != nil {
			return fmt.Errorf("failed to get article: %w", err)
		}

		bold := color.New(color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()

		fmt.Println(strings.Repeat("─", 60))
		fmt.Printf("%s\n\n", bold(article.Title))
		fmt.Printf("%s %s\n", faint("Source:"), article.Source)
		fmt.Printf("%s %s\n", faint("Category:"), article.Category)
		if !article.PublishedAt.IsZero() {
			fmt.Printf("%s %s\n", faint("Published:"), article.PublishedAt.Format("Mon, 02 Jan 2006 15:04 MST"))
		}
		if len(article.Topics) > 0 {
			fmt.Printf("%s %s\n", faint("Topics:"), strings.Join(article.Topics, ", "))
		}
		fmt.Printf("%s %s\n", faint("Link:"), cyan(article.URL))
		fmt.Println(strings.Repeat("─", 60))

		body := article.Content
		if body == "" {
			body = article.Summary
		}
		if body == "" {
			fmt.Println("\n(No content available)")
			return nil
		}

		markdown := content.ToMarkdown(body)
		rendered, err := glamour.Render(markdown, "dark")
		if err != nil {
			fmt.Printf("%s\n", faint("(markdown rendering unavailable, showing plain text)"))
			fmt.Printf("\n%s\n", markdown)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

var articleSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search stored articles",
	Long:  "Full-text search over article titles, summaries, and descriptions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		articles, err := store.Search(strings.Join(args, " "), limit)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		printArticleList(articles)
		return nil
	},
}

func printArticleList(articles []*models.Article) {
	if len(articles) == 0 {
		fmt.Println("No articles found.")
		return
	}

	faint := color.New(color.Faint).SprintFunc()
	for _, article := range articles {
		date := ""
		if !article.PublishedAt.IsZero() {
			date = article.PublishedAt.Format("2006-01-02")
		}
		fmt.Printf("%s  [%s] %s %s\n", faint(article.ID[:8]), article.Category, article.Title, faint(date))
		if article.Summary != "" {
			fmt.Printf("          %s\n", faint(article.Summary))
		}
	}
}

func init() {
	rootCmd.AddCommand(articleCmd)
	articleCmd.AddCommand(articleListCmd)
	articleCmd.AddCommand(articleReadCmd)
	articleCmd.AddCommand(articleSearchCmd)

	articleListCmd.Flags().StringP("category", "c", "", "filter by category")
	articleListCmd.Flags().Int("limit", 20, "maximum number of articles")
	articleListCmd.Flags().Int("days", 0, "only articles published in the last N days")
	articleSearchCmd.Flags().Int("limit", 20, "maximum number of results")
}
