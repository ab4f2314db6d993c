// ABOUTME: Storage interface for newsgather sources and articles
// ABOUTME: Defines the source registry and article store contracts used by ingestion

package storage

import (
	"time"

	"github.com/mio/newsgather/internal/models"
)

// ArticleFilter specifies criteria for listing articles.
type ArticleFilter struct {
	Category *string
	Source   *string
	Since    *time.Time
	Limit    *int
	Offset   *int
}

// SourceStats represents per-source article counts.
type SourceStats struct {
	SourceID     string
	SourceName   string
	Category     string
	Active       bool
	ArticleCount int
}

// Store defines persistence for feed sources and articles. The ingestion
// pipeline only uses ListActiveSources, ArticleExists, and CreateArticle;
// the rest serves the source admin and article read commands.
type Store interface {
	// Close closes the store and releases resources.
	Close() error

	// Source registry

	// CreateSource stores a new feed source.
	CreateSource(source *models.FeedSource) error

	// GetSourceByURL finds a source by its feed URL.
	GetSourceByURL(url string) (*models.FeedSource, error)

	// ListSources returns all sources, newest first.
	ListSources() ([]*models.FeedSource, error)

	// ListActiveSources returns the active sources for a category.
	ListActiveSources(category string) ([]*models.FeedSource, error)

	// SetSourceActive toggles a source's active flag.
	SetSourceActive(id string, active bool) error

	// DeleteSource removes a source. Articles already ingested stay.
	DeleteSource(id string) error

	// Article store

	// CreateArticle inserts an article. Inserting a URL that already
	// exists fails with an error satisfying IsDuplicate.
	CreateArticle(article *models.Article) error

	// ArticleExists reports whether any article is stored under url,
	// regardless of category.
	ArticleExists(url string) (bool, error)

	// GetArticle retrieves an article by ID.
	GetArticle(id string) (*models.Article, error)

	// GetArticleByIDOrPrefix tries an exact ID first, then a prefix match.
	GetArticleByIDOrPrefix(ref string) (*models.Article, error)

	// ListArticles returns articles matching the filter, newest first.
	ListArticles(filter *ArticleFilter) ([]*models.Article, error)

	// Search performs full-text search over titles and summaries.
	Search(query string, limit int) ([]*models.Article, error)

	// Statistics

	// GetSourceStats returns per-source article counts.
	GetSourceStats() ([]SourceStats, error)

	// Maintenance

	// Compact performs database maintenance (VACUUM).
	Compact() error
}
