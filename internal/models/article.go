// ABOUTME: Article and FeedItem models for the ingestion pipeline
// ABOUTME: FeedItem is the ephemeral parser output, Article is the persisted record

package models

import (
	"time"

	"github.com/google/uuid"
)

// FeedItem is a single normalized item extracted from an RSS or Atom feed.
// Ephemeral: produced per fetch, never persisted as-is. Title and Link are
// guaranteed non-empty by the parser; items missing either are dropped.
type FeedItem struct {
	Title       string
	Link        string
	Description string // may be empty
	PublishedAt time.Time
	GUID        string
}

// Article represents a persisted news article. Articles are inserted once by
// the ingestion pipeline, keyed by URL, and never mutated afterwards.
type Article struct {
	ID          string    `json:"-"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Category    string    `json:"category"`
	PublishedAt time.Time `json:"published_at"`
	Topics      []string  `json:"-"`
	Content     string    `json:"-"`
	CreatedAt   time.Time `json:"-"`
}

// NewArticle creates an Article with a generated ID and creation timestamp.
// Topics always contains at least the category.
func NewArticle(title, summary, url, source, category string, publishedAt time.Time) *Article {
	return &Article{
		ID:          uuid.New().String(),
		Title:       title,
		Summary:     summary,
		URL:         url,
		Source:      source,
		Category:    category,
		PublishedAt: publishedAt,
		Topics:      []string{category},
		CreatedAt:   time.Now(),
	}
}
