// ABOUTME: FeedSource model describing a configured news feed for one category
// ABOUTME: Defines the fixed category set and category validation

package models

import (
	"time"

	"github.com/google/uuid"
)

// Categories is the fixed set of news categories a source may belong to.
var Categories = []string{
	"technology",
	"business",
	"science",
	"health",
	"sports",
	"entertainment",
}

// ValidCategory reports whether category is one of the fixed category set.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// FeedSource represents a configured (name, URL, category) feed source.
// Sources are maintained via the source commands; the ingestion pipeline
// only ever reads them.
type FeedSource struct {
	ID        string    // Unique identifier for the source
	Name      string    // Human-readable source name
	URL       string    // Feed URL
	Category  string    // One of Categories
	Active    bool      // Inactive sources are skipped by ingestion
	CreatedAt time.Time // Source creation timestamp
}

// NewFeedSource creates a new active FeedSource with a generated ID.
func NewFeedSource(name, url, category string) *FeedSource {
	return &FeedSource{
		ID:        uuid.New().String(),
		Name:      name,
		URL:       url,
		Category:  category,
		Active:    true,
		CreatedAt: time.Now(),
	}
}
