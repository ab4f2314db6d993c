// ABOUTME: RSS 2.0 and Atom item extraction with normalized field fallbacks
// ABOUTME: Built on gofeed's dialect parsers; policy layer enforces cap, fallback order, and required fields

package feed

import (
	"strings"
	"time"

	"github.com/mmcdole/gofeed/atom"
	"github.com/mmcdole/gofeed/rss"

	"github.com/mio/newsgather/internal/models"
	"github.com/mio/newsgather/internal/textutil"
)

// MaxItemsPerFeed caps how many items are taken from a single feed document.
// Items beyond the cap are silently ignored, preserving document order.
const MaxItemsPerFeed = 5

// ParseRSS2 extracts items from an RSS 2.0 document. An item is emitted only
// when both title and link are non-empty after cleaning. Missing guid falls
// back to the link; a missing or unparseable pubDate falls back to the
// current time. Malformed documents yield an empty slice.
func ParseRSS2(raw string) []models.FeedItem {
	parsed, err := (&rss.Parser{}).Parse(strings.NewReader(raw))
	if err != nil || parsed == nil {
		return nil
	}

	var items []models.FeedItem
	for _, it := range parsed.Items {
		if len(items) >= MaxItemsPerFeed {
			break
		}

		item := models.FeedItem{
			Title:       textutil.Clean(it.Title),
			Link:        textutil.Clean(it.Link),
			Description: textutil.Clean(it.Description),
		}
		if item.Title == "" || item.Link == "" {
			continue
		}

		if it.PubDateParsed != nil {
			item.PublishedAt = *it.PubDateParsed
		} else {
			item.PublishedAt = time.Now()
		}

		if it.GUID != nil && strings.TrimSpace(it.GUID.Value) != "" {
			item.GUID = textutil.Clean(it.GUID.Value)
		} else {
			item.GUID = item.Link
		}

		items = append(items, item)
	}
	return items
}

// ParseAtom extracts items from an Atom document. Links come from the entry's
// href attributes, preferring rel="alternate". Summary falls back to content,
// published falls back to updated, and id falls back to the link.
func ParseAtom(raw string) []models.FeedItem {
	parsed, err := (&atom.Parser{}).Parse(strings.NewReader(raw))
	if err != nil || parsed == nil {
		return nil
	}

	var items []models.FeedItem
	for _, entry := range parsed.Entries {
		if len(items) >= MaxItemsPerFeed {
			break
		}

		item := models.FeedItem{
			Title: textutil.Clean(entry.Title),
			Link:  textutil.Clean(entryLink(entry)),
		}
		if item.Title == "" || item.Link == "" {
			continue
		}

		if entry.Summary != "" {
			item.Description = textutil.Clean(entry.Summary)
		} else if entry.Content != nil {
			item.Description = textutil.Clean(entry.Content.Value)
		}

		switch {
		case entry.PublishedParsed != nil:
			item.PublishedAt = *entry.PublishedParsed
		case entry.UpdatedParsed != nil:
			item.PublishedAt = *entry.UpdatedParsed
		default:
			item.PublishedAt = time.Now()
		}

		if strings.TrimSpace(entry.ID) != "" {
			item.GUID = textutil.Clean(entry.ID)
		} else {
			item.GUID = item.Link
		}

		items = append(items, item)
	}
	return items
}

// Parse detects the feed dialect and dispatches to the matching parser. For
// unrecognized documents both parsers are attempted, preferring a non-empty
// RSS 2.0 result. Never fails: unparseable input yields an empty slice.
func Parse(raw string) []models.FeedItem {
	switch Detect(raw) {
	case TypeRSS2:
		return ParseRSS2(raw)
	case TypeAtom:
		return ParseAtom(raw)
	default:
		if items := ParseRSS2(raw); len(items) > 0 {
			return items
		}
		return ParseAtom(raw)
	}
}

// entryLink picks the best link for an Atom entry: the first rel="alternate"
// (or rel-less) link, falling back to the first link with a href at all.
func entryLink(entry *atom.Entry) string {
	var fallback string
	for _, l := range entry.Links {
		if l == nil || l.Href == "" {
			continue
		}
		if l.Rel == "" || l.Rel == "alternate" {
			return l.Href
		}
		if fallback == "" {
			fallback = l.Href
		}
	}
	return fallback
}
