// ABOUTME: Feed dialect detection for RSS 2.0 and Atom documents
// ABOUTME: Wraps gofeed's detector behind a small three-valued type

package feed

import (
	"strings"

	"github.com/mmcdole/gofeed"
)

// Type identifies the syndication dialect of a raw feed document.
type Type int

const (
	TypeUnknown Type = iota
	TypeRSS2
	TypeAtom
)

// String returns a human-readable dialect name.
func (t Type) String() string {
	switch t {
	case TypeRSS2:
		return "rss2"
	case TypeAtom:
		return "atom"
	default:
		return "unknown"
	}
}

// Detect classifies raw feed text as RSS 2.0, Atom, or unknown. Anything that
// is not an RSS or Atom document (including JSON Feed) maps to TypeUnknown.
func Detect(raw string) Type {
	switch gofeed.DetectFeedType(strings.NewReader(raw)) {
	case gofeed.FeedTypeRSS:
		return TypeRSS2
	case gofeed.FeedTypeAtom:
		return TypeAtom
	default:
		return TypeUnknown
	}
}
