// ABOUTME: Feed discovery for finding RSS/Atom feeds from a site URL
// ABOUTME: Tries direct parse, HTML alternate links, then common feed paths

package discover

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/mio/newsgather/internal/feed"
	"github.com/mio/newsgather/internal/fetch"
)

// Common feed paths to probe when other discovery methods fail
var commonFeedPaths = []string{
	"/feed.xml",
	"/feed",
	"/rss.xml",
	"/rss",
	"/atom.xml",
	"/atom",
	"/index.xml",
	"/feed/rss",
	"/feed/atom",
}

// Errors returned by discovery functions
var (
	ErrNoFeedFound = errors.New("no RSS/Atom feed found at URL")
	ErrInvalidURL  = errors.New("invalid URL")
)

// Discover attempts to find an RSS/Atom feed for the given URL.
// It tries the following strategies in order:
//  1. Parse the URL as a direct feed
//  2. Parse the URL as HTML and follow <link rel="alternate"> elements
//  3. Probe common feed URL patterns
//
// Returns the feed URL, or an error if none found.
func Discover(ctx context.Context, inputURL string) (string, error) {
	parsedURL, err := url.Parse(inputURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("%w: missing scheme or host", ErrInvalidURL)
	}

	// Strategy 1: direct feed
	body, err := fetch.Fetch(ctx, inputURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	if isFeed(string(body)) {
		return inputURL, nil
	}

	// Strategy 2: alternate links in the HTML
	for _, candidate := range extractFeedLinks(body, parsedURL) {
		if candidateBody, err := fetch.Fetch(ctx, candidate); err == nil && isFeed(string(candidateBody)) {
			return candidate, nil
		}
	}

	// Strategy 3: common paths
	probeBase := &url.URL{Scheme: parsedURL.Scheme, Host: parsedURL.Host}
	for _, path := range commonFeedPaths {
		probeURL := probeBase.String() + path
		if candidateBody, err := fetch.Fetch(ctx, probeURL); err == nil && isFeed(string(candidateBody)) {
			return probeURL, nil
		}
	}

	return "", ErrNoFeedFound
}

// isFeed reports whether raw looks like an RSS or Atom document.
func isFeed(raw string) bool {
	return feed.Detect(raw) != feed.TypeUnknown
}

// extractFeedLinks parses HTML and returns feed URLs from
// <link rel="alternate"> elements, resolved against the base URL.
func extractFeedLinks(htmlBody []byte, baseURL *url.URL) []string {
	doc, err := html.Parse(strings.NewReader(string(htmlBody)))
	if err != nil {
		return nil
	}

	var links []string
	var findLinks func(*html.Node)
	findLinks = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "link" {
			var rel, linkType, href string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "rel":
					rel = attr.Val
				case "type":
					linkType = attr.Val
				case "href":
					href = attr.Val
				}
			}

			if rel == "alternate" && isFeedContentType(linkType) && href != "" {
				if resolved, err := resolveURL(href, baseURL); err == nil {
					links = append(links, resolved)
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findLinks(c)
		}
	}

	findLinks(doc)
	return links
}

// resolveURL resolves a potentially relative URL against a base URL
func resolveURL(href string, baseURL *url.URL) (string, error) {
	refURL, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(refURL).String(), nil
}

// isFeedContentType checks if the content type indicates a feed
func isFeedContentType(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.Contains(contentType, "rss") ||
		strings.Contains(contentType, "atom") ||
		strings.Contains(contentType, "xml")
}
