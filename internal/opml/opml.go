// ABOUTME: OPML import/export for feed sources
// ABOUTME: Maps newsgather categories to OPML folders for round-trip serialization

package opml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Entry is one feed subscription listed in an OPML document, with the
// category taken from its enclosing folder.
type Entry struct {
	Title    string
	URL      string
	Category string
}

// XML structs for parsing and writing OPML files
type opmlXML struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    headXML  `xml:"head"`
	Body    bodyXML  `xml:"body"`
}

type headXML struct {
	Title string `xml:"title"`
}

type bodyXML struct {
	Outlines []outlineXML `xml:"outline"`
}

type outlineXML struct {
	Text     string       `xml:"text,attr"`
	Title    string       `xml:"title,attr,omitempty"`
	Type     string       `xml:"type,attr,omitempty"`
	XMLURL   string       `xml:"xmlUrl,attr,omitempty"`
	Children []outlineXML `xml:"outline,omitempty"`
}

// Parse reads an OPML document and flattens it into entries. Top-level
// folders become categories; top-level feeds get an empty category.
func Parse(r io.Reader) ([]Entry, error) {
	var doc opmlXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode OPML: %w", err)
	}

	var entries []Entry
	for _, outline := range doc.Body.Outlines {
		if outline.XMLURL != "" {
			entries = append(entries, Entry{
				Title: outlineTitle(outline),
				URL:   outline.XMLURL,
			})
			continue
		}
		for _, child := range outline.Children {
			if child.XMLURL != "" {
				entries = append(entries, Entry{
					Title:    outlineTitle(child),
					URL:      child.XMLURL,
					Category: outline.Text,
				})
			}
		}
	}
	return entries, nil
}

// ParseFile reads OPML entries from a file.
func ParseFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Write serializes entries as OPML 2.0, grouping feeds into one folder per
// category. Category order follows first appearance in entries.
func Write(w io.Writer, title string, entries []Entry) error {
	doc := opmlXML{
		Version: "2.0",
		Head:    headXML{Title: title},
	}

	folderIndex := map[string]int{}
	for _, entry := range entries {
		feed := outlineXML{
			Text:   entry.Title,
			Title:  entry.Title,
			Type:   "rss",
			XMLURL: entry.URL,
		}

		if entry.Category == "" {
			doc.Body.Outlines = append(doc.Body.Outlines, feed)
			continue
		}

		idx, ok := folderIndex[entry.Category]
		if !ok {
			doc.Body.Outlines = append(doc.Body.Outlines, outlineXML{Text: entry.Category})
			idx = len(doc.Body.Outlines) - 1
			folderIndex[entry.Category] = idx
		}
		doc.Body.Outlines[idx].Children = append(doc.Body.Outlines[idx].Children, feed)
	}

	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return fmt.Errorf("failed to write XML header: %w", err)
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode OPML: %w", err)
	}
	return nil
}

// WriteFile writes entries to an OPML file, creating parent directories.
func WriteFile(path, title string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return Write(file, title, entries)
}

func outlineTitle(outline outlineXML) string {
	if outline.Title != "" {
		return outline.Title
	}
	return outline.Text
}
