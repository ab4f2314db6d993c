// ABOUTME: Tests for OPML import/export of feed sources
// ABOUTME: Verifies folder-to-category mapping and round-trip serialization

package opml

import (
	"bytes"
	"strings"
	"testing"
)

const sampleOPML = `<?xml version="1.0" encoding="UTF-8"?>
<opml version="2.0">
  <head><title>feeds</title></head>
  <body>
    <outline text="technology">
      <outline text="Example Tech" title="Example Tech" type="rss" xmlUrl="https://tech.example/rss"/>
      <outline text="Other Tech" type="rss" xmlUrl="https://other.example/feed"/>
    </outline>
    <outline text="Rootless Feed" type="rss" xmlUrl="https://root.example/rss"/>
  </body>
</opml>`

func TestParse(t *testing.T) {
	entries, err := Parse(strings.NewReader(sampleOPML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}

	if entries[0].Category != "technology" || entries[0].URL != "https://tech.example/rss" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Title != "Other Tech" {
		t.Errorf("entries[1].Title = %q, want text fallback", entries[1].Title)
	}
	if entries[2].Category != "" {
		t.Errorf("root-level feed should have empty category, got %q", entries[2].Category)
	}
}

func TestRoundTrip(t *testing.T) {
	entries := []Entry{
		{Title: "Tech One", URL: "https://one.example/rss", Category: "technology"},
		{Title: "Tech Two", URL: "https://two.example/rss", Category: "technology"},
		{Title: "Biz", URL: "https://biz.example/rss", Category: "business"},
	}

	var buf bytes.Buffer
	if err := Write(&buf, "newsgather sources", entries); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	parsed, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(parsed) != 3 {
		t.Fatalf("len(parsed) = %d, want 3", len(parsed))
	}

	byURL := map[string]Entry{}
	for _, e := range parsed {
		byURL[e.URL] = e
	}
	if byURL["https://one.example/rss"].Category != "technology" {
		t.Errorf("category lost in round trip: %+v", byURL["https://one.example/rss"])
	}
	if byURL["https://biz.example/rss"].Category != "business" {
		t.Errorf("category lost in round trip: %+v", byURL["https://biz.example/rss"])
	}
}
