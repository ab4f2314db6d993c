// ABOUTME: Test suite for RSS 2.0 and Atom item extraction
// ABOUTME: Validates field fallbacks, required fields, and the per-feed item cap with inline XML

package feed

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

const rss2XML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test RSS Feed</title>
    <link>https://example.com</link>
    <item>
      <title>A</title>
      <link>http://x/1</link>
      <pubDate>Mon, 01 Jan 2024 00:00:00 GMT</pubDate>
    </item>
    <item>
      <title><![CDATA[Fish &amp; Chips]]></title>
      <link>http://x/2</link>
      <guid>tag:x,2024:2</guid>
      <description><![CDATA[A <b>bold</b> description]]></description>
      <pubDate>Tue, 02 Jan 2024 00:00:00 GMT</pubDate>
    </item>
    <item>
      <description>no title, no link, dropped</description>
    </item>
  </channel>
</rss>`

const atomXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Test Atom Feed</title>
  <entry>
    <id>urn:entry:1</id>
    <title>First Entry</title>
    <link rel="alternate" href="http://x/2"/>
    <content type="html">Body</content>
    <updated>2024-01-03T00:00:00Z</updated>
  </entry>
  <entry>
    <id>urn:entry:2</id>
    <title>Second Entry</title>
    <link href="http://x/3"/>
    <summary>The summary</summary>
    <content>The content</content>
    <published>2024-01-01T00:00:00Z</published>
    <updated>2024-01-02T00:00:00Z</updated>
  </entry>
</feed>`

func TestParseRSS2(t *testing.T) {
	items := ParseRSS2(rss2XML)
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2 (item lacking title and link dropped)", len(items))
	}

	first := items[0]
	if first.Title != "A" {
		t.Errorf("first.Title = %q, want %q", first.Title, "A")
	}
	if first.Link != "http://x/1" {
		t.Errorf("first.Link = %q, want %q", first.Link, "http://x/1")
	}
	if first.Description != "" {
		t.Errorf("first.Description = %q, want empty", first.Description)
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(want) {
		t.Errorf("first.PublishedAt = %v, want %v", first.PublishedAt, want)
	}
	if first.GUID != "http://x/1" {
		t.Errorf("first.GUID = %q, want link fallback %q", first.GUID, "http://x/1")
	}

	second := items[1]
	if second.Title != "Fish & Chips" {
		t.Errorf("second.Title = %q, want CDATA+entity cleaned %q", second.Title, "Fish & Chips")
	}
	if second.GUID != "tag:x,2024:2" {
		t.Errorf("second.GUID = %q, want %q", second.GUID, "tag:x,2024:2")
	}
	if second.Description != "A <b>bold</b> description" {
		t.Errorf("second.Description = %q", second.Description)
	}
}

func TestParseRSS2_MissingPubDate(t *testing.T) {
	raw := `<?xml version="1.0"?>
<rss version="2.0"><channel><title>t</title>
  <item><title>A</title><link>http://x/1</link></item>
</channel></rss>`

	before := time.Now()
	items := ParseRSS2(raw)
	after := time.Now()

	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].PublishedAt.Before(before) || items[0].PublishedAt.After(after) {
		t.Errorf("missing pubDate should default to parse time, got %v", items[0].PublishedAt)
	}
}

func TestParseRSS2_ItemCap(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel><title>t</title>`)
	for i := 1; i <= 8; i++ {
		fmt.Fprintf(&b, `<item><title>Item %d</title><link>http://x/%d</link></item>`, i, i)
	}
	b.WriteString(`</channel></rss>`)

	items := ParseRSS2(b.String())
	if len(items) != MaxItemsPerFeed {
		t.Fatalf("len(items) = %d, want cap %d", len(items), MaxItemsPerFeed)
	}
	for i, item := range items {
		wantTitle := fmt.Sprintf("Item %d", i+1)
		if item.Title != wantTitle {
			t.Errorf("items[%d].Title = %q, want %q (document order)", i, item.Title, wantTitle)
		}
	}
}

func TestParseRSS2_Malformed(t *testing.T) {
	if items := ParseRSS2("this is not xml at all"); len(items) != 0 {
		t.Errorf("malformed input should yield no items, got %d", len(items))
	}
}

func TestParseAtom(t *testing.T) {
	items := ParseAtom(atomXML)
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}

	first := items[0]
	if first.Link != "http://x/2" {
		t.Errorf("first.Link = %q, want href %q", first.Link, "http://x/2")
	}
	if first.Description != "Body" {
		t.Errorf("first.Description = %q, want content fallback %q", first.Description, "Body")
	}
	wantUpdated := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(wantUpdated) {
		t.Errorf("first.PublishedAt = %v, want updated fallback %v", first.PublishedAt, wantUpdated)
	}
	if first.GUID != "urn:entry:1" {
		t.Errorf("first.GUID = %q, want %q", first.GUID, "urn:entry:1")
	}

	second := items[1]
	if second.Description != "The summary" {
		t.Errorf("second.Description = %q, want summary preferred over content", second.Description)
	}
	wantPublished := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !second.PublishedAt.Equal(wantPublished) {
		t.Errorf("second.PublishedAt = %v, want published preferred over updated %v", second.PublishedAt, wantPublished)
	}
}

func TestParse_Dispatch(t *testing.T) {
	if items := Parse(rss2XML); len(items) != 2 {
		t.Errorf("Parse of RSS document returned %d items, want 2", len(items))
	}
	if items := Parse(atomXML); len(items) != 2 {
		t.Errorf("Parse of Atom document returned %d items, want 2", len(items))
	}
	if items := Parse("<html><body>nope</body></html>"); len(items) != 0 {
		t.Errorf("Parse of non-feed returned %d items, want 0", len(items))
	}
}
