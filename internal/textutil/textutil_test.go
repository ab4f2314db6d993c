// ABOUTME: Test suite for text sanitization helpers
// ABOUTME: Covers CDATA stripping, entity decoding, idempotent cleaning, and truncation bounds

package textutil

import (
	"strings"
	"testing"
)

func TestStripCDATA(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"wrapped", "<![CDATA[Hello & welcome]]>", "Hello & welcome"},
		{"unwrapped", "plain text", "plain text"},
		{"empty", "", ""},
		{"inner markup kept", "<![CDATA[<b>bold</b>]]>", "<b>bold</b>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCDATA(tt.input); got != tt.want {
				t.Errorf("StripCDATA(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeEntities(t *testing.T) {
	got := DecodeEntities("Fish &amp; Chips &lt;tag&gt; &quot;quoted&quot; it&#39;s a&nbsp;b")
	want := `Fish & Chips <tag> "quoted" it's a b`
	if got != want {
		t.Errorf("DecodeEntities = %q, want %q", got, want)
	}
}

func TestClean(t *testing.T) {
	got := Clean("  <![CDATA[Tom &amp; Jerry]]>  ")
	if got != "Tom & Jerry" {
		t.Errorf("Clean = %q, want %q", got, "Tom & Jerry")
	}

	if Clean("") != "" {
		t.Error("Clean of empty string should be empty")
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"<![CDATA[News &amp; Views]]>",
		"  already clean  ",
		"&lt;p&gt;escaped markup&lt;/p&gt;",
		"",
	}

	for _, input := range inputs {
		once := Clean(input)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestStripHTML(t *testing.T) {
	got := StripHTML(`<p>Breaking: <a href="http://x">markets</a> rally&nbsp;today&hellip;</p>`)
	want := "Breaking: markets rallytoday"
	if got != want {
		t.Errorf("StripHTML = %q, want %q", got, want)
	}
}

func TestTruncate(t *testing.T) {
	short := "short text"
	if got := Truncate(short, 100); got != short {
		t.Errorf("Truncate should be identity for text within limit, got %q", got)
	}

	long := strings.Repeat("a", 150)
	got := Truncate(long, 100)
	if len([]rune(got)) > 100+len([]rune(Ellipsis)) {
		t.Errorf("Truncate result too long: %d runes", len([]rune(got)))
	}
	if !strings.HasSuffix(got, Ellipsis) {
		t.Errorf("truncated text should end with %q, got %q", Ellipsis, got)
	}
	if got[:100] != long[:100] {
		t.Error("Truncate should keep the first max characters")
	}

	// Exact boundary is identity
	exact := strings.Repeat("b", 100)
	if got := Truncate(exact, 100); got != exact {
		t.Errorf("Truncate at exact limit should be identity, got %q", got)
	}
}

func TestTruncate_MultiByte(t *testing.T) {
	got := Truncate("日本語のニュース記事", 5)
	if got != "日本語のニ"+Ellipsis {
		t.Errorf("Truncate should count runes, got %q", got)
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize("<p>" + strings.Repeat("x", 150) + "</p>")
	want := strings.Repeat("x", 100) + Ellipsis
	if got != want {
		t.Errorf("Summarize = %q, want %q", got, want)
	}
}
