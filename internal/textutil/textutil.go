// ABOUTME: Text sanitization helpers for feed content
// ABOUTME: CDATA stripping, HTML entity decoding, tag stripping, and summary truncation

package textutil

import (
	"regexp"
	"strings"
)

// Ellipsis is appended by Truncate when text is cut.
const Ellipsis = "..."

// DefaultSummaryLength is the maximum summary length used by the pipeline.
const DefaultSummaryLength = 100

var (
	tagPattern    = regexp.MustCompile(`<[^>]*>`)
	entityPattern = regexp.MustCompile(`&[a-zA-Z0-9#]+;`)
)

// entityReplacer decodes the fixed entity set seen in feed titles and
// descriptions. The replacement outputs never form another entity pattern,
// so decoding is single-pass and idempotent.
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&nbsp;", " ",
)

// StripCDATA removes one level of <![CDATA[ ... ]]> wrapping.
// Text without CDATA markers is returned unchanged.
func StripCDATA(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "<![CDATA[") && strings.HasSuffix(trimmed, "]]>") {
		return trimmed[len("<![CDATA[") : len(trimmed)-len("]]>")]
	}
	return text
}

// DecodeEntities replaces the fixed entity set &amp; &lt; &gt; &quot; &#39;
// &nbsp; with their literal characters.
func DecodeEntities(text string) string {
	return entityReplacer.Replace(text)
}

// Clean strips CDATA wrapping, decodes entities, and trims whitespace.
// Never fails; empty input yields an empty string. Idempotent.
func Clean(text string) string {
	return strings.TrimSpace(DecodeEntities(StripCDATA(text)))
}

// StripHTML removes any <...> tag and any &...; entity reference, then trims.
// Used for building plain-text summaries from descriptions that may carry markup.
func StripHTML(text string) string {
	text = tagPattern.ReplaceAllString(text, "")
	text = entityPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Truncate returns text unchanged when it fits in max characters, otherwise
// the first max characters followed by an ellipsis. Counts runes, not bytes,
// so multi-byte text is never cut mid-character.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + Ellipsis
}

// Summarize builds the stored article summary: HTML stripped and truncated
// to DefaultSummaryLength.
func Summarize(text string) string {
	return Truncate(StripHTML(text), DefaultSummaryLength)
}
