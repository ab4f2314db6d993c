// ABOUTME: Tests for feed dialect detection
// ABOUTME: Covers RSS 2.0, Atom, and unrecognized documents

package feed

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Type
	}{
		{
			"rss2",
			`<?xml version="1.0"?><rss version="2.0"><channel><title>t</title></channel></rss>`,
			TypeRSS2,
		},
		{
			"atom",
			`<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"><title>t</title></feed>`,
			TypeAtom,
		},
		{
			"html",
			`<!DOCTYPE html><html><body>not a feed</body></html>`,
			TypeUnknown,
		},
		{
			"empty",
			"",
			TypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.raw); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTypeString(t *testing.T) {
	if TypeRSS2.String() != "rss2" || TypeAtom.String() != "atom" || TypeUnknown.String() != "unknown" {
		t.Error("unexpected Type string values")
	}
}
