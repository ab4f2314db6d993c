// ABOUTME: Report model aggregating the outcome of one ingestion run
// ABOUTME: Constructed fresh per run and returned to the caller, never persisted

package models

// Report summarizes a single ingestion run for one category: the articles
// inserted, the per-source error messages, and how many sources were
// processed. Success stays true on partial failure; only a request-level
// validation problem (unknown category, zero configured sources) makes the
// run itself fail.
type Report struct {
	Success          bool      `json:"success"`
	Articles         []Article `json:"articles"`
	TotalArticles    int       `json:"totalArticles"`
	Errors           []string  `json:"errors,omitempty"`
	Category         string    `json:"category"`
	SourcesProcessed int       `json:"sourcesProcessed"`
}
