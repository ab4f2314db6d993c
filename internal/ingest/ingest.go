// ABOUTME: Ingestion pipeline orchestrating fetch, parse, dedup, and persist per category
// ABOUTME: Fans sources out over a bounded worker pool and aggregates one report per run

package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mio/newsgather/internal/fetch"
	"github.com/mio/newsgather/internal/models"
	"github.com/mio/newsgather/internal/storage"
	"github.com/mio/newsgather/internal/textutil"
)

// Errors that make a run fail outright. Per-source and per-item failures are
// accumulated in the report instead.
var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrNoSources       = errors.New("no active sources configured")
)

// DefaultWorkers bounds concurrent source fetches within one run. Categories
// rarely carry more than a handful of sources.
const DefaultWorkers = 4

// DefaultFetchTimeout bounds a single feed fetch.
const DefaultFetchTimeout = 20 * time.Second

// Store is the narrow persistence surface the pipeline needs.
type Store interface {
	ListActiveSources(category string) ([]*models.FeedSource, error)
	ArticleExists(url string) (bool, error)
	CreateArticle(article *models.Article) error
}

// Pipeline ingests news articles from configured feed sources.
type Pipeline struct {
	store        Store
	workers      int
	fetchTimeout time.Duration
}

// Options tunes a Pipeline. Zero values fall back to defaults.
type Options struct {
	Workers      int
	FetchTimeout time.Duration
}

// New creates a Pipeline over the given store.
func New(store Store, opts Options) *Pipeline {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	return &Pipeline{
		store:        store,
		workers:      opts.Workers,
		fetchTimeout: opts.FetchTimeout,
	}
}

// Run ingests one category: every active source is fetched, parsed, deduped
// against the whole article corpus by URL, summarized, and persisted. Source
// and item failures end up in the report's error list; only an unknown
// category or an empty source registry fails the run itself.
func (p *Pipeline) Run(ctx context.Context, category string) (*models.Report, error) {
	if !models.ValidCategory(category) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	sources, err := p.store.ListActiveSources(category)
	if err != nil {
		return nil, fmt.Errorf("list sources for %q: %w", category, err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w for category %q", ErrNoSources, category)
	}

	report := &models.Report{
		Success:          true,
		Articles:         []models.Article{},
		Category:         category,
		SourcesProcessed: len(sources),
	}

	jobs := make(chan *models.FeedSource)
	var mu sync.Mutex
	var wg sync.WaitGroup

	workers := p.workers
	if workers > len(sources) {
		workers = len(sources)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for src := range jobs {
				articles, errMsgs := p.ingestSource(ctx, src)
				mu.Lock()
				report.Articles = append(report.Articles, articles...)
				report.Errors = append(report.Errors, errMsgs...)
				mu.Unlock()
			}
		}()
	}

	for _, src := range sources {
		jobs <- src
	}
	close(jobs)
	wg.Wait()

	report.TotalArticles = len(report.Articles)
	return report, nil
}

// ingestSource fetches one source and persists its new items. Returns the
// inserted articles and any error messages worth reporting; a duplicate URL
// is a silent skip, not an error.
func (p *Pipeline) ingestSource(ctx context.Context, src *models.FeedSource) ([]models.Article, []string) {
	fetchCtx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	items, err := fetch.FetchFeed(fetchCtx, src.URL)
	if err != nil {
		// A cancelled fetch counts the same as a failed one.
		return nil, []string{fmt.Sprintf("%s: %v", src.Name, err)}
	}

	var inserted []models.Article
	var errMsgs []string
	for _, item := range items {
		exists, err := p.store.ArticleExists(item.Link)
		if err != nil {
			errMsgs = append(errMsgs, fmt.Sprintf("%s: check %s: %v", src.Name, item.Link, err))
			continue
		}
		if exists {
			continue
		}

		description := item.Description
		if description == "" {
			description = item.Title
		}

		article := models.NewArticle(
			item.Title,
			textutil.Summarize(description),
			item.Link,
			src.Name,
			src.Category,
			item.PublishedAt,
		)
		article.Content = item.Description

		if err := p.store.CreateArticle(article); err != nil {
			if storage.IsDuplicate(err) {
				// Another source in this run beat us to the URL.
				continue
			}
			errMsgs = append(errMsgs, fmt.Sprintf("%s: insert %s: %v", src.Name, item.Link, err))
			continue
		}
		inserted = append(inserted, *article)
	}
	return inserted, errMsgs
}

// RunAll ingests every category that has active sources, one report per
// category. Categories without sources are skipped rather than failing the
// whole sweep.
func (p *Pipeline) RunAll(ctx context.Context) ([]*models.Report, error) {
	var reports []*models.Report
	for _, category := range models.Categories {
		report, err := p.Run(ctx, category)
		if err != nil {
			if errors.Is(err, ErrNoSources) {
				continue
			}
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
