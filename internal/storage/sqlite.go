// ABOUTME: SQLite storage implementation using modernc.org/sqlite (pure Go)
// ABOUTME: Provides source and article persistence with a unique URL constraint and FTS5 search

package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mio/newsgather/internal/models"
)

// ErrNotFound is returned when a source or article lookup matches nothing.
var ErrNotFound = errors.New("not found")

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite storage instance.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	// WAL mode for concurrent category runs
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the database tables if they don't exist. The UNIQUE
// constraint on articles.url backs the corpus-wide dedup: a race between two
// sources surfacing the same URL resolves to one insert and one benign
// duplicate error.
func (s *SQLiteStore) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sources (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			url TEXT UNIQUE NOT NULL,
			category TEXT NOT NULL,
			active INTEGER DEFAULT 1,
			created_at TIMESTAMP NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_sources_category ON sources(category);

		CREATE TABLE IF NOT EXISTS articles (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT UNIQUE NOT NULL,
			title TEXT NOT NULL,
			summary TEXT,
			url TEXT UNIQUE NOT NULL,
			source TEXT NOT NULL,
			category TEXT NOT NULL,
			published_at TIMESTAMP,
			topics TEXT,
			content TEXT,
			created_at TIMESTAMP NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_articles_url ON articles(url);
		CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category);
		CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at);

		-- FTS5 for article search
		CREATE VIRTUAL TABLE IF NOT EXISTS articles_fts USING fts5(
			title,
			summary,
			content,
			content=articles,
			content_rowid=rowid
		);

		-- Triggers to keep FTS in sync
		CREATE TRIGGER IF NOT EXISTS articles_ai AFTER INSERT ON articles BEGIN
			INSERT INTO articles_fts(rowid, title, summary, content)
			VALUES (new.rowid, new.title, new.summary, new.content);
		END;

		CREATE TRIGGER IF NOT EXISTS articles_ad AFTER DELETE ON articles BEGIN
			INSERT INTO articles_fts(articles_fts, rowid, title, summary, content)
			VALUES ('delete', old.rowid, old.title, old.summary, old.content);
		END;
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// IsDuplicate reports whether err is a unique-constraint violation on insert.
func IsDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Source registry

// CreateSource stores a new feed source.
func (s *SQLiteStore) CreateSource(source *models.FeedSource) error {
	query := `
		INSERT INTO sources (id, name, url, category, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		source.ID, source.Name, source.URL, source.Category,
		boolToInt(source.Active), source.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert source: %w", err)
	}
	return nil
}

// GetSourceByURL finds a source by its feed URL.
func (s *SQLiteStore) GetSourceByURL(url string) (*models.FeedSource, error) {
	query := `
		SELECT id, name, url, category, active, created_at
		FROM sources WHERE url = ?
	`
	return s.scanSource(s.db.QueryRow(query, url))
}

// ListSources returns all sources, newest first.
func (s *SQLiteStore) ListSources() ([]*models.FeedSource, error) {
	query := `
		SELECT id, name, url, category, active, created_at
		FROM sources ORDER BY created_at DESC
	`
	return s.querySources(query)
}

// ListActiveSources returns the active sources for a category.
func (s *SQLiteStore) ListActiveSources(category string) ([]*models.FeedSource, error) {
	query := `
		SELECT id, name, url, category, active, created_at
		FROM sources WHERE category = ? AND active = 1
		ORDER BY created_at ASC
	`
	return s.querySources(query, category)
}

// SetSourceActive toggles a source's active flag.
func (s *SQLiteStore) SetSourceActive(id string, active bool) error {
	result, err := s.db.Exec(`UPDATE sources SET active = ? WHERE id = ?`, boolToInt(active), id)
	if err != nil {
		return fmt.Errorf("update source: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("source %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteSource removes a source. Articles already ingested stay.
func (s *SQLiteStore) DeleteSource(id string) error {
	result, err := s.db.Exec(`DELETE FROM sources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete source: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("source %s: %w", id, ErrNotFound)
	}
	return nil
}

// Article store

// CreateArticle inserts an article. A URL collision surfaces as an error
// satisfying IsDuplicate.
func (s *SQLiteStore) CreateArticle(article *models.Article) error {
	topics, err := json.Marshal(article.Topics)
	if err != nil {
		return fmt.Errorf("encode topics: %w", err)
	}

	query := `
		INSERT INTO articles (id, title, summary, url, source, category, published_at, topics, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.Exec(query,
		article.ID, article.Title, article.Summary, article.URL,
		article.Source, article.Category, article.PublishedAt,
		string(topics), article.Content, article.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// ArticleExists reports whether any article is stored under url.
func (s *SQLiteStore) ArticleExists(url string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM articles WHERE url = ?`
	if err := s.db.QueryRow(query, url).Scan(&count); err != nil {
		return false, fmt.Errorf("check article exists: %w", err)
	}
	return count > 0, nil
}

// GetArticle retrieves an article by ID.
func (s *SQLiteStore) GetArticle(id string) (*models.Article, error) {
	query := `
		SELECT id, title, summary, url, source, category, published_at, topics, content, created_at
		FROM articles WHERE id = ?
	`
	return s.scanArticle(s.db.QueryRow(query, id))
}

// GetArticleByIDOrPrefix tries an exact ID first, then a prefix match
// (min 6 chars).
func (s *SQLiteStore) GetArticleByIDOrPrefix(ref string) (*models.Article, error) {
	article, err := s.GetArticle(ref)
	if err == nil {
		return article, nil
	}

	if len(ref) < 6 {
		return nil, fmt.Errorf("article %s: %w", ref, ErrNotFound)
	}

	query := `
		SELECT id, title, summary, url, source, category, published_at, topics, content, created_at
		FROM articles WHERE id LIKE ?
	`
	articles, err := s.queryArticles(query, ref+"%")
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("article %s: %w", ref, ErrNotFound)
	}
	if len(articles) > 1 {
		return nil, fmt.Errorf("ambiguous prefix %s matches %d articles", ref, len(articles))
	}
	return articles[0], nil
}

// ListArticles returns articles matching the filter, newest first.
func (s *SQLiteStore) ListArticles(filter *ArticleFilter) ([]*models.Article, error) {
	query := `
		SELECT id, title, summary, url, source, category, published_at, topics, content, created_at
		FROM articles
	`

	var conditions []string
	var args []interface{}

	if filter != nil {
		if filter.Category != nil {
			conditions = append(conditions, "category = ?")
			args = append(args, *filter.Category)
		}
		if filter.Source != nil {
			conditions = append(conditions, "source = ?")
			args = append(args, *filter.Source)
		}
		if filter.Since != nil {
			conditions = append(conditions, "published_at >= ?")
			args = append(args, *filter.Since)
		}
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY published_at DESC"

	if filter != nil {
		if filter.Limit != nil {
			query += fmt.Sprintf(" LIMIT %d", *filter.Limit)
		}
		if filter.Offset != nil {
			if filter.Limit == nil {
				query += " LIMIT -1"
			}
			query += fmt.Sprintf(" OFFSET %d", *filter.Offset)
		}
	}

	return s.queryArticles(query, args...)
}

// Search performs full-text search over titles, summaries, and content.
func (s *SQLiteStore) Search(query string, limit int) ([]*models.Article, error) {
	sqlQuery := `
		SELECT a.id, a.title, a.summary, a.url, a.source, a.category, a.published_at, a.topics, a.content, a.created_at
		FROM articles a
		INNER JOIN articles_fts fts ON a.rowid = fts.rowid
		WHERE articles_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`
	return s.queryArticles(sqlQuery, query, limit)
}

// Statistics

// GetSourceStats returns per-source article counts.
func (s *SQLiteStore) GetSourceStats() ([]SourceStats, error) {
	query := `
		SELECT s.id, s.name, s.category, s.active, COUNT(a.id) AS article_count
		FROM sources s
		LEFT JOIN articles a ON a.source = s.name AND a.category = s.category
		GROUP BY s.id
		ORDER BY s.created_at DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query source stats: %w", err)
	}
	defer rows.Close()

	var stats []SourceStats
	for rows.Next() {
		var row SourceStats
		var active int
		if err := rows.Scan(&row.SourceID, &row.SourceName, &row.Category, &active, &row.ArticleCount); err != nil {
			return nil, fmt.Errorf("scan source stats: %w", err)
		}
		row.Active = active == 1
		stats = append(stats, row)
	}
	return stats, nil
}

// Maintenance

// Compact performs database maintenance (VACUUM).
func (s *SQLiteStore) Compact() error {
	if _, err := s.db.Exec("VACUUM"); err != nil {
		return fmt.Errorf("vacuum: %w", err)
	}
	return nil
}

// Helper functions

func (s *SQLiteStore) querySources(query string, args ...interface{}) ([]*models.FeedSource, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sources: %w", err)
	}
	defer rows.Close()

	var sources []*models.FeedSource
	for rows.Next() {
		var src models.FeedSource
		var active int
		if err := rows.Scan(&src.ID, &src.Name, &src.URL, &src.Category, &active, &src.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		src.Active = active == 1
		sources = append(sources, &src)
	}
	return sources, rows.Err()
}

func (s *SQLiteStore) scanSource(row *sql.Row) (*models.FeedSource, error) {
	var src models.FeedSource
	var active int
	if err := row.Scan(&src.ID, &src.Name, &src.URL, &src.Category, &active, &src.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("source: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scan source: %w", err)
	}
	src.Active = active == 1
	return &src, nil
}

func (s *SQLiteStore) queryArticles(query string, args ...interface{}) ([]*models.Article, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		article, err := scanArticleFields(rows.Scan)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func (s *SQLiteStore) scanArticle(row *sql.Row) (*models.Article, error) {
	article, err := scanArticleFields(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("article: %w", ErrNotFound)
		}
		return nil, err
	}
	return article, nil
}

func scanArticleFields(scan func(dest ...interface{}) error) (*models.Article, error) {
	var article models.Article
	var publishedAt sql.NullTime
	var topics sql.NullString
	if err := scan(
		&article.ID, &article.Title, &article.Summary, &article.URL,
		&article.Source, &article.Category, &publishedAt, &topics,
		&article.Content, &article.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("scan article: %w", err)
	}
	if publishedAt.Valid {
		article.PublishedAt = publishedAt.Time
	}
	if topics.Valid && topics.String != "" {
		if err := json.Unmarshal([]byte(topics.String), &article.Topics); err != nil {
			return nil, fmt.Errorf("decode topics: %w", err)
		}
	}
	return &article, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// GetDefaultDBPath returns the default database path.
func GetDefaultDBPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "./newsgather.db"
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "newsgather", "newsgather.db")
}

var _ Store = (*SQLiteStore)(nil)
