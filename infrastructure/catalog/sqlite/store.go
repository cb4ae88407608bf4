// ABOUTME: SQLite-backed podcast catalog store
// ABOUTME: Holds the source of truth the search index is rebuilt from

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"podscout-api/core/domain"
)

// Store implements the CatalogStore interface using SQLite.
type Store struct {
	db       *sql.DB
	filePath string
}

// NewStore opens (or creates) the catalog database at filePath.
func NewStore(filePath string) (*Store, error) {
	if filePath == "" {
		filePath = "catalog.db"
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to catalog database: %w", err)
	}

	store := &Store{db: db, filePath: filePath}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS podcasts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			external_id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			publisher TEXT,
			description TEXT,
			feed_url TEXT NOT NULL UNIQUE,
			site_url TEXT,
			added_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_podcasts_feed_url ON podcasts(feed_url);
	`
	_, err := s.db.Exec(query)
	return err
}

// ListPodcasts returns a full snapshot of the catalog, unfiltered. NULL
// publisher and description columns come back as empty strings so the
// indexed form never carries nulls.
func (s *Store) ListPodcasts(ctx context.Context) ([]domain.Podcast, error) {
	query := `
		SELECT id, external_id, title, publisher, description, feed_url, site_url, added_at
		FROM podcasts
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list podcasts: %w", err)
	}
	defer rows.Close()

	var podcasts []domain.Podcast
	for rows.Next() {
		var p domain.Podcast
		var publisher, description, siteURL sql.NullString
		var addedAt int64
		if err := rows.Scan(&p.ID, &p.ExternalID, &p.Title, &publisher, &description, &p.FeedURL, &siteURL, &addedAt); err != nil {
			return nil, fmt.Errorf("failed to scan podcast row: %w", err)
		}
		p.Publisher = publisher.String
		p.Description = description.String
		p.SiteURL = siteURL.String
		p.AddedAt = time.Unix(addedAt, 0)
		podcasts = append(podcasts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read podcast rows: %w", err)
	}
	return podcasts, nil
}

// UpsertPodcast inserts or updates a podcast keyed by its external ID and
// returns the stored row with its internal ID populated.
func (s *Store) UpsertPodcast(ctx context.Context, p domain.Podcast) (domain.Podcast, error) {
	if p.AddedAt.IsZero() {
		p.AddedAt = time.Now()
	}

	query := `
		INSERT INTO podcasts (external_id, title, publisher, description, feed_url, site_url, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(external_id) DO UPDATE SET
			title = excluded.title,
			publisher = excluded.publisher,
			description = excluded.description,
			feed_url = excluded.feed_url,
			site_url = excluded.site_url
	`
	_, err := s.db.ExecContext(ctx, query,
		p.ExternalID, p.Title, p.Publisher, p.Description, p.FeedURL, p.SiteURL, p.AddedAt.Unix())
	if err != nil {
		return domain.Podcast{}, fmt.Errorf("failed to upsert podcast: %w", err)
	}

	row := s.db.QueryRowContext(ctx, "SELECT id, added_at FROM podcasts WHERE external_id = ?", p.ExternalID)
	var addedAt int64
	if err := row.Scan(&p.ID, &addedAt); err != nil {
		return domain.Podcast{}, fmt.Errorf("failed to read upserted podcast: %w", err)
	}
	p.AddedAt = time.Unix(addedAt, 0)
	return p, nil
}

// CountPodcasts returns the number of rows in the catalog.
func (s *Store) CountPodcasts(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM podcasts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count podcasts: %w", err)
	}
	return count, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
