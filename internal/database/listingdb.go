package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/seanmcmahon101/TheRightmoveScraper/internal/model"
)

// ListingDB provides SQLite-based storage for scrape runs and their
// listings. It manages the connection and provides the write path used by
// the CLI's --save flag plus simple read-back queries for inspection.
type ListingDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ListingDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a ListingDB in the specified directory.
// If CreateIfNotExists is false and the database doesn't exist, an error
// is returned.
func Open(dbDir string, opts Options) (*ListingDB, error) {
	dbPath := filepath.Join(dbDir, "rightmove.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY without retry loops.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	ldb := &ListingDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := ldb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return ldb, nil
}

// Close closes the database connection.
func (ldb *ListingDB) Close() error {
	return ldb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (ldb *ListingDB) createTables() error {
	schema := `
	-- One row per scrape run
	CREATE TABLE IF NOT EXISTS scrapes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		search_url TEXT NOT NULL,
		channel TEXT NOT NULL,
		scraped_at DATETIME NOT NULL,
		total_reported INTEGER NOT NULL DEFAULT 0,
		pages_fetched INTEGER NOT NULL DEFAULT 0,
		listing_count INTEGER NOT NULL DEFAULT 0,
		skipped INTEGER NOT NULL DEFAULT 0,
		degraded INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_scrapes_url ON scrapes(search_url);
	CREATE INDEX IF NOT EXISTS idx_scrapes_scraped_at ON scrapes(scraped_at);

	-- One row per listing per scrape run, in result-set order
	CREATE TABLE IF NOT EXISTS listings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scrape_id INTEGER NOT NULL REFERENCES scrapes(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		property_id TEXT NOT NULL,
		price REAL,
		property_type TEXT,
		bedrooms INTEGER,
		bathrooms INTEGER,
		address TEXT,
		postcode_district TEXT,
		postcode TEXT,
		agent TEXT,
		agent_url TEXT,
		url TEXT,
		floorplan_url TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_listings_scrape ON listings(scrape_id);
	CREATE INDEX IF NOT EXISTS idx_listings_property ON listings(property_id);
	`

	_, err := ldb.db.Exec(schema)
	return err
}

// SaveResultSet persists one scrape run and all of its listings in a single
// transaction, returning the new scrape row's ID. Listing order is recorded
// in the position column so read-back preserves the result-set order.
func (ldb *ListingDB) SaveResultSet(ctx context.Context, rs *model.ResultSet) (int64, error) {
	tx, err := ldb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	res, err := tx.ExecContext(ctx, `
		INSERT INTO scrapes (search_url, channel, scraped_at, total_reported, pages_fetched, listing_count, skipped, degraded)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rs.SearchURL,
		string(rs.Channel),
		rs.ScrapedAt.UTC().Format(time.RFC3339),
		rs.TotalReported,
		rs.PagesFetched,
		rs.Len(),
		rs.Skipped,
		boolToInt(rs.Degraded),
	)
	if err != nil {
		return 0, fmt.Errorf("insert scrape: %w", err)
	}

	scrapeID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("scrape id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO listings (scrape_id, position, property_id, price, property_type, bedrooms, bathrooms,
			address, postcode_district, postcode, agent, agent_url, url, floorplan_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare listing insert: %w", err)
	}
	defer stmt.Close() //nolint:errcheck // Best effort cleanup

	for i := range rs.Listings {
		l := &rs.Listings[i]
		_, err := stmt.ExecContext(ctx,
			scrapeID,
			i,
			l.ID,
			nullFloat(l.Price),
			l.PropertyType,
			nullInt(l.Bedrooms),
			nullInt(l.Bathrooms),
			l.Address,
			l.PostcodeDistrict,
			l.Postcode,
			l.Agent,
			l.AgentURL,
			l.URL,
			nullString(l.FloorplanURL),
		)
		if err != nil {
			return 0, fmt.Errorf("insert listing %s: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	return scrapeID, nil
}

// ScrapeMetadata summarizes one stored scrape run.
type ScrapeMetadata struct {
	ID           int64
	SearchURL    string
	Channel      string
	ScrapedAt    time.Time
	ListingCount int
	Skipped      int
	Degraded     bool
}

// ListScrapes returns metadata for all stored scrape runs, newest first.
func (ldb *ListingDB) ListScrapes(ctx context.Context) ([]ScrapeMetadata, error) {
	rows, err := ldb.db.QueryContext(ctx, `
		SELECT id, search_url, channel, scraped_at, listing_count, skipped, degraded
		FROM scrapes ORDER BY scraped_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query scrapes: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Best effort cleanup

	var metas []ScrapeMetadata
	for rows.Next() {
		var m ScrapeMetadata
		var scrapedAt string
		var degraded int
		if err := rows.Scan(&m.ID, &m.SearchURL, &m.Channel, &scrapedAt, &m.ListingCount, &m.Skipped, &degraded); err != nil {
			return nil, fmt.Errorf("scan scrape: %w", err)
		}
		m.ScrapedAt = parseTimestamp(scrapedAt)
		m.Degraded = degraded != 0
		metas = append(metas, m)
	}

	return metas, rows.Err()
}

// GetListings returns the listings of a stored scrape run in their original
// result-set order.
func (ldb *ListingDB) GetListings(ctx context.Context, scrapeID int64) ([]model.Listing, error) {
	rows, err := ldb.db.QueryContext(ctx, `
		SELECT property_id, price, property_type, bedrooms, bathrooms,
			address, postcode_district, postcode, agent, agent_url, url, floorplan_url
		FROM listings WHERE scrape_id = ? ORDER BY position`, scrapeID)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Best effort cleanup

	var listings []model.Listing
	for rows.Next() {
		var l model.Listing
		var price sql.NullFloat64
		var bedrooms, bathrooms sql.NullInt64
		var floorplan sql.NullString
		err := rows.Scan(&l.ID, &price, &l.PropertyType, &bedrooms, &bathrooms,
			&l.Address, &l.PostcodeDistrict, &l.Postcode, &l.Agent, &l.AgentURL, &l.URL, &floorplan)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}

		if price.Valid {
			l.Price = &price.Float64
		}
		if bedrooms.Valid {
			n := int(bedrooms.Int64)
			l.Bedrooms = &n
		}
		if bathrooms.Valid {
			n := int(bathrooms.Int64)
			l.Bathrooms = &n
		}
		if floorplan.Valid {
			l.FloorplanURL = &floorplan.String
		}

		listings = append(listings, l)
	}

	return listings, rows.Err()
}

// nullFloat converts a *float64 to its SQL representation.
func nullFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// nullInt converts a *int to its SQL representation.
func nullInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

// nullString converts a *string to its SQL representation.
func nullString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// boolToInt converts a bool to SQLite's integer representation.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// parseTimestamp parses a stored timestamp, returning the zero time on
// failure rather than an error: a malformed timestamp should not make
// stored listings unreadable.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
