// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package usage

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docgarden/pkg/types"
)

const dbFile = "usage.db"

// Store maintains the SQLite stats index rebuilt incrementally from the
// usage log.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the stats index at indexDir/usage.db, creating
// the schema when absent.
func NewStore(cfg types.UsageConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS events (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			time TEXT NOT NULL,
			path TEXT NOT NULL,
			action TEXT NOT NULL,
			session TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_path ON events(path)`,
		`CREATE TABLE IF NOT EXISTS ingest_status (
			log_file TEXT PRIMARY KEY,
			entries_ingested INTEGER NOT NULL,
			file_mod_time TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from one indexing run.
type IngestSummary struct {
	Appended  int
	Skipped   int
	Malformed int
}

// Ingest indexes new log entries. The log is append-only, so the count of
// entries already ingested doubles as the resume point; an unchanged
// mod time skips the read entirely.
func (s *Store) Ingest(ctx context.Context, log *Log, w io.Writer) (IngestSummary, error) {
	var summary IngestSummary

	info, err := os.Stat(log.Path())
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "no usage log yet")
			return summary, nil
		}
		return summary, fmt.Errorf("stat usage log: %w", err)
	}
	modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

	var ingested int
	var storedModTime string
	err = s.db.QueryRowContext(ctx,
		`SELECT entries_ingested, file_mod_time FROM ingest_status WHERE log_file = ?`, log.Path(),
	).Scan(&ingested, &storedModTime)
	if err != nil && err != sql.ErrNoRows {
		return summary, fmt.Errorf("reading ingest status: %w", err)
	}
	if storedModTime == modTime {
		fmt.Fprintf(w, "skipped %s (unchanged)\n", log.Path())
		return summary, nil
	}

	entries, malformed, err := log.ReadAll()
	if err != nil {
		return summary, err
	}
	summary.Malformed = malformed

	if len(entries) < ingested {
		// The log shrank; it is supposed to be append-only. Rebuild.
		fmt.Fprintf(w, "log truncated, rebuilding index\n")
		if _, err := s.db.ExecContext(ctx, `DELETE FROM events`); err != nil {
			return summary, fmt.Errorf("clearing events: %w", err)
		}
		ingested = 0
	}
	summary.Skipped = ingested

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO events (time, path, action, session) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return summary, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries[ingested:] {
		_, err := stmt.ExecContext(ctx,
			entry.Time.UTC().Format(time.RFC3339), entry.Path, string(entry.Action), entry.Session)
		if err != nil {
			return summary, fmt.Errorf("inserting event: %w", err)
		}
		summary.Appended++
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ingest_status (log_file, entries_ingested, file_mod_time) VALUES (?, ?, ?)
		 ON CONFLICT(log_file) DO UPDATE SET
			entries_ingested=excluded.entries_ingested, file_mod_time=excluded.file_mod_time`,
		log.Path(), len(entries), modTime)
	if err != nil {
		return summary, fmt.Errorf("updating ingest status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return summary, err
	}
	fmt.Fprintf(w, "indexed %d new entries (%d already indexed, %d malformed)\n",
		summary.Appended, summary.Skipped, summary.Malformed)
	return summary, nil
}

// Stats aggregates per-document usage, most recently accessed first.
func (s *Store) Stats(ctx context.Context) ([]types.UsageStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path,
			SUM(CASE WHEN action = 'read' THEN 1 ELSE 0 END),
			SUM(CASE WHEN action = 'edit' THEN 1 ELSE 0 END),
			MAX(time)
		 FROM events GROUP BY path ORDER BY MAX(time) DESC, path`)
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close()

	var stats []types.UsageStats
	for rows.Next() {
		var st types.UsageStats
		var last string
		if err := rows.Scan(&st.Path, &st.Reads, &st.Edits, &last); err != nil {
			return nil, fmt.Errorf("scanning stats row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, last); err == nil {
			st.LastAccess = t
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
