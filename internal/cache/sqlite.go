// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/insight-engine/pkg/types"
)

const (
	dbFile     = "cache.db"
	table      = "category_cache"
	exportBase = "export"

	// Fixed-width so updated_at sorts lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// SQLite is a Cache persisted in dir/cache.db.
type SQLite struct {
	db  *sql.DB
	dir string
	now func() time.Time
}

// Open opens or creates the cache database under dir.
func Open(dir string) (*SQLite, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &SQLite{db: db, dir: dir, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Dir returns the cache directory.
func (s *SQLite) Dir() string {
	return s.dir
}

func (s *SQLite) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS ` + table + ` (
		query_key TEXT PRIMARY KEY,
		query TEXT NOT NULL,
		run_id TEXT,
		categories TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Get returns the cached entry for query.
func (s *SQLite) Get(ctx context.Context, query string) (Entry, bool, error) {
	q, args, err := sq.Select("query", "run_id", "categories", "updated_at").
		From(table).
		Where(sq.Eq{"query_key": Key(query)}).
		ToSql()
	if err != nil {
		return Entry{}, false, fmt.Errorf("building cache query: %w", err)
	}

	e, err := scanEntry(s.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

// Set upserts the entry for its query.
func (s *SQLite) Set(ctx context.Context, entry Entry) error {
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = s.now().UTC()
	}
	data, err := json.Marshal(entry.Categories)
	if err != nil {
		return fmt.Errorf("encoding categories: %w", err)
	}

	q, args, err := sq.Insert(table).
		Columns("query_key", "query", "run_id", "categories", "updated_at").
		Values(Key(entry.Query), entry.Query, entry.RunID, string(data), entry.UpdatedAt.UTC().Format(timeLayout)).
		Suffix(`ON CONFLICT(query_key) DO UPDATE SET
			query=excluded.query, run_id=excluded.run_id,
			categories=excluded.categories, updated_at=excluded.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("building cache upsert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Entries lists cached entries, most recently updated first. A limit of
// zero or less returns all of them.
func (s *SQLite) Entries(ctx context.Context, limit int) ([]Entry, error) {
	b := sq.Select("query", "run_id", "categories", "updated_at").
		From(table).
		OrderBy("updated_at DESC", "query_key")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	q, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building cache listing: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing cache entries: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the entry for query. Missing entries are not an error.
func (s *SQLite) Delete(ctx context.Context, query string) error {
	q, args, err := sq.Delete(table).Where(sq.Eq{"query_key": Key(query)}).ToSql()
	if err != nil {
		return fmt.Errorf("building cache delete: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("deleting cache entry: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		e         Entry
		runID     sql.NullString
		catsJSON  string
		updatedAt string
	)
	if err := row.Scan(&e.Query, &runID, &catsJSON, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("scanning cache entry: %w", err)
	}
	e.RunID = runID.String

	var cats []types.Category
	if err := json.Unmarshal([]byte(catsJSON), &cats); err != nil {
		return Entry{}, fmt.Errorf("decoding cached categories for %q: %w", e.Query, err)
	}
	e.Categories = cats

	t, err := time.Parse(timeLayout, updatedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing cache timestamp for %q: %w", e.Query, err)
	}
	e.UpdatedAt = t
	return e, nil
}
