// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists a record of every harvested sequence in a
// SQLite database, so later runs can be audited without re-reading the
// output tree.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/seqharvest/pkg/types"
)

const dbFile = "harvest.db"

// Store manages the harvest catalog SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the catalog database at catalogDir/harvest.db,
// creating the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.CatalogDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.CatalogDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
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
		`CREATE TABLE IF NOT EXISTS sequences (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			accession TEXT NOT NULL,
			from_position TEXT,
			to_position TEXT,
			strand TEXT,
			fetch_url TEXT NOT NULL,
			fasta_path TEXT,
			bytes INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sequences_accession ON sequences(accession)`,
		`CREATE INDEX IF NOT EXISTS idx_sequences_status ON sequences(status)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one harvest outcome. Duplicate accessions get duplicate
// rows; the catalog is an append-only log, not a registry.
func (s *Store) Record(ctx context.Context, rec types.SequenceRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sequences (accession, from_position, to_position, strand, fetch_url, fasta_path, bytes, status, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Accession.Accession,
		nullable(rec.FromPosition), nullable(rec.ToPosition), nullable(rec.Strand),
		rec.FetchURL, rec.FastaPath, rec.Bytes, string(rec.Status),
		rec.FetchedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting catalog row for %s: %w", rec.Accession.Accession, err)
	}
	return nil
}

// List returns the most recent catalog rows, newest first. A limit of zero
// uses the store default.
func (s *Store) List(ctx context.Context, limit int) ([]types.SequenceRecord, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT accession, from_position, to_position, strand, fetch_url, fasta_path, bytes, status, fetched_at
		 FROM sequences ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var records []types.SequenceRecord
	for rows.Next() {
		var (
			rec              types.SequenceRecord
			from, to, strand sql.NullString
			status, fetched  string
		)
		if err := rows.Scan(&rec.Accession.Accession, &from, &to, &strand,
			&rec.FetchURL, &rec.FastaPath, &rec.Bytes, &status, &fetched); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		rec.FromPosition = optional(from)
		rec.ToPosition = optional(to)
		rec.Strand = optional(strand)
		rec.Status = types.FetchStatus(status)
		if t, parseErr := time.Parse(time.RFC3339Nano, fetched); parseErr == nil {
			rec.FetchedAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Summary holds per-status row counts.
type Summary struct {
	Downloaded int
	Skipped    int
	Failed     int
}

// Total returns the number of cataloged fetches.
func (s Summary) Total() int {
	return s.Downloaded + s.Skipped + s.Failed
}

// Summarize counts catalog rows by status.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM sequences GROUP BY status`)
	if err != nil {
		return Summary{}, fmt.Errorf("querying catalog summary: %w", err)
	}
	defer rows.Close()

	var sum Summary
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return Summary{}, fmt.Errorf("scanning summary row: %w", err)
		}
		switch types.FetchStatus(status) {
		case types.FetchDownloaded:
			sum.Downloaded = n
		case types.FetchSkipped:
			sum.Skipped = n
		case types.FetchFailed:
			sum.Failed = n
		}
	}
	return sum, rows.Err()
}

func nullable(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func optional(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
