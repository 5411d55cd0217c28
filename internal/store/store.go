// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists extracted measurements in SQLite and serves
// queries and boolean set-algebra operations over them.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/extract-engine/pkg/types"
)

const dbFile = "measurements.db"

// Store manages the measurement SQLite database.
type Store struct {
	db         *sql.DB
	resultsDir string
	indexDir   string
	maxResults int
}

// NewStore opens or creates the measurement database at
// cfg.IndexDir/measurements.db, creating the schema if needed.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		resultsDir: cfg.ResultsDir,
		indexDir:   cfg.IndexDir,
		maxResults: maxResults,
	}

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
		`CREATE TABLE IF NOT EXISTS docs (
			id TEXT PRIMARY KEY
		)`,
		`CREATE TABLE IF NOT EXISTS measurements (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			doc_id TEXT NOT NULL REFERENCES docs(id),
			feature TEXT NOT NULL,
			term TEXT NOT NULL,
			text TEXT NOT NULL,
			start INTEGER NOT NULL,
			end INTEGER NOT NULL,
			condition TEXT,
			x REAL,
			y REAL,
			min_value REAL,
			max_value REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_measurements_doc_id ON measurements(doc_id)`,
		`CREATE INDEX IF NOT EXISTS idx_measurements_feature ON measurements(feature)`,
		`CREATE TABLE IF NOT EXISTS ingest_status (
			doc_id TEXT NOT NULL,
			feature TEXT NOT NULL,
			file_mod_time TEXT,
			PRIMARY KEY (doc_id, feature)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='measurements_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE measurements_fts USING fts5(text, term, content=measurements, content_rowid=rowid)`,
			`CREATE TRIGGER measurements_ai AFTER INSERT ON measurements BEGIN
				INSERT INTO measurements_fts(rowid, text, term) VALUES (new.rowid, new.text, new.term);
			END`,
			`CREATE TRIGGER measurements_ad AFTER DELETE ON measurements BEGIN
				INSERT INTO measurements_fts(measurements_fts, rowid, text, term) VALUES('delete', old.rowid, old.text, old.term);
			END`,
			`CREATE TRIGGER measurements_au AFTER UPDATE ON measurements BEGIN
				INSERT INTO measurements_fts(measurements_fts, rowid, text, term) VALUES('delete', old.rowid, old.text, old.term);
				INSERT INTO measurements_fts(rowid, text, term) VALUES (new.rowid, new.text, new.term);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from an ingest run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of result files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// resultFile mirrors the per-document YAML written by batch extraction.
type resultFile struct {
	DocID        string                    `yaml:"doc_id"`
	Feature      string                    `yaml:"feature"`
	Measurements []types.StoredMeasurement `yaml:"measurements"`
}

// Ingest reads [docID]-measurements.yaml files from the results
// directory and populates the database, skipping files unchanged since
// the last run. On success it writes export.yaml to the index directory.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	entries, err := os.ReadDir(s.resultsDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading results directory %s: %w", s.resultsDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "-measurements.yaml") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		docID := strings.TrimSuffix(entry.Name(), "-measurements.yaml")
		filePath := filepath.Join(s.resultsDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		data, err := os.ReadFile(filePath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}

		var result resultFile
		if err := yaml.Unmarshal(data, &result); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", docID, err)
			summary.Failed++
			continue
		}
		if result.DocID == "" {
			result.DocID = docID
		}

		// status is per (doc, feature): the same document may carry
		// measurements from several extraction runs
		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM ingest_status WHERE doc_id = ? AND feature = ?`,
			result.DocID, result.Feature,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", docID)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		if err := s.ingestDoc(ctx, &result, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d measurements)\n", docID, len(result.Measurements))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d measurements)\n", docID, len(result.Measurements))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	if summary.Indexed > 0 || summary.Updated > 0 {
		if err := s.ExportYAML(ctx); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}

	return summary, nil
}

func (s *Store) ingestDoc(ctx context.Context, result *resultFile, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if isUpdate {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM measurements WHERE doc_id = ? AND feature = ?`,
			result.DocID, result.Feature); err != nil {
			return fmt.Errorf("deleting old measurements: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO docs (id) VALUES (?)`, result.DocID); err != nil {
		return fmt.Errorf("inserting doc: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO measurements (doc_id, feature, term, text, start, end, condition, x, y, min_value, max_value)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range result.Measurements {
		feature := m.Feature
		if feature == "" {
			feature = result.Feature
		}
		_, err := stmt.ExecContext(ctx,
			result.DocID, feature, m.MatchingTerm, m.Text, m.Start, m.End,
			string(m.Condition), nullFloat(m.X), nullFloat(m.Y),
			nullFloat(m.MinValue), nullFloat(m.MaxValue),
		)
		if err != nil {
			return fmt.Errorf("inserting measurement at %d: %w", m.Start, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ingest_status (doc_id, feature, file_mod_time) VALUES (?, ?, ?)
		 ON CONFLICT(doc_id, feature) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		result.DocID, result.Feature, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating ingest status: %w", err)
	}

	return tx.Commit()
}

// ExportYAML writes every stored measurement to indexDir/export.yaml.
func (s *Store) ExportYAML(ctx context.Context) error {
	records, err := s.Retrieve(ctx, QueryOptions{MaxResults: -1})
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}

	path := filepath.Join(s.indexDir, "export.yaml")
	return os.WriteFile(path, data, 0o644)
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
