// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists an index of converted notebooks in SQLite with
// full-text search over their prose, so collection maintainers can find
// which tutorial covers a topic without opening every notebook.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/notebook-engine/internal/discover"
	"github.com/pdiddy/notebook-engine/internal/notebook"
	"github.com/pdiddy/notebook-engine/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "catalog.db"
)

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	catalogDir string
	maxResults int
}

// NewStore opens or creates the catalog database at catalogDir/index/catalog.db,
// creating the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.CatalogDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
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
		catalogDir: cfg.CatalogDir,
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
		`CREATE TABLE IF NOT EXISTS notebooks (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			notebook_path TEXT NOT NULL,
			title TEXT,
			kernel TEXT,
			cells INTEGER,
			code_cells INTEGER,
			prose TEXT,
			indexed_at TEXT,
			run_id TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS index_status (
			notebook_id TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT,
			indexed INTEGER,
			updated INTEGER,
			skipped INTEGER,
			failed INTEGER
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
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='notebooks_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE notebooks_fts USING fts5(title, prose, content=notebooks, content_rowid=rowid)`,
			`CREATE TRIGGER notebooks_ai AFTER INSERT ON notebooks BEGIN
				INSERT INTO notebooks_fts(rowid, title, prose) VALUES (new.rowid, new.title, new.prose);
			END`,
			`CREATE TRIGGER notebooks_ad AFTER DELETE ON notebooks BEGIN
				INSERT INTO notebooks_fts(notebooks_fts, rowid, title, prose) VALUES('delete', old.rowid, old.title, old.prose);
			END`,
			`CREATE TRIGGER notebooks_au AFTER UPDATE ON notebooks BEGIN
				INSERT INTO notebooks_fts(notebooks_fts, rowid, title, prose) VALUES('delete', old.rowid, old.title, old.prose);
				INSERT INTO notebooks_fts(rowid, title, prose) VALUES (new.rowid, new.title, new.prose);
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

// IngestSummary holds counts from a catalog indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of notebooks processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest walks notebooksDir for .ipynb files and populates the database.
// Unchanged files (by modification time) are skipped; changed ones are
// re-indexed. Each run records a row in runs with a fresh UUID.
func (s *Store) Ingest(ctx context.Context, notebooksDir string, w io.Writer) (IngestSummary, error) {
	rels, err := discover.Notebooks(notebooksDir)
	if err != nil {
		return IngestSummary{}, err
	}

	runID := uuid.NewString()
	startedAt := time.Now().UTC().Format(time.RFC3339)

	var summary IngestSummary

	for _, rel := range rels {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		nbID := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
		path := filepath.Join(notebooksDir, rel)

		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", nbID, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM index_status WHERE notebook_id = ?`, nbID,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", nbID)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		nb, err := notebook.Load(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", nbID, err)
			summary.Failed++
			continue
		}

		if err := s.ingestNotebook(ctx, nbID, rel, nb, modTime, runID, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", nbID, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d cells)\n", nbID, len(nb.Cells))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s (%d cells)\n", nbID, len(nb.Cells))
			summary.Indexed++
		}
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, indexed, updated, skipped, failed) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, startedAt, summary.Indexed, summary.Updated, summary.Skipped, summary.Failed,
	); err != nil {
		return summary, fmt.Errorf("recording run: %w", err)
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

func (s *Store) ingestNotebook(ctx context.Context, nbID, rel string, nb *notebook.Notebook, modTime, runID string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	indexedAt := time.Now().UTC().Format(time.RFC3339)

	if isUpdate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM notebooks WHERE id = ?`, nbID); err != nil {
			return fmt.Errorf("removing stale entry: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO notebooks (id, notebook_path, title, kernel, cells, code_cells, prose, indexed_at, run_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nbID, filepath.ToSlash(rel), nb.Metadata.Title, nb.Metadata.Kernelspec.Name,
		len(nb.Cells), nb.CodeCells(), nb.MarkdownText(), indexedAt, runID,
	); err != nil {
		return fmt.Errorf("inserting notebook: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO index_status (notebook_id, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(notebook_id) DO UPDATE SET file_mod_time = excluded.file_mod_time`,
		nbID, modTime,
	); err != nil {
		return fmt.Errorf("updating index status: %w", err)
	}

	return tx.Commit()
}
