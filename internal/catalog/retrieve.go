// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Record is one indexed notebook as stored in the catalog.
type Record struct {
	ID           string `json:"id"`
	NotebookPath string `json:"notebook_path"`
	Title        string `json:"title,omitempty"`
	Kernel       string `json:"kernel,omitempty"`
	Cells        int    `json:"cells"`
	CodeCells    int    `json:"code_cells"`
	IndexedAt    string `json:"indexed_at"`
}

// SearchResult is a Record with a prose snippet around the match.
type SearchResult struct {
	Record
	Snippet string `json:"snippet"`
}

// Search runs an FTS5 query over notebook titles and prose, ranked by
// relevance. max limits result count; zero uses the store default.
func (s *Store) Search(ctx context.Context, query string, max int) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query required")
	}
	if max <= 0 {
		max = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT n.id, n.notebook_path, n.title, n.kernel, n.cells, n.code_cells, n.indexed_at,
			snippet(notebooks_fts, 1, '[', ']', '...', 12)
		FROM notebooks_fts
		JOIN notebooks n ON n.rowid = notebooks_fts.rowid
		WHERE notebooks_fts MATCH ?
		ORDER BY notebooks_fts.rank
		LIMIT ?`, query, max)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var (
			r       SearchResult
			title   sql.NullString
			kernel  sql.NullString
			snippet sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.NotebookPath, &title, &kernel,
			&r.Cells, &r.CodeCells, &r.IndexedAt, &snippet); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		r.Title = title.String
		r.Kernel = kernel.String
		r.Snippet = snippet.String
		results = append(results, r)
	}
	return results, rows.Err()
}

// List returns every indexed notebook ordered by ID.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, notebook_path, title, kernel, cells, code_cells, indexed_at
		FROM notebooks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r      Record
			title  sql.NullString
			kernel sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.NotebookPath, &title, &kernel,
			&r.Cells, &r.CodeCells, &r.IndexedAt); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		r.Title = title.String
		r.Kernel = kernel.String
		records = append(records, r)
	}
	return records, rows.Err()
}
