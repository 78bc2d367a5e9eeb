// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package repair normalizes notebook files whose code cells are missing the
// outputs or execution_count keys. Notebooks missing either fail to open in
// Colab, so the repair pass exists to fix hand-edited or truncated files.
package repair

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pdiddy/notebook-engine/internal/discover"
	"github.com/pdiddy/notebook-engine/pkg/types"
)

// Result holds counts from a repair run.
type Result struct {
	Fixed  int
	OK     int
	Failed int
}

// Total returns the number of notebooks examined.
func (r Result) Total() int {
	return r.Fixed + r.OK + r.Failed
}

// HasFailures reports whether any notebook could not be repaired.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Run repairs every .ipynb under cfg.Dir. Files are decoded generically so
// unrecognized fields survive the rewrite; only changed files are written
// back. Per-file failures (bad JSON, not a notebook) never abort the run.
func Run(cfg types.RepairConfig, w io.Writer) (Result, error) {
	rels, err := discover.Notebooks(cfg.Dir)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, rel := range rels {
		path := filepath.Join(cfg.Dir, rel)
		fixed, err := repairFile(path)
		switch {
		case err != nil:
			result.Failed++
			fmt.Fprintf(w, "failed: %s (%v)\n", rel, err)
			slog.Warn("repair failed", "notebook", rel, "error", err)
		case fixed:
			result.Fixed++
			fmt.Fprintf(w, "fixed: %s\n", rel)
		default:
			result.OK++
			if cfg.Verbose {
				fmt.Fprintf(w, "ok: %s\n", rel)
			}
		}
	}

	fmt.Fprintf(w, "\nRepair summary: %d fixed, %d ok, %d failed (total: %d)\n",
		result.Fixed, result.OK, result.Failed, result.Total())
	return result, nil
}

// repairFile ensures every code cell in the notebook at path carries outputs
// and execution_count. It reports whether the file was rewritten.
func repairFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	var nb map[string]any
	if err := json.Unmarshal(data, &nb); err != nil {
		return false, fmt.Errorf("decoding: %w", err)
	}

	rawCells, ok := nb["cells"].([]any)
	if !ok {
		return false, fmt.Errorf("no cells list; not a notebook")
	}

	changed := false
	for _, raw := range rawCells {
		cell, ok := raw.(map[string]any)
		if !ok || cell["cell_type"] != "code" {
			continue
		}
		if _, ok := cell["outputs"]; !ok {
			cell["outputs"] = []any{}
			changed = true
		}
		if _, ok := cell["execution_count"]; !ok {
			cell["execution_count"] = nil
			changed = true
		}
	}

	if !changed {
		return false, nil
	}

	out, err := json.MarshalIndent(nb, "", " ")
	if err != nil {
		return false, fmt.Errorf("encoding: %w", err)
	}
	out = append(out, '\n')

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
