// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a tree of tutorial documents into a mirrored tree of
// notebooks. Files are processed one at a time in discovery order; a bad
// file is skipped, never aborting the batch.
package convert

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/notebook-engine/internal/discover"
	"github.com/pdiddy/notebook-engine/internal/notebook"
	"github.com/pdiddy/notebook-engine/internal/qmd"
	"github.com/pdiddy/notebook-engine/pkg/types"
)

// NotebookExt is the output file extension.
const NotebookExt = ".ipynb"

// Result holds the outcome of a batch conversion run.
type Result struct {
	Discovered int
	Converted  int
	Skipped    int
	Warned     int

	// Documents records the per-file outcomes in discovery order.
	Documents []types.Document
}

// HasFailures reports whether any file was skipped.
func (r Result) HasFailures() bool {
	return r.Skipped > 0
}

// AllFailed reports whether every discovered file was skipped; only then does
// the batch as a whole count as failed.
func (r Result) AllFailed() bool {
	return r.Discovered > 0 && r.Skipped == r.Discovered
}

// Run converts every recognized document under cfg.InputDir, writing
// notebooks to the mirrored path under cfg.OutputDir. Per-file progress goes
// to w when cfg.Verbose is set; the summary line is always written. The
// returned error is non-nil only for fatal conditions (unreadable input
// root, uncreatable output root).
func Run(cfg types.ConvertConfig, w io.Writer) (Result, error) {
	rels, err := discover.Sources(cfg.InputDir, cfg.Recursive)
	if err != nil {
		return Result{}, err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	result := Result{Discovered: len(rels)}

	// Maps output paths back to their first source, so true path collisions
	// (a/b.qmd and a/b.Rmd) surface as warnings. Last write wins, resolved
	// in discovery order.
	written := make(map[string]string)

	for _, rel := range rels {
		doc := convertFile(cfg, rel, written)
		result.Documents = append(result.Documents, doc)

		switch doc.Status {
		case types.ConversionSkipped:
			result.Skipped++
			if cfg.Verbose {
				fmt.Fprintf(w, "skipped: %s (%s)\n", rel, doc.Warnings[len(doc.Warnings)-1])
			}
		case types.ConversionWarned:
			result.Converted++
			result.Warned++
			if cfg.Verbose {
				fmt.Fprintf(w, "converted: %s -> %s (with warnings)\n", rel, doc.NotebookPath)
			}
		default:
			result.Converted++
			if cfg.Verbose {
				fmt.Fprintf(w, "converted: %s -> %s\n", rel, doc.NotebookPath)
			}
		}

		for _, warn := range doc.Warnings {
			if cfg.Verbose {
				fmt.Fprintf(w, "warning: %s: %s\n", rel, warn)
			}
			slog.Warn("conversion warning", "source", rel, "warning", warn)
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d discovered, %d converted, %d skipped, %d warned\n",
		result.Discovered, result.Converted, result.Skipped, result.Warned)
	slog.Info("batch complete",
		"input", cfg.InputDir, "output", cfg.OutputDir,
		"discovered", result.Discovered, "converted", result.Converted,
		"skipped", result.Skipped, "warned", result.Warned)

	return result, nil
}

// convertFile handles one document: read, parse, build, serialize, write.
// All failures are per-file; the document comes back skipped with the reason
// in its warnings.
func convertFile(cfg types.ConvertConfig, rel string, written map[string]string) types.Document {
	ext := filepath.Ext(rel)
	outRel := strings.TrimSuffix(rel, ext) + NotebookExt

	doc := types.Document{
		ID:           filepath.ToSlash(strings.TrimSuffix(rel, ext)),
		SourcePath:   filepath.Join(cfg.InputDir, rel),
		RelPath:      rel,
		NotebookPath: outRel,
	}

	skip := func(reason string) types.Document {
		doc.Status = types.ConversionSkipped
		doc.NotebookPath = ""
		doc.Warnings = append(doc.Warnings, reason)
		return doc
	}

	data, err := os.ReadFile(doc.SourcePath)
	if err != nil {
		return skip(fmt.Sprintf("reading: %v", err))
	}

	src := qmd.Parse(string(data), qmd.Options{StripLayoutBlocks: cfg.StripLayoutBlocks})
	doc.Warnings = append(doc.Warnings, src.Warnings...)
	if src.Meta != nil {
		doc.Title = src.Meta.Title
	}

	nb := buildNotebook(src, cfg)

	payload, err := nb.Marshal()
	if err != nil {
		return skip(err.Error())
	}

	outPath := filepath.Join(cfg.OutputDir, outRel)
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return skip(fmt.Sprintf("creating output directory: %v", err))
		}
	}
	if err := os.WriteFile(outPath, payload, 0o644); err != nil {
		return skip(fmt.Sprintf("writing notebook: %v", err))
	}

	// Recorded only after a successful write, so a collision warning always
	// refers to a notebook that actually landed.
	if first, ok := written[outRel]; ok {
		doc.Warnings = append(doc.Warnings,
			fmt.Sprintf("output %s already written from %s; overwriting", outRel, first))
	} else {
		written[outRel] = rel
	}

	doc.Status = types.ConversionDone
	if len(doc.Warnings) > 0 {
		doc.Status = types.ConversionWarned
	}
	return doc
}

// buildNotebook maps blocks to cells in order: one markup cell per prose
// span, one code cell per fence. Magic injection and the Colab preamble are
// the only synthesized content.
func buildNotebook(src *qmd.Source, cfg types.ConvertConfig) *notebook.Notebook {
	title := ""
	if src.Meta != nil {
		title = src.Meta.Title
	}
	nb := notebook.New(cfg.Kernel, title)

	native := strings.ToLower(cfg.Kernel.Language)
	setupInserted := false

	for _, block := range src.Blocks {
		if block.Kind == qmd.BlockMarkup {
			nb.Append(notebook.Markdown(block.Text))
			continue
		}

		body := block.Text
		foreign := cfg.AddLanguageMagic && block.Tag != "" && block.Language != native
		if foreign {
			if cfg.ColabSetup && !setupInserted {
				nb.Append(notebook.ColabSetupCells()...)
				setupInserted = true
			}
			if body == "" {
				body = "%%" + block.Tag
			} else {
				body = "%%" + block.Tag + "\n" + body
			}
		}

		nb.Append(notebook.Code(body, notebook.CellMetadata{
			Language: block.Language,
			Options:  block.RawOptions,
		}))
	}

	return nb
}
