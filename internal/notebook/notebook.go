// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notebook models Jupyter notebooks (nbformat 4) and serializes them
// deterministically, so converting an unchanged document twice produces
// byte-identical output.
package notebook

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/notebook-engine/pkg/types"
)

// CellType distinguishes the two cell variants.
type CellType string

const (
	CellMarkdown CellType = "markdown"
	CellCode     CellType = "code"
)

// CellMetadata carries per-cell metadata. For code cells built from chunk
// headers it records the declared language and the verbatim option string.
type CellMetadata struct {
	Language string `json:"language,omitempty"`
	Options  string `json:"options,omitempty"`
}

// Cell is the atomic notebook unit: either prose (markdown) or source (code).
// Source holds lines without trailing newlines. Code cells always serialize
// with an empty outputs list and a null execution count.
type Cell struct {
	Type           CellType     `json:"cell_type"`
	Metadata       CellMetadata `json:"metadata"`
	Source         []string     `json:"source"`
	Outputs        []any        `json:"outputs,omitempty"`
	ExecutionCount *int         `json:"execution_count,omitempty"`
}

// Markdown builds a markup cell from prose text.
func Markdown(text string) Cell {
	return Cell{Type: CellMarkdown, Source: splitLines(text)}
}

// Code builds a code cell from source text.
func Code(text string, meta CellMetadata) Cell {
	return Cell{Type: CellCode, Metadata: meta, Source: splitLines(text)}
}

// MarshalJSON emits the nbformat shape for each variant: markdown cells have
// no outputs or execution_count keys, code cells always have both.
func (c Cell) MarshalJSON() ([]byte, error) {
	src := c.Source
	if src == nil {
		src = []string{}
	}

	if c.Type == CellCode {
		return json.Marshal(struct {
			Type           CellType     `json:"cell_type"`
			Metadata       CellMetadata `json:"metadata"`
			Source         []string     `json:"source"`
			Outputs        []any        `json:"outputs"`
			ExecutionCount *int         `json:"execution_count"`
		}{c.Type, c.Metadata, src, []any{}, nil})
	}

	return json.Marshal(struct {
		Type     CellType     `json:"cell_type"`
		Metadata CellMetadata `json:"metadata"`
		Source   []string     `json:"source"`
	}{c.Type, c.Metadata, src})
}

// ColabMetadata mirrors the Colab extension block the tutorial notebooks carry.
type ColabMetadata struct {
	TOCVisible bool `json:"toc_visible"`
}

// Metadata is the notebook-level metadata block.
type Metadata struct {
	Kernelspec types.KernelSpec `json:"kernelspec"`
	Colab      ColabMetadata    `json:"colab"`
	Title      string           `json:"title,omitempty"`
}

// Notebook is an ordered sequence of cells plus file-level metadata.
type Notebook struct {
	Cells         []Cell   `json:"cells"`
	Metadata      Metadata `json:"metadata"`
	NBFormat      int      `json:"nbformat"`
	NBFormatMinor int      `json:"nbformat_minor"`
}

// New returns an empty notebook for the given kernel.
func New(kernel types.KernelSpec, title string) *Notebook {
	return &Notebook{
		Cells: []Cell{},
		Metadata: Metadata{
			Kernelspec: kernel,
			Colab:      ColabMetadata{TOCVisible: true},
			Title:      title,
		},
		NBFormat:      4,
		NBFormatMinor: 5,
	}
}

// Append adds cells in order.
func (nb *Notebook) Append(cells ...Cell) {
	nb.Cells = append(nb.Cells, cells...)
}

// CodeCells returns the number of code cells.
func (nb *Notebook) CodeCells() int {
	n := 0
	for _, c := range nb.Cells {
		if c.Type == CellCode {
			n++
		}
	}
	return n
}

// Marshal serializes the notebook with one-space indentation and a trailing
// newline. Field order is fixed by the struct definitions, so serialization
// is deterministic.
func (nb *Notebook) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(nb, "", " ")
	if err != nil {
		return nil, fmt.Errorf("serializing notebook: %w", err)
	}
	return append(data, '\n'), nil
}

// Load reads and decodes a notebook file.
func Load(path string) (*Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading notebook %s: %w", path, err)
	}
	var nb Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("decoding notebook %s: %w", path, err)
	}
	return &nb, nil
}

// MarkdownText concatenates the text of all markdown cells, for indexing.
func (nb *Notebook) MarkdownText() string {
	var b strings.Builder
	for _, c := range nb.Cells {
		if c.Type != CellMarkdown {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(strings.Join(c.Source, "\n"))
	}
	return b.String()
}

// splitLines breaks text into source lines without trailing newlines.
func splitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	return strings.Split(text, "\n")
}
