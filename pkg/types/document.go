// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionStatus indicates the outcome of a document-to-notebook conversion.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionWarned  ConversionStatus = "warned"
)

// Document holds paths and metadata for one tutorial source document within
// a conversion batch.
type Document struct {
	// ID is a slug derived from the path relative to the input root
	// (e.g. "06-semi-parametric-models/cox-regression").
	ID string `json:"id" yaml:"id"`

	// SourcePath is the absolute or job-relative path to the source document.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// RelPath is the path relative to the input root; the output notebook
	// mirrors it under the output root.
	RelPath string `json:"rel_path" yaml:"rel_path"`

	// NotebookPath is the path the converted notebook was written to.
	NotebookPath string `json:"notebook_path,omitempty" yaml:"notebook_path,omitempty"`

	// Title is the document title from its front matter, if any.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Status records the per-file outcome.
	Status ConversionStatus `json:"status" yaml:"status"`

	// Warnings lists non-fatal issues found while converting this document.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}
