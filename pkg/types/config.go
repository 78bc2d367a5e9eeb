// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// KernelSpec names the notebook's default execution kernel. Code cells whose
// declared language differs from Language are candidates for magic injection.
type KernelSpec struct {
	// DisplayName is the human-readable kernel name (e.g. "Python 3").
	DisplayName string `json:"display_name" yaml:"display_name"`

	// Language is the kernel's native language identifier (e.g. "python").
	Language string `json:"language" yaml:"language"`

	// Name is the kernel registry name (e.g. "python3", "ir").
	Name string `json:"name" yaml:"name"`
}

// DefaultKernel is the Colab Python runtime the original tutorial notebooks
// target; R chunks execute there through the rpy2 cell magic.
func DefaultKernel() KernelSpec {
	return KernelSpec{DisplayName: "Python 3", Language: "python", Name: "python3"}
}

// ConvertConfig holds settings for one batch conversion job. It is built
// once per invocation and never mutated afterwards.
type ConvertConfig struct {
	// InputDir is the root of the source document tree; it must exist.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir is the root of the notebook output tree; created if absent.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Recursive descends into subdirectories, mirroring the relative layout.
	Recursive bool `json:"recursive" yaml:"recursive"`

	// AddLanguageMagic prepends a %%<lang> line to code cells whose language
	// differs from the kernel's native language.
	AddLanguageMagic bool `json:"add_language_magic" yaml:"add_language_magic"`

	// ColabSetup inserts the rpy2 install and Drive mount preamble before
	// the first magic-prefixed code cell.
	ColabSetup bool `json:"colab_setup" yaml:"colab_setup"`

	// StripLayoutBlocks removes Quarto ::: {layout-...} ... ::: blocks from
	// prose before cell construction.
	StripLayoutBlocks bool `json:"strip_layout_blocks" yaml:"strip_layout_blocks"`

	// Verbose emits one progress line per file.
	Verbose bool `json:"verbose" yaml:"verbose"`

	// Kernel is the default execution kernel stamped into notebook metadata.
	Kernel KernelSpec `json:"kernel" yaml:"kernel"`
}

// RepairConfig holds settings for a notebook repair pass.
type RepairConfig struct {
	// Dir is the root directory searched recursively for .ipynb files.
	Dir string `json:"dir" yaml:"dir"`

	// Verbose emits one line per notebook, including unchanged ones.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// RenameConfig holds settings for a filename slugification pass.
type RenameConfig struct {
	// Dir is the directory whose .ipynb basenames are slugified.
	Dir string `json:"dir" yaml:"dir"`

	// DryRun prints the rename plan without touching the filesystem.
	DryRun bool `json:"dry_run" yaml:"dry_run"`
}

// CatalogConfig holds settings for the notebook catalog.
type CatalogConfig struct {
	// CatalogDir is the directory holding the catalog database
	// (contains index/).
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`

	// NotebooksDir is the root of the converted notebook tree to index.
	NotebooksDir string `json:"notebooks_dir" yaml:"notebooks_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// LogConfig holds settings for the rotating diagnostic log file.
type LogConfig struct {
	// Path is the log file location (default "notebook-engine.log").
	Path string `json:"path" yaml:"path"`

	// Level is the minimum level: debug, info, warn, or error.
	Level string `json:"level" yaml:"level"`

	// MaxSizeMB is the size in megabytes before the file is rotated.
	MaxSizeMB int `json:"max_size_mb" yaml:"max_size_mb"`

	// MaxBackups is the number of rotated files to retain.
	MaxBackups int `json:"max_backups" yaml:"max_backups"`

	// MaxAgeDays is the retention window for rotated files.
	MaxAgeDays int `json:"max_age_days" yaml:"max_age_days"`

	// Compress gzips rotated files.
	Compress bool `json:"compress" yaml:"compress"`
}
