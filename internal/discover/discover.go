// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover finds tutorial source documents under an input root in a
// deterministic order, so repeated runs over an unchanged tree convert files
// in the same sequence.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExtensions lists the recognized document extensions, matched
// case-insensitively.
var SourceExtensions = []string{".qmd", ".rmd"}

// Sources returns paths relative to root for every recognized document,
// sorted lexicographically. Without recursive, only root's immediate entries
// are considered. A missing or unreadable root is an error; the caller
// treats it as fatal.
func Sources(root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("input directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %s is not a directory", root)
	}

	var rels []string

	if !recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("reading input directory %s: %w", root, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !isSource(entry.Name()) {
				continue
			}
			rels = append(rels, entry.Name())
		}
		sort.Strings(rels)
		return rels, nil
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSource(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rels = append(rels, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking input directory %s: %w", root, err)
	}

	// WalkDir visits entries in lexical order per directory; sort the full
	// relative paths so ordering is stable regardless of tree shape.
	sort.Strings(rels)
	return rels, nil
}

// Notebooks returns paths relative to root for every .ipynb file under root,
// sorted lexicographically. Used by the repair and catalog passes.
func Notebooks(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("notebook directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("notebook path %s is not a directory", root)
	}

	var rels []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".ipynb") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rels = append(rels, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking notebook directory %s: %w", root, err)
	}

	sort.Strings(rels)
	return rels, nil
}

func isSource(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range SourceExtensions {
		if ext == want {
			return true
		}
	}
	return false
}
