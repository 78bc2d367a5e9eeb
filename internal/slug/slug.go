// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package slug normalizes notebook filenames so the published collection
// uses one consistent naming style.
package slug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/notebook-engine/pkg/types"
)

// foldDiacritics decomposes characters and drops combining marks, so
// "Kaplan–Meier Curvé" slugifies the same as its plain-ASCII spelling.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify lowercases name, folds diacritics, drops punctuation other than
// hyphens, and converts whitespace and hyphens to underscores.
func Slugify(name string) string {
	folded, _, err := transform.String(foldDiacritics, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	lastUnderscore := false
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimRight(b.String(), "_")
}

// Result holds counts from a rename pass.
type Result struct {
	Renamed int
	OK      int
	Skipped int
}

// Rename slugifies the basenames of all .ipynb files directly under cfg.Dir.
// Two files slugifying to the same name is a collision; the later one (in
// lexicographic order) is skipped with a warning. With DryRun the plan is
// printed and nothing is touched.
func Rename(cfg types.RenameConfig, w io.Writer) (Result, error) {
	entries, err := os.ReadDir(cfg.Dir)
	if err != nil {
		return Result{}, fmt.Errorf("reading directory %s: %w", cfg.Dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".ipynb") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var result Result
	taken := make(map[string]string)

	for _, name := range names {
		ext := filepath.Ext(name)
		target := Slugify(strings.TrimSuffix(name, ext)) + ".ipynb"

		if target == name {
			result.OK++
			taken[target] = name
			continue
		}

		if prev, ok := taken[target]; ok {
			result.Skipped++
			fmt.Fprintf(w, "skipped: %s (collides with %s)\n", name, prev)
			continue
		}
		if _, err := os.Stat(filepath.Join(cfg.Dir, target)); err == nil {
			result.Skipped++
			fmt.Fprintf(w, "skipped: %s (%s already exists)\n", name, target)
			continue
		}
		taken[target] = name

		fmt.Fprintf(w, "rename: %s -> %s\n", name, target)
		if cfg.DryRun {
			result.Renamed++
			continue
		}
		if err := os.Rename(filepath.Join(cfg.Dir, name), filepath.Join(cfg.Dir, target)); err != nil {
			result.Skipped++
			fmt.Fprintf(w, "skipped: %s (%v)\n", name, err)
			continue
		}
		result.Renamed++
	}

	fmt.Fprintf(w, "\nRename summary: %d renamed, %d already clean, %d skipped\n",
		result.Renamed, result.OK, result.Skipped)
	return result, nil
}
