// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// seed creates empty files under a temp root and returns the root.
func seed(t *testing.T, rels ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, rel := range rels {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestSources_NonRecursive(t *testing.T) {
	root := seed(t,
		"zeta.qmd",
		"alpha.qmd",
		"notes.Rmd",
		"readme.md",
		filepath.Join("sub", "nested.qmd"),
	)

	got, err := Sources(root, false)
	if err != nil {
		t.Fatalf("Sources: %v", err)
	}

	want := []string{"alpha.qmd", "notes.Rmd", "zeta.qmd"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sources = %v, want %v", got, want)
	}
}

func TestSources_Recursive(t *testing.T) {
	root := seed(t,
		filepath.Join("02-cox", "intro.qmd"),
		filepath.Join("01-km", "estimator.qmd"),
		"index.qmd",
		filepath.Join("01-km", "data.csv"),
	)

	got, err := Sources(root, true)
	if err != nil {
		t.Fatalf("Sources: %v", err)
	}

	want := []string{
		filepath.Join("01-km", "estimator.qmd"),
		filepath.Join("02-cox", "intro.qmd"),
		"index.qmd",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sources = %v, want %v", got, want)
	}
}

func TestSources_Deterministic(t *testing.T) {
	root := seed(t, "b.qmd", "a.qmd", "c.Rmd", filepath.Join("d", "e.qmd"))

	first, err := Sources(root, true)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Sources(root, true)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated discovery differs: %v vs %v", first, second)
	}
}

func TestSources_MissingRoot(t *testing.T) {
	if _, err := Sources(filepath.Join(t.TempDir(), "nope"), false); err == nil {
		t.Error("expected error for missing input directory")
	}
}

func TestSources_RootIsFile(t *testing.T) {
	root := seed(t, "file.qmd")
	if _, err := Sources(filepath.Join(root, "file.qmd"), false); err == nil {
		t.Error("expected error for non-directory input path")
	}
}

func TestNotebooks(t *testing.T) {
	root := seed(t,
		"a.ipynb",
		filepath.Join("deep", "b.ipynb"),
		"c.qmd",
	)

	got, err := Notebooks(root)
	if err != nil {
		t.Fatalf("Notebooks: %v", err)
	}

	want := []string{"a.ipynb", filepath.Join("deep", "b.ipynb")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Notebooks = %v, want %v", got, want)
	}
}
