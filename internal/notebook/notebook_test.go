// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notebook

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notebook-engine/pkg/types"
)

func TestMarshal_CodeCellShape(t *testing.T) {
	nb := New(types.DefaultKernel(), "")
	nb.Append(Code("fit <- survfit(s ~ 1)", CellMetadata{Language: "r"}))

	data, err := nb.Marshal()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	cells := decoded["cells"].([]any)
	require.Len(t, cells, 1)
	cell := cells[0].(map[string]any)

	assert.Equal(t, "code", cell["cell_type"])
	outputs, ok := cell["outputs"].([]any)
	require.True(t, ok, "code cell must carry an outputs list")
	assert.Empty(t, outputs)

	count, ok := cell["execution_count"]
	require.True(t, ok, "code cell must carry execution_count")
	assert.Nil(t, count)
}

func TestMarshal_MarkdownCellShape(t *testing.T) {
	nb := New(types.DefaultKernel(), "")
	nb.Append(Markdown("# Kaplan-Meier\n\nThe estimator handles censoring."))

	data, err := nb.Marshal()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	cell := decoded["cells"].([]any)[0].(map[string]any)
	assert.Equal(t, "markdown", cell["cell_type"])

	_, hasOutputs := cell["outputs"]
	assert.False(t, hasOutputs, "markdown cells have no outputs key")
	_, hasCount := cell["execution_count"]
	assert.False(t, hasCount, "markdown cells have no execution_count key")

	src := cell["source"].([]any)
	assert.Equal(t, "# Kaplan-Meier", src[0])
	assert.Equal(t, "", src[1])
}

func TestMarshal_Deterministic(t *testing.T) {
	build := func() []byte {
		nb := New(types.DefaultKernel(), "Survival Basics")
		nb.Append(Markdown("Intro."))
		nb.Append(Code("library(survival)", CellMetadata{Language: "r", Options: "echo=FALSE"}))
		data, err := nb.Marshal()
		require.NoError(t, err)
		return data
	}

	assert.Equal(t, build(), build())
}

func TestMarshal_Metadata(t *testing.T) {
	nb := New(types.KernelSpec{DisplayName: "R", Language: "R", Name: "ir"}, "Hazard Functions")

	data, err := nb.Marshal()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, float64(4), decoded["nbformat"])
	assert.Equal(t, float64(5), decoded["nbformat_minor"])

	meta := decoded["metadata"].(map[string]any)
	kernel := meta["kernelspec"].(map[string]any)
	assert.Equal(t, "ir", kernel["name"])
	assert.Equal(t, "R", kernel["language"])
	assert.Equal(t, "Hazard Functions", meta["title"])
	assert.Equal(t, true, meta["colab"].(map[string]any)["toc_visible"])
}

func TestLoadRoundTrip(t *testing.T) {
	nb := New(types.DefaultKernel(), "Round Trip")
	nb.Append(Markdown("Prose span."))
	nb.Append(Code("%%R\nplot(fit)", CellMetadata{Language: "r"}))

	data, err := nb.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "rt.ipynb")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)

	require.Len(t, loaded.Cells, 2)
	assert.Equal(t, CellMarkdown, loaded.Cells[0].Type)
	assert.Equal(t, CellCode, loaded.Cells[1].Type)
	assert.Equal(t, []string{"%%R", "plot(fit)"}, loaded.Cells[1].Source)
	assert.Equal(t, "Round Trip", loaded.Metadata.Title)
	assert.Equal(t, 1, loaded.CodeCells())
}

func TestMarkdownText(t *testing.T) {
	nb := New(types.DefaultKernel(), "")
	nb.Append(Markdown("First span."))
	nb.Append(Code("x <- 1", CellMetadata{}))
	nb.Append(Markdown("Second span."))

	assert.Equal(t, "First span.\n\nSecond span.", nb.MarkdownText())
}

func TestColabSetupCells(t *testing.T) {
	cells := ColabSetupCells()
	require.Len(t, cells, 5)

	assert.Equal(t, CellMarkdown, cells[0].Type)
	assert.Equal(t, CellCode, cells[1].Type)
	assert.Contains(t, cells[1].Source, "%load_ext rpy2.ipython")
	assert.Equal(t, CellCode, cells[3].Type)
	assert.Contains(t, cells[3].Source, "drive.mount('/content/drive')")
}
